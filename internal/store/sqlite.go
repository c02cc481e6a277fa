package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

// SQLiteStore implements SnapshotStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-backed snapshot store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chain_snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		spot REAL NOT NULL,
		expiry_date TEXT NOT NULL,
		days_to_expiry INTEGER NOT NULL,
		cells INTEGER NOT NULL,
		chain TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_created ON chain_snapshots(created_at);
	CREATE INDEX IF NOT EXISTS idx_snapshots_expiry ON chain_snapshots(expiry_date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSnapshot stores a built chain and returns its snapshot ID.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, chain *models.OptionsChain) (int64, error) {
	if chain == nil {
		return 0, errors.NewValidationError("chain", nil, "must not be nil")
	}

	payload, err := json.Marshal(chain)
	if err != nil {
		return 0, errors.NewStoreError("save_snapshot", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO chain_snapshots (created_at, spot, expiry_date, days_to_expiry, cells, chain)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC(), chain.Spot, chain.Expiration.Date.Format("2006-01-02"),
		chain.Expiration.DaysToExpiry, len(chain.Cells), string(payload))
	if err != nil {
		return 0, errors.NewStoreError("save_snapshot", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.NewStoreError("save_snapshot", err)
	}
	return id, nil
}

// ListSnapshots returns snapshot summaries, newest first.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, limit int) ([]SnapshotInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, spot, expiry_date, days_to_expiry, cells
		 FROM chain_snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.NewStoreError("list_snapshots", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.Spot, &info.ExpiryDate, &info.DaysToExpiry, &info.Cells); err != nil {
			return nil, errors.NewStoreError("list_snapshots", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// GetSnapshot loads a stored chain by snapshot ID.
func (s *SQLiteStore) GetSnapshot(ctx context.Context, id int64) (*models.OptionsChain, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT chain FROM chain_snapshots WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrDataNotFound, "snapshot %d", id)
	}
	if err != nil {
		return nil, errors.NewStoreError("get_snapshot", err)
	}

	var chain models.OptionsChain
	if err := json.Unmarshal([]byte(payload), &chain); err != nil {
		return nil, errors.NewStoreError("get_snapshot", err)
	}
	return &chain, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
