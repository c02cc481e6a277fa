// Package store provides persistence for built chain snapshots.
package store

import (
	"context"
	"time"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

// SnapshotInfo summarizes a stored chain snapshot.
type SnapshotInfo struct {
	ID           int64     `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Spot         float64   `json:"spot"`
	ExpiryDate   string    `json:"expiry_date"`
	DaysToExpiry int       `json:"days_to_expiry"`
	Cells        int       `json:"cells"`
}

// SnapshotStore persists built option chains for later inspection.
// Snapshots are derived pricing data, not trades.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, chain *models.OptionsChain) (int64, error)
	ListSnapshots(ctx context.Context, limit int) ([]SnapshotInfo, error)
	GetSnapshot(ctx context.Context, id int64) (*models.OptionsChain, error)
	Close() error
}
