package cli

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MedusaOnMe/PlyOpt/internal/chain"
	"github.com/MedusaOnMe/PlyOpt/internal/config"
	"github.com/MedusaOnMe/PlyOpt/internal/logging"
	"github.com/MedusaOnMe/PlyOpt/internal/orders"
	"github.com/MedusaOnMe/PlyOpt/internal/store"
)

// Version information
const (
	Version = "0.1.0"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Builder  *chain.Builder
	Cache    *chain.Cache
	Valuator *orders.Valuator
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
		Builder: chain.NewBuilder(chain.BuilderConfig{
			StrikeCount:       cfg.Chain.StrikeCount,
			StrikeStepPercent: cfg.Chain.StrikeStepPercent,
			BaseIV:            cfg.Chain.BaseIV,
			RiskFreeRate:      cfg.Chain.RiskFreeRate,
			ATMTolerance:      cfg.Chain.ATMTolerance,
		}, logger),
		Cache:    chain.NewCache(),
		Valuator: orders.NewValuator(cfg.Order.FeeBps),
	}

	rootCmd := &cobra.Command{
		Use:   "plyopt",
		Short: "Synthetic options chains over prediction-market probabilities",
		Long: `PlyOpt prices synthetic options on prediction-market outcomes.

The underlying is a market probability expressed in cents [0,100]. PlyOpt
generates strike lattices and expiration schedules, values each contract
with Black-Scholes, derives Greeks, synthesizes deterministic liquidity,
and evaluates order-level risk/reward for a chosen contract.

Spot prices are supplied by the caller (--spot); PlyOpt performs no
market-data fetching of its own.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addChainCommands(rootCmd, app)
	addPricingCommands(rootCmd, app)
	addOrderCommands(rootCmd, app)
	addSnapshotCommands(rootCmd, app)
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// openStore opens the snapshot database under the config directory.
func (app *App) openStore() (store.SnapshotStore, error) {
	dbPath := filepath.Join(config.DefaultConfigDir(), "plyopt.db")
	return store.NewSQLiteStore(dbPath)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			NewOutput(cmd).Printf("plyopt %s\n", Version)
		},
	}
}
