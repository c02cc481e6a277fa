package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MedusaOnMe/PlyOpt/internal/chain"
	"github.com/MedusaOnMe/PlyOpt/internal/models"
	"github.com/MedusaOnMe/PlyOpt/pkg/utils"
)

// addChainCommands adds chain generation commands.
func addChainCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newExpirationsCmd(app))
	rootCmd.AddCommand(newChainCmd(app))
}

func newExpirationsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "expirations",
		Short: "List the expiration schedule",
		Long: `List the generated expiration schedule: the next 4 weekly Fridays
plus the third Friday of each of the next 2 months. Day counts are whole
UTC days from today.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			expirations := chain.Expirations(time.Now(), app.Config.Chain.NearExpiryDays)

			if output.IsJSON() {
				return output.JSON(expirations)
			}

			output.Header("Expirations")
			output.Printf("%-12s %-12s %6s  %-8s\n", "DATE", "LABEL", "DAYS", "TYPE")
			for _, exp := range expirations {
				kind := "weekly"
				if !exp.IsWeekly {
					kind = "monthly"
				}
				line := fmt.Sprintf("%-12s %-12s %6d  %-8s", exp.Date.Format("2006-01-02"), exp.Label, exp.DaysToExpiry, kind)
				if exp.NearExpiry {
					output.Warning("%s  (near expiry)", line)
				} else {
					output.Println(line)
				}
			}
			return nil
		},
	}
}

func newChainCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Generate an options chain",
		Long: `Generate the options chain for a spot price and expiration.

The spot price is the market probability in cents [0,100], supplied with
--spot. When omitted, the configured fallback (default 50) is used.`,
		Example: `  plyopt chain --spot 55
  plyopt chain --spot 55 --expiry 2026-09-18
  plyopt chain --spot 62 --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			spot, _ := cmd.Flags().GetFloat64("spot")
			expiryStr, _ := cmd.Flags().GetString("expiry")
			save, _ := cmd.Flags().GetBool("save")

			if spot == 0 {
				spot = app.Config.Chain.DefaultSpot
				app.Logger.Debug().Float64("spot", spot).Msg("No spot supplied, using configured fallback")
			}

			expiration, err := resolveExpiration(app, expiryStr)
			if err != nil {
				return err
			}

			optionsChain, err := app.Cache.GetOrBuild(spot, expiration, func() (*models.OptionsChain, error) {
				return app.Builder.Build(spot, expiration)
			})
			if err != nil {
				return err
			}

			if save {
				snapStore, err := app.openStore()
				if err != nil {
					return err
				}
				defer snapStore.Close()

				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				id, err := snapStore.SaveSnapshot(ctx, optionsChain)
				if err != nil {
					return err
				}
				output.Success("Saved snapshot %d", id)
			}

			if output.IsJSON() {
				return output.JSON(optionsChain)
			}
			renderChain(output, optionsChain)
			return nil
		},
	}

	cmd.Flags().Float64("spot", 0, "spot price in cents (0-100)")
	cmd.Flags().String("expiry", "", "expiration date (YYYY-MM-DD, default: nearest)")
	cmd.Flags().Bool("save", false, "persist the chain as a snapshot")
	return cmd
}

// resolveExpiration picks the expiration matching date, or the nearest
// one when date is empty.
func resolveExpiration(app *App, date string) (models.Expiration, error) {
	expirations := chain.Expirations(time.Now(), app.Config.Chain.NearExpiryDays)
	if date == "" {
		return expirations[0], nil
	}
	for _, exp := range expirations {
		if exp.Date.Format("2006-01-02") == date {
			return exp, nil
		}
	}
	return models.Expiration{}, fmt.Errorf("no expiration on %s (see 'plyopt expirations')", date)
}

func renderChain(output *Output, ch *models.OptionsChain) {
	output.Header("Options chain  spot %s  expiry %s (%dd)",
		utils.FormatCents(ch.Spot), ch.Expiration.Label, ch.Expiration.DaysToExpiry)
	if ch.Expiration.NearExpiry {
		output.Warning("Near expiry: %d day(s) remaining", ch.Expiration.DaysToExpiry)
	}

	atm := color.New(color.FgYellow, color.Bold)
	itm := color.New(color.FgGreen)

	output.Printf("%32s | %14s | %-32s\n", "CALLS", "", "PUTS")
	output.Printf("%6s %6s %6s %5s %6s | %7s %6s | %6s %6s %6s %5s %6s\n",
		"BID", "ASK", "LAST", "DELTA", "OI", "STRIKE", "IV", "BID", "ASK", "LAST", "DELTA", "OI")
	output.Rule(96)

	for i := range ch.Cells {
		cell := &ch.Cells[i]
		line := fmt.Sprintf("%6s %6s %6s %5.2f %6s | %7.2f %5.1f%% | %6s %6s %6s %5.2f %6s",
			quoteField(cell.Call.Bid, cell.Call.Available),
			quoteField(cell.Call.Ask, cell.Call.Available),
			fmt.Sprintf("%.2f", cell.Call.Last),
			cell.Call.Delta,
			utils.FormatCompactInt(cell.Call.OpenInterest),
			cell.Strike,
			cell.IV,
			quoteField(cell.Put.Bid, cell.Put.Available),
			quoteField(cell.Put.Ask, cell.Put.Available),
			fmt.Sprintf("%.2f", cell.Put.Last),
			cell.Put.Delta,
			utils.FormatCompactInt(cell.Put.OpenInterest),
		)

		switch {
		case cell.IsATM:
			atm.Fprintln(output.writer, line+"  ATM")
		case cell.IsITM.Call || cell.IsITM.Put:
			itm.Fprintln(output.writer, line)
		default:
			output.Println(line)
		}
	}
}

// quoteField renders a bid/ask, showing a dash for unwritten contracts.
func quoteField(v float64, available bool) string {
	if !available {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
