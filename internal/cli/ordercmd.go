package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
	"github.com/MedusaOnMe/PlyOpt/internal/orders"
	"github.com/MedusaOnMe/PlyOpt/pkg/utils"
)

// addOrderCommands adds order valuation commands.
func addOrderCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newOrderCmd(app))
	rootCmd.AddCommand(newPayoffCmd(app))
}

func orderDirection(s string) models.OrderDirection {
	if s == "sell" || s == "SELL" {
		return models.Sell
	}
	if s == "buy" || s == "BUY" {
		return models.Buy
	}
	return models.OrderDirection(s)
}

// clampQuantity bounds the requested quantity to the configured ceiling;
// non-positive quantities pass through so the valuator rejects them.
func clampQuantity(qty, maxQty int64) int64 {
	if qty > maxQty {
		return maxQty
	}
	return qty
}

func newOrderCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Evaluate risk/reward for an order on a chain contract",
		Long: `Evaluate an order against the generated chain: premium paid or
received, total cost, capped max profit/loss, breakeven and fee.

Buyers pay the ask, sellers receive the bid. Because the underlying is a
probability bounded in [0,100] cents, both sides of the trade have a
known ceiling.`,
		Example: `  plyopt order --spot 55 --strike 50 --type call --direction buy --qty 2
  plyopt order --spot 55 --strike 57.75 --type put --direction sell --qty 10 --expiry 2026-09-18`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			expiryStr, _ := cmd.Flags().GetString("expiry")
			side, _ := cmd.Flags().GetString("type")
			direction, _ := cmd.Flags().GetString("direction")
			qty, _ := cmd.Flags().GetInt64("qty")

			if spot == 0 {
				spot = app.Config.Chain.DefaultSpot
			}
			qty = clampQuantity(qty, app.Config.Order.MaxQuantity)

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

			cell := optionsChain.CellAt(strike)
			if cell == nil {
				return fmt.Errorf("no strike %.2f in chain (see 'plyopt chain --spot %g')", strike, spot)
			}

			valuation, err := app.Valuator.Evaluate(cell, contractSide(side), orderDirection(direction), qty)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(valuation)
			}
			renderValuation(output, valuation, cell, contractSide(side), qty)
			return nil
		},
	}

	cmd.Flags().Float64("spot", 0, "spot price in cents (0-100)")
	cmd.Flags().Float64("strike", 0, "strike price from the chain")
	cmd.Flags().String("expiry", "", "expiration date (YYYY-MM-DD, default: nearest)")
	cmd.Flags().String("type", "call", "contract type (call|put)")
	cmd.Flags().String("direction", "buy", "order direction (buy|sell)")
	cmd.Flags().Int64("qty", 1, "number of contracts")
	cmd.MarkFlagRequired("strike")
	return cmd
}

func renderValuation(output *Output, v *models.OrderValuation, cell *models.ChainCell, side models.ContractSide, qty int64) {
	action := "SELL"
	if v.IsBuying {
		action = "BUY"
	}
	output.Header("%s %s %s x%s", action, side, utils.FormatCents(cell.Strike), utils.FormatQuantity(qty))
	output.Printf("Premium:       %s\n", utils.FormatCents(v.Premium))
	output.Printf("Total premium: %s\n", utils.FormatMoney(v.TotalPremium))
	if v.Fee > 0 {
		output.Printf("Fee:           %s\n", utils.FormatMoney(v.Fee))
	}
	output.Success("Max profit:    %s", utils.FormatMoney(v.MaxProfit))
	output.Error("Max loss:      %s", utils.FormatMoney(v.MaxLoss))
	output.Printf("Breakeven:     %s\n", utils.FormatCents(v.Breakeven))
}

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Compute the payoff-at-expiry for a single-leg position",
		Example: `  plyopt payoff --spot 50 --strike 50 --premium 3 --type call --direction buy --qty 1
  plyopt payoff --spot 50 --strike 50 --premium 3 --type call --at 70`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			premium, _ := cmd.Flags().GetFloat64("premium")
			side, _ := cmd.Flags().GetString("type")
			direction, _ := cmd.Flags().GetString("direction")
			qty, _ := cmd.Flags().GetInt64("qty")
			at, _ := cmd.Flags().GetFloat64("at")

			if spot == 0 {
				spot = app.Config.Chain.DefaultSpot
			}
			qty = clampQuantity(qty, app.Config.Order.MaxQuantity)

			if cmd.Flags().Changed("at") {
				pnl, err := orders.PayoffAt(at, strike, premium, contractSide(side), orderDirection(direction), qty)
				if err != nil {
					return err
				}
				if output.IsJSON() {
					return output.JSON(models.PayoffPoint{Price: at, PnL: pnl})
				}
				output.Printf("P&L at %s: %s\n", utils.FormatCents(at), utils.FormatPnL(pnl))
				return nil
			}

			curve, err := orders.Curve(spot, strike, premium, contractSide(side), orderDirection(direction), qty)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(curve)
			}

			output.Header("Payoff at expiry (%s to %s)", utils.FormatCents(curve.MinPrice), utils.FormatCents(curve.MaxPrice))
			output.Success("Max P&L:   %s", utils.FormatPnL(curve.MaxPnL))
			output.Error("Min P&L:   %s", utils.FormatPnL(curve.MinPnL))
			output.Printf("Breakeven: %s\n", utils.FormatCents(curve.Breakeven))
			renderSparkline(output, curve)
			return nil
		},
	}

	cmd.Flags().Float64("spot", 0, "spot price in cents (0-100)")
	cmd.Flags().Float64("strike", 0, "strike price in cents")
	cmd.Flags().Float64("premium", 0, "premium paid or received per contract")
	cmd.Flags().String("type", "call", "contract type (call|put)")
	cmd.Flags().String("direction", "buy", "order direction (buy|sell)")
	cmd.Flags().Int64("qty", 1, "number of contracts")
	cmd.Flags().Float64("at", 0, "settle price for a single-point payoff")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("premium")
	return cmd
}

// renderSparkline draws a coarse text payoff curve, one row per sampled
// decile of the price band.
func renderSparkline(output *Output, curve *models.PayoffCurve) {
	if len(curve.Points) == 0 {
		return
	}
	span := curve.MaxPnL - curve.MinPnL
	if span == 0 {
		span = 1
	}
	stride := len(curve.Points) / 10
	if stride == 0 {
		stride = 1
	}
	for i := 0; i < len(curve.Points); i += stride {
		p := curve.Points[i]
		width := int((p.PnL - curve.MinPnL) / span * 40)
		bar := ""
		for j := 0; j < width; j++ {
			bar += "#"
		}
		output.Printf("%7.2f | %-40s %s\n", p.Price, bar, utils.FormatPnL(p.PnL))
	}
}
