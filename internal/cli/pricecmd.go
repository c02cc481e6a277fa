package cli

import (
	"github.com/spf13/cobra"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
	"github.com/MedusaOnMe/PlyOpt/internal/pricing"
	"github.com/MedusaOnMe/PlyOpt/pkg/utils"
)

// addPricingCommands adds single-contract pricing commands.
func addPricingCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newPriceCmd(app))
	rootCmd.AddCommand(newImpliedVolCmd(app))
}

func contractSide(s string) models.ContractSide {
	if s == "put" || s == "PUT" {
		return models.Put
	}
	if s == "call" || s == "CALL" {
		return models.Call
	}
	return models.ContractSide(s)
}

func newPriceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a single contract and show its Greeks",
		Example: `  plyopt price --spot 55 --strike 50 --days 7 --iv 55 --type call
  plyopt price --spot 40 --strike 45 --days 30 --iv 60 --type put --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			days, _ := cmd.Flags().GetInt("days")
			iv, _ := cmd.Flags().GetFloat64("iv")
			side, _ := cmd.Flags().GetString("type")

			if iv == 0 {
				iv = app.Config.Chain.BaseIV
			}

			in := pricing.Input{
				Spot:         spot,
				Strike:       strike,
				DaysToExpiry: days,
				IVPercent:    iv,
				Rate:         app.Config.Chain.RiskFreeRate,
				Side:         contractSide(side),
			}

			price, greeks, err := pricing.PriceAndGreeks(in)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"price":  price,
					"greeks": greeks,
					"input":  in,
				})
			}

			output.Header("%s %s @ %s, %dd, IV %s", in.Side, utils.FormatCents(strike), utils.FormatCents(spot), days, utils.FormatPercent(iv))
			output.Printf("Price: %s\n", utils.FormatCents(price))
			output.Printf("Delta: %s  Gamma: %s  Theta: %s  Vega: %s\n",
				utils.FormatGreek("delta", greeks.Delta),
				utils.FormatGreek("gamma", greeks.Gamma),
				utils.FormatGreek("theta", greeks.Theta),
				utils.FormatGreek("vega", greeks.Vega))
			return nil
		},
	}

	cmd.Flags().Float64("spot", 0, "spot price in cents")
	cmd.Flags().Float64("strike", 0, "strike price in cents")
	cmd.Flags().Int("days", 7, "days to expiry")
	cmd.Flags().Float64("iv", 0, "implied volatility percent (default: configured base IV)")
	cmd.Flags().String("type", "call", "contract type (call|put)")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	return cmd
}

func newImpliedVolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "iv",
		Short:   "Solve the implied volatility for an observed premium",
		Example: `  plyopt iv --spot 55 --strike 50 --days 7 --price 6.20 --type call`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			spot, _ := cmd.Flags().GetFloat64("spot")
			strike, _ := cmd.Flags().GetFloat64("strike")
			days, _ := cmd.Flags().GetInt("days")
			price, _ := cmd.Flags().GetFloat64("price")
			side, _ := cmd.Flags().GetString("type")

			iv, err := pricing.ImpliedVolatility(price, spot, strike, days, app.Config.Chain.RiskFreeRate, contractSide(side))
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"implied_vol": iv})
			}
			output.Printf("Implied volatility: %s\n", utils.FormatPercent(iv))
			return nil
		},
	}

	cmd.Flags().Float64("spot", 0, "spot price in cents")
	cmd.Flags().Float64("strike", 0, "strike price in cents")
	cmd.Flags().Int("days", 7, "days to expiry")
	cmd.Flags().Float64("price", 0, "observed contract premium in cents")
	cmd.Flags().String("type", "call", "contract type (call|put)")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")
	cmd.MarkFlagRequired("price")
	return cmd
}
