package orders

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

func genCell(strike, bid, spread float64) *models.ChainCell {
	quote := models.ContractQuote{
		Bid:       math.Round(bid*100) / 100,
		Ask:       math.Round((bid+spread)*100) / 100,
		Available: true,
	}
	return &models.ChainCell{Strike: strike, Call: quote, Put: quote}
}

// Property: buyer max loss equals the premium paid, seller max profit
// equals the premium collected, and the writer's loss ceiling equals the
// buyer's profit ceiling at the same premium.
func TestProperty_ValuationSymmetry(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	v := NewValuator(5)

	properties.Property("buy/sell risk mirrors", prop.ForAll(
		func(strike, bid, spread float64, qty int64, isCall bool) bool {
			side := models.Put
			if isCall {
				side = models.Call
			}
			cell := genCell(math.Round(strike*100)/100, bid, spread)

			buy, err := v.Evaluate(cell, side, models.Buy, qty)
			if err != nil {
				return false
			}
			sell, err := v.Evaluate(cell, side, models.Sell, qty)
			if err != nil {
				return false
			}

			quote := cell.Quote(side)
			if buy.Premium != quote.Ask || sell.Premium != quote.Bid {
				return false
			}
			if buy.MaxLoss != buy.TotalPremium || sell.MaxProfit != sell.TotalPremium {
				return false
			}
			if buy.MaxProfit < 0 || buy.MaxLoss < 0 || sell.MaxProfit < 0 || sell.MaxLoss < 0 {
				return false
			}
			if buy.Fee < 0 || sell.Fee > buy.Fee {
				return false
			}

			// Same premium on both legs means identical ceilings.
			bothWays, err := v.Evaluate(genCell(cell.Strike, quote.Ask, 0), side, models.Sell, qty)
			if err != nil {
				return false
			}
			return bothWays.MaxLoss == buy.MaxProfit
		},
		gen.Float64Range(10, 90),
		gen.Float64Range(0.01, 8),
		gen.Float64Range(0, 0.5),
		gen.Int64Range(1, 1000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// Property: breakeven sits exactly one premium away from the strike on
// the profitable side.
func TestProperty_Breakeven(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	v := NewValuator(5)

	properties.Property("breakeven offset equals premium", prop.ForAll(
		func(strike, ask float64, qty int64) bool {
			strike = math.Round(strike*100) / 100
			cell := genCell(strike, ask, 0)

			call, err := v.Evaluate(cell, models.Call, models.Buy, qty)
			if err != nil {
				return false
			}
			put, err := v.Evaluate(cell, models.Put, models.Buy, qty)
			if err != nil {
				return false
			}
			return math.Abs((call.Breakeven-strike)-call.Premium) < 1e-9 &&
				math.Abs((strike-put.Breakeven)-put.Premium) < 1e-9
		},
		gen.Float64Range(10, 90),
		gen.Float64Range(0.01, 8),
		gen.Int64Range(1, 1000),
	))

	properties.TestingRun(t)
}
