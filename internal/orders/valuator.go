// Package orders computes order-level risk/reward for selected option
// contracts: premiums, capped max profit/loss, breakevens and payoff
// curves. Valuations are stateless and recomputed on every input change.
package orders

import (
	"github.com/shopspring/decimal"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

// priceCap is the underlying's hard ceiling: a probability in cents.
var priceCap = decimal.NewFromInt(100)

// Valuator evaluates order risk/reward. feeBps is the platform fee in
// basis points applied to the total premium.
type Valuator struct {
	feeBps int64
}

// NewValuator creates a Valuator with the given fee.
func NewValuator(feeBps int64) *Valuator {
	return &Valuator{feeBps: feeBps}
}

// Evaluate computes the valuation for taking quantity contracts of the
// given side of cell in the given direction.
//
// A buyer pays the ask and a seller receives the bid; the synthesized
// spread is never crossed the other way. Because the underlying is
// bounded in [0,100] cents, both profit and loss are capped: the
// writer's loss ceiling is exactly the buyer's profit ceiling.
func (v *Valuator) Evaluate(cell *models.ChainCell, side models.ContractSide, direction models.OrderDirection, quantity int64) (*models.OrderValuation, error) {
	if cell == nil {
		return nil, errors.ErrNoSelection
	}
	if !side.Valid() {
		return nil, errors.NewValidationError("side", side, "must be CALL or PUT")
	}
	if !direction.Valid() {
		return nil, errors.NewValidationError("direction", direction, "must be BUY or SELL")
	}
	if quantity <= 0 {
		return nil, errors.NewValidationError("quantity", quantity, "must be positive")
	}

	quote := cell.Quote(side)
	if !quote.Available {
		return nil, errors.Wrapf(errors.ErrUnavailable, "%s %.2f", side, cell.Strike)
	}

	isBuying := direction == models.Buy
	var premium decimal.Decimal
	if isBuying {
		premium = decimal.NewFromFloat(quote.Ask)
	} else {
		premium = decimal.NewFromFloat(quote.Bid)
	}

	qty := decimal.NewFromInt(quantity)
	strike := decimal.NewFromFloat(cell.Strike)
	total := premium.Mul(qty)
	fee := total.Mul(decimal.NewFromInt(v.feeBps)).Div(decimal.NewFromInt(10000))

	// The buyer's profit ceiling at the price cap (call) or floor (put).
	var buyerCeiling decimal.Decimal
	var breakeven decimal.Decimal
	if side == models.Call {
		buyerCeiling = priceCap.Sub(strike).Sub(premium).Mul(qty)
		breakeven = strike.Add(premium)
	} else {
		buyerCeiling = strike.Sub(premium).Mul(qty)
		breakeven = strike.Sub(premium)
	}

	var maxProfit, maxLoss decimal.Decimal
	if isBuying {
		maxProfit = buyerCeiling
		maxLoss = total
	} else {
		maxProfit = total
		maxLoss = buyerCeiling
	}

	return &models.OrderValuation{
		Premium:      roundCents(premium),
		TotalPremium: roundCents(total),
		Fee:          roundCents(fee),
		MaxProfit:    roundCents(floorZero(maxProfit)),
		MaxLoss:      roundCents(floorZero(maxLoss)),
		Breakeven:    roundCents(breakeven),
		IsBuying:     isBuying,
	}, nil
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func roundCents(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
