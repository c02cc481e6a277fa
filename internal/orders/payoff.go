package orders

import (
	"math"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

const payoffSteps = 100

// PayoffAt returns the P&L at expiry for a single-leg position if the
// underlying settles at price. premium is per contract; a short position
// mirrors the long payoff.
func PayoffAt(price, strike, premium float64, side models.ContractSide, direction models.OrderDirection, quantity int64) (float64, error) {
	if err := validateLeg(strike, premium, side, direction, quantity); err != nil {
		return 0, err
	}
	if price < 0 || math.IsNaN(price) {
		return 0, errors.NewValidationError("price", price, "must not be negative")
	}

	var intrinsic float64
	if side == models.Call {
		intrinsic = math.Max(0, price-strike)
	} else {
		intrinsic = math.Max(0, strike-price)
	}

	pnl := (intrinsic - premium) * float64(quantity)
	if direction == models.Sell {
		pnl = -pnl
	}
	return math.Round(pnl*100) / 100, nil
}

// Curve samples the payoff-at-expiry across a band around spot
// (70%-130%, clipped to the [0,100] cent bounds of the underlying) in
// payoffSteps increments.
func Curve(spot, strike, premium float64, side models.ContractSide, direction models.OrderDirection, quantity int64) (*models.PayoffCurve, error) {
	if err := validateLeg(strike, premium, side, direction, quantity); err != nil {
		return nil, err
	}
	if spot <= 0 || math.IsNaN(spot) {
		return nil, errors.NewValidationError("spot", spot, "must be positive")
	}

	minPrice := math.Max(0, spot*0.7)
	maxPrice := math.Min(100, spot*1.3)
	step := (maxPrice - minPrice) / payoffSteps

	points := make([]models.PayoffPoint, 0, payoffSteps+1)
	maxPnL := math.Inf(-1)
	minPnL := math.Inf(1)
	for i := 0; i <= payoffSteps; i++ {
		price := minPrice + float64(i)*step
		pnl, err := PayoffAt(price, strike, premium, side, direction, quantity)
		if err != nil {
			return nil, err
		}
		points = append(points, models.PayoffPoint{Price: price, PnL: pnl})
		maxPnL = math.Max(maxPnL, pnl)
		minPnL = math.Min(minPnL, pnl)
	}

	breakeven := strike + premium
	if side == models.Put {
		breakeven = strike - premium
	}

	return &models.PayoffCurve{
		Points:    points,
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		MaxPnL:    maxPnL,
		MinPnL:    minPnL,
		Breakeven: breakeven,
	}, nil
}

func validateLeg(strike, premium float64, side models.ContractSide, direction models.OrderDirection, quantity int64) error {
	if strike <= 0 || math.IsNaN(strike) {
		return errors.NewValidationError("strike", strike, "must be positive")
	}
	if premium < 0 || math.IsNaN(premium) {
		return errors.NewValidationError("premium", premium, "must not be negative")
	}
	if !side.Valid() {
		return errors.NewValidationError("side", side, "must be CALL or PUT")
	}
	if !direction.Valid() {
		return errors.NewValidationError("direction", direction, "must be BUY or SELL")
	}
	if quantity <= 0 {
		return errors.NewValidationError("quantity", quantity, "must be positive")
	}
	return nil
}
