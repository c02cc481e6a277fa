package pricing

import (
	"math"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

const (
	ivMaxIterations = 100
	ivEpsilon       = 1e-8
	ivFloor         = 0.0001
)

// ImpliedVolatility solves for the annualized volatility (in percent)
// that reproduces targetPrice, using Newton-Raphson on vega.
func ImpliedVolatility(targetPrice, spot, strike float64, daysToExpiry int, rate float64, side models.ContractSide) (float64, error) {
	if targetPrice <= 0 || math.IsNaN(targetPrice) {
		return 0, errors.NewValidationError("target_price", targetPrice, "must be positive")
	}
	if spot <= 0 || math.IsNaN(spot) {
		return 0, errors.NewValidationError("spot", spot, "must be positive")
	}
	if strike <= 0 || math.IsNaN(strike) {
		return 0, errors.NewValidationError("strike", strike, "must be positive")
	}
	if daysToExpiry < 0 {
		return 0, errors.NewValidationError("days_to_expiry", daysToExpiry, "must not be negative")
	}
	if rate < 0 || math.IsNaN(rate) {
		return 0, errors.NewValidationError("rate", rate, "must not be negative")
	}
	if !side.Valid() {
		return 0, errors.NewValidationError("side", side, "must be CALL or PUT")
	}

	t := TimeToExpiry(daysToExpiry)
	isCall := side == models.Call

	sigma := 0.5 // initial guess
	for i := 0; i < ivMaxIterations; i++ {
		price := rawPrice(spot, strike, t, rate, sigma, isCall)
		diff := price - targetPrice
		if math.Abs(diff) < ivEpsilon {
			return sigma * 100, nil
		}

		vega := rawVega(spot, strike, t, rate, sigma)
		if vega < ivEpsilon {
			break
		}

		sigma -= diff / vega
		if sigma <= 0 {
			sigma = ivFloor
		}
	}
	return 0, errors.Wrapf(errors.ErrNoConvergence, "implied volatility for target %.4f", targetPrice)
}
