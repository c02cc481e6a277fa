// Package pricing implements closed-form Black-Scholes valuation and
// Greeks for single option contracts on a probability underlying.
package pricing

import (
	"math"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

const (
	// DaysPerYear is the calendar day-count basis.
	DaysPerYear = 365.0

	// MinTick is the minimum quotable premium in cents.
	MinTick = 0.01

	// minTimeYears clamps the time to expiry so zero-DTE contracts can
	// still be priced without a division by zero in d1.
	minTimeYears = 1e-4
)

// Input is one (spot, strike, time, vol, side) pricing tuple.
// Spot and Strike are in cents, IVPercent is annualized volatility in
// percent, Rate is the annualized risk-free rate as a fraction.
type Input struct {
	Spot         float64
	Strike       float64
	DaysToExpiry int
	IVPercent    float64
	Rate         float64
	Side         models.ContractSide
}

func (in Input) validate() error {
	if in.Spot <= 0 || math.IsNaN(in.Spot) {
		return errors.NewValidationError("spot", in.Spot, "must be positive")
	}
	if in.Strike <= 0 || math.IsNaN(in.Strike) {
		return errors.NewValidationError("strike", in.Strike, "must be positive")
	}
	if in.DaysToExpiry < 0 {
		return errors.NewValidationError("days_to_expiry", in.DaysToExpiry, "must not be negative")
	}
	if in.IVPercent <= 0 || math.IsNaN(in.IVPercent) {
		return errors.NewValidationError("iv_percent", in.IVPercent, "must be positive")
	}
	if in.Rate < 0 || math.IsNaN(in.Rate) {
		return errors.NewValidationError("rate", in.Rate, "must not be negative")
	}
	if !in.Side.Valid() {
		return errors.NewValidationError("side", in.Side, "must be CALL or PUT")
	}
	return nil
}

// TimeToExpiry converts whole days to a year fraction, clamped away from
// zero so expiring contracts remain priceable.
func TimeToExpiry(days int) float64 {
	return math.Max(float64(days)/DaysPerYear, minTimeYears)
}

func dParams(s, k, t, r, sigma float64) (d1, d2 float64) {
	sqt := sigma * math.Sqrt(t)
	d1 = (math.Log(s/k) + (r+0.5*sigma*sigma)*t) / sqt
	d2 = d1 - sqt
	return d1, d2
}

// rawPrice is the unrounded Black-Scholes value.
func rawPrice(s, k, t, r, sigma float64, isCall bool) float64 {
	d1, d2 := dParams(s, k, t, r, sigma)
	if isCall {
		return s*NormCDF(d1) - k*math.Exp(-r*t)*NormCDF(d2)
	}
	return k*math.Exp(-r*t)*NormCDF(-d2) - s*NormCDF(-d1)
}

// rawVega is the unrounded vega per full volatility unit.
func rawVega(s, k, t, r, sigma float64) float64 {
	d1, _ := dParams(s, k, t, r, sigma)
	return s * math.Sqrt(t) * NormPDF(d1)
}

// Price returns the Black-Scholes value of the contract in cents,
// floored at MinTick and rounded to cents. It never returns a value
// <= 0 or NaN for valid inputs.
func Price(in Input) (float64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	t := TimeToExpiry(in.DaysToExpiry)
	sigma := in.IVPercent / 100
	p := rawPrice(in.Spot, in.Strike, t, in.Rate, sigma, in.Side == models.Call)
	if math.IsNaN(p) || p < MinTick {
		p = MinTick
	}
	return round2(p), nil
}

// GreeksFor returns delta, gamma, theta and vega for the contract.
// Theta is per calendar day; vega is per one percentage point of IV.
// Outputs carry display precision: 2 decimals, gamma 3.
func GreeksFor(in Input) (models.Greeks, error) {
	if err := in.validate(); err != nil {
		return models.Greeks{}, err
	}
	return greeks(in), nil
}

// PriceAndGreeks values the contract and its sensitivities in one call,
// for chain builders that need both per cell.
func PriceAndGreeks(in Input) (float64, models.Greeks, error) {
	p, err := Price(in)
	if err != nil {
		return 0, models.Greeks{}, err
	}
	return p, greeks(in), nil
}

func greeks(in Input) models.Greeks {
	t := TimeToExpiry(in.DaysToExpiry)
	sigma := in.IVPercent / 100
	s, k, r := in.Spot, in.Strike, in.Rate
	d1, d2 := dParams(s, k, t, r, sigma)

	var delta float64
	if in.Side == models.Call {
		delta = NormCDF(d1)
	} else {
		delta = NormCDF(d1) - 1
	}

	gamma := NormPDF(d1) / (s * sigma * math.Sqrt(t))

	decay := -(s * NormPDF(d1) * sigma) / (2 * math.Sqrt(t))
	var theta float64
	if in.Side == models.Call {
		theta = (decay - r*k*math.Exp(-r*t)*NormCDF(d2)) / DaysPerYear
	} else {
		theta = (decay + r*k*math.Exp(-r*t)*NormCDF(-d2)) / DaysPerYear
	}

	vega := s * math.Sqrt(t) * NormPDF(d1) / 100

	return models.Greeks{
		Delta: round2(delta),
		Gamma: round3(gamma),
		Theta: round2(theta),
		Vega:  round2(vega),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
