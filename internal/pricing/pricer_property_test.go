package pricing

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

// Property: call - put stays within a cent of S - K*e^(-rT) for any
// liquid-region input (both legs are independently rounded to cents).
func TestProperty_PutCallParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("put-call parity holds within rounding", prop.ForAll(
		func(spot, strikeRatio, iv float64, days int) bool {
			strike := math.Round(spot*strikeRatio*100) / 100
			call, err := Price(input(spot, strike, days, iv, models.Call))
			if err != nil {
				return false
			}
			put, err := Price(input(spot, strike, days, iv, models.Put))
			if err != nil {
				return false
			}
			tm := TimeToExpiry(days)
			want := spot - strike*math.Exp(-testRate*tm)
			return math.Abs((call-put)-want) <= 0.011
		},
		gen.Float64Range(20, 80),
		gen.Float64Range(0.9, 1.1),
		gen.Float64Range(45, 100),
		gen.IntRange(7, 60),
	))

	properties.TestingRun(t)
}

// Property: delta(call) - delta(put) == 1 and gamma is shared, for any
// valid input.
func TestProperty_GreeksIdentities(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("delta identity and shared gamma", prop.ForAll(
		func(spot, strikeRatio, iv float64, days int) bool {
			strike := math.Round(spot*strikeRatio*100) / 100
			call, err := GreeksFor(input(spot, strike, days, iv, models.Call))
			if err != nil {
				return false
			}
			put, err := GreeksFor(input(spot, strike, days, iv, models.Put))
			if err != nil {
				return false
			}
			if math.Abs((call.Delta-put.Delta)-1) > 1e-9 {
				return false
			}
			return call.Gamma == put.Gamma && call.Gamma >= 0
		},
		gen.Float64Range(5, 95),
		gen.Float64Range(0.75, 1.25),
		gen.Float64Range(10, 150),
		gen.IntRange(0, 90),
	))

	properties.TestingRun(t)
}

// Property: prices are always at least the minimum tick and never NaN.
func TestProperty_PriceFloor(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("price >= MinTick and finite", prop.ForAll(
		func(spot, strikeRatio, iv float64, days int) bool {
			strike := math.Round(spot*strikeRatio*100) / 100
			for _, side := range []models.ContractSide{models.Call, models.Put} {
				p, err := Price(input(spot, strike, days, iv, side))
				if err != nil {
					return false
				}
				if math.IsNaN(p) || math.IsInf(p, 0) || p < MinTick {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1, 99),
		gen.Float64Range(0.5, 2),
		gen.Float64Range(5, 200),
		gen.IntRange(0, 365),
	))

	properties.TestingRun(t)
}
