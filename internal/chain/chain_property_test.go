package chain

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/rs/zerolog"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
	"github.com/MedusaOnMe/PlyOpt/internal/pricing"
)

// Property: the lattice is symmetric around the spot and evenly spaced.
func TestProperty_StrikeLattice(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("lattice symmetric and evenly spaced", prop.ForAll(
		func(spot float64, halfCount int, stepPercent float64) bool {
			count := 2*halfCount + 1
			strikes, err := Strikes(spot, count, stepPercent)
			if err != nil || len(strikes) != count {
				return false
			}

			center := strikes[count/2]
			if math.Abs(center-math.Round(spot*100)/100) > 1e-9 {
				return false
			}
			step := spot * stepPercent
			for i := 1; i < count; i++ {
				// Rounding each strike to cents perturbs spacing by
				// at most one cent.
				if math.Abs((strikes[i]-strikes[i-1])-step) > 0.01+1e-9 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1, 99),
		gen.IntRange(1, 10),
		gen.Float64Range(0.01, 0.2),
	))

	properties.TestingRun(t)
}

// Property: every built chain satisfies the quote and flag invariants at
// any spot and tenor.
func TestProperty_ChainInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	builder := NewBuilder(BuilderConfig{
		StrikeCount:       11,
		StrikeStepPercent: 0.05,
		BaseIV:            55,
		RiskFreeRate:      0.05,
		ATMTolerance:      0.03,
	}, zerolog.Nop())

	properties.Property("chain invariants hold", prop.ForAll(
		func(spot float64, days int) bool {
			chain, err := builder.Build(spot, models.Expiration{
				Date:         time.Now().UTC().AddDate(0, 0, days),
				DaysToExpiry: days,
			})
			if err != nil {
				return false
			}

			atmSeen := false
			for i, cell := range chain.Cells {
				if i > 0 && cell.Strike <= chain.Cells[i-1].Strike {
					return false
				}
				if cell.IsATM {
					atmSeen = true
				}
				if cell.IsITM.Call && cell.IsITM.Put {
					return false
				}
				for _, quote := range []models.ContractQuote{cell.Call, cell.Put} {
					if quote.Last < pricing.MinTick {
						return false
					}
					if quote.Available {
						if quote.Bid < 0 || quote.Bid > quote.Ask || quote.Ask < pricing.MinTick {
							return false
						}
					} else if quote.Bid != 0 || quote.Ask != 0 {
						return false
					}
				}
			}
			// The center strike sits exactly at the money.
			return atmSeen
		},
		gen.Float64Range(5, 95),
		gen.IntRange(0, 60),
	))

	properties.TestingRun(t)
}
