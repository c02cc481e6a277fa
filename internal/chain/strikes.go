// Package chain generates option chains: strike lattices, expiration
// schedules, deterministic synthetic liquidity and fully assembled chains.
package chain

import (
	"math"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
)

// Strikes generates count strike levels symmetric around spot, spaced by
// spot*stepPercent and rounded to cents, ascending. count must be odd and
// at least 3 so the center strike sits exactly at the money.
func Strikes(spot float64, count int, stepPercent float64) ([]float64, error) {
	if spot <= 0 || math.IsNaN(spot) {
		return nil, errors.NewValidationError("spot", spot, "must be positive")
	}
	if count < 3 || count%2 == 0 {
		return nil, errors.NewValidationError("count", count, "must be odd and >= 3")
	}
	if stepPercent <= 0 || stepPercent >= 1 {
		return nil, errors.NewValidationError("step_percent", stepPercent, "must be in (0, 1)")
	}

	step := spot * stepPercent
	center := count / 2
	strikes := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		offset := float64(i - center)
		strikes = append(strikes, math.Round((spot+offset*step)*100)/100)
	}
	return strikes, nil
}
