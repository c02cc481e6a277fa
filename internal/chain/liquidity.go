package chain

import (
	"math"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

// Liquidity synthesis knobs. The platform is freshly launched, so most
// strikes are unwritten: only the nearest-ATM band is guaranteed liquid
// and everything else decays with distance from the money.
const (
	guaranteedBand = 0.02 // |moneyness-1| within which a writer always exists
	availBase      = 0.80 // availability probability at the money
	availDecay     = 6.0  // exponential decay rate per unit of moneyness distance
	availPenalty   = 0.90 // second, independent "no writers showed up" roll

	oiScale      = 18000.0 // open-interest scale at the money
	oiFalloff    = 0.02    // variance of the Gaussian OI falloff in moneyness
	oiTermBoost  = 3.0     // near-term open-interest boost (inverse-sqrt days)
	volumeFloor  = 0.05    // volume as a fraction of open interest, lower bound
	volumeSpread = 0.25    // additional volume fraction, scaled by a roll
)

// Stream tags keep the independent pseudo-random draws decorrelated.
const (
	streamOpenInterest uint64 = iota + 1
	streamVolume
	streamAvailability
	streamPenalty
	streamIVJitter
)

const putSalt uint64 = 0xD1B54A32D192ED03

// Synthesizer produces deterministic pseudo-random liquidity per
// (strike, daysToExpiry, side). The same inputs yield the same outputs
// across calls and process restarts; there is no mutable state.
type Synthesizer struct{}

// splitmix64 is the finalizer of the SplitMix64 generator, used here as
// a stable keyed hash. The output stream is part of the determinism
// contract: changing it changes every synthesized chain.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

// unit maps (strike, daysToExpiry, side, stream) to a uniform [0,1).
func (Synthesizer) unit(strike float64, daysToExpiry int, side models.ContractSide, stream uint64) float64 {
	key := uint64(math.Round(strike * 100))
	key = splitmix64(key) ^ splitmix64(uint64(daysToExpiry)<<17) ^ splitmix64(stream<<41)
	if side == models.Put {
		key ^= putSalt
	}
	return float64(splitmix64(key)>>11) / float64(1<<53)
}

// VolumeOpenInterest synthesizes volume and open interest for one
// contract. Open interest peaks at the money with a Gaussian falloff in
// moneyness and scales up for near-term expirations; volume is a bounded
// 5-30% fraction of open interest.
func (s Synthesizer) VolumeOpenInterest(strike float64, daysToExpiry int, moneyness float64, side models.ContractSide) (volume, openInterest int64) {
	days := daysToExpiry
	if days < 1 {
		days = 1
	}
	atm := math.Exp(-math.Pow(moneyness-1, 2) / oiFalloff)
	term := 1 + oiTermBoost/math.Sqrt(float64(days))

	oi := oiScale * atm * term * (0.5 + s.unit(strike, daysToExpiry, side, streamOpenInterest))
	openInterest = int64(oi)
	volume = int64(oi * (volumeFloor + volumeSpread*s.unit(strike, daysToExpiry, side, streamVolume)))
	return volume, openInterest
}

// Available reports whether anyone has written this contract. The
// nearest-ATM band is always liquid; elsewhere availability decays
// exponentially with distance from the money, gated by two independent
// penalty rolls. Deterministic per input, so chains never flicker
// between rebuilds at the same spot and expiry.
func (s Synthesizer) Available(strike float64, daysToExpiry int, moneyness float64, side models.ContractSide) bool {
	dist := math.Abs(moneyness - 1)
	if dist <= guaranteedBand {
		return true
	}
	prob := availBase * math.Exp(-availDecay*dist)
	return s.unit(strike, daysToExpiry, side, streamAvailability) < prob &&
		s.unit(strike, daysToExpiry, side, streamPenalty) < availPenalty
}

// IVJitter returns the deterministic per-cell IV perturbation in
// percentage points, in [-2, 2). The jitter is per cell, not per side.
func (s Synthesizer) IVJitter(strike float64, daysToExpiry int) float64 {
	return (s.unit(strike, daysToExpiry, models.Call, streamIVJitter) - 0.5) * 4
}
