package chain

import (
	"testing"

	"github.com/MedusaOnMe/PlyOpt/internal/models"
)

func TestSynthesizerDeterministic(t *testing.T) {
	var s Synthesizer
	for _, strike := range []float64{37.5, 50, 62.5} {
		for _, side := range []models.ContractSide{models.Call, models.Put} {
			m := 50.0 / strike
			v1, oi1 := s.VolumeOpenInterest(strike, 14, m, side)
			v2, oi2 := s.VolumeOpenInterest(strike, 14, m, side)
			if v1 != v2 || oi1 != oi2 {
				t.Errorf("strike %v %v: volume/oi not stable across calls", strike, side)
			}
			if s.Available(strike, 14, m, side) != s.Available(strike, 14, m, side) {
				t.Errorf("strike %v %v: availability not stable across calls", strike, side)
			}
		}
		if s.IVJitter(strike, 14) != s.IVJitter(strike, 14) {
			t.Errorf("strike %v: IV jitter not stable across calls", strike)
		}
	}
}

func TestSynthesizerStreamsVaryByInput(t *testing.T) {
	var s Synthesizer

	// Two synthesizer values are a lazy check for a broken hash, the
	// real guard is the full grid below.
	if s.unit(50, 14, models.Call, streamVolume) == s.unit(50, 14, models.Call, streamOpenInterest) {
		t.Error("distinct streams produced identical draws")
	}
	if s.unit(50, 14, models.Call, streamVolume) == s.unit(50, 15, models.Call, streamVolume) {
		t.Error("distinct expiries produced identical draws")
	}
	if s.unit(50, 14, models.Call, streamVolume) == s.unit(50, 14, models.Put, streamVolume) {
		t.Error("call and put produced identical draws")
	}

	seen := make(map[float64]bool)
	for strike := 30.0; strike <= 70; strike += 2.5 {
		u := s.unit(strike, 14, models.Call, streamAvailability)
		if u < 0 || u >= 1 {
			t.Fatalf("unit(%v) = %v out of [0,1)", strike, u)
		}
		if seen[u] {
			t.Fatalf("duplicate draw %v at strike %v", u, strike)
		}
		seen[u] = true
	}
}

func TestVolumeBoundedByOpenInterest(t *testing.T) {
	var s Synthesizer
	for strike := 30.0; strike <= 70; strike += 2.5 {
		for _, days := range []int{0, 1, 7, 30, 60} {
			m := 50.0 / strike
			volume, oi := s.VolumeOpenInterest(strike, days, m, models.Call)
			if volume < 0 || oi < 0 {
				t.Fatalf("strike %v days %d: negative volume/oi (%d, %d)", strike, days, volume, oi)
			}
			if float64(volume) > float64(oi)*(volumeFloor+volumeSpread)+1 {
				t.Errorf("strike %v days %d: volume %d exceeds %v of oi %d", strike, days, volume, volumeFloor+volumeSpread, oi)
			}
		}
	}
}

func TestOpenInterestPeaksAtTheMoney(t *testing.T) {
	var s Synthesizer
	// Averaging out the seeded factor in [0.5, 1.5): ATM OI must beat the
	// far wing even at the worst draw, since the Gaussian falloff at
	// moneyness 50/37.5 is below 1e-5.
	_, atm := s.VolumeOpenInterest(50, 14, 1, models.Call)
	_, wing := s.VolumeOpenInterest(37.5, 14, 50.0/37.5, models.Call)
	if atm <= wing {
		t.Errorf("ATM oi %d not above deep-wing oi %d", atm, wing)
	}
}

func TestAvailableGuaranteedNearTheMoney(t *testing.T) {
	var s Synthesizer
	for _, m := range []float64{1, 1.019, 0.981, 1.02, 0.98} {
		for _, side := range []models.ContractSide{models.Call, models.Put} {
			if !s.Available(50, 7, m, side) {
				t.Errorf("moneyness %v %v: not available inside the guaranteed band", m, side)
			}
		}
	}
}

func TestIVJitterRange(t *testing.T) {
	var s Synthesizer
	for strike := 10.0; strike <= 90; strike += 0.5 {
		j := s.IVJitter(strike, 7)
		if j < -2 || j >= 2 {
			t.Fatalf("IVJitter(%v) = %v out of [-2, 2)", strike, j)
		}
	}
}
