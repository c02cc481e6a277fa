package chain

import (
	"math"
	"testing"

	"github.com/MedusaOnMe/PlyOpt/internal/errors"
)

func TestStrikes(t *testing.T) {
	strikes, err := Strikes(50, 11, 0.05)
	if err != nil {
		t.Fatal(err)
	}
	if len(strikes) != 11 {
		t.Fatalf("got %d strikes, want 11", len(strikes))
	}
	if strikes[5] != 50 {
		t.Errorf("center strike = %v, want exactly 50", strikes[5])
	}
	for i := 1; i < len(strikes); i++ {
		spacing := strikes[i] - strikes[i-1]
		if math.Abs(spacing-2.5) > 1e-9 {
			t.Errorf("spacing between %v and %v = %v, want 2.5", strikes[i-1], strikes[i], spacing)
		}
	}
	if strikes[0] != 37.5 || strikes[10] != 62.5 {
		t.Errorf("lattice bounds = [%v, %v], want [37.5, 62.5]", strikes[0], strikes[10])
	}
}

func TestStrikesRoundedToCents(t *testing.T) {
	strikes, err := Strikes(33.33, 5, 0.07)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range strikes {
		if math.Round(k*100)/100 != k {
			t.Errorf("strike %v not rounded to cents", k)
		}
	}
	if strikes[2] != 33.33 {
		t.Errorf("center strike = %v, want spot 33.33", strikes[2])
	}
}

func TestStrikesRejectsBadInput(t *testing.T) {
	cases := []struct {
		name        string
		spot        float64
		count       int
		stepPercent float64
	}{
		{"zero spot", 0, 11, 0.05},
		{"negative spot", -10, 11, 0.05},
		{"even count", 50, 10, 0.05},
		{"count too small", 50, 1, 0.05},
		{"zero step", 50, 11, 0},
		{"step too large", 50, 11, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Strikes(tc.spot, tc.count, tc.stepPercent); !errors.Is(err, errors.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
