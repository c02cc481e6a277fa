package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney(6); got != "$6.00" {
		t.Errorf("FormatMoney(6) = %q", got)
	}
	if got := FormatMoney(-3.5); got != "-$3.50" {
		t.Errorf("FormatMoney(-3.5) = %q", got)
	}
	if got := FormatPnL(12); got != "+$12.00" {
		t.Errorf("FormatPnL(12) = %q", got)
	}
	if got := FormatPnL(-6); got != "-$6.00" {
		t.Errorf("FormatPnL(-6) = %q", got)
	}
	if got := FormatPnL(0); got != "$0.00" {
		t.Errorf("FormatPnL(0) = %q", got)
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		18432:    "18,432",
		1234567:  "1,234,567",
		-18432:   "-18,432",
	}
	for in, want := range cases {
		if got := FormatQuantity(in); got != want {
			t.Errorf("FormatQuantity(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatCompactInt(t *testing.T) {
	cases := map[int64]string{
		950:     "950",
		12400:   "12.4K",
		1800000: "1.8M",
	}
	for in, want := range cases {
		if got := FormatCompactInt(in); got != want {
			t.Errorf("FormatCompactInt(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatGreek(t *testing.T) {
	if got := FormatGreek("gamma", 0.042); got != "0.042" {
		t.Errorf("FormatGreek(gamma) = %q", got)
	}
	if got := FormatGreek("delta", 0.62); got != "0.62" {
		t.Errorf("FormatGreek(delta) = %q", got)
	}
}

func TestFormatPercentAndCents(t *testing.T) {
	if got := FormatPercent(54.95); got != "55.0%" {
		t.Errorf("FormatPercent(54.95) = %q", got)
	}
	if got := FormatCents(53); got != "53.00¢" {
		t.Errorf("FormatCents(53) = %q", got)
	}
}
