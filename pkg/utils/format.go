// Package utils provides shared formatting helpers.
package utils

import (
	"fmt"
	"math"
)

// FormatCents formats a cent-denominated value, e.g. "53.00c".
func FormatCents(v float64) string {
	return fmt.Sprintf("%.2f¢", v)
}

// FormatMoney formats a monetary value with sign, e.g. "+$6.00".
func FormatMoney(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatPnL formats a P&L value with an explicit plus sign for gains.
func FormatPnL(v float64) string {
	if v > 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatPercent formats a percentage with one decimal, e.g. "55.0%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatQuantity formats an integer with thousands separators.
func FormatQuantity(qty int64) string {
	neg := qty < 0
	if neg {
		qty = -qty
	}
	s := fmt.Sprintf("%d", qty)
	n := len(s)
	if n > 3 {
		out := s[n-3:]
		s = s[:n-3]
		for len(s) > 0 {
			if len(s) >= 3 {
				out = s[len(s)-3:] + "," + out
				s = s[:len(s)-3]
			} else {
				out = s + "," + out
				s = ""
			}
		}
		s = out
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatGreek formats a Greek at display precision; gamma uses 3 decimals.
func FormatGreek(name string, v float64) string {
	if name == "gamma" {
		return fmt.Sprintf("%.3f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

// FormatCompactInt formats a count in compact form (e.g. "12.4K").
func FormatCompactInt(v int64) string {
	f := float64(v)
	switch {
	case math.Abs(f) >= 1e6:
		return fmt.Sprintf("%.1fM", f/1e6)
	case math.Abs(f) >= 1e3:
		return fmt.Sprintf("%.1fK", f/1e3)
	default:
		return fmt.Sprintf("%d", v)
	}
}
