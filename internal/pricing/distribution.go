package pricing

import "math"

// Abramowitz & Stegun 26.2.17 coefficients for the normal CDF.
// Absolute error < 7.5e-8.
const (
	invSqrt2Pi = 0.3989422804014327

	asP  = 0.2316419
	asB1 = 0.319381530
	asB2 = -0.356563782
	asB3 = 1.781477937
	asB4 = -1.821255978
	asB5 = 1.330274429
)

// NormPDF returns the standard normal probability density at x.
func NormPDF(x float64) float64 {
	return invSqrt2Pi * math.Exp(-0.5*x*x)
}

// NormCDF returns the standard normal cumulative distribution at x using
// the Abramowitz-Stegun rational approximation. NormCDF(0) is exactly 0.5
// and NormCDF(-x) == 1 - NormCDF(x) for all x.
func NormCDF(x float64) float64 {
	if x == 0 {
		return 0.5
	}
	if x < 0 {
		return 1 - NormCDF(-x)
	}
	t := 1 / (1 + asP*x)
	poly := t * (asB1 + t*(asB2+t*(asB3+t*(asB4+t*asB5))))
	return 1 - NormPDF(x)*poly
}
