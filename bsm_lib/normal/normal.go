// Package normal evaluates the standard normal distribution function, its
// derivatives, and the cumulant used to shift it under a change of measure.
//
// Every function is pure: NaN inputs propagate to NaN outputs and nothing is
// shared between calls.
package normal

import "math"

const (
	// Sqrt2Pi is sqrt(2 pi)
	Sqrt2Pi = 2.50662827463100050240
	// Sqrt2 is sqrt(2)
	Sqrt2 = 1.41421356237309504880
)

// NaN is returned for inputs outside the supported domain.
var NaN = math.NaN()

// CDF returns the n-th derivative of P(X <= x) for a standard normal X.
// n = 0 is the distribution function and n = 1 the density. Higher orders
// need Hermite polynomials and are not supported: they return NaN.
func CDF(x float64, n int) float64 {
	if n == 0 {
		return (1 + math.Erf(x/Sqrt2)) / 2
	}

	phi := math.Exp(-x*x/2) / Sqrt2Pi

	if n == 1 {
		return phi
	}

	// n >= 2 is phi times a Hermite polynomial; not implemented.
	return NaN
}

// ShiftedCDF returns d^nx/dx^nx d^ns/ds^ns P_s(X <= x), where
// P_s(X <= x) = P(X <= x - s) is the share measure.
func ShiftedCDF(x, s float64, nx, ns int) float64 {
	sign := 1.0
	if ns%2 != 0 {
		sign = -1
	}

	return sign * CDF(x-s, nx+ns)
}

// Cumulant returns the n-th derivative of kappa(s) = log E[exp(sX)] = s^2/2.
func Cumulant(s float64, n int) float64 {
	switch n {
	case 0:
		return s * s / 2
	case 1:
		return s
	case 2:
		return 1
	}

	return 0
}
