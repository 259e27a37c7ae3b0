// Package option computes Black-Scholes/Merton forward option values and
// deltas. The strike is signed: negative for a put, non-negative for a call.
// Invalid inputs yield NaN, never an error.
package option

import (
	"math"

	"github.com/jwaldner/bsm/bsm_lib/normal"
)

// Kind is the option type carried by the sign of the strike.
type Kind int

const (
	Put Kind = iota
	Call
)

// KindOf returns Put for k < 0 and Call otherwise, including k = 0.
func KindOf(k float64) Kind {
	if k < 0 {
		return Put
	}
	return Call
}

// String returns "put" or "call".
func (t Kind) String() string {
	if t == Put {
		return "put"
	}
	return "call"
}

// Moneyness returns (log(k/f) + kappa(s))/s for forward f, total volatility s
// and unsigned strike k. It is NaN unless f, s and k are all positive.
func Moneyness(f, s, k float64) float64 {
	if f <= 0 || s <= 0 || k <= 0 {
		return normal.NaN
	}

	return (math.Log(k/f) + normal.Cumulant(s, 0)) / s
}

// Value returns the put (k < 0) or call (k >= 0) forward value.
func Value(f, s, k float64) float64 {
	if KindOf(k) == Put {
		return putValue(f, s, -k)
	}

	// c = p + f - k
	return putValue(f, s, k) + f - k
}

// Delta returns dValue/df for a put (k < 0) or call (k >= 0).
func Delta(f, s, k float64) float64 {
	if KindOf(k) == Put {
		return putDelta(f, s, -k)
	}

	// dc/df = dp/df + 1
	return putDelta(f, s, k) + 1
}

// putValue takes the unsigned strike k.
func putValue(f, s, k float64) float64 {
	m := Moneyness(f, s, k)

	return k*normal.CDF(m, 0) - f*normal.ShiftedCDF(m, s, 0, 0)
}

func putDelta(f, s, k float64) float64 {
	m := Moneyness(f, s, k)

	return -normal.ShiftedCDF(m, s, 0, 0)
}
