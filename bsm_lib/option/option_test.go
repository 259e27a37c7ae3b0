package option

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jwaldner/bsm/bsm_lib/normal"
)

// reference Black-76 put with unit discount, written in terms of d1 and d2
func referencePut(f, s, k float64) float64 {
	d1 := (math.Log(f/k) + s*s/2) / s
	d2 := d1 - s
	return k*distuv.UnitNormal.CDF(-d2) - f*distuv.UnitNormal.CDF(-d1)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Put, KindOf(-100))
	assert.Equal(t, Put, KindOf(-1e-300))
	assert.Equal(t, Call, KindOf(0))
	assert.Equal(t, Call, KindOf(math.Copysign(0, -1)))
	assert.Equal(t, Call, KindOf(42))
	assert.Equal(t, "put", Put.String())
	assert.Equal(t, "call", Call.String())
}

func TestMoneyness(t *testing.T) {
	assert.InDelta(t, 0.1, Moneyness(100, 0.2, 100), 1e-15)
	assert.InDelta(t, (math.Log(1.1)+0.125)/0.5, Moneyness(100, 0.5, 110), 1e-15)
}

func TestMoneynessDomain(t *testing.T) {
	tests := []struct {
		name    string
		f, s, k float64
	}{
		{"zero forward", 0, 1, 1},
		{"zero volatility", 1, 0, 1},
		{"zero strike", 1, 1, 0},
		{"negative forward", -1, 1, 1},
		{"negative volatility", 1, -0.2, 1},
		{"negative strike", 1, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, math.IsNaN(Moneyness(tt.f, tt.s, tt.k)))
		})
	}
}

func TestAtTheMoneyPut(t *testing.T) {
	f, s, k := 100.0, 0.2, -100.0

	m := Moneyness(f, s, -k)
	require.InDelta(t, normal.Cumulant(0.2, 0)/0.2, m, 1e-15)

	want := 100*distuv.UnitNormal.CDF(0.1) - 100*distuv.UnitNormal.CDF(0.1-0.2)
	assert.InDelta(t, want, Value(f, s, k), 1e-6)
	assert.InDelta(t, 7.9655674554058, Value(f, s, k), 1e-6)
	assert.InDelta(t, -0.460172162722971, Delta(f, s, k), 1e-9)
	assert.InDelta(t, 0.539827837277029, Delta(f, s, -k), 1e-9)
}

func TestValueMatchesReference(t *testing.T) {
	for _, f := range []float64{50, 95, 100, 130} {
		for _, s := range []float64{0.05, 0.2, 0.8} {
			for _, k := range []float64{80, 100, 120} {
				assert.InDelta(t, referencePut(f, s, k), Value(f, s, -k), 1e-9, "f=%v s=%v k=%v", f, s, k)
			}
		}
	}
}

func TestPutCallParity(t *testing.T) {
	for _, f := range []float64{10, 100, 250} {
		for _, s := range []float64{0.01, 0.3, 1.5} {
			for _, k := range []float64{5, 100, 300} {
				call, put := Value(f, s, k), Value(f, s, -k)
				assert.InDelta(t, f-k, call-put, 1e-9, "f=%v s=%v k=%v", f, s, k)
				assert.InDelta(t, 1.0, Delta(f, s, k)-Delta(f, s, -k), 1e-12, "f=%v s=%v k=%v", f, s, k)
			}
		}
	}
}

func TestValueBounds(t *testing.T) {
	f, s := 100.0, 0.25
	for _, k := range []float64{60, 90, 100, 110, 150} {
		put, call := Value(f, s, -k), Value(f, s, k)
		assert.GreaterOrEqual(t, put, math.Max(k-f, 0)-1e-12)
		assert.GreaterOrEqual(t, call, math.Max(f-k, 0)-1e-12)
		assert.Less(t, put, k)
		assert.Less(t, call, f)

		dp, dc := Delta(f, s, -k), Delta(f, s, k)
		assert.True(t, dp > -1 && dp < 0, "put delta %v", dp)
		assert.True(t, dc > 0 && dc < 1, "call delta %v", dc)
	}
}

func TestDeltaIsForwardSlope(t *testing.T) {
	s, h := 0.3, 1e-4
	for _, k := range []float64{-120, -100, 90, 100} {
		f := 100.0
		fd := (Value(f+h, s, k) - Value(f-h, s, k)) / (2 * h)
		assert.InDelta(t, fd, Delta(f, s, k), 1e-6, "k=%v", k)
	}
}

func TestAtTheMoneyApproximation(t *testing.T) {
	f, s := 100.0, 0.01
	approx := f * s / normal.Sqrt2Pi

	put, call := Value(f, s, -f), Value(f, s, f)
	assert.Greater(t, put, 0.0)
	assert.InEpsilon(t, approx, put, 1e-3)
	assert.InEpsilon(t, approx, call, 1e-3)
}

func TestDomainViolationsReturnNaN(t *testing.T) {
	tests := []struct {
		name    string
		f, s, k float64
	}{
		{"put zero forward", 0, 0.2, -100},
		{"put negative forward", -5, 0.2, -100},
		{"put zero volatility", 100, 0, -100},
		{"call zero forward", 0, 0.2, 100},
		{"call negative volatility", 100, -0.2, 100},
		{"zero strike", 100, 0.2, 0},
		{"nan forward", math.NaN(), 0.2, 100},
		{"nan strike", 100, 0.2, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, math.IsNaN(Value(tt.f, tt.s, tt.k)))
			assert.True(t, math.IsNaN(Delta(tt.f, tt.s, tt.k)))
		})
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	want := Value(100, 0.2, -100)
	done := make(chan float64, 64)
	for i := 0; i < cap(done); i++ {
		go func() { done <- Value(100, 0.2, -100) }()
	}
	for i := 0; i < cap(done); i++ {
		assert.Equal(t, want, <-done)
	}
}
