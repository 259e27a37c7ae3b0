package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextOptionsExpiration(t *testing.T) {
	tests := []struct {
		today string
		want  string
	}{
		{"2026-10-01", "2026-10-16"},
		{"2026-10-08", "2026-10-16"},
		{"2026-10-09", "2026-11-20"}, // expiration week starts
		{"2026-10-19", "2026-11-20"},
		{"2026-12-20", "2027-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.today, func(t *testing.T) {
			assert.Equal(t, tt.want, NextOptionsExpiration(day(tt.today)).Format(DateLayout))
		})
	}
}

func TestYearFraction(t *testing.T) {
	assert.InDelta(t, 1.0, YearFraction(day("2026-01-01"), day("2027-01-01"), 365), 1e-12)
	assert.InDelta(t, 30.0/365, YearFraction(day("2026-10-19"), day("2026-11-18"), 365), 1e-12)
	assert.InDelta(t, -1.0/252, YearFraction(day("2026-10-19"), day("2026-10-18"), 252), 1e-12)
}

func TestTotalVolatility(t *testing.T) {
	s, err := TotalVolatility(0.2, day("2026-01-01"), "2027-01-01", 365)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, s, 1e-12)

	s, err = TotalVolatility(0.4, day("2026-10-19"), "2027-01-18", 365)
	require.NoError(t, err)
	assert.InDelta(t, 0.4*math.Sqrt(91.0/365), s, 1e-12)
}

func TestTotalVolatilityErrors(t *testing.T) {
	_, err := TotalVolatility(0.2, day("2026-10-19"), "10/19/2027", 365)
	assert.ErrorContains(t, err, "invalid expiration date")

	_, err = TotalVolatility(0.2, day("2026-10-19"), "2026-10-19", 365)
	assert.ErrorContains(t, err, "not after")

	_, err = TotalVolatility(0.2, day("2026-10-19"), "2026-12-19", 0)
	assert.Error(t, err)
}
