package utils

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// NextOptionsExpiration returns the next third Friday for options expiration
// This implements the standard options expiration business logic:
// - Third Friday of current month if we haven't reached the expiration week yet
// - Third Friday of next month if we're in or past the expiration week
func NextOptionsExpiration(today time.Time) time.Time {
	thirdFriday := thirdFridayOf(today.Year(), today.Month(), today.Location())

	// If current day is in the week of 3rd Friday or past it, use next month's 3rd Friday
	weekStart := thirdFriday.AddDate(0, 0, -7)

	if today.After(weekStart) || today.Equal(weekStart) {
		next := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return thirdFridayOf(next.Year(), next.Month(), today.Location())
	}

	return thirdFriday
}

func thirdFridayOf(year int, month time.Month, loc *time.Location) time.Time {
	firstFriday := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	for firstFriday.Weekday() != time.Friday {
		firstFriday = firstFriday.AddDate(0, 0, 1)
	}
	return firstFriday.AddDate(0, 0, 14)
}

// YearFraction is the number of calendar days from "from" to "to" divided by basis.
func YearFraction(from, to time.Time, basis float64) float64 {
	days := to.Sub(from).Hours() / 24
	return days / basis
}

// TotalVolatility converts annual volatility to sigma * sqrt(t) with t measured
// from "from" to the YYYY-MM-DD expiration date.
func TotalVolatility(sigma float64, from time.Time, expirationDate string, basis float64) (float64, error) {
	exp, err := time.ParseInLocation(DateLayout, expirationDate, from.Location())
	if err != nil {
		return 0, fmt.Errorf("invalid expiration date format: %w", err)
	}
	if basis <= 0 {
		return 0, fmt.Errorf("day count basis must be positive, got %v", basis)
	}

	t := YearFraction(from, exp, basis)
	if t <= 0 {
		return 0, fmt.Errorf("expiration %s is not after %s", expirationDate, from.Format(DateLayout))
	}

	return sigma * math.Sqrt(t), nil
}
