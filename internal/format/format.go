package format

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jwaldner/bsm/internal/models"
)

// Number renders a kernel result rounded half away from zero to places
// decimals. NaN and infinities come back as invalid fields with no raw value,
// since neither JSON nor decimal can carry them.
func Number(v float64, places int) models.FieldValue {
	switch {
	case math.IsNaN(v):
		return invalid("NaN")
	case math.IsInf(v, 1):
		return invalid("+Inf")
	case math.IsInf(v, -1):
		return invalid("-Inf")
	}

	if places < 0 {
		places = 0
	}
	d := decimal.NewFromFloat(v).Round(int32(places))

	return models.FieldValue{
		Raw:     v,
		Display: d.StringFixed(int32(places)),
		Type:    "number",
		Valid:   true,
	}
}

// String is Number without the envelope, for CLI output.
func String(v float64, places int) string {
	return Number(v, places).Display
}

func invalid(display string) models.FieldValue {
	return models.FieldValue{
		Raw:     nil,
		Display: display,
		Type:    "invalid",
		Valid:   false,
	}
}
