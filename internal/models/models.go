package models

import "github.com/jwaldner/bsm/internal/functions"

// FieldValue represents a number with both raw data and formatted display
type FieldValue struct {
	Raw     interface{} `json:"raw"`     // float64, or nil when the kernel returned NaN/Inf
	Display string      `json:"display"` // "7.965567", "NaN"
	Type    string      `json:"type"`    // "number" or "invalid"
	Valid   bool        `json:"valid"`
}

// FunctionListResponse is returned by GET /api/functions
type FunctionListResponse struct {
	Category  string                `json:"category"`
	Count     int                   `json:"count"`
	Functions []*functions.Function `json:"functions"`
}

// EvaluationResponse is returned by POST /api/evaluate/{name}
type EvaluationResponse struct {
	Function string             `json:"function"`
	Args     map[string]float64 `json:"args"`
	Result   FieldValue         `json:"result"`
}

// OptionQuoteResponse is returned by POST /api/option
type OptionQuoteResponse struct {
	OptionType      string     `json:"option_type"`
	Forward         float64    `json:"forward"`
	Strike          float64    `json:"strike"`
	SignedStrike    float64    `json:"signed_strike"`
	TotalVolatility float64    `json:"total_volatility"`
	ExpirationDate  string     `json:"expiration_date,omitempty"`
	Moneyness       FieldValue `json:"moneyness"`
	Value           FieldValue `json:"value"`
	Delta           FieldValue `json:"delta"`
	Timestamp       string     `json:"timestamp"`
}

// ErrorResponse is the body of every non-2xx JSON reply
type ErrorResponse struct {
	Error string `json:"error"`
}
