package dto

// EvaluateRequest is the body of POST /api/evaluate/{name}
type EvaluateRequest struct {
	Args map[string]float64 `json:"args"`
}

// OptionRequest represents an option valuation request. Either
// TotalVolatility or Volatility must be set; ExpirationDate defaults to the
// next monthly options expiration.
type OptionRequest struct {
	Forward         float64  `json:"forward"`
	Strike          float64  `json:"strike"`
	OptionType      string   `json:"type"` // "put" or "call"
	TotalVolatility *float64 `json:"total_volatility,omitempty"`
	Volatility      *float64 `json:"volatility,omitempty"`
	ExpirationDate  string   `json:"expiration_date,omitempty"`
}
