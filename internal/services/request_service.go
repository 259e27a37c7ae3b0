package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/jwaldner/bsm/bsm_lib/option"
	"github.com/jwaldner/bsm/internal/dto"
	"github.com/jwaldner/bsm/internal/utils"
)

// ErrBadRequest marks every client-side parsing or validation failure
var ErrBadRequest = errors.New("bad request")

// OptionInputs are the kernel arguments resolved from an OptionRequest
type OptionInputs struct {
	Kind            option.Kind
	Forward         float64
	Strike          float64 // unsigned
	SignedStrike    float64 // negative for puts
	TotalVolatility float64
	ExpirationDate  string // set when TotalVolatility was derived from volatility
}

// RequestService handles HTTP request parsing
type RequestService struct {
	dayCountBasis float64
	now           func() time.Time
}

// NewRequestService creates a new request service
func NewRequestService(dayCountBasis float64) *RequestService {
	return &RequestService{
		dayCountBasis: dayCountBasis,
		now:           time.Now,
	}
}

// ParseEvaluateRequest decodes the named arguments of a catalog call
func (s *RequestService) ParseEvaluateRequest(r *http.Request) (*dto.EvaluateRequest, error) {
	var req dto.EvaluateRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	if req.Args == nil {
		req.Args = map[string]float64{}
	}
	return &req, nil
}

// ParseOptionRequest decodes and resolves an option valuation request.
// Out-of-domain numbers (for example a negative forward) are passed through:
// the kernel answers them with NaN.
func (s *RequestService) ParseOptionRequest(r *http.Request) (*OptionInputs, error) {
	var req dto.OptionRequest
	if err := decode(r, &req); err != nil {
		return nil, err
	}
	return s.ResolveOption(req)
}

// ResolveOption turns a request into signed kernel inputs
func (s *RequestService) ResolveOption(req dto.OptionRequest) (*OptionInputs, error) {
	in := &OptionInputs{
		Forward: req.Forward,
		Strike:  math.Abs(req.Strike),
	}

	switch strings.ToLower(strings.TrimSpace(req.OptionType)) {
	case "put", "p", "puts":
		in.SignedStrike = -in.Strike
	case "call", "c", "calls":
		in.SignedStrike = in.Strike
	default:
		return nil, fmt.Errorf("%w: type must be put or call, got %q", ErrBadRequest, req.OptionType)
	}

	// A zero strike has no sign; the kernel treats it as a call
	if in.SignedStrike == 0 {
		in.SignedStrike = 0
	}
	in.Kind = option.KindOf(in.SignedStrike)

	switch {
	case req.TotalVolatility != nil:
		in.TotalVolatility = *req.TotalVolatility
	case req.Volatility != nil:
		today := s.today()
		expiration := req.ExpirationDate
		if expiration == "" {
			expiration = utils.NextOptionsExpiration(today).Format(utils.DateLayout)
		}
		tv, err := utils.TotalVolatility(*req.Volatility, today, expiration, s.dayCountBasis)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}
		in.TotalVolatility = tv
		in.ExpirationDate = expiration
	default:
		return nil, fmt.Errorf("%w: total_volatility or volatility is required", ErrBadRequest)
	}

	return in, nil
}

func (s *RequestService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func decode(r *http.Request, v interface{}) error {
	if r.Method != http.MethodPost {
		return fmt.Errorf("%w: method not allowed: %s", ErrBadRequest, r.Method)
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to decode request: %v", ErrBadRequest, err)
	}
	return nil
}
