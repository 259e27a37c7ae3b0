package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jwaldner/bsm/bsm_lib/option"
	"github.com/jwaldner/bsm/internal/config"
	"github.com/jwaldner/bsm/internal/format"
	"github.com/jwaldner/bsm/internal/functions"
	"github.com/jwaldner/bsm/internal/logger"
	"github.com/jwaldner/bsm/internal/metrics"
	"github.com/jwaldner/bsm/internal/models"
	"github.com/jwaldner/bsm/internal/services"
)

// FunctionsHandler exposes the kernel catalog over HTTP - DUMB HTTP layer only
type FunctionsHandler struct {
	catalog   *functions.Catalog
	requests  *services.RequestService
	metrics   *metrics.Registry
	config    *config.Config
	precision int
}

// NewFunctionsHandler creates a handler. reg may be nil to disable metrics.
func NewFunctionsHandler(catalog *functions.Catalog, cfg *config.Config, reg *metrics.Registry) *FunctionsHandler {
	return &FunctionsHandler{
		catalog:   catalog,
		requests:  services.NewRequestService(cfg.Pricing.DayCountBasis),
		metrics:   reg,
		config:    cfg,
		precision: cfg.Display.Precision,
	}
}

// RegisterRoutes mounts every endpoint on r
func (h *FunctionsHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.HealthHandler).Methods("GET")
	r.HandleFunc("/api/functions", h.ListHandler).Methods("GET")
	r.HandleFunc("/api/evaluate/{name}", h.EvaluateHandler).Methods("POST")
	r.HandleFunc("/api/option", h.OptionHandler).Methods("POST")
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler()).Methods("GET")
	}
}

// HealthHandler reports liveness
func (h *FunctionsHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// ListHandler returns the function catalog
func (h *FunctionsHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	list := h.catalog.List()
	writeJSON(w, http.StatusOK, models.FunctionListResponse{
		Category:  h.config.Display.Category,
		Count:     len(list),
		Functions: list,
	})
}

// EvaluateHandler calls one catalog function with named arguments
func (h *FunctionsHandler) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	fn, err := h.catalog.Lookup(name)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	req, err := h.requests.ParseEvaluateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	result, err := fn.Call(req.Args)
	h.metrics.Observe(fn.Name, result, err, time.Since(start))
	if err != nil {
		logger.Warn.Printf("⚠️ %s rejected: %v", fn.Name, err)
		writeError(w, statusFor(err), err)
		return
	}

	if math.IsNaN(result) {
		logger.Debug.Printf("🐛 %s%v returned NaN", fn.Name, req.Args)
	} else {
		logger.Verbose.Printf("🔍 %s%v = %v", fn.Name, req.Args, result)
	}

	writeJSON(w, http.StatusOK, models.EvaluationResponse{
		Function: fn.Name,
		Args:     req.Args,
		Result:   format.Number(result, h.precision),
	})
}

// OptionHandler values a put or call from an unsigned strike and type
func (h *FunctionsHandler) OptionHandler(w http.ResponseWriter, r *http.Request) {
	in, err := h.requests.ParseOptionRequest(r)
	if err != nil {
		logger.Warn.Printf("⚠️ option request rejected: %v", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	m := option.Moneyness(in.Forward, in.TotalVolatility, in.Strike)
	value := option.Value(in.Forward, in.TotalVolatility, in.SignedStrike)
	delta := option.Delta(in.Forward, in.TotalVolatility, in.SignedStrike)
	elapsed := time.Since(start)

	h.metrics.Observe("BSM.VALUE", value, nil, elapsed)
	h.metrics.Observe("BSM.DELTA", delta, nil, elapsed)

	if math.IsNaN(value) {
		logger.Debug.Printf("🐛 %s f=%v s=%v k=%v outside domain", in.Kind, in.Forward, in.TotalVolatility, in.SignedStrike)
	}

	writeJSON(w, http.StatusOK, models.OptionQuoteResponse{
		OptionType:      in.Kind.String(),
		Forward:         in.Forward,
		Strike:          in.Strike,
		SignedStrike:    in.SignedStrike,
		TotalVolatility: in.TotalVolatility,
		ExpirationDate:  in.ExpirationDate,
		Moneyness:       format.Number(m, h.precision),
		Value:           format.Number(value, h.precision),
		Delta:           format.Number(delta, h.precision),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, functions.ErrUnknownFunction):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error.Printf("❌ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, models.ErrorResponse{Error: err.Error()})
}
