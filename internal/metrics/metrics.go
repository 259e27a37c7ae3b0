package metrics

import (
	"math"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the Prometheus metrics for kernel evaluations
type Registry struct {
	registry *prometheus.Registry

	// Evaluations by function and outcome ("ok", "nan", "error")
	Evaluations *prometheus.CounterVec

	// Evaluation latency by function
	Duration *prometheus.HistogramVec
}

// NewRegistry creates a registry with its own collector set so that several
// servers (and tests) can coexist in one process.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bsm_evaluations_total",
				Help: "Kernel function evaluations by function and outcome",
			},
			[]string{"function", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bsm_evaluation_duration_seconds",
				Help:    "Time spent evaluating a kernel function, including argument binding",
				Buckets: []float64{1e-7, 5e-7, 1e-6, 5e-6, 1e-5, 5e-5, 1e-4, 1e-3},
			},
			[]string{"function"},
		),
	}

	r.registry.MustRegister(r.Evaluations, r.Duration)
	return r
}

// Observe records one evaluation. A nil registry is a no-op.
func (r *Registry) Observe(function string, result float64, err error, elapsed time.Duration) {
	if r == nil {
		return
	}

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case math.IsNaN(result):
		outcome = "nan"
	}

	r.Evaluations.WithLabelValues(function, outcome).Inc()
	r.Duration.WithLabelValues(function).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
