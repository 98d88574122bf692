// Package metrics instruments registry loads.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Load outcomes.
const (
	OutcomeLoaded   = "loaded"
	OutcomeEmpty    = "empty"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Metrics provides observability for registry loading.
type Metrics struct {
	// Loads by outcome
	Loads *prometheus.CounterVec

	LoadLatency prometheus.Histogram

	// Currencies in the last published registry
	Currencies prometheus.Gauge
}

// New registers the registry metrics with reg. A nil reg uses the default
// Prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		Loads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "moneta_registry_loads_total",
			Help: "Total registry loads by outcome",
		}, []string{"outcome"}), // outcome: "loaded", "empty", "not_found", "failed"

		LoadLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "moneta_registry_load_duration_seconds",
			Help:    "Duration of registry loads including resolution, building and merging",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		Currencies: f.NewGauge(prometheus.GaugeOpts{
			Name: "moneta_registry_currencies",
			Help: "Number of currencies in the last loaded registry",
		}),
	}
}

// ObserveLoad records a load outcome and its duration.
func (m *Metrics) ObserveLoad(outcome string, d time.Duration) {
	if m != nil {
		m.Loads.WithLabelValues(outcome).Inc()
		m.LoadLatency.Observe(d.Seconds())
	}
}

// SetCurrencies records the size of the last loaded registry.
func (m *Metrics) SetCurrencies(n int) {
	if m != nil {
		m.Currencies.Set(float64(n))
	}
}
