// Package metrics exposes the dispatcher's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Command outcomes recorded on the commands counter.
const (
	OutcomeApplied = "applied"
	OutcomeDropped = "dropped"
	OutcomeUnknown = "unknown"
	OutcomeError   = "error"
)

// Metrics holds the engine's collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	Commands         *prometheus.CounterVec
	StaleResults     prometheus.Counter
	OptimizeDuration prometheus.Histogram
}

// New creates and registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planora_commands_total",
				Help: "Dispatched commands by kind and outcome",
			},
			[]string{"command", "outcome"},
		),
		StaleResults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planora_stale_results_total",
			Help: "Async results rejected because a later edit superseded them",
		}),
		OptimizeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "planora_optimize_duration_seconds",
			Help: "Latency of route optimization round trips",
		}),
	}
	reg.MustRegister(m.Commands, m.StaleResults, m.OptimizeDuration)
	return m
}

// Command records one dispatched command.
func (m *Metrics) Command(kind, outcome string) {
	if m == nil {
		return
	}
	m.Commands.WithLabelValues(kind, outcome).Inc()
}

// Stale records one rejected async result.
func (m *Metrics) Stale() {
	if m == nil {
		return
	}
	m.StaleResults.Inc()
}

// ObserveOptimize records one optimizer round trip.
func (m *Metrics) ObserveOptimize(seconds float64) {
	if m == nil {
		return
	}
	m.OptimizeDuration.Observe(seconds)
}
