// Package telemetry exports cascade run statistics as Prometheus metrics.
// A Registry satisfies sim.RunObserver; attach it to a Simulator and every
// completed run is recorded.
package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/penserai/tesseraidb-examples-sub001/sim"
)

// Run outcomes recorded in cascade_runs_total.
const (
	OutcomeContained = "contained" // only the trigger failed
	OutcomeCascaded  = "cascaded"
	OutcomeTruncated = "truncated" // stopped at the event cap
)

// Registry holds the cascade metrics on a private Prometheus registry.
type Registry struct {
	RunsTotal            *prometheus.CounterVec
	EventsProcessedTotal prometheus.Counter
	ComponentsAffected   prometheus.Histogram
	RecoveryHours        prometheus.Histogram
	BusinessImpact       prometheus.Histogram
	LastRunAffected      prometheus.Gauge

	registry *prometheus.Registry
}

// NewRegistry creates a Registry with every metric registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	factory := promauto.With(r.registry)

	r.RunsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cascade_runs_total",
			Help: "Total number of cascade simulations by outcome",
		},
		[]string{"outcome"},
	)
	r.EventsProcessedTotal = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "cascade_events_processed_total",
			Help: "Total number of propagation events popped across all runs",
		},
	)
	r.ComponentsAffected = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cascade_components_affected",
			Help:    "Components affected per run, trigger included",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 1000},
		},
	)
	r.RecoveryHours = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cascade_recovery_hours",
			Help:    "Estimated recovery time per run in hours",
			Buckets: []float64{1, 2, 4, 8, 12, 24, 48, 72},
		},
	)
	r.BusinessImpact = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cascade_business_impact",
			Help:    "Total business impact per run",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		},
	)
	r.LastRunAffected = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "cascade_last_run_components_affected",
			Help: "Components affected by the most recently observed run",
		},
	)
	return r
}

// ObserveRun records one completed run. Safe for concurrent use.
func (r *Registry) ObserveRun(run *sim.CascadeRun) {
	r.RunsTotal.WithLabelValues(Outcome(run)).Inc()
	r.EventsProcessedTotal.Add(float64(run.EventsProcessed))
	r.ComponentsAffected.Observe(float64(run.TotalAffected))
	r.RecoveryHours.Observe(run.EstimatedRecoveryHours)
	r.BusinessImpact.Observe(run.TotalBusinessImpact)
	r.LastRunAffected.Set(float64(run.TotalAffected))
}

// Outcome classifies a run for the outcome label.
func Outcome(run *sim.CascadeRun) string {
	switch {
	case run.Truncated:
		return OutcomeTruncated
	case run.TotalAffected > 1:
		return OutcomeCascaded
	default:
		return OutcomeContained
	}
}

// Gatherer exposes the underlying registry, e.g. for promhttp.HandlerFor.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path in the text exposition format
// read by node_exporter's textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}

var _ sim.RunObserver = (*Registry)(nil)
