package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles the engine's Prometheus collectors.
type Metrics struct {
	AdvancesTotal      *prometheus.CounterVec
	RewindsTotal       prometheus.Counter
	SessionsStarted    prometheus.Counter
	RecommendationSize prometheus.Histogram
}

// New creates the collectors. Call Register to attach them to a registry.
func New() *Metrics {
	return &Metrics{
		AdvancesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vine_advances_total",
				Help: "Total advance operations by outcome",
			},
			[]string{"outcome"},
		),
		RewindsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vine_rewinds_total",
				Help: "Total rewind operations",
			},
		),
		SessionsStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "vine_sessions_started_total",
				Help: "Total quiz sessions created",
			},
		),
		RecommendationSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vine_recommendation_size",
				Help:    "Number of products in returned recommendation sets",
				Buckets: prometheus.LinearBuckets(0, 1, 6),
			},
		),
	}
}

// Register attaches all collectors to the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.AdvancesTotal,
		m.RewindsTotal,
		m.SessionsStarted,
		m.RecommendationSize,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Outcome labels for AdvancesTotal.
const (
	OutcomeContinued  = "continued"
	OutcomeTerminated = "terminated"
	OutcomeError      = "error"
)
