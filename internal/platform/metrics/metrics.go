package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the identifier API.
type Metrics struct {
	// Validation outcomes by identifier kind and result code.
	ValidationOutcome *prometheus.CounterVec

	// Generated identifiers by kind (generate vs random).
	Generated *prometheus.CounterVec

	// Directory lookup cache behaviour.
	DirectoryCacheHits   *prometheus.CounterVec
	DirectoryCacheMisses *prometheus.CounterVec

	// HTTP request latency by route and status.
	RequestLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		ValidationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bankident_validation_outcomes_total",
			Help: "Total validation outcomes by identifier kind and result code",
		}, []string{"kind", "outcome"}), // kind: "iban", "bic"

		Generated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bankident_generated_total",
			Help: "Total identifiers produced by mode",
		}, []string{"mode"}), // mode: "generate", "random"

		DirectoryCacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bankident_directory_cache_hits_total",
			Help: "Bank directory cache hits by lookup type",
		}, []string{"lookup"}),

		DirectoryCacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bankident_directory_cache_misses_total",
			Help: "Bank directory cache misses by lookup type",
		}, []string{"lookup"}),

		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bankident_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "status"}),
	}
}

// RecordValidation records one validation outcome. outcome is "valid" or the
// failure code.
func (m *Metrics) RecordValidation(kind, outcome string) {
	if m != nil {
		m.ValidationOutcome.WithLabelValues(kind, outcome).Inc()
	}
}

// RecordGenerated records one produced identifier.
func (m *Metrics) RecordGenerated(mode string) {
	if m != nil {
		m.Generated.WithLabelValues(mode).Inc()
	}
}

// RecordCacheHit records a directory cache hit.
func (m *Metrics) RecordCacheHit(lookup string) {
	if m != nil {
		m.DirectoryCacheHits.WithLabelValues(lookup).Inc()
	}
}

// RecordCacheMiss records a directory cache miss.
func (m *Metrics) RecordCacheMiss(lookup string) {
	if m != nil {
		m.DirectoryCacheMisses.WithLabelValues(lookup).Inc()
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(route, status string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}
