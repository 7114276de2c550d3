package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the converter.
type Metrics struct {
	ConversionsTotal *prometheus.CounterVec // labels: direction={forward,reverse}, outcome={success,error}
	ParseFailures    *prometheus.CounterVec // labels: kind={invalid_format,out_of_range,...}

	// Bulk mode metrics.
	BulkLines    prometheus.Histogram
	BulkDuration prometheus.Histogram

	// Transform API metrics.
	TransformRequests    *prometheus.CounterVec   // labels: direction, outcome={success,remote_error,network_error,invalid_response}
	TransformCache       *prometheus.CounterVec   // labels: direction, result={hit,miss}
	TransformAPIDuration *prometheus.HistogramVec // labels: direction
}

// NewMetrics creates and registers all converter metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkgrid",
			Name:      "conversions_total",
			Help:      "Conversion requests by direction and outcome.",
		}, []string{"direction", "outcome"}),
		ParseFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkgrid",
			Name:      "parse_failures_total",
			Help:      "Input parse failures by error kind.",
		}, []string{"kind"}),
		BulkLines: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hkgrid",
			Name:      "bulk_lines",
			Help:      "Number of input lines per bulk conversion request.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		BulkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hkgrid",
			Name:      "bulk_duration_seconds",
			Help:      "Duration of a complete bulk conversion request.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		TransformRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkgrid",
			Name:      "transform_requests_total",
			Help:      "Transform API requests by direction and outcome.",
		}, []string{"direction", "outcome"}),
		TransformCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hkgrid",
			Name:      "transform_cache_total",
			Help:      "Transform response cache lookups by direction and result.",
		}, []string{"direction", "result"}),
		TransformAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hkgrid",
			Name:      "transform_api_duration_seconds",
			Help:      "Transform API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"direction"}),
	}

	prometheus.MustRegister(
		m.ConversionsTotal,
		m.ParseFailures,
		m.BulkLines,
		m.BulkDuration,
		m.TransformRequests,
		m.TransformCache,
		m.TransformAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ConversionsTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hkgrid", Name: "conversions_total"}, []string{"direction", "outcome"}),
		ParseFailures:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hkgrid", Name: "parse_failures_total"}, []string{"kind"}),
		BulkLines:            prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hkgrid", Name: "bulk_lines"}),
		BulkDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "hkgrid", Name: "bulk_duration_seconds"}),
		TransformRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hkgrid", Name: "transform_requests_total"}, []string{"direction", "outcome"}),
		TransformCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "hkgrid", Name: "transform_cache_total"}, []string{"direction", "result"}),
		TransformAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "hkgrid", Name: "transform_api_duration_seconds"}, []string{"direction"}),
	}
}
