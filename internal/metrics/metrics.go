package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for AutoIntel
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Ingestion Metrics
	RunlistsIngestedTotal prometheus.Counter
	RowsSkippedTotal      prometheus.Counter
	VehiclesIngestedTotal prometheus.Counter

	// Matching Metrics
	VehiclesMatchedTotal prometheus.CounterVec
	MatchPassDuration    prometheus.Histogram

	// Corpus Metrics
	SalesImportedTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autointel_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "autointel_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "autointel_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		RunlistsIngestedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "autointel_runlists_ingested_total",
				Help: "Total runlist files ingested",
			},
		),
		RowsSkippedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "autointel_rows_skipped_total",
				Help: "Total CSV rows dropped for an unusable VIN",
			},
		),
		VehiclesIngestedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "autointel_vehicles_ingested_total",
				Help: "Total vehicles normalized and stored from runlists",
			},
		),

		VehiclesMatchedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autointel_vehicles_matched_total",
				Help: "Vehicles matched against the historical corpus by strength",
			},
			[]string{"strength"},
		),
		MatchPassDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "autointel_match_pass_duration_seconds",
				Help:    "Duration of a full runlist matching pass",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),

		SalesImportedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "autointel_sales_imported_total",
				Help: "Historical sales rows written by import, by outcome",
			},
			[]string{"outcome"},
		),
	}
}
