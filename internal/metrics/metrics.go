package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Opsboard
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Storage Metrics
	TableScanDuration prometheus.HistogramVec
	RowsSkippedTotal  prometheus.CounterVec
	StorageRetries    prometheus.CounterVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Business Metrics
	IngestRowsTotal     prometheus.CounterVec
	ReportsServedTotal  prometheus.CounterVec
	ArrivalMatchesTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "opsboard_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "opsboard_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Storage Metrics
		TableScanDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "opsboard_table_scan_duration_seconds",
				Help:    "Blob table scan time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"table"},
		),
		RowsSkippedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_rows_skipped_total",
				Help: "Total malformed payloads skipped during normalization, by table",
			},
			[]string{"table"},
		),
		StorageRetries: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_storage_retries_total",
				Help: "Total transient storage failures that triggered a retry",
			},
			[]string{"operation"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		IngestRowsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_ingest_rows_total",
				Help: "Total rows written by ingestion, by target table",
			},
			[]string{"table"},
		),
		ReportsServedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_reports_served_total",
				Help: "Total report responses served, by report and cache outcome",
			},
			[]string{"report", "outcome"},
		),
		ArrivalMatchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opsboard_arrival_matches_total",
				Help: "Total order-arrival matches, by pass",
			},
			[]string{"pass"},
		),
	}
}
