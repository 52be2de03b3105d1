// Package observability holds metrics and tracing instrumentation.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musicmarket_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "musicmarket_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// MediaOperations counts object-store calls by operation and outcome.
	MediaOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musicmarket_media_operations_total",
		Help: "Total object storage operations by operation and outcome",
	}, []string{"operation", "outcome"})

	// ListingSearches counts listing searches by sort key.
	ListingSearches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musicmarket_listing_searches_total",
		Help: "Total listing search requests by sort key",
	}, []string{"sort"})
)

// ObserveQuery records the latency of a database query since start.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordMediaOp increments the media operation counter. outcome is "ok" or "error".
func RecordMediaOp(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MediaOperations.WithLabelValues(operation, outcome).Inc()
}
