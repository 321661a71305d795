package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixelgram_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pixelgram_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// StorageOperations counts object storage calls by operation and outcome.
	StorageOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixelgram_storage_operations_total",
		Help: "Total object storage operations by operation and status",
	}, []string{"operation", "status"})

	// CaptionRequests counts caption generation calls by outcome.
	CaptionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pixelgram_caption_requests_total",
		Help: "Total caption generation requests by status",
	}, []string{"status"})

	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pixelgram_posts_created_total",
		Help: "Total number of posts created",
	})
)

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		ObserveQuery(operation, table, start)
	}
}

// RecordStorageOp increments the storage operation counter.
func RecordStorageOp(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StorageOperations.WithLabelValues(operation, status).Inc()
}

// RecordCaptionRequest increments the caption request counter.
func RecordCaptionRequest(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	CaptionRequests.WithLabelValues(status).Inc()
}
