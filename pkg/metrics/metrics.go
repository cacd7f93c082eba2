package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generation call latency in milliseconds
	GenerationLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_generation_latency_ms",
			Help:    "Text generation call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"model", "status"},
	)

	// circuit breaker transitions
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "to"},
	)

	// slow database queries
	SlowQueryCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "db_slow_query_total",
			Help: "Total number of queries above the slow threshold",
		},
	)

	SlowQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "db_slow_query_duration_seconds",
			Help:    "Duration of slow queries in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 8), // 100ms to ~12s
		},
	)

	// HTTP request latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// processed emails by outcome
	EmailProcessedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_processed_count",
			Help: "Total number of emails processed",
		},
		[]string{"status"}, // status: success, degraded, failed
	)

	EmailCategoryCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_category_count",
			Help: "Categories assigned by the processor",
		},
		[]string{"category"},
	)

	ActionItemsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "action_items_extracted_total",
			Help: "Total number of action items extracted from emails",
		},
	)

	DraftGeneratedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "draft_generated_count",
			Help: "Total number of generated reply drafts",
		},
		[]string{"status"},
	)

	OutboxPublishedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbox_published_count",
			Help: "Outbox events handled by the dispatcher",
		},
		[]string{"event_type", "status"},
	)
)

// RecordGenerationLatency observes one generation call.
func RecordGenerationLatency(model, status string, duration time.Duration) {
	GenerationLatency.WithLabelValues(model, status).Observe(float64(duration.Milliseconds()))
}

func IncrementCircuitBreakerTransition(name, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, to).Inc()
}

// IncrementSlowQuery counts a slow query. The SQL text is logged, not used as a label.
func IncrementSlowQuery(_ string, duration time.Duration) {
	SlowQueryCount.Inc()
	SlowQueryDuration.Observe(duration.Seconds())
}

// RecordHTTPRequestDuration observes one HTTP request.
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementEmailProcessed counts one processed email.
func IncrementEmailProcessed(status string) {
	EmailProcessedCount.WithLabelValues(status).Inc()
}

func IncrementEmailCategory(category string) {
	EmailCategoryCount.WithLabelValues(category).Inc()
}

func AddActionItems(n int) {
	if n > 0 {
		ActionItemsExtracted.Add(float64(n))
	}
}

func IncrementDraftGenerated(status string) {
	DraftGeneratedCount.WithLabelValues(status).Inc()
}

func IncrementOutboxPublished(eventType, status string) {
	OutboxPublishedCount.WithLabelValues(eventType, status).Inc()
}
