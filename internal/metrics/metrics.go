// Package metrics exposes the Prometheus collectors of the picking service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "picking"

// UnmatchedRoute labels requests that matched no route, keeping the label
// set bounded.
const UnmatchedRoute = "unmatched"

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds by route.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests being served.",
		},
	)

	// BarcodeScansTotal counts scans by classified event and outcome.
	BarcodeScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "scans_total",
			Help:      "Processed barcode scans by event and outcome.",
		},
		[]string{"event", "outcome"},
	)

	BarcodeSaveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "save_duration_seconds",
			Help:      "Save round-trips to the backing store.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"status"},
	)

	BarcodeSaveCommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "save_commands_total",
			Help:      "Line commands sent to the backing store by kind.",
		},
		[]string{"kind"},
	)

	EntityFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "entity_fetches_total",
			Help:      "Backend fetches issued by the entity cache on a miss.",
		},
		[]string{"kind", "result"},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "sessions_active",
			Help:      "Open scanning sessions.",
		},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "session_cache_operations_total",
			Help:      "Session cache operations by result.",
		},
		[]string{"operation", "result"},
	)

	// AuditLogEntriesTotal counts async log entries: written, dropped or error.
	AuditLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "audit_log_entries_total",
			Help:      "Log entries handed to the async logger by result.",
		},
		[]string{"result"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware records the duration and status of every request
// under its route template.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		HTTPRequestsInFlight.Inc()
		start := time.Now()

		c.Next()

		HTTPRequestsInFlight.Dec()
		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
		}
		labels := []string{c.Request.Method, route, strconv.Itoa(c.Writer.Status())}
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(labels...).Inc()
	}
}

// RecordScan records a processed scan.
func RecordScan(event, outcome string) {
	BarcodeScansTotal.WithLabelValues(event, outcome).Inc()
}

// RecordSave records a save round-trip.
func RecordSave(duration time.Duration, status string) {
	BarcodeSaveDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordSaveCommands adds n commands of the given kind.
func RecordSaveCommands(kind string, n int) {
	if n > 0 {
		BarcodeSaveCommandsTotal.WithLabelValues(kind).Add(float64(n))
	}
}

func RecordEntityFetch(kind, result string) {
	EntityFetchesTotal.WithLabelValues(kind, result).Inc()
}

func SetSessionsActive(n int) {
	SessionsActive.Set(float64(n))
}

func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// SetCircuitBreakerState publishes the numeric state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAuditLogs adds n async log entries with the given result.
func RecordAuditLogs(result string, n int) {
	AuditLogEntriesTotal.WithLabelValues(result).Add(float64(n))
}
