package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Narrative generator metrics
	narrativeRequestsTotal  *prometheus.CounterVec
	narrativeRequestSeconds *prometheus.HistogramVec
)

// MetricsMiddleware collects HTTP request metrics for the /metrics endpoint.
//
// Collected per request: count by method/path/status, latency histogram,
// and an in-flight gauge. The /metrics path itself is skipped.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}

			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			err := next(c)

			method := c.Request().Method
			path := c.Path()
			status := strconv.Itoa(c.Response().Status)

			httpRequestsTotal.WithLabelValues(method, path, status).Inc()
			httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

var initMetricsOnce sync.Once

// InitMetrics registers all Prometheus collectors. Safe to call more than
// once; registration happens on the first call only.
func InitMetrics() {
	initMetricsOnce.Do(registerMetrics)
}

func registerMetrics() {
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetyhub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safetyhub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "safetyhub_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	narrativeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safetyhub_narrative_requests_total",
			Help: "Total number of narrative generator calls",
		},
		[]string{"kind", "status"},
	)

	narrativeRequestSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "safetyhub_narrative_request_duration_seconds",
			Help:    "Narrative generator call duration in seconds",
			Buckets: []float64{0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		},
		[]string{"kind"},
	)
}

// RecordNarrativeMetrics records one narrative generator call. The kind is
// "risk_assessment" or "weekly_summary". Failed calls are counted but the
// caller still serves a placeholder, so a failure here never implies a
// failed HTTP request.
func RecordNarrativeMetrics(kind string, duration time.Duration, err error) {
	InitMetrics()
	status := "success"
	if err != nil {
		status = "failed"
	}
	narrativeRequestsTotal.WithLabelValues(kind, status).Inc()
	narrativeRequestSeconds.WithLabelValues(kind).Observe(duration.Seconds())
}
