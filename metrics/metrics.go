package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus metrics for the HTTP surface.
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight *prometheus.GaugeVec
}

// NewMetrics creates a new metrics instance
func NewMetrics(serviceName string) *Metrics {
	return &Metrics{
		RequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "report_backend",
				Subsystem: serviceName,
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "report_backend",
				Subsystem: serviceName,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "report_backend",
				Subsystem: serviceName,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
			[]string{"method"},
		),
	}
}

// Middleware returns a gin middleware recording count, duration and
// in-flight gauges per route template.
func Middleware(metrics *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method

		metrics.RequestsInFlight.WithLabelValues(method).Inc()
		defer metrics.RequestsInFlight.WithLabelValues(method).Dec()

		start := time.Now()
		c.Next()

		// FullPath is the route template, not the raw URL, so label
		// cardinality stays bounded.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.RequestDuration.
			WithLabelValues(method, route).
			Observe(time.Since(start).Seconds())
		metrics.RequestCounter.
			WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
	}
}

// Handler exposes the default registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
