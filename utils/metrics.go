package utils

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// CleanupCycles counts offer cleanup cycles by result (ok, failed)
	CleanupCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sodfaa_offer_cleanup_cycles_total",
			Help: "Number of expired-offer cleanup cycles",
		},
		[]string{"result"},
	)

	// OffersExpiredDeleted counts expired offers removed, by who removed them
	OffersExpiredDeleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sodfaa_offers_expired_deleted_total",
			Help: "Number of expired offers deleted",
		},
		[]string{"source"},
	)

	// OfferDeleteFailures counts failed background offer deletes
	OfferDeleteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sodfaa_offer_delete_failures_total",
			Help: "Number of background offer deletes that failed",
		},
		[]string{"source"},
	)
)

// MetricsMiddleware records request count and latency per route
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestCounter.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDurationHistogram.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// MetricsHandler exposes the Prometheus registry
func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
