package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nwp_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nwp_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"method", "route"})
	FeedbackSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nwp_feedback_submitted_total",
		Help: "Feedback records persisted",
	})
	FeedbackRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nwp_feedback_rejected_total",
		Help: "Feedback submissions rejected before persistence",
	}, []string{"reason"})
	AssetsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nwp_assets_created_total",
		Help: "Tourism assets persisted by source",
	}, []string{"source"})
	BulkImportSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nwp_bulk_import_skipped_total",
		Help: "Features skipped during GeoJSON bulk import",
	}, []string{"reason"})
	ImageUploadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nwp_image_uploads_total",
		Help: "Image upload attempts by outcome",
	}, []string{"outcome"})
	NotificationFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nwp_notification_failures_total",
		Help: "Operator notifications that failed to send",
	})
	LoginAttemptsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nwp_admin_login_attempts_total",
		Help: "Admin login attempts by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDurationMs,
		FeedbackSubmittedTotal,
		FeedbackRejectedTotal,
		AssetsCreatedTotal,
		BulkImportSkippedTotal,
		ImageUploadsTotal,
		NotificationFailuresTotal,
		LoginAttemptsTotal,
	)
}

// Middleware records request counts and latency keyed by the matched route
// template, so ids in paths do not explode label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		RequestDurationMs.WithLabelValues(c.Request.Method, route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
