// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dygs_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dygs_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ApplicationsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dygs_applications_submitted_total",
			Help: "Total number of application submissions by outcome",
		},
		[]string{"backend", "status"},
	)

	ResumesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dygs_resumes_received_total",
			Help: "Total number of resume uploads by outcome",
		},
		[]string{"status"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dygs_notifications_total",
			Help: "Total number of staff notifications by channel and outcome",
		},
		[]string{"channel", "status"},
	)

	NotificationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dygs_notifications_in_flight",
			Help: "Number of notifications currently being delivered",
		},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dygs_rate_limited_total",
			Help: "Total number of submissions rejected by the rate limiter",
		},
	)
)
