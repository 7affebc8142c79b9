// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradehub_api_requests_total",
			Help: "Total number of backend API requests",
		},
		[]string{"resource", "verb", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gradehub_api_request_duration_seconds",
			Help:    "Backend API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "verb"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gradehub_http_request_duration_seconds",
			Help:    "Duration of requests served by gradehub in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	ScreenLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradehub_screen_loads_total",
			Help: "Screen loads by outcome (ok, degraded, error)",
		},
		[]string{"screen", "outcome"},
	)

	FormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gradehub_form_submissions_total",
			Help: "Form submissions by outcome (success, invalid, rejected, busy)",
		},
		[]string{"form", "outcome"},
	)

	AverageScore = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gradehub_dashboard_average_score",
			Help: "Mean grade score from the latest dashboard snapshot",
		},
	)

	GradeScoreHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gradehub_grade_score",
			Help:    "Distribution of submitted grade scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"module"},
	)
)
