package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_http_requests_total",
			Help: "Total number of cart API requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_http_request_duration_seconds",
			Help:    "Duration of cart API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	MergesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_merges_total",
			Help: "Local-to-remote cart merge attempts by outcome",
		},
		[]string{"outcome"},
	)

	MergeItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_merge_items_total",
			Help: "Items sent to the remote cart during merges by outcome",
		},
		[]string{"outcome"},
	)

	RemoteCallDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_remote_call_duration_seconds",
			Help:    "Latency of remote cart store calls",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	CouponOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_coupon_outcomes_total",
			Help: "Coupon evaluations by outcome (applied or ineligibility reason)",
		},
		[]string{"outcome"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_active_sessions",
			Help: "Cart sessions currently held in memory",
		},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		MergesTotal,
		MergeItemsTotal,
		RemoteCallDurationSeconds,
		CouponOutcomesTotal,
		ActiveSessions,
	)
}

func ObserveHTTPRequest(method, path, status string, startedAt time.Time) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(method, path, status).Observe(time.Since(startedAt).Seconds())
}

func ObserveRemoteCall(op string, err error, startedAt time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RemoteCallDurationSeconds.WithLabelValues(op, outcome).Observe(time.Since(startedAt).Seconds())
}
