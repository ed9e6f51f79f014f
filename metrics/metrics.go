// Package metrics provides Prometheus metrics for blog-cms.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogcms",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blogcms",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// GateDecisionsTotal counts access gate outcomes.
	GateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogcms",
			Name:      "gate_decisions_total",
			Help:      "Access gate decisions by outcome",
		},
		[]string{"decision"},
	)

	// LoginAttemptsTotal counts login attempts by outcome.
	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogcms",
			Name:      "login_attempts_total",
			Help:      "Login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// Gate decision labels.
const (
	DecisionPublic       = "public"
	DecisionAllowed      = "allowed"
	DecisionTokenMissing = "token_missing"
	DecisionTokenInvalid = "token_invalid"
	DecisionRedirect     = "redirect"
)

// Login outcome labels.
const (
	LoginSuccess     = "success"
	LoginRejected    = "rejected"
	LoginRateLimited = "rate_limited"
	LoginError       = "error"
)

// RecordRequest records one handled HTTP request.
func RecordRequest(method, route, status string, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordGateDecision(decision string) {
	GateDecisionsTotal.WithLabelValues(decision).Inc()
}

func RecordLogin(outcome string) {
	LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}
