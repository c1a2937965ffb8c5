// Package metrics holds Prometheus instruments for the signup form.  All
// collectors are registered with the global registry, so importing this
// package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	FieldChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_field_changes_total",
			Help: "Field change events by field and validation result.",
		}, []string{"field", "result"})

	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Submit attempts by outcome (ok, error, blocked, in_flight).",
		}, []string{"result"})

	SubmissionsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "signup_submissions_in_flight",
			Help: "Submissions currently waiting on the remote API.",
		})

	SubmitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signup_submit_duration_seconds",
			Help:    "Latency of calls to the remote API.",
			Buckets: prometheus.DefBuckets,
		})

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "signup_sessions_active",
			Help: "Number of form sessions currently held in memory.",
		})

	SessionsEvictedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signup_sessions_evicted_total",
			Help: "Cumulative number of form sessions evicted from the store.",
		})
)

// Submission outcomes used as the "result" label.
const (
	ResultOK       = "ok"
	ResultError    = "error"
	ResultBlocked  = "blocked"
	ResultInFlight = "in_flight"
	ResultValid    = "valid"
	ResultInvalid  = "invalid"
)

func init() {
	prometheus.MustRegister(
		FieldChangesTotal,
		SubmissionsTotal,
		SubmissionsInFlight,
		SubmitDuration,
		SessionsActive,
		SessionsEvictedTotal,
	)
}
