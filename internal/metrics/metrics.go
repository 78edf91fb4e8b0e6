// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Cumulative number of relay attempts for validated submissions.",
		})

	SubmissionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submission_failures_total",
			Help: "Cumulative number of relay attempts that ended in the generic failure outcome.",
		})

	ValidationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_validation_failures_total",
			Help: "Cumulative number of submit attempts rejected by field validation.",
		})

	SubmissionsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "contact_submissions_in_flight",
			Help: "Relay requests currently awaiting a response (0 or 1 by design).",
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		SubmissionFailuresTotal,
		ValidationFailuresTotal,
		SubmissionsInFlight,
	)
}
