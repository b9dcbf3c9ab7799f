// Package metrics defines the custom Prometheus metrics of the timesheet API.
// Metrics are registered with the default registry on package init through
// promauto, so importing the package is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timesheets"

// TimesheetsSubmittedTotal counts newly stored timesheets. Idempotent
// replays are not counted.
var TimesheetsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submitted_total",
		Help:      "Total number of timesheets submitted.",
	},
)

// TimesheetsApprovedTotal counts approval requests.
// Label:
//   - result: "approved" (state changed) or "already_approved" (no-op)
var TimesheetsApprovedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approved_total",
		Help:      "Total number of approval requests, labelled by result.",
	},
	[]string{"result"},
)

// ExportsTotal counts generated approved-timesheet workbooks.
var ExportsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of approved timesheet exports.",
	},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)
