// Package metrics defines and registers the custom Prometheus metrics of the
// KivuSafe portal. HTTP request metrics come from the echoprometheus
// middleware; everything here is domain level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kivusafe"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected", "no_token", "validation_failed", "store_error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRestoresTotal counts startup session restores.
// Label:
//   - result: "restored", "absent", "expired", "rejected", "store_error"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of attempts to restore a persisted session, by result.",
	},
	[]string{"result"},
)

// ── Report metrics ────────────────────────────────────────────────────────────

// ReportsSubmittedTotal counts forwarded incident reports.
// Label:
//   - result: "submitted" or "failed"
var ReportsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_submitted_total",
		Help:      "Total number of incident reports forwarded to the remote API.",
	},
	[]string{"result"},
)

// DashboardReports is the number of reports in the last dashboard fetch.
var DashboardReports = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dashboard_reports",
		Help:      "Number of reports returned by the most recent dashboard fetch.",
	},
)

// ExportsTotal counts dashboard exports by format (csv, xlsx, pdf).
var ExportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exports_total",
		Help:      "Total number of dashboard exports, by format.",
	},
	[]string{"format"},
)

// ── Remote API metrics ────────────────────────────────────────────────────────

// RemoteRequestDuration measures calls to the remote KivuSafe API.
// Labels:
//   - endpoint: "login", "user", "register", "reports", "report", "ping"
//   - outcome: "ok", "transport_error", or the HTTP status class ("4xx", "5xx")
var RemoteRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "remote_request_duration_seconds",
		Help:      "Duration of requests to the remote KivuSafe API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "outcome"},
)
