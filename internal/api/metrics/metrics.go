// Package metrics defines and registers all custom Prometheus metrics for the
// SpendFlow console. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spendflow_console"

// ── Backend API client metrics ────────────────────────────────────────────────

// BackendRequestsTotal counts calls issued to the SpendFlow backend.
// Labels:
//   - operation: logical endpoint name (e.g. "list_spends", "approve")
//   - code: HTTP status class ("2xx", "4xx", "5xx") or "error" when no
//     response was received
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the backend API.",
	},
	[]string{"operation", "code"},
)

// BackendRequestDuration measures the wall time of a single backend call.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API calls, from issue to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Polling metrics ───────────────────────────────────────────────────────────

// PollTicksTotal counts poll loop iterations.
// Labels:
//   - poller: "unread_badge" or "notifications"
//   - result: "ok" or "error"
var PollTicksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_ticks_total",
		Help:      "Total number of notification poll ticks, by poller and result.",
	},
	[]string{"poller", "result"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// ReceiptUploadsTotal counts receipt uploads to the media service.
// Label:
//   - result: "ok" or "error"
var ReceiptUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "receipt_uploads_total",
		Help:      "Total number of receipt uploads attempted against the media service.",
	},
	[]string{"result"},
)

// ── Page metrics ──────────────────────────────────────────────────────────────

// PageLoadsTotal counts page controller loads.
// Labels:
//   - page: route name (e.g. "spends", "approvals")
//   - result: "ok" or "error"
var PageLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_loads_total",
		Help:      "Total number of page data loads, by page and result.",
	},
	[]string{"page", "result"},
)
