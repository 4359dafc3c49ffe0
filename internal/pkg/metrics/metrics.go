// Package metrics defines and registers the custom Prometheus metrics of the
// inventory dashboard. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default registry through promauto when the
// package is first imported.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "inventory"

// ── Remote resource metrics ───────────────────────────────────────────────────

// ResourceRequestsTotal counts calls made against the remote resource API.
// Labels:
//   - operation: e.g. "list_products", "create_product", "list_users"
//   - outcome: "ok", "http_error" (non-2xx) or "transport_error"
var ResourceRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_requests_total",
		Help:      "Total number of remote resource API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ResourceRequestDuration measures remote resource call latency.
var ResourceRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "resource_request_duration_seconds",
		Help:      "Duration of remote resource API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (no matching credentials) or "error" (fetch failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsRestoredTotal counts session restore attempts at initialization.
// Label:
//   - result: "restored", "empty" or "corrupt"
var SessionsRestoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_restored_total",
		Help:      "Total number of persisted session restore attempts, by result.",
	},
	[]string{"result"},
)

// ObserveResource records one remote call.
func ObserveResource(operation, outcome string, started time.Time) {
	ResourceRequestsTotal.WithLabelValues(operation, outcome).Inc()
	ResourceRequestDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}
