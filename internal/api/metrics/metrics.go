// Package metrics defines and registers all custom Prometheus metrics for the
// rental portal. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental_portal"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts outbound calls to the remote rental API.
// Labels:
//   - operation: the typed gateway operation (e.g. "cars_list", "auth_login")
//   - outcome: "ok", "api_error", "transport_error", or "read_error"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of outbound rental API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsStartedTotal counts sessions adopted after login or registration.
// Label:
//   - kind: "login" or "register"
var SessionsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions adopted, by entry point.",
	},
	[]string{"kind"},
)

// UnreadBadgeCount tracks the most recently relayed unread-message count.
var UnreadBadgeCount = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "unread_badge_count",
		Help:      "Latest unread contact-message count relayed to the shell badge.",
	},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingsSubmittedTotal counts booking requests that passed local validation
// and were submitted to the remote API.
// Label:
//   - outcome: "accepted" or "rejected"
var BookingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookings_submitted_total",
		Help:      "Total number of booking submissions, by remote outcome.",
	},
	[]string{"outcome"},
)

// MessagesMarkedReadTotal counts admin mark-as-read actions.
var MessagesMarkedReadTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_marked_read_total",
		Help:      "Total number of contact messages marked read from the admin console.",
	},
)
