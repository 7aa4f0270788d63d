// Package metrics defines and registers all custom Prometheus metrics for the
// members portal. It is the single source of truth for metric names, labels,
// and help strings.
//
// The promauto vars register against the default registry at init time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// SignupsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate", "invalid", "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts authentication attempts. Failures are a single bucket;
// the metric must not distinguish unknown email from wrong password any more
// than the client-facing message does.
// Label:
//   - result: "success", "failure", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionsExpiredTotal counts sessions lazily detected as expired on read.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions detected as expired on read.",
	},
)

// ValidationRejectionsTotal counts inputs rejected before reaching the store.
// Label:
//   - field: the rejected field name (e.g. "username", "email")
var ValidationRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_rejections_total",
		Help:      "Total number of inputs rejected by the validator, by field.",
	},
	[]string{"field"},
)

// AccessDeniedTotal counts guard denials.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the authorization guards.",
	},
	[]string{"reason"},
)
