// Package metrics defines and registers all custom Prometheus metrics for
// the banking API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "banking"

// LoginsTotal counts login attempts that reached credential verification.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LoginThrottledTotal counts logins rejected by the per-username limiter
// before credentials were checked.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

// RecordMutationsTotal counts successful record mutations.
// Labels:
//   - kind: resource kind ("employees", "clients", ...)
//   - op:   "create", "update", or "delete"
var RecordMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_mutations_total",
		Help:      "Total number of successful record mutations, by kind and operation.",
	},
	[]string{"kind", "op"},
)

// ValidationFailuresTotal counts payloads rejected by the required-field
// check.
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of payloads rejected for missing required fields, by kind.",
	},
	[]string{"kind"},
)

// ReloadFailuresTotal counts records that vanished between a nominally
// successful write and the confirming re-read. Any non-zero value points at
// a storage-layer consistency bug.
var ReloadFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reload_failures_total",
		Help:      "Total number of post-write reloads that found no record.",
	},
	[]string{"kind"},
)
