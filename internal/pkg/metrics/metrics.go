// Package metrics defines and registers the custom Prometheus metrics for the
// rolodex directory service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rolodex"

// ── Token metrics ─────────────────────────────────────────────────────────────

// TokensIssuedTotal counts token requests.
// Label:
//   - result: "issued" or "rejected"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of token requests, by result.",
	},
	[]string{"result"},
)

// PrivilegedCallsTotal counts authorized calls made by a privileged principal.
var PrivilegedCallsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "privileged_calls_total",
		Help:      "Total number of authorized calls made with admin privileges.",
	},
)

// ── Record metrics ────────────────────────────────────────────────────────────

// RecordUpdatesTotal counts self-edit attempts.
// Label:
//   - result: "updated", "not_modified", "forbidden", "not_implemented", "invalid"
var RecordUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "record_updates_total",
		Help:      "Total number of record update attempts, by result.",
	},
	[]string{"result"},
)

// ── Snapshot metrics ──────────────────────────────────────────────────────────

// SnapshotWritesTotal counts snapshot writes.
// Label:
//   - result: "ok" or "error"
var SnapshotWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_writes_total",
		Help:      "Total number of snapshot writes, by result.",
	},
	[]string{"result"},
)

// SnapshotWriteDuration measures how long a snapshot write takes.
var SnapshotWriteDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_write_duration_seconds",
		Help:      "Duration of a whole-state snapshot write.",
		Buckets:   prometheus.DefBuckets,
	},
)
