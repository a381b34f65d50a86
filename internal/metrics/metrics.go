// Package metrics defines and registers all custom Prometheus metrics for the
// back-office service. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// TokensIssuedTotal counts access tokens issued after successful logins.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of access tokens issued.",
	},
)

// ── Visit metrics ─────────────────────────────────────────────────────────────

// VisitsRecordedTotal counts visit-recording decisions.
// Label:
//   - result: "recorded", "duplicate" (within the dedup window), or "error"
var VisitsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "visits_recorded_total",
		Help:      "Total number of visit recording attempts, labelled by result.",
	},
	[]string{"result"},
)

// VisitQueueDepth tracks the number of visits waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var VisitQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "visit_queue_depth",
		Help:      "Current number of visits pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// visitRecordDuration measures how long one visit takes from dequeue to
// persistence.
var visitRecordDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "visit_record_duration_seconds",
		Help:      "Duration of visit recording from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// NewVisitRecordTimer starts a timer observing into visitRecordDuration.
func NewVisitRecordTimer() *prometheus.Timer {
	return prometheus.NewTimer(visitRecordDuration)
}
