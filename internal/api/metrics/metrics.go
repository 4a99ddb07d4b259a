// Package metrics defines and registers all custom Prometheus metrics for
// the course platform API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "course_platform"

// ── Access gate metrics ───────────────────────────────────────────────────────

// AccessDecisionsTotal counts content access gate outcomes.
// Labels:
//   - decision: "allow" or "deny"
//   - reason: "ok", "no_entitlement", "bad_request", "not_found", "internal"
var AccessDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_decisions_total",
		Help:      "Total number of content access decisions, by outcome and reason.",
	},
	[]string{"decision", "reason"},
)

// RateLimitedTotal counts requests denied by the rate limiter.
// Label:
//   - class: the endpoint class ("auth" or "resource")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests denied by the rate limiter, by endpoint class.",
	},
	[]string{"class"},
)

// ── Payment pipeline metrics ──────────────────────────────────────────────────

// PaymentsProcessedTotal counts payment events that completed processing.
// Label:
//   - status: the payment status applied ("completed" or "failed")
var PaymentsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_processed_total",
		Help:      "Total number of payment events successfully processed.",
	},
	[]string{"status"},
)

// PaymentErrorsTotal counts payment events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "enrollment_not_found", "process_failed")
var PaymentErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_errors_total",
		Help:      "Total number of payment events that failed processing.",
	},
	[]string{"reason"},
)

// PaymentQueueDepth tracks events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PaymentQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "payment_queue_depth",
		Help:      "Current number of payment events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsCreatedTotal counts new enrollment attempts accepted by the ledger.
var EnrollmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_created_total",
		Help:      "Total number of enrollments created or reactivated.",
	},
)
