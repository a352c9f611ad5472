// Package metrics defines and registers the custom Prometheus metrics for
// the gym system. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry at import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gym"

// ── Reservation metrics ──────────────────────────────────────────────────────

// ReservationsTotal counts committed reservations.
// Label:
//   - discipline: the discipline name of the reserved class
var ReservationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_total",
		Help:      "Total number of committed reservations, by discipline.",
	},
	[]string{"discipline"},
)

// ReservationDenialsTotal counts refused reservation attempts.
// Label:
//   - reason: stable error kind or sentinel (e.g. "class_full", "insufficient_credits")
var ReservationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_denials_total",
		Help:      "Total number of refused reservation attempts, by reason.",
	},
	[]string{"reason"},
)

// CancellationsTotal counts committed cancellations.
// Label:
//   - outcome: "refunded" or "forfeited"
var CancellationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cancellations_total",
		Help:      "Total number of cancellations, by refund outcome.",
	},
	[]string{"outcome"},
)

// ── Check-in metrics ─────────────────────────────────────────────────────────

// CheckinsTotal counts entry decisions.
// Labels:
//   - method: "qr_scan", "app_scan", or "manual"
//   - result: "granted" or "denied"
var CheckinsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkins_total",
		Help:      "Total number of check-in decisions, by method and result.",
	},
	[]string{"method", "result"},
)

// ScanDedupTotal counts dedup decisions on device scan uploads.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new scan, processed)
var ScanDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_dedup_total",
		Help:      "Total number of scan dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ScanQueueDepth tracks scans waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index
var ScanQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "scan_queue_depth",
		Help:      "Current number of scans pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Token metrics ────────────────────────────────────────────────────────────

// TokensIssuedTotal counts dynamic member tokens issued.
var TokensIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of dynamic member tokens issued.",
	},
)
