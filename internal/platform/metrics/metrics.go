package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts HTTP requests by route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by route template.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "donation_http_request_duration_seconds",
		Help:    "HTTP request latency distributions.",
		Buckets: []float64{0.05, 0.1, 0.3, 0.5, 1.0, 2.0, 5.0},
	}, []string{"method", "path"})

	// NotificationsTotal counts gateway notifications by gateway status and outcome.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_gateway_notifications_total",
		Help: "Gateway notifications processed, by transaction status and outcome.",
	}, []string{"transaction_status", "outcome"})

	// TransitionsTotal counts committed donation transitions.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_transitions_total",
		Help: "Committed donation status transitions.",
	}, []string{"from", "to", "trigger"})

	// LedgerConflictRetries counts units of work retried after a write conflict.
	LedgerConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_ledger_conflict_retries_total",
		Help: "Reconciliation attempts retried after a ledger write conflict.",
	})

	// CheckoutFailures counts checkout sessions the gateway could not open.
	CheckoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_checkout_failures_total",
		Help: "Checkout sessions that could not be opened, by reason.",
	}, []string{"reason"})

	// ExpiredTotal counts donations moved to expired by the sweep.
	ExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donation_expired_total",
		Help: "Pending donations expired by the sweep.",
	})

	// SweepDuration observes how long an expiry sweep run takes.
	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "donation_expiry_sweep_duration_seconds",
		Help:    "Duration of expiry sweep runs.",
		Buckets: prometheus.DefBuckets,
	})
)
