package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DeliveriesTotal counts delivery attempts by channel, provider and result.
	DeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmkonnect_notifier_deliveries_total",
		Help: "Total number of notification delivery attempts",
	}, []string{"channel", "provider", "result"})

	// SkippedChannelsTotal counts channels dropped for lack of an endpoint.
	SkippedChannelsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmkonnect_notifier_skipped_channels_total",
		Help: "Total number of channels skipped while composing notifications",
	}, []string{"channel"})

	// TransitionsTotal counts record state transitions by resulting state.
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farmkonnect_notifier_transitions_total",
		Help: "Total number of notification record transitions",
	}, []string{"outcome"})

	// SweepDuration observes retry sweep durations.
	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "farmkonnect_notifier_sweep_duration_seconds",
		Help:    "Time to complete one retry sweep",
		Buckets: prometheus.DefBuckets,
	})

	// SweepRecords observes how many records a sweep processed.
	SweepRecords = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "farmkonnect_notifier_sweep_records",
		Help:    "Number of due records processed per sweep",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})

	// PushConnections tracks the current number of open websocket connections.
	PushConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "farmkonnect_notifier_push_connections",
		Help: "Current number of connected push clients",
	})
)

// Transition outcomes.
const (
	OutcomeDelivered = "delivered"
	OutcomeScheduled = "scheduled"
	OutcomeFailed    = "failed"
	OutcomeError     = "error"
)
