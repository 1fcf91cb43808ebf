package actorfsm

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "actorfsm"

const (
	reasonInvalidState = "invalid_state"
	reasonUnattached   = "unattached"
)

// Metrics holds the Prometheus collectors for machines created with
// WithMetrics. A nil *Metrics records nothing.
type Metrics struct {
	transitions   *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	delayed       *prometheus.CounterVec
	entryFailures *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg. Share one Metrics
// between machines that register against the same registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "transitions_total",
				Help:      "State changes that took effect, by source and target state.",
			},
			[]string{"from", "to"},
		),
		rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "transitions_rejected_total",
				Help:      "Transition requests that failed validation.",
			},
			[]string{"reason"},
		),
		delayed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "delayed_transitions_total",
				Help:      "Delayed transitions by outcome (scheduled, cancelled, fired).",
			},
			[]string{"outcome"},
		),
		entryFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "entry_failures_total",
				Help:      "Entry actions that returned an error, by state.",
			},
			[]string{"state"},
		),
	}
}

func (m *Metrics) transition(from, to StateID) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) rejected(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) delayedScheduled() { m.delayedOutcome("scheduled") }
func (m *Metrics) delayedCancelled() { m.delayedOutcome("cancelled") }
func (m *Metrics) delayedFired()     { m.delayedOutcome("fired") }

func (m *Metrics) delayedOutcome(outcome string) {
	if m == nil {
		return
	}
	m.delayed.WithLabelValues(outcome).Inc()
}

func (m *Metrics) entryFailed(state StateID) {
	if m == nil {
		return
	}
	m.entryFailures.WithLabelValues(string(state)).Inc()
}
