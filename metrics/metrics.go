// Package metrics exports Prometheus metrics for state machine firings.
//
//	collector, err := metrics.NewCollector("billing", prometheus.DefaultRegisterer)
//	...
//	sm := hfsm.NewStateMachine(Idle, config, hfsm.WithHooks(collector.Hooks()))
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/atlekbai/hfsm"
)

// Collector counts firings by outcome and transitions by edge.
type Collector struct {
	fires       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	reentries   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewCollector creates a collector whose metrics are named
// <namespace>_hfsm_* and registers it with reg. A nil reg skips registration.
func NewCollector(namespace string, reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		fires: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "hfsm",
				Name:      "fires_total",
				Help:      "Total number of fired triggers, by source state, trigger and outcome.",
			},
			[]string{"state", "trigger", "outcome"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "hfsm",
				Name:      "transitions_total",
				Help:      "Total number of completed transitions.",
			},
			[]string{"source", "destination", "trigger"},
		),
		reentries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "hfsm",
				Name:      "reentries_total",
				Help:      "Total number of completed transitions back into the source state.",
			},
			[]string{"state", "trigger"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "hfsm",
				Name:      "fire_duration_seconds",
				Help:      "Time spent firing a trigger, including guards and actions.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 10, 7),
			},
			[]string{"outcome"},
		),
	}

	if reg != nil {
		if err := c.register(reg); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) register(reg prometheus.Registerer) error {
	for _, col := range []prometheus.Collector{c.fires, c.transitions, c.reentries, c.duration} {
		if err := reg.Register(col); err != nil {
			return fmt.Errorf("failed to register hfsm metrics: %w", err)
		}
	}
	return nil
}

// Hooks returns the hooks that feed the collector.
func (c *Collector) Hooks() hfsm.Hooks {
	return hfsm.Hooks{OnFire: c.Observe}
}

// Observe records one firing.
func (c *Collector) Observe(event hfsm.FireEvent) {
	state := label(event.Source)
	trigger := label(event.Trigger)
	outcome := string(event.Outcome)

	c.fires.WithLabelValues(state, trigger, outcome).Inc()
	c.duration.WithLabelValues(outcome).Observe(event.Duration.Seconds())

	if event.Outcome != hfsm.OutcomeTransitioned {
		return
	}
	destination := label(event.Destination)
	c.transitions.WithLabelValues(state, destination, trigger).Inc()
	if destination == state {
		c.reentries.WithLabelValues(state, trigger).Inc()
	}
}

func label(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
