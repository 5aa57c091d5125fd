package metrics_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/hfsm"
	"github.com/atlekbai/hfsm/metrics"
)

var errNoRoute = errors.New("no route")

func newInstrumentedMachine(t *testing.T) (*hfsm.StateMachine[string, string, any], *prometheus.Registry) {
	t.Helper()

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector("test", reg)
	require.NoError(t, err)

	config := hfsm.NewStateMachineConfig[string, string, any]()
	config.Configure("A").Permit("X", "B")
	config.Configure("B").
		PermitReentry("R").
		Ignore("I").
		PermitDynamic("D", func(any, []any) (string, error) { return "", errNoRoute })

	return hfsm.NewStateMachine("A", config, hfsm.WithHooks(collector.Hooks())), reg
}

func TestCollectorCountsOutcomes(t *testing.T) {
	sm, reg := newInstrumentedMachine(t)

	require.NoError(t, sm.Fire("X", nil))
	require.NoError(t, sm.Fire("R", nil))
	require.NoError(t, sm.Fire("I", nil))
	require.ErrorIs(t, sm.Fire("D", nil), errNoRoute)
	var invalid *hfsm.InvalidTransitionError
	require.ErrorAs(t, sm.Fire("Y", nil), &invalid)

	expected := `
# HELP test_hfsm_fires_total Total number of fired triggers, by source state, trigger and outcome.
# TYPE test_hfsm_fires_total counter
test_hfsm_fires_total{outcome="failed",state="B",trigger="D"} 1
test_hfsm_fires_total{outcome="ignored",state="B",trigger="I"} 1
test_hfsm_fires_total{outcome="transitioned",state="A",trigger="X"} 1
test_hfsm_fires_total{outcome="transitioned",state="B",trigger="R"} 1
test_hfsm_fires_total{outcome="unhandled",state="B",trigger="Y"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_hfsm_fires_total"))
}

func TestCollectorCountsTransitions(t *testing.T) {
	sm, reg := newInstrumentedMachine(t)

	require.NoError(t, sm.Fire("X", nil))
	require.NoError(t, sm.Fire("R", nil))
	require.NoError(t, sm.Fire("R", nil))

	expected := `
# HELP test_hfsm_reentries_total Total number of completed transitions back into the source state.
# TYPE test_hfsm_reentries_total counter
test_hfsm_reentries_total{state="B",trigger="R"} 2
# HELP test_hfsm_transitions_total Total number of completed transitions.
# TYPE test_hfsm_transitions_total counter
test_hfsm_transitions_total{destination="B",source="A",trigger="X"} 1
test_hfsm_transitions_total{destination="B",source="B",trigger="R"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"test_hfsm_transitions_total", "test_hfsm_reentries_total"))
}

func TestCollectorObservesDuration(t *testing.T) {
	sm, reg := newInstrumentedMachine(t)

	require.NoError(t, sm.Fire("X", nil))
	require.NoError(t, sm.Fire("I", nil))

	count, err := testutil.GatherAndCount(reg, "test_hfsm_fire_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCollectorObserveWithoutSource(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector("test", reg)
	require.NoError(t, err)

	collector.Observe(hfsm.FireEvent{Trigger: "X", Outcome: hfsm.OutcomeFailed})

	expected := `
# HELP test_hfsm_fires_total Total number of fired triggers, by source state, trigger and outcome.
# TYPE test_hfsm_fires_total counter
test_hfsm_fires_total{outcome="failed",state="",trigger="X"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_hfsm_fires_total"))
}

func TestNewCollectorRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewCollector("test", reg)
	require.NoError(t, err)

	_, err = metrics.NewCollector("test", reg)

	require.Error(t, err)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestNewCollectorWithoutRegisterer(t *testing.T) {
	collector, err := metrics.NewCollector("test", nil)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		collector.Observe(hfsm.FireEvent{Source: "A", Destination: "B", Trigger: "X", Outcome: hfsm.OutcomeTransitioned})
	})
}
