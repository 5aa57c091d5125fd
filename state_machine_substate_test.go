package hfsm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlekbai/hfsm"
)

func TestSubstateInheritsSuperstateTriggers(t *testing.T) {
	sm := newMachine(StateA)
	sm.Configure(StateB).Permit(TriggerX, StateA)
	sm.Configure(StateC).SubstateOf(StateB)
	sm.Configure(StateA).Permit(TriggerY, StateC)

	require.NoError(t, sm.Fire(TriggerY, nil))
	assert.Equal(t, StateC, sm.State(nil))
	assert.True(t, sm.CanFire(TriggerX, nil))

	require.NoError(t, sm.Fire(TriggerX, nil))
	assert.Equal(t, StateA, sm.State(nil))
}

func TestSubstateTransitionOverridesSuperstate(t *testing.T) {
	sm := newMachine(StateB)
	sm.Configure(StateA).Permit(TriggerX, StateD)
	sm.Configure(StateB).
		SubstateOf(StateA).
		Permit(TriggerX, StateC)

	require.NoError(t, sm.Fire(TriggerX, nil))
	assert.Equal(t, StateC, sm.State(nil))
}

func TestSubstateGuardBlockedFallsBackToSuperstate(t *testing.T) {
	sm := newMachine(StateB)
	sm.Configure(StateA).PermitIf(TriggerX, StateD, always)
	sm.Configure(StateB).
		SubstateOf(StateA).
		PermitIf(TriggerX, StateC, never)

	require.NoError(t, sm.Fire(TriggerX, nil))
	assert.Equal(t, StateD, sm.State(nil))
}

func TestEnterSubstateFromOutside(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(StateD)
	sm.Configure(StateD).Permit(TriggerX, StateC)
	sm.Configure(StateA).OnEntry(rec.entry("enterA"))
	sm.Configure(StateB).SubstateOf(StateA).OnEntry(rec.entry("enterB"))
	sm.Configure(StateC).SubstateOf(StateB).OnEntry(rec.entry("enterC"))

	require.NoError(t, sm.Fire(TriggerX, nil))

	assert.Equal(t, []string{"enterA", "enterB", "enterC"}, rec.calls)
}

func TestExitSubstateToOutside(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(StateC)
	sm.Configure(StateA).OnExit(rec.exit("exitA"))
	sm.Configure(StateB).SubstateOf(StateA).OnExit(rec.exit("exitB"))
	sm.Configure(StateC).
		SubstateOf(StateB).
		Permit(TriggerX, StateD).
		OnExit(rec.exit("exitC"))

	require.NoError(t, sm.Fire(TriggerX, nil))

	assert.Equal(t, []string{"exitC", "exitB", "exitA"}, rec.calls)
}

func TestTransitionBetweenSiblings(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(StateB)
	sm.Configure(StateA).
		OnEntry(rec.entry("enterA")).
		OnExit(rec.exit("exitA"))
	sm.Configure(StateB).
		SubstateOf(StateA).
		Permit(TriggerX, StateC).
		OnExit(rec.exit("exitB"))
	sm.Configure(StateC).
		SubstateOf(StateA).
		OnEntry(rec.entry("enterC"))

	require.NoError(t, sm.Fire(TriggerX, nil))

	assert.Equal(t, StateC, sm.State(nil))
	assert.Equal(t, []string{"exitB", "enterC"}, rec.calls)
}

func TestTransitionFromSuperstateIntoSubstate(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(StateA)
	sm.Configure(StateA).
		Permit(TriggerX, StateB).
		OnEntry(rec.entry("enterA")).
		OnExit(rec.exit("exitA"))
	sm.Configure(StateB).
		SubstateOf(StateA).
		OnEntry(rec.entry("enterB"))

	require.NoError(t, sm.Fire(TriggerX, nil))

	assert.Equal(t, []string{"enterB"}, rec.calls)
}

func TestTransitionFromSubstateToSuperstate(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(StateB)
	sm.Configure(StateA).
		OnEntry(rec.entry("enterA")).
		OnExit(rec.exit("exitA"))
	sm.Configure(StateB).
		SubstateOf(StateA).
		Permit(TriggerX, StateA).
		OnExit(rec.exit("exitB"))

	require.NoError(t, sm.Fire(TriggerX, nil))

	assert.Equal(t, StateA, sm.State(nil))
	assert.Equal(t, []string{"exitB"}, rec.calls)
}

func TestIgnoredViaSuperstateRunsNoActions(t *testing.T) {
	rec := &recorder{}
	sm := newMachine(StateB)
	sm.Configure(StateC).
		Ignore(TriggerX).
		OnEntry(rec.entry("enterC")).
		OnExit(rec.exit("exitC"))
	sm.Configure(StateB).
		SubstateOf(StateC).
		OnEntry(rec.entry("enterB")).
		OnExit(rec.exit("exitB"))

	require.NoError(t, sm.Fire(TriggerX, nil))

	assert.Equal(t, StateB, sm.State(nil))
	assert.Empty(t, rec.calls)
}

func TestSubstateCycleIsRejected(t *testing.T) {
	sm := newMachine(StateA)
	sm.Configure(StateB).SubstateOf(StateA)
	sm.Configure(StateC).SubstateOf(StateB)

	assertCyclePanic(t, func() { sm.Configure(StateA).SubstateOf(StateC) })
	assertCyclePanic(t, func() { sm.Configure(StateA).SubstateOf(StateA) })
}

func assertCyclePanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		err, ok := recover().(*hfsm.InvalidOperationError)
		require.True(t, ok)
		assert.Contains(t, err.Error(), "circular superstate relationship")
	}()
	fn()
}

func TestSubstateOfMovesState(t *testing.T) {
	config := hfsm.NewStateMachineConfig[State, Trigger, any]()
	config.Configure(StateC).SubstateOf(StateA)
	config.Configure(StateC).SubstateOf(StateB)

	a, _ := config.Representation(StateA)
	b, _ := config.Representation(StateB)
	c, _ := config.Representation(StateC)

	assert.Empty(t, a.Substates())
	assert.Equal(t, []*hfsm.StateRepresentation[State, Trigger, any]{c}, b.Substates())
	assert.Same(t, b, c.Superstate())
	assert.True(t, c.IsIncludedIn(StateB))
	assert.False(t, c.IsIncludedIn(StateA))
}

func TestSubstateOfTwiceKeepsOneLink(t *testing.T) {
	config := hfsm.NewStateMachineConfig[State, Trigger, any]()
	config.Configure(StateB).SubstateOf(StateA)
	config.Configure(StateB).SubstateOf(StateA)

	a, _ := config.Representation(StateA)
	assert.Len(t, a.Substates(), 1)
}
