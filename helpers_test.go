package hfsm_test

import (
	"github.com/atlekbai/hfsm"
)

type (
	State   int
	Trigger int
)

const (
	StateA State = iota
	StateB
	StateC
	StateD
)

const (
	TriggerX Trigger = iota
	TriggerY
	TriggerZ
)

func (s State) String() string {
	switch s {
	case StateA:
		return "StateA"
	case StateB:
		return "StateB"
	case StateC:
		return "StateC"
	case StateD:
		return "StateD"
	default:
		return "Unknown"
	}
}

func (t Trigger) String() string {
	switch t {
	case TriggerX:
		return "TriggerX"
	case TriggerY:
		return "TriggerY"
	case TriggerZ:
		return "TriggerZ"
	default:
		return "Unknown"
	}
}

type (
	testMachine    = hfsm.StateMachine[State, Trigger, any]
	testTransition = hfsm.Transition[State, Trigger, any]
)

func newMachine(initial State) *testMachine {
	return hfsm.NewStateMachine[State, Trigger, any](initial, nil)
}

// recorder collects the names of actions in the order they run.
type recorder struct {
	calls []string
}

func (r *recorder) entry(name string) hfsm.EntryAction[State, Trigger, any] {
	return func(testTransition, []any) error {
		r.calls = append(r.calls, name)
		return nil
	}
}

func (r *recorder) exit(name string) hfsm.ExitAction[State, Trigger, any] {
	return func(testTransition) error {
		r.calls = append(r.calls, name)
		return nil
	}
}

func always(any) bool { return true }

func never(any) bool { return false }
