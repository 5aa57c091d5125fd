package hfsm

// Transition describes a state transition.
type Transition[TState, TTrigger comparable, TContext any] struct {
	// Source is the state transitioned from.
	Source TState

	// Destination is the state transitioned to.
	Destination TState

	// Trigger is the trigger that caused the transition.
	Trigger TTrigger

	// Context is the context the trigger was fired in.
	Context TContext
}

// NewTransition creates a new transition.
func NewTransition[TState, TTrigger comparable, TContext any](
	source, destination TState,
	trigger TTrigger,
	context TContext,
) Transition[TState, TTrigger, TContext] {
	return Transition[TState, TTrigger, TContext]{
		Source:      source,
		Destination: destination,
		Trigger:     trigger,
		Context:     context,
	}
}

// IsReentry returns true if the transition is a re-entry, i.e., the identity transition.
func (t Transition[TState, TTrigger, TContext]) IsReentry() bool {
	return t.Source == t.Destination
}
