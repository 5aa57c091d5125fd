package hfsm

// TriggerBehaviour decides, for a trigger fired from a given state, whether a
// transition occurs and to where.
//
// The set of implementations is closed: IgnoredTriggerBehaviour,
// TransitioningTriggerBehaviour and DynamicTriggerBehaviour.
type TriggerBehaviour[TState, TTrigger comparable, TContext any] interface {
	// Trigger returns the trigger associated with this behaviour.
	Trigger() TTrigger

	// Guard returns the transition guard for this trigger.
	Guard() TransitionGuard[TContext]

	// IsGuardMet returns true if all guard conditions are met.
	IsGuardMet(context TContext) bool

	// ResultsInTransitionFrom returns the destination state and true when the
	// behaviour causes a transition from source.
	ResultsInTransitionFrom(source TState, context TContext, args []any) (TState, bool, error)

	triggerBehaviour()
}

// triggerBehaviourBase provides the base implementation for trigger behaviours.
type triggerBehaviourBase[TTrigger comparable, TContext any] struct {
	trigger TTrigger
	guard   TransitionGuard[TContext]
}

func (t *triggerBehaviourBase[TTrigger, TContext]) Trigger() TTrigger {
	return t.trigger
}

func (t *triggerBehaviourBase[TTrigger, TContext]) Guard() TransitionGuard[TContext] {
	return t.guard
}

func (t *triggerBehaviourBase[TTrigger, TContext]) IsGuardMet(context TContext) bool {
	return t.guard.GuardConditionsMet(context)
}

func (t *triggerBehaviourBase[TTrigger, TContext]) triggerBehaviour() {}

// IgnoredTriggerBehaviour consumes a trigger without changing state.
type IgnoredTriggerBehaviour[TState, TTrigger comparable, TContext any] struct {
	triggerBehaviourBase[TTrigger, TContext]
}

// NewIgnoredTriggerBehaviour creates a new ignored trigger behaviour.
func NewIgnoredTriggerBehaviour[TState, TTrigger comparable, TContext any](
	trigger TTrigger,
	guard TransitionGuard[TContext],
) *IgnoredTriggerBehaviour[TState, TTrigger, TContext] {
	return &IgnoredTriggerBehaviour[TState, TTrigger, TContext]{
		triggerBehaviourBase: triggerBehaviourBase[TTrigger, TContext]{
			trigger: trigger,
			guard:   guard,
		},
	}
}

// ResultsInTransitionFrom never results in a transition.
func (i *IgnoredTriggerBehaviour[TState, TTrigger, TContext]) ResultsInTransitionFrom(
	_ TState,
	_ TContext,
	_ []any,
) (TState, bool, error) {
	var zero TState
	return zero, false, nil
}

// TransitioningTriggerBehaviour represents a transition to a fixed destination
// state. A destination equal to the configured state is a reentry.
type TransitioningTriggerBehaviour[TState, TTrigger comparable, TContext any] struct {
	triggerBehaviourBase[TTrigger, TContext]

	Destination TState
}

// NewTransitioningTriggerBehaviour creates a new transitioning trigger behaviour.
func NewTransitioningTriggerBehaviour[TState, TTrigger comparable, TContext any](
	trigger TTrigger,
	destination TState,
	guard TransitionGuard[TContext],
) *TransitioningTriggerBehaviour[TState, TTrigger, TContext] {
	return &TransitioningTriggerBehaviour[TState, TTrigger, TContext]{
		triggerBehaviourBase: triggerBehaviourBase[TTrigger, TContext]{
			trigger: trigger,
			guard:   guard,
		},
		Destination: destination,
	}
}

// ResultsInTransitionFrom always results in a transition to the fixed destination.
func (t *TransitioningTriggerBehaviour[TState, TTrigger, TContext]) ResultsInTransitionFrom(
	_ TState,
	_ TContext,
	_ []any,
) (TState, bool, error) {
	return t.Destination, true, nil
}

// DestinationSelector computes the destination of a dynamic transition from
// the context and the arguments passed to Fire.
type DestinationSelector[TState comparable, TContext any] func(context TContext, args []any) (TState, error)

// DynamicStateInfo describes a possible destination of a dynamic transition.
type DynamicStateInfo struct {
	// DestinationState is the name of the destination state.
	DestinationState string

	// Criterion is the reason this destination state would be chosen.
	Criterion string
}

// DynamicTriggerBehaviour represents a transition to a destination determined at fire time.
type DynamicTriggerBehaviour[TState, TTrigger comparable, TContext any] struct {
	triggerBehaviourBase[TTrigger, TContext]

	selector DestinationSelector[TState, TContext]

	// PossibleDestinations optionally documents the selector's outcomes.
	PossibleDestinations []DynamicStateInfo
}

// NewDynamicTriggerBehaviour creates a new dynamic trigger behaviour.
func NewDynamicTriggerBehaviour[TState, TTrigger comparable, TContext any](
	trigger TTrigger,
	selector DestinationSelector[TState, TContext],
	guard TransitionGuard[TContext],
	possibleDestinations ...DynamicStateInfo,
) *DynamicTriggerBehaviour[TState, TTrigger, TContext] {
	if selector == nil {
		panic(&ArgumentError{ParamName: "selector", Message: "destination selector is nil"})
	}
	return &DynamicTriggerBehaviour[TState, TTrigger, TContext]{
		triggerBehaviourBase: triggerBehaviourBase[TTrigger, TContext]{
			trigger: trigger,
			guard:   guard,
		},
		selector:             selector,
		PossibleDestinations: possibleDestinations,
	}
}

// ResultsInTransitionFrom invokes the selector. A selector error is returned unchanged.
func (d *DynamicTriggerBehaviour[TState, TTrigger, TContext]) ResultsInTransitionFrom(
	_ TState,
	context TContext,
	args []any,
) (TState, bool, error) {
	destination, err := d.selector(context, args)
	if err != nil {
		var zero TState
		return zero, false, err
	}
	return destination, true, nil
}
