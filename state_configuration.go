package hfsm

import (
	"fmt"
)

// StateConfiguration provides a fluent interface for configuring state behaviour.
//
// Configuration mistakes that can only be programming errors, such as an
// implicit self transition or a superstate cycle, panic with an
// *InvalidOperationError.
type StateConfiguration[TState, TTrigger comparable, TContext any] struct {
	representation *StateRepresentation[TState, TTrigger, TContext]
	lookup         func(TState) *StateRepresentation[TState, TTrigger, TContext]
}

// NewStateConfiguration creates a new state configuration.
func NewStateConfiguration[TState, TTrigger comparable, TContext any](
	representation *StateRepresentation[TState, TTrigger, TContext],
	lookup func(TState) *StateRepresentation[TState, TTrigger, TContext],
) *StateConfiguration[TState, TTrigger, TContext] {
	return &StateConfiguration[TState, TTrigger, TContext]{
		representation: representation,
		lookup:         lookup,
	}
}

// State returns the state being configured.
func (sc *StateConfiguration[TState, TTrigger, TContext]) State() TState {
	return sc.representation.UnderlyingState()
}

// Permit configures the state to transition to the specified destination state
// when the specified trigger is fired.
func (sc *StateConfiguration[TState, TTrigger, TContext]) Permit(
	trigger TTrigger,
	destinationState TState,
) *StateConfiguration[TState, TTrigger, TContext] {
	return sc.PermitIf(trigger, destinationState, nil)
}

// PermitIf configures the state to transition to the specified destination state
// when the specified trigger is fired, if the guard condition is met.
func (sc *StateConfiguration[TState, TTrigger, TContext]) PermitIf(
	trigger TTrigger,
	destinationState TState,
	guard GuardFunc[TContext],
	guardDescription ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.enforceNotIdentityTransition(destinationState)
	sc.lookup(destinationState)
	sc.representation.AddTriggerBehaviour(
		NewTransitioningTriggerBehaviour[TState, TTrigger](
			trigger,
			destinationState,
			NewTransitionGuard(guard, firstOrEmpty(guardDescription)),
		),
	)
	return sc
}

// PermitReentry configures the state to re-enter itself when the specified trigger is fired.
// Exit and entry actions of this state, and only this state, will be executed.
func (sc *StateConfiguration[TState, TTrigger, TContext]) PermitReentry(trigger TTrigger) *StateConfiguration[TState, TTrigger, TContext] {
	return sc.PermitReentryIf(trigger, nil)
}

// PermitReentryIf configures the state to re-enter itself when the specified trigger is fired,
// if the guard condition is met.
func (sc *StateConfiguration[TState, TTrigger, TContext]) PermitReentryIf(
	trigger TTrigger,
	guard GuardFunc[TContext],
	guardDescription ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.representation.AddTriggerBehaviour(
		NewTransitioningTriggerBehaviour[TState, TTrigger](
			trigger,
			sc.representation.UnderlyingState(),
			NewTransitionGuard(guard, firstOrEmpty(guardDescription)),
		),
	)
	return sc
}

// Ignore configures the state to ignore the specified trigger.
func (sc *StateConfiguration[TState, TTrigger, TContext]) Ignore(trigger TTrigger) *StateConfiguration[TState, TTrigger, TContext] {
	return sc.IgnoreIf(trigger, nil)
}

// IgnoreIf configures the state to ignore the specified trigger if the guard condition is met.
func (sc *StateConfiguration[TState, TTrigger, TContext]) IgnoreIf(
	trigger TTrigger,
	guard GuardFunc[TContext],
	guardDescription ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.representation.AddTriggerBehaviour(
		NewIgnoredTriggerBehaviour[TState](trigger, NewTransitionGuard(guard, firstOrEmpty(guardDescription))),
	)
	return sc
}

// PermitDynamic configures the state to transition to a destination computed
// by selector when the specified trigger is fired. The selector receives the
// context and the arguments passed to Fire.
func (sc *StateConfiguration[TState, TTrigger, TContext]) PermitDynamic(
	trigger TTrigger,
	selector DestinationSelector[TState, TContext],
	possibleDestinations ...DynamicStateInfo,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.representation.AddTriggerBehaviour(
		NewDynamicTriggerBehaviour[TState, TTrigger](
			trigger,
			selector,
			TransitionGuard[TContext]{},
			possibleDestinations...,
		),
	)
	return sc
}

// PermitDynamicIf configures the state to transition to a destination computed
// by selector when the specified trigger is fired, if the guard condition is met.
func (sc *StateConfiguration[TState, TTrigger, TContext]) PermitDynamicIf(
	trigger TTrigger,
	selector DestinationSelector[TState, TContext],
	guard GuardFunc[TContext],
	guardDescription ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.representation.AddTriggerBehaviour(
		NewDynamicTriggerBehaviour[TState, TTrigger](
			trigger,
			selector,
			NewTransitionGuard(guard, firstOrEmpty(guardDescription)),
		),
	)
	return sc
}

// OnEntry configures an action to be executed when entering this state.
func (sc *StateConfiguration[TState, TTrigger, TContext]) OnEntry(
	action EntryAction[TState, TTrigger, TContext],
	description ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.enforceActionNotNil(action == nil)
	sc.representation.AddEntryAction(NewEntryActionBehaviour(action, firstOrEmpty(description)))
	return sc
}

// OnEntryFrom configures an action to be executed when entering this state
// through a transition caused by trigger.
func (sc *StateConfiguration[TState, TTrigger, TContext]) OnEntryFrom(
	trigger TTrigger,
	action EntryAction[TState, TTrigger, TContext],
	description ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.enforceActionNotNil(action == nil)
	sc.representation.AddEntryAction(NewEntryActionBehaviourFrom(trigger, action, firstOrEmpty(description)))
	return sc
}

// OnEntryFromParameters configures an action to be executed when entering
// this state through the parameterized trigger. The arguments reaching the
// action have already been validated against the trigger's declared types.
func (sc *StateConfiguration[TState, TTrigger, TContext]) OnEntryFromParameters(
	trigger *TriggerWithParameters[TTrigger],
	action EntryAction[TState, TTrigger, TContext],
	description ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	if trigger == nil {
		panic(&ArgumentError{ParamName: "trigger", Message: "parameterized trigger is nil"})
	}
	return sc.OnEntryFrom(trigger.Trigger(), action, description...)
}

// OnExit configures an action to be executed when exiting this state.
func (sc *StateConfiguration[TState, TTrigger, TContext]) OnExit(
	action ExitAction[TState, TTrigger, TContext],
	description ...string,
) *StateConfiguration[TState, TTrigger, TContext] {
	sc.enforceActionNotNil(action == nil)
	sc.representation.AddExitAction(NewExitActionBehaviour(action, firstOrEmpty(description)))
	return sc
}

// SubstateOf sets the superstate of this state. Calling it again moves the
// state under the new superstate.
func (sc *StateConfiguration[TState, TTrigger, TContext]) SubstateOf(superstate TState) *StateConfiguration[TState, TTrigger, TContext] {
	state := sc.representation.UnderlyingState()
	superstateRep := sc.lookup(superstate)

	// Check for circular references
	if superstateRep.IsIncludedIn(state) {
		panic(&InvalidOperationError{
			Message: fmt.Sprintf("circular superstate relationship detected: %v -> %v", state, superstate),
		})
	}

	if previous := sc.representation.Superstate(); previous != nil {
		previous.RemoveSubstate(sc.representation)
	}
	sc.representation.SetSuperstate(superstateRep)
	superstateRep.AddSubstate(sc.representation)
	return sc
}

// enforceNotIdentityTransition ensures that a transition is not to the same state.
func (sc *StateConfiguration[TState, TTrigger, TContext]) enforceNotIdentityTransition(destinationState TState) {
	if sc.representation.UnderlyingState() == destinationState {
		panic(&InvalidOperationError{
			Message: fmt.Sprintf(
				"permit() requires that the destination state is not equal to the source state '%v'. "+
					"To accept a trigger without changing state, use either Ignore() or PermitReentry()",
				destinationState),
		})
	}
}

func (sc *StateConfiguration[TState, TTrigger, TContext]) enforceActionNotNil(isNil bool) {
	if isNil {
		panic(&ArgumentError{ParamName: "action", Message: "action is nil"})
	}
}
