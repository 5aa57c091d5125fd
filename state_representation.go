package hfsm

import (
	"fmt"
)

// StateRepresentation models the behaviour of a state.
type StateRepresentation[TState, TTrigger comparable, TContext any] struct {
	state TState

	// superstate is the parent state (nil if this is a root state).
	superstate *StateRepresentation[TState, TTrigger, TContext]

	// substates are the child states of this state, in registration order.
	substates []*StateRepresentation[TState, TTrigger, TContext]

	// triggerBehaviours maps triggers to their behaviours.
	triggerBehaviours map[TTrigger][]TriggerBehaviour[TState, TTrigger, TContext]

	// triggerOrder holds the keys of triggerBehaviours in registration order.
	triggerOrder []TTrigger

	// entryActions are executed when entering this state.
	entryActions []EntryActionBehaviour[TState, TTrigger, TContext]

	// exitActions are executed when leaving this state.
	exitActions []ExitActionBehaviour[TState, TTrigger, TContext]
}

// NewStateRepresentation creates a new state representation.
func NewStateRepresentation[TState, TTrigger comparable, TContext any](
	state TState,
) *StateRepresentation[TState, TTrigger, TContext] {
	return &StateRepresentation[TState, TTrigger, TContext]{
		state:             state,
		triggerBehaviours: make(map[TTrigger][]TriggerBehaviour[TState, TTrigger, TContext]),
	}
}

// UnderlyingState returns the state this representation models.
func (sr *StateRepresentation[TState, TTrigger, TContext]) UnderlyingState() TState {
	return sr.state
}

// Superstate returns the parent state, if any.
func (sr *StateRepresentation[TState, TTrigger, TContext]) Superstate() *StateRepresentation[TState, TTrigger, TContext] {
	return sr.superstate
}

// SetSuperstate sets the parent state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) SetSuperstate(superstate *StateRepresentation[TState, TTrigger, TContext]) {
	sr.superstate = superstate
}

// Substates returns the substates of this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) Substates() []*StateRepresentation[TState, TTrigger, TContext] {
	return sr.substates
}

// AddSubstate adds a substate to this state. Adding the same substate twice is a no-op.
func (sr *StateRepresentation[TState, TTrigger, TContext]) AddSubstate(substate *StateRepresentation[TState, TTrigger, TContext]) {
	for _, s := range sr.substates {
		if s == substate {
			return
		}
	}
	sr.substates = append(sr.substates, substate)
}

// RemoveSubstate removes a substate from this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) RemoveSubstate(substate *StateRepresentation[TState, TTrigger, TContext]) {
	for i, s := range sr.substates {
		if s == substate {
			sr.substates = append(sr.substates[:i], sr.substates[i+1:]...)
			return
		}
	}
}

// TriggerBehaviours returns the behaviours registered for trigger, in registration order.
func (sr *StateRepresentation[TState, TTrigger, TContext]) TriggerBehaviours(trigger TTrigger) []TriggerBehaviour[TState, TTrigger, TContext] {
	return sr.triggerBehaviours[trigger]
}

// Triggers returns every trigger with a local behaviour, in registration order.
func (sr *StateRepresentation[TState, TTrigger, TContext]) Triggers() []TTrigger {
	return sr.triggerOrder
}

// EntryActions returns the entry actions.
func (sr *StateRepresentation[TState, TTrigger, TContext]) EntryActions() []EntryActionBehaviour[TState, TTrigger, TContext] {
	return sr.entryActions
}

// ExitActions returns the exit actions.
func (sr *StateRepresentation[TState, TTrigger, TContext]) ExitActions() []ExitActionBehaviour[TState, TTrigger, TContext] {
	return sr.exitActions
}

// CanHandle returns true if this state or one of its superstates has exactly
// one applicable handler for the trigger.
func (sr *StateRepresentation[TState, TTrigger, TContext]) CanHandle(trigger TTrigger, context TContext) bool {
	handler, err := sr.TryFindHandler(trigger, context)
	return err == nil && handler != nil
}

// TryFindHandler looks for a handler locally and then up the superstate chain.
// A nil handler with a nil error means no state in the chain handles the trigger.
func (sr *StateRepresentation[TState, TTrigger, TContext]) TryFindHandler(
	trigger TTrigger,
	context TContext,
) (TriggerBehaviour[TState, TTrigger, TContext], error) {
	handler, err := sr.TryFindLocalHandler(trigger, context)
	if err != nil {
		return nil, err
	}
	if handler == nil && sr.superstate != nil {
		return sr.superstate.TryFindHandler(trigger, context)
	}
	return handler, nil
}

// TryFindLocalHandler looks for a handler registered on this state only.
func (sr *StateRepresentation[TState, TTrigger, TContext]) TryFindLocalHandler(
	trigger TTrigger,
	context TContext,
) (TriggerBehaviour[TState, TTrigger, TContext], error) {
	behaviours, exists := sr.triggerBehaviours[trigger]
	if !exists {
		return nil, nil
	}

	var handler TriggerBehaviour[TState, TTrigger, TContext]
	for _, behaviour := range behaviours {
		if !behaviour.IsGuardMet(context) {
			continue
		}
		if handler != nil {
			return nil, &AmbiguousTriggerError{State: sr.state, Trigger: trigger}
		}
		handler = behaviour
	}

	return handler, nil
}

// AddTriggerBehaviour adds a trigger behaviour to this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) AddTriggerBehaviour(behaviour TriggerBehaviour[TState, TTrigger, TContext]) {
	trigger := behaviour.Trigger()
	if _, exists := sr.triggerBehaviours[trigger]; !exists {
		sr.triggerOrder = append(sr.triggerOrder, trigger)
	}
	sr.triggerBehaviours[trigger] = append(sr.triggerBehaviours[trigger], behaviour)
}

// AddEntryAction adds an entry action to this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) AddEntryAction(action EntryActionBehaviour[TState, TTrigger, TContext]) {
	sr.entryActions = append(sr.entryActions, action)
}

// AddExitAction adds an exit action to this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) AddExitAction(action ExitActionBehaviour[TState, TTrigger, TContext]) {
	sr.exitActions = append(sr.exitActions, action)
}

// Enter executes entry actions for this state, preceded by those of every
// superstate the transition enters from outside.
func (sr *StateRepresentation[TState, TTrigger, TContext]) Enter(
	transition Transition[TState, TTrigger, TContext],
	args []any,
) error {
	if transition.IsReentry() {
		return sr.ExecuteEntryActions(transition, args)
	}

	if !sr.Includes(transition.Source) {
		if sr.superstate != nil {
			if err := sr.superstate.Enter(transition, args); err != nil {
				return err
			}
		}
		return sr.ExecuteEntryActions(transition, args)
	}

	return nil
}

// Exit executes exit actions for this state, followed by those of every
// superstate the transition leaves.
func (sr *StateRepresentation[TState, TTrigger, TContext]) Exit(transition Transition[TState, TTrigger, TContext]) error {
	if transition.IsReentry() {
		return sr.ExecuteExitActions(transition)
	}

	if !sr.Includes(transition.Destination) {
		if err := sr.ExecuteExitActions(transition); err != nil {
			return err
		}
		if sr.superstate != nil {
			return sr.superstate.Exit(transition)
		}
	}

	return nil
}

// ExecuteEntryActions executes all entry actions for this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) ExecuteEntryActions(
	transition Transition[TState, TTrigger, TContext],
	args []any,
) error {
	for _, action := range sr.entryActions {
		if err := action.Execute(transition, args); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteExitActions executes all exit actions for this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) ExecuteExitActions(transition Transition[TState, TTrigger, TContext]) error {
	for _, action := range sr.exitActions {
		if err := action.Execute(transition); err != nil {
			return err
		}
	}
	return nil
}

// Includes returns true if this state or any of its substates is the specified state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) Includes(state TState) bool {
	if sr.state == state {
		return true
	}
	for _, substate := range sr.substates {
		if substate.Includes(state) {
			return true
		}
	}
	return false
}

// IsIncludedIn returns true if this state is the specified state or a substate of it.
func (sr *StateRepresentation[TState, TTrigger, TContext]) IsIncludedIn(state TState) bool {
	if sr.state == state {
		return true
	}
	if sr.superstate != nil {
		return sr.superstate.IsIncludedIn(state)
	}
	return false
}

// PermittedTriggers returns the triggers with at least one passing guard on
// this state or any superstate, without duplicates.
func (sr *StateRepresentation[TState, TTrigger, TContext]) PermittedTriggers(context TContext) []TTrigger {
	result := sr.LocalPermittedTriggers(context)

	if sr.superstate != nil {
		for _, trigger := range sr.superstate.PermittedTriggers(context) {
			if !containsTrigger(result, trigger) {
				result = append(result, trigger)
			}
		}
	}

	return result
}

// LocalPermittedTriggers returns the triggers permitted by this state alone.
func (sr *StateRepresentation[TState, TTrigger, TContext]) LocalPermittedTriggers(context TContext) []TTrigger {
	var result []TTrigger
	for _, trigger := range sr.triggerOrder {
		for _, behaviour := range sr.triggerBehaviours[trigger] {
			if behaviour.IsGuardMet(context) {
				result = append(result, trigger)
				break
			}
		}
	}
	return result
}

// String returns a string representation of this state.
func (sr *StateRepresentation[TState, TTrigger, TContext]) String() string {
	return fmt.Sprintf("%v", sr.state)
}

// containsTrigger checks if a trigger is in the slice.
func containsTrigger[TTrigger comparable](triggers []TTrigger, trigger TTrigger) bool {
	for _, t := range triggers {
		if t == trigger {
			return true
		}
	}
	return false
}
