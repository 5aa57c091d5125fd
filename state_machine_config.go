package hfsm

import (
	"fmt"
	"reflect"
)

// StateMachineConfig is the registry of state representations and trigger
// parameters. A configuration may be shared by any number of state machines
// as long as it is not modified while they fire.
type StateMachineConfig[TState, TTrigger comparable, TContext any] struct {
	// stateRepresentations contains the configuration for each state.
	stateRepresentations map[TState]*StateRepresentation[TState, TTrigger, TContext]

	// stateOrder holds the keys of stateRepresentations in first-reference order.
	stateOrder []TState

	// triggerConfiguration holds the declared parameters for each trigger.
	triggerConfiguration map[TTrigger]*TriggerWithParameters[TTrigger]
}

// NewStateMachineConfig creates an empty configuration.
func NewStateMachineConfig[TState, TTrigger comparable, TContext any]() *StateMachineConfig[TState, TTrigger, TContext] {
	return &StateMachineConfig[TState, TTrigger, TContext]{
		stateRepresentations: make(map[TState]*StateRepresentation[TState, TTrigger, TContext]),
		triggerConfiguration: make(map[TTrigger]*TriggerWithParameters[TTrigger]),
	}
}

// Configure begins configuration of the entry/exit actions and allowed
// transitions of a state.
func (c *StateMachineConfig[TState, TTrigger, TContext]) Configure(state TState) *StateConfiguration[TState, TTrigger, TContext] {
	return NewStateConfiguration(c.getOrCreateRepresentation(state), c.getOrCreateRepresentation)
}

// Representation returns the representation of state, if it has been referenced.
func (c *StateMachineConfig[TState, TTrigger, TContext]) Representation(state TState) (*StateRepresentation[TState, TTrigger, TContext], bool) {
	representation, ok := c.stateRepresentations[state]
	return representation, ok
}

// States returns every referenced state in the order it was first referenced.
func (c *StateMachineConfig[TState, TTrigger, TContext]) States() []TState {
	result := make([]TState, len(c.stateOrder))
	copy(result, c.stateOrder)
	return result
}

// SetTriggerParameters declares the arguments that must be supplied when
// trigger is fired. Declaring parameters twice for one trigger is an error.
func (c *StateMachineConfig[TState, TTrigger, TContext]) SetTriggerParameters(
	trigger TTrigger,
	argumentTypes ...reflect.Type,
) (*TriggerWithParameters[TTrigger], error) {
	if _, exists := c.triggerConfiguration[trigger]; exists {
		return nil, &InvalidOperationError{
			Message: fmt.Sprintf("parameters for the trigger '%v' have already been configured", trigger),
		}
	}
	for i, t := range argumentTypes {
		if t == nil {
			return nil, &ArgumentError{
				ParamName: "argumentTypes",
				Message:   fmt.Sprintf("argument type at position %d is nil", i),
			}
		}
	}

	configuration := NewTriggerWithParameters(trigger, argumentTypes...)
	c.triggerConfiguration[trigger] = configuration
	return configuration, nil
}

// TriggerConfiguration returns the declared parameters of trigger, if any.
func (c *StateMachineConfig[TState, TTrigger, TContext]) TriggerConfiguration(trigger TTrigger) (*TriggerWithParameters[TTrigger], bool) {
	configuration, ok := c.triggerConfiguration[trigger]
	return configuration, ok
}

// getOrCreateRepresentation gets or creates the representation for a state.
func (c *StateMachineConfig[TState, TTrigger, TContext]) getOrCreateRepresentation(state TState) *StateRepresentation[TState, TTrigger, TContext] {
	representation, exists := c.stateRepresentations[state]
	if !exists {
		representation = NewStateRepresentation[TState, TTrigger, TContext](state)
		c.stateRepresentations[state] = representation
		c.stateOrder = append(c.stateOrder, state)
	}
	return representation
}
