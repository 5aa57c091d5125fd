package hfsm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// UnhandledTriggerAction is called when a trigger has no handler in the current state.
// Its error, if any, is returned from Fire.
type UnhandledTriggerAction[TState, TTrigger comparable, TContext any] func(
	state TState,
	trigger TTrigger,
	c TContext,
) error

// StateMachine fires triggers against a configuration, reading and writing
// the current state through a StateStorage.
//
// A StateMachine does no locking; see the package documentation.
type StateMachine[TState, TTrigger comparable, TContext any] struct {
	// config contains the representation of each state and the trigger parameters.
	config *StateMachineConfig[TState, TTrigger, TContext]

	// storage reads and writes the current state for a context.
	storage StateStorage[TState, TContext]

	// unhandledTriggerAction is called when a trigger is fired but not handled.
	unhandledTriggerAction UnhandledTriggerAction[TState, TTrigger, TContext]

	// transitionedHandlers are called after every completed transition.
	transitionedHandlers []func(Transition[TState, TTrigger, TContext])

	logger *slog.Logger
	hooks  Hooks
}

// NewStateMachine creates a state machine that keeps a single state value,
// starting at initialState. A nil config creates an empty configuration.
func NewStateMachine[TState, TTrigger comparable, TContext any](
	initialState TState,
	config *StateMachineConfig[TState, TTrigger, TContext],
	opts ...Option,
) *StateMachine[TState, TTrigger, TContext] {
	return NewStateMachineWithStorage(NewStateReference[TState, TContext](initialState), config, opts...)
}

// NewStateMachineWithExternalStorage creates a state machine whose state is
// read by stateAccessor and written by stateMutator.
func NewStateMachineWithExternalStorage[TState, TTrigger comparable, TContext any](
	stateAccessor func(c TContext) TState,
	stateMutator func(state TState, c TContext),
	config *StateMachineConfig[TState, TTrigger, TContext],
	opts ...Option,
) *StateMachine[TState, TTrigger, TContext] {
	if stateAccessor == nil {
		panic(&ArgumentError{ParamName: "stateAccessor", Message: "state accessor is nil"})
	}
	if stateMutator == nil {
		panic(&ArgumentError{ParamName: "stateMutator", Message: "state mutator is nil"})
	}
	return NewStateMachineWithStorage[TState, TTrigger](
		StateStorageFuncs[TState, TContext]{Get: stateAccessor, Set: stateMutator},
		config,
		opts...,
	)
}

// NewStateMachineWithStorage creates a state machine over the given storage.
func NewStateMachineWithStorage[TState, TTrigger comparable, TContext any](
	storage StateStorage[TState, TContext],
	config *StateMachineConfig[TState, TTrigger, TContext],
	opts ...Option,
) *StateMachine[TState, TTrigger, TContext] {
	if storage == nil {
		panic(&ArgumentError{ParamName: "storage", Message: "state storage is nil"})
	}
	if config == nil {
		config = NewStateMachineConfig[TState, TTrigger, TContext]()
	}
	o := newOptions(opts)
	return &StateMachine[TState, TTrigger, TContext]{
		config:  config,
		storage: storage,
		logger:  o.logger,
		hooks:   o.hooks,
	}
}

// Configure begins configuration of a state on the machine's configuration.
func (sm *StateMachine[TState, TTrigger, TContext]) Configure(state TState) *StateConfiguration[TState, TTrigger, TContext] {
	return sm.config.Configure(state)
}

// Configuration returns the configuration the machine fires against.
func (sm *StateMachine[TState, TTrigger, TContext]) Configuration() *StateMachineConfig[TState, TTrigger, TContext] {
	return sm.config
}

// State returns the current state for context.
func (sm *StateMachine[TState, TTrigger, TContext]) State(c TContext) TState {
	return sm.storage.State(c)
}

// Fire transitions from the current state via the specified trigger.
// The destination is determined by the configuration of the current state.
// Exit actions of the states being left and entry actions of the states
// being entered are run, in that order. Errors raised by guards, actions or
// selectors are returned unchanged; actions already run are not undone.
func (sm *StateMachine[TState, TTrigger, TContext]) Fire(trigger TTrigger, c TContext, args ...any) error {
	parameters, _ := sm.config.TriggerConfiguration(trigger)
	return sm.internalFire(trigger, parameters, c, args)
}

// FireParameters fires a parameterized trigger. The arguments are validated
// against the parameter types of trigger before any state is read.
func (sm *StateMachine[TState, TTrigger, TContext]) FireParameters(
	trigger *TriggerWithParameters[TTrigger],
	c TContext,
	args ...any,
) error {
	if trigger == nil {
		return &ArgumentError{ParamName: "trigger", Message: "parameterized trigger is nil"}
	}
	return sm.internalFire(trigger.Trigger(), trigger, c, args)
}

// internalFire processes a single trigger and reports it to the hooks.
// A nil parameters accepts any arguments.
func (sm *StateMachine[TState, TTrigger, TContext]) internalFire(
	trigger TTrigger,
	parameters *TriggerWithParameters[TTrigger],
	c TContext,
	args []any,
) error {
	start := time.Now()
	event, err := sm.fire(trigger, parameters, c, args)
	if sm.hooks.OnFire != nil {
		event.Trigger = trigger
		event.Err = err
		event.Duration = time.Since(start)
		sm.hooks.OnFire(event)
	}
	return err
}

func (sm *StateMachine[TState, TTrigger, TContext]) fire(
	trigger TTrigger,
	parameters *TriggerWithParameters[TTrigger],
	c TContext,
	args []any,
) (FireEvent, error) {
	if parameters != nil {
		if err := parameters.ValidateParameters(args); err != nil {
			return FireEvent{Outcome: OutcomeFailed}, err
		}
	}
	if args == nil {
		args = []any{}
	}

	source := sm.State(c)
	event := FireEvent{Source: source, Outcome: OutcomeFailed}
	representation := sm.representation(source)
	logger := sm.fireLogger(trigger, source)
	logger.Debug("firing trigger")

	handler, err := representation.TryFindHandler(trigger, c)
	if err != nil {
		return event, err
	}
	if handler == nil {
		logger.Debug("trigger unhandled")
		event.Outcome = OutcomeUnhandled
		return event, sm.handleUnhandledTrigger(representation, trigger, c)
	}

	var (
		destination TState
		transitions bool
	)
	switch behaviour := handler.(type) {
	case *IgnoredTriggerBehaviour[TState, TTrigger, TContext]:
		logger.Debug("trigger ignored")
		event.Outcome = OutcomeIgnored
		return event, nil
	case *TransitioningTriggerBehaviour[TState, TTrigger, TContext]:
		destination, transitions, err = behaviour.ResultsInTransitionFrom(source, c, args)
	case *DynamicTriggerBehaviour[TState, TTrigger, TContext]:
		destination, transitions, err = behaviour.ResultsInTransitionFrom(source, c, args)
	default:
		return event, &InvalidOperationError{Message: fmt.Sprintf("unknown trigger behaviour type: %T", handler)}
	}
	if err != nil {
		return event, err
	}
	if !transitions {
		event.Outcome = OutcomeIgnored
		return event, nil
	}

	transition := NewTransition(source, destination, trigger, c)

	if err := representation.Exit(transition); err != nil {
		return event, err
	}

	sm.storage.SetState(destination, c)

	if err := sm.representation(destination).Enter(transition, args); err != nil {
		return event, err
	}

	logger.Debug("transitioned", "destination", destination, "reentry", transition.IsReentry())
	for _, h := range sm.transitionedHandlers {
		h(transition)
	}

	event.Outcome = OutcomeTransitioned
	event.Destination = destination
	return event, nil
}

// handleUnhandledTrigger applies the unhandled trigger policy.
func (sm *StateMachine[TState, TTrigger, TContext]) handleUnhandledTrigger(
	representation *StateRepresentation[TState, TTrigger, TContext],
	trigger TTrigger,
	c TContext,
) error {
	state := representation.UnderlyingState()
	if sm.unhandledTriggerAction != nil {
		return sm.unhandledTriggerAction(state, trigger, c)
	}

	permittedTriggers := representation.PermittedTriggers(c)
	permitted := make([]any, len(permittedTriggers))
	for i, t := range permittedTriggers {
		permitted[i] = t
	}

	return &InvalidTransitionError{
		State:             state,
		Trigger:           trigger,
		Context:           c,
		PermittedTriggers: permitted,
	}
}

// OnUnhandledTrigger overrides the default behaviour of returning an
// *InvalidTransitionError when a trigger has no handler.
func (sm *StateMachine[TState, TTrigger, TContext]) OnUnhandledTrigger(action UnhandledTriggerAction[TState, TTrigger, TContext]) {
	if action == nil {
		panic(&ArgumentError{ParamName: "action", Message: "unhandled trigger action is nil"})
	}
	sm.unhandledTriggerAction = action
}

// OnTransitioned registers a callback that is called after a transition
// completes, once every exit and entry action has succeeded.
func (sm *StateMachine[TState, TTrigger, TContext]) OnTransitioned(handler func(Transition[TState, TTrigger, TContext])) {
	if handler == nil {
		panic(&ArgumentError{ParamName: "handler", Message: "transition handler is nil"})
	}
	sm.transitionedHandlers = append(sm.transitionedHandlers, handler)
}

// IsInState returns true if the current state is the specified state or a substate of it.
func (sm *StateMachine[TState, TTrigger, TContext]) IsInState(state TState, c TContext) bool {
	return sm.currentRepresentation(c).IsIncludedIn(state)
}

// CanFire returns true if trigger would be handled in the current state.
// Triggers whose guards are ambiguous cannot be fired.
func (sm *StateMachine[TState, TTrigger, TContext]) CanFire(trigger TTrigger, c TContext) bool {
	return sm.currentRepresentation(c).CanHandle(trigger, c)
}

// PermittedTriggers returns the triggers that can be fired from the current state.
func (sm *StateMachine[TState, TTrigger, TContext]) PermittedTriggers(c TContext) []TTrigger {
	return sm.currentRepresentation(c).PermittedTriggers(c)
}

// Info returns a snapshot of the configuration for introspection, marking the
// current state for context as the initial state.
func (sm *StateMachine[TState, TTrigger, TContext]) Info(c TContext) *StateMachineInfo {
	return sm.config.Info(sm.State(c))
}

// currentRepresentation returns the representation of the current state.
func (sm *StateMachine[TState, TTrigger, TContext]) currentRepresentation(c TContext) *StateRepresentation[TState, TTrigger, TContext] {
	return sm.representation(sm.State(c))
}

// representation returns the configured representation of state, or an empty
// one that handles nothing when the state was never configured.
func (sm *StateMachine[TState, TTrigger, TContext]) representation(state TState) *StateRepresentation[TState, TTrigger, TContext] {
	if representation, ok := sm.config.Representation(state); ok {
		return representation
	}
	return NewStateRepresentation[TState, TTrigger, TContext](state)
}

// fireLogger returns a logger carrying the attributes of one firing.
func (sm *StateMachine[TState, TTrigger, TContext]) fireLogger(trigger TTrigger, source TState) *slog.Logger {
	if !sm.logger.Enabled(context.Background(), slog.LevelDebug) {
		return sm.logger
	}
	return sm.logger.With(
		"fire_id", uuid.NewString(),
		"trigger", fmt.Sprintf("%v", trigger),
		"state", fmt.Sprintf("%v", source),
	)
}

// String returns a string representation of the machine.
func (sm *StateMachine[TState, TTrigger, TContext]) String() string {
	return fmt.Sprintf("StateMachine { States = %d }", len(sm.config.States()))
}
