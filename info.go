package hfsm

import (
	"fmt"
)

// StateMachineInfo exposes the states, transitions, and actions of a configuration.
type StateMachineInfo struct {
	// InitialState is the state marked as initial, if it is configured.
	InitialState *StateInfo

	// States contains all states in the order they were first referenced.
	States []*StateInfo

	// StateType is a string representation of the state type.
	StateType string

	// TriggerType is a string representation of the trigger type.
	TriggerType string
}

// StateInfo describes a state representation.
type StateInfo struct {
	// UnderlyingState is the value this state represents.
	UnderlyingState any

	// Superstate is the superstate defined, if any.
	Superstate *StateInfo

	// Substates are substates defined for this state.
	Substates []*StateInfo

	// EntryActions are actions executed on state-entry.
	EntryActions []ActionInfo

	// ExitActions are descriptions of actions executed on state-exit.
	ExitActions []string

	// FixedTransitions are transitions with a destination known at configuration time.
	FixedTransitions []FixedTransitionInfo

	// DynamicTransitions are transitions whose destination is computed when fired.
	DynamicTransitions []DynamicTransitionInfo

	// IgnoredTriggers are triggers ignored in this state.
	IgnoredTriggers []TransitionInfo
}

// String returns the string representation of the state.
func (s *StateInfo) String() string {
	if s == nil || s.UnderlyingState == nil {
		return "<null>"
	}
	return fmt.Sprintf("%v", s.UnderlyingState)
}

// ActionInfo describes an entry action.
type ActionInfo struct {
	// Description is the action description.
	Description string

	// FromTrigger is the trigger the action is bound to, or nil.
	FromTrigger any
}

// TransitionInfo describes the trigger and guards of a transition.
type TransitionInfo struct {
	// Trigger is the trigger whose firing results in this transition.
	Trigger any

	// GuardDescriptions describe the guard conditions.
	GuardDescriptions []string
}

// FixedTransitionInfo describes a transition to a fixed destination.
type FixedTransitionInfo struct {
	TransitionInfo

	// DestinationState is the state that will be transitioned into.
	DestinationState *StateInfo
}

// DynamicTransitionInfo describes a transition whose destination is computed when fired.
type DynamicTransitionInfo struct {
	TransitionInfo

	// PossibleDestinationStates are the documented possible destinations.
	PossibleDestinationStates []DynamicStateInfo
}

// Info returns a snapshot of the configuration. initialState marks the
// state drawn as the entry point by graph exporters.
func (c *StateMachineConfig[TState, TTrigger, TContext]) Info(initialState TState) *StateMachineInfo {
	stateInfos := make(map[TState]*StateInfo, len(c.stateOrder))
	states := make([]*StateInfo, 0, len(c.stateOrder))

	for _, state := range c.stateOrder {
		info := newStateInfo(c.stateRepresentations[state])
		stateInfos[state] = info
		states = append(states, info)
	}

	for _, state := range c.stateOrder {
		addStateRelationships(stateInfos[state], c.stateRepresentations[state], stateInfos)
	}

	var zeroTrigger TTrigger
	return &StateMachineInfo{
		InitialState: stateInfos[initialState],
		States:       states,
		StateType:    fmt.Sprintf("%T", initialState),
		TriggerType:  fmt.Sprintf("%T", zeroTrigger),
	}
}

// newStateInfo creates a StateInfo from a StateRepresentation.
func newStateInfo[TState, TTrigger comparable, TContext any](rep *StateRepresentation[TState, TTrigger, TContext]) *StateInfo {
	entryActions := make([]ActionInfo, len(rep.EntryActions()))
	for i, action := range rep.EntryActions() {
		entryActions[i] = ActionInfo{Description: action.Description()}
		if trigger, ok := action.FromTrigger(); ok {
			entryActions[i].FromTrigger = trigger
		}
	}

	exitActions := make([]string, len(rep.ExitActions()))
	for i, action := range rep.ExitActions() {
		exitActions[i] = action.Description()
	}

	return &StateInfo{
		UnderlyingState: rep.UnderlyingState(),
		EntryActions:    entryActions,
		ExitActions:     exitActions,
	}
}

// addStateRelationships fills in the hierarchy and transitions of a StateInfo.
func addStateRelationships[TState, TTrigger comparable, TContext any](
	info *StateInfo,
	rep *StateRepresentation[TState, TTrigger, TContext],
	stateInfos map[TState]*StateInfo,
) {
	if rep.Superstate() != nil {
		info.Superstate = stateInfos[rep.Superstate().UnderlyingState()]
	}

	for _, substate := range rep.Substates() {
		if substateInfo, ok := stateInfos[substate.UnderlyingState()]; ok {
			info.Substates = append(info.Substates, substateInfo)
		}
	}

	for _, trigger := range rep.Triggers() {
		for _, behaviour := range rep.TriggerBehaviours(trigger) {
			base := TransitionInfo{
				Trigger:           trigger,
				GuardDescriptions: behaviour.Guard().Descriptions(),
			}
			switch b := behaviour.(type) {
			case *TransitioningTriggerBehaviour[TState, TTrigger, TContext]:
				if destInfo, ok := stateInfos[b.Destination]; ok {
					info.FixedTransitions = append(info.FixedTransitions, FixedTransitionInfo{
						TransitionInfo:   base,
						DestinationState: destInfo,
					})
				}
			case *DynamicTriggerBehaviour[TState, TTrigger, TContext]:
				info.DynamicTransitions = append(info.DynamicTransitions, DynamicTransitionInfo{
					TransitionInfo:            base,
					PossibleDestinationStates: b.PossibleDestinations,
				})
			case *IgnoredTriggerBehaviour[TState, TTrigger, TContext]:
				info.IgnoredTriggers = append(info.IgnoredTriggers, base)
			}
		}
	}
}
