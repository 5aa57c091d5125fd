// Package graph renders a state machine configuration as a DOT or Mermaid
// diagram. Nodes are states and edges are trigger-labeled transitions whose
// destination is known at configuration time; ignored triggers and dynamic
// transitions are not drawn.
package graph

import (
	"github.com/atlekbai/hfsm"
)

// State represents a state in the graph.
type State struct {
	// StateName is the name of the state.
	StateName string

	// NodeName is the name used for the node in the graph.
	NodeName string

	// EntryActions are the entry actions for this state.
	EntryActions []string

	// ExitActions are the exit actions for this state.
	ExitActions []string

	// Leaving are the transitions leaving this state.
	Leaving []*Transition

	// Arriving are the transitions arriving at this state.
	Arriving []*Transition

	// SuperState is the parent state, if any.
	SuperState *SuperState

	// StateInfo contains the underlying state information.
	StateInfo *hfsm.StateInfo
}

// SuperState represents a state that contains substates.
type SuperState struct {
	*State

	// SubStates are the child states of this state that have no substates of their own.
	SubStates []*State

	// SubClusters are the child states that are superstates themselves.
	SubClusters []*SuperState
}

// Transition represents a transition in the graph.
type Transition struct {
	// Trigger is the trigger that causes this transition.
	Trigger any

	// SourceState is the source state of the transition.
	SourceState *State

	// DestinationState is the destination state of the transition.
	DestinationState *State

	// Guards are the guard descriptions for this transition.
	Guards []string

	// DestinationEntryActions are the trigger-bound entry actions executed at the destination.
	DestinationEntryActions []string
}

// IsReentry returns true if the transition leaves and re-enters the same state.
func (t *Transition) IsReentry() bool {
	return t.SourceState == t.DestinationState
}
