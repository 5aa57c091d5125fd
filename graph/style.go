package graph

import (
	"fmt"
	"strings"

	"github.com/atlekbai/hfsm"
)

// Style defines the interface for formatting state graphs.
type Style interface {
	// Prefix returns the text that starts a new graph.
	Prefix(g *StateGraph) string

	// InitialTransition returns the text for the initial state transition.
	InitialTransition(initialState *hfsm.StateInfo) string

	// FormatOneState formats a single state.
	FormatOneState(state *State) string

	// FormatOneCluster formats a superstate and its substates.
	FormatOneCluster(superState *SuperState) string

	// FormatOneTransition formats a single transition.
	FormatOneTransition(
		sourceNodeName, trigger string,
		actions []string,
		destinationNodeName string,
		guards []string,
	) string
}

// FormatTransitions formats all transitions using the given style.
func FormatTransitions(style Style, transitions []*Transition) []string {
	var lines []string
	for _, transit := range transitions {
		if transit.DestinationState == nil {
			continue
		}
		lines = append(lines, style.FormatOneTransition(
			transit.SourceState.NodeName,
			fmt.Sprintf("%v", transit.Trigger),
			transit.DestinationEntryActions,
			transit.DestinationState.NodeName,
			transit.Guards,
		))
	}
	return lines
}

// transitionLabel builds "trigger / action, action [guard] [guard]".
func transitionLabel(trigger string, actions, guards []string) string {
	var sb strings.Builder
	sb.WriteString(trigger)
	if len(actions) > 0 {
		sb.WriteString(" / ")
		sb.WriteString(strings.Join(actions, ", "))
	}
	for _, g := range guards {
		sb.WriteString(" [")
		sb.WriteString(g)
		sb.WriteString("]")
	}
	return sb.String()
}
