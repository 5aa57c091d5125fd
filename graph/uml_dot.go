package graph

import (
	"fmt"
	"strings"

	"github.com/atlekbai/hfsm"
)

// UmlDotGraphStyle generates DOT graphs in basic UML style.
type UmlDotGraphStyle struct{}

// NewUmlDotGraphStyle creates a new UML DOT graph style.
func NewUmlDotGraphStyle() *UmlDotGraphStyle {
	return &UmlDotGraphStyle{}
}

// UmlDot returns a StyleFactory for the UML DOT style.
func UmlDot() StyleFactory {
	return func(*StateGraph) Style { return NewUmlDotGraphStyle() }
}

// Prefix returns the text that starts a new DOT graph.
func (s *UmlDotGraphStyle) Prefix(*StateGraph) string {
	return "digraph {\n" +
		"compound=true;\n" +
		"node [shape=Mrecord]\n" +
		"rankdir=\"LR\"\n"
}

// FormatOneCluster formats a superstate and its substates.
func (s *UmlDotGraphStyle) FormatOneCluster(superState *SuperState) string {
	var sb strings.Builder

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "subgraph \"cluster%s\"\n", EscapeLabel(superState.NodeName))
	sb.WriteString("\t{\n")
	fmt.Fprintf(&sb, "\tlabel = \"%s\"\n", clusterLabel(superState.State))

	for _, cluster := range superState.SubClusters {
		sb.WriteString(s.FormatOneCluster(cluster))
	}
	for _, subState := range superState.SubStates {
		sb.WriteString(s.FormatOneState(subState))
	}

	sb.WriteString("}\n")
	return sb.String()
}

func clusterLabel(state *State) string {
	var label strings.Builder
	label.WriteString(EscapeLabel(state.StateName))

	if len(state.EntryActions) > 0 || len(state.ExitActions) > 0 {
		label.WriteString("\\n----------")
		for _, act := range state.EntryActions {
			label.WriteString("\\nentry / ")
			label.WriteString(EscapeLabel(act))
		}
		for _, act := range state.ExitActions {
			label.WriteString("\\nexit / ")
			label.WriteString(EscapeLabel(act))
		}
	}
	return label.String()
}

// FormatOneState formats a single state.
func (s *UmlDotGraphStyle) FormatOneState(state *State) string {
	escapedName := EscapeLabel(state.StateName)

	if len(state.EntryActions) == 0 && len(state.ExitActions) == 0 {
		return fmt.Sprintf("\"%s\" [label=\"%s\"];\n", escapedName, escapedName)
	}

	actions := make([]string, 0, len(state.EntryActions)+len(state.ExitActions))
	for _, act := range state.EntryActions {
		actions = append(actions, "entry / "+EscapeLabel(act))
	}
	for _, act := range state.ExitActions {
		actions = append(actions, "exit / "+EscapeLabel(act))
	}

	return fmt.Sprintf("\"%s\" [label=\"%s|%s\"];\n", escapedName, escapedName, strings.Join(actions, "\\n"))
}

// FormatOneTransition formats a single transition.
func (s *UmlDotGraphStyle) FormatOneTransition(
	sourceNodeName, trigger string,
	actions []string,
	destinationNodeName string,
	guards []string,
) string {
	return fmt.Sprintf("\"%s\" -> \"%s\" [style=\"solid\", label=\"%s\"];",
		EscapeLabel(sourceNodeName),
		EscapeLabel(destinationNodeName),
		EscapeLabel(transitionLabel(trigger, actions, guards)))
}

// InitialTransition returns the text for the initial state transition
// and closes the graph.
func (s *UmlDotGraphStyle) InitialTransition(initialState *hfsm.StateInfo) string {
	if initialState == nil {
		return "\n}"
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(" init [label=\"\", shape=point];")
	sb.WriteString("\n")
	fmt.Fprintf(&sb, " init -> \"%s\"[style = \"solid\"]", EscapeLabel(initialState.String()))
	sb.WriteString("\n")
	sb.WriteString("}")
	return sb.String()
}

// EscapeLabel escapes backslashes and double quotes in a label.
func EscapeLabel(label string) string {
	label = strings.ReplaceAll(label, "\\", "\\\\")
	label = strings.ReplaceAll(label, "\"", "\\\"")
	return label
}

// UmlDotGraph generates a UML DOT graph from state machine info.
func UmlDotGraph(machineInfo *hfsm.StateMachineInfo) string {
	return NewStateGraph(machineInfo).ToGraph(NewUmlDotGraphStyle())
}
