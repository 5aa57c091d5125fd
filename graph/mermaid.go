package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/atlekbai/hfsm"
)

// MermaidGraphDirection specifies the direction of the Mermaid graph.
type MermaidGraphDirection int

const (
	// TopToBottom flows from top to bottom.
	TopToBottom MermaidGraphDirection = iota
	// BottomToTop flows from bottom to top.
	BottomToTop
	// LeftToRight flows from left to right.
	LeftToRight
	// RightToLeft flows from right to left.
	RightToLeft
)

// ParseMermaidGraphDirection parses a direction code such as "LR".
func ParseMermaidGraphDirection(code string) (MermaidGraphDirection, error) {
	switch strings.ToUpper(code) {
	case "TB":
		return TopToBottom, nil
	case "BT":
		return BottomToTop, nil
	case "LR":
		return LeftToRight, nil
	case "RL":
		return RightToLeft, nil
	default:
		return TopToBottom, fmt.Errorf("unknown mermaid direction %q", code)
	}
}

// MermaidGraphStyle generates Mermaid state diagrams.
type MermaidGraphStyle struct {
	direction *MermaidGraphDirection

	// aliases maps state names to node names that are valid in Mermaid.
	aliases map[string]string
	// aliasOrder holds the renamed states in sorted order.
	aliasOrder []string
}

// NewMermaidGraphStyle creates a new Mermaid graph style for graph.
// A nil direction leaves the direction to the renderer.
func NewMermaidGraphStyle(graph *StateGraph, direction *MermaidGraphDirection) *MermaidGraphStyle {
	s := &MermaidGraphStyle{
		direction: direction,
		aliases:   make(map[string]string),
	}
	s.buildAliases(graph)
	return s
}

// Mermaid returns a StyleFactory for the Mermaid style.
func Mermaid(direction *MermaidGraphDirection) StyleFactory {
	return func(g *StateGraph) Style { return NewMermaidGraphStyle(g, direction) }
}

// Prefix returns the text that starts a new Mermaid graph.
func (s *MermaidGraphStyle) Prefix(*StateGraph) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2")

	if s.direction != nil {
		fmt.Fprintf(&sb, "\n\tdirection %s", GetDirectionCode(*s.direction))
	}

	for _, name := range s.aliasOrder {
		fmt.Fprintf(&sb, "\n\t%s : %s", s.aliases[name], name)
	}

	return sb.String()
}

// FormatOneCluster formats a superstate and its substates.
func (s *MermaidGraphStyle) FormatOneCluster(superState *SuperState) string {
	return s.formatCluster(superState, "\t")
}

func (s *MermaidGraphStyle) formatCluster(superState *SuperState, indent string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%sstate %s {", indent, s.nodeName(superState.StateName))

	for _, cluster := range superState.SubClusters {
		sb.WriteString(s.formatCluster(cluster, indent+"\t"))
	}
	for _, subState := range superState.SubStates {
		fmt.Fprintf(&sb, "\n%s\t%s", indent, s.nodeName(subState.StateName))
	}

	fmt.Fprintf(&sb, "\n%s}", indent)
	return sb.String()
}

// FormatOneState declares a state that no transition line names.
func (s *MermaidGraphStyle) FormatOneState(state *State) string {
	if len(state.Leaving) > 0 || len(state.Arriving) > 0 {
		return ""
	}
	return "\n\t" + s.nodeName(state.StateName)
}

// FormatOneTransition formats a single transition.
func (s *MermaidGraphStyle) FormatOneTransition(
	sourceNodeName, trigger string,
	actions []string,
	destinationNodeName string,
	guards []string,
) string {
	return fmt.Sprintf("\t%s --> %s : %s",
		s.nodeName(sourceNodeName),
		s.nodeName(destinationNodeName),
		transitionLabel(trigger, actions, guards))
}

// InitialTransition returns the text for the initial state transition.
func (s *MermaidGraphStyle) InitialTransition(initialState *hfsm.StateInfo) string {
	if initialState == nil {
		return ""
	}
	return fmt.Sprintf("\n[*] --> %s", s.nodeName(initialState.String()))
}

// buildAliases assigns a unique sanitized node name to every state whose
// name is not valid in Mermaid. States are visited in sorted order so the
// numbering of colliding aliases is stable.
func (s *MermaidGraphStyle) buildAliases(graph *StateGraph) {
	if graph == nil {
		return
	}

	taken := make(map[string]bool)
	for _, name := range graph.sortedStateNames() {
		sanitized := SanitizeStateName(name)
		if sanitized == name {
			continue
		}

		alias := sanitized
		for count := 1; taken[alias] || graph.States[alias] != nil; count++ {
			alias = fmt.Sprintf("%s_%d", sanitized, count)
		}
		taken[alias] = true

		s.aliases[name] = alias
		s.aliasOrder = append(s.aliasOrder, name)
	}
}

func (s *MermaidGraphStyle) nodeName(stateName string) string {
	if alias, ok := s.aliases[stateName]; ok {
		return alias
	}
	return stateName
}

// SanitizeStateName removes characters that would cause invalid Mermaid graphs.
func SanitizeStateName(name string) string {
	var result strings.Builder
	for _, c := range name {
		if !unicode.IsSpace(c) && c != ':' && c != '-' {
			result.WriteRune(c)
		}
	}
	return result.String()
}

// GetDirectionCode returns the Mermaid direction code.
func GetDirectionCode(direction MermaidGraphDirection) string {
	switch direction {
	case BottomToTop:
		return "BT"
	case LeftToRight:
		return "LR"
	case RightToLeft:
		return "RL"
	default:
		return "TB"
	}
}

// MermaidGraph generates a Mermaid graph from state machine info.
func MermaidGraph(machineInfo *hfsm.StateMachineInfo, direction *MermaidGraphDirection) string {
	graph := NewStateGraph(machineInfo)
	return graph.ToGraph(NewMermaidGraphStyle(graph, direction))
}
