package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/atlekbai/hfsm"
)

// StateGraph is a symbolic representation of the graph structure.
type StateGraph struct {
	// InitialState is the initial state of the machine.
	InitialState *hfsm.StateInfo

	// States contains all states in the graph, indexed by state name.
	States map[string]*State

	// Transitions contains all transitions in the graph.
	Transitions []*Transition
}

// NewStateGraph creates a new state graph from state machine info.
func NewStateGraph(machineInfo *hfsm.StateMachineInfo) *StateGraph {
	sg := &StateGraph{
		InitialState: machineInfo.InitialState,
		States:       make(map[string]*State),
	}

	for _, stateInfo := range machineInfo.States {
		sg.States[stateName(stateInfo)] = newState(stateInfo)
	}
	for _, stateInfo := range machineInfo.States {
		if stateInfo.Superstate == nil {
			continue
		}
		sub := sg.States[stateName(stateInfo)]
		if parent, ok := sg.States[stateName(stateInfo.Superstate)]; ok {
			sub.SuperState = &SuperState{State: parent}
		}
	}

	sg.addTransitions(machineInfo)
	sg.processOnEntryFrom(machineInfo)

	return sg
}

func newState(stateInfo *hfsm.StateInfo) *State {
	name := stateName(stateInfo)
	state := &State{
		StateName:   name,
		NodeName:    name,
		ExitActions: stateInfo.ExitActions,
		StateInfo:   stateInfo,
	}
	for _, action := range stateInfo.EntryActions {
		if action.FromTrigger == nil {
			state.EntryActions = append(state.EntryActions, action.Description)
		}
	}
	return state
}

func stateName(stateInfo *hfsm.StateInfo) string {
	return fmt.Sprintf("%v", stateInfo.UnderlyingState)
}

// addTransitions adds every fixed transition to the graph.
func (sg *StateGraph) addTransitions(machineInfo *hfsm.StateMachineInfo) {
	for _, stateInfo := range machineInfo.States {
		fromState := sg.States[stateName(stateInfo)]

		for _, fix := range stateInfo.FixedTransitions {
			toState := sg.States[stateName(fix.DestinationState)]
			trans := &Transition{
				Trigger:          fix.Trigger,
				SourceState:      fromState,
				DestinationState: toState,
				Guards:           fix.GuardDescriptions,
			}
			sg.Transitions = append(sg.Transitions, trans)
			fromState.Leaving = append(fromState.Leaving, trans)
			toState.Arriving = append(toState.Arriving, trans)
		}
	}
}

// processOnEntryFrom attaches trigger-bound entry actions to the arriving
// transitions with that trigger.
func (sg *StateGraph) processOnEntryFrom(machineInfo *hfsm.StateMachineInfo) {
	for _, stateInfo := range machineInfo.States {
		state := sg.States[stateName(stateInfo)]

		for _, entryAction := range stateInfo.EntryActions {
			if entryAction.FromTrigger == nil {
				continue
			}
			for _, transit := range state.Arriving {
				if transit.Trigger == entryAction.FromTrigger {
					transit.DestinationEntryActions = append(transit.DestinationEntryActions, entryAction.Description)
				}
			}
		}
	}
}

// ToGraph converts the state graph to a string representation using the specified style.
func (sg *StateGraph) ToGraph(style Style) string {
	var sb strings.Builder

	sb.WriteString(style.Prefix(sg))

	sortedStateNames := sg.sortedStateNames()

	// Clusters are the top-level superstates; nested ones are drawn inside them.
	for _, name := range sortedStateNames {
		state := sg.States[name]
		if state.SuperState == nil && sg.hasSubStates(state) {
			sb.WriteString(style.FormatOneCluster(sg.superState(state)))
		}
	}

	for _, name := range sortedStateNames {
		state := sg.States[name]
		if state.SuperState != nil || sg.hasSubStates(state) {
			continue
		}
		sb.WriteString(style.FormatOneState(state))
	}

	for _, line := range FormatTransitions(style, sg.sortedTransitions()) {
		sb.WriteString("\n")
		sb.WriteString(line)
	}

	sb.WriteString(style.InitialTransition(sg.InitialState))

	return sb.String()
}

// WriteTo writes the graph rendered with style to w.
func (sg *StateGraph) WriteTo(w io.Writer, style Style) (int64, error) {
	n, err := io.WriteString(w, sg.ToGraph(style))
	if err != nil {
		return int64(n), fmt.Errorf("write state graph: %w", err)
	}
	return int64(n), nil
}

// sortedStateNames returns state names in sorted order for deterministic output.
func (sg *StateGraph) sortedStateNames() []string {
	names := make([]string, 0, len(sg.States))
	for name := range sg.States {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortedTransitions returns transitions sorted by source state, then destination state, then trigger.
func (sg *StateGraph) sortedTransitions() []*Transition {
	sorted := make([]*Transition, len(sg.Transitions))
	copy(sorted, sg.Transitions)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i], sorted[j]
		if ti.SourceState.StateName != tj.SourceState.StateName {
			return ti.SourceState.StateName < tj.SourceState.StateName
		}
		if ti.DestinationState.StateName != tj.DestinationState.StateName {
			return ti.DestinationState.StateName < tj.DestinationState.StateName
		}
		return fmt.Sprintf("%v", ti.Trigger) < fmt.Sprintf("%v", tj.Trigger)
	})
	return sorted
}

func (sg *StateGraph) hasSubStates(state *State) bool {
	return state.StateInfo != nil && len(state.StateInfo.Substates) > 0
}

// superState builds the cluster view of a state with substates, nesting
// substates that are superstates themselves.
func (sg *StateGraph) superState(state *State) *SuperState {
	superState := &SuperState{State: state}
	for _, subInfo := range state.StateInfo.Substates {
		sub, ok := sg.States[stateName(subInfo)]
		if !ok {
			continue
		}
		if sg.hasSubStates(sub) {
			superState.SubClusters = append(superState.SubClusters, sg.superState(sub))
			continue
		}
		superState.SubStates = append(superState.SubStates, sub)
	}
	return superState
}

// StyleFactory creates the style used to render a graph. Some styles need
// the whole graph up front.
type StyleFactory func(g *StateGraph) Style

// Write renders machineInfo with style to w. Write faults are returned.
func Write(w io.Writer, machineInfo *hfsm.StateMachineInfo, style StyleFactory) error {
	sg := NewStateGraph(machineInfo)
	_, err := sg.WriteTo(w, style(sg))
	return err
}
