// Package definition loads declarative state machine definitions from YAML
// and builds them into configurations with string states and triggers.
//
// A definition looks like:
//
//	initial: OffHook
//	states:
//	  - name: OffHook
//	    permit:
//	      - trigger: CallDialed
//	        to: Ringing
//	  - name: Ringing
//	    permit:
//	      - trigger: CallConnected
//	        to: Connected
//	  - name: Connected
//	    ignore: [Noise]
//	    permit_reentry: [Refresh]
//	  - name: OnHold
//	    substate_of: Connected
//
// Definitions carry no guards or actions; attach those in code on the
// returned configuration.
package definition

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atlekbai/hfsm"
)

// ErrInvalidDefinition is wrapped by every validation failure.
var ErrInvalidDefinition = errors.New("invalid state machine definition")

// Definition is a declarative state machine.
type Definition struct {
	Initial string  `yaml:"initial"`
	States  []State `yaml:"states"`
}

// State declares the behaviour of one state.
type State struct {
	Name          string       `yaml:"name"`
	SubstateOf    string       `yaml:"substate_of,omitempty"`
	Permit        []Transition `yaml:"permit,omitempty"`
	PermitReentry []string     `yaml:"permit_reentry,omitempty"`
	Ignore        []string     `yaml:"ignore,omitempty"`
}

// Transition declares a trigger leading to another state.
type Transition struct {
	Trigger string `yaml:"trigger"`
	To      string `yaml:"to"`
}

// Load reads and validates the definition stored at path.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a YAML definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate reports every problem that would make Build fail or produce a
// machine with ambiguous transitions.
func (d *Definition) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidDefinition, fmt.Sprintf(format, args...)))
	}

	declared := make(map[string]*State, len(d.States))
	for i := range d.States {
		s := &d.States[i]
		switch {
		case s.Name == "":
			invalid("state #%d has no name", i+1)
		case declared[s.Name] != nil:
			invalid("state %q is declared more than once", s.Name)
		default:
			declared[s.Name] = s
		}
	}

	if d.Initial == "" {
		invalid("initial state is not set")
	} else if declared[d.Initial] == nil {
		invalid("initial state %q is not declared", d.Initial)
	}

	for i := range d.States {
		s := &d.States[i]
		if s.Name == "" {
			continue
		}
		if s.SubstateOf != "" && declared[s.SubstateOf] == nil {
			invalid("state %q is a substate of undeclared state %q", s.Name, s.SubstateOf)
		}

		triggers := make(map[string]bool)
		claim := func(trigger string) {
			if trigger == "" {
				invalid("state %q has a transition without a trigger", s.Name)
				return
			}
			if triggers[trigger] {
				invalid("state %q handles trigger %q more than once", s.Name, trigger)
			}
			triggers[trigger] = true
		}

		for _, p := range s.Permit {
			claim(p.Trigger)
			switch {
			case p.To == "":
				invalid("state %q permits %q without a destination", s.Name, p.Trigger)
			case p.To == s.Name:
				invalid("state %q permits %q to itself; use permit_reentry or ignore", s.Name, p.Trigger)
			case declared[p.To] == nil:
				invalid("state %q permits %q to undeclared state %q", s.Name, p.Trigger, p.To)
			}
		}
		for _, trigger := range s.PermitReentry {
			claim(trigger)
		}
		for _, trigger := range s.Ignore {
			claim(trigger)
		}
	}

	if err := d.checkHierarchy(declared); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// checkHierarchy rejects superstate cycles.
func (d *Definition) checkHierarchy(declared map[string]*State) error {
	for _, s := range d.States {
		seen := map[string]bool{s.Name: true}
		for parent := s.SubstateOf; parent != ""; {
			if seen[parent] {
				return fmt.Errorf("%w: superstate cycle through %q", ErrInvalidDefinition, s.Name)
			}
			seen[parent] = true
			next, ok := declared[parent]
			if !ok {
				break
			}
			parent = next.SubstateOf
		}
	}
	return nil
}

// Build validates the definition and builds a configuration from it.
// States are configured in declaration order.
func (d *Definition) Build() (*hfsm.StateMachineConfig[string, string, any], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	config := hfsm.NewStateMachineConfig[string, string, any]()
	for _, s := range d.States {
		config.Configure(s.Name)
	}

	for _, s := range d.States {
		sc := config.Configure(s.Name)
		if s.SubstateOf != "" {
			sc.SubstateOf(s.SubstateOf)
		}
		for _, p := range s.Permit {
			sc.Permit(p.Trigger, p.To)
		}
		for _, trigger := range s.PermitReentry {
			sc.PermitReentry(trigger)
		}
		for _, trigger := range s.Ignore {
			sc.Ignore(trigger)
		}
	}

	return config, nil
}

// NewStateMachine builds the definition into a state machine starting in
// the initial state.
func (d *Definition) NewStateMachine(opts ...hfsm.Option) (*hfsm.StateMachine[string, string, any], error) {
	config, err := d.Build()
	if err != nil {
		return nil, err
	}
	return hfsm.NewStateMachine(d.Initial, config, opts...), nil
}

// Info builds the definition and returns its introspection snapshot with the
// initial state marked.
func (d *Definition) Info() (*hfsm.StateMachineInfo, error) {
	config, err := d.Build()
	if err != nil {
		return nil, err
	}
	return config.Info(d.Initial), nil
}
