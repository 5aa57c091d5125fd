package hfsm

import (
	"fmt"
	"strings"
)

// InvalidOperationError indicates an operation that is not valid given the current configuration.
type InvalidOperationError struct {
	Message string
}

func (e *InvalidOperationError) Error() string {
	return e.Message
}

// ArgumentError indicates an invalid argument was passed.
type ArgumentError struct {
	ParamName string
	Message   string
}

func (e *ArgumentError) Error() string {
	if e.ParamName != "" {
		return fmt.Sprintf("%s (parameter: %s)", e.Message, e.ParamName)
	}
	return e.Message
}

// AmbiguousTriggerError is returned when more than one behaviour of a single
// state passes its guard for the same trigger.
type AmbiguousTriggerError struct {
	State   any
	Trigger any
}

func (e *AmbiguousTriggerError) Error() string {
	return fmt.Sprintf(
		"multiple permitted exit transitions are configured from state '%v' for trigger '%v'; "+
			"guards must be mutually exclusive",
		e.State, e.Trigger)
}

// InvalidTransitionError is returned when a trigger is fired from a state that
// has no handler for it and no unhandled trigger callback is registered.
type InvalidTransitionError struct {
	State             any
	Trigger           any
	Context           any
	PermittedTriggers []any
}

func (e *InvalidTransitionError) Error() string {
	var permitted string
	if len(e.PermittedTriggers) > 0 {
		triggers := make([]string, len(e.PermittedTriggers))
		for i, t := range e.PermittedTriggers {
			triggers[i] = fmt.Sprintf("%v", t)
		}
		permitted = fmt.Sprintf(" Permitted triggers: %s.", strings.Join(triggers, ", "))
	} else {
		permitted = " No valid leaving transitions are permitted from state."
	}

	return fmt.Sprintf(
		"no valid leaving transitions are permitted from state '%v' for trigger '%v' in context '%v'. "+
			"Consider ignoring the trigger.%s",
		e.State, e.Trigger, e.Context, permitted)
}

// ParameterConversionError indicates arguments that do not match the
// parameters declared for a trigger.
type ParameterConversionError struct {
	Message string
}

func (e *ParameterConversionError) Error() string {
	return e.Message
}
