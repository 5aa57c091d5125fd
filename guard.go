package hfsm

import (
	"reflect"
	"runtime"
	"strings"
)

// GuardFunc reports whether a trigger behaviour applies in the given context.
type GuardFunc[TContext any] func(context TContext) bool

// DefaultFunctionDescription is the text used for anonymous functions
// when the caller has not specified a description.
var DefaultFunctionDescription = "Function"

// GuardCondition represents a single guard condition with its description.
type GuardCondition[TContext any] struct {
	// Guard returns true when the condition is met.
	Guard GuardFunc[TContext]

	description string
}

// NewGuardCondition creates a new guard condition. An empty description is
// derived from the guard's function name.
func NewGuardCondition[TContext any](guard GuardFunc[TContext], description string) GuardCondition[TContext] {
	if description == "" {
		description = describeFunc(guard)
	}
	return GuardCondition[TContext]{
		Guard:       guard,
		description: description,
	}
}

// Description returns the description of the guard.
func (g GuardCondition[TContext]) Description() string {
	return g.description
}

// IsMet returns true if the guard condition is met.
func (g GuardCondition[TContext]) IsMet(context TContext) bool {
	if g.Guard == nil {
		return true
	}
	return g.Guard(context)
}

// TransitionGuard contains a list of guard conditions that must all be met for a transition.
type TransitionGuard[TContext any] struct {
	Conditions []GuardCondition[TContext]
}

// NewTransitionGuard creates a new transition guard from a guard function.
// A nil guard yields an empty guard that always passes.
func NewTransitionGuard[TContext any](guard GuardFunc[TContext], description string) TransitionGuard[TContext] {
	if guard == nil {
		return TransitionGuard[TContext]{}
	}
	return TransitionGuard[TContext]{
		Conditions: []GuardCondition[TContext]{NewGuardCondition(guard, description)},
	}
}

// GuardConditionsMet returns true if all guard conditions are met.
func (tg TransitionGuard[TContext]) GuardConditionsMet(context TContext) bool {
	for _, c := range tg.Conditions {
		if !c.IsMet(context) {
			return false
		}
	}
	return true
}

// Descriptions returns the descriptions of all guard conditions.
func (tg TransitionGuard[TContext]) Descriptions() []string {
	if len(tg.Conditions) == 0 {
		return nil
	}
	result := make([]string, len(tg.Conditions))
	for i, c := range tg.Conditions {
		result[i] = c.Description()
	}
	return result
}

// IsEmpty returns true if the transition guard has no conditions.
func (tg TransitionGuard[TContext]) IsEmpty() bool {
	return len(tg.Conditions) == 0
}

// describeFunc returns the short name of fn, or DefaultFunctionDescription
// for closures and method values the compiler names for us.
func describeFunc(fn any) string {
	v := reflect.ValueOf(fn)
	if fn == nil || v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return DefaultFunctionDescription
	}
	name := f.Name()
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		name = name[idx+1:]
	}
	if name == "" || strings.HasPrefix(name, "func") || strings.HasSuffix(name, "-fm") {
		return DefaultFunctionDescription
	}
	return name
}

// firstOrEmpty returns the first element of the slice or empty string if empty.
func firstOrEmpty(s []string) string {
	if len(s) > 0 {
		return s[0]
	}
	return ""
}
