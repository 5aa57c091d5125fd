package hfsm

import (
	"fmt"
	"reflect"
)

// TriggerWithParameters associates declared argument types with an underlying trigger value.
// It is obtained from StateMachineConfig.SetTriggerParameters and passed to
// StateMachine.FireParameters.
type TriggerWithParameters[TTrigger comparable] struct {
	underlyingTrigger TTrigger
	argumentTypes     []reflect.Type
}

// NewTriggerWithParameters creates a new configured trigger.
func NewTriggerWithParameters[TTrigger comparable](
	underlyingTrigger TTrigger,
	argumentTypes ...reflect.Type,
) *TriggerWithParameters[TTrigger] {
	return &TriggerWithParameters[TTrigger]{
		underlyingTrigger: underlyingTrigger,
		argumentTypes:     argumentTypes,
	}
}

// ArgumentTypes returns the argument types expected by this trigger.
func (t *TriggerWithParameters[TTrigger]) ArgumentTypes() []reflect.Type {
	return t.argumentTypes
}

// Trigger returns the underlying trigger value.
func (t *TriggerWithParameters[TTrigger]) Trigger() TTrigger {
	return t.underlyingTrigger
}

// String returns the underlying trigger followed by its argument types.
func (t *TriggerWithParameters[TTrigger]) String() string {
	return fmt.Sprintf("%v%v", t.underlyingTrigger, t.argumentTypes)
}

// ValidateParameters ensures that the supplied arguments match the declared
// arity and that every argument is assignable to its declared type.
// A nil argument is accepted for types that can hold nil.
func (t *TriggerWithParameters[TTrigger]) ValidateParameters(args []any) error {
	if len(args) > len(t.argumentTypes) {
		return &ParameterConversionError{
			Message: fmt.Sprintf(
				"too many parameters have been supplied for trigger '%v'. Expected %d but got %d",
				t.underlyingTrigger, len(t.argumentTypes), len(args)),
		}
	}

	for i, expectedType := range t.argumentTypes {
		if i >= len(args) {
			return &ParameterConversionError{
				Message: fmt.Sprintf(
					"an argument of type %v is required in position %d for trigger '%v'",
					expectedType, i, t.underlyingTrigger),
			}
		}
		arg := args[i]
		if arg == nil {
			if !nilable(expectedType) {
				return &ParameterConversionError{
					Message: fmt.Sprintf("argument at position %d is nil but type %v cannot be nil", i, expectedType),
				}
			}
			continue
		}
		argType := reflect.TypeOf(arg)
		if !argType.AssignableTo(expectedType) {
			return &ParameterConversionError{
				Message: fmt.Sprintf("argument at position %d is of type %v but expected type %v", i, argType, expectedType),
			}
		}
	}

	return nil
}

func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

// TypeOf returns the reflect.Type of T, including interface types.
// It is a convenience for SetTriggerParameters:
//
//	cfg.SetTriggerParameters(Assign, hfsm.TypeOf[string](), hfsm.TypeOf[int]())
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Arg returns the argument at position i converted to A.
// It returns a ParameterConversionError when the position is missing or the
// value has a different type. A nil argument yields the zero value of A.
func Arg[A any](args []any, i int) (A, error) {
	var zero A
	if i < 0 || i >= len(args) {
		return zero, &ParameterConversionError{
			Message: fmt.Sprintf("an argument of type %v is required in position %d", TypeOf[A](), i),
		}
	}
	if args[i] == nil {
		return zero, nil
	}
	value, ok := args[i].(A)
	if !ok {
		return zero, &ParameterConversionError{
			Message: fmt.Sprintf("argument at position %d is of type %T but expected type %v", i, args[i], TypeOf[A]()),
		}
	}
	return value, nil
}
