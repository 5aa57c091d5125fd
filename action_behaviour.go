package hfsm

// EntryAction is executed when a state is entered. It receives the transition
// and the positional arguments passed to Fire.
type EntryAction[TState, TTrigger comparable, TContext any] func(
	transition Transition[TState, TTrigger, TContext],
	args []any,
) error

// ExitAction is executed when a state is exited.
type ExitAction[TState, TTrigger comparable, TContext any] func(
	transition Transition[TState, TTrigger, TContext],
) error

// EntryActionBehaviour represents an entry action for a state.
type EntryActionBehaviour[TState, TTrigger comparable, TContext any] struct {
	action      EntryAction[TState, TTrigger, TContext]
	description string

	// fromTrigger restricts the action to transitions caused by this trigger.
	fromTrigger    TTrigger
	hasFromTrigger bool
}

// NewEntryActionBehaviour creates an entry action that runs on every entry.
func NewEntryActionBehaviour[TState, TTrigger comparable, TContext any](
	action EntryAction[TState, TTrigger, TContext],
	description string,
) EntryActionBehaviour[TState, TTrigger, TContext] {
	if description == "" {
		description = describeFunc(action)
	}
	return EntryActionBehaviour[TState, TTrigger, TContext]{
		action:      action,
		description: description,
	}
}

// NewEntryActionBehaviourFrom creates an entry action that only runs when the
// transition was caused by trigger.
func NewEntryActionBehaviourFrom[TState, TTrigger comparable, TContext any](
	trigger TTrigger,
	action EntryAction[TState, TTrigger, TContext],
	description string,
) EntryActionBehaviour[TState, TTrigger, TContext] {
	b := NewEntryActionBehaviour(action, description)
	b.fromTrigger = trigger
	b.hasFromTrigger = true
	return b
}

// Execute runs the action unless it is bound to a different trigger.
func (e EntryActionBehaviour[TState, TTrigger, TContext]) Execute(
	transition Transition[TState, TTrigger, TContext],
	args []any,
) error {
	if e.hasFromTrigger && transition.Trigger != e.fromTrigger {
		return nil
	}
	if e.action == nil {
		return nil
	}
	return e.action(transition, args)
}

// Description returns the description of the action.
func (e EntryActionBehaviour[TState, TTrigger, TContext]) Description() string {
	return e.description
}

// FromTrigger returns the trigger this action is bound to, if any.
func (e EntryActionBehaviour[TState, TTrigger, TContext]) FromTrigger() (TTrigger, bool) {
	return e.fromTrigger, e.hasFromTrigger
}

// ExitActionBehaviour represents an exit action for a state.
type ExitActionBehaviour[TState, TTrigger comparable, TContext any] struct {
	action      ExitAction[TState, TTrigger, TContext]
	description string
}

// NewExitActionBehaviour creates a new exit action.
func NewExitActionBehaviour[TState, TTrigger comparable, TContext any](
	action ExitAction[TState, TTrigger, TContext],
	description string,
) ExitActionBehaviour[TState, TTrigger, TContext] {
	if description == "" {
		description = describeFunc(action)
	}
	return ExitActionBehaviour[TState, TTrigger, TContext]{
		action:      action,
		description: description,
	}
}

// Execute runs the exit action.
func (e ExitActionBehaviour[TState, TTrigger, TContext]) Execute(transition Transition[TState, TTrigger, TContext]) error {
	if e.action == nil {
		return nil
	}
	return e.action(transition)
}

// Description returns the description of the action.
func (e ExitActionBehaviour[TState, TTrigger, TContext]) Description() string {
	return e.description
}
