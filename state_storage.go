package hfsm

// StateStorage is the capability a StateMachine uses to read and write the
// current state of the instance addressed by a context.
type StateStorage[TState comparable, TContext any] interface {
	// State returns the current state for context.
	State(context TContext) TState

	// SetState stores state for context.
	SetState(state TState, context TContext)
}

// StateReference stores a single state value and ignores the context.
// It suits the common case of one machine instance per configuration.
type StateReference[TState comparable, TContext any] struct {
	state TState
}

// NewStateReference creates a StateReference holding initialState.
func NewStateReference[TState comparable, TContext any](initialState TState) *StateReference[TState, TContext] {
	return &StateReference[TState, TContext]{state: initialState}
}

// State returns the stored state.
func (r *StateReference[TState, TContext]) State(_ TContext) TState {
	return r.state
}

// SetState stores the state.
func (r *StateReference[TState, TContext]) SetState(state TState, _ TContext) {
	r.state = state
}

// StateStorageFuncs adapts a getter and setter pair to StateStorage.
type StateStorageFuncs[TState comparable, TContext any] struct {
	Get func(context TContext) TState
	Set func(state TState, context TContext)
}

// State calls Get.
func (f StateStorageFuncs[TState, TContext]) State(context TContext) TState {
	return f.Get(context)
}

// SetState calls Set.
func (f StateStorageFuncs[TState, TContext]) SetState(state TState, context TContext) {
	f.Set(state, context)
}
