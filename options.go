package hfsm

import (
	"io"
	"log/slog"
	"time"
)

// Option configures a StateMachine.
type Option func(*options)

type options struct {
	logger *slog.Logger
	hooks  Hooks
}

// FireOutcome classifies how a firing ended.
type FireOutcome string

const (
	// OutcomeTransitioned means the machine left the source state and entered the destination.
	OutcomeTransitioned FireOutcome = "transitioned"
	// OutcomeIgnored means the trigger was ignored.
	OutcomeIgnored FireOutcome = "ignored"
	// OutcomeUnhandled means no behaviour handled the trigger.
	OutcomeUnhandled FireOutcome = "unhandled"
	// OutcomeFailed means an argument, guard, selector or action error stopped the firing.
	OutcomeFailed FireOutcome = "failed"
)

// FireEvent describes one completed call to Fire or FireParameters.
type FireEvent struct {
	// Source is the state the trigger was fired in. It is nil when the
	// arguments were rejected before the state was read.
	Source any

	// Destination is the state entered. It is nil unless the outcome is OutcomeTransitioned.
	Destination any

	Trigger  any
	Outcome  FireOutcome
	Err      error
	Duration time.Duration
}

// Hooks are observability callbacks invoked synchronously by the driver.
type Hooks struct {
	// OnFire is called once per firing, after every action has run.
	OnFire func(FireEvent)
}

// WithLogger configures the structured logger used for diagnostics.
// Logging never affects the outcome of a firing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
