// Package hfsm provides an embeddable, generic hierarchical state machine.
//
// A machine is described by three value types: the state, the trigger and a
// caller-defined context that is threaded through guards and actions. The
// context also addresses "which instance" when the state value itself lives
// outside the machine, so one configuration can drive many instances.
//
//   - Generic types for states, triggers and contexts
//   - Guard conditions for conditional transitions
//   - Entry and exit actions, optionally filtered by trigger
//   - Hierarchical states (substates and superstates)
//   - Parameterized triggers with runtime argument validation
//   - Dynamic transitions whose destination is computed at fire time
//   - Reentry and ignored triggers
//   - Introspection for graph generation
//
// # Basic Usage
//
// Build a configuration and a machine with a single stored state:
//
//	cfg := hfsm.NewStateMachineConfig[State, Trigger, *Order]()
//	cfg.Configure(Pending).Permit(Pay, Paid)
//	sm := hfsm.NewStateMachine(Pending, cfg)
//
// Fire triggers to cause transitions:
//
//	err := sm.Fire(Pay, order)
//
// # External State Storage
//
// When the state is stored on the context itself, supply a storage
// capability instead of an initial state:
//
//	sm := hfsm.NewStateMachineWithExternalStorage(
//	    func(o *Order) State { return o.Status },
//	    func(s State, o *Order) { o.Status = s },
//	    cfg,
//	)
//
// # Hierarchical States
//
//	cfg.Configure(Shipped).SubstateOf(Paid)
//
// A substate inherits every trigger its superstate handles or ignores.
// Entering a substate from outside runs superstate entry actions first;
// leaving it runs substate exit actions first.
//
// # Concurrency
//
// A machine does no locking. Fire runs to completion on the calling
// goroutine; callers that fire concurrently against the same context must
// serialize those calls themselves.
//
// # Observability
//
// Diagnostics are written to a log/slog logger supplied with WithLogger.
// WithHooks registers callbacks that see every firing with its outcome;
// package metrics turns them into Prometheus counters:
//
//	collector, _ := metrics.NewCollector("orders", prometheus.DefaultRegisterer)
//	sm := hfsm.NewStateMachine(Pending, cfg, hfsm.WithHooks(collector.Hooks()))
//
// # Graph Generation
//
//	import "github.com/atlekbai/hfsm/graph"
//	dot := graph.UmlDotGraph(sm.Info(order))
package hfsm
