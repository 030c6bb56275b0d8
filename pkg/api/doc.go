// Package api contains the core building blocks of the catena chain engine.
// It provides the low-level primitives for composing chains, executing them,
// and observing execution behavior.
//
// Most users interact with the higher-level catena package, which re-exports
// selected types and helpers from this package. The api package is intended
// for advanced use cases, custom integrations, or contributors extending the
// engine itself.
//
// # Concepts
//
// The api package centers around a small set of concepts:
//
//   - Immutable execution state
//   - Nodes and handlers
//   - Combinator composition
//   - Failure containment and escalation
//   - Asynchronous tasks and observability
//
// These primitives are assembled by the higher-level ChainBuilder API in the
// catena package, but can also be used directly where fine-grained control is
// needed.
//
// # State
//
// State is an immutable value carrying iteration and attempt counters, the
// previous node's result, and an open key/value map. Every With* method
// returns a new State; handlers holding a reference to their input can never
// observe later mutations, including across parallel branches.
//
// # Nodes and Handlers
//
// A Node pairs a handler with an optional continuation and success/failure
// hooks. Nodes are persistent values: Then, OnSuccess and similar methods
// return derived nodes and never modify the receiver, so a chain can be
// reused and composed freely after it has executed.
//
// Handlers are expected to:
//
//   - Treat their input State as read-only and derive new states via With*.
//   - Return a State value when the continuation should see accumulated
//     state; any other result is visible only as PreviousResult.
//   - Report failure through the error return, not panics. Panics are
//     contained anyway and surface as a PanicError.
//
// # Failure Containment
//
// Failures are swallowed by default: a handler error or panic fires the
// node's FailureHook, yields a nil result, and is logged rather than
// returned. Only Retry exhaustion and Fallback failure escalate an error to
// the caller of Execute. This keeps one misbehaving node from taking down
// the chain around it.
//
// # Tasks and Scheduling
//
// Go runs a function on its own goroutine behind a Task handle with a
// five-state lifecycle, join-with-timeout, and best-effort cancellation.
// Parallel builds on tasks to fan branches out and join results in declared
// order. The Scheduler interface defers chains to wall-clock deadlines; the
// implementation lives in internal/sched and is constructed per instance,
// never as a process global.
//
// # Observability
//
// The api package defines the Observer interface, which executors use to
// report chain and node lifecycle events. Ready-made implementations cover
// structured logging, in-memory counters, Prometheus export, and an
// append-only event journal.
//
// See the catena package documentation and the examples directory for
// end-to-end usage.
package api
