// Package catena is a small, embeddable chain engine for Go applications.
//
// A chain is an immutable graph of nodes. Each node wraps a handler, may
// carry success and failure hooks, and may continue into a next node. Chains
// are composed with combinators (conditionals, loops, filters, transforms,
// parallel fan-out, retries and fallbacks) and executed by an Executor that
// contains failures instead of propagating them.
//
// # Quick Start
//
//	chain := catena.NewChain().
//	    Step("load", func(ctx context.Context, s catena.State) (any, error) {
//	        return loadOrder(ctx, s)
//	    }).
//	    Step("charge", chargeCard).
//	    OnFailure(func(ctx context.Context, err error, s catena.State) {
//	        metrics.ChargeFailures.Inc()
//	    }).
//	    Build()
//
//	result, err := catena.Execute(ctx, chain, catena.NewState())
//
// # State
//
// Every handler receives a State: an immutable value holding an iteration
// counter, an attempt counter, the previous node's result, and an open
// key/value map. Deriving a new state never disturbs the old one, so
// snapshots taken before an execution stay valid during and after it, and
// parallel branches can never race on shared state.
//
// A handler that returns a State hands the accumulated state to its
// continuation. Any other return value is visible to the next node only as
// PreviousResult. Returning nil halts the chain without error.
//
// # Failure Containment
//
// Failures are contained by default. A handler error or panic fires the
// node's failure hook, yields a nil result, and is logged rather than
// returned; the caller of Execute sees it only when a Retry node exhausts
// its attempt budget or a Fallback node's fallback itself fails. Those two
// combinators are the only escalation paths.
//
// # Concurrency
//
// Go runs any function on its own goroutine behind a Task handle with a
// Created/Running/Completed/Failed/Cancelled lifecycle, join-with-timeout,
// and best-effort cancellation. Parallel fans branches out on tasks and
// joins their results in declared order, with each branch isolated behind
// its own panic boundary.
//
// # Scheduling
//
// A Scheduler defers chains to wall-clock deadlines: Delay runs a chain once
// after a number of ticks (50ms each by default), Schedule repeats it at an
// interval a fixed number of times or Forever, and Cron follows a five-field
// cron expression. Schedulers are instances constructed by the caller, never
// process globals, and Stop tears down exactly the work one instance owns.
//
// # Observability
//
// Executors report chain and node lifecycle events to an Observer. The
// package ships a structured-logging observer, an in-memory metrics
// observer, a Prometheus exporter, and a journal observer that records an
// append-only history to an in-memory or SQLite-backed event store. Combine
// them with NewCompositeObserver.
//
// # Runtime
//
// Runtime bundles an executor, a scheduler, and an in-memory journal for
// single-process use:
//
//	rt := catena.NewRuntime()
//	defer rt.Stop()
//	result, err := rt.Execute(ctx, chain, catena.NewState())
//
// See the examples directory for end-to-end programs.
package catena
