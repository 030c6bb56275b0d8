package catena

import (
	"context"

	"github.com/petrijr/catena/internal/sched"
)

// Runtime bundles an Executor, a Scheduler, and an in-memory event journal
// to provide a simple single-process setup for development and debugging.
//
// Typical usage:
//
//	rt := catena.NewRuntime()
//	defer rt.Stop()
//
//	chain := catena.NewChain().Step(...).Step(...).Build()
//	result, err := rt.Execute(ctx, chain, catena.NewState())
//
//	events, _ := rt.History(ctx, executionID)
type Runtime struct {
	// Executor runs chains and records their history in Journal.
	Executor *Executor

	// Scheduler defers chains to wall-clock deadlines using Executor.
	Scheduler Scheduler

	// Journal holds the append-only chain history.
	Journal EventStore
}

// NewRuntime constructs a Runtime backed by an in-memory journal and a
// wall-clock scheduler with the default tick.
func NewRuntime() *Runtime {
	return NewRuntimeWithObserver(nil)
}

// NewRuntimeWithObserver is NewRuntime with an extra Observer combined with
// the journal recorder.
func NewRuntimeWithObserver(obs Observer) *Runtime {
	store := NewMemoryJournal()
	executor := NewExecutorWithObserver(
		NewCompositeObserver(NewJournalObserver(store), obs),
	)
	scheduler := sched.New(sched.Config{Executor: executor})
	return &Runtime{
		Executor:  executor,
		Scheduler: scheduler,
		Journal:   store,
	}
}

// Execute runs a chain on the runtime's executor.
func (r *Runtime) Execute(ctx context.Context, n Node, s State) (any, error) {
	return r.Executor.Execute(ctx, n, s)
}

// History returns the journal entries for one execution, in append order.
func (r *Runtime) History(ctx context.Context, executionID string) ([]ChainEvent, error) {
	return r.Journal.ListEvents(ctx, executionID)
}

// Stop shuts down the scheduler, cancelling outstanding scheduled work and
// waiting for it to settle. Synchronous Execute calls are unaffected.
func (r *Runtime) Stop() {
	r.Scheduler.Stop()
}
