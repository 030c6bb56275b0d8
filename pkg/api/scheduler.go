package api

import "context"

// Forever makes Scheduler.Schedule repeat until cancelled or the scheduler
// stops.
const Forever = -1

// Scheduler runs chains on a deadline instead of immediately. Implementations
// are instances, not process globals: construct as many as you need and stop
// each one independently.
//
// Every method returns without blocking; the returned Task settles when the
// scheduled work does.
type Scheduler interface {
	// Delay runs n once after the given number of ticks have elapsed on the
	// wall clock. The task's result is the chain's result.
	Delay(ctx context.Context, n Node, s State, ticks int) *Task

	// Schedule runs n every interval ticks, times times. times = Forever
	// repeats until cancelled; times = 0 completes immediately without
	// running. Each run sees Iteration set to the zero-based run index. The
	// task settles after the final run, or fails on the first escalation.
	Schedule(ctx context.Context, n Node, s State, interval, times int) *Task

	// Cron runs n on a five-field cron expression (minute granularity).
	// It returns an error when expr does not parse.
	Cron(ctx context.Context, n Node, s State, expr string) (*Task, error)

	// Stop cancels all outstanding work and waits for every spawned task to
	// settle.
	Stop()
}
