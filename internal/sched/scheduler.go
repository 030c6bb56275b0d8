package sched

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/petrijr/catena/pkg/api"
)

// cronParser accepts standard five-field cron expressions.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Config describes how to construct a Scheduler.
type Config struct {
	// Tick is the duration of one scheduling tick. Defaults to DefaultTick.
	Tick time.Duration

	// Clock supplies time. Defaults to WallClock.
	Clock Clock

	// Executor runs the scheduled chains. Defaults to a fresh executor.
	Executor *api.Executor

	// Logger records scheduling activity. Defaults to slog.Default().
	Logger *slog.Logger
}

// Scheduler defers chain executions to wall-clock deadlines. Each Scheduler
// is an independent instance owning the tasks it spawned; Stop tears down
// only its own work.
type Scheduler struct {
	tick     time.Duration
	clock    Clock
	executor *api.Executor
	logger   *slog.Logger

	mu      sync.Mutex
	tasks   []*api.Task
	stopped bool
}

// Ensure Scheduler implements the interface.
var _ api.Scheduler = (*Scheduler)(nil)

// New creates a Scheduler from cfg, filling in defaults for zero fields.
func New(cfg Config) *Scheduler {
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.Clock == nil {
		cfg.Clock = WallClock{}
	}
	if cfg.Executor == nil {
		cfg.Executor = api.NewExecutor()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Scheduler{
		tick:     cfg.Tick,
		clock:    cfg.Clock,
		executor: cfg.Executor,
		logger:   cfg.Logger,
	}
}

// spawn starts fn as a tracked task. After Stop the task settles immediately
// as cancelled instead of running.
func (s *Scheduler) spawn(ctx context.Context, fn func(ctx context.Context) (any, error)) *api.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return api.Go(ctx, func(context.Context) (any, error) {
			return nil, api.ErrTaskCancelled
		})
	}

	t := api.Go(ctx, fn)
	s.tasks = append(s.tasks, t)
	return t
}

// Delay runs n once after ticks ticks of wall-clock time. The call returns
// immediately; the task settles with the chain's result.
func (s *Scheduler) Delay(ctx context.Context, n api.Node, st api.State, ticks int) *api.Task {
	if ticks < 0 {
		ticks = 0
	}
	wait := time.Duration(ticks) * s.tick
	return s.spawn(ctx, func(ctx context.Context) (any, error) {
		if wait > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-s.clock.After(wait):
			}
		}
		return s.executor.Execute(ctx, n, st)
	})
}

// Schedule runs n every interval ticks, times times. times = api.Forever
// repeats until the task is cancelled or the scheduler stops; times = 0
// completes immediately without running. Each run sees Iteration set to the
// zero-based run index and runs to completion before the next interval
// starts counting. An escalated run fails the task and ends the schedule.
func (s *Scheduler) Schedule(ctx context.Context, n api.Node, st api.State, interval, times int) *api.Task {
	if interval < 0 {
		interval = 0
	}
	wait := time.Duration(interval) * s.tick
	return s.spawn(ctx, func(ctx context.Context) (any, error) {
		var last any
		for i := 0; times < 0 || i < times; i++ {
			if wait > 0 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-s.clock.After(wait):
				}
			}
			r, err := s.executor.Execute(ctx, n, st.WithIteration(i))
			if err != nil {
				return nil, err
			}
			last = r
			s.logger.DebugContext(ctx, "schedule_run_completed",
				slog.String("node", n.Name()),
				slog.Int("iteration", i))
		}
		return last, nil
	})
}

// Cron runs n whenever expr fires, until cancelled or the scheduler stops.
// expr is a standard five-field cron expression with minute granularity.
func (s *Scheduler) Cron(ctx context.Context, n api.Node, st api.State, expr string) (*api.Task, error) {
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", expr, err)
	}
	t := s.spawn(ctx, func(ctx context.Context) (any, error) {
		for i := 0; ; i++ {
			next := schedule.Next(s.clock.Now())
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-s.clock.After(next.Sub(s.clock.Now())):
			}
			if _, err := s.executor.Execute(ctx, n, st.WithIteration(i)); err != nil {
				return nil, err
			}
			s.logger.DebugContext(ctx, "cron_run_completed",
				slog.String("node", n.Name()),
				slog.String("expr", expr),
				slog.Int("iteration", i))
		}
	})
	return t, nil
}

// Stop cancels every outstanding task and blocks until they all settle.
// Further scheduling calls return already-cancelled tasks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	tasks := s.tasks
	s.mu.Unlock()

	for _, t := range tasks {
		t.Cancel()
	}
	for _, t := range tasks {
		<-t.Done()
	}
}
