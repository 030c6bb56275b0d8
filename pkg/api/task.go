package api

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TaskState is the lifecycle state of an asynchronous task.
type TaskState int32

const (
	TaskCreated TaskState = iota
	TaskRunning
	TaskCompleted
	TaskFailed
	TaskCancelled
)

func (s TaskState) String() string {
	switch s {
	case TaskCreated:
		return "CREATED"
	case TaskRunning:
		return "RUNNING"
	case TaskCompleted:
		return "COMPLETED"
	case TaskFailed:
		return "FAILED"
	case TaskCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// Task is a handle on one in-flight asynchronous execution. It is created by
// Go and by the scheduler's Delay/Schedule/Cron, and settles exactly once
// into Completed, Failed or Cancelled.
type Task struct {
	id     string
	state  atomic.Int32
	done   chan struct{}
	once   sync.Once
	cancel context.CancelFunc

	result any
	err    error
}

// Go runs fn on a new goroutine and returns its handle.
//
// The task owns its own failure boundary: a panic in fn is captured as a
// Failed task carrying a PanicError and can never take down sibling tasks
// or the joining goroutine.
func Go(ctx context.Context, fn func(ctx context.Context) (any, error)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{
		id:     uuid.NewString(),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go func() {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				t.finish(nil, &PanicError{Value: r, Stack: debug.Stack()})
			}
		}()
		t.state.CompareAndSwap(int32(TaskCreated), int32(TaskRunning))
		t.finish(fn(ctx))
	}()
	return t
}

// ID returns the task's unique identifier.
func (t *Task) ID() string {
	return t.id
}

// State returns the task's current lifecycle state.
func (t *Task) State() TaskState {
	return TaskState(t.state.Load())
}

// Done returns a channel closed when the task settles.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Join blocks until the task settles or ctx is done. It returns the task's
// result, or the error a Failed task settled with, or ErrTaskCancelled.
func (t *Task) Join(ctx context.Context) (any, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// JoinTimeout is like Join but gives up after d, returning ErrJoinTimeout.
// The task keeps running; JoinTimeout only abandons the wait.
func (t *Task) JoinTimeout(d time.Duration) (any, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-t.done:
		return t.result, t.err
	case <-timer.C:
		return nil, ErrJoinTimeout
	}
}

// Cancel requests cancellation. It is best-effort: a task that has not yet
// fired settles as Cancelled, while a handler already running observes its
// context being done and settles however it returns.
func (t *Task) Cancel() {
	if t.cancel != nil {
		t.cancel()
	}
}

// finish settles the task exactly once. Cancellation errors map to the
// Cancelled state so callers can distinguish them from real failures.
func (t *Task) finish(result any, err error) {
	t.once.Do(func() {
		switch {
		case err == nil:
			t.result = result
			t.state.Store(int32(TaskCompleted))
		case errors.Is(err, context.Canceled) || errors.Is(err, ErrTaskCancelled):
			t.err = ErrTaskCancelled
			t.state.Store(int32(TaskCancelled))
		default:
			t.err = err
			t.state.Store(int32(TaskFailed))
		}
		close(t.done)
	})
}
