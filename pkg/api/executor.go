package api

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// Execution identifies one top-level Execute call. The same Execution is
// visible to every node and observer callback reached from that call,
// including nodes run on parallel branches.
type Execution struct {
	ID        string
	StartedAt time.Time
}

// Executor is the execution core. It owns the failure boundary: handler
// errors and panics are contained per node, reported to hooks and observers,
// and swallowed at the top of the chain unless escalated by Retry or
// Fallback.
//
// Executors are stateless apart from their observer and logger and are safe
// for concurrent use.
type Executor struct {
	observer Observer
	logger   *slog.Logger
}

// Config describes how to construct an Executor.
type Config struct {
	// Observer receives chain and node lifecycle callbacks.
	// Defaults to NoopObserver.
	Observer Observer

	// Logger records swallowed failures and retry attempts.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

// NewExecutor returns an Executor with no observer.
func NewExecutor() *Executor {
	return NewExecutorWithConfig(Config{})
}

// NewExecutorWithObserver returns an Executor reporting to the given Observer.
func NewExecutorWithObserver(obs Observer) *Executor {
	return NewExecutorWithConfig(Config{Observer: obs})
}

// NewExecutorWithConfig returns an Executor using the given configuration.
func NewExecutorWithConfig(cfg Config) *Executor {
	obs := cfg.Observer
	if obs == nil {
		obs = NoopObserver{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{observer: obs, logger: logger}
}

var defaultExecutor = NewExecutor()

// Execute runs a chain on the default executor. See Executor.Execute.
func Execute(ctx context.Context, n Node, s State) (any, error) {
	return defaultExecutor.Execute(ctx, n, s)
}

type ctxKey int

const (
	executorKey ctxKey = iota
	executionKey
)

// WithExecutor returns a context carrying e, so combinator nodes run nested
// chains on the same executor. Execute installs it automatically.
func WithExecutor(ctx context.Context, e *Executor) context.Context {
	return context.WithValue(ctx, executorKey, e)
}

// ExecutorFromContext returns the executor carried by ctx, or the default
// executor when none is present.
func ExecutorFromContext(ctx context.Context) *Executor {
	if e, ok := ctx.Value(executorKey).(*Executor); ok {
		return e
	}
	return defaultExecutor
}

func withExecution(ctx context.Context, ex *Execution) context.Context {
	return context.WithValue(ctx, executionKey, ex)
}

func executionFromContext(ctx context.Context) (*Execution, bool) {
	ex, ok := ctx.Value(executionKey).(*Execution)
	return ex, ok
}

// Execute runs the chain rooted at n with state s and returns its result.
//
// Failures follow the silent-by-default contract: a handler error or panic
// fires the node's FailureHook (if any), yields a nil result, and is logged
// but NOT returned. The returned error is non-nil only for escalations:
// a Retry node that exhausted its attempts or a Fallback node whose fallback
// itself failed.
func (e *Executor) Execute(ctx context.Context, n Node, s State) (any, error) {
	ex, nested := executionFromContext(ctx)
	if !nested {
		ex = &Execution{ID: uuid.NewString(), StartedAt: time.Now()}
		ctx = withExecution(WithExecutor(ctx, e), ex)
		e.observer.OnChainStart(ctx, ex)
	}

	result, err := e.run(ctx, n, s)
	if err != nil && !IsEscalated(err) {
		e.swallow(ctx, n.name, err)
		result, err = nil, nil
	}

	if !nested {
		if err != nil {
			e.observer.OnChainEscalated(ctx, ex, err)
		} else {
			e.observer.OnChainCompleted(ctx, ex)
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// run executes one node and its Then chain. Unlike Execute it lets failures
// escape to the caller, which is how Retry and Fallback observe them; the
// node's own FailureHook still takes precedence and consumes the failure.
func (e *Executor) run(ctx context.Context, n Node, s State) (any, error) {
	ex, ok := executionFromContext(ctx)
	if !ok {
		ex = &Execution{StartedAt: time.Now()}
	}
	start := time.Now()
	e.observer.OnNodeStart(ctx, ex, n.name)

	result, err := e.invoke(ctx, n, s)
	e.observer.OnNodeCompleted(ctx, ex, n.name, err, time.Since(start))

	if err != nil {
		if n.onFailure != nil {
			n.onFailure(ctx, err, s)
			return nil, nil
		}
		return nil, err
	}

	if n.onSuccess != nil {
		n.onSuccess(ctx, result, s)
	}

	if n.next != nil && result != nil {
		next := s
		// A handler that returns a State hands the accumulated state to the
		// continuation; any other result rides along as PreviousResult only.
		if ns, isState := result.(State); isState {
			next = ns
		}
		return e.run(ctx, *n.next, next.WithPreviousResult(result))
	}
	return result, nil
}

// invoke calls the handler inside the panic boundary.
func (e *Executor) invoke(ctx context.Context, n Node, s State) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return n.handler(ctx, s)
}

// swallow records a contained failure. Swallowed failures are part of the
// documented contract, so they log at debug, not error.
func (e *Executor) swallow(ctx context.Context, node string, err error) {
	attrs := []any{slog.String("node", node), slog.Any("error", err)}
	if ex, ok := executionFromContext(ctx); ok {
		attrs = append(attrs, slog.String("execution_id", ex.ID))
	}
	e.logger.DebugContext(ctx, "chain_failure_swallowed", attrs...)
}
