package catena

import (
	"context"
	"database/sql"

	"github.com/petrijr/catena/internal/journal"
	"github.com/petrijr/catena/internal/sched"
	"github.com/petrijr/catena/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	State                = api.State
	Node                 = api.Node
	Handler              = api.Handler
	SuccessHook          = api.SuccessHook
	FailureHook          = api.FailureHook
	Predicate            = api.Predicate
	ResultPredicate      = api.ResultPredicate
	TransformFunc        = api.TransformFunc
	Collector            = api.Collector
	Executor             = api.Executor
	ExecutorConfig       = api.Config
	Execution            = api.Execution
	Task                 = api.Task
	TaskState            = api.TaskState
	RetryPolicy          = api.RetryPolicy
	ExhaustedError       = api.ExhaustedError
	PanicError           = api.PanicError
	Scheduler            = api.Scheduler
	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	CompositeObserver    = api.CompositeObserver
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	PrometheusObserver   = api.PrometheusObserver
	ChainEvent           = api.ChainEvent
	EventType            = api.EventType
	EventStore           = api.EventStore
	JournalObserver      = api.JournalObserver
	Clock                = sched.Clock
	SchedulerConfig      = sched.Config
)

// Re-export common observer helpers.

var (
	NewLoggingObserver    = api.NewLoggingObserver
	NewCompositeObserver  = api.NewCompositeObserver
	NewPrometheusObserver = api.NewPrometheusObserver
	NewJournalObserver    = api.NewJournalObserver
)

// Re-export task lifecycle values and sentinels for convenience.

const (
	TaskCreated   = api.TaskCreated
	TaskRunning   = api.TaskRunning
	TaskCompleted = api.TaskCompleted
	TaskFailed    = api.TaskFailed
	TaskCancelled = api.TaskCancelled

	// Forever makes Schedule repeat until cancelled.
	Forever = api.Forever
)

// Re-export journal event types for convenience.

const (
	EventChainStarted   = api.EventChainStarted
	EventChainCompleted = api.EventChainCompleted
	EventChainEscalated = api.EventChainEscalated
	EventNodeStarted    = api.EventNodeStarted
	EventNodeCompleted  = api.EventNodeCompleted
	EventNodeFailed     = api.EventNodeFailed
)

var (
	ErrTaskCancelled = api.ErrTaskCancelled
	ErrJoinTimeout   = api.ErrJoinTimeout
)

// Executor constructors.

// NewExecutor returns an Executor with no observer.
func NewExecutor() *Executor {
	return api.NewExecutor()
}

// NewExecutorWithObserver returns an Executor reporting to the given Observer.
func NewExecutorWithObserver(obs Observer) *Executor {
	return api.NewExecutorWithObserver(obs)
}

// NewExecutorWithConfig returns an Executor using the given configuration.
func NewExecutorWithConfig(cfg ExecutorConfig) *Executor {
	return api.NewExecutorWithConfig(cfg)
}

// Scheduler constructors
// These wrap the internal/sched package so external callers
// never need to import internal packages.

// NewScheduler returns a wall-clock Scheduler with the default 50ms tick.
func NewScheduler() Scheduler {
	return sched.New(sched.Config{})
}

// NewSchedulerWithConfig returns a Scheduler using the given configuration.
func NewSchedulerWithConfig(cfg SchedulerConfig) Scheduler {
	return sched.New(cfg)
}

// Journal constructors.

// NewMemoryJournal returns an in-memory EventStore.
func NewMemoryJournal() EventStore {
	return journal.NewMemoryStore()
}

// NewSQLiteJournal returns an EventStore that persists chain events
// in a SQLite database, creating the schema if needed.
func NewSQLiteJournal(db *sql.DB) (EventStore, error) {
	return journal.NewSQLiteStore(db)
}

// NewState returns an empty immutable state.
func NewState() State {
	return api.NewState()
}

// Execute runs a chain on the default executor. See Executor.Execute.
func Execute(ctx context.Context, n Node, s State) (any, error) {
	return api.Execute(ctx, n, s)
}

// Escalate marks err so Execute returns it instead of swallowing it.
func Escalate(err error) error {
	return api.Escalate(err)
}

// IsEscalated reports whether err carries the escalation marker.
func IsEscalated(err error) bool {
	return api.IsEscalated(err)
}

// IsExhausted returns the underlying ExhaustedError if err indicates a
// retry budget was exhausted.
func IsExhausted(err error) (*ExhaustedError, bool) {
	return api.IsExhausted(err)
}
