package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives chain and node lifecycle callbacks from an Executor.
// Callbacks may fire concurrently when chains run on parallel branches, so
// implementations must be safe for concurrent use.
type Observer interface {
	OnChainStart(ctx context.Context, ex *Execution)
	OnChainCompleted(ctx context.Context, ex *Execution)
	OnChainEscalated(ctx context.Context, ex *Execution, err error)
	OnNodeStart(ctx context.Context, ex *Execution, node string)
	OnNodeCompleted(ctx context.Context, ex *Execution, node string, err error, d time.Duration)
}

// NoopObserver ignores all callbacks. Embed it to implement only a subset of
// Observer.
type NoopObserver struct{}

func (NoopObserver) OnChainStart(context.Context, *Execution)            {}
func (NoopObserver) OnChainCompleted(context.Context, *Execution)        {}
func (NoopObserver) OnChainEscalated(context.Context, *Execution, error) {}
func (NoopObserver) OnNodeStart(context.Context, *Execution, string)     {}
func (NoopObserver) OnNodeCompleted(context.Context, *Execution, string, error, time.Duration) {
}

// CompositeObserver fans every callback out to a list of observers in order.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver combines observers into one. Nil entries are dropped;
// with zero live observers it degenerates to NoopObserver, with exactly one
// it returns that observer unwrapped.
func NewCompositeObserver(observers ...Observer) Observer {
	live := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	switch len(live) {
	case 0:
		return NoopObserver{}
	case 1:
		return live[0]
	}
	return &CompositeObserver{observers: live}
}

func (c *CompositeObserver) OnChainStart(ctx context.Context, ex *Execution) {
	for _, o := range c.observers {
		o.OnChainStart(ctx, ex)
	}
}

func (c *CompositeObserver) OnChainCompleted(ctx context.Context, ex *Execution) {
	for _, o := range c.observers {
		o.OnChainCompleted(ctx, ex)
	}
}

func (c *CompositeObserver) OnChainEscalated(ctx context.Context, ex *Execution, err error) {
	for _, o := range c.observers {
		o.OnChainEscalated(ctx, ex, err)
	}
}

func (c *CompositeObserver) OnNodeStart(ctx context.Context, ex *Execution, node string) {
	for _, o := range c.observers {
		o.OnNodeStart(ctx, ex, node)
	}
}

func (c *CompositeObserver) OnNodeCompleted(ctx context.Context, ex *Execution, node string, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnNodeCompleted(ctx, ex, node, err, d)
	}
}

// LoggingObserver writes lifecycle events through a slog.Logger.
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver returns a LoggingObserver. A nil logger falls back to
// slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

func (l *LoggingObserver) OnChainStart(ctx context.Context, ex *Execution) {
	l.logger.InfoContext(ctx, "chain_start",
		slog.String("execution_id", ex.ID))
}

func (l *LoggingObserver) OnChainCompleted(ctx context.Context, ex *Execution) {
	l.logger.InfoContext(ctx, "chain_completed",
		slog.String("execution_id", ex.ID),
		slog.Duration("elapsed", time.Since(ex.StartedAt)))
}

func (l *LoggingObserver) OnChainEscalated(ctx context.Context, ex *Execution, err error) {
	l.logger.ErrorContext(ctx, "chain_escalated",
		slog.String("execution_id", ex.ID),
		slog.Duration("elapsed", time.Since(ex.StartedAt)),
		slog.Any("error", err))
}

func (l *LoggingObserver) OnNodeStart(ctx context.Context, ex *Execution, node string) {
	l.logger.DebugContext(ctx, "node_start",
		slog.String("execution_id", ex.ID),
		slog.String("node", node))
}

func (l *LoggingObserver) OnNodeCompleted(ctx context.Context, ex *Execution, node string, err error, d time.Duration) {
	level := slog.LevelDebug
	attrs := []any{
		slog.String("execution_id", ex.ID),
		slog.String("node", node),
		slog.Duration("duration", d),
	}
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("error", err))
	}
	l.logger.Log(ctx, level, "node_completed", attrs...)
}

// BasicMetrics is an in-process Observer counting chain and node outcomes
// with atomics. Use it when Prometheus is not wired in.
type BasicMetrics struct {
	NoopObserver

	chainsStarted     atomic.Int64
	chainsCompleted   atomic.Int64
	chainsEscalated   atomic.Int64
	nodesCompleted    atomic.Int64
	nodesFailed       atomic.Int64
	totalNodeDuration atomic.Int64
}

// BasicMetricsSnapshot is a point-in-time copy of BasicMetrics counters.
type BasicMetricsSnapshot struct {
	ChainsStarted   int64
	ChainsCompleted int64
	ChainsEscalated int64
	ActiveChains    int64
	NodesCompleted  int64
	NodesFailed     int64
	AvgNodeDuration time.Duration
}

func (m *BasicMetrics) OnChainStart(context.Context, *Execution) {
	m.chainsStarted.Add(1)
}

func (m *BasicMetrics) OnChainCompleted(context.Context, *Execution) {
	m.chainsCompleted.Add(1)
}

func (m *BasicMetrics) OnChainEscalated(context.Context, *Execution, error) {
	m.chainsEscalated.Add(1)
}

func (m *BasicMetrics) OnNodeCompleted(_ context.Context, _ *Execution, _ string, err error, d time.Duration) {
	if err != nil {
		m.nodesFailed.Add(1)
		return
	}
	m.nodesCompleted.Add(1)
	m.totalNodeDuration.Add(int64(d))
}

// Snapshot returns the current counter values. Only successful nodes count
// toward the average duration.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	s := BasicMetricsSnapshot{
		ChainsStarted:   m.chainsStarted.Load(),
		ChainsCompleted: m.chainsCompleted.Load(),
		ChainsEscalated: m.chainsEscalated.Load(),
		NodesCompleted:  m.nodesCompleted.Load(),
		NodesFailed:     m.nodesFailed.Load(),
	}
	s.ActiveChains = s.ChainsStarted - s.ChainsCompleted - s.ChainsEscalated
	if s.NodesCompleted > 0 {
		s.AvgNodeDuration = time.Duration(m.totalNodeDuration.Load() / s.NodesCompleted)
	}
	return s
}
