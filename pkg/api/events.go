package api

import (
	"context"
	"time"
)

// EventType identifies a chain history event.
type EventType string

const (
	EventChainStarted   EventType = "chain.started"
	EventChainCompleted EventType = "chain.completed"
	EventChainEscalated EventType = "chain.escalated"

	EventNodeStarted   EventType = "node.started"
	EventNodeCompleted EventType = "node.completed"
	EventNodeFailed    EventType = "node.failed"
)

// ChainEvent is a minimal append-only history record for audit/debugging.
// It is intentionally small and stable; richer history can be layered later.
type ChainEvent struct {
	ExecutionID string
	At          time.Time
	Type        EventType

	// Optional context.
	Node string

	// Small, human-oriented details (e.g. error string, duration).
	// Keep this low-volume: do NOT dump large payloads here.
	Detail string
}

// EventStore persists chain events. Implementations must be safe for
// concurrent use; parallel branches append from multiple goroutines.
type EventStore interface {
	AppendEvent(ctx context.Context, ev ChainEvent) error
	ListEvents(ctx context.Context, executionID string) ([]ChainEvent, error)
}

// JournalObserver records executor lifecycle callbacks as ChainEvents in an
// EventStore. Append errors are deliberately dropped: history is advisory and
// must never disturb the chain it describes.
type JournalObserver struct {
	store EventStore
}

// NewJournalObserver returns an Observer appending to store.
func NewJournalObserver(store EventStore) *JournalObserver {
	if store == nil {
		panic("catena: journal store must not be nil")
	}
	return &JournalObserver{store: store}
}

func (j *JournalObserver) append(ctx context.Context, ev ChainEvent) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	_ = j.store.AppendEvent(ctx, ev)
}

func (j *JournalObserver) OnChainStart(ctx context.Context, ex *Execution) {
	j.append(ctx, ChainEvent{ExecutionID: ex.ID, Type: EventChainStarted})
}

func (j *JournalObserver) OnChainCompleted(ctx context.Context, ex *Execution) {
	j.append(ctx, ChainEvent{
		ExecutionID: ex.ID,
		Type:        EventChainCompleted,
		Detail:      time.Since(ex.StartedAt).String(),
	})
}

func (j *JournalObserver) OnChainEscalated(ctx context.Context, ex *Execution, err error) {
	j.append(ctx, ChainEvent{
		ExecutionID: ex.ID,
		Type:        EventChainEscalated,
		Detail:      err.Error(),
	})
}

func (j *JournalObserver) OnNodeStart(ctx context.Context, ex *Execution, node string) {
	j.append(ctx, ChainEvent{ExecutionID: ex.ID, Type: EventNodeStarted, Node: node})
}

func (j *JournalObserver) OnNodeCompleted(ctx context.Context, ex *Execution, node string, err error, d time.Duration) {
	if err != nil {
		j.append(ctx, ChainEvent{
			ExecutionID: ex.ID,
			Type:        EventNodeFailed,
			Node:        node,
			Detail:      err.Error(),
		})
		return
	}
	j.append(ctx, ChainEvent{
		ExecutionID: ex.ID,
		Type:        EventNodeCompleted,
		Node:        node,
		Detail:      d.String(),
	})
}
