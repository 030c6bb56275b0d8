// Package journal provides EventStore implementations for chain history.
package journal

import (
	"context"
	"sync"

	"github.com/petrijr/catena/pkg/api"
)

// MemoryStore is a goroutine-safe, append-only in-memory event store.
type MemoryStore struct {
	mu     sync.RWMutex
	events []api.ChainEvent
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Ensure MemoryStore implements the interface.
var _ api.EventStore = (*MemoryStore)(nil)

func (s *MemoryStore) AppendEvent(_ context.Context, ev api.ChainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, ev)
	return nil
}

func (s *MemoryStore) ListEvents(_ context.Context, executionID string) ([]api.ChainEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []api.ChainEvent
	for _, ev := range s.events {
		if ev.ExecutionID == executionID {
			out = append(out, ev)
		}
	}
	return out, nil
}
