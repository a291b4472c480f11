package store

import (
	"context"
	"sync"

	"crmsync/internal/outreach/models"
)

// InMemoryEventStore is an append-only in-memory event log. ReadEvents
// preserves append order, which downstream tie-breaking depends on.
type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []models.RawEvent
}

func NewInMemoryEventStore(events ...models.RawEvent) *InMemoryEventStore {
	return &InMemoryEventStore{events: append([]models.RawEvent(nil), events...)}
}

func (s *InMemoryEventStore) Append(_ context.Context, events ...models.RawEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, events...)
	return nil
}

func (s *InMemoryEventStore) ReadEvents(_ context.Context) ([]models.RawEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RawEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}
