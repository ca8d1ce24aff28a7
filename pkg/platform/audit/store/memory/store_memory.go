package memory

import (
	"context"
	"sync"

	id "rankbridge/pkg/domain"
	audit "rankbridge/pkg/platform/audit"
)

type InMemoryStore struct {
	mu     sync.RWMutex
	events map[id.GlobalID][]audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{events: make(map[id.GlobalID][]audit.Event)}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[id.GlobalID][]audit.Event)
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.GlobalID] = append(s.events[event.GlobalID], event)
	return nil
}

func (s *InMemoryStore) ListByGlobalID(_ context.Context, globalID id.GlobalID) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event{}, s.events[globalID]...), nil
}

// ListAll returns all audit events across all identities.
func (s *InMemoryStore) ListAll(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allEvents []audit.Event
	for _, events := range s.events {
		allEvents = append(allEvents, events...)
	}
	return allEvents, nil
}
