// Package store persists identities. Lookups of absent records return
// sentinel.ErrNotFound; duplicate registrations return sentinel.ErrConflict.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rankbridge/internal/identity/models"
	id "rankbridge/pkg/domain"
	"rankbridge/pkg/platform/sentinel"
	"rankbridge/pkg/requestcontext"
)

// InMemoryStore keeps identities in process memory, indexed both ways.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[id.GlobalID]*models.Identity
	byVoice map[id.VoiceIdentity]id.GlobalID
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[id.GlobalID]*models.Identity),
		byVoice: make(map[id.VoiceIdentity]id.GlobalID),
	}
}

func (s *InMemoryStore) Register(_ context.Context, identity *models.Identity) error {
	if identity == nil {
		return fmt.Errorf("identity is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[identity.GlobalID]; ok {
		return fmt.Errorf("global id %s: %w", identity.GlobalID, sentinel.ErrConflict)
	}
	if _, ok := s.byVoice[identity.VoiceIdentity]; ok {
		return fmt.Errorf("voice identity %s: %w", identity.VoiceIdentity, sentinel.ErrConflict)
	}
	stored := *identity
	s.byID[identity.GlobalID] = &stored
	s.byVoice[identity.VoiceIdentity] = identity.GlobalID
	return nil
}

func (s *InMemoryStore) FindByGlobalID(_ context.Context, globalID id.GlobalID) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byID[globalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	found := *identity
	return &found, nil
}

func (s *InMemoryStore) Registration(ctx context.Context, globalID id.GlobalID) (id.Registration, error) {
	identity, err := s.FindByGlobalID(ctx, globalID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return id.Registration{}, nil
	}
	if err != nil {
		return id.Registration{}, err
	}
	return identity.Registration(), nil
}

func (s *InMemoryStore) IsRegistered(_ context.Context, globalID id.GlobalID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[globalID]
	return ok, nil
}

func (s *InMemoryStore) MarkActive(ctx context.Context, globalID id.GlobalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.byID[globalID]
	if !ok {
		return sentinel.ErrNotFound
	}
	identity.Activate(requestcontext.Now(ctx))
	return nil
}

func (s *InMemoryStore) DeleteIdentity(_ context.Context, globalID id.GlobalID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.byID[globalID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byVoice, identity.VoiceIdentity)
	delete(s.byID, globalID)
	return nil
}

func (s *InMemoryStore) VoiceIdentityOf(_ context.Context, globalID id.GlobalID) (id.VoiceIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.byID[globalID]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return identity.VoiceIdentity, nil
}

func (s *InMemoryStore) GlobalIDOf(_ context.Context, voice id.VoiceIdentity) (id.GlobalID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	globalID, ok := s.byVoice[voice]
	if !ok {
		return 0, sentinel.ErrNotFound
	}
	return globalID, nil
}
