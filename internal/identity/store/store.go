package store

import (
	"context"

	"rankbridge/internal/identity/models"
	id "rankbridge/pkg/domain"
)

// Store is the full identity store contract every backend implements.
type Store interface {
	Register(ctx context.Context, identity *models.Identity) error
	FindByGlobalID(ctx context.Context, globalID id.GlobalID) (*models.Identity, error)
	Registration(ctx context.Context, globalID id.GlobalID) (id.Registration, error)
	IsRegistered(ctx context.Context, globalID id.GlobalID) (bool, error)
	MarkActive(ctx context.Context, globalID id.GlobalID) error
	DeleteIdentity(ctx context.Context, globalID id.GlobalID) error
	VoiceIdentityOf(ctx context.Context, globalID id.GlobalID) (id.VoiceIdentity, error)
	GlobalIDOf(ctx context.Context, voice id.VoiceIdentity) (id.GlobalID, error)
}

var (
	_ Store = (*InMemoryStore)(nil)
	_ Store = (*PostgresStore)(nil)
	_ Store = (*CachedStore)(nil)
)
