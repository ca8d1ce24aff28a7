package ports

//go:generate mockgen -source=ports.go -destination=../mocks/mocks.go -package=mocks IdentityStore,ConnectionPort,RankPort,RankPublisher,AuditPort

import (
	"context"

	id "rankbridge/pkg/domain"
	"rankbridge/pkg/platform/audit"
)

// IdentityStore is the part of the identity store the lifecycle reads and mutates.
type IdentityStore interface {
	Registration(ctx context.Context, globalID id.GlobalID) (id.Registration, error)
	MarkActive(ctx context.Context, globalID id.GlobalID) error
	DeleteIdentity(ctx context.Context, globalID id.GlobalID) error
	// VoiceIdentityOf returns sentinel.ErrNotFound when the user has no mapping.
	VoiceIdentityOf(ctx context.Context, globalID id.GlobalID) (id.VoiceIdentity, error)
}

// ConnectionPort changes the bot's friend list upstream.
type ConnectionPort interface {
	AddConnection(ctx context.Context, globalID id.GlobalID) error
	RemoveConnection(ctx context.Context, globalID id.GlobalID) error
}

// RankPort looks up a user's current rank.
type RankPort interface {
	RequestRank(ctx context.Context, globalID id.GlobalID) (id.Rank, error)
}

// RankPublisher pushes a rank to the voice platform.
type RankPublisher interface {
	PublishRankUpdate(ctx context.Context, voice id.VoiceIdentity, rank id.Rank) error
}

// AuditPort defines the interface for emitting audit events.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
