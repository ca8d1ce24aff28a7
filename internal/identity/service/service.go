// Package service registers identities: it resolves a profile URL to a global
// id and stores the inactive link to the user's voice identity. The link turns
// active once the user befriends the bot.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ProfileResolver

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"rankbridge/internal/identity/models"
	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
	"rankbridge/pkg/platform/audit"
	"rankbridge/pkg/platform/sentinel"
	txcontext "rankbridge/pkg/platform/tx"
	"rankbridge/pkg/requestcontext"
)

type ProfileResolver interface {
	Resolve(ctx context.Context, profileURL string) (id.GlobalID, bool, error)
}

type IdentityStore interface {
	Register(ctx context.Context, identity *models.Identity) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// RegisterRequest is the onboarding input.
type RegisterRequest struct {
	ProfileURL    string
	VoiceIdentity string
}

// Service handles onboarding.
type Service struct {
	resolver      ProfileResolver
	identities    IdentityStore
	db            *sql.DB
	auditor       AuditPublisher
	logger        *slog.Logger
	botProfileURL string
}

type Option func(*Service)

// WithDB runs registration and its audit record in one transaction.
func WithDB(db *sql.DB) Option {
	return func(s *Service) {
		s.db = db
	}
}

func WithAuditPublisher(auditor AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBotProfileURL sets the profile users are told to befriend.
func WithBotProfileURL(u string) Option {
	return func(s *Service) {
		s.botProfileURL = u
	}
}

// New constructs a Service.
func New(resolver ProfileResolver, identities IdentityStore, opts ...Option) (*Service, error) {
	if resolver == nil {
		return nil, errors.New("profile resolver is required")
	}
	if identities == nil {
		return nil, errors.New("identity store is required")
	}
	s := &Service{
		resolver:   resolver,
		identities: identities,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BotProfileURL returns the profile users must befriend to activate.
func (s *Service) BotProfileURL() string {
	return s.botProfileURL
}

// Register resolves req.ProfileURL and stores an inactive identity.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.Identity, error) {
	voice, err := id.ParseVoiceIdentity(req.VoiceIdentity)
	if err != nil {
		return nil, err
	}
	if req.ProfileURL == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "profile url is required")
	}

	gid, found, err := s.resolver.Resolve(ctx, req.ProfileURL)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, dErrors.New(dErrors.CodeNotFound, "profile has no global id")
	}

	identity, err := models.NewIdentity(gid, voice, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}

	err = txcontext.Run(ctx, s.db, func(ctx context.Context) error {
		if err := s.identities.Register(ctx, identity); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.Wrap(err, dErrors.CodeConflict, "identity already registered")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to register identity")
		}
		if s.auditor == nil {
			return nil
		}
		if err := s.auditor.Emit(ctx, audit.Event{
			Action:    string(audit.EventIdentityRegistered),
			GlobalID:  gid,
			Subject:   voice.String(),
			RequestID: requestcontext.RequestID(ctx),
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record registration")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "identity registered",
		"global_id", gid.String(),
		"voice_identity", voice.String(),
	)
	return identity, nil
}
