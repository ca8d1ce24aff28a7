package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rankbridge/internal/identity/resolver"
	"rankbridge/internal/identity/service/mocks"
	"rankbridge/internal/identity/store"
	id "rankbridge/pkg/domain"
	dErrors "rankbridge/pkg/domain-errors"
	"rankbridge/pkg/platform/audit"
	"rankbridge/pkg/platform/audit/publisher"
	auditmemory "rankbridge/pkg/platform/audit/store/memory"
	"rankbridge/pkg/requestcontext"
)

// =============================================================================
// Onboarding Service Test Suite
// =============================================================================

type OnboardingSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	resolver   *mocks.MockProfileResolver
	identities *store.InMemoryStore
	auditStore *auditmemory.InMemoryStore
	service    *Service
}

func TestOnboardingSuite(t *testing.T) {
	suite.Run(t, new(OnboardingSuite))
}

const (
	profileURL = "https://steamcommunity.com/id/player"
	gid        = id.GlobalID(76561198000000000)
)

func (s *OnboardingSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.resolver = mocks.NewMockProfileResolver(s.ctrl)
	s.identities = store.NewInMemory()
	s.auditStore = auditmemory.NewInMemoryStore()

	var err error
	s.service, err = New(s.resolver, s.identities,
		WithAuditPublisher(publisher.NewPublisher(s.auditStore)),
		WithBotProfileURL("https://steamcommunity.com/profiles/76561198999999999"),
	)
	s.Require().NoError(err)
}

func (s *OnboardingSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OnboardingSuite) TestNew() {
	_, err := New(nil, s.identities)
	s.ErrorContains(err, "profile resolver is required")
	_, err = New(s.resolver, nil)
	s.ErrorContains(err, "identity store is required")
}

func (s *OnboardingSuite) TestRegister() {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), now), "req-1")

	s.resolver.EXPECT().Resolve(gomock.Any(), profileURL).Return(gid, true, nil)

	identity, err := s.service.Register(ctx, RegisterRequest{ProfileURL: profileURL, VoiceIdentity: "voice-a"})
	s.Require().NoError(err)
	s.Equal(gid, identity.GlobalID)
	s.False(identity.Active)
	s.Equal(now, identity.CreatedAt)

	reg, err := s.identities.Registration(ctx, gid)
	s.Require().NoError(err)
	s.Equal(id.Registration{Registered: true}, reg)

	events, err := s.auditStore.ListByGlobalID(ctx, gid)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventIdentityRegistered), events[0].Action)
	s.Equal(audit.CategoryCompliance, events[0].Category)
	s.Equal("voice-a", events[0].Subject)
	s.Equal("req-1", events[0].RequestID)
}

func (s *OnboardingSuite) TestRegisterRejections() {
	ctx := context.Background()

	s.Run("invalid voice identity is rejected before resolving", func() {
		_, err := s.service.Register(ctx, RegisterRequest{ProfileURL: profileURL, VoiceIdentity: "has space"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("missing profile url is rejected", func() {
		_, err := s.service.Register(ctx, RegisterRequest{VoiceIdentity: "voice-a"})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("profile without id is not found", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), profileURL).Return(id.GlobalID(0), false, nil)

		_, err := s.service.Register(ctx, RegisterRequest{ProfileURL: profileURL, VoiceIdentity: "voice-a"})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("resolver errors keep their code", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), profileURL).Return(id.GlobalID(0), false,
			dErrors.Wrap(resolver.ErrFetch, dErrors.CodeUnavailable, "failed to fetch profile"))

		_, err := s.service.Register(ctx, RegisterRequest{ProfileURL: profileURL, VoiceIdentity: "voice-a"})
		s.ErrorIs(err, resolver.ErrFetch)
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})

	s.Run("second registration conflicts", func() {
		s.resolver.EXPECT().Resolve(gomock.Any(), profileURL).Return(gid, true, nil).Times(2)

		_, err := s.service.Register(ctx, RegisterRequest{ProfileURL: profileURL, VoiceIdentity: "voice-a"})
		s.Require().NoError(err)
		_, err = s.service.Register(ctx, RegisterRequest{ProfileURL: profileURL, VoiceIdentity: "voice-b"})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

type failingAudit struct{}

func (failingAudit) Emit(context.Context, audit.Event) error { return errors.New("outbox full") }

func (s *OnboardingSuite) TestAuditFailureFailsRegistration() {
	svc, err := New(s.resolver, s.identities, WithAuditPublisher(failingAudit{}))
	s.Require().NoError(err)
	s.resolver.EXPECT().Resolve(gomock.Any(), profileURL).Return(gid, true, nil)

	_, err = svc.Register(context.Background(), RegisterRequest{ProfileURL: profileURL, VoiceIdentity: "voice-a"})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *OnboardingSuite) TestBotProfileURL() {
	s.Equal("https://steamcommunity.com/profiles/76561198999999999", s.service.BotProfileURL())
}
