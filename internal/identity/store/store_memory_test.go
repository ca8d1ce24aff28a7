package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rankbridge/internal/identity/models"
	id "rankbridge/pkg/domain"
	"rankbridge/pkg/platform/sentinel"
	"rankbridge/pkg/requestcontext"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
}

func newIdentity(s *suite.Suite, gid id.GlobalID, voice id.VoiceIdentity) *models.Identity {
	identity, err := models.NewIdentity(gid, voice, time.Now())
	s.Require().NoError(err)
	return identity
}

func (s *InMemoryStoreSuite) TestRegisterAndLookup() {
	ctx := context.Background()
	s.Require().NoError(s.store.Register(ctx, newIdentity(&s.Suite, 1001, "voice-a")))

	reg, err := s.store.Registration(ctx, 1001)
	s.NoError(err)
	s.Equal(id.Registration{Registered: true}, reg)

	registered, err := s.store.IsRegistered(ctx, 1001)
	s.NoError(err)
	s.True(registered)

	voice, err := s.store.VoiceIdentityOf(ctx, 1001)
	s.NoError(err)
	s.Equal(id.VoiceIdentity("voice-a"), voice)

	gid, err := s.store.GlobalIDOf(ctx, "voice-a")
	s.NoError(err)
	s.Equal(id.GlobalID(1001), gid)
}

func (s *InMemoryStoreSuite) TestAbsentRecords() {
	ctx := context.Background()

	reg, err := s.store.Registration(ctx, 404)
	s.NoError(err)
	s.False(reg.Registered)

	_, err = s.store.VoiceIdentityOf(ctx, 404)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.GlobalIDOf(ctx, "nobody")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.store.MarkActive(ctx, 404), sentinel.ErrNotFound)
	s.ErrorIs(s.store.DeleteIdentity(ctx, 404), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Register(ctx, newIdentity(&s.Suite, 1001, "voice-a")))

	s.ErrorIs(s.store.Register(ctx, newIdentity(&s.Suite, 1001, "voice-b")), sentinel.ErrConflict)
	s.ErrorIs(s.store.Register(ctx, newIdentity(&s.Suite, 1002, "voice-a")), sentinel.ErrConflict)
}

func (s *InMemoryStoreSuite) TestMarkActive() {
	activatedAt := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), activatedAt)
	s.Require().NoError(s.store.Register(ctx, newIdentity(&s.Suite, 1001, "voice-a")))

	s.Require().NoError(s.store.MarkActive(ctx, 1001))

	identity, err := s.store.FindByGlobalID(ctx, 1001)
	s.Require().NoError(err)
	s.True(identity.Active)
	s.Require().NotNil(identity.ActivatedAt)
	s.Equal(activatedAt, *identity.ActivatedAt)
}

func (s *InMemoryStoreSuite) TestDeleteRemovesBothDirections() {
	ctx := context.Background()
	s.Require().NoError(s.store.Register(ctx, newIdentity(&s.Suite, 1001, "voice-a")))

	s.Require().NoError(s.store.DeleteIdentity(ctx, 1001))

	_, err := s.store.GlobalIDOf(ctx, "voice-a")
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.NoError(s.store.Register(ctx, newIdentity(&s.Suite, 1002, "voice-a")), "voice identity is free again")
}

func (s *InMemoryStoreSuite) TestFindReturnsCopy() {
	ctx := context.Background()
	s.Require().NoError(s.store.Register(ctx, newIdentity(&s.Suite, 1001, "voice-a")))

	identity, err := s.store.FindByGlobalID(ctx, 1001)
	s.Require().NoError(err)
	identity.Active = true

	reg, err := s.store.Registration(ctx, 1001)
	s.NoError(err)
	s.False(reg.Active)
}

func (s *InMemoryStoreSuite) TestConcurrentRegistration() {
	ctx := context.Background()
	var wg sync.WaitGroup
	var successes atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			identity, err := models.NewIdentity(1001, "voice-a", time.Now())
			if err != nil {
				return
			}
			if s.store.Register(ctx, identity) == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(1), successes.Load())
}
