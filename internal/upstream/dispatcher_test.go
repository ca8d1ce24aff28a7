package upstream

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "rankbridge/pkg/domain"
)

type fakeResolver struct {
	mu        sync.Mutex
	responses []ProfileResponse
}

func (f *fakeResolver) Resolve(resp ProfileResponse) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, resp)
	return len(resp.Accounts)
}

type fakeHandler struct {
	mu     sync.Mutex
	events []RelationshipEvent
	err    error
}

func (f *fakeHandler) HandleRelationship(_ context.Context, ev RelationshipEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakeHandler) seen() []RelationshipEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RelationshipEvent(nil), f.events...)
}

func TestNewDispatcher(t *testing.T) {
	_, err := NewDispatcher(nil, &fakeHandler{})
	assert.Error(t, err)

	_, err = NewDispatcher(&fakeResolver{}, nil)
	assert.Error(t, err)
}

func TestDispatcherRoutesEvents(t *testing.T) {
	resolver := &fakeResolver{}
	handler := &fakeHandler{err: errors.New("store down")}
	d, err := NewDispatcher(resolver, handler)
	require.NoError(t, err)

	ctx := context.Background()
	d.Dispatch(ctx, ProfileResponse{Accounts: []AccountProfile{{AccountID: 7, Rank: id.RankOf(3)}}})
	d.Dispatch(ctx, RelationshipEvent{GlobalID: 76561198000000000, Status: StatusRequestRecipient})
	d.Dispatch(ctx, RelationshipEvent{Status: StatusNone})
	d.Wait()

	require.Len(t, resolver.responses, 1)
	assert.Equal(t, id.AccountID(7), resolver.responses[0].Accounts[0].AccountID)

	events := handler.seen()
	require.Len(t, events, 1, "event without a global id is dropped")
	assert.Equal(t, id.GlobalID(76561198000000000), events[0].GlobalID)
}

func TestDispatcherRun(t *testing.T) {
	t.Run("returns when the channel closes", func(t *testing.T) {
		handler := &fakeHandler{}
		d, err := NewDispatcher(&fakeResolver{}, handler)
		require.NoError(t, err)

		events := make(chan Event, 2)
		events <- RelationshipEvent{GlobalID: 1, Status: StatusNone}
		events <- RelationshipEvent{GlobalID: 2, Status: StatusNone}
		close(events)

		require.NoError(t, d.Run(context.Background(), events))
		assert.Len(t, handler.seen(), 2)
	})

	t.Run("returns when the context ends", func(t *testing.T) {
		d, err := NewDispatcher(&fakeResolver{}, &fakeHandler{})
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err = d.Run(ctx, make(chan Event))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestStatusFromFriendRelationship(t *testing.T) {
	tests := []struct {
		in   int
		want RelationshipStatus
	}{
		{0, StatusNone},
		{1, StatusOther},
		{2, StatusRequestRecipient},
		{3, StatusActive},
		{4, StatusOther},
		{6, StatusOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFromFriendRelationship(tt.in), "relationship %d", tt.in)
	}
}
