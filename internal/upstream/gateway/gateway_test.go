package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rankbridge/internal/exchange/bus"
	"rankbridge/internal/upstream"
	id "rankbridge/pkg/domain"
	"rankbridge/pkg/testutil"
)

func startClient(t *testing.T) (*Client, *bus.Memory, context.CancelFunc, <-chan error) {
	t.Helper()
	mem := bus.NewMemory()
	c, err := New(mem)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	require.Eventually(t, func() bool { return mem.Subscribers(DefaultEventChannel) == 1 }, time.Second, time.Millisecond)
	return c, mem, cancel, done
}

func nextEvent(t *testing.T, c *Client) upstream.Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no upstream event")
		return nil
	}
}

func TestCommands(t *testing.T) {
	mem := bus.NewMemory()
	c, err := New(mem, WithChannels("cmds", ""))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sent := make(chan string, 3)
	go func() {
		_ = mem.Subscribe(ctx, "cmds", func(_ context.Context, text string) { sent <- text })
	}()
	require.Eventually(t, func() bool { return mem.Subscribers("cmds") == 1 }, time.Second, time.Millisecond)

	const gid id.GlobalID = 76561198000000005
	require.NoError(t, c.RequestProfile(ctx, c.ToAccountID(gid)))
	require.NoError(t, c.AddConnection(ctx, gid))
	require.NoError(t, c.RemoveConnection(ctx, gid))

	assert.JSONEq(t, `{"type":"profile_request","account_id":39734277}`, <-sent)
	assert.JSONEq(t, `{"type":"add_friend","global_id":"76561198000000005"}`, <-sent)
	assert.JSONEq(t, `{"type":"remove_friend","global_id":"76561198000000005"}`, <-sent)
}

func TestEvents(t *testing.T) {
	testutil.Given(t, "a running gateway client", func(t *testing.T) {
		c, mem, cancel, done := startClient(t)
		ctx := context.Background()

		testutil.When(t, "the sidecar reports a profile", func(t *testing.T) {
			require.NoError(t, mem.Publish(ctx, DefaultEventChannel,
				`{"type":"player_profile","accounts":[{"account_id":7,"rank_id":12},{"account_id":8,"rank_id":null}]}`))

			testutil.Then(t, "a profile response with nullable ranks is emitted", func(t *testing.T) {
				ev := nextEvent(t, c)
				assert.Equal(t, upstream.ProfileResponse{Accounts: []upstream.AccountProfile{
					{AccountID: 7, Rank: id.RankOf(12)},
					{AccountID: 8, Rank: id.NoRank},
				}}, ev)
			})
		})

		testutil.When(t, "the sidecar reports friend and relationship changes", func(t *testing.T) {
			require.NoError(t, mem.Publish(ctx, DefaultEventChannel,
				`{"type":"friend","global_id":"76561198000000000","relationship":2}`))
			require.NoError(t, mem.Publish(ctx, DefaultEventChannel,
				`{"type":"relationship","global_id":"76561198000000000","relationship":0}`))

			testutil.Then(t, "both map to relationship events", func(t *testing.T) {
				assert.Equal(t, upstream.RelationshipEvent{GlobalID: 76561198000000000, Status: upstream.StatusRequestRecipient}, nextEvent(t, c))
				assert.Equal(t, upstream.RelationshipEvent{GlobalID: 76561198000000000, Status: upstream.StatusNone}, nextEvent(t, c))
			})
		})

		testutil.When(t, "malformed and unknown events arrive", func(t *testing.T) {
			require.NoError(t, mem.Publish(ctx, DefaultEventChannel, `not json`))
			require.NoError(t, mem.Publish(ctx, DefaultEventChannel, `{"type":"logged_on"}`))
			require.NoError(t, mem.Publish(ctx, DefaultEventChannel, `{"type":"relationship","global_id":"x","relationship":2}`))
			require.NoError(t, mem.Publish(ctx, DefaultEventChannel, `{"type":"player_profile","accounts":[]}`))

			testutil.Then(t, "they are skipped", func(t *testing.T) {
				assert.Equal(t, upstream.ProfileResponse{Accounts: []upstream.AccountProfile{}}, nextEvent(t, c))
			})
		})

		testutil.When(t, "the context ends", func(t *testing.T) {
			cancel()

			testutil.Then(t, "run returns and the event stream closes", func(t *testing.T) {
				require.NoError(t, <-done)
				_, open := <-c.Events()
				assert.False(t, open)
				assert.Error(t, c.Run(context.Background()), "second run is refused")
			})
		})
	})
}

func TestDecodeEvent(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"type":"relationship","relationship":3}`))
	require.NoError(t, err)
	assert.Equal(t, upstream.RelationshipEvent{Status: upstream.StatusActive}, ev, "missing global id decodes as zero for the dispatcher to drop")

	_, err = decodeEvent([]byte(`{"type":"relationship","global_id":"1"}`))
	assert.Error(t, err)

	payload, err := json.Marshal(command{Type: commandAddFriend, GlobalID: "1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"add_friend","global_id":"1"}`, string(payload))
}
