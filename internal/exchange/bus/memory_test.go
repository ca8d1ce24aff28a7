package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type collector struct {
	mu       sync.Mutex
	messages []string
}

func (c *collector) handle(_ context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, text)
}

func (c *collector) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

// subscribe starts a subscription and waits until it is registered.
func subscribe(t *testing.T, b *Memory, ctx context.Context, channel string, h Handler) <-chan error {
	t.Helper()
	before := b.Subscribers(channel)
	errCh := make(chan error, 1)
	go func() { errCh <- b.Subscribe(ctx, channel, h) }()
	require.Eventually(t, func() bool { return b.Subscribers(channel) == before+1 }, time.Second, time.Millisecond)
	return errCh
}

func TestMemoryBusDelivery(t *testing.T) {
	b := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, second, other := &collector{}, &collector{}, &collector{}
	subscribe(t, b, ctx, "exchange", first.handle)
	subscribe(t, b, ctx, "exchange", second.handle)
	subscribe(t, b, ctx, "elsewhere", other.handle)

	require.NoError(t, b.Publish(ctx, "exchange", "update_rank U 7"))
	require.NoError(t, b.Publish(ctx, "exchange", "update_rank V null"))

	want := []string{"update_rank U 7", "update_rank V null"}
	assert.Eventually(t, func() bool { return len(first.received()) == 2 }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return len(second.received()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, want, first.received())
	assert.Equal(t, want, second.received())
	assert.Empty(t, other.received())
}

func TestMemoryBusSubscribeReturnsWhenContextEnds(t *testing.T) {
	b := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	errCh := subscribe(t, b, ctx, "exchange", func(context.Context, string) {})

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscribe did not return after cancel")
	}
	assert.Equal(t, 0, b.Subscribers("exchange"))
}

func TestMemoryBusPublishWithoutSubscribers(t *testing.T) {
	b := NewMemory()
	assert.NoError(t, b.Publish(context.Background(), "exchange", "request_update U"))
}

func TestMemoryBusClose(t *testing.T) {
	b := NewMemory()
	errCh := subscribe(t, b, context.Background(), "exchange", func(context.Context, string) {})

	require.NoError(t, b.Close())
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("subscribe did not return after close")
	}

	assert.ErrorIs(t, b.Publish(context.Background(), "exchange", "x"), ErrClosed)
	assert.ErrorIs(t, b.Subscribe(context.Background(), "exchange", nil), ErrClosed)
	assert.NoError(t, b.Close(), "close is idempotent")
}

func TestMemoryBusPublishUnblocksWhenSubscriberLeaves(t *testing.T) {
	b := NewMemory(WithBuffer(1))
	ctx, cancel := context.WithCancel(context.Background())

	release := make(chan struct{})
	subscribe(t, b, ctx, "exchange", func(context.Context, string) { <-release })

	// first message occupies the handler, second fills the queue
	require.NoError(t, b.Publish(context.Background(), "exchange", "a"))
	require.NoError(t, b.Publish(context.Background(), "exchange", "b"))

	done := make(chan error, 1)
	go func() { done <- b.Publish(context.Background(), "exchange", "c") }()

	cancel()
	close(release)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publish stayed blocked on a departed subscriber")
	}
}
