//go:build integration

package bus_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"rankbridge/internal/exchange/bus"
	"rankbridge/pkg/testutil/containers"
)

// =============================================================================
// Transport Integration Suite
// =============================================================================

type TransportSuite struct {
	suite.Suite
	redis    *containers.RedisContainer
	redpanda *containers.RedpandaContainer
}

func TestTransportSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(TransportSuite))
}

func (s *TransportSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.redpanda = mgr.GetRedpanda(s.T())
}

type inbox struct {
	mu   sync.Mutex
	msgs []string
}

func (i *inbox) handle(_ context.Context, text string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.msgs = append(i.msgs, text)
}

func (i *inbox) snapshot() []string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]string(nil), i.msgs...)
}

// roundTrip subscribes, publishes until the first message is seen (the
// subscription may take a moment to become live), then checks ordering.
func (s *TransportSuite) roundTrip(b bus.Bus, channel string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	box := &inbox{}
	errCh := make(chan error, 1)
	go func() { errCh <- b.Subscribe(ctx, channel, box.handle) }()

	s.Require().Eventually(func() bool {
		_ = b.Publish(ctx, channel, "request_update probe")
		return len(box.snapshot()) > 0
	}, 30*time.Second, 500*time.Millisecond)

	s.Require().NoError(b.Publish(ctx, channel, "update_rank U 7"))
	s.Require().NoError(b.Publish(ctx, channel, "update_rank U null"))

	s.Eventually(func() bool {
		msgs := box.snapshot()
		return len(msgs) >= 2 &&
			msgs[len(msgs)-2] == "update_rank U 7" &&
			msgs[len(msgs)-1] == "update_rank U null"
	}, 10*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		s.NoError(err)
	case <-time.After(10 * time.Second):
		s.Fail("subscribe did not return after cancel")
	}
}

func (s *TransportSuite) TestRedisPubSub() {
	s.roundTrip(bus.NewRedis(s.redis.Client), "exchange-"+uuid.NewString())
}

func (s *TransportSuite) TestKafka() {
	k, err := bus.NewKafka(s.redpanda.Brokers, "rankbridge-test")
	s.Require().NoError(err)
	defer k.Close()

	channel := "exchange-" + uuid.NewString()
	s.Require().NoError(k.EnsureTopics(context.Background(), channel))
	s.Require().NoError(k.EnsureTopics(context.Background(), channel), "existing topics are accepted")

	s.roundTrip(k, channel)
}
