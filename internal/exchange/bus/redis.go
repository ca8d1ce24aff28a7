package bus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// Redis is a Bus over Redis pub/sub. Delivery is at-most-once: messages
// published while no subscriber is connected are lost.
type Redis struct {
	client redis.UniversalClient
	logger *slog.Logger
}

type RedisOption func(*Redis)

func WithRedisLogger(logger *slog.Logger) RedisOption {
	return func(r *Redis) {
		r.logger = logger
	}
}

func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{client: client, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Publish(ctx context.Context, channel, text string) error {
	if err := r.client.Publish(ctx, channel, text).Err(); err != nil {
		return fmt.Errorf("redis publish to %s: %w", channel, err)
	}
	return nil
}

func (r *Redis) Subscribe(ctx context.Context, channel string, handler Handler) error {
	ps := r.client.Subscribe(ctx, channel)
	defer func() {
		if err := ps.Close(); err != nil {
			r.logger.Debug("closing redis subscription", "channel", channel, "error", err)
		}
	}()

	// Wait for the subscription to be confirmed so messages published after
	// Subscribe starts are not missed.
	if _, err := ps.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("redis subscribe to %s: %w", channel, err)
	}

	messages := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return ErrClosed
			}
			handler(ctx, msg.Payload)
		}
	}
}

// Close is a no-op; the client is owned by the caller.
func (r *Redis) Close() error {
	return nil
}
