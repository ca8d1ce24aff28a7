package store

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"rankbridge/internal/identity/models"
	id "rankbridge/pkg/domain"
)

const (
	voiceKeyPrefix  = "identity:voice:"
	globalKeyPrefix = "identity:global:"

	DefaultCacheTTL = 5 * time.Minute
)

// CachedStore is a Redis read-through cache in front of another Store. Only the
// voice <-> global id mapping is cached; registration state always reads
// through. Absent records are not cached so new registrations are visible
// immediately. Redis failures fall back to the backing store.
type CachedStore struct {
	backing Store
	client  redis.UniversalClient
	ttl     time.Duration
	logger  *slog.Logger
}

type CacheOption func(*CachedStore)

func WithCacheTTL(ttl time.Duration) CacheOption {
	return func(c *CachedStore) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithCacheLogger(logger *slog.Logger) CacheOption {
	return func(c *CachedStore) {
		c.logger = logger
	}
}

// NewCached wraps backing with a Redis cache.
func NewCached(backing Store, client redis.UniversalClient, opts ...CacheOption) *CachedStore {
	c := &CachedStore{
		backing: backing,
		client:  client,
		ttl:     DefaultCacheTTL,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func voiceKey(globalID id.GlobalID) string {
	return voiceKeyPrefix + globalID.String()
}

func globalKey(voice id.VoiceIdentity) string {
	return globalKeyPrefix + voice.String()
}

func (c *CachedStore) Register(ctx context.Context, identity *models.Identity) error {
	return c.backing.Register(ctx, identity)
}

func (c *CachedStore) FindByGlobalID(ctx context.Context, globalID id.GlobalID) (*models.Identity, error) {
	return c.backing.FindByGlobalID(ctx, globalID)
}

func (c *CachedStore) Registration(ctx context.Context, globalID id.GlobalID) (id.Registration, error) {
	return c.backing.Registration(ctx, globalID)
}

func (c *CachedStore) IsRegistered(ctx context.Context, globalID id.GlobalID) (bool, error) {
	return c.backing.IsRegistered(ctx, globalID)
}

func (c *CachedStore) MarkActive(ctx context.Context, globalID id.GlobalID) error {
	return c.backing.MarkActive(ctx, globalID)
}

// DeleteIdentity removes the record and evicts both cached directions. Eviction
// also runs when the record is already gone, since another replica may have
// left entries behind.
func (c *CachedStore) DeleteIdentity(ctx context.Context, globalID id.GlobalID) error {
	voice, lookupErr := c.backing.VoiceIdentityOf(ctx, globalID)
	if lookupErr != nil {
		if cached, err := c.client.Get(ctx, voiceKey(globalID)).Result(); err == nil {
			voice, lookupErr = id.VoiceIdentity(cached), nil
		}
	}
	deleteErr := c.backing.DeleteIdentity(ctx, globalID)

	keys := []string{voiceKey(globalID)}
	if lookupErr == nil {
		keys = append(keys, globalKey(voice))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "identity cache eviction failed",
			"global_id", globalID.String(),
			"error", err,
		)
	}
	return deleteErr
}

func (c *CachedStore) VoiceIdentityOf(ctx context.Context, globalID id.GlobalID) (id.VoiceIdentity, error) {
	cached, err := c.client.Get(ctx, voiceKey(globalID)).Result()
	switch {
	case err == nil:
		return id.VoiceIdentity(cached), nil
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "identity cache read failed", "global_id", globalID.String(), "error", err)
	}

	voice, err := c.backing.VoiceIdentityOf(ctx, globalID)
	if err != nil {
		return "", err
	}
	c.fill(ctx, globalID, voice)
	return voice, nil
}

func (c *CachedStore) GlobalIDOf(ctx context.Context, voice id.VoiceIdentity) (id.GlobalID, error) {
	cached, err := c.client.Get(ctx, globalKey(voice)).Result()
	switch {
	case err == nil:
		if v, parseErr := strconv.ParseUint(cached, 10, 64); parseErr == nil {
			return id.GlobalID(v), nil
		}
		c.logger.WarnContext(ctx, "identity cache holds malformed global id", "voice_identity", voice.String())
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "identity cache read failed", "voice_identity", voice.String(), "error", err)
	}

	globalID, err := c.backing.GlobalIDOf(ctx, voice)
	if err != nil {
		return 0, err
	}
	c.fill(ctx, globalID, voice)
	return globalID, nil
}

func (c *CachedStore) fill(ctx context.Context, globalID id.GlobalID, voice id.VoiceIdentity) {
	pipe := c.client.Pipeline()
	pipe.Set(ctx, voiceKey(globalID), voice.String(), c.ttl)
	pipe.Set(ctx, globalKey(voice), globalID.String(), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.WarnContext(ctx, "identity cache fill failed",
			"global_id", globalID.String(),
			"error", err,
		)
	}
}
