package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Bus drivers.
const (
	BusMemory = "memory"
	BusRedis  = "redis"
	BusKafka  = "kafka"
)

// Config captures process-level configuration. Every field is read from the environment.
type Config struct {
	Addr      string `env:"RANKBRIDGE_ADDR" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// AdminToken guards the onboarding routes; empty disables them.
	AdminToken string `env:"ADMIN_TOKEN"`

	// DatabaseURL selects the PostgreSQL identity store; empty keeps identities in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	Redis    RedisConfig
	Bus      BusConfig
	Upstream UpstreamConfig
	Identity IdentityConfig
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// BusConfig selects the exchange bus transport.
type BusConfig struct {
	Driver          string   `env:"BUS_DRIVER" envDefault:"memory"`
	ExchangeChannel string   `env:"EXCHANGE_CHANNEL" envDefault:"exchange"`
	KafkaBrokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaGroup      string   `env:"KAFKA_GROUP" envDefault:"rankbridge"`
}

// UpstreamConfig configures the platform gateway and rank lookups.
type UpstreamConfig struct {
	CommandChannel    string        `env:"UPSTREAM_COMMAND_CHANNEL" envDefault:"upstream.commands"`
	EventChannel      string        `env:"UPSTREAM_EVENT_CHANNEL" envDefault:"upstream.events"`
	RankLookupTimeout time.Duration `env:"RANK_LOOKUP_TIMEOUT" envDefault:"10s"`
	BotProfileURL     string        `env:"BOT_PROFILE_URL"`
}

// IdentityConfig configures onboarding and identity caching.
type IdentityConfig struct {
	ProfileFetchTimeout time.Duration `env:"PROFILE_FETCH_TIMEOUT" envDefault:"10s"`
	CacheTTL            time.Duration `env:"IDENTITY_CACHE_TTL" envDefault:"5m"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot be wired.
func (c Config) Validate() error {
	switch c.Bus.Driver {
	case BusMemory:
	case BusRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("BUS_DRIVER=redis requires REDIS_URL")
		}
	case BusKafka:
		if len(c.Bus.KafkaBrokers) == 0 {
			return fmt.Errorf("BUS_DRIVER=kafka requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown BUS_DRIVER %q", c.Bus.Driver)
	}
	if c.Upstream.RankLookupTimeout <= 0 {
		return fmt.Errorf("RANK_LOOKUP_TIMEOUT must be positive")
	}
	return nil
}
