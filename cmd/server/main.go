package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"rankbridge/internal/exchange"
	"rankbridge/internal/exchange/bus"
	exchangemetrics "rankbridge/internal/exchange/metrics"
	friendshipmetrics "rankbridge/internal/friendship/metrics"
	friendship "rankbridge/internal/friendship/service"
	identityhandler "rankbridge/internal/identity/handler"
	"rankbridge/internal/identity/resolver"
	identityservice "rankbridge/internal/identity/service"
	identitystore "rankbridge/internal/identity/store"
	"rankbridge/internal/platform/config"
	"rankbridge/internal/platform/httpserver"
	"rankbridge/internal/platform/logger"
	"rankbridge/internal/platform/metrics"
	"rankbridge/internal/platform/postgres"
	"rankbridge/internal/platform/redis"
	"rankbridge/internal/rank"
	rankmetrics "rankbridge/internal/rank/metrics"
	"rankbridge/internal/upstream"
	"rankbridge/internal/upstream/gateway"
	"rankbridge/pkg/platform/audit"
	auditpublisher "rankbridge/pkg/platform/audit/publisher"
	auditmemory "rankbridge/pkg/platform/audit/store/memory"
	auditpostgres "rankbridge/pkg/platform/audit/store/postgres"
	"rankbridge/pkg/platform/httputil"
	"rankbridge/pkg/platform/middleware/request"
	"rankbridge/pkg/platform/middleware/requesttime"
)

const shutdownTimeout = 10 * time.Second

// main wires high-level dependencies and keeps the process lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("rankbridge stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := metrics.NewRegistry()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		if db, err = postgres.Open(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
		defer db.Close()
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	identities := buildIdentityStore(db, redisClient, cfg, log)
	auditor := auditpublisher.NewPublisher(buildAuditStore(db), auditpublisher.WithLogger(log))
	defer auditor.Close()

	messages, err := buildBus(ctx, cfg, redisClient, log)
	if err != nil {
		return err
	}
	defer messages.Close()

	platform, err := gateway.New(messages,
		gateway.WithChannels(cfg.Upstream.CommandChannel, cfg.Upstream.EventChannel),
		gateway.WithLogger(log))
	if err != nil {
		return err
	}

	correlator, err := rank.New(platform,
		rank.WithTimeout(cfg.Upstream.RankLookupTimeout),
		rank.WithLogger(log),
		rank.WithMetrics(rankmetrics.New(reg)))
	if err != nil {
		return err
	}
	defer correlator.Wait()

	relay, err := exchange.New(messages, identities, correlator,
		exchange.WithChannel(cfg.Bus.ExchangeChannel),
		exchange.WithLogger(log),
		exchange.WithMetrics(exchangemetrics.New(reg)))
	if err != nil {
		return err
	}

	manager, err := friendship.New(identities, platform, correlator, relay,
		friendship.WithLogger(log),
		friendship.WithAuditPublisher(auditor),
		friendship.WithMetrics(friendshipmetrics.New(reg)))
	if err != nil {
		return err
	}

	dispatcher, err := upstream.NewDispatcher(correlator, manager, upstream.WithDispatcherLogger(log))
	if err != nil {
		return err
	}

	onboarding, err := identityservice.New(
		resolver.New(resolver.WithTimeout(cfg.Identity.ProfileFetchTimeout), resolver.WithLogger(log)),
		identities,
		identityservice.WithDB(db),
		identityservice.WithAuditPublisher(auditor),
		identityservice.WithLogger(log),
		identityservice.WithBotProfileURL(cfg.Upstream.BotProfileURL))
	if err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Use(request.RequestID, requesttime.Middleware, request.Recovery(log), request.Logger(log))
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "redis unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Handle("/metrics", metrics.Handler(reg))
	identityhandler.New(onboarding, cfg.AdminToken, log).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return platform.Run(gctx) })
	g.Go(func() error { return ignoreCanceled(dispatcher.Run(gctx, platform.Events())) })
	g.Go(func() error { return ignoreCanceled(relay.Run(gctx)) })
	g.Go(func() error {
		log.Info("starting rankbridge", "addr", cfg.Addr, "bus", cfg.Bus.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func buildIdentityStore(db *sql.DB, redisClient *redis.Client, cfg config.Config, log *slog.Logger) identitystore.Store {
	var backing identitystore.Store = identitystore.NewInMemory()
	if db != nil {
		backing = identitystore.NewPostgres(db)
	}
	if redisClient == nil {
		return backing
	}
	return identitystore.NewCached(backing, redisClient.Client,
		identitystore.WithCacheTTL(cfg.Identity.CacheTTL),
		identitystore.WithCacheLogger(log))
}

func buildAuditStore(db *sql.DB) audit.Store {
	if db != nil {
		return auditpostgres.New(db)
	}
	return auditmemory.NewInMemoryStore()
}

func buildBus(ctx context.Context, cfg config.Config, redisClient *redis.Client, log *slog.Logger) (bus.Bus, error) {
	switch cfg.Bus.Driver {
	case config.BusRedis:
		return bus.NewRedis(redisClient.Client, bus.WithRedisLogger(log)), nil
	case config.BusKafka:
		k, err := bus.NewKafka(cfg.Bus.KafkaBrokers, cfg.Bus.KafkaGroup, bus.WithKafkaLogger(log))
		if err != nil {
			return nil, err
		}
		if err := k.EnsureTopics(ctx, cfg.Bus.ExchangeChannel, cfg.Upstream.CommandChannel, cfg.Upstream.EventChannel); err != nil {
			_ = k.Close()
			return nil, err
		}
		return k, nil
	default:
		return bus.NewMemory(), nil
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
