package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/donation_payment_app/internal/adapters/gateway/midtrans"
	"github.com/SscSPs/donation_payment_app/internal/adapters/publisher"
	portssvc "github.com/SscSPs/donation_payment_app/internal/core/ports/services"
	"github.com/SscSPs/donation_payment_app/internal/core/services"
	"github.com/SscSPs/donation_payment_app/internal/platform/config"
	"github.com/SscSPs/donation_payment_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/donation_payment_app/internal/utils"
	"github.com/SscSPs/donation_payment_app/pkg/database"
	"github.com/SscSPs/donation_payment_app/pkg/lock"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// app holds the long-lived dependencies shared by the serve and sweep commands.
type app struct {
	cfg      *config.Config
	pool     *pgxpool.Pool
	redis    *redis.Client
	posthog  *utils.PosthogClientWrapper
	services *portssvc.ServiceContainer
	locker   lock.DistributedLock
	closers  []io.Closer
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, locker: lock.NoopLock{}}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	a.pool = pool
	logger.Info("Database connection pool established.")

	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = rdb
		a.closers = append(a.closers, rdb)
		a.locker = lock.NewRedisLock(rdb)
		logger.Info("Redis client connected.")
	}

	a.posthog = utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)

	eventPublisher, err := a.buildPublisher(logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	gateway := midtrans.NewClient(cfg.MidtransBaseURL, cfg.MidtransServerKey, cfg.MidtransTimeout)
	repos := pgsql.NewRepositoryProvider(pool)
	a.services = services.NewServiceContainer(cfg, repos, gateway, eventPublisher)
	return a, nil
}

// buildPublisher assembles the configured event sinks.
func (a *app) buildPublisher(logger *slog.Logger) (portssvc.EventPublisher, error) {
	var sinks []portssvc.EventPublisher
	if a.cfg.HasSink("log") {
		sinks = append(sinks, publisher.NewLogPublisher(logger))
	}
	if a.cfg.HasSink("redis") {
		if a.redis == nil {
			return nil, fmt.Errorf("event sink redis requires REDIS_URL")
		}
		sinks = append(sinks, publisher.NewRedisStreamPublisher(a.redis, a.cfg.EventStream))
	}
	if a.cfg.HasSink("kafka") {
		if len(a.cfg.KafkaBrokers) == 0 {
			return nil, fmt.Errorf("event sink kafka requires KAFKA_BROKERS")
		}
		kp := publisher.NewKafkaPublisher(a.cfg.KafkaBrokers, a.cfg.KafkaTopic)
		a.closers = append(a.closers, kp)
		sinks = append(sinks, kp)
	}
	if a.cfg.HasSink("posthog") {
		if !a.posthog.IsInitialized() {
			logger.Warn("Event sink posthog configured without POSTHOG_API_KEY, events will be dropped")
		}
		sinks = append(sinks, publisher.NewPosthogPublisher(a.posthog))
	}
	logger.Info("Event sinks configured", slog.Any("sinks", a.cfg.EventSinks))
	return publisher.NewMultiPublisher(sinks...), nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			slog.Default().Warn("Error closing dependency", slog.String("error", err.Error()))
		}
	}
	a.posthog.Close()
	if a.pool != nil {
		database.ClosePgxPool(a.pool)
	}
}
