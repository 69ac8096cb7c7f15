package bootstrap

import (
	"context"
	"log/slog"

	"slot-booking/internal/infra/idempotency"
	"slot-booking/internal/pkg/config"
	"slot-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisStore,
		NewIdempotencyStore,
	),
)

// NewRedisStore returns nil when REDIS_ADDR is unset.
func NewRedisStore(lc fx.Lifecycle, cfg config.Config) *idempotency.RedisStore {
	if cfg.Redis.Addr == "" {
		slog.Warn("REDIS_ADDR is not set, Idempotency-Key handling is disabled")
		return nil
	}
	client := idempotency.NewRedisClient(cfg.Redis)
	store := idempotency.NewRedisStore(client, cfg.Redis.IdempotencyTTL)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Unreachable Redis is reported, not fatal.
			if err := store.Ping(ctx); err != nil {
				slog.Warn("redis is not reachable", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return store
}

// NewIdempotencyStore keeps a missing store a true nil interface.
func NewIdempotencyStore(store *idempotency.RedisStore) shared.IdempotencyStore {
	if store == nil {
		return nil
	}
	return store
}
