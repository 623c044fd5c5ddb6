package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"loyalty-ledger/internal/infra/cache"
	"loyalty-ledger/internal/infra/readstore"
	"loyalty-ledger/internal/pkg/config"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewTierCache,
	),
)

// NewTierCache returns nil when REDIS_ADDR is unset; membership reads then load tiers from Postgres.
func NewTierCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) readstore.TierCache {
	if cfg.Redis.Addr == "" {
		logger.Info("tier cache disabled")
		return nil
	}

	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			if err := client.Ping(pingCtx).Err(); err != nil {
				// The cache degrades to misses; startup continues.
				logger.Warn("redis unreachable, tier cache will miss", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return cache.NewRedisTierCache(client, cfg.Redis.TierTTL, logger)
}
