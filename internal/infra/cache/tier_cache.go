package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/pkg/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const keyPrefix = "loyalty:tiers:"

// tierRecord is the cached shape of a tier.
type tierRecord struct {
	ID         uuid.UUID       `json:"id"`
	TenantID   uuid.UUID       `json:"tenant_id"`
	Name       string          `json:"name"`
	MinPoints  int64           `json:"min_points"`
	MaxPoints  *int64          `json:"max_points,omitempty"`
	Priority   int             `json:"priority"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Status     string          `json:"status"`
}

// RedisTierCache keeps each tenant's active tiers for a short TTL.
// Redis failures degrade to a cache miss.
type RedisTierCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisTierCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisTierCache {
	return &RedisTierCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisTierCache) Get(ctx context.Context, tenantID uuid.UUID) ([]*tier.Tier, bool) {
	raw, err := c.client.Get(ctx, key(tenantID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("tier cache read failed", "tenant_id", tenantID, "error", err.Error())
		}
		return nil, false
	}

	var records []tierRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		c.logger.Warn("tier cache entry is corrupt", "tenant_id", tenantID, "error", err.Error())
		return nil, false
	}
	tiers := make([]*tier.Tier, 0, len(records))
	for _, r := range records {
		t, err := tier.Reconstruct(tier.Attributes{
			ID:         r.ID,
			TenantID:   r.TenantID,
			Name:       r.Name,
			MinPoints:  r.MinPoints,
			MaxPoints:  r.MaxPoints,
			Priority:   r.Priority,
			Multiplier: r.Multiplier,
			Status:     tier.Status(r.Status),
		})
		if err != nil {
			return nil, false
		}
		tiers = append(tiers, t)
	}
	return tiers, true
}

func (c *RedisTierCache) Set(ctx context.Context, tenantID uuid.UUID, tiers []*tier.Tier) {
	records := make([]tierRecord, 0, len(tiers))
	for _, t := range tiers {
		records = append(records, tierRecord{
			ID:         t.ID(),
			TenantID:   t.TenantID(),
			Name:       t.Name(),
			MinPoints:  t.MinPoints(),
			MaxPoints:  t.MaxPoints(),
			Priority:   t.Priority(),
			Multiplier: t.Multiplier(),
			Status:     string(t.Status()),
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(tenantID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("tier cache write failed", "tenant_id", tenantID, "error", err.Error())
	}
}

func key(tenantID uuid.UUID) string {
	return keyPrefix + tenantID.String()
}
