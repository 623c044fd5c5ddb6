package repository

import (
	"context"
	"fmt"

	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UsageQueries interface {
	EnsureUsageCounter(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID) error
	GetUsageCounter(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID) (query.UsageCounter, error)
	IncrementUsage(ctx context.Context, db query.DBTX, arg query.IncrementUsageParams) (int64, error)
	DecrementUsage(ctx context.Context, db query.DBTX, arg query.DecrementUsageParams) (int64, error)
	RecountUsage(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID) (query.UsageCounter, error)
	GetSubscriptionPlan(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID) (string, error)
}

type UsageCounterRepository struct {
	queries UsageQueries
	db      query.DBTX
}

func NewUsageCounterRepository(queries UsageQueries, db query.DBTX) *UsageCounterRepository {
	return &UsageCounterRepository{queries: queries, db: db}
}

func (r *UsageCounterRepository) Get(ctx context.Context, subscriptionID uuid.UUID) (usage.Counter, error) {
	if err := r.queries.EnsureUsageCounter(ctx, r.db, subscriptionID); err != nil {
		return usage.Counter{}, infra.WrapRepoErr("failed to ensure usage counter", err)
	}
	row, err := r.queries.GetUsageCounter(ctx, r.db, subscriptionID)
	if err != nil {
		return usage.Counter{}, infra.WrapRepoErr("failed to get usage counter", err)
	}
	return counterFromRow(row), nil
}

func (r *UsageCounterRepository) Increment(ctx context.Context, subscriptionID uuid.UUID, res usage.Resource, limit int64) error {
	if !res.Valid() {
		return usage.ErrInvalidResource
	}
	if err := r.queries.EnsureUsageCounter(ctx, r.db, subscriptionID); err != nil {
		return infra.WrapRepoErr("failed to ensure usage counter", err)
	}
	updated, err := r.queries.IncrementUsage(ctx, r.db, query.IncrementUsageParams{
		SubscriptionID: subscriptionID,
		Resource:       string(res),
		Limit:          limit,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to increment usage", err)
	}
	if updated == 1 {
		return nil
	}

	// Nothing updated: either the subscription is unknown or the limit is reached.
	row, err := r.queries.GetUsageCounter(ctx, r.db, subscriptionID)
	if err != nil {
		return infra.WrapRepoErr("usage counter not found", err)
	}
	current := counterFromRow(row).Count(res)
	if usage.CanCreate(current, limit) {
		return infra.WrapRepoErr(
			fmt.Sprintf("usage update refused with %s at %d of %d", res, current, limit),
			nil, infra.KindDBFailure)
	}
	return usage.LimitExceeded(res, limit)
}

func (r *UsageCounterRepository) Decrement(ctx context.Context, subscriptionID uuid.UUID, res usage.Resource, n int64) error {
	if !res.Valid() {
		return usage.ErrInvalidResource
	}
	if err := r.queries.EnsureUsageCounter(ctx, r.db, subscriptionID); err != nil {
		return infra.WrapRepoErr("failed to ensure usage counter", err)
	}
	_, err := r.queries.DecrementUsage(ctx, r.db, query.DecrementUsageParams{
		SubscriptionID: subscriptionID,
		Resource:       string(res),
		N:              n,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to decrement usage", err)
	}
	return nil
}

func (r *UsageCounterRepository) Recount(ctx context.Context, subscriptionID uuid.UUID) (usage.Counter, error) {
	if err := r.queries.EnsureUsageCounter(ctx, r.db, subscriptionID); err != nil {
		return usage.Counter{}, infra.WrapRepoErr("failed to ensure usage counter", err)
	}
	row, err := r.queries.RecountUsage(ctx, r.db, subscriptionID)
	if err != nil {
		return usage.Counter{}, infra.WrapRepoErr("failed to recount usage", err)
	}
	return counterFromRow(row), nil
}

func (r *UsageCounterRepository) PlanSlug(ctx context.Context, subscriptionID uuid.UUID) (string, error) {
	slug, err := r.queries.GetSubscriptionPlan(ctx, r.db, subscriptionID)
	if err != nil {
		return "", infra.WrapRepoErr("failed to get subscription plan", err)
	}
	return slug, nil
}

func counterFromRow(row query.UsageCounter) usage.Counter {
	return usage.Counter{
		SubscriptionID: row.SubscriptionID,
		Tenants:        row.TenantsCount,
		Branches:       row.BranchesCount,
		Customers:      row.CustomersCount,
		Rewards:        row.RewardsCount,
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
