package repository

import (
	"context"
	"log/slog"

	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/infra/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UsageHookQueries interface {
	GetTenant(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Tenant, error)
	EnsureUsageCounter(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID) error
	DecrementUsage(ctx context.Context, db query.DBTX, arg query.DecrementUsageParams) (int64, error)
}

// UsageHook releases usage when rows are deleted. Every delete path of the
// membership, branch and tenant repositories goes through it exactly once.
// Failures are logged and never abort the delete.
type UsageHook struct {
	queries UsageHookQueries
	logger  *slog.Logger
}

func NewUsageHook(queries UsageHookQueries, logger *slog.Logger) *UsageHook {
	if logger == nil {
		logger = slog.Default()
	}
	return &UsageHook{queries: queries, logger: logger}
}

func (h *UsageHook) Released(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID, r usage.Resource, n int64) {
	if n <= 0 {
		return
	}
	err := withSavepoint(ctx, db, func(db query.DBTX) error {
		if err := h.queries.EnsureUsageCounter(ctx, db, subscriptionID); err != nil {
			return err
		}
		updated, err := h.queries.DecrementUsage(ctx, db, query.DecrementUsageParams{
			SubscriptionID: subscriptionID,
			Resource:       string(r),
			N:              n,
		})
		if err != nil {
			return err
		}
		if updated == 0 {
			h.logger.Warn("usage counter missing, decrement skipped",
				"subscription_id", subscriptionID, "resource", r, "count", n)
		}
		return nil
	})
	if err != nil {
		h.logger.Error("usage decrement failed",
			"subscription_id", subscriptionID, "resource", r, "count", n, "error", err)
	}
}

// ReleasedByTenant resolves the tenant's subscription first.
func (h *UsageHook) ReleasedByTenant(ctx context.Context, db query.DBTX, tenantID uuid.UUID, r usage.Resource, n int64) {
	if n <= 0 {
		return
	}
	t, err := h.queries.GetTenant(ctx, db, tenantID)
	if err != nil {
		h.logger.Warn("tenant subscription not found, decrement skipped",
			"tenant_id", tenantID, "resource", r, "count", n, "error", err)
		return
	}
	h.Released(ctx, db, t.SubscriptionID, r, n)
}

type savepointer interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withSavepoint confines a failing statement so the surrounding transaction stays usable.
func withSavepoint(ctx context.Context, db query.DBTX, fn func(db query.DBTX) error) error {
	sp, ok := db.(savepointer)
	if !ok {
		return fn(db)
	}
	tx, err := sp.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
