package commands

import (
	"context"

	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type quota struct {
	plans shared.PlanCatalog
}

// reserve checks the plan limit and increments the counter in the caller's transaction,
// so a failed creation rolls the increment back with it.
func (q quota) reserve(ctx context.Context, tx shared.Tx, subscriptionID uuid.UUID, r usage.Resource) error {
	slug, err := tx.Usage().PlanSlug(ctx, subscriptionID)
	if err != nil {
		return err
	}
	limits, err := q.plans.LimitsFor(slug)
	if err != nil {
		return err
	}
	return tx.Usage().Increment(ctx, subscriptionID, r, limits.For(r))
}
