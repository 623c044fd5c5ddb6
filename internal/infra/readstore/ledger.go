package readstore

import (
	"context"
	"time"

	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository/converter"
	"loyalty-ledger/internal/pkg/pgconv"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type LedgerViewQueries interface {
	GetMembershipView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.GetMembershipViewRow, error)
	ListLedgerEntriesFirstPage(ctx context.Context, db query.DBTX, arg query.ListLedgerEntriesFirstPageParams) ([]query.LedgerEntry, error)
	ListLedgerEntriesKeyset(ctx context.Context, db query.DBTX, arg query.ListLedgerEntriesKeysetParams) ([]query.LedgerEntry, error)
	GetUsageView(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID) (query.GetUsageViewRow, error)
	GetTenant(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Tenant, error)
	ListActiveTiersByTenant(ctx context.Context, db query.DBTX, tenantID uuid.UUID) ([]query.CustomerTier, error)
}

// TierCache holds a tenant's active tiers. Implementations must be safe for concurrent use.
type TierCache interface {
	Get(ctx context.Context, tenantID uuid.UUID) ([]*tier.Tier, bool)
	Set(ctx context.Context, tenantID uuid.UUID, tiers []*tier.Tier)
}

type LedgerReadStore struct {
	queries LedgerViewQueries
	db      query.DBTX
	tiers   TierCache
}

// NewLedgerReadStore accepts a nil tier cache.
func NewLedgerReadStore(queries LedgerViewQueries, db query.DBTX, tiers TierCache) *LedgerReadStore {
	return &LedgerReadStore{queries: queries, db: db, tiers: tiers}
}

func (r *LedgerReadStore) FindMembership(ctx context.Context, id uuid.UUID) (*queries.MembershipView, error) {
	row, err := r.queries.GetMembershipView(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get membership view", err)
	}
	spent, err := pgconv.DecimalFromNumeric(row.TotalSpent)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total_spent", err, infra.KindDBFailure)
	}
	return &queries.MembershipView{
		ID:             row.ID,
		TenantID:       row.TenantID,
		UserID:         row.UserID,
		ExternalCode:   row.ExternalCode,
		Balance:        row.Balance,
		TierID:         pgconv.UUIDPtrFromPgtype(row.TierID),
		TierName:       pgconv.StringPtrFromPgtype(row.TierName),
		Status:         row.Status,
		TotalSpent:     spent,
		TotalVisits:    row.TotalVisits,
		LastActivityAt: pgconv.TimePtrFromPgtype(row.LastActivityAt),
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

// FindActiveTiers may serve tiers up to one cache TTL old. It is only used to
// describe progress; tier assignment reads committed rows.
func (r *LedgerReadStore) FindActiveTiers(ctx context.Context, tenantID uuid.UUID) ([]*tier.Tier, error) {
	if r.tiers != nil {
		if tiers, ok := r.tiers.Get(ctx, tenantID); ok {
			return tiers, nil
		}
	}

	rows, err := r.queries.ListActiveTiersByTenant(ctx, r.db, tenantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tiers", err)
	}
	tiers, err := converter.TiersFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert tier rows", err, infra.KindDBFailure)
	}

	if r.tiers != nil {
		r.tiers.Set(ctx, tenantID, tiers)
	}
	return tiers, nil
}

func (r *LedgerReadStore) ListTransactionsFirstPage(ctx context.Context, membershipID uuid.UUID, limit int32) ([]*queries.TransactionView, error) {
	rows, err := r.queries.ListLedgerEntriesFirstPage(ctx, r.db, query.ListLedgerEntriesFirstPageParams{
		MembershipID: membershipID,
		Limit:        limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions first page", err)
	}
	return mapTransactionRows(rows)
}

func (r *LedgerReadStore) ListTransactionsKeyset(ctx context.Context, membershipID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.TransactionView, error) {
	rows, err := r.queries.ListLedgerEntriesKeyset(ctx, r.db, query.ListLedgerEntriesKeysetParams{
		MembershipID: membershipID,
		CreatedAt:    lastCreatedAt,
		ID:           lastID,
		Limit:        limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list transactions keyset", err)
	}
	return mapTransactionRows(rows)
}

func (r *LedgerReadStore) FindUsage(ctx context.Context, subscriptionID uuid.UUID) (*queries.UsageRow, error) {
	row, err := r.queries.GetUsageView(ctx, r.db, subscriptionID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get usage view", err)
	}
	return &queries.UsageRow{
		SubscriptionID: row.SubscriptionID,
		PlanSlug:       row.PlanSlug,
		Counter: usage.Counter{
			SubscriptionID: row.SubscriptionID,
			Tenants:        row.TenantsCount,
			Branches:       row.BranchesCount,
			Customers:      row.CustomersCount,
			Rewards:        row.RewardsCount,
			UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
		},
	}, nil
}

func (r *LedgerReadStore) FindTenantSubscription(ctx context.Context, tenantID uuid.UUID) (uuid.UUID, error) {
	row, err := r.queries.GetTenant(ctx, r.db, tenantID)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to get tenant", err)
	}
	return row.SubscriptionID, nil
}

func mapTransactionRows(rows []query.LedgerEntry) ([]*queries.TransactionView, error) {
	out := make([]*queries.TransactionView, 0, len(rows))
	for _, row := range rows {
		multiplier, err := pgconv.DecimalPtrFromNumeric(row.Multiplier)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid multiplier", err, infra.KindDBFailure)
		}
		amount, err := pgconv.DecimalPtrFromNumeric(row.Amount)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid amount", err, infra.KindDBFailure)
		}
		out = append(out, &queries.TransactionView{
			ID:              row.ID,
			MembershipID:    row.MembershipID,
			Kind:            row.Kind,
			Points:          row.Points,
			Reference:       row.TransactionReference,
			ReversedEntryID: pgconv.UUIDPtrFromPgtype(row.ReversedEntryID),
			RuleID:          pgconv.UUIDPtrFromPgtype(row.RuleID),
			BasePoints:      row.BasePoints,
			Multiplier:      multiplier,
			BonusPoints:     row.BonusPoints,
			Amount:          amount,
			ReasonCode:      pgconv.StringPtrFromPgtype(row.ReasonCode),
			Description:     pgconv.StringPtrFromPgtype(row.Description),
			BranchID:        pgconv.UUIDPtrFromPgtype(row.BranchID),
			CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return out, nil
}
