package repository

import (
	"context"

	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type RuleQueries interface {
	ListActiveRulesByTenantAndType(ctx context.Context, db query.DBTX, arg query.ListActiveRulesByTenantAndTypeParams) ([]query.PointsRule, error)
}

type RuleStore struct {
	queries RuleQueries
	db      query.DBTX
}

func NewRuleStore(queries RuleQueries, db query.DBTX) *RuleStore {
	return &RuleStore{queries: queries, db: db}
}

func (s *RuleStore) FindActiveByTenantAndType(ctx context.Context, tenantID uuid.UUID, ruleType rule.Type) ([]*rule.Rule, error) {
	rows, err := s.queries.ListActiveRulesByTenantAndType(ctx, s.db, query.ListActiveRulesByTenantAndTypeParams{
		TenantID: tenantID,
		Type:     string(ruleType),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list points rules", err)
	}
	out := make([]*rule.Rule, 0, len(rows))
	for _, row := range rows {
		r, err := converter.RuleFromRow(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert points rule row", err, infra.KindDBFailure)
		}
		out = append(out, r)
	}
	return out, nil
}

type TierQueries interface {
	ListActiveTiersByTenant(ctx context.Context, db query.DBTX, tenantID uuid.UUID) ([]query.CustomerTier, error)
	GetCustomerTier(ctx context.Context, db query.DBTX, id uuid.UUID) (query.CustomerTier, error)
}

// TierStore reads tiers inside the caller's transaction. It never consults
// the tier cache: a projection must see the tiers as committed, not as cached.
type TierStore struct {
	queries TierQueries
	db      query.DBTX
}

func NewTierStore(queries TierQueries, db query.DBTX) *TierStore {
	return &TierStore{queries: queries, db: db}
}

func (s *TierStore) FindForBalance(ctx context.Context, tenantID uuid.UUID, balance int64) (*tier.Tier, error) {
	tiers, err := s.activeTiers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return tier.Resolve(tiers, balance), nil
}

func (s *TierStore) FindByID(ctx context.Context, id uuid.UUID) (*tier.Tier, error) {
	row, err := s.queries.GetCustomerTier(ctx, s.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get tier", err)
	}
	t, err := converter.TierFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert tier row", err, infra.KindDBFailure)
	}
	return t, nil
}

func (s *TierStore) activeTiers(ctx context.Context, tenantID uuid.UUID) ([]*tier.Tier, error) {
	rows, err := s.queries.ListActiveTiersByTenant(ctx, s.db, tenantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list tiers", err)
	}
	tiers, err := converter.TiersFromRows(rows)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert tier rows", err, infra.KindDBFailure)
	}
	return tiers, nil
}
