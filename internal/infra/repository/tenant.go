package repository

import (
	"context"

	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository/converter"
	"loyalty-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type TenantQueries interface {
	CreateTenant(ctx context.Context, db query.DBTX, arg query.CreateTenantParams) error
	GetTenant(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Tenant, error)
	DeleteTenant(ctx context.Context, db query.DBTX, id uuid.UUID) (uuid.UUID, error)
}

type TenantRepository struct {
	queries     TenantQueries
	db          query.DBTX
	hook        *UsageHook
	memberships *MembershipRepository
	branches    *BranchRepository
}

// NewTenantRepository deletes children through the given repositories so their usage is released too.
func NewTenantRepository(
	queries TenantQueries,
	db query.DBTX,
	hook *UsageHook,
	memberships *MembershipRepository,
	branches *BranchRepository,
) *TenantRepository {
	return &TenantRepository{
		queries:     queries,
		db:          db,
		hook:        hook,
		memberships: memberships,
		branches:    branches,
	}
}

func (r *TenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	row, err := r.queries.GetTenant(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get tenant", err)
	}
	return converter.TenantFromRow(row), nil
}

func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	err := r.queries.CreateTenant(ctx, r.db, query.CreateTenantParams{
		ID:             t.ID(),
		SubscriptionID: t.SubscriptionID(),
		Name:           t.Name(),
		CreatedAt:      pgconv.TimeToPgtype(t.CreatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create tenant", err)
	}
	return nil
}

func (r *TenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	if _, err := r.memberships.DeleteByTenant(ctx, id); err != nil {
		return err
	}
	if _, err := r.branches.DeleteByTenant(ctx, id); err != nil {
		return err
	}

	subscriptionID, err := r.queries.DeleteTenant(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete tenant", err)
	}
	r.hook.Released(ctx, r.db, subscriptionID, usage.ResourceTenants, 1)
	return nil
}

type BranchQueries interface {
	CreateBranch(ctx context.Context, db query.DBTX, arg query.CreateBranchParams) error
	GetBranch(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Branch, error)
	DeleteBranch(ctx context.Context, db query.DBTX, id uuid.UUID) (uuid.UUID, error)
	DeleteBranchesByTenant(ctx context.Context, db query.DBTX, tenantID uuid.UUID) (int64, error)
}

type BranchRepository struct {
	queries BranchQueries
	db      query.DBTX
	hook    *UsageHook
}

func NewBranchRepository(queries BranchQueries, db query.DBTX, hook *UsageHook) *BranchRepository {
	return &BranchRepository{queries: queries, db: db, hook: hook}
}

func (r *BranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Branch, error) {
	row, err := r.queries.GetBranch(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get branch", err)
	}
	return converter.BranchFromRow(row), nil
}

func (r *BranchRepository) Create(ctx context.Context, b *tenant.Branch) error {
	err := r.queries.CreateBranch(ctx, r.db, query.CreateBranchParams{
		ID:        b.ID(),
		TenantID:  b.TenantID(),
		Name:      b.Name(),
		CreatedAt: pgconv.TimeToPgtype(b.CreatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to create branch", err)
	}
	return nil
}

func (r *BranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	subscriptionID, err := r.queries.DeleteBranch(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete branch", err)
	}
	r.hook.Released(ctx, r.db, subscriptionID, usage.ResourceBranches, 1)
	return nil
}

func (r *BranchRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	n, err := r.queries.DeleteBranchesByTenant(ctx, r.db, tenantID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete tenant branches", err)
	}
	r.hook.ReleasedByTenant(ctx, r.db, tenantID, usage.ResourceBranches, n)
	return n, nil
}
