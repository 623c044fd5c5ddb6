package repository

import (
	"context"

	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type MembershipQueries interface {
	GetMembership(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Membership, error)
	GetMembershipForUpdate(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Membership, error)
	GetMembershipByExternalCode(ctx context.Context, db query.DBTX, arg query.GetMembershipByExternalCodeParams) (query.Membership, error)
	CreateMembership(ctx context.Context, db query.DBTX, arg query.CreateMembershipParams) error
	UpdateMembership(ctx context.Context, db query.DBTX, arg query.UpdateMembershipParams) (int64, error)
	DeleteMembership(ctx context.Context, db query.DBTX, id uuid.UUID) (uuid.UUID, error)
	DeleteMembershipsByTenant(ctx context.Context, db query.DBTX, tenantID uuid.UUID) (int64, error)
}

type MembershipRepository struct {
	queries MembershipQueries
	db      query.DBTX
	hook    *UsageHook
}

func NewMembershipRepository(queries MembershipQueries, db query.DBTX, hook *UsageHook) *MembershipRepository {
	return &MembershipRepository{queries: queries, db: db, hook: hook}
}

func (r *MembershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*membership.Membership, error) {
	row, err := r.queries.GetMembership(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get membership", err)
	}
	return r.toDomain(row)
}

func (r *MembershipRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*membership.Membership, error) {
	row, err := r.queries.GetMembershipForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock membership", err)
	}
	return r.toDomain(row)
}

func (r *MembershipRepository) FindByExternalCode(ctx context.Context, tenantID uuid.UUID, code string) (*membership.Membership, error) {
	row, err := r.queries.GetMembershipByExternalCode(ctx, r.db, query.GetMembershipByExternalCodeParams{
		TenantID:     tenantID,
		ExternalCode: code,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get membership by external code", err)
	}
	return r.toDomain(row)
}

func (r *MembershipRepository) Create(ctx context.Context, m *membership.Membership) error {
	if err := r.queries.CreateMembership(ctx, r.db, converter.MembershipToCreateParams(m)); err != nil {
		return infra.WrapRepoErr("failed to create membership", err)
	}
	return nil
}

func (r *MembershipRepository) Update(ctx context.Context, m *membership.Membership) error {
	n, err := r.queries.UpdateMembership(ctx, r.db, converter.MembershipToUpdateParams(m))
	if err != nil {
		return infra.WrapRepoErr("failed to update membership", err)
	}
	if n == 0 {
		return infra.WrapRepoErr("membership not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	subscriptionID, err := r.queries.DeleteMembership(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete membership", err)
	}
	r.hook.Released(ctx, r.db, subscriptionID, usage.ResourceCustomers, 1)
	return nil
}

func (r *MembershipRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	n, err := r.queries.DeleteMembershipsByTenant(ctx, r.db, tenantID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete tenant memberships", err)
	}
	r.hook.ReleasedByTenant(ctx, r.db, tenantID, usage.ResourceCustomers, n)
	return n, nil
}

func (r *MembershipRepository) toDomain(row query.Membership) (*membership.Membership, error) {
	m, err := converter.MembershipFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert membership row", err, infra.KindDBFailure)
	}
	return m, nil
}
