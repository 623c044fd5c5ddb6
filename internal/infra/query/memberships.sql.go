package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const membershipColumns = `id, tenant_id, user_id, external_code, balance, tier_id, status,
	total_spent, total_visits, last_activity_at, created_at, updated_at`

func scanMembership(row interface{ Scan(...any) error }) (Membership, error) {
	var i Membership
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.UserID,
		&i.ExternalCode,
		&i.Balance,
		&i.TierID,
		&i.Status,
		&i.TotalSpent,
		&i.TotalVisits,
		&i.LastActivityAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getMembership = `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1`

func (q *Queries) GetMembership(ctx context.Context, db DBTX, id uuid.UUID) (Membership, error) {
	return scanMembership(db.QueryRow(ctx, getMembership, id))
}

const getMembershipForUpdate = `SELECT ` + membershipColumns + ` FROM memberships WHERE id = $1 FOR UPDATE`

func (q *Queries) GetMembershipForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Membership, error) {
	return scanMembership(db.QueryRow(ctx, getMembershipForUpdate, id))
}

const getMembershipByExternalCode = `SELECT ` + membershipColumns + `
FROM memberships WHERE tenant_id = $1 AND external_code = $2`

type GetMembershipByExternalCodeParams struct {
	TenantID     uuid.UUID
	ExternalCode string
}

func (q *Queries) GetMembershipByExternalCode(ctx context.Context, db DBTX, arg GetMembershipByExternalCodeParams) (Membership, error) {
	return scanMembership(db.QueryRow(ctx, getMembershipByExternalCode, arg.TenantID, arg.ExternalCode))
}

const createMembership = `
INSERT INTO memberships (
	id, tenant_id, user_id, external_code, balance, tier_id, status,
	total_spent, total_visits, last_activity_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

type CreateMembershipParams struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	UserID         uuid.UUID
	ExternalCode   string
	Balance        int64
	TierID         pgtype.UUID
	Status         string
	TotalSpent     pgtype.Numeric
	TotalVisits    int64
	LastActivityAt pgtype.Timestamptz
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) CreateMembership(ctx context.Context, db DBTX, arg CreateMembershipParams) error {
	_, err := db.Exec(ctx, createMembership,
		arg.ID,
		arg.TenantID,
		arg.UserID,
		arg.ExternalCode,
		arg.Balance,
		arg.TierID,
		arg.Status,
		arg.TotalSpent,
		arg.TotalVisits,
		arg.LastActivityAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateMembership = `
UPDATE memberships
SET balance = $2,
	tier_id = $3,
	status = $4,
	total_spent = $5,
	total_visits = $6,
	last_activity_at = $7,
	updated_at = $8
WHERE id = $1`

type UpdateMembershipParams struct {
	ID             uuid.UUID
	Balance        int64
	TierID         pgtype.UUID
	Status         string
	TotalSpent     pgtype.Numeric
	TotalVisits    int64
	LastActivityAt pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) UpdateMembership(ctx context.Context, db DBTX, arg UpdateMembershipParams) (int64, error) {
	tag, err := db.Exec(ctx, updateMembership,
		arg.ID,
		arg.Balance,
		arg.TierID,
		arg.Status,
		arg.TotalSpent,
		arg.TotalVisits,
		arg.LastActivityAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteMembership = `
DELETE FROM memberships m
USING tenants t
WHERE m.id = $1 AND t.id = m.tenant_id
RETURNING t.subscription_id`

// DeleteMembership returns the subscription the membership counted against.
func (q *Queries) DeleteMembership(ctx context.Context, db DBTX, id uuid.UUID) (uuid.UUID, error) {
	var subscriptionID uuid.UUID
	err := db.QueryRow(ctx, deleteMembership, id).Scan(&subscriptionID)
	return subscriptionID, err
}

const deleteMembershipsByTenant = `
WITH deleted AS (
	DELETE FROM memberships WHERE tenant_id = $1 RETURNING 1
)
SELECT count(*) FROM deleted`

func (q *Queries) DeleteMembershipsByTenant(ctx context.Context, db DBTX, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, deleteMembershipsByTenant, tenantID).Scan(&n)
	return n, err
}

const getMembershipView = `
SELECT m.id, m.tenant_id, m.user_id, m.external_code, m.balance, m.tier_id, ct.name,
	m.status, m.total_spent, m.total_visits, m.last_activity_at, m.created_at, m.updated_at
FROM memberships m
LEFT JOIN customer_tiers ct ON ct.id = m.tier_id
WHERE m.id = $1`

type GetMembershipViewRow struct {
	Membership
	TierName pgtype.Text
}

func (q *Queries) GetMembershipView(ctx context.Context, db DBTX, id uuid.UUID) (GetMembershipViewRow, error) {
	var i GetMembershipViewRow
	err := db.QueryRow(ctx, getMembershipView, id).Scan(
		&i.ID,
		&i.TenantID,
		&i.UserID,
		&i.ExternalCode,
		&i.Balance,
		&i.TierID,
		&i.TierName,
		&i.Status,
		&i.TotalSpent,
		&i.TotalVisits,
		&i.LastActivityAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}
