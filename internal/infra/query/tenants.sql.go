package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createTenant = `INSERT INTO tenants (id, subscription_id, name, created_at) VALUES ($1, $2, $3, $4)`

type CreateTenantParams struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	Name           string
	CreatedAt      pgtype.Timestamptz
}

func (q *Queries) CreateTenant(ctx context.Context, db DBTX, arg CreateTenantParams) error {
	_, err := db.Exec(ctx, createTenant, arg.ID, arg.SubscriptionID, arg.Name, arg.CreatedAt)
	return err
}

const getTenant = `SELECT id, subscription_id, name, created_at FROM tenants WHERE id = $1`

func (q *Queries) GetTenant(ctx context.Context, db DBTX, id uuid.UUID) (Tenant, error) {
	var i Tenant
	err := db.QueryRow(ctx, getTenant, id).Scan(&i.ID, &i.SubscriptionID, &i.Name, &i.CreatedAt)
	return i, err
}

const deleteTenant = `DELETE FROM tenants WHERE id = $1 RETURNING subscription_id`

func (q *Queries) DeleteTenant(ctx context.Context, db DBTX, id uuid.UUID) (uuid.UUID, error) {
	var subscriptionID uuid.UUID
	err := db.QueryRow(ctx, deleteTenant, id).Scan(&subscriptionID)
	return subscriptionID, err
}

const createBranch = `INSERT INTO branches (id, tenant_id, name, created_at) VALUES ($1, $2, $3, $4)`

type CreateBranchParams struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateBranch(ctx context.Context, db DBTX, arg CreateBranchParams) error {
	_, err := db.Exec(ctx, createBranch, arg.ID, arg.TenantID, arg.Name, arg.CreatedAt)
	return err
}

const getBranch = `SELECT id, tenant_id, name, created_at FROM branches WHERE id = $1`

func (q *Queries) GetBranch(ctx context.Context, db DBTX, id uuid.UUID) (Branch, error) {
	var i Branch
	err := db.QueryRow(ctx, getBranch, id).Scan(&i.ID, &i.TenantID, &i.Name, &i.CreatedAt)
	return i, err
}

const deleteBranch = `
DELETE FROM branches b
USING tenants t
WHERE b.id = $1 AND t.id = b.tenant_id
RETURNING t.subscription_id`

func (q *Queries) DeleteBranch(ctx context.Context, db DBTX, id uuid.UUID) (uuid.UUID, error) {
	var subscriptionID uuid.UUID
	err := db.QueryRow(ctx, deleteBranch, id).Scan(&subscriptionID)
	return subscriptionID, err
}

const deleteBranchesByTenant = `
WITH deleted AS (
	DELETE FROM branches WHERE tenant_id = $1 RETURNING 1
)
SELECT count(*) FROM deleted`

func (q *Queries) DeleteBranchesByTenant(ctx context.Context, db DBTX, tenantID uuid.UUID) (int64, error) {
	var n int64
	err := db.QueryRow(ctx, deleteBranchesByTenant, tenantID).Scan(&n)
	return n, err
}
