package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const listActiveRulesByTenantAndType = `
SELECT id, tenant_id, name, type, points_per_unit, min_amount, multiplier, priority,
	valid_from, valid_until, applicable_days, applicable_hours_start, applicable_hours_end,
	status, created_at
FROM points_rules
WHERE tenant_id = $1 AND type = $2 AND status = 'active'
ORDER BY priority DESC, id ASC`

type ListActiveRulesByTenantAndTypeParams struct {
	TenantID uuid.UUID
	Type     string
}

func (q *Queries) ListActiveRulesByTenantAndType(ctx context.Context, db DBTX, arg ListActiveRulesByTenantAndTypeParams) ([]PointsRule, error) {
	rows, err := db.Query(ctx, listActiveRulesByTenantAndType, arg.TenantID, arg.Type)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PointsRule
	for rows.Next() {
		var i PointsRule
		if err := rows.Scan(
			&i.ID,
			&i.TenantID,
			&i.Name,
			&i.Type,
			&i.PointsPerUnit,
			&i.MinAmount,
			&i.Multiplier,
			&i.Priority,
			&i.ValidFrom,
			&i.ValidUntil,
			&i.ApplicableDays,
			&i.ApplicableHoursStart,
			&i.ApplicableHoursEnd,
			&i.Status,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createPointsRule = `
INSERT INTO points_rules (
	id, tenant_id, name, type, points_per_unit, min_amount, multiplier, priority,
	valid_from, valid_until, applicable_days, applicable_hours_start, applicable_hours_end, status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

func (q *Queries) CreatePointsRule(ctx context.Context, db DBTX, arg PointsRule) error {
	_, err := db.Exec(ctx, createPointsRule,
		arg.ID,
		arg.TenantID,
		arg.Name,
		arg.Type,
		arg.PointsPerUnit,
		arg.MinAmount,
		arg.Multiplier,
		arg.Priority,
		arg.ValidFrom,
		arg.ValidUntil,
		arg.ApplicableDays,
		arg.ApplicableHoursStart,
		arg.ApplicableHoursEnd,
		arg.Status,
	)
	return err
}

const customerTierColumns = `id, tenant_id, name, min_points, max_points, priority, multiplier, status, created_at`

func scanCustomerTier(row interface{ Scan(...any) error }) (CustomerTier, error) {
	var i CustomerTier
	err := row.Scan(
		&i.ID,
		&i.TenantID,
		&i.Name,
		&i.MinPoints,
		&i.MaxPoints,
		&i.Priority,
		&i.Multiplier,
		&i.Status,
		&i.CreatedAt,
	)
	return i, err
}

const listActiveTiersByTenant = `SELECT ` + customerTierColumns + `
FROM customer_tiers
WHERE tenant_id = $1 AND status = 'active'
ORDER BY priority ASC, min_points DESC, id ASC`

func (q *Queries) ListActiveTiersByTenant(ctx context.Context, db DBTX, tenantID uuid.UUID) ([]CustomerTier, error) {
	rows, err := db.Query(ctx, listActiveTiersByTenant, tenantID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (CustomerTier, error) {
		return scanCustomerTier(row)
	})
}

const getCustomerTier = `SELECT ` + customerTierColumns + ` FROM customer_tiers WHERE id = $1`

func (q *Queries) GetCustomerTier(ctx context.Context, db DBTX, id uuid.UUID) (CustomerTier, error) {
	return scanCustomerTier(db.QueryRow(ctx, getCustomerTier, id))
}

const createCustomerTier = `
INSERT INTO customer_tiers (id, tenant_id, name, min_points, max_points, priority, multiplier, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (q *Queries) CreateCustomerTier(ctx context.Context, db DBTX, arg CustomerTier) error {
	_, err := db.Exec(ctx, createCustomerTier,
		arg.ID,
		arg.TenantID,
		arg.Name,
		arg.MinPoints,
		arg.MaxPoints,
		arg.Priority,
		arg.Multiplier,
		arg.Status,
	)
	return err
}
