package query

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// usageColumns whitelists the counter columns that may be interpolated into SQL.
var usageColumns = map[string]string{
	"tenants":   "tenants_count",
	"branches":  "branches_count",
	"customers": "customers_count",
	"rewards":   "rewards_count",
}

func usageColumn(resource string) (string, error) {
	col, ok := usageColumns[resource]
	if !ok {
		return "", fmt.Errorf("unknown usage resource %q", resource)
	}
	return col, nil
}

const ensureUsageCounter = `
INSERT INTO usage_counters (subscription_id)
SELECT id FROM subscriptions WHERE id = $1
ON CONFLICT (subscription_id) DO NOTHING`

// EnsureUsageCounter creates the counter row when the subscription exists and has none yet.
func (q *Queries) EnsureUsageCounter(ctx context.Context, db DBTX, subscriptionID uuid.UUID) error {
	_, err := db.Exec(ctx, ensureUsageCounter, subscriptionID)
	return err
}

const getUsageCounter = `
SELECT subscription_id, tenants_count, branches_count, customers_count, rewards_count, updated_at
FROM usage_counters WHERE subscription_id = $1`

func (q *Queries) GetUsageCounter(ctx context.Context, db DBTX, subscriptionID uuid.UUID) (UsageCounter, error) {
	var i UsageCounter
	err := db.QueryRow(ctx, getUsageCounter, subscriptionID).Scan(
		&i.SubscriptionID,
		&i.TenantsCount,
		&i.BranchesCount,
		&i.CustomersCount,
		&i.RewardsCount,
		&i.UpdatedAt,
	)
	return i, err
}

type IncrementUsageParams struct {
	SubscriptionID uuid.UUID
	Resource       string
	// Limit of -1 means unlimited.
	Limit int64
}

// IncrementUsage checks the limit and increments in one statement. The WHERE
// clause is usage.CanCreate evaluated against the locked row.
// It returns the number of updated rows: 0 means the limit was reached or the row is missing.
func (q *Queries) IncrementUsage(ctx context.Context, db DBTX, arg IncrementUsageParams) (int64, error) {
	col, err := usageColumn(arg.Resource)
	if err != nil {
		return 0, err
	}
	sql := fmt.Sprintf(`
UPDATE usage_counters
SET %[1]s = %[1]s + 1, updated_at = now()
WHERE subscription_id = $1 AND ($2::bigint = -1 OR %[1]s < $2::bigint)`, col)

	tag, err := db.Exec(ctx, sql, arg.SubscriptionID, arg.Limit)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type DecrementUsageParams struct {
	SubscriptionID uuid.UUID
	Resource       string
	N              int64
}

func (q *Queries) DecrementUsage(ctx context.Context, db DBTX, arg DecrementUsageParams) (int64, error) {
	col, err := usageColumn(arg.Resource)
	if err != nil {
		return 0, err
	}
	sql := fmt.Sprintf(`
UPDATE usage_counters
SET %[1]s = GREATEST(%[1]s - $2::bigint, 0), updated_at = now()
WHERE subscription_id = $1`, col)

	tag, err := db.Exec(ctx, sql, arg.SubscriptionID, arg.N)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const recountUsage = `
UPDATE usage_counters u
SET tenants_count = (SELECT count(*) FROM tenants t WHERE t.subscription_id = u.subscription_id),
	branches_count = (
		SELECT count(*) FROM branches b
		JOIN tenants t ON t.id = b.tenant_id
		WHERE t.subscription_id = u.subscription_id
	),
	customers_count = (
		SELECT count(*) FROM memberships m
		JOIN tenants t ON t.id = m.tenant_id
		WHERE t.subscription_id = u.subscription_id
	),
	updated_at = now()
WHERE u.subscription_id = $1
RETURNING subscription_id, tenants_count, branches_count, customers_count, rewards_count, updated_at`

func (q *Queries) RecountUsage(ctx context.Context, db DBTX, subscriptionID uuid.UUID) (UsageCounter, error) {
	var i UsageCounter
	err := db.QueryRow(ctx, recountUsage, subscriptionID).Scan(
		&i.SubscriptionID,
		&i.TenantsCount,
		&i.BranchesCount,
		&i.CustomersCount,
		&i.RewardsCount,
		&i.UpdatedAt,
	)
	return i, err
}

const getSubscriptionPlan = `SELECT plan_slug FROM subscriptions WHERE id = $1`

func (q *Queries) GetSubscriptionPlan(ctx context.Context, db DBTX, subscriptionID uuid.UUID) (string, error) {
	var slug string
	err := db.QueryRow(ctx, getSubscriptionPlan, subscriptionID).Scan(&slug)
	return slug, err
}

const createSubscription = `INSERT INTO subscriptions (id, plan_slug, status) VALUES ($1, $2, $3)`

type CreateSubscriptionParams struct {
	ID       uuid.UUID
	PlanSlug string
	Status   string
}

func (q *Queries) CreateSubscription(ctx context.Context, db DBTX, arg CreateSubscriptionParams) error {
	_, err := db.Exec(ctx, createSubscription, arg.ID, arg.PlanSlug, arg.Status)
	return err
}

const getUsageView = `
SELECT s.id, s.plan_slug,
	COALESCE(u.tenants_count, 0), COALESCE(u.branches_count, 0),
	COALESCE(u.customers_count, 0), COALESCE(u.rewards_count, 0),
	COALESCE(u.updated_at, s.created_at)
FROM subscriptions s
LEFT JOIN usage_counters u ON u.subscription_id = s.id
WHERE s.id = $1`

type GetUsageViewRow struct {
	UsageCounter
	PlanSlug string
}

func (q *Queries) GetUsageView(ctx context.Context, db DBTX, subscriptionID uuid.UUID) (GetUsageViewRow, error) {
	var i GetUsageViewRow
	err := db.QueryRow(ctx, getUsageView, subscriptionID).Scan(
		&i.SubscriptionID,
		&i.PlanSlug,
		&i.TenantsCount,
		&i.BranchesCount,
		&i.CustomersCount,
		&i.RewardsCount,
		&i.UpdatedAt,
	)
	return i, err
}
