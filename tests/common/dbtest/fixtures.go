//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository/converter"
	"loyalty-ledger/internal/pkg/pgconv"
	"loyalty-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var queries = query.New()

func CreateTestSubscription(t *testing.T, db DBLike, planSlug string) uuid.UUID {
	t.Helper()

	subscriptionID := uuid.New()
	ctx := context.Background()
	err := queries.CreateSubscription(ctx, db, query.CreateSubscriptionParams{
		ID:       subscriptionID,
		PlanSlug: planSlug,
		Status:   "active",
	})
	require.NoError(t, err)
	require.NoError(t, queries.EnsureUsageCounter(ctx, db, subscriptionID))
	return subscriptionID
}

// CreateTestTenant inserts the tenant directly and counts it against the subscription.
func CreateTestTenant(t *testing.T, db DBLike, subscriptionID uuid.UUID, name string) uuid.UUID {
	t.Helper()

	tenantID := uuid.New()
	ctx := context.Background()
	err := queries.CreateTenant(ctx, db, query.CreateTenantParams{
		ID:             tenantID,
		SubscriptionID: subscriptionID,
		Name:           name,
		CreatedAt:      pgconv.TimeToPgtype(time.Now()),
	})
	require.NoError(t, err)
	_, err = db.Exec(ctx, "UPDATE usage_counters SET tenants_count = tenants_count + 1 WHERE subscription_id = $1", subscriptionID)
	require.NoError(t, err)
	return tenantID
}

// CreateStandardTiers seeds Bronze [0,1000), Silver [1000,5000) and Gold from 5000.
func CreateStandardTiers(t *testing.T, db DBLike, tenantID uuid.UUID) map[string]uuid.UUID {
	t.Helper()

	tiers := builder.StandardTiers(tenantID)
	ids := make(map[string]uuid.UUID, len(tiers))
	for _, tr := range tiers {
		require.NoError(t, queries.CreateCustomerTier(context.Background(), db, converter.TierToRow(tr)))
		ids[tr.Name()] = tr.ID()
	}
	return ids
}

func CreatePurchaseRule(t *testing.T, db DBLike, tenantID uuid.UUID, pointsPerUnit string, priority int) uuid.UUID {
	t.Helper()

	b := builder.NewRuleBuilder().
		WithTenant(tenantID).
		WithPriority(priority).
		With(func(b *builder.RuleBuilder) {
			b.Name = fmt.Sprintf("purchase x%s", pointsPerUnit)
			b.PointsPerUnit = decimal.RequireFromString(pointsPerUnit)
		})
	require.NoError(t, queries.CreatePointsRule(context.Background(), db, b.BuildInfra()))
	return b.ID
}

func CountLedgerEntries(t *testing.T, db DBLike, membershipID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM ledger_entries WHERE membership_id = $1", membershipID).Scan(&n)
	require.NoError(t, err)
	return n
}

// SetStoredBalance bypasses the ledger to simulate drift.
func SetStoredBalance(t *testing.T, db DBLike, membershipID uuid.UUID, balance int64) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE memberships SET balance = $2 WHERE id = $1", membershipID, balance)
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables; fixtures are created per test
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
