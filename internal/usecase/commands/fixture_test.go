//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/infra/plans"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/tests/common/builder"
	"loyalty-ledger/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type recordingMetrics struct {
	kinds       []ledger.Kind
	tierChanges int
	conflicts   []bool
}

func (m *recordingMetrics) EntryApplied(kind ledger.Kind, _ int64) { m.kinds = append(m.kinds, kind) }
func (m *recordingMetrics) TierChanged()                          { m.tierChanges++ }
func (m *recordingMetrics) ReferenceConflict(replay bool)         { m.conflicts = append(m.conflicts, replay) }

// ledgerFixture is a tenant on the "conecta" plan with Bronze/Silver/Gold tiers
// and a single 1 point per unit purchase rule.
type ledgerFixture struct {
	ctx            context.Context
	store          *memstore.Store
	clock          *clock.MockClock
	metrics        *recordingMetrics
	points         commands.PointsCommands
	memberships    commands.MembershipCommands
	tenants        commands.TenantCommands
	subscriptionID uuid.UUID
	tenant         *tenant.Tenant
}

func newLedgerFixture(t *testing.T, mutateCfg ...func(*config.Config)) *ledgerFixture {
	t.Helper()

	cfg := config.NewTestConfig()
	for _, m := range mutateCfg {
		m(&cfg)
	}
	catalog, err := plans.Load("")
	require.NoError(t, err)

	f := &ledgerFixture{
		ctx:            context.Background(),
		store:          memstore.New(),
		clock:          clock.NewMockClock(time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC)),
		metrics:        &recordingMetrics{},
		subscriptionID: uuid.New(),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	f.points = commands.NewPointsUseCase(f.store, f.clock, f.metrics, logger, cfg)
	f.memberships = commands.NewMembershipUseCase(f.store, catalog, f.clock)
	f.tenants = commands.NewTenantUseCase(f.store, catalog, f.clock)

	f.store.AddSubscription(f.subscriptionID, "conecta")
	f.tenant, err = f.tenants.CreateTenant(f.ctx, f.subscriptionID, "Cafe Central")
	require.NoError(t, err)

	f.store.AddTiers(builder.StandardTiers(f.tenant.ID())...)
	f.store.AddRules(builder.NewRuleBuilder().WithTenant(f.tenant.ID()).MustBuildDomain())
	return f
}

func (f *ledgerFixture) register(t *testing.T) uuid.UUID {
	t.Helper()
	res, err := f.memberships.Register(f.ctx, commands.RegisterMembershipRequest{
		TenantID:     f.tenant.ID(),
		UserID:       uuid.New(),
		ExternalCode: "CARD-" + uuid.NewString()[:8],
	})
	require.NoError(t, err)
	return res.Membership.ID()
}

func (f *ledgerFixture) earn(t *testing.T, membershipID uuid.UUID, points int64) *commands.PointsResult {
	t.Helper()
	res, err := f.points.Earn(f.ctx, commands.EarnRequest{
		TenantID:     f.tenant.ID(),
		MembershipID: membershipID,
		Reference:    "POS-" + uuid.NewString(),
		Points:       &points,
	})
	require.NoError(t, err)
	return res
}

func (f *ledgerFixture) redeem(t *testing.T, membershipID uuid.UUID, points int64) *commands.PointsResult {
	t.Helper()
	res, err := f.points.Redeem(f.ctx, commands.RedeemRequest{
		TenantID:     f.tenant.ID(),
		MembershipID: membershipID,
		Reference:    "RDM-" + uuid.NewString(),
		Points:       points,
	})
	require.NoError(t, err)
	return res
}

// requireProjected checks that the stored balance is the projection of the stored ledger.
func (f *ledgerFixture) requireProjected(t *testing.T, membershipID uuid.UUID) int64 {
	t.Helper()
	m, ok := f.store.Membership(membershipID)
	require.True(t, ok)
	sum, err := ledger.Sum(f.store.Entries(membershipID))
	require.NoError(t, err)
	require.Equal(t, ledger.Project(sum), m.Balance())
	return m.Balance()
}
