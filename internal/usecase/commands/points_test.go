//go:build unit

package commands_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarn(t *testing.T) {
	t.Run("explicit points", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)

		res := f.earn(t, id, 150)

		require.NotNil(t, res.Entry)
		assert.Equal(t, ledger.KindEarn, res.Entry.Kind())
		assert.Equal(t, int64(150), res.Entry.Points())
		assert.Equal(t, int64(150), res.Membership.Balance())
		require.NotNil(t, res.TierName)
		assert.Equal(t, "Bronze", *res.TierName)
		assert.False(t, res.TierChanged)
		assert.Equal(t, int64(150), f.requireProjected(t, id))
		assert.Equal(t, []ledger.Kind{ledger.KindEarn}, f.metrics.kinds)
	})

	t.Run("amount through the highest priority rule", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.store.AddRules(builder.NewRuleBuilder().WithTenant(f.tenant.ID()).WithMultiplier("2").WithPriority(10).MustBuildDomain())
		id := f.register(t)
		amount := decimal.RequireFromString("200")

		res, err := f.points.Earn(f.ctx, commands.EarnRequest{
			TenantID:     f.tenant.ID(),
			MembershipID: id,
			Reference:    "POS-200",
			Amount:       &amount,
		})
		require.NoError(t, err)

		assert.Equal(t, int64(400), res.Entry.Points())
		assert.Equal(t, int64(200), res.Entry.BasePoints())
		assert.Equal(t, int64(200), res.Entry.BonusPoints())
		require.NotNil(t, res.Entry.RuleID())
		assert.Equal(t, int64(400), res.Membership.Balance())
		assert.Equal(t, int64(1), res.Membership.TotalVisits())
		assert.True(t, amount.Equal(res.Membership.TotalSpent()))
	})

	t.Run("crossing a tier boundary", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)

		f.earn(t, id, 999)
		res := f.earn(t, id, 1)

		require.NotNil(t, res.TierName)
		assert.Equal(t, "Silver", *res.TierName)
		assert.True(t, res.TierChanged)
		assert.Equal(t, 1, f.metrics.tierChanges)
	})

	t.Run("validation", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		points := int64(10)
		amount := decimal.RequireFromString("10")
		small := decimal.RequireFromString("0.50")
		zero := int64(0)
		tooMany := ledger.MaxEntryPoints + 1
		tooLarge := decimal.RequireFromString("1000000000000")
		huge := decimal.RequireFromString("2e19")
		fractional := decimal.RequireFromString("10.005")

		testCases := []struct {
			name       string
			req        commands.EarnRequest
			expectKind error
		}{
			{name: "both points and amount", req: commands.EarnRequest{Points: &points, Amount: &amount}, expectKind: errs.ErrInvalidRequest},
			{name: "neither points nor amount", req: commands.EarnRequest{}, expectKind: errs.ErrInvalidRequest},
			{name: "zero points", req: commands.EarnRequest{Points: &zero}, expectKind: errs.ErrInvalidRequest},
			{name: "amount earns no points", req: commands.EarnRequest{Amount: &small}, expectKind: errs.ErrInvalidRequest},
			{name: "blank reference", req: commands.EarnRequest{Points: &points, Reference: " "}, expectKind: errs.ErrInvalidRequest},
			{name: "points above the per-entry limit", req: commands.EarnRequest{Points: &tooMany}, expectKind: errs.ErrInvalidRequest},
			{name: "amount above the storable maximum", req: commands.EarnRequest{Amount: &tooLarge}, expectKind: errs.ErrInvalidRequest},
			{name: "amount beyond int64 points", req: commands.EarnRequest{Amount: &huge}, expectKind: errs.ErrInvalidRequest},
			{name: "amount with three decimals", req: commands.EarnRequest{Amount: &fractional}, expectKind: errs.ErrInvalidRequest},
			{name: "unknown membership", req: commands.EarnRequest{Points: &points, MembershipID: uuid.New()}, expectKind: errs.ErrNotFound},
			{name: "other tenant", req: commands.EarnRequest{Points: &points, TenantID: uuid.New()}, expectKind: errs.ErrNotFound},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := tc.req
				if req.TenantID == uuid.Nil {
					req.TenantID = f.tenant.ID()
				}
				if req.MembershipID == uuid.Nil {
					req.MembershipID = id
				}
				if req.Reference == "" {
					req.Reference = "POS-" + uuid.NewString()
				}

				res, err := f.points.Earn(f.ctx, req)
				assert.Nil(t, res)
				assert.True(t, errs.Is(err, tc.expectKind), "got %v", err)
			})
		}
		assert.Empty(t, f.store.Entries(id))
	})

	t.Run("rule output above the per-entry limit", func(t *testing.T) {
		f := newLedgerFixture(t)
		f.store.AddRules(builder.NewRuleBuilder().WithTenant(f.tenant.ID()).WithPriority(100).With(func(b *builder.RuleBuilder) {
			b.PointsPerUnit = decimal.NewFromInt(100000)
		}).MustBuildDomain())
		id := f.register(t)

		for _, amount := range []string{"20000", "999999999999.99"} {
			a := decimal.RequireFromString(amount)
			_, err := f.points.Earn(f.ctx, commands.EarnRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "POS-" + amount, Amount: &a})
			assert.True(t, errs.Is(err, errs.ErrInvalidRequest), "amount %s: got %v", amount, err)
		}
		assert.Empty(t, f.store.Entries(id))
	})

	t.Run("balance that would leave the int64 range", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		stored, err := ledger.Reconstruct(ledger.Attributes{
			ID:           uuid.New(),
			MembershipID: id,
			TenantID:     f.tenant.ID(),
			Kind:         ledger.KindEarn,
			Points:       math.MaxInt64 - 5,
			Reference:    "LEGACY-IMPORT",
		})
		require.NoError(t, err)
		f.store.AddEntries(stored)

		points := int64(10)
		_, err = f.points.Earn(f.ctx, commands.EarnRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "POS-1", Points: &points})

		assert.ErrorIs(t, err, ledger.ErrBalanceOverflow)
		assert.Len(t, f.store.Entries(id), 1)
	})

	t.Run("inactive membership", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		_, err := f.memberships.SetStatus(f.ctx, f.tenant.ID(), id, membership.StatusSuspended)
		require.NoError(t, err)

		points := int64(10)
		_, err = f.points.Earn(f.ctx, commands.EarnRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "POS-1", Points: &points})
		assert.ErrorIs(t, err, membership.ErrMembershipNotActive)
	})
}

func TestDuplicateReference(t *testing.T) {
	f := newLedgerFixture(t)
	id := f.register(t)
	points := int64(100)
	req := commands.EarnRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "POS-1001", Points: &points}

	_, err := f.points.Earn(f.ctx, req)
	require.NoError(t, err)

	t.Run("identical retry is reported as a replay", func(t *testing.T) {
		_, err := f.points.Earn(f.ctx, req)

		var conflict *errs.ConflictError
		require.True(t, errs.As(err, &conflict))
		assert.True(t, conflict.Replay)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("different payload under the same reference", func(t *testing.T) {
		other := int64(999)
		changed := req
		changed.Points = &other
		_, err := f.points.Earn(f.ctx, changed)

		var conflict *errs.ConflictError
		require.True(t, errs.As(err, &conflict))
		assert.False(t, conflict.Replay)
	})

	t.Run("different occurrence time under the same reference", func(t *testing.T) {
		earlier := f.clock.Now().Add(-2 * time.Hour)
		changed := req
		changed.OccurredAt = &earlier
		_, err := f.points.Earn(f.ctx, changed)

		var conflict *errs.ConflictError
		require.True(t, errs.As(err, &conflict))
		assert.False(t, conflict.Replay)
	})

	t.Run("references are shared across operation kinds", func(t *testing.T) {
		_, err := f.points.Redeem(f.ctx, commands.RedeemRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "POS-1001", Points: 10})
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	assert.Len(t, f.store.Entries(id), 1)
	assert.Equal(t, int64(100), f.requireProjected(t, id))
	assert.Equal(t, []bool{true, false, false, false}, f.metrics.conflicts)
}

func TestRedeem(t *testing.T) {
	f := newLedgerFixture(t)
	id := f.register(t)
	f.earn(t, id, 1500)

	t.Run("insufficient balance", func(t *testing.T) {
		_, err := f.points.Redeem(f.ctx, commands.RedeemRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "RDM-1", Points: 1600})

		var insufficient *errs.InsufficientBalanceError
		require.True(t, errs.As(err, &insufficient))
		assert.Equal(t, int64(1500), insufficient.Current)
		assert.Equal(t, int64(1600), insufficient.Required)
		assert.Len(t, f.store.Entries(id), 1)
	})

	t.Run("spends down and demotes the tier", func(t *testing.T) {
		res := f.redeem(t, id, 600)

		assert.Equal(t, int64(-600), res.Entry.Points())
		assert.Equal(t, int64(900), res.Membership.Balance())
		assert.Equal(t, "Bronze", *res.TierName)
		assert.True(t, res.TierChanged)
	})

	t.Run("whole balance", func(t *testing.T) {
		res := f.redeem(t, id, 900)
		assert.Equal(t, int64(0), res.Membership.Balance())
	})

	t.Run("non-positive points", func(t *testing.T) {
		_, err := f.points.Redeem(f.ctx, commands.RedeemRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "RDM-0", Points: 0})
		assert.ErrorIs(t, err, ledger.ErrNonPositivePoints)
	})

	t.Run("points above the per-entry limit", func(t *testing.T) {
		_, err := f.points.Redeem(f.ctx, commands.RedeemRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "RDM-MAX", Points: math.MaxInt64})
		assert.ErrorIs(t, err, ledger.ErrPointsOutOfRange)
	})

	assert.Equal(t, int64(0), f.requireProjected(t, id))
}

func TestReverse(t *testing.T) {
	t.Run("earn reversal restores the previous balance", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		f.earn(t, id, 200)
		earned := f.earn(t, id, 300)

		res, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: earned.Entry.ID(), ReasonCode: "CUSTOMER_RETURN"})
		require.NoError(t, err)

		assert.Equal(t, ledger.KindReversal, res.Entry.Kind())
		assert.Equal(t, int64(-300), res.Entry.Points())
		assert.True(t, strings.HasPrefix(res.Entry.Reference(), "rev_"))
		assert.Equal(t, int64(200), res.Membership.Balance())
		assert.Equal(t, int64(200), f.requireProjected(t, id))

		t.Run("second reversal is rejected", func(t *testing.T) {
			_, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: earned.Entry.ID(), ReasonCode: "AGAIN"})
			assert.ErrorIs(t, err, ledger.ErrAlreadyReversed)
		})

		t.Run("a reversal cannot be reversed", func(t *testing.T) {
			_, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: res.Entry.ID(), ReasonCode: "UNDO"})
			assert.ErrorIs(t, err, ledger.ErrNotReversible)
		})
	})

	t.Run("redeem reversal credits the points back", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		f.earn(t, id, 500)
		spent := f.redeem(t, id, 120)

		res, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: spent.Entry.ID(), ReasonCode: "VOID"})
		require.NoError(t, err)
		assert.Equal(t, int64(500), res.Membership.Balance())
	})

	t.Run("reversal that would go negative", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		earned := f.earn(t, id, 100)
		f.redeem(t, id, 80)

		_, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: earned.Entry.ID(), ReasonCode: "FRAUD"})
		assert.True(t, errs.Is(err, errs.ErrInvalidState))
		assert.Equal(t, int64(20), f.requireProjected(t, id))
	})

	t.Run("unknown or foreign entry", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		earned := f.earn(t, id, 100)

		_, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: uuid.New(), ReasonCode: "X"})
		assert.ErrorIs(t, err, ledger.ErrEntryNotFound)

		_, err = f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: uuid.New(), EntryID: earned.Entry.ID(), ReasonCode: "X"})
		assert.ErrorIs(t, err, ledger.ErrEntryNotFound)
	})

	t.Run("reason code required", func(t *testing.T) {
		f := newLedgerFixture(t)
		id := f.register(t)
		earned := f.earn(t, id, 100)

		_, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: earned.Entry.ID()})
		assert.ErrorIs(t, err, ledger.ErrReasonCodeRequired)
	})
}

func TestAdjust(t *testing.T) {
	f := newLedgerFixture(t)
	id := f.register(t)
	f.earn(t, id, 50)

	t.Run("generated reference", func(t *testing.T) {
		res, err := f.points.Adjust(f.ctx, commands.AdjustRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: 25, ReasonCode: "GOODWILL"})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(res.Entry.Reference(), "adj_"))
		assert.Equal(t, int64(75), res.Membership.Balance())
	})

	t.Run("below zero is rejected", func(t *testing.T) {
		_, err := f.points.Adjust(f.ctx, commands.AdjustRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: -76, ReasonCode: "CORRECTION"})
		assert.ErrorIs(t, err, ledger.ErrAdjustmentNegative)
	})

	t.Run("down to exactly zero", func(t *testing.T) {
		res, err := f.points.Adjust(f.ctx, commands.AdjustRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: -75, ReasonCode: "CORRECTION"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.Membership.Balance())
	})

	t.Run("zero points and missing reason", func(t *testing.T) {
		_, err := f.points.Adjust(f.ctx, commands.AdjustRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: 0, ReasonCode: "X"})
		assert.ErrorIs(t, err, ledger.ErrZeroAdjustment)

		_, err = f.points.Adjust(f.ctx, commands.AdjustRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: 5})
		assert.ErrorIs(t, err, ledger.ErrReasonCodeRequired)
	})

	t.Run("magnitude above the per-entry limit", func(t *testing.T) {
		for _, points := range []int64{ledger.MaxEntryPoints + 1, math.MinInt64} {
			_, err := f.points.Adjust(f.ctx, commands.AdjustRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: points, ReasonCode: "CORRECTION"})
			assert.ErrorIs(t, err, ledger.ErrPointsOutOfRange)
		}
	})

	t.Run("allowed on an inactive membership", func(t *testing.T) {
		_, err := f.memberships.SetStatus(f.ctx, f.tenant.ID(), id, membership.StatusInactive)
		require.NoError(t, err)

		res, err := f.points.AddPoints(f.ctx, f.tenant.ID(), id, 10, "MIGRATION")
		require.NoError(t, err)
		assert.Equal(t, int64(10), res.Membership.Balance())

		res, err = f.points.SubtractPoints(f.ctx, f.tenant.ID(), id, 4, "MIGRATION")
		require.NoError(t, err)
		assert.Equal(t, int64(6), res.Membership.Balance())
	})

	assert.Equal(t, int64(6), f.requireProjected(t, id))
}

func TestExpire(t *testing.T) {
	f := newLedgerFixture(t)
	id := f.register(t)
	f.earn(t, id, 100)

	res, err := f.points.Expire(f.ctx, commands.ExpireRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: 250})
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.Equal(t, int64(-100), res.Entry.Points(), "clamped to the balance")
	assert.True(t, strings.HasPrefix(res.Entry.Reference(), "exp_"))
	assert.Equal(t, int64(0), res.Membership.Balance())

	res, err = f.points.Expire(f.ctx, commands.ExpireRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: 10})
	require.NoError(t, err)
	assert.Nil(t, res.Entry, "nothing left to expire")
	assert.Len(t, f.store.Entries(id), 2)
}

func TestBalanceMatchesLedgerAfterMixedOperations(t *testing.T) {
	f := newLedgerFixture(t)
	id := f.register(t)

	first := f.earn(t, id, 1200)
	f.redeem(t, id, 300)
	f.earn(t, id, 4100)
	_, err := f.points.Reverse(f.ctx, commands.ReverseRequest{TenantID: f.tenant.ID(), EntryID: first.Entry.ID(), ReasonCode: "VOID"})
	require.NoError(t, err)
	_, err = f.points.Adjust(f.ctx, commands.AdjustRequest{TenantID: f.tenant.ID(), MembershipID: id, Points: -100, ReasonCode: "FIX"})
	require.NoError(t, err)
	_, err = f.points.Redeem(f.ctx, commands.RedeemRequest{TenantID: f.tenant.ID(), MembershipID: id, Reference: "RDM-x", Points: 999_999})
	require.Error(t, err)

	assert.Equal(t, int64(3700), f.requireProjected(t, id))

	report, err := f.points.ValidateIntegrity(f.ctx, f.tenant.ID(), id)
	require.NoError(t, err)
	assert.True(t, report.Consistent())
	assert.Equal(t, int64(3700), report.LedgerSum)
	assert.Equal(t, 5, report.EntryCount)

	m, _ := f.store.Membership(id)
	require.NotNil(t, m.TierID())
}

func TestRecalculate(t *testing.T) {
	f := newLedgerFixture(t)
	drifted := builder.NewMembershipBuilder().WithTenant(f.tenant.ID()).WithBalance(999).BuildDomain()
	f.store.AddMembership(drifted)

	report, err := f.points.ValidateIntegrity(f.ctx, f.tenant.ID(), drifted.ID())
	require.NoError(t, err)
	assert.False(t, report.Consistent())
	assert.Equal(t, int64(999), report.StoredBalance)
	assert.Equal(t, int64(0), report.ExpectedBalance)

	res, err := f.points.Recalculate(f.ctx, f.tenant.ID(), drifted.ID())
	require.NoError(t, err)
	assert.Nil(t, res.Entry)
	assert.Equal(t, int64(0), res.Membership.Balance())
	assert.Equal(t, "Bronze", *res.TierName)
	assert.True(t, res.TierChanged)

	_, err = f.points.Recalculate(f.ctx, uuid.New(), drifted.ID())
	assert.ErrorIs(t, err, membership.ErrMembershipNotFound)
}

func TestRecalculateBatch(t *testing.T) {
	f := newLedgerFixture(t, func(c *config.Config) { c.Ledger.MaxBatchSize = 4 })
	a := f.register(t)
	b := f.register(t)
	missing := uuid.New()

	out, err := f.points.RecalculateBatch(f.ctx, f.tenant.ID(), []uuid.UUID{a, missing, a, b})
	require.NoError(t, err)
	assert.Len(t, out.Succeeded, 2)
	require.Len(t, out.Failed, 1)
	assert.Equal(t, missing, out.Failed[0].MembershipID)
	assert.True(t, errs.Is(out.Failed[0].Err, errs.ErrNotFound))

	_, err = f.points.RecalculateBatch(f.ctx, f.tenant.ID(), []uuid.UUID{a, b, missing, uuid.New(), uuid.New()})
	assert.ErrorIs(t, err, commands.ErrBatchTooLarge)
}
