//go:build unit

package rule_test

import (
	"testing"
	"time"

	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 14:30 local time.
var wednesdayAfternoon = time.Date(2025, 6, 11, 14, 30, 0, 0, time.UTC)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEvaluate_Formula(t *testing.T) {
	testCases := []struct {
		name          string
		build         func(*builder.RuleBuilder)
		amount        string
		expectedTotal int64
		expectedBase  int64
		expectedBonus int64
	}{
		{
			name:          "one point per unit without multiplier",
			build:         func(b *builder.RuleBuilder) { b.WithMultiplier("1") },
			amount:        "150.00",
			expectedTotal: 150,
			expectedBase:  150,
			expectedBonus: 0,
		},
		{
			name:          "double multiplier yields bonus",
			build:         func(b *builder.RuleBuilder) { b.WithMultiplier("2.0") },
			amount:        "200.00",
			expectedTotal: 400,
			expectedBase:  200,
			expectedBonus: 200,
		},
		{
			name:          "fractional base is floored",
			build:         func(b *builder.RuleBuilder) { b.PointsPerUnit = amount("0.1") },
			amount:        "99.99",
			expectedTotal: 9,
			expectedBase:  9,
		},
		{
			name:          "fractional total is floored",
			build:         func(b *builder.RuleBuilder) { b.WithMultiplier("1.5") },
			amount:        "3",
			expectedTotal: 4,
			expectedBase:  3,
			expectedBonus: 1,
		},
		{
			name:          "multiplier below one never produces negative bonus",
			build:         func(b *builder.RuleBuilder) { b.WithMultiplier("0.5") },
			amount:        "100",
			expectedTotal: 50,
			expectedBase:  100,
			expectedBonus: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := builder.NewRuleBuilder().With(tc.build).MustBuildDomain()

			actual, err := rule.Evaluate([]*rule.Rule{r}, amount(tc.amount), wednesdayAfternoon)
			require.NoError(t, err)

			assert.Equal(t, tc.expectedTotal, actual.TotalPoints)
			assert.Equal(t, tc.expectedBase, actual.BasePoints)
			assert.Equal(t, tc.expectedBonus, actual.BonusPoints)
			require.NotNil(t, actual.RuleID)
			assert.Equal(t, r.ID(), *actual.RuleID)
		})
	}
}

func TestEvaluate_Selection(t *testing.T) {
	t.Run("highest priority wins", func(t *testing.T) {
		low := builder.NewRuleBuilder().WithPriority(1).MustBuildDomain()
		high := builder.NewRuleBuilder().WithPriority(10).WithMultiplier("3").MustBuildDomain()

		actual, err := rule.Evaluate([]*rule.Rule{low, high}, amount("10"), wednesdayAfternoon)
		require.NoError(t, err)

		require.NotNil(t, actual.RuleID)
		assert.Equal(t, high.ID(), *actual.RuleID)
		assert.Equal(t, int64(30), actual.TotalPoints)
	})

	t.Run("equal priority falls back to the lowest id regardless of order", func(t *testing.T) {
		a := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
		}).WithPriority(5).MustBuildDomain()
		b := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
		}).WithPriority(5).WithMultiplier("2").MustBuildDomain()

		forward, err := rule.Evaluate([]*rule.Rule{a, b}, amount("10"), wednesdayAfternoon)
		require.NoError(t, err)
		backward, err := rule.Evaluate([]*rule.Rule{b, a}, amount("10"), wednesdayAfternoon)
		require.NoError(t, err)

		require.NotNil(t, forward.RuleID)
		require.NotNil(t, backward.RuleID)
		assert.Equal(t, a.ID(), *forward.RuleID)
		assert.Equal(t, forward, backward)
	})

	t.Run("no applicable rule yields zero breakdown", func(t *testing.T) {
		inactive := builder.NewRuleBuilder().With(func(b *builder.RuleBuilder) {
			b.Status = rule.StatusInactive
		}).MustBuildDomain()

		actual, err := rule.Evaluate([]*rule.Rule{inactive}, amount("100"), wednesdayAfternoon)

		require.NoError(t, err)
		assert.Equal(t, rule.Breakdown{}, actual)
	})

	t.Run("non-positive amount yields zero breakdown", func(t *testing.T) {
		r := builder.NewRuleBuilder().MustBuildDomain()

		for _, a := range []decimal.Decimal{decimal.Zero, amount("-5")} {
			actual, err := rule.Evaluate([]*rule.Rule{r}, a, wednesdayAfternoon)
			require.NoError(t, err)
			assert.Equal(t, rule.Breakdown{}, actual)
		}
	})
}

func TestEvaluate_Overflow(t *testing.T) {
	testCases := []struct {
		name   string
		build  func(*builder.RuleBuilder)
		amount string
	}{
		{name: "base beyond int64", build: func(*builder.RuleBuilder) {}, amount: "1e19"},
		{name: "base far beyond int64", build: func(*builder.RuleBuilder) {}, amount: "2e19"},
		{name: "multiplied total beyond int64", build: func(b *builder.RuleBuilder) { b.WithMultiplier("4") }, amount: "3000000000000000000"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := builder.NewRuleBuilder().With(tc.build).MustBuildDomain()

			actual, err := rule.Evaluate([]*rule.Rule{r}, amount(tc.amount), wednesdayAfternoon)

			assert.ErrorIs(t, err, rule.ErrPointsOverflow)
			assert.Equal(t, rule.Breakdown{}, actual)
		})
	}

	t.Run("largest storable amount still fits", func(t *testing.T) {
		r := builder.NewRuleBuilder().WithMultiplier("3").MustBuildDomain()

		actual, err := rule.Evaluate([]*rule.Rule{r}, rule.MaxAmount, wednesdayAfternoon)

		require.NoError(t, err)
		assert.Equal(t, int64(999999999999), actual.BasePoints)
		assert.Equal(t, int64(2999999999997), actual.TotalPoints)
	})
}

func TestValidateAmount(t *testing.T) {
	testCases := []struct {
		name   string
		amount string
		errIs  error
	}{
		{name: "two decimals", amount: "1200.50"},
		{name: "whole amount", amount: "10"},
		{name: "upper bound", amount: "999999999999.99"},
		{name: "above upper bound", amount: "1000000000000", errIs: rule.ErrAmountOutOfRange},
		{name: "huge", amount: "2e19", errIs: rule.ErrAmountOutOfRange},
		{name: "three decimals", amount: "10.005", errIs: rule.ErrAmountPrecision},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := rule.ValidateAmount(amount(tc.amount))
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestRule_Applies(t *testing.T) {
	minAmount := amount("50")
	from := wednesdayAfternoon.Add(-time.Hour)
	until := wednesdayAfternoon.Add(time.Hour)
	afternoon, err := rule.NewHourRange("12:00", "18:00")
	require.NoError(t, err)
	morning, err := rule.NewHourRange("06:00", "11:59")
	require.NoError(t, err)
	overnight, err := rule.NewHourRange("22:00", "02:00")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		build    func(*builder.RuleBuilder)
		amount   string
		expected bool
	}{
		{name: "plain purchase rule", build: func(*builder.RuleBuilder) {}, amount: "10", expected: true},
		{name: "non purchase type", build: func(b *builder.RuleBuilder) { b.Type = rule.TypeVisit }, amount: "10", expected: false},
		{name: "below min amount", build: func(b *builder.RuleBuilder) { b.MinAmount = &minAmount }, amount: "49.99", expected: false},
		{name: "at min amount", build: func(b *builder.RuleBuilder) { b.MinAmount = &minAmount }, amount: "50", expected: true},
		{name: "inside validity window", build: func(b *builder.RuleBuilder) { b.ValidFrom, b.ValidUntil = &from, &until }, amount: "10", expected: true},
		{name: "not yet valid", build: func(b *builder.RuleBuilder) { b.ValidFrom = &until }, amount: "10", expected: false},
		{name: "expired", build: func(b *builder.RuleBuilder) { b.ValidUntil = &from }, amount: "10", expected: false},
		{name: "weekday matches", build: func(b *builder.RuleBuilder) { b.ApplicableDays = []int{3} }, amount: "10", expected: true},
		{name: "weekday does not match", build: func(b *builder.RuleBuilder) { b.ApplicableDays = []int{0, 6} }, amount: "10", expected: false},
		{name: "inside hour range", build: func(b *builder.RuleBuilder) { b.ApplicableHours = &afternoon }, amount: "10", expected: true},
		{name: "outside hour range", build: func(b *builder.RuleBuilder) { b.ApplicableHours = &morning }, amount: "10", expected: false},
		{name: "range across midnight never matches", build: func(b *builder.RuleBuilder) { b.ApplicableHours = &overnight }, amount: "10", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := builder.NewRuleBuilder().With(tc.build).MustBuildDomain()
			assert.Equal(t, tc.expected, r.Applies(amount(tc.amount), wednesdayAfternoon))
		})
	}
}

func TestReconstruct_Validation(t *testing.T) {
	testCases := []struct {
		name  string
		build func(*builder.RuleBuilder)
		errIs error
	}{
		{name: "unknown type", build: func(b *builder.RuleBuilder) { b.Type = "cashback" }, errIs: rule.ErrInvalidRuleType},
		{name: "negative points per unit", build: func(b *builder.RuleBuilder) { b.PointsPerUnit = amount("-1") }, errIs: rule.ErrInvalidPointsPerUnit},
		{name: "zero multiplier", build: func(b *builder.RuleBuilder) { b.WithMultiplier("0") }, errIs: rule.ErrInvalidMultiplier},
		{name: "weekday out of range", build: func(b *builder.RuleBuilder) { b.ApplicableDays = []int{7} }, errIs: rule.ErrInvalidWeekday},
		{
			name: "validity inverted",
			build: func(b *builder.RuleBuilder) {
				from, until := wednesdayAfternoon, wednesdayAfternoon.Add(-time.Hour)
				b.ValidFrom, b.ValidUntil = &from, &until
			},
			errIs: rule.ErrInvalidValidity,
		},
		{
			name:  "malformed hours",
			build: func(b *builder.RuleBuilder) { b.ApplicableHours = &rule.HourRange{Start: "9:00", End: "18:00"} },
			errIs: rule.ErrInvalidHourRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewRuleBuilder().With(tc.build).BuildDomain()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}
