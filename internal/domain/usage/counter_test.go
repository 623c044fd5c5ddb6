//go:build unit

package usage_test

import (
	"testing"

	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestCanCreate(t *testing.T) {
	testCases := []struct {
		name     string
		current  int64
		limit    int64
		expected bool
	}{
		{name: "below limit", current: 4, limit: 5, expected: true},
		{name: "at limit", current: 5, limit: 5, expected: false},
		{name: "over limit after a plan downgrade", current: 7, limit: 5, expected: false},
		{name: "unlimited", current: 5, limit: usage.Unlimited, expected: true},
		{name: "zero limit", current: 0, limit: 0, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, usage.CanCreate(tc.current, tc.limit))
		})
	}
}

func TestLimitsAndCounter_ByResource(t *testing.T) {
	limits := usage.Limits{Tenants: 1, Branches: 2, Customers: 3, Rewards: 4}
	counter := usage.Counter{Tenants: 10, Branches: 20, Customers: 30, Rewards: 40}

	resources := []usage.Resource{usage.ResourceTenants, usage.ResourceBranches, usage.ResourceCustomers, usage.ResourceRewards}
	for i, r := range resources {
		assert.True(t, r.Valid())
		assert.Equal(t, int64(i+1), limits.For(r))
		assert.Equal(t, int64((i+1)*10), counter.Count(r))
	}

	assert.False(t, usage.Resource("seats").Valid())
	assert.Equal(t, int64(0), limits.For("seats"))
}

func TestLimitExceeded(t *testing.T) {
	err := usage.LimitExceeded(usage.ResourceCustomers, 500)

	assert.True(t, errs.Is(err, errs.ErrLimitExceeded))
	assert.Contains(t, err.Error(), "customers limit of 500 reached")
}
