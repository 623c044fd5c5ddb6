//go:build unit

package plans_test

import (
	"os"
	"path/filepath"
	"testing"

	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/infra/plans"
	"loyalty-ledger/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_BuiltinCatalog(t *testing.T) {
	c, err := plans.Load("")
	require.NoError(t, err)

	esencia, err := c.LimitsFor("esencia")
	require.NoError(t, err)
	assert.Equal(t, usage.Limits{Tenants: 1, Branches: 1, Customers: 500, Rewards: 5}, esencia)

	inspira, err := c.LimitsFor("inspira")
	require.NoError(t, err)
	assert.Equal(t, usage.Unlimited, inspira.Customers)

	slugs := make([]string, 0)
	for _, p := range c.Plans() {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"conecta", "esencia", "inspira"}, slugs)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
plans:
  - slug: trial
    name: Trial
    limits: {tenants: 1, branches: 1, customers: 10, rewards: 0}
`), 0o600))

	c, err := plans.Load(path)
	require.NoError(t, err)

	limits, err := c.LimitsFor("trial")
	require.NoError(t, err)
	assert.Equal(t, int64(10), limits.Customers)

	_, err = plans.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{name: "malformed yaml", data: "plans: [\n"},
		{name: "empty catalog", data: "plans: []"},
		{name: "missing slug", data: "plans:\n  - name: NoSlug\n"},
		{name: "duplicate slug", data: "plans:\n  - slug: a\n  - slug: a\n"},
		{name: "limit below unlimited", data: "plans:\n  - slug: a\n    limits: {customers: -2}\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := plans.Parse([]byte(tc.data))
			assert.Nil(t, c)
			assert.Error(t, err)
		})
	}
}

func TestLimitsFor_UnknownPlan(t *testing.T) {
	c, err := plans.Load("")
	require.NoError(t, err)

	_, err = c.LimitsFor("platinum")
	assert.True(t, errs.Is(err, usage.ErrPlanNotFound))
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}
