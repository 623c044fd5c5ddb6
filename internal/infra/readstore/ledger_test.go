//go:build unit

package readstore

import (
	"context"
	"testing"

	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository/converter"
	"loyalty-ledger/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockViewQueries struct {
	mock.Mock
}

func (m *MockViewQueries) GetMembershipView(ctx context.Context, db query.DBTX, id uuid.UUID) (query.GetMembershipViewRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(query.GetMembershipViewRow), args.Error(1)
}

func (m *MockViewQueries) ListLedgerEntriesFirstPage(ctx context.Context, db query.DBTX, arg query.ListLedgerEntriesFirstPageParams) ([]query.LedgerEntry, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]query.LedgerEntry), args.Error(1)
}

func (m *MockViewQueries) ListLedgerEntriesKeyset(ctx context.Context, db query.DBTX, arg query.ListLedgerEntriesKeysetParams) ([]query.LedgerEntry, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]query.LedgerEntry), args.Error(1)
}

func (m *MockViewQueries) GetUsageView(ctx context.Context, db query.DBTX, subscriptionID uuid.UUID) (query.GetUsageViewRow, error) {
	args := m.Called(ctx, db, subscriptionID)
	return args.Get(0).(query.GetUsageViewRow), args.Error(1)
}

func (m *MockViewQueries) GetTenant(ctx context.Context, db query.DBTX, id uuid.UUID) (query.Tenant, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(query.Tenant), args.Error(1)
}

func (m *MockViewQueries) ListActiveTiersByTenant(ctx context.Context, db query.DBTX, tenantID uuid.UUID) ([]query.CustomerTier, error) {
	args := m.Called(ctx, db, tenantID)
	return args.Get(0).([]query.CustomerTier), args.Error(1)
}

type memoryTierCache struct {
	entries map[uuid.UUID][]*tier.Tier
	sets    int
}

func (c *memoryTierCache) Get(_ context.Context, tenantID uuid.UUID) ([]*tier.Tier, bool) {
	tiers, ok := c.entries[tenantID]
	return tiers, ok
}

func (c *memoryTierCache) Set(_ context.Context, tenantID uuid.UUID, tiers []*tier.Tier) {
	c.entries[tenantID] = tiers
	c.sets++
}

func TestFindActiveTiers(t *testing.T) {
	tenantID := uuid.New()
	standard := builder.StandardTiers(tenantID)
	rows := make([]query.CustomerTier, 0, len(standard))
	for _, tr := range standard {
		rows = append(rows, converter.TierToRow(tr))
	}

	t.Run("miss loads from postgres and fills the cache", func(t *testing.T) {
		mockQueries := new(MockViewQueries)
		mockQueries.On("ListActiveTiersByTenant", mock.Anything, mock.Anything, tenantID).Return(rows, nil).Once()
		cache := &memoryTierCache{entries: map[uuid.UUID][]*tier.Tier{}}
		store := NewLedgerReadStore(mockQueries, nil, cache)

		first, err := store.FindActiveTiers(context.Background(), tenantID)
		require.NoError(t, err)
		second, err := store.FindActiveTiers(context.Background(), tenantID)
		require.NoError(t, err)

		assert.Len(t, first, 3)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.sets)
		mockQueries.AssertExpectations(t)
	})

	t.Run("without a cache every call reads postgres", func(t *testing.T) {
		mockQueries := new(MockViewQueries)
		mockQueries.On("ListActiveTiersByTenant", mock.Anything, mock.Anything, tenantID).Return(rows, nil)
		store := NewLedgerReadStore(mockQueries, nil, nil)

		for range 2 {
			tiers, err := store.FindActiveTiers(context.Background(), tenantID)
			require.NoError(t, err)
			assert.Len(t, tiers, 3)
		}
		mockQueries.AssertNumberOfCalls(t, "ListActiveTiersByTenant", 2)
	})
}
