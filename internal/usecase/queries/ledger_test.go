//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/queries"
	"loyalty-ledger/tests/common/builder"
	queriesmock "loyalty-ledger/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func views(n int, start time.Time) []*queries.TransactionView {
	out := make([]*queries.TransactionView, n)
	for i := range out {
		out[i] = &queries.TransactionView{ID: uuid.New(), Kind: "earn", Points: 10, CreatedAt: start.Add(-time.Duration(i) * time.Minute)}
	}
	return out
}

func TestGetMembership(t *testing.T) {
	tenantID := uuid.New()
	membershipID := uuid.New()

	testCases := []struct {
		name       string
		setupMock  func(store *queriesmock.MockLedgerReadStore)
		expectKind error
	}{
		{
			name: "same tenant",
			setupMock: func(store *queriesmock.MockLedgerReadStore) {
				store.EXPECT().FindMembership(gomock.Any(), membershipID).
					Return(&queries.MembershipView{ID: membershipID, TenantID: tenantID, Balance: 120}, nil)
				store.EXPECT().FindActiveTiers(gomock.Any(), tenantID).Return(builder.StandardTiers(tenantID), nil)
			},
		},
		{
			name: "other tenant is hidden",
			setupMock: func(store *queriesmock.MockLedgerReadStore) {
				store.EXPECT().FindMembership(gomock.Any(), membershipID).
					Return(&queries.MembershipView{ID: membershipID, TenantID: uuid.New()}, nil)
			},
			expectKind: errs.ErrNotFound,
		},
		{
			name: "missing",
			setupMock: func(store *queriesmock.MockLedgerReadStore) {
				store.EXPECT().FindMembership(gomock.Any(), membershipID).Return(nil, errs.ErrNotFound)
			},
			expectKind: errs.ErrNotFound,
		},
		{
			name: "storage failure passes through",
			setupMock: func(store *queriesmock.MockLedgerReadStore) {
				store.EXPECT().FindMembership(gomock.Any(), membershipID).Return(nil, errs.ErrStorageFailure)
			},
			expectKind: errs.ErrStorageFailure,
		},
		{
			name: "tier lookup failure passes through",
			setupMock: func(store *queriesmock.MockLedgerReadStore) {
				store.EXPECT().FindMembership(gomock.Any(), membershipID).
					Return(&queries.MembershipView{ID: membershipID, TenantID: tenantID, Balance: 120}, nil)
				store.EXPECT().FindActiveTiers(gomock.Any(), tenantID).Return(nil, errs.ErrStorageFailure)
			},
			expectKind: errs.ErrStorageFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockLedgerReadStore(ctrl)
			tc.setupMock(store)

			q := queries.NewLedgerQueries(store, queriesmock.NewMockPlanLimits(ctrl))
			mv, err := q.GetMembership(context.Background(), queries.Actor{TenantID: tenantID}, membershipID)

			if tc.expectKind != nil {
				assert.Nil(t, mv)
				assert.True(t, errs.Is(err, tc.expectKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(120), mv.Balance)
			require.NotNil(t, mv.NextTierName)
			assert.Equal(t, "Silver", *mv.NextTierName)
			assert.Equal(t, int64(880), *mv.PointsToNextTier)
		})
	}
}

func TestGetMembership_TopBand(t *testing.T) {
	tenantID := uuid.New()
	membershipID := uuid.New()
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockLedgerReadStore(ctrl)
	store.EXPECT().FindMembership(gomock.Any(), membershipID).
		Return(&queries.MembershipView{ID: membershipID, TenantID: tenantID, Balance: 7200}, nil)
	store.EXPECT().FindActiveTiers(gomock.Any(), tenantID).Return(builder.StandardTiers(tenantID), nil)

	q := queries.NewLedgerQueries(store, queriesmock.NewMockPlanLimits(ctrl))
	mv, err := q.GetMembership(context.Background(), queries.Actor{TenantID: tenantID}, membershipID)

	require.NoError(t, err)
	assert.Nil(t, mv.NextTierName)
	assert.Nil(t, mv.PointsToNextTier)
}

func TestListTransactions_Paging(t *testing.T) {
	tenantID := uuid.New()
	membershipID := uuid.New()
	actor := queries.Actor{TenantID: tenantID}
	page := views(4, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockLedgerReadStore(ctrl)
	store.EXPECT().FindMembership(gomock.Any(), membershipID).
		Return(&queries.MembershipView{ID: membershipID, TenantID: tenantID}, nil).AnyTimes()
	q := queries.NewLedgerQueries(store, queriesmock.NewMockPlanLimits(ctrl))

	t.Run("first page fetches one extra row to detect more", func(t *testing.T) {
		store.EXPECT().ListTransactionsFirstPage(gomock.Any(), membershipID, int32(4)).Return(page, nil)

		rows, next, err := q.ListTransactions(context.Background(), actor, membershipID, nil, 3)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
		require.NotNil(t, next)

		createdAt, id, err := queries.DecodeCursor(next.After)
		require.NoError(t, err)
		assert.Equal(t, page[2].ID, id)
		assert.True(t, page[2].CreatedAt.Equal(createdAt))
	})

	t.Run("keyset continues after the cursor", func(t *testing.T) {
		after := queries.EncodeCursor(page[2].CreatedAt, page[2].ID)
		store.EXPECT().ListTransactionsKeyset(gomock.Any(), membershipID, gomock.Any(), page[2].ID, int32(4)).Return(page[3:], nil)

		rows, next, err := q.ListTransactions(context.Background(), actor, membershipID, &queries.Cursor{After: after}, 3)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Nil(t, next)
	})

	t.Run("default limit", func(t *testing.T) {
		store.EXPECT().ListTransactionsFirstPage(gomock.Any(), membershipID, int32(queries.DefaultListLimit+1)).Return(nil, nil)

		rows, next, err := q.ListTransactions(context.Background(), actor, membershipID, nil, 0)
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Nil(t, next)
	})

	t.Run("malformed cursor", func(t *testing.T) {
		_, _, err := q.ListTransactions(context.Background(), actor, membershipID, &queries.Cursor{After: "not-a-cursor"}, 3)
		assert.ErrorIs(t, err, queries.ErrInvalidCursor)
	})
}

func TestGetUsage(t *testing.T) {
	tenantID := uuid.New()
	subscriptionID := uuid.New()
	row := &queries.UsageRow{
		SubscriptionID: subscriptionID,
		PlanSlug:       "conecta",
		Counter:        usage.Counter{SubscriptionID: subscriptionID, Tenants: 1, Branches: 2, Customers: 30},
	}
	limits := usage.Limits{Tenants: 3, Branches: 5, Customers: 5000, Rewards: 20}

	t.Run("own subscription", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockLedgerReadStore(ctrl)
		plans := queriesmock.NewMockPlanLimits(ctrl)
		store.EXPECT().FindTenantSubscription(gomock.Any(), tenantID).Return(subscriptionID, nil)
		store.EXPECT().FindUsage(gomock.Any(), subscriptionID).Return(row, nil)
		plans.EXPECT().LimitsFor("conecta").Return(limits, nil)

		view, err := queries.NewLedgerQueries(store, plans).GetUsage(context.Background(), queries.Actor{TenantID: tenantID, Role: "manager"}, subscriptionID)
		require.NoError(t, err)
		assert.Equal(t, "conecta", view.PlanSlug)
		assert.Equal(t, int64(30), view.Counts.Customers)
		assert.Equal(t, limits, view.Limits)
	})

	t.Run("another subscription is hidden from non-admins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockLedgerReadStore(ctrl)
		store.EXPECT().FindTenantSubscription(gomock.Any(), tenantID).Return(uuid.New(), nil)

		_, err := queries.NewLedgerQueries(store, queriesmock.NewMockPlanLimits(ctrl)).
			GetUsage(context.Background(), queries.Actor{TenantID: tenantID, Role: "manager"}, subscriptionID)
		assert.ErrorIs(t, err, queries.ErrSubscriptionNotFound)
	})

	t.Run("admin reads any subscription", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockLedgerReadStore(ctrl)
		plans := queriesmock.NewMockPlanLimits(ctrl)
		store.EXPECT().FindUsage(gomock.Any(), subscriptionID).Return(row, nil)
		plans.EXPECT().LimitsFor("conecta").Return(limits, nil)

		_, err := queries.NewLedgerQueries(store, plans).GetUsage(context.Background(), queries.Actor{TenantID: uuid.New(), Role: queries.RoleAdmin}, subscriptionID)
		assert.NoError(t, err)
	})
}

func TestCursorRoundTrip(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 30, 45, 123456789, time.UTC)
	id := uuid.New()

	decodedAt, decodedID, err := queries.DecodeCursor(queries.EncodeCursor(at, id))
	require.NoError(t, err)
	assert.Equal(t, id, decodedID)
	assert.True(t, at.Truncate(time.Microsecond).Equal(decodedAt))

	for _, bad := range []string{"", "!!!", "djI6MTIzOnh5eg"} {
		_, _, err := queries.DecodeCursor(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, queries.DefaultListLimit, queries.ValidateLimit(-1))
	assert.Equal(t, queries.MaxListLimit, queries.ValidateLimit(10_000))
	assert.Equal(t, 7, queries.ValidateLimit(7))
}
