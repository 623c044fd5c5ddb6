//go:build e2e

package lifecycle_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"loyalty-ledger/internal/handler/dto/request"
	"loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/tests/common/dbtest"
	"loyalty-ledger/tests/common/httptest"
	"loyalty-ledger/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tenantsURL  = "/api/tenants"
	branchesURL = "/api/branches"
	usageURL    = "/api/subscriptions/%s/usage"
	recountURL  = "/api/subscriptions/%s/usage/recount"
)

type LifecycleSuite struct {
	e2e.SharedSuite
}

func TestLifecycleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(LifecycleSuite))
}

func (s *LifecycleSuite) usage(token string, subscriptionID uuid.UUID) response.UsageResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(usageURL, subscriptionID), nil, token)
	var u response.UsageResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &u)
	return u
}

// =============================================================================
// TestPlanLimits
// =============================================================================

func (s *LifecycleSuite) TestPlanLimits() {
	s.Run("Error case: esencia allows a single tenant", func() {
		t := s.T()
		p := s.NewProgram("esencia")
		admin := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, tenantsURL,
			request.CreateTenantRequest{SubscriptionID: p.SubscriptionID, Name: "Second Cafe"}, admin)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Tenants limit of 1 reached")

		u := s.usage(admin, p.SubscriptionID)
		require.Equal(t, response.ResourceUsage{Count: 1, Limit: 1}, u.Tenants)
	})

	s.Run("Normal case: a deleted branch frees its slot", func() {
		t := s.T()
		p := s.NewProgram("esencia")
		manager := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleManager)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, branchesURL, request.CreateBranchRequest{Name: "Downtown"}, manager)
		var branch response.BranchResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &branch)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, branchesURL, request.CreateBranchRequest{Name: "Airport"}, manager)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Branches limit of 1 reached")

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, branchesURL+"/"+branch.ID.String(), nil, manager)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, branchesURL, request.CreateBranchRequest{Name: "Airport"}, manager)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: staff cannot create branches", func() {
		t := s.T()
		p := s.NewProgram("esencia")
		staff := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, branchesURL, request.CreateBranchRequest{Name: "Downtown"}, staff)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// TestUsageTracking
// =============================================================================

func (s *LifecycleSuite) TestUsageTracking() {
	s.Run("Normal case: registering and unregistering moves the customer count", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		staff := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)

		var ids []uuid.UUID
		for i := 0; i < 3; i++ {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/memberships",
				request.RegisterMembershipRequest{UserID: uuid.New(), ExternalCode: fmt.Sprintf("CARD-%d", i)}, staff)
			var m response.MembershipResponse
			httptest.AssertSuccessResponse(t, w, http.StatusCreated, &m)
			ids = append(ids, m.ID)
		}
		require.Equal(t, int64(3), s.usage(staff, p.SubscriptionID).Customers.Count)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, "/api/memberships/"+ids[0].String(), nil, staff)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		require.Equal(t, int64(2), s.usage(staff, p.SubscriptionID).Customers.Count)
	})

	s.Run("Error case: a duplicate card code does not consume a slot", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		staff := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		req := request.RegisterMembershipRequest{UserID: uuid.New(), ExternalCode: "CARD-1"}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/memberships", req, staff)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		req.UserID = uuid.New()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/memberships", req, staff)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
		require.Equal(t, int64(1), s.usage(staff, p.SubscriptionID).Customers.Count)
	})

	s.Run("Error case: another tenant's subscription is hidden", func() {
		t := s.T()
		a := s.NewProgram("conecta")
		b := s.NewProgram("conecta")
		staffB := s.Tokens.GenerateToken(t, b.TenantID, middleware.RoleStaff)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(usageURL, a.SubscriptionID), nil, staffB)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Normal case: recount repairs a drifted counter", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		admin := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleAdmin)

		_, err := s.DB.Exec(context.Background(),
			"UPDATE usage_counters SET customers_count = 42, branches_count = 7 WHERE subscription_id = $1", p.SubscriptionID)
		require.NoError(t, err)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(recountURL, p.SubscriptionID), nil, admin)
		var counter response.CounterResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &counter)
		require.Equal(t, int64(1), counter.Tenants)
		require.Equal(t, int64(0), counter.Branches)
		require.Equal(t, int64(0), counter.Customers)
	})

	s.Run("Normal case: deleting a tenant releases everything it held", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		admin := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, branchesURL, request.CreateBranchRequest{Name: "Downtown"}, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/memberships",
			request.RegisterMembershipRequest{UserID: uuid.New(), ExternalCode: "CARD-1"}, admin)
		var m response.MembershipResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &m)
		points := int64(25)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf("/api/memberships/%s/earn", m.ID),
			request.EarnRequest{TransactionReference: "POS-1", Points: &points}, admin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, tenantsURL+"/"+p.TenantID.String(), nil, admin)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		u := s.usage(admin, p.SubscriptionID)
		require.Equal(t, int64(0), u.Tenants.Count)
		require.Equal(t, int64(0), u.Branches.Count)
		require.Equal(t, int64(0), u.Customers.Count)
		// Ledger history survives the membership.
		require.Equal(t, 1, dbtest.CountLedgerEntries(t, s.DB, m.ID))
	})
}
