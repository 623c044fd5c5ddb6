//go:build e2e

package points_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"loyalty-ledger/internal/handler/dto/request"
	"loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/pkg/ptr"
	"loyalty-ledger/tests/common/dbtest"
	"loyalty-ledger/tests/common/httptest"
	"loyalty-ledger/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	membershipsURL  = "/api/memberships"
	earnURL         = "/api/memberships/%s/earn"
	redeemURL       = "/api/memberships/%s/redeem"
	adjustURL       = "/api/memberships/%s/adjust"
	transactionsURL = "/api/memberships/%s/transactions"
	integrityURL    = "/api/memberships/%s/integrity"
	recalculateURL  = "/api/memberships/%s/recalculate"
	reverseURL      = "/api/transactions/%s/reverse"
)

type PointsSuite struct {
	e2e.SharedSuite
}

func TestPointsSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PointsSuite))
}

func (s *PointsSuite) register(token string) response.MembershipResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, membershipsURL,
		request.RegisterMembershipRequest{UserID: uuid.New(), ExternalCode: "CARD-" + uuid.NewString()[:8]}, token)
	var m response.MembershipResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &m)
	return m
}

func (s *PointsSuite) earn(token string, membershipID uuid.UUID, ref string, points int64) response.PointsResultResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(earnURL, membershipID),
		request.EarnRequest{TransactionReference: ref, Points: &points}, token)
	var res response.PointsResultResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
	return res
}

// =============================================================================
// TestEarnAndRedeem
// =============================================================================

func (s *PointsSuite) TestEarnAndRedeem() {
	s.Run("Normal case: purchase amount is converted by the rule and crosses a tier", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)

		m := s.register(token)
		require.NotNil(t, m.TierName)
		require.Equal(t, "Bronze", *m.TierName)

		amount := decimal.RequireFromString("1200.50")
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(earnURL, m.ID),
			request.EarnRequest{TransactionReference: "POS-1001", Amount: &amount}, token)

		var res response.PointsResultResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		httptest.AssertHeaders(t, w, map[string]string{"Content-Type": "application/json; charset=utf-8"})
		require.Equal(t, int64(1200), res.NewBalance)
		require.True(t, res.TierChanged)
		require.Equal(t, p.Tiers["Silver"], *res.TierID)
		require.Equal(t, "earn", res.Transaction.Kind)
		require.Equal(t, int64(1200), res.Transaction.BasePoints)
	})

	s.Run("Normal case: redeem demotes back to Bronze", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)
		s.earn(token, m.ID, "POS-1", 1000)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(redeemURL, m.ID),
			request.RedeemRequest{TransactionReference: "RDM-1", Points: 100}, token)

		var res response.PointsResultResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.Equal(t, int64(900), res.NewBalance)
		require.Equal(t, "Bronze", *res.TierName)
		require.Equal(t, int64(-100), res.Transaction.Points)
	})

	s.Run("Error case: redeeming more than the balance returns 422 and appends nothing", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)
		s.earn(token, m.ID, "POS-1", 1500)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(redeemURL, m.ID),
			request.RedeemRequest{TransactionReference: "RDM-1", Points: 1600}, token)

		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "Customer has 1500 points, but 1600 are required")
		require.Equal(t, 1, dbtest.CountLedgerEntries(t, s.DB, m.ID))
	})

	s.Run("Error case: a reused reference is rejected with replay detail", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)
		first := s.earn(token, m.ID, "POS-dup", 100)

		points := int64(100)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(earnURL, m.ID),
			request.EarnRequest{TransactionReference: "POS-dup", Points: &points}, token)

		var detail struct {
			ExistingTransactionID string `json:"existingTransactionId"`
			Replay                bool   `json:"replay"`
		}
		httptest.AssertErrorDetail(t, w, http.StatusConflict, &detail)
		require.True(t, detail.Replay)
		require.Equal(t, first.Transaction.ID.String(), detail.ExistingTransactionID)
		require.Equal(t, 1, dbtest.CountLedgerEntries(t, s.DB, m.ID))
	})

	s.Run("Error case: references are scoped per tenant", func() {
		t := s.T()
		a := s.NewProgram("conecta")
		b := s.NewProgram("conecta")
		tokenA := s.Tokens.GenerateToken(t, a.TenantID, middleware.RoleStaff)
		tokenB := s.Tokens.GenerateToken(t, b.TenantID, middleware.RoleStaff)

		s.earn(tokenA, s.register(tokenA).ID, "POS-shared", 10)
		res := s.earn(tokenB, s.register(tokenB).ID, "POS-shared", 10)
		require.Equal(t, int64(10), res.NewBalance)
	})
}

// =============================================================================
// TestReverse
// =============================================================================

func (s *PointsSuite) TestReverse() {
	s.Run("Normal case: reversal restores the balance once", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)
		s.earn(token, m.ID, "POS-1", 300)
		second := s.earn(token, m.ID, "POS-2", 200)

		url := fmt.Sprintf(reverseURL, second.Transaction.ID)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, request.ReverseRequest{ReasonCode: "CUSTOMER_RETURN"}, token)

		var res response.PointsResultResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.Equal(t, int64(300), res.NewBalance)
		require.Equal(t, "reversal", res.Transaction.Kind)
		require.Equal(t, second.Transaction.ID, *res.Transaction.ReversedEntryID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, url, request.ReverseRequest{ReasonCode: "AGAIN"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "already been reversed")
	})

	s.Run("Error case: another tenant's transaction is not found", func() {
		t := s.T()
		a := s.NewProgram("conecta")
		b := s.NewProgram("conecta")
		tokenA := s.Tokens.GenerateToken(t, a.TenantID, middleware.RoleStaff)
		tokenB := s.Tokens.GenerateToken(t, b.TenantID, middleware.RoleStaff)
		earned := s.earn(tokenA, s.register(tokenA).ID, "POS-1", 50)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reverseURL, earned.Transaction.ID),
			request.ReverseRequest{ReasonCode: "FRAUD"}, tokenB)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestConcurrentWrites
// =============================================================================

// parallel fires n requests at once and returns their status codes in order.
func (s *PointsSuite) parallel(n int, do func(i int) int) []int {
	codes := make([]int, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			codes[i] = do(i)
		}()
	}
	close(start)
	wg.Wait()
	return codes
}

func countCodes(codes []int) map[int]int {
	out := make(map[int]int)
	for _, c := range codes {
		out[c]++
	}
	return out
}

func (s *PointsSuite) TestConcurrentWrites() {
	s.Run("Normal case: racing redeems never overdraw the balance", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		staff := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		manager := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleManager)
		m := s.register(staff)
		s.earn(staff, m.ID, "POS-seed", 1000)

		const redeems, points = 10, int64(150)
		codes := s.parallel(redeems, func(i int) int {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(redeemURL, m.ID),
				request.RedeemRequest{TransactionReference: fmt.Sprintf("RDM-%d", i), Points: points}, staff)
			return w.Code
		})

		want := map[int]int{http.StatusCreated: 6, http.StatusUnprocessableEntity: 4}
		if diff := cmp.Diff(want, countCodes(codes)); diff != "" {
			t.Errorf("status codes mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, 7, dbtest.CountLedgerEntries(t, s.DB, m.ID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(integrityURL, m.ID), nil, manager)
		var report response.IntegrityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.True(t, report.Consistent)
		require.Equal(t, int64(100), report.StoredBalance)
		require.Equal(t, int64(100), report.LedgerSum)
	})

	s.Run("Normal case: racing reversals of one entry apply once", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)
		s.earn(token, m.ID, "POS-1", 300)
		earned := s.earn(token, m.ID, "POS-2", 200)

		url := fmt.Sprintf(reverseURL, earned.Transaction.ID)
		codes := s.parallel(2, func(i int) int {
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, url,
				request.ReverseRequest{ReasonCode: fmt.Sprintf("RETURN_%d", i)}, token)
			return w.Code
		})

		want := map[int]int{http.StatusCreated: 1, http.StatusConflict: 1}
		if diff := cmp.Diff(want, countCodes(codes)); diff != "" {
			t.Errorf("status codes mismatch (-want +got):\n%s", diff)
		}
		require.Equal(t, 3, dbtest.CountLedgerEntries(t, s.DB, m.ID))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, membershipsURL+"/"+m.ID.String(), nil, token)
		var got response.MembershipResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, int64(300), got.Balance)
	})
}

// =============================================================================
// TestAdjust
// =============================================================================

func (s *PointsSuite) TestAdjust() {
	s.Run("Error case: staff may not adjust", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(adjustURL, m.ID),
			request.AdjustRequest{Points: 50, ReasonCode: "GOODWILL"}, token)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("Normal case: manager adjusts down to exactly zero", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		staff := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		manager := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleManager)
		m := s.register(staff)
		s.earn(staff, m.ID, "POS-1", 75)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(adjustURL, m.ID),
			request.AdjustRequest{Points: -76, ReasonCode: "CORRECTION"}, manager)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "make the balance negative")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(adjustURL, m.ID),
			request.AdjustRequest{Points: -75, ReasonCode: "CORRECTION"}, manager)
		var res response.PointsResultResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &res)
		require.Equal(t, int64(0), res.NewBalance)
	})
}

// =============================================================================
// TestHistoryAndIntegrity
// =============================================================================

func (s *PointsSuite) TestHistoryAndIntegrity() {
	s.Run("Normal case: history pages newest first", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)
		for i := 1; i <= 5; i++ {
			s.earn(token, m.ID, fmt.Sprintf("POS-%d", i), int64(i*10))
		}

		var refs []string
		url := fmt.Sprintf(transactionsURL, m.ID) + "?limit=2"
		for page := 0; page < 3; page++ {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
			var body response.TransactionPageResponse
			httptest.AssertSuccessResponse(t, w, http.StatusOK, &body)
			for _, item := range body.Items {
				refs = append(refs, item.Reference)
			}
			if body.NextCursor == nil {
				break
			}
			url = fmt.Sprintf(transactionsURL, m.ID) + "?limit=2&after=" + *body.NextCursor
		}

		want := []string{"POS-5", "POS-4", "POS-3", "POS-2", "POS-1"}
		if diff := cmp.Diff(want, refs); diff != "" {
			t.Errorf("history mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: drift is reported and recalculation repairs it", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		staff := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		manager := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleManager)
		m := s.register(staff)
		s.earn(staff, m.ID, "POS-1", 400)
		dbtest.SetStoredBalance(t, s.DB, m.ID, 999)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(integrityURL, m.ID), nil, manager)
		var report response.IntegrityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		want := response.IntegrityResponse{
			MembershipID:    m.ID,
			StoredBalance:   999,
			LedgerSum:       400,
			ExpectedBalance: 400,
			EntryCount:      1,
			Consistent:      false,
		}
		if diff := cmp.Diff(want, report); diff != "" {
			t.Errorf("integrity mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(recalculateURL, m.ID), nil, manager)
		var res response.PointsResultResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
		require.Equal(t, int64(400), res.NewBalance)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(integrityURL, m.ID), nil, manager)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.True(t, report.Consistent)
	})

	s.Run("Normal case: membership view reflects the ledger", func() {
		t := s.T()
		p := s.NewProgram("conecta")
		token := s.Tokens.GenerateToken(t, p.TenantID, middleware.RoleStaff)
		m := s.register(token)
		s.earn(token, m.ID, "POS-1", 5000)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, membershipsURL+"/"+m.ID.String(), nil, token)
		var got response.MembershipResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)

		want := m
		want.Balance = 5000
		want.TierID = ptr.Of(p.Tiers["Gold"])
		want.TierName = ptr.Of("Gold")
		opts := cmp.Options{
			cmpopts.IgnoreFields(response.MembershipResponse{}, "TotalSpent", "TotalVisits", "LastActivityAt", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(want, got, opts); diff != "" {
			t.Errorf("membership mismatch (-want +got):\n%s", diff)
		}
	})
}
