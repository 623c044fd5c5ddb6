package api

import (
	"net/http"

	reqdto "loyalty-ledger/internal/handler/dto/request"
	resdto "loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const idempotencyKeyHeader = "Idempotency-Key"

type PointsHandler struct {
	cmds commands.PointsCommands
}

func NewPointsHandler(cmds commands.PointsCommands) *PointsHandler {
	return &PointsHandler{cmds: cmds}
}

// @Summary Earn points
// @Description Credit points to a membership, either explicitly or computed from a purchase amount
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param Idempotency-Key header string false "Transaction reference when the body omits it"
// @Param request body reqdto.EarnRequest true "Earn request"
// @Success 201 {object} resdto.PointsResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /memberships/{id}/earn [post]
func (h *PointsHandler) Earn(c *gin.Context) {
	tenantID, actorID, ok := caller(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.EarnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.Earn(c.Request.Context(), req.ToCommand(tenantID, membershipID, actorID, c.GetHeader(idempotencyKeyHeader)))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPointsResult(result))
}

// @Summary Redeem points
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param Idempotency-Key header string false "Transaction reference when the body omits it"
// @Param request body reqdto.RedeemRequest true "Redeem request"
// @Success 201 {object} resdto.PointsResultResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /memberships/{id}/redeem [post]
func (h *PointsHandler) Redeem(c *gin.Context) {
	tenantID, actorID, ok := caller(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.Redeem(c.Request.Context(), req.ToCommand(tenantID, membershipID, actorID, c.GetHeader(idempotencyKeyHeader)))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPointsResult(result))
}

// @Summary Reverse transaction
// @Description Append a compensating entry for an earn or redeem transaction
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body reqdto.ReverseRequest true "Reverse request"
// @Success 201 {object} resdto.PointsResultResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /transactions/{id}/reverse [post]
func (h *PointsHandler) Reverse(c *gin.Context) {
	tenantID, actorID, ok := caller(c)
	if !ok {
		return
	}
	entryID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ReverseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.Reverse(c.Request.Context(), commands.ReverseRequest{
		TenantID:   tenantID,
		EntryID:    entryID,
		ReasonCode: req.ReasonCode,
		ActorID:    &actorID,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPointsResult(result))
}

// @Summary Adjust points
// @Description Manual signed correction; the balance may not go below zero
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param request body reqdto.AdjustRequest true "Adjust request"
// @Success 201 {object} resdto.PointsResultResponse
// @Router /memberships/{id}/adjust [post]
func (h *PointsHandler) Adjust(c *gin.Context) {
	tenantID, actorID, ok := caller(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.Adjust(c.Request.Context(), req.ToCommand(tenantID, membershipID, actorID))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPointsResult(result))
}

// @Summary Expire points
// @Description Removes up to the requested points, clamped to the balance
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param request body reqdto.ExpireRequest true "Expire request"
// @Success 200 {object} resdto.PointsResultResponse
// @Router /memberships/{id}/expire [post]
func (h *PointsHandler) Expire(c *gin.Context) {
	tenantID, actorID, ok := caller(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ExpireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.Expire(c.Request.Context(), commands.ExpireRequest{
		TenantID:     tenantID,
		MembershipID: membershipID,
		Points:       req.Points,
		Reference:    req.TransactionReference,
		ActorID:      &actorID,
	})
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPointsResult(result))
}

// @Summary Recalculate balance
// @Description Re-project the balance and tier from the ledger
// @Tags points
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} resdto.PointsResultResponse
// @Router /memberships/{id}/recalculate [post]
func (h *PointsHandler) Recalculate(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.cmds.Recalculate(c.Request.Context(), tenantID, membershipID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromPointsResult(result))
}

// @Summary Recalculate balances in batch
// @Tags points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RecalculateBatchRequest true "Membership IDs"
// @Success 200 {object} resdto.BatchResultResponse
// @Router /memberships/recalculate [post]
func (h *PointsHandler) RecalculateBatch(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	var req reqdto.RecalculateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.RecalculateBatch(c.Request.Context(), tenantID, req.MembershipIDs)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBatchResult(result))
}

// @Summary Validate balance integrity
// @Description Compare the stored balance with the ledger sum without modifying anything
// @Tags points
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} resdto.IntegrityResponse
// @Router /memberships/{id}/integrity [get]
func (h *PointsHandler) Integrity(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	report, err := h.cmds.ValidateIntegrity(c.Request.Context(), tenantID, membershipID)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromIntegrityReport(report))
}

// caller aborts with 401 when the auth middleware did not run.
func caller(c *gin.Context) (tenantID, userID uuid.UUID, ok bool) {
	tenantID, ok = middleware.GetTenantID(c)
	if !ok {
		abortUnauthorized(c)
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok = middleware.GetUserID(c)
	if !ok {
		abortUnauthorized(c)
		return uuid.Nil, uuid.Nil, false
	}
	return tenantID, userID, true
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abortWithDomainError(c, errInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
