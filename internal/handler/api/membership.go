package api

import (
	"net/http"

	"loyalty-ledger/internal/domain/membership"
	reqdto "loyalty-ledger/internal/handler/dto/request"
	resdto "loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type MembershipHandler struct {
	cmds commands.MembershipCommands
	q    queries.LedgerQueries
}

func NewMembershipHandler(cmds commands.MembershipCommands, q queries.LedgerQueries) *MembershipHandler {
	return &MembershipHandler{cmds: cmds, q: q}
}

// @Summary Register membership
// @Description Enroll a user in the caller's loyalty program, subject to the plan's customer limit
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterMembershipRequest true "Register request"
// @Success 201 {object} resdto.MembershipResponse
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /memberships [post]
func (h *MembershipHandler) Register(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	var req reqdto.RegisterMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	result, err := h.cmds.Register(c.Request.Context(), req.ToCommand(tenantID))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromMembership(result.Membership, result.TierName))
}

// @Summary Get membership
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 200 {object} resdto.MembershipResponse
// @Failure 404 {object} httperr.Response
// @Router /memberships/{id} [get]
func (h *MembershipHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetMembership(c.Request.Context(), actor, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	resp, err := resdto.FromMembershipView(view)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Unregister membership
// @Description Delete the membership and release its customer slot; ledger history is kept
// @Tags memberships
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /memberships/{id} [delete]
func (h *MembershipHandler) Unregister(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.cmds.Unregister(c.Request.Context(), tenantID, id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Change membership status
// @Tags memberships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param request body reqdto.SetStatusRequest true "Status"
// @Success 200 {object} resdto.MembershipResponse
// @Router /memberships/{id}/status [patch]
func (h *MembershipHandler) SetStatus(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	m, err := h.cmds.SetStatus(c.Request.Context(), tenantID, id, membership.Status(req.Status))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromMembership(m, nil))
}

// @Summary List membership transactions
// @Description Newest first, paginated with an opaque cursor
// @Tags memberships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Membership ID"
// @Param limit query int false "Page size (default 20, max 200)"
// @Param after query string false "Cursor from the previous page"
// @Success 200 {object} resdto.TransactionPageResponse
// @Router /memberships/{id}/transactions [get]
func (h *MembershipHandler) ListTransactions(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var params reqdto.ListTransactionsQuery
	if err := c.ShouldBindQuery(&params); err != nil {
		abortBadRequest(c, err)
		return
	}

	var cursor *queries.Cursor
	if params.After != "" {
		cursor = &queries.Cursor{After: params.After}
	}
	views, next, err := h.q.ListTransactions(c.Request.Context(), actor, id, cursor, params.Limit)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	items, err := resdto.FromTransactionViews(views)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}

	resp := resdto.TransactionPageResponse{Items: items}
	if next != nil {
		resp.NextCursor = &next.After
	}
	c.JSON(http.StatusOK, resp)
}
