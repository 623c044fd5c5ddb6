package api

import (
	"net/http"
	"strings"

	reqdto "loyalty-ledger/internal/handler/dto/request"
	resdto "loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	cmds commands.TenantCommands
	q    queries.LedgerQueries
}

func NewTenantHandler(cmds commands.TenantCommands, q queries.LedgerQueries) *TenantHandler {
	return &TenantHandler{cmds: cmds, q: q}
}

// @Summary Create tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTenantRequest true "Tenant"
// @Success 201 {object} resdto.TenantResponse
// @Failure 403 {object} httperr.Response
// @Router /tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req reqdto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	t, err := h.cmds.CreateTenant(c.Request.Context(), req.SubscriptionID, strings.TrimSpace(req.Name))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromTenant(t))
}

// @Summary Delete tenant
// @Description Removes the tenant with its memberships and branches and releases their usage
// @Tags tenants
// @Security BearerAuth
// @Param id path string true "Tenant ID"
// @Success 204 "No Content"
// @Router /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.DeleteTenant(c.Request.Context(), id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Create branch
// @Tags branches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBranchRequest true "Branch"
// @Success 201 {object} resdto.BranchResponse
// @Router /branches [post]
func (h *TenantHandler) CreateBranch(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	var req reqdto.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	b, err := h.cmds.CreateBranch(c.Request.Context(), tenantID, strings.TrimSpace(req.Name))
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBranch(b))
}

// @Summary Delete branch
// @Tags branches
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 204 "No Content"
// @Router /branches/{id} [delete]
func (h *TenantHandler) DeleteBranch(c *gin.Context) {
	tenantID, _, ok := caller(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.DeleteBranch(c.Request.Context(), tenantID, id); err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get subscription usage
// @Description Resource counts with the limits of the subscription's plan (-1 is unlimited)
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} resdto.UsageResponse
// @Router /subscriptions/{id}/usage [get]
func (h *TenantHandler) GetUsage(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.q.GetUsage(c.Request.Context(), actor, id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromUsageView(view))
}

// @Summary Recount subscription usage
// @Description Rebuild the usage counters from the rows that currently exist
// @Tags subscriptions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Subscription ID"
// @Success 200 {object} resdto.CounterResponse
// @Router /subscriptions/{id}/usage/recount [post]
func (h *TenantHandler) RecountUsage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	counter, err := h.cmds.RecountUsage(c.Request.Context(), id)
	if err != nil {
		abortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCounter(counter))
}
