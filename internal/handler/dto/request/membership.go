package request

import (
	"strings"

	"loyalty-ledger/internal/usecase/commands"

	"github.com/google/uuid"
)

type RegisterMembershipRequest struct {
	UserID       uuid.UUID `json:"userId" binding:"required"`
	ExternalCode string    `json:"externalCode" binding:"required,max=64"`
}

func (r RegisterMembershipRequest) ToCommand(tenantID uuid.UUID) commands.RegisterMembershipRequest {
	return commands.RegisterMembershipRequest{
		TenantID:     tenantID,
		UserID:       r.UserID,
		ExternalCode: strings.TrimSpace(r.ExternalCode),
	}
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

type ListTransactionsQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
	After string `form:"after"`
}
