package request

import "github.com/google/uuid"

type CreateTenantRequest struct {
	SubscriptionID uuid.UUID `json:"subscriptionId" binding:"required"`
	Name           string    `json:"name" binding:"required,max=200"`
}

type CreateBranchRequest struct {
	Name string `json:"name" binding:"required,max=200"`
}
