package response

import (
	"time"

	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type TenantResponse struct {
	ID             uuid.UUID `json:"id"`
	SubscriptionID uuid.UUID `json:"subscriptionId"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromTenant(t *tenant.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:             t.ID(),
		SubscriptionID: t.SubscriptionID(),
		Name:           t.Name(),
		CreatedAt:      t.CreatedAt(),
	}
}

type BranchResponse struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenantId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromBranch(b *tenant.Branch) *BranchResponse {
	return &BranchResponse{
		ID:        b.ID(),
		TenantID:  b.TenantID(),
		Name:      b.Name(),
		CreatedAt: b.CreatedAt(),
	}
}

type ResourceUsage struct {
	Count int64 `json:"count"`
	// -1 is unlimited.
	Limit int64 `json:"limit"`
}

type UsageResponse struct {
	SubscriptionID uuid.UUID     `json:"subscriptionId"`
	Plan           string        `json:"plan"`
	Tenants        ResourceUsage `json:"tenants"`
	Branches       ResourceUsage `json:"branches"`
	Customers      ResourceUsage `json:"customers"`
	Rewards        ResourceUsage `json:"rewards"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func FromUsageView(v *queries.UsageView) *UsageResponse {
	pair := func(r usage.Resource) ResourceUsage {
		return ResourceUsage{Count: v.Counts.For(r), Limit: v.Limits.For(r)}
	}
	return &UsageResponse{
		SubscriptionID: v.SubscriptionID,
		Plan:           v.PlanSlug,
		Tenants:        pair(usage.ResourceTenants),
		Branches:       pair(usage.ResourceBranches),
		Customers:      pair(usage.ResourceCustomers),
		Rewards:        pair(usage.ResourceRewards),
		UpdatedAt:      v.UpdatedAt,
	}
}

type CounterResponse struct {
	SubscriptionID uuid.UUID `json:"subscriptionId"`
	Tenants        int64     `json:"tenants"`
	Branches       int64     `json:"branches"`
	Customers      int64     `json:"customers"`
	Rewards        int64     `json:"rewards"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func FromCounter(c usage.Counter) *CounterResponse {
	return &CounterResponse{
		SubscriptionID: c.SubscriptionID,
		Tenants:        c.Tenants,
		Branches:       c.Branches,
		Customers:      c.Customers,
		Rewards:        c.Rewards,
		UpdatedAt:      c.UpdatedAt,
	}
}
