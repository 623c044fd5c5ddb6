package response

import (
	"time"

	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type MembershipResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenantId"`
	UserID           uuid.UUID       `json:"userId"`
	ExternalCode     string          `json:"externalCode"`
	Balance          int64           `json:"balance"`
	TierID           *uuid.UUID      `json:"tierId,omitempty"`
	TierName         *string         `json:"tierName,omitempty"`
	NextTierName     *string         `json:"nextTierName,omitempty"`
	PointsToNextTier *int64          `json:"pointsToNextTier,omitempty"`
	Status           string          `json:"status"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	TotalVisits      int64           `json:"totalVisits"`
	LastActivityAt   *time.Time      `json:"lastActivityAt,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func FromMembershipView(v *queries.MembershipView) (*MembershipResponse, error) {
	resp := &MembershipResponse{}
	if err := copier.Copy(resp, v); err != nil {
		return nil, err
	}
	return resp, nil
}

func FromMembership(m *membership.Membership, tierName *string) *MembershipResponse {
	return &MembershipResponse{
		ID:             m.ID(),
		TenantID:       m.TenantID(),
		UserID:         m.UserID(),
		ExternalCode:   m.ExternalCode(),
		Balance:        m.Balance(),
		TierID:         m.TierID(),
		TierName:       tierName,
		Status:         string(m.Status()),
		TotalSpent:     m.TotalSpent(),
		TotalVisits:    m.TotalVisits(),
		LastActivityAt: m.LastActivityAt(),
		CreatedAt:      m.CreatedAt(),
		UpdatedAt:      m.UpdatedAt(),
	}
}
