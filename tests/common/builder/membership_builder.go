//go:build unit || e2e

package builder

import (
	"time"

	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type MembershipBuilder struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	UserID       uuid.UUID
	ExternalCode string
	Balance      int64
	TierID       *uuid.UUID
	Status       membership.Status
	TotalSpent   decimal.Decimal
	TotalVisits  int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewMembershipBuilder() *MembershipBuilder {
	now := time.Now()
	return &MembershipBuilder{
		ID:           uuid.New(),
		TenantID:     uuid.New(),
		UserID:       uuid.New(),
		ExternalCode: "CARD-0001",
		Status:       membership.StatusActive,
		TotalSpent:   decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *MembershipBuilder) With(mutate func(*MembershipBuilder)) *MembershipBuilder {
	mutate(b)
	return b
}

func (b *MembershipBuilder) WithTenant(id uuid.UUID) *MembershipBuilder {
	b.TenantID = id
	return b
}

func (b *MembershipBuilder) WithBalance(balance int64) *MembershipBuilder {
	b.Balance = balance
	return b
}

func (b *MembershipBuilder) WithStatus(s membership.Status) *MembershipBuilder {
	b.Status = s
	return b
}

func (b *MembershipBuilder) BuildDomain() *membership.Membership {
	return membership.Reconstruct(membership.Attributes{
		ID:           b.ID,
		TenantID:     b.TenantID,
		UserID:       b.UserID,
		ExternalCode: b.ExternalCode,
		Balance:      b.Balance,
		TierID:       b.TierID,
		Status:       b.Status,
		TotalSpent:   b.TotalSpent,
		TotalVisits:  b.TotalVisits,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	})
}

func (b *MembershipBuilder) BuildInfra() query.Membership {
	return query.Membership{
		ID:           b.ID,
		TenantID:     b.TenantID,
		UserID:       b.UserID,
		ExternalCode: b.ExternalCode,
		Balance:      b.Balance,
		TierID:       pgconv.UUIDPtrToPgtype(b.TierID),
		Status:       string(b.Status),
		TotalSpent:   pgconv.DecimalToNumeric(b.TotalSpent),
		TotalVisits:  b.TotalVisits,
		CreatedAt:    pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}
