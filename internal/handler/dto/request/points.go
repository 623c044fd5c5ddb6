package request

import (
	"strings"
	"time"

	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EarnRequest struct {
	TransactionReference string           `json:"transactionReference" binding:"omitempty,max=128"`
	Points               *int64           `json:"points,omitempty" binding:"omitempty,gt=0,lte=1000000000"`
	Amount               *decimal.Decimal `json:"amount,omitempty"`
	OccurredAt           *time.Time       `json:"occurredAt,omitempty"`
	Description          *string          `json:"description,omitempty" binding:"omitempty,max=500"`
	BranchID             *uuid.UUID       `json:"branchId,omitempty"`
	Metadata             map[string]any   `json:"metadata,omitempty"`
}

// Validate covers what binding tags cannot express for decimal amounts.
func (r EarnRequest) Validate() error {
	if r.Amount == nil {
		return nil
	}
	return rule.ValidateAmount(*r.Amount)
}

// ToCommand falls back to the Idempotency-Key header when the body carries no reference.
func (r EarnRequest) ToCommand(tenantID, membershipID, actorID uuid.UUID, idempotencyKey string) commands.EarnRequest {
	return commands.EarnRequest{
		TenantID:     tenantID,
		MembershipID: membershipID,
		Reference:    reference(r.TransactionReference, idempotencyKey),
		Points:       r.Points,
		Amount:       r.Amount,
		OccurredAt:   r.OccurredAt,
		Description:  trimmed(r.Description),
		BranchID:     r.BranchID,
		Metadata:     r.Metadata,
		ActorID:      &actorID,
	}
}

type RedeemRequest struct {
	TransactionReference string         `json:"transactionReference" binding:"omitempty,max=128"`
	Points               int64          `json:"points" binding:"required,gt=0,lte=1000000000"`
	Description          *string        `json:"description,omitempty" binding:"omitempty,max=500"`
	BranchID             *uuid.UUID     `json:"branchId,omitempty"`
	Metadata             map[string]any `json:"metadata,omitempty"`
}

func (r RedeemRequest) ToCommand(tenantID, membershipID, actorID uuid.UUID, idempotencyKey string) commands.RedeemRequest {
	return commands.RedeemRequest{
		TenantID:     tenantID,
		MembershipID: membershipID,
		Reference:    reference(r.TransactionReference, idempotencyKey),
		Points:       r.Points,
		Description:  trimmed(r.Description),
		BranchID:     r.BranchID,
		Metadata:     r.Metadata,
		ActorID:      &actorID,
	}
}

type ReverseRequest struct {
	ReasonCode string `json:"reasonCode" binding:"required,max=64"`
}

type AdjustRequest struct {
	Points               int64   `json:"points" binding:"required,gte=-1000000000,lte=1000000000"`
	ReasonCode           string  `json:"reasonCode" binding:"required,max=64"`
	TransactionReference string  `json:"transactionReference,omitempty" binding:"omitempty,max=128"`
	Description          *string `json:"description,omitempty" binding:"omitempty,max=500"`
}

func (r AdjustRequest) ToCommand(tenantID, membershipID, actorID uuid.UUID) commands.AdjustRequest {
	return commands.AdjustRequest{
		TenantID:     tenantID,
		MembershipID: membershipID,
		Points:       r.Points,
		ReasonCode:   strings.TrimSpace(r.ReasonCode),
		Reference:    strings.TrimSpace(r.TransactionReference),
		Description:  trimmed(r.Description),
		ActorID:      &actorID,
	}
}

type ExpireRequest struct {
	Points               int64  `json:"points" binding:"required,gt=0,lte=1000000000"`
	TransactionReference string `json:"transactionReference,omitempty" binding:"omitempty,max=128"`
}

type RecalculateBatchRequest struct {
	MembershipIDs []uuid.UUID `json:"membershipIds" binding:"required,min=1"`
}

func reference(body, header string) string {
	if ref := strings.TrimSpace(body); ref != "" {
		return ref
	}
	return strings.TrimSpace(header)
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
