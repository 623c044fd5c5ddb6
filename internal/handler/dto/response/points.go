package response

import (
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	ID              uuid.UUID        `json:"id"`
	MembershipID    uuid.UUID        `json:"membershipId"`
	Kind            string           `json:"type"`
	Points          int64            `json:"points"`
	Reference       string           `json:"transactionReference"`
	ReversedEntryID *uuid.UUID       `json:"reversedTransactionId,omitempty"`
	RuleID          *uuid.UUID       `json:"ruleId,omitempty"`
	BasePoints      int64            `json:"basePoints"`
	Multiplier      *decimal.Decimal `json:"multiplier,omitempty"`
	BonusPoints     int64            `json:"bonusPoints"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	ReasonCode      *string          `json:"reasonCode,omitempty"`
	Description     *string          `json:"description,omitempty"`
	BranchID        *uuid.UUID       `json:"branchId,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
}

type PointsResultResponse struct {
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	NewBalance  int64                `json:"newBalance"`
	TierID      *uuid.UUID           `json:"tierId,omitempty"`
	TierName    *string              `json:"tierName,omitempty"`
	TierChanged bool                 `json:"tierChanged"`
}

func FromEntry(e *ledger.Entry) *TransactionResponse {
	return &TransactionResponse{
		ID:              e.ID(),
		MembershipID:    e.MembershipID(),
		Kind:            string(e.Kind()),
		Points:          e.Points(),
		Reference:       e.Reference(),
		ReversedEntryID: e.ReversedEntryID(),
		RuleID:          e.RuleID(),
		BasePoints:      e.BasePoints(),
		Multiplier:      e.Multiplier(),
		BonusPoints:     e.BonusPoints(),
		Amount:          e.Amount(),
		ReasonCode:      e.ReasonCode(),
		Description:     e.Description(),
		BranchID:        e.BranchID(),
		CreatedAt:       e.CreatedAt(),
	}
}

func FromPointsResult(r *commands.PointsResult) *PointsResultResponse {
	resp := &PointsResultResponse{
		NewBalance:  r.Membership.Balance(),
		TierID:      r.Membership.TierID(),
		TierName:    r.TierName,
		TierChanged: r.TierChanged,
	}
	if r.Entry != nil {
		resp.Transaction = FromEntry(r.Entry)
	}
	return resp
}

// FromTransactionViews copies by field name; both shapes share their Go field names.
func FromTransactionViews(views []*queries.TransactionView) ([]TransactionResponse, error) {
	out := make([]TransactionResponse, len(views))
	for i, v := range views {
		if err := copier.Copy(&out[i], v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type TransactionPageResponse struct {
	Items      []TransactionResponse `json:"items"`
	NextCursor *string               `json:"nextCursor,omitempty"`
}

type BatchFailureResponse struct {
	MembershipID uuid.UUID `json:"membershipId"`
	Error        string    `json:"error"`
}

type BatchResultResponse struct {
	Succeeded []*PointsResultResponse `json:"succeeded"`
	Failed    []BatchFailureResponse  `json:"failed"`
}

func FromBatchResult(r *commands.BatchResult) *BatchResultResponse {
	resp := &BatchResultResponse{
		Succeeded: make([]*PointsResultResponse, 0, len(r.Succeeded)),
		Failed:    make([]BatchFailureResponse, 0, len(r.Failed)),
	}
	for _, s := range r.Succeeded {
		item := FromPointsResult(s)
		item.Transaction = nil
		resp.Succeeded = append(resp.Succeeded, item)
	}
	for _, f := range r.Failed {
		resp.Failed = append(resp.Failed, BatchFailureResponse{MembershipID: f.MembershipID, Error: f.Err.Error()})
	}
	return resp
}

type IntegrityResponse struct {
	MembershipID    uuid.UUID `json:"membershipId"`
	StoredBalance   int64     `json:"storedBalance"`
	LedgerSum       int64     `json:"ledgerSum"`
	ExpectedBalance int64     `json:"expectedBalance"`
	EntryCount      int       `json:"entryCount"`
	Consistent      bool      `json:"consistent"`
}

func FromIntegrityReport(r *commands.IntegrityReport) *IntegrityResponse {
	return &IntegrityResponse{
		MembershipID:    r.MembershipID,
		StoredBalance:   r.StoredBalance,
		LedgerSum:       r.LedgerSum,
		ExpectedBalance: r.ExpectedBalance,
		EntryCount:      r.EntryCount,
		Consistent:      r.Consistent(),
	}
}
