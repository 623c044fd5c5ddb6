package converter

import (
	"encoding/json"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/pkg/pgconv"
)

func LedgerEntryToParams(e *ledger.Entry) (query.InsertLedgerEntryParams, error) {
	metadata, err := json.Marshal(e.Metadata())
	if err != nil {
		return query.InsertLedgerEntryParams{}, err
	}
	return query.InsertLedgerEntryParams{
		ID:                   e.ID(),
		MembershipID:         e.MembershipID(),
		UserID:               e.UserID(),
		TenantID:             e.TenantID(),
		Kind:                 string(e.Kind()),
		Points:               e.Points(),
		TransactionReference: e.Reference(),
		ReversedEntryID:      pgconv.UUIDPtrToPgtype(e.ReversedEntryID()),
		RuleID:               pgconv.UUIDPtrToPgtype(e.RuleID()),
		BasePoints:           e.BasePoints(),
		Multiplier:           pgconv.DecimalPtrToNumeric(e.Multiplier()),
		BonusPoints:          e.BonusPoints(),
		Amount:               pgconv.DecimalPtrToNumeric(e.Amount()),
		ReasonCode:           pgconv.StringPtrToPgtype(e.ReasonCode()),
		Description:          pgconv.StringPtrToPgtype(e.Description()),
		BranchID:             pgconv.UUIDPtrToPgtype(e.BranchID()),
		CreatedBy:            pgconv.UUIDPtrToPgtype(e.CreatedBy()),
		RequestFingerprint:   e.Fingerprint(),
		Metadata:             metadata,
		CreatedAt:            pgconv.TimeToPgtype(e.CreatedAt()),
	}, nil
}

func LedgerEntryFromRow(row query.LedgerEntry) (*ledger.Entry, error) {
	multiplier, err := pgconv.DecimalPtrFromNumeric(row.Multiplier)
	if err != nil {
		return nil, err
	}
	amount, err := pgconv.DecimalPtrFromNumeric(row.Amount)
	if err != nil {
		return nil, err
	}
	var metadata map[string]any
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &metadata); err != nil {
			return nil, err
		}
	}
	return ledger.Reconstruct(ledger.Attributes{
		ID:              row.ID,
		MembershipID:    row.MembershipID,
		UserID:          row.UserID,
		TenantID:        row.TenantID,
		Kind:            ledger.Kind(row.Kind),
		Points:          row.Points,
		Reference:       row.TransactionReference,
		ReversedEntryID: pgconv.UUIDPtrFromPgtype(row.ReversedEntryID),
		RuleID:          pgconv.UUIDPtrFromPgtype(row.RuleID),
		BasePoints:      row.BasePoints,
		Multiplier:      multiplier,
		BonusPoints:     row.BonusPoints,
		Amount:          amount,
		ReasonCode:      pgconv.StringPtrFromPgtype(row.ReasonCode),
		Description:     pgconv.StringPtrFromPgtype(row.Description),
		BranchID:        pgconv.UUIDPtrFromPgtype(row.BranchID),
		CreatedBy:       pgconv.UUIDPtrFromPgtype(row.CreatedBy),
		Fingerprint:     row.RequestFingerprint,
		Metadata:        metadata,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
	})
}
