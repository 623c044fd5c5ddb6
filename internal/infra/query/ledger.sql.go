package query

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const ledgerEntryColumns = `id, membership_id, user_id, tenant_id, kind, points, transaction_reference,
	reversed_entry_id, rule_id, base_points, multiplier, bonus_points, amount, reason_code,
	description, branch_id, created_by, request_fingerprint, metadata, created_at`

func scanLedgerEntry(row interface{ Scan(...any) error }) (LedgerEntry, error) {
	var i LedgerEntry
	err := row.Scan(
		&i.ID,
		&i.MembershipID,
		&i.UserID,
		&i.TenantID,
		&i.Kind,
		&i.Points,
		&i.TransactionReference,
		&i.ReversedEntryID,
		&i.RuleID,
		&i.BasePoints,
		&i.Multiplier,
		&i.BonusPoints,
		&i.Amount,
		&i.ReasonCode,
		&i.Description,
		&i.BranchID,
		&i.CreatedBy,
		&i.RequestFingerprint,
		&i.Metadata,
		&i.CreatedAt,
	)
	return i, err
}

func collectLedgerEntries(rows pgx.Rows, err error) ([]LedgerEntry, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LedgerEntry
	for rows.Next() {
		i, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// insertLedgerEntry skips rows that hit any unique constraint so the
// transaction stays usable for the follow-up lookup of the conflicting row.
const insertLedgerEntry = `
INSERT INTO ledger_entries (
	id, membership_id, user_id, tenant_id, kind, points, transaction_reference,
	reversed_entry_id, rule_id, base_points, multiplier, bonus_points, amount, reason_code,
	description, branch_id, created_by, request_fingerprint, metadata, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
ON CONFLICT DO NOTHING`

type InsertLedgerEntryParams struct {
	ID                   uuid.UUID
	MembershipID         uuid.UUID
	UserID               uuid.UUID
	TenantID             uuid.UUID
	Kind                 string
	Points               int64
	TransactionReference string
	ReversedEntryID      pgtype.UUID
	RuleID               pgtype.UUID
	BasePoints           int64
	Multiplier           pgtype.Numeric
	BonusPoints          int64
	Amount               pgtype.Numeric
	ReasonCode           pgtype.Text
	Description          pgtype.Text
	BranchID             pgtype.UUID
	CreatedBy            pgtype.UUID
	RequestFingerprint   string
	Metadata             []byte
	CreatedAt            pgtype.Timestamptz
}

// InsertLedgerEntry returns the number of inserted rows: 0 means a unique constraint was hit.
func (q *Queries) InsertLedgerEntry(ctx context.Context, db DBTX, arg InsertLedgerEntryParams) (int64, error) {
	tag, err := db.Exec(ctx, insertLedgerEntry,
		arg.ID,
		arg.MembershipID,
		arg.UserID,
		arg.TenantID,
		arg.Kind,
		arg.Points,
		arg.TransactionReference,
		arg.ReversedEntryID,
		arg.RuleID,
		arg.BasePoints,
		arg.Multiplier,
		arg.BonusPoints,
		arg.Amount,
		arg.ReasonCode,
		arg.Description,
		arg.BranchID,
		arg.CreatedBy,
		arg.RequestFingerprint,
		arg.Metadata,
		arg.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getLedgerEntry = `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE id = $1`

func (q *Queries) GetLedgerEntry(ctx context.Context, db DBTX, id uuid.UUID) (LedgerEntry, error) {
	return scanLedgerEntry(db.QueryRow(ctx, getLedgerEntry, id))
}

const getLedgerEntryByReference = `SELECT ` + ledgerEntryColumns + `
FROM ledger_entries WHERE tenant_id = $1 AND transaction_reference = $2`

type GetLedgerEntryByReferenceParams struct {
	TenantID             uuid.UUID
	TransactionReference string
}

func (q *Queries) GetLedgerEntryByReference(ctx context.Context, db DBTX, arg GetLedgerEntryByReferenceParams) (LedgerEntry, error) {
	return scanLedgerEntry(db.QueryRow(ctx, getLedgerEntryByReference, arg.TenantID, arg.TransactionReference))
}

const listLedgerEntriesByMembership = `SELECT ` + ledgerEntryColumns + `
FROM ledger_entries WHERE membership_id = $1
ORDER BY created_at ASC, id ASC`

func (q *Queries) ListLedgerEntriesByMembership(ctx context.Context, db DBTX, membershipID uuid.UUID) ([]LedgerEntry, error) {
	return collectLedgerEntries(db.Query(ctx, listLedgerEntriesByMembership, membershipID))
}

const sumLedgerPoints = `SELECT COALESCE(SUM(points), 0)::bigint FROM ledger_entries WHERE membership_id = $1`

func (q *Queries) SumLedgerPoints(ctx context.Context, db DBTX, membershipID uuid.UUID) (int64, error) {
	var sum int64
	err := db.QueryRow(ctx, sumLedgerPoints, membershipID).Scan(&sum)
	return sum, err
}

const existsReversal = `SELECT EXISTS (SELECT 1 FROM ledger_entries WHERE reversed_entry_id = $1)`

func (q *Queries) ExistsReversal(ctx context.Context, db DBTX, entryID uuid.UUID) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, existsReversal, entryID).Scan(&exists)
	return exists, err
}

const listLedgerEntriesFirstPage = `SELECT ` + ledgerEntryColumns + `
FROM ledger_entries WHERE membership_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

type ListLedgerEntriesFirstPageParams struct {
	MembershipID uuid.UUID
	Limit        int32
}

func (q *Queries) ListLedgerEntriesFirstPage(ctx context.Context, db DBTX, arg ListLedgerEntriesFirstPageParams) ([]LedgerEntry, error) {
	return collectLedgerEntries(db.Query(ctx, listLedgerEntriesFirstPage, arg.MembershipID, arg.Limit))
}

const listLedgerEntriesKeyset = `SELECT ` + ledgerEntryColumns + `
FROM ledger_entries
WHERE membership_id = $1 AND (created_at, id) < ($2, $3)
ORDER BY created_at DESC, id DESC
LIMIT $4`

type ListLedgerEntriesKeysetParams struct {
	MembershipID uuid.UUID
	CreatedAt    time.Time
	ID           uuid.UUID
	Limit        int32
}

func (q *Queries) ListLedgerEntriesKeyset(ctx context.Context, db DBTX, arg ListLedgerEntriesKeysetParams) ([]LedgerEntry, error) {
	return collectLedgerEntries(db.Query(ctx, listLedgerEntriesKeyset, arg.MembershipID, arg.CreatedAt, arg.ID, arg.Limit))
}
