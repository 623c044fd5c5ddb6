package repository

import (
	"context"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository/converter"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type LedgerQueries interface {
	InsertLedgerEntry(ctx context.Context, db query.DBTX, arg query.InsertLedgerEntryParams) (int64, error)
	GetLedgerEntry(ctx context.Context, db query.DBTX, id uuid.UUID) (query.LedgerEntry, error)
	GetLedgerEntryByReference(ctx context.Context, db query.DBTX, arg query.GetLedgerEntryByReferenceParams) (query.LedgerEntry, error)
	ListLedgerEntriesByMembership(ctx context.Context, db query.DBTX, membershipID uuid.UUID) ([]query.LedgerEntry, error)
	SumLedgerPoints(ctx context.Context, db query.DBTX, membershipID uuid.UUID) (int64, error)
	ExistsReversal(ctx context.Context, db query.DBTX, entryID uuid.UUID) (bool, error)
}

type LedgerRepository struct {
	queries LedgerQueries
	db      query.DBTX
}

func NewLedgerRepository(queries LedgerQueries, db query.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: queries, db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, e *ledger.Entry) error {
	params, err := converter.LedgerEntryToParams(e)
	if err != nil {
		return errs.Wrap(errs.ErrInvalidRequest, "metadata is not serializable")
	}

	inserted, err := r.queries.InsertLedgerEntry(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to append ledger entry", err)
	}
	if inserted == 1 {
		return nil
	}
	return r.explainConflict(ctx, e)
}

// explainConflict tells a reused reference apart from a second reversal of the same entry.
func (r *LedgerRepository) explainConflict(ctx context.Context, e *ledger.Entry) error {
	existing, err := r.queries.GetLedgerEntryByReference(ctx, r.db, query.GetLedgerEntryByReferenceParams{
		TenantID:             e.TenantID(),
		TransactionReference: e.Reference(),
	})
	if err == nil {
		return &errs.ConflictError{
			Reference:     e.Reference(),
			ExistingEntry: existing.ID.String(),
			Replay:        existing.RequestFingerprint != "" && existing.RequestFingerprint == e.Fingerprint(),
		}
	}
	if !pgconv.IsNoRows(err) {
		return infra.WrapRepoErr("failed to load conflicting ledger entry", err)
	}
	if e.ReversedEntryID() != nil {
		return ledger.ErrAlreadyReversed
	}
	return infra.WrapRepoErr("ledger entry was not inserted", nil, infra.KindDuplicateKey)
}

func (r *LedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error) {
	row, err := r.queries.GetLedgerEntry(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get ledger entry", err)
	}
	return toLedgerEntry(row)
}

func (r *LedgerRepository) FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*ledger.Entry, error) {
	row, err := r.queries.GetLedgerEntryByReference(ctx, r.db, query.GetLedgerEntryByReferenceParams{
		TenantID:             tenantID,
		TransactionReference: reference,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get ledger entry by reference", err)
	}
	return toLedgerEntry(row)
}

func (r *LedgerRepository) FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*ledger.Entry, error) {
	rows, err := r.queries.ListLedgerEntriesByMembership(ctx, r.db, membershipID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list ledger entries", err)
	}
	out := make([]*ledger.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := toLedgerEntry(row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *LedgerRepository) SumPoints(ctx context.Context, membershipID uuid.UUID) (int64, error) {
	sum, err := r.queries.SumLedgerPoints(ctx, r.db, membershipID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to sum ledger points", err)
	}
	return sum, nil
}

func (r *LedgerRepository) HasReversal(ctx context.Context, entryID uuid.UUID) (bool, error) {
	exists, err := r.queries.ExistsReversal(ctx, r.db, entryID)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reversal", err)
	}
	return exists, nil
}

func toLedgerEntry(row query.LedgerEntry) (*ledger.Entry, error) {
	e, err := converter.LedgerEntryFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert ledger entry row", err, infra.KindDBFailure)
	}
	return e, nil
}
