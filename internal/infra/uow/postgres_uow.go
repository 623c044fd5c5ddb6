package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/infra/repository"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"

	maxRetries  = 3
	baseBackoff = 100 * time.Millisecond
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	q      *query.Queries
	hook   *repository.UsageHook
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, q *query.Queries, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:   pool,
		q:      q,
		hook:   repository.NewUsageHook(q, logger),
		logger: logger,
	}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes.
// Ledger writes serialize on the membership row lock taken inside fn.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Read-only transaction for consistent multi-table snapshots
func (u *PostgresUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runReadOnlyTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(errs.Wrap(err, "failed to begin transaction"), errs.ErrStorageFailure)
		}

		err = fn(ctx, u.newTx(pgxTx))
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(errs.Wrap(err, "failed to commit transaction"), errs.ErrStorageFailure)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !isRetryableError(err) {
			return err
		}
		if attempt == maxRetries {
			u.logger.Error("transaction failed after max retries",
				"attempts", attempt+1,
				"error", err.Error())
			return errs.Mark(errs.Wrap(err, "transaction failed after max retries"), errs.ErrStorageFailure)
		}

		waitTime := calculateBackoff(attempt, baseBackoff)
		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
	return nil
}

func (u *PostgresUoW) runReadOnlyTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, options)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to begin read-only transaction"), errs.ErrStorageFailure)
	}

	defer func() {
		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("failed to rollback read-only transaction", "error", rollbackErr.Error())
			}
		}
	}()

	if err := fn(ctx, u.newTx(pgxTx)); err != nil {
		return err
	}
	return pgxTx.Commit(ctx)
}

func (u *PostgresUoW) newTx(dbtx query.DBTX) *pgTx {
	return &pgTx{dbtx: dbtx, uow: u}
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx query.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	membershipRepo *repository.MembershipRepository
	ledgerRepo     *repository.LedgerRepository
	ruleStore      *repository.RuleStore
	tierStore      *repository.TierStore
	usageRepo      *repository.UsageCounterRepository
	tenantRepo     *repository.TenantRepository
	branchRepo     *repository.BranchRepository
}

func (t *pgTx) Memberships() shared.MembershipRepository {
	return t.memberships()
}

func (t *pgTx) memberships() *repository.MembershipRepository {
	if t.membershipRepo == nil {
		t.membershipRepo = repository.NewMembershipRepository(t.uow.q, t.dbtx, t.uow.hook)
	}
	return t.membershipRepo
}

func (t *pgTx) Ledger() shared.LedgerRepository {
	if t.ledgerRepo == nil {
		t.ledgerRepo = repository.NewLedgerRepository(t.uow.q, t.dbtx)
	}
	return t.ledgerRepo
}

func (t *pgTx) Rules() shared.RuleReadStore {
	if t.ruleStore == nil {
		t.ruleStore = repository.NewRuleStore(t.uow.q, t.dbtx)
	}
	return t.ruleStore
}

func (t *pgTx) Tiers() shared.TierReadStore {
	if t.tierStore == nil {
		t.tierStore = repository.NewTierStore(t.uow.q, t.dbtx)
	}
	return t.tierStore
}

func (t *pgTx) Usage() shared.UsageCounterRepository {
	if t.usageRepo == nil {
		t.usageRepo = repository.NewUsageCounterRepository(t.uow.q, t.dbtx)
	}
	return t.usageRepo
}

func (t *pgTx) Tenants() shared.TenantRepository {
	if t.tenantRepo == nil {
		t.tenantRepo = repository.NewTenantRepository(t.uow.q, t.dbtx, t.uow.hook, t.memberships(), t.branches())
	}
	return t.tenantRepo
}

func (t *pgTx) Branches() shared.BranchRepository {
	return t.branches()
}

func (t *pgTx) branches() *repository.BranchRepository {
	if t.branchRepo == nil {
		t.branchRepo = repository.NewBranchRepository(t.uow.q, t.dbtx, t.uow.hook)
	}
	return t.branchRepo
}
