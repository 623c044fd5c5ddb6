package commands

//go:generate mockgen -source=points.go -destination=../../../tests/mock/commands/points_mock.go -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/pkg/fingerprint"
	"loyalty-ledger/internal/pkg/refid"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPointsOrAmount = errs.Wrap(errs.ErrInvalidRequest, "exactly one of points or amount must be provided")
	ErrBatchTooLarge  = errs.Wrap(errs.ErrInvalidRequest, "too many memberships in one batch")
)

type EarnRequest struct {
	TenantID     uuid.UUID
	MembershipID uuid.UUID
	Reference    string
	Points       *int64
	Amount       *decimal.Decimal
	// OccurredAt is the instant rules are evaluated at. Defaults to now.
	OccurredAt  *time.Time
	Description *string
	BranchID    *uuid.UUID
	Metadata    map[string]any
	ActorID     *uuid.UUID
}

type RedeemRequest struct {
	TenantID     uuid.UUID
	MembershipID uuid.UUID
	Reference    string
	Points       int64
	Description  *string
	BranchID     *uuid.UUID
	Metadata     map[string]any
	ActorID      *uuid.UUID
}

type ReverseRequest struct {
	TenantID   uuid.UUID
	EntryID    uuid.UUID
	ReasonCode string
	ActorID    *uuid.UUID
}

type AdjustRequest struct {
	TenantID     uuid.UUID
	MembershipID uuid.UUID
	Points       int64
	ReasonCode   string
	// Reference is generated when empty.
	Reference   string
	Description *string
	ActorID     *uuid.UUID
}

type ExpireRequest struct {
	TenantID     uuid.UUID
	MembershipID uuid.UUID
	Points       int64
	Reference    string
	ActorID      *uuid.UUID
}

// PointsResult is the membership state after a ledger operation.
// Entry is nil when nothing was appended.
type PointsResult struct {
	Entry       *ledger.Entry
	Membership  *membership.Membership
	TierName    *string
	TierChanged bool
}

type BatchFailure struct {
	MembershipID uuid.UUID
	Err          error
}

type BatchResult struct {
	Succeeded []*PointsResult
	Failed    []BatchFailure
}

type IntegrityReport struct {
	MembershipID    uuid.UUID
	StoredBalance   int64
	LedgerSum       int64
	ExpectedBalance int64
	EntryCount      int
}

func (r IntegrityReport) Consistent() bool {
	return r.StoredBalance == r.ExpectedBalance
}

type PointsCommands interface {
	Earn(ctx context.Context, req EarnRequest) (*PointsResult, error)
	Redeem(ctx context.Context, req RedeemRequest) (*PointsResult, error)
	Reverse(ctx context.Context, req ReverseRequest) (*PointsResult, error)
	Adjust(ctx context.Context, req AdjustRequest) (*PointsResult, error)
	Expire(ctx context.Context, req ExpireRequest) (*PointsResult, error)
	Recalculate(ctx context.Context, tenantID, membershipID uuid.UUID) (*PointsResult, error)
	RecalculateBatch(ctx context.Context, tenantID uuid.UUID, membershipIDs []uuid.UUID) (*BatchResult, error)
	ValidateIntegrity(ctx context.Context, tenantID, membershipID uuid.UUID) (*IntegrityReport, error)

	// Deprecated: use Adjust. Appends a positive adjustment.
	AddPoints(ctx context.Context, tenantID, membershipID uuid.UUID, points int64, reasonCode string) (*PointsResult, error)
	// Deprecated: use Adjust or Redeem. Appends a negative adjustment.
	SubtractPoints(ctx context.Context, tenantID, membershipID uuid.UUID, points int64, reasonCode string) (*PointsResult, error)
}

type pointsUseCaseImpl struct {
	uow          shared.UnitOfWork
	clock        clock.Clock
	metrics      Metrics
	logger       *slog.Logger
	maxBatchSize int
}

func NewPointsUseCase(
	uow shared.UnitOfWork,
	clk clock.Clock,
	metrics Metrics,
	logger *slog.Logger,
	cfg config.Config,
) PointsCommands {
	if metrics == nil {
		metrics = NopMetrics()
	}
	return &pointsUseCaseImpl{
		uow:          uow,
		clock:        clk,
		metrics:      metrics,
		logger:       logger,
		maxBatchSize: cfg.Ledger.MaxBatchSize,
	}
}

type earnFingerprint struct {
	Op           string           `json:"op"`
	MembershipID uuid.UUID        `json:"membership_id"`
	Points       *int64           `json:"points,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	Description  *string          `json:"description,omitempty"`
	BranchID     *uuid.UUID       `json:"branch_id,omitempty"`
	Metadata     map[string]any   `json:"metadata,omitempty"`
	OccurredAt   *time.Time       `json:"occurred_at,omitempty"`
}

func (uc *pointsUseCaseImpl) Earn(ctx context.Context, req EarnRequest) (*PointsResult, error) {
	if (req.Points == nil) == (req.Amount == nil) {
		return nil, ErrPointsOrAmount
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, membership.ErrNonPositiveAmount
		}
		if err := rule.ValidateAmount(*req.Amount); err != nil {
			return nil, err
		}
	}
	if req.Points != nil {
		if err := checkPoints(*req.Points); err != nil {
			return nil, err
		}
	}

	var occurredAt *time.Time
	if req.OccurredAt != nil {
		utc := req.OccurredAt.UTC()
		occurredAt = &utc
	}
	fp, err := fingerprint.Of(earnFingerprint{
		Op:           string(ledger.KindEarn),
		MembershipID: req.MembershipID,
		Points:       req.Points,
		Amount:       req.Amount,
		Description:  req.Description,
		BranchID:     req.BranchID,
		Metadata:     req.Metadata,
		OccurredAt:   occurredAt,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrInvalidRequest, "metadata is not serializable")
	}

	var result *PointsResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := uc.lockMembership(ctx, tx, req.TenantID, req.MembershipID)
		if err != nil {
			return err
		}
		if err := m.EnsureActive(); err != nil {
			return err
		}

		now := uc.clock.Now()
		points, calc, err := uc.earnedPoints(ctx, tx, m, req, now)
		if err != nil {
			return err
		}

		entry, err := ledger.NewEarn(ledger.Draft{
			MembershipID: m.ID(),
			UserID:       m.UserID(),
			TenantID:     m.TenantID(),
			Reference:    req.Reference,
			Fingerprint:  fp,
			Description:  req.Description,
			BranchID:     req.BranchID,
			CreatedBy:    req.ActorID,
			Metadata:     req.Metadata,
			Now:          now,
		}, points, calc)
		if err != nil {
			return err
		}

		if req.Amount != nil {
			if err := m.RecordPurchase(*req.Amount, now); err != nil {
				return err
			}
		} else {
			m.RecordActivity(now)
		}

		result, err = uc.applyLedgerEntry(ctx, tx, m, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observe(result)
	return result, nil
}

func (uc *pointsUseCaseImpl) earnedPoints(
	ctx context.Context,
	tx shared.Tx,
	m *membership.Membership,
	req EarnRequest,
	now time.Time,
) (int64, ledger.Calculation, error) {
	if req.Points != nil {
		return *req.Points, ledger.Calculation{BasePoints: *req.Points}, nil
	}

	rules, err := tx.Rules().FindActiveByTenantAndType(ctx, m.TenantID(), rule.TypePurchase)
	if err != nil {
		return 0, ledger.Calculation{}, err
	}

	at := now
	if req.OccurredAt != nil {
		at = req.OccurredAt.In(now.Location())
	}
	b, err := rule.Evaluate(rules, *req.Amount, at)
	if err != nil {
		return 0, ledger.Calculation{}, err
	}
	return b.TotalPoints, ledger.Calculation{
		RuleID:      b.RuleID,
		BasePoints:  b.BasePoints,
		Multiplier:  b.Multiplier,
		BonusPoints: b.BonusPoints,
		Amount:      req.Amount,
	}, nil
}

type redeemFingerprint struct {
	Op           string         `json:"op"`
	MembershipID uuid.UUID      `json:"membership_id"`
	Points       int64          `json:"points"`
	Description  *string        `json:"description,omitempty"`
	BranchID     *uuid.UUID     `json:"branch_id,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

func (uc *pointsUseCaseImpl) Redeem(ctx context.Context, req RedeemRequest) (*PointsResult, error) {
	if err := checkPoints(req.Points); err != nil {
		return nil, err
	}

	fp, err := fingerprint.Of(redeemFingerprint{
		Op:           string(ledger.KindRedeem),
		MembershipID: req.MembershipID,
		Points:       req.Points,
		Description:  req.Description,
		BranchID:     req.BranchID,
		Metadata:     req.Metadata,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrInvalidRequest, "metadata is not serializable")
	}

	var result *PointsResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := uc.lockMembership(ctx, tx, req.TenantID, req.MembershipID)
		if err != nil {
			return err
		}
		if err := m.EnsureActive(); err != nil {
			return err
		}

		now := uc.clock.Now()
		if _, err := uc.refreshBalance(ctx, tx, m, now); err != nil {
			return err
		}
		if err := m.EnsureCanSpend(req.Points); err != nil {
			return err
		}

		entry, err := ledger.NewRedeem(ledger.Draft{
			MembershipID: m.ID(),
			UserID:       m.UserID(),
			TenantID:     m.TenantID(),
			Reference:    req.Reference,
			Fingerprint:  fp,
			Description:  req.Description,
			BranchID:     req.BranchID,
			CreatedBy:    req.ActorID,
			Metadata:     req.Metadata,
			Now:          now,
		}, req.Points)
		if err != nil {
			return err
		}
		m.RecordActivity(now)

		result, err = uc.applyLedgerEntry(ctx, tx, m, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observe(result)
	return result, nil
}

func (uc *pointsUseCaseImpl) Reverse(ctx context.Context, req ReverseRequest) (*PointsResult, error) {
	var result *PointsResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		original, err := tx.Ledger().FindByID(ctx, req.EntryID)
		if err != nil {
			return notFoundAs(err, ledger.ErrEntryNotFound)
		}
		if original.TenantID() != req.TenantID {
			return ledger.ErrEntryNotFound
		}
		if !original.Kind().Reversible() {
			return ledger.ErrNotReversible
		}

		m, err := uc.lockMembership(ctx, tx, req.TenantID, original.MembershipID())
		if err != nil {
			return err
		}

		reversed, err := tx.Ledger().HasReversal(ctx, original.ID())
		if err != nil {
			return err
		}
		if reversed {
			return ledger.ErrAlreadyReversed
		}

		now := uc.clock.Now()
		sum, err := uc.refreshBalance(ctx, tx, m, now)
		if err != nil {
			return err
		}
		if sum-original.Points() < 0 {
			return errs.Wrapf(ledger.ErrReversalNegative, "balance %d, reversal %d", sum, -original.Points())
		}

		entry, err := ledger.NewReversal(original, ledger.Draft{
			Reference: refid.New(refid.PrefixReversal),
			CreatedBy: req.ActorID,
			Now:       now,
		}, req.ReasonCode)
		if err != nil {
			return err
		}

		result, err = uc.applyLedgerEntry(ctx, tx, m, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observe(result)
	return result, nil
}

func (uc *pointsUseCaseImpl) Adjust(ctx context.Context, req AdjustRequest) (*PointsResult, error) {
	if req.Points == 0 {
		return nil, ledger.ErrZeroAdjustment
	}
	if req.Points > ledger.MaxEntryPoints || req.Points < -ledger.MaxEntryPoints {
		return nil, ledger.ErrPointsOutOfRange
	}
	reference := req.Reference
	if reference == "" {
		reference = refid.New(refid.PrefixAdjustment)
	}

	var result *PointsResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := uc.lockMembership(ctx, tx, req.TenantID, req.MembershipID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		sum, err := uc.refreshBalance(ctx, tx, m, now)
		if err != nil {
			return err
		}
		if sum+req.Points < 0 {
			return errs.Wrapf(ledger.ErrAdjustmentNegative, "balance %d, adjustment %d", sum, req.Points)
		}

		entry, err := ledger.NewAdjustment(ledger.Draft{
			MembershipID: m.ID(),
			UserID:       m.UserID(),
			TenantID:     m.TenantID(),
			Reference:    reference,
			Description:  req.Description,
			CreatedBy:    req.ActorID,
			Now:          now,
		}, req.Points, req.ReasonCode)
		if err != nil {
			return err
		}

		result, err = uc.applyLedgerEntry(ctx, tx, m, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observe(result)
	return result, nil
}

// Expire clamps the requested points to the current balance.
// Nothing is appended when the clamped amount is zero.
func (uc *pointsUseCaseImpl) Expire(ctx context.Context, req ExpireRequest) (*PointsResult, error) {
	if err := checkPoints(req.Points); err != nil {
		return nil, err
	}
	reference := req.Reference
	if reference == "" {
		reference = refid.New(refid.PrefixExpiration)
	}

	var result *PointsResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := uc.lockMembership(ctx, tx, req.TenantID, req.MembershipID)
		if err != nil {
			return err
		}

		now := uc.clock.Now()
		if _, err := uc.refreshBalance(ctx, tx, m, now); err != nil {
			return err
		}
		points := min(req.Points, m.Balance())
		if points == 0 {
			result, err = uc.project(ctx, tx, m)
			return err
		}

		entry, err := ledger.NewExpiration(ledger.Draft{
			MembershipID: m.ID(),
			UserID:       m.UserID(),
			TenantID:     m.TenantID(),
			Reference:    reference,
			CreatedBy:    req.ActorID,
			Now:          now,
		}, points)
		if err != nil {
			return err
		}

		result, err = uc.applyLedgerEntry(ctx, tx, m, entry)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observe(result)
	return result, nil
}

func (uc *pointsUseCaseImpl) Recalculate(ctx context.Context, tenantID, membershipID uuid.UUID) (*PointsResult, error) {
	var result *PointsResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := uc.lockMembership(ctx, tx, tenantID, membershipID)
		if err != nil {
			return err
		}
		result, err = uc.project(ctx, tx, m)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.observe(result)
	return result, nil
}

// RecalculateBatch runs one transaction per membership so a failure only affects its own membership.
func (uc *pointsUseCaseImpl) RecalculateBatch(ctx context.Context, tenantID uuid.UUID, membershipIDs []uuid.UUID) (*BatchResult, error) {
	if uc.maxBatchSize > 0 && len(membershipIDs) > uc.maxBatchSize {
		return nil, errs.Wrapf(ErrBatchTooLarge, "got %d, max %d", len(membershipIDs), uc.maxBatchSize)
	}

	out := &BatchResult{}
	seen := make(map[uuid.UUID]struct{}, len(membershipIDs))
	for _, id := range membershipIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if err := ctx.Err(); err != nil {
			out.Failed = append(out.Failed, BatchFailure{MembershipID: id, Err: err})
			continue
		}

		res, err := uc.Recalculate(ctx, tenantID, id)
		if err != nil {
			uc.logger.Warn("recalculation failed", "membership_id", id, "error", err)
			out.Failed = append(out.Failed, BatchFailure{MembershipID: id, Err: err})
			continue
		}
		out.Succeeded = append(out.Succeeded, res)
	}
	return out, nil
}

func (uc *pointsUseCaseImpl) ValidateIntegrity(ctx context.Context, tenantID, membershipID uuid.UUID) (*IntegrityReport, error) {
	var report *IntegrityReport
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Memberships().FindByID(ctx, membershipID)
		if err != nil {
			return notFoundAs(err, membership.ErrMembershipNotFound)
		}
		if m.TenantID() != tenantID {
			return membership.ErrMembershipNotFound
		}

		entries, err := tx.Ledger().FindByMembership(ctx, m.ID())
		if err != nil {
			return err
		}
		sum, err := ledger.Sum(entries)
		if err != nil {
			return err
		}
		report = &IntegrityReport{
			MembershipID:    m.ID(),
			StoredBalance:   m.Balance(),
			LedgerSum:       sum,
			ExpectedBalance: ledger.Project(sum),
			EntryCount:      len(entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !report.Consistent() {
		uc.logger.Warn("balance drift detected",
			"membership_id", report.MembershipID,
			"stored", report.StoredBalance,
			"expected", report.ExpectedBalance)
	}
	return report, nil
}

func (uc *pointsUseCaseImpl) AddPoints(ctx context.Context, tenantID, membershipID uuid.UUID, points int64, reasonCode string) (*PointsResult, error) {
	if points <= 0 {
		return nil, ledger.ErrNonPositivePoints
	}
	return uc.Adjust(ctx, AdjustRequest{TenantID: tenantID, MembershipID: membershipID, Points: points, ReasonCode: reasonCode})
}

func (uc *pointsUseCaseImpl) SubtractPoints(ctx context.Context, tenantID, membershipID uuid.UUID, points int64, reasonCode string) (*PointsResult, error) {
	if points <= 0 {
		return nil, ledger.ErrNonPositivePoints
	}
	return uc.Adjust(ctx, AdjustRequest{TenantID: tenantID, MembershipID: membershipID, Points: -points, ReasonCode: reasonCode})
}

// applyLedgerEntry is the only path that changes a balance:
// append, project the ledger sum, re-tier, persist the membership.
func (uc *pointsUseCaseImpl) applyLedgerEntry(
	ctx context.Context,
	tx shared.Tx,
	m *membership.Membership,
	entry *ledger.Entry,
) (*PointsResult, error) {
	sum, err := tx.Ledger().SumPoints(ctx, m.ID())
	if err != nil {
		return nil, err
	}
	if _, err := ledger.AddPoints(sum, entry.Points()); err != nil {
		return nil, errs.Wrapf(err, "balance %d, entry %d", sum, entry.Points())
	}

	if err := tx.Ledger().Append(ctx, entry); err != nil {
		var conflict *errs.ConflictError
		if errs.As(err, &conflict) {
			uc.metrics.ReferenceConflict(conflict.Replay)
		}
		return nil, err
	}

	result, err := uc.project(ctx, tx, m)
	if err != nil {
		return nil, err
	}
	result.Entry = entry
	return result, nil
}

func (uc *pointsUseCaseImpl) project(ctx context.Context, tx shared.Tx, m *membership.Membership) (*PointsResult, error) {
	now := uc.clock.Now()
	if _, err := uc.refreshBalance(ctx, tx, m, now); err != nil {
		return nil, err
	}

	t, err := tx.Tiers().FindForBalance(ctx, m.TenantID(), m.Balance())
	if err != nil {
		return nil, err
	}
	changed := m.AssignTier(t, now)

	if err := tx.Memberships().Update(ctx, m); err != nil {
		return nil, err
	}

	result := &PointsResult{Membership: m, TierChanged: changed}
	if t != nil {
		name := t.Name()
		result.TierName = &name
	}
	return result, nil
}

// refreshBalance projects the ledger onto m in memory and returns the raw sum.
func (uc *pointsUseCaseImpl) refreshBalance(ctx context.Context, tx shared.Tx, m *membership.Membership, now time.Time) (int64, error) {
	sum, err := tx.Ledger().SumPoints(ctx, m.ID())
	if err != nil {
		return 0, err
	}
	m.ProjectBalance(sum, now)
	return sum, nil
}

// lockMembership serializes ledger writes per membership for the rest of the transaction.
func (uc *pointsUseCaseImpl) lockMembership(ctx context.Context, tx shared.Tx, tenantID, membershipID uuid.UUID) (*membership.Membership, error) {
	m, err := tx.Memberships().FindByIDForUpdate(ctx, membershipID)
	if err != nil {
		return nil, notFoundAs(err, membership.ErrMembershipNotFound)
	}
	if m.TenantID() != tenantID {
		return nil, membership.ErrMembershipNotFound
	}
	return m, nil
}

func (uc *pointsUseCaseImpl) observe(result *PointsResult) {
	if result == nil {
		return
	}
	if result.Entry != nil {
		uc.metrics.EntryApplied(result.Entry.Kind(), result.Entry.Points())
	}
	if result.TierChanged {
		uc.metrics.TierChanged()
	}
}

// checkPoints validates a positive point count given by the caller.
func checkPoints(points int64) error {
	if points <= 0 {
		return ledger.ErrNonPositivePoints
	}
	if points > ledger.MaxEntryPoints {
		return ledger.ErrPointsOutOfRange
	}
	return nil
}

func notFoundAs(err, notFound error) error {
	if errs.Is(err, errs.ErrNotFound) {
		return notFound
	}
	return err
}
