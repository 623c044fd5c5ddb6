package queries

//go:generate mockgen -source=ledger.go -destination=../../../tests/mock/queries/ledger_mock.go -package=queriesmock

import (
	"context"
	"time"

	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const RoleAdmin = "admin"

var (
	ErrMembershipNotFound   = errs.Wrap(errs.ErrNotFound, "membership not found")
	ErrSubscriptionNotFound = errs.Wrap(errs.ErrNotFound, "subscription not found")
	ErrInvalidCursor        = errs.Wrap(errs.ErrInvalidRequest, "invalid cursor")
)

// Actor is the authenticated caller a query is scoped to.
type Actor struct {
	TenantID uuid.UUID
	Role     string
}

type MembershipView struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	UserID           uuid.UUID       `json:"user_id"`
	ExternalCode     string          `json:"external_code"`
	Balance          int64           `json:"balance"`
	TierID           *uuid.UUID      `json:"tier_id,omitempty"`
	TierName         *string         `json:"tier_name,omitempty"`
	// NextTierName and PointsToNextTier are empty in the top band.
	NextTierName     *string         `json:"next_tier_name,omitempty"`
	PointsToNextTier *int64          `json:"points_to_next_tier,omitempty"`
	Status           string          `json:"status"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	TotalVisits      int64           `json:"total_visits"`
	LastActivityAt   *time.Time      `json:"last_activity_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type TransactionView struct {
	ID              uuid.UUID        `json:"id"`
	MembershipID    uuid.UUID        `json:"membership_id"`
	Kind            string           `json:"kind"`
	Points          int64            `json:"points"`
	Reference       string           `json:"transaction_reference"`
	ReversedEntryID *uuid.UUID       `json:"reversed_entry_id,omitempty"`
	RuleID          *uuid.UUID       `json:"rule_id,omitempty"`
	BasePoints      int64            `json:"base_points"`
	Multiplier      *decimal.Decimal `json:"multiplier,omitempty"`
	BonusPoints     int64            `json:"bonus_points"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	ReasonCode      *string          `json:"reason_code,omitempty"`
	Description     *string          `json:"description,omitempty"`
	BranchID        *uuid.UUID       `json:"branch_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// UsageRow is the stored side of a subscription's usage.
type UsageRow struct {
	SubscriptionID uuid.UUID
	PlanSlug       string
	Counter        usage.Counter
}

type UsageView struct {
	SubscriptionID uuid.UUID    `json:"subscription_id"`
	PlanSlug       string       `json:"plan"`
	Counts         usage.Limits `json:"counts"`
	Limits         usage.Limits `json:"limits"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

type LedgerReadStore interface {
	FindMembership(ctx context.Context, id uuid.UUID) (*MembershipView, error)
	// Transactions are returned newest first.
	ListTransactionsFirstPage(ctx context.Context, membershipID uuid.UUID, limit int32) ([]*TransactionView, error)
	ListTransactionsKeyset(ctx context.Context, membershipID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*TransactionView, error)
	FindUsage(ctx context.Context, subscriptionID uuid.UUID) (*UsageRow, error)
	FindTenantSubscription(ctx context.Context, tenantID uuid.UUID) (uuid.UUID, error)
	FindActiveTiers(ctx context.Context, tenantID uuid.UUID) ([]*tier.Tier, error)
}

type PlanLimits interface {
	LimitsFor(slug string) (usage.Limits, error)
}

type LedgerQueries interface {
	GetMembership(ctx context.Context, actor Actor, id uuid.UUID) (*MembershipView, error)
	ListTransactions(ctx context.Context, actor Actor, membershipID uuid.UUID, cursor *Cursor, limit int) ([]*TransactionView, *Cursor, error)
	GetUsage(ctx context.Context, actor Actor, subscriptionID uuid.UUID) (*UsageView, error)
}

type ledgerQueriesImpl struct {
	repo  LedgerReadStore
	plans PlanLimits
}

func NewLedgerQueries(repo LedgerReadStore, plans PlanLimits) LedgerQueries {
	return &ledgerQueriesImpl{repo: repo, plans: plans}
}

func (q *ledgerQueriesImpl) GetMembership(ctx context.Context, actor Actor, id uuid.UUID) (*MembershipView, error) {
	mv, err := q.ownMembership(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	tiers, err := q.repo.FindActiveTiers(ctx, mv.TenantID)
	if err != nil {
		return nil, err
	}
	if next := tier.Next(tiers, mv.Balance); next != nil {
		name := next.Name()
		missing := next.MinPoints() - mv.Balance
		mv.NextTierName = &name
		mv.PointsToNextTier = &missing
	}
	return mv, nil
}

func (q *ledgerQueriesImpl) ownMembership(ctx context.Context, actor Actor, id uuid.UUID) (*MembershipView, error) {
	mv, err := q.repo.FindMembership(ctx, id)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, err
	}
	// Another tenant's membership is reported as missing.
	if mv.TenantID != actor.TenantID {
		return nil, ErrMembershipNotFound
	}
	return mv, nil
}

func (q *ledgerQueriesImpl) ListTransactions(
	ctx context.Context,
	actor Actor,
	membershipID uuid.UUID,
	cursor *Cursor,
	limit int,
) ([]*TransactionView, *Cursor, error) {
	if _, err := q.ownMembership(ctx, actor, membershipID); err != nil {
		return nil, nil, err
	}

	limit = ValidateLimit(limit)
	var rows []*TransactionView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.ListTransactionsFirstPage(ctx, membershipID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.ListTransactionsKeyset(ctx, membershipID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *ledgerQueriesImpl) GetUsage(ctx context.Context, actor Actor, subscriptionID uuid.UUID) (*UsageView, error) {
	if actor.Role != RoleAdmin {
		own, err := q.repo.FindTenantSubscription(ctx, actor.TenantID)
		if err != nil && !errs.Is(err, errs.ErrNotFound) {
			return nil, err
		}
		if err != nil || own != subscriptionID {
			return nil, ErrSubscriptionNotFound
		}
	}

	row, err := q.repo.FindUsage(ctx, subscriptionID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	limits, err := q.plans.LimitsFor(row.PlanSlug)
	if err != nil {
		return nil, err
	}

	c := row.Counter
	return &UsageView{
		SubscriptionID: row.SubscriptionID,
		PlanSlug:       row.PlanSlug,
		Counts: usage.Limits{
			Tenants:   c.Tenants,
			Branches:  c.Branches,
			Customers: c.Customers,
			Rewards:   c.Rewards,
		},
		Limits:    limits,
		UpdatedAt: c.UpdatedAt,
	}, nil
}
