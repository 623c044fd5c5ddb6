package membership

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/pkg/errs"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}

const maxExternalCodeLength = 64

var (
	ErrMembershipNotFound   = errs.Wrap(errs.ErrNotFound, "membership not found")
	ErrMembershipNotActive  = errs.Wrap(errs.ErrInvalidState, "membership is not active")
	ErrInvalidStatus        = errs.Wrap(errs.ErrInvalidRequest, "unknown membership status")
	ErrExternalCodeRequired = errs.Wrap(errs.ErrInvalidRequest, "external code is required")
	ErrExternalCodeTooLong  = errs.Wrap(errs.ErrInvalidRequest, "external code exceeds 64 characters")
	ErrNonPositiveAmount    = errs.Wrap(errs.ErrInvalidRequest, "purchase amount must be greater than 0")
)

// Membership is the read model of a customer's standing in one tenant.
// Its balance is a projection of the ledger and can only be replaced by ProjectBalance.
type Membership struct {
	id             uuid.UUID
	tenantID       uuid.UUID
	userID         uuid.UUID
	externalCode   string
	balance        int64
	tierID         *uuid.UUID
	status         Status
	totalSpent     decimal.Decimal
	totalVisits    int64
	lastActivityAt *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func New(tenantID, userID uuid.UUID, externalCode string, now time.Time) (*Membership, error) {
	code := strings.TrimSpace(externalCode)
	if code == "" {
		return nil, ErrExternalCodeRequired
	}
	if len(code) > maxExternalCodeLength {
		return nil, ErrExternalCodeTooLong
	}
	return &Membership{
		id:           uuid.New(),
		tenantID:     tenantID,
		userID:       userID,
		externalCode: code,
		status:       StatusActive,
		totalSpent:   decimal.Zero,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

type Attributes struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	UserID         uuid.UUID
	ExternalCode   string
	Balance        int64
	TierID         *uuid.UUID
	Status         Status
	TotalSpent     decimal.Decimal
	TotalVisits    int64
	LastActivityAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func Reconstruct(a Attributes) *Membership {
	return &Membership{
		id:             a.ID,
		tenantID:       a.TenantID,
		userID:         a.UserID,
		externalCode:   a.ExternalCode,
		balance:        a.Balance,
		tierID:         a.TierID,
		status:         a.Status,
		totalSpent:     a.TotalSpent,
		totalVisits:    a.TotalVisits,
		lastActivityAt: a.LastActivityAt,
		createdAt:      a.CreatedAt,
		updatedAt:      a.UpdatedAt,
	}
}

func (m *Membership) ID() uuid.UUID               { return m.id }
func (m *Membership) TenantID() uuid.UUID         { return m.tenantID }
func (m *Membership) UserID() uuid.UUID           { return m.userID }
func (m *Membership) ExternalCode() string        { return m.externalCode }
func (m *Membership) Balance() int64              { return m.balance }
func (m *Membership) TierID() *uuid.UUID          { return m.tierID }
func (m *Membership) Status() Status              { return m.status }
func (m *Membership) TotalSpent() decimal.Decimal { return m.totalSpent }
func (m *Membership) TotalVisits() int64          { return m.totalVisits }
func (m *Membership) LastActivityAt() *time.Time  { return m.lastActivityAt }
func (m *Membership) CreatedAt() time.Time        { return m.createdAt }
func (m *Membership) UpdatedAt() time.Time        { return m.updatedAt }
func (m *Membership) IsActive() bool              { return m.status == StatusActive }

func (m *Membership) EnsureActive() error {
	if !m.IsActive() {
		return errs.Wrapf(ErrMembershipNotActive, "status %s", m.status)
	}
	return nil
}

// EnsureCanSpend fails with InsufficientBalance when points exceed the balance.
func (m *Membership) EnsureCanSpend(points int64) error {
	if points > m.balance {
		return errs.NewInsufficientBalance(m.balance, points)
	}
	return nil
}

// ProjectBalance replaces the balance with the projection of the ledger sum.
func (m *Membership) ProjectBalance(ledgerSum int64, now time.Time) {
	projected := ledger.Project(ledgerSum)
	if projected != m.balance {
		m.balance = projected
		m.updatedAt = now
	}
}

// AssignTier moves the membership into t (nil clears the tier) and reports whether it changed.
func (m *Membership) AssignTier(t *tier.Tier, now time.Time) bool {
	var next *uuid.UUID
	if t != nil {
		id := t.ID()
		next = &id
	}
	if sameID(m.tierID, next) {
		return false
	}
	m.tierID = next
	m.updatedAt = now
	return true
}

func (m *Membership) RecordPurchase(amount decimal.Decimal, now time.Time) error {
	if !amount.IsPositive() {
		return ErrNonPositiveAmount
	}
	m.totalSpent = m.totalSpent.Add(amount)
	m.totalVisits++
	m.touch(now)
	return nil
}

func (m *Membership) RecordActivity(now time.Time) {
	m.touch(now)
}

func (m *Membership) ChangeStatus(status Status, now time.Time) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if m.status != status {
		m.status = status
		m.updatedAt = now
	}
	return nil
}

func (m *Membership) touch(now time.Time) {
	t := now
	m.lastActivityAt = &t
	m.updatedAt = now
}

func sameID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
