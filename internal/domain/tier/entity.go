package tier

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loyalty-ledger/internal/pkg/errs"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrTierNotFound     = errs.Wrap(errs.ErrNotFound, "tier not found")
	ErrInvalidPointBand = errs.Wrap(errs.ErrInvalidRequest, "tier max points must be greater than min points")
)

// Tier is a band of balances [minPoints, maxPoints). A nil maxPoints is unbounded above.
type Tier struct {
	id         uuid.UUID
	tenantID   uuid.UUID
	name       string
	minPoints  int64
	maxPoints  *int64
	priority   int
	multiplier decimal.Decimal
	status     Status
}

type Attributes struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	MinPoints  int64
	MaxPoints  *int64
	Priority   int
	Multiplier decimal.Decimal
	Status     Status
}

func Reconstruct(a Attributes) (*Tier, error) {
	if a.MaxPoints != nil && *a.MaxPoints <= a.MinPoints {
		return nil, ErrInvalidPointBand
	}
	status := a.Status
	if status == "" {
		status = StatusActive
	}
	mult := a.Multiplier
	if mult.IsZero() {
		mult = decimal.NewFromInt(1)
	}
	return &Tier{
		id:         a.ID,
		tenantID:   a.TenantID,
		name:       a.Name,
		minPoints:  a.MinPoints,
		maxPoints:  a.MaxPoints,
		priority:   a.Priority,
		multiplier: mult,
		status:     status,
	}, nil
}

func (t *Tier) ID() uuid.UUID               { return t.id }
func (t *Tier) TenantID() uuid.UUID         { return t.tenantID }
func (t *Tier) Name() string                { return t.name }
func (t *Tier) MinPoints() int64            { return t.minPoints }
func (t *Tier) MaxPoints() *int64           { return t.maxPoints }
func (t *Tier) Priority() int               { return t.priority }
func (t *Tier) Multiplier() decimal.Decimal { return t.multiplier }
func (t *Tier) Status() Status              { return t.status }
func (t *Tier) IsActive() bool              { return t.status == StatusActive }

func (t *Tier) Contains(balance int64) bool {
	if balance < t.minPoints {
		return false
	}
	return t.maxPoints == nil || balance < *t.maxPoints
}
