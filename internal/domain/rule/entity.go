package rule

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Rule struct {
	id              uuid.UUID
	tenantID        uuid.UUID
	name            string
	ruleType        Type
	pointsPerUnit   decimal.Decimal
	minAmount       *decimal.Decimal
	multiplier      *decimal.Decimal
	priority        int
	validFrom       *time.Time
	validUntil      *time.Time
	applicableDays  []time.Weekday
	applicableHours *HourRange
	status          Status
}

// Attributes is the persisted shape of a rule.
type Attributes struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	Type            Type
	PointsPerUnit   decimal.Decimal
	MinAmount       *decimal.Decimal
	Multiplier      *decimal.Decimal
	Priority        int
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	ApplicableDays  []int
	ApplicableHours *HourRange
	Status          Status
}

func Reconstruct(a Attributes) (*Rule, error) {
	if !a.Type.Valid() {
		return nil, ErrInvalidRuleType
	}
	if a.PointsPerUnit.IsNegative() {
		return nil, ErrInvalidPointsPerUnit
	}
	if a.Multiplier != nil && !a.Multiplier.IsPositive() {
		return nil, ErrInvalidMultiplier
	}
	if a.ValidFrom != nil && a.ValidUntil != nil && a.ValidFrom.After(*a.ValidUntil) {
		return nil, ErrInvalidValidity
	}
	if a.ApplicableHours != nil {
		if _, err := NewHourRange(a.ApplicableHours.Start, a.ApplicableHours.End); err != nil {
			return nil, err
		}
	}

	var days []time.Weekday
	if a.ApplicableDays != nil {
		days = make([]time.Weekday, 0, len(a.ApplicableDays))
		for _, d := range a.ApplicableDays {
			if d < 0 || d > 6 {
				return nil, ErrInvalidWeekday
			}
			days = append(days, time.Weekday(d))
		}
	}

	status := a.Status
	if status == "" {
		status = StatusActive
	}

	return &Rule{
		id:              a.ID,
		tenantID:        a.TenantID,
		name:            a.Name,
		ruleType:        a.Type,
		pointsPerUnit:   a.PointsPerUnit,
		minAmount:       a.MinAmount,
		multiplier:      a.Multiplier,
		priority:        a.Priority,
		validFrom:       a.ValidFrom,
		validUntil:      a.ValidUntil,
		applicableDays:  days,
		applicableHours: a.ApplicableHours,
		status:          status,
	}, nil
}

func (r *Rule) ID() uuid.UUID                    { return r.id }
func (r *Rule) TenantID() uuid.UUID              { return r.tenantID }
func (r *Rule) Name() string                     { return r.name }
func (r *Rule) Type() Type                       { return r.ruleType }
func (r *Rule) PointsPerUnit() decimal.Decimal   { return r.pointsPerUnit }
func (r *Rule) MinAmount() *decimal.Decimal      { return r.minAmount }
func (r *Rule) Multiplier() *decimal.Decimal     { return r.multiplier }
func (r *Rule) Priority() int                    { return r.priority }
func (r *Rule) ValidFrom() *time.Time            { return r.validFrom }
func (r *Rule) ValidUntil() *time.Time           { return r.validUntil }
func (r *Rule) ApplicableDays() []time.Weekday   { return r.applicableDays }
func (r *Rule) ApplicableHours() *HourRange      { return r.applicableHours }
func (r *Rule) Status() Status                   { return r.status }
func (r *Rule) IsActive() bool                   { return r.status == StatusActive }

// Applies reports whether the rule is eligible for a purchase of amount at the given local instant.
func (r *Rule) Applies(amount decimal.Decimal, at time.Time) bool {
	if !r.IsActive() || r.ruleType != TypePurchase {
		return false
	}
	if r.minAmount != nil && amount.LessThan(*r.minAmount) {
		return false
	}
	if r.validFrom != nil && at.Before(*r.validFrom) {
		return false
	}
	if r.validUntil != nil && at.After(*r.validUntil) {
		return false
	}
	if r.applicableDays != nil && !containsDay(r.applicableDays, at.Weekday()) {
		return false
	}
	if r.applicableHours != nil && !r.applicableHours.Contains(at) {
		return false
	}
	return true
}

func containsDay(days []time.Weekday, d time.Weekday) bool {
	for _, day := range days {
		if day == d {
			return true
		}
	}
	return false
}
