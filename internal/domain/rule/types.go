package rule

import (
	"time"

	"loyalty-ledger/internal/pkg/errs"
)

type Type string

const (
	TypePurchase Type = "purchase"
	TypeVisit    Type = "visit"
	TypeReferral Type = "referral"
	TypeBirthday Type = "birthday"
	TypeCustom   Type = "custom"
)

func (t Type) Valid() bool {
	switch t {
	case TypePurchase, TypeVisit, TypeReferral, TypeBirthday, TypeCustom:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrInvalidRuleType      = errs.Wrap(errs.ErrInvalidRequest, "unknown points rule type")
	ErrInvalidPointsPerUnit = errs.Wrap(errs.ErrInvalidRequest, "points per unit must not be negative")
	ErrInvalidMultiplier    = errs.Wrap(errs.ErrInvalidRequest, "multiplier must be greater than 0")
	ErrInvalidHourRange     = errs.Wrap(errs.ErrInvalidRequest, "applicable hours must be HH:MM")
	ErrInvalidWeekday       = errs.Wrap(errs.ErrInvalidRequest, "applicable days must be between 0 (Sunday) and 6")
	ErrInvalidValidity      = errs.Wrap(errs.ErrInvalidRequest, "valid_from must not be after valid_until")
)

const hourLayout = "15:04"

// HourRange bounds the local time of day, both ends inclusive.
// A range whose start is after its end never matches.
type HourRange struct {
	Start string
	End   string
}

func NewHourRange(start, end string) (HourRange, error) {
	if _, err := time.Parse(hourLayout, start); err != nil || len(start) != len(hourLayout) {
		return HourRange{}, ErrInvalidHourRange
	}
	if _, err := time.Parse(hourLayout, end); err != nil || len(end) != len(hourLayout) {
		return HourRange{}, ErrInvalidHourRange
	}
	return HourRange{Start: start, End: end}, nil
}

func (h HourRange) Contains(at time.Time) bool {
	now := at.Format(hourLayout)
	return now >= h.Start && now <= h.End
}
