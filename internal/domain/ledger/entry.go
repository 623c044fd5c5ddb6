package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is an immutable, signed point movement of one membership.
type Entry struct {
	id              uuid.UUID
	membershipID    uuid.UUID
	userID          uuid.UUID
	tenantID        uuid.UUID
	kind            Kind
	points          int64
	reference       string
	reversedEntryID *uuid.UUID
	ruleID          *uuid.UUID
	basePoints      int64
	multiplier      *decimal.Decimal
	bonusPoints     int64
	amount          *decimal.Decimal
	reasonCode      *string
	description     *string
	branchID        *uuid.UUID
	createdBy       *uuid.UUID
	fingerprint     string
	metadata        map[string]any
	createdAt       time.Time
}

// Draft holds what every new entry needs regardless of kind.
type Draft struct {
	MembershipID uuid.UUID
	UserID       uuid.UUID
	TenantID     uuid.UUID
	Reference    string
	Fingerprint  string
	Description  *string
	BranchID     *uuid.UUID
	CreatedBy    *uuid.UUID
	Metadata     map[string]any
	Now          time.Time
}

// Calculation records how earned points were derived.
type Calculation struct {
	RuleID      *uuid.UUID
	BasePoints  int64
	Multiplier  *decimal.Decimal
	BonusPoints int64
	Amount      *decimal.Decimal
}

func NewEarn(d Draft, points int64, calc Calculation) (*Entry, error) {
	if points <= 0 {
		return nil, ErrNonPositivePoints
	}
	e, err := newEntry(d, KindEarn, points)
	if err != nil {
		return nil, err
	}
	e.ruleID = calc.RuleID
	e.basePoints = calc.BasePoints
	e.multiplier = calc.Multiplier
	e.bonusPoints = calc.BonusPoints
	e.amount = calc.Amount
	return e, nil
}

// NewRedeem takes the positive number of points spent and stores it negated.
func NewRedeem(d Draft, points int64) (*Entry, error) {
	if points <= 0 {
		return nil, ErrNonPositivePoints
	}
	e, err := newEntry(d, KindRedeem, -points)
	if err != nil {
		return nil, err
	}
	e.basePoints = -points
	return e, nil
}

func NewAdjustment(d Draft, points int64, reasonCode string) (*Entry, error) {
	if points == 0 {
		return nil, ErrZeroAdjustment
	}
	reasonCode = strings.TrimSpace(reasonCode)
	if reasonCode == "" {
		return nil, ErrReasonCodeRequired
	}
	e, err := newEntry(d, KindAdjustment, points)
	if err != nil {
		return nil, err
	}
	e.basePoints = points
	e.reasonCode = &reasonCode
	return e, nil
}

// NewExpiration takes the positive number of points that lapse.
func NewExpiration(d Draft, points int64) (*Entry, error) {
	if points <= 0 {
		return nil, ErrNonPositivePoints
	}
	e, err := newEntry(d, KindExpiration, -points)
	if err != nil {
		return nil, err
	}
	e.basePoints = -points
	return e, nil
}

// NewReversal negates original. The membership and tenant are taken from original.
func NewReversal(original *Entry, d Draft, reasonCode string) (*Entry, error) {
	if !original.kind.Reversible() {
		return nil, ErrNotReversible
	}
	reasonCode = strings.TrimSpace(reasonCode)
	if reasonCode == "" {
		return nil, ErrReasonCodeRequired
	}
	d.MembershipID = original.membershipID
	d.UserID = original.userID
	d.TenantID = original.tenantID
	e, err := newEntry(d, KindReversal, -original.points)
	if err != nil {
		return nil, err
	}
	originalID := original.id
	e.reversedEntryID = &originalID
	e.basePoints = -original.points
	e.reasonCode = &reasonCode
	return e, nil
}

func newEntry(d Draft, kind Kind, points int64) (*Entry, error) {
	if points > MaxEntryPoints || points < -MaxEntryPoints {
		return nil, ErrPointsOutOfRange
	}
	ref := strings.TrimSpace(d.Reference)
	if ref == "" {
		return nil, ErrReferenceRequired
	}
	if len(ref) > maxReferenceLength {
		return nil, ErrReferenceTooLong
	}
	metadata := d.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &Entry{
		id:           uuid.New(),
		membershipID: d.MembershipID,
		userID:       d.UserID,
		tenantID:     d.TenantID,
		kind:         kind,
		points:       points,
		reference:    ref,
		description:  d.Description,
		branchID:     d.BranchID,
		createdBy:    d.CreatedBy,
		fingerprint:  d.Fingerprint,
		metadata:     metadata,
		createdAt:    d.Now,
	}, nil
}

// Attributes is the persisted shape of an entry.
type Attributes struct {
	ID              uuid.UUID
	MembershipID    uuid.UUID
	UserID          uuid.UUID
	TenantID        uuid.UUID
	Kind            Kind
	Points          int64
	Reference       string
	ReversedEntryID *uuid.UUID
	RuleID          *uuid.UUID
	BasePoints      int64
	Multiplier      *decimal.Decimal
	BonusPoints     int64
	Amount          *decimal.Decimal
	ReasonCode      *string
	Description     *string
	BranchID        *uuid.UUID
	CreatedBy       *uuid.UUID
	Fingerprint     string
	Metadata        map[string]any
	CreatedAt       time.Time
}

func Reconstruct(a Attributes) (*Entry, error) {
	if !a.Kind.Valid() {
		return nil, ErrInvalidKind
	}
	return &Entry{
		id:              a.ID,
		membershipID:    a.MembershipID,
		userID:          a.UserID,
		tenantID:        a.TenantID,
		kind:            a.Kind,
		points:          a.Points,
		reference:       a.Reference,
		reversedEntryID: a.ReversedEntryID,
		ruleID:          a.RuleID,
		basePoints:      a.BasePoints,
		multiplier:      a.Multiplier,
		bonusPoints:     a.BonusPoints,
		amount:          a.Amount,
		reasonCode:      a.ReasonCode,
		description:     a.Description,
		branchID:        a.BranchID,
		createdBy:       a.CreatedBy,
		fingerprint:     a.Fingerprint,
		metadata:        a.Metadata,
		createdAt:       a.CreatedAt,
	}, nil
}

func (e *Entry) ID() uuid.UUID                { return e.id }
func (e *Entry) MembershipID() uuid.UUID      { return e.membershipID }
func (e *Entry) UserID() uuid.UUID            { return e.userID }
func (e *Entry) TenantID() uuid.UUID          { return e.tenantID }
func (e *Entry) Kind() Kind                   { return e.kind }
func (e *Entry) Points() int64                { return e.points }
func (e *Entry) Reference() string            { return e.reference }
func (e *Entry) ReversedEntryID() *uuid.UUID  { return e.reversedEntryID }
func (e *Entry) RuleID() *uuid.UUID           { return e.ruleID }
func (e *Entry) BasePoints() int64            { return e.basePoints }
func (e *Entry) Multiplier() *decimal.Decimal { return e.multiplier }
func (e *Entry) BonusPoints() int64           { return e.bonusPoints }
func (e *Entry) Amount() *decimal.Decimal     { return e.amount }
func (e *Entry) ReasonCode() *string          { return e.reasonCode }
func (e *Entry) Description() *string         { return e.description }
func (e *Entry) BranchID() *uuid.UUID         { return e.branchID }
func (e *Entry) CreatedBy() *uuid.UUID        { return e.createdBy }
func (e *Entry) Fingerprint() string          { return e.fingerprint }
func (e *Entry) Metadata() map[string]any     { return e.metadata }
func (e *Entry) CreatedAt() time.Time         { return e.createdAt }
