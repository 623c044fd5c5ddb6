package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Subscription struct {
	ID        uuid.UUID
	PlanSlug  string
	Status    string
	CreatedAt pgtype.Timestamptz
}

type UsageCounter struct {
	SubscriptionID uuid.UUID
	TenantsCount   int64
	BranchesCount  int64
	CustomersCount int64
	RewardsCount   int64
	UpdatedAt      pgtype.Timestamptz
}

type Tenant struct {
	ID             uuid.UUID
	SubscriptionID uuid.UUID
	Name           string
	CreatedAt      pgtype.Timestamptz
}

type Branch struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	CreatedAt pgtype.Timestamptz
}

type CustomerTier struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	MinPoints  int64
	MaxPoints  pgtype.Int8
	Priority   int32
	Multiplier pgtype.Numeric
	Status     string
	CreatedAt  pgtype.Timestamptz
}

type PointsRule struct {
	ID                   uuid.UUID
	TenantID             uuid.UUID
	Name                 string
	Type                 string
	PointsPerUnit        pgtype.Numeric
	MinAmount            pgtype.Numeric
	Multiplier           pgtype.Numeric
	Priority             int32
	ValidFrom            pgtype.Timestamptz
	ValidUntil           pgtype.Timestamptz
	ApplicableDays       []int16
	ApplicableHoursStart pgtype.Text
	ApplicableHoursEnd   pgtype.Text
	Status               string
	CreatedAt            pgtype.Timestamptz
}

type Membership struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	UserID         uuid.UUID
	ExternalCode   string
	Balance        int64
	TierID         pgtype.UUID
	Status         string
	TotalSpent     pgtype.Numeric
	TotalVisits    int64
	LastActivityAt pgtype.Timestamptz
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

type LedgerEntry struct {
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
