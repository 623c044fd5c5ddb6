//go:build unit || e2e

package builder

import (
	"time"

	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type RuleBuilder struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	Name            string
	Type            rule.Type
	PointsPerUnit   decimal.Decimal
	MinAmount       *decimal.Decimal
	Multiplier      *decimal.Decimal
	Priority        int
	ValidFrom       *time.Time
	ValidUntil      *time.Time
	ApplicableDays  []int
	ApplicableHours *rule.HourRange
	Status          rule.Status
}

func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{
		ID:            uuid.New(),
		TenantID:      uuid.New(),
		Name:          "1 point per unit",
		Type:          rule.TypePurchase,
		PointsPerUnit: decimal.NewFromInt(1),
		Status:        rule.StatusActive,
	}
}

func (b *RuleBuilder) With(mutate func(*RuleBuilder)) *RuleBuilder {
	mutate(b)
	return b
}

func (b *RuleBuilder) WithMultiplier(m string) *RuleBuilder {
	d := decimal.RequireFromString(m)
	b.Multiplier = &d
	return b
}

func (b *RuleBuilder) WithPriority(p int) *RuleBuilder {
	b.Priority = p
	return b
}

func (b *RuleBuilder) WithTenant(id uuid.UUID) *RuleBuilder {
	b.TenantID = id
	return b
}

func (b *RuleBuilder) BuildDomain() (*rule.Rule, error) {
	return rule.Reconstruct(rule.Attributes{
		ID:              b.ID,
		TenantID:        b.TenantID,
		Name:            b.Name,
		Type:            b.Type,
		PointsPerUnit:   b.PointsPerUnit,
		MinAmount:       b.MinAmount,
		Multiplier:      b.Multiplier,
		Priority:        b.Priority,
		ValidFrom:       b.ValidFrom,
		ValidUntil:      b.ValidUntil,
		ApplicableDays:  b.ApplicableDays,
		ApplicableHours: b.ApplicableHours,
		Status:          b.Status,
	})
}

func (b *RuleBuilder) MustBuildDomain() *rule.Rule {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}

func (b *RuleBuilder) BuildInfra() query.PointsRule {
	row := query.PointsRule{
		ID:            b.ID,
		TenantID:      b.TenantID,
		Name:          b.Name,
		Type:          string(b.Type),
		PointsPerUnit: pgconv.DecimalToNumeric(b.PointsPerUnit),
		MinAmount:     pgconv.DecimalPtrToNumeric(b.MinAmount),
		Multiplier:    pgconv.DecimalPtrToNumeric(b.Multiplier),
		Priority:      int32(b.Priority),
		ValidFrom:     pgconv.TimePtrToPgtype(b.ValidFrom),
		ValidUntil:    pgconv.TimePtrToPgtype(b.ValidUntil),
		Status:        string(b.Status),
		CreatedAt:     pgtype.Timestamptz{Time: time.Now(), Valid: true},
	}
	for _, d := range b.ApplicableDays {
		row.ApplicableDays = append(row.ApplicableDays, int16(d))
	}
	if b.ApplicableHours != nil {
		row.ApplicableHoursStart = pgtype.Text{String: b.ApplicableHours.Start, Valid: true}
		row.ApplicableHoursEnd = pgtype.Text{String: b.ApplicableHours.End, Valid: true}
	}
	return row
}
