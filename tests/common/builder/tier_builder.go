//go:build unit || e2e

package builder

import (
	"loyalty-ledger/internal/domain/tier"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TierBuilder struct {
	ID         uuid.UUID
	TenantID   uuid.UUID
	Name       string
	MinPoints  int64
	MaxPoints  *int64
	Priority   int
	Multiplier decimal.Decimal
	Status     tier.Status
}

func NewTierBuilder() *TierBuilder {
	return &TierBuilder{
		ID:         uuid.New(),
		TenantID:   uuid.New(),
		Name:       "Bronze",
		MinPoints:  0,
		Multiplier: decimal.NewFromInt(1),
		Status:     tier.StatusActive,
	}
}

// WithBand sets [min, max); max < 0 leaves the band unbounded.
func (b *TierBuilder) WithBand(name string, min, max int64) *TierBuilder {
	b.Name = name
	b.MinPoints = min
	b.MaxPoints = nil
	if max >= 0 {
		m := max
		b.MaxPoints = &m
	}
	return b
}

func (b *TierBuilder) WithTenant(id uuid.UUID) *TierBuilder {
	b.TenantID = id
	return b
}

func (b *TierBuilder) With(mutate func(*TierBuilder)) *TierBuilder {
	mutate(b)
	return b
}

func (b *TierBuilder) BuildDomain() (*tier.Tier, error) {
	return tier.Reconstruct(tier.Attributes{
		ID:         b.ID,
		TenantID:   b.TenantID,
		Name:       b.Name,
		MinPoints:  b.MinPoints,
		MaxPoints:  b.MaxPoints,
		Priority:   b.Priority,
		Multiplier: b.Multiplier,
		Status:     b.Status,
	})
}

func (b *TierBuilder) MustBuildDomain() *tier.Tier {
	t, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return t
}

// StandardTiers returns Bronze [0,1000), Silver [1000,5000) and Gold [5000,∞) for tenantID.
func StandardTiers(tenantID uuid.UUID) []*tier.Tier {
	return []*tier.Tier{
		NewTierBuilder().WithTenant(tenantID).WithBand("Bronze", 0, 1000).MustBuildDomain(),
		NewTierBuilder().WithTenant(tenantID).WithBand("Silver", 1000, 5000).MustBuildDomain(),
		NewTierBuilder().WithTenant(tenantID).WithBand("Gold", 5000, -1).MustBuildDomain(),
	}
}
