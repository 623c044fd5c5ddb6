package converter

import (
	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/pkg/pgconv"
)

func RuleFromRow(row query.PointsRule) (*rule.Rule, error) {
	ppu, err := pgconv.DecimalFromNumeric(row.PointsPerUnit)
	if err != nil {
		return nil, err
	}
	minAmount, err := pgconv.DecimalPtrFromNumeric(row.MinAmount)
	if err != nil {
		return nil, err
	}
	multiplier, err := pgconv.DecimalPtrFromNumeric(row.Multiplier)
	if err != nil {
		return nil, err
	}

	var hours *rule.HourRange
	if row.ApplicableHoursStart.Valid && row.ApplicableHoursEnd.Valid {
		h, err := rule.NewHourRange(row.ApplicableHoursStart.String, row.ApplicableHoursEnd.String)
		if err != nil {
			return nil, err
		}
		hours = &h
	}

	var days []int
	if row.ApplicableDays != nil {
		days = make([]int, 0, len(row.ApplicableDays))
		for _, d := range row.ApplicableDays {
			days = append(days, int(d))
		}
	}

	return rule.Reconstruct(rule.Attributes{
		ID:              row.ID,
		TenantID:        row.TenantID,
		Name:            row.Name,
		Type:            rule.Type(row.Type),
		PointsPerUnit:   ppu,
		MinAmount:       minAmount,
		Multiplier:      multiplier,
		Priority:        int(row.Priority),
		ValidFrom:       pgconv.TimePtrFromPgtype(row.ValidFrom),
		ValidUntil:      pgconv.TimePtrFromPgtype(row.ValidUntil),
		ApplicableDays:  days,
		ApplicableHours: hours,
		Status:          rule.Status(row.Status),
	})
}

func TierFromRow(row query.CustomerTier) (*tier.Tier, error) {
	multiplier, err := pgconv.DecimalFromNumeric(row.Multiplier)
	if err != nil {
		return nil, err
	}
	return tier.Reconstruct(tier.Attributes{
		ID:         row.ID,
		TenantID:   row.TenantID,
		Name:       row.Name,
		MinPoints:  row.MinPoints,
		MaxPoints:  pgconv.Int64PtrFromPgtype(row.MaxPoints),
		Priority:   int(row.Priority),
		Multiplier: multiplier,
		Status:     tier.Status(row.Status),
	})
}

// TierToRow is used to seed tiers.
func TierToRow(t *tier.Tier) query.CustomerTier {
	return query.CustomerTier{
		ID:         t.ID(),
		TenantID:   t.TenantID(),
		Name:       t.Name(),
		MinPoints:  t.MinPoints(),
		MaxPoints:  pgconv.Int64PtrToPgtype(t.MaxPoints()),
		Priority:   int32(t.Priority()),
		Multiplier: pgconv.DecimalToNumeric(t.Multiplier()),
		Status:     string(t.Status()),
	}
}

func TiersFromRows(rows []query.CustomerTier) ([]*tier.Tier, error) {
	out := make([]*tier.Tier, 0, len(rows))
	for _, row := range rows {
		t, err := TierFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func TenantFromRow(row query.Tenant) *tenant.Tenant {
	return tenant.ReconstructTenant(row.ID, row.SubscriptionID, row.Name, pgconv.TimeFromPgtype(row.CreatedAt))
}

func BranchFromRow(row query.Branch) *tenant.Branch {
	return tenant.ReconstructBranch(row.ID, row.TenantID, row.Name, pgconv.TimeFromPgtype(row.CreatedAt))
}
