package converter

import (
	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/infra/query"
	"loyalty-ledger/internal/pkg/pgconv"
)

func MembershipFromRow(row query.Membership) (*membership.Membership, error) {
	spent, err := pgconv.DecimalFromNumeric(row.TotalSpent)
	if err != nil {
		return nil, err
	}
	return membership.Reconstruct(membership.Attributes{
		ID:             row.ID,
		TenantID:       row.TenantID,
		UserID:         row.UserID,
		ExternalCode:   row.ExternalCode,
		Balance:        row.Balance,
		TierID:         pgconv.UUIDPtrFromPgtype(row.TierID),
		Status:         membership.Status(row.Status),
		TotalSpent:     spent,
		TotalVisits:    row.TotalVisits,
		LastActivityAt: pgconv.TimePtrFromPgtype(row.LastActivityAt),
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:      pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func MembershipToCreateParams(m *membership.Membership) query.CreateMembershipParams {
	return query.CreateMembershipParams{
		ID:             m.ID(),
		TenantID:       m.TenantID(),
		UserID:         m.UserID(),
		ExternalCode:   m.ExternalCode(),
		Balance:        m.Balance(),
		TierID:         pgconv.UUIDPtrToPgtype(m.TierID()),
		Status:         string(m.Status()),
		TotalSpent:     pgconv.DecimalToNumeric(m.TotalSpent()),
		TotalVisits:    m.TotalVisits(),
		LastActivityAt: pgconv.TimePtrToPgtype(m.LastActivityAt()),
		CreatedAt:      pgconv.TimeToPgtype(m.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(m.UpdatedAt()),
	}
}

func MembershipToUpdateParams(m *membership.Membership) query.UpdateMembershipParams {
	return query.UpdateMembershipParams{
		ID:             m.ID(),
		Balance:        m.Balance(),
		TierID:         pgconv.UUIDPtrToPgtype(m.TierID()),
		Status:         string(m.Status()),
		TotalSpent:     pgconv.DecimalToNumeric(m.TotalSpent()),
		TotalVisits:    m.TotalVisits(),
		LastActivityAt: pgconv.TimePtrToPgtype(m.LastActivityAt()),
		UpdatedAt:      pgconv.TimeToPgtype(m.UpdatedAt()),
	}
}
