//go:build unit || e2e

package builder

import (
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/membership"

	"github.com/google/uuid"
)

type EntryBuilder struct {
	MembershipID uuid.UUID
	UserID       uuid.UUID
	TenantID     uuid.UUID
	Reference    string
	Fingerprint  string
	Now          time.Time
}

func NewEntryBuilder() *EntryBuilder {
	return &EntryBuilder{
		MembershipID: uuid.New(),
		UserID:       uuid.New(),
		TenantID:     uuid.New(),
		Reference:    "POS-" + uuid.NewString()[:8],
		Fingerprint:  "fp",
		Now:          time.Now(),
	}
}

func (b *EntryBuilder) For(m *membership.Membership) *EntryBuilder {
	b.MembershipID = m.ID()
	b.UserID = m.UserID()
	b.TenantID = m.TenantID()
	return b
}

func (b *EntryBuilder) WithReference(ref string) *EntryBuilder {
	b.Reference = ref
	return b
}

func (b *EntryBuilder) Draft() ledger.Draft {
	return ledger.Draft{
		MembershipID: b.MembershipID,
		UserID:       b.UserID,
		TenantID:     b.TenantID,
		Reference:    b.Reference,
		Fingerprint:  b.Fingerprint,
		Now:          b.Now,
	}
}

func (b *EntryBuilder) MustEarn(points int64) *ledger.Entry {
	e, err := ledger.NewEarn(b.Draft(), points, ledger.Calculation{BasePoints: points})
	if err != nil {
		panic(err)
	}
	return e
}

func (b *EntryBuilder) MustRedeem(points int64) *ledger.Entry {
	e, err := ledger.NewRedeem(b.Draft(), points)
	if err != nil {
		panic(err)
	}
	return e
}
