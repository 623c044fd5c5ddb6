package shared

import (
	"context"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/domain/usage"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one transaction.
type Tx interface {
	Memberships() MembershipRepository
	Ledger() LedgerRepository
	Rules() RuleReadStore
	Tiers() TierReadStore
	Usage() UsageCounterRepository
	Tenants() TenantRepository
	Branches() BranchRepository
}

// MembershipRepository persists the membership read model.
// Create and every delete path keep customersCount in step through the usage hook.
type MembershipRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*membership.Membership, error)
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*membership.Membership, error)
	FindByExternalCode(ctx context.Context, tenantID uuid.UUID, code string) (*membership.Membership, error)
	Create(ctx context.Context, m *membership.Membership) error
	Update(ctx context.Context, m *membership.Membership) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

type LedgerRepository interface {
	// Append fails with a *errs.ConflictError when the reference is taken in the tenant,
	// and with ledger.ErrAlreadyReversed when the reversed entry already has a reversal.
	Append(ctx context.Context, e *ledger.Entry) error
	FindByID(ctx context.Context, id uuid.UUID) (*ledger.Entry, error)
	FindByReference(ctx context.Context, tenantID uuid.UUID, reference string) (*ledger.Entry, error)
	FindByMembership(ctx context.Context, membershipID uuid.UUID) ([]*ledger.Entry, error)
	SumPoints(ctx context.Context, membershipID uuid.UUID) (int64, error)
	HasReversal(ctx context.Context, entryID uuid.UUID) (bool, error)
}

type RuleReadStore interface {
	FindActiveByTenantAndType(ctx context.Context, tenantID uuid.UUID, ruleType rule.Type) ([]*rule.Rule, error)
}

type TierReadStore interface {
	// FindForBalance returns nil without error when no tier contains balance.
	FindForBalance(ctx context.Context, tenantID uuid.UUID, balance int64) (*tier.Tier, error)
	FindByID(ctx context.Context, id uuid.UUID) (*tier.Tier, error)
}

type UsageCounterRepository interface {
	// Get creates the row on demand.
	Get(ctx context.Context, subscriptionID uuid.UUID) (usage.Counter, error)
	// Increment checks limit and increments in one statement.
	Increment(ctx context.Context, subscriptionID uuid.UUID, r usage.Resource, limit int64) error
	// Decrement floors at zero.
	Decrement(ctx context.Context, subscriptionID uuid.UUID, r usage.Resource, n int64) error
	// Recount rebuilds the counters from the rows that actually exist.
	Recount(ctx context.Context, subscriptionID uuid.UUID) (usage.Counter, error)
	PlanSlug(ctx context.Context, subscriptionID uuid.UUID) (string, error)
}

type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Tenant, error)
	Create(ctx context.Context, t *tenant.Tenant) error
	// Delete removes the tenant together with its memberships and branches.
	Delete(ctx context.Context, id uuid.UUID) error
}

type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*tenant.Branch, error)
	Create(ctx context.Context, b *tenant.Branch) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// PlanCatalog resolves plan limits by plan slug.
type PlanCatalog interface {
	LimitsFor(slug string) (usage.Limits, error)
}
