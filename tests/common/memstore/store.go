//go:build unit

// Package memstore is an in-memory shared.UnitOfWork for usecase tests.
// Within runs one transaction at a time on a copy of the state and swaps it in on success,
// so a returned error rolls back everything the callback wrote.
package memstore

import (
	"context"
	"sort"
	"sync"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/domain/rule"
	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/domain/tier"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type state struct {
	tenants     map[uuid.UUID]*tenant.Tenant
	branches    map[uuid.UUID]*tenant.Branch
	memberships map[uuid.UUID]membership.Attributes
	entries     []*ledger.Entry
	rules       map[uuid.UUID][]*rule.Rule
	tiers       map[uuid.UUID][]*tier.Tier
	plans       map[uuid.UUID]string
	counters    map[uuid.UUID]usage.Counter
}

func newState() *state {
	return &state{
		tenants:     map[uuid.UUID]*tenant.Tenant{},
		branches:    map[uuid.UUID]*tenant.Branch{},
		memberships: map[uuid.UUID]membership.Attributes{},
		rules:       map[uuid.UUID][]*rule.Rule{},
		tiers:       map[uuid.UUID][]*tier.Tier{},
		plans:       map[uuid.UUID]string{},
		counters:    map[uuid.UUID]usage.Counter{},
	}
}

// clone copies the containers. Stored domain values are immutable or copied on read.
func (st *state) clone() *state {
	c := newState()
	for k, v := range st.tenants {
		c.tenants[k] = v
	}
	for k, v := range st.branches {
		c.branches[k] = v
	}
	for k, v := range st.memberships {
		c.memberships[k] = v
	}
	c.entries = append(c.entries, st.entries...)
	for k, v := range st.rules {
		c.rules[k] = v
	}
	for k, v := range st.tiers {
		c.tiers[k] = v
	}
	for k, v := range st.plans {
		c.plans[k] = v
	}
	for k, v := range st.counters {
		c.counters[k] = v
	}
	return c
}

type Store struct {
	mu      sync.Mutex
	current *state
	// Commits counts successful Within calls.
	Commits int
}

var _ shared.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{current: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.current.clone()
	if err := fn(ctx, &memTx{st: working}); err != nil {
		return err
	}
	s.current = working
	s.Commits++
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &memTx{st: s.current.clone()})
}

// ---- seeding and inspection ----

func (s *Store) AddSubscription(subscriptionID uuid.UUID, planSlug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.plans[subscriptionID] = planSlug
}

// AddTenant stores t without touching the usage counters.
func (s *Store) AddTenant(t *tenant.Tenant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.tenants[t.ID()] = t
}

func (s *Store) AddRules(rules ...*rule.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rules {
		s.current.rules[r.TenantID()] = append(s.current.rules[r.TenantID()], r)
	}
}

func (s *Store) AddTiers(tiers ...*tier.Tier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tiers {
		s.current.tiers[t.TenantID()] = append(s.current.tiers[t.TenantID()], t)
	}
}

// AddMembership stores m as is. Its balance is not checked against the ledger.
func (s *Store) AddMembership(m *membership.Membership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.memberships[m.ID()] = attributesOf(m)
}

// AddEntries appends entries as stored rows, bypassing the constructors' bounds.
func (s *Store) AddEntries(entries ...*ledger.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.entries = append(s.current.entries, entries...)
}

func (s *Store) SetCounter(c usage.Counter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.counters[c.SubscriptionID] = c
}

func (s *Store) Counter(subscriptionID uuid.UUID) usage.Counter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.counters[subscriptionID]
}

func (s *Store) Membership(id uuid.UUID) (*membership.Membership, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.current.memberships[id]
	if !ok {
		return nil, false
	}
	return membership.Reconstruct(a), true
}

// Entries returns the ledger of membershipID in insertion order.
func (s *Store) Entries(membershipID uuid.UUID) []*ledger.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.entriesOf(membershipID)
}

func (s *Store) TenantCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.current.tenants)
}

func (st *state) entriesOf(membershipID uuid.UUID) []*ledger.Entry {
	var out []*ledger.Entry
	for _, e := range st.entries {
		if e.MembershipID() == membershipID {
			out = append(out, e)
		}
	}
	return out
}

func attributesOf(m *membership.Membership) membership.Attributes {
	return membership.Attributes{
		ID:             m.ID(),
		TenantID:       m.TenantID(),
		UserID:         m.UserID(),
		ExternalCode:   m.ExternalCode(),
		Balance:        m.Balance(),
		TierID:         m.TierID(),
		Status:         m.Status(),
		TotalSpent:     m.TotalSpent(),
		TotalVisits:    m.TotalVisits(),
		LastActivityAt: m.LastActivityAt(),
		CreatedAt:      m.CreatedAt(),
		UpdatedAt:      m.UpdatedAt(),
	}
}

func notFound(what string) error {
	return errs.Wrap(errs.ErrNotFound, what+" not found")
}

// ---- transaction ----

type memTx struct {
	st *state
}

func (tx *memTx) Memberships() shared.MembershipRepository { return membershipRepo{tx.st} }
func (tx *memTx) Ledger() shared.LedgerRepository          { return ledgerRepo{tx.st} }
func (tx *memTx) Rules() shared.RuleReadStore              { return ruleStore{tx.st} }
func (tx *memTx) Tiers() shared.TierReadStore              { return tierStore{tx.st} }
func (tx *memTx) Usage() shared.UsageCounterRepository     { return usageRepo{tx.st} }
func (tx *memTx) Tenants() shared.TenantRepository         { return tenantRepo{tx.st} }
func (tx *memTx) Branches() shared.BranchRepository        { return branchRepo{tx.st} }

func (st *state) release(subscriptionID uuid.UUID, r usage.Resource, n int64) {
	c, ok := st.counters[subscriptionID]
	if !ok || n <= 0 {
		return
	}
	switch r {
	case usage.ResourceTenants:
		c.Tenants = max(0, c.Tenants-n)
	case usage.ResourceBranches:
		c.Branches = max(0, c.Branches-n)
	case usage.ResourceCustomers:
		c.Customers = max(0, c.Customers-n)
	case usage.ResourceRewards:
		c.Rewards = max(0, c.Rewards-n)
	}
	st.counters[subscriptionID] = c
}

func (st *state) subscriptionOf(tenantID uuid.UUID) (uuid.UUID, bool) {
	t, ok := st.tenants[tenantID]
	if !ok {
		return uuid.Nil, false
	}
	return t.SubscriptionID(), true
}

type membershipRepo struct{ st *state }

func (r membershipRepo) FindByID(_ context.Context, id uuid.UUID) (*membership.Membership, error) {
	a, ok := r.st.memberships[id]
	if !ok {
		return nil, notFound("membership")
	}
	return membership.Reconstruct(a), nil
}

func (r membershipRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*membership.Membership, error) {
	return r.FindByID(ctx, id)
}

func (r membershipRepo) FindByExternalCode(_ context.Context, tenantID uuid.UUID, code string) (*membership.Membership, error) {
	for _, a := range r.st.memberships {
		if a.TenantID == tenantID && a.ExternalCode == code {
			return membership.Reconstruct(a), nil
		}
	}
	return nil, notFound("membership")
}

func (r membershipRepo) Create(_ context.Context, m *membership.Membership) error {
	for _, a := range r.st.memberships {
		if a.TenantID == m.TenantID() && (a.ExternalCode == m.ExternalCode() || a.UserID == m.UserID()) {
			return errs.Wrap(errs.ErrConflict, "membership already exists")
		}
	}
	r.st.memberships[m.ID()] = attributesOf(m)
	return nil
}

func (r membershipRepo) Update(_ context.Context, m *membership.Membership) error {
	if _, ok := r.st.memberships[m.ID()]; !ok {
		return notFound("membership")
	}
	r.st.memberships[m.ID()] = attributesOf(m)
	return nil
}

func (r membershipRepo) Delete(_ context.Context, id uuid.UUID) error {
	a, ok := r.st.memberships[id]
	if !ok {
		return notFound("membership")
	}
	delete(r.st.memberships, id)
	if sub, ok := r.st.subscriptionOf(a.TenantID); ok {
		r.st.release(sub, usage.ResourceCustomers, 1)
	}
	return nil
}

func (r membershipRepo) DeleteByTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for id, a := range r.st.memberships {
		if a.TenantID == tenantID {
			delete(r.st.memberships, id)
			n++
		}
	}
	if sub, ok := r.st.subscriptionOf(tenantID); ok {
		r.st.release(sub, usage.ResourceCustomers, n)
	}
	return n, nil
}

type ledgerRepo struct{ st *state }

func (r ledgerRepo) Append(_ context.Context, e *ledger.Entry) error {
	for _, existing := range r.st.entries {
		if existing.TenantID() == e.TenantID() && existing.Reference() == e.Reference() {
			return &errs.ConflictError{
				Reference:     e.Reference(),
				ExistingEntry: existing.ID().String(),
				Replay:        existing.Fingerprint() != "" && existing.Fingerprint() == e.Fingerprint(),
			}
		}
		if e.ReversedEntryID() != nil && existing.ReversedEntryID() != nil && *existing.ReversedEntryID() == *e.ReversedEntryID() {
			return ledger.ErrAlreadyReversed
		}
	}
	r.st.entries = append(r.st.entries, e)
	return nil
}

func (r ledgerRepo) FindByID(_ context.Context, id uuid.UUID) (*ledger.Entry, error) {
	for _, e := range r.st.entries {
		if e.ID() == id {
			return e, nil
		}
	}
	return nil, notFound("ledger entry")
}

func (r ledgerRepo) FindByReference(_ context.Context, tenantID uuid.UUID, reference string) (*ledger.Entry, error) {
	for _, e := range r.st.entries {
		if e.TenantID() == tenantID && e.Reference() == reference {
			return e, nil
		}
	}
	return nil, notFound("ledger entry")
}

func (r ledgerRepo) FindByMembership(_ context.Context, membershipID uuid.UUID) ([]*ledger.Entry, error) {
	return r.st.entriesOf(membershipID), nil
}

func (r ledgerRepo) SumPoints(_ context.Context, membershipID uuid.UUID) (int64, error) {
	return ledger.Sum(r.st.entriesOf(membershipID))
}

func (r ledgerRepo) HasReversal(_ context.Context, entryID uuid.UUID) (bool, error) {
	for _, e := range r.st.entries {
		if e.ReversedEntryID() != nil && *e.ReversedEntryID() == entryID {
			return true, nil
		}
	}
	return false, nil
}

type ruleStore struct{ st *state }

func (s ruleStore) FindActiveByTenantAndType(_ context.Context, tenantID uuid.UUID, ruleType rule.Type) ([]*rule.Rule, error) {
	var out []*rule.Rule
	for _, r := range s.st.rules[tenantID] {
		if r.IsActive() && r.Type() == ruleType {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority() > out[j].Priority() })
	return out, nil
}

type tierStore struct{ st *state }

func (s tierStore) FindForBalance(_ context.Context, tenantID uuid.UUID, balance int64) (*tier.Tier, error) {
	return tier.Resolve(s.st.tiers[tenantID], balance), nil
}

func (s tierStore) FindByID(_ context.Context, id uuid.UUID) (*tier.Tier, error) {
	for _, tiers := range s.st.tiers {
		for _, t := range tiers {
			if t.ID() == id {
				return t, nil
			}
		}
	}
	return nil, notFound("tier")
}

type usageRepo struct{ st *state }

func (r usageRepo) ensure(subscriptionID uuid.UUID) usage.Counter {
	c, ok := r.st.counters[subscriptionID]
	if !ok {
		c = usage.Counter{SubscriptionID: subscriptionID}
		r.st.counters[subscriptionID] = c
	}
	return c
}

func (r usageRepo) Get(_ context.Context, subscriptionID uuid.UUID) (usage.Counter, error) {
	return r.ensure(subscriptionID), nil
}

func (r usageRepo) Increment(_ context.Context, subscriptionID uuid.UUID, res usage.Resource, limit int64) error {
	if !res.Valid() {
		return usage.ErrInvalidResource
	}
	c := r.ensure(subscriptionID)
	if !usage.CanCreate(c.Count(res), limit) {
		return usage.LimitExceeded(res, limit)
	}
	switch res {
	case usage.ResourceTenants:
		c.Tenants++
	case usage.ResourceBranches:
		c.Branches++
	case usage.ResourceCustomers:
		c.Customers++
	case usage.ResourceRewards:
		c.Rewards++
	}
	r.st.counters[subscriptionID] = c
	return nil
}

func (r usageRepo) Decrement(_ context.Context, subscriptionID uuid.UUID, res usage.Resource, n int64) error {
	if !res.Valid() {
		return usage.ErrInvalidResource
	}
	r.ensure(subscriptionID)
	r.st.release(subscriptionID, res, n)
	return nil
}

func (r usageRepo) Recount(_ context.Context, subscriptionID uuid.UUID) (usage.Counter, error) {
	c := r.ensure(subscriptionID)
	c.Tenants, c.Branches, c.Customers = 0, 0, 0
	for _, t := range r.st.tenants {
		if t.SubscriptionID() != subscriptionID {
			continue
		}
		c.Tenants++
		for _, b := range r.st.branches {
			if b.TenantID() == t.ID() {
				c.Branches++
			}
		}
		for _, m := range r.st.memberships {
			if m.TenantID == t.ID() {
				c.Customers++
			}
		}
	}
	r.st.counters[subscriptionID] = c
	return c, nil
}

func (r usageRepo) PlanSlug(_ context.Context, subscriptionID uuid.UUID) (string, error) {
	slug, ok := r.st.plans[subscriptionID]
	if !ok {
		return "", notFound("subscription")
	}
	return slug, nil
}

type tenantRepo struct{ st *state }

func (r tenantRepo) FindByID(_ context.Context, id uuid.UUID) (*tenant.Tenant, error) {
	t, ok := r.st.tenants[id]
	if !ok {
		return nil, notFound("tenant")
	}
	return t, nil
}

func (r tenantRepo) Create(_ context.Context, t *tenant.Tenant) error {
	r.st.tenants[t.ID()] = t
	return nil
}

func (r tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	t, ok := r.st.tenants[id]
	if !ok {
		return notFound("tenant")
	}
	if _, err := (membershipRepo{r.st}).DeleteByTenant(ctx, id); err != nil {
		return err
	}
	if _, err := (branchRepo{r.st}).DeleteByTenant(ctx, id); err != nil {
		return err
	}
	delete(r.st.tenants, id)
	r.st.release(t.SubscriptionID(), usage.ResourceTenants, 1)
	return nil
}

type branchRepo struct{ st *state }

func (r branchRepo) FindByID(_ context.Context, id uuid.UUID) (*tenant.Branch, error) {
	b, ok := r.st.branches[id]
	if !ok {
		return nil, notFound("branch")
	}
	return b, nil
}

func (r branchRepo) Create(_ context.Context, b *tenant.Branch) error {
	r.st.branches[b.ID()] = b
	return nil
}

func (r branchRepo) Delete(_ context.Context, id uuid.UUID) error {
	b, ok := r.st.branches[id]
	if !ok {
		return notFound("branch")
	}
	delete(r.st.branches, id)
	if sub, ok := r.st.subscriptionOf(b.TenantID()); ok {
		r.st.release(sub, usage.ResourceBranches, 1)
	}
	return nil
}

func (r branchRepo) DeleteByTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for id, b := range r.st.branches {
		if b.TenantID() == tenantID {
			delete(r.st.branches, id)
			n++
		}
	}
	if sub, ok := r.st.subscriptionOf(tenantID); ok {
		r.st.release(sub, usage.ResourceBranches, n)
	}
	return n, nil
}
