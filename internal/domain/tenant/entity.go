package tenant

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"loyalty-ledger/internal/pkg/errs"
)

const maxNameLength = 255

var (
	ErrTenantNotFound = errs.Wrap(errs.ErrNotFound, "tenant not found")
	ErrBranchNotFound = errs.Wrap(errs.ErrNotFound, "branch not found")
	ErrNameRequired   = errs.Wrap(errs.ErrInvalidRequest, "name is required")
	ErrNameTooLong    = errs.Wrap(errs.ErrInvalidRequest, "name exceeds 255 characters")
)

type Tenant struct {
	id             uuid.UUID
	subscriptionID uuid.UUID
	name           string
	createdAt      time.Time
}

func NewTenant(subscriptionID uuid.UUID, name string, now time.Time) (*Tenant, error) {
	n, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return &Tenant{id: uuid.New(), subscriptionID: subscriptionID, name: n, createdAt: now}, nil
}

func ReconstructTenant(id, subscriptionID uuid.UUID, name string, createdAt time.Time) *Tenant {
	return &Tenant{id: id, subscriptionID: subscriptionID, name: name, createdAt: createdAt}
}

func (t *Tenant) ID() uuid.UUID             { return t.id }
func (t *Tenant) SubscriptionID() uuid.UUID { return t.subscriptionID }
func (t *Tenant) Name() string              { return t.name }
func (t *Tenant) CreatedAt() time.Time      { return t.createdAt }

type Branch struct {
	id        uuid.UUID
	tenantID  uuid.UUID
	name      string
	createdAt time.Time
}

func NewBranch(tenantID uuid.UUID, name string, now time.Time) (*Branch, error) {
	n, err := validateName(name)
	if err != nil {
		return nil, err
	}
	return &Branch{id: uuid.New(), tenantID: tenantID, name: n, createdAt: now}, nil
}

func ReconstructBranch(id, tenantID uuid.UUID, name string, createdAt time.Time) *Branch {
	return &Branch{id: id, tenantID: tenantID, name: name, createdAt: createdAt}
}

func (b *Branch) ID() uuid.UUID        { return b.id }
func (b *Branch) TenantID() uuid.UUID  { return b.tenantID }
func (b *Branch) Name() string         { return b.name }
func (b *Branch) CreatedAt() time.Time { return b.createdAt }

func validateName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", ErrNameRequired
	}
	if len(n) > maxNameLength {
		return "", ErrNameTooLong
	}
	return n, nil
}
