package usage

import (
	"time"

	"github.com/google/uuid"

	"loyalty-ledger/internal/pkg/errs"
)

// Resource is a plan-limited resource counted per subscription.
type Resource string

const (
	ResourceTenants   Resource = "tenants"
	ResourceBranches  Resource = "branches"
	ResourceCustomers Resource = "customers"
	ResourceRewards   Resource = "rewards"
)

func (r Resource) Valid() bool {
	switch r {
	case ResourceTenants, ResourceBranches, ResourceCustomers, ResourceRewards:
		return true
	}
	return false
}

// Unlimited as a limit disables the check.
const Unlimited int64 = -1

var (
	ErrInvalidResource = errs.Wrap(errs.ErrInvalidRequest, "unknown usage resource")
	ErrPlanNotFound    = errs.Wrap(errs.ErrNotFound, "plan not found")
)

// CanCreate reports whether one more resource fits under limit.
func CanCreate(current, limit int64) bool {
	if limit == Unlimited {
		return true
	}
	return current < limit
}

type Limits struct {
	Tenants   int64 `yaml:"tenants" json:"tenants"`
	Branches  int64 `yaml:"branches" json:"branches"`
	Customers int64 `yaml:"customers" json:"customers"`
	Rewards   int64 `yaml:"rewards" json:"rewards"`
}

func (l Limits) For(r Resource) int64 {
	switch r {
	case ResourceTenants:
		return l.Tenants
	case ResourceBranches:
		return l.Branches
	case ResourceCustomers:
		return l.Customers
	case ResourceRewards:
		return l.Rewards
	}
	return 0
}

type Plan struct {
	Slug   string `yaml:"slug"`
	Name   string `yaml:"name"`
	Limits Limits `yaml:"limits"`
}

// Counter mirrors one usage row. Counts never go below zero.
type Counter struct {
	SubscriptionID uuid.UUID
	Tenants        int64
	Branches       int64
	Customers      int64
	Rewards        int64
	UpdatedAt      time.Time
}

func (c Counter) Count(r Resource) int64 {
	switch r {
	case ResourceTenants:
		return c.Tenants
	case ResourceBranches:
		return c.Branches
	case ResourceCustomers:
		return c.Customers
	case ResourceRewards:
		return c.Rewards
	}
	return 0
}

// LimitExceeded builds the error returned when a creation is refused.
func LimitExceeded(r Resource, limit int64) error {
	return errs.Wrapf(errs.ErrLimitExceeded, "%s limit of %d reached for the current plan", r, limit)
}
