package commands

//go:generate mockgen -source=tenant.go -destination=../../../tests/mock/commands/tenant_mock.go -package=commandsmock

import (
	"context"

	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type TenantCommands interface {
	CreateTenant(ctx context.Context, subscriptionID uuid.UUID, name string) (*tenant.Tenant, error)
	// DeleteTenant removes the tenant with its memberships and branches, releasing their usage.
	DeleteTenant(ctx context.Context, tenantID uuid.UUID) error
	CreateBranch(ctx context.Context, tenantID uuid.UUID, name string) (*tenant.Branch, error)
	DeleteBranch(ctx context.Context, tenantID, branchID uuid.UUID) error
	// RecountUsage rebuilds a subscription's counters from existing rows.
	RecountUsage(ctx context.Context, subscriptionID uuid.UUID) (usage.Counter, error)
}

type tenantUseCaseImpl struct {
	uow   shared.UnitOfWork
	quota quota
	clock clock.Clock
}

func NewTenantUseCase(uow shared.UnitOfWork, plans shared.PlanCatalog, clk clock.Clock) TenantCommands {
	return &tenantUseCaseImpl{uow: uow, quota: quota{plans: plans}, clock: clk}
}

func (uc *tenantUseCaseImpl) CreateTenant(ctx context.Context, subscriptionID uuid.UUID, name string) (*tenant.Tenant, error) {
	t, err := tenant.NewTenant(subscriptionID, name, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := uc.quota.reserve(ctx, tx, subscriptionID, usage.ResourceTenants); err != nil {
			return err
		}
		return tx.Tenants().Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (uc *tenantUseCaseImpl) DeleteTenant(ctx context.Context, tenantID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return notFoundAs(tx.Tenants().Delete(ctx, tenantID), tenant.ErrTenantNotFound)
	})
}

func (uc *tenantUseCaseImpl) CreateBranch(ctx context.Context, tenantID uuid.UUID, name string) (*tenant.Branch, error) {
	var created *tenant.Branch
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Tenants().FindByID(ctx, tenantID)
		if err != nil {
			return notFoundAs(err, tenant.ErrTenantNotFound)
		}
		b, err := tenant.NewBranch(t.ID(), name, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := uc.quota.reserve(ctx, tx, t.SubscriptionID(), usage.ResourceBranches); err != nil {
			return err
		}
		if err := tx.Branches().Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (uc *tenantUseCaseImpl) DeleteBranch(ctx context.Context, tenantID, branchID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Branches().FindByID(ctx, branchID)
		if err != nil {
			return notFoundAs(err, tenant.ErrBranchNotFound)
		}
		if b.TenantID() != tenantID {
			return tenant.ErrBranchNotFound
		}
		return notFoundAs(tx.Branches().Delete(ctx, b.ID()), tenant.ErrBranchNotFound)
	})
}

func (uc *tenantUseCaseImpl) RecountUsage(ctx context.Context, subscriptionID uuid.UUID) (usage.Counter, error) {
	var counter usage.Counter
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Usage().Recount(ctx, subscriptionID)
		if err != nil {
			return err
		}
		counter = c
		return nil
	})
	return counter, err
}
