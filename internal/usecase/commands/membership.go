package commands

//go:generate mockgen -source=membership.go -destination=../../../tests/mock/commands/membership_mock.go -package=commandsmock

import (
	"context"

	"loyalty-ledger/internal/domain/membership"
	"loyalty-ledger/internal/domain/tenant"
	"loyalty-ledger/internal/domain/usage"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type RegisterMembershipRequest struct {
	TenantID     uuid.UUID
	UserID       uuid.UUID
	ExternalCode string
}

type MembershipCommands interface {
	Register(ctx context.Context, req RegisterMembershipRequest) (*PointsResult, error)
	Unregister(ctx context.Context, tenantID, membershipID uuid.UUID) error
	SetStatus(ctx context.Context, tenantID, membershipID uuid.UUID, status membership.Status) (*membership.Membership, error)
}

type membershipUseCaseImpl struct {
	uow   shared.UnitOfWork
	quota quota
	clock clock.Clock
}

func NewMembershipUseCase(uow shared.UnitOfWork, plans shared.PlanCatalog, clk clock.Clock) MembershipCommands {
	return &membershipUseCaseImpl{uow: uow, quota: quota{plans: plans}, clock: clk}
}

func (uc *membershipUseCaseImpl) Register(ctx context.Context, req RegisterMembershipRequest) (*PointsResult, error) {
	var result *PointsResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		t, err := tx.Tenants().FindByID(ctx, req.TenantID)
		if err != nil {
			return notFoundAs(err, tenant.ErrTenantNotFound)
		}

		now := uc.clock.Now()
		m, err := membership.New(t.ID(), req.UserID, req.ExternalCode, now)
		if err != nil {
			return err
		}

		if err := uc.quota.reserve(ctx, tx, t.SubscriptionID(), usage.ResourceCustomers); err != nil {
			return err
		}

		initial, err := tx.Tiers().FindForBalance(ctx, t.ID(), 0)
		if err != nil {
			return err
		}
		m.AssignTier(initial, now)

		if err := tx.Memberships().Create(ctx, m); err != nil {
			return err
		}

		result = &PointsResult{Membership: m}
		if initial != nil {
			name := initial.Name()
			result.TierName = &name
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Unregister deletes the membership. Its ledger entries are kept.
func (uc *membershipUseCaseImpl) Unregister(ctx context.Context, tenantID, membershipID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Memberships().FindByIDForUpdate(ctx, membershipID)
		if err != nil {
			return notFoundAs(err, membership.ErrMembershipNotFound)
		}
		if m.TenantID() != tenantID {
			return membership.ErrMembershipNotFound
		}
		return notFoundAs(tx.Memberships().Delete(ctx, m.ID()), membership.ErrMembershipNotFound)
	})
}

func (uc *membershipUseCaseImpl) SetStatus(
	ctx context.Context,
	tenantID, membershipID uuid.UUID,
	status membership.Status,
) (*membership.Membership, error) {
	var updated *membership.Membership
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Memberships().FindByIDForUpdate(ctx, membershipID)
		if err != nil {
			return notFoundAs(err, membership.ErrMembershipNotFound)
		}
		if m.TenantID() != tenantID {
			return membership.ErrMembershipNotFound
		}
		if err := m.ChangeStatus(status, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Memberships().Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
