package components

import (
	"loyalty-ledger/internal/handler"
	"loyalty-ledger/internal/handler/api"
	"loyalty-ledger/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewPointsHandler,
		api.NewMembershipHandler,
		api.NewTenantHandler,
		middleware.NewAuthMiddleware,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(points *api.PointsHandler, memberships *api.MembershipHandler, tenants *api.TenantHandler) handler.Handlers {
	return handler.Handlers{
		Points:     points,
		Membership: memberships,
		Tenant:     tenants,
	}
}
