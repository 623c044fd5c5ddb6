package bootstrap

import (
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		fx.Annotate(
			NewJWTService,
			fx.As(new(middleware.TokenValidator)),
		),
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	if cfg.Auth.Secret == "" {
		panic("AUTH_JWT_SECRET must not be empty")
	}
	return jwt.NewService(cfg.Auth.Secret, cfg.Auth.Issuer)
}
