package bootstrap

import (
	"loyalty-ledger/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	CacheModule,
	MetricsModule,
	PlansModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
