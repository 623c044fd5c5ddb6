package components

import (
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	NewBusinessClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewPointsUseCase,
		commands.NewMembershipUseCase,
		commands.NewTenantUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLedgerQueries,
	),
)

// NewBusinessClock reports time in the zone rule weekday and hour conditions are written in.
func NewBusinessClock(cfg config.Config) (clock.Clock, error) {
	loc, err := cfg.Ledger.Location()
	if err != nil {
		return nil, err
	}
	return clock.NewZonedClock(loc), nil
}
