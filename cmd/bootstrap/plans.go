package bootstrap

import (
	"log/slog"

	"loyalty-ledger/internal/infra/plans"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/usecase/queries"
	"loyalty-ledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var PlansModule = fx.Module("plans",
	fx.Provide(
		fx.Annotate(
			NewPlanCatalog,
			fx.As(new(shared.PlanCatalog)),
			fx.As(new(queries.PlanLimits)),
		),
	),
)

func NewPlanCatalog(cfg config.Config, logger *slog.Logger) (*plans.Catalog, error) {
	catalog, err := plans.Load(cfg.Ledger.PlanCatalogPath)
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0)
	for _, p := range catalog.Plans() {
		slugs = append(slugs, p.Slug)
	}
	logger.Info("plan catalog loaded", "path", cfg.Ledger.PlanCatalogPath, "plans", slugs)
	return catalog, nil
}
