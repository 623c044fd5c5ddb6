package bootstrap

import (
	"loyalty-ledger/internal/handler"
	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/infra/metrics"
	"loyalty-ledger/internal/pkg/config"
	"loyalty-ledger/internal/usecase/commands"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewMetricsRecorder,
		NewLedgerMetrics,
		NewObservability,
	),
)

func NewMetricsRecorder(cfg config.Config) *metrics.Recorder {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.NewRecorder(cfg.Metrics)
}

func NewLedgerMetrics(rec *metrics.Recorder) commands.Metrics {
	if rec == nil {
		return commands.NopMetrics()
	}
	return rec
}

func NewObservability(l *middleware.Logger, rec *metrics.Recorder) handler.Observability {
	obs := handler.Observability{Logger: l}
	if rec != nil {
		obs.Metrics = rec
	}
	return obs
}
