package commands

import "loyalty-ledger/internal/domain/ledger"

// Metrics receives ledger outcomes. The prometheus implementation lives in infra/metrics.
type Metrics interface {
	EntryApplied(kind ledger.Kind, points int64)
	TierChanged()
	ReferenceConflict(replay bool)
}

type nopMetrics struct{}

func (nopMetrics) EntryApplied(ledger.Kind, int64) {}
func (nopMetrics) TierChanged()                    {}
func (nopMetrics) ReferenceConflict(bool)          {}

func NopMetrics() Metrics { return nopMetrics{} }
