package journal

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/shopspring/decimal"
)

// DefaultReconcileTolerance is the allowed divergence, in currency units,
// between the reconstructor's P&L total and the broker-reported total before
// a warning is raised.
const DefaultReconcileTolerance = 0.50

// ReconcileWarning describes a P&L divergence beyond tolerance. It is
// surfaced to the caller and never blocks output.
type ReconcileWarning struct {
	ComputedTotal float64
	ReportedTotal float64
	Delta         float64
}

// ComputedTotal sums net P&L over a round-trip collection with decimal
// accumulation, rounding only the final result.
func ComputedTotal(trips []types.RoundTrip) float64 {
	total := decimal.Zero
	for i := range trips {
		total = total.Add(decimal.NewFromFloat(trips[i].NetPnl))
	}

	return round2(total)
}

// Reconcile compares the reconstructed P&L total against an independently
// reported daily total. Returns Some warning when the divergence exceeds
// tolerance, None otherwise.
func Reconcile(trips []types.RoundTrip, reportedTotal float64, tolerance float64) optional.Option[ReconcileWarning] {
	computed := ComputedTotal(trips)

	delta := round2(decimal.NewFromFloat(computed).Sub(decimal.NewFromFloat(reportedTotal)))
	if delta >= -tolerance && delta <= tolerance {
		return optional.None[ReconcileWarning]()
	}

	return optional.Some(ReconcileWarning{
		ComputedTotal: computed,
		ReportedTotal: reportedTotal,
		Delta:         delta,
	})
}
