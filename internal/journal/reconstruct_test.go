package journal

import (
	"testing"

	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReconstructor(t *testing.T, trainingPrefix string) *Reconstructor {
	t.Helper()

	return NewReconstructor(trainingPrefix, logger.NewNopLogger())
}

func fill(tm, symbol string, side types.Side, price float64, qty int, account string, fee, pnl float64) types.Fill {
	return types.Fill{
		Date:        "2024-01-02",
		Time:        tm,
		Symbol:      symbol,
		Side:        side,
		Price:       price,
		Quantity:    qty,
		Account:     account,
		Fee:         fee,
		ReportedPnl: pnl,
	}
}

func TestReconstructSimpleLongTrip(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	fills := []types.Fill{
		fill("09:30:00", "AAPL", types.SideBuy, 150.00, 100, "A1", 0.50, 0),
		fill("09:45:00", "AAPL", types.SideSell, 152.50, 100, "A1", 0.50, 250.00),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, "2024-01-02-AAPL-1", trip.ID)
	assert.Equal(t, types.DirectionLong, trip.Direction)
	assert.Equal(t, 150.00, trip.EntryPrice)
	assert.Equal(t, 152.50, trip.ExitPrice)
	assert.Equal(t, 100, trip.TotalShares)
	assert.Equal(t, 250.00, trip.GrossPnl)
	assert.Equal(t, 250.00, trip.NetPnl)
	assert.Equal(t, 1.00, trip.Fees)
	assert.Equal(t, 2, trip.FillCount)
	assert.Equal(t, "09:30:00", trip.EntryTime)
	assert.Equal(t, "09:45:00", trip.ExitTime)
	assert.Equal(t, 15, trip.DurationMinutes)
	assert.Equal(t, []string{"A1"}, trip.Accounts)
	assert.Equal(t, types.AccountTypeLive, trip.AccountType)
}

func TestReconstructScaleInUsesWeightedEntry(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	fills := []types.Fill{
		fill("09:31:00", "MSFT", types.SideBuy, 10.00, 100, "A1", 0, 0),
		fill("09:32:00", "MSFT", types.SideBuy, 11.00, 100, "A1", 0, 0),
		fill("09:40:00", "MSFT", types.SideSell, 12.00, 200, "A1", 0, 300.00),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 1)

	assert.Equal(t, 10.50, trips[0].EntryPrice)
	assert.Equal(t, 12.00, trips[0].ExitPrice)
	assert.Equal(t, 200, trips[0].TotalShares)
	assert.Equal(t, 3, trips[0].FillCount)
}

func TestReconstructShortTrip(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	fills := []types.Fill{
		fill("10:00:00", "TSLA", types.SideSellShort, 200.00, 50, "A1", 0.25, 0),
		fill("10:20:00", "TSLA", types.SideBuy, 198.00, 50, "A1", 0.25, 100.00),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, types.DirectionShort, trip.Direction)
	assert.Equal(t, 200.00, trip.EntryPrice)
	assert.Equal(t, 198.00, trip.ExitPrice)
	assert.Equal(t, 100.00, trip.NetPnl)
	assert.Equal(t, 20, trip.DurationMinutes)
}

func TestReconstructKeepsAccountsSeparate(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	// The same symbol traded concurrently in a live and a training account
	// must yield two round trips, never one merged trade.
	fills := []types.Fill{
		fill("09:30:00", "AAPL", types.SideBuy, 150.00, 100, "A1", 0, 0),
		fill("09:31:00", "AAPL", types.SideBuy, 150.10, 100, "TR1", 0, 0),
		fill("09:40:00", "AAPL", types.SideSell, 151.00, 100, "A1", 0, 100.00),
		fill("09:41:00", "AAPL", types.SideSell, 151.10, 100, "TR1", 0, 100.00),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 2)

	assert.Equal(t, "2024-01-02-AAPL-1", trips[0].ID)
	assert.Equal(t, types.AccountTypeLive, trips[0].AccountType)
	assert.Equal(t, []string{"A1"}, trips[0].Accounts)

	assert.Equal(t, "2024-01-02-AAPL-2", trips[1].ID)
	assert.Equal(t, types.AccountTypeTraining, trips[1].AccountType)
	assert.Equal(t, []string{"TR1"}, trips[1].Accounts)
}

func TestReconstructEmitsOpenPosition(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	fills := []types.Fill{
		fill("15:55:00", "NVDA", types.SideBuy, 500.00, 10, "A1", 0.10, 0),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, 500.00, trip.EntryPrice)
	assert.Equal(t, 0.00, trip.ExitPrice)
	assert.Equal(t, 10, trip.TotalShares)
	assert.Equal(t, 0, trip.DurationMinutes)
	assert.Equal(t, "15:55:00", trip.EntryTime)
	assert.Equal(t, "15:55:00", trip.ExitTime)
}

func TestReconstructPartialExitStaysPending(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	// Position never returns to flat until the last sell, so the whole
	// sequence is one round trip.
	fills := []types.Fill{
		fill("09:30:00", "AMD", types.SideBuy, 100.00, 200, "A1", 0, 0),
		fill("09:35:00", "AMD", types.SideSell, 101.00, 100, "A1", 0, 100.00),
		fill("09:40:00", "AMD", types.SideSell, 102.00, 100, "A1", 0, 200.00),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, 100.00, trip.EntryPrice)
	assert.Equal(t, 101.50, trip.ExitPrice)
	assert.Equal(t, 200, trip.TotalShares)
	assert.Equal(t, 300.00, trip.NetPnl)
	assert.Equal(t, 3, trip.FillCount)
}

func TestReconstructNumbersTripsChronologically(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	fills := []types.Fill{
		fill("10:00:00", "AAPL", types.SideBuy, 150.00, 100, "A1", 0, 0),
		fill("10:05:00", "AAPL", types.SideSell, 151.00, 100, "A1", 0, 100.00),
		fill("11:00:00", "AAPL", types.SideBuy, 152.00, 100, "A1", 0, 0),
		fill("11:05:00", "AAPL", types.SideSell, 151.00, 100, "A1", 0, -100.00),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 2)

	assert.Equal(t, "2024-01-02-AAPL-1", trips[0].ID)
	assert.Equal(t, "10:00:00", trips[0].EntryTime)
	assert.Equal(t, "2024-01-02-AAPL-2", trips[1].ID)
	assert.Equal(t, "11:00:00", trips[1].EntryTime)
}

func TestReconstructIgnoresInputOrder(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	// Broker exports often arrive reverse-chronological.
	ordered := []types.Fill{
		fill("09:30:00", "AAPL", types.SideBuy, 150.00, 100, "A1", 0.50, 0),
		fill("09:45:00", "AAPL", types.SideSell, 152.50, 100, "A1", 0.50, 250.00),
	}
	reversed := []types.Fill{ordered[1], ordered[0]}

	fromOrdered := r.Reconstruct("2024-01-02", ordered)
	fromReversed := r.Reconstruct("2024-01-02", reversed)

	assert.Equal(t, fromOrdered, fromReversed)
}

func TestReconstructIsIdempotent(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	fills := []types.Fill{
		fill("09:30:00", "AAPL", types.SideBuy, 150.00, 100, "A1", 0.50, 0),
		fill("09:30:00", "MSFT", types.SideBuy, 400.00, 50, "A1", 0.50, 0),
		fill("09:45:00", "AAPL", types.SideSell, 152.50, 100, "A1", 0.50, 250.00),
		fill("09:50:00", "MSFT", types.SideSell, 401.00, 50, "A1", 0.50, 50.00),
	}

	first := r.Reconstruct("2024-01-02", fills)
	second := r.Reconstruct("2024-01-02", fills)

	assert.Equal(t, first, second)
}

func TestReconstructConservesSharesAndPnl(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	fills := []types.Fill{
		fill("09:30:00", "AAPL", types.SideBuy, 150.00, 100, "A1", 0.50, 0),
		fill("09:45:00", "AAPL", types.SideSell, 152.50, 100, "A1", 0.50, 250.00),
		fill("10:00:00", "TSLA", types.SideSellShort, 200.00, 50, "TR1", 0.25, 0),
		fill("10:20:00", "TSLA", types.SideBuy, 201.00, 50, "TR1", 0.25, -50.00),
		fill("15:55:00", "NVDA", types.SideBuy, 500.00, 10, "A1", 0.10, 0),
	}

	trips := r.Reconstruct("2024-01-02", fills)
	require.Len(t, trips, 3)

	fillCount := 0
	for i := range trips {
		fillCount += trips[i].FillCount
	}

	assert.Equal(t, len(fills), fillCount)
	assert.Equal(t, 200.00, ComputedTotal(trips))
}

func TestReconstructEmptyDay(t *testing.T) {
	r := newTestReconstructor(t, "TR")

	trips := r.Reconstruct("2024-01-02", nil)

	assert.Empty(t, trips)
	assert.NotNil(t, trips)
}
