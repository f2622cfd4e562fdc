package stats

import (
	"testing"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trip(accountType types.AccountType, netPnl, fees float64) types.RoundTrip {
	return types.RoundTrip{
		Date:        "2024-01-02",
		Symbol:      "AAPL",
		NetPnl:      netPnl,
		GrossPnl:    netPnl,
		Fees:        fees,
		AccountType: accountType,
	}
}

func TestAggregateEmptyDay(t *testing.T) {
	summary := Aggregate("2024-01-02", nil)

	assert.Equal(t, "2024-01-02", summary.Date)
	assert.Equal(t, 0, summary.TotalTrades)
	assert.Equal(t, 0.00, summary.WinRate)
	assert.Empty(t, summary.ByAccountType)
}

func TestAggregateCountsOutcomes(t *testing.T) {
	trips := []types.RoundTrip{
		trip(types.AccountTypeLive, 100.00, 1.00),
		trip(types.AccountTypeLive, -40.00, 1.00),
		trip(types.AccountTypeLive, 0.00, 0.50),
	}

	summary := Aggregate("2024-01-02", trips)

	assert.Equal(t, 3, summary.TotalTrades)
	assert.Equal(t, 1, summary.Winners)
	assert.Equal(t, 1, summary.Losers)
	assert.Equal(t, 1, summary.Breakeven)
	assert.Equal(t, 33.33, summary.WinRate)
	assert.Equal(t, 60.00, summary.TotalNetPnl)
	assert.Equal(t, 2.50, summary.TotalFees)
}

func TestAggregateSplitsAccountTypes(t *testing.T) {
	trips := []types.RoundTrip{
		trip(types.AccountTypeLive, 100.00, 1.00),
		trip(types.AccountTypeTraining, -25.00, 0.50),
		trip(types.AccountTypeTraining, 75.00, 0.50),
	}

	summary := Aggregate("2024-01-02", trips)
	require.Len(t, summary.ByAccountType, 2)

	live := summary.ByAccountType[0]
	assert.Equal(t, types.AccountTypeLive, live.AccountType)
	assert.Equal(t, 1, live.TradeCount)
	assert.Equal(t, 100.00, live.TotalPnl)
	assert.Equal(t, 100.00, live.WinRate)

	training := summary.ByAccountType[1]
	assert.Equal(t, types.AccountTypeTraining, training.AccountType)
	assert.Equal(t, 2, training.TradeCount)
	assert.Equal(t, 50.00, training.TotalPnl)
	assert.Equal(t, 50.00, training.WinRate)
}

func TestAggregateFoldsMixedPnlIntoLive(t *testing.T) {
	trips := []types.RoundTrip{
		trip(types.AccountTypeLive, 100.00, 1.00),
		trip(types.AccountTypeMixed, 50.00, 1.00),
	}

	summary := Aggregate("2024-01-02", trips)
	require.Len(t, summary.ByAccountType, 2)

	// The mixed trade's P&L and win land in the live bucket; the mixed row
	// keeps the trade visible for counting only.
	live := summary.ByAccountType[0]
	assert.Equal(t, types.AccountTypeLive, live.AccountType)
	assert.Equal(t, 1, live.TradeCount)
	assert.Equal(t, 150.00, live.TotalPnl)
	assert.Equal(t, 2, live.Winners)

	mixed := summary.ByAccountType[1]
	assert.Equal(t, types.AccountTypeMixed, mixed.AccountType)
	assert.Equal(t, 1, mixed.TradeCount)
	assert.Equal(t, 0.00, mixed.TotalPnl)
	assert.Equal(t, 0, mixed.Winners)
}

func TestWinRateZeroOnEmpty(t *testing.T) {
	assert.Equal(t, 0.00, winRate(0, 0))
	assert.Equal(t, 66.67, winRate(2, 3))
}
