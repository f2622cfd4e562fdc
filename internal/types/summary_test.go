package types

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadDailySummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.yaml")

	summary := DailySummary{
		Date:        "2024-01-02",
		TotalTrades: 2,
		Winners:     1,
		Losers:      1,
		WinRate:     50.00,
		TotalPnl:    200.00,
		TotalFees:   1.50,
		TotalNetPnl: 200.00,
		ByAccountType: []AccountBreakdown{
			{AccountType: AccountTypeLive, TradeCount: 2, TotalPnl: 200.00, Winners: 1, Losers: 1, WinRate: 50.00},
		},
	}

	require.NoError(t, WriteDailySummary(path, summary))

	loaded, err := ReadDailySummary(path)
	require.NoError(t, err)

	assert.Equal(t, summary, loaded)
}

func TestReadDailySummaryMissingFile(t *testing.T) {
	_, err := ReadDailySummary(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}
