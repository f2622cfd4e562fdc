package types

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AccountBreakdown is the per-account-type slice of a DailySummary.
//
// Mixed trades are folded into the live bucket for P&L and win-rate purposes
// (a mixed trade is a live-risk event) while remaining visible here as a
// separate category for trade counts. The mixed row therefore carries a
// trade count but no P&L of its own.
type AccountBreakdown struct {
	// AccountType of this bucket.
	AccountType AccountType `yaml:"account_type" json:"account_type"`
	// TradeCount of trades classified exactly as this account type.
	TradeCount int `yaml:"trade_count" json:"trade_count"`
	// TotalPnl attributed to this bucket.
	TotalPnl float64 `yaml:"total_pnl" json:"total_pnl"`
	// Winners counted toward this bucket.
	Winners int `yaml:"winners" json:"winners"`
	// Losers counted toward this bucket.
	Losers int `yaml:"losers" json:"losers"`
	// WinRate in percent over winners+losers+breakeven of this bucket.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
}

// DailySummary aggregates one day's round trips. It is derived data,
// recomputed whenever the round-trip set for the day changes.
type DailySummary struct {
	// Date of this summary in YYYY-MM-DD format.
	Date string `yaml:"date" json:"date"`
	// TotalTrades is the count of all round trips for the day.
	TotalTrades int `yaml:"total_trades" json:"total_trades"`
	// Winners is the count of trades with positive net P&L.
	Winners int `yaml:"winners" json:"winners"`
	// Losers is the count of trades with negative net P&L.
	Losers int `yaml:"losers" json:"losers"`
	// Breakeven is the count of trades with exactly zero net P&L.
	Breakeven int `yaml:"breakeven" json:"breakeven"`
	// WinRate is winners/totalTrades in percent, 0 when there are no trades.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
	// TotalPnl is the raw sum of net P&L before final rounding.
	TotalPnl float64 `yaml:"total_pnl" json:"total_pnl"`
	// TotalFees is the sum of all fees.
	TotalFees float64 `yaml:"total_fees" json:"total_fees"`
	// TotalNetPnl is TotalPnl rounded to 2 decimal places.
	TotalNetPnl float64 `yaml:"total_net_pnl" json:"total_net_pnl"`
	// ByAccountType breaks the day down by live/training/mixed.
	ByAccountType []AccountBreakdown `yaml:"by_account_type" json:"by_account_type"`
}

// WriteDailySummary writes a daily summary to a YAML file.
func WriteDailySummary(path string, summary DailySummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal daily summary to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write daily summary to file: %w", err)
	}

	return nil
}

// ReadDailySummary reads a daily summary from a YAML file.
func ReadDailySummary(path string) (DailySummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DailySummary{}, fmt.Errorf("failed to read daily summary file: %w", err)
	}

	var summary DailySummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		return DailySummary{}, fmt.Errorf("failed to unmarshal daily summary: %w", err)
	}

	return summary, nil
}
