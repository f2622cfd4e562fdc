package types

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GroupMode selects how a round-trip collection is grouped for statistics.
type GroupMode string

const (
	GroupBySetup       GroupMode = "setup"
	GroupByTimeOfDay   GroupMode = "time"
	GroupByAccountType GroupMode = "account"
)

// SetupUntagged is the sentinel bucket for trades without a setup tag.
const SetupUntagged = "untagged"

// GroupStat is one grouped statistic row (per setup tag, entry-time bucket or
// account type). It has no identity of its own; it is derived from a
// round-trip collection.
type GroupStat struct {
	// Key is the group label (setup tag, time bucket or account type).
	Key string `yaml:"key" json:"key"`
	// TradeCount of trades in this group.
	TradeCount int `yaml:"trade_count" json:"trade_count"`
	// TotalPnl of the group, rounded at presentation.
	TotalPnl float64 `yaml:"total_pnl" json:"total_pnl"`
	// AvgPnl is the arithmetic mean net P&L per trade, not quantity weighted.
	AvgPnl float64 `yaml:"avg_pnl" json:"avg_pnl"`
	// Winners counted in this group.
	Winners int `yaml:"winners" json:"winners"`
	// Losers counted in this group.
	Losers int `yaml:"losers" json:"losers"`
	// WinRate in percent over the group's trade count.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
}

// WriteGroupStats writes grouped statistic rows to a YAML file.
func WriteGroupStats(path string, stats []GroupStat) error {
	data, err := yaml.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal group stats to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write group stats to file: %w", err)
	}

	return nil
}
