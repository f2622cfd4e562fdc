package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Reconciliation records the cross-check between the reconstructor's own P&L
// total and the total independently reported by the broker's positions
// report. A discrepancy beyond tolerance is a warning, never a failure.
type Reconciliation struct {
	// ComputedTotal is Σ netPnl over the day's round trips.
	ComputedTotal float64 `yaml:"computed_total" json:"computed_total"`
	// ReportedTotal is the broker-reported daily realized P&L.
	ReportedTotal float64 `yaml:"reported_total" json:"reported_total"`
	// Delta is ComputedTotal - ReportedTotal.
	Delta float64 `yaml:"delta" json:"delta"`
	// WithinTolerance is true when |Delta| does not exceed the configured
	// tolerance.
	WithinTolerance bool `yaml:"within_tolerance" json:"within_tolerance"`
	// Checked is false when no positions report was available.
	Checked bool `yaml:"checked" json:"checked"`
}

// RunSummary describes one ingest run of a trading day.
type RunSummary struct {
	// ID is the unique identifier for this ingest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this run was executed.
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	// Date is the trading day that was ingested.
	Date string `yaml:"date" json:"date"`
	// FillCount is the number of canonical fills parsed.
	FillCount int `yaml:"fill_count" json:"fill_count"`
	// SkippedRows is the number of malformed rows dropped during parsing.
	SkippedRows int `yaml:"skipped_rows" json:"skipped_rows"`
	// RoundTripCount is the number of reconstructed round trips.
	RoundTripCount int `yaml:"round_trip_count" json:"round_trip_count"`
	// Summary is the day's aggregate.
	Summary DailySummary `yaml:"summary" json:"summary"`
	// Reconciliation is the cross-check result for the day.
	Reconciliation Reconciliation `yaml:"reconciliation" json:"reconciliation"`
	// DatabasePath is the path to the journal database.
	DatabasePath string `yaml:"database_path" json:"database_path"`
	// FillsFilePath is the path to the broker export that was ingested.
	FillsFilePath string `yaml:"fills_file_path" json:"fills_file_path"`
}

// WriteRunSummary writes an ingest run summary to a YAML file.
func WriteRunSummary(path string, summary RunSummary) error {
	data, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run summary to file: %w", err)
	}

	return nil
}
