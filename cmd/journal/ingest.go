package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/charts"
	"github.com/rxtech-lab/trade-journal/internal/config"
	"github.com/rxtech-lab/trade-journal/internal/journal"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/normalizer"
	"github.com/rxtech-lab/trade-journal/internal/render"
	"github.com/rxtech-lab/trade-journal/internal/stats"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// ingestAction runs one full day: parse, reconstruct, aggregate, reconcile,
// persist, render. Reconstruction is pure; all I/O happens strictly before
// or after it.
func ingestAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	date := cmd.String("date")
	if _, err := time.Parse(types.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	fillsPath := cmd.String("fills")
	if fillsPath == "" {
		fillsPath = filepath.Join(cfg.DataFolder, date+".csv")
	}

	fillsFile, err := os.Open(fillsPath)
	if err != nil {
		return fmt.Errorf("failed to open fills export: %w", err)
	}
	defer fillsFile.Close()

	norm := normalizer.NewNormalizer(log)

	fills, skipped, err := norm.ParseFills(date, fillsFile)
	if err != nil {
		return err
	}

	if skipped > 0 {
		log.Warn("Dropped malformed rows",
			zap.Int("skipped", skipped),
		)
	}

	// Empty input is a terminal condition, not a fault; main treats this
	// error type as a clean exit.
	if len(fills) == 0 {
		log.Info("No usable fills, nothing to reconstruct",
			zap.String("date", date),
		)

		return errors.NewEmptyDayError(date)
	}

	reconstructor := journal.NewReconstructor(cfg.TrainingAccountPrefix, log)
	trips := reconstructor.Reconstruct(date, fills)

	finder := charts.NewFinder(cfg.ChartsFolder)
	for i := range trips {
		if chart := finder.Lookup(date, trips[i].Symbol); chart.IsSome() {
			trips[i].Chart = chart.Unwrap()
		}
	}

	summary := stats.Aggregate(date, trips)

	reconciliation := reconcile(cmd.String("positions"), norm, trips, cfg.ReconcileTolerance, log)

	persistDay(cfg, log, date, fills, trips, summary)

	if err := render.RenderRoundTrips(os.Stdout, trips); err != nil {
		return err
	}

	if err := render.RenderDailySummary(os.Stdout, summary); err != nil {
		return err
	}

	runSummary := types.RunSummary{
		ID:             uuid.New().String(),
		Timestamp:      time.Now(),
		Date:           date,
		FillCount:      len(fills),
		SkippedRows:    skipped,
		RoundTripCount: len(trips),
		Summary:        summary,
		Reconciliation: reconciliation,
		DatabasePath:   cfg.DatabasePath,
		FillsFilePath:  fillsPath,
	}

	resultDir := filepath.Join(cfg.ResultsFolder, date)
	if err := os.MkdirAll(resultDir, 0755); err != nil {
		return fmt.Errorf("failed to create results folder: %w", err)
	}

	if err := types.WriteDailySummary(filepath.Join(resultDir, "daily.yaml"), summary); err != nil {
		return err
	}

	if err := types.WriteRunSummary(filepath.Join(resultDir, "summary.yaml"), runSummary); err != nil {
		return err
	}

	return nil
}

// reconcile runs the cross-check against a positions report when one was
// given. A divergence beyond tolerance is surfaced as a warning and never
// blocks output.
func reconcile(positionsPath string, norm *normalizer.Normalizer, trips []types.RoundTrip, tolerance float64, log *logger.Logger) types.Reconciliation {
	computed := journal.ComputedTotal(trips)

	result := types.Reconciliation{
		ComputedTotal:   computed,
		ReportedTotal:   0,
		Delta:           0,
		WithinTolerance: true,
		Checked:         false,
	}

	if positionsPath == "" {
		return result
	}

	positionsFile, err := os.Open(positionsPath)
	if err != nil {
		log.Warn("Positions report unavailable, skipping cross-check",
			zap.String("path", positionsPath),
			zap.Error(err),
		)

		return result
	}
	defer positionsFile.Close()

	reported, err := norm.ParseReportedPnl(positionsFile)
	if err != nil {
		log.Warn("Failed to parse positions report, skipping cross-check",
			zap.Error(err),
		)

		return result
	}

	result.Checked = true
	result.ReportedTotal = reported
	result.Delta = computed - reported

	if warning := journal.Reconcile(trips, reported, tolerance); warning.IsSome() {
		w := warning.Unwrap()
		result.Delta = w.Delta
		result.WithinTolerance = false

		log.Warn("Computed P&L diverges from reported total",
			zap.Float64("computed", w.ComputedTotal),
			zap.Float64("reported", w.ReportedTotal),
			zap.Float64("delta", w.Delta),
		)
	}

	return result
}

// persistDay upserts the day into the journal database. Storage being
// unavailable is not fatal: the reconstruction already succeeded and its
// output is still rendered and written as YAML.
func persistDay(cfg config.Config, log *logger.Logger, date string, fills []types.Fill, trips []types.RoundTrip, summary types.DailySummary) {
	db, err := store.NewStore(cfg.DatabasePath, log)
	if err != nil {
		log.Warn("Journal database unavailable, keeping results in memory only",
			zap.Error(err),
		)

		return
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Warn("Failed to initialize journal database, keeping results in memory only",
			zap.Error(err),
		)

		return
	}

	bar := progressbar.Default(int64(len(fills)), "persisting fills")
	onProgress := optional.Some(func(current, total int) {
		_ = bar.Set(current)
	})

	if err := db.SaveFills(date, fills, onProgress); err != nil {
		log.Warn("Failed to persist fills",
			zap.Error(err),
		)

		return
	}

	if err := db.SaveRoundTrips(date, trips); err != nil {
		log.Warn("Failed to persist round trips",
			zap.Error(err),
		)

		return
	}

	if err := db.SaveDailySummary(summary); err != nil {
		log.Warn("Failed to persist daily summary",
			zap.Error(err),
		)
	}
}
