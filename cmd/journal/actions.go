package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rxtech-lab/trade-journal/internal/config"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/render"
	"github.com/rxtech-lab/trade-journal/internal/store"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// statsAction answers grouped statistics over the stored round trips. Unlike
// ingest, this path requires the database: there is nothing to compute from
// otherwise.
func statsAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	start := cmd.String("start")
	end := cmd.String("end")

	for _, date := range []string{start, end} {
		if _, err := time.Parse(types.DateLayout, date); err != nil {
			return fmt.Errorf("invalid date %q: %w", date, err)
		}
	}

	if end < start {
		return fmt.Errorf("end date %s precedes start date %s", end, start)
	}

	mode := types.GroupMode(cmd.String("group-by"))

	db, err := store.NewStore(cfg.DatabasePath, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		return err
	}

	rows, err := db.StatsByMode(mode, start, end)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Printf("no stored round trips between %s and %s\n", start, end)

		return nil
	}

	title := fmt.Sprintf("stats by %s, %s to %s", mode, start, end)
	if err := render.RenderGroupStats(os.Stdout, title, rows); err != nil {
		return err
	}

	if output := cmd.String("output"); output != "" {
		if err := types.WriteGroupStats(output, rows); err != nil {
			return err
		}

		log.Info("Wrote grouped stats",
			zap.String("path", output),
		)
	}

	return nil
}

// tagAction attaches setup/notes/chart annotations to a stored round trip.
// Annotations never feed back into reconstruction arithmetic.
func tagAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := store.NewStore(cfg.DatabasePath, log)
	if err != nil {
		return err
	}
	defer db.Close()

	id := cmd.String("id")

	if err := db.TagRoundTrip(id, cmd.String("setup"), cmd.String("notes"), cmd.String("chart")); err != nil {
		return err
	}

	fmt.Printf("tagged %s\n", id)

	return nil
}

// schemaAction prints the config JSON schema for editor integration.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	cfg := config.DefaultConfig()

	schema, err := cfg.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}
