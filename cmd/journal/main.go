package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "journal",
		Usage: "Reconstruct broker fills into round-trip trades and analyze them",
		Commands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "Ingest one trading day's fills export",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "date",
						Aliases:  []string{"d"},
						Usage:    "Trading date in `YYYY-MM-DD` format",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "fills",
						Aliases: []string{"f"},
						Usage:   "Path to the fills CSV export (defaults to {data_folder}/{date}.csv)",
					},
					&cli.StringFlag{
						Name:    "positions",
						Aliases: []string{"p"},
						Usage:   "Optional path to a positions report for the P&L cross-check",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the journal config YAML",
					},
				},
				Action: ingestAction,
			},
			{
				Name:  "stats",
				Usage: "Grouped statistics over stored round trips",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "start",
						Aliases:  []string{"s"},
						Usage:    "Start date in `YYYY-MM-DD` format",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "end",
						Aliases:  []string{"e"},
						Usage:    "End date in `YYYY-MM-DD` format",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "group-by",
						Aliases: []string{"g"},
						Usage:   "Grouping mode: setup, time or account",
						Value:   string(types.GroupBySetup),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Optional path to also write the rows as YAML",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the journal config YAML",
					},
				},
				Action: statsAction,
			},
			{
				Name:  "tag",
				Usage: "Attach setup/notes/chart annotations to a stored round trip",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Round trip ID, e.g. 2024-01-02-AAPL-1",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "setup",
						Usage: "Playbook/strategy tag",
					},
					&cli.StringFlag{
						Name:  "notes",
						Usage: "Free-form notes",
					},
					&cli.StringFlag{
						Name:  "chart",
						Usage: "Chart image reference",
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the journal config YAML",
					},
				},
				Action: tagAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the journal config",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		// A day without usable fills is a clean exit, not a failure.
		if errors.IsEmptyDayError(err) {
			fmt.Println(err.Error())

			return
		}

		log.Fatal(err)
	}
}
