// Package render turns journal records into human-readable terminal output.
// Structured output goes through the YAML writers in the types package.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rxtech-lab/trade-journal/internal/types"
)

// RenderRoundTrips writes a table of round trips.
func RenderRoundTrips(w io.Writer, trips []types.RoundTrip) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tSIDE\tSHARES\tENTRY\tEXIT\tNET P&L\tFEES\tDUR(m)\tACCT\tSETUP")

	for i := range trips {
		trip := &trips[i]

		exit := fmt.Sprintf("%.2f", trip.ExitPrice)
		if trip.ExitPrice == 0 {
			exit = "open"
		}

		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\t%.2f\t%.2f\t%d\t%s\t%s\n",
			trip.ID,
			trip.Direction,
			trip.TotalShares,
			trip.EntryPrice,
			exit,
			trip.NetPnl,
			trip.Fees,
			trip.DurationMinutes,
			trip.AccountType,
			trip.Setup,
		)
	}

	return tw.Flush()
}

// RenderDailySummary writes a one-day aggregate block.
func RenderDailySummary(w io.Writer, summary types.DailySummary) error {
	fmt.Fprintf(w, "%s: %d trades, %d winners / %d losers / %d breakeven, win rate %.2f%%\n",
		summary.Date,
		summary.TotalTrades,
		summary.Winners,
		summary.Losers,
		summary.Breakeven,
		summary.WinRate,
	)
	fmt.Fprintf(w, "net P&L %.2f, fees %.2f\n", summary.TotalNetPnl, summary.TotalFees)

	if len(summary.ByAccountType) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ACCOUNT TYPE\tTRADES\tNET P&L\tWINNERS\tLOSERS\tWIN RATE")

	for _, bucket := range summary.ByAccountType {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%d\t%d\t%.2f%%\n",
			strings.ToUpper(string(bucket.AccountType)),
			bucket.TradeCount,
			bucket.TotalPnl,
			bucket.Winners,
			bucket.Losers,
			bucket.WinRate,
		)
	}

	return tw.Flush()
}

// RenderGroupStats writes a grouped statistics table under a title.
func RenderGroupStats(w io.Writer, title string, rows []types.GroupStat) error {
	fmt.Fprintln(w, title)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "GROUP\tTRADES\tTOTAL P&L\tAVG P&L\tWINNERS\tLOSERS\tWIN RATE")

	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%d\t%d\t%.2f%%\n",
			row.Key,
			row.TradeCount,
			row.TotalPnl,
			row.AvgPnl,
			row.Winners,
			row.Losers,
			row.WinRate,
		)
	}

	return tw.Flush()
}
