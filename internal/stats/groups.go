package stats

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/shopspring/decimal"
)

// timeBucket is one fixed entry-time window of the trading session. Buckets
// are non-overlapping and ordered; a trade falls into the last bucket whose
// lower bound it reaches, so the final bucket is open-ended.
type timeBucket struct {
	label    string
	startSec int
}

// sessionBuckets spans a regular 09:30-16:00 session in half-hour windows.
// Entries before the open land in the pre-market bucket instead of being
// dropped.
var sessionBuckets = []timeBucket{
	{label: "pre-market", startSec: 0},
	{label: "09:30-10:00", startSec: 9*3600 + 30*60},
	{label: "10:00-10:30", startSec: 10 * 3600},
	{label: "10:30-11:00", startSec: 10*3600 + 30*60},
	{label: "11:00-11:30", startSec: 11 * 3600},
	{label: "11:30-12:00", startSec: 11*3600 + 30*60},
	{label: "12:00-12:30", startSec: 12 * 3600},
	{label: "12:30-13:00", startSec: 12*3600 + 30*60},
	{label: "13:00-13:30", startSec: 13 * 3600},
	{label: "13:30-14:00", startSec: 13*3600 + 30*60},
	{label: "14:00-14:30", startSec: 14 * 3600},
	{label: "14:30-15:00", startSec: 14*3600 + 30*60},
	{label: "15:00-15:30", startSec: 15 * 3600},
	{label: "15:30+", startSec: 15*3600 + 30*60},
}

// groupAccumulator collects one GroupStat row before rounding.
type groupAccumulator struct {
	count   int
	pnl     decimal.Decimal
	winners int
	losers  int
}

// BySetup groups a round-trip collection by setup tag, bucketing untagged
// trades under the sentinel label. Rows are sorted by total P&L descending.
func BySetup(trips []types.RoundTrip) []types.GroupStat {
	return groupBy(trips, func(trip *types.RoundTrip) string {
		if trip.Setup == "" {
			return types.SetupUntagged
		}

		return trip.Setup
	}, sortByPnlDesc)
}

// ByAccountType groups a round-trip collection by account type, sorted by
// total P&L descending.
func ByAccountType(trips []types.RoundTrip) []types.GroupStat {
	return groupBy(trips, func(trip *types.RoundTrip) string {
		return string(trip.AccountType)
	}, sortByPnlDesc)
}

// ByTimeOfDay groups a round-trip collection into fixed entry-time windows.
// Rows keep the session's natural bucket order; empty buckets are omitted.
func ByTimeOfDay(trips []types.RoundTrip) []types.GroupStat {
	rows := groupBy(trips, func(trip *types.RoundTrip) string {
		return bucketLabel(trip.EntryTime)
	}, nil)

	order := make(map[string]int, len(sessionBuckets))
	for i, bucket := range sessionBuckets {
		order[bucket.label] = i
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return order[rows[i].Key] < order[rows[j].Key]
	})

	return rows
}

// ByMode dispatches to the grouping selected by mode. Unknown modes return
// false.
func ByMode(trips []types.RoundTrip, mode types.GroupMode) ([]types.GroupStat, bool) {
	switch mode {
	case types.GroupBySetup:
		return BySetup(trips), true
	case types.GroupByTimeOfDay:
		return ByTimeOfDay(trips), true
	case types.GroupByAccountType:
		return ByAccountType(trips), true
	default:
		return nil, false
	}
}

// groupBy accumulates rows with decimal sums and rounds only at row
// construction. sortRows may be nil when the caller orders rows itself.
func groupBy(trips []types.RoundTrip, keyOf func(*types.RoundTrip) string, sortRows func([]types.GroupStat)) []types.GroupStat {
	groups := make(map[string]*groupAccumulator)

	for i := range trips {
		trip := &trips[i]
		key := keyOf(trip)

		acc, ok := groups[key]
		if !ok {
			acc = &groupAccumulator{
				count:   0,
				pnl:     decimal.Zero,
				winners: 0,
				losers:  0,
			}
			groups[key] = acc
		}

		acc.count++
		acc.pnl = acc.pnl.Add(decimal.NewFromFloat(trip.NetPnl))

		switch {
		case trip.IsWinner():
			acc.winners++
		case trip.IsLoser():
			acc.losers++
		}
	}

	rows := make([]types.GroupStat, 0, len(groups))

	for key, acc := range groups {
		avg := decimal.Zero
		if acc.count > 0 {
			avg = acc.pnl.Div(decimal.NewFromInt(int64(acc.count)))
		}

		rows = append(rows, types.GroupStat{
			Key:        key,
			TradeCount: acc.count,
			TotalPnl:   round2(acc.pnl),
			AvgPnl:     round2(avg),
			Winners:    acc.winners,
			Losers:     acc.losers,
			WinRate:    winRate(acc.winners, acc.count),
		})
	}

	if sortRows != nil {
		sortRows(rows)
	}

	return rows
}

// sortByPnlDesc orders rows by total P&L descending, breaking ties by key so
// output is deterministic.
func sortByPnlDesc(rows []types.GroupStat) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].TotalPnl != rows[j].TotalPnl {
			return rows[i].TotalPnl > rows[j].TotalPnl
		}

		return rows[i].Key < rows[j].Key
	})
}

// bucketLabel maps an HH:MM:SS entry time onto its session bucket.
func bucketLabel(entryTime string) string {
	sec := entryTimeSeconds(entryTime)

	label := sessionBuckets[0].label

	for _, bucket := range sessionBuckets {
		if sec >= bucket.startSec {
			label = bucket.label
		}
	}

	return label
}

func entryTimeSeconds(t string) int {
	parts := strings.SplitN(t, ":", 3)
	if len(parts) != 3 {
		return 0
	}

	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	s, errS := strconv.Atoi(parts[2])

	if errH != nil || errM != nil || errS != nil {
		return 0
	}

	return h*3600 + m*60 + s
}
