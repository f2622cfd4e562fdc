package journal

import (
	"fmt"
	"math"
	"sort"

	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Reconstructor rebuilds logical round trips from one day's unordered fill
// batch. It is stateless across invocations: every call works from the full
// fill set it is given, so re-running on the same input yields bit-identical
// output, including IDs.
type Reconstructor struct {
	trainingPrefix string
	log            *logger.Logger
}

// NewReconstructor creates a Reconstructor. trainingPrefix identifies
// simulated accounts by name prefix; empty disables training classification.
func NewReconstructor(trainingPrefix string, log *logger.Logger) *Reconstructor {
	return &Reconstructor{
		trainingPrefix: trainingPrefix,
		log:            log,
	}
}

// groupKey partitions fills for position tracking. Tracking must be per
// physical account: the same symbol may be traded independently and
// concurrently in a live and a training account on the same day, and merging
// them would corrupt the running position.
type groupKey struct {
	symbol  string
	account string
}

// groupState is the per-group accumulator. One value per group, discarded
// when the group completes; no state is shared across groups.
type groupState struct {
	position int
	buffer   []indexedFill
}

// indexedFill carries the original input position of a fill so that ties in
// time sort stably by input order.
type indexedFill struct {
	fill  types.Fill
	index int
}

// rawTrip is a round trip before ID assignment.
type rawTrip struct {
	trip         types.RoundTrip
	entrySeconds int
	firstIndex   int
}

// Reconstruct consumes an unordered list of fills for a single trading day
// and returns the day's round trips ordered by entry time across all
// symbols. A day with no fills yields an empty list.
//
// The reconstruction runs as two sequential groupings: first by
// (symbol, account) for correct position arithmetic, then by symbol alone to
// merge each symbol's trips across accounts, sort them by entry time and
// assign "{date}-{symbol}-{sequence}" IDs.
func (r *Reconstructor) Reconstruct(date string, fills []types.Fill) []types.RoundTrip {
	if len(fills) == 0 {
		return []types.RoundTrip{}
	}

	// Broker exports are typically reverse-chronological and must not be
	// trusted for ordering.
	sorted := make([]indexedFill, len(fills))
	for i, fill := range fills {
		sorted[i] = indexedFill{fill: fill, index: i}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return secondsOfDay(sorted[i].fill.Time) < secondsOfDay(sorted[j].fill.Time)
	})

	// Pass one: per-(symbol, account) position tracking. A group's pending
	// buffer becomes one round trip whenever its running position returns to
	// exactly zero.
	groups := make(map[groupKey]*groupState)

	var pending []rawTrip

	for _, f := range sorted {
		key := groupKey{symbol: f.fill.Symbol, account: f.fill.Account}

		state, ok := groups[key]
		if !ok {
			state = &groupState{position: 0, buffer: nil}
			groups[key] = state
		}

		state.buffer = append(state.buffer, f)
		state.position += f.fill.SignedQuantity()

		if state.position == 0 {
			pending = append(pending, r.buildRoundTrip(date, state.buffer))
			state.buffer = nil
		}
	}

	// Whatever did not return to flat by end of day is still emitted as one
	// round trip marking an open position. Positions are not carried across
	// days.
	openCount := 0

	for _, state := range groups {
		if len(state.buffer) > 0 {
			pending = append(pending, r.buildRoundTrip(date, state.buffer))
			openCount++
		}
	}

	// Pass two: merge per symbol, number chronologically.
	bySymbol := make(map[string][]*rawTrip)
	for i := range pending {
		bySymbol[pending[i].trip.Symbol] = append(bySymbol[pending[i].trip.Symbol], &pending[i])
	}

	for symbol, trips := range bySymbol {
		sort.SliceStable(trips, func(i, j int) bool {
			if trips[i].entrySeconds != trips[j].entrySeconds {
				return trips[i].entrySeconds < trips[j].entrySeconds
			}

			return trips[i].firstIndex < trips[j].firstIndex
		})

		for i, t := range trips {
			t.trip.ID = fmt.Sprintf("%s-%s-%d", date, symbol, i+1)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].entrySeconds != pending[j].entrySeconds {
			return pending[i].entrySeconds < pending[j].entrySeconds
		}

		return pending[i].firstIndex < pending[j].firstIndex
	})

	result := make([]types.RoundTrip, len(pending))
	for i := range pending {
		result[i] = pending[i].trip
	}

	r.log.Debug("Reconstructed round trips",
		zap.String("date", date),
		zap.Int("fills", len(fills)),
		zap.Int("round_trips", len(result)),
		zap.Int("open_positions", openCount),
	)

	return result
}

// buildRoundTrip closes one pending buffer into a RoundTrip. The buffer is
// never empty and is already in chronological order.
func (r *Reconstructor) buildRoundTrip(date string, buffer []indexedFill) rawTrip {
	first := buffer[0].fill
	last := buffer[len(buffer)-1].fill

	direction := types.DirectionShort
	if first.Side == types.SideBuy {
		direction = types.DirectionLong
	}

	var (
		entryAmount = decimal.Zero
		exitAmount  = decimal.Zero
		pnl         = decimal.Zero
		fees        = decimal.Zero
		entryQty    int
		exitQty     int
	)

	accountSet := make(map[string]struct{})

	for _, f := range buffer {
		fill := f.fill
		accountSet[fill.Account] = struct{}{}

		amount := decimal.NewFromFloat(fill.Price).Mul(decimal.NewFromInt(int64(fill.Quantity)))

		// Entry-side fills are those matching the opening side; the
		// complementary side is the exit side.
		isEntry := (fill.Side == types.SideBuy) == (direction == types.DirectionLong)
		if isEntry {
			entryAmount = entryAmount.Add(amount)
			entryQty += fill.Quantity
		} else {
			exitAmount = exitAmount.Add(amount)
			exitQty += fill.Quantity
		}

		pnl = pnl.Add(decimal.NewFromFloat(fill.ReportedPnl))
		fees = fees.Add(decimal.NewFromFloat(fill.Fee).Abs())
	}

	entryPrice := 0.0
	if entryQty > 0 {
		entryPrice = round2(entryAmount.Div(decimal.NewFromInt(int64(entryQty))))
	}

	exitPrice := 0.0
	if exitQty > 0 {
		exitPrice = round2(exitAmount.Div(decimal.NewFromInt(int64(exitQty))))
	}

	totalShares := entryQty
	if exitQty > totalShares {
		totalShares = exitQty
	}

	entrySeconds := secondsOfDay(first.Time)
	exitSeconds := secondsOfDay(last.Time)

	// Clamped at zero: same-second entry and exit can round to a negative
	// duration through time parsing.
	duration := int(math.Round(float64(exitSeconds-entrySeconds) / 60.0))
	if duration < 0 {
		duration = 0
	}

	accounts := make([]string, 0, len(accountSet))
	for account := range accountSet {
		accounts = append(accounts, account)
	}

	sort.Strings(accounts)

	grossPnl := round2(pnl)

	trip := types.RoundTrip{
		Date:        date,
		Symbol:      first.Symbol,
		Direction:   direction,
		EntryPrice:  entryPrice,
		ExitPrice:   exitPrice,
		TotalShares: totalShares,
		GrossPnl:    grossPnl,
		Fees:        round2(fees),
		// The feed's per-fill P&L already nets fees, so net equals gross.
		// Reported as observed; do not subtract fees here.
		NetPnl:          grossPnl,
		FillCount:       len(buffer),
		EntryTime:       first.Time,
		ExitTime:        last.Time,
		DurationMinutes: duration,
		Accounts:        accounts,
		AccountType:     ClassifyAccounts(accounts, r.trainingPrefix),
	}

	return rawTrip{
		trip:         trip,
		entrySeconds: entrySeconds,
		firstIndex:   buffer[0].index,
	}
}
