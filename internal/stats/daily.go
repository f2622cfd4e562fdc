package stats

import (
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/shopspring/decimal"
)

// MixedCountsAsLive is the account-breakdown policy: a mixed trade touched a
// real-money account, so its P&L and win/loss outcome belong to the live
// bucket. The mixed category stays visible in the breakdown for trade counts
// only. Changing this constant changes reported live P&L.
const MixedCountsAsLive = true

// pnlBucketFor returns the breakdown bucket that receives a trade's P&L and
// win/loss outcome.
func pnlBucketFor(accountType types.AccountType) types.AccountType {
	if MixedCountsAsLive && accountType == types.AccountTypeMixed {
		return types.AccountTypeLive
	}

	return accountType
}

// accountBucket accumulates one breakdown row. pnlTrades counts the trades
// whose outcome was folded into this bucket, which differs from TradeCount
// for the live bucket when mixed trades are present.
type accountBucket struct {
	tradeCount int
	pnlTrades  int
	pnl        decimal.Decimal
	winners    int
	losers     int
}

// Aggregate folds one day's round trips into a DailySummary. An empty day
// produces a zero summary with a zero win rate, never NaN.
func Aggregate(date string, trips []types.RoundTrip) types.DailySummary {
	summary := types.DailySummary{
		Date:          date,
		ByAccountType: []types.AccountBreakdown{},
	}

	totalPnl := decimal.Zero
	totalFees := decimal.Zero
	buckets := make(map[types.AccountType]*accountBucket)

	for i := range trips {
		trip := &trips[i]

		summary.TotalTrades++

		switch {
		case trip.IsWinner():
			summary.Winners++
		case trip.IsLoser():
			summary.Losers++
		default:
			summary.Breakeven++
		}

		totalPnl = totalPnl.Add(decimal.NewFromFloat(trip.NetPnl))
		totalFees = totalFees.Add(decimal.NewFromFloat(trip.Fees))

		countBucket := bucketFor(buckets, trip.AccountType)
		countBucket.tradeCount++

		pnlBucket := bucketFor(buckets, pnlBucketFor(trip.AccountType))
		pnlBucket.pnlTrades++
		pnlBucket.pnl = pnlBucket.pnl.Add(decimal.NewFromFloat(trip.NetPnl))

		switch {
		case trip.IsWinner():
			pnlBucket.winners++
		case trip.IsLoser():
			pnlBucket.losers++
		}
	}

	summary.TotalPnl, _ = totalPnl.Float64()
	summary.TotalFees = round2(totalFees)
	summary.TotalNetPnl = round2(totalPnl)
	summary.WinRate = winRate(summary.Winners, summary.TotalTrades)

	// Fixed ordering so re-aggregation is deterministic.
	for _, accountType := range []types.AccountType{types.AccountTypeLive, types.AccountTypeTraining, types.AccountTypeMixed} {
		bucket, ok := buckets[accountType]
		if !ok {
			continue
		}

		summary.ByAccountType = append(summary.ByAccountType, types.AccountBreakdown{
			AccountType: accountType,
			TradeCount:  bucket.tradeCount,
			TotalPnl:    round2(bucket.pnl),
			Winners:     bucket.winners,
			Losers:      bucket.losers,
			WinRate:     winRate(bucket.winners, bucket.pnlTrades),
		})
	}

	return summary
}

func bucketFor(buckets map[types.AccountType]*accountBucket, accountType types.AccountType) *accountBucket {
	bucket, ok := buckets[accountType]
	if !ok {
		bucket = &accountBucket{
			tradeCount: 0,
			pnlTrades:  0,
			pnl:        decimal.Zero,
			winners:    0,
			losers:     0,
		}
		buckets[accountType] = bucket
	}

	return bucket
}

// winRate returns winners/total as a percentage rounded to 2 places, 0 when
// total is zero.
func winRate(winners, total int) float64 {
	if total == 0 {
		return 0
	}

	rate := decimal.NewFromInt(int64(winners)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(decimal.NewFromInt(100))

	return round2(rate)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()

	return f
}
