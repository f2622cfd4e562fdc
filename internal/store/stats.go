package store

import (
	"github.com/rxtech-lab/trade-journal/internal/stats"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

// StatsBySetup answers the setup grouping from stored round trips over a
// date range, untagged trades bucketed under the sentinel label and rows
// ordered by total P&L descending.
func (s *Store) StatsBySetup(start, end string) ([]types.GroupStat, error) {
	// Using raw SQL for the CTE query - Squirrel doesn't natively support
	// CTEs well.
	query := `
		WITH grouped AS (
			SELECT
				COALESCE(NULLIF(setup, ''), ?) AS key,
				COUNT(*) AS trade_count,
				SUM(net_pnl) AS total_pnl,
				AVG(net_pnl) AS avg_pnl,
				SUM(CASE WHEN net_pnl > 0 THEN 1 ELSE 0 END) AS winners,
				SUM(CASE WHEN net_pnl < 0 THEN 1 ELSE 0 END) AS losers
			FROM round_trips
			WHERE date >= ? AND date <= ?
			GROUP BY 1
		)
		SELECT
			key,
			trade_count,
			ROUND(total_pnl, 2) AS total_pnl,
			ROUND(avg_pnl, 2) AS avg_pnl,
			winners,
			losers,
			ROUND(CASE WHEN trade_count > 0 THEN CAST(winners AS DOUBLE) / trade_count * 100 ELSE 0 END, 2) AS win_rate
		FROM grouped
		ORDER BY total_pnl DESC, key ASC
	`

	return s.queryGroupStats(query, types.SetupUntagged, start, end)
}

// StatsByAccountType answers the account-type grouping from stored round
// trips over a date range, ordered by total P&L descending.
func (s *Store) StatsByAccountType(start, end string) ([]types.GroupStat, error) {
	query := `
		WITH grouped AS (
			SELECT
				account_type AS key,
				COUNT(*) AS trade_count,
				SUM(net_pnl) AS total_pnl,
				AVG(net_pnl) AS avg_pnl,
				SUM(CASE WHEN net_pnl > 0 THEN 1 ELSE 0 END) AS winners,
				SUM(CASE WHEN net_pnl < 0 THEN 1 ELSE 0 END) AS losers
			FROM round_trips
			WHERE date >= ? AND date <= ?
			GROUP BY 1
		)
		SELECT
			key,
			trade_count,
			ROUND(total_pnl, 2) AS total_pnl,
			ROUND(avg_pnl, 2) AS avg_pnl,
			winners,
			losers,
			ROUND(CASE WHEN trade_count > 0 THEN CAST(winners AS DOUBLE) / trade_count * 100 ELSE 0 END, 2) AS win_rate
		FROM grouped
		ORDER BY total_pnl DESC, key ASC
	`

	return s.queryGroupStats(query, start, end)
}

// StatsByTimeOfDay answers the entry-time grouping over a date range. The
// session buckets live in the stats engine, so this loads the range and
// delegates rather than duplicating the bucket boundaries in SQL.
func (s *Store) StatsByTimeOfDay(start, end string) ([]types.GroupStat, error) {
	trips, err := s.GetRoundTrips(start, end, "")
	if err != nil {
		return nil, err
	}

	return stats.ByTimeOfDay(trips), nil
}

// StatsByMode dispatches a stored-stats query by group mode.
func (s *Store) StatsByMode(mode types.GroupMode, start, end string) ([]types.GroupStat, error) {
	switch mode {
	case types.GroupBySetup:
		return s.StatsBySetup(start, end)
	case types.GroupByTimeOfDay:
		return s.StatsByTimeOfDay(start, end)
	case types.GroupByAccountType:
		return s.StatsByAccountType(start, end)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidGroupMode, "unknown group mode %q", mode)
	}
}

func (s *Store) queryGroupStats(query string, args ...any) ([]types.GroupStat, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query group stats", err)
	}
	defer rows.Close()

	var result []types.GroupStat

	for rows.Next() {
		var row types.GroupStat

		err := rows.Scan(
			&row.Key,
			&row.TradeCount,
			&row.TotalPnl,
			&row.AvgPnl,
			&row.Winners,
			&row.Losers,
			&row.WinRate,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan group stat", err)
		}

		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating group stats", err)
	}

	return result, nil
}
