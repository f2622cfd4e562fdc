package store

import (
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"go.uber.org/zap"
)

// Store is the journal's persistence collaborator. Re-ingesting a day is an
// upsert: the day's fills, round trips and summary are replaced wholesale, so
// re-running reconstruction on the same export leaves the database unchanged.
//
// Reconstruction itself never depends on the store; when the database is
// unavailable the reconstructed output remains usable in memory.
type Store struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// NewStore opens a journal database at path. Use ":memory:" for an ephemeral
// store.
func NewStore(path string, log *logger.Logger) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to open journal database", err)
	}

	return &Store{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the journal tables.
func (s *Store) Initialize() error {
	// Fills are keyed by their natural key so the same execution is never
	// stored twice.
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS fills (
			date TEXT,
			time TEXT,
			symbol TEXT,
			side TEXT,
			price DOUBLE,
			quantity INTEGER,
			route TEXT,
			account TEXT,
			liquidity_type TEXT,
			fee DOUBLE,
			reported_pnl DOUBLE,
			PRIMARY KEY (date, time, symbol, side, price, quantity, account)
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create fills table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS round_trips (
			id TEXT PRIMARY KEY,
			date TEXT,
			symbol TEXT,
			direction TEXT,
			entry_price DOUBLE,
			exit_price DOUBLE,
			total_shares INTEGER,
			gross_pnl DOUBLE,
			fees DOUBLE,
			net_pnl DOUBLE,
			fill_count INTEGER,
			entry_time TEXT,
			exit_time TEXT,
			duration_minutes INTEGER,
			accounts TEXT,
			account_type TEXT,
			setup TEXT,
			notes TEXT,
			chart TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create round_trips table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_summaries (
			date TEXT PRIMARY KEY,
			total_trades INTEGER,
			winners INTEGER,
			losers INTEGER,
			breakeven INTEGER,
			win_rate DOUBLE,
			total_pnl DOUBLE,
			total_fees DOUBLE,
			total_net_pnl DOUBLE
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreInitFailed, "failed to create daily_summaries table", err)
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveFills replaces the stored fills for one trading day. onProgress, when
// present, is called after each row with (current, total).
func (s *Store) SaveFills(date string, fills []types.Fill, onProgress optional.Option[func(current, total int)]) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to begin transaction", err)
	}

	deleteQuery := s.sq.
		Delete("fills").
		Where(squirrel.Eq{"date": date}).
		RunWith(tx)

	if _, err = deleteQuery.Exec(); err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to clear day's fills", err)
	}

	for i, fill := range fills {
		insertQuery := s.sq.
			Insert("fills").
			Columns(
				"date", "time", "symbol", "side", "price", "quantity",
				"route", "account", "liquidity_type", "fee", "reported_pnl",
			).
			Values(
				fill.Date, fill.Time, fill.Symbol, fill.Side, fill.Price, fill.Quantity,
				fill.Route, fill.Account, fill.LiquidityType, fill.Fee, fill.ReportedPnl,
			).
			RunWith(tx)

		if _, err = insertQuery.Exec(); err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to insert fill", err)
		}

		if onProgress.IsSome() {
			onProgress.Unwrap()(i+1, len(fills))
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to commit fills", err)
	}

	s.log.Debug("Saved fills",
		zap.String("date", date),
		zap.Int("count", len(fills)),
	)

	return nil
}

// SaveRoundTrips replaces the stored round trips for one trading day.
func (s *Store) SaveRoundTrips(date string, trips []types.RoundTrip) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to begin transaction", err)
	}

	deleteQuery := s.sq.
		Delete("round_trips").
		Where(squirrel.Eq{"date": date}).
		RunWith(tx)

	if _, err = deleteQuery.Exec(); err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to clear day's round trips", err)
	}

	for _, trip := range trips {
		insertQuery := s.sq.
			Insert("round_trips").
			Columns(
				"id", "date", "symbol", "direction", "entry_price", "exit_price",
				"total_shares", "gross_pnl", "fees", "net_pnl", "fill_count",
				"entry_time", "exit_time", "duration_minutes", "accounts",
				"account_type", "setup", "notes", "chart",
			).
			Values(
				trip.ID, trip.Date, trip.Symbol, trip.Direction, trip.EntryPrice, trip.ExitPrice,
				trip.TotalShares, trip.GrossPnl, trip.Fees, trip.NetPnl, trip.FillCount,
				trip.EntryTime, trip.ExitTime, trip.DurationMinutes, strings.Join(trip.Accounts, ","),
				trip.AccountType, trip.Setup, trip.Notes, trip.Chart,
			).
			RunWith(tx)

		if _, err = insertQuery.Exec(); err != nil {
			tx.Rollback()

			return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to insert round trip", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to commit round trips", err)
	}

	s.log.Debug("Saved round trips",
		zap.String("date", date),
		zap.Int("count", len(trips)),
	)

	return nil
}

// SaveDailySummary upserts the summary for its date.
func (s *Store) SaveDailySummary(summary types.DailySummary) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to begin transaction", err)
	}

	deleteQuery := s.sq.
		Delete("daily_summaries").
		Where(squirrel.Eq{"date": summary.Date}).
		RunWith(tx)

	if _, err = deleteQuery.Exec(); err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to clear daily summary", err)
	}

	insertQuery := s.sq.
		Insert("daily_summaries").
		Columns(
			"date", "total_trades", "winners", "losers", "breakeven",
			"win_rate", "total_pnl", "total_fees", "total_net_pnl",
		).
		Values(
			summary.Date, summary.TotalTrades, summary.Winners, summary.Losers, summary.Breakeven,
			summary.WinRate, summary.TotalPnl, summary.TotalFees, summary.TotalNetPnl,
		).
		RunWith(tx)

	if _, err = insertQuery.Exec(); err != nil {
		tx.Rollback()

		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to insert daily summary", err)
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to commit daily summary", err)
	}

	return nil
}

// GetRoundTrips returns round trips within [start, end], newest day last.
// symbol narrows the result when non-empty.
func (s *Store) GetRoundTrips(start, end, symbol string) ([]types.RoundTrip, error) {
	selectQuery := s.sq.
		Select(
			"id", "date", "symbol", "direction", "entry_price", "exit_price",
			"total_shares", "gross_pnl", "fees", "net_pnl", "fill_count",
			"entry_time", "exit_time", "duration_minutes", "accounts",
			"account_type", "setup", "notes", "chart",
		).
		From("round_trips").
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC", "entry_time ASC", "id ASC")

	if symbol != "" {
		selectQuery = selectQuery.Where(squirrel.Eq{"symbol": symbol})
	}

	rows, err := selectQuery.RunWith(s.db).Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query round trips", err)
	}
	defer rows.Close()

	var trips []types.RoundTrip

	for rows.Next() {
		trip, scanErr := scanRoundTrip(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		trips = append(trips, trip)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating round trips", err)
	}

	return trips, nil
}

// GetRoundTrip looks a round trip up by its ID.
func (s *Store) GetRoundTrip(id string) (optional.Option[types.RoundTrip], error) {
	selectQuery := s.sq.
		Select(
			"id", "date", "symbol", "direction", "entry_price", "exit_price",
			"total_shares", "gross_pnl", "fees", "net_pnl", "fill_count",
			"entry_time", "exit_time", "duration_minutes", "accounts",
			"account_type", "setup", "notes", "chart",
		).
		From("round_trips").
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db)

	row := selectQuery.QueryRow()

	trip, err := scanRoundTrip(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return optional.None[types.RoundTrip](), nil
		}

		return optional.None[types.RoundTrip](), err
	}

	return optional.Some(trip), nil
}

// TagRoundTrip attaches the post-reconstruction annotations to a stored
// round trip. Empty values clear the corresponding annotation.
func (s *Store) TagRoundTrip(id, setup, notes, chart string) error {
	updateQuery := s.sq.
		Update("round_trips").
		Set("setup", setup).
		Set("notes", notes).
		Set("chart", chart).
		Where(squirrel.Eq{"id": id}).
		RunWith(s.db)

	result, err := updateQuery.Exec()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to tag round trip", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrCodeUpsertFailed, "failed to read rows affected", err)
	}

	if affected == 0 {
		return errors.Newf(errors.ErrCodeTradeNotFound, "round trip %s not found", id)
	}

	return nil
}

// GetDailySummary returns the stored summary for a date.
func (s *Store) GetDailySummary(date string) (optional.Option[types.DailySummary], error) {
	selectQuery := s.sq.
		Select(
			"date", "total_trades", "winners", "losers", "breakeven",
			"win_rate", "total_pnl", "total_fees", "total_net_pnl",
		).
		From("daily_summaries").
		Where(squirrel.Eq{"date": date}).
		RunWith(s.db)

	var summary types.DailySummary

	err := selectQuery.QueryRow().Scan(
		&summary.Date,
		&summary.TotalTrades,
		&summary.Winners,
		&summary.Losers,
		&summary.Breakeven,
		&summary.WinRate,
		&summary.TotalPnl,
		&summary.TotalFees,
		&summary.TotalNetPnl,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return optional.None[types.DailySummary](), nil
		}

		return optional.None[types.DailySummary](), errors.Wrap(errors.ErrCodeQueryFailed, "failed to query daily summary", err)
	}

	return optional.Some(summary), nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoundTrip(row rowScanner) (types.RoundTrip, error) {
	var (
		trip     types.RoundTrip
		accounts string
	)

	err := row.Scan(
		&trip.ID,
		&trip.Date,
		&trip.Symbol,
		&trip.Direction,
		&trip.EntryPrice,
		&trip.ExitPrice,
		&trip.TotalShares,
		&trip.GrossPnl,
		&trip.Fees,
		&trip.NetPnl,
		&trip.FillCount,
		&trip.EntryTime,
		&trip.ExitTime,
		&trip.DurationMinutes,
		&accounts,
		&trip.AccountType,
		&trip.Setup,
		&trip.Notes,
		&trip.Chart,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.RoundTrip{}, err
		}

		return types.RoundTrip{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan round trip", err)
	}

	if accounts != "" {
		trip.Accounts = strings.Split(accounts, ",")
	}

	return trip, nil
}
