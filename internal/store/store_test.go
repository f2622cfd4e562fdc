package store

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) SetupTest() {
	store, err := NewStore(":memory:", logger.NewNopLogger())
	s.Require().NoError(err)
	s.Require().NoError(store.Initialize())

	s.store = store
}

func (s *StoreTestSuite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *StoreTestSuite) sampleTrips() []types.RoundTrip {
	return []types.RoundTrip{
		{
			ID:              "2024-01-02-AAPL-1",
			Date:            "2024-01-02",
			Symbol:          "AAPL",
			Direction:       types.DirectionLong,
			EntryPrice:      150.00,
			ExitPrice:       152.50,
			TotalShares:     100,
			GrossPnl:        250.00,
			Fees:            1.00,
			NetPnl:          250.00,
			FillCount:       2,
			EntryTime:       "09:30:00",
			ExitTime:        "09:45:00",
			DurationMinutes: 15,
			Accounts:        []string{"A1"},
			AccountType:     types.AccountTypeLive,
		},
		{
			ID:              "2024-01-02-TSLA-1",
			Date:            "2024-01-02",
			Symbol:          "TSLA",
			Direction:       types.DirectionShort,
			EntryPrice:      200.00,
			ExitPrice:       201.00,
			TotalShares:     50,
			GrossPnl:        -50.00,
			Fees:            0.50,
			NetPnl:          -50.00,
			FillCount:       2,
			EntryTime:       "10:00:00",
			ExitTime:        "10:20:00",
			DurationMinutes: 20,
			Accounts:        []string{"TR1"},
			AccountType:     types.AccountTypeTraining,
			Setup:           "fade",
		},
	}
}

func (s *StoreTestSuite) TestSaveAndGetRoundTrips() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	trips, err := s.store.GetRoundTrips("2024-01-01", "2024-01-31", "")
	s.Require().NoError(err)
	s.Require().Len(trips, 2)

	s.Equal("2024-01-02-AAPL-1", trips[0].ID)
	s.Equal(types.DirectionLong, trips[0].Direction)
	s.Equal([]string{"A1"}, trips[0].Accounts)
	s.Equal("2024-01-02-TSLA-1", trips[1].ID)
	s.Equal("fade", trips[1].Setup)
}

func (s *StoreTestSuite) TestGetRoundTripsFiltersBySymbol() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	trips, err := s.store.GetRoundTrips("2024-01-01", "2024-01-31", "TSLA")
	s.Require().NoError(err)
	s.Require().Len(trips, 1)

	s.Equal("TSLA", trips[0].Symbol)
}

func (s *StoreTestSuite) TestSaveRoundTripsIsUpsert() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	trips, err := s.store.GetRoundTrips("2024-01-01", "2024-01-31", "")
	s.Require().NoError(err)

	s.Len(trips, 2)
}

func (s *StoreTestSuite) TestSaveRoundTripsKeepsOtherDays() {
	trips := s.sampleTrips()
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", trips))

	other := trips[0]
	other.ID = "2024-01-03-AAPL-1"
	other.Date = "2024-01-03"
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-03", []types.RoundTrip{other}))

	// Re-ingesting the first day must not touch the second.
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", trips))

	all, err := s.store.GetRoundTrips("2024-01-01", "2024-01-31", "")
	s.Require().NoError(err)

	s.Len(all, 3)
}

func (s *StoreTestSuite) TestGetRoundTrip() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	trip, err := s.store.GetRoundTrip("2024-01-02-AAPL-1")
	s.Require().NoError(err)
	s.Require().True(trip.IsSome())

	s.Equal(250.00, trip.Unwrap().NetPnl)

	missing, err := s.store.GetRoundTrip("2024-01-02-GME-1")
	s.Require().NoError(err)

	s.True(missing.IsNone())
}

func (s *StoreTestSuite) TestTagRoundTrip() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	err := s.store.TagRoundTrip("2024-01-02-AAPL-1", "breakout", "clean open drive", "charts/2024-01-02/AAPL.png")
	s.Require().NoError(err)

	trip, err := s.store.GetRoundTrip("2024-01-02-AAPL-1")
	s.Require().NoError(err)
	s.Require().True(trip.IsSome())

	tagged := trip.Unwrap()
	s.Equal("breakout", tagged.Setup)
	s.Equal("clean open drive", tagged.Notes)
	s.Equal("charts/2024-01-02/AAPL.png", tagged.Chart)
}

func (s *StoreTestSuite) TestTagRoundTripNotFound() {
	err := s.store.TagRoundTrip("2024-01-02-GME-1", "squeeze", "", "")
	s.Require().Error(err)

	s.True(errors.HasCode(err, errors.ErrCodeTradeNotFound))
}

func (s *StoreTestSuite) TestSaveFillsReportsProgress() {
	fills := []types.Fill{
		{
			Date: "2024-01-02", Time: "09:30:00", Symbol: "AAPL",
			Side: types.SideBuy, Price: 150.00, Quantity: 100, Account: "A1",
		},
		{
			Date: "2024-01-02", Time: "09:45:00", Symbol: "AAPL",
			Side: types.SideSell, Price: 152.50, Quantity: 100, Account: "A1",
		},
	}

	var calls []int
	onProgress := optional.Some(func(current, total int) {
		calls = append(calls, current)
		s.Equal(2, total)
	})

	s.Require().NoError(s.store.SaveFills("2024-01-02", fills, onProgress))

	s.Equal([]int{1, 2}, calls)
}

func (s *StoreTestSuite) TestSaveDailySummary() {
	summary := types.DailySummary{
		Date:        "2024-01-02",
		TotalTrades: 2,
		Winners:     1,
		Losers:      1,
		WinRate:     50.00,
		TotalPnl:    200.00,
		TotalFees:   1.50,
		TotalNetPnl: 200.00,
	}

	s.Require().NoError(s.store.SaveDailySummary(summary))

	stored, err := s.store.GetDailySummary("2024-01-02")
	s.Require().NoError(err)
	s.Require().True(stored.IsSome())

	s.Equal(200.00, stored.Unwrap().TotalNetPnl)

	missing, err := s.store.GetDailySummary("2024-01-03")
	s.Require().NoError(err)

	s.True(missing.IsNone())
}

func (s *StoreTestSuite) TestStatsBySetup() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	rows, err := s.store.StatsBySetup("2024-01-01", "2024-01-31")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	// Untagged AAPL trade outranks the losing fade by total P&L.
	s.Equal(types.SetupUntagged, rows[0].Key)
	s.Equal(250.00, rows[0].TotalPnl)
	s.Equal(100.00, rows[0].WinRate)

	s.Equal("fade", rows[1].Key)
	s.Equal(-50.00, rows[1].TotalPnl)
	s.Equal(0.00, rows[1].WinRate)
}

func (s *StoreTestSuite) TestStatsByAccountType() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	rows, err := s.store.StatsByAccountType("2024-01-01", "2024-01-31")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Equal("live", rows[0].Key)
	s.Equal(1, rows[0].TradeCount)
	s.Equal("training", rows[1].Key)
}

func (s *StoreTestSuite) TestStatsByTimeOfDay() {
	s.Require().NoError(s.store.SaveRoundTrips("2024-01-02", s.sampleTrips()))

	rows, err := s.store.StatsByTimeOfDay("2024-01-01", "2024-01-31")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	s.Equal("09:30-10:00", rows[0].Key)
	s.Equal("10:00-10:30", rows[1].Key)
}

func (s *StoreTestSuite) TestStatsByModeRejectsUnknownMode() {
	_, err := s.store.StatsByMode(types.GroupMode("bogus"), "2024-01-01", "2024-01-31")
	s.Require().Error(err)

	s.True(errors.HasCode(err, errors.ErrCodeInvalidGroupMode))
}

func (s *StoreTestSuite) TestStatsOnEmptyRange() {
	rows, err := s.store.StatsBySetup("2024-01-01", "2024-01-31")
	s.Require().NoError(err)

	s.Empty(rows)
}
