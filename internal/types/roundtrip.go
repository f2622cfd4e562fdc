package types

type Direction string

type AccountType string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

const (
	// AccountTypeLive marks a trade executed entirely in real-money accounts.
	AccountTypeLive AccountType = "live"
	// AccountTypeTraining marks a trade executed entirely in simulated
	// accounts, identified by a configured account-name prefix.
	AccountTypeTraining AccountType = "training"
	// AccountTypeMixed marks a trade that touched both.
	AccountTypeMixed AccountType = "mixed"
)

// RoundTrip is a matched entry/exit sequence of fills for one symbol that
// starts at a flat position and returns to flat, or is left open at end of
// day. IDs are assigned after all round trips for a symbol on a day are
// known, so numbering is deterministic by chronological entry order.
type RoundTrip struct {
	// ID is "{date}-{symbol}-{sequence}" with a 1-based per-symbol sequence.
	ID        string    `yaml:"id" json:"id" csv:"id"`
	Date      string    `yaml:"date" json:"date" csv:"date"`
	Symbol    string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Direction Direction `yaml:"direction" json:"direction" csv:"direction"`
	// EntryPrice is the quantity-weighted average price over entry-side fills.
	EntryPrice float64 `yaml:"entry_price" json:"entry_price" csv:"entry_price"`
	// ExitPrice is the quantity-weighted average price over exit-side fills.
	// Zero when the position is still open at end of day.
	ExitPrice float64 `yaml:"exit_price" json:"exit_price" csv:"exit_price"`
	// TotalShares is max(entry-side quantity, exit-side quantity).
	TotalShares int `yaml:"total_shares" json:"total_shares" csv:"total_shares"`
	// GrossPnl is the sum of the constituent fills' reported P&L.
	GrossPnl float64 `yaml:"gross_pnl" json:"gross_pnl" csv:"gross_pnl"`
	// Fees is the sum of absolute fees.
	Fees float64 `yaml:"fees" json:"fees" csv:"fees"`
	// NetPnl equals GrossPnl. The broker feed's per-fill P&L already nets
	// fees, so fees are reported separately but never subtracted again.
	NetPnl          float64 `yaml:"net_pnl" json:"net_pnl" csv:"net_pnl"`
	FillCount       int     `yaml:"fill_count" json:"fill_count" csv:"fill_count"`
	EntryTime       string  `yaml:"entry_time" json:"entry_time" csv:"entry_time"`
	ExitTime        string  `yaml:"exit_time" json:"exit_time" csv:"exit_time"`
	DurationMinutes int     `yaml:"duration_minutes" json:"duration_minutes" csv:"duration_minutes"`
	// Accounts is the sorted set of accounts touched by this round trip.
	Accounts    []string    `yaml:"accounts" json:"accounts" csv:"accounts"`
	AccountType AccountType `yaml:"account_type" json:"account_type" csv:"account_type"`
	// Setup, Notes and Chart are optional annotations attached after
	// reconstruction; reconstruction never populates Setup or Notes.
	Setup string `yaml:"setup,omitempty" json:"setup,omitempty" csv:"setup"`
	Notes string `yaml:"notes,omitempty" json:"notes,omitempty" csv:"notes"`
	Chart string `yaml:"chart,omitempty" json:"chart,omitempty" csv:"chart"`
}

// IsWinner reports whether the round trip closed with positive net P&L.
func (r *RoundTrip) IsWinner() bool {
	return r.NetPnl > 0
}

// IsLoser reports whether the round trip closed with negative net P&L.
func (r *RoundTrip) IsLoser() bool {
	return r.NetPnl < 0
}
