package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

type Side string

type LiquidityType string

const (
	SideBuy       Side = "BUY"
	SideSell      Side = "SELL"
	SideSellShort Side = "SELLSHORT"
)

const (
	LiquidityAdded   LiquidityType = "ADDED"
	LiquidityRemoved LiquidityType = "REMOVED"
)

// DateLayout is the layout for trading dates in all journal records.
const DateLayout = "2006-01-02"

// TimeLayout is the layout for intraday fill times. The broker export reports
// local exchange time with no date component.
const TimeLayout = "15:04:05"

// Fill is one canonical broker execution record for a single trading day.
// Fills are immutable once parsed; ordering within a day is not guaranteed by
// the source and must be established by the reconstructor.
type Fill struct {
	Date   string `yaml:"date" json:"date" csv:"date" validate:"required,datetime=2006-01-02"`
	Time   string `yaml:"time" json:"time" csv:"time" validate:"required,datetime=15:04:05"`
	Symbol string `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Side   Side   `yaml:"side" json:"side" csv:"side" validate:"required,oneof=BUY SELL SELLSHORT"`
	// Price is the execution price. Always positive.
	Price float64 `yaml:"price" json:"price" csv:"price" validate:"required,gt=0"`
	// Quantity is the executed share count. Always positive; the sign of the
	// position change is carried by Side.
	Quantity int    `yaml:"quantity" json:"quantity" csv:"quantity" validate:"required,gt=0"`
	Route    string `yaml:"route" json:"route" csv:"route"`
	// Account is an opaque broker account identifier.
	Account       string        `yaml:"account" json:"account" csv:"account" validate:"required"`
	LiquidityType LiquidityType `yaml:"liquidity_type" json:"liquidity_type" csv:"liquidity_type"`
	// Fee is the absolute fee cost for this fill.
	Fee float64 `yaml:"fee" json:"fee" csv:"fee" validate:"gte=0"`
	// ReportedPnl is the realized P&L the broker feed attributes to this fill.
	// It is authoritative and already nets fees; the reconstructor only
	// aggregates it, never recomputes it from prices.
	ReportedPnl float64 `yaml:"reported_pnl" json:"reported_pnl" csv:"reported_pnl"`
}

// SignedQuantity returns the position delta of this fill: a buy adds shares,
// a sell or short sale subtracts them. The feed does not distinguish
// sell-to-close from short-sell-to-open.
func (f *Fill) SignedQuantity() int {
	if f.Side == SideBuy {
		return f.Quantity
	}

	return -f.Quantity
}

// Timestamp combines Date and Time into a single point in time.
func (f *Fill) Timestamp() (time.Time, error) {
	ts, err := time.Parse(DateLayout+" "+TimeLayout, f.Date+" "+f.Time)
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidTime, err, "invalid fill timestamp %s %s", f.Date, f.Time)
	}

	return ts, nil
}

// Validate validates the Fill struct.
func (f *Fill) Validate() error {
	validate := validator.New()
	if err := validate.Struct(f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFill, "invalid fill", err)
	}

	return nil
}
