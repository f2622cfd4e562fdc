package normalizer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rxtech-lab/trade-journal/internal/logger"
	"github.com/rxtech-lab/trade-journal/internal/types"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"go.uber.org/zap"
)

// Normalizer turns raw broker export rows into canonical fills. Its contract
// is simple: produce canonical fills or drop malformed rows; a bad row never
// aborts the batch.
type Normalizer struct {
	log *logger.Logger
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{
		log: log,
	}
}

// Required columns of a broker fills export. Column order varies between
// export presets, so the header line is mapped by name.
var requiredColumns = []string{"time", "symbol", "side", "price", "qty", "account"}

// headerAliases maps export column names onto canonical column keys.
var headerAliases = map[string]string{
	"time":      "time",
	"symbol":    "symbol",
	"symb":      "symbol",
	"side":      "side",
	"price":     "price",
	"qty":       "qty",
	"quantity":  "qty",
	"shares":    "qty",
	"route":     "route",
	"account":   "account",
	"acct":      "account",
	"liq":       "liquidity",
	"liquidity": "liquidity",
	"fee":       "fee",
	"ecn fee":   "fee",
	"comm":      "fee",
	"pnl":       "pnl",
	"p&l":       "pnl",
	"p/l":       "pnl",
	"realized":  "pnl",
}

// ParseFills reads a broker fills export for one trading day and returns the
// canonical fills plus the number of rows dropped. The first line must be a
// header; rows that fail validation are skipped, not fatal.
func (n *Normalizer) ParseFills(date string, r io.Reader) ([]types.Fill, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeParseFailed, "failed to read header line", err)
	}

	columns, err := mapHeader(header)
	if err != nil {
		return nil, 0, err
	}

	fills := make([]types.Fill, 0)
	skipped := 0
	rowNumber := 1

	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}

		rowNumber++

		if readErr != nil {
			skipped++

			n.log.Warn("Skipping unreadable row",
				zap.Int("row", rowNumber),
				zap.Error(readErr),
			)

			continue
		}

		fill, parseErr := n.parseRow(date, columns, record)
		if parseErr != nil {
			skipped++

			n.log.Warn("Skipping malformed row",
				zap.Int("row", rowNumber),
				zap.Error(parseErr),
			)

			continue
		}

		fills = append(fills, fill)
	}

	n.log.Debug("Parsed fills export",
		zap.String("date", date),
		zap.Int("fills", len(fills)),
		zap.Int("skipped", skipped),
	)

	return fills, skipped, nil
}

// mapHeader resolves the header line into column indexes by canonical key.
func mapHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int)

	for i, name := range header {
		key, ok := headerAliases[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			continue
		}

		// First occurrence wins; some exports repeat fee columns.
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}

	for _, required := range requiredColumns {
		if _, ok := columns[required]; !ok {
			return nil, errors.Newf(errors.ErrCodeMissingHeader, "export header is missing required column %q", required)
		}
	}

	return columns, nil
}

func (n *Normalizer) parseRow(date string, columns map[string]int, record []string) (types.Fill, error) {
	field := func(key string) string {
		index, ok := columns[key]
		if !ok || index >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[index])
	}

	side, err := parseSide(field("side"))
	if err != nil {
		return types.Fill{}, err
	}

	price, err := strconv.ParseFloat(field("price"), 64)
	if err != nil {
		return types.Fill{}, errors.Wrap(errors.ErrCodeMalformedRow, "unparseable price", err)
	}

	quantity, err := strconv.Atoi(field("qty"))
	if err != nil {
		return types.Fill{}, errors.Wrap(errors.ErrCodeMalformedRow, "unparseable quantity", err)
	}

	if quantity < 0 {
		quantity = -quantity
	}

	fee := 0.0

	if raw := field("fee"); raw != "" {
		fee, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Fill{}, errors.Wrap(errors.ErrCodeMalformedRow, "unparseable fee", err)
		}

		// Fees are stored as absolute cost regardless of the export's sign
		// convention.
		if fee < 0 {
			fee = -fee
		}
	}

	pnl := 0.0

	if raw := field("pnl"); raw != "" {
		pnl, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Fill{}, errors.Wrap(errors.ErrCodeMalformedRow, "unparseable pnl", err)
		}
	}

	fill := types.Fill{
		Date:          date,
		Time:          field("time"),
		Symbol:        strings.ToUpper(field("symbol")),
		Side:          side,
		Price:         price,
		Quantity:      quantity,
		Route:         field("route"),
		Account:       field("account"),
		LiquidityType: parseLiquidity(field("liquidity")),
		Fee:           fee,
		ReportedPnl:   pnl,
	}

	if err := fill.Validate(); err != nil {
		return types.Fill{}, err
	}

	return fill, nil
}

// parseSide normalizes the export's side codes. Short sales are kept
// distinct from plain sells even though both reduce the running position.
func parseSide(raw string) (types.Side, error) {
	switch strings.ToUpper(strings.ReplaceAll(raw, " ", "")) {
	case "B", "BUY":
		return types.SideBuy, nil
	case "S", "SELL", "SL":
		return types.SideSell, nil
	case "SS", "SHORT", "SELLSHORT":
		return types.SideSellShort, nil
	default:
		return "", errors.Newf(errors.ErrCodeUnknownSide, "unknown side %q", raw)
	}
}

func parseLiquidity(raw string) types.LiquidityType {
	switch strings.ToUpper(raw) {
	case "A", "ADD", "ADDED":
		return types.LiquidityAdded
	case "R", "REM", "REMOVED":
		return types.LiquidityRemoved
	default:
		return types.LiquidityType(strings.ToUpper(raw))
	}
}
