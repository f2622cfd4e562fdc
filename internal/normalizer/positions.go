package normalizer

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// realizedColumnNames are accepted header names for the realized P&L column
// of a positions report.
var realizedColumnNames = []string{"realized pnl", "realized p&l", "realized", "closed pnl", "pnl"}

// ParseReportedPnl reads a broker positions report and returns the day's
// independently reported realized P&L total, summed across accounts. The
// result feeds the reconciliation cross-check.
func (n *Normalizer) ParseReportedPnl(r io.Reader) (float64, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeParseFailed, "failed to read positions report header", err)
	}

	column := -1

	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		for _, candidate := range realizedColumnNames {
			if normalized == candidate {
				column = i

				break
			}
		}

		if column >= 0 {
			break
		}
	}

	if column < 0 {
		return 0, errors.New(errors.ErrCodeMissingHeader, "positions report has no realized pnl column")
	}

	total := decimal.Zero
	rowNumber := 1

	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}

		rowNumber++

		if readErr != nil || column >= len(record) {
			n.log.Warn("Skipping unreadable positions row",
				zap.Int("row", rowNumber),
			)

			continue
		}

		value, parseErr := strconv.ParseFloat(strings.TrimSpace(record[column]), 64)
		if parseErr != nil {
			n.log.Warn("Skipping positions row with unparseable realized pnl",
				zap.Int("row", rowNumber),
				zap.Error(parseErr),
			)

			continue
		}

		total = total.Add(decimal.NewFromFloat(value))
	}

	result, _ := total.Round(2).Float64()

	return result, nil
}
