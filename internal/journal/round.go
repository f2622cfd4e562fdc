package journal

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// round2 rounds a decimal accumulator to 2 places at the reporting boundary.
// Intermediate sums stay unrounded so rounding error does not compound across
// many fills.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()

	return f
}

// secondsOfDay converts an HH:MM:SS string into seconds since midnight.
// Returns -1 for strings that do not parse, which sorts unparseable times
// first. The normalizer guarantees valid times on the ingest path.
func secondsOfDay(t string) int {
	parts := strings.SplitN(t, ":", 3)
	if len(parts) != 3 {
		return -1
	}

	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	s, errS := strconv.Atoi(parts[2])

	if errH != nil || errM != nil || errS != nil {
		return -1
	}

	return h*3600 + m*60 + s
}
