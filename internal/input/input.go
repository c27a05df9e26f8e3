// Package input turns raw user-entered field values into engine options.
//
// The only failure mode is invalid or missing input, and it is handled the
// same way everywhere: the field reads as 0 and the computation carries on.
package input

import (
	"math"
	"strconv"
	"strings"

	"parimutuel-advisor/internal/decision"
)

// Row holds the raw text of one option's fields.
type Row struct {
	Name    string
	WinRate string
	Pool    string
}

// ParseNumber parses a numeric field.
// Surrounding whitespace, a trailing "%" and "," / "_" digit grouping are
// accepted. Empty, unparseable and non-finite values report ok=false.
func ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	s = strings.NewReplacer(",", "", "_", "").Replace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Field is ParseNumber with invalid input degraded to 0.
func Field(raw string) float64 {
	v, _ := ParseNumber(raw)
	return v
}

// Options converts raw rows into engine options in the same order.
func Options(rows []Row) []decision.Option {
	opts := make([]decision.Option, len(rows))
	for i, r := range rows {
		opts[i] = decision.Option{
			Name:           strings.TrimSpace(r.Name),
			WinRatePercent: Field(r.WinRate),
			Pool:           Field(r.Pool),
		}
	}
	return opts
}
