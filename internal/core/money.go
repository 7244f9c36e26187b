// Package core holds the bill-splitting domain: families, bills, the cost
// allocator, batch generation and period aggregation. Everything in here is
// pure and synchronous; persistence and transport live elsewhere.
package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAmount marks a cost field that is absent, non-numeric or
// negative where a strict parse was required.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a user-entered cost field leniently: blank or
// non-numeric input contributes zero instead of raising an error. This
// mirrors how the input forms behave and is a documented policy, not a
// defect. A comma decimal separator is accepted.
func ParseAmount(s string) float64 {
	v, err := parseDecimal(s)
	if err != nil {
		return 0
	}
	return v
}

// ParseDecimal parses a cost field strictly. The batch generator requires
// its total cost to be present and parseable, unlike every other cost field.
// Negative values are rejected; costs are never negative by construction.
func ParseDecimal(s string) (float64, error) {
	return parseDecimal(s)
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// RoundDisplay rounds to two decimals for presentation. Internal
// accumulation is never rounded between steps; only rendered output is.
func RoundDisplay(v float64) float64 {
	return math.Round(v*100) / 100
}
