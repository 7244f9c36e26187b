package core

import (
	"fmt"
	"time"
)

// billMonthLayout is the canonical bill month token, e.g. "2024年 03月".
// Year-first with a zero-padded month, so lexicographic comparison of two
// tokens is chronological comparison.
const billMonthLayout = "2006年 01月"

// FormatBillMonth renders the bill month token for t. Only year and month
// matter; the day is ignored.
func FormatBillMonth(t time.Time) string {
	return t.Format(billMonthLayout)
}

// ParseBillMonth parses a bill month token back into a time anchored at the
// first day of the month (UTC).
func ParseBillMonth(s string) (time.Time, error) {
	t, err := time.Parse(billMonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse bill month %q: %w", s, err)
	}
	return t, nil
}

// monthFloor truncates t to the first day of its month. Batch iteration and
// range comparison work on year+month only, so differing days of month on
// either bound must not affect the result.
func monthFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthsInRange returns the first day of every calendar month from start to
// end inclusive, advancing exactly one month per step. An inverted range
// yields nil.
func MonthsInRange(start, end time.Time) []time.Time {
	from, to := monthFloor(start), monthFloor(end)
	var months []time.Time
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
