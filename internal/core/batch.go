package core

import (
	"errors"
	"fmt"
	"time"
)

// Validation failures of the batch generator. The single-bill path performs
// none of these checks; batch generation fails fast and emits no bills at
// all on the first violation.
var (
	ErrNoFamilies        = errors.New("no families selected")
	ErrMissingTotal      = errors.New("total cost missing or not a number")
	ErrInvertedRange     = errors.New("start month is after end month")
	ErrExtrasExceedTotal = errors.New("extra service costs exceed total cost")
)

// ValidationError annotates a batch precondition failure with the field it
// concerns. Unwrap yields the sentinel so callers can errors.Is against it.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// GenerateBatch produces one bill per calendar month from start to end
// inclusive, all sharing one per-line rate.
//
// Each selected family participates with its current member count as the
// line count for every generated month; line counts cannot vary
// month-to-month within a run. fixedExtras maps family ID to a fixed extra
// service cost; missing entries count as zero (leniency, not an error).
//
// Preconditions, checked before anything is generated:
//   - at least one family selected,
//   - start not after end (year+month comparison, days ignored),
//   - totalCost covers the summed extras, so the shared line cost is never
//     negative.
//
// Bill IDs combine the run-start timestamp with the iteration offset, so
// bills from one run collide neither with each other nor with bills saved
// earlier from their own timestamps.
func GenerateBatch(families []Family, fixedExtras map[int64]float64, totalCost float64, start, end, runStart time.Time) ([]Bill, error) {
	if len(families) == 0 {
		return nil, &ValidationError{Field: "families", Err: ErrNoFamilies}
	}
	if monthFloor(start).After(monthFloor(end)) {
		return nil, &ValidationError{Field: "months", Err: ErrInvertedRange}
	}

	parts := make([]Participation, len(families))
	var extraSum float64
	for i, f := range families {
		p := NewParticipation(f)
		if cost := fixedExtras[f.ID]; cost > 0 {
			p.Extra = ExtraService{Enabled: true, Cost: cost}
			extraSum += cost
		}
		parts[i] = p
	}
	if totalCost-extraSum < 0 {
		return nil, &ValidationError{Field: "totalCost", Err: ErrExtrasExceedTotal}
	}

	alloc := Allocate(totalCost, parts)

	months := MonthsInRange(start, end)
	bills := make([]Bill, len(months))
	for i, m := range months {
		families := make([]Participation, len(parts))
		copy(families, parts)
		bills[i] = Bill{
			ID:          runStart.UnixMilli() + int64(i),
			BillMonth:   FormatBillMonth(m),
			TotalCost:   totalCost,
			CostPerLine: alloc.CostPerLine,
			Families:    families,
		}
	}
	return bills, nil
}
