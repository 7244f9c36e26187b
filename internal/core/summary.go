package core

import "time"

type (
	// MonthCost is one month's contribution to a family's summary.
	MonthCost struct {
		Month string  `json:"month"`
		Cost  float64 `json:"cost"`
	}

	// SummaryEntry is the aggregated charge history for one family name
	// over a queried period. Built fresh per query, never persisted.
	SummaryEntry struct {
		Name      string      `json:"name"`
		TotalCost float64     `json:"totalCost"`
		Breakdown []MonthCost `json:"monthlyBreakdown"`
	}
)

// Aggregate groups per-family charges across all bills whose month falls in
// [start, end] and sums them into one entry per family name.
//
// The filter compares bill month tokens lexicographically against the
// formatted bounds; the token is year-first and zero-padded, so this is
// chronological comparison by construction.
//
// Grouping is by display name, as an explicit policy: two distinct families
// sharing a name merge into one entry, and a renamed family fragments its
// history into a new entry from the rename on. Entries appear in
// first-appearance order of each name in the filtered bill list, and each
// breakdown keeps the order bills were encountered in, without re-sorting
// by month.
//
// Charges come from the materialized bill (FamilyCharge), so extra costs
// count unconditionally here even though the allocator gates them on the
// enabled flag at calculation time. A range matching no bills yields an
// empty result, not an error.
func Aggregate(bills []Bill, start, end time.Time) []SummaryEntry {
	from := FormatBillMonth(start)
	to := FormatBillMonth(end)

	index := make(map[string]int)
	var entries []SummaryEntry

	for _, b := range bills {
		if b.BillMonth < from || b.BillMonth > to {
			continue
		}
		for _, p := range b.Families {
			cost := b.FamilyCharge(p)
			i, ok := index[p.Name]
			if !ok {
				i = len(entries)
				index[p.Name] = i
				entries = append(entries, SummaryEntry{Name: p.Name})
			}
			entries[i].TotalCost += cost
			entries[i].Breakdown = append(entries[i].Breakdown, MonthCost{
				Month: b.BillMonth,
				Cost:  cost,
			})
		}
	}
	return entries
}
