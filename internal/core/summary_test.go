package core

import (
	"testing"
	"time"
)

func summaryBills() []Bill {
	return []Bill{
		{
			ID: 1, BillMonth: "2024年 01月", TotalCost: 300, CostPerLine: 90,
			Families: []Participation{
				{FamilyID: 1, Name: "田中", Lines: 2},
				{FamilyID: 2, Name: "佐藤", Lines: 1, Extra: ExtraService{Enabled: true, Cost: 30}},
			},
		},
		{
			ID: 2, BillMonth: "2024年 02月", TotalCost: 330, CostPerLine: 100,
			Families: []Participation{
				{FamilyID: 1, Name: "田中", Lines: 2},
				{FamilyID: 2, Name: "佐藤", Lines: 1, Extra: ExtraService{Enabled: true, Cost: 30}},
			},
		},
		{
			ID: 3, BillMonth: "2024年 05月", TotalCost: 100, CostPerLine: 100,
			Families: []Participation{
				{FamilyID: 1, Name: "田中", Lines: 1},
			},
		},
	}
}

func TestAggregateSumsAndBreakdown(t *testing.T) {
	entries := Aggregate(summaryBills(),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC))

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	tanaka := entries[0]
	if tanaka.Name != "田中" {
		t.Fatalf("output must follow first-appearance order, got %q first", tanaka.Name)
	}
	if !almostEqual(tanaka.TotalCost, 180+200) {
		t.Fatalf("田中 total: expected 380, got %v", tanaka.TotalCost)
	}
	if len(tanaka.Breakdown) != 2 || tanaka.Breakdown[0].Month != "2024年 01月" {
		t.Fatalf("unexpected breakdown: %+v", tanaka.Breakdown)
	}

	sato := entries[1]
	if !almostEqual(sato.TotalCost, 120+130) {
		t.Fatalf("佐藤 total: expected 250, got %v", sato.TotalCost)
	}
}

func TestAggregateFiltersByMonthToken(t *testing.T) {
	entries := Aggregate(summaryBills(),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	if len(entries) != 1 {
		t.Fatalf("expected only the May bill, got %d entries", len(entries))
	}
	if len(entries[0].Breakdown) != 1 || entries[0].Breakdown[0].Month != "2024年 05月" {
		t.Fatalf("unexpected breakdown: %+v", entries[0].Breakdown)
	}
}

func TestAggregateEmptyRange(t *testing.T) {
	entries := Aggregate(summaryBills(),
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC))

	if len(entries) != 0 {
		t.Fatalf("range with no bills must yield empty result, got %d", len(entries))
	}
}

func TestAggregateExtraCountsUnconditionally(t *testing.T) {
	// A disabled-but-stored extra cost counts once the bill is materialized.
	bills := []Bill{{
		ID: 1, BillMonth: "2024年 03月", TotalCost: 100, CostPerLine: 50,
		Families: []Participation{
			{FamilyID: 1, Name: "田中", Lines: 2, Extra: ExtraService{Enabled: false, Cost: 40}},
		},
	}}

	entries := Aggregate(bills,
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	if !almostEqual(entries[0].TotalCost, 140) {
		t.Fatalf("expected 140 (extra applied unconditionally), got %v", entries[0].TotalCost)
	}
}

func TestAggregateMergesByName(t *testing.T) {
	// Distinct family IDs with the same display name collapse into one
	// entry; that is the documented grouping policy.
	bills := []Bill{
		{
			ID: 1, BillMonth: "2024年 01月", CostPerLine: 10,
			Families: []Participation{{FamilyID: 1, Name: "田中", Lines: 1}},
		},
		{
			ID: 2, BillMonth: "2024年 02月", CostPerLine: 10,
			Families: []Participation{{FamilyID: 7, Name: "田中", Lines: 3}},
		},
	}

	entries := Aggregate(bills,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	if len(entries) != 1 {
		t.Fatalf("same name must merge, got %d entries", len(entries))
	}
	if !almostEqual(entries[0].TotalCost, 40) {
		t.Fatalf("expected merged total 40, got %v", entries[0].TotalCost)
	}
}

func TestAggregateKeepsEncounterOrderWithinGroup(t *testing.T) {
	// Bills stored out of chronological order keep their stored order in the
	// breakdown; the aggregator never re-sorts.
	bills := []Bill{
		{ID: 2, BillMonth: "2024年 02月", CostPerLine: 10,
			Families: []Participation{{Name: "田中", Lines: 1}}},
		{ID: 1, BillMonth: "2024年 01月", CostPerLine: 10,
			Families: []Participation{{Name: "田中", Lines: 1}}},
	}

	entries := Aggregate(bills,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	bd := entries[0].Breakdown
	if bd[0].Month != "2024年 02月" || bd[1].Month != "2024年 01月" {
		t.Fatalf("breakdown re-sorted: %+v", bd)
	}
}
