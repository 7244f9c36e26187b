package services

import (
	"context"
	"testing"
	"time"

	"warikan/internal/core"
	"warikan/internal/store/memory"
)

func TestSummaryServiceAggregate(t *testing.T) {
	st := memory.New()
	bills := []core.Bill{
		{
			ID: 1, BillMonth: "2024年 01月", TotalCost: 300, CostPerLine: 90,
			Families: []core.Participation{
				{FamilyID: 1, Name: "A", Lines: 2},
				{FamilyID: 2, Name: "B", Lines: 1, Extra: core.ExtraService{Enabled: true, Cost: 30}},
			},
		},
		{
			ID: 2, BillMonth: "2024年 02月", TotalCost: 300, CostPerLine: 90,
			Families: []core.Participation{
				{FamilyID: 1, Name: "A", Lines: 2},
			},
		},
		{
			ID: 3, BillMonth: "2024年 05月", TotalCost: 999, CostPerLine: 333,
			Families: []core.Participation{
				{FamilyID: 1, Name: "A", Lines: 1},
			},
		},
	}
	if err := st.SaveBills(context.Background(), bills); err != nil {
		t.Fatalf("seed bills: %v", err)
	}

	svc := NewSummaryService(st)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	entries, err := svc.Aggregate(context.Background(), start, end)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "A" || entries[0].TotalCost != 360 {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Name != "B" || entries[1].TotalCost != 120 {
		t.Fatalf("unexpected second entry: %+v", entries[1])
	}
	if len(entries[0].Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown months for A, got %+v", entries[0].Breakdown)
	}
}

func TestSummaryServiceAggregateEmptyRange(t *testing.T) {
	svc := NewSummaryService(memory.New())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	entries, err := svc.Aggregate(context.Background(), start, start)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %+v", entries)
	}
}
