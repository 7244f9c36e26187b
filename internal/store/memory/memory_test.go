package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"warikan/internal/core"
)

func TestSaveAndReadBack(t *testing.T) {
	s := New()
	ctx := context.Background()

	families := []core.Family{
		{ID: 1, Name: "田中", Members: []core.Member{{ID: 1, Name: "太郎"}}},
	}
	if err := s.SaveFamilies(ctx, families); err != nil {
		t.Fatalf("save families: %v", err)
	}

	got, err := s.Families(ctx)
	if err != nil {
		t.Fatalf("read families: %v", err)
	}
	if !reflect.DeepEqual(got, families) {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, families)
	}
}

func TestCallersCannotMutateStoredState(t *testing.T) {
	s := New()
	ctx := context.Background()

	bills := []core.Bill{{
		ID: 1, BillMonth: "2024年 01月", TotalCost: 300, CostPerLine: 90,
		Families: []core.Participation{{FamilyID: 1, Name: "田中", Lines: 2}},
	}}
	if err := s.SaveBills(ctx, bills); err != nil {
		t.Fatalf("save bills: %v", err)
	}

	// Mutate both the slice we saved and the slice we read back.
	bills[0].Families[0].Lines = 99
	read, _ := s.Bills(ctx)
	read[0].Families[0].Name = "mutated"

	fresh, _ := s.Bills(ctx)
	if fresh[0].Families[0].Lines != 2 || fresh[0].Families[0].Name != "田中" {
		t.Fatalf("stored state leaked: %+v", fresh[0].Families[0])
	}
}

func TestBillRoundTripStructurallyIdentical(t *testing.T) {
	// Saving a bill and reloading the collection must preserve id, month,
	// costs and family ordering exactly, including through JSON.
	bill := core.Bill{
		ID: 1700000000000, BillMonth: "2024年 03月", TotalCost: 412.8, CostPerLine: 68.8,
		Families: []core.Participation{
			{FamilyID: 2, Name: "佐藤", Lines: 1, Extra: core.ExtraService{Enabled: true, Cost: 30}},
			{FamilyID: 1, Name: "田中", Lines: 5},
		},
	}

	data, err := json.Marshal([]core.Bill{bill})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded []core.Bill
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded, []core.Bill{bill}) {
		t.Fatalf("JSON round trip changed the bill:\n%+v\n%+v", decoded, bill)
	}
}

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	seed := []core.Family{{ID: 1, Name: "田中"}}
	data, _ := json.Marshal(seed)
	if err := os.WriteFile(filepath.Join(dir, "families.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewFromFiles(dir)
	got, _ := s.Families(context.Background())
	if len(got) != 1 || got[0].Name != "田中" {
		t.Fatalf("seed not loaded: %+v", got)
	}

	// Missing files are fine.
	empty := NewFromFiles(filepath.Join(dir, "nope"))
	bills, _ := empty.Bills(context.Background())
	if len(bills) != 0 {
		t.Fatalf("expected empty store, got %+v", bills)
	}
}
