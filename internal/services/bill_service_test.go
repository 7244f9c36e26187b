package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"warikan/internal/core"
	"warikan/internal/store/memory"
)

func seedFamilies(t *testing.T, st *memory.Store, families ...core.Family) {
	t.Helper()
	if err := st.SaveFamilies(context.Background(), families); err != nil {
		t.Fatalf("seed families: %v", err)
	}
}

func TestBillServiceCalculateDoesNotPersist(t *testing.T) {
	st := memory.New()
	svc := NewBillService(st)

	bill := svc.Calculate(context.Background(), "2024年 03月", 300, []core.Participation{
		{FamilyID: 1, Name: "A", Lines: 2},
		{FamilyID: 2, Name: "B", Lines: 1, Extra: core.ExtraService{Enabled: true, Cost: 30}},
	})

	if bill.ID != 0 {
		t.Fatalf("draft should have ID 0, got %d", bill.ID)
	}
	if bill.CostPerLine != 90 {
		t.Fatalf("expected rate 90, got %v", bill.CostPerLine)
	}

	bills, _ := st.Bills(context.Background())
	if len(bills) != 0 {
		t.Fatalf("calculate persisted a bill: %+v", bills)
	}
}

func TestBillServiceSaveAssignsTimestampID(t *testing.T) {
	svc := NewBillService(memory.New())
	svc.now = fixedClock(1700000000000)

	draft := core.Bill{
		BillMonth: "2024年 03月",
		TotalCost: 300,
		Families:  []core.Participation{{FamilyID: 1, Name: "A", Lines: 2}},
	}
	saved, err := svc.Save(context.Background(), draft)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID != 1700000000000 {
		t.Fatalf("expected timestamp ID, got %d", saved.ID)
	}

	again, err := svc.Save(context.Background(), draft)
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if again.ID == saved.ID {
		t.Fatalf("IDs collide: %d", again.ID)
	}
}

func TestBillServiceSaveRejectsInvalid(t *testing.T) {
	svc := NewBillService(memory.New())

	_, err := svc.Save(context.Background(), core.Bill{
		BillMonth: "March 2024",
		TotalCost: 300,
		Families:  []core.Participation{{Name: "A", Lines: 1}},
	})
	if !errors.Is(err, core.ErrBadBillMonth) {
		t.Fatalf("expected ErrBadBillMonth, got %v", err)
	}
}

func TestBillServiceGetAndDelete(t *testing.T) {
	svc := NewBillService(memory.New())

	saved, err := svc.Save(context.Background(), core.Bill{
		BillMonth: "2024年 03月",
		TotalCost: 300,
		Families:  []core.Participation{{FamilyID: 1, Name: "A", Lines: 2}},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := svc.Get(context.Background(), saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.BillMonth != "2024年 03月" {
		t.Fatalf("unexpected bill: %+v", got)
	}

	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), saved.ID); !errors.Is(err, ErrBillNotFound) {
		t.Fatalf("expected ErrBillNotFound after delete, got %v", err)
	}
}

func TestBillServiceGenerateBatchPersistsWholeRun(t *testing.T) {
	st := memory.New()
	seedFamilies(t, st,
		core.Family{ID: 1, Name: "A", Members: []core.Member{{ID: 11, Name: "a1"}, {ID: 12, Name: "a2"}}},
		core.Family{ID: 2, Name: "B", Members: []core.Member{{ID: 21, Name: "b1"}}},
	)
	svc := NewBillService(st)
	svc.now = fixedClock(1700000000000)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	batch, err := svc.GenerateBatch(context.Background(), []int64{1, 2}, map[int64]float64{2: 30}, 300, start, end)
	if err != nil {
		t.Fatalf("generate batch: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("expected 3 bills, got %d", len(batch))
	}
	for i, b := range batch {
		if want := int64(1700000000000 + i); b.ID != want {
			t.Fatalf("bill %d: expected ID %d, got %d", i, want, b.ID)
		}
	}

	bills, _ := st.Bills(context.Background())
	if len(bills) != 3 {
		t.Fatalf("expected 3 persisted bills, got %d", len(bills))
	}
}

func TestBillServiceGenerateBatchFailsFast(t *testing.T) {
	st := memory.New()
	seedFamilies(t, st, core.Family{ID: 1, Name: "A", Members: []core.Member{{ID: 11, Name: "a1"}}})
	svc := NewBillService(st)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		ids    []int64
		extras map[int64]float64
		total  float64
		check  func(error) bool
	}{
		{"no families", nil, nil, 300, func(err error) bool {
			var verr *core.ValidationError
			return errors.As(err, &verr) && errors.Is(err, core.ErrNoFamilies)
		}},
		{"unknown family", []int64{1, 9}, nil, 300, func(err error) bool {
			return errors.Is(err, ErrFamilyNotFound)
		}},
		{"extras exceed total", []int64{1}, map[int64]float64{1: 500}, 300, func(err error) bool {
			return errors.Is(err, core.ErrExtrasExceedTotal)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.GenerateBatch(context.Background(), tc.ids, tc.extras, tc.total, start, end)
			if err == nil || !tc.check(err) {
				t.Fatalf("unexpected error: %v", err)
			}
			bills, _ := st.Bills(context.Background())
			if len(bills) != 0 {
				t.Fatalf("failed batch left bills behind: %+v", bills)
			}
		})
	}
}
