package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"warikan/internal/core"
	"warikan/internal/store/memory"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestFamilyServiceCreate(t *testing.T) {
	svc := NewFamilyService(memory.New())
	svc.now = fixedClock(1700000000000)

	created, err := svc.Create(context.Background(), core.Family{
		Name:    "Tanaka",
		Members: []core.Member{{Name: "Taro"}, {Name: "Hanako"}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1700000000000 {
		t.Fatalf("expected timestamp ID, got %d", created.ID)
	}
	for i, m := range created.Members {
		if m.ID == 0 {
			t.Fatalf("member %d has no ID", i)
		}
	}

	families, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(families) != 1 || families[0].Name != "Tanaka" {
		t.Fatalf("unexpected families: %+v", families)
	}
}

func TestFamilyServiceCreateBumpsPastTakenID(t *testing.T) {
	svc := NewFamilyService(memory.New())
	svc.now = fixedClock(1700000000000)

	first, err := svc.Create(context.Background(), core.Family{Name: "Sato"})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(context.Background(), core.Family{Name: "Suzuki"})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("IDs collide: %d", second.ID)
	}
}

func TestFamilyServiceCreateRejectsEmptyName(t *testing.T) {
	svc := NewFamilyService(memory.New())

	_, err := svc.Create(context.Background(), core.Family{Name: "  "})
	if !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestFamilyServiceUpdate(t *testing.T) {
	svc := NewFamilyService(memory.New())

	created, err := svc.Create(context.Background(), core.Family{Name: "Sato"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	created.Name = "Sato-Ito"
	if err := svc.Update(context.Background(), created); err != nil {
		t.Fatalf("update: %v", err)
	}

	families, _ := svc.List(context.Background())
	if families[0].Name != "Sato-Ito" {
		t.Fatalf("update not persisted: %+v", families[0])
	}

	missing := core.Family{ID: 42, Name: "Nobody"}
	if err := svc.Update(context.Background(), missing); !errors.Is(err, ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}

func TestFamilyServiceDelete(t *testing.T) {
	svc := NewFamilyService(memory.New())

	created, err := svc.Create(context.Background(), core.Family{Name: "Sato"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	families, _ := svc.List(context.Background())
	if len(families) != 0 {
		t.Fatalf("expected empty collection, got %+v", families)
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}
