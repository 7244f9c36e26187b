// Package services orchestrates the domain over the store ports: family
// CRUD, bill save/batch, period summaries and document export. All writes
// follow the read, mutate in memory, replace whole collection contract;
// nothing is committed locally before the store write succeeds.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"warikan/internal/core"
	"warikan/internal/store"
)

var (
	ErrFamilyNotFound = errors.New("family not found")
	ErrBillNotFound   = errors.New("bill not found")
)

// FamilyService manages the family collection.
type FamilyService struct {
	store store.FamilyStore
	now   func() time.Time
}

func NewFamilyService(s store.FamilyStore) *FamilyService {
	return &FamilyService{store: s, now: time.Now}
}

func (s *FamilyService) List(ctx context.Context) ([]core.Family, error) {
	families, err := s.store.Families(ctx)
	if err != nil {
		return nil, fmt.Errorf("load families: %w", err)
	}
	return families, nil
}

// Create validates the family, assigns a timestamp ID when missing and
// appends it to the collection.
func (s *FamilyService) Create(ctx context.Context, f core.Family) (core.Family, error) {
	if err := f.Validate(); err != nil {
		return core.Family{}, err
	}

	families, err := s.store.Families(ctx)
	if err != nil {
		return core.Family{}, fmt.Errorf("load families: %w", err)
	}

	if f.ID == 0 {
		f.ID = nextID(s.now(), familyIDs(families))
	}
	for i := range f.Members {
		if f.Members[i].ID == 0 {
			f.Members[i].ID = f.ID + int64(i) + 1
		}
	}

	families = append(families, f)
	if err := s.store.SaveFamilies(ctx, families); err != nil {
		return core.Family{}, fmt.Errorf("save families: %w", err)
	}

	slog.InfoContext(ctx, "Family created",
		"component", "family",
		"operation", "create",
		"family_id", f.ID,
		"family_name", f.Name,
		"members", len(f.Members))
	return f, nil
}

// Update replaces the stored family with the same ID. The bills collection
// is untouched: participations are value copies and never change
// retroactively.
func (s *FamilyService) Update(ctx context.Context, f core.Family) error {
	if err := f.Validate(); err != nil {
		return err
	}

	families, err := s.store.Families(ctx)
	if err != nil {
		return fmt.Errorf("load families: %w", err)
	}

	found := false
	for i := range families {
		if families[i].ID == f.ID {
			families[i] = f
			found = true
			break
		}
	}
	if !found {
		return ErrFamilyNotFound
	}

	if err := s.store.SaveFamilies(ctx, families); err != nil {
		return fmt.Errorf("save families: %w", err)
	}

	slog.InfoContext(ctx, "Family updated",
		"component", "family",
		"operation", "update",
		"family_id", f.ID,
		"family_name", f.Name)
	return nil
}

func (s *FamilyService) Delete(ctx context.Context, id int64) error {
	families, err := s.store.Families(ctx)
	if err != nil {
		return fmt.Errorf("load families: %w", err)
	}

	kept := families[:0:0]
	for _, f := range families {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(families) {
		return ErrFamilyNotFound
	}

	if err := s.store.SaveFamilies(ctx, kept); err != nil {
		return fmt.Errorf("save families: %w", err)
	}

	slog.InfoContext(ctx, "Family deleted",
		"component", "family",
		"operation", "delete",
		"family_id", id)
	return nil
}

func familyIDs(families []core.Family) map[int64]bool {
	ids := make(map[int64]bool, len(families))
	for _, f := range families {
		ids[f.ID] = true
	}
	return ids
}

// nextID assigns a creation-timestamp ID, bumping past any collision with
// an existing record.
func nextID(now time.Time, taken map[int64]bool) int64 {
	id := now.UnixMilli()
	for taken[id] {
		id++
	}
	return id
}
