// Package memory provides an in-memory store, optionally seeded from JSON
// files. It is the default backend and the workhorse of the test suite.
package memory

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"warikan/internal/core"
)

type Store struct {
	mu       sync.Mutex
	families []core.Family
	bills    []core.Bill
}

func New() *Store {
	return &Store{}
}

// NewFromFiles seeds the store from base/families.json and base/bills.json
// when present. Missing or malformed seed files leave the collection empty;
// seeding is best-effort.
func NewFromFiles(base string) *Store {
	s := New()
	readJSON(filepath.Join(base, "families.json"), &s.families)
	readJSON(filepath.Join(base, "bills.json"), &s.bills)
	return s
}

func (s *Store) Families(_ context.Context) ([]core.Family, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyFamilies(s.families), nil
}

func (s *Store) SaveFamilies(_ context.Context, families []core.Family) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families = copyFamilies(families)
	return nil
}

func (s *Store) Bills(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyBills(s.bills), nil
}

func (s *Store) SaveBills(_ context.Context, bills []core.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = copyBills(bills)
	return nil
}

// Deep copies keep callers from mutating stored state behind the mutex.

func copyFamilies(in []core.Family) []core.Family {
	out := make([]core.Family, len(in))
	for i, f := range in {
		f.Members = append([]core.Member(nil), f.Members...)
		out[i] = f
	}
	return out
}

func copyBills(in []core.Bill) []core.Bill {
	out := make([]core.Bill, len(in))
	for i, b := range in {
		b.Families = append([]core.Participation(nil), b.Families...)
		out[i] = b
	}
	return out
}

func readJSON(path string, v any) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, v)
}
