// Package store defines the persistence ports for the two top-level
// collections, "families" and "bills".
//
// The contract is deliberately coarse: whole-collection read and whole-
// collection replace, nothing row-level. Callers read the collection,
// mutate it in memory and write the whole thing back. The design assumes a
// single active writer; concurrent writers would be last-writer-wins.
package store

import (
	"context"

	"warikan/internal/core"
)

type (
	FamilyStore interface {
		// Families returns the full family collection.
		Families(ctx context.Context) ([]core.Family, error)
		// SaveFamilies replaces the full family collection.
		SaveFamilies(ctx context.Context, families []core.Family) error
	}

	BillStore interface {
		// Bills returns the full bill collection.
		Bills(ctx context.Context) ([]core.Bill, error)
		// SaveBills replaces the full bill collection.
		SaveBills(ctx context.Context, bills []core.Bill) error
	}

	// Store is the combined persistence surface the services work against.
	Store interface {
		FamilyStore
		BillStore
	}
)
