package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"warikan/internal/core"
	"warikan/internal/store"
)

// BillService manages the bill collection: single-bill calculation and
// save, batch generation, listing and deletion.
type BillService struct {
	store store.Store
	now   func() time.Time
}

func NewBillService(s store.Store) *BillService {
	return &BillService{store: s, now: time.Now}
}

// Calculate runs the allocator on a draft without persisting anything.
// There is no validation on this path: a negative rate from oversized
// extras is shown to the user, not rejected.
func (s *BillService) Calculate(ctx context.Context, month string, totalCost float64, parts []core.Participation) core.Bill {
	bill := core.NewBillDraft(month, totalCost, parts)

	slog.InfoContext(ctx, "Bill calculated",
		"component", "bill",
		"operation", "allocate",
		"bill_month", month,
		"total_cost", totalCost,
		"cost_per_line", bill.CostPerLine,
		"families", len(parts))
	return bill
}

// Save persists a bill, assigning a creation-timestamp ID to drafts.
func (s *BillService) Save(ctx context.Context, bill core.Bill) (core.Bill, error) {
	if err := bill.Validate(); err != nil {
		return core.Bill{}, err
	}

	bills, err := s.store.Bills(ctx)
	if err != nil {
		return core.Bill{}, fmt.Errorf("load bills: %w", err)
	}

	if bill.ID == 0 {
		bill.ID = nextID(s.now(), billIDs(bills))
	}

	bills = append(bills, bill)
	if err := s.store.SaveBills(ctx, bills); err != nil {
		return core.Bill{}, fmt.Errorf("save bills: %w", err)
	}

	slog.InfoContext(ctx, "Bill saved",
		"component", "bill",
		"operation", "create",
		"bill_id", bill.ID,
		"bill_month", bill.BillMonth,
		"total_cost", bill.TotalCost)
	return bill, nil
}

func (s *BillService) List(ctx context.Context) ([]core.Bill, error) {
	bills, err := s.store.Bills(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bills: %w", err)
	}
	return bills, nil
}

func (s *BillService) Get(ctx context.Context, id int64) (core.Bill, error) {
	bills, err := s.store.Bills(ctx)
	if err != nil {
		return core.Bill{}, fmt.Errorf("load bills: %w", err)
	}
	for _, b := range bills {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Bill{}, ErrBillNotFound
}

func (s *BillService) Delete(ctx context.Context, id int64) error {
	bills, err := s.store.Bills(ctx)
	if err != nil {
		return fmt.Errorf("load bills: %w", err)
	}

	kept := bills[:0:0]
	for _, b := range bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if len(kept) == len(bills) {
		return ErrBillNotFound
	}

	if err := s.store.SaveBills(ctx, kept); err != nil {
		return fmt.Errorf("save bills: %w", err)
	}

	slog.InfoContext(ctx, "Bill deleted",
		"component", "bill",
		"operation", "delete",
		"bill_id", id)
	return nil
}

// GenerateBatch generates and persists one bill per month in the range.
// Validation happens entirely before generation and the whole batch lands
// in a single collection write, so a failure never leaves a partial batch
// behind.
func (s *BillService) GenerateBatch(ctx context.Context, familyIDs []int64, fixedExtras map[int64]float64, totalCost float64, start, end time.Time) ([]core.Bill, error) {
	if len(familyIDs) == 0 {
		return nil, &core.ValidationError{Field: "families", Err: core.ErrNoFamilies}
	}

	all, err := s.store.Families(ctx)
	if err != nil {
		return nil, fmt.Errorf("load families: %w", err)
	}

	byID := make(map[int64]core.Family, len(all))
	for _, f := range all {
		byID[f.ID] = f
	}
	selected := make([]core.Family, 0, len(familyIDs))
	for _, id := range familyIDs {
		f, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("family %d: %w", id, ErrFamilyNotFound)
		}
		selected = append(selected, f)
	}

	batch, err := core.GenerateBatch(selected, fixedExtras, totalCost, start, end, s.now())
	if err != nil {
		return nil, err
	}

	bills, err := s.store.Bills(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bills: %w", err)
	}
	bills = append(bills, batch...)
	if err := s.store.SaveBills(ctx, bills); err != nil {
		return nil, fmt.Errorf("save bills: %w", err)
	}

	slog.InfoContext(ctx, "Batch generated",
		"component", "bill",
		"operation", "batch",
		"bill_count", len(batch),
		"range_start", batch[0].BillMonth,
		"range_end", batch[len(batch)-1].BillMonth,
		"cost_per_line", batch[0].CostPerLine)
	return batch, nil
}

func billIDs(bills []core.Bill) map[int64]bool {
	ids := make(map[int64]bool, len(bills))
	for _, b := range bills {
		ids[b.ID] = true
	}
	return ids
}
