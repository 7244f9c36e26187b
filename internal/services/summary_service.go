package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"warikan/internal/core"
	"warikan/internal/store"
)

// SummaryService answers period aggregation queries over the stored bills.
type SummaryService struct {
	store store.BillStore
}

func NewSummaryService(s store.BillStore) *SummaryService {
	return &SummaryService{store: s}
}

// Aggregate sums per-family charges across all saved bills in [start, end].
func (s *SummaryService) Aggregate(ctx context.Context, start, end time.Time) ([]core.SummaryEntry, error) {
	bills, err := s.store.Bills(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bills: %w", err)
	}

	entries := core.Aggregate(bills, start, end)

	slog.InfoContext(ctx, "Summary aggregated",
		"component", "summary",
		"operation", "aggregate",
		"range_start", core.FormatBillMonth(start),
		"range_end", core.FormatBillMonth(end),
		"bills_scanned", len(bills),
		"families", len(entries))
	return entries, nil
}
