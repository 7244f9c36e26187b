// Package export renders saved bills and period summaries into shareable
// documents. The core only hands over data; everything visual lives in the
// renderers. Rendered files are written to a configured directory and the
// path is returned as the share handle.
package export

import (
	"context"

	"warikan/internal/core"
)

// Renderer produces a document from bill data and returns the path of the
// written file.
type Renderer interface {
	// RenderBill renders a single bill with its per-family charges.
	RenderBill(ctx context.Context, bill core.Bill) (string, error)

	// RenderSummary renders a period summary. rangeLabel is the
	// human-readable date range heading, e.g. "2024年 01月 〜 2024年 03月".
	RenderSummary(ctx context.Context, entries []core.SummaryEntry, rangeLabel string) (string, error)
}

// RangeLabel builds the heading used on summary documents.
func RangeLabel(startMonth, endMonth string) string {
	return startMonth + " 〜 " + endMonth
}
