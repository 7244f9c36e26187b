package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"warikan/internal/core"
)

// XLSXRenderer writes spreadsheet documents. Useful when the summary is
// handed on to someone who wants to keep calculating.
type XLSXRenderer struct {
	dir string
}

func NewXLSXRenderer(dir string) (*XLSXRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}
	return &XLSXRenderer{dir: dir}, nil
}

const sheetName = "Sheet1"

// RenderBill implements Renderer.
func (r *XLSXRenderer) RenderBill(ctx context.Context, bill core.Bill) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := []any{"家族", "回線数", "追加サービス", "請求額"}
	if err := setRow(f, 1, header); err != nil {
		return "", err
	}
	for i, p := range bill.Families {
		row := []any{p.Name, p.Lines, core.RoundDisplay(p.Extra.Cost), core.RoundDisplay(bill.FamilyCharge(p))}
		if err := setRow(f, i+2, row); err != nil {
			return "", err
		}
	}
	footer := []any{"合計", "", "", core.RoundDisplay(bill.TotalCost)}
	if err := setRow(f, len(bill.Families)+2, footer); err != nil {
		return "", err
	}

	path := filepath.Join(r.dir, fmt.Sprintf("bill_%d_%s.xlsx", bill.ID, uuid.New().String()[:8]))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	slog.InfoContext(ctx, "Bill workbook rendered",
		"component", "export",
		"bill_id", bill.ID,
		"export_path", path)
	return path, nil
}

// RenderSummary implements Renderer. One row per family; months become
// columns, in the order they appear in the entry breakdowns.
func (r *XLSXRenderer) RenderSummary(ctx context.Context, entries []core.SummaryEntry, rangeLabel string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	months := collectMonths(entries)

	header := make([]any, 0, len(months)+2)
	header = append(header, rangeLabel)
	for _, m := range months {
		header = append(header, m)
	}
	header = append(header, "合計")
	if err := setRow(f, 1, header); err != nil {
		return "", err
	}

	for i, e := range entries {
		perMonth := make(map[string]float64, len(e.Breakdown))
		for _, mc := range e.Breakdown {
			perMonth[mc.Month] += mc.Cost
		}

		row := make([]any, 0, len(months)+2)
		row = append(row, e.Name)
		for _, m := range months {
			row = append(row, core.RoundDisplay(perMonth[m]))
		}
		row = append(row, core.RoundDisplay(e.TotalCost))
		if err := setRow(f, i+2, row); err != nil {
			return "", err
		}
	}

	path := filepath.Join(r.dir, fmt.Sprintf("summary_%s.xlsx", uuid.New().String()[:8]))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}

	slog.InfoContext(ctx, "Summary workbook rendered",
		"component", "export",
		"range", rangeLabel,
		"entries", len(entries),
		"export_path", path)
	return path, nil
}

// collectMonths returns every month seen across the entries, in first-
// appearance order.
func collectMonths(entries []core.SummaryEntry) []string {
	seen := make(map[string]bool)
	var months []string
	for _, e := range entries {
		for _, mc := range e.Breakdown {
			if !seen[mc.Month] {
				seen[mc.Month] = true
				months = append(months, mc.Month)
			}
		}
	}
	return months
}

func setRow(f *excelize.File, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
