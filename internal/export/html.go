package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"warikan/internal/core"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// HTMLRenderer writes self-contained HTML documents. The platform share /
// print step (turning HTML into a PDF) is outside this process.
type HTMLRenderer struct {
	dir  string
	tmpl *template.Template
}

func NewHTMLRenderer(dir string) (*HTMLRenderer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export directory: %w", err)
	}

	tmpl, err := template.New("export").Funcs(template.FuncMap{
		"money": formatMoney,
	}).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse export templates: %w", err)
	}

	return &HTMLRenderer{dir: dir, tmpl: tmpl}, nil
}

type billRow struct {
	Name  string
	Lines int
	Extra float64
	Total float64
}

// RenderBill implements Renderer.
func (r *HTMLRenderer) RenderBill(ctx context.Context, bill core.Bill) (string, error) {
	rows := make([]billRow, len(bill.Families))
	for i, p := range bill.Families {
		rows[i] = billRow{
			Name:  p.Name,
			Lines: p.Lines,
			Extra: p.Extra.Cost,
			Total: bill.FamilyCharge(p),
		}
	}

	data := struct {
		Bill core.Bill
		Rows []billRow
	}{Bill: bill, Rows: rows}

	name := fmt.Sprintf("bill_%d_%s.html", bill.ID, shortID())
	path, err := r.render(ctx, "bill.html.tmpl", name, data)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Bill document rendered",
		"component", "export",
		"bill_id", bill.ID,
		"bill_month", bill.BillMonth,
		"export_path", path)
	return path, nil
}

// RenderSummary implements Renderer.
func (r *HTMLRenderer) RenderSummary(ctx context.Context, entries []core.SummaryEntry, rangeLabel string) (string, error) {
	data := struct {
		RangeLabel string
		Entries    []core.SummaryEntry
	}{RangeLabel: rangeLabel, Entries: entries}

	name := fmt.Sprintf("summary_%s.html", shortID())
	path, err := r.render(ctx, "summary.html.tmpl", name, data)
	if err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "Summary document rendered",
		"component", "export",
		"range", rangeLabel,
		"entries", len(entries),
		"export_path", path)
	return path, nil
}

func (r *HTMLRenderer) render(_ context.Context, tmplName, fileName string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, tmplName, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", tmplName, err)
	}

	path := filepath.Join(r.dir, fileName)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

// formatMoney rounds to two decimals for display. Internal values stay
// unrounded; only rendered output is.
func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", core.RoundDisplay(v))
}

func shortID() string {
	return uuid.New().String()[:8]
}
