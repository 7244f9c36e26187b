package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"warikan/internal/amqp"
	"warikan/internal/core"
	"warikan/internal/export"
	"warikan/internal/store"
)

// Publisher queues export requests for the worker. Satisfied by
// *amqp.Client.
type Publisher interface {
	PublishExportRequest(ctx context.Context, req *amqp.ExportRequest) error
}

// ExportResult reports where an export ended up. Queued exports carry no
// path; the worker writes the file later.
type ExportResult struct {
	Path   string `json:"path,omitempty"`
	Queued bool   `json:"queued"`
}

// ExportService turns saved bills and summaries into documents. When a
// publisher is configured the request goes to the queue and the worker
// renders it; without one the render happens inline. Both paths share the
// same render code.
type ExportService struct {
	store     store.BillStore
	renderers map[string]export.Renderer
	publisher Publisher
}

func NewExportService(s store.BillStore, renderers map[string]export.Renderer, publisher Publisher) *ExportService {
	return &ExportService{store: s, renderers: renderers, publisher: publisher}
}

func (s *ExportService) ExportBill(ctx context.Context, billID int64, format string) (ExportResult, error) {
	req := amqp.NewBillExportRequest(billID, format)
	if err := req.Validate(); err != nil {
		return ExportResult{}, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExportRequest(ctx, req); err != nil {
			return ExportResult{}, fmt.Errorf("queue bill export: %w", err)
		}
		return ExportResult{Queued: true}, nil
	}

	path, err := s.RenderBill(ctx, billID, format)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Path: path}, nil
}

func (s *ExportService) ExportSummary(ctx context.Context, start, end time.Time, format string) (ExportResult, error) {
	req := amqp.NewSummaryExportRequest(core.FormatBillMonth(start), core.FormatBillMonth(end), format)
	if err := req.Validate(); err != nil {
		return ExportResult{}, err
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExportRequest(ctx, req); err != nil {
			return ExportResult{}, fmt.Errorf("queue summary export: %w", err)
		}
		return ExportResult{Queued: true}, nil
	}

	path, err := s.RenderSummary(ctx, start, end, format)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Path: path}, nil
}

// RenderBill loads the bill and writes the document. Used inline when no
// queue is configured, and by the worker when there is one.
func (s *ExportService) RenderBill(ctx context.Context, billID int64, format string) (string, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return "", err
	}

	bills, err := s.store.Bills(ctx)
	if err != nil {
		return "", fmt.Errorf("load bills: %w", err)
	}
	var bill core.Bill
	found := false
	for _, b := range bills {
		if b.ID == billID {
			bill = b
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("bill %d: %w", billID, ErrBillNotFound)
	}

	path, err := renderer.RenderBill(ctx, bill)
	if err != nil {
		return "", fmt.Errorf("render bill: %w", err)
	}

	slog.InfoContext(ctx, "Bill exported",
		"component", "export",
		"operation", "render_bill",
		"bill_id", billID,
		"format", format,
		"path", path)
	return path, nil
}

// RenderSummary aggregates the range and writes the document.
func (s *ExportService) RenderSummary(ctx context.Context, start, end time.Time, format string) (string, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return "", err
	}

	bills, err := s.store.Bills(ctx)
	if err != nil {
		return "", fmt.Errorf("load bills: %w", err)
	}
	entries := core.Aggregate(bills, start, end)

	label := export.RangeLabel(core.FormatBillMonth(start), core.FormatBillMonth(end))
	path, err := renderer.RenderSummary(ctx, entries, label)
	if err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}

	slog.InfoContext(ctx, "Summary exported",
		"component", "export",
		"operation", "render_summary",
		"range_start", core.FormatBillMonth(start),
		"range_end", core.FormatBillMonth(end),
		"format", format,
		"path", path)
	return path, nil
}

// Handle renders one queued export request. The worker wires this as its
// message handler.
func (s *ExportService) Handle(ctx context.Context, req *amqp.ExportRequest) error {
	switch req.Kind {
	case amqp.KindBill:
		_, err := s.RenderBill(ctx, req.BillID, req.Format)
		return err
	case amqp.KindSummary:
		start, err := core.ParseBillMonth(req.StartMonth)
		if err != nil {
			return err
		}
		end, err := core.ParseBillMonth(req.EndMonth)
		if err != nil {
			return err
		}
		_, err = s.RenderSummary(ctx, start, end, req.Format)
		return err
	default:
		return fmt.Errorf("unknown export kind %q", req.Kind)
	}
}

func (s *ExportService) renderer(format string) (export.Renderer, error) {
	r, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("no renderer for format %q", format)
	}
	return r, nil
}
