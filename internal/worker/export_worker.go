// Package worker runs the export consumer: it takes export requests off
// the queue and renders documents through the export service.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"warikan/internal/amqp"
	"warikan/internal/services"
)

// ExportWorker consumes export requests and renders them. The render path
// is the same one the API uses when no queue is configured.
type ExportWorker struct {
	exports *services.ExportService
}

func NewExportWorker(exports *services.ExportService) *ExportWorker {
	return &ExportWorker{exports: exports}
}

// Run consumes until the context is cancelled. Handler failures requeue
// the message; the store read on the next attempt picks up current data.
func (w *ExportWorker) Run(ctx context.Context, client *amqp.Client) error {
	slog.InfoContext(ctx, "Export worker starting",
		"component", "worker")

	if err := client.ConsumeExportRequests(ctx, w.handle); err != nil && ctx.Err() == nil {
		return fmt.Errorf("consume export requests: %w", err)
	}
	return nil
}

func (w *ExportWorker) handle(ctx context.Context, req *amqp.ExportRequest) error {
	slog.InfoContext(ctx, "Processing export request",
		"component", "worker",
		"export_kind", req.Kind,
		"format", req.Format,
		"bill_id", req.BillID,
		"range_start", req.StartMonth,
		"range_end", req.EndMonth)

	return w.exports.Handle(ctx, req)
}
