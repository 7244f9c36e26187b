package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"warikan/internal/amqp"
	"warikan/internal/backend"
	"warikan/internal/config"
	"warikan/internal/export"
	applog "warikan/internal/log"
	"warikan/internal/services"
	"warikan/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     applog.LevelFromString(cfg.LogLevel),
		Component: applog.ComponentWorker,
	})
	applog.SetDefault(logger)

	logger.Info("Starting warikan-worker")

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	result, err := backend.Build(cfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	htmlRenderer, err := export.NewHTMLRenderer(cfg.ExportDir)
	if err != nil {
		logger.Error("Failed to initialize HTML renderer", "error", err, "dir", cfg.ExportDir)
		os.Exit(1)
	}
	xlsxRenderer, err := export.NewXLSXRenderer(cfg.ExportDir)
	if err != nil {
		logger.Error("Failed to initialize XLSX renderer", "error", err, "dir", cfg.ExportDir)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	// The worker renders directly, so no publisher is wired here.
	exports := services.NewExportService(result.Store, map[string]export.Renderer{
		amqp.FormatHTML: htmlRenderer,
		amqp.FormatXLSX: xlsxRenderer,
	}, nil)
	exportWorker := worker.NewExportWorker(exports)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return exportWorker.Run(ctx, client)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
