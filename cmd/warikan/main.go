package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"warikan/internal/amqp"
	"warikan/internal/backend"
	"warikan/internal/config"
	"warikan/internal/export"
	apphttp "warikan/internal/http"
	applog "warikan/internal/log"
	"warikan/internal/services"
)

func main() {
	// Load .env for local development; absence is fine in containers.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{Level: applog.LevelFromString(cfg.LogLevel)})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
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
	renderers := map[string]export.Renderer{
		amqp.FormatHTML: htmlRenderer,
		amqp.FormatXLSX: xlsxRenderer,
	}

	// AMQP is optional: without it export requests render inline.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, exports will render inline", "error", err)
		} else {
			defer client.Close()
			publisher = client
			logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	srv := apphttp.NewServer(
		apphttp.Options{
			Addr:             ":" + cfg.Port,
			SummaryCacheSize: cfg.SummaryCacheSize,
			SummaryCacheTTL:  cfg.SummaryCacheTTL,
		},
		services.NewFamilyService(result.Store),
		services.NewBillService(result.Store),
		services.NewSummaryService(result.Store),
		services.NewExportService(result.Store, renderers, publisher),
	)

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting warikan server", "port", cfg.Port, "backend", cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
