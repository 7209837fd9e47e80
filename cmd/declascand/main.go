package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"declascan/internal/artifacts"
	"declascan/internal/async"
	"declascan/internal/common"
	"declascan/internal/export"
	"declascan/internal/extract"
	"declascan/internal/ingest"
	"declascan/internal/ledger"
	"declascan/internal/pipeline"
	"declascan/internal/schema"
	"declascan/internal/server"
	"declascan/internal/textsource"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Rule schema: from file when configured, builtin table otherwise.
	var (
		compiled *schema.Compiled
		err      error
	)
	if cfg.Extract.SchemaPath != "" {
		compiled, err = schema.Load(cfg.Extract.SchemaPath)
		if err != nil {
			logger.Error("schema load failed", "path", cfg.Extract.SchemaPath, "error", err)
			os.Exit(1)
		}
		logger.Info("schema loaded", "path", cfg.Extract.SchemaPath, "fields", compiled.TotalFields())
	} else {
		compiled = schema.MustDefault()
		logger.Info("using builtin declaration schema", "fields", compiled.TotalFields())
	}
	for _, f := range schema.Vet(compiled) {
		logger.Warn("schema finding", "kind", string(f.Kind), "field", f.Field, "detail", f.Detail)
	}

	led, err := ledger.New(cfg.Storage.DataDir, logger)
	if err != nil {
		logger.Error("ledger init failed", "error", err)
		os.Exit(1)
	}
	art, err := artifacts.NewWriter(cfg.Storage.OutputDir, logger)
	if err != nil {
		logger.Error("artifact writer init failed", "error", err)
		os.Exit(1)
	}

	proc := pipeline.NewProcessor(
		logger,
		textsource.NewResolver(cfg.Extract.Pdftotext),
		compiled,
		extract.NewEngine(logger),
		art,
		led,
	)

	queue := async.NewProcessorQueue(proc, logger,
		async.WithWorkers(cfg.Queue.Workers),
		async.WithQueueSize(cfg.Queue.QueueSize),
		async.WithProcessTimeout(cfg.Queue.ProcessTimeout),
	)

	// Optional inbox watcher: documents dropped into INBOX_DIR get queued.
	if cfg.Storage.InboxDir != "" {
		events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{cfg.Storage.InboxDir},
			InitialScan: true,
			Debounce:    500 * time.Millisecond,
		})
		if err != nil {
			logger.Error("inbox watcher start failed", "dir", cfg.Storage.InboxDir, "error", err)
			os.Exit(1)
		}
		go ingest.Feed(ctx, logger, events, queue)
		go func() {
			for err := range errs {
				logger.Warn("inbox watcher error", "error", err)
			}
		}()
		logger.Info("inbox watcher started", "dir", cfg.Storage.InboxDir)
	}

	svc := server.NewService(
		logger,
		proc,
		led,
		export.NewService(led, logger),
		art,
		cfg.Storage.UploadDir,
		cfg.Server.MaxUploadSize,
		cfg.Server.HistoryLimit,
	)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           svc.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown interrupted", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}
