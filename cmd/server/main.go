// Observation events server entry point
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecoraiz/inat-events/internal/api"
	"github.com/ecoraiz/inat-events/internal/config"
	"github.com/ecoraiz/inat-events/internal/feed"
	"github.com/ecoraiz/inat-events/internal/inat"
	"github.com/ecoraiz/inat-events/internal/plants"
	"github.com/ecoraiz/inat-events/internal/reports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info("starting observation events service",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"inat_base_url", cfg.INat.BaseURL,
	)

	catalog := plants.DefaultCatalog()
	logger.Info("loaded plant catalog",
		"plants", len(catalog.All()),
		"mapped_taxa", len(catalog.TaxonIDs()),
	)

	store, err := reports.Open(cfg.Reports.DBPath, logger)
	if err != nil {
		return fmt.Errorf("failed to open report store: %w", err)
	}
	defer store.Close()
	logger.Info("opened report store", "path", cfg.Reports.DBPath)

	client := inat.NewClient(cfg.INat.BaseURL, cfg.INat.Timeout).WithLogger(logger)
	source := feed.NewService(client, logger)

	api.RegisterMetrics()
	handlers := api.NewHandlers(cfg, source, catalog, store, logger)
	router := api.NewRouter(handlers, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
