// Command api serves the HYROX results diagnostic API.
//
// Usage:
//
//	hyrox-api
//	API_PORT=8080 HYROX_INPUT=/data/hyrox_results.csv hyrox-api

// @title HYROX Results Data API
// @version 1.0.0
// @description Diagnostic API over transformed HYROX race results: dataset summary, per-event tallies, and paged nested documents.
// @host localhost:8000
// @BasePath /
// @schemes http
// @contact.name hyroxlab
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/hyroxlab/hyrox-data/internal/api"
	"github.com/hyroxlab/hyrox-data/internal/config"
	"github.com/hyroxlab/hyrox-data/internal/db"

	_ "github.com/hyroxlab/hyrox-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Load the dataset before serving anything.
	corrections, err := config.LoadCorrections(cfg.CorrectionsFile)
	if err != nil {
		logger.Error("Failed to load corrections", "error", err)
		os.Exit(1)
	}
	metrics := api.NewMetrics()
	dataset := api.NewDataset(cfg.InputPath, corrections, metrics, logger)
	if err := dataset.Load(); err != nil {
		logger.Error("Failed to load dataset", "input", cfg.InputPath, "error", err)
		os.Exit(1)
	}

	// Scheduled dataset refresh
	if cfg.RefreshSchedule != "" {
		stop, err := dataset.StartRefresh(cfg.RefreshSchedule)
		if err != nil {
			logger.Error("Failed to schedule refresh", "error", err)
			os.Exit(1)
		}
		defer stop()
		logger.Info("Dataset refresh scheduled", "schedule", cfg.RefreshSchedule)
	}

	// Optional database connection for /health/db
	var pool *db.Pool
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to database...")
		pool, err = db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
	}

	// Create router
	router := api.NewRouter(dataset, pool, cfg, metrics)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting HYROX Results Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
