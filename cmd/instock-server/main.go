// Package main provides the HTTP API server for InStock.
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

	"github.com/karibuclean/instock/internal/config"
	"github.com/karibuclean/instock/internal/llm"
	"github.com/karibuclean/instock/internal/metrics"
	"github.com/karibuclean/instock/internal/server"
	"github.com/karibuclean/instock/internal/service"
	"github.com/karibuclean/instock/internal/store"
)

func main() {
	cfg := config.Load()

	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("failed to close log file", "error", err)
		}
	}()
	slog.SetDefault(logger)

	slog.Info("starting instock-server", "addr", cfg.ServerAddr, "data_dir", cfg.DataDir)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		slog.Error("failed to create data dir", "error", err)
		os.Exit(1)
	}

	items := store.OpenItemStore(cfg.ItemsPath(), store.SystemClock)
	jobs := store.OpenJobStore(cfg.JobsPath(), store.SystemClock)
	collect := metrics.NewCollector()

	// A missing credential must not keep the rest of the API down; the two
	// AI endpoints answer with a distinguishable error instead.
	var forecaster llm.Forecaster
	var classifier llm.Classifier
	model, err := llm.NewModel(cfg)
	switch {
	case err == nil:
		forecaster = llm.NewForecaster(model)
		classifier = llm.NewClassifier(model)
	case errors.Is(err, llm.ErrNoCredentials):
		slog.Warn("LLM provider has no credentials; forecast and identify are disabled", "provider", cfg.LLMProvider)
		forecaster = llm.Unavailable{Err: err}
		classifier = llm.Unavailable{Err: err}
	default:
		slog.Error("failed to create LLM model", "error", err)
		os.Exit(1)
	}

	srv := &server.Server{
		Inventory: service.NewInventoryService(items, collect),
		Planner:   service.NewPlannerService(jobs, collect),
		Insights:  service.NewInsightService(items, jobs, forecaster, classifier, collect),
		Metrics:   collect,
		Logger:    logger,
	}

	httpServer := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      srv.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // long for LLM responses
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("API listening", "addr", cfg.ServerAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
