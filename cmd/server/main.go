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

	"github.com/joho/godotenv"

	"github.com/dhalverson/resumescan/internal/analyze"
	"github.com/dhalverson/resumescan/internal/api"
	"github.com/dhalverson/resumescan/internal/chunker"
	"github.com/dhalverson/resumescan/internal/config"
	"github.com/dhalverson/resumescan/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	client := analyze.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	defer client.Close()

	chunkDefaults := chunker.Config{
		ChunkSize:    cfg.DefaultChunkSize,
		ChunkOverlap: cfg.DefaultChunkOverlap,
	}
	processor := pipeline.NewProcessor(client, chunkDefaults, cfg.MaxConcurrentAnalyze, cfg.PDFFallbackPdftotext, logger)
	store := pipeline.NewJobStore(cfg.JobTTL)
	orch := pipeline.NewOrchestrator(processor, store, cfg.WorkerCount, cfg.MaxQueueSize, logger)
	orch.Start()

	server := api.NewServer(api.ConfigFrom(cfg), orch, client.Stats(), logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "model", cfg.AnthropicModel, "workers", cfg.WorkerCount)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	orch.Stop()
	logger.Info("shutdown complete")
}
