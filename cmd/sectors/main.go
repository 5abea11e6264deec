package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/sensori-ai/farm-sectors/internal/adapter/http"
	kafkaadapter "github.com/sensori-ai/farm-sectors/internal/adapter/kafka"
	"github.com/sensori-ai/farm-sectors/internal/adapter/source"
	"github.com/sensori-ai/farm-sectors/internal/config"
	"github.com/sensori-ai/farm-sectors/internal/observability"
	"github.com/sensori-ai/farm-sectors/internal/pipeline"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	src, err := source.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create polygon source", "error", err)
		os.Exit(1)
	}

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED.
	var publisher pipeline.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka snapshot publishing enabled", "topic", cfg.KafkaSinkTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka snapshot publishing disabled")
	}

	categories := cfg.EnabledCategories()
	p := pipeline.New(src, pipeline.NewTransformer(logger), publisher, categories, logger, metrics)
	logger.Info("sector pipeline configured", "source", cfg.SourceKind, "categories", categories)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cfg.Farm, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
