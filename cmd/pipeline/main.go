package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cfb-spotlight-pipeline/internal/artifacts"
	"cfb-spotlight-pipeline/internal/config"
	"cfb-spotlight-pipeline/internal/logging"
	"cfb-spotlight-pipeline/internal/metrics"
	"cfb-spotlight-pipeline/internal/pipeline"
)

const appVersion = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "cfb-spotlight-pipeline",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder, shutdown, err := metrics.Setup(ctx, metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		PushURL:      cfg.Metrics.PushURL,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logging.Error(logger, "telemetry setup failed", err)
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			logging.Warn(logger, "telemetry flush failed", "error", err)
		}
	}()

	logging.Info(logger, "starting pipeline run",
		logging.FieldSeason, cfg.Season,
		logging.FieldTeam, cfg.TeamID,
		logging.FieldPath, cfg.DataDir)

	adapters := pipeline.BuildAdapters(cfg, logger, recorder)
	orch := pipeline.New(cfg, adapters,
		artifacts.NewFSStore(cfg.DataDir),
		artifacts.NewWriter(cfg.DataDir, cfg.ForceRebuild),
		logger, recorder)

	report, err := orch.Run(ctx)
	if err != nil || report.State == pipeline.StateFailed {
		return 1
	}
	return 0
}
