// Command rda-fetchd runs the background frame fetcher: it polls a bucket
// endpoint for new snapshot frames, stores them locally, enforces retention,
// and serves Prometheus metrics.
//
// Configuration is environment-driven; see internal/config.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/radarlab/rda/fetch"
	"github.com/radarlab/rda/internal/config"
	"github.com/radarlab/rda/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "rda-fetchd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	frames, err := store.NewFrameStore(cfg.StorePath, store.WithLogger(logger))
	if err != nil {
		return err
	}

	client := fetch.NewBucketClient(cfg.BucketURL, cfg.HTTPTimeout, logger)
	fetcher, err := fetch.NewFetcher(client, frames, cfg.Stations, cfg.PollInterval,
		fetch.WithLogger(logger),
		fetch.WithMetrics(fetch.NewMetrics()),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metricsSrv := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}()

	go cleanupLoop(ctx, frames, cfg.RetainFrames, 10*cfg.PollInterval, logger)

	logger.Info("fetcher starting",
		"bucket", cfg.BucketURL,
		"stations", cfg.Stations,
		"interval", cfg.PollInterval,
		"store", cfg.StorePath)

	if err := fetcher.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("fetcher stopped")

	return nil
}

// cleanupLoop enforces the retention limit in the background.
func cleanupLoop(ctx context.Context, frames *store.FrameStore, retain int, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := frames.Cleanup(retain); err != nil {
				logger.Error("retention cleanup failed", "error", err)
			}
		}
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
