package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hktools/hk-grid-service/internal/adapter/geodetic"
	httpadapter "github.com/hktools/hk-grid-service/internal/adapter/http"
	"github.com/hktools/hk-grid-service/internal/config"
	"github.com/hktools/hk-grid-service/internal/convert"
	"github.com/hktools/hk-grid-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	metrics := observability.NewMetrics()

	client := geodetic.NewClient(cfg.Geodetic.BaseURL, cfg.Geodetic.Timeout, metrics, logger)
	transformer := geodetic.NewCachedTransformer(client, cfg.Geodetic.CacheSize, metrics)
	logger.Info("transform gateway ready",
		"base_url", cfg.Geodetic.BaseURL,
		"timeout", cfg.Geodetic.Timeout,
		"cache_size", cfg.Geodetic.CacheSize,
	)

	service := convert.NewService(transformer, logger, metrics)
	srv := httpadapter.NewServer(cfg.Server.Addr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
