package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/config"
	"github.com/light-bringer/product-catalog/internal/pkg/logging"
	"github.com/light-bringer/product-catalog/internal/services"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx := context.Background()

	// 1. Load configuration from .env and environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		log.Printf("Failed to build logger: %v", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if cfg.LogMode == logging.ModeProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting product catalog service",
		zap.String("store", cfg.StoreDriver),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("api_prefix", cfg.APIPrefix),
		zap.String("ownership_axis", string(cfg.OwnershipAxis)),
		zap.String("business_scope", string(cfg.BusinessScope)),
	)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize service", zap.Error(err))
		return 1
	}

	// 3. Start HTTP server in background
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: serviceOpts.Router,
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// 4. Graceful shutdown: stop accepting requests, then release the store
	// and cache clients
	wait := gfshutdown.GracefulShutdown(ctx, cfg.ShutdownTimeout, map[string]gfshutdown.Operation{
		"http-server": func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
	exitCode := <-wait

	if err := serviceOpts.Close(); err != nil {
		logger.Error("failed to close resources", zap.Error(err))
	}
	logger.Info("shutdown complete", zap.Int("exit_code", exitCode))
	return exitCode
}
