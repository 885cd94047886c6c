package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker/backend/cache"
	"tracker/backend/config"
	"tracker/backend/routes"
	"tracker/backend/services"
	"tracker/backend/storage"
	"tracker/backend/utils"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(utils.LoggerConfig{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
	})
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	utils.InitMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	kv, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("storage_init_failed", zap.Error(err))
	}
	defer kv.Close()

	opts := []services.Option{}
	if cfg.CacheDriver == "redis" {
		client, err := storage.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			logger.Fatal("cache_init_failed", zap.Error(err))
		}
		defer client.Close()
		opts = append(opts, services.WithCache(cache.NewRedisCache(client)))
		logger.Info("cache_enabled", zap.Duration("ttl", cfg.CacheTTL))
	}

	svc := services.New(kv, cfg, logger, opts...)
	app := routes.NewApp(svc, cfg, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutdown_started")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("shutdown_failed", zap.Error(err))
		}
	}()

	// Start server
	logger.Info("server_starting", zap.String("port", cfg.ServerPort), zap.String("storage", cfg.StorageDriver))
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logger.Error("server_stopped", zap.Error(err))
	}
	logger.Info("server_exited")
}
