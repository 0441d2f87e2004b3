package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sefazor/learnhub-backend/internal/config"
	"github.com/sefazor/learnhub-backend/internal/logger"
	"go.uber.org/zap"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	if envErr != nil {
		zlog.Warn("no .env file loaded, using process environment", zap.Error(envErr))
	}

	if err := cfg.Validate(); err != nil {
		zlog.Fatal("invalid configuration", zap.Error(err))
	}

	app, cleanup, err := InitializeApp(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize app", zap.Error(err))
	}
	defer cleanup()

	if err := app.Reconciler.Start(); err != nil {
		zlog.Fatal("failed to start webhook reconciler", zap.Error(err))
	}

	go func() {
		if err := app.Server.Listen(":" + cfg.Port); err != nil {
			zlog.Error("server stopped", zap.Error(err))
		}
	}()
	zlog.Info("server started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	if err := app.Server.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	app.Reconciler.Stop()
}
