package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("starting storefront", zap.Error(err))
	}

	go func() {
		zapLogger.Info("starting server", zap.String("addr", cfg.App.Port), zap.String("store", cfg.Store.Driver))
		if err := app.Fiber.Listen(cfg.App.Port); err != nil {
			zapLogger.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("shutdown incomplete", zap.Error(err))
		return
	}
	zapLogger.Info("server gracefully stopped")
}
