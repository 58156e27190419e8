// Package main is the entry point for the droppos API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"droppos/internal/config"
	v1 "droppos/internal/infrastructure/http/v1"
	"droppos/internal/infrastructure/storage/postgres"
	"droppos/pkg/logger"
	"droppos/pkg/receipt"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Development: cfg.App.Env == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting droppos server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.DSN()))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.InitSchema(ctx, pool); err != nil {
		log.Fatalw("failed to initialize schema", "error", err)
	}
	log.Info("database ready")

	txManager := postgres.NewTxManager(pool)

	// --- Receipt printing ---
	var printer receipt.Printer = receipt.NopPrinter{}
	if cfg.Receipt.SpoolDir != "" {
		printer = receipt.NewSpoolPrinter(cfg.Receipt.SpoolDir)
		log.Infow("receipt spooling enabled", "dir", cfg.Receipt.SpoolDir)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		TxManager:    txManager,
		Logger:       log.WithComponent("http"),
		ScannerQuiet: cfg.Scanner.QuietInterval,
		Renderer:     receipt.NewTextRenderer(),
		Printer:      printer,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
