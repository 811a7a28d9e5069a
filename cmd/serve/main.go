// Command serve runs the content-creation HTTP API.
//
// Configuration comes from environment variables (or a .env file);
// see internal/config for the full list. Minimal usage:
//
//	OPENAI_API_KEY=sk-... go run ./cmd/serve
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avelar/contentforge/httpapi"
	"github.com/avelar/contentforge/internal/config"
	"github.com/avelar/contentforge/internal/setup"
	"github.com/avelar/contentforge/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := setup.Logger(cfg.LogLevel)

	ctx := context.Background()
	orchestrator, err := setup.Orchestrator(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to build orchestrator: %v", err)
	}

	store := storage.New(cfg.OutputDir, storage.WithLogger(logger))

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	api := httpapi.NewServer(orchestrator,
		httpapi.WithStore(store),
		httpapi.WithLogger(logger),
	)
	api.Register(e)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	logger.Info("content creation API starting",
		"port", cfg.Port,
		"provider", cfg.Provider,
		"output_dir", cfg.OutputDir,
	)

	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	logger.Info("server stopped")
}
