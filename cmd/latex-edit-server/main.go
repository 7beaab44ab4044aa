// latex-edit-server exposes the editing engine over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"latex-editor/internal/api"
	"latex-editor/internal/config"
	"latex-editor/internal/generator"
	"latex-editor/internal/logger"
)

func main() {
	mgr, err := config.NewManager("")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if err := mgr.Load(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	cfg := mgr.Get()

	if err := logger.Init(&logger.Config{
		LogFilePath:   cfg.LogFilePath,
		Level:         logger.ParseLevel(cfg.LogLevel),
		EnableConsole: true,
	}); err != nil {
		fmt.Printf("Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The generation service is optional. Without an API key the server still
	// serves scan, locate and caller-supplied completions.
	var gen generator.Service
	if cfg.OpenAIAPIKey != "" {
		client, err := generator.New(ctx, cfg)
		if err != nil {
			logger.Error("failed to initialize generation service", err)
			os.Exit(1)
		}
		gen = client
		logger.Info("generation service enabled", logger.String("model", cfg.OpenAIModel))
	} else {
		logger.Warn("no API key configured, generation disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      api.NewServer(gen),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting latex-edit-server", logger.String("port", port))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", err)
		os.Exit(1)
	}
}
