// Package main serves the dreamfuse handlers over HTTP.
//
// Configuration is read from the environment (see package config).
//
// Endpoints:
//
//	POST /v1/handlers/{name}  run a handler with a JSON conf body
//	GET  /v1/handlers         list handler names
//	GET  /healthz             liveness
//	GET  /metrics             prometheus metrics
//
// Usage:
//
//	OPENAI_API_KEY=... REPLICATE_API_TOKEN=... go run ./cmd/serve
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spetersoncode/dreamfuse/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry, err := buildRegistry(context.Background(), cfg, logger, reg)
	if err != nil {
		slog.Error("failed to build handlers", "error", err)
		os.Exit(1)
	}

	srv := NewServer(registry, reg, ServerConfig{
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
		Logger:    logger,
	})

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     srv.Routes(),
		ReadTimeout: 10 * time.Second,
		// Handlers wait on image generation for minutes
		WriteTimeout: cfg.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting",
		"port", cfg.Port,
		"chat_provider", cfg.ChatProvider,
		"image_provider", cfg.ImageProvider,
		"handlers", registry.Names(),
	)

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
