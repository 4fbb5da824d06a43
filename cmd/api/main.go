package main

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ragdemo/internal/app"
	"ragdemo/internal/config"
	"ragdemo/internal/http"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API indexes a fixed document corpus into a vector store and answers questions from it.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: RAG Demo API
//   description: |
//     Retrieval-augmented question answering over a directory of text and markdown documents.
//     POST /api/setup builds the index; POST /api/read answers a question.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

//go:embed index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer func() {
		_ = application.Close()
	}()
	slog.Info("Application initialized",
		"db_path", cfg.DBPath,
		"qdrant_url", cfg.QdrantURL,
		"index", cfg.IndexName,
		"embedding_provider", cfg.EmbeddingProvider,
		"completion_provider", cfg.CompletionProvider,
	)

	router := http.NewRouter(&http.Deps{
		RAGService: application.Service,
		Indexes:    application.Store,
		DB:         application.DB,
		IndexName:  cfg.IndexName,
		IndexHTML:  indexHTML,
	})

	// Setup can run for minutes (index creation delay), so no write timeout.
	server := &nethttp.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
}
