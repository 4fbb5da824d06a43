// Package app wires configuration into the RAG service and its providers.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ragdemo/internal/config"
	"ragdemo/internal/corpus"
	"ragdemo/internal/indexer"
	"ragdemo/internal/llm"
	"ragdemo/internal/provision"
	"ragdemo/internal/rag"
	"ragdemo/internal/service"
	"ragdemo/internal/storage"
	"ragdemo/internal/vectorstore"
)

// App holds the long-lived dependencies shared by the server and the CLI.
type App struct {
	Config    *config.Config
	DB        *sql.DB
	Store     vectorstore.VectorStore
	Providers *llm.Providers
	Service   service.RAGService

	closers []func() error
}

// New opens the database, connects to the vector store, builds the
// providers named by cfg, and assembles the RAG service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a := &App{Config: cfg, DB: db, closers: []func() error{db.Close}}

	if err := storage.Migrate(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Store = store
	a.closers = append(a.closers, store.Close)

	providers, err := llm.NewProviders(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.Providers = providers

	a.Service = Assemble(cfg, store, providers, storage.NewRunRepo(db))
	return a, nil
}

// Assemble builds the RAG service from already constructed dependencies.
func Assemble(cfg *config.Config, store vectorstore.VectorStore, providers *llm.Providers, runs storage.RunStore) service.RAGService {
	temperature := cfg.LLMTemperature
	splitter := indexer.NewRecursiveSplitter(cfg.ChunkSize, indexer.DefaultChunkOverlap)
	pipeline := indexer.NewPipeline(splitter, providers.Embedder, store, cfg.IndexName, cfg.UpsertBatchSize)
	responder := rag.NewResponder(providers.Embedder, store, providers.Completer, rag.Options{
		Index:           cfg.IndexName,
		TopK:            cfg.TopK,
		MaxContextChars: cfg.MaxContextChars,
		Temperature:     &temperature,
	})

	return service.NewRAGService(
		provision.NewProvisioner(store, cfg.IndexInitDelay),
		corpus.NewLoader(cfg.DocumentsPath),
		pipeline,
		responder,
		runs,
		service.RAGConfig{
			IndexName: cfg.IndexName,
			Dimension: cfg.VectorDimension,
		},
	)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
