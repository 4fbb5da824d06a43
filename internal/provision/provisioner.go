// Package provision makes sure the vector index exists before ingestion.
package provision

import (
	"context"
	"fmt"
	"slices"
	"time"

	"ragdemo/internal/contextutil"
	"ragdemo/internal/vectorstore"
)

// DefaultInitDelay is how long to wait after creating an index before using it.
const DefaultInitDelay = 180 * time.Second

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Provisioner creates the index when it is missing.
type Provisioner struct {
	store     vectorstore.VectorStore
	initDelay time.Duration
	sleep     SleepFunc
}

// NewProvisioner creates a provisioner that waits initDelay after creating an index.
func NewProvisioner(store vectorstore.VectorStore, initDelay time.Duration) *Provisioner {
	return &Provisioner{
		store:     store,
		initDelay: initDelay,
		sleep:     Sleep,
	}
}

// WithSleep replaces the wait used after index creation.
func (p *Provisioner) WithSleep(sleep SleepFunc) *Provisioner {
	p.sleep = sleep
	return p
}

// EnsureIndex creates the index with cosine similarity if it is not listed.
// It reports whether the index was created. An existing index is left untouched
// and no delay is applied.
func (p *Provisioner) EnsureIndex(ctx context.Context, name string, dimension int) (bool, error) {
	logger := contextutil.LoggerFromContext(ctx)

	existing, err := p.store.ListIndexes(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list indexes: %w", err)
	}
	logger.InfoContext(ctx, "existing indexes", "indexes", existing)

	if slices.Contains(existing, name) {
		logger.InfoContext(ctx, "index already exists", "index", name)
		return false, nil
	}

	logger.InfoContext(ctx, "creating index", "index", name, "dimension", dimension)
	if err := p.store.CreateIndex(ctx, name, dimension, vectorstore.MetricCosine); err != nil {
		return false, fmt.Errorf("failed to create index %s: %w", name, err)
	}

	logger.InfoContext(ctx, "waiting for index to initialize", "index", name, "delay", p.initDelay)
	if err := p.sleep(ctx, p.initDelay); err != nil {
		return true, fmt.Errorf("interrupted while waiting for index %s: %w", name, err)
	}

	logger.InfoContext(ctx, "index created", "index", name)
	return true, nil
}

// Sleep waits for d, returning early with ctx.Err() if ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
