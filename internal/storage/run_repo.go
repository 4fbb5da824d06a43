package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_run_store.go -package=mocks ragdemo/internal/storage RunStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// timeLayout is fixed width so stored timestamps sort lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RunStore defines the interface for setup run storage operations.
type RunStore interface {
	// Start records a new running setup run for indexName.
	Start(ctx context.Context, indexName string) (*SetupRun, error)
	// Finish stores the final status and counters of run and stamps FinishedAt.
	Finish(ctx context.Context, run *SetupRun) error
	// RecordBatchFailures stores failures for runID.
	RecordBatchFailures(ctx context.Context, runID string, failures []BatchFailure) error
	// ListRecent returns up to limit runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]SetupRun, error)
	// GetByID returns ErrNotFound if no run has the given ID.
	GetByID(ctx context.Context, id string) (*SetupRun, error)
	// ListBatchFailures returns the failures recorded for runID in insertion order.
	ListBatchFailures(ctx context.Context, runID string) ([]BatchFailure, error)
}

// RunRepo provides methods for setup run operations.
// It implements the RunStore interface.
type RunRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Start records a new running setup run.
func (r *RunRepo) Start(ctx context.Context, indexName string) (*SetupRun, error) {
	run := &SetupRun{
		ID:        uuid.New().String(),
		IndexName: indexName,
		Status:    RunStatusRunning,
		StartedAt: r.now(),
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO setup_runs (id, index_name, status, started_at) VALUES (?, ?, ?, ?)",
		run.ID, run.IndexName, run.Status, run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert setup run: %w", err)
	}

	return run, nil
}

// Finish stores the final state of run.
func (r *RunRepo) Finish(ctx context.Context, run *SetupRun) error {
	finishedAt := r.now()

	result, err := r.db.ExecContext(ctx,
		`UPDATE setup_runs
		SET status = ?, finished_at = ?, index_created = ?, documents = ?, chunks = ?, upserted = ?, failed_batches = ?, error = ?
		WHERE id = ?`,
		run.Status, finishedAt.UTC().Format(timeLayout), run.IndexCreated, run.Documents, run.Chunks,
		run.Upserted, run.FailedBatches, run.Error, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update setup run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	run.FinishedAt = &finishedAt
	return nil
}

// RecordBatchFailures stores failures for runID in a single transaction.
func (r *RunRepo) RecordBatchFailures(ctx context.Context, runID string, failures []BatchFailure) error {
	if len(failures) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO batch_failures (run_id, source, batch_index, size, first_id, last_id, error) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, f := range failures {
		if _, err := stmt.ExecContext(ctx, runID, f.Source, f.BatchIndex, f.Size, f.FirstID, f.LastID, f.Error); err != nil {
			return fmt.Errorf("failed to insert batch failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListRecent returns up to limit runs, newest first.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]SetupRun, error) {
	if limit <= 0 {
		return []SetupRun{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, index_name, status, started_at, finished_at, index_created, documents, chunks, upserted, failed_batches, error
		FROM setup_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query setup runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	runs := []SetupRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setup runs: %w", err)
	}

	return runs, nil
}

// GetByID gets a run by ID.
// Returns nil and ErrNotFound if not found.
func (r *RunRepo) GetByID(ctx context.Context, id string) (*SetupRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, index_name, status, started_at, finished_at, index_created, documents, chunks, upserted, failed_batches, error
		FROM setup_runs WHERE id = ?`,
		id,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListBatchFailures returns the failures recorded for runID.
func (r *RunRepo) ListBatchFailures(ctx context.Context, runID string) ([]BatchFailure, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT run_id, source, batch_index, size, first_id, last_id, error FROM batch_failures WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch failures: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	failures := []BatchFailure{}
	for rows.Next() {
		var f BatchFailure
		if err := rows.Scan(&f.RunID, &f.Source, &f.BatchIndex, &f.Size, &f.FirstID, &f.LastID, &f.Error); err != nil {
			return nil, fmt.Errorf("failed to scan batch failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch failures: %w", err)
	}

	return failures, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*SetupRun, error) {
	var run SetupRun
	var startedAt string
	var finishedAt sql.NullString

	err := row.Scan(&run.ID, &run.IndexName, &run.Status, &startedAt, &finishedAt,
		&run.IndexCreated, &run.Documents, &run.Chunks, &run.Upserted, &run.FailedBatches, &run.Error)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan setup run: %w", err)
	}

	run.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at timestamp: %w", err)
	}
	if finishedAt.Valid && finishedAt.String != "" {
		t, err := time.Parse(timeLayout, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finished_at timestamp: %w", err)
		}
		run.FinishedAt = &t
	}

	return &run, nil
}
