package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_dependencies.go -package=mocks ragdemo/internal/service IndexProvisioner,DocumentLoader,Ingester,Responder
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag_service.go -package=mocks ragdemo/internal/service RAGService

import (
	"context"
	"strings"
	"time"

	"ragdemo/internal/contextutil"
	"ragdemo/internal/corpus"
	"ragdemo/internal/indexer"
	"ragdemo/internal/rag"
	"ragdemo/internal/storage"
)

// Setup messages returned to clients.
const (
	SetupCompletedMessage  = "Successfully created index and loaded data into the vector store."
	SetupWithErrorsMessage = "Index ready, but some batches failed to load. See the run record for details."
)

// Run history limits.
const (
	DefaultRunsLimit = 10
	MaxRunsLimit     = 100
)

// IndexProvisioner ensures the vector index exists.
// This interface is defined from the service layer's perspective (consumer-first).
type IndexProvisioner interface {
	EnsureIndex(ctx context.Context, name string, dimension int) (bool, error)
}

// DocumentLoader reads the document corpus.
type DocumentLoader interface {
	Load(ctx context.Context) ([]corpus.Document, error)
}

// Ingester embeds documents into the index.
type Ingester interface {
	Ingest(ctx context.Context, docs []corpus.Document) (indexer.IngestReport, error)
}

// Responder answers a question from indexed passages.
type Responder interface {
	Answer(ctx context.Context, question string) (rag.Answer, error)
}

// AskRequest represents a question in the domain layer.
type AskRequest struct {
	Question string
}

// AskResponse represents an answer in the domain layer.
type AskResponse struct {
	// Answer is nil when no passages matched.
	Answer  *string
	Sources []rag.Source
}

// SetupResult describes a finished setup run.
type SetupResult struct {
	Message string
	Run     storage.SetupRun
	Report  indexer.IngestReport
}

// RunDetail is a setup run with the batches that failed during it.
type RunDetail struct {
	Run      storage.SetupRun
	Failures []storage.BatchFailure
}

// RAGService provides index setup and question answering.
type RAGService interface {
	// Setup provisions the index and ingests the corpus.
	Setup(ctx context.Context) (SetupResult, error)
	// Ask answers a question.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
	// RecentRuns lists setup runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]storage.SetupRun, error)
	// Run returns one setup run with its failed batches.
	Run(ctx context.Context, id string) (RunDetail, error)
}

// RAGConfig names the index the service works against.
type RAGConfig struct {
	IndexName string
	Dimension int
}

// ragService implements RAGService.
type ragService struct {
	provisioner IndexProvisioner
	loader      DocumentLoader
	ingester    Ingester
	responder   Responder
	runs        storage.RunStore
	cfg         RAGConfig
}

// NewRAGService creates a new RAGService.
func NewRAGService(
	provisioner IndexProvisioner,
	loader DocumentLoader,
	ingester Ingester,
	responder Responder,
	runs storage.RunStore,
	cfg RAGConfig,
) RAGService {
	return &ragService{
		provisioner: provisioner,
		loader:      loader,
		ingester:    ingester,
		responder:   responder,
		runs:        runs,
		cfg:         cfg,
	}
}

// Setup provisions the index, loads the corpus, ingests it, and records the run.
func (s *ragService) Setup(ctx context.Context) (SetupResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	// A ledger outage must not block indexing; the run is then kept in memory only.
	recorded := true
	run, err := s.runs.Start(ctx, s.cfg.IndexName)
	if err != nil {
		logger.ErrorContext(ctx, "failed to record setup run, continuing without ledger", "error", err)
		recorded = false
		run = &storage.SetupRun{
			IndexName: s.cfg.IndexName,
			Status:    storage.RunStatusRunning,
			StartedAt: time.Now().UTC(),
		}
	} else {
		logger = logger.With("run_id", run.ID)
		ctx = contextutil.WithLogger(ctx, logger)
	}

	report, setupErr := s.setup(ctx, run)

	run.Documents = report.Documents
	run.Chunks = report.Chunks
	run.Upserted = report.Upserted
	run.FailedBatches = len(report.FailedBatches)
	switch {
	case setupErr != nil:
		run.Status = storage.RunStatusFailed
		run.Error = setupErr.Error()
	case len(report.FailedBatches) > 0:
		run.Status = storage.RunStatusCompletedWithErrors
	default:
		run.Status = storage.RunStatusCompleted
	}

	if recorded {
		s.finishRun(ctx, run, report.FailedBatches)
	}

	if setupErr != nil {
		logger.ErrorContext(ctx, "setup failed", "error", setupErr)
		return SetupResult{Run: *run, Report: report}, setupErr
	}

	message := SetupCompletedMessage
	if run.Status == storage.RunStatusCompletedWithErrors {
		message = SetupWithErrorsMessage
	}

	logger.InfoContext(ctx, "setup finished", "status", run.Status, "upserted", run.Upserted, "failed_batches", run.FailedBatches)
	return SetupResult{Message: message, Run: *run, Report: report}, nil
}

func (s *ragService) finishRun(ctx context.Context, run *storage.SetupRun, failed []indexer.BatchFailure) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(failed) > 0 {
		if err := s.runs.RecordBatchFailures(ctx, run.ID, toStorageFailures(failed)); err != nil {
			logger.ErrorContext(ctx, "failed to record batch failures", "error", err)
		}
	}

	// The request context may already be canceled; the run record still has to be closed.
	if err := s.runs.Finish(context.WithoutCancel(ctx), run); err != nil {
		logger.ErrorContext(ctx, "failed to finish setup run", "error", err)
	}
}

func (s *ragService) setup(ctx context.Context, run *storage.SetupRun) (indexer.IngestReport, error) {
	created, err := s.provisioner.EnsureIndex(ctx, s.cfg.IndexName, s.cfg.Dimension)
	run.IndexCreated = created
	if err != nil {
		return indexer.IngestReport{}, externalError(err, "failed to provision index")
	}

	docs, err := s.loader.Load(ctx)
	if err != nil {
		return indexer.IngestReport{}, WrapError(err, "failed to load documents")
	}

	report, err := s.ingester.Ingest(ctx, docs)
	if err != nil {
		return report, externalError(err, "failed to ingest documents")
	}
	return report, nil
}

// Ask validates the question and answers it.
func (s *ragService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Question) == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return AskResponse{}, &ValidationError{
			Field:   "question",
			Message: "cannot be empty",
		}
	}

	answer, err := s.responder.Answer(ctx, req.Question)
	if err != nil {
		logger.ErrorContext(ctx, "failed to answer question", "error", err)
		return AskResponse{}, externalError(err, "failed to answer question")
	}

	if !answer.Found {
		return AskResponse{}, nil
	}

	text := answer.Text
	return AskResponse{Answer: &text, Sources: answer.Sources}, nil
}

// RecentRuns lists setup runs, clamping limit to [1, MaxRunsLimit].
func (s *ragService) RecentRuns(ctx context.Context, limit int) ([]storage.SetupRun, error) {
	if limit <= 0 {
		limit = DefaultRunsLimit
	}
	if limit > MaxRunsLimit {
		limit = MaxRunsLimit
	}

	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, WrapError(err, "failed to list setup runs")
	}
	return runs, nil
}

// Run returns the setup run with the given ID and its failed batches.
func (s *ragService) Run(ctx context.Context, id string) (RunDetail, error) {
	if strings.TrimSpace(id) == "" {
		return RunDetail{}, &ValidationError{Field: "id", Message: "cannot be empty"}
	}

	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return RunDetail{}, storageError(err, "failed to get setup run")
	}

	failures, err := s.runs.ListBatchFailures(ctx, id)
	if err != nil {
		return RunDetail{}, WrapError(err, "failed to list batch failures")
	}

	return RunDetail{Run: *run, Failures: failures}, nil
}

func toStorageFailures(failures []indexer.BatchFailure) []storage.BatchFailure {
	out := make([]storage.BatchFailure, len(failures))
	for i, f := range failures {
		out[i] = storage.BatchFailure{
			Source:     f.Source,
			BatchIndex: f.BatchIndex,
			Size:       f.Size,
			FirstID:    f.FirstID,
			LastID:     f.LastID,
			Error:      f.Err,
		}
	}
	return out
}
