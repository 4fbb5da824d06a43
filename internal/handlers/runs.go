package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ragdemo/internal/contextutil"
	"ragdemo/internal/service"
	"ragdemo/internal/storage"
)

// RunsHandler lists recent setup runs.
type RunsHandler struct {
	ragService service.RAGService
}

// NewRunsHandler creates a new RunsHandler.
func NewRunsHandler(ragService service.RAGService) *RunsHandler {
	return &RunsHandler{
		ragService: ragService,
	}
}

// RunsResponse represents the HTTP response payload for run history.
//
// swagger:model RunsResponse
type RunsResponse struct {
	Data []storage.SetupRun `json:"data"`
}

// ServeHTTP handles HTTP requests for run history.
//
// swagger:route GET /api/runs listRuns
//
// # List recent setup runs
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Runs, newest first
//	  schema:
//	    "$ref": "#/definitions/RunsResponse"
//	'400':
//	  description: Invalid limit
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *RunsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			logger.WarnContext(ctx, "invalid limit", "limit", raw)
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := h.ragService.RecentRuns(ctx, limit)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list setup runs")
		return
	}
	if runs == nil {
		runs = []storage.SetupRun{}
	}

	writeJSON(w, ctx, http.StatusOK, RunsResponse{Data: runs})
}

// RunDetailResponse represents the HTTP response payload for one setup run.
//
// swagger:model RunDetailResponse
type RunDetailResponse struct {
	Data          storage.SetupRun       `json:"data"`
	FailedBatches []storage.BatchFailure `json:"failed_batches"`
}

// Get handles HTTP requests for a single setup run.
//
// swagger:route GET /api/runs/{id} getRun
//
// # Get a setup run and its failed batches
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: The run
//	  schema:
//	    "$ref": "#/definitions/RunDetailResponse"
//	'404':
//	  description: No run with that ID
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *RunsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	detail, err := h.ragService.Run(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get setup run")
		return
	}

	failures := detail.Failures
	if failures == nil {
		failures = []storage.BatchFailure{}
	}
	writeJSON(w, ctx, http.StatusOK, RunDetailResponse{Data: detail.Run, FailedBatches: failures})
}
