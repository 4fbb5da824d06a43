package handlers

import (
	"net/http"

	"ragdemo/internal/contextutil"
	"ragdemo/internal/service"
	"ragdemo/internal/storage"
)

// SetupHandler handles HTTP requests for index provisioning and ingestion.
type SetupHandler struct {
	ragService service.RAGService
}

// NewSetupHandler creates a new SetupHandler.
func NewSetupHandler(ragService service.RAGService) *SetupHandler {
	return &SetupHandler{
		ragService: ragService,
	}
}

// SetupResponse represents the HTTP response payload for a setup run.
//
// swagger:model SetupResponse
type SetupResponse struct {
	// Human-readable outcome of the run
	Data string `json:"data"`

	// The recorded setup run
	Run storage.SetupRun `json:"run"`

	// Upsert batches the vector store rejected
	FailedBatches []FailedBatchResponse `json:"failed_batches,omitempty"`
}

// FailedBatchResponse describes a rejected upsert batch.
//
// swagger:model FailedBatchResponse
type FailedBatchResponse struct {
	Source     string `json:"source"`
	BatchIndex int    `json:"batch_index"`
	Size       int    `json:"size"`
	FirstID    string `json:"first_id"`
	LastID     string `json:"last_id"`
	Error      string `json:"error"`
}

// ServeHTTP handles HTTP requests for setup.
//
// swagger:route POST /api/setup setupIndex
//
// # Create the index and load the corpus
//
// Creates the vector index if it does not exist, then splits, embeds and
// upserts every document in the corpus. Runs synchronously.
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Setup finished (possibly with failed batches)
//	  schema:
//	    "$ref": "#/definitions/SetupResponse"
//	'502':
//	  description: Vector store or embeddings provider failed
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *SetupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	result, err := h.ragService.Setup(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to set up index")
		return
	}

	resp := SetupResponse{
		Data: result.Message,
		Run:  result.Run,
	}
	for _, f := range result.Report.FailedBatches {
		resp.FailedBatches = append(resp.FailedBatches, FailedBatchResponse{
			Source:     f.Source,
			BatchIndex: f.BatchIndex,
			Size:       f.Size,
			FirstID:    f.FirstID,
			LastID:     f.LastID,
			Error:      f.Err,
		})
	}

	writeJSON(w, ctx, http.StatusOK, resp)
}
