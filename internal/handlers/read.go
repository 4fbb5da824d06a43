package handlers

import (
	"encoding/json"
	"net/http"

	"ragdemo/internal/contextutil"
	"ragdemo/internal/rag"
	"ragdemo/internal/service"
)

// maxQuestionBytes bounds the request body of a read request.
const maxQuestionBytes = 64 << 10

// ReadHandler handles HTTP requests for questions against the index.
type ReadHandler struct {
	ragService service.RAGService
}

// NewReadHandler creates a new ReadHandler.
func NewReadHandler(ragService service.RAGService) *ReadHandler {
	return &ReadHandler{
		ragService: ragService,
	}
}

// ReadResponse represents the HTTP response payload for a question.
//
// swagger:model ReadResponse
type ReadResponse struct {
	// The answer, or null when no passages matched
	Data *string `json:"data"`

	// Passages the answer was conditioned on
	Sources []rag.Source `json:"sources,omitempty"`
}

// ServeHTTP handles HTTP requests for questions.
//
// swagger:route POST /api/read readQuestion
//
// # Answer a question from the indexed corpus
//
// The request body is a JSON string holding the question.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Answer, or null data when nothing matched
//	  schema:
//	    "$ref": "#/definitions/ReadResponse"
//	'400':
//	  description: Malformed body or empty question
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: External service error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ReadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var question string
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQuestionBytes)).Decode(&question); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Request body must be a JSON string")
		return
	}

	resp, err := h.ragService.Ask(ctx, service.AskRequest{Question: question})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	writeJSON(w, ctx, http.StatusOK, ReadResponse{
		Data:    resp.Answer,
		Sources: resp.Sources,
	})
}
