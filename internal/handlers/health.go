package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"ragdemo/internal/contextutil"
)

// IndexLister reports the indexes a vector store holds.
type IndexLister interface {
	ListIndexes(ctx context.Context) ([]string, error)
}

// Pinger checks that a database connection is alive.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	indexes            IndexLister
	db                 Pinger
	indexName          string
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. db may be nil.
func NewHealthHandler(indexes IndexLister, db Pinger, indexName string) *HealthHandler {
	return &HealthHandler{
		indexes:            indexes,
		db:                 db,
		indexName:          indexName,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Returns 200 OK when healthy or degraded (index not created yet),
// 503 Service Unavailable when a dependency is unreachable.
//
// swagger:route GET /api/health healthCheck
//
// # Health check endpoint
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: System is healthy or degraded
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: System is unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	unhealthy := false

	switch h.checkVectorStore(checkCtx, logger) {
	case indexReady:
		checks["vector_store"] = "ok"
		checks["index"] = "ok"
	case indexMissing:
		checks["vector_store"] = "ok"
		checks["index"] = "missing"
		issues = append(issues, "index_not_created")
	default:
		checks["vector_store"] = "error"
		issues = append(issues, "vector_store_unavailable")
		unhealthy = true
	}

	if h.db != nil {
		if err := h.db.PingContext(checkCtx); err != nil {
			logger.WarnContext(ctx, "database health check failed", "error", err)
			checks["database"] = "error"
			issues = append(issues, "database_unavailable")
			unhealthy = true
		} else {
			checks["database"] = "ok"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case unhealthy:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case len(issues) > 0:
		status = "degraded"
	}

	writeJSON(w, ctx, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}

type indexState int

const (
	storeUnavailable indexState = iota
	indexMissing
	indexReady
)

// checkVectorStore checks if the vector store is accessible and holds the index.
func (h *HealthHandler) checkVectorStore(ctx context.Context, logger *slog.Logger) indexState {
	names, err := h.indexes.ListIndexes(ctx)
	if err != nil {
		logger.WarnContext(ctx, "vector store health check failed", "error", err)
		return storeUnavailable
	}
	if !slices.Contains(names, h.indexName) {
		logger.WarnContext(ctx, "vector store index does not exist", "index", h.indexName)
		return indexMissing
	}
	return indexReady
}
