package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ragdemo/internal/handlers"
	"ragdemo/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	RAGService service.RAGService
	Indexes    handlers.IndexLister
	DB         handlers.Pinger // optional
	IndexName  string
	IndexHTML  string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)

	r.Use(CORS)

	setupHandler := handlers.NewSetupHandler(deps.RAGService)
	readHandler := handlers.NewReadHandler(deps.RAGService)
	runsHandler := handlers.NewRunsHandler(deps.RAGService)
	healthHandler := handlers.NewHealthHandler(deps.Indexes, deps.DB, deps.IndexName)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/setup", setupHandler)
		r.Method(http.MethodPost, "/read", readHandler)
		r.Method(http.MethodGet, "/runs", runsHandler)
		r.Get("/runs/{id}", runsHandler.Get)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
