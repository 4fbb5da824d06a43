package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	vectorstore_mocks "ragdemo/internal/vectorstore/mocks"
)

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		indexes    []string
		listErr    error
		pinger     Pinger
		wantStatus int
		wantState  string
		wantChecks map[string]string
	}{
		{
			name:       "healthy",
			indexes:    []string{"other", "docs"},
			pinger:     fakePinger{},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
			wantChecks: map[string]string{"vector_store": "ok", "index": "ok", "database": "ok"},
		},
		{
			name:       "index not created yet",
			indexes:    []string{"other"},
			wantStatus: http.StatusOK,
			wantState:  "degraded",
			wantChecks: map[string]string{"vector_store": "ok", "index": "missing"},
		},
		{
			name:       "vector store unreachable",
			listErr:    errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
			wantChecks: map[string]string{"vector_store": "error"},
		},
		{
			name:       "database unreachable",
			indexes:    []string{"docs"},
			pinger:     fakePinger{err: errors.New("closed")},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
			wantChecks: map[string]string{"vector_store": "ok", "database": "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := vectorstore_mocks.NewMockVectorStore(ctrl)
			store.EXPECT().ListIndexes(gomock.Any()).Return(tt.indexes, tt.listErr)

			handler := NewHealthHandler(store, tt.pinger, "docs")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %v, want %v", w.Code, tt.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != tt.wantState {
				t.Errorf("status = %q, want %q", resp.Status, tt.wantState)
			}
			for k, v := range tt.wantChecks {
				if resp.Checks[k] != v {
					t.Errorf("checks[%s] = %q, want %q", k, resp.Checks[k], v)
				}
			}
			if tt.wantState != "healthy" && len(resp.Issues) == 0 {
				t.Error("issues should be reported")
			}
		})
	}
}

func TestHealthHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(nil, nil, "docs")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/health", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %v, want %v", w.Code, http.StatusMethodNotAllowed)
	}
}
