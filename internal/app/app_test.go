package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"ragdemo/internal/config"
	"ragdemo/internal/llm"
	llm_mocks "ragdemo/internal/llm/mocks"
	"ragdemo/internal/service"
	"ragdemo/internal/storage"
	"ragdemo/internal/vectorstore"
	vectorstore_mocks "ragdemo/internal/vectorstore/mocks"
)

func TestAssemble_SetupAndAsk(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	docs := t.TempDir()
	if err := os.WriteFile(filepath.Join(docs, "advisor.txt"), []byte("Save early.\nSave often."), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	db, err := storage.New(filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	cfg := &config.Config{
		DocumentsPath:   docs,
		IndexName:       "docs",
		VectorDimension: 2,
		IndexInitDelay:  time.Millisecond,
		ChunkSize:       1000,
		UpsertBatchSize: 100,
		TopK:            10,
	}

	store := vectorstore_mocks.NewMockVectorStore(ctrl)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	completer := llm_mocks.NewMockCompleter(ctrl)

	store.EXPECT().ListIndexes(gomock.Any()).Return([]string{"docs"}, nil)
	embedder.EXPECT().EmbedDocuments(gomock.Any(), []string{"Save early.Save often."}).Return([][]float32{{0.1, 0.2}}, nil)
	store.EXPECT().Upsert(gomock.Any(), "docs", gomock.Len(1)).Return(nil)

	runs := storage.NewRunRepo(db)
	svc := Assemble(cfg, store, &llm.Providers{Embedder: embedder, Completer: completer}, runs)

	result, err := svc.Setup(ctx)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if result.Run.Status != storage.RunStatusCompleted || result.Run.Upserted != 1 {
		t.Errorf("Setup() run = %+v", result.Run)
	}

	stored, err := runs.GetByID(ctx, result.Run.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.Status != storage.RunStatusCompleted || stored.FinishedAt == nil {
		t.Errorf("stored run = %+v", stored)
	}

	embedder.EXPECT().EmbedQuery(gomock.Any(), "When?").Return([]float32{0.1, 0.2}, nil)
	store.EXPECT().Query(gomock.Any(), "docs", vectorstore.QueryRequest{Vector: []float32{0.1, 0.2}, TopK: 10, IncludeMetadata: true}).
		Return([]vectorstore.Match{{ID: "advisor.txt_0", Score: 0.9, Metadata: map[string]any{"pageContent": "Save early.\nSave often."}}}, nil)
	completer.EXPECT().ChatWithMessages(gomock.Any(), gomock.Len(1), gomock.Any()).Return("Early and often.", nil)

	resp, err := svc.Ask(ctx, service.AskRequest{Question: "When?"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if resp.Answer == nil || *resp.Answer != "Early and often." {
		t.Errorf("Ask() answer = %v", resp.Answer)
	}
}

func TestApp_CloseIsIdempotent(t *testing.T) {
	calls := 0
	a := &App{closers: []func() error{func() error { calls++; return nil }}}

	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("closer called %d times, want 1", calls)
	}
}
