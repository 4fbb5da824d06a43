package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"ragdemo/internal/corpus"
	llm_mocks "ragdemo/internal/llm/mocks"
	"ragdemo/internal/vectorstore"
	vectorstore_mocks "ragdemo/internal/vectorstore/mocks"
)

// fakeEmbeddings returns one small vector per text.
func fakeEmbeddings(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(i), 1}
	}
	return out, nil
}

// textWithChunks builds a text that splits into exactly n chunks of the default size.
func textWithChunks(n int) string {
	return strings.Repeat("x", n*DefaultChunkSize)
}

func newTestPipeline(embedder *llm_mocks.MockEmbedder, store *vectorstore_mocks.MockVectorStore) *Pipeline {
	return NewPipeline(NewRecursiveSplitter(DefaultChunkSize, 0), embedder, store, "docs", DefaultBatchSize)
}

func TestNewPipeline(t *testing.T) {
	ctrl := gomock.NewController(t)

	p := NewPipeline(NewRecursiveSplitter(0, 0), llm_mocks.NewMockEmbedder(ctrl), vectorstore_mocks.NewMockVectorStore(ctrl), "docs", 0)
	if p.batchSize != DefaultBatchSize {
		t.Errorf("NewPipeline() batchSize = %d, want %d", p.batchSize, DefaultBatchSize)
	}
	if p.index != "docs" {
		t.Errorf("NewPipeline() index = %v, want docs", p.index)
	}
}

func TestRecordID(t *testing.T) {
	if got := RecordID("guides/funds.txt", 3); got != "guides/funds.txt_3" {
		t.Errorf("RecordID() = %q", got)
	}
}

func TestPipeline_Ingest_BatchSizes(t *testing.T) {
	tests := []struct {
		name        string
		chunks      int
		wantBatches []int
	}{
		{name: "single partial batch", chunks: 7, wantBatches: []int{7}},
		{name: "exactly one batch", chunks: 100, wantBatches: []int{100}},
		{name: "two full and a partial", chunks: 250, wantBatches: []int{100, 100, 50}},
		{name: "exact multiple", chunks: 200, wantBatches: []int{100, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			embedder := llm_mocks.NewMockEmbedder(ctrl)
			store := vectorstore_mocks.NewMockVectorStore(ctrl)

			embedder.EXPECT().EmbedDocuments(gomock.Any(), gomock.Len(tt.chunks)).DoAndReturn(fakeEmbeddings).Times(1)

			var sizes []int
			store.EXPECT().Upsert(gomock.Any(), "docs", gomock.Any()).
				DoAndReturn(func(_ context.Context, _ string, records []vectorstore.Record) error {
					sizes = append(sizes, len(records))
					return nil
				}).Times(len(tt.wantBatches))

			report, err := newTestPipeline(embedder, store).Ingest(context.Background(), []corpus.Document{
				{Source: "a.txt", Text: textWithChunks(tt.chunks)},
			})
			if err != nil {
				t.Fatalf("Ingest() error = %v", err)
			}

			if fmt.Sprint(sizes) != fmt.Sprint(tt.wantBatches) {
				t.Errorf("batch sizes = %v, want %v", sizes, tt.wantBatches)
			}
			if report.Chunks != tt.chunks || report.Upserted != tt.chunks || report.Batches != len(tt.wantBatches) {
				t.Errorf("report = %+v", report)
			}
		})
	}
}

func TestPipeline_Ingest_RecordContents(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	text := "Funds pool money.\nThey are managed."
	embedder.EXPECT().EmbedDocuments(gomock.Any(), []string{"Funds pool money.They are managed."}).DoAndReturn(fakeEmbeddings)

	var got []vectorstore.Record
	store.EXPECT().Upsert(gomock.Any(), "docs", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, records []vectorstore.Record) error {
			got = records
			return nil
		})

	_, err := newTestPipeline(embedder, store).Ingest(context.Background(), []corpus.Document{{Source: "guides/funds.txt", Text: text}})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("upserted %d records, want 1", len(got))
	}
	rec := got[0]
	if rec.ID != "guides/funds.txt_0" {
		t.Errorf("ID = %q", rec.ID)
	}
	if rec.Metadata[MetaPageContent] != text {
		t.Errorf("pageContent = %q, want original text with newlines", rec.Metadata[MetaPageContent])
	}
	if rec.Metadata[MetaSource] != "guides/funds.txt" {
		t.Errorf("txtPath = %v", rec.Metadata[MetaSource])
	}
	if rec.Metadata[MetaLocation] != `{"lines":{"from":1,"to":2}}` {
		t.Errorf("loc = %v", rec.Metadata[MetaLocation])
	}
}

func TestPipeline_Ingest_IdempotentIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().EmbedDocuments(gomock.Any(), gomock.Any()).DoAndReturn(fakeEmbeddings).Times(2)

	var runs [][]string
	store.EXPECT().Upsert(gomock.Any(), "docs", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, records []vectorstore.Record) error {
			ids := make([]string, len(records))
			for i, r := range records {
				ids[i] = r.ID
			}
			runs = append(runs, ids)
			return nil
		}).Times(2)

	docs := []corpus.Document{{Source: "a.txt", Text: textWithChunks(3)}}
	p := newTestPipeline(embedder, store)
	for range 2 {
		if _, err := p.Ingest(context.Background(), docs); err != nil {
			t.Fatalf("Ingest() error = %v", err)
		}
	}

	want := "[a.txt_0 a.txt_1 a.txt_2]"
	if fmt.Sprint(runs[0]) != want || fmt.Sprint(runs[1]) != want {
		t.Errorf("ids = %v, want %s on both runs", runs, want)
	}
}

func TestPipeline_Ingest_FailedBatchContinues(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().EmbedDocuments(gomock.Any(), gomock.Any()).DoAndReturn(fakeEmbeddings).Times(2)

	calls := 0
	store.EXPECT().Upsert(gomock.Any(), "docs", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, records []vectorstore.Record) error {
			calls++
			if calls == 2 {
				return errors.New("quota exceeded")
			}
			return nil
		}).Times(4)

	report, err := newTestPipeline(embedder, store).Ingest(context.Background(), []corpus.Document{
		{Source: "a.txt", Text: textWithChunks(250)},
		{Source: "b.txt", Text: "short"},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if report.Documents != 2 || report.Batches != 4 || report.Upserted != 151 {
		t.Errorf("report = %+v", report)
	}
	if len(report.FailedBatches) != 1 {
		t.Fatalf("FailedBatches = %+v, want 1", report.FailedBatches)
	}
	failure := report.FailedBatches[0]
	if failure.Source != "a.txt" || failure.BatchIndex != 1 || failure.Size != 100 ||
		failure.FirstID != "a.txt_100" || failure.LastID != "a.txt_199" || failure.Err != "quota exceeded" {
		t.Errorf("failure = %+v", failure)
	}
}

func TestPipeline_Ingest_EmbeddingErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().EmbedDocuments(gomock.Any(), gomock.Any()).Return(nil, errors.New("unauthorized"))

	_, err := newTestPipeline(embedder, store).Ingest(context.Background(), []corpus.Document{
		{Source: "a.txt", Text: "one"},
		{Source: "b.txt", Text: "two"},
	})
	if err == nil {
		t.Fatal("Ingest() expected error, got nil")
	}
}

func TestPipeline_Ingest_EmbeddingCountMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	embedder.EXPECT().EmbedDocuments(gomock.Any(), gomock.Any()).Return([][]float32{{1}}, nil)

	if _, err := newTestPipeline(embedder, store).Ingest(context.Background(), []corpus.Document{
		{Source: "a.txt", Text: textWithChunks(2)},
	}); err == nil {
		t.Fatal("Ingest() expected error on embedding count mismatch")
	}
}

func TestPipeline_Ingest_SkipsEmptyDocuments(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	report, err := newTestPipeline(embedder, store).Ingest(context.Background(), []corpus.Document{
		{Source: "empty.txt", Text: "   \n\n  "},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if report.Documents != 0 || report.Chunks != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestPipeline_Ingest_ContextCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	embedder := llm_mocks.NewMockEmbedder(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline(embedder, store).Ingest(ctx, []corpus.Document{{Source: "a.txt", Text: "one"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Ingest() error = %v, want context.Canceled", err)
	}
}
