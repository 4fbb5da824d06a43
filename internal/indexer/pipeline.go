package indexer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ragdemo/internal/contextutil"
	"ragdemo/internal/corpus"
	"ragdemo/internal/llm"
	"ragdemo/internal/vectorstore"
)

// Metadata keys stored with every record.
const (
	MetaPageContent = "pageContent"
	MetaSource      = "txtPath"
	MetaLocation    = "loc"
)

// DefaultBatchSize is the number of records sent per upsert call.
const DefaultBatchSize = 100

// Pipeline embeds documents and writes them to the vector index.
type Pipeline struct {
	splitter    *RecursiveSplitter
	embedder    llm.Embedder
	vectorStore vectorstore.VectorStore
	index       string
	batchSize   int
}

// NewPipeline creates a new ingestion pipeline.
// Non-positive batchSize falls back to DefaultBatchSize.
func NewPipeline(
	splitter *RecursiveSplitter,
	embedder llm.Embedder,
	vectorStore vectorstore.VectorStore,
	index string,
	batchSize int,
) *Pipeline {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Pipeline{
		splitter:    splitter,
		embedder:    embedder,
		vectorStore: vectorStore,
		index:       index,
		batchSize:   batchSize,
	}
}

// RecordID returns the index record ID for the chunk at position idx of source.
func RecordID(source string, idx int) string {
	return fmt.Sprintf("%s_%d", source, idx)
}

// Ingest splits, embeds, and upserts docs in order.
// Embedding failures abort the run. A rejected upsert batch is logged,
// added to the report, and skipped.
func (p *Pipeline) Ingest(ctx context.Context, docs []corpus.Document) (IngestReport, error) {
	logger := contextutil.LoggerFromContext(ctx)
	var report IngestReport

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		chunks := p.splitter.Split(doc.Text)
		logger.InfoContext(ctx, "document split", "source", doc.Source, "chunks", len(chunks))
		if len(chunks) == 0 {
			continue
		}

		records, err := p.embedChunks(ctx, doc.Source, chunks)
		if err != nil {
			return report, err
		}
		report.Documents++
		report.Chunks += len(chunks)

		if err := p.upsertBatches(ctx, doc.Source, records, &report); err != nil {
			return report, err
		}
	}

	logger.InfoContext(ctx, "ingestion finished",
		"index", p.index,
		"documents", report.Documents,
		"chunks", report.Chunks,
		"upserted", report.Upserted,
		"batches", report.Batches,
		"failed_batches", len(report.FailedBatches),
	)
	return report, nil
}

// embedChunks embeds every chunk of one document in a single call and builds its records.
func (p *Pipeline) embedChunks(ctx context.Context, source string, chunks []Chunk) ([]vectorstore.Record, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = strings.ReplaceAll(chunk.Text, "\n", "")
	}

	embeddings, err := p.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings for %s: %w", source, err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch for %s: expected %d, got %d", source, len(chunks), len(embeddings))
	}

	records := make([]vectorstore.Record, len(chunks))
	for i, chunk := range chunks {
		loc, err := json.Marshal(chunk.Loc)
		if err != nil {
			return nil, fmt.Errorf("failed to encode location: %w", err)
		}
		records[i] = vectorstore.Record{
			ID:     RecordID(source, chunk.Index),
			Values: embeddings[i],
			Metadata: map[string]any{
				MetaLocation:    string(loc),
				MetaPageContent: chunk.Text,
				MetaSource:      source,
			},
		}
	}
	return records, nil
}

func (p *Pipeline) upsertBatches(ctx context.Context, source string, records []vectorstore.Record, report *IngestReport) error {
	logger := contextutil.LoggerFromContext(ctx)

	for batchIndex, start := 0, 0; start < len(records); batchIndex, start = batchIndex+1, start+p.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+p.batchSize, len(records))
		batch := records[start:end]
		report.Batches++

		if err := p.vectorStore.Upsert(ctx, p.index, batch); err != nil {
			logger.ErrorContext(ctx, "upsert batch failed",
				"source", source,
				"batch", batchIndex,
				"size", len(batch),
				"error", err,
			)
			report.FailedBatches = append(report.FailedBatches, BatchFailure{
				Source:     source,
				BatchIndex: batchIndex,
				Size:       len(batch),
				FirstID:    batch[0].ID,
				LastID:     batch[len(batch)-1].ID,
				Err:        err.Error(),
			})
			continue
		}

		report.Upserted += len(batch)
		logger.DebugContext(ctx, "upserted batch", "source", source, "batch", batchIndex, "size", len(batch))
	}
	return nil
}
