package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks ragdemo/internal/vectorstore VectorStore

import "context"

// Metric is the similarity metric an index is created with.
type Metric string

// MetricCosine is the only metric the application creates indexes with.
const MetricCosine Metric = "cosine"

// Record is a vector with its identity and metadata, as stored in an index.
type Record struct {
	ID       string
	Values   []float32
	Metadata map[string]any
}

// Match is a record returned by a similarity query.
type Match struct {
	ID       string
	Score    float32
	Metadata map[string]any
}

// QueryRequest describes a top-K similarity query.
type QueryRequest struct {
	Vector          []float32
	TopK            int
	IncludeMetadata bool
}

// VectorStore defines the operations the application needs from a vector index provider.
type VectorStore interface {
	// ListIndexes returns the names of all existing indexes.
	ListIndexes(ctx context.Context) ([]string, error)

	// CreateIndex creates an index for vectors of the given dimension.
	CreateIndex(ctx context.Context, name string, dimension int, metric Metric) error

	// Upsert inserts or overwrites records by ID.
	Upsert(ctx context.Context, index string, records []Record) error

	// Query returns up to req.TopK matches ordered by descending similarity.
	Query(ctx context.Context, index string, req QueryRequest) ([]Match, error)
}
