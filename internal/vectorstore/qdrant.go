package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"ragdemo/internal/contextutil"
)

// RecordIDKey is the payload key holding the application-level record ID.
// Qdrant only accepts UUIDs or integers as point IDs.
const RecordIDKey = "record_id"

// pointNamespace scopes the UUIDs derived from record IDs.
var pointNamespace = uuid.MustParse("6f1d3c2e-9a41-5b7e-8d0c-2f4b7a9e1c35")

// QdrantStore implements VectorStore using Qdrant.
type QdrantStore struct {
	client *qdrant.Client
}

// NewQdrantStore creates a new Qdrant vector store client.
// urlStr should be in the format "http://host:port" (e.g., "http://localhost:6333").
// The gRPC port is derived from the HTTP port (HTTP port + 1).
func NewQdrantStore(urlStr, apiKey string) (*QdrantStore, error) {
	host, port, useTLS, err := grpcTarget(urlStr)
	if err != nil {
		return nil, err
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantStore{
		client: client,
	}, nil
}

// grpcTarget derives the gRPC host and port from a Qdrant HTTP URL.
func grpcTarget(urlStr string) (string, int, bool, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334
	if parsedURL.Port() != "" {
		httpPort, err := strconv.Atoi(parsedURL.Port())
		if err == nil {
			port = httpPort + 1
		}
	}

	return host, port, parsedURL.Scheme == "https", nil
}

// PointID maps a record ID to the deterministic UUID used as the Qdrant point ID.
func PointID(recordID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(recordID)).String()
}

// Close closes the underlying gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}

// ListIndexes returns the names of all collections.
func (s *QdrantStore) ListIndexes(ctx context.Context) ([]string, error) {
	names, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// CreateIndex creates a collection with the given vector size.
func (s *QdrantStore) CreateIndex(ctx context.Context, name string, dimension int, metric Metric) error {
	logger := contextutil.LoggerFromContext(ctx)

	if dimension <= 0 {
		return fmt.Errorf("dimension must be greater than 0")
	}
	distance, err := toDistance(metric)
	if err != nil {
		return err
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: distance,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	logger.InfoContext(ctx, "collection created", "collection", name, "vector_size", dimension, "metric", metric)
	return nil
}

// Upsert inserts or updates points in the collection.
func (s *QdrantStore) Upsert(ctx context.Context, index string, records []Record) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	points, err := toPoints(records)
	if err != nil {
		return err
	}

	_, err = s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: index,
		Wait:           qdrant.PtrOf(true),
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	logger.DebugContext(ctx, "upserted points", "collection", index, "count", len(records))
	return nil
}

// Query performs a similarity search.
func (s *QdrantStore) Query(ctx context.Context, index string, req QueryRequest) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if req.TopK <= 0 {
		return nil, fmt.Errorf("topK must be greater than 0")
	}
	if len(req.Vector) == 0 {
		return nil, fmt.Errorf("query vector is empty")
	}

	limit := uint64(req.TopK)
	scoredPoints, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: index,
		Query:          qdrant.NewQuery(req.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(req.IncludeMetadata),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query points: %w", err)
	}

	matches := make([]Match, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		meta := convertPayloadToMap(point.GetPayload())
		id, _ := meta[RecordIDKey].(string)
		if id == "" && point.GetId() != nil {
			id = point.GetId().GetUuid()
		}
		matches = append(matches, Match{
			ID:       id,
			Score:    point.GetScore(),
			Metadata: meta,
		})
	}

	logger.DebugContext(ctx, "query completed", "collection", index, "top_k", req.TopK, "results", len(matches))
	return matches, nil
}

func toDistance(metric Metric) (qdrant.Distance, error) {
	switch metric {
	case MetricCosine:
		return qdrant.Distance_Cosine, nil
	default:
		return qdrant.Distance_UnknownDistance, fmt.Errorf("unsupported metric %q", metric)
	}
}

func toPoints(records []Record) ([]*qdrant.PointStruct, error) {
	points := make([]*qdrant.PointStruct, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			return nil, fmt.Errorf("record ID must not be empty")
		}

		payload := make(map[string]any, len(record.Metadata)+1)
		for k, v := range record.Metadata {
			payload[k] = v
		}
		payload[RecordIDKey] = record.ID

		values, err := qdrant.TryValueMap(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid metadata for record %s: %w", record.ID, err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(record.ID)),
			Vectors: qdrant.NewVectors(record.Values...),
			Payload: values,
		})
	}
	return points, nil
}

// convertPayloadToMap converts Qdrant payload to map[string]any.
func convertPayloadToMap(payload map[string]*qdrant.Value) map[string]any {
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		if v == nil {
			continue
		}
		result[k] = convertValue(v)
	}
	return result
}

// convertValue converts a Qdrant Value to Go any type.
func convertValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_ListValue:
		list := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			list[i] = convertValue(item)
		}
		return list
	case *qdrant.Value_StructValue:
		return convertPayloadToMap(val.StructValue.Fields)
	default:
		return nil
	}
}
