package rag

import (
	"context"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
)

// textPayloadField is the payload field that holds the chunk text in the
// textbook collection. It is written at index-build time and is the only
// field this system reads.
const textPayloadField = "text"

// QdrantConfig holds connection parameters for the Qdrant vector index.
type QdrantConfig struct {
	// Host is the Qdrant server hostname (default: localhost).
	Host string

	// Port is the Qdrant gRPC port (default: 6334).
	Port int

	// Collection is the collection holding the textbook chunks.
	Collection string

	// APIKey is the optional Qdrant API key for authenticated clusters.
	APIKey string

	// UseTLS enables TLS for the gRPC connection. Required for Qdrant Cloud.
	UseTLS bool
}

// QdrantIndex implements VectorSearcher over a pre-populated Qdrant
// collection. The collection is written elsewhere at index-build time; this
// type only reads from it.
type QdrantIndex struct {
	// client is the underlying Qdrant gRPC client.
	client *qdrant.Client

	// cfg holds the resolved configuration for this index.
	cfg *QdrantConfig
}

// NewQdrantIndex creates a read-only handle to the configured collection.
// It does not create the collection: the index is assumed pre-populated, and
// a missing collection surfaces as a search error (or a failed readiness
// probe), not a startup error.
func NewQdrantIndex(cfg *QdrantConfig) (*QdrantIndex, error) {
	if cfg.Host == "" {
		cfg.Host = "localhost"
	}
	if cfg.Port == 0 {
		cfg.Port = 6334
	}
	if cfg.Collection == "" {
		return nil, fmt.Errorf("qdrant: collection must not be empty")
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: failed to create client: %w", err)
	}

	return &QdrantIndex{client: client, cfg: cfg}, nil
}

// Search performs a similarity search (metric as configured on the
// collection) and returns the topK nearest chunks in descending relevance
// order. A point whose payload lacks the text field yields a Chunk with an
// empty Text rather than an error.
func (s *QdrantIndex) Search(ctx context.Context, queryVector []float32, topK int) ([]Chunk, error) {
	limit := uint64(topK)
	results, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.cfg.Collection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: search failed: %w", err)
	}

	chunks := make([]Chunk, 0, len(results))
	for _, r := range results {
		chunk := Chunk{
			ID:    pointID(r.Id),
			Score: r.Score,
		}
		if p := r.Payload; p != nil {
			if v, ok := p[textPayloadField]; ok {
				chunk.Text = v.GetStringValue()
			}
		}
		chunks = append(chunks, chunk)
	}

	return chunks, nil
}

// pointID renders a Qdrant point ID as a string. Collections may use UUID
// or numeric point IDs; both must stay identifiable in chunk listings.
func pointID(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if u := id.GetUuid(); u != "" {
		return u
	}
	return strconv.FormatUint(id.GetNum(), 10)
}

// Ping calls the Qdrant HealthCheck RPC. Used by the readiness endpoint.
func (s *QdrantIndex) Ping(ctx context.Context) error {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return fmt.Errorf("qdrant: health check failed: %w", err)
	}
	return nil
}

// Close closes the underlying Qdrant gRPC connection.
func (s *QdrantIndex) Close() error {
	return s.client.Close()
}
