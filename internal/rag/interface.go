// Package rag defines the retrieval pipeline of the tutor: query embedding,
// vector similarity search, and the Retriever that composes the two.
// Concrete implementations (Cohere, Qdrant) satisfy these interfaces so the
// agent layer never depends on a specific backend.
package rag

import (
	"context"
)

// Chunk is a unit of textbook content retrieved from the vector index.
// Chunks are created at index-build time (outside this system) and are
// strictly read-only at query time.
type Chunk struct {
	// ID is the point identifier assigned by the index.
	ID string

	// Text is the stored text payload of the chunk. A chunk whose payload is
	// missing the text field carries an empty string here rather than failing
	// the whole search.
	Text string

	// Score is the similarity score assigned during retrieval. Higher is
	// more relevant; chunks are ordered by descending score.
	Score float32
}

// Embedder converts text into dense vector embeddings.
// Implementations must be safe to call from multiple goroutines, must make at
// most one attempt per call, and must return an error — never an empty
// vector — when the backing service fails.
type Embedder interface {
	// Embed converts a batch of texts into their corresponding embeddings.
	// The returned slice is parallel to the input slice.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorSearcher performs nearest-neighbour search over a pre-populated
// vector index. Implementations must be safe to call from multiple goroutines.
type VectorSearcher interface {
	// Search returns the topK chunks nearest to the query vector, in
	// descending relevance order. Fewer than topK are returned when the
	// index holds fewer entries.
	Search(ctx context.Context, queryVector []float32, topK int) ([]Chunk, error)

	// Close releases any resources held by the searcher.
	Close() error
}

// Retriever is the high-level interface the agent's retrieve tool calls to
// fetch grounding context for a query.
// Implementations must be safe to call from multiple goroutines.
type Retriever interface {
	// Retrieve returns the ranked chunks relevant to the query. An empty
	// slice with a nil error means the index genuinely has no matches; a
	// non-nil error means a dependency (embedding or search) failed.
	Retrieve(ctx context.Context, query string) ([]Chunk, error)
}
