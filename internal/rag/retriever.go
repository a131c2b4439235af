package rag

import (
	"context"
	"fmt"
)

// DefaultTopK is the number of chunks fetched per query. The tutor always
// retrieves five chunks; the index returns fewer only when it holds fewer.
const DefaultTopK = 5

// DefaultRetriever implements Retriever by embedding the query and delegating
// similarity search to a VectorSearcher. It performs no caching and no
// retries: each call is one embed attempt followed by one search attempt.
//
// A dependency failure is returned as an error so callers can tell "upstream
// outage" apart from "no relevant data". The agent-facing retrieve tool is
// the layer that collapses errors into an empty result.
type DefaultRetriever struct {
	// embedder converts the query text to a dense vector.
	embedder Embedder

	// searcher performs the vector similarity search.
	searcher VectorSearcher

	// topK is the number of chunks fetched per query.
	topK int
}

// NewRetriever constructs a DefaultRetriever from the given Embedder and
// VectorSearcher. topK falls back to DefaultTopK when zero or negative.
func NewRetriever(embedder Embedder, searcher VectorSearcher, topK int) (*DefaultRetriever, error) {
	if embedder == nil {
		return nil, fmt.Errorf("rag: embedder must not be nil")
	}
	if searcher == nil {
		return nil, fmt.Errorf("rag: searcher must not be nil")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &DefaultRetriever{
		embedder: embedder,
		searcher: searcher,
		topK:     topK,
	}, nil
}

// Retrieve embeds the query and returns the ranked relevant chunks.
// The result never exceeds the configured topK. An empty result with a nil
// error means the index has no matches.
func (r *DefaultRetriever) Retrieve(ctx context.Context, query string) ([]Chunk, error) {
	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("rag: embedding query failed: %w", err)
	}
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, fmt.Errorf("rag: embedder returned no vector for query")
	}

	chunks, err := r.searcher.Search(ctx, embeddings[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("rag: vector search failed: %w", err)
	}

	// The searcher is trusted to honour topK; clamp anyway so the contract
	// holds even against a misbehaving backend.
	if len(chunks) > r.topK {
		chunks = chunks[:r.topK]
	}

	return chunks, nil
}
