package embedder

import (
	"fmt"
	"os"

	"github.com/humanoid-ai/tutor-go/internal/rag"
)

// NewQueryEmbedderFromEnv constructs the query-mode rag.Embedder used at
// question time.
//
// Environment variables:
//
//	COHERE_API_KEY      required — the Cohere API key
//	EMBEDDING_MODEL     optional — overrides "embed-english-v3.0"
//	EMBEDDING_ENDPOINT  optional — overrides "https://api.cohere.com"
func NewQueryEmbedderFromEnv() (rag.Embedder, error) {
	apiKey := os.Getenv("COHERE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("embedder: COHERE_API_KEY is required")
	}

	return NewCohereEmbedder(&CohereConfig{
		BaseURL:   os.Getenv("EMBEDDING_ENDPOINT"),
		APIKey:    apiKey,
		Model:     os.Getenv("EMBEDDING_MODEL"),
		InputType: InputTypeQuery,
	}), nil
}
