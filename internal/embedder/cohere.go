// Package embedder provides the rag.Embedder implementation that converts
// text into dense vector embeddings via the Cohere embed API. The client
// talks plain HTTP — no additional SDK dependencies are required.
package embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// InputType selects the Cohere embedding mode. Queries and documents are
// embedded asymmetrically by the v3 models; mixing the two modes degrades
// retrieval quality, so the mode is fixed per embedder instance.
type InputType string

const (
	// InputTypeQuery embeds search queries. This is the mode the tutor uses
	// at question time.
	InputTypeQuery InputType = "search_query"

	// InputTypeDocument embeds documents for storage. The textbook index was
	// built in this mode; it is exposed for index-side tooling.
	InputTypeDocument InputType = "search_document"
)

// Default Cohere settings. embed-english-v3.0 produces 1024-wide vectors,
// which must match the dimensionality of the textbook collection.
const (
	defaultCohereBaseURL = "https://api.cohere.com"
	defaultCohereModel   = "embed-english-v3.0"

	// DefaultDimensions is the output width of embed-english-v3.0.
	DefaultDimensions = 1024
)

// CohereEmbedder implements rag.Embedder using the Cohere v2 embed REST API.
// It is safe for concurrent use.
type CohereEmbedder struct {
	// baseURL is the API base (e.g. "https://api.cohere.com").
	baseURL string
	// apiKey is the Bearer token.
	apiKey string
	// model is the embedding model name (e.g. "embed-english-v3.0").
	model string
	// inputType is the fixed embedding mode for this instance.
	inputType InputType
	// client is the shared HTTP client with a sensible timeout.
	client *http.Client
}

// CohereConfig holds the settings for constructing a CohereEmbedder.
type CohereConfig struct {
	// BaseURL is the API base URL. Defaults to "https://api.cohere.com".
	BaseURL string
	// APIKey is the Cohere API key.
	APIKey string
	// Model is the embedding model name. Defaults to "embed-english-v3.0".
	Model string
	// InputType is the embedding mode. Defaults to InputTypeQuery.
	InputType InputType
}

// NewCohereEmbedder constructs a CohereEmbedder from the given config.
func NewCohereEmbedder(cfg *CohereConfig) *CohereEmbedder {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultCohereBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultCohereModel
	}
	inputType := cfg.InputType
	if inputType == "" {
		inputType = InputTypeQuery
	}
	return &CohereEmbedder{
		baseURL:   baseURL,
		apiKey:    cfg.APIKey,
		model:     model,
		inputType: inputType,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// cohereEmbedRequest is the JSON body sent to the v2 embed endpoint.
type cohereEmbedRequest struct {
	Model          string   `json:"model"`
	InputType      string   `json:"input_type"`
	Texts          []string `json:"texts"`
	EmbeddingTypes []string `json:"embedding_types"`
}

// cohereEmbedResponse is the JSON body returned from the v2 embed endpoint.
type cohereEmbedResponse struct {
	Embeddings struct {
		Float [][]float32 `json:"float"`
	} `json:"embeddings"`
	Message string `json:"message,omitempty"`
}

// Embed converts a batch of texts into their corresponding embeddings.
// The returned slice is parallel to the input slice. One attempt per call;
// any service failure is returned as an error, never as an empty result.
func (e *CohereEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	body := cohereEmbedRequest{
		Model:          e.model,
		InputType:      string(e.inputType),
		Texts:          texts,
		EmbeddingTypes: []string{"float"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("cohere embedder: marshal request: %w", err)
	}

	url := e.baseURL + "/v2/embed"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("cohere embedder: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cohere embedder: request failed: %w", err)
	}
	defer resp.Body.Close()

	var result cohereEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("cohere embedder: decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("HTTP %d", resp.StatusCode)
		if result.Message != "" {
			msg = result.Message
		}
		return nil, fmt.Errorf("cohere embedder: %s", msg)
	}

	if len(result.Embeddings.Float) != len(texts) {
		return nil, fmt.Errorf("cohere embedder: expected %d embeddings, got %d",
			len(texts), len(result.Embeddings.Float))
	}

	return result.Embeddings.Float, nil
}
