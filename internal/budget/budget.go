// Package budget provides token budget estimation and trimming for retrieved
// context. Because the tutor supports multiple LLM backends with different
// tokenizers, this package uses a conservative character-based heuristic:
// 1 token ≈ 4 characters (English prose). This deliberately under-estimates
// token counts to leave headroom for model-specific overhead.
package budget

import (
	"github.com/humanoid-ai/tutor-go/internal/rag"
)

const (
	// charsPerToken is the conservative character-to-token ratio used for
	// estimation. 4 chars/token is standard for English prose; using 3
	// would be more aggressive but risks overflowing context windows.
	charsPerToken = 4

	// DefaultMaxContextTokens is the default budget for the retrieved
	// context block. Five textbook chunks normally fit well under this;
	// the cap guards against pathologically large chunks in the index.
	DefaultMaxContextTokens = 6000
)

// Estimate returns a rough token count for s using the character heuristic.
func Estimate(s string) int {
	n := len(s) / charsPerToken
	if n == 0 && len(s) > 0 {
		return 1
	}
	return n
}

// EstimateChunks returns the estimated total token count for a chunk list,
// including a small per-chunk overhead for the JSON framing the tool output
// wraps each passage in.
func EstimateChunks(chunks []rag.Chunk) int {
	total := 0
	for _, c := range chunks {
		total += 4
		total += Estimate(c.Text)
	}
	return total
}

// TrimChunks drops the lowest-ranked chunks until the estimated token count
// of the remainder fits within maxTokens. Chunks arrive in descending
// relevance order, so trimming from the tail preserves the best context.
//
// A single chunk that alone exceeds the budget is kept: an oversized context
// is still better than answering with none.
func TrimChunks(chunks []rag.Chunk, maxTokens int) []rag.Chunk {
	for len(chunks) > 1 {
		if EstimateChunks(chunks) <= maxTokens {
			break
		}
		chunks = chunks[:len(chunks)-1]
	}
	return chunks
}
