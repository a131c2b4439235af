package server

import (
	"context"
	"fmt"

	"github.com/humanoid-ai/tutor-go/internal/rag"
)

// QdrantPinger reports readiness of the vector index backing retrieval.
type QdrantPinger struct {
	Index *rag.QdrantIndex
}

func (p *QdrantPinger) Name() string { return "qdrant" }

func (p *QdrantPinger) Ping(ctx context.Context) error {
	if p.Index == nil {
		return fmt.Errorf("qdrant index not configured")
	}
	if err := p.Index.Ping(ctx); err != nil {
		return fmt.Errorf("qdrant unreachable: %w", err)
	}
	return nil
}
