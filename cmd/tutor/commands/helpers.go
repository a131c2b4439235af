package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cloudwego/eino/components/tool"

	"github.com/humanoid-ai/tutor-go/internal/agent"
	"github.com/humanoid-ai/tutor-go/internal/config"
	"github.com/humanoid-ai/tutor-go/internal/embedder"
	"github.com/humanoid-ai/tutor-go/internal/provider"
	"github.com/humanoid-ai/tutor-go/internal/rag"
	"github.com/humanoid-ai/tutor-go/internal/tools"
)

// buildIndex opens a read-only handle to the Qdrant collection configured
// via QDRANT_URL / QDRANT_API_KEY / QDRANT_COLLECTION.
func buildIndex() (*rag.QdrantIndex, error) {
	endpoint, err := config.ParseQdrantURL(os.Getenv("QDRANT_URL"))
	if err != nil {
		return nil, err
	}

	index, err := rag.NewQdrantIndex(&rag.QdrantConfig{
		Host:       endpoint.Host,
		Port:       endpoint.Port,
		Collection: config.Collection(),
		APIKey:     os.Getenv("QDRANT_API_KEY"),
		UseTLS:     endpoint.UseTLS,
	})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// buildRetriever wires the Cohere query embedder and the Qdrant index into
// the retrieval pipeline. topK <= 0 selects rag.DefaultTopK. The returned
// close function releases the gRPC connection and must be deferred by the
// caller.
func buildRetriever(log *slog.Logger, topK int) (rag.Retriever, *rag.QdrantIndex, func(), error) {
	queryEmbedder, err := embedder.NewQueryEmbedderFromEnv()
	if err != nil {
		return nil, nil, nil, err
	}

	index, err := buildIndex()
	if err != nil {
		return nil, nil, nil, err
	}

	if topK <= 0 {
		topK = rag.DefaultTopK
	}
	retriever, err := rag.NewRetriever(queryEmbedder, index, topK)
	if err != nil {
		_ = index.Close()
		return nil, nil, nil, err
	}

	closeFn := func() {
		if err := index.Close(); err != nil {
			log.Warn("qdrant: close failed", slog.Any("error", err))
		}
	}

	return retriever, index, closeFn, nil
}

// buildAgent assembles the full answer pipeline: model provider, retriever,
// retrieve tool, and the ReAct agent around them.
func buildAgent(ctx context.Context, log *slog.Logger) (*agent.TutorAgent, *rag.QdrantIndex, func(), error) {
	chatModel, err := provider.NewFromEnv(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialise model provider: %w", err)
	}

	retriever, index, closeFn, err := buildRetriever(log, rag.DefaultTopK)
	if err != nil {
		return nil, nil, nil, err
	}

	retrieveTool, err := tools.NewRetrieveTool(retriever)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}

	tutorAgent, err := agent.New(ctx, &agent.Config{
		ChatModel: chatModel,
		Tools:     []tool.BaseTool{retrieveTool},
	})
	if err != nil {
		closeFn()
		return nil, nil, nil, fmt.Errorf("failed to initialise agent: %w", err)
	}

	return tutorAgent, index, closeFn, nil
}
