// Package tools defines the tool implementations the tutor agent can invoke
// during a conversation. Each tool satisfies Eino's tool.BaseTool interface
// so it can be registered directly with the ReAct agent.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/humanoid-ai/tutor-go/internal/budget"
	"github.com/humanoid-ai/tutor-go/internal/logging"
	"github.com/humanoid-ai/tutor-go/internal/rag"
)

// RetrieveTool is the Eino tool that fetches textbook chunks relevant to the
// user's question. The agent is instructed to call it exactly once before
// answering.
//
// Failure policy: any retriever failure is collapsed into an empty list and
// logged server-side. The agent treats an empty list as "no relevant context
// found" — an error string in the tool result would leak into the model's
// context and derail the answer.
type RetrieveTool struct {
	// retriever fetches ranked chunks for a query.
	retriever rag.Retriever
}

// retrieveInput is the JSON-serialisable input schema for RetrieveTool.
type retrieveInput struct {
	// Query is the user question to search the textbook for.
	Query string `json:"query"`
}

// NewRetrieveTool constructs a RetrieveTool over the given retriever.
func NewRetrieveTool(retriever rag.Retriever) (*RetrieveTool, error) {
	if retriever == nil {
		return nil, fmt.Errorf("tools: retriever must not be nil")
	}
	return &RetrieveTool{retriever: retriever}, nil
}

// Name returns the tool name registered with the agent.
func (t *RetrieveTool) Name() string { return "retrieve" }

// Description returns the LLM-facing description of this tool.
func (t *RetrieveTool) Description() string {
	return "Retrieves the most relevant passages from the Physical AI & Humanoid Robotics " +
		"textbook for a question. Returns a JSON array of passage texts, most relevant first. " +
		"An empty array means the textbook contains nothing relevant."
}

// Info returns the Eino tool metadata including the JSON input schema.
func (t *RetrieveTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: t.Name(),
		Desc: t.Description(),
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"query": {
				Type:     schema.String,
				Desc:     "The user question to search the textbook for.",
				Required: true,
			},
		}),
	}, nil
}

// InvokableRun retrieves chunks for the query and returns them as a JSON
// array of passage texts. It never returns an error for retrieval failures.
func (t *RetrieveTool) InvokableRun(ctx context.Context, argumentsInJSON string, opts ...tool.Option) (string, error) {
	var input retrieveInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("retrieve: invalid input: %w", err)
	}

	// A blank query cannot match anything — skip the embedding round-trip.
	if strings.TrimSpace(input.Query) == "" {
		return "[]", nil
	}

	chunks, err := t.retriever.Retrieve(ctx, input.Query)
	if err != nil {
		logging.FromContext(ctx).Warn("retrieve tool: retrieval failed, returning empty context",
			slog.Any("error", err),
		)
		return "[]", nil
	}

	// Cap the context block so oversized index chunks cannot blow the
	// model's input window.
	chunks = budget.TrimChunks(chunks, budget.DefaultMaxContextTokens)

	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		texts = append(texts, c.Text)
	}

	payload, err := json.Marshal(texts)
	if err != nil {
		return "", fmt.Errorf("retrieve: marshal result: %w", err)
	}

	return string(payload), nil
}
