// Package agent wires the Eino ReAct agent with the retrieve tool to form
// the textbook tutor. The agent handles the full loop: it calls the retrieve
// tool for grounding context and produces the final answer from it.
package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
)

// Fallback is the literal reply the agent must give when the retrieved
// context does not contain the answer. The HTTP layer and tests key on this
// exact string.
const Fallback = "I don't know"

// instructions is the system prompt injected into every conversation.
//
// The call-retrieve-first rule and the answer-only-from-context rule are
// enforced by this prompt alone — there is no code-level guarantee the model
// obeys them. Treat them as a soft contract: verify statistically, never
// assume them as hard invariants.
const instructions = `You are an AI tutor for the Physical AI & Humanoid Robotics textbook.

Rules:
1. First call the tool ` + "`retrieve`" + ` with the user question.
2. Use ONLY the returned content from ` + "`retrieve`" + ` to answer.
3. If the answer is not present, reply exactly: "` + Fallback + `".`

// Config holds the dependencies required to construct a TutorAgent.
type Config struct {
	// ChatModel is the LLM backend constructed by the provider factory.
	ChatModel model.ToolCallingChatModel

	// Tools is the list of tools available to the agent. For the tutor this
	// is the single retrieve tool.
	Tools []tool.BaseTool
}

// TutorAgent wraps the Eino ReAct agent with the tutor instructions.
type TutorAgent struct {
	// reactAgent is the underlying Eino ReAct loop agent.
	reactAgent *react.Agent
}

// New constructs a TutorAgent from the provided Config.
func New(ctx context.Context, cfg *Config) (*TutorAgent, error) {
	if cfg.ChatModel == nil {
		return nil, fmt.Errorf("agent: ChatModel must not be nil")
	}

	reactAgent, err := react.NewAgent(ctx, &react.AgentConfig{
		ToolCallingModel: cfg.ChatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: cfg.Tools,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("agent: failed to create ReAct agent: %w", err)
	}

	return &TutorAgent{reactAgent: reactAgent}, nil
}

// Answer sends a user question through the agent loop and returns the final
// answer text. The call is synchronous from the caller's viewpoint; the
// stream is drained internally. An empty model output degrades to Fallback.
func (a *TutorAgent) Answer(ctx context.Context, question string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(instructions),
		schema.UserMessage(question),
	}

	sr, err := a.reactAgent.Stream(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("agent: stream failed: %w", err)
	}
	defer sr.Close()

	var buf strings.Builder
	for {
		msg, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("agent: stream receive error: %w", err)
		}
		if msg != nil && msg.Content != "" {
			buf.WriteString(msg.Content)
		}
	}

	return orFallback(buf.String()), nil
}

// orFallback substitutes Fallback for a blank model output so the caller
// never receives an empty answer.
func orFallback(answer string) string {
	if strings.TrimSpace(answer) == "" {
		return Fallback
	}
	return answer
}
