package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/humanoid-ai/tutor-go/internal/logging"
)

// NewRetrieveCmd constructs the `tutor retrieve` command, which runs the
// retrieval pipeline without the agent. Useful for inspecting what context
// the agent would see for a given question, and for checking index quality.
func NewRetrieveCmd() *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "retrieve [query]",
		Short: "Show the book chunks retrieved for a query",
		Long: `Embed a query and print the most similar book chunks from the
Qdrant index, with their similarity scores. This exercises only the
embedding and vector search stages — no model call is made.

Examples:
  tutor retrieve "series elastic actuators"
  tutor retrieve --top-k 10 "sim-to-real transfer"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()

			// Retrieval only needs the embedder and Qdrant credentials;
			// GEMINI_API_KEY is deliberately not required here.
			retriever, _, closeFn, err := buildRetriever(log, topK)
			if err != nil {
				return fmt.Errorf("retrieve: %w", err)
			}
			defer closeFn()

			chunks, err := retriever.Retrieve(logging.WithLogger(ctx, log), args[0])
			if err != nil {
				return fmt.Errorf("retrieve: %w", err)
			}

			if len(chunks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no chunks found")
				return nil
			}

			out := cmd.OutOrStdout()
			for i, c := range chunks {
				fmt.Fprintf(out, "── chunk %d  score=%.4f  id=%s\n%s\n\n", i+1, c.Score, c.ID, c.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "Number of chunks to retrieve (default: 5)")

	return cmd
}
