package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/humanoid-ai/tutor-go/internal/config"
	"github.com/humanoid-ai/tutor-go/internal/logging"
)

// NewAskCmd constructs the `tutor ask` command, which answers a single
// question on the command line without starting the HTTP service.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the tutor a question about the textbook",
		Long: `Ask the tutor a natural language question about the Physical AI &
Humanoid Robotics textbook. The answer is grounded in retrieved book
chunks; questions the book does not cover get "I don't know".

Examples:
  tutor ask "what actuators do humanoid robots use?"
  tutor ask "how does a ZMP walking controller keep balance?"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			if err := config.Require(); err != nil {
				return err
			}

			tutorAgent, _, closeFn, err := buildAgent(ctx, log)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}
			defer closeFn()

			question := strings.Join(args, " ")
			answer, err := tutorAgent.Answer(ctx, question)
			if err != nil {
				return fmt.Errorf("ask: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	return cmd
}
