// Package commands defines all Cobra CLI commands for the tutor binary.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/humanoid-ai/tutor-go/internal/audit"
	"github.com/humanoid-ai/tutor-go/internal/config"
	"github.com/humanoid-ai/tutor-go/internal/logging"
)

// configPath holds the --config flag value for YAML config file override.
var configPath string

// loadedConfigPath stores the resolved config file path for audit logging.
var loadedConfigPath string

// NewRootCmd constructs the root Cobra command that all subcommands attach to.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tutor",
		Short: "AI tutor for the Physical AI & Humanoid Robotics textbook",
		Long: `Tutor is a retrieval-grounded question answering agent for the
Physical AI & Humanoid Robotics textbook.

Every answer is grounded in book chunks retrieved from a pre-built Qdrant
vector index; when the book does not cover a question, the agent says
"I don't know" instead of improvising.

Model provider is selected via the MODEL_PROVIDER environment variable
or a YAML config file (~/.tutor/config.yaml).
See 'tutor --help' for available commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log := logging.New()

			// Load YAML config (env vars always override YAML values).
			path, err := config.Load(configPath, log)
			if err != nil {
				return err
			}
			loadedConfigPath = path

			// Emit structured audit log for every command invocation.
			audit.LogCommandStart(log, cmd.Name(), loadedConfigPath)

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file (default: ~/.tutor/config.yaml)")

	root.AddCommand(
		NewServeCmd(),
		NewAskCmd(),
		NewRetrieveCmd(),
		NewVersionCmd(),
	)

	return root
}
