package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/cloudwego/eino/callbacks"
	"github.com/spf13/cobra"

	"github.com/humanoid-ai/tutor-go/internal/config"
	"github.com/humanoid-ai/tutor-go/internal/logging"
	"github.com/humanoid-ai/tutor-go/internal/server"
	"github.com/humanoid-ai/tutor-go/internal/tracing"
)

// NewServeCmd constructs the `tutor serve` command, which starts the HTTP
// question-answering service.
func NewServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the tutor HTTP service",
		Long: `Start the tutor HTTP service on localhost.

The service exposes POST /ask for question answering, GET / as a liveness
probe, GET /api/ready for dependency health, and GET /metrics for
Prometheus scraping.

Examples:
  tutor serve
  tutor serve --port 9090
  MODEL_PROVIDER=openai tutor serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			// Fail fast with every missing credential named, not just the first.
			if err := config.Require(); err != nil {
				return err
			}

			log.Info("serve starting",
				slog.String("provider", os.Getenv("MODEL_PROVIDER")),
				slog.String("collection", config.Collection()),
			)

			// Setup Langfuse tracing — opt-in, no-op if keys are absent.
			handler, flush, ok := tracing.Setup()
			if ok {
				callbacks.AppendGlobalHandlers(handler)
				defer flush()
				log.Info("langfuse tracing enabled")
			} else {
				log.Info("langfuse tracing disabled", slog.String("reason", "LANGFUSE_PUBLIC_KEY not set"))
			}

			tutorAgent, index, closeFn, err := buildAgent(ctx, log)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer closeFn()

			srv, err := server.New(tutorAgent, &server.Config{
				Host:        resolveHost(host),
				Port:        resolvePort(port),
				Logger:      log,
				Pingers:     []server.Pinger{&server.QdrantPinger{Index: index}},
				CORSOrigins: corsOriginsFromEnv(),
			})
			if err != nil {
				return fmt.Errorf("serve: failed to create server: %w", err)
			}

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Host address to bind to (default: SERVER_HOST or 127.0.0.1)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "TCP port to listen on (default: SERVER_PORT or 8080)")

	return cmd
}

// resolveHost prefers the flag, then SERVER_HOST, then the server default.
func resolveHost(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv("SERVER_HOST")
}

// resolvePort prefers the flag, then SERVER_PORT, then the server default.
func resolvePort(flag int) int {
	if flag != 0 {
		return flag
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			return p
		}
	}
	return 0
}

// corsOriginsFromEnv parses the comma-separated CORS_ORIGINS allowlist.
// An unset variable selects the server's built-in defaults.
func corsOriginsFromEnv() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
