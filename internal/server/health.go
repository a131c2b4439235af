package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/humanoid-ai/tutor-go/internal/logging"
)

// Pinger is a named dependency health check. The readiness endpoint runs all
// registered pingers and reports per-dependency status.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type readyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readyResponse struct {
	Status string       `json:"status"`
	Checks []readyCheck `json:"checks,omitempty"`
}

// handleReady handles GET /api/ready. It answers 200 only when every
// registered dependency responds within the probe timeout.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := readyResponse{Status: "ready"}
	status := http.StatusOK

	for _, p := range s.pingers {
		check := readyCheck{Name: p.Name(), Status: "ok"}
		if err := p.Ping(ctx); err != nil {
			check.Status = "unavailable"
			check.Error = err.Error()
			resp.Status = "not ready"
			status = http.StatusServiceUnavailable
			logging.FromContext(r.Context()).Warn("readiness check failed",
				slog.String("dependency", p.Name()),
				slog.Any("error", err),
			)
		}
		resp.Checks = append(resp.Checks, check)
	}

	writeJSON(w, status, resp)
}
