package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DefaultCORSOrigins is the browser origin allowlist applied when the
// deployment does not configure its own via CORS_ORIGINS.
var DefaultCORSOrigins = []string{
	"http://127.0.0.1:5500",
	"http://localhost:3000",
	"https://hackathon-eight-beige.vercel.app",
}

// Answerer produces a grounded answer for a single question. The tutor agent
// satisfies this; tests substitute fakes.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Config holds the HTTP server configuration.
type Config struct {
	Host string
	Port int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// AskTimeout bounds a single agent invocation on /ask.
	AskTimeout time.Duration

	Logger *slog.Logger

	// Pingers are dependency health checks surfaced on /api/ready.
	Pingers []Pinger

	// CORSOrigins is the browser origin allowlist; nil selects
	// DefaultCORSOrigins.
	CORSOrigins []string

	// MetricsRegistry and MetricsGatherer default to the process-global
	// Prometheus registry; tests supply a private pair.
	MetricsRegistry prometheus.Registerer
	MetricsGatherer prometheus.Gatherer
}

// Server is the HTTP front door for the tutor agent.
type Server struct {
	answerer   Answerer
	cfg        *Config
	httpServer *http.Server
	log        *slog.Logger
	pingers    []Pinger
	metrics    *serverMetrics
}

type askRequest struct {
	Query string `json:"query"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

type rootResponse struct {
	Message string `json:"message"`
}
