package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

type fakePinger struct {
	name string
	err  error
}

func (f *fakePinger) Name() string               { return f.name }
func (f *fakePinger) Ping(context.Context) error { return f.err }

func newTestServerWithPingers(t *testing.T, pingers ...Pinger) *Server {
	t.Helper()

	reg := prometheus.NewRegistry()
	s, err := New(&fakeAnswerer{}, &Config{
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Pingers:         pingers,
		MetricsRegistry: reg,
		MetricsGatherer: reg,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestRoot_AlwaysUp(t *testing.T) {
	t.Parallel()

	// Root must answer even when every dependency is down.
	s := newTestServerWithPingers(t, &fakePinger{name: "qdrant", err: errors.New("down")})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[rootResponse](t, rec)
	if resp.Message != rootMessage {
		t.Errorf("message = %q, want %q", resp.Message, rootMessage)
	}
}

func TestReady_AllHealthy(t *testing.T) {
	t.Parallel()

	s := newTestServerWithPingers(t,
		&fakePinger{name: "qdrant"},
		&fakePinger{name: "model"},
	)

	req := httptest.NewRequest("GET", "/api/ready", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[readyResponse](t, rec)
	if resp.Status != "ready" {
		t.Errorf("status = %q, want ready", resp.Status)
	}
	if len(resp.Checks) != 2 {
		t.Errorf("checks = %d, want 2", len(resp.Checks))
	}
}

func TestReady_DependencyDown(t *testing.T) {
	t.Parallel()

	s := newTestServerWithPingers(t,
		&fakePinger{name: "qdrant", err: errors.New("connection refused")},
		&fakePinger{name: "model"},
	)

	req := httptest.NewRequest("GET", "/api/ready", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 503 {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	resp := decodeBody[readyResponse](t, rec)
	if resp.Status != "not ready" {
		t.Errorf("status = %q, want not ready", resp.Status)
	}

	var failed *readyCheck
	for i := range resp.Checks {
		if resp.Checks[i].Name == "qdrant" {
			failed = &resp.Checks[i]
		}
	}
	if failed == nil {
		t.Fatal("qdrant check missing from response")
	}
	if failed.Status != "unavailable" || failed.Error == "" {
		t.Errorf("qdrant check = %+v, want unavailable with error", failed)
	}
}

func TestReady_NoPingers(t *testing.T) {
	t.Parallel()

	s := newTestServerWithPingers(t)

	req := httptest.NewRequest("GET", "/api/ready", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
