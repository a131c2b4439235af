package server

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORS_AllowedOrigin(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAnswerer{answer: "ok"})

	req := httptest.NewRequest("POST", "/ask", strings.NewReader(`{"query":"q"}`))
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the request origin", got)
	}
	if rec.Header().Get("Vary") != "Origin" {
		t.Error("Vary: Origin header missing")
	}
}

func TestCORS_UnlistedOrigin(t *testing.T) {
	t.Parallel()

	fake := &fakeAnswerer{answer: "ok"}
	s := newTestServer(t, fake)

	req := httptest.NewRequest("POST", "/ask", strings.NewReader(`{"query":"q"}`))
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for unlisted origin, want none", got)
	}
	// The request itself is still served; enforcement is the browser's job.
	if rec.Code != 200 || fake.calls != 1 {
		t.Errorf("status = %d, calls = %d; unlisted origin should still be handled", rec.Code, fake.calls)
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	fake := &fakeAnswerer{}
	s := newTestServer(t, fake)

	req := httptest.NewRequest("OPTIONS", "/ask", nil)
	req.Header.Set("Origin", "http://127.0.0.1:5500")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if rec.Code != 204 {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Error("Access-Control-Allow-Methods missing POST")
	}
	if fake.calls != 0 {
		t.Error("preflight reached the handler")
	}
}

func TestCORS_WildcardConfig(t *testing.T) {
	t.Parallel()

	if !originAllowed([]string{"*"}, "https://anything.example") {
		t.Error("wildcard should allow any origin")
	}
	if originAllowed([]string{"http://a.example"}, "http://b.example") {
		t.Error("unlisted origin allowed")
	}
	if !originAllowed([]string{"http://A.example"}, "http://a.example") {
		t.Error("origin matching should be case-insensitive")
	}
}

func TestCORS_CredentialsAllowed(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAnswerer{answer: "ok"})

	req := httptest.NewRequest("POST", "/ask", strings.NewReader(`{"query":"q"}`))
	req.Header.Set("Origin", "https://hackathon-eight-beige.vercel.app")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q, want true", got)
	}
}

func TestCORS_VaryOnEveryResponse(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeAnswerer{answer: "ok"})

	// No Origin header and an unlisted origin must both still carry Vary,
	// or a cache could serve a headerless response to an allowed origin.
	for _, origin := range []string{"", "https://evil.example.com"} {
		req := httptest.NewRequest("GET", "/", nil)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		rec := httptest.NewRecorder()
		s.httpServer.Handler.ServeHTTP(rec, req)

		if rec.Header().Get("Vary") != "Origin" {
			t.Errorf("origin %q: Vary = %q, want Origin", origin, rec.Header().Get("Vary"))
		}
		if rec.Header().Get("Access-Control-Allow-Credentials") != "" {
			t.Errorf("origin %q: credentials header set without an allowed origin", origin)
		}
	}
}
