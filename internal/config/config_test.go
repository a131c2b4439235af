package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_NoFile(t *testing.T) {
	t.Parallel()

	log := slog.Default()
	path, err := Load("/nonexistent/path/config.yaml", log)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("expected empty path, got %q", path)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := []byte(`
model:
  provider: gemini
  max_tokens: 8192
  temperature: 0.3
  gemini:
    model: gemini-2.5-flash
embedding:
  model: embed-english-v3.0
qdrant:
  url: https://my-cluster.cloud.qdrant.io:6334
  collection: humanoid_ai_book
logging:
  level: debug
  format: text
`)

	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		t.Fatal(err)
	}

	// Clear env vars that the YAML should set.
	envKeys := []string{
		"MODEL_PROVIDER", "MODEL_MAX_TOKENS", "MODEL_TEMPERATURE",
		"GEMINI_MODEL", "EMBEDDING_MODEL",
		"QDRANT_URL", "QDRANT_COLLECTION",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	log := slog.Default()
	loaded, err := Load(cfgPath, log)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != cfgPath {
		t.Errorf("loaded path: got %q, want %q", loaded, cfgPath)
	}

	checks := map[string]string{
		"MODEL_PROVIDER":    "gemini",
		"MODEL_MAX_TOKENS":  "8192",
		"MODEL_TEMPERATURE": "0.3",
		"GEMINI_MODEL":      "gemini-2.5-flash",
		"EMBEDDING_MODEL":   "embed-english-v3.0",
		"QDRANT_URL":        "https://my-cluster.cloud.qdrant.io:6334",
		"QDRANT_COLLECTION": "humanoid_ai_book",
		"LOG_LEVEL":         "debug",
		"LOG_FORMAT":        "text",
	}
	for k, want := range checks {
		got := os.Getenv(k)
		if got != want {
			t.Errorf("%s: got %q, want %q", k, got, want)
		}
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	content := []byte(`
model:
  provider: ollama
`)
	if err := os.WriteFile(cfgPath, content, 0o644); err != nil {
		t.Fatal(err)
	}

	// Set env var BEFORE loading — it should NOT be overwritten.
	t.Setenv("MODEL_PROVIDER", "gemini")

	log := slog.Default()
	if _, err := Load(cfgPath, log); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := os.Getenv("MODEL_PROVIDER"); got != "gemini" {
		t.Errorf("MODEL_PROVIDER: expected env override %q, got %q", "gemini", got)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(cfgPath, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	log := slog.Default()
	if _, err := Load(cfgPath, log); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

// TestRequire_MissingVars verifies that startup validation names every
// missing variable, not just the first — the process must refuse to serve
// with a partial environment.
func TestRequire_MissingVars(t *testing.T) {
	for _, k := range requiredEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("GEMINI_API_KEY", "g-key")

	err := Require()
	if err == nil {
		t.Fatal("expected error when required env vars are missing")
	}
	for _, want := range []string{"COHERE_API_KEY", "QDRANT_URL", "QDRANT_API_KEY"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not name missing var %s: %v", want, err)
		}
	}
	if strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("error names a variable that is set: %v", err)
	}
}

func TestRequire_AllPresent(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("COHERE_API_KEY", "c")
	t.Setenv("QDRANT_URL", "https://q.example.com:6334")
	t.Setenv("QDRANT_API_KEY", "q")

	if err := Require(); err != nil {
		t.Errorf("expected no error with full environment, got %v", err)
	}
}

func TestParseQdrantURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    QdrantEndpoint
		wantErr bool
	}{
		{
			name: "cloud url with port",
			raw:  "https://82ab6817.us-east4-0.gcp.cloud.qdrant.io:6334",
			want: QdrantEndpoint{Host: "82ab6817.us-east4-0.gcp.cloud.qdrant.io", Port: 6334, UseTLS: true},
		},
		{
			name: "https without port defaults to grpc port",
			raw:  "https://qdrant.example.com",
			want: QdrantEndpoint{Host: "qdrant.example.com", Port: 6334, UseTLS: true},
		},
		{
			name: "plain http local",
			raw:  "http://localhost:6334",
			want: QdrantEndpoint{Host: "localhost", Port: 6334, UseTLS: false},
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "unsupported scheme",
			raw:     "grpc://qdrant.example.com:6334",
			wantErr: true,
		},
		{
			name:    "no hostname",
			raw:     "https://",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseQdrantURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQdrantURL(%q): %v", tt.raw, err)
			}
			if *got != tt.want {
				t.Errorf("ParseQdrantURL(%q) = %+v, want %+v", tt.raw, *got, tt.want)
			}
		})
	}
}

func TestCollection_Default(t *testing.T) {
	t.Setenv("QDRANT_COLLECTION", "")
	os.Unsetenv("QDRANT_COLLECTION")

	if got := Collection(); got != DefaultCollection {
		t.Errorf("Collection() = %q, want %q", got, DefaultCollection)
	}

	t.Setenv("QDRANT_COLLECTION", "other")
	if got := Collection(); got != "other" {
		t.Errorf("Collection() with override = %q, want %q", got, "other")
	}
}
