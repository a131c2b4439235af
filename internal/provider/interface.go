// Package provider selects and constructs the LLM chat model backend for the
// tutor agent at runtime. The default backend is Gemini reached through its
// OpenAI-compatible endpoint; native Gemini, OpenAI, Azure OpenAI, and a
// local Ollama instance are also supported.
package provider

import (
	"fmt"
)

// Backend enumerates the supported LLM inference providers.
type Backend string

const (
	// BackendGemini selects Google Gemini via its OpenAI-compatible chat
	// completions endpoint. This is the default.
	BackendGemini Backend = "gemini"
	// BackendGeminiNative selects Google Gemini via the native genai SDK.
	BackendGeminiNative Backend = "gemini-native"
	// BackendOpenAI selects the OpenAI API.
	BackendOpenAI Backend = "openai"
	// BackendAzure selects Azure OpenAI Service.
	BackendAzure Backend = "azure"
	// BackendOllama selects a locally running Ollama instance.
	BackendOllama Backend = "ollama"
)

// geminiOpenAIBaseURL is the OpenAI-compatible endpoint exposed by the
// Gemini API.
const geminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// ProviderGemini holds Gemini settings, shared by the OpenAI-compatible and
// native backends.
type ProviderGemini struct {
	// APIKey is the Gemini API key.
	APIKey string
	// Model is the Gemini model name (e.g. "gemini-2.5-flash").
	Model string
}

// ProviderOpenAI holds OpenAI settings.
type ProviderOpenAI struct {
	// APIKey is the OpenAI API key.
	APIKey string
	// Model is the OpenAI model name (e.g. "gpt-4o").
	Model string
}

// ProviderAzureOpenAI holds Azure OpenAI settings.
type ProviderAzureOpenAI struct {
	// APIKey is the Azure OpenAI API key.
	APIKey string
	// Endpoint is the Azure OpenAI resource endpoint.
	Endpoint string
	// Deployment is the Azure OpenAI deployment name.
	Deployment string
	// APIVersion is the Azure OpenAI REST API version.
	APIVersion string
}

// ProviderOllama holds Ollama settings.
type ProviderOllama struct {
	// Host is the Ollama API endpoint.
	Host string
	// Model is the Ollama model name.
	Model string
}

// SharedTuning holds generation settings applied regardless of backend.
type SharedTuning struct {
	// MaxTokens caps the number of tokens the model may generate per response.
	MaxTokens int
	// Temperature controls response randomness (0.0–1.0).
	Temperature float32
}

// Config holds all provider-level configuration resolved from environment
// variables or explicit caller-supplied values.
type Config struct {
	// Backend identifies which inference provider to use.
	Backend Backend

	// Gemini holds Gemini settings (gemini and gemini-native backends).
	Gemini ProviderGemini
	// OpenAI holds OpenAI settings.
	OpenAI ProviderOpenAI
	// AzureOpenAI holds Azure OpenAI settings.
	AzureOpenAI ProviderAzureOpenAI
	// Ollama holds Ollama settings.
	Ollama ProviderOllama

	// Tuning holds shared generation settings.
	Tuning SharedTuning
}

// Validate checks that the selected backend has the configuration it needs.
// Error messages name the environment variable the operator must set, so a
// misconfiguration is clear at startup rather than on the first request.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendGemini, BackendGeminiNative:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("provider: GEMINI_API_KEY is required for the %s backend", c.Backend)
		}
		if c.Gemini.Model == "" {
			return fmt.Errorf("provider: GEMINI_MODEL must not be empty for the %s backend", c.Backend)
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("provider: OPENAI_API_KEY is required for the openai backend")
		}
		if c.OpenAI.Model == "" {
			return fmt.Errorf("provider: OPENAI_MODEL must not be empty for the openai backend")
		}
	case BackendAzure:
		if c.AzureOpenAI.APIKey == "" {
			return fmt.Errorf("provider: AZURE_OPENAI_API_KEY is required for the azure backend")
		}
		if c.AzureOpenAI.Endpoint == "" {
			return fmt.Errorf("provider: AZURE_OPENAI_ENDPOINT is required for the azure backend")
		}
		if c.AzureOpenAI.Deployment == "" {
			return fmt.Errorf("provider: AZURE_OPENAI_DEPLOYMENT is required for the azure backend")
		}
	case BackendOllama:
		if c.Ollama.Host == "" {
			return fmt.Errorf("provider: OLLAMA_HOST must not be empty for the ollama backend")
		}
		if c.Ollama.Model == "" {
			return fmt.Errorf("provider: OLLAMA_MODEL must not be empty for the ollama backend")
		}
	default:
		return fmt.Errorf("provider: unknown backend %q — valid values: gemini, gemini-native, openai, azure, ollama", c.Backend)
	}
	return nil
}
