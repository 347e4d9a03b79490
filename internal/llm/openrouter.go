package llm

import (
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel   = "google/gemini-2.0-flash-001"

	// App attribution shown on OpenRouter's usage pages.
	openRouterTitle   = "TOEFL Trainer"
	openRouterReferer = "https://github.com/abhisek/examtrainer"
)

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible API through
// the OpenAI SDK. Every request carries the app attribution headers.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
// Vendor-qualified IDs ("google/gemini-2.0-flash-001") pass through; the
// OpenAI friendly names ("gpt-4o-mini") are routed under "openai/".
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Transport: attributionTransport{base: http.DefaultTransport}}

	return &OpenRouterProvider{OpenAIProvider: &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  openRouterModel(cfg.Model),
	}}, nil
}

func openRouterModel(name string) string {
	switch {
	case name == "":
		return defaultOpenRouterModel
	case strings.Contains(name, "/"):
		return name
	}
	if id, ok := openaiModels[name]; ok {
		return "openai/" + id
	}
	return name
}

type attributionTransport struct {
	base http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", openRouterReferer)
	req.Header.Set("X-Title", openRouterTitle)
	return t.base.RoundTrip(req)
}
