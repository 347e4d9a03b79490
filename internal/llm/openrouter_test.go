package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestNewOpenRouterProvider(t *testing.T) {
	tests := []struct {
		name  string
		model string
		want  string
	}{
		{"vendor id passes through", "google/gemini-2.0-flash-001", "google/gemini-2.0-flash-001"},
		{"openai friendly name", "gpt-4o-mini", "openai/gpt-4o-mini"},
		{"unknown name unchanged", "llama-3-8b", "llama-3-8b"},
		{"empty uses default", "", defaultOpenRouterModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: tt.model})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.ModelID() != tt.want {
				t.Errorf("model = %q, want %q", p.ModelID(), tt.want)
			}
		})
	}

	t.Run("empty API key", func(t *testing.T) {
		_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "meta-llama/llama-3-8b"})
		if err == nil {
			t.Fatal("expected error for empty API key")
		}
	})
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var (
		headers http.Header
		got     openai.ChatCompletionRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion("Glacial Lakes\n\nIce carves basins.", "stop"))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "gpt-4o",
		BaseURL: server.URL + "/api/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "Write a passage."}},
		MaxTokens: 1500,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Glacial Lakes\n\nIce carves basins." {
		t.Errorf("text = %q", resp.Text)
	}
	if got.Model != "openai/gpt-4o" {
		t.Errorf("model sent = %q, want openai/gpt-4o", got.Model)
	}
	if headers.Get("X-Title") != openRouterTitle || headers.Get("HTTP-Referer") != openRouterReferer {
		t.Errorf("attribution headers missing: %v", headers)
	}
	if headers.Get("Authorization") != "Bearer sk-or-test" {
		t.Errorf("authorization = %q", headers.Get("Authorization"))
	}
}
