package llm

import (
	"context"
	"strings"
)

// Client is the generation boundary used by the exam flow: prompt text
// in, plain text out.
type Client struct {
	provider Provider
}

// NewClient wraps a provider.
func NewClient(p Provider) *Client {
	return &Client{provider: p}
}

// Generate sends one prompt and returns the reply text. The only error
// type it returns is *GenerationError.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	resp, err := c.provider.Generate(ctx, Request{
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: clampTemperature(temperature),
	})
	if err != nil {
		return "", asGenerationError(err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", emptyResponse("provider returned no text")
	}
	return resp.Text, nil
}

// Ping sends a tiny request to confirm the credential and model work.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Generate(WithPurpose(ctx, "check"), "Reply with the single word: ready", 10, 0)
	return err
}

// ModelID returns the model behind the client.
func (c *Client) ModelID() string {
	return c.provider.ModelID()
}

func clampTemperature(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
