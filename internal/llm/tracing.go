package llm

import (
	"context"

	"github.com/abhisek/examtrainer/internal/telemetry"
)

// TracingProvider opens a telemetry span around every request.
type TracingProvider struct {
	inner Provider
}

// WithTracing wraps a Provider with tracing.
func WithTracing(p Provider) Provider {
	return &TracingProvider{inner: p}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := telemetry.StartLLMSpan(ctx, PurposeFrom(ctx), t.inner.ModelID())
	defer span.End()

	chars := 0
	for _, m := range req.Messages {
		chars += len(m.Content)
	}
	span.SetRequest(chars, req.MaxTokens, req.Temperature)

	resp, err := t.inner.Generate(ctx, req)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.SetTokens(resp.Usage.InputTokens, resp.Usage.OutputTokens)
	return resp, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}
