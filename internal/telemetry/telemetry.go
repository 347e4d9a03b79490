// Package telemetry provides OpenTelemetry tracing for generation calls.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/abhisek/examtrainer"

// Config holds telemetry configuration.
type Config struct {
	Enabled     bool
	Endpoint    string // OTLP/HTTP collector, e.g. "localhost:4318"
	ServiceName string
	Version     string
}

// DefaultConfig returns a disabled config.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Endpoint:    "localhost:4318",
		ServiceName: "examtrainer",
		Version:     "dev",
	}
}

var provider *sdktrace.TracerProvider

// Init installs the global tracer provider. When disabled the otel no-op
// provider stays in place and spans cost nothing.
func Init(ctx context.Context, cfg Config) error {
	if !cfg.Enabled {
		return nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return err
	}

	res := resource.NewWithAttributes(
		"",
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	)

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)
	return nil
}

// Shutdown flushes pending spans.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return provider.Shutdown(shutdownCtx)
}

// Tracer returns the tracer for this module.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// LLMSpan is one generation call.
type LLMSpan struct {
	span trace.Span
}

// StartLLMSpan starts a span for a generation call.
func StartLLMSpan(ctx context.Context, purpose, model string) (context.Context, *LLMSpan) {
	ctx, span := Tracer().Start(ctx, "llm."+purpose,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.request.model", model),
			attribute.String("llm.purpose", purpose),
		),
	)
	return ctx, &LLMSpan{span: span}
}

// SetRequest records the sampling parameters and prompt size.
func (s *LLMSpan) SetRequest(promptChars, maxTokens int, temperature float64) {
	s.span.SetAttributes(
		attribute.Int("llm.prompt.chars", promptChars),
		attribute.Int("llm.request.max_tokens", maxTokens),
		attribute.Float64("llm.request.temperature", temperature),
	)
}

// SetTokens records token counts if available.
func (s *LLMSpan) SetTokens(promptTokens, completionTokens int) {
	if promptTokens > 0 {
		s.span.SetAttributes(attribute.Int("llm.token_count.prompt", promptTokens))
	}
	if completionTokens > 0 {
		s.span.SetAttributes(attribute.Int("llm.token_count.completion", completionTokens))
	}
}

// SetError records an error on the span.
func (s *LLMSpan) SetError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// End completes the span.
func (s *LLMSpan) End() {
	s.span.End()
}
