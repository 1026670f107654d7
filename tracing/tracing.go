// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"rivaas.dev/beatmap/telemetry/semconv"
)

// Provider selects the span exporter.
type Provider string

const (
	// NoopProvider records nothing.
	NoopProvider Provider = "noop"
	// StdoutProvider writes spans as JSON, for local debugging.
	StdoutProvider Provider = "stdout"
	// OTLPProvider exports over OTLP gRPC.
	OTLPProvider Provider = "otlp"
	// OTLPHTTPProvider exports over OTLP HTTP.
	OTLPHTTPProvider Provider = "otlp-http"
)

// ParseProvider accepts the provider names above; the empty string means
// [NoopProvider].
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case "":
		return NoopProvider, nil
	case NoopProvider, StdoutProvider, OTLPProvider, OTLPHTTPProvider:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported tracing provider: %s", s)
	}
}

const instrumentationName = "rivaas.dev/beatmap"

// Span attribute keys recorded by the conversion pipeline.
const (
	AttrArchive    = attribute.Key(semconv.Archive)
	AttrVersion    = attribute.Key(semconv.Version)
	AttrDifficulty = attribute.Key(semconv.Difficulty)
	AttrProvider   = attribute.Key(semconv.ExtensionsProvider)
	AttrSkipped    = attribute.Key(semconv.EventsSkipped)
)

// Tracer creates the spans of the import and export pipelines.
type Tracer struct {
	provider       Provider
	serviceName    string
	serviceVersion string
	sampleRate     float64
	endpoint       string
	stdout         io.Writer
	logger         *slog.Logger

	// external is a caller-owned provider; Shutdown leaves it alone.
	external    trace.TracerProvider
	sdkProvider *sdktrace.TracerProvider
	tracer      trace.Tracer

	errs []error
}

// Option configures a [Tracer].
type Option func(*Tracer)

// New creates a Tracer. OTLP providers connect in [Tracer.Start]; the others
// are ready immediately.
func New(opts ...Option) (*Tracer, error) {
	t := &Tracer{
		serviceName:    "beatconv",
		serviceVersion: "dev",
		sampleRate:     1.0,
		stdout:         os.Stdout,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.provider == "" {
		t.provider = NoopProvider
	}
	if err := t.validate(); err != nil {
		return nil, err
	}

	switch {
	case t.external != nil:
		t.tracer = t.external.Tracer(instrumentationName)
	case t.provider.remote():
		// usable before Start; spans go nowhere until then
		t.tracer = noop.NewTracerProvider().Tracer(instrumentationName)
	default:
		if err := t.install(context.Background()); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustNew creates a Tracer or panics on error.
func MustNew(opts ...Option) *Tracer {
	t, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("tracing initialization failed: %v", err))
	}
	return t
}

func (t *Tracer) validate() error {
	errs := t.errs
	if t.serviceName == "" {
		errs = append(errs, errors.New("serviceName: cannot be empty"))
	}
	if t.sampleRate < 0 || t.sampleRate > 1 {
		errs = append(errs, fmt.Errorf("sampleRate: must be between 0 and 1, got %v", t.sampleRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("tracing configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Start connects OTLP exporters. It does nothing for the other providers or
// when called twice.
func (t *Tracer) Start(ctx context.Context) error {
	if t.external != nil || !t.provider.remote() || t.sdkProvider != nil {
		return nil
	}
	return t.install(ctx)
}

// Shutdown flushes and stops the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.sdkProvider == nil {
		return nil
	}
	if err := t.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}
	return nil
}

// Provider returns the configured provider.
func (t *Tracer) Provider() Provider {
	return t.provider
}

// ServiceName returns the service name.
func (t *Tracer) ServiceName() string {
	return t.serviceName
}

// StartSpan starts a child span of the span in ctx.
//
// Example:
//
//	ctx, span := tracer.StartSpan(ctx, "beatmap.export", tracing.AttrVersion.String("v4"))
//	defer tracer.Finish(span, err)
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Finish ends span, recording err and an error status when err is non-nil.
func (t *Tracer) Finish(span trace.Span, err error) {
	if span == nil {
		return
	}
	if span.IsRecording() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
	}
	span.End()
}

// RecordCounts adds one attribute per entity kind, e.g. beatmap.count.ColorNote.
func RecordCounts(span trace.Span, counts map[string]int) {
	if span == nil || !span.IsRecording() {
		return
	}
	attrs := make([]attribute.KeyValue, 0, len(counts))
	for kind, n := range counts {
		attrs = append(attrs, attribute.Int("beatmap.count."+kind, n))
	}
	span.SetAttributes(attrs...)
}

// TraceID returns the trace ID of the span in ctx, or "".
func TraceID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return sc.TraceID().String()
	}
	return ""
}

// SpanID returns the span ID of the span in ctx, or "".
func SpanID(ctx context.Context) string {
	if sc := trace.SpanContextFromContext(ctx); sc.HasSpanID() {
		return sc.SpanID().String()
	}
	return ""
}
