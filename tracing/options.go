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
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// WithTracerProvider records spans on a caller-owned provider, which the
// caller also shuts down.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(t *Tracer) { t.external = provider }
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(t *Tracer) { t.serviceName = name }
}

// WithServiceVersion sets service.version; an empty version keeps "dev".
func WithServiceVersion(version string) Option {
	return func(t *Tracer) {
		if version != "" {
			t.serviceVersion = version
		}
	}
}

// WithSampleRate sets the fraction of archives traced, between 0 and 1.
func WithSampleRate(rate float64) Option {
	return func(t *Tracer) { t.sampleRate = rate }
}

// WithLogger receives the tracer's own diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracer) { t.logger = logger }
}

// WithProvider selects the exporter. endpoint is only read by the OTLP
// providers. Selecting two different providers is a configuration error.
//
//	tracing.MustNew(tracing.WithProvider(tracing.OTLPHTTPProvider, "http://localhost:4318"))
func WithProvider(p Provider, endpoint string) Option {
	return func(t *Tracer) {
		if t.provider != "" && t.provider != p {
			t.errs = append(t.errs, fmt.Errorf("provider: %q conflicts with %q", p, t.provider))
			return
		}
		t.provider, t.endpoint = p, endpoint
	}
}

// WithOTLP exports over OTLP gRPC, e.g. to "localhost:4317".
func WithOTLP(endpoint string) Option {
	return WithProvider(OTLPProvider, endpoint)
}

// WithOTLPHTTP exports over OTLP HTTP, e.g. to "http://localhost:4318".
func WithOTLPHTTP(endpoint string) Option {
	return WithProvider(OTLPHTTPProvider, endpoint)
}

// WithStdout writes spans to w as indented JSON. beatconv passes stderr.
func WithStdout(w io.Writer) Option {
	return func(t *Tracer) {
		WithProvider(StdoutProvider, "")(t)
		if w != nil {
			t.stdout = w
		}
	}
}

// WithNoop samples spans without exporting them. It is the default.
func WithNoop() Option {
	return WithProvider(NoopProvider, "")
}
