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
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// remote reports whether p needs a network connection, made in Start.
func (p Provider) remote() bool {
	return p == OTLPProvider || p == OTLPHTTPProvider
}

// install builds the SDK provider for t.provider. The noop provider still
// samples so trace IDs reach the pipeline logs; it just exports nothing.
func (t *Tracer) install(ctx context.Context) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			otelsemconv.SchemaURL,
			otelsemconv.ServiceName(t.serviceName),
			otelsemconv.ServiceVersion(t.serviceVersion),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(t.sampleRate))),
	}

	exporter, err := t.exporter(ctx)
	if err != nil {
		return fmt.Errorf("create %s exporter: %w", t.provider, err)
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	t.sdkProvider = sdktrace.NewTracerProvider(opts...)
	t.tracer = t.sdkProvider.Tracer(instrumentationName)
	if t.logger != nil {
		t.logger.Debug("tracing ready", "provider", string(t.provider), "endpoint", t.endpoint)
	}
	return nil
}

func (t *Tracer) exporter(ctx context.Context) (sdktrace.SpanExporter, error) {
	host, insecure := splitEndpoint(t.endpoint)

	switch t.provider {
	case NoopProvider:
		return nil, nil
	case StdoutProvider:
		return stdouttrace.New(stdouttrace.WithWriter(t.stdout), stdouttrace.WithPrettyPrint())
	case OTLPProvider:
		var opts []otlptracegrpc.Option
		if host != "" {
			opts = append(opts, otlptracegrpc.WithEndpoint(host))
		}
		if insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	case OTLPHTTPProvider:
		var opts []otlptracehttp.Option
		if host != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(host))
		}
		if insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	}
	return nil, fmt.Errorf("unsupported tracing provider: %s", t.provider)
}

// splitEndpoint reduces an OTLP endpoint to host:port. Endpoints written
// with http:// or without a scheme are plaintext; https:// uses TLS.
func splitEndpoint(endpoint string) (hostPort string, insecure bool) {
	insecure = true
	if rest, ok := strings.CutPrefix(endpoint, "https://"); ok {
		endpoint, insecure = rest, false
	} else {
		endpoint = strings.TrimPrefix(endpoint, "http://")
	}
	hostPort, _, _ = strings.Cut(endpoint, "/")
	return hostPort, insecure
}
