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

package metrics

import (
	"context"
	"fmt"
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const defaultOTLPEndpoint = "http://localhost:4318"

// install builds the SDK meter provider with the reader of r.provider.
func (r *Recorder) install() error {
	reader, err := r.reader()
	if err != nil {
		return fmt.Errorf("create %s reader: %w", r.provider, err)
	}
	r.sdkProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(resource.NewWithAttributes(
			otelsemconv.SchemaURL,
			otelsemconv.ServiceName(r.serviceName),
			otelsemconv.ServiceVersion(r.serviceVersion),
		)),
	)
	r.debug("metrics ready", "provider", string(r.provider), "endpoint", r.endpoint)
	return nil
}

func (r *Recorder) reader() (sdkmetric.Reader, error) {
	switch r.provider {
	case PrometheusProvider:
		// a private registry per recorder; beatconv dumps it on exit
		r.registry = promclient.NewRegistry()
		return prometheus.New(prometheus.WithRegisterer(r.registry))
	case OTLPProvider:
		exporter, err := otlpmetrichttp.New(context.Background(), otlpOptions(r.endpoint)...)
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)), nil
	case StdoutProvider:
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(r.stdout), stdoutmetric.WithPrettyPrint())
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval)), nil
	}
	return nil, fmt.Errorf("unsupported metrics provider: %s", r.provider)
}

// otlpOptions reduces an endpoint URL to host:port. Plain http disables
// TLS.
func otlpOptions(endpoint string) []otlpmetrichttp.Option {
	if endpoint == "" {
		return nil
	}
	insecure := strings.HasPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://")
	host, _, _ := strings.Cut(endpoint, "/")

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	return opts
}
