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
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// WithMeterProvider records into a caller-owned provider. Provider options
// are ignored and the caller shuts it down.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) { r.external = provider }
}

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(r *Recorder) { r.serviceName = name }
}

// WithServiceVersion sets service.version; an empty version keeps "dev".
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		if version != "" {
			r.serviceVersion = version
		}
	}
}

// WithExportInterval sets how often the OTLP and stdout providers push.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) { r.exportInterval = interval }
}

// WithSizeBuckets overrides [DefaultSizeBuckets].
func WithSizeBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.sizeBuckets = buckets
		}
	}
}

// WithDurationBuckets overrides [DefaultDurationBuckets].
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.durationBuckets = buckets
		}
	}
}

// WithLogger receives the recorder's own diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) { r.logger = logger }
}

// WithProvider selects the exporter; endpoint is only read by OTLP.
// Selecting two different providers is a configuration error.
func WithProvider(p Provider, endpoint string) Option {
	return func(r *Recorder) {
		if r.provider != "" && r.provider != p {
			r.errs = append(r.errs, fmt.Errorf("provider: %q conflicts with %q", p, r.provider))
			return
		}
		r.provider, r.endpoint = p, endpoint
	}
}

// WithPrometheus keeps metrics in a private registry for [Recorder.WriteText]
// and [Recorder.Handler]. It is the default.
func WithPrometheus() Option {
	return WithProvider(PrometheusProvider, "")
}

// WithOTLP pushes over OTLP HTTP, e.g. to "http://localhost:4318".
func WithOTLP(endpoint string) Option {
	return WithProvider(OTLPProvider, endpoint)
}

// WithStdout writes metrics to w as indented JSON on every push. beatconv
// passes stderr.
func WithStdout(w io.Writer) Option {
	return func(r *Recorder) {
		WithProvider(StdoutProvider, "")(r)
		if w != nil {
			r.stdout = w
		}
	}
}
