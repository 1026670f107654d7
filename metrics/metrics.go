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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// Provider selects the metrics exporter.
type Provider string

const (
	// PrometheusProvider keeps metrics in a private Prometheus registry that
	// can be dumped with [Recorder.WriteText] or scraped through
	// [Recorder.Handler] (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes metrics over OTLP HTTP.
	OTLPProvider Provider = "otlp"
	// StdoutProvider writes metrics as JSON, for local debugging.
	StdoutProvider Provider = "stdout"
)

// ParseProvider accepts the provider names above; the empty string means
// [PrometheusProvider].
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case "":
		return PrometheusProvider, nil
	case PrometheusProvider, OTLPProvider, StdoutProvider:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported metrics provider: %s", s)
	}
}

// Direction labels the pipeline a measurement came from.
type Direction string

const (
	Import Direction = "import"
	Export Direction = "export"
)

// DefaultSizeBuckets are histogram boundaries for archive sizes in bytes,
// 1KiB to 64MiB.
var DefaultSizeBuckets = []float64{1 << 10, 16 << 10, 128 << 10, 1 << 20, 4 << 20, 16 << 20, 64 << 20}

// DefaultDurationBuckets are histogram boundaries for pipeline duration in
// seconds.
var DefaultDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

const meterName = "rivaas.dev/beatmap"

// Recorder counts the entities, failures and archive sizes of conversions.
// All methods are safe for concurrent use. A nil *Recorder records nothing.
type Recorder struct {
	provider        Provider
	serviceName     string
	serviceVersion  string
	exportInterval  time.Duration
	endpoint        string
	stdout          io.Writer
	sizeBuckets     []float64
	durationBuckets []float64
	logger          *slog.Logger

	// external is a caller-owned provider; Shutdown leaves it alone.
	external    metric.MeterProvider
	sdkProvider *sdkmetric.MeterProvider
	registry    *promclient.Registry

	entities     metric.Int64Counter
	failures     metric.Int64Counter
	skipped      metric.Int64Counter
	archiveBytes metric.Int64Histogram
	duration     metric.Float64Histogram

	closed atomic.Bool
	errs   []error
}

// Option configures a [Recorder].
type Option func(*Recorder)

// New creates a Recorder with its instruments registered.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		serviceName:     "beatconv",
		serviceVersion:  "dev",
		exportInterval:  30 * time.Second,
		stdout:          os.Stdout,
		sizeBuckets:     DefaultSizeBuckets,
		durationBuckets: DefaultDurationBuckets,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.provider == "" {
		r.provider = PrometheusProvider
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	mp := r.external
	if mp == nil {
		if err := r.install(); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
		mp = r.sdkProvider
	}
	if err := r.instruments(mp.Meter(meterName)); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return r, nil
}

// MustNew creates a Recorder or panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics initialization failed: %v", err))
	}
	return r
}

func (r *Recorder) validate() error {
	errs := r.errs
	if r.serviceName == "" {
		errs = append(errs, errors.New("serviceName: cannot be empty"))
	}
	if r.exportInterval <= 0 {
		errs = append(errs, fmt.Errorf("exportInterval: must be positive, got %v", r.exportInterval))
	}
	if r.provider == OTLPProvider && r.endpoint == "" {
		r.endpoint = defaultOTLPEndpoint
		r.debug("no OTLP endpoint configured", "endpoint", r.endpoint)
	}
	return errors.Join(errs...)
}

func (r *Recorder) instruments(meter metric.Meter) error {
	var err error
	if r.entities, err = meter.Int64Counter("beatmap_entities",
		metric.WithDescription("Entities converted, by kind and direction"),
	); err != nil {
		return fmt.Errorf("entities counter: %w", err)
	}
	if r.failures, err = meter.Int64Counter("beatmap_codec_failures",
		metric.WithDescription("Conversion failures, by error code and direction"),
	); err != nil {
		return fmt.Errorf("failures counter: %w", err)
	}
	if r.skipped, err = meter.Int64Counter("beatmap_events_skipped",
		metric.WithDescription("Basic events dropped because their track has no mapping"),
	); err != nil {
		return fmt.Errorf("skipped counter: %w", err)
	}
	if r.archiveBytes, err = meter.Int64Histogram("beatmap_archive_size",
		metric.WithDescription("Size of imported and exported archives"),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(r.sizeBuckets...),
	); err != nil {
		return fmt.Errorf("archive size histogram: %w", err)
	}
	if r.duration, err = meter.Float64Histogram("beatmap_conversion_duration",
		metric.WithDescription("Wall time of a whole import or export"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	); err != nil {
		return fmt.Errorf("duration histogram: %w", err)
	}
	return nil
}

// RecordEntities adds counts, keyed by entity kind, for one difficulty.
func (r *Recorder) RecordEntities(ctx context.Context, dir Direction, version string, counts map[string]int) {
	if r == nil {
		return
	}
	for kind, n := range counts {
		if n == 0 {
			continue
		}
		r.entities.Add(ctx, int64(n), metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("direction", string(dir)),
			attribute.String("version", version),
		))
	}
}

// errorCode matches errors that carry a machine-readable code.
type errorCode interface {
	Code() string
}

// RecordFailure counts err under its code, or "internal" when it has none.
func (r *Recorder) RecordFailure(ctx context.Context, dir Direction, err error) {
	if r == nil || err == nil {
		return
	}
	code := "internal"
	var coded errorCode
	if errors.As(err, &coded) && coded.Code() != "" {
		code = coded.Code()
	}
	r.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("code", code),
		attribute.String("direction", string(dir)),
	))
}

// RecordSkippedEvents counts events dropped by the skip policy.
func (r *Recorder) RecordSkippedEvents(ctx context.Context, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.skipped.Add(ctx, int64(n))
}

// RecordArchive records the size and duration of a finished conversion.
func (r *Recorder) RecordArchive(ctx context.Context, dir Direction, size int64, elapsed time.Duration) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("direction", string(dir)))
	r.archiveBytes.Record(ctx, size, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// WriteText writes the Prometheus text exposition of everything recorded so
// far. Only the Prometheus provider supports it.
func (r *Recorder) WriteText(w io.Writer) error {
	if r.registry == nil {
		return fmt.Errorf("metrics: text output requires the %s provider, have %s", PrometheusProvider, r.provider)
	}
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Handler serves the Prometheus registry for scraping.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.registry == nil {
		return nil, fmt.Errorf("metrics: handler requires the %s provider, have %s", PrometheusProvider, r.provider)
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry}), nil
}

// Provider returns the configured provider.
func (r *Recorder) Provider() Provider {
	return r.provider
}

// ForceFlush exports pending data for push providers.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r == nil || r.closed.Load() || r.sdkProvider == nil {
		return nil
	}
	if err := r.sdkProvider.ForceFlush(ctx); err != nil {
		return fmt.Errorf("metrics force flush: %w", err)
	}
	return nil
}

// Shutdown flushes and stops the meter provider. A provider passed with
// [WithMeterProvider] is left to its owner. Later calls do nothing.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil || !r.closed.CompareAndSwap(false, true) || r.sdkProvider == nil {
		return nil
	}
	if err := r.sdkProvider.ForceFlush(ctx); err != nil {
		r.debug("metrics flush failed", "error", err)
	}
	if err := r.sdkProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	return nil
}

func (r *Recorder) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
