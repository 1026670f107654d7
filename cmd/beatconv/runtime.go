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

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"rivaas.dev/beatmap/archive"
	"rivaas.dev/beatmap/config"
	"rivaas.dev/beatmap/logging"
	"rivaas.dev/beatmap/metrics"
	"rivaas.dev/beatmap/tracing"
)

const serviceName = "beatconv"

// runtime is the observability stack and pipeline of one invocation.
type runtime struct {
	settings *config.Settings
	logger   *logging.Logger
	tracer   *tracing.Tracer
	metrics  *metrics.Recorder
	pipeline *archive.Pipeline
}

func newRuntime(ctx context.Context, s *config.Settings, stderr io.Writer) (*runtime, error) {
	rt := &runtime{settings: s}

	logger, err := newLogger(s.Log, stderr)
	if err != nil {
		return nil, err
	}
	rt.logger = logger

	if rt.tracer, err = newTracer(ctx, s.Tracing, logger, stderr); err != nil {
		return nil, err
	}
	if rt.metrics, err = newMetrics(s.Metrics, logger, stderr); err != nil {
		return nil, err
	}

	codecOpts, err := s.CodecOptions()
	if err != nil {
		return nil, err
	}
	rt.pipeline, err = archive.New(
		archive.WithLogger(logger),
		archive.WithTracer(rt.tracer),
		archive.WithMetrics(rt.metrics),
		archive.WithWorkers(s.Workers),
		archive.WithCodecOptions(codecOpts...),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug("runtime ready",
		"target", s.Target.String(),
		"extensions", s.Extensions,
		"tracing", string(rt.tracer.Provider()),
		"metrics", string(rt.metrics.Provider()))
	return rt, nil
}

// close flushes exporters and prints the metrics dump when asked to.
func (rt *runtime) close(stderr io.Writer) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if rt.settings.Metrics.Dump {
		if err := rt.metrics.WriteText(stderr); err != nil {
			rt.logger.Warn("metrics dump failed", "error", err)
		}
	}
	if err := rt.metrics.Shutdown(ctx); err != nil {
		rt.logger.Warn("metrics shutdown failed", "error", err)
	}
	if err := rt.tracer.Shutdown(ctx); err != nil {
		rt.logger.Warn("tracer shutdown failed", "error", err)
	}
	_ = rt.logger.Shutdown(ctx)
}

func newLogger(s config.LogSettings, stderr io.Writer) (*logging.Logger, error) {
	level, err := logging.ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}

	format := s.Format
	if format == "" {
		format = string(logging.JSONHandler)
		if isTerminal(stderr) {
			format = string(logging.ConsoleHandler)
		}
	}
	handler, err := logging.ParseHandlerType(format)
	if err != nil {
		return nil, err
	}

	return logging.New(
		logging.WithHandlerType(handler),
		logging.WithOutput(stderr),
		logging.WithLevel(level),
		logging.WithServiceName(serviceName),
		logging.WithServiceVersion(version),
	)
}

func newTracer(ctx context.Context, s config.TracingSettings, logger *logging.Logger, stderr io.Writer) (*tracing.Tracer, error) {
	provider, err := tracing.ParseProvider(s.Provider)
	if err != nil {
		return nil, err
	}

	opts := []tracing.Option{
		tracing.WithServiceName(serviceName),
		tracing.WithServiceVersion(version),
		tracing.WithSampleRate(s.SampleRate),
		tracing.WithLogger(logger.Logger()),
	}
	if provider == tracing.StdoutProvider {
		// stdout carries command output
		opts = append(opts, tracing.WithStdout(stderr))
	} else {
		opts = append(opts, tracing.WithProvider(provider, s.Endpoint))
	}

	tracer, err := tracing.New(opts...)
	if err != nil {
		return nil, err
	}
	if err = tracer.Start(ctx); err != nil {
		return nil, fmt.Errorf("start tracing: %w", err)
	}
	return tracer, nil
}

func newMetrics(s config.MetricsSettings, logger *logging.Logger, stderr io.Writer) (*metrics.Recorder, error) {
	provider, err := metrics.ParseProvider(s.Provider)
	if err != nil {
		return nil, err
	}

	opts := []metrics.Option{
		metrics.WithServiceName(serviceName),
		metrics.WithServiceVersion(version),
		metrics.WithLogger(logger.Logger()),
	}
	if provider == metrics.StdoutProvider {
		opts = append(opts, metrics.WithStdout(stderr))
	} else {
		opts = append(opts, metrics.WithProvider(provider, s.Endpoint))
	}
	return metrics.New(opts...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
