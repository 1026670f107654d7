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

// Package metrics counts what the archive pipelines convert.
//
// A [Recorder] owns an OpenTelemetry meter provider backed by one of three
// exporters:
//   - [PrometheusProvider] (default): a private registry, dumped with
//     [Recorder.WriteText] at the end of a CLI run or scraped through
//     [Recorder.Handler]
//   - [OTLPProvider]: periodic push over OTLP HTTP
//   - [StdoutProvider]: periodic JSON on a writer
//
// # Basic Usage
//
//	recorder := metrics.MustNew(metrics.WithServiceName("beatconv"))
//	defer recorder.Shutdown(context.Background())
//
//	recorder.RecordEntities(ctx, metrics.Export, "3.3.0", map[string]int{"ColorNote": 120})
//	_ = recorder.WriteText(os.Stderr)
//
// The global meter provider is never touched, so tests can run recorders in
// parallel. A nil *Recorder is valid and records nothing.
package metrics
