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

// Package tracing sets up OpenTelemetry tracing for the beatmap conversion
// pipeline.
//
// A [Tracer] owns a tracer provider with one of four exporters: noop (the
// default), stdout, OTLP gRPC or OTLP HTTP. Import and export create a root
// span per archive and a child span per difficulty:
//
//	tracer := tracing.MustNew(tracing.WithOTLPHTTP("http://localhost:4318"))
//	if err := tracer.Start(ctx); err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.StartSpan(ctx, "beatmap.import", tracing.AttrArchive.String(path))
//	defer func() { tracer.Finish(span, err) }()
package tracing
