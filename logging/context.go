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

package logging

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/beatmap/telemetry/semconv"
)

// ContextLogger logs on behalf of one pipeline operation. When the context
// carries a recording span its trace and span IDs are attached, so entries
// line up with exported traces.
type ContextLogger struct {
	ctx    context.Context
	logger *slog.Logger
	sc     trace.SpanContext
}

// NewContextLogger binds logger to ctx.
func NewContextLogger(ctx context.Context, logger *Logger) *ContextLogger {
	cl := &ContextLogger{ctx: ctx, logger: logger.Logger()}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		cl.sc = sc
		cl.logger = cl.logger.With(semconv.TraceID, sc.TraceID().String(), semconv.SpanID, sc.SpanID().String())
	}
	return cl
}

// TraceID returns the bound trace ID, or "" without a span.
func (cl *ContextLogger) TraceID() string {
	if !cl.sc.IsValid() {
		return ""
	}
	return cl.sc.TraceID().String()
}

// SpanID returns the bound span ID, or "" without a span.
func (cl *ContextLogger) SpanID() string {
	if !cl.sc.IsValid() {
		return ""
	}
	return cl.sc.SpanID().String()
}

func (cl *ContextLogger) Debug(msg string, args ...any) { cl.logger.DebugContext(cl.ctx, msg, args...) }
func (cl *ContextLogger) Info(msg string, args ...any)  { cl.logger.InfoContext(cl.ctx, msg, args...) }
func (cl *ContextLogger) Warn(msg string, args ...any)  { cl.logger.WarnContext(cl.ctx, msg, args...) }
func (cl *ContextLogger) Error(msg string, args ...any) { cl.logger.ErrorContext(cl.ctx, msg, args...) }

// Stage logs at debug level that a pipeline stage (info, deserialize,
// serialize) started and returns the function that logs its end with the
// elapsed milliseconds.
//
//	done := cl.Stage("deserialize", semconv.Difficulty, "Standard/Expert")
//	defer done()
func (cl *ContextLogger) Stage(name string, args ...any) func() {
	start := time.Now()
	sl := cl.logger.With(append([]any{semconv.Stage, name}, args...)...)
	sl.DebugContext(cl.ctx, "stage started")
	return func() {
		sl.DebugContext(cl.ctx, "stage finished", semconv.DurationMs, time.Since(start).Milliseconds())
	}
}
