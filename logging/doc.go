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

// Package logging is the structured logger of the conversion pipeline and
// the beatconv CLI. It wraps log/slog with JSON, text and colored console
// handlers; beatconv picks console when stderr is a terminal.
//
//	logger := logging.MustNew(
//		logging.WithHandlerType(logging.ConsoleHandler),
//		logging.WithServiceName("beatconv"),
//	)
//	defer logger.Shutdown(context.Background())
//	logger.Info("archive imported", "difficulties", 4)
//
// [ContextLogger] attaches trace_id and span_id of the active OpenTelemetry
// span and times pipeline stages:
//
//	cl := logging.NewContextLogger(ctx, logger)
//	done := cl.Stage("deserialize", semconv.Difficulty, "Standard/Expert")
//	defer done()
//
// [Logger.LogError] records the code and location of archive and codec
// errors next to the message.
package logging
