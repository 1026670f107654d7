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

// Package semconv names the attributes shared by logs, spans and metrics.
//
// Span attributes follow OpenTelemetry conventions where one exists
// (service.name, service.version); pipeline attributes live under the
// "beatmap." namespace. Use the constants as slog keys and as
// attribute.Key values:
//
//	logger.Info("import finished",
//		semconv.Archive, "song.zip",
//		semconv.Version, "v3",
//	)
//
//	span.SetAttributes(attribute.String(semconv.Difficulty, "Standard/Expert"))
package semconv
