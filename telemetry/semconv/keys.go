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

package semconv

// Service metadata, set once when the logger or an exporter is built.
const (
	// ServiceName identifies the program that produced the data.
	ServiceName = "service.name"

	// ServiceVersion is the program's build version.
	ServiceVersion = "service.version"
)

// Trace correlation.
const (
	// TraceID identifies the trace an entry belongs to.
	TraceID = "trace_id"

	// SpanID identifies the span an entry was written under.
	SpanID = "span_id"
)

// Conversion pipeline attributes. Span attributes and log fields share these
// names so a log line can be matched to its span by value.
const (
	// Archive is the base name of the archive being read or written.
	Archive = "beatmap.archive"

	// Version is a map format version such as "v3". It is the difficulty
	// format unless the key appears on an info-file stage.
	Version = "beatmap.version"

	// Difficulty identifies a difficulty as "Characteristic/Difficulty".
	Difficulty = "beatmap.difficulty"

	// Member is the name of a file inside an archive.
	Member = "beatmap.member"

	// ExtensionsProvider names the active extension provider; empty for
	// vanilla encoding.
	ExtensionsProvider = "beatmap.extensions_provider"

	// EventsSkipped counts events dropped for being on unknown tracks.
	EventsSkipped = "beatmap.events_skipped"

	// Stage names a pipeline step such as "info" or "deserialize".
	Stage = "stage"
)

// Durations.
const (
	// DurationMs is an elapsed time in whole milliseconds.
	DurationMs = "duration_ms"
)
