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

// Package entity implements the versioned codecs of the five beatmap entity
// kinds: color notes, bomb notes, obstacles, basic events and bookmarks.
//
// Each kind is published as a [codec.Registry] keyed by format version:
//
//	serial, err := entity.ColorNotes.Serialize(codec.V3, note, opts)
//	note, err := entity.ColorNotes.Deserialize(codec.V3, raw, opts)
//
// Version 4 entities serialize to a [codec.Pooled] value holding the
// placement object and the data payload; the container assigns pool
// indices. Their raw input is {"object": ..., "data": ...}.
package entity
