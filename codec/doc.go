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

// Package codec holds the shared building blocks of the beatmap codecs:
// file format versions, per-call [Options], the error taxonomy, the grid
// [CoordinateCodec] and cut [AngleCodec], and the generic versioned
// [Registry] that every entity kind is published through.
//
// A registry entry pairs a JSON Schema with a serializer and deserializer
// for one format version. Deserialization always validates the raw document
// against the schema before any field is read:
//
//	opts, err := codec.NewOptions(codec.WithExtensionsProvider("mapping-extensions"))
//	if err != nil {
//	    return err
//	}
//	note, err := entity.ColorNotes.Deserialize(codec.V3, raw, opts)
//
// Codecs are pure. They hold no mutable state and are safe for concurrent
// use; everything that varies per call travels in [Options].
package codec
