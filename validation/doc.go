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

// Package validation checks beatmap documents and wrapper values.
//
// Two strategies are provided:
//
//   - JSON Schema: [Schema] validates decoded JSON documents before any field
//     is read. Schemas are compiled once from an [io/fs.FS] into a
//     [SchemaSet].
//   - Struct tags: [Validator] checks in-memory values with
//     go-playground/validator tags plus registered struct-level rules.
//
// Both report failures as [*Error], a list of [FieldError] values with
// stable codes ("schema.required", "tag.oneof", ...) and JSON paths.
//
//	set := validation.MustLoadSchemas(schemasFS, "schemas/*.json")
//	if err := set.MustGet("colornote.v3").Validate(doc); err != nil {
//	    var verr *validation.Error
//	    errors.As(err, &verr)
//	}
package validation
