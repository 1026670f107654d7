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

package validation

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaBaseURL anchors schema ids so the compiler never touches the filesystem.
const schemaBaseURL = "https://rivaas.dev/beatmap/schemas/"

// maxSchemaErrors caps the field errors reported for one document.
const maxSchemaErrors = 32

// Schema is a compiled JSON Schema.
type Schema struct {
	id       string
	compiled *jsonschema.Schema
}

// CompileSchema compiles a JSON Schema document. The id names the schema in
// error metadata and must be unique within a compiler run.
func CompileSchema(id string, doc []byte) (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()

	var schemaDoc any
	if err := json.Unmarshal(doc, &schemaDoc); err != nil {
		return nil, fmt.Errorf("invalid schema JSON %q: %w", id, err)
	}

	url := schemaBaseURL + id + ".json"
	if err := compiler.AddResource(url, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %q: %w", id, err)
	}

	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %q: %w", id, err)
	}

	return &Schema{id: id, compiled: compiled}, nil
}

// MustCompileSchema is like [CompileSchema] but panics on error.
func MustCompileSchema(id string, doc []byte) *Schema {
	s, err := CompileSchema(id, doc)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the schema id.
func (s *Schema) ID() string {
	return s.id
}

// Validate checks a decoded JSON value (maps, slices, float64, string, bool,
// nil) against the schema. Failures are returned as [*Error].
func (s *Schema) Validate(instance any) error {
	err := s.compiled.Validate(instance)
	if err == nil {
		return nil
	}

	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &Error{Fields: []FieldError{{Code: "schema_validation_error", Message: err.Error()}}}
	}

	return formatSchemaErrors(verr)
}

// formatSchemaErrors flattens the ValidationError tree into [FieldError] values.
func formatSchemaErrors(verr *jsonschema.ValidationError) error {
	var result Error
	collectSchemaErrors(verr, &result)
	result.Sort()

	return &result
}

func collectSchemaErrors(verr *jsonschema.ValidationError, result *Error) {
	if verr == nil || result.Truncated {
		return
	}

	if len(verr.Causes) == 0 {
		if len(result.Fields) >= maxSchemaErrors {
			result.Truncated = true
			return
		}

		kind := schemaErrorKind(verr)
		result.Add(strings.Join(verr.InstanceLocation, "."), "schema."+kind, verr.Error(), map[string]any{
			"kind":       kind,
			"schema_url": verr.SchemaURL,
		})
		return
	}

	for _, cause := range verr.Causes {
		collectSchemaErrors(cause, result)
	}
}

// schemaErrorKind returns the keyword that failed, e.g. "required" or "type".
func schemaErrorKind(verr *jsonschema.ValidationError) string {
	if verr.ErrorKind == nil {
		return "invalid"
	}
	kw := verr.ErrorKind.KeywordPath()
	if len(kw) == 0 {
		return "invalid"
	}
	return kw[len(kw)-1]
}

// SchemaSet is a set of compiled schemas keyed by id.
type SchemaSet struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// LoadSchemas compiles every file in fsys matching pattern. A file named
// "colornote.v3.json" is registered under the id "colornote.v3".
func LoadSchemas(fsys fs.FS, pattern string) (*SchemaSet, error) {
	names, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob schemas: %w", err)
	}

	set := &SchemaSet{schemas: make(map[string]*Schema, len(names))}
	for _, name := range names {
		doc, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}

		id := strings.TrimSuffix(path.Base(name), ".json")
		s, err := CompileSchema(id, doc)
		if err != nil {
			return nil, err
		}
		set.schemas[id] = s
	}

	return set, nil
}

// MustLoadSchemas is like [LoadSchemas] but panics on error.
func MustLoadSchemas(fsys fs.FS, pattern string) *SchemaSet {
	set, err := LoadSchemas(fsys, pattern)
	if err != nil {
		panic(err)
	}
	return set
}

// Get returns the schema registered under id.
func (s *SchemaSet) Get(id string) (*Schema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schema, ok := s.schemas[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, id)
	}

	return schema, nil
}

// MustGet is like [SchemaSet.Get] but panics on error.
func (s *SchemaSet) MustGet(id string) *Schema {
	schema, err := s.Get(id)
	if err != nil {
		panic(err)
	}
	return schema
}

// Len returns the number of schemas in the set.
func (s *SchemaSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.schemas)
}
