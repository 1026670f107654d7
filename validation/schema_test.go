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

//go:build !integration

package validation

import (
	"encoding/json"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["b", "x"],
	"properties": {
		"b": {"type": "number"},
		"x": {"type": "integer", "minimum": 0}
	}
}`

func decode(t *testing.T, doc string) any {
	t.Helper()

	var v any
	require.NoError(t, json.Unmarshal([]byte(doc), &v))

	return v
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	schema := MustCompileSchema("point", []byte(pointSchema))
	assert.Equal(t, "point", schema.ID())

	tests := []struct {
		name     string
		doc      string
		wantCode string
		wantPath string
	}{
		{name: "valid", doc: `{"b": 1.5, "x": 2}`},
		{name: "missing field", doc: `{"b": 1.5}`, wantCode: "schema.required"},
		{name: "wrong type", doc: `{"b": "1", "x": 2}`, wantCode: "schema.type", wantPath: "b"},
		{name: "below minimum", doc: `{"b": 1, "x": -1}`, wantCode: "schema.minimum", wantPath: "x"},
		{name: "fractional integer", doc: `{"b": 1, "x": 1.5}`, wantCode: "schema.type", wantPath: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := schema.Validate(decode(t, tt.doc))
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, ErrValidation)

			var verr *Error
			require.True(t, errors.As(err, &verr))
			assert.True(t, verr.HasCode(tt.wantCode), "codes: %v", verr.Fields)
			if tt.wantPath != "" {
				assert.True(t, verr.Has(tt.wantPath), "paths: %v", verr.Fields)
			}
		})
	}
}

func TestCompileSchema_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := CompileSchema("broken", []byte(`{"type":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestLoadSchemas(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"schemas/point.v1.json": {Data: []byte(pointSchema)},
		"schemas/any.v2.json":   {Data: []byte(`{"type": "object"}`)},
		"schemas/README.md":     {Data: []byte("ignored")},
	}

	set, err := LoadSchemas(fsys, "schemas/*.json")
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	s, err := set.Get("point.v1")
	require.NoError(t, err)
	require.NoError(t, s.Validate(decode(t, `{"b": 0, "x": 0}`)))

	_, err = set.Get("point.v9")
	require.ErrorIs(t, err, ErrSchemaNotFound)

	assert.Panics(t, func() { set.MustGet("missing") })
}

func TestLoadSchemas_CompileFailure(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"schemas/bad.json": {Data: []byte(`{"type": 12}`)},
	}

	_, err := LoadSchemas(fsys, "schemas/*.json")
	require.Error(t, err)
}
