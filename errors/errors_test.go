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

package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/validation"
)

type locatedError struct {
	err      error
	location string
}

func (e *locatedError) Error() string    { return e.location + ": " + e.err.Error() }
func (e *locatedError) Unwrap() error    { return e.err }
func (e *locatedError) Location() string { return e.location }

func schemaFailure() error {
	var verr validation.Error
	verr.Add("b", "schema.required", "missing property", nil)
	return &codec.SchemaValidationError{Label: "ColorNote/v3", Err: &verr}
}

func TestRFC9457_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
	}{
		{
			name:       "plain error",
			err:        stderrors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantType:   "about:blank",
		},
		{
			name:       "unsupported version",
			err:        &codec.UnsupportedVersionError{Kind: "Bookmark", Version: codec.V1},
			wantStatus: http.StatusBadRequest,
			wantType:   "https://rivaas.dev/beatmap/problems/unsupported_version",
			wantCode:   "unsupported_version",
		},
		{
			name:       "wrapped coordinate error",
			err:        fmt.Errorf("import: %w", &codec.InvalidCoordinateError{Value: 9, Min: 0, Max: 3, Bounded: true}),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   "https://rivaas.dev/beatmap/problems/invalid_coordinate",
			wantCode:   "invalid_coordinate",
		},
		{
			name:       "explicit status",
			err:        WithStatus(stderrors.New("bad flag"), http.StatusBadRequest),
			wantStatus: http.StatusBadRequest,
			wantType:   "about:blank",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := NewRFC9457("https://rivaas.dev/beatmap/problems")
			f.ErrorID = nil

			resp := f.Format("Expert.dat", tt.err)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "application/problem+json; charset=utf-8", resp.ContentType)

			p, ok := resp.Body.(ProblemDetail)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, http.StatusText(tt.wantStatus), p.Title)
			assert.Equal(t, "Expert.dat", p.Instance)
			assert.Equal(t, tt.err.Error(), p.Detail)
			assert.NotContains(t, p.Extensions, "error_id")
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, p.Extensions["code"])
			} else {
				assert.NotContains(t, p.Extensions, "code")
			}
		})
	}
}

func TestRFC9457_Extensions(t *testing.T) {
	t.Parallel()

	f := NewRFC9457("")
	f.ErrorID = func() string { return "err-fixed" }

	err := &locatedError{err: schemaFailure(), location: "ColorNote[4]"}
	resp := f.Format("", err)

	var buf bytes.Buffer
	require.NoError(t, resp.Encode(&buf))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "schema_validation", got["type"])
	assert.Equal(t, "schema_validation", got["code"])
	assert.Equal(t, "err-fixed", got["error_id"])
	assert.Equal(t, "ColorNote[4]", got["location"])
	assert.NotContains(t, got, "instance")

	fields, ok := got["errors"].([]any)
	require.True(t, ok)
	require.Len(t, fields, 1)
	assert.Equal(t, "b", fields[0].(map[string]any)["path"])
}

func TestProblemDetail_ReservedNames(t *testing.T) {
	t.Parallel()

	p := ProblemDetail{
		Type:       "about:blank",
		Title:      "Bad Request",
		Status:     400,
		Extensions: map[string]any{"status": 200, "hint": "use v2"},
	}

	b, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.InDelta(t, 400.0, got["status"], 0)
	assert.Equal(t, "use v2", got["hint"])
}

func TestGenerateErrorID(t *testing.T) {
	t.Parallel()

	a, b := generateErrorID(), generateErrorID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, len("err-")+ulid.EncodedSize)
	assert.Less(t, a, b)
}

func TestSimple_Format(t *testing.T) {
	t.Parallel()

	resp := NewSimple().Format("song.zip", &locatedError{err: schemaFailure(), location: "Obstacle[0]"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Status)
	assert.Equal(t, "application/json; charset=utf-8", resp.ContentType)

	body, ok := resp.Body.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "song.zip", body["instance"])
	assert.Equal(t, "schema_validation", body["code"])
	assert.Equal(t, "Obstacle[0]", body["location"])
	assert.NotNil(t, body["details"])

	resp = NewSimple().Format("", stderrors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, map[string]any{"error": "boom"}, resp.Body)
}

func TestSimple_WithStatus(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("parse flags: %w", WithStatus(stderrors.New("bad target"), http.StatusBadRequest))
	resp := NewSimple().Format("", err)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "parse flags: bad target", resp.Body.(map[string]any)["error"])
}

func TestNew(t *testing.T) {
	t.Parallel()

	f, err := New("", "https://example.com")
	require.NoError(t, err)
	assert.IsType(t, &RFC9457{}, f)

	f, err = New("simple", "")
	require.NoError(t, err)
	assert.IsType(t, &Simple{}, f)

	_, err = New("xml", "")
	require.Error(t, err)
}

func TestWithStatus_Nil(t *testing.T) {
	t.Parallel()

	err := WithStatus(nil, http.StatusNotFound)
	assert.Equal(t, "Not Found", err.Error())
	assert.NoError(t, stderrors.Unwrap(err))
}
