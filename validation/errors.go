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
	"cmp"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// ErrValidation matches every [Error] and [FieldError] with errors.Is.
var ErrValidation = errors.New("validation")

var (
	// ErrCannotValidateNilValue is returned by [Validator.Validate] for nil.
	ErrCannotValidateNilValue = errors.New("cannot validate nil value")

	// ErrSchemaNotFound is returned by [SchemaSet.Get] for an unknown id.
	ErrSchemaNotFound = errors.New("schema not found")
)

// FieldError is one rejected value, addressed by a dotted path into the
// document such as "colorNotes.2.x".
type FieldError struct {
	Path    string         `json:"path"`
	Code    string         `json:"code"` // "tag.required", "schema.type", "pool.index"
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

func (e FieldError) Unwrap() error { return ErrValidation }

// Error is the result of one validation run.
//
//nolint:recvcheck // value receivers satisfy error; Add and Sort mutate
type Error struct {
	Fields []FieldError `json:"errors"`
	// Truncated is set when the run stopped at its error limit.
	Truncated bool `json:"truncated,omitempty"`
}

func (v Error) Error() string {
	switch len(v.Fields) {
	case 0:
		return ""
	case 1:
		return v.Fields[0].Error()
	}

	var b strings.Builder
	b.WriteString("validation failed: ")
	for i, f := range v.Fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.Error())
	}
	if v.Truncated {
		b.WriteString(" (truncated)")
	}
	return b.String()
}

func (v Error) Unwrap() error   { return ErrValidation }
func (v Error) HTTPStatus() int { return http.StatusUnprocessableEntity }
func (v Error) Details() any    { return v.Fields }
func (v Error) Code() string    { return "validation_error" }

// Add records a failure at path.
func (v *Error) Add(path, code, message string, meta map[string]any) {
	v.Fields = append(v.Fields, FieldError{Path: path, Code: code, Message: message, Meta: meta})
}

// AddError records err. Nested [Error] and [FieldError] values keep their
// paths; anything else becomes a pathless validation_error.
func (v *Error) AddError(err error) {
	var (
		fe FieldError
		ve *Error
	)
	switch {
	case err == nil:
	case errors.As(err, &fe):
		v.Fields = append(v.Fields, fe)
	case errors.As(err, &ve):
		v.Fields = append(v.Fields, ve.Fields...)
		v.Truncated = v.Truncated || ve.Truncated
	default:
		v.Add("", "validation_error", err.Error(), nil)
	}
}

func (v Error) HasErrors() bool { return len(v.Fields) > 0 }

// HasCode reports whether some failure carries code.
func (v Error) HasCode(code string) bool {
	return slices.ContainsFunc(v.Fields, func(f FieldError) bool { return f.Code == code })
}

// Has reports whether path failed.
func (v Error) Has(path string) bool {
	return v.GetField(path) != nil
}

// GetField returns the first failure at path, or nil.
func (v Error) GetField(path string) *FieldError {
	if i := slices.IndexFunc(v.Fields, func(f FieldError) bool { return f.Path == path }); i >= 0 {
		return &v.Fields[i]
	}
	return nil
}

// Sort orders failures by path, then code. Array indices compare
// numerically, so colorNotes.2 sorts before colorNotes.10.
func (v *Error) Sort() {
	slices.SortStableFunc(v.Fields, func(a, b FieldError) int {
		return cmp.Or(comparePaths(a.Path, b.Path), cmp.Compare(a.Code, b.Code))
	})
}

func comparePaths(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := range min(len(as), len(bs)) {
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		var c int
		if aerr == nil && berr == nil {
			c = cmp.Compare(ai, bi)
		} else {
			c = cmp.Compare(as[i], bs[i])
		}
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(len(as), len(bs))
}
