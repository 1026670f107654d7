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

package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Formatter converts a failure into a user-facing document.
type Formatter interface {
	// Format describes err. instance names the file or archive member the
	// failure belongs to and may be empty.
	Format(instance string, err error) Response
}

// Response is a formatted failure.
type Response struct {
	Status      int
	ContentType string
	// Body is marshaled to JSON by Encode.
	Body any
}

// Encode writes the body as indented JSON.
func (r Response) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Body); err != nil {
		return fmt.Errorf("encode %s: %w", r.ContentType, err)
	}
	return nil
}

// ErrorType is implemented by failures that know their status code, for
// example an unsupported version is a 400 while a malformed entity is a 422.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorDetails is implemented by failures carrying structured details, such
// as the field errors of a schema rejection.
type ErrorDetails interface {
	error
	Details() any
}

// ErrorCode is implemented by failures with a machine-readable code.
type ErrorCode interface {
	error
	Code() string
}

// ErrorLocation is implemented by failures that know where in a document
// they happened, e.g. "ColorNote[12]".
type ErrorLocation interface {
	error
	Location() string
}

// New returns the formatter named by format: "rfc9457" (the default) or
// "simple".
func New(format, baseURL string) (Formatter, error) {
	switch format {
	case "", "rfc9457":
		return NewRFC9457(baseURL), nil
	case "simple":
		return NewSimple(), nil
	}
	return nil, fmt.Errorf("unknown error format %q", format)
}

// WithStatus attaches status to err. A nil err reads as the status text.
//
//	return errors.WithStatus(err, http.StatusBadRequest)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}
	return e.err.Error()
}

func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) HTTPStatus() int { return e.status }

// facts is what a formatter can learn about a failure through the optional
// interfaces. Empty fields were not provided.
type facts struct {
	status   int
	code     string
	location string
	details  any
}

func inspect(err error) facts {
	f := facts{status: http.StatusInternalServerError}

	var typed ErrorType
	if errors.As(err, &typed) {
		f.status = typed.HTTPStatus()
	}
	var coded ErrorCode
	if errors.As(err, &coded) {
		f.code = coded.Code()
	}
	var located ErrorLocation
	if errors.As(err, &located) {
		f.location = located.Location()
	}
	var detailed ErrorDetails
	if errors.As(err, &detailed) {
		f.details = detailed.Details()
	}
	return f
}

// extend copies the optional facts into m under their document keys.
func (f facts) extend(m map[string]any, detailsKey string) {
	if f.code != "" {
		m["code"] = f.code
	}
	if f.location != "" {
		m["location"] = f.location
	}
	if f.details != nil {
		m[detailsKey] = f.details
	}
}
