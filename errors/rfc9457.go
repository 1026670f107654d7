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
	"crypto/rand"
	"encoding/json"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// RFC9457 renders failures as RFC 9457 problem details
// (application/problem+json). Codes become problem type URIs under BaseURL.
type RFC9457 struct {
	// BaseURL prefixes codes: BaseURL + "/schema_validation". Empty leaves
	// the bare code as the type.
	BaseURL string

	// ErrorID returns the error_id extension; nil omits it.
	ErrorID func() string
}

// NewRFC9457 returns a formatter stamping each document with a ULID
// error_id.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL, ErrorID: generateErrorID}
}

// ProblemDetail is one problem document. Extensions are written as
// top-level members; they never replace the standard ones.
type ProblemDetail struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extensions)+5)
	maps.Copy(m, p.Extensions)
	m["type"], m["title"], m["status"] = p.Type, p.Title, p.Status
	delete(m, "detail")
	delete(m, "instance")
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	return json.Marshal(m)
}

// Format implements [Formatter].
func (f *RFC9457) Format(instance string, err error) Response {
	facts := inspect(err)

	p := ProblemDetail{
		Type:       "about:blank",
		Title:      http.StatusText(facts.status),
		Status:     facts.status,
		Detail:     err.Error(),
		Instance:   instance,
		Extensions: map[string]any{},
	}
	if facts.code != "" {
		p.Type = facts.code
		if f.BaseURL != "" {
			p.Type = f.BaseURL + "/" + facts.code
		}
	}
	facts.extend(p.Extensions, "errors")
	if f.ErrorID != nil {
		p.Extensions["error_id"] = f.ErrorID()
	}

	return Response{
		Status:      facts.status,
		ContentType: "application/problem+json; charset=utf-8",
		Body:        p,
	}
}

var (
	idEntropy = ulid.Monotonic(rand.Reader, 0)
	idMu      sync.Mutex
)

// generateErrorID returns "err-" plus a ULID; IDs sort by creation time.
func generateErrorID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return "err-" + ulid.MustNew(ulid.Timestamp(time.Now()), idEntropy).String()
}
