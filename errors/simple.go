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

// Simple renders failures as a flat JSON object:
//
//	{"error": "...", "instance": "song.zip", "code": "...", "location": "...", "details": ...}
type Simple struct{}

// NewSimple returns the flat formatter.
func NewSimple() *Simple {
	return &Simple{}
}

// Format implements [Formatter].
func (*Simple) Format(instance string, err error) Response {
	facts := inspect(err)

	body := map[string]any{"error": err.Error()}
	if instance != "" {
		body["instance"] = instance
	}
	facts.extend(body, "details")

	return Response{
		Status:      facts.status,
		ContentType: "application/json; charset=utf-8",
		Body:        body,
	}
}
