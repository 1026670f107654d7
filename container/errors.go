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

package container

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned when a document's format version cannot be
// detected.
var ErrUnknownFormat = errors.New("unrecognized document format")

// EntityError locates an entity failure inside a container document.
type EntityError struct {
	Kind  string
	Index int
	Err   error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Kind, e.Index, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

// Location implements rivaas.dev/beatmap/errors.ErrorLocation.
func (e *EntityError) Location() string {
	return fmt.Sprintf("%s[%d]", e.Kind, e.Index)
}
