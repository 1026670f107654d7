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

package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInfo means the archive has no song metadata file.
	ErrMissingInfo = errors.New("archive has no info file")
	// ErrMissingMember means a file named by the metadata is absent.
	ErrMissingMember = errors.New("archive member not found")
	// ErrVersionMismatch means a difficulty's format does not belong with
	// the info file's format.
	ErrVersionMismatch = errors.New("difficulty version does not match info version")
	// ErrMemberTooLarge means a member exceeds the configured size limit.
	ErrMemberTooLarge = errors.New("archive member too large")
	// ErrDuplicateMember means two outputs would be written under one name.
	ErrDuplicateMember = errors.New("duplicate archive member")
)

// ImportError wraps the first failure of an import with the member being
// read when it happened.
type ImportError struct {
	Member string
	Err    error
}

func (e *ImportError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("import: %v", e.Err)
	}
	return fmt.Sprintf("import %s: %v", e.Member, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Location reports the member, followed by the position inside it when the
// cause knows one.
func (e *ImportError) Location() string {
	return memberLocation(e.Member, e.Err)
}

// ExportError wraps the first failure of an export with the member being
// produced when it happened.
type ExportError struct {
	Member string
	Err    error
}

func (e *ExportError) Error() string {
	if e.Member == "" {
		return fmt.Sprintf("export: %v", e.Err)
	}
	return fmt.Sprintf("export %s: %v", e.Member, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// Location works like [ImportError.Location].
func (e *ExportError) Location() string {
	return memberLocation(e.Member, e.Err)
}

func memberLocation(member string, err error) string {
	var inner interface{ Location() string }
	if errors.As(err, &inner) {
		if loc := inner.Location(); loc != "" {
			if member == "" {
				return loc
			}
			return member + ":" + loc
		}
	}
	return member
}
