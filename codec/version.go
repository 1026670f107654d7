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

package codec

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a beatmap file format generation.
type Version int

// Supported format versions.
const (
	V1 Version = iota + 1
	V2
	V3
	V4
)

// Versions lists every supported version in ascending order.
var Versions = []Version{V1, V2, V3, V4}

// Valid reports whether v is a supported version.
func (v Version) Valid() bool {
	return v >= V1 && v <= V4
}

// String returns "v1" through "v4".
func (v Version) String() string {
	return "v" + strconv.Itoa(int(v))
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, &UnsupportedVersionError{Version: v}
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVersion accepts "3", "v3" or a semantic version string such as
// "3.3.0"; only the major component is used.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(s)), "v")
	major, _, _ := strings.Cut(s, ".")

	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
	v := Version(n)
	if !v.Valid() {
		return 0, &UnsupportedVersionError{Version: v}
	}

	return v, nil
}
