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
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// TypeEnvVar decodes KEY=value lines.
const TypeEnvVar Type = "env_var"

func init() {
	RegisterDecoder(TypeEnvVar, EnvVar{})
}

// EnvVar decodes newline separated KEY=value pairs into a nested map.
// Keys are lowercased; a double underscore separates nesting levels so that
// single underscores survive in key names:
//
//	TRACING__SAMPLE_RATE=0.5  ->  tracing.sample_rate = 0.5
//
// Values that parse as booleans, integers or floats are converted; all
// others stay strings.
type EnvVar struct{}

// Encode is not supported.
func (EnvVar) Encode(any) ([]byte, error) {
	return nil, errors.New("encoding to environment variables is not supported")
}

// Decode fills v, which must be a *map[string]any.
func (EnvVar) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("EnvVar.Decode: expected *map[string]any, got %T", v)
	}

	conf := make(map[string]any)
	for line := range bytes.SplitSeq(data, []byte("\n")) {
		key, value, ok := strings.Cut(string(line), "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}

		var parts []string
		for part := range strings.SplitSeq(strings.ToLower(key), "__") {
			if part = strings.Trim(part, "_"); part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) == 0 {
			continue
		}

		current := conf
		for _, part := range parts[:len(parts)-1] {
			next, isMap := current[part].(map[string]any)
			if !isMap {
				// a scalar set earlier loses to the nested form
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = inferScalar(strings.TrimSpace(value))
	}

	*ptr = conf
	return nil
}

// inferScalar converts s to bool, int64 or float64 when it is spelled as
// one, and returns it unchanged otherwise.
func inferScalar(s string) any {
	switch strings.ToLower(s) {
	case "true", "false":
		return cast.ToBool(s)
	case "":
		return s
	}
	if strings.ContainsAny(s, "eE") || (len(s) > 1 && s[0] == '0' && s[1] != '.') {
		// keep hex-like, exponent and zero-padded spellings verbatim
		return s
	}
	if n, err := cast.ToInt64E(s); err == nil && !strings.Contains(s, ".") {
		return n
	}
	if f, err := cast.ToFloat64E(s); err == nil {
		return f
	}
	return s
}
