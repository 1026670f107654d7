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
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Document formats.
const (
	TypeYAML Type = "yaml"
	TypeTOML Type = "toml"
	TypeJSON Type = "json"
)

func init() {
	for name, c := range map[Type]interface {
		Encoder
		Decoder
	}{
		TypeYAML: YAML{},
		TypeTOML: TOML{},
		TypeJSON: JSON{},
	} {
		RegisterEncoder(name, c)
		RegisterDecoder(name, c)
	}
}

// YAML reads and writes YAML 1.2.
type YAML struct{}

func (YAML) Encode(v any) ([]byte, error)    { return yaml.Marshal(v) }
func (YAML) Decode(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// TOML reads and writes TOML 1.0.
type TOML struct{}

func (TOML) Encode(v any) ([]byte, error)    { return toml.Marshal(v) }
func (TOML) Decode(data []byte, v any) error { return toml.Unmarshal(data, v) }

// JSON writes indented JSON. Decoding keeps numbers as float64.
type JSON struct{}

func (JSON) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }
