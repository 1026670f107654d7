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

// Package codec encodes and decodes configuration documents.
//
// Codecs register themselves by [Type] at init time; [GetDecoder] and
// [GetEncoder] look them up. YAML uses github.com/goccy/go-yaml, TOML uses
// github.com/BurntSushi/toml, and environment variables are parsed into
// nested maps with scalar values inferred by github.com/spf13/cast.
package codec

import (
	"fmt"
	"sync"
)

// Type names a document format.
type Type string

// Encoder converts a value into a document. Implementations must be safe for
// concurrent use.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder parses a document into v, usually a *map[string]any.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

var (
	mu       sync.RWMutex
	encoders = map[Type]Encoder{}
	decoders = map[Type]Decoder{}
)

// RegisterEncoder makes an encoder available under name, replacing any
// previous one.
func RegisterEncoder(name Type, e Encoder) {
	mu.Lock()
	defer mu.Unlock()
	encoders[name] = e
}

// RegisterDecoder makes a decoder available under name, replacing any
// previous one.
func RegisterDecoder(name Type, d Decoder) {
	mu.Lock()
	defer mu.Unlock()
	decoders[name] = d
}

// GetEncoder returns the encoder registered under name.
func GetEncoder(name Type) (Encoder, error) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("encoder not found for type: %s", name)
	}
	return e, nil
}

// GetDecoder returns the decoder registered under name.
func GetDecoder(name Type) (Decoder, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("decoder not found for type: %s", name)
	}
	return d, nil
}
