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

// Package source loads raw configuration maps from files, in-memory content
// and the process environment.
package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/beatmap/config/codec"
)

// File loads a document from disk, or from bytes given up front.
type File struct {
	path     string
	data     []byte
	optional bool
	decoder  codec.Decoder
}

// NewFile reads path on every Load.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{path: path, decoder: decoder}
}

// NewOptionalFile is like [NewFile] but a missing file loads as empty.
func NewOptionalFile(path string, decoder codec.Decoder) *File {
	return &File{path: path, decoder: decoder, optional: true}
}

// NewFileContent decodes data on every Load.
func NewFileContent(data []byte, decoder codec.Decoder) *File {
	return &File{data: data, decoder: decoder}
}

// Load decodes the document into a map.
func (f *File) Load(context.Context) (map[string]any, error) {
	data := f.data
	if f.path != "" {
		var err error
		if data, err = os.ReadFile(f.path); err != nil {
			if f.optional && os.IsNotExist(err) {
				return map[string]any{}, nil
			}
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
	}

	var conf map[string]any
	if err := f.decoder.Decode(data, &conf); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", f.name(), err)
	}
	return conf, nil
}

func (f *File) name() string {
	if f.path != "" {
		return f.path
	}
	return "content"
}

// Env loads the environment variables that start with a prefix. The prefix
// is stripped and the rest is decoded by [codec.EnvVar]:
//
//	BEATCONV_TARGET=3              -> target = 3
//	BEATCONV_LOG__LEVEL=debug      -> log.level = "debug"
type Env struct {
	prefix  string
	environ func() []string
}

// NewEnv reads os.Environ on every Load.
func NewEnv(prefix string) *Env {
	return &Env{prefix: prefix, environ: os.Environ}
}

// Load decodes the matching variables.
func (e *Env) Load(context.Context) (map[string]any, error) {
	var lines []string
	for _, kv := range e.environ() {
		if rest, ok := strings.CutPrefix(kv, e.prefix); ok {
			lines = append(lines, rest)
		}
	}

	var conf map[string]any
	if err := (codec.EnvVar{}).Decode([]byte(strings.Join(lines, "\n")), &conf); err != nil {
		return nil, fmt.Errorf("failed to decode environment variables: %w", err)
	}
	return conf, nil
}

// Map is a fixed layer, typically built from command-line flags.
type Map map[string]any

// Load returns m.
func (m Map) Load(context.Context) (map[string]any, error) {
	return m, nil
}
