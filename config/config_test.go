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

//go:build !integration

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/beatmap/config/codec"
)

type mockSource struct {
	conf map[string]any
	err  error
}

func (m *mockSource) Load(context.Context) (map[string]any, error) {
	return m.conf, m.err
}

type bindStruct struct {
	Name    string        `config:"name" default:"anon"`
	Count   int           `config:"count" default:"3"`
	Timeout time.Duration `config:"timeout" default:"2s"`
	Nested  struct {
		Flag bool `config:"flag"`
	} `config:"nested"`
}

type validatedStruct struct {
	Port int `config:"port"`
}

func (v *validatedStruct) Validate() error {
	if v.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{"no options", nil, ""},
		{"nil source", []Option{WithSource(nil)}, "nil source"},
		{"nil binding", []Option{WithBinding(nil)}, "binding target <nil> is not a pointer"},
		{"non-pointer binding", []Option{WithBinding(bindStruct{})}, "is not a pointer"},
		{"empty tag", []Option{WithTag("")}, "empty binding tag"},
		{"unknown extension", []Option{WithFile("settings.ini")}, "unknown settings file extension"},
		{"unknown codec", []Option{WithContent(nil, "xml")}, "decoder not found"},
		{"bad schema", []Option{WithJSONSchema([]byte("{"))}, "json-schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_LayersOverride(t *testing.T) {
	t.Parallel()

	cfg := MustNew(
		WithSource(&mockSource{conf: map[string]any{"a": 1, "nested": map[string]any{"x": "one", "y": "keep"}}}),
		WithSource(&mockSource{conf: map[string]any{"A": 2, "Nested": map[string]any{"X": "two"}}}),
	)
	require.NoError(t, cfg.Load(context.Background()))

	assert.Equal(t, 2, cfg.Int("a"))
	assert.Equal(t, "two", cfg.String("nested.x"))
	assert.Equal(t, "keep", cfg.String("NESTED.Y"))
	assert.Nil(t, cfg.Get("nested.z"))
	assert.Nil(t, cfg.Get("a.b"))
	assert.Equal(t, "fallback", cfg.StringOr("missing", "fallback"))
}

func TestLoad_FalseOverridesTrue(t *testing.T) {
	t.Parallel()

	cfg := MustNew(
		WithContent([]byte("flag: true\n"), codec.TypeYAML),
		WithValues(map[string]any{"flag": false}),
	)
	require.NoError(t, cfg.Load(context.Background()))
	assert.False(t, cfg.Bool("flag"))
}

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "c.yaml", "name: beat\ncount: 7\nnested:\n  flag: true\n"},
		{"yml", "c.yml", "name: beat\ncount: 7\nnested:\n  flag: true\n"},
		{"toml", "c.toml", "name = \"beat\"\ncount = 7\n[nested]\nflag = true\n"},
		{"json", "c.json", `{"name":"beat","count":7,"nested":{"flag":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bindStruct
			cfg := MustNew(WithFile(writeFile(t, tt.file, tt.content)), WithBinding(&out))
			require.NoError(t, cfg.Load(context.Background()))

			assert.Equal(t, "beat", out.Name)
			assert.Equal(t, 7, out.Count)
			assert.True(t, out.Nested.Flag)
			assert.Equal(t, 2*time.Second, out.Timeout)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	var out bindStruct
	cfg := MustNew(WithBinding(&out))
	require.NoError(t, cfg.Load(context.Background()))

	assert.Equal(t, "anon", out.Name)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, 2*time.Second, out.Timeout)
}

func TestLoad_DefaultOverflow(t *testing.T) {
	t.Parallel()

	var out struct {
		Small int8 `config:"small" default:"300"`
	}
	cfg := MustNew(WithBinding(&out))
	err := cfg.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflows int8")
}

func TestLoad_OptionalFile(t *testing.T) {
	t.Parallel()

	cfg := MustNew(WithOptionalFile(filepath.Join(t.TempDir(), "absent.yaml")))
	require.NoError(t, cfg.Load(context.Background()))
	assert.Empty(t, cfg.Values())

	cfg = MustNew(WithFile(filepath.Join(t.TempDir(), "absent.yaml")))
	err := cfg.Load(context.Background())
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "source[0]", cerr.Source)
	assert.Equal(t, "load", cerr.Operation)
	assert.Equal(t, "config_load", cerr.Code())
}

func TestLoad_SchemaRejects(t *testing.T) {
	t.Parallel()

	schema := []byte(`{"type":"object","properties":{"count":{"type":"integer","minimum":1}}}`)
	cfg := MustNew(
		WithJSONSchema(schema),
		WithContent([]byte("count: 0\n"), codec.TypeYAML),
	)
	err := cfg.Load(context.Background())
	require.Error(t, err)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "json-schema", cerr.Location())
}

func TestLoad_ValidatorKeepsPreviousBinding(t *testing.T) {
	t.Parallel()

	out := validatedStruct{Port: 8080}
	cfg := MustNew(WithValues(map[string]any{"port": -1}), WithBinding(&out))

	err := cfg.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port must be positive")
	assert.Equal(t, 8080, out.Port)
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := MustNew(WithSource(&mockSource{conf: map[string]any{}}))
	require.ErrorIs(t, cfg.Load(ctx), context.Canceled)
}

func TestWithValues_Dotted(t *testing.T) {
	t.Parallel()

	cfg := MustNew(WithValues(map[string]any{"log.level": "debug", "log.format": "json", "target": 3}))
	require.NoError(t, cfg.Load(context.Background()))

	assert.Equal(t, "debug", cfg.String("log.level"))
	assert.Equal(t, "json", cfg.String("log.format"))
	assert.Equal(t, 3, cfg.Int("target"))
}

func TestDump(t *testing.T) {
	t.Parallel()

	cfg := MustNew(WithValues(map[string]any{"name": "beat"}))
	require.NoError(t, cfg.Load(context.Background()))

	for _, format := range []codec.Type{codec.TypeYAML, codec.TypeJSON, codec.TypeTOML} {
		out, err := cfg.Dump(format)
		require.NoError(t, err, format)
		assert.Contains(t, string(out), "beat", format)
	}

	_, err := cfg.Dump(codec.TypeEnvVar)
	require.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]codec.Type{
		"a.yaml": codec.TypeYAML,
		"a.YML":  codec.TypeYAML,
		"a.json": codec.TypeJSON,
		"a.toml": codec.TypeTOML,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := DetectFormat("a")
	require.Error(t, err)
}
