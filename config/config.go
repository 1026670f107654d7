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

package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"rivaas.dev/beatmap/config/codec"
	"rivaas.dev/beatmap/config/source"
)

// Source produces one layer of configuration. Later sources override
// earlier ones key by key.
type Source interface {
	Load(ctx context.Context) (map[string]any, error)
}

// Validator is implemented by bound structs that check themselves after
// defaults are applied.
type Validator interface {
	Validate() error
}

// Option configures a [Config].
type Option func(c *Config) error

// Config merges layered sources into one map and optionally binds it to a
// struct. It is safe for concurrent use.
type Config struct {
	mu      sync.RWMutex
	values  map[string]any
	sources []Source
	binding any
	tagName string
	schema  *jsonschema.Schema
}

// formatByExt maps lower-cased file extensions to codecs.
var formatByExt = map[string]codec.Type{
	".json": codec.TypeJSON,
	".toml": codec.TypeTOML,
	".yml":  codec.TypeYAML,
	".yaml": codec.TypeYAML,
}

// DetectFormat maps a file extension to its codec type.
func DetectFormat(path string) (codec.Type, error) {
	ext := filepath.Ext(path)
	format, ok := formatByExt[strings.ToLower(ext)]
	if !ok {
		return "", fmt.Errorf("unknown settings file extension %q (want .yaml, .yml, .json or .toml)", ext)
	}
	return format, nil
}

// WithSource adds a custom source.
func WithSource(s Source) Option {
	return func(c *Config) error {
		if s == nil {
			return errors.New("nil source")
		}
		c.sources = append(c.sources, s)
		return nil
	}
}

// WithFile loads path, choosing the codec from its extension. ${VAR}
// references in the path are expanded.
func WithFile(path string) Option {
	return fileOption(path, "", false)
}

// WithOptionalFile is like [WithFile] but a missing file is skipped.
func WithOptionalFile(path string) Option {
	return fileOption(path, "", true)
}

// WithFileAs loads path with an explicit codec.
func WithFileAs(path string, format codec.Type) Option {
	return fileOption(path, format, false)
}

// fileOption adds a file source; an empty format is detected from path.
func fileOption(path string, format codec.Type, optional bool) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)
		if format == "" {
			detected, err := DetectFormat(path)
			if err != nil {
				return NewError(path, "format", err)
			}
			format = detected
		}
		dec, err := codec.GetDecoder(format)
		if err != nil {
			return NewError(path, "decoder", err)
		}
		if optional {
			c.sources = append(c.sources, source.NewOptionalFile(path, dec))
		} else {
			c.sources = append(c.sources, source.NewFile(path, dec))
		}
		return nil
	}
}

// WithContent decodes an in-memory document.
func WithContent(data []byte, format codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.GetDecoder(format)
		if err != nil {
			return NewError("content", "decoder", err)
		}
		c.sources = append(c.sources, source.NewFileContent(data, dec))
		return nil
	}
}

// WithEnv loads variables starting with prefix; see [source.Env].
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, source.NewEnv(prefix))
		return nil
	}
}

// WithValues adds a fixed layer, for example command-line flags. Dotted
// keys are expanded into nested maps.
func WithValues(values map[string]any) Option {
	return func(c *Config) error {
		m := map[string]any{}
		for k, v := range values {
			parts := strings.Split(k, ".")
			current := m
			for _, p := range parts[:len(parts)-1] {
				next, ok := current[p].(map[string]any)
				if !ok {
					next = map[string]any{}
					current[p] = next
				}
				current = next
			}
			current[parts[len(parts)-1]] = v
		}
		c.sources = append(c.sources, source.Map(m))
		return nil
	}
}

// WithBinding decodes the merged map into v, a pointer to a struct, on
// every Load.
func WithBinding(v any) Option {
	return func(c *Config) error {
		if v == nil || reflect.TypeOf(v).Kind() != reflect.Pointer {
			return fmt.Errorf("binding target %T is not a pointer", v)
		}
		c.binding = v
		return nil
	}
}

// WithTag sets the struct tag used for binding (default "config").
func WithTag(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return errors.New("empty binding tag")
		}
		c.tagName = name
		return nil
	}
}

// WithJSONSchema validates the merged map against schema before binding.
func WithJSONSchema(schema []byte) Option {
	return func(c *Config) error {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return NewError("json-schema", "parse", err)
		}
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource("config.schema.json", doc); err != nil {
			return NewError("json-schema", "add", err)
		}
		if c.schema, err = compiler.Compile("config.schema.json"); err != nil {
			return NewError("json-schema", "compile", err)
		}
		return nil
	}
}

// New applies the options. Option errors are joined and returned together
// with the partially built Config.
func New(options ...Option) (*Config, error) {
	c := &Config{values: map[string]any{}, tagName: "config"}
	var errs error
	for _, opt := range options {
		if opt == nil {
			continue
		}
		errs = errors.Join(errs, opt(c))
	}
	return c, errs
}

// MustNew is like [New] but panics on error.
func MustNew(options ...Option) *Config {
	c, err := New(options...)
	if err != nil {
		panic("config: " + err.Error())
	}
	return c
}

// Load reads every source in order, merges them, validates the result and
// binds it. The stored values change only when all of that succeeds.
func (c *Config) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context cannot be nil")
	}

	merged := map[string]any{}
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		layer, err := src.Load(ctx)
		if err != nil {
			return NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if err = mergo.Map(&merged, normalizeKeys(layer), mergo.WithOverride); err != nil {
			return NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	if c.schema != nil {
		if err := c.schema.Validate(toSchemaValues(merged)); err != nil {
			return NewError("json-schema", "validate", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.binding != nil {
		// bind into a fresh value first so a failure leaves the target intact
		fresh := reflect.New(reflect.TypeOf(c.binding).Elem())
		if err := c.bind(merged, fresh.Interface()); err != nil {
			return err
		}
		reflect.ValueOf(c.binding).Elem().Set(fresh.Elem())
	}
	c.values = merged
	return nil
}

func (c *Config) bind(values map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          c.tagName,
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	})
	if err != nil {
		return NewError("binding", "create-decoder", err)
	}
	if err = decoder.Decode(values); err != nil {
		return NewError("binding", "decode", err)
	}
	if err = applyDefaults(reflect.ValueOf(target).Elem()); err != nil {
		return NewError("binding", "defaults", err)
	}
	if v, ok := target.(Validator); ok {
		if err = v.Validate(); err != nil {
			return NewError("binding", "validate", err)
		}
	}
	return nil
}

// Values returns a copy of the merged map.
func (c *Config) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Get returns the value at a dot separated, case-insensitive path, or nil.
func (c *Config) Get(path string) any {
	if c == nil || path == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	path = strings.ToLower(path)
	if v, ok := c.values[path]; ok {
		return v
	}
	current := c.values
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		v, ok := current[seg]
		if !ok {
			return nil
		}
		if i == len(segments)-1 {
			return v
		}
		if current, ok = v.(map[string]any); !ok {
			return nil
		}
	}
	return nil
}

// String returns the value at path as a string.
func (c *Config) String(path string) string { return cast.ToString(c.Get(path)) }

// Int returns the value at path as an int.
func (c *Config) Int(path string) int { return cast.ToInt(c.Get(path)) }

// Float64 returns the value at path as a float64.
func (c *Config) Float64(path string) float64 { return cast.ToFloat64(c.Get(path)) }

// Bool returns the value at path as a bool.
func (c *Config) Bool(path string) bool { return cast.ToBool(c.Get(path)) }

// Duration returns the value at path as a duration.
func (c *Config) Duration(path string) time.Duration { return cast.ToDuration(c.Get(path)) }

// StringOr returns the value at path, or def when it is unset.
func (c *Config) StringOr(path, def string) string {
	if v := c.Get(path); v != nil {
		return cast.ToString(v)
	}
	return def
}

// Dump encodes the merged map in the given format.
func (c *Config) Dump(format codec.Type) ([]byte, error) {
	enc, err := codec.GetEncoder(format)
	if err != nil {
		return nil, NewError("dump", "get-encoder", err)
	}
	out, err := enc.Encode(c.Values())
	if err != nil {
		return nil, NewError("dump", "encode", err)
	}
	return out, nil
}

// normalizeKeys lowercases keys at every level so sources in different
// casing merge onto the same entries.
func normalizeKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeKeys(nested)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// toSchemaValues converts the integer types produced by YAML, TOML and the
// environment codec into the float64 form the schema validator expects.
func toSchemaValues(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = toSchemaValues(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = toSchemaValues(val)
		}
		return out
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(t)
	default:
		return v
	}
}
