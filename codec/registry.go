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

	"github.com/go-viper/mapstructure/v2"

	"rivaas.dev/beatmap/validation"
)

// Entry is the codec of one entity kind at one format version.
type Entry[W any] struct {
	schema      *validation.Schema
	serialize   func(W, *Options) (any, error)
	deserialize func(any, *Options) (W, error)
}

// Define builds an [Entry] from a schema and a typed serializer pair. The
// serial type S is decoded from the raw document with its json tags once the
// schema has accepted it.
func Define[W, S any](schema *validation.Schema, ser func(W, *Options) (S, error), de func(S, *Options) (W, error)) *Entry[W] {
	return &Entry[W]{
		schema: schema,
		serialize: func(w W, o *Options) (any, error) {
			return ser(w, o)
		},
		deserialize: func(raw any, o *Options) (W, error) {
			var s S
			if err := DecodeSerial(raw, &s); err != nil {
				var zero W
				return zero, err
			}
			return de(s, o)
		},
	}
}

// DecodeSerial copies a decoded JSON value into a serial struct using its
// json tags.
func DecodeSerial(raw, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Squash:  true,
		Result:  out,
	})
	if err != nil {
		return fmt.Errorf("create serial decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("decode serial: %w", err)
	}
	return nil
}

// Table holds the entry of each version. A nil entry marks the version as
// unsupported for the kind.
type Table[W any] struct {
	V1, V2, V3, V4 *Entry[W]
}

// Registry publishes the codecs of one entity kind across versions.
type Registry[W any] struct {
	kind    string
	entries Table[W]
}

// NewRegistry creates a registry for kind.
func NewRegistry[W any](kind string, entries Table[W]) *Registry[W] {
	return &Registry[W]{kind: kind, entries: entries}
}

// Kind returns the entity kind name, e.g. "ColorNote".
func (r *Registry[W]) Kind() string {
	return r.kind
}

// Label returns "Kind/vN".
func (r *Registry[W]) Label(v Version) string {
	return r.kind + "/" + v.String()
}

func (r *Registry[W]) entry(v Version) (*Entry[W], error) {
	var e *Entry[W]
	switch v {
	case V1:
		e = r.entries.V1
	case V2:
		e = r.entries.V2
	case V3:
		e = r.entries.V3
	case V4:
		e = r.entries.V4
	}
	if e == nil {
		return nil, &UnsupportedVersionError{Kind: r.kind, Version: v}
	}
	return e, nil
}

// Supports reports whether the kind has a codec at version v.
func (r *Registry[W]) Supports(v Version) bool {
	_, err := r.entry(v)
	return err == nil
}

// Versions lists the supported versions in ascending order.
func (r *Registry[W]) Versions() []Version {
	out := make([]Version, 0, len(Versions))
	for _, v := range Versions {
		if r.Supports(v) {
			out = append(out, v)
		}
	}
	return out
}

// Serialize encodes w for version v.
func (r *Registry[W]) Serialize(v Version, w W, o *Options) (any, error) {
	e, err := r.entry(v)
	if err != nil {
		return nil, err
	}
	return e.serialize(w, o)
}

// Validate checks raw against the version's schema without decoding it.
func (r *Registry[W]) Validate(v Version, raw any) error {
	e, err := r.entry(v)
	if err != nil {
		return err
	}
	if err := e.schema.Validate(raw); err != nil {
		return &SchemaValidationError{Label: r.Label(v), Err: err}
	}
	return nil
}

// Deserialize validates raw against the version's schema and decodes it.
func (r *Registry[W]) Deserialize(v Version, raw any, o *Options) (W, error) {
	var zero W

	e, err := r.entry(v)
	if err != nil {
		return zero, err
	}
	if err := e.schema.Validate(raw); err != nil {
		return zero, &SchemaValidationError{Label: r.Label(v), Err: err}
	}

	return e.deserialize(raw, o)
}

// Pooled is implemented by version 4 serial forms, which split an entity
// into a placement object and a data payload stored in a shared pool.
type Pooled interface {
	// Payload returns the value stored in the data pool.
	Payload() any
	// Placement returns the object entry referencing pool slot i.
	Placement(i int) any
}
