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
	"embed"
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/validation"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas = validation.MustLoadSchemas(schemaFS, "schemas/*.json")

// checkDocument validates a whole document against the schema id.
func checkDocument(id, label string, raw any) error {
	if err := schemas.MustGet(id).Validate(raw); err != nil {
		return &codec.SchemaValidationError{Label: label, Err: err}
	}
	return nil
}

// Decode parses a JSON document into the generic form the codecs consume.
func Decode(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownFormat, err)
	}
	return raw, nil
}

func serializeAll[W any](r *codec.Registry[W], v codec.Version, items []W, o *codec.Options) ([]any, error) {
	out := make([]any, 0, len(items))
	for i, w := range items {
		s, err := r.Serialize(v, w, o.At(i))
		if err != nil {
			return nil, &EntityError{Kind: r.Kind(), Index: i, Err: err}
		}
		out = append(out, s)
	}
	return out, nil
}

func deserializeAll[W any](r *codec.Registry[W], v codec.Version, items []any, o *codec.Options) ([]W, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]W, 0, len(items))
	for i, raw := range items {
		w, err := r.Deserialize(v, raw, o.At(i))
		if err != nil {
			return nil, &EntityError{Kind: r.Kind(), Index: i, Err: err}
		}
		out = append(out, w)
	}
	return out, nil
}

// pool splits version 4 serial entities into placement objects and a
// deduplicated data pool. Payloads are compared by their JSON encoding, so
// equal payloads share one slot regardless of where they appear.
func pool(serials []any) (objects, data []any, err error) {
	objects = make([]any, 0, len(serials))
	data = make([]any, 0, len(serials))
	slots := make(map[string]int, len(serials))

	for _, s := range serials {
		p, ok := s.(codec.Pooled)
		if !ok {
			return nil, nil, fmt.Errorf("serial %T has no data payload", s)
		}

		key, err := json.Marshal(p.Payload())
		if err != nil {
			return nil, nil, fmt.Errorf("encode payload: %w", err)
		}
		i, ok := slots[string(key)]
		if !ok {
			i = len(data)
			slots[string(key)] = i
			data = append(data, p.Payload())
		}
		objects = append(objects, p.Placement(i))
	}

	return objects, data, nil
}

// unpool pairs each placement object with the data entry it references.
func unpool(label, field string, objects, data []any) ([]any, error) {
	out := make([]any, 0, len(objects))
	for k, obj := range objects {
		m, _ := obj.(map[string]any)
		i, err := cast.ToIntE(m["i"])
		if err != nil || i < 0 || i >= len(data) {
			var verr validation.Error
			verr.Add(fmt.Sprintf("%s.%d.i", field, k), "pool.index",
				fmt.Sprintf("references data entry %v of %d", m["i"], len(data)), nil)
			return nil, &codec.SchemaValidationError{Label: label, Err: &verr}
		}
		out = append(out, map[string]any{"object": obj, "data": data[i]})
	}
	return out, nil
}

// knownTracks drops events on tracks missing from the track table when the
// options ask for it. It returns the kept events and the number dropped.
func knownTracks(items []any, track func(map[string]any) any, o *codec.Options) ([]any, int) {
	if o.UnknownTracks() != codec.UnknownTrackSkip {
		return items, 0
	}

	tracks := o.Tracks()
	kept := make([]any, 0, len(items))
	for _, it := range items {
		m, _ := it.(map[string]any)
		id, err := cast.ToIntE(track(m))
		if _, ok := tracks.Kind(id); err == nil && !ok {
			continue
		}
		kept = append(kept, it)
	}
	return kept, len(items) - len(kept)
}
