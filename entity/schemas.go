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

package entity

import (
	"embed"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/validation"
	"rivaas.dev/beatmap/wrapper"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas = validation.MustLoadSchemas(schemaFS, "schemas/*.json")

// Grid and angle codecs shared by the entity kinds.
var (
	columns = codec.NewCoordinateCodec(0, 3)
	rows    = codec.NewCoordinateCodec(0, 2)
	heights = codec.NewCoordinateCodec(1, 5)
	widths  = codec.NewUnboundedCoordinateCodec()
	lanes   = codec.NewUnboundedCoordinateCodec()
	angles  codec.AngleCodec
)

// check validates a wrapper entity before it is serialized.
func check(kind string, v any) error {
	if err := wrapper.Validate(v); err != nil {
		return &codec.InvalidEntityError{Kind: kind, Err: err}
	}
	return nil
}

// object is the version 4 placement of a note, bomb or obstacle.
type object struct {
	B float64 `json:"b"`
	R int     `json:"r"`
	I int     `json:"i"`
}

// eventObject is the version 4 placement of a basic event.
type eventObject struct {
	B float64 `json:"b"`
	I int     `json:"i"`
}

// pooled pairs a version 4 placement with its data payload.
type pooled[D any] struct {
	Object object `json:"object"`
	Data   D      `json:"data"`
}

func (p pooled[D]) Payload() any { return p.Data }

func (p pooled[D]) Placement(i int) any {
	o := p.Object
	o.I = i
	return o
}

type pooledEvent struct {
	Object eventObject `json:"object"`
	Data   eventDataV4 `json:"data"`
}

func (p pooledEvent) Payload() any { return p.Data }

func (p pooledEvent) Placement(i int) any {
	o := p.Object
	o.I = i
	return o
}

var (
	_ codec.Pooled = pooled[colorNoteDataV4]{}
	_ codec.Pooled = pooledEvent{}
)
