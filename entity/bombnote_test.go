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

package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/wrapper"
)

func TestBombNotes_RoundTrip(t *testing.T) {
	t.Parallel()

	b := wrapper.BombNote{BeatNum: 6.5, ColIndex: 2, RowIndex: 1}

	for _, v := range codec.Versions {
		serial, err := BombNotes.Serialize(v, b, nil)
		require.NoError(t, err, v)

		got, err := BombNotes.Deserialize(v, raw(t, serial), nil)
		require.NoError(t, err, v)
		assert.Equal(t, b, got, v)
	}
}

func TestBombNotes_V2Shape(t *testing.T) {
	t.Parallel()

	serial, err := BombNotes.Serialize(codec.V2, wrapper.BombNote{BeatNum: 1, ColIndex: 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, bombNoteV2{Time: 1, LineIndex: 1, Type: bombNoteType}, serial)

	_, err = BombNotes.Deserialize(codec.V2, decodeJSON(t,
		`{"_time": 1, "_lineIndex": 0, "_lineLayer": 0, "_type": 0}`), nil)
	require.ErrorIs(t, err, codec.ErrSchemaValidation)
}

func TestBombNotes_MappingExtensions(t *testing.T) {
	t.Parallel()

	opts := mappingExtensions()

	serial, err := BombNotes.Serialize(codec.V3, wrapper.BombNote{ColIndex: 1.5, RowIndex: 2}, opts)
	require.NoError(t, err)
	assert.Equal(t, bombNoteV3{X: 2500, Y: 2}, serial)

	got, err := BombNotes.Deserialize(codec.V3, raw(t, serial), opts)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got.ColIndex, 1e-9)
}
