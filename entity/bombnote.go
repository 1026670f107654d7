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
	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/wrapper"
)

// bombNoteType is the v1/v2 note type reserved for bombs.
const bombNoteType = 3

type bombNoteV2 struct {
	Time         float64 `json:"_time"`
	LineIndex    float64 `json:"_lineIndex"`
	LineLayer    float64 `json:"_lineLayer"`
	Type         int     `json:"_type"`
	CutDirection int     `json:"_cutDirection"`
}

type bombNoteV3 struct {
	B float64 `json:"b"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type bombNoteDataV4 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func encodeBomb(b wrapper.BombNote, o *codec.Options) (beat, x, y float64) {
	return b.BeatNum + o.EditorOffset(), columns.Serialize(b.ColIndex, o), rows.Serialize(b.RowIndex, o)
}

func decodeBomb(beat, x, y float64, o *codec.Options) (wrapper.BombNote, error) {
	col, err := columns.Deserialize(x, o)
	if err != nil {
		return wrapper.BombNote{}, err
	}
	row, err := rows.Deserialize(y, o)
	if err != nil {
		return wrapper.BombNote{}, err
	}
	return wrapper.BombNote{BeatNum: beat - o.EditorOffset(), ColIndex: col, RowIndex: row}, nil
}

var bombNoteV2Entry = codec.Define(schemas.MustGet("bombnote.v2"),
	func(b wrapper.BombNote, o *codec.Options) (bombNoteV2, error) {
		beat, x, y := encodeBomb(b, o)
		return bombNoteV2{Time: beat, LineIndex: x, LineLayer: y, Type: bombNoteType}, nil
	},
	func(s bombNoteV2, o *codec.Options) (wrapper.BombNote, error) {
		return decodeBomb(s.Time, s.LineIndex, s.LineLayer, o)
	})

// BombNotes is the bomb note codec. Versions 1 and 2 store bombs among the
// color notes with note type 3.
var BombNotes = codec.NewRegistry("BombNote", codec.Table[wrapper.BombNote]{
	V1: bombNoteV2Entry,
	V2: bombNoteV2Entry,
	V3: codec.Define(schemas.MustGet("bombnote.v3"),
		func(b wrapper.BombNote, o *codec.Options) (bombNoteV3, error) {
			beat, x, y := encodeBomb(b, o)
			return bombNoteV3{B: beat, X: x, Y: y}, nil
		},
		func(s bombNoteV3, o *codec.Options) (wrapper.BombNote, error) {
			return decodeBomb(s.B, s.X, s.Y, o)
		}),
	V4: codec.Define(schemas.MustGet("bombnote.v4"),
		func(b wrapper.BombNote, o *codec.Options) (pooled[bombNoteDataV4], error) {
			beat, x, y := encodeBomb(b, o)
			return pooled[bombNoteDataV4]{Object: object{B: beat}, Data: bombNoteDataV4{X: x, Y: y}}, nil
		},
		func(s pooled[bombNoteDataV4], o *codec.Options) (wrapper.BombNote, error) {
			return decodeBomb(s.Object.B, s.Data.X, s.Data.Y, o)
		}),
})
