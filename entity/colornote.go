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

var noteColors = map[wrapper.Color]int{
	wrapper.ColorLeft:  0,
	wrapper.ColorRight: 1,
}

var noteColorNames = map[int]wrapper.Color{
	0: wrapper.ColorLeft,
	1: wrapper.ColorRight,
}

var directionDegrees = map[wrapper.Direction]float64{
	wrapper.DirectionDown:      0,
	wrapper.DirectionDownRight: 45,
	wrapper.DirectionRight:     90,
	wrapper.DirectionUpRight:   135,
	wrapper.DirectionUp:        180,
	wrapper.DirectionUpLeft:    225,
	wrapper.DirectionLeft:      270,
	wrapper.DirectionDownLeft:  315,
	wrapper.DirectionAny:       0,
}

var cutDirections = map[int]wrapper.Direction{
	codec.CutUp:        wrapper.DirectionUp,
	codec.CutDown:      wrapper.DirectionDown,
	codec.CutLeft:      wrapper.DirectionLeft,
	codec.CutRight:     wrapper.DirectionRight,
	codec.CutUpLeft:    wrapper.DirectionUpLeft,
	codec.CutUpRight:   wrapper.DirectionUpRight,
	codec.CutDownLeft:  wrapper.DirectionDownLeft,
	codec.CutDownRight: wrapper.DirectionDownRight,
	codec.CutAny:       wrapper.DirectionAny,
}

// NoteAngle returns the absolute cut angle of a note.
func NoteAngle(n wrapper.ColorNote) codec.Angle {
	return codec.Angle{
		Degrees: directionDegrees[n.Direction] + n.AngleOffset,
		IsDot:   n.Direction == wrapper.DirectionAny,
	}
}

// DirectionOf splits an angle into a named direction and its offset.
func DirectionOf(a codec.Angle) (wrapper.Direction, float64) {
	d := codec.Quantize(a)
	return cutDirections[d.Value], d.Offset
}

type colorNoteV2 struct {
	Time         float64 `json:"_time"`
	LineIndex    float64 `json:"_lineIndex"`
	LineLayer    float64 `json:"_lineLayer"`
	Type         int     `json:"_type"`
	CutDirection int     `json:"_cutDirection"`
}

type colorNoteV3 struct {
	B float64 `json:"b"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	C int     `json:"c"`
	D int     `json:"d"`
	A float64 `json:"a"`
}

type colorNoteDataV4 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	C int     `json:"c"`
	D int     `json:"d"`
	A float64 `json:"a"`
}

// colorNoteFields is the version-independent serial content of a color note.
type colorNoteFields struct {
	beat, x, y float64
	color      int
	dir        codec.Direction
}

func encodeColorNote(n wrapper.ColorNote, o *codec.Options) (colorNoteFields, error) {
	if err := check("ColorNote", n); err != nil {
		return colorNoteFields{}, err
	}
	return colorNoteFields{
		beat:  n.BeatNum + o.EditorOffset(),
		x:     columns.Serialize(n.ColIndex, o),
		y:     rows.Serialize(n.RowIndex, o),
		color: noteColors[n.Color],
		dir:   angles.Serialize(NoteAngle(n), o),
	}, nil
}

func decodeColorNote(f colorNoteFields, o *codec.Options) (wrapper.ColorNote, error) {
	col, err := columns.Deserialize(f.x, o)
	if err != nil {
		return wrapper.ColorNote{}, err
	}
	row, err := rows.Deserialize(f.y, o)
	if err != nil {
		return wrapper.ColorNote{}, err
	}
	a, err := angles.Deserialize(f.dir, o)
	if err != nil {
		return wrapper.ColorNote{}, err
	}
	dir, offset := DirectionOf(a)

	return wrapper.ColorNote{
		BeatNum:     f.beat - o.EditorOffset(),
		ColIndex:    col,
		RowIndex:    row,
		Color:       noteColorNames[f.color],
		Direction:   dir,
		AngleOffset: offset,
	}, nil
}

var colorNoteV2Entry = codec.Define(schemas.MustGet("colornote.v2"),
	func(n wrapper.ColorNote, o *codec.Options) (colorNoteV2, error) {
		f, err := encodeColorNote(n, o)
		if err != nil {
			return colorNoteV2{}, err
		}
		return colorNoteV2{
			Time:         f.beat,
			LineIndex:    f.x,
			LineLayer:    f.y,
			Type:         f.color,
			CutDirection: f.dir.Value,
		}, nil
	},
	func(s colorNoteV2, o *codec.Options) (wrapper.ColorNote, error) {
		return decodeColorNote(colorNoteFields{
			beat:  s.Time,
			x:     s.LineIndex,
			y:     s.LineLayer,
			color: s.Type,
			dir:   codec.Direction{Value: s.CutDirection},
		}, o)
	})

// ColorNotes is the color note codec. Versions 1 and 2 have no angle
// offset field, so offsets survive there only through an extension
// provider.
var ColorNotes = codec.NewRegistry("ColorNote", codec.Table[wrapper.ColorNote]{
	V1: colorNoteV2Entry,
	V2: colorNoteV2Entry,
	V3: codec.Define(schemas.MustGet("colornote.v3"),
		func(n wrapper.ColorNote, o *codec.Options) (colorNoteV3, error) {
			f, err := encodeColorNote(n, o)
			if err != nil {
				return colorNoteV3{}, err
			}
			return colorNoteV3{B: f.beat, X: f.x, Y: f.y, C: f.color, D: f.dir.Value, A: f.dir.Offset}, nil
		},
		func(s colorNoteV3, o *codec.Options) (wrapper.ColorNote, error) {
			return decodeColorNote(colorNoteFields{
				beat:  s.B,
				x:     s.X,
				y:     s.Y,
				color: s.C,
				dir:   codec.Direction{Value: s.D, Offset: s.A},
			}, o)
		}),
	V4: codec.Define(schemas.MustGet("colornote.v4"),
		func(n wrapper.ColorNote, o *codec.Options) (pooled[colorNoteDataV4], error) {
			f, err := encodeColorNote(n, o)
			if err != nil {
				return pooled[colorNoteDataV4]{}, err
			}
			return pooled[colorNoteDataV4]{
				Object: object{B: f.beat},
				Data:   colorNoteDataV4{X: f.x, Y: f.y, C: f.color, D: f.dir.Value, A: f.dir.Offset},
			}, nil
		},
		func(s pooled[colorNoteDataV4], o *codec.Options) (wrapper.ColorNote, error) {
			return decodeColorNote(colorNoteFields{
				beat:  s.Object.B,
				x:     s.Data.X,
				y:     s.Data.Y,
				color: s.Data.C,
				dir:   codec.Direction{Value: s.Data.D, Offset: s.Data.A},
			}, o)
		}),
})
