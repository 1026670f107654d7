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
	"rivaas.dev/beatmap/internal/numeric"
	"rivaas.dev/beatmap/wrapper"
)

// v1/v2 obstacle types. Values from extendedTypeBase up pack a row and a
// height into the type.
const (
	obstacleTypeFull = 0
	obstacleTypeTop  = 1
	extendedTypeBase = 4001
)

// v3/v4 row and height of the two vanilla shapes.
const (
	fullY, fullH = 0, 5
	topY, topH   = 2, 3
)

// PackObstacleType packs an extended obstacle's row and height into a
// v1/v2 obstacle type.
func PackObstacleType(rowIndex, rowspan float64) int {
	h := numeric.Clamp(numeric.Round(numeric.Normalize(rowspan, 0, 5, 0, 1000)), 0, 4000)
	s := numeric.Clamp(numeric.Round(numeric.Normalize(rowIndex, 0, 2, 100, 400)), 0, 999)
	return int(h*1000 + s + extendedTypeBase)
}

// UnpackObstacleType reverses [PackObstacleType]. Rows come back with two
// decimals and heights with three.
func UnpackObstacleType(t int) (rowIndex, rowspan float64) {
	v := t - extendedTypeBase
	h, s := float64(v/1000), float64(v%1000)
	rowspan = numeric.RoundTo(numeric.Normalize(h, 0, 1000, 0, 5), 3)
	rowIndex = numeric.RoundTo(numeric.Normalize(s, 100, 400, 0, 2), 2)
	return rowIndex, rowspan
}

type obstacleV2 struct {
	Time      float64 `json:"_time"`
	LineIndex float64 `json:"_lineIndex"`
	Type      int     `json:"_type"`
	Duration  float64 `json:"_duration"`
	Width     float64 `json:"_width"`
}

type obstacleV3 struct {
	B float64 `json:"b"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	D float64 `json:"d"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type obstacleDataV4 struct {
	D float64 `json:"d"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Fast obstacles are stored with a negative duration.
func serialDuration(o wrapper.Obstacle) float64 {
	if o.Fast {
		return -o.BeatDuration
	}
	return o.BeatDuration
}

func applyDuration(w *wrapper.Obstacle, d float64) {
	if d < 0 {
		w.Fast = true
		d = -d
	}
	w.BeatDuration = d
}

func decodeObstacleBase(beat, duration, x, width float64, o *codec.Options) (wrapper.Obstacle, error) {
	col, err := lanes.Deserialize(x, o)
	if err != nil {
		return wrapper.Obstacle{}, err
	}
	span, err := widths.Deserialize(width, o)
	if err != nil {
		return wrapper.Obstacle{}, err
	}
	w := wrapper.Obstacle{BeatNum: beat - o.EditorOffset(), ColIndex: col, Colspan: span}
	applyDuration(&w, duration)
	return w, nil
}

// encodeRows returns the v3/v4 row and height of an obstacle.
func encodeRows(w wrapper.Obstacle, o *codec.Options) (y, h float64) {
	switch w.Type {
	case wrapper.ObstacleFull:
		return fullY, fullH
	case wrapper.ObstacleTop:
		return topY, topH
	default:
		return rows.Serialize(*w.RowIndex, o), heights.Serialize(*w.Rowspan, o)
	}
}

// decodeRows maps a v3/v4 row and height back to a shape. The two vanilla
// shapes are recognized by value; everything else is extended.
func decodeRows(w *wrapper.Obstacle, y, h float64, o *codec.Options) error {
	switch {
	case y == fullY && h == fullH:
		w.Type = wrapper.ObstacleFull
		return nil
	case y == topY && h == topH:
		w.Type = wrapper.ObstacleTop
		return nil
	}

	row, err := rows.Deserialize(y, o)
	if err != nil {
		return err
	}
	span, err := heights.Deserialize(h, o)
	if err != nil {
		return err
	}
	w.Type = wrapper.ObstacleExtended
	w.RowIndex, w.Rowspan = &row, &span
	return nil
}

func encodeObstacleV3(w wrapper.Obstacle, o *codec.Options) (obstacleV3, error) {
	if err := check("Obstacle", w); err != nil {
		return obstacleV3{}, err
	}
	y, h := encodeRows(w, o)
	return obstacleV3{
		B: w.BeatNum + o.EditorOffset(),
		X: lanes.Serialize(w.ColIndex, o),
		Y: y,
		D: serialDuration(w),
		W: widths.Serialize(w.Colspan, o),
		H: h,
	}, nil
}

func decodeObstacleV3(s obstacleV3, o *codec.Options) (wrapper.Obstacle, error) {
	w, err := decodeObstacleBase(s.B, s.D, s.X, s.W, o)
	if err != nil {
		return wrapper.Obstacle{}, err
	}
	if err := decodeRows(&w, s.Y, s.H, o); err != nil {
		return wrapper.Obstacle{}, err
	}
	return w, nil
}

var obstacleV2Entry = codec.Define(schemas.MustGet("obstacle.v2"),
	func(w wrapper.Obstacle, o *codec.Options) (obstacleV2, error) {
		if err := check("Obstacle", w); err != nil {
			return obstacleV2{}, err
		}
		t := obstacleTypeFull
		switch w.Type {
		case wrapper.ObstacleTop:
			t = obstacleTypeTop
		case wrapper.ObstacleExtended:
			t = PackObstacleType(*w.RowIndex, *w.Rowspan)
		}
		return obstacleV2{
			Time:      w.BeatNum + o.EditorOffset(),
			LineIndex: lanes.Serialize(w.ColIndex, o),
			Type:      t,
			Duration:  serialDuration(w),
			Width:     widths.Serialize(w.Colspan, o),
		}, nil
	},
	func(s obstacleV2, o *codec.Options) (wrapper.Obstacle, error) {
		w, err := decodeObstacleBase(s.Time, s.Duration, s.LineIndex, s.Width, o)
		if err != nil {
			return wrapper.Obstacle{}, err
		}
		switch {
		case s.Type == obstacleTypeFull:
			w.Type = wrapper.ObstacleFull
		case s.Type == obstacleTypeTop:
			w.Type = wrapper.ObstacleTop
		default:
			row, span := UnpackObstacleType(s.Type)
			w.Type = wrapper.ObstacleExtended
			w.RowIndex, w.Rowspan = &row, &span
		}
		return w, nil
	})

// Obstacles is the obstacle codec. Versions 3 and 4 have no shape field:
// a full obstacle is written as row 0 height 5 and a top obstacle as row 2
// height 3, and those pairs read back as full and top.
var Obstacles = codec.NewRegistry("Obstacle", codec.Table[wrapper.Obstacle]{
	V1: obstacleV2Entry,
	V2: obstacleV2Entry,
	V3: codec.Define(schemas.MustGet("obstacle.v3"), encodeObstacleV3, decodeObstacleV3),
	V4: codec.Define(schemas.MustGet("obstacle.v4"),
		func(w wrapper.Obstacle, o *codec.Options) (pooled[obstacleDataV4], error) {
			s, err := encodeObstacleV3(w, o)
			if err != nil {
				return pooled[obstacleDataV4]{}, err
			}
			return pooled[obstacleDataV4]{
				Object: object{B: s.B},
				Data:   obstacleDataV4{D: s.D, X: s.X, Y: s.Y, W: s.W, H: s.H},
			}, nil
		},
		func(s pooled[obstacleDataV4], o *codec.Options) (wrapper.Obstacle, error) {
			return decodeObstacleV3(obstacleV3{
				B: s.Object.B, X: s.Data.X, Y: s.Data.Y, D: s.Data.D, W: s.Data.W, H: s.Data.H,
			}, o)
		}),
})
