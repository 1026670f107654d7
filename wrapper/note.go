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

package wrapper

import (
	"strconv"
	"strings"
)

// Color is the saber color of a note.
type Color string

// Note colors.
const (
	ColorLeft  Color = "left"
	ColorRight Color = "right"
)

// Direction is the cut direction of a note.
type Direction string

// Cut directions.
const (
	DirectionUp        Direction = "up"
	DirectionDown      Direction = "down"
	DirectionLeft      Direction = "left"
	DirectionRight     Direction = "right"
	DirectionUpLeft    Direction = "upLeft"
	DirectionUpRight   Direction = "upRight"
	DirectionDownLeft  Direction = "downLeft"
	DirectionDownRight Direction = "downRight"
	DirectionAny       Direction = "any"
)

// ColorNote is a note cut with a saber of a given color.
type ColorNote struct {
	BeatNum     float64   `json:"beatNum"`
	ColIndex    float64   `json:"colIndex"`
	RowIndex    float64   `json:"rowIndex"`
	Color       Color     `json:"color" validate:"oneof=left right"`
	Direction   Direction `json:"direction" validate:"oneof=up down left right upLeft upRight downLeft downRight any"`
	AngleOffset float64   `json:"angleOffset"`
}

// ID returns "beatNum/colIndex/rowIndex".
func (n ColorNote) ID() string {
	return gridID(n.BeatNum, n.ColIndex, n.RowIndex)
}

// BombNote is a note that must not be cut.
type BombNote struct {
	BeatNum  float64 `json:"beatNum"`
	ColIndex float64 `json:"colIndex"`
	RowIndex float64 `json:"rowIndex"`
}

// ID returns "beatNum/colIndex/rowIndex".
func (b BombNote) ID() string {
	return gridID(b.BeatNum, b.ColIndex, b.RowIndex)
}

func gridID(beat, col, row float64) string {
	return strings.Join([]string{formatNum(beat), formatNum(col), formatNum(row)}, "/")
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
