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
	"rivaas.dev/beatmap/extension"
	"rivaas.dev/beatmap/internal/numeric"
)

// Angle is a cut angle in degrees from down, counter-clockwise.
type Angle = extension.Angle

// Direction is a serial cut direction with its residual offset.
type Direction = extension.Direction

// Vanilla cut direction codes.
const (
	CutUp        = 0
	CutDown      = 1
	CutLeft      = 2
	CutRight     = 3
	CutUpLeft    = 4
	CutUpRight   = 5
	CutDownLeft  = 6
	CutDownRight = 7
	CutAny       = 8
)

const (
	directionalStep = 45
	dotStep         = 90
)

var angleToCut = map[int]int{
	0:   CutDown,
	45:  CutDownRight,
	90:  CutRight,
	135: CutUpRight,
	180: CutUp,
	225: CutUpLeft,
	270: CutLeft,
	315: CutDownLeft,
}

var cutToAngle = map[int]float64{
	CutDown:      0,
	CutDownRight: 45,
	CutRight:     90,
	CutUpRight:   135,
	CutUp:        180,
	CutUpLeft:    225,
	CutLeft:      270,
	CutDownLeft:  315,
}

// AngleCodec converts cut angles to serial directions.
type AngleCodec struct{}

// Quantize splits an angle into the nearest vanilla direction and the
// residual offset. Directional notes snap to 45° steps and dots to 90°
// steps; a residual of exactly half a step rounds toward the next step and
// comes out negative.
func Quantize(a Angle) Direction {
	if a.IsDot {
		base := numeric.Round(a.Degrees/dotStep) * dotStep
		return Direction{Value: CutAny, Offset: a.Degrees - base}
	}

	base := numeric.Round(a.Degrees/directionalStep) * directionalStep
	return Direction{
		Value:  angleToCut[int(numeric.Mod(base, 360))],
		Offset: a.Degrees - base,
	}
}

// Serialize encodes an angle. A non-zero residual is handed to the active
// provider's angle transform when there is one.
func (AngleCodec) Serialize(a Angle, o *Options) Direction {
	d := Quantize(a)
	if t := o.angles(); t != nil && d.Offset != 0 {
		return t.Serialize(a)
	}
	return d
}

// Deserialize decodes a serial direction.
func (AngleCodec) Deserialize(d Direction, o *Options) (Angle, error) {
	if t := o.angles(); t != nil && t.Validate(d) {
		return t.Deserialize(d), nil
	}
	if d.Value == CutAny {
		return Angle{Degrees: d.Offset, IsDot: true}, nil
	}
	if deg, ok := cutToAngle[d.Value]; ok {
		return Angle{Degrees: deg + d.Offset}, nil
	}

	return Angle{}, &InvalidAngleError{Direction: d.Value, Offset: d.Offset}
}
