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

package extension

import "rivaas.dev/beatmap/internal/numeric"

// MappingExtensionsName is the registry name of [MappingExtensions].
const MappingExtensionsName = "mapping-extensions"

const (
	precisionOffset = 1000
	directionBase   = 1000
	dotBase         = 2000
	fullTurn        = 360
)

// MappingExtensions is the community precision-placement encoding.
//
// Coordinates are scaled by 1000 and pushed one unit past ±1000, so lane 0
// becomes 1000 and lane -1 becomes -2000. Angles are stored as 1000 plus the
// clockwise degrees from down, or 2000 plus that for dot notes.
type MappingExtensions struct{}

// Name implements [Provider].
func (MappingExtensions) Name() string { return MappingExtensionsName }

// Coordinates implements [Provider].
func (MappingExtensions) Coordinates() CoordinateTransform { return mappingCoordinates{} }

// Angles implements [Provider].
func (MappingExtensions) Angles() AngleTransform { return mappingAngles{} }

type mappingCoordinates struct{}

func (mappingCoordinates) Validate(serial float64) bool {
	return serial >= precisionOffset || serial <= -precisionOffset
}

func (mappingCoordinates) Serialize(value float64) float64 {
	if value < 0 {
		return numeric.Round(value*1000 - precisionOffset)
	}
	return numeric.Round(value*1000 + precisionOffset)
}

func (mappingCoordinates) Deserialize(serial float64) float64 {
	if serial < 0 {
		return numeric.RoundTo((serial+precisionOffset)/1000, 3)
	}
	return numeric.RoundTo((serial-precisionOffset)/1000, 3)
}

type mappingAngles struct{}

func (mappingAngles) Validate(d Direction) bool {
	return (d.Value >= directionBase && d.Value <= directionBase+fullTurn) ||
		(d.Value >= dotBase && d.Value <= dotBase+fullTurn)
}

func (mappingAngles) Serialize(a Angle) Direction {
	base := directionBase
	if a.IsDot {
		base = dotBase
	}
	deg := numeric.Mod(fullTurn-numeric.Round(a.Degrees), fullTurn)

	return Direction{Value: base + int(deg)}
}

func (mappingAngles) Deserialize(d Direction) Angle {
	base, isDot := directionBase, false
	if d.Value >= dotBase {
		base, isDot = dotBase, true
	}
	deg := numeric.Mod(float64(fullTurn-(d.Value-base)), fullTurn)

	return Angle{Degrees: deg, IsDot: isDot}
}
