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

// Angle is a cut angle in degrees, measured counter-clockwise from the
// downward direction. IsDot marks a note that can be cut from any direction.
type Angle struct {
	Degrees float64
	IsDot   bool
}

// Direction is the on-disk form of an [Angle]: a cut-direction code plus a
// residual offset in degrees.
type Direction struct {
	Value  int
	Offset float64
}

// CoordinateTransform encodes grid coordinates that fall outside the vanilla
// integer lanes.
type CoordinateTransform interface {
	// Validate reports whether serial is in the provider's encoding range.
	Validate(serial float64) bool
	// Serialize encodes a wrapper coordinate.
	Serialize(value float64) float64
	// Deserialize decodes a serial value accepted by Validate.
	Deserialize(serial float64) float64
}

// AngleTransform encodes cut angles that are not multiples of the vanilla
// step.
type AngleTransform interface {
	// Validate reports whether d is in the provider's encoding range.
	Validate(d Direction) bool
	// Serialize encodes an angle.
	Serialize(a Angle) Direction
	// Deserialize decodes a direction accepted by Validate.
	Deserialize(d Direction) Angle
}

// Provider is a named bundle of extension transforms. Either transform may
// be nil when the provider does not extend that value.
type Provider interface {
	Name() string
	Coordinates() CoordinateTransform
	Angles() AngleTransform
}
