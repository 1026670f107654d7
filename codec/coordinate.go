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

import "rivaas.dev/beatmap/internal/numeric"

// CoordinateCodec converts a grid coordinate between the wrapper's
// continuous value and the serial form.
//
// Without an extension provider, Serialize clamps into [min, max] and rounds
// to the nearest integer. With a provider, vanilla in-range integers pass
// through unchanged and everything else is delegated to the provider.
type CoordinateCodec struct {
	min, max float64
	bounded  bool
}

// NewCoordinateCodec creates a codec for the closed range [min, max].
func NewCoordinateCodec(min, max float64) CoordinateCodec {
	return CoordinateCodec{min: min, max: max, bounded: true}
}

// NewUnboundedCoordinateCodec creates a codec that only rounds.
func NewUnboundedCoordinateCodec() CoordinateCodec {
	return CoordinateCodec{}
}

func (c CoordinateCodec) inRange(v float64) bool {
	return !c.bounded || numeric.InRange(v, c.min, c.max)
}

func (c CoordinateCodec) vanilla(v float64) bool {
	return numeric.IsInteger(v) && c.inRange(v)
}

// Serialize encodes a wrapper coordinate.
func (c CoordinateCodec) Serialize(value float64, o *Options) float64 {
	if t := o.coordinates(); t != nil {
		if c.vanilla(value) {
			return value
		}
		return t.Serialize(value)
	}

	if c.bounded {
		value = numeric.Clamp(value, c.min, c.max)
	}
	return numeric.Round(value)
}

// Deserialize decodes a serial coordinate. The provider is consulted first;
// otherwise only vanilla in-range integers are accepted.
func (c CoordinateCodec) Deserialize(serial float64, o *Options) (float64, error) {
	if t := o.coordinates(); t != nil && t.Validate(serial) {
		return t.Deserialize(serial), nil
	}
	if c.vanilla(serial) {
		return serial, nil
	}

	return 0, &InvalidCoordinateError{Value: serial, Min: c.min, Max: c.max, Bounded: c.bounded}
}
