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

// TrackKind classifies how an event track interprets its value.
type TrackKind int

const (
	// TrackLight tracks encode a color and an effect in the value.
	TrackLight TrackKind = iota + 1
	// TrackTrigger tracks fire without a payload.
	TrackTrigger
	// TrackValue tracks carry a plain integer such as a laser speed.
	TrackValue
)

func (k TrackKind) String() string {
	switch k {
	case TrackLight:
		return "light"
	case TrackTrigger:
		return "trigger"
	case TrackValue:
		return "value"
	default:
		return "unknown"
	}
}

// TrackTable maps event track ids to their kind.
type TrackTable map[int]TrackKind

// Kind returns the kind of track id.
func (t TrackTable) Kind(track int) (TrackKind, bool) {
	k, ok := t[track]
	return k, ok
}

// DefaultTracks returns the standard environment track layout.
func DefaultTracks() TrackTable {
	return TrackTable{
		0:  TrackLight, // back lasers
		1:  TrackLight, // ring lights
		2:  TrackLight, // left lasers
		3:  TrackLight, // right lasers
		4:  TrackLight, // center lights
		5:  TrackValue, // boost colors
		6:  TrackLight,
		7:  TrackLight,
		8:  TrackTrigger, // ring spin
		9:  TrackTrigger, // ring zoom
		10: TrackLight,
		11: TrackLight,
		12: TrackValue, // left laser speed
		13: TrackValue, // right laser speed
		14: TrackValue, // early rotation
		15: TrackValue, // late rotation
		16: TrackValue,
		17: TrackValue,
		18: TrackValue,
		19: TrackValue,
	}
}
