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

import "fmt"

// EventType is what an event does to its track.
type EventType string

// Event types. On, Off, Flash, Fade and Transition apply to light tracks,
// Trigger to trigger tracks and Value to value tracks.
const (
	EventOn         EventType = "on"
	EventOff        EventType = "off"
	EventFlash      EventType = "flash"
	EventFade       EventType = "fade"
	EventTransition EventType = "transition"
	EventTrigger    EventType = "trigger"
	EventValue      EventType = "value"
)

// LightColor is the color of a lighting effect.
type LightColor string

// Light colors.
const (
	LightPrimary   LightColor = "primary"
	LightSecondary LightColor = "secondary"
	LightWhite     LightColor = "white"
)

// BasicEvent is a lighting or environment event on a track.
type BasicEvent struct {
	TrackID    int        `json:"trackId" validate:"gte=0"`
	BeatNum    float64    `json:"beatNum"`
	Type       EventType  `json:"type" validate:"oneof=on off flash fade transition trigger value"`
	ColorType  LightColor `json:"colorType,omitempty" validate:"omitempty,oneof=primary secondary white"`
	LaserSpeed *int       `json:"laserSpeed,omitempty"`
}

// ID returns "trackId/beatNum".
func (e BasicEvent) ID() string {
	return fmt.Sprintf("%d/%s", e.TrackID, formatNum(e.BeatNum))
}

// IsLightEffect reports whether the type carries a color.
func (t EventType) IsLightEffect() bool {
	switch t {
	case EventOn, EventFlash, EventFade, EventTransition:
		return true
	default:
		return false
	}
}
