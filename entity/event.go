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

// Light values pack a color and an effect: value = 4*color + effect + 1.
// Zero turns the light off.
const (
	lightOff      = 0
	effectsPerHue = 4
	maxLightValue = 12
)

var lightHues = map[wrapper.LightColor]int{
	wrapper.LightSecondary: 0,
	wrapper.LightPrimary:   1,
	wrapper.LightWhite:     2,
}

var lightHueNames = map[int]wrapper.LightColor{
	0: wrapper.LightSecondary,
	1: wrapper.LightPrimary,
	2: wrapper.LightWhite,
}

var lightEffects = map[wrapper.EventType]int{
	wrapper.EventOn:         0,
	wrapper.EventFlash:      1,
	wrapper.EventFade:       2,
	wrapper.EventTransition: 3,
}

var lightEffectNames = map[int]wrapper.EventType{
	0: wrapper.EventOn,
	1: wrapper.EventFlash,
	2: wrapper.EventFade,
	3: wrapper.EventTransition,
}

type eventV2 struct {
	Time       float64  `json:"_time"`
	Type       int      `json:"_type"`
	Value      int      `json:"_value"`
	FloatValue *float64 `json:"_floatValue,omitempty"`
}

type eventV3 struct {
	B  float64 `json:"b"`
	ET int     `json:"et"`
	I  int     `json:"i"`
	F  float64 `json:"f"`
}

type eventDataV4 struct {
	T int     `json:"t"`
	I int     `json:"i"`
	F float64 `json:"f"`
}

func trackKind(track int, o *codec.Options) (codec.TrackKind, error) {
	kind, ok := o.Tracks().Kind(track)
	if !ok {
		return 0, &codec.UnknownTrackError{Track: track}
	}
	return kind, nil
}

// EventValue computes the serial value and float value of an event.
func EventValue(e wrapper.BasicEvent, o *codec.Options) (value int, floatValue float64, err error) {
	if err := check("BasicEvent", e); err != nil {
		return 0, 0, err
	}
	kind, err := trackKind(e.TrackID, o)
	if err != nil {
		return 0, 0, err
	}

	unrecognized := &codec.UnrecognizedEventEffectError{Track: e.TrackID, Kind: kind, Effect: string(e.Type)}

	switch kind {
	case codec.TrackLight:
		if e.Type == wrapper.EventOff {
			return lightOff, 1, nil
		}
		effect, okEffect := lightEffects[e.Type]
		hue, okHue := lightHues[e.ColorType]
		if !okEffect || !okHue {
			return 0, 0, unrecognized
		}
		return effectsPerHue*hue + effect + 1, 1, nil
	case codec.TrackTrigger:
		if e.Type != wrapper.EventTrigger {
			return 0, 0, unrecognized
		}
		return 0, 0, nil
	default:
		if e.Type != wrapper.EventValue {
			return 0, 0, unrecognized
		}
		return *e.LaserSpeed, 0, nil
	}
}

// EventFromValue rebuilds a wrapper event from its track, beat and value.
func EventFromValue(track int, beat float64, value int, o *codec.Options) (wrapper.BasicEvent, error) {
	kind, err := trackKind(track, o)
	if err != nil {
		return wrapper.BasicEvent{}, err
	}

	e := wrapper.BasicEvent{TrackID: track, BeatNum: beat - o.EditorOffset()}
	switch kind {
	case codec.TrackLight:
		if value == lightOff {
			e.Type = wrapper.EventOff
			return e, nil
		}
		if value < 1 || value > maxLightValue {
			return wrapper.BasicEvent{}, &codec.UnrecognizedEventEffectError{Track: track, Kind: kind, Value: float64(value)}
		}
		e.Type = lightEffectNames[(value-1)%effectsPerHue]
		e.ColorType = lightHueNames[(value-1)/effectsPerHue]
	case codec.TrackTrigger:
		e.Type = wrapper.EventTrigger
	default:
		speed := value
		e.Type = wrapper.EventValue
		e.LaserSpeed = &speed
	}
	return e, nil
}

func encodeEventV2(withFloat bool) func(wrapper.BasicEvent, *codec.Options) (eventV2, error) {
	return func(e wrapper.BasicEvent, o *codec.Options) (eventV2, error) {
		value, f, err := EventValue(e, o)
		if err != nil {
			return eventV2{}, err
		}
		s := eventV2{Time: e.BeatNum + o.EditorOffset(), Type: e.TrackID, Value: value}
		if withFloat {
			s.FloatValue = &f
		}
		return s, nil
	}
}

func decodeEventV2(s eventV2, o *codec.Options) (wrapper.BasicEvent, error) {
	return EventFromValue(s.Type, s.Time, s.Value, o)
}

// BasicEvents is the basic event codec. The track table in the options
// decides how each track's value is read.
var BasicEvents = codec.NewRegistry("BasicEvent", codec.Table[wrapper.BasicEvent]{
	V1: codec.Define(schemas.MustGet("event.v2"), encodeEventV2(false), decodeEventV2),
	V2: codec.Define(schemas.MustGet("event.v2"), encodeEventV2(true), decodeEventV2),
	V3: codec.Define(schemas.MustGet("event.v3"),
		func(e wrapper.BasicEvent, o *codec.Options) (eventV3, error) {
			value, f, err := EventValue(e, o)
			if err != nil {
				return eventV3{}, err
			}
			return eventV3{B: e.BeatNum + o.EditorOffset(), ET: e.TrackID, I: value, F: f}, nil
		},
		func(s eventV3, o *codec.Options) (wrapper.BasicEvent, error) {
			return EventFromValue(s.ET, s.B, s.I, o)
		}),
	V4: codec.Define(schemas.MustGet("event.v4"),
		func(e wrapper.BasicEvent, o *codec.Options) (pooledEvent, error) {
			value, f, err := EventValue(e, o)
			if err != nil {
				return pooledEvent{}, err
			}
			return pooledEvent{
				Object: eventObject{B: e.BeatNum + o.EditorOffset()},
				Data:   eventDataV4{T: e.TrackID, I: value, F: f},
			}, nil
		},
		func(s pooledEvent, o *codec.Options) (wrapper.BasicEvent, error) {
			return EventFromValue(s.Data.T, s.Object.B, s.Data.I, o)
		}),
})
