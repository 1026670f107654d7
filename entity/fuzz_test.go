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

//go:build !integration

package entity

import (
	"encoding/json"
	"testing"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/wrapper"
)

// fuzzDeserialize seeds f with the serial form of every sample in every
// supported version, then feeds arbitrary JSON to each version's
// deserializer. Decoding may fail; it must not panic, and whatever decodes
// must serialize again without panicking.
func fuzzDeserialize[W any](f *testing.F, r *codec.Registry[W], samples ...W) {
	f.Helper()

	for _, v := range r.Versions() {
		for _, s := range samples {
			serial, err := r.Serialize(v, s, nil)
			if err != nil {
				continue
			}
			b, err := json.Marshal(serial)
			if err != nil {
				f.Fatalf("marshal %s seed: %v", r.Label(v), err)
			}
			f.Add(b)
		}
	}
	f.Add([]byte(`{}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`[1, 2]`))
	f.Add([]byte(`{"b": -1e308, "x": 1e308, "y": -4, "c": 7, "d": 99, "i": -1}`))
	f.Add([]byte(`{"_time": 1, "_lineIndex": -2000, "_lineLayer": 5000, "_type": 99999, "_cutDirection": 1500}`))

	opts := []*codec.Options{
		codec.MustOptions(),
		mappingExtensions(),
		codec.MustOptions(codec.WithUnknownTracks(codec.UnknownTrackSkip)),
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return
		}
		for _, v := range r.Versions() {
			for _, o := range opts {
				w, err := r.Deserialize(v, doc, o)
				if err != nil {
					continue
				}
				_, _ = r.Serialize(v, w, o)
			}
		}
	})
}

func FuzzColorNotesDeserialize(f *testing.F) {
	fuzzDeserialize(f, ColorNotes,
		wrapper.ColorNote{BeatNum: 1, ColIndex: 2, RowIndex: 1, Color: wrapper.ColorLeft, Direction: wrapper.DirectionDownRight},
		wrapper.ColorNote{BeatNum: 3, Color: wrapper.ColorRight, Direction: wrapper.DirectionLeft, AngleOffset: 15},
	)
}

func FuzzBombNotesDeserialize(f *testing.F) {
	fuzzDeserialize(f, BombNotes, wrapper.BombNote{BeatNum: 2, ColIndex: 3, RowIndex: 2})
}

func FuzzObstaclesDeserialize(f *testing.F) {
	fuzzDeserialize(f, Obstacles,
		wrapper.Obstacle{BeatNum: 4, BeatDuration: 2, ColIndex: 0, Colspan: 2, Type: wrapper.ObstacleFull},
		wrapper.Obstacle{BeatNum: 5, BeatDuration: 1, ColIndex: 1, Colspan: 1, Type: wrapper.ObstacleTop},
	)
}

func FuzzBasicEventsDeserialize(f *testing.F) {
	fuzzDeserialize(f, BasicEvents,
		wrapper.BasicEvent{TrackID: 1, BeatNum: 2, Type: wrapper.EventOn, ColorType: wrapper.LightPrimary},
		wrapper.BasicEvent{TrackID: 12, BeatNum: 3, Type: wrapper.EventValue, LaserSpeed: ptr(4)},
	)
}

func FuzzBookmarksDeserialize(f *testing.F) {
	fuzzDeserialize(f, Bookmarks, wrapper.Bookmark{Time: 8, Name: "Verse", Color: "#42a5f5"})
}
