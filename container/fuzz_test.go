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

package container

import (
	"encoding/json"
	"testing"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/extension"
)

func fuzzOptions() []*codec.Options {
	return []*codec.Options{
		codec.MustOptions(),
		codec.MustOptions(codec.WithExtensionsProvider(extension.MappingExtensionsName)),
		codec.MustOptions(codec.WithUnknownTracks(codec.UnknownTrackSkip)),
	}
}

// FuzzDeserializeBeatmap feeds arbitrary difficulty and lightshow documents
// through version detection and decoding. Bad input must come back as an
// error; anything that decodes must serialize again without panicking.
func FuzzDeserializeBeatmap(f *testing.F) {
	bm := sampleBeatmap()
	for _, v := range codec.Versions {
		in := bm
		if v == codec.V1 {
			in.Bookmarks = nil
		}
		serial, err := SerializeBeatmap(v, in, nil)
		if err != nil {
			f.Fatalf("serialize %s seed: %v", v, err)
		}
		beatmapJSON, lightshowJSON, err := serial.Encode()
		if err != nil {
			f.Fatalf("encode %s seed: %v", v, err)
		}
		f.Add(beatmapJSON, lightshowJSON)
	}
	f.Add([]byte(`{"version":"4.0.0","colorNotes":[{"b":1,"i":5}],"colorNotesData":[]}`), []byte(`{}`))
	f.Add([]byte(`{"version":"3.3.0","basicBeatmapEvents":[{"b":0,"et":-1,"i":99}]}`), []byte(nil))
	f.Add([]byte(`{"_notes":[{"_time":0,"_lineIndex":1e9,"_lineLayer":-1e9,"_type":3,"_cutDirection":8}]}`), []byte(nil))
	f.Add([]byte(`{"version":"9.0.0"}`), []byte(nil))
	f.Add([]byte(`[]`), []byte(`null`))

	opts := fuzzOptions()

	f.Fuzz(func(t *testing.T, beatmapJSON, lightshowJSON []byte) {
		raw, err := Decode(beatmapJSON)
		if err != nil {
			return
		}
		v, err := DetectBeatmapVersion(raw)
		if err != nil {
			return
		}
		var lightshow any
		if len(lightshowJSON) > 0 {
			if lightshow, err = Decode(lightshowJSON); err != nil {
				lightshow = nil
			}
		}

		for _, o := range opts {
			decoded, err := DeserializeBeatmap(v, raw, lightshow, o)
			if err != nil {
				continue
			}
			if serial, err := SerializeBeatmap(v, decoded.Beatmap, o); err == nil {
				_, _, _ = serial.Encode()
			}
		}
	})
}

// FuzzDeserializeInfo does the same for song info documents.
func FuzzDeserializeInfo(f *testing.F) {
	for _, v := range Infos.Versions() {
		serial, err := Infos.Serialize(v, sampleSong(), nil)
		if err != nil {
			continue
		}
		b, err := json.Marshal(serial)
		if err != nil {
			f.Fatalf("marshal %s seed: %v", v, err)
		}
		f.Add(b)
	}
	f.Add([]byte(`{"_version":"2.1.0","_difficultyBeatmapSets":[{"_difficultyBeatmaps":[{"_difficultyRank":42}]}]}`))
	f.Add([]byte(`{"version":"4.0.0","difficultyBeatmaps":[{"difficulty":"Nope","characteristic":""}]}`))
	f.Add([]byte(`{"difficultyLevels":[{"difficulty":"Expert","jsonPath":""}]}`))
	f.Add([]byte(`{}`))

	opts := fuzzOptions()

	f.Fuzz(func(t *testing.T, data []byte) {
		raw, err := Decode(data)
		if err != nil {
			return
		}
		v, err := DetectInfoVersion(raw)
		if err != nil {
			return
		}
		for _, o := range opts {
			song, err := Infos.Deserialize(v, raw, o)
			if err != nil {
				continue
			}
			_, _ = Infos.Serialize(v, song, o)
		}
	})
}
