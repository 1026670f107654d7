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

package container

import (
	"encoding/json"
	"fmt"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/entity"
	"rivaas.dev/beatmap/wrapper"
)

// Version strings written to difficulty files.
const (
	difficultyVersionV1 = "1.5.0"
	difficultyVersionV2 = "2.6.0"
	difficultyVersionV3 = "3.3.0"
	difficultyVersionV4 = "4.0.0"
	beatsPerBar         = 16
)

const beatmapKind = "Beatmap"

// Serial is a serialized difficulty. Lightshow is set for version 4 only.
type Serial struct {
	Version   codec.Version
	Beatmap   any
	Lightshow any
}

// Encode marshals the documents to JSON.
func (s *Serial) Encode() (beatmap, lightshow []byte, err error) {
	beatmap, err = json.Marshal(s.Beatmap)
	if err != nil {
		return nil, nil, fmt.Errorf("encode beatmap: %w", err)
	}
	if s.Lightshow != nil {
		lightshow, err = json.Marshal(s.Lightshow)
		if err != nil {
			return nil, nil, fmt.Errorf("encode lightshow: %w", err)
		}
	}
	return beatmap, lightshow, nil
}

// Decoded is a deserialized difficulty.
type Decoded struct {
	Beatmap wrapper.Beatmap
	// SkippedEvents counts events dropped for being on unknown tracks.
	SkippedEvents int
}

type difficultyV1 struct {
	Version        string  `json:"_version"`
	BeatsPerMinute float64 `json:"_beatsPerMinute,omitempty"`
	BeatsPerBar    int     `json:"_beatsPerBar"`
	NoteJumpSpeed  float64 `json:"_noteJumpSpeed"`
	Shuffle        float64 `json:"_shuffle"`
	ShufflePeriod  float64 `json:"_shufflePeriod"`
	Notes          []any   `json:"_notes"`
	Obstacles      []any   `json:"_obstacles"`
	Events         []any   `json:"_events"`
}

type difficultyV2 struct {
	Version    string        `json:"_version"`
	Notes      []any         `json:"_notes"`
	Obstacles  []any         `json:"_obstacles"`
	Events     []any         `json:"_events"`
	Waypoints  []any         `json:"_waypoints"`
	CustomData *customDataV2 `json:"_customData,omitempty"`
}

type customDataV2 struct {
	Bookmarks []any `json:"_bookmarks"`
}

type difficultyV3 struct {
	Version                           string         `json:"version"`
	BPMEvents                         []any          `json:"bpmEvents"`
	RotationEvents                    []any          `json:"rotationEvents"`
	ColorNotes                        []any          `json:"colorNotes"`
	BombNotes                         []any          `json:"bombNotes"`
	Obstacles                         []any          `json:"obstacles"`
	Sliders                           []any          `json:"sliders"`
	BurstSliders                      []any          `json:"burstSliders"`
	Waypoints                         []any          `json:"waypoints"`
	BasicBeatmapEvents                []any          `json:"basicBeatmapEvents"`
	ColorBoostBeatmapEvents           []any          `json:"colorBoostBeatmapEvents"`
	LightColorEventBoxGroups          []any          `json:"lightColorEventBoxGroups"`
	LightRotationEventBoxGroups       []any          `json:"lightRotationEventBoxGroups"`
	LightTranslationEventBoxGroups    []any          `json:"lightTranslationEventBoxGroups"`
	BasicEventTypesWithKeywords       map[string]any `json:"basicEventTypesWithKeywords"`
	UseNormalEventsAsCompatibleEvents bool           `json:"useNormalEventsAsCompatibleEvents"`
	CustomData                        *customDataV3  `json:"customData,omitempty"`
}

type customDataV3 struct {
	Bookmarks []any `json:"bookmarks"`
}

type difficultyV4 struct {
	Version            string        `json:"version"`
	ColorNotes         []any         `json:"colorNotes"`
	ColorNotesData     []any         `json:"colorNotesData"`
	BombNotes          []any         `json:"bombNotes"`
	BombNotesData      []any         `json:"bombNotesData"`
	Obstacles          []any         `json:"obstacles"`
	ObstaclesData      []any         `json:"obstaclesData"`
	Arcs               []any         `json:"arcs"`
	ArcsData           []any         `json:"arcsData"`
	Chains             []any         `json:"chains"`
	ChainsData         []any         `json:"chainsData"`
	SpawnRotations     []any         `json:"spawnRotations"`
	SpawnRotationsData []any         `json:"spawnRotationsData"`
	CustomData         *customDataV3 `json:"customData,omitempty"`
}

type lightshowV4 struct {
	Version                           string         `json:"version"`
	Waypoints                         []any          `json:"waypoints"`
	WaypointsData                     []any          `json:"waypointsData"`
	BasicEvents                       []any          `json:"basicEvents"`
	BasicEventsData                   []any          `json:"basicEventsData"`
	ColorBoostEvents                  []any          `json:"colorBoostEvents"`
	ColorBoostEventsData              []any          `json:"colorBoostEventsData"`
	EventBoxGroups                    []any          `json:"eventBoxGroups"`
	IndexFilters                      []any          `json:"indexFilters"`
	LightColorEventBoxes              []any          `json:"lightColorEventBoxes"`
	LightColorEvents                  []any          `json:"lightColorEvents"`
	BasicEventTypesWithKeywords       map[string]any `json:"basicEventTypesWithKeywords"`
	UseNormalEventsAsCompatibleEvents bool           `json:"useNormalEventsAsCompatibleEvents"`
}

// SerializeBeatmap encodes a difficulty for version v.
func SerializeBeatmap(v codec.Version, bm wrapper.Beatmap, o *codec.Options) (*Serial, error) {
	switch v {
	case codec.V1:
		return serializeV1(bm, o)
	case codec.V2:
		return serializeV2(bm, o)
	case codec.V3:
		return serializeV3(bm, o)
	case codec.V4:
		return serializeV4(bm, o)
	default:
		return nil, &codec.UnsupportedVersionError{Kind: beatmapKind, Version: v}
	}
}

// DeserializeBeatmap decodes a difficulty of version v. The lightshow
// document is read for version 4 only and may be nil.
func DeserializeBeatmap(v codec.Version, beatmap, lightshow any, o *codec.Options) (*Decoded, error) {
	switch v {
	case codec.V1:
		return deserializeV1(beatmap, o)
	case codec.V2:
		return deserializeV2(beatmap, o)
	case codec.V3:
		return deserializeV3(beatmap, o)
	case codec.V4:
		return deserializeV4(beatmap, lightshow, o)
	default:
		return nil, &codec.UnsupportedVersionError{Kind: beatmapKind, Version: v}
	}
}

// legacyEntities serializes the entity lists shared by versions 1 and 2.
func legacyEntities(v codec.Version, bm wrapper.Beatmap, o *codec.Options) (notes, obstacles, events []any, err error) {
	notes, err = serializeAll(entity.ColorNotes, v, bm.Notes, o)
	if err != nil {
		return nil, nil, nil, err
	}
	bombs, err := serializeAll(entity.BombNotes, v, bm.Bombs, o)
	if err != nil {
		return nil, nil, nil, err
	}
	obstacles, err = serializeAll(entity.Obstacles, v, bm.Obstacles, o)
	if err != nil {
		return nil, nil, nil, err
	}
	events, err = serializeAll(entity.BasicEvents, v, bm.Events, o)
	if err != nil {
		return nil, nil, nil, err
	}
	return append(notes, bombs...), obstacles, events, nil
}

func serializeV1(bm wrapper.Beatmap, o *codec.Options) (*Serial, error) {
	// Version 1 has no custom data; this fails on any bookmark.
	if _, err := serializeAll(entity.Bookmarks, codec.V1, bm.Bookmarks, o); err != nil {
		return nil, err
	}
	notes, obstacles, events, err := legacyEntities(codec.V1, bm, o)
	if err != nil {
		return nil, err
	}

	shuffle, period := o.Shuffle()
	return &Serial{Version: codec.V1, Beatmap: difficultyV1{
		Version:        difficultyVersionV1,
		BeatsPerMinute: o.BPM(),
		BeatsPerBar:    beatsPerBar,
		NoteJumpSpeed:  o.NoteJumpSpeed(),
		Shuffle:        shuffle,
		ShufflePeriod:  period,
		Notes:          notes,
		Obstacles:      obstacles,
		Events:         events,
	}}, nil
}

func serializeV2(bm wrapper.Beatmap, o *codec.Options) (*Serial, error) {
	notes, obstacles, events, err := legacyEntities(codec.V2, bm, o)
	if err != nil {
		return nil, err
	}
	bookmarks, err := serializeAll(entity.Bookmarks, codec.V2, bm.Bookmarks, o)
	if err != nil {
		return nil, err
	}

	return &Serial{Version: codec.V2, Beatmap: difficultyV2{
		Version:    difficultyVersionV2,
		Notes:      notes,
		Obstacles:  obstacles,
		Events:     events,
		Waypoints:  []any{},
		CustomData: &customDataV2{Bookmarks: bookmarks},
	}}, nil
}

func serializeV3(bm wrapper.Beatmap, o *codec.Options) (*Serial, error) {
	notes, err := serializeAll(entity.ColorNotes, codec.V3, bm.Notes, o)
	if err != nil {
		return nil, err
	}
	bombs, err := serializeAll(entity.BombNotes, codec.V3, bm.Bombs, o)
	if err != nil {
		return nil, err
	}
	obstacles, err := serializeAll(entity.Obstacles, codec.V3, bm.Obstacles, o)
	if err != nil {
		return nil, err
	}
	events, err := serializeAll(entity.BasicEvents, codec.V3, bm.Events, o)
	if err != nil {
		return nil, err
	}
	bookmarks, err := serializeAll(entity.Bookmarks, codec.V3, bm.Bookmarks, o)
	if err != nil {
		return nil, err
	}

	return &Serial{Version: codec.V3, Beatmap: difficultyV3{
		Version:                           difficultyVersionV3,
		BPMEvents:                         []any{},
		RotationEvents:                    []any{},
		ColorNotes:                        notes,
		BombNotes:                         bombs,
		Obstacles:                         obstacles,
		Sliders:                           []any{},
		BurstSliders:                      []any{},
		Waypoints:                         []any{},
		BasicBeatmapEvents:                events,
		ColorBoostBeatmapEvents:           []any{},
		LightColorEventBoxGroups:          []any{},
		LightRotationEventBoxGroups:       []any{},
		LightTranslationEventBoxGroups:    []any{},
		BasicEventTypesWithKeywords:       map[string]any{"d": []any{}},
		UseNormalEventsAsCompatibleEvents: true,
		CustomData:                        &customDataV3{Bookmarks: bookmarks},
	}}, nil
}

// pooledAll serializes items for version 4 and splits them into placements
// and a deduplicated data pool.
func pooledAll[W any](r *codec.Registry[W], items []W, o *codec.Options) (objects, data []any, err error) {
	serials, err := serializeAll(r, codec.V4, items, o)
	if err != nil {
		return nil, nil, err
	}
	objects, data, err = pool(serials)
	if err != nil {
		return nil, nil, &EntityError{Kind: r.Kind(), Err: err}
	}
	return objects, data, nil
}

func serializeV4(bm wrapper.Beatmap, o *codec.Options) (*Serial, error) {
	notes, notesData, err := pooledAll(entity.ColorNotes, bm.Notes, o)
	if err != nil {
		return nil, err
	}
	bombs, bombsData, err := pooledAll(entity.BombNotes, bm.Bombs, o)
	if err != nil {
		return nil, err
	}
	obstacles, obstaclesData, err := pooledAll(entity.Obstacles, bm.Obstacles, o)
	if err != nil {
		return nil, err
	}
	events, eventsData, err := pooledAll(entity.BasicEvents, bm.Events, o)
	if err != nil {
		return nil, err
	}
	bookmarks, err := serializeAll(entity.Bookmarks, codec.V4, bm.Bookmarks, o)
	if err != nil {
		return nil, err
	}

	return &Serial{
		Version: codec.V4,
		Beatmap: difficultyV4{
			Version:            difficultyVersionV4,
			ColorNotes:         notes,
			ColorNotesData:     notesData,
			BombNotes:          bombs,
			BombNotesData:      bombsData,
			Obstacles:          obstacles,
			ObstaclesData:      obstaclesData,
			Arcs:               []any{},
			ArcsData:           []any{},
			Chains:             []any{},
			ChainsData:         []any{},
			SpawnRotations:     []any{},
			SpawnRotationsData: []any{},
			CustomData:         &customDataV3{Bookmarks: bookmarks},
		},
		Lightshow: lightshowV4{
			Version:                           difficultyVersionV4,
			Waypoints:                         []any{},
			WaypointsData:                     []any{},
			BasicEvents:                       events,
			BasicEventsData:                   eventsData,
			ColorBoostEvents:                  []any{},
			ColorBoostEventsData:              []any{},
			EventBoxGroups:                    []any{},
			IndexFilters:                      []any{},
			LightColorEventBoxes:              []any{},
			LightColorEvents:                  []any{},
			BasicEventTypesWithKeywords:       map[string]any{},
			UseNormalEventsAsCompatibleEvents: true,
		},
	}, nil
}

func noteType(m map[string]any) any { return m["_type"] }

func legacyTrack(m map[string]any) any { return m["_type"] }

func v3Track(m map[string]any) any { return m["et"] }

func v4Track(m map[string]any) any {
	data, _ := m["data"].(map[string]any)
	return data["t"]
}

// splitLegacyNotes separates bombs from color notes in a v1/v2 note list.
func splitLegacyNotes(items []any) (notes, bombs []any) {
	for _, it := range items {
		m, _ := it.(map[string]any)
		if t, ok := noteType(m).(float64); ok && t == 3 {
			bombs = append(bombs, it)
			continue
		}
		notes = append(notes, it)
	}
	return notes, bombs
}

func deserializeLegacy(v codec.Version, notesRaw, obstaclesRaw, eventsRaw, bookmarksRaw []any, o *codec.Options) (*Decoded, error) {
	var (
		d   Decoded
		err error
	)

	colorNotes, bombs := splitLegacyNotes(notesRaw)
	if d.Beatmap.Notes, err = deserializeAll(entity.ColorNotes, v, colorNotes, o); err != nil {
		return nil, err
	}
	if d.Beatmap.Bombs, err = deserializeAll(entity.BombNotes, v, bombs, o); err != nil {
		return nil, err
	}
	if d.Beatmap.Obstacles, err = deserializeAll(entity.Obstacles, v, obstaclesRaw, o); err != nil {
		return nil, err
	}
	events, skipped := knownTracks(eventsRaw, legacyTrack, o)
	d.SkippedEvents = skipped
	if d.Beatmap.Events, err = deserializeAll(entity.BasicEvents, v, events, o); err != nil {
		return nil, err
	}
	if d.Beatmap.Bookmarks, err = deserializeAll(entity.Bookmarks, v, bookmarksRaw, o); err != nil {
		return nil, err
	}
	return &d, nil
}

func deserializeV1(raw any, o *codec.Options) (*Decoded, error) {
	if err := checkDocument("difficulty.v1", "Beatmap/v1", raw); err != nil {
		return nil, err
	}
	var doc difficultyV1
	if err := codec.DecodeSerial(raw, &doc); err != nil {
		return nil, err
	}
	return deserializeLegacy(codec.V1, doc.Notes, doc.Obstacles, doc.Events, nil, o)
}

func deserializeV2(raw any, o *codec.Options) (*Decoded, error) {
	if err := checkDocument("difficulty.v2", "Beatmap/v2", raw); err != nil {
		return nil, err
	}
	var doc difficultyV2
	if err := codec.DecodeSerial(raw, &doc); err != nil {
		return nil, err
	}
	var bookmarks []any
	if doc.CustomData != nil {
		bookmarks = doc.CustomData.Bookmarks
	}
	return deserializeLegacy(codec.V2, doc.Notes, doc.Obstacles, doc.Events, bookmarks, o)
}

func deserializeV3(raw any, o *codec.Options) (*Decoded, error) {
	if err := checkDocument("difficulty.v3", "Beatmap/v3", raw); err != nil {
		return nil, err
	}
	var doc difficultyV3
	if err := codec.DecodeSerial(raw, &doc); err != nil {
		return nil, err
	}

	var (
		d   Decoded
		err error
	)
	if d.Beatmap.Notes, err = deserializeAll(entity.ColorNotes, codec.V3, doc.ColorNotes, o); err != nil {
		return nil, err
	}
	if d.Beatmap.Bombs, err = deserializeAll(entity.BombNotes, codec.V3, doc.BombNotes, o); err != nil {
		return nil, err
	}
	if d.Beatmap.Obstacles, err = deserializeAll(entity.Obstacles, codec.V3, doc.Obstacles, o); err != nil {
		return nil, err
	}
	events, skipped := knownTracks(doc.BasicBeatmapEvents, v3Track, o)
	d.SkippedEvents = skipped
	if d.Beatmap.Events, err = deserializeAll(entity.BasicEvents, codec.V3, events, o); err != nil {
		return nil, err
	}
	if doc.CustomData != nil {
		if d.Beatmap.Bookmarks, err = deserializeAll(entity.Bookmarks, codec.V3, doc.CustomData.Bookmarks, o); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

func unpooledAll[W any](r *codec.Registry[W], field string, objects, data []any, o *codec.Options) ([]W, error) {
	items, err := unpool(r.Label(codec.V4), field, objects, data)
	if err != nil {
		return nil, err
	}
	return deserializeAll(r, codec.V4, items, o)
}

func deserializeV4(raw, lightshowRaw any, o *codec.Options) (*Decoded, error) {
	if err := checkDocument("difficulty.v4", "Beatmap/v4", raw); err != nil {
		return nil, err
	}
	var doc difficultyV4
	if err := codec.DecodeSerial(raw, &doc); err != nil {
		return nil, err
	}

	var (
		d   Decoded
		err error
	)
	if d.Beatmap.Notes, err = unpooledAll(entity.ColorNotes, "colorNotes", doc.ColorNotes, doc.ColorNotesData, o); err != nil {
		return nil, err
	}
	if d.Beatmap.Bombs, err = unpooledAll(entity.BombNotes, "bombNotes", doc.BombNotes, doc.BombNotesData, o); err != nil {
		return nil, err
	}
	if d.Beatmap.Obstacles, err = unpooledAll(entity.Obstacles, "obstacles", doc.Obstacles, doc.ObstaclesData, o); err != nil {
		return nil, err
	}
	if doc.CustomData != nil {
		if d.Beatmap.Bookmarks, err = deserializeAll(entity.Bookmarks, codec.V4, doc.CustomData.Bookmarks, o); err != nil {
			return nil, err
		}
	}

	if lightshowRaw == nil {
		return &d, nil
	}
	if err := checkDocument("lightshow.v4", "Lightshow/v4", lightshowRaw); err != nil {
		return nil, err
	}
	var ls lightshowV4
	if err := codec.DecodeSerial(lightshowRaw, &ls); err != nil {
		return nil, err
	}
	events, err := unpool(entity.BasicEvents.Label(codec.V4), "basicEvents", ls.BasicEvents, ls.BasicEventsData)
	if err != nil {
		return nil, err
	}
	events, d.SkippedEvents = knownTracks(events, v4Track, o)
	if d.Beatmap.Events, err = deserializeAll(entity.BasicEvents, codec.V4, events, o); err != nil {
		return nil, err
	}
	return &d, nil
}
