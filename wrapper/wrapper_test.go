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

package wrapper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/beatmap/validation"
)

func TestIDs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.5/2/0", ColorNote{BeatNum: 1.5, ColIndex: 2}.ID())
	assert.Equal(t, "4/0/2", BombNote{BeatNum: 4, RowIndex: 2}.ID())
	assert.Equal(t, "8-1-full", Obstacle{BeatNum: 8, ColIndex: 1, Type: ObstacleFull}.ID())
	assert.Equal(t, "3/12.25", BasicEvent{TrackID: 3, BeatNum: 12.25}.ID())
	assert.Equal(t, "16", Bookmark{Time: 16}.ID())
}

func TestNextBookmarkColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BookmarkPalette[0], NextBookmarkColor(nil))

	existing := []Bookmark{{Color: BookmarkPalette[0]}, {Color: BookmarkPalette[2]}}
	assert.Equal(t, BookmarkPalette[1], NextBookmarkColor(existing))

	full := make([]Bookmark, 0, 7)
	for _, c := range BookmarkPalette {
		full = append(full, Bookmark{Color: c})
	}
	full = append(full, Bookmark{Color: BookmarkPalette[3]})
	assert.Equal(t, BookmarkPalette[1], NextBookmarkColor(full))
}

func TestPaletteColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BookmarkPalette[0], PaletteColor(6))
	assert.Equal(t, BookmarkPalette[5], PaletteColor(-1))
}

func TestDifficulty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, ExpertPlus.Rank())
	assert.Equal(t, 0, Difficulty("Impossible").Rank())

	d := DifficultyInfo{Difficulty: Hard}
	assert.Equal(t, "Standard/Hard", d.Key())
	d.Characteristic = "OneSaber"
	assert.Equal(t, "OneSaber/Hard", d.Key())
}

func TestSong_EditorOffsetBeats(t *testing.T) {
	t.Parallel()

	s := Song{BPM: 120, OffsetMs: 500}
	assert.InDelta(t, 1.0, s.EditorOffsetBeats(), 1e-12)
}

func TestValidate_NonFiniteAngleOffset(t *testing.T) {
	t.Parallel()

	for _, offset := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := Validate(ColorNote{Color: ColorLeft, Direction: DirectionUp, AngleOffset: offset})

		var verr *validation.Error
		require.ErrorAs(t, err, &verr, "offset %v", offset)
		assert.True(t, verr.Has("angleOffset"), "offset %v: %v", offset, verr.Fields)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	speed := 3
	row, span := 1.0, 2.0

	valid := Beatmap{
		Notes:     []ColorNote{{Color: ColorLeft, Direction: DirectionUp}},
		Obstacles: []Obstacle{{Type: ObstacleFull, Colspan: 1}, Extended(0, 1, 0, 1, row, span)},
		Events: []BasicEvent{
			{TrackID: 1, Type: EventFlash, ColorType: LightPrimary},
			{TrackID: 1, Type: EventOff},
			{TrackID: 12, Type: EventValue, LaserSpeed: &speed},
			{TrackID: 8, Type: EventTrigger},
		},
		Bookmarks: []Bookmark{{Name: "drop", Color: "#ff0000"}},
	}
	require.NoError(t, Validate(valid))

	invalid := Beatmap{
		Notes: []ColorNote{
			{Color: "green", Direction: DirectionUp},
			{Color: ColorRight, Direction: DirectionUp, AngleOffset: 22.5},
			{Color: ColorRight, Direction: DirectionAny, AngleOffset: 30},
		},
		Obstacles: []Obstacle{{Type: ObstacleExtended}, {Type: ObstacleTop, RowIndex: &row}},
		Events: []BasicEvent{
			{TrackID: 1, Type: EventOn},
			{TrackID: 12, Type: EventValue},
			{TrackID: 8, Type: EventTrigger, ColorType: LightWhite},
		},
	}
	err := Validate(invalid)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.False(t, verr.Has("notes.2.angleOffset"))
	for _, path := range []string{
		"notes.0.color",
		"notes.1.angleOffset",
		"obstacles.0.rowIndex",
		"obstacles.0.rowspan",
		"obstacles.1.rowIndex",
		"events.0.colorType",
		"events.1.laserSpeed",
		"events.2.colorType",
	} {
		assert.True(t, verr.Has(path), "missing %s in %v", path, verr.Fields)
	}
}
