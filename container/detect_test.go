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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/wrapper"
)

func TestDetectBeatmapVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     any
		want    codec.Version
		wantErr error
	}{
		{"v1", map[string]any{"_version": "1.5.0"}, codec.V1, nil},
		{"v2", map[string]any{"_version": "2.6.0"}, codec.V2, nil},
		{"v2 unversioned", map[string]any{"_notes": []any{}}, codec.V2, nil},
		{"v3", map[string]any{"version": "3.3.0"}, codec.V3, nil},
		{"v4", map[string]any{"version": "4.0.0"}, codec.V4, nil},
		{"future", map[string]any{"version": "5.0.0"}, 0, codec.ErrUnsupportedVersion},
		{"no version", map[string]any{}, 0, ErrUnknownFormat},
		{"not an object", []any{}, 0, ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectBeatmapVersion(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectInfoVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     any
		want    codec.Version
		wantErr error
	}{
		{"v1", map[string]any{"songName": "x", "difficultyLevels": []any{}}, codec.V1, nil},
		{"v2", map[string]any{"_version": "2.1.0"}, codec.V2, nil},
		{"v4", map[string]any{"version": "4.0.1"}, codec.V4, nil},
		{"v3 is not an info version", map[string]any{"version": "3.0.0"}, 0, codec.ErrUnsupportedVersion},
		{"unknown", map[string]any{"title": "x"}, 0, ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := DetectInfoVersion(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilenames(t *testing.T) {
	t.Parallel()

	std := wrapper.DifficultyInfo{Difficulty: wrapper.Expert}
	lawless := wrapper.DifficultyInfo{Difficulty: wrapper.ExpertPlus, Characteristic: "Lawless"}
	named := wrapper.DifficultyInfo{Difficulty: wrapper.Easy, BeatmapFilename: "custom.dat", LightshowFilename: "lights.dat"}

	assert.Equal(t, "Expert.json", BeatmapFilename(codec.V1, std))
	assert.Equal(t, "Expert.dat", BeatmapFilename(codec.V2, std))
	assert.Equal(t, "LawlessExpertPlus.dat", BeatmapFilename(codec.V3, lawless))
	assert.Equal(t, "LawlessExpertPlus.beatmap.dat", BeatmapFilename(codec.V4, lawless))
	assert.Equal(t, "custom.dat", BeatmapFilename(codec.V4, named))
	assert.Equal(t, "Expert.lightshow.dat", LightshowFilename(std))
	assert.Equal(t, "lights.dat", LightshowFilename(named))

	assert.Equal(t, codec.V2, InfoVersionFor(codec.V3))
	assert.Equal(t, codec.V4, InfoVersionFor(codec.V4))
	assert.Equal(t, InfoFilenameV1, InfoFilenameFor(codec.V1))
	assert.Equal(t, InfoFilename, InfoFilenameFor(codec.V3))
}
