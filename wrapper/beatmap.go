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

// Beatmap is one difficulty's worth of entities.
type Beatmap struct {
	Notes     []ColorNote  `json:"notes" validate:"dive"`
	Bombs     []BombNote   `json:"bombs" validate:"dive"`
	Obstacles []Obstacle   `json:"obstacles" validate:"dive"`
	Events    []BasicEvent `json:"events" validate:"dive"`
	Bookmarks []Bookmark   `json:"bookmarks" validate:"dive"`
}

// Counts returns the number of entities per kind.
func (b Beatmap) Counts() map[string]int {
	return map[string]int{
		"ColorNote":  len(b.Notes),
		"BombNote":   len(b.Bombs),
		"Obstacle":   len(b.Obstacles),
		"BasicEvent": len(b.Events),
		"Bookmark":   len(b.Bookmarks),
	}
}

// Difficulty is a difficulty name.
type Difficulty string

// Difficulties.
const (
	Easy       Difficulty = "Easy"
	Normal     Difficulty = "Normal"
	Hard       Difficulty = "Hard"
	Expert     Difficulty = "Expert"
	ExpertPlus Difficulty = "ExpertPlus"
)

// Difficulties lists every difficulty from easiest to hardest.
var Difficulties = []Difficulty{Easy, Normal, Hard, Expert, ExpertPlus}

// Rank returns the difficulty's position, 1 for Easy through 5 for ExpertPlus,
// or 0 when unknown.
func (d Difficulty) Rank() int {
	for i, x := range Difficulties {
		if x == d {
			return i + 1
		}
	}
	return 0
}

// DefaultCharacteristic is the standard play mode.
const DefaultCharacteristic = "Standard"

// DifficultyInfo describes one difficulty in the song metadata.
type DifficultyInfo struct {
	Difficulty        Difficulty `json:"difficulty" validate:"oneof=Easy Normal Hard Expert ExpertPlus"`
	Characteristic    string     `json:"characteristic"`
	NoteJumpSpeed     float64    `json:"noteJumpSpeed" validate:"gte=0"`
	StartBeatOffset   float64    `json:"startBeatOffset"`
	Label             string     `json:"label,omitempty"`
	BeatmapFilename   string     `json:"beatmapFilename,omitempty"`
	LightshowFilename string     `json:"lightshowFilename,omitempty"`
}

// CharacteristicName returns the characteristic or [DefaultCharacteristic].
func (d DifficultyInfo) CharacteristicName() string {
	if d.Characteristic == "" {
		return DefaultCharacteristic
	}
	return d.Characteristic
}

// Key identifies the difficulty within a song, e.g. "Standard/Expert".
func (d DifficultyInfo) Key() string {
	return d.CharacteristicName() + "/" + string(d.Difficulty)
}

// Song is the version-independent song metadata.
type Song struct {
	Title            string           `json:"title" validate:"required"`
	Subtitle         string           `json:"subtitle,omitempty"`
	Artist           string           `json:"artist"`
	Mapper           string           `json:"mapper"`
	BPM              float64          `json:"bpm" validate:"gt=0"`
	OffsetMs         float64          `json:"offsetMs"`
	Swing            float64          `json:"swing"`
	SwingPeriod      float64          `json:"swingPeriod"`
	PreviewStartTime float64          `json:"previewStartTime"`
	PreviewDuration  float64          `json:"previewDuration"`
	SongFilename     string           `json:"songFilename"`
	CoverArtFilename string           `json:"coverArtFilename"`
	Environment      string           `json:"environment"`
	Duration         float64          `json:"duration,omitempty" validate:"gte=0"`
	Difficulties     []DifficultyInfo `json:"difficulties" validate:"dive"`
}

// EditorOffsetBeats converts the millisecond offset to beats at the song's
// tempo.
func (s Song) EditorOffsetBeats() float64 {
	return s.OffsetMs / 1000 * s.BPM / 60
}
