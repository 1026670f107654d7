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
	"fmt"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/internal/numeric"
	"rivaas.dev/beatmap/wrapper"
)

const (
	infoKind  = "Info"
	audioKind = "AudioData"

	infoVersionV2  = "2.1.0"
	infoVersionV4  = "4.0.1"
	audioVersionV4 = "4.0.0"
)

type infoV1 struct {
	SongName         string            `json:"songName"`
	SongSubName      string            `json:"songSubName"`
	AuthorName       string            `json:"authorName"`
	BeatsPerMinute   float64           `json:"beatsPerMinute"`
	PreviewStartTime float64           `json:"previewStartTime"`
	PreviewDuration  float64           `json:"previewDuration"`
	CoverImagePath   string            `json:"coverImagePath"`
	EnvironmentName  string            `json:"environmentName"`
	DifficultyLevels []difficultyLevel `json:"difficultyLevels"`
}

type difficultyLevel struct {
	Difficulty     string  `json:"difficulty"`
	DifficultyRank int     `json:"difficultyRank"`
	AudioPath      string  `json:"audioPath"`
	JSONPath       string  `json:"jsonPath"`
	Offset         float64 `json:"offset"`
	OldOffset      float64 `json:"oldOffset"`
}

type infoV2 struct {
	Version               string            `json:"_version"`
	SongName              string            `json:"_songName"`
	SongSubName           string            `json:"_songSubName"`
	SongAuthorName        string            `json:"_songAuthorName"`
	LevelAuthorName       string            `json:"_levelAuthorName"`
	BeatsPerMinute        float64           `json:"_beatsPerMinute"`
	Shuffle               float64           `json:"_shuffle"`
	ShufflePeriod         float64           `json:"_shufflePeriod"`
	PreviewStartTime      float64           `json:"_previewStartTime"`
	PreviewDuration       float64           `json:"_previewDuration"`
	SongFilename          string            `json:"_songFilename"`
	CoverImageFilename    string            `json:"_coverImageFilename"`
	EnvironmentName       string            `json:"_environmentName"`
	SongTimeOffset        float64           `json:"_songTimeOffset"`
	CustomData            *infoCustomDataV2 `json:"_customData,omitempty"`
	DifficultyBeatmapSets []difficultySetV2 `json:"_difficultyBeatmapSets"`
}

type infoCustomDataV2 struct {
	EditorOffset float64 `json:"_editorOffset"`
}

type difficultySetV2 struct {
	Characteristic string             `json:"_beatmapCharacteristicName"`
	Beatmaps       []difficultyV2Info `json:"_difficultyBeatmaps"`
}

type difficultyV2Info struct {
	Difficulty      string                  `json:"_difficulty"`
	DifficultyRank  int                     `json:"_difficultyRank"`
	BeatmapFilename string                  `json:"_beatmapFilename"`
	NoteJumpSpeed   float64                 `json:"_noteJumpMovementSpeed"`
	StartBeatOffset float64                 `json:"_noteJumpStartBeatOffset"`
	CustomData      *difficultyCustomDataV2 `json:"_customData,omitempty"`
}

type difficultyCustomDataV2 struct {
	Label string `json:"_difficultyLabel,omitempty"`
}

type infoV4 struct {
	Version            string             `json:"version"`
	Song               songV4             `json:"song"`
	Audio              audioInfoV4        `json:"audio"`
	SongPreviewFile    string             `json:"songPreviewFilename"`
	CoverImageFilename string             `json:"coverImageFilename"`
	EnvironmentNames   []string           `json:"environmentNames"`
	ColorSchemes       []any              `json:"colorSchemes"`
	DifficultyBeatmaps []difficultyV4Info `json:"difficultyBeatmaps"`
	CustomData         *infoCustomDataV4  `json:"customData,omitempty"`
}

type songV4 struct {
	Title    string `json:"title"`
	SubTitle string `json:"subTitle"`
	Author   string `json:"author"`
}

type audioInfoV4 struct {
	SongFilename      string  `json:"songFilename"`
	SongDuration      float64 `json:"songDuration"`
	AudioDataFilename string  `json:"audioDataFilename"`
	BPM               float64 `json:"bpm"`
	LUFS              float64 `json:"lufs"`
	PreviewStartTime  float64 `json:"previewStartTime"`
	PreviewDuration   float64 `json:"previewDuration"`
}

type infoCustomDataV4 struct {
	EditorOffset float64 `json:"editorOffset"`
}

type difficultyV4Info struct {
	Characteristic        string         `json:"characteristic"`
	Difficulty            string         `json:"difficulty"`
	BeatmapAuthors        beatmapAuthors `json:"beatmapAuthors"`
	EnvironmentNameIdx    int            `json:"environmentNameIdx"`
	BeatmapColorSchemeIdx int            `json:"beatmapColorSchemeIdx"`
	NoteJumpSpeed         float64        `json:"noteJumpMovementSpeed"`
	StartBeatOffset       float64        `json:"noteJumpStartBeatOffset"`
	BeatmapDataFilename   string         `json:"beatmapDataFilename"`
	LightshowDataFilename string         `json:"lightshowDataFilename"`
}

type beatmapAuthors struct {
	Mappers  []string `json:"mappers"`
	Lighters []string `json:"lighters"`
}

func checkSong(s wrapper.Song) error {
	if err := wrapper.Validate(s); err != nil {
		return &codec.InvalidEntityError{Kind: infoKind, Err: err}
	}
	return nil
}

func authorList(name string) []string {
	if name == "" {
		return []string{}
	}
	return []string{name}
}

var infoV1Entry = codec.Define(schemas.MustGet("info.v1"),
	func(s wrapper.Song, _ *codec.Options) (infoV1, error) {
		if err := checkSong(s); err != nil {
			return infoV1{}, err
		}
		levels := make([]difficultyLevel, 0, len(s.Difficulties))
		for _, d := range s.Difficulties {
			if d.CharacteristicName() != wrapper.DefaultCharacteristic {
				return infoV1{}, &codec.InvalidEntityError{Kind: infoKind,
					Err: fmt.Errorf("characteristic %q cannot be stored in v1", d.Characteristic)}
			}
			levels = append(levels, difficultyLevel{
				Difficulty:     string(d.Difficulty),
				DifficultyRank: d.Difficulty.Rank(),
				AudioPath:      s.SongFilename,
				JSONPath:       BeatmapFilename(codec.V1, d),
				Offset:         s.OffsetMs,
				OldOffset:      s.OffsetMs,
			})
		}
		return infoV1{
			SongName:         s.Title,
			SongSubName:      s.Subtitle,
			AuthorName:       s.Artist,
			BeatsPerMinute:   s.BPM,
			PreviewStartTime: s.PreviewStartTime,
			PreviewDuration:  s.PreviewDuration,
			CoverImagePath:   s.CoverArtFilename,
			EnvironmentName:  s.Environment,
			DifficultyLevels: levels,
		}, nil
	},
	func(i infoV1, _ *codec.Options) (wrapper.Song, error) {
		s := wrapper.Song{
			Title:            i.SongName,
			Subtitle:         i.SongSubName,
			Artist:           i.AuthorName,
			BPM:              i.BeatsPerMinute,
			PreviewStartTime: i.PreviewStartTime,
			PreviewDuration:  i.PreviewDuration,
			CoverArtFilename: i.CoverImagePath,
			Environment:      i.EnvironmentName,
		}
		for _, l := range i.DifficultyLevels {
			if s.SongFilename == "" {
				s.SongFilename = l.AudioPath
			}
			s.OffsetMs = l.Offset
			s.Difficulties = append(s.Difficulties, wrapper.DifficultyInfo{
				Difficulty:      wrapper.Difficulty(l.Difficulty),
				Characteristic:  wrapper.DefaultCharacteristic,
				BeatmapFilename: l.JSONPath,
			})
		}
		return s, nil
	})

// groupByCharacteristic orders difficulties by characteristic in first-seen
// order, keeping their relative order within each characteristic.
func groupByCharacteristic(ds []wrapper.DifficultyInfo) (names []string, groups map[string][]wrapper.DifficultyInfo) {
	groups = make(map[string][]wrapper.DifficultyInfo)
	for _, d := range ds {
		name := d.CharacteristicName()
		if _, ok := groups[name]; !ok {
			names = append(names, name)
		}
		groups[name] = append(groups[name], d)
	}
	return names, groups
}

var infoV2Entry = codec.Define(schemas.MustGet("info.v2"),
	func(s wrapper.Song, _ *codec.Options) (infoV2, error) {
		if err := checkSong(s); err != nil {
			return infoV2{}, err
		}
		names, groups := groupByCharacteristic(s.Difficulties)
		sets := make([]difficultySetV2, 0, len(names))
		for _, name := range names {
			set := difficultySetV2{Characteristic: name}
			for _, d := range groups[name] {
				info := difficultyV2Info{
					Difficulty:      string(d.Difficulty),
					DifficultyRank:  2*d.Difficulty.Rank() - 1,
					BeatmapFilename: BeatmapFilename(codec.V2, d),
					NoteJumpSpeed:   d.NoteJumpSpeed,
					StartBeatOffset: d.StartBeatOffset,
				}
				if d.Label != "" {
					info.CustomData = &difficultyCustomDataV2{Label: d.Label}
				}
				set.Beatmaps = append(set.Beatmaps, info)
			}
			sets = append(sets, set)
		}
		return infoV2{
			Version:               infoVersionV2,
			SongName:              s.Title,
			SongSubName:           s.Subtitle,
			SongAuthorName:        s.Artist,
			LevelAuthorName:       s.Mapper,
			BeatsPerMinute:        s.BPM,
			Shuffle:               s.Swing,
			ShufflePeriod:         s.SwingPeriod,
			PreviewStartTime:      s.PreviewStartTime,
			PreviewDuration:       s.PreviewDuration,
			SongFilename:          s.SongFilename,
			CoverImageFilename:    s.CoverArtFilename,
			EnvironmentName:       s.Environment,
			CustomData:            &infoCustomDataV2{EditorOffset: s.OffsetMs},
			DifficultyBeatmapSets: sets,
		}, nil
	},
	func(i infoV2, _ *codec.Options) (wrapper.Song, error) {
		s := wrapper.Song{
			Title:            i.SongName,
			Subtitle:         i.SongSubName,
			Artist:           i.SongAuthorName,
			Mapper:           i.LevelAuthorName,
			BPM:              i.BeatsPerMinute,
			Swing:            i.Shuffle,
			SwingPeriod:      i.ShufflePeriod,
			PreviewStartTime: i.PreviewStartTime,
			PreviewDuration:  i.PreviewDuration,
			SongFilename:     i.SongFilename,
			CoverArtFilename: i.CoverImageFilename,
			Environment:      i.EnvironmentName,
		}
		if i.CustomData != nil {
			s.OffsetMs = i.CustomData.EditorOffset
		}
		for _, set := range i.DifficultyBeatmapSets {
			for _, b := range set.Beatmaps {
				d := wrapper.DifficultyInfo{
					Difficulty:      wrapper.Difficulty(b.Difficulty),
					Characteristic:  set.Characteristic,
					NoteJumpSpeed:   b.NoteJumpSpeed,
					StartBeatOffset: b.StartBeatOffset,
					BeatmapFilename: b.BeatmapFilename,
				}
				if b.CustomData != nil {
					d.Label = b.CustomData.Label
				}
				s.Difficulties = append(s.Difficulties, d)
			}
		}
		return s, nil
	})

var infoV4Entry = codec.Define(schemas.MustGet("info.v4"),
	func(s wrapper.Song, o *codec.Options) (infoV4, error) {
		if err := checkSong(s); err != nil {
			return infoV4{}, err
		}
		duration := s.Duration
		if duration == 0 {
			duration = o.SongDuration()
		}
		names, groups := groupByCharacteristic(s.Difficulties)
		beatmaps := make([]difficultyV4Info, 0, len(s.Difficulties))
		for _, name := range names {
			for _, d := range groups[name] {
				beatmaps = append(beatmaps, difficultyV4Info{
					Characteristic: name,
					Difficulty:     string(d.Difficulty),
					BeatmapAuthors: beatmapAuthors{
						Mappers:  authorList(s.Mapper),
						Lighters: authorList(s.Mapper),
					},
					NoteJumpSpeed:         d.NoteJumpSpeed,
					StartBeatOffset:       d.StartBeatOffset,
					BeatmapDataFilename:   BeatmapFilename(codec.V4, d),
					LightshowDataFilename: LightshowFilename(d),
				})
			}
		}
		return infoV4{
			Version: infoVersionV4,
			Song:    songV4{Title: s.Title, SubTitle: s.Subtitle, Author: s.Artist},
			Audio: audioInfoV4{
				SongFilename:      s.SongFilename,
				SongDuration:      duration,
				AudioDataFilename: AudioDataFilename,
				BPM:               s.BPM,
				PreviewStartTime:  s.PreviewStartTime,
				PreviewDuration:   s.PreviewDuration,
			},
			SongPreviewFile:    s.SongFilename,
			CoverImageFilename: s.CoverArtFilename,
			EnvironmentNames:   []string{s.Environment},
			ColorSchemes:       []any{},
			DifficultyBeatmaps: beatmaps,
			CustomData:         &infoCustomDataV4{EditorOffset: s.OffsetMs},
		}, nil
	},
	func(i infoV4, _ *codec.Options) (wrapper.Song, error) {
		s := wrapper.Song{
			Title:            i.Song.Title,
			Subtitle:         i.Song.SubTitle,
			Artist:           i.Song.Author,
			BPM:              i.Audio.BPM,
			PreviewStartTime: i.Audio.PreviewStartTime,
			PreviewDuration:  i.Audio.PreviewDuration,
			SongFilename:     i.Audio.SongFilename,
			CoverArtFilename: i.CoverImageFilename,
			Duration:         i.Audio.SongDuration,
		}
		if len(i.EnvironmentNames) > 0 {
			s.Environment = i.EnvironmentNames[0]
		}
		if i.CustomData != nil {
			s.OffsetMs = i.CustomData.EditorOffset
		}
		for _, b := range i.DifficultyBeatmaps {
			if s.Mapper == "" && len(b.BeatmapAuthors.Mappers) > 0 {
				s.Mapper = b.BeatmapAuthors.Mappers[0]
			}
			s.Difficulties = append(s.Difficulties, wrapper.DifficultyInfo{
				Difficulty:        wrapper.Difficulty(b.Difficulty),
				Characteristic:    b.Characteristic,
				NoteJumpSpeed:     b.NoteJumpSpeed,
				StartBeatOffset:   b.StartBeatOffset,
				BeatmapFilename:   b.BeatmapDataFilename,
				LightshowFilename: b.LightshowDataFilename,
			})
		}
		return s, nil
	})

// Infos is the song metadata codec. Version 3 difficulties use the version 2
// info file.
var Infos = codec.NewRegistry(infoKind, codec.Table[wrapper.Song]{
	V1: infoV1Entry,
	V2: infoV2Entry,
	V3: infoV2Entry,
	V4: infoV4Entry,
})

// Audio is the version 4 audio metadata.
type Audio struct {
	BPM         float64
	Duration    float64
	SampleRate  int
	SampleCount int
}

// AudioFor derives the audio metadata of a song. The duration falls back to
// the options when the song has none.
func AudioFor(s wrapper.Song, o *codec.Options) Audio {
	duration := s.Duration
	if duration == 0 {
		duration = o.SongDuration()
	}
	rate := o.SampleRate()
	return Audio{
		BPM:         s.BPM,
		Duration:    duration,
		SampleRate:  rate,
		SampleCount: int(numeric.Round(duration * float64(rate))),
	}
}

type audioDataV4 struct {
	Version         string      `json:"version"`
	SongChecksum    string      `json:"songChecksum"`
	SongSampleCount int         `json:"songSampleCount"`
	SongFrequency   int         `json:"songFrequency"`
	BPMData         []bpmRegion `json:"bpmData"`
	LUFSData        []any       `json:"lufsData"`
}

type bpmRegion struct {
	StartIndex int     `json:"si"`
	EndIndex   int     `json:"ei"`
	StartBeat  float64 `json:"sb"`
	EndBeat    float64 `json:"eb"`
}

var audioV4Entry = codec.Define(schemas.MustGet("audio.v4"),
	func(a Audio, _ *codec.Options) (audioDataV4, error) {
		if a.SampleRate <= 0 {
			return audioDataV4{}, &codec.InvalidEntityError{Kind: audioKind,
				Err: fmt.Errorf("sample rate %d must be positive", a.SampleRate)}
		}
		regions := []bpmRegion{}
		if a.SampleCount > 0 {
			regions = append(regions, bpmRegion{
				EndIndex: a.SampleCount,
				EndBeat:  numeric.RoundTo(a.Duration*a.BPM/60, 3),
			})
		}
		return audioDataV4{
			Version:         audioVersionV4,
			SongSampleCount: a.SampleCount,
			SongFrequency:   a.SampleRate,
			BPMData:         regions,
			LUFSData:        []any{},
		}, nil
	},
	func(d audioDataV4, _ *codec.Options) (Audio, error) {
		a := Audio{
			SampleRate:  d.SongFrequency,
			SampleCount: d.SongSampleCount,
			Duration:    float64(d.SongSampleCount) / float64(d.SongFrequency),
		}
		if len(d.BPMData) > 0 {
			r := d.BPMData[0]
			if seconds := float64(r.EndIndex-r.StartIndex) / float64(d.SongFrequency); seconds > 0 {
				a.BPM = numeric.RoundTo((r.EndBeat-r.StartBeat)/seconds*60, 3)
			}
		}
		return a, nil
	})

// AudioData is the codec of the version 4 audio metadata file.
var AudioData = codec.NewRegistry(audioKind, codec.Table[Audio]{V4: audioV4Entry})
