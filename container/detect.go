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
	"rivaas.dev/beatmap/wrapper"
)

// Well-known file names.
const (
	InfoFilenameV1    = "info.json"
	InfoFilename      = "Info.dat"
	AudioDataFilename = "BPMInfo.dat"
)

// DetectBeatmapVersion reads the format version of a decoded difficulty
// document from its "version" or "_version" field.
func DetectBeatmapVersion(raw any) (codec.Version, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("%w: difficulty is %T, not an object", ErrUnknownFormat, raw)
	}
	for _, key := range []string{"version", "_version"} {
		if s, ok := m[key].(string); ok {
			return codec.ParseVersion(s)
		}
	}
	// Early v2 editors omitted the version field.
	if _, ok := m["_notes"]; ok {
		return codec.V2, nil
	}
	return 0, fmt.Errorf("%w: difficulty has no version field", ErrUnknownFormat)
}

// DetectInfoVersion reads the format version of a decoded info document.
// Version 2 info files serve both v2 and v3 difficulties and are reported as
// [codec.V2].
func DetectInfoVersion(raw any) (codec.Version, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return 0, fmt.Errorf("%w: info is %T, not an object", ErrUnknownFormat, raw)
	}
	if _, ok := m["difficultyLevels"]; ok {
		return codec.V1, nil
	}
	if s, ok := m["_version"].(string); ok {
		if _, err := codec.ParseVersion(s); err != nil {
			return 0, err
		}
		return codec.V2, nil
	}
	if s, ok := m["version"].(string); ok {
		v, err := codec.ParseVersion(s)
		if err != nil {
			return 0, err
		}
		if v != codec.V4 {
			return 0, &codec.UnsupportedVersionError{Kind: infoKind, Version: v}
		}
		return v, nil
	}
	return 0, fmt.Errorf("%w: info has no version field", ErrUnknownFormat)
}

// InfoVersionFor returns the info format paired with difficulty version v.
func InfoVersionFor(v codec.Version) codec.Version {
	if v == codec.V3 {
		return codec.V2
	}
	return v
}

// InfoFilenameFor returns the info file name used with difficulty version v.
func InfoFilenameFor(v codec.Version) string {
	if v == codec.V1 {
		return InfoFilenameV1
	}
	return InfoFilename
}

func difficultyStem(d wrapper.DifficultyInfo) string {
	if d.CharacteristicName() == wrapper.DefaultCharacteristic {
		return string(d.Difficulty)
	}
	return d.CharacteristicName() + string(d.Difficulty)
}

// BeatmapFilename returns the difficulty file name for version v. An explicit
// name on d wins.
func BeatmapFilename(v codec.Version, d wrapper.DifficultyInfo) string {
	if d.BeatmapFilename != "" {
		return d.BeatmapFilename
	}
	switch v {
	case codec.V1:
		return difficultyStem(d) + ".json"
	case codec.V4:
		return difficultyStem(d) + ".beatmap.dat"
	default:
		return difficultyStem(d) + ".dat"
	}
}

// LightshowFilename returns the version 4 lightshow file name for d.
func LightshowFilename(d wrapper.DifficultyInfo) string {
	if d.LightshowFilename != "" {
		return d.LightshowFilename
	}
	return difficultyStem(d) + ".lightshow.dat"
}
