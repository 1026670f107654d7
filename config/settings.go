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

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/spf13/cast"

	"rivaas.dev/beatmap/codec"
)

//go:embed settings.schema.json
var settingsSchema []byte

const (
	// EnvPrefix is the prefix of environment variables read by [LoadSettings].
	EnvPrefix = "BEATCONV_"

	// DefaultFile is read from the working directory, when present, if no
	// settings file is named.
	DefaultFile = "beatconv.yaml"
)

// Settings is the beatconv configuration. Files, then environment
// variables, then command-line flags override the defaults below.
//
//	target: 4
//	extensions: mapping-extensions
//	unknown_tracks: skip
//	tracks:
//	  "20": light
//	log:
//	  level: debug
type Settings struct {
	Target        codec.Version     `config:"target" default:"4"`
	Extensions    string            `config:"extensions"`
	UnknownTracks string            `config:"unknown_tracks" default:"fail"`
	Tracks        map[string]string `config:"tracks"`
	SampleRate    int               `config:"sample_rate" default:"44100"`
	NoteJumpSpeed float64           `config:"note_jump_speed" default:"10"`
	SongDuration  float64           `config:"song_duration"`
	Workers       int               `config:"workers"`

	Log     LogSettings     `config:"log"`
	Tracing TracingSettings `config:"tracing"`
	Metrics MetricsSettings `config:"metrics"`
}

// LogSettings selects the log handler. An empty format picks the console
// handler on a terminal and JSON otherwise.
type LogSettings struct {
	Level  string `config:"level" default:"info"`
	Format string `config:"format"`
}

// TracingSettings selects the span exporter.
type TracingSettings struct {
	Provider   string  `config:"provider" default:"noop"`
	Endpoint   string  `config:"endpoint"`
	SampleRate float64 `config:"sample_rate" default:"1"`
}

// MetricsSettings selects the metrics exporter. Dump prints the Prometheus
// text exposition to stderr when a command finishes.
type MetricsSettings struct {
	Provider string `config:"provider" default:"prometheus"`
	Endpoint string `config:"endpoint"`
	Dump     bool   `config:"dump"`
}

// Validate implements [Validator].
func (s *Settings) Validate() error {
	var errs []error
	if !s.Target.Valid() {
		errs = append(errs, NewFieldError("settings", "target", "validate", &codec.UnsupportedVersionError{Version: s.Target}))
	}
	if _, err := s.UnknownTrackPolicy(); err != nil {
		errs = append(errs, NewFieldError("settings", "unknown_tracks", "validate", err))
	}
	if _, err := s.TrackTable(); err != nil {
		errs = append(errs, NewFieldError("settings", "tracks", "validate", err))
	}
	if s.Workers < 0 {
		errs = append(errs, NewFieldError("settings", "workers", "validate", fmt.Errorf("must not be negative, got %d", s.Workers)))
	}
	return errors.Join(errs...)
}

// UnknownTrackPolicy parses UnknownTracks.
func (s *Settings) UnknownTrackPolicy() (codec.UnknownTrackPolicy, error) {
	switch strings.ToLower(s.UnknownTracks) {
	case "", "fail":
		return codec.UnknownTrackFail, nil
	case "skip":
		return codec.UnknownTrackSkip, nil
	default:
		return 0, fmt.Errorf("unknown track policy %q (want fail or skip)", s.UnknownTracks)
	}
}

// TrackTable overlays Tracks on [codec.DefaultTracks].
func (s *Settings) TrackTable() (codec.TrackTable, error) {
	table := codec.DefaultTracks()
	if len(s.Tracks) == 0 {
		return table, nil
	}
	table = maps.Clone(table)
	for key, kind := range s.Tracks {
		id, err := cast.ToIntE(key)
		if err != nil {
			return nil, fmt.Errorf("track %q: not an integer", key)
		}
		switch strings.ToLower(kind) {
		case "light":
			table[id] = codec.TrackLight
		case "trigger":
			table[id] = codec.TrackTrigger
		case "value":
			table[id] = codec.TrackValue
		case "none":
			delete(table, id)
		default:
			return nil, fmt.Errorf("track %d: unknown kind %q", id, kind)
		}
	}
	return table, nil
}

// CodecOptions converts the settings into codec options.
func (s *Settings) CodecOptions() ([]codec.Option, error) {
	policy, err := s.UnknownTrackPolicy()
	if err != nil {
		return nil, err
	}
	tracks, err := s.TrackTable()
	if err != nil {
		return nil, err
	}
	return []codec.Option{
		codec.WithExtensionsProvider(s.Extensions),
		codec.WithUnknownTracks(policy),
		codec.WithTracks(tracks),
		codec.WithSampleRate(s.SampleRate),
		codec.WithNoteJumpSpeed(s.NoteJumpSpeed),
		codec.WithSongDuration(s.SongDuration),
	}, nil
}

// LoadSettings layers the defaults, the file at path and the BEATCONV_
// environment, validates the result against the settings schema and binds
// it. An empty path reads [DefaultFile] if it exists.
func LoadSettings(ctx context.Context, path string, extra ...Option) (*Settings, *Config, error) {
	var s Settings
	opts := []Option{WithJSONSchema(settingsSchema)}
	if path != "" {
		opts = append(opts, WithFile(path))
	} else {
		opts = append(opts, WithOptionalFile(DefaultFile))
	}
	opts = append(opts, WithEnv(EnvPrefix))
	opts = append(opts, extra...)
	opts = append(opts, WithBinding(&s))

	cfg, err := New(opts...)
	if err != nil {
		return nil, nil, err
	}
	if err = cfg.Load(ctx); err != nil {
		return nil, nil, err
	}
	return &s, cfg, nil
}
