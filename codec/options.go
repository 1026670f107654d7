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

package codec

import (
	"errors"
	"fmt"
	"maps"

	"rivaas.dev/beatmap/extension"
)

const (
	defaultSampleRate    = 44100
	defaultNoteJumpSpeed = 10
)

// UnknownTrackPolicy decides what a container does with events on tracks
// absent from the track table.
type UnknownTrackPolicy int

const (
	// UnknownTrackFail aborts with [UnknownTrackError].
	UnknownTrackFail UnknownTrackPolicy = iota
	// UnknownTrackSkip drops such events.
	UnknownTrackSkip
)

// Options carries everything that varies per codec call. Build one with
// [NewOptions]; a nil *Options behaves like NewOptions().
type Options struct {
	extensions    *extension.Registry
	providerName  string
	provider      extension.Provider
	tracks        TrackTable
	unknownTracks UnknownTrackPolicy
	editorOffset  float64
	bpm           float64
	shuffle       float64
	shufflePeriod float64
	noteJumpSpeed float64
	songDuration  float64
	sampleRate    int
	index         int
}

// Option configures [Options].
type Option func(*Options)

// NewOptions resolves the options. It fails when the selected extension
// provider is not registered.
func NewOptions(opts ...Option) (*Options, error) {
	o := &Options{
		extensions:    extension.Default(),
		sampleRate:    defaultSampleRate,
		noteJumpSpeed: defaultNoteJumpSpeed,
	}
	for _, opt := range opts {
		opt(o)
	}
	if err := o.resolve(); err != nil {
		return nil, err
	}
	return o, nil
}

// MustOptions is like [NewOptions] but panics on error.
func MustOptions(opts ...Option) *Options {
	o, err := NewOptions(opts...)
	if err != nil {
		panic(err)
	}
	return o
}

func (o *Options) resolve() error {
	if o.extensions == nil {
		o.extensions = extension.Default()
	}
	o.provider = nil
	if o.providerName != "" {
		p, err := o.extensions.Lookup(o.providerName)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownProvider, o.providerName)
		}
		o.provider = p
	}
	if o.sampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}
	if o.bpm < 0 || o.songDuration < 0 {
		return errors.New("bpm and song duration must not be negative")
	}
	return nil
}

// With returns a copy of o with opts applied.
func (o *Options) With(opts ...Option) (*Options, error) {
	if o == nil {
		return NewOptions(opts...)
	}
	c := *o
	c.tracks = maps.Clone(o.tracks)
	return NewOptions(append([]Option{func(dst *Options) { *dst = c }}, opts...)...)
}

// At returns a copy of o positioned at element index i of a collection.
// Codecs that derive defaults from position, such as bookmark colors, read it
// through [Options.Index].
func (o *Options) At(i int) *Options {
	var c Options
	if o != nil {
		c = *o
	} else {
		c = *MustOptions()
	}
	c.index = i
	return &c
}

// WithExtensionsProvider selects an extension provider by name. An empty
// name disables extensions.
func WithExtensionsProvider(name string) Option {
	return func(o *Options) { o.providerName = name }
}

// WithExtensionRegistry sets the registry providers are looked up in.
func WithExtensionRegistry(r *extension.Registry) Option {
	return func(o *Options) { o.extensions = r }
}

// WithTracks sets the event track table.
func WithTracks(t TrackTable) Option {
	return func(o *Options) { o.tracks = t }
}

// WithUnknownTracks sets the policy for events on unknown tracks.
func WithUnknownTracks(p UnknownTrackPolicy) Option {
	return func(o *Options) { o.unknownTracks = p }
}

// WithEditorOffset sets the editor offset in beats. Serialization adds it to
// every beat and deserialization subtracts it.
func WithEditorOffset(beats float64) Option {
	return func(o *Options) { o.editorOffset = beats }
}

// WithBPM sets the song tempo written to version 1 difficulty files and
// version 4 audio data.
func WithBPM(bpm float64) Option {
	return func(o *Options) { o.bpm = bpm }
}

// WithShuffle sets the swing amount and period.
func WithShuffle(amount, period float64) Option {
	return func(o *Options) {
		o.shuffle = amount
		o.shufflePeriod = period
	}
}

// WithNoteJumpSpeed sets the note jump speed written to version 1 files.
func WithNoteJumpSpeed(njs float64) Option {
	return func(o *Options) { o.noteJumpSpeed = njs }
}

// WithSongDuration sets the song length in seconds for version 4 metadata.
func WithSongDuration(seconds float64) Option {
	return func(o *Options) { o.songDuration = seconds }
}

// WithSampleRate sets the audio sample rate for version 4 audio data.
func WithSampleRate(hz int) Option {
	return func(o *Options) { o.sampleRate = hz }
}

// Provider returns the active extension provider, or nil.
func (o *Options) Provider() extension.Provider {
	if o == nil {
		return nil
	}
	return o.provider
}

// ProviderName returns the selected provider name.
func (o *Options) ProviderName() string {
	if o == nil {
		return ""
	}
	return o.providerName
}

// Tracks returns the track table, falling back to [DefaultTracks].
func (o *Options) Tracks() TrackTable {
	if o == nil || o.tracks == nil {
		return DefaultTracks()
	}
	return o.tracks
}

// UnknownTracks returns the unknown track policy.
func (o *Options) UnknownTracks() UnknownTrackPolicy {
	if o == nil {
		return UnknownTrackFail
	}
	return o.unknownTracks
}

// EditorOffset returns the editor offset in beats.
func (o *Options) EditorOffset() float64 {
	if o == nil {
		return 0
	}
	return o.editorOffset
}

// BPM returns the configured tempo, or zero.
func (o *Options) BPM() float64 {
	if o == nil {
		return 0
	}
	return o.bpm
}

// Shuffle returns the swing amount and period.
func (o *Options) Shuffle() (amount, period float64) {
	if o == nil {
		return 0, 0
	}
	return o.shuffle, o.shufflePeriod
}

// NoteJumpSpeed returns the note jump speed.
func (o *Options) NoteJumpSpeed() float64 {
	if o == nil {
		return defaultNoteJumpSpeed
	}
	return o.noteJumpSpeed
}

// SongDuration returns the song length in seconds, or zero.
func (o *Options) SongDuration() float64 {
	if o == nil {
		return 0
	}
	return o.songDuration
}

// SampleRate returns the audio sample rate.
func (o *Options) SampleRate() int {
	if o == nil {
		return defaultSampleRate
	}
	return o.sampleRate
}

// Index returns the element index set by [Options.At].
func (o *Options) Index() int {
	if o == nil {
		return 0
	}
	return o.index
}

func (o *Options) coordinates() extension.CoordinateTransform {
	if p := o.Provider(); p != nil {
		return p.Coordinates()
	}
	return nil
}

func (o *Options) angles() extension.AngleTransform {
	if p := o.Provider(); p != nil {
		return p.Angles()
	}
	return nil
}
