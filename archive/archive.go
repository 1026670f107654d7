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

package archive

import (
	"errors"
	"fmt"
	"runtime"
	"slices"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/logging"
	"rivaas.dev/beatmap/metrics"
	"rivaas.dev/beatmap/tracing"
	"rivaas.dev/beatmap/wrapper"
)

// DefaultMaxMemberSize bounds the uncompressed size of one archive member.
const DefaultMaxMemberSize = 64 << 20

// Map is a whole song: metadata, every difficulty and the files carried
// along unchanged (audio, cover art, anything else in the archive).
type Map struct {
	// Version is the difficulty format the map was read from.
	Version      codec.Version
	Song         wrapper.Song
	Difficulties []Difficulty
	// Files maps member names to contents for everything that is not
	// metadata or a difficulty.
	Files map[string][]byte
	// SkippedEvents counts events dropped on import for being on unknown
	// tracks.
	SkippedEvents int
}

// Difficulty is one playable chart.
type Difficulty struct {
	Info    wrapper.DifficultyInfo
	Beatmap wrapper.Beatmap
}

// Find returns the difficulty with the given key, e.g. "Standard/Expert".
func (m *Map) Find(key string) (*Difficulty, bool) {
	i := slices.IndexFunc(m.Difficulties, func(d Difficulty) bool { return d.Info.Key() == key })
	if i < 0 {
		return nil, false
	}
	return &m.Difficulties[i], true
}

// Counts sums entity counts over all difficulties.
func (m *Map) Counts() map[string]int {
	total := map[string]int{}
	for _, d := range m.Difficulties {
		for kind, n := range d.Beatmap.Counts() {
			total[kind] += n
		}
	}
	return total
}

// Pipeline converts archives. Its codec calls are pure, so one Pipeline
// can serve concurrent Import and Export calls.
type Pipeline struct {
	logger        *logging.Logger
	tracer        *tracing.Tracer
	metrics       *metrics.Recorder
	workers       int
	maxMemberSize int64
	codecOpts     []codec.Option
	base          *codec.Options
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithLogger logs stage boundaries and failures.
func WithLogger(l *logging.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithTracer records one span per archive and one per difficulty.
func WithTracer(t *tracing.Tracer) Option {
	return func(p *Pipeline) { p.tracer = t }
}

// WithMetrics counts converted entities and failures.
func WithMetrics(r *metrics.Recorder) Option {
	return func(p *Pipeline) { p.metrics = r }
}

// WithWorkers bounds how many difficulties are converted at once. Zero means
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithMaxMemberSize bounds the uncompressed size of one archive member.
func WithMaxMemberSize(n int64) Option {
	return func(p *Pipeline) { p.maxMemberSize = n }
}

// WithCodecOptions sets the options every codec call starts from.
func WithCodecOptions(opts ...codec.Option) Option {
	return func(p *Pipeline) { p.codecOpts = append(p.codecOpts, opts...) }
}

// New creates a Pipeline. It fails when the codec options do not resolve,
// for example when they name an unregistered extension provider.
func New(opts ...Option) (*Pipeline, error) {
	p := &Pipeline{maxMemberSize: DefaultMaxMemberSize}
	for _, opt := range opts {
		opt(p)
	}
	if p.workers < 0 {
		return nil, fmt.Errorf("archive: workers must not be negative, got %d", p.workers)
	}
	if p.workers == 0 {
		p.workers = runtime.GOMAXPROCS(0)
	}
	if p.maxMemberSize <= 0 {
		return nil, errors.New("archive: max member size must be positive")
	}
	if p.logger == nil {
		p.logger = logging.Noop()
	}
	if p.tracer == nil {
		var err error
		if p.tracer, err = tracing.New(tracing.WithNoop()); err != nil {
			return nil, err
		}
	}
	base, err := codec.NewOptions(p.codecOpts...)
	if err != nil {
		return nil, err
	}
	p.base = base
	return p, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Pipeline {
	p, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("archive pipeline initialization failed: %v", err))
	}
	return p
}

// songOptions derives the per-song codec options: the editor offset in
// beats, tempo and swing.
func (p *Pipeline) songOptions(s wrapper.Song) (*codec.Options, error) {
	return p.base.With(
		codec.WithEditorOffset(s.EditorOffsetBeats()),
		codec.WithBPM(s.BPM),
		codec.WithShuffle(s.Swing, s.SwingPeriod),
	)
}
