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
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/container"
	"rivaas.dev/beatmap/logging"
	"rivaas.dev/beatmap/metrics"
	"rivaas.dev/beatmap/telemetry/semconv"
	"rivaas.dev/beatmap/tracing"
	"rivaas.dev/beatmap/wrapper"
)

// infoCandidates are tried in order when locating the metadata file.
var infoCandidates = []string{container.InfoFilename, container.InfoFilenameV1}

// ImportFile reads the archive at path.
func (p *Pipeline) ImportFile(ctx context.Context, path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ImportError{Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, &ImportError{Err: err}
	}
	return p.Import(ctx, f, st.Size(), filepath.Base(path))
}

// Import reads a zipped map. Every difficulty is decoded before Import
// returns; the first failure aborts the whole import and no partial Map is
// returned.
func (p *Pipeline) Import(ctx context.Context, r io.ReaderAt, size int64, name string) (m *Map, err error) {
	start := time.Now()
	ctx, span := p.tracer.StartSpan(ctx, "beatmap.import", tracing.AttrArchive.String(name))
	cl := logging.NewContextLogger(ctx, p.logger)
	defer func() {
		if err != nil {
			p.metrics.RecordFailure(ctx, metrics.Import, err)
			p.logger.LogError(err, "import failed", semconv.Archive, name)
		} else {
			p.metrics.RecordArchive(ctx, metrics.Import, size, time.Since(start))
			cl.Info("import finished", semconv.Archive, name, semconv.Version, m.Version.String(),
				"difficulties", len(m.Difficulties), semconv.DurationMs, time.Since(start).Milliseconds())
		}
		p.tracer.Finish(span, err)
	}()

	zr, err := newReader(r, size, p.maxMemberSize)
	if err != nil {
		return nil, &ImportError{Err: err}
	}

	done := cl.Stage("info", semconv.Archive, name)
	song, infoVersion, consumed, err := p.readInfo(zr)
	done()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(tracing.AttrVersion.String(infoVersion.String()))

	o, err := p.songOptions(song)
	if err != nil {
		return nil, &ImportError{Err: err}
	}

	m = &Map{Song: song, Difficulties: make([]Difficulty, len(song.Difficulties))}
	skipped := make([]int, len(song.Difficulties))
	versions := make([]codec.Version, len(song.Difficulties))
	members := make([][]string, len(song.Difficulties))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, info := range song.Difficulties {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, v, n, used, err := p.importDifficulty(gctx, zr, infoVersion, info, o)
			if err != nil {
				return err
			}
			m.Difficulties[i], versions[i], skipped[i], members[i] = d, v, n, used
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	m.Version = infoVersion
	if len(versions) > 0 {
		m.Version = versions[0]
	}
	for i := range skipped {
		m.SkippedEvents += skipped[i]
		for _, member := range members[i] {
			consumed[member] = true
		}
	}
	p.metrics.RecordSkippedEvents(ctx, m.SkippedEvents)

	m.Files = map[string][]byte{}
	for _, member := range zr.names() {
		if consumed[member] {
			continue
		}
		f, _ := zr.lookup(member)
		data, err := zr.read(f)
		if err != nil {
			return nil, &ImportError{Member: member, Err: err}
		}
		m.Files[member] = data
	}
	return m, nil
}

// readInfo decodes the metadata file and, for version 4, the audio data
// file. It returns the names of the members it read.
func (p *Pipeline) readInfo(zr *reader) (wrapper.Song, codec.Version, map[string]bool, error) {
	var f *zip.File
	for _, name := range infoCandidates {
		if zf, ok := zr.lookup(name); ok {
			f = zf
			break
		}
	}
	if f == nil {
		return wrapper.Song{}, 0, nil, &ImportError{Err: ErrMissingInfo}
	}
	member := f.Name
	consumed := map[string]bool{member: true}

	raw, err := readDocument(zr, f)
	if err != nil {
		return wrapper.Song{}, 0, nil, &ImportError{Member: member, Err: err}
	}
	v, err := container.DetectInfoVersion(raw)
	if err != nil {
		return wrapper.Song{}, 0, nil, &ImportError{Member: member, Err: err}
	}
	song, err := container.Infos.Deserialize(v, raw, p.base)
	if err != nil {
		return wrapper.Song{}, 0, nil, &ImportError{Member: member, Err: err}
	}

	if v == codec.V4 {
		if af, ok := zr.lookup(container.AudioDataFilename); ok {
			consumed[af.Name] = true
			raw, err := readDocument(zr, af)
			if err != nil {
				return wrapper.Song{}, 0, nil, &ImportError{Member: af.Name, Err: err}
			}
			audio, err := container.AudioData.Deserialize(codec.V4, raw, p.base)
			if err != nil {
				return wrapper.Song{}, 0, nil, &ImportError{Member: af.Name, Err: err}
			}
			if song.Duration == 0 {
				song.Duration = audio.Duration
			}
		}
	}
	return song, v, consumed, nil
}

func (p *Pipeline) importDifficulty(ctx context.Context, zr *reader, infoVersion codec.Version, info wrapper.DifficultyInfo, o *codec.Options) (d Difficulty, v codec.Version, skipped int, used []string, err error) {
	ctx, span := p.tracer.StartSpan(ctx, "beatmap.difficulty", tracing.AttrDifficulty.String(info.Key()))
	defer func() { p.tracer.Finish(span, err) }()
	done := logging.NewContextLogger(ctx, p.logger).Stage("deserialize", semconv.Difficulty, info.Key())
	defer done()

	name := info.BeatmapFilename
	if name == "" {
		name = container.BeatmapFilename(infoVersion, info)
	}
	f, ok := zr.lookup(name)
	if !ok {
		return d, 0, 0, nil, &ImportError{Member: name, Err: ErrMissingMember}
	}
	used = append(used, f.Name)

	raw, err := readDocument(zr, f)
	if err != nil {
		return d, 0, 0, nil, &ImportError{Member: f.Name, Err: err}
	}
	if v, err = container.DetectBeatmapVersion(raw); err != nil {
		return d, 0, 0, nil, &ImportError{Member: f.Name, Err: err}
	}
	if container.InfoVersionFor(v) != infoVersion {
		return d, 0, 0, nil, &ImportError{Member: f.Name,
			Err: fmt.Errorf("%w: difficulty %s, info %s", ErrVersionMismatch, v, infoVersion)}
	}

	var lightshow any
	if v == codec.V4 {
		lsName := info.LightshowFilename
		if lsName == "" {
			lsName = container.LightshowFilename(info)
		}
		if lf, ok := zr.lookup(lsName); ok {
			used = append(used, lf.Name)
			if lightshow, err = readDocument(zr, lf); err != nil {
				return d, 0, 0, nil, &ImportError{Member: lf.Name, Err: err}
			}
		}
	}

	decoded, err := container.DeserializeBeatmap(v, raw, lightshow, o)
	if err != nil {
		return d, 0, 0, nil, &ImportError{Member: f.Name, Err: err}
	}

	counts := decoded.Beatmap.Counts()
	tracing.RecordCounts(span, counts)
	span.SetAttributes(tracing.AttrVersion.String(v.String()), tracing.AttrSkipped.Int(decoded.SkippedEvents))
	p.metrics.RecordEntities(ctx, metrics.Import, v.String(), counts)

	return Difficulty{Info: info, Beatmap: decoded.Beatmap}, v, decoded.SkippedEvents, used, nil
}

func readDocument(zr *reader, f *zip.File) (any, error) {
	data, err := zr.read(f)
	if err != nil {
		return nil, err
	}
	return container.Decode(data)
}
