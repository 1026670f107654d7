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
	"bytes"
	"context"
	"encoding/json"
	"errors"
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

// ExportFile writes m as a version v archive at path. The file appears only
// once the whole archive has been produced; on failure nothing is left
// behind.
func (p *Pipeline) ExportFile(ctx context.Context, path string, m *Map, v codec.Version) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &ExportError{Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = p.export(ctx, tmp, m, v, filepath.Base(path)); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return &ExportError{Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}

// Export writes m to w as a version v archive and returns the number of
// bytes written. All members are produced before the first byte reaches w,
// so a failure never leaves a partial archive.
func (p *Pipeline) Export(ctx context.Context, w io.Writer, m *Map, v codec.Version) (int64, error) {
	return p.export(ctx, w, m, v, "")
}

func (p *Pipeline) export(ctx context.Context, w io.Writer, m *Map, v codec.Version, name string) (n int64, err error) {
	start := time.Now()
	ctx, span := p.tracer.StartSpan(ctx, "beatmap.export",
		tracing.AttrArchive.String(name), tracing.AttrVersion.String(v.String()),
		tracing.AttrProvider.String(p.base.ProviderName()))
	cl := logging.NewContextLogger(ctx, p.logger)
	defer func() {
		if err != nil {
			p.metrics.RecordFailure(ctx, metrics.Export, err)
			p.logger.LogError(err, "export failed", semconv.Archive, name, semconv.Version, v.String())
		} else {
			p.metrics.RecordArchive(ctx, metrics.Export, n, time.Since(start))
			cl.Info("export finished", semconv.Archive, name, semconv.Version, v.String(),
				"bytes", n, semconv.DurationMs, time.Since(start).Milliseconds())
		}
		p.tracer.Finish(span, err)
	}()

	if m == nil {
		return 0, &ExportError{Err: errors.New("nil map")}
	}
	if !v.Valid() {
		return 0, &ExportError{Err: &codec.UnsupportedVersionError{Kind: "Archive", Version: v}}
	}
	o, err := p.songOptions(m.Song)
	if err != nil {
		return 0, &ExportError{Err: err}
	}

	song := m.Song
	song.Difficulties = make([]wrapper.DifficultyInfo, len(m.Difficulties))
	for i, d := range m.Difficulties {
		info := d.Info
		if v != m.Version {
			// names chosen for another format would carry the wrong extension
			info.BeatmapFilename, info.LightshowFilename = "", ""
		}
		song.Difficulties[i] = info
	}

	outputs := make([]map[string][]byte, len(m.Difficulties))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range m.Difficulties {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.exportDifficulty(gctx, v, song.Difficulties[i], m.Difficulties[i].Beatmap, o)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return 0, err
	}

	done := cl.Stage("info", semconv.Version, container.InfoVersionFor(v).String())
	members, err := p.exportInfo(v, song, o)
	done()
	if err != nil {
		return 0, err
	}
	for _, out := range outputs {
		for member, data := range out {
			if err = addMember(members, member, data); err != nil {
				return 0, err
			}
		}
	}
	for member, data := range m.Files {
		if _, generated := members[member]; generated {
			cl.Warn("dropping carried file shadowed by generated member", semconv.Member, member)
			continue
		}
		members[member] = data
	}

	var buf bytes.Buffer
	if err = writeZip(&buf, members); err != nil {
		return 0, &ExportError{Err: err}
	}
	if n, err = buf.WriteTo(w); err != nil {
		return n, &ExportError{Err: err}
	}
	return n, nil
}

func (p *Pipeline) exportInfo(v codec.Version, song wrapper.Song, o *codec.Options) (map[string][]byte, error) {
	iv := container.InfoVersionFor(v)
	infoName := container.InfoFilenameFor(v)
	for i, d := range song.Difficulties {
		if d.BeatmapFilename == "" {
			song.Difficulties[i].BeatmapFilename = container.BeatmapFilename(v, d)
		}
		if v == codec.V4 && d.LightshowFilename == "" {
			song.Difficulties[i].LightshowFilename = container.LightshowFilename(d)
		}
	}

	raw, err := container.Infos.Serialize(iv, song, o)
	if err != nil {
		return nil, &ExportError{Member: infoName, Err: err}
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &ExportError{Member: infoName, Err: err}
	}
	members := map[string][]byte{infoName: data}

	if v == codec.V4 {
		raw, err := container.AudioData.Serialize(codec.V4, container.AudioFor(song, o), o)
		if err != nil {
			return nil, &ExportError{Member: container.AudioDataFilename, Err: err}
		}
		if members[container.AudioDataFilename], err = json.Marshal(raw); err != nil {
			return nil, &ExportError{Member: container.AudioDataFilename, Err: err}
		}
	}
	return members, nil
}

func (p *Pipeline) exportDifficulty(ctx context.Context, v codec.Version, info wrapper.DifficultyInfo, bm wrapper.Beatmap, o *codec.Options) (out map[string][]byte, err error) {
	ctx, span := p.tracer.StartSpan(ctx, "beatmap.difficulty", tracing.AttrDifficulty.String(info.Key()))
	defer func() { p.tracer.Finish(span, err) }()
	done := logging.NewContextLogger(ctx, p.logger).Stage("serialize", semconv.Difficulty, info.Key())
	defer done()

	member := container.BeatmapFilename(v, info)
	s, err := container.SerializeBeatmap(v, bm, o)
	if err != nil {
		return nil, &ExportError{Member: member, Err: err}
	}
	beatmap, lightshow, err := s.Encode()
	if err != nil {
		return nil, &ExportError{Member: member, Err: err}
	}

	out = map[string][]byte{member: beatmap}
	if lightshow != nil {
		out[container.LightshowFilename(info)] = lightshow
	}

	counts := bm.Counts()
	tracing.RecordCounts(span, counts)
	p.metrics.RecordEntities(ctx, metrics.Export, v.String(), counts)
	return out, nil
}

// addMember adds a generated member. Two difficulties may share a file,
// such as one lightshow, only when they produce identical bytes.
func addMember(members map[string][]byte, name string, data []byte) error {
	if prev, ok := members[name]; ok && !bytes.Equal(prev, data) {
		return &ExportError{Member: name, Err: fmt.Errorf("%w: %s", ErrDuplicateMember, name)}
	}
	members[name] = data
	return nil
}
