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

package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/container"
	"rivaas.dev/beatmap/metrics"
	"rivaas.dev/beatmap/tracing"
	"rivaas.dev/beatmap/wrapper"
)

func speed(n int) *int { return &n }

func sampleBeatmap(notes int) wrapper.Beatmap {
	bm := wrapper.Beatmap{
		Bombs: []wrapper.BombNote{
			{BeatNum: 1.5, ColIndex: 1, RowIndex: 1},
		},
		Obstacles: []wrapper.Obstacle{
			{BeatNum: 4, BeatDuration: 2, ColIndex: 0, Colspan: 1, Type: wrapper.ObstacleFull},
		},
		Events: []wrapper.BasicEvent{
			{TrackID: 0, BeatNum: 1, Type: wrapper.EventOn, ColorType: wrapper.LightPrimary},
			{TrackID: 12, BeatNum: 3, Type: wrapper.EventValue, LaserSpeed: speed(3)},
		},
		Bookmarks: []wrapper.Bookmark{
			{Time: 16, Name: "Drop", Color: "#f50057"},
		},
	}
	for i := range notes {
		bm.Notes = append(bm.Notes, wrapper.ColorNote{
			BeatNum: float64(i + 1), ColIndex: float64(i % 4), RowIndex: float64(i % 3),
			Color: wrapper.ColorLeft, Direction: wrapper.DirectionDown,
		})
	}
	return bm
}

// sampleMap builds a map with two difficulties that every version can hold.
func sampleMap(v codec.Version) *Map {
	expert, hard := sampleBeatmap(4), sampleBeatmap(2)
	if v == codec.V1 {
		expert.Bookmarks, hard.Bookmarks = nil, nil
	}
	m := &Map{
		Version: v,
		Song: wrapper.Song{
			Title:            "Tidal",
			Artist:           "Wave Collective",
			BPM:              120,
			SongFilename:     "song.ogg",
			CoverArtFilename: "cover.jpg",
			Environment:      "DefaultEnvironment",
		},
		Difficulties: []Difficulty{
			{Info: wrapper.DifficultyInfo{Difficulty: wrapper.Expert, Characteristic: "Standard", NoteJumpSpeed: 16}, Beatmap: expert},
			{Info: wrapper.DifficultyInfo{Difficulty: wrapper.Hard, Characteristic: "Standard", NoteJumpSpeed: 14}, Beatmap: hard},
		},
		Files: map[string][]byte{
			"song.ogg":  []byte("OggS fake audio"),
			"cover.jpg": {0xff, 0xd8, 0xff},
		},
	}
	for _, d := range m.Difficulties {
		m.Song.Difficulties = append(m.Song.Difficulties, d.Info)
	}
	return m
}

func export(t *testing.T, p *Pipeline, m *Map, v codec.Version) []byte {
	t.Helper()

	var buf bytes.Buffer
	n, err := p.Export(context.Background(), &buf, m, v)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func importBytes(p *Pipeline, data []byte) (*Map, error) {
	return p.Import(context.Background(), bytes.NewReader(data), int64(len(data)), "test.zip")
}

// members unpacks an archive produced by export.
func members(t *testing.T, data []byte) map[string][]byte {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = b
	}
	return out
}

func repack(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, writeZip(&buf, files))
	return buf.Bytes()
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
		errIs   error
	}{
		{name: "defaults"},
		{name: "workers", opts: []Option{WithWorkers(2)}},
		{name: "negative workers", opts: []Option{WithWorkers(-1)}, wantErr: true},
		{name: "zero member size", opts: []Option{WithMaxMemberSize(0)}, wantErr: true},
		{
			name:    "unknown provider",
			opts:    []Option{WithCodecOptions(codec.WithExtensionsProvider("nope"))},
			wantErr: true,
			errIs:   codec.ErrUnknownProvider,
		},
		{
			name: "known provider",
			opts: []Option{WithCodecOptions(codec.WithExtensionsProvider("mapping-extensions"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := New(tt.opts...)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Positive(t, p.workers)
				return
			}
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}

	assert.Panics(t, func() { MustNew(WithWorkers(-1)) })
}

func TestPipeline_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, v := range codec.Versions {
		t.Run(v.String(), func(t *testing.T) {
			t.Parallel()

			p := MustNew(WithWorkers(2))
			want := sampleMap(v)

			got, err := importBytes(p, export(t, p, want, v))
			require.NoError(t, err)

			assert.Equal(t, v, got.Version)
			assert.Equal(t, want.Song.Title, got.Song.Title)
			assert.InDelta(t, want.Song.BPM, got.Song.BPM, 1e-9)
			assert.Equal(t, want.Files, got.Files)
			assert.Zero(t, got.SkippedEvents)
			require.Len(t, got.Difficulties, 2)

			for _, d := range want.Difficulties {
				gd, ok := got.Find(d.Info.Key())
				require.True(t, ok, d.Info.Key())
				assert.Equal(t, d.Beatmap, gd.Beatmap)
			}
			assert.Equal(t, want.Counts(), got.Counts())
		})
	}
}

func TestPipeline_ExportLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version codec.Version
		want    []string
	}{
		{codec.V1, []string{"info.json", "Expert.json", "Hard.json"}},
		{codec.V2, []string{"Info.dat", "Expert.dat", "Hard.dat"}},
		{codec.V3, []string{"Info.dat", "Expert.dat", "Hard.dat"}},
		{codec.V4, []string{
			"Info.dat", "BPMInfo.dat",
			"Expert.beatmap.dat", "Expert.lightshow.dat",
			"Hard.beatmap.dat", "Hard.lightshow.dat",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			t.Parallel()

			files := members(t, export(t, MustNew(), sampleMap(tt.version), tt.version))
			for _, name := range append(tt.want, "song.ogg", "cover.jpg") {
				assert.Contains(t, files, name)
			}
			assert.Len(t, files, len(tt.want)+2)
		})
	}
}

func TestPipeline_ExportDeterministic(t *testing.T) {
	t.Parallel()

	p := MustNew(WithWorkers(4))
	m := sampleMap(codec.V4)

	first := export(t, p, m, codec.V4)
	for range 3 {
		assert.Equal(t, first, export(t, p, m, codec.V4))
	}
}

func TestPipeline_CrossVersion(t *testing.T) {
	t.Parallel()

	p := MustNew()
	m2, err := importBytes(p, export(t, p, sampleMap(codec.V2), codec.V2))
	require.NoError(t, err)
	require.Equal(t, codec.V2, m2.Version)

	data := export(t, p, m2, codec.V4)
	assert.Contains(t, members(t, data), "Expert.beatmap.dat")

	m4, err := importBytes(p, data)
	require.NoError(t, err)
	assert.Equal(t, codec.V4, m4.Version)
	for _, d := range m2.Difficulties {
		gd, ok := m4.Find(d.Info.Key())
		require.True(t, ok)
		assert.Equal(t, d.Beatmap, gd.Beatmap)
	}
	assert.Equal(t, m2.Files, m4.Files)
}

func TestPipeline_EditorOffset(t *testing.T) {
	t.Parallel()

	p := MustNew()
	m := sampleMap(codec.V3)
	m.Song.OffsetMs = 500

	got, err := importBytes(p, export(t, p, m, codec.V3))
	require.NoError(t, err)
	assert.InDelta(t, 500, got.Song.OffsetMs, 1e-9)

	gd, ok := got.Find("Standard/Expert")
	require.True(t, ok)
	assert.Equal(t, m.Difficulties[0].Beatmap, gd.Beatmap)
}

func TestPipeline_ImportErrors(t *testing.T) {
	t.Parallel()

	p := MustNew()
	v2 := members(t, export(t, p, sampleMap(codec.V2), codec.V2))

	v4Serial, err := container.SerializeBeatmap(codec.V4, sampleBeatmap(1), nil)
	require.NoError(t, err)
	v4Beatmap, _, err := v4Serial.Encode()
	require.NoError(t, err)

	without := func(name string) map[string][]byte {
		out := map[string][]byte{}
		for k, b := range v2 {
			if k != name {
				out[k] = b
			}
		}
		return out
	}
	replaced := func(name string, data []byte) map[string][]byte {
		out := without(name)
		out[name] = data
		return out
	}

	tests := []struct {
		name         string
		files        map[string][]byte
		wantErr      error
		wantLocation string
	}{
		{
			name:    "missing info",
			files:   map[string][]byte{"readme.txt": []byte("hi")},
			wantErr: ErrMissingInfo,
		},
		{
			name:         "missing difficulty",
			files:        without("Hard.dat"),
			wantErr:      ErrMissingMember,
			wantLocation: "Hard.dat",
		},
		{
			name:         "version mismatch",
			files:        replaced("Expert.dat", v4Beatmap),
			wantErr:      ErrVersionMismatch,
			wantLocation: "Expert.dat",
		},
		{
			name:         "not json",
			files:        replaced("Info.dat", []byte("{")),
			wantLocation: "Info.dat",
		},
		{
			name:         "unknown format",
			files:        replaced("Hard.dat", []byte(`{"foo": 1}`)),
			wantErr:      container.ErrUnknownFormat,
			wantLocation: "Hard.dat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := importBytes(p, repack(t, tt.files))
			require.Error(t, err)
			assert.Nil(t, m)

			var ie *ImportError
			require.ErrorAs(t, err, &ie)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, ie.Member)
			}
		})
	}
}

func TestPipeline_ImportCaseInsensitive(t *testing.T) {
	t.Parallel()

	p := MustNew()
	files := members(t, export(t, p, sampleMap(codec.V2), codec.V2))
	files["info.dat"] = files["Info.dat"]
	delete(files, "Info.dat")

	m, err := importBytes(p, repack(t, files))
	require.NoError(t, err)
	assert.Len(t, m.Difficulties, 2)
	assert.NotContains(t, m.Files, "info.dat")
}

func TestPipeline_EntityErrorLocation(t *testing.T) {
	t.Parallel()

	p := MustNew()
	files := members(t, export(t, p, sampleMap(codec.V3), codec.V3))
	files["Expert.dat"] = []byte(`{"version":"3.3.0","colorNotes":[{"b":1,"x":9,"y":0,"c":0,"d":1,"a":0}]}`)

	_, err := importBytes(p, repack(t, files))
	require.Error(t, err)

	var ie *ImportError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Expert.dat", ie.Member)
	assert.Contains(t, ie.Location(), "Expert.dat")
}

func TestPipeline_MemberTooLarge(t *testing.T) {
	t.Parallel()

	data := export(t, MustNew(), sampleMap(codec.V2), codec.V2)

	_, err := importBytes(MustNew(WithMaxMemberSize(8)), data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMemberTooLarge)
}

func TestPipeline_ExportErrors(t *testing.T) {
	t.Parallel()

	p := MustNew()

	t.Run("unsupported version", func(t *testing.T) {
		t.Parallel()

		_, err := p.Export(context.Background(), io.Discard, sampleMap(codec.V2), codec.Version(9))
		require.Error(t, err)
		assert.ErrorIs(t, err, codec.ErrUnsupportedVersion)
	})

	t.Run("nil map", func(t *testing.T) {
		t.Parallel()

		_, err := p.Export(context.Background(), io.Discard, nil, codec.V2)
		require.Error(t, err)
	})

	t.Run("bookmarks in v1", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, err := p.Export(context.Background(), &buf, sampleMap(codec.V2), codec.V1)
		require.Error(t, err)
		assert.Zero(t, buf.Len(), "nothing is written on failure")

		var ee *ExportError
		require.ErrorAs(t, err, &ee)
		assert.Contains(t, []string{"Expert.json", "Hard.json"}, ee.Member)
	})

	t.Run("invalid song", func(t *testing.T) {
		t.Parallel()

		m := sampleMap(codec.V2)
		m.Song.Title = ""
		_, err := p.Export(context.Background(), io.Discard, m, codec.V2)
		require.Error(t, err)

		var ee *ExportError
		require.ErrorAs(t, err, &ee)
		assert.Equal(t, "Info.dat", ee.Member)
	})

	t.Run("duplicate member", func(t *testing.T) {
		t.Parallel()

		m := sampleMap(codec.V2)
		for i := range m.Difficulties {
			m.Difficulties[i].Info.BeatmapFilename = "Same.dat"
		}
		_, err := p.Export(context.Background(), io.Discard, m, codec.V2)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateMember)
	})
}

func TestPipeline_GeneratedMembersWin(t *testing.T) {
	t.Parallel()

	p := MustNew()
	m := sampleMap(codec.V2)
	m.Files["Info.dat"] = []byte("stale")

	files := members(t, export(t, p, m, codec.V2))
	assert.NotEqual(t, []byte("stale"), files["Info.dat"])

	_, err := importBytes(p, repack(t, files))
	require.NoError(t, err)
}

func TestPipeline_Files(t *testing.T) {
	t.Parallel()

	p := MustNew()
	dir := t.TempDir()
	path := filepath.Join(dir, "out.zip")

	require.NoError(t, p.ExportFile(context.Background(), path, sampleMap(codec.V3), codec.V3))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file is renamed into place")

	m, err := p.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, codec.V3, m.Version)

	err = p.ExportFile(context.Background(), path, sampleMap(codec.V2), codec.V1)
	require.Error(t, err)
	entries, err = os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "failed export leaves no temporary file")

	_, err = p.ImportFile(context.Background(), filepath.Join(dir, "missing.zip"))
	require.Error(t, err)
}

func TestPipeline_Metrics(t *testing.T) {
	t.Parallel()

	recorder := metrics.TestingRecorder(t)
	p := MustNew(WithMetrics(recorder))

	data := export(t, p, sampleMap(codec.V3), codec.V3)
	_, err := importBytes(p, data)
	require.NoError(t, err)
	_, err = importBytes(p, repack(t, map[string][]byte{"x": nil}))
	require.Error(t, err)

	text := metrics.Text(t, recorder)
	assert.Contains(t, text, "beatmap_entities_total")
	assert.Contains(t, text, `direction="export"`)
	assert.Contains(t, text, `direction="import"`)
	assert.Contains(t, text, "beatmap_archive_size")
	assert.Contains(t, text, "beatmap_codec_failures_total")
}

func TestPipeline_Tracing(t *testing.T) {
	t.Parallel()

	tracer, spans := tracing.TestingTracer(t)
	p := MustNew(WithTracer(tracer))

	export(t, p, sampleMap(codec.V4), codec.V4)

	names := map[string]int{}
	for _, s := range spans.Ended() {
		names[s.Name()]++
	}
	assert.Equal(t, 1, names["beatmap.export"])
	assert.Equal(t, 2, names["beatmap.difficulty"])
}

func TestMap_Find(t *testing.T) {
	t.Parallel()

	m := sampleMap(codec.V2)

	d, ok := m.Find("Standard/Hard")
	require.True(t, ok)
	assert.Equal(t, wrapper.Hard, d.Info.Difficulty)

	_, ok = m.Find("OneSaber/Hard")
	assert.False(t, ok)

	counts := m.Counts()
	assert.Equal(t, 6, counts["ColorNote"])
	assert.Equal(t, 2, counts["BombNote"])
}
