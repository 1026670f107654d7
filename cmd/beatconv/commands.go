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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"rivaas.dev/beatmap/archive"
	"rivaas.dev/beatmap/config"
	configcodec "rivaas.dev/beatmap/config/codec"
	problem "rivaas.dev/beatmap/errors"
)

const problemBaseURL = "https://rivaas.dev/beatmap/problems"

// entityColumns orders the per-kind counts in reports.
var entityColumns = []string{"ColorNote", "BombNote", "Obstacle", "BasicEvent", "Bookmark"}

func runConvert(ctx context.Context, rt *runtime, stdout io.Writer, in, out string) (string, error) {
	m, err := rt.pipeline.ImportFile(ctx, in)
	if err != nil {
		return in, err
	}
	target := rt.settings.Target
	if err = rt.pipeline.ExportFile(ctx, out, m, target); err != nil {
		return out, err
	}

	fmt.Fprintf(stdout, "%s (%s) -> %s (%s): %d difficulties",
		filepath.Base(in), m.Version, filepath.Base(out), target, len(m.Difficulties))
	if m.SkippedEvents > 0 {
		fmt.Fprintf(stdout, ", %d events on unknown tracks skipped", m.SkippedEvents)
	}
	fmt.Fprintln(stdout)
	return "", nil
}

func runInspect(ctx context.Context, rt *runtime, stdout io.Writer, in, format string) (string, error) {
	m, err := rt.pipeline.ImportFile(ctx, in)
	if err != nil {
		return in, err
	}

	if format == "text" {
		return "", writeSummaryText(stdout, m)
	}
	enc, err := configcodec.GetEncoder(configcodec.Type(format))
	if err != nil {
		return "", err
	}
	data, err := enc.Encode(summarize(m))
	if err != nil {
		return "", err
	}
	_, err = stdout.Write(data)
	return "", err
}

// summarize describes m with plain maps so every document encoder can
// render it.
func summarize(m *archive.Map) map[string]any {
	difficulties := make([]map[string]any, 0, len(m.Difficulties))
	for _, d := range m.Difficulties {
		counts := d.Beatmap.Counts()
		entities := make(map[string]any, len(counts))
		for kind, n := range counts {
			entities[kind] = n
		}
		difficulties = append(difficulties, map[string]any{
			"characteristic":  d.Info.CharacteristicName(),
			"difficulty":      string(d.Info.Difficulty),
			"note_jump_speed": d.Info.NoteJumpSpeed,
			"entities":        entities,
		})
	}

	files := make([]string, 0, len(m.Files))
	for name := range m.Files {
		files = append(files, name)
	}
	slices.Sort(files)

	return map[string]any{
		"version":        m.Version.String(),
		"title":          m.Song.Title,
		"artist":         m.Song.Artist,
		"mapper":         m.Song.Mapper,
		"bpm":            m.Song.BPM,
		"skipped_events": m.SkippedEvents,
		"files":          files,
		"difficulties":   difficulties,
	}
}

func runValidate(ctx context.Context, rt *runtime, stdout io.Writer, paths []string) (string, error) {
	var (
		errs  []error
		first string
	)
	for _, path := range paths {
		m, err := rt.pipeline.ImportFile(ctx, path)
		if err != nil {
			if first == "" {
				first = path
			}
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			fmt.Fprintf(stdout, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%s, %d difficulties)\n", path, m.Version, len(m.Difficulties))
	}
	if len(errs) == 0 {
		return "", nil
	}
	return first, fmt.Errorf("%d of %d archives failed: %w", len(errs), len(paths), errors.Join(errs...))
}

func runConfig(stdout, stderr io.Writer, cfg *config.Config, format string) int {
	data, err := cfg.Dump(configcodec.Type(format))
	if err != nil {
		fmt.Fprintf(stderr, "beatconv: %v\n", err)
		return exitFailure
	}
	if _, err = stdout.Write(data); err != nil {
		return exitFailure
	}
	return exitOK
}

// reportFailure writes err as a problem document and returns code.
func reportFailure(stderr io.Writer, format, instance string, err error, code int) int {
	f, ferr := problem.New(format, problemBaseURL)
	if ferr != nil {
		fmt.Fprintf(stderr, "beatconv: %v\n", err)
		return code
	}
	if encErr := f.Format(instance, err).Encode(stderr); encErr != nil {
		fmt.Fprintf(stderr, "beatconv: %v\n", err)
	}
	return code
}
