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
	"fmt"
	"io"
	"os"
	goruntime "runtime"
	"strconv"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/common-nighthawk/go-figure"

	"rivaas.dev/beatmap/archive"
	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/extension"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
)

// bannerColors cycles across the columns of the figure.
var bannerColors = []string{"12", "14", "10", "11"}

// colorWriter downsamples ANSI output to what w supports. Anything that is
// not a terminal, or runs with NO_COLOR set, gets plain text.
func colorWriter(w io.Writer) *colorprofile.Writer {
	return colorprofile.NewWriter(w, os.Environ())
}

// field renders one "Label: value" line with the label padded to width.
func field(label string, width int, value any) string {
	return labelStyle.Render(fmt.Sprintf("%-*s", width, label+":")) + " " + valueStyle.Render(fmt.Sprint(value))
}

func writeSummaryText(w io.Writer, m *archive.Map) error {
	cw := colorWriter(w)

	const width = len("Skipped events:")
	lines := []string{
		field("Title", width, m.Song.Title),
		field("Artist", width, m.Song.Artist),
	}
	if m.Song.Mapper != "" {
		lines = append(lines, field("Mapper", width, m.Song.Mapper))
	}
	lines = append(lines,
		field("BPM", width, strconv.FormatFloat(m.Song.BPM, 'g', -1, 64)),
		field("Version", width, m.Version),
	)
	if m.SkippedEvents > 0 {
		lines = append(lines, field("Skipped events", width, m.SkippedEvents))
	}

	rows := make([][]string, 0, len(m.Difficulties))
	for _, d := range m.Difficulties {
		counts := d.Beatmap.Counts()
		row := make([]string, 0, len(entityColumns)+2)
		row = append(row, keyStyle.Render(d.Info.Key()), strconv.FormatFloat(d.Info.NoteJumpSpeed, 'g', -1, 64))
		for _, kind := range entityColumns {
			row = append(row, strconv.Itoa(counts[kind]))
		}
		rows = append(rows, row)
	}

	headers := append([]string{"DIFFICULTY", "NJS"}, entityColumns...)
	for i := range headers {
		headers[i] = strings.ToUpper(headers[i])
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Inherit(headerStyle)
			}
			if col > 0 {
				return style.Align(lipgloss.Right)
			}
			return style
		}).
		Headers(headers...).
		Rows(rows...)

	_, err := fmt.Fprintf(cw, "%s\n\n%s\n", strings.Join(lines, "\n"), t.Render())
	return err
}

// writeBanner prints the program name as a figure followed by what this
// build supports.
func writeBanner(w io.Writer) error {
	cw := colorWriter(w)

	var art strings.Builder
	for _, line := range figure.NewFigure("beatconv", "", false).Slicify() {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for i, r := range line {
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(bannerColors[i%len(bannerColors)])).Bold(true)
			art.WriteString(style.Render(string(r)))
		}
		art.WriteByte('\n')
	}

	versions := make([]string, len(codec.Versions))
	for i, v := range codec.Versions {
		versions[i] = v.String()
	}

	const width = len("Extensions:")
	_, err := fmt.Fprintf(cw, "%s\n%s\n%s\n%s\n%s\n",
		art.String(),
		field("Version", width, version),
		field("Go", width, goruntime.Version()),
		field("Formats", width, strings.Join(versions, ", ")),
		field("Extensions", width, strings.Join(extension.Default().Names(), ", ")),
	)
	return err
}
