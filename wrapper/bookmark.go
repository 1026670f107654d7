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

package wrapper

import "rivaas.dev/beatmap/internal/numeric"

// Bookmark is a named marker on the timeline. Color is a "#rrggbb" string.
type Bookmark struct {
	Time  float64 `json:"time"`
	Name  string  `json:"name"`
	Color string  `json:"color" validate:"omitempty,hexcolor"`
}

// ID returns the bookmark's beat as a string.
func (b Bookmark) ID() string {
	return formatNum(b.Time)
}

// BookmarkPalette is the fixed cycle of default bookmark colors.
var BookmarkPalette = [...]string{
	"#f50057",
	"#d500f9",
	"#3d5afe",
	"#00b0ff",
	"#1de9b6",
	"#ffea00",
}

// PaletteColor returns the palette color for the bookmark at index i.
func PaletteColor(i int) string {
	return BookmarkPalette[int(numeric.Mod(float64(i), float64(len(BookmarkPalette))))]
}

// NextBookmarkColor picks the color for a new bookmark: the first palette
// color not yet used, or the cycle position after the last bookmark when
// every color is taken.
func NextBookmarkColor(existing []Bookmark) string {
	used := make(map[string]bool, len(existing))
	for _, b := range existing {
		used[b.Color] = true
	}
	for _, c := range BookmarkPalette {
		if !used[c] {
			return c
		}
	}
	return PaletteColor(len(existing))
}
