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

package entity

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"rivaas.dev/beatmap/codec"
	"rivaas.dev/beatmap/wrapper"
)

type bookmarkV2 struct {
	Time  float64   `json:"_time"`
	Name  string    `json:"_name"`
	Color []float64 `json:"_color,omitempty"`
}

type bookmarkV3 struct {
	B float64   `json:"b"`
	N string    `json:"n"`
	C []float64 `json:"c,omitempty"`
}

// bookmarkColor returns the hex color to write, falling back to the palette
// color of the bookmark's position.
func bookmarkColor(b wrapper.Bookmark, o *codec.Options) string {
	if b.Color != "" {
		return b.Color
	}
	return wrapper.PaletteColor(o.Index())
}

// ColorToRGB converts "#rrggbb" to an RGB triple in [0, 1].
func ColorToRGB(hex string) ([]float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("bookmark color %q: %w", hex, err)
	}
	return []float64{c.R, c.G, c.B}, nil
}

// RGBToColor converts an RGB triple to "#rrggbb". Extra components such as
// alpha are ignored.
func RGBToColor(rgb []float64) string {
	if len(rgb) < 3 {
		return ""
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.Clamped().Hex()
}

func encodeBookmark(b wrapper.Bookmark, o *codec.Options) (beat float64, rgb []float64, err error) {
	if err := check("Bookmark", b); err != nil {
		return 0, nil, err
	}
	rgb, err = ColorToRGB(bookmarkColor(b, o))
	if err != nil {
		return 0, nil, &codec.InvalidEntityError{Kind: "Bookmark", Err: err}
	}
	return b.Time + o.EditorOffset(), rgb, nil
}

func decodeBookmark(beat float64, name string, rgb []float64, o *codec.Options) wrapper.Bookmark {
	color := RGBToColor(rgb)
	if color == "" {
		color = wrapper.PaletteColor(o.Index())
	}
	return wrapper.Bookmark{Time: beat - o.EditorOffset(), Name: name, Color: color}
}

var bookmarkV3Entry = codec.Define(schemas.MustGet("bookmark.v3"),
	func(b wrapper.Bookmark, o *codec.Options) (bookmarkV3, error) {
		beat, rgb, err := encodeBookmark(b, o)
		if err != nil {
			return bookmarkV3{}, err
		}
		return bookmarkV3{B: beat, N: b.Name, C: rgb}, nil
	},
	func(s bookmarkV3, o *codec.Options) (wrapper.Bookmark, error) {
		return decodeBookmark(s.B, s.N, s.C, o), nil
	})

// Bookmarks is the bookmark codec. Bookmarks live in the custom data of
// version 2 and later files; version 1 has nowhere to store them. A
// bookmark without a color takes the palette color of its index, passed
// through [codec.Options.At].
var Bookmarks = codec.NewRegistry("Bookmark", codec.Table[wrapper.Bookmark]{
	V2: codec.Define(schemas.MustGet("bookmark.v2"),
		func(b wrapper.Bookmark, o *codec.Options) (bookmarkV2, error) {
			beat, rgb, err := encodeBookmark(b, o)
			if err != nil {
				return bookmarkV2{}, err
			}
			return bookmarkV2{Time: beat, Name: b.Name, Color: rgb}, nil
		},
		func(s bookmarkV2, o *codec.Options) (wrapper.Bookmark, error) {
			return decodeBookmark(s.Time, s.Name, s.Color, o), nil
		}),
	V3: bookmarkV3Entry,
	V4: bookmarkV3Entry,
})
