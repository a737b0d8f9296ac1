// seehuhn.de/go/sheet - variable-data ticket sheets
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package stamp

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
)

// ErrNoOutlines is returned by [ParseFace] for fonts without glyph
// outlines.
var ErrNoOutlines = errors.New("stamp: font has no glyph outlines")

// Face is a font prepared for drawing text stamps.
//
// Text is laid out one character at a time: every character is mapped to
// a glyph through the font's character map, and the pen advances by the
// glyph's advance width.  There is no kerning, no ligature substitution
// and no support for combining marks or bidirectional text.
type Face struct {
	font *sfnt.Font
	cmap cmap.Subtable
	upem float64
}

// ParseFace reads a TrueType or OpenType font.
func ParseFace(data []byte) (*Face, error) {
	font, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("stamp: cannot read font: %w", err)
	}
	if font.Outlines == nil {
		return nil, ErrNoOutlines
	}
	sub, err := font.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("stamp: font has no usable character map: %w", err)
	}
	return &Face{
		font: font,
		cmap: sub,
		upem: float64(font.UnitsPerEm),
	}, nil
}

// Line is a single line of text, laid out at a given font size.
// All lengths are in pixels.
type Line struct {
	Glyphs   []glyph.ID
	Advances []float64

	// Width is the sum of the advances.
	Width float64

	// Ascent is the distance from the top of the line to the baseline.
	Ascent float64

	// Height is the distance between the font's ascent and descent.
	Height float64

	// Scale converts font design units to pixels.
	Scale float64
}

// Layout lays out text at the given font size, in pixels per em.
// The text is normalised to Unicode NFC first.  Characters without a
// glyph map to glyph 0, the font's "missing glyph" symbol.
func (f *Face) Layout(text string, size float64) *Line {
	text = norm.NFC.String(text)

	q := size / f.upem
	l := &Line{
		Ascent: float64(f.font.Ascent) * q,
		Height: (float64(f.font.Ascent) - float64(f.font.Descent)) * q,
		Scale:  q,
	}
	for _, r := range text {
		gid := f.cmap.Lookup(r)
		adv := float64(f.font.GlyphWidth(gid)) * q
		l.Glyphs = append(l.Glyphs, gid)
		l.Advances = append(l.Advances, adv)
		l.Width += adv
	}
	return l
}

// outline returns the outline of a glyph in font design units, with the
// y axis pointing up.
func (f *Face) outline(gid glyph.ID) path.Path {
	return f.font.Outlines.Path(gid)
}
