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
	"image"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/sheet/composite"
	"seehuhn.de/go/sheet/raster"
)

// Anchor returns the top-left corner of a w×h text box, given the anchor
// point (x, y) and the alignment.  Unknown alignment values are treated
// as left and top.
func Anchor(x, y, w, h float64, align Align, valign VAlign) (float64, float64) {
	switch align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}
	switch valign {
	case VAlignMiddle:
		y -= h / 2
	case VAlignBottom:
		y -= h
	}
	return x, y
}

func (r *Renderer) drawText(dst *image.NRGBA, s *Text, text string, sc Scale) error {
	if text == "" {
		return nil
	}
	if r.Face == nil {
		return ErrNoFont
	}

	size := s.FontSize * (sc.X + sc.Y) / 2
	if size <= 0 {
		return nil
	}
	col, err := ParseColor(s.Color)
	if err != nil {
		col = black
	}

	line := r.Face.Layout(text, size)
	x, y := Anchor(s.X*sc.X, s.Y*sc.Y, line.Width, line.Height, s.Align, s.VAlign)
	baseline := y + line.Ascent

	b := dst.Rect
	r.ras.Reset(rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	})
	emit := func(row, xMin int, coverage []float32) {
		for i, c := range coverage {
			composite.Blend(dst, xMin+i, row, col, c)
		}
	}

	pen := x
	for i, gid := range line.Glyphs {
		// font units have y pointing up, pixel rows count downwards
		r.ras.CTM = matrix.Matrix{line.Scale, 0, 0, -line.Scale, pen, baseline}
		r.ras.Fill(r.Face.outline(gid), raster.NonZero, emit)
		pen += line.Advances[i]
	}
	return nil
}
