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
	"image/color"

	"seehuhn.de/go/sheet/composite"
)

// placeholderBars is the number of bars in the placeholder pattern.
const placeholderBars = 10

// drawBarcode fills the scaled box of s with a fixed pattern of vertical
// bars on a white background.  The pattern only marks where a barcode
// will go.  It does not encode text.
func drawBarcode(dst *image.NRGBA, s *Barcode, text string, sc Scale) {
	if text == "" {
		return
	}
	r := sc.rect(s.Box)
	if r.Empty() {
		return
	}
	composite.Draw(dst, Placeholder(r.Dx(), r.Dy()), r.Min)
}

// Placeholder returns a w×h image with the placeholder bar pattern:
// ten black bars of width max(w/20, 1) pixels, separated by gaps of the
// same width, on a white background.
func Placeholder(w, h int) *image.NRGBA {
	img := composite.NewCanvas(w, h, composite.White)
	bw := max(w/20, 1)
	for i := range placeholderBars {
		x := i * 2 * bw
		composite.Fill(img, image.Rect(x, 0, x+bw, h), color.NRGBA{A: 0xff})
	}
	return img
}
