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

// Package composite blends pixels onto opaque RGBA canvases.
//
// Every drawing operation of the sheet renderer ends up in [Blend], so that
// two call sites given the same inputs produce the same bytes.
// Destinations are always opaque, and the alpha channel of every written
// pixel is set to 255.
package composite

import (
	"image"
	"image/color"
)

// Blend composites a single straight-alpha source colour onto dst at (x, y).
//
// The effective opacity is coverage·src.A/255, where coverage is in [0, 1].
// Each colour channel becomes src·α + dst·(1−α), rounded to the nearest
// integer.  Coordinates outside dst are ignored.
func Blend(dst *image.NRGBA, x, y int, src color.NRGBA, coverage float32) {
	if !(image.Point{X: x, Y: y}.In(dst.Rect)) {
		return
	}
	alpha := coverage * float32(src.A) / 255
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}

	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	p[0] = mix(src.R, p[0], alpha)
	p[1] = mix(src.G, p[1], alpha)
	p[2] = mix(src.B, p[2], alpha)
	p[3] = 0xff
}

func mix(s, d uint8, alpha float32) uint8 {
	v := float32(s)*alpha + float32(d)*(1-alpha)
	return uint8(v + 0.5)
}

// Draw composites src onto dst, with the top-left corner of src placed at
// the point at.  Each source pixel is blended using its own alpha value.
// Parts of src which fall outside dst are clipped.
func Draw(dst, src *image.NRGBA, at image.Point) {
	r := src.Rect.Sub(src.Rect.Min).Add(at).Intersect(dst.Rect)
	if r.Empty() {
		return
	}
	delta := src.Rect.Min.Sub(at)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := src.PixOffset(x+delta.X, y+delta.Y)
			s := src.Pix[i : i+4 : i+4]
			Blend(dst, x, y, color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}, 1)
		}
	}
}

// Fill sets every pixel of dst inside r to the opaque colour c.
func Fill(dst *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(dst.Rect)
	c.A = 0xff
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := dst.PixOffset(x, y)
			p := dst.Pix[i : i+4 : i+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
}

// NewCanvas allocates an opaque w×h canvas filled with c.
func NewCanvas(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	Fill(img, img.Rect, c)
	return img
}

// White is the background colour of pages and tickets.
var White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
