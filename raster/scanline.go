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

package raster

import (
	"cmp"
	"math"
	"slices"
)

// Each edge crossing a pixel contributes two quantities:
//
//	cover = ±dy            the signed vertical extent within the pixel
//	area  = cover·(1−xf)   where xf is the horizontal position in the pixel
//
// Scanning a row from left to right, the coverage of pixel i is the sum of
// the cover values of all pixels left of i plus area[i].  Folding this
// winding value by the fill rule gives a coverage in [0, 1].

// accumulate adds the contribution of e within scanline y to the row
// buffers cover and area, which start at device column x0 and end before
// column x1.  Contributions left of the buffer are folded into the first
// pixel, since they affect every pixel of the row.
func (r *Rasterizer) accumulate(e *edge, y int, cover, area []float32, x0, x1 int) {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	if bot <= top {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xa := e.x0 + e.dxdy*(top-e.y0)
	xb := e.x0 + e.dxdy*(bot-e.y0)
	pixA := int(math.Floor(min(xa, xb)))
	pixB := int(math.Floor(max(xa, xb)))

	switch {
	case pixB < x0:
		c := sign * float32(bot-top)
		cover[0] += c
		area[0] += c
		return
	case pixA >= x1:
		return
	case pixA == pixB:
		r.deposit(e, top, bot, sign, cover, area, x0, x1)
		return
	}

	// The edge spans several pixel columns: split it where it crosses
	// integer x coordinates and deposit each piece separately.
	r.crossings = append(r.crossings[:0], top, bot)
	dydx := 1 / e.dxdy
	for x := pixA + 1; x <= pixB; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > top && yx < bot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)
	for i := range len(r.crossings) - 1 {
		r.deposit(e, r.crossings[i], r.crossings[i+1], sign, cover, area, x0, x1)
	}
}

// deposit adds the part of e between top and bot, which must lie within a
// single pixel column, to the row buffers.
func (r *Rasterizer) deposit(e *edge, top, bot float64, sign float32, cover, area []float32, x0, x1 int) {
	if bot <= top {
		return
	}
	c := sign * float32(bot-top)
	mid := e.x0 + e.dxdy*((top+bot)/2-e.y0)
	pix := int(math.Floor(mid))

	switch {
	case pix < x0:
		cover[0] += c
		area[0] += c
	case pix < x1:
		i := pix - x0
		cover[i] += c
		area[i] += c * float32(1-(mid-float64(pix)))
	}
}

// touches reports whether e has a non-empty intersection with scanline y.
func touches(e *edge, y int) bool {
	top := max(float64(y), min(e.y0, e.y1))
	bot := min(float64(y+1), max(e.y0, e.y1))
	return bot > top
}

// integrate turns the accumulated cover and area values of one row into
// coverage, in place in cover.
func integrate(cover, area []float32, rule Rule) {
	var acc float32
	for i := range cover {
		w := acc + area[i]
		acc += cover[i]
		if w < 0 {
			w = -w
		}
		if rule == EvenOdd {
			w -= 2 * float32(int(w/2))
			if w > 1 {
				w = 2 - w
			}
		} else if w > 1 {
			w = 1
		}
		cover[i] = w
	}
}

// trim returns the sub-slice of coverage between the first and last
// non-zero entries, and the index of the first one.
func trim(coverage []float32) ([]float32, int) {
	lo := 0
	for lo < len(coverage) && coverage[lo] == 0 {
		lo++
	}
	if lo == len(coverage) {
		return nil, 0
	}
	hi := len(coverage)
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// fillBuffered accumulates all edges into a two-dimensional buffer covering
// the bounding box before integrating the rows.  This avoids sorting the
// edges and is the faster method for small outlines such as glyphs.
func (r *Rasterizer) fillBuffered(xMin, xMax, yMin, yMax int, rule Rule, emit EmitFunc) {
	w, h := xMax-xMin, yMax-yMin
	r.cover = grow(r.cover, w*h)
	r.area = grow(r.area, w*h)

	r.touched = slices.Grow(r.touched[:0], h)[:h]
	clear(r.touched)

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * w
			r.accumulate(e, y, r.cover[off:off+w], r.area[off:off+w], xMin, xMax)
			if touches(e, y) {
				r.touched[row] = true
			}
		}
	}

	for row := range h {
		if !r.touched[row] {
			continue
		}
		off := row * w
		cov := r.cover[off : off+w]
		integrate(cov, r.area[off:off+w], rule)
		if t, i := trim(cov); t != nil {
			emit(yMin+row, xMin+i, t)
		}
	}
}

// fillScanlines processes one scanline at a time, keeping a list of the
// edges which intersect the current row.  Memory use is proportional to
// the width of the bounding box only.
func (r *Rasterizer) fillScanlines(xMin, xMax, yMin, yMax int, rule Rule, emit EmitFunc) {
	w := xMax - xMin
	r.cover = grow(r.cover, w)
	r.area = grow(r.area, w)

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < float64(y+1) {
			r.active = append(r.active, next)
			next++
		}
		if len(r.active) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if max(e.y0, e.y1) <= float64(y) {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			r.accumulate(e, y, r.cover, r.area, xMin, xMax)
			touched = touched || touches(e, y)
			i++
		}
		if !touched {
			continue
		}

		integrate(r.cover, r.area, rule)
		if t, i := trim(r.cover); t != nil {
			emit(y, xMin+i, t)
		}
	}
}

// grow returns buf resized to n zeroed elements, reusing its storage when
// possible.
func grow(buf []float32, n int) []float32 {
	buf = slices.Grow(buf[:0], n)[:n]
	clear(buf)
	return buf
}
