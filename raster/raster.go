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

// Package raster computes anti-aliased pixel coverage for filled outlines.
//
// The sheet renderer uses it to draw glyph outlines: each glyph is turned
// into a path in font design units, mapped to device pixels by the
// rasteriser's transformation matrix, and the resulting coverage values
// are used as alpha when blending the text colour onto the ticket.
//
// Coverage is the exact signed area of the outline within each pixel,
// computed with the cover/area accumulation technique also used by
// FreeType and font-rs.  Curves are flattened into line segments first.
package raster

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Rule selects how winding numbers map to coverage.
type Rule int

// These are the supported fill rules.
const (
	NonZero Rule = iota
	EvenOdd
)

// EmitFunc receives the coverage of one row of pixels.  The coverage of
// pixel (xMin+i, y) is coverage[i], a value in [0, 1].  The slice is only
// valid for the duration of the call.
type EmitFunc func(y, xMin int, coverage []float32)

// Rasterizer converts outlines into per-pixel coverage values.
//
// A Rasterizer keeps its working buffers between calls, so that drawing
// many glyphs with the same instance does not allocate once the buffers
// have grown to their working size.  A Rasterizer is not safe for
// concurrent use.
type Rasterizer struct {
	// CTM maps path coordinates to device pixels.  Must be non-singular.
	CTM matrix.Matrix

	// Clip bounds the output, in device pixels.  The coordinates must be
	// integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the line segments used to approximate it.  Must be positive.
	Flatness float64

	// areaThreshold is the largest bounding box area, in pixels, for which
	// the whole path is accumulated into one two-dimensional buffer.
	// Larger paths are processed one scanline at a time.
	areaThreshold int

	edges     []edge
	active    []int
	cover     []float32
	area      []float32
	touched   []bool
	crossings []float64

	bboxEmpty                  bool
	bxMin, bxMax, byMin, byMax float64
}

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
}

// NewRasterizer returns a Rasterizer with the identity transformation and
// the default flatness.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.areaThreshold = defaultAreaThreshold

	r.edges = r.edges[:0]
	r.active = r.active[:0]
	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.touched = r.touched[:0]
	r.crossings = r.crossings[:0]
}

// Fill rasterises the interior of p according to rule.
// Rows without any coverage are not reported.  Open subpaths are closed
// implicitly.
func (r *Rasterizer) Fill(p path.Path, rule Rule, emit EmitFunc) {
	xMin, xMax, yMin, yMax, ok := r.collect(p)
	if !ok {
		return
	}
	if (xMax-xMin)*(yMax-yMin) < r.areaThreshold {
		r.fillBuffered(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillScanlines(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// collect flattens p into r.edges and returns the integer bounding box of
// the edges, intersected with the clip rectangle.
func (r *Rasterizer) collect(p path.Path) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.bboxEmpty = true

	var cur, start vec.Vec2
	open := false
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if open && cur != start {
				r.addEdge(cur, start)
			}
			cur = pts[0]
			start = cur
			open = true
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuad(cur, pts[0], pts[1])
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2])
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
			open = false
		}
	}
	if open && cur != start {
		r.addEdge(cur, start)
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.bxMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.bxMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.byMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.byMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge maps the segment from p0 to p1 into device space and records it.
// Horizontal segments do not contribute to coverage and are dropped.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	m := r.CTM
	x0 := m[0]*p0.X + m[2]*p0.Y + m[4]
	y0 := m[1]*p0.X + m[3]*p0.Y + m[5]
	x1 := m[0]*p1.X + m[2]*p1.Y + m[4]
	y1 := m[1]*p1.X + m[3]*p1.Y + m[5]

	dy := y1 - y0
	if math.Abs(dy) < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{x0: x0, y0: y0, x1: x1, y1: y1, dxdy: (x1 - x0) / dy})

	lx, hx := min(x0, x1), max(x0, x1)
	ly, hy := min(y0, y1), max(y0, y1)
	if r.bboxEmpty {
		r.bxMin, r.bxMax, r.byMin, r.byMax = lx, hx, ly, hy
		r.bboxEmpty = false
		return
	}
	r.bxMin = min(r.bxMin, lx)
	r.bxMax = max(r.bxMax, hx)
	r.byMin = min(r.byMin, ly)
	r.byMax = max(r.byMax, hy)
}

// deviceLength returns the length of the vector v after applying the
// linear part of the CTM.
func (r *Rasterizer) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

// flattenQuad approximates the quadratic Bézier curve p0, p1, p2 by line
// segments.  The segment count follows from the device-space size of the
// second difference of the control points.
func (r *Rasterizer) flattenQuad(p0, p1, p2 vec.Vec2) {
	d := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if d > r.Flatness {
		n = int(math.Ceil(math.Sqrt(d / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates the cubic Bézier curve p0, ..., p3 by line
// segments, using Wang's formula for the segment count.
func (r *Rasterizer) flattenCubic(p0, p1, p2, p3 vec.Vec2) {
	d := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if nf := math.Sqrt(3 * d / (4 * r.Flatness)); nf > 1 {
		n = int(math.Ceil(nf))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		r.addEdge(prev, pt)
		prev = pt
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// horizontalEdgeThreshold is the smallest vertical extent of an edge
	// which still contributes to coverage.
	horizontalEdgeThreshold = 1e-10

	// defaultAreaThreshold is the bounding box area, in pixels, from which
	// on the scanline algorithm is used.  Glyphs at ticket resolution are
	// almost always below this.
	defaultAreaThreshold = 65536
)
