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

// Package assemble places rendered tickets on pages.
//
// A [Sheet] tiles tickets onto a single raster page, for previews.  A
// [Document] tiles tickets across as many PDF pages as needed.  Both use
// the grid arithmetic of package geometry, so that the two outputs agree
// on where each ticket goes.
package assemble

import (
	"image"

	"seehuhn.de/go/sheet/composite"
	"seehuhn.de/go/sheet/geometry"
)

// Sheet is a raster page which is filled with tickets in row-major order.
type Sheet struct {
	// Image is the page.  It is opaque and starts out white.
	Image *image.NRGBA

	layout *geometry.Layout
	n      int
}

// NewSheet allocates a blank page for the given layout.
func NewSheet(l *geometry.Layout) *Sheet {
	return &Sheet{
		Image:  composite.NewCanvas(l.PageWidth, l.PageHeight, composite.White),
		layout: l,
	}
}

// Place composites ticket into the next free cell, shifted by offset
// relative to the top-left corner of the cell.  If all cells are taken,
// the page is not modified and Place returns false.
func (s *Sheet) Place(ticket *image.NRGBA, offset image.Point) bool {
	if s.Full() {
		return false
	}
	x, y := s.layout.Cell(s.n)
	composite.Draw(s.Image, ticket, image.Pt(x, y).Add(offset))
	s.n++
	return true
}

// Len returns the number of tickets placed so far.
func (s *Sheet) Len() int {
	return s.n
}

// Full reports whether every cell of the page is taken.
func (s *Sheet) Full() bool {
	return s.n >= s.layout.PerPage()
}
