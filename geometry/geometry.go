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

// Package geometry converts physical sheet measurements into pixel and point
// geometry.
//
// Both the raster preview and the PDF export derive their layout from this
// package, so that the two renderers agree on every derived dimension.
// Every conversion from millimetres to pixels uses [Pixels], which rounds
// half away from zero.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// MMPerInch is the number of millimetres in one inch.
const MMPerInch = 25.4

// PointsPerInch is the number of PDF user space units in one inch.
const PointsPerInch = 72

// Errors returned for degenerate sheet configurations.
var (
	// ErrEmptyGrid is returned when a sheet has zero rows or columns.
	ErrEmptyGrid = errors.New("geometry: grid has zero rows or columns")

	// ErrInvalidTicketSize is returned when margins and spacing leave no
	// room for the tickets.
	ErrInvalidTicketSize = errors.New("geometry: invalid ticket dimensions")

	// ErrTooLarge is returned when a page or ticket would exceed
	// MaxPixels in either direction.
	ErrTooLarge = errors.New("geometry: image too large")
)

// MaxPixels is the largest supported width or height, in pixels, of pages,
// tickets and templates.
const MaxPixels = 1 << 16

// CheckSize returns an error wrapping [ErrTooLarge] unless both w and h
// are at most MaxPixels.  Non-positive sizes are not checked.
func CheckSize(w, h int) error {
	if w > MaxPixels || h > MaxPixels {
		return fmt.Errorf("%w: %d×%d px exceeds %d px", ErrTooLarge, w, h, MaxPixels)
	}
	return nil
}

// Pixels converts a length in millimetres to device pixels at the given
// resolution.
func Pixels(mm, dpi float64) int {
	return int(math.Round(mm * dpi / MMPerInch))
}

// Points converts a length in millimetres to PDF user space units.
func Points(mm float64) float64 {
	return mm * PointsPerInch / MMPerInch
}

// Sheet describes the physical layout of a sheet of tickets.
// All lengths are in millimetres.
type Sheet struct {
	PaperWidth  float64 `json:"paper_width_mm"`
	PaperHeight float64 `json:"paper_height_mm"`

	Rows int `json:"rows"`
	Cols int `json:"cols"`

	MarginTop    float64 `json:"margin_top_mm"`
	MarginRight  float64 `json:"margin_right_mm"`
	MarginBottom float64 `json:"margin_bottom_mm"`
	MarginLeft   float64 `json:"margin_left_mm"`

	SpacingX float64 `json:"spacing_x_mm"`
	SpacingY float64 `json:"spacing_y_mm"`
}

// PerPage returns the number of tickets which fit on one sheet.
func (s *Sheet) PerPage() int {
	return s.Rows * s.Cols
}

// TicketSize returns the size of a single ticket in millimetres.
func (s *Sheet) TicketSize() (w, h float64, err error) {
	if s.Rows <= 0 || s.Cols <= 0 {
		return 0, 0, ErrEmptyGrid
	}
	w = cellSize(s.PaperWidth, s.MarginLeft, s.MarginRight, s.SpacingX, s.Cols)
	h = cellSize(s.PaperHeight, s.MarginTop, s.MarginBottom, s.SpacingY, s.Rows)
	if !(w > 0) || !(h > 0) {
		return 0, 0, fmt.Errorf("%w: %gx%g mm", ErrInvalidTicketSize, w, h)
	}
	return w, h, nil
}

// Validate checks that the sheet describes at least one ticket of positive
// size.
func (s *Sheet) Validate() error {
	_, _, err := s.TicketSize()
	return err
}

func cellSize(paper, m1, m2, spacing float64, n int) float64 {
	return (paper - m1 - m2 - float64(n-1)*spacing) / float64(n)
}

// Layout is the pixel geometry of one sheet at a fixed resolution.
type Layout struct {
	Rows, Cols int

	PageWidth, PageHeight int

	MarginLeft, MarginTop int
	SpacingX, SpacingY    int

	TicketWidth, TicketHeight int
}

// NewLayout computes the pixel layout of a sheet.
//
// Page size, margins, spacing and ticket size are each rounded
// independently, in this order.
func NewLayout(s *Sheet, dpi float64) (*Layout, error) {
	if !(dpi > 0) {
		return nil, fmt.Errorf("geometry: invalid resolution %g dpi", dpi)
	}
	tw, th, err := s.TicketSize()
	if err != nil {
		return nil, err
	}

	l := &Layout{
		Rows: s.Rows,
		Cols: s.Cols,

		PageWidth:  Pixels(s.PaperWidth, dpi),
		PageHeight: Pixels(s.PaperHeight, dpi),

		MarginLeft: Pixels(s.MarginLeft, dpi),
		MarginTop:  Pixels(s.MarginTop, dpi),
		SpacingX:   Pixels(s.SpacingX, dpi),
		SpacingY:   Pixels(s.SpacingY, dpi),

		TicketWidth:  Pixels(tw, dpi),
		TicketHeight: Pixels(th, dpi),
	}
	if l.TicketWidth <= 0 || l.TicketHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d px at %g dpi",
			ErrInvalidTicketSize, l.TicketWidth, l.TicketHeight, dpi)
	}
	if err := l.checkPage(); err != nil {
		return nil, err
	}
	return l, nil
}

// NewFixedLayout computes the pixel layout of a sheet for tickets which
// have already been rendered at w×h pixels.  The cells have the size of
// the tickets, rather than the size derived from the sheet.
func NewFixedLayout(s *Sheet, dpi float64, w, h int) (*Layout, error) {
	if !(dpi > 0) {
		return nil, fmt.Errorf("geometry: invalid resolution %g dpi", dpi)
	}
	if s.Rows <= 0 || s.Cols <= 0 {
		return nil, ErrEmptyGrid
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d px", ErrInvalidTicketSize, w, h)
	}
	if err := CheckSize(w, h); err != nil {
		return nil, err
	}
	l := &Layout{
		Rows: s.Rows,
		Cols: s.Cols,

		PageWidth:  Pixels(s.PaperWidth, dpi),
		PageHeight: Pixels(s.PaperHeight, dpi),

		MarginLeft: Pixels(s.MarginLeft, dpi),
		MarginTop:  Pixels(s.MarginTop, dpi),
		SpacingX:   Pixels(s.SpacingX, dpi),
		SpacingY:   Pixels(s.SpacingY, dpi),

		TicketWidth:  w,
		TicketHeight: h,
	}
	if err := l.checkPage(); err != nil {
		return nil, err
	}
	return l, nil
}

// checkPage rejects pages whose pixel size is out of range.  Conversions
// of huge lengths can wrap to negative values.
func (l *Layout) checkPage() error {
	if l.PageWidth <= 0 || l.PageHeight <= 0 {
		return fmt.Errorf("geometry: invalid page size %d×%d px", l.PageWidth, l.PageHeight)
	}
	return CheckSize(l.PageWidth, l.PageHeight)
}

// PerPage returns the number of cells on the page.
func (l *Layout) PerPage() int {
	return l.Rows * l.Cols
}

// Cell returns the top-left corner of the i-th cell in row-major order.
// The index is taken modulo the number of cells per page.
func (l *Layout) Cell(i int) (x, y int) {
	i %= l.PerPage()
	row, col := i/l.Cols, i%l.Cols
	x = l.MarginLeft + col*(l.TicketWidth+l.SpacingX)
	y = l.MarginTop + row*(l.TicketHeight+l.SpacingY)
	return x, y
}

// Placement describes a template scaled uniformly into a cell.
type Placement struct {
	// Scale is the factor applied to both template axes.
	Scale float64

	// Width and Height give the size of the scaled template in pixels.
	Width, Height int

	// OffsetX and OffsetY give the position of the scaled template
	// inside the cell.
	OffsetX, OffsetY int
}

// Fit scales a template of size tw×th uniformly so that it fits into a
// cell of size cw×ch, and centres it.
func Fit(tw, th, cw, ch int) Placement {
	if tw <= 0 || th <= 0 {
		return Placement{}
	}
	scale := min(float64(cw)/float64(tw), float64(ch)/float64(th))
	w := int(math.Round(float64(tw) * scale))
	h := int(math.Round(float64(th) * scale))
	return Placement{
		Scale:   scale,
		Width:   w,
		Height:  h,
		OffsetX: max(cw-w, 0) / 2,
		OffsetY: max(ch-h, 0) / 2,
	}
}
