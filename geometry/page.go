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

package geometry

// PageLayout is the geometry of a sheet in PDF user space.
//
// PDF places the origin at the bottom-left corner of the page, with the
// y axis pointing up.
type PageLayout struct {
	Rows, Cols int

	PageWidth, PageHeight float64

	MarginLeft, MarginTop float64
	SpacingX, SpacingY    float64

	TicketWidth, TicketHeight float64
}

// Slot is the position of one ticket on a PDF page.
type Slot struct {
	// Page is the zero-based page index.
	Page int

	// Row and Col locate the ticket in the grid.
	Row, Col int

	// X and Y give the bottom-left corner of the ticket.
	X, Y float64

	// Width and Height give the ticket size.
	Width, Height float64
}

// NewPageLayout computes the point geometry of a sheet.
func NewPageLayout(s *Sheet) (*PageLayout, error) {
	tw, th, err := s.TicketSize()
	if err != nil {
		return nil, err
	}
	return &PageLayout{
		Rows: s.Rows,
		Cols: s.Cols,

		PageWidth:  Points(s.PaperWidth),
		PageHeight: Points(s.PaperHeight),

		MarginLeft: Points(s.MarginLeft),
		MarginTop:  Points(s.MarginTop),
		SpacingX:   Points(s.SpacingX),
		SpacingY:   Points(s.SpacingY),

		TicketWidth:  Points(tw),
		TicketHeight: Points(th),
	}, nil
}

// PerPage returns the number of tickets on each page.
func (l *PageLayout) PerPage() int {
	return l.Rows * l.Cols
}

// Slot returns the position of the i-th ticket of the document.
// Tickets fill each page in row-major order before a new page is started.
func (l *PageLayout) Slot(i int) Slot {
	n := l.PerPage()
	page, k := i/n, i%n
	row, col := k/l.Cols, k%l.Cols
	return Slot{
		Page:   page,
		Row:    row,
		Col:    col,
		X:      l.MarginLeft + float64(col)*(l.TicketWidth+l.SpacingX),
		Y:      l.PageHeight - l.MarginTop - float64(row+1)*l.TicketHeight - float64(row)*l.SpacingY,
		Width:  l.TicketWidth,
		Height: l.TicketHeight,
	}
}

// Pages returns the number of pages needed for n tickets.
func (l *PageLayout) Pages(n int) int {
	if n <= 0 {
		return 0
	}
	per := l.PerPage()
	return (n + per - 1) / per
}
