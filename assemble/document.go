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

package assemble

import (
	"errors"
	"image"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics/color"
	pdfimage "seehuhn.de/go/pdf/graphics/image"

	"seehuhn.de/go/sheet/geometry"
)

// Producer is recorded in the document information dictionary.
const Producer = "seehuhn.de/go/sheet"

var errClosed = errors.New("assemble: document already closed")

// Document writes tickets to a multi-page PDF file.
//
// Tickets fill the slots of a page in row-major order.  When all slots of
// a page are taken, the next ticket starts a new page.  Every ticket is
// embedded as an 8-bit DeviceRGB image, stretched to the size of its slot.
type Document struct {
	layout *geometry.PageLayout
	doc    *document.MultiPage
	page   *document.Page
	n      int
	closed bool
}

// NewDocument starts a PDF file on w.  The pages have the paper size of
// the layout.  If title is non-empty, it is stored in the document
// information dictionary.
func NewDocument(w io.Writer, l *geometry.PageLayout, title string) (*Document, error) {
	paper := &pdf.Rectangle{URx: l.PageWidth, URy: l.PageHeight}
	doc, err := document.WriteMultiPage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return nil, err
	}
	info := &pdf.Info{Producer: Producer}
	if title != "" {
		info.Title = pdf.TextString(title)
	}
	doc.Out.GetMeta().Info = info

	return &Document{layout: l, doc: doc}, nil
}

// Add draws ticket into the next free slot and returns the slot.
func (d *Document) Add(ticket *image.NRGBA) (geometry.Slot, error) {
	if d.closed {
		return geometry.Slot{}, errClosed
	}

	slot := d.layout.Slot(d.n)
	if d.n%d.layout.PerPage() == 0 {
		if err := d.finishPage(); err != nil {
			return geometry.Slot{}, err
		}
		d.page = d.doc.AddPage()
	}

	d.page.PushGraphicsState()
	d.page.Transform(matrix.Matrix{slot.Width, 0, 0, slot.Height, slot.X, slot.Y})
	d.page.DrawXObject(rgbImage(ticket))
	d.page.PopGraphicsState()

	d.n++
	return slot, nil
}

// Len returns the number of tickets added so far.
func (d *Document) Len() int {
	return d.n
}

// Pages returns the number of pages started so far.
func (d *Document) Pages() int {
	return d.layout.Pages(d.n)
}

// Close finishes the last page and the PDF file.  A document without
// tickets consists of a single blank page.
func (d *Document) Close() error {
	if d.closed {
		return errClosed
	}
	d.closed = true

	if d.page == nil {
		d.page = d.doc.AddPage()
	}
	if err := d.finishPage(); err != nil {
		return err
	}
	return d.doc.Close()
}

func (d *Document) finishPage() error {
	if d.page == nil {
		return nil
	}
	err := d.page.Close()
	d.page = nil
	return err
}

// rgbImage converts img to a PDF image.  The alpha channel is dropped.
func rgbImage(img *image.NRGBA) *pdfimage.Dict {
	b := img.Rect
	return &pdfimage.Dict{
		Width:            b.Dx(),
		Height:           b.Dy(),
		ColorSpace:       color.SpaceDeviceRGB,
		BitsPerComponent: 8,
		WriteData: func(w io.Writer) error {
			row := make([]byte, 3*b.Dx())
			for y := b.Min.Y; y < b.Max.Y; y++ {
				src := img.Pix[img.PixOffset(b.Min.X, y):]
				for x := range b.Dx() {
					copy(row[3*x:3*x+3], src[4*x:4*x+3])
				}
				if _, err := w.Write(row); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
