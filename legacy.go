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

package sheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"

	"seehuhn.de/go/sheet/assemble"
	"seehuhn.de/go/sheet/geometry"
)

// PreviewDPI is the resolution used by [GeneratePreviewPNG].
const PreviewDPI = 300

// GeneratePreviewPNG arranges pre-rendered tickets on the first page of a
// sheet and returns the page as a PNG image at [PreviewDPI].
//
// The sheet is given as JSON.  The tickets are concatenated
// non-premultiplied RGBA images of size w×h each.  The tickets are placed
// without scaling, so the cells have the size of the tickets rather than
// the size derived from the sheet.  Incomplete trailing data and tickets
// which do not fit on the page are ignored.
func GeneratePreviewPNG(sheetJSON, tickets []byte, w, h int) ([]byte, error) {
	s, err := parseSheet(sheetJSON, w, h)
	if err != nil {
		return nil, err
	}
	layout, err := geometry.NewFixedLayout(s, PreviewDPI, w, h)
	if err != nil {
		return nil, configError(err)
	}
	imgs, err := splitTickets(tickets, w, h)
	if err != nil {
		return nil, err
	}

	page := assemble.NewSheet(layout)
	for _, img := range imgs {
		if !page.Place(img, image.Point{}) {
			break
		}
	}
	if dropped := len(imgs) - page.Len(); dropped > 0 {
		Logger().Warn("tickets do not fit on the page",
			"tickets", len(imgs), "perPage", layout.PerPage(),
			"dropped", dropped)
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, page.Image); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneratePDF arranges pre-rendered tickets on as many PDF pages as needed.
//
// The arguments are as for [GeneratePreviewPNG].  Every ticket is stretched
// to the cell size derived from the sheet.
func GeneratePDF(sheetJSON, tickets []byte, w, h int) ([]byte, error) {
	s, err := parseSheet(sheetJSON, w, h)
	if err != nil {
		return nil, err
	}
	pl, err := geometry.NewPageLayout(s)
	if err != nil {
		return nil, configError(err)
	}
	imgs, err := splitTickets(tickets, w, h)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	doc, err := assemble.NewDocument(buf, pl, "")
	if err != nil {
		return nil, err
	}
	for _, img := range imgs {
		if _, err := doc.Add(img); err != nil {
			return nil, err
		}
	}
	if err := doc.Close(); err != nil {
		return nil, err
	}
	Logger().Debug("wrote PDF", "tickets", doc.Len(), "pages", doc.Pages())
	return buf.Bytes(), nil
}

func parseSheet(data []byte, w, h int) (*geometry.Sheet, error) {
	s := &geometry.Sheet{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, configError(err)
	}
	if w <= 0 || h <= 0 {
		return nil, configError(fmt.Errorf("%w: %d×%d px",
			geometry.ErrInvalidTicketSize, w, h))
	}
	if err := geometry.CheckSize(w, h); err != nil {
		return nil, configError(err)
	}
	if s.Rows <= 0 || s.Cols <= 0 {
		return nil, configError(geometry.ErrEmptyGrid)
	}
	return s, nil
}

// splitTickets returns views of the complete w×h images contained in data.
func splitTickets(data []byte, w, h int) ([]*image.NRGBA, error) {
	size := w * h * 4
	n := len(data) / size
	if n == 0 {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrNoTickets, size, len(data))
	}
	imgs := make([]*image.NRGBA, n)
	for i := range imgs {
		imgs[i] = &image.NRGBA{
			Pix:    data[i*size : (i+1)*size : (i+1)*size],
			Stride: 4 * w,
			Rect:   image.Rect(0, 0, w, h),
		}
	}
	return imgs, nil
}
