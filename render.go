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
	"fmt"
	"image"

	"seehuhn.de/go/sheet/assemble"
	"seehuhn.de/go/sheet/composite"
	"seehuhn.de/go/sheet/geometry"
	"seehuhn.de/go/sheet/stamp"
	"seehuhn.de/go/sheet/ticket"
)

// RenderSheet renders the first page of tickets for a JSON request.
//
// The template is given as non-premultiplied RGBA bytes of the size stated
// in the request.  The font is a TrueType or OpenType file, used for all
// text stamps; it may be empty if no text stamp produces any text.
//
// The result holds the RGBA pixels of the page, row by row without
// padding.  The page is opaque.  Records which do not fit on the page are
// not rendered.
func RenderSheet(config, template, font []byte) ([]byte, error) {
	j, err := prepare(config, template, font)
	if err != nil {
		return nil, err
	}

	page := assemble.NewSheet(j.layout)
	n := min(len(j.req.Records), j.layout.PerPage())
	for i := range n {
		img, err := j.render(i)
		if err != nil {
			return nil, err
		}
		page.Place(img, j.offset())
	}
	if dropped := len(j.req.Records) - n; dropped > 0 {
		Logger().Warn("records do not fit on the page",
			"records", len(j.req.Records), "perPage", j.layout.PerPage(),
			"dropped", dropped)
	}
	return page.Image.Pix, nil
}

// RenderPDF renders all tickets for a JSON request into a PDF file.
//
// The arguments are as for [RenderSheet].  Every ticket is rendered at the
// resolution given in the request, centred in a white cell, and the cells
// fill the pages in row-major order.  A request without records yields a
// single blank page.
func RenderPDF(config, template, font []byte) ([]byte, error) {
	j, err := prepare(config, template, font)
	if err != nil {
		return nil, err
	}
	pl, err := geometry.NewPageLayout(&j.req.Sheet)
	if err != nil {
		return nil, configError(err)
	}

	buf := &bytes.Buffer{}
	doc, err := assemble.NewDocument(buf, pl, j.req.Title)
	if err != nil {
		return nil, err
	}
	for i := range j.req.Records {
		img, err := j.render(i)
		if err != nil {
			return nil, err
		}
		cell := composite.NewCanvas(j.layout.TicketWidth, j.layout.TicketHeight, composite.White)
		composite.Draw(cell, img, j.offset())
		if _, err := doc.Add(cell); err != nil {
			return nil, err
		}
	}
	if err := doc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// job holds everything needed to render the tickets of one request.
type job struct {
	req    *Request
	layout *geometry.Layout
	fit    geometry.Placement
	comp   *ticket.Compositor
}

func prepare(config, template, font []byte) (*job, error) {
	req, err := ParseRequest(config)
	if err != nil {
		return nil, err
	}
	layout, err := geometry.NewLayout(&req.Sheet, req.DPI)
	if err != nil {
		return nil, configError(err)
	}
	fit := geometry.Fit(req.TemplateWidth, req.TemplateHeight,
		layout.TicketWidth, layout.TicketHeight)
	if fit.Width <= 0 || fit.Height <= 0 {
		return nil, configError(fmt.Errorf("%d×%d template vanishes in %d×%d cell",
			req.TemplateWidth, req.TemplateHeight,
			layout.TicketWidth, layout.TicketHeight))
	}

	tmpl, err := ticket.FromRGBA(req.TemplateWidth, req.TemplateHeight, template)
	if err != nil {
		return nil, err
	}
	var face *stamp.Face
	if len(font) > 0 {
		face, err = stamp.ParseFace(font)
		if err != nil {
			return nil, fmt.Errorf("sheet: loading font: %w", err)
		}
	}

	Logger().Debug("sheet layout",
		"page", image.Pt(layout.PageWidth, layout.PageHeight),
		"grid", image.Pt(layout.Cols, layout.Rows),
		"cell", image.Pt(layout.TicketWidth, layout.TicketHeight),
		"scale", fit.Scale,
		"ticket", image.Pt(fit.Width, fit.Height))
	req.logMissing()

	return &job{
		req:    req,
		layout: layout,
		fit:    fit,
		comp:   ticket.New(tmpl, req.Stamps, face),
	}, nil
}

// render returns the ticket for the i-th record, at the size of the
// scaled template.
func (j *job) render(i int) (*image.NRGBA, error) {
	img, err := j.comp.Render(j.req.Records[i], j.fit.Width, j.fit.Height)
	if err != nil {
		return nil, &TicketError{Index: i, Err: err}
	}
	return img, nil
}

// offset returns the position of a ticket inside its cell.
func (j *job) offset() image.Point {
	return image.Pt(j.fit.OffsetX, j.fit.OffsetY)
}
