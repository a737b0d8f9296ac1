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
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"seehuhn.de/go/sheet/geometry"
)

// previewSheet is a 2×2 grid on 50.8×25.4 mm paper, which is 600×300 px
// at 300 dpi, with 10 px margins and 5 px spacing.
const previewSheet = `{
	"paper_width_mm": 50.8, "paper_height_mm": 25.4,
	"rows": 2, "cols": 2,
	"margin_top_mm": 0.846667, "margin_right_mm": 0.846667,
	"margin_bottom_mm": 0.846667, "margin_left_mm": 0.846667,
	"spacing_x_mm": 0.423333, "spacing_y_mm": 0.423333
}`

func TestGeneratePreviewPNG(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	green := color.NRGBA{G: 255, A: 255}
	var tickets []byte
	for i := range 5 {
		c := red
		if i%2 == 1 {
			c = green
		}
		tickets = append(tickets, solidTemplate(40, 20, c)...)
	}
	tickets = append(tickets, 1, 2, 3) // incomplete trailing data

	out, err := GeneratePreviewPNG([]byte(previewSheet), tickets, 40, 20)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b != image.Rect(0, 0, 600, 300) {
		t.Fatalf("page has size %v", b.Size())
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	cases := []struct {
		x, y int
		want color.NRGBA
	}{
		{5, 5, white},
		{10, 10, red},
		{49, 29, red},
		{50, 10, white},
		{55, 10, green},
		{94, 29, green},
		{95, 10, white},
		{10, 35, red},
		{55, 35, green},
		{10, 60, white},
	}
	for _, c := range cases {
		got := color.NRGBAModel.Convert(img.At(c.x, c.y)).(color.NRGBA)
		if got != c.want {
			t.Errorf("pixel (%d, %d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestGeneratePreviewPNGErrors(t *testing.T) {
	ticket := solidTemplate(40, 20, color.NRGBA{A: 255})
	cases := []struct {
		desc   string
		sheet  string
		data   []byte
		w, h   int
		target error
	}{
		{"bad json", `{`, ticket, 40, 20, ErrConfig},
		{"zero width", previewSheet, ticket, 0, 20, geometry.ErrInvalidTicketSize},
		{"zero height", previewSheet, ticket, 40, 0, ErrConfig},
		{"empty grid", `{"rows": 0, "cols": 3}`, ticket, 40, 20, geometry.ErrEmptyGrid},
		{"overflowing size", previewSheet, ticket[:4], math.MaxInt/2 + 1, math.MaxInt/2 + 1, geometry.ErrTooLarge},
		{"huge width", previewSheet, ticket, 1 << 20, 1, ErrConfig},
		{"short data", previewSheet, ticket[:len(ticket)-1], 40, 20, ErrNoTickets},
		{"no data", previewSheet, nil, 40, 20, ErrNoTickets},
	}
	for _, c := range cases {
		out, err := GeneratePreviewPNG([]byte(c.sheet), c.data, c.w, c.h)
		if !errors.Is(err, c.target) || out != nil {
			t.Errorf("%s: got %v, want %v", c.desc, err, c.target)
		}
		out, err = GeneratePDF([]byte(c.sheet), c.data, c.w, c.h)
		if !errors.Is(err, c.target) || out != nil {
			t.Errorf("%s (PDF): got %v, want %v", c.desc, err, c.target)
		}
	}
}

func TestGeneratePDF(t *testing.T) {
	tickets := bytes.Repeat(solidTemplate(40, 20, color.NRGBA{B: 255, A: 255}), 5)
	out, err := GeneratePDF([]byte(previewSheet), tickets, 40, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("missing PDF header")
	}
	if n := countPages(t, out); n != 2 {
		t.Errorf("got %d pages, want 2", n)
	}

	// The cell size of the PDF path comes from the sheet.
	_, err = GeneratePDF([]byte(`{"paper_width_mm": 10, "paper_height_mm": 10,
		"rows": 1, "cols": 1, "margin_left_mm": 6, "margin_right_mm": 6}`), tickets, 40, 20)
	if !errors.Is(err, ErrConfig) || !errors.Is(err, geometry.ErrInvalidTicketSize) {
		t.Errorf("negative ticket width: got %v", err)
	}
}
