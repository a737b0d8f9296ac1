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

package testcases

import (
	"fmt"
	"image/color"
	"maps"

	"seehuhn.de/go/sheet/fields"
	"seehuhn.de/go/sheet/geometry"
	"seehuhn.de/go/sheet/stamp"
)

// TestCase is a complete sheet request together with a synthetic template.
type TestCase struct {
	Name    string // lowercase a-z, 0-9 and _ only
	Sheet   geometry.Sheet
	DPI     float64
	Stamps  stamp.List
	Records []fields.Record

	// TemplateWidth and TemplateHeight give the size of the template
	// image in pixels.
	TemplateWidth, TemplateHeight int

	// Background is the fill colour of the template.  The template has a
	// dark frame of width Frame around the background.
	Background color.NRGBA
	Frame      int
}

// Template returns the RGBA pixels of the template image, row by row
// without padding.
func (tc *TestCase) Template() []byte {
	w, h := tc.TemplateWidth, tc.TemplateHeight
	frame := color.NRGBA{R: 40, G: 40, B: 60, A: 255}
	data := make([]byte, 0, w*h*4)
	for y := range h {
		for x := range w {
			c := tc.Background
			if x < tc.Frame || y < tc.Frame || x >= w-tc.Frame || y >= h-tc.Frame {
				c = frame
			}
			data = append(data, c.R, c.G, c.B, c.A)
		}
	}
	return data
}

// a4 returns an A4 sheet with 10 mm margins and 5 mm spacing.
func a4(rows, cols int) geometry.Sheet {
	return geometry.Sheet{
		PaperWidth:   210,
		PaperHeight:  297,
		Rows:         rows,
		Cols:         cols,
		MarginTop:    10,
		MarginRight:  10,
		MarginBottom: 10,
		MarginLeft:   10,
		SpacingX:     5,
		SpacingY:     5,
	}
}

// numbered returns n records with consecutive serial numbers.
func numbered(n int, extra fields.Record) []fields.Record {
	res := make([]fields.Record, n)
	for i := range res {
		rec := fields.Record{"serial": fmt.Sprintf("No. %04d", i+1)}
		maps.Copy(rec, extra)
		res[i] = rec
	}
	return res
}
