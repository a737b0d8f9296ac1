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
	"image/color"

	"seehuhn.de/go/sheet/geometry"
	"seehuhn.de/go/sheet/stamp"
)

var serialText = &stamp.Text{
	Box:      stamp.Box{ID: "serial", X: 20, Y: 20},
	Template: "{{serial}}",
	FontSize: 40,
	Color:    "black",
	Align:    stamp.AlignLeft,
}

var layoutCases = []TestCase{
	{
		Name:           "single",
		Sheet:          a4(1, 1),
		DPI:            72,
		Stamps:         stamp.List{serialText},
		Records:        numbered(1, nil),
		TemplateWidth:  400,
		TemplateHeight: 560,
		Background:     color.NRGBA{R: 250, G: 240, B: 200, A: 255},
		Frame:          4,
	},
	{
		Name:           "grid_2x2",
		Sheet:          a4(2, 2),
		DPI:            96,
		Stamps:         stamp.List{serialText},
		Records:        numbered(4, nil),
		TemplateWidth:  400,
		TemplateHeight: 300,
		Background:     color.NRGBA{R: 220, G: 240, B: 255, A: 255},
		Frame:          3,
	},
	{
		Name:           "tall_template",
		Sheet:          a4(2, 3),
		DPI:            96,
		Stamps:         stamp.List{serialText},
		Records:        numbered(6, nil),
		TemplateWidth:  200,
		TemplateHeight: 600,
		Background:     color.NRGBA{R: 230, G: 255, B: 230, A: 255},
		Frame:          2,
	},
	{
		Name: "landscape_3x5",
		Sheet: geometry.Sheet{
			PaperWidth:   297,
			PaperHeight:  210,
			Rows:         3,
			Cols:         5,
			MarginTop:    7.5,
			MarginRight:  7.5,
			MarginBottom: 7.5,
			MarginLeft:   7.5,
			SpacingX:     3,
			SpacingY:     3,
		},
		DPI:            100,
		Stamps:         stamp.List{serialText},
		Records:        numbered(20, nil),
		TemplateWidth:  540,
		TemplateHeight: 380,
		Background:     color.NRGBA{R: 255, G: 225, B: 225, A: 255},
		Frame:          6,
	},
	{
		Name: "no_spacing",
		Sheet: geometry.Sheet{
			PaperWidth:  100,
			PaperHeight: 100,
			Rows:        4,
			Cols:        4,
		},
		DPI:            150,
		Stamps:         stamp.List{serialText},
		Records:        numbered(16, nil),
		TemplateWidth:  250,
		TemplateHeight: 250,
		Background:     color.NRGBA{R: 240, G: 240, B: 240, A: 128},
		Frame:          1,
	},
}
