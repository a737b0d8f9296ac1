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

	"seehuhn.de/go/sheet/fields"
	"seehuhn.de/go/sheet/stamp"
)

func qrStamp(level string, x, y, size float64) *stamp.QR {
	return &stamp.QR{
		Box:             stamp.Box{ID: "qr_" + level, X: x, Y: y, Width: size, Height: size},
		Template:        "{{url}}",
		ErrorCorrection: level,
	}
}

var codeCases = []TestCase{
	{
		Name:  "qr_levels",
		Sheet: a4(2, 2),
		DPI:   96,
		Stamps: stamp.List{
			qrStamp("L", 10, 10, 90),
			qrStamp("M", 110, 10, 90),
			qrStamp("Q", 10, 110, 90),
			qrStamp("H", 110, 110, 90),
		},
		TemplateWidth:  210,
		TemplateHeight: 210,
		Records: []fields.Record{
			{"url": "https://example.com/t/1"},
			{"url": "https://example.com/t/2"},
			{"url": "x"},
		},
		Background: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	},
	{
		Name:           "qr_module_sizes",
		Sheet:          a4(3, 3),
		DPI:            72,
		Stamps:         stamp.List{qrStamp("H", 10, 10, 29), qrStamp("L", 50, 50, 30)},
		TemplateWidth:  120,
		TemplateHeight: 120,
		Records:        []fields.Record{{"url": "A"}, {"url": "ticket 2"}, {}},
		Background:     color.NRGBA{R: 230, G: 230, B: 230, A: 255},
	},
	{
		Name:  "barcode",
		Sheet: a4(5, 2),
		DPI:   96,
		Stamps: stamp.List{
			&stamp.Barcode{
				Box:      stamp.Box{ID: "code", X: 20, Y: 20, Width: 260, Height: 80},
				Template: "{{serial}}",
				Format:   "code128",
			},
		},
		Records:        append(numbered(7, nil), fields.Record{"serial": ""}),
		TemplateWidth:  300,
		TemplateHeight: 120,
		Background:     color.NRGBA{R: 255, G: 250, B: 230, A: 255},
		Frame:          2,
	},
}
