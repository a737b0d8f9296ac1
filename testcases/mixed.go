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

var raffle = stamp.List{
	&stamp.Text{
		Box:        stamp.Box{ID: "event", X: 400, Y: 30},
		Template:   "{{event}}",
		FontFamily: "Go",
		FontSize:   48,
		Color:      "#202040",
		Align:      stamp.AlignCenter,
	},
	&stamp.Text{
		Box:      stamp.Box{ID: "serial", X: 40, Y: 360},
		Template: "{{serial}}",
		FontSize: 32,
		Color:    "crimson",
		Align:    stamp.AlignLeft,
		VAlign:   stamp.VAlignBottom,
	},
	&stamp.Barcode{
		Box:      stamp.Box{ID: "barcode", X: 40, Y: 150, Width: 360, Height: 120},
		Template: "{{serial}}",
		Format:   "code128",
	},
	&stamp.QR{
		Box:             stamp.Box{ID: "qr", X: 560, Y: 130, Width: 200, Height: 200},
		Template:        "https://example.com/raffle?no={{serial}}",
		ErrorCorrection: "M",
	},
}

var mixedCases = []TestCase{
	{
		Name:           "raffle",
		Sheet:          a4(4, 2),
		DPI:            150,
		Stamps:         raffle,
		Records:        numbered(8, fields.Record{"event": "Spring Fair"}),
		TemplateWidth:  800,
		TemplateHeight: 400,
		Background:     color.NRGBA{R: 255, G: 236, B: 179, A: 255},
		Frame:          8,
	},
	{
		Name:           "raffle_multipage",
		Sheet:          a4(4, 2),
		DPI:            72,
		Stamps:         raffle,
		Records:        numbered(21, fields.Record{"event": "Autumn Fair"}),
		TemplateWidth:  800,
		TemplateHeight: 400,
		Background:     color.NRGBA{R: 200, G: 230, B: 201, A: 255},
		Frame:          8,
	},
}
