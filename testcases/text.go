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

// anchored returns a text stamp for every combination of alignments, all
// anchored at the centre of a 600×300 template.
func anchored() stamp.List {
	var res stamp.List
	for _, a := range []stamp.Align{stamp.AlignLeft, stamp.AlignCenter, stamp.AlignRight} {
		for _, v := range []stamp.VAlign{stamp.VAlignTop, stamp.VAlignMiddle, stamp.VAlignBottom} {
			res = append(res, &stamp.Text{
				Box:      stamp.Box{ID: string(a) + "_" + string(v), X: 300, Y: 150},
				Template: "{{word}}",
				FontSize: 28,
				Color:    "rgba(0, 0, 120, 0.6)",
				Align:    a,
				VAlign:   v,
			})
		}
	}
	return res
}

var textCases = []TestCase{
	{
		Name:           "alignment",
		Sheet:          a4(3, 1),
		DPI:            96,
		Stamps:         anchored(),
		Records:        []fields.Record{{"word": "Anchor"}, {"word": "x"}, {"word": "Wide anchored text"}},
		TemplateWidth:  600,
		TemplateHeight: 300,
		Background:     color.NRGBA{R: 255, G: 255, B: 240, A: 255},
		Frame:          2,
	},
	{
		Name:  "colours",
		Sheet: a4(4, 2),
		DPI:   96,
		Stamps: stamp.List{
			&stamp.Text{
				Box:      stamp.Box{ID: "title", X: 200, Y: 30},
				Template: "{{event}}",
				FontSize: 36,
				Color:    "{{colour}}",
				Align:    stamp.AlignCenter,
			},
			&stamp.Text{
				Box:      stamp.Box{ID: "seat", X: 380, Y: 180},
				Template: "Row {{row}}, seat {{seat}}",
				FontSize: 20,
				Color:    "#c03",
				Align:    stamp.AlignRight,
				VAlign:   stamp.VAlignBottom,
			},
		},
		Records: []fields.Record{
			{"event": "Gala", "colour": "teal", "row": "A", "seat": "1"},
			{"event": "Gala", "colour": "#ff8800", "row": "A", "seat": "2"},
			{"event": "Gala", "colour": "not a colour", "row": "B"},
			{"event": "Matinée", "colour": "rgb(30% 10% 60%)", "row": "C", "seat": "12"},
		},
		TemplateWidth:  400,
		TemplateHeight: 200,
		Background:     color.NRGBA{R: 245, G: 245, B: 255, A: 255},
		Frame:          3,
	},
	{
		Name:  "empty_fields",
		Sheet: a4(2, 2),
		DPI:   72,
		Stamps: stamp.List{
			&stamp.Text{
				Box:      stamp.Box{ID: "note", X: 10, Y: 10},
				Template: "{{note}}",
				FontSize: 24,
				Color:    "black",
				Align:    stamp.AlignLeft,
			},
		},
		Records:        []fields.Record{{"note": ""}, {}, {"note": "only one"}},
		TemplateWidth:  300,
		TemplateHeight: 300,
		Background:     color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Frame:          1,
	},
}

var unicodeCases = []TestCase{
	{
		Name:  "accents",
		Sheet: a4(2, 1),
		DPI:   96,
		Stamps: stamp.List{
			&stamp.Text{
				Box:      stamp.Box{ID: "name", X: 20, Y: 40},
				Template: "{{name}}",
				FontSize: 32,
				Color:    "darkslategray",
				Align:    stamp.AlignLeft,
			},
		},
		Records: []fields.Record{
			{"name": "Zoë Ångström"},
			{"name": "Café Œuvre"},
		},
		TemplateWidth:  500,
		TemplateHeight: 200,
		Background:     color.NRGBA{R: 250, G: 250, B: 250, A: 255},
		Frame:          2,
	},
}
