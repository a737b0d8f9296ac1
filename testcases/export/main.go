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

// Command export writes the sample requests to testdata/samples, one JSON
// request and one PNG template per sample, for use with cmd/ticketsheet.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/sheet"
	"seehuhn.de/go/sheet/testcases"
)

const outDir = "testdata/samples"

func main() {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := writeRequest(filepath.Join(outDir, name+".json"), &tc); err != nil {
				panic(err)
			}
			if err := writeTemplate(filepath.Join(outDir, name+".png"), &tc); err != nil {
				panic(err)
			}
		}
	}
}

func writeRequest(fname string, tc *testcases.TestCase) error {
	req := &sheet.Request{
		Sheet:          tc.Sheet,
		TemplateWidth:  tc.TemplateWidth,
		TemplateHeight: tc.TemplateHeight,
		Stamps:         tc.Stamps,
		Records:        tc.Records,
		DPI:            tc.DPI,
		Title:          tc.Name,
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(req); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTemplate(fname string, tc *testcases.TestCase) error {
	img := &image.NRGBA{
		Pix:    tc.Template(),
		Stride: 4 * tc.TemplateWidth,
		Rect:   image.Rect(0, 0, tc.TemplateWidth, tc.TemplateHeight),
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
