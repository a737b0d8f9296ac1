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

// Command genpdf renders every sample request into a PDF file in
// testdata/pdf, for visual inspection.  Text is set in Go Regular.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sheet"
	"seehuhn.de/go/sheet/testcases"
)

const pdfDir = "testdata/pdf"

func main() {
	if err := os.MkdirAll(pdfDir, 0o755); err != nil {
		panic(err)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := generatePDF(&tc, filepath.Join(pdfDir, name+".pdf")); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generatePDF(tc *testcases.TestCase, pdfPath string) error {
	config, err := json.Marshal(&sheet.Request{
		Sheet:          tc.Sheet,
		TemplateWidth:  tc.TemplateWidth,
		TemplateHeight: tc.TemplateHeight,
		Stamps:         tc.Stamps,
		Records:        tc.Records,
		DPI:            tc.DPI,
		Title:          tc.Name,
	})
	if err != nil {
		return err
	}

	out, err := sheet.RenderPDF(config, tc.Template(), goregular.TTF)
	if err != nil {
		return err
	}
	return os.WriteFile(pdfPath, out, 0o644)
}
