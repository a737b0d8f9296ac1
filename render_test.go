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
	"errors"
	"image/color"
	"log/slog"
	"math"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/sheet/fields"
	"seehuhn.de/go/sheet/geometry"
	"seehuhn.de/go/sheet/stamp"
	"seehuhn.de/go/sheet/ticket"
)

var paleBlue = color.NRGBA{R: 200, G: 220, B: 255, A: 255}

// testRequest describes a 50×30 mm sheet with 2×2 tickets at 10 px/mm.
// The page is 500×300 px, the cells are 190×90 px and the 200×100 px
// template is scaled to 180×90 px, 5 px from the left edge of its cell.
func testRequest(records ...fields.Record) *Request {
	return &Request{
		Sheet: geometry.Sheet{
			PaperWidth:   50,
			PaperHeight:  30,
			Rows:         2,
			Cols:         2,
			MarginTop:    5,
			MarginRight:  5,
			MarginBottom: 5,
			MarginLeft:   5,
			SpacingX:     2,
			SpacingY:     2,
		},
		TemplateWidth:  200,
		TemplateHeight: 100,
		Stamps: stamp.List{
			&stamp.Text{
				Box:      stamp.Box{ID: "name", X: 10, Y: 10},
				Template: "{{name}}",
				FontSize: 24,
				Color:    "#003",
				Align:    stamp.AlignLeft,
			},
			&stamp.Barcode{
				Box:      stamp.Box{ID: "code", X: 10, Y: 60, Width: 80, Height: 30},
				Template: "{{serial}}",
				Format:   "code128",
			},
			&stamp.QR{
				Box:             stamp.Box{ID: "qr", X: 140, Y: 20, Width: 50, Height: 50},
				Template:        "https://example.com/t/{{serial}}",
				ErrorCorrection: "Q",
			},
		},
		Records: records,
		DPI:     254,
	}
}

func records(n int) []fields.Record {
	res := make([]fields.Record, n)
	for i := range res {
		res[i] = fields.Record{
			"name":   strings.Repeat("Ada ", i+1),
			"serial": "A-" + strings.Repeat("7", i+1),
		}
	}
	return res
}

func encode(t testing.TB, req *Request) []byte {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func solidTemplate(w, h int, c color.NRGBA) []byte {
	data := make([]byte, 0, w*h*4)
	for range w * h {
		data = append(data, c.R, c.G, c.B, c.A)
	}
	return data
}

func pixel(pix []byte, w, x, y int) color.NRGBA {
	i := 4 * (y*w + x)
	return color.NRGBA{R: pix[i], G: pix[i+1], B: pix[i+2], A: pix[i+3]}
}

func near(a, b color.NRGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 1 || y-x <= 1 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && a.A == b.A
}

func TestRenderSheet(t *testing.T) {
	req := testRequest(records(3)...)
	pix, err := RenderSheet(encode(t, req), solidTemplate(200, 100, paleBlue), goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if len(pix) != 500*300*4 {
		t.Fatalf("got %d bytes, want %d", len(pix), 500*300*4)
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	cases := []struct {
		x, y int
		want color.NRGBA
		desc string
	}{
		{0, 0, white, "margin"},
		{52, 60, white, "cell outside the scaled template"},
		{154, 54, paleBlue, "template of ticket 0"},
		{364, 54, paleBlue, "template of ticket 1"},
		{154, 164, paleBlue, "template of ticket 2"},
		{364, 164, white, "empty cell 3"},
		{245, 100, white, "spacing"},
	}
	for _, c := range cases {
		if got := pixel(pix, 500, c.x, c.y); !near(got, c.want) {
			t.Errorf("%s: pixel (%d, %d) = %v, want %v", c.desc, c.x, c.y, got, c.want)
		}
	}
}

func TestRenderSheetStampsVisible(t *testing.T) {
	req := testRequest(records(1)...)
	tmpl := solidTemplate(200, 100, paleBlue)
	withStamps, err := RenderSheet(encode(t, req), tmpl, goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	req.Stamps = nil
	plain, err := RenderSheet(encode(t, req), tmpl, nil)
	if err != nil {
		t.Fatal(err)
	}

	// Compare the ticket region of the two pages, one stamp box at a time.
	// Boxes are in page pixels: cell (50, 50), offset (5, 0), scale 0.9.
	boxes := map[string][4]int{
		"text":    {64, 59, 120, 75},
		"barcode": {64, 104, 136, 131},
		"qr":      {181, 68, 226, 113},
	}
	for name, b := range boxes {
		changed := 0
		for y := b[1]; y < b[3]; y++ {
			for x := b[0]; x < b[2]; x++ {
				if pixel(withStamps, 500, x, y) != pixel(plain, 500, x, y) {
					changed++
				}
			}
		}
		if changed == 0 {
			t.Errorf("%s stamp left no mark", name)
		}
	}
}

func TestRenderSheetDeterministic(t *testing.T) {
	base := testRequest()
	base.Records = nil
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(encode(t, base), &doc); err != nil {
		t.Fatal(err)
	}

	configs := make([][]byte, 2)
	for i, recs := range []string{
		`[{"name":"Ada","serial":"A-1"},{"name":"Grace","serial":"B-2","x":"1"}]`,
		`[{"serial":"A-1","name":"Ada"},{"x":"1","serial":"B-2","name":"Grace"}]`,
	} {
		doc["records"] = json.RawMessage(recs)
		data, err := json.Marshal(doc)
		if err != nil {
			t.Fatal(err)
		}
		configs[i] = data
	}

	tmpl := solidTemplate(200, 100, paleBlue)
	var out [][]byte
	for _, config := range [][]byte{configs[0], configs[0], configs[1]} {
		pix, err := RenderSheet(config, tmpl, goregular.TTF)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, pix)
	}
	if !bytes.Equal(out[0], out[1]) {
		t.Error("repeated rendering gives different pages")
	}
	if !bytes.Equal(out[0], out[2]) {
		t.Error("field order changes the page")
	}
}

func TestRenderSheetDropsRecords(t *testing.T) {
	var logBuf bytes.Buffer
	SetLogger(slog.New(slog.NewJSONHandler(&logBuf, nil)))
	defer SetLogger(nil)

	tmpl := solidTemplate(200, 100, paleBlue)
	all, err := RenderSheet(encode(t, testRequest(records(6)...)), tmpl, goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	first, err := RenderSheet(encode(t, testRequest(records(4)...)), tmpl, goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(all, first) {
		t.Error("records beyond the first page changed the page")
	}
	if !strings.Contains(logBuf.String(), `"dropped":2`) {
		t.Errorf("dropped records not logged: %s", logBuf.String())
	}
}

func TestRenderSheetErrors(t *testing.T) {
	tmpl := solidTemplate(200, 100, paleBlue)
	font := goregular.TTF

	cases := []struct {
		desc   string
		config func(*Request)
		tmpl   []byte
		font   []byte
		check  func(error) bool
	}{
		{
			desc:   "empty grid",
			config: func(r *Request) { r.Sheet.Rows = 0 },
			check: func(err error) bool {
				return errors.Is(err, ErrConfig) && errors.Is(err, geometry.ErrEmptyGrid)
			},
		},
		{
			desc:   "margins too wide",
			config: func(r *Request) { r.Sheet.MarginLeft = 40 },
			check: func(err error) bool {
				return errors.Is(err, ErrConfig) && errors.Is(err, geometry.ErrInvalidTicketSize)
			},
		},
		{
			desc:   "zero resolution",
			config: func(r *Request) { r.DPI = 0 },
			check:  func(err error) bool { return errors.Is(err, ErrConfig) },
		},
		{
			desc:   "zero template size",
			config: func(r *Request) { r.TemplateHeight = 0 },
			check:  func(err error) bool { return errors.Is(err, ErrConfig) },
		},
		{
			desc: "overflowing template size",
			config: func(r *Request) {
				r.TemplateWidth = math.MaxInt/2 + 1
				r.TemplateHeight = math.MaxInt/2 + 1
			},
			tmpl: []byte{},
			check: func(err error) bool {
				return errors.Is(err, ErrConfig) && errors.Is(err, geometry.ErrTooLarge)
			},
		},
		{
			desc:   "page too large",
			config: func(r *Request) { r.DPI = 1e6 },
			check: func(err error) bool {
				return errors.Is(err, ErrConfig) && errors.Is(err, geometry.ErrTooLarge)
			},
		},
		{
			desc:   "short template data",
			config: func(*Request) {},
			tmpl:   tmpl[:len(tmpl)-4],
			check: func(err error) bool {
				var se *ticket.TemplateSizeError
				return errors.As(err, &se) && se.Got == len(tmpl)-4 && !errors.Is(err, ErrConfig)
			},
		},
		{
			desc:   "malformed font",
			config: func(*Request) {},
			font:   []byte("not a font"),
			check:  func(err error) bool { return err != nil && !errors.Is(err, ErrConfig) },
		},
		{
			desc:   "missing font",
			config: func(*Request) {},
			font:   []byte{},
			check: func(err error) bool {
				var te *TicketError
				var se *stamp.Error
				return errors.As(err, &te) && te.Index == 0 &&
					errors.As(err, &se) && se.ID == "name" &&
					errors.Is(err, stamp.ErrNoFont)
			},
		},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			req := testRequest(records(2)...)
			c.config(req)
			tm, fn := tmpl, font
			if c.tmpl != nil {
				tm = c.tmpl
			}
			if c.font != nil {
				fn = c.font
			}
			pix, err := RenderSheet(encode(t, req), tm, fn)
			if pix != nil {
				t.Error("partial output returned")
			}
			if !c.check(err) {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestRenderSheetBadJSON(t *testing.T) {
	for _, config := range []string{
		``,
		`{"sheet_config": 7}`,
		`{"stamps": [{"type": "hologram"}]}`,
		`{"stamps": [null]}`,
	} {
		_, err := RenderSheet([]byte(config), nil, nil)
		if !errors.Is(err, ErrConfig) {
			t.Errorf("%q: got %v, want ErrConfig", config, err)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	req := testRequest(records(5)...)
	req.Title = "Raffle"
	out, err := RenderPDF(encode(t, req), solidTemplate(200, 100, paleBlue), goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-1.7")) {
		t.Errorf("missing PDF header: %q", out[:min(len(out), 16)])
	}
	if !bytes.Contains(out[max(len(out)-32, 0):], []byte("%%EOF")) {
		t.Error("missing end-of-file marker")
	}
	if n := countPages(t, out); n != 2 {
		t.Errorf("5 tickets on a 2×2 grid gave %d pages, want 2", n)
	}

	req.Sheet.Cols = 0
	if _, err := RenderPDF(encode(t, req), solidTemplate(200, 100, paleBlue), goregular.TTF); !errors.Is(err, ErrConfig) {
		t.Errorf("empty grid: got %v", err)
	}
}

func countPages(t *testing.T, data []byte) int {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	pages, err := pagetree.FindPages(r)
	if err != nil {
		t.Fatal(err)
	}
	return len(pages)
}

func BenchmarkRenderSheet(b *testing.B) {
	config := encode(b, testRequest(records(4)...))
	tmpl := solidTemplate(200, 100, paleBlue)
	for b.Loop() {
		if _, err := RenderSheet(config, tmpl, goregular.TTF); err != nil {
			b.Fatal(err)
		}
	}
}
