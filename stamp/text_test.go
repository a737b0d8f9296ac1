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

package stamp

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/sheet/composite"
	"seehuhn.de/go/sheet/fields"
)

func loadFace(t testing.TB) *Face {
	t.Helper()
	face, err := ParseFace(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	return face
}

func TestAnchor(t *testing.T) {
	cases := []struct {
		align  Align
		valign VAlign
		x, y   float64
	}{
		{AlignLeft, VAlignTop, 100, 50},
		{AlignCenter, VAlignMiddle, 80, 45},
		{AlignRight, VAlignBottom, 60, 40},
		{"", "", 100, 50},
		{"justify", "baseline", 100, 50},
	}
	for _, c := range cases {
		x, y := Anchor(100, 50, 40, 10, c.align, c.valign)
		if x != c.x || y != c.y {
			t.Errorf("Anchor(%q, %q) = (%g, %g), want (%g, %g)",
				c.align, c.valign, x, y, c.x, c.y)
		}
	}
}

func TestParseFaceInvalid(t *testing.T) {
	if _, err := ParseFace([]byte("not a font")); err == nil {
		t.Error("garbage accepted as a font")
	}
	if _, err := ParseFace(nil); err == nil {
		t.Error("empty data accepted as a font")
	}
}

func TestLayout(t *testing.T) {
	face := loadFace(t)

	line := face.Layout("AVA", 20)
	if len(line.Glyphs) != 3 {
		t.Fatalf("got %d glyphs, want 3", len(line.Glyphs))
	}
	var sum float64
	for _, a := range line.Advances {
		sum += a
	}
	if sum != line.Width {
		t.Errorf("width %g, sum of advances %g", line.Width, sum)
	}
	if line.Glyphs[0] != line.Glyphs[2] || line.Advances[0] != line.Advances[2] {
		t.Error("same character gave different glyphs")
	}
	if line.Height <= line.Ascent || line.Ascent <= 0 {
		t.Errorf("implausible metrics: ascent %g, height %g", line.Ascent, line.Height)
	}

	// no kerning: the width of a string is the sum of its parts
	a := face.Layout("A", 20).Width
	v := face.Layout("V", 20).Width
	if line.Width != 2*a+v {
		t.Errorf("width %g, want %g", line.Width, 2*a+v)
	}

	// decomposed characters are composed before the glyph lookup
	if n := len(face.Layout("e\u0301", 20).Glyphs); n != 1 {
		t.Errorf("decomposed é gave %d glyphs, want 1", n)
	}

	// doubling the size doubles all lengths
	big := face.Layout("AVA", 40)
	if big.Width != 2*line.Width || big.Height != 2*line.Height {
		t.Errorf("size 40: %g×%g, want %g×%g", big.Width, big.Height, 2*line.Width, 2*line.Height)
	}
}

// inkBounds returns the smallest rectangle containing all pixels of img
// which differ from white.
func inkBounds(img *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			if img.NRGBAAt(x, y) != composite.White {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestDrawText(t *testing.T) {
	face := loadFace(t)
	r := NewRenderer(face)

	s := &Text{
		Box:      Box{ID: "serial", X: 50, Y: 20},
		Template: "No. {{n}}",
		FontSize: 10,
		Color:    "#000",
		Align:    AlignLeft,
	}
	sc := Scale{X: 2, Y: 2}
	dst := composite.NewCanvas(300, 100, composite.White)
	if err := r.Draw(dst, s, fields.Record{"n": "42"}, sc); err != nil {
		t.Fatal(err)
	}

	line := face.Layout("No. 42", 20)
	box := image.Rect(100-2, 40-2, 100+int(line.Width)+3, 40+int(line.Height)+3)
	ink := inkBounds(dst)
	if ink.Empty() {
		t.Fatal("nothing was drawn")
	}
	if !ink.In(box) {
		t.Errorf("ink %v outside of text box %v", ink, box)
	}

	var dark bool
	for i := 0; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] < 64 {
			dark = true
		}
		if dst.Pix[i+3] != 255 {
			t.Fatal("text made the ticket translucent")
		}
	}
	if !dark {
		t.Error("no dark pixels found")
	}
}

func TestDrawTextAlignment(t *testing.T) {
	face := loadFace(t)
	r := NewRenderer(face)

	draw := func(align Align) image.Rectangle {
		s := &Text{
			Box:      Box{X: 150, Y: 50},
			Template: "Hx",
			FontSize: 24,
			Color:    "black",
			Align:    align,
			VAlign:   VAlignMiddle,
		}
		dst := composite.NewCanvas(300, 100, composite.White)
		if err := r.Draw(dst, s, nil, Scale{X: 1, Y: 1}); err != nil {
			t.Fatal(err)
		}
		return inkBounds(dst)
	}

	left := draw(AlignLeft)
	right := draw(AlignRight)
	center := draw(AlignCenter)
	if left.Min.X < 149 {
		t.Errorf("left aligned text starts at %d, before the anchor", left.Min.X)
	}
	if right.Max.X > 151 {
		t.Errorf("right aligned text ends at %d, after the anchor", right.Max.X)
	}
	if center.Min.X >= 150 || center.Max.X <= 150 {
		t.Errorf("centred text %v does not cover the anchor", center)
	}
	if mid := (left.Min.Y + left.Max.Y) / 2; mid < 45 || mid > 55 {
		t.Errorf("text %v is not vertically centred on the anchor", left)
	}
}

func TestDrawTextSkipped(t *testing.T) {
	r := NewRenderer(nil)
	dst := composite.NewCanvas(20, 20, composite.White)

	// an empty resolved template draws nothing, even without a font
	s := &Text{Box: Box{ID: "t"}, Template: "{{a}}", FontSize: 12}
	if err := r.Draw(dst, s, fields.Record{"a": ""}, Scale{X: 1, Y: 1}); err != nil {
		t.Errorf("empty text: %v", err)
	}
	if !inkBounds(dst).Empty() {
		t.Error("empty text drew something")
	}
}

func TestDrawTextNoFont(t *testing.T) {
	r := NewRenderer(nil)
	dst := composite.NewCanvas(20, 20, composite.White)
	s := &Text{Box: Box{ID: "title"}, Template: "x", FontSize: 12}
	err := r.Draw(dst, s, nil, Scale{X: 1, Y: 1})

	var se *Error
	if !errors.As(err, &se) {
		t.Fatalf("got %v, want *Error", err)
	}
	if se.ID != "title" || se.Kind != KindText || !errors.Is(err, ErrNoFont) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestDrawTextBadColour(t *testing.T) {
	r := NewRenderer(loadFace(t))
	dst := composite.NewCanvas(60, 40, composite.White)
	s := &Text{Box: Box{X: 5, Y: 5}, Template: "W", FontSize: 24, Color: "no such colour"}
	if err := r.Draw(dst, s, nil, Scale{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	var darkest uint8 = 255
	for i := 0; i < len(dst.Pix); i += 4 {
		p := dst.Pix[i : i+3]
		if p[0] != p[1] || p[1] != p[2] {
			t.Fatalf("fallback colour is not grey: %v", p)
		}
		darkest = min(darkest, p[0])
	}
	if darkest > 10 {
		t.Errorf("darkest pixel %d, want black", darkest)
	}
}

func BenchmarkDrawText(b *testing.B) {
	r := NewRenderer(loadFace(b))
	s := &Text{Box: Box{X: 10, Y: 10}, Template: "Ticket {{n}}", FontSize: 32, Color: "#204080"}
	rec := fields.Record{"n": "000123"}
	dst := composite.NewCanvas(400, 80, composite.White)
	for b.Loop() {
		_ = r.Draw(dst, s, rec, Scale{X: 1, Y: 1})
	}
}
