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

// Package stamp draws data-driven overlays onto ticket images.
//
// A stamp is one of [*Text], [*Barcode] or [*QR].  Every stamp has a
// position and size in the coordinate system of the unscaled template
// image, and a template string whose {{field}} placeholders are filled
// from the record being rendered.  When drawing, positions and sizes are
// mapped to the ticket by independent horizontal and vertical scale
// factors.
package stamp

import (
	"errors"
	"fmt"
	"image"
	"math"

	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/sheet/fields"
	"seehuhn.de/go/sheet/raster"
)

// Kinds of stamps, as used in the "type" field of the JSON encoding.
const (
	KindText    = "text"
	KindBarcode = "barcode"
	KindQR      = "qrcode"
)

// ErrNoFont is returned when a text stamp needs to be drawn but no font
// face is available.
var ErrNoFont = errors.New("stamp: no font supplied")

// Stamp is a positioned overlay.  The concrete types are [*Text],
// [*Barcode] and [*QR].
type Stamp interface {
	// Frame returns the identifier and geometry of the stamp.
	Frame() Box

	// Kind returns one of KindText, KindBarcode or KindQR.
	Kind() string

	isStamp()
}

// Box holds the properties shared by all stamps.  Coordinates refer to
// the unscaled template image, in pixels.
type Box struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Frame implements the [Stamp] interface.
func (b Box) Frame() Box { return b }

// Align is the horizontal alignment of a text stamp relative to its anchor.
type Align string

// These are the valid horizontal alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// VAlign is the vertical alignment of a text stamp relative to its anchor.
type VAlign string

// These are the valid vertical alignments.  The empty value means
// VAlignTop.
const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Text draws a line of text.  The position (X, Y) is an anchor point, and
// the alignment fields determine which point of the text's bounding box is
// placed at the anchor.
type Text struct {
	Box
	Template   string  `json:"template"`
	FontFamily string  `json:"fontFamily"`
	FontSize   float64 `json:"fontSize"`
	Color      string  `json:"color"`
	Align      Align   `json:"alignment"`
	VAlign     VAlign  `json:"verticalAlign,omitempty"`

	// AutoSize is reserved for automatic font size selection.  It is
	// currently ignored.
	AutoSize bool `json:"autoSize,omitempty"`
}

// Barcode draws a placeholder bar pattern filling its box.
// Format names the intended symbology.  No actual barcode is encoded.
type Barcode struct {
	Box
	Template string `json:"template"`
	Format   string `json:"format"`
}

// QR draws a square QR code with the top-left corner at (X, Y).  The side
// length is Width, scaled by the smaller of the two scale factors.
type QR struct {
	Box
	Template        string `json:"template"`
	ErrorCorrection string `json:"errorCorrection"`
}

// Kind implements the [Stamp] interface.
func (*Text) Kind() string { return KindText }

// Kind implements the [Stamp] interface.
func (*Barcode) Kind() string { return KindBarcode }

// Kind implements the [Stamp] interface.
func (*QR) Kind() string { return KindQR }

func (*Text) isStamp()    {}
func (*Barcode) isStamp() {}
func (*QR) isStamp()      {}

// Scale holds the factors which map template coordinates to ticket
// coordinates.
type Scale struct {
	X, Y float64
}

// NewScale returns the scale factors for drawing stamps designed on a
// template of size tw×th onto a ticket of size w×h.
func NewScale(w, h, tw, th int) Scale {
	return Scale{
		X: float64(w) / float64(tw),
		Y: float64(h) / float64(th),
	}
}

// rect returns the pixel rectangle covered by b after scaling.
func (sc Scale) rect(b Box) image.Rectangle {
	x := int(math.Round(b.X * sc.X))
	y := int(math.Round(b.Y * sc.Y))
	w := int(math.Round(b.Width * sc.X))
	h := int(math.Round(b.Height * sc.Y))
	return image.Rect(x, y, x+w, y+h)
}

// Error reports a stamp which could not be drawn.
type Error struct {
	ID   string
	Kind string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("stamp %q (%s): %v", e.ID, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Renderer draws stamps onto ticket images.
//
// A Renderer keeps scratch buffers between calls and is not safe for
// concurrent use.
type Renderer struct {
	// Face is used for text stamps.  If Face is nil, drawing a text stamp
	// with non-empty text fails with ErrNoFont.
	Face *Face

	ras *raster.Rasterizer
}

// NewRenderer returns a Renderer which draws text using face.
func NewRenderer(face *Face) *Renderer {
	return &Renderer{
		Face: face,
		ras:  raster.NewRasterizer(rect.Rect{}),
	}
}

// Draw resolves the template of s against rec and draws the result onto
// dst.  A template which resolves to the empty string draws nothing.
// Failures are reported as *Error.
func (r *Renderer) Draw(dst *image.NRGBA, s Stamp, rec fields.Record, sc Scale) error {
	var err error
	switch s := s.(type) {
	case *Text:
		err = r.drawText(dst, s, fields.Resolve(s.Template, rec), sc)
	case *Barcode:
		drawBarcode(dst, s, fields.Resolve(s.Template, rec), sc)
	case *QR:
		err = drawQR(dst, s, fields.Resolve(s.Template, rec), sc)
	default:
		err = fmt.Errorf("unsupported stamp type %T", s)
	}
	if err != nil {
		return &Error{ID: s.Frame().ID, Kind: s.Kind(), Err: err}
	}
	return nil
}
