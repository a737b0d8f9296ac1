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

// Package ticket renders single tickets: the template image, scaled to
// the ticket size, with all stamps drawn on top.
package ticket

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"seehuhn.de/go/sheet/composite"
	"seehuhn.de/go/sheet/fields"
	"seehuhn.de/go/sheet/stamp"
)

// ErrInvalidSize is returned for tickets or templates without pixels.
var ErrInvalidSize = errors.New("ticket: width and height must be positive")

// TemplateSizeError is returned by [FromRGBA] when the length of the pixel
// data does not match the image dimensions.
type TemplateSizeError struct {
	Width, Height int
	Got           int
}

func (e *TemplateSizeError) Error() string {
	return fmt.Sprintf("ticket: %d×%d template needs %d bytes of RGBA data, got %d",
		e.Width, e.Height, e.Width*e.Height*4, e.Got)
}

// FromRGBA wraps non-premultiplied RGBA pixel data, stored row by row
// without padding, as an image.  The data is copied.
func FromRGBA(width, height int, data []byte) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if width > math.MaxInt/4/height {
		return nil, fmt.Errorf("%w: %d×%d template is too large", ErrInvalidSize, width, height)
	}
	if len(data) != width*height*4 {
		return nil, &TemplateSizeError{Width: width, Height: height, Got: len(data)}
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, data)
	return img, nil
}

// Compositor renders tickets from a template image and a list of stamps.
//
// The scaled template is cached between calls, so rendering many tickets
// of the same size resamples the template only once.  A Compositor is not
// safe for concurrent use.
type Compositor struct {
	template *image.NRGBA
	stamps   []stamp.Stamp
	renderer *stamp.Renderer

	scaled *image.NRGBA
}

// New returns a Compositor for the given template.  Stamp coordinates
// refer to the pixel grid of tmpl.  Text stamps are drawn using face,
// which may be nil if there are none.
func New(tmpl *image.NRGBA, stamps []stamp.Stamp, face *stamp.Face) *Compositor {
	return &Compositor{
		template: tmpl,
		stamps:   stamps,
		renderer: stamp.NewRenderer(face),
	}
}

// Render returns the w×h ticket for rec.
//
// The ticket starts out opaque white.  The template is resampled to w×h
// with a Catmull-Rom filter and composited onto it, and then the stamps
// are drawn in order, so that later stamps cover earlier ones.
func (c *Compositor) Render(rec fields.Record, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}

	img := composite.NewCanvas(w, h, composite.White)
	composite.Draw(img, c.scaledTemplate(w, h), image.Point{})

	tb := c.template.Rect
	sc := stamp.NewScale(w, h, tb.Dx(), tb.Dy())
	for _, s := range c.stamps {
		if err := c.renderer.Draw(img, s, rec, sc); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (c *Compositor) scaledTemplate(w, h int) *image.NRGBA {
	if c.template.Rect.Dx() == w && c.template.Rect.Dy() == h {
		return c.template
	}
	if c.scaled != nil && c.scaled.Rect.Dx() == w && c.scaled.Rect.Dy() == h {
		return c.scaled
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, c.template, c.template.Rect, draw.Src, nil)
	c.scaled = dst
	return dst
}
