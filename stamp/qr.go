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
	"fmt"
	"image"
	"math"

	"github.com/yeqown/go-qrcode/v2"
	"golang.org/x/image/draw"

	"seehuhn.de/go/sheet/composite"
)

// drawQR encodes text as a QR code and draws it with the top-left corner
// at the scaled position of s.  The side length is the stamp width,
// scaled by the smaller scale factor so that the symbol stays square.
func drawQR(dst *image.NRGBA, s *QR, text string, sc Scale) error {
	if text == "" {
		return nil
	}
	size := int(math.Round(s.Width * min(sc.X, sc.Y)))
	if size <= 0 {
		return nil
	}

	mods, err := encodeQR(text, s.ErrorCorrection)
	if err != nil {
		return err
	}
	img := symbolImage(mods, size)

	at := image.Pt(int(math.Round(s.X*sc.X)), int(math.Round(s.Y*sc.Y)))
	composite.Draw(dst, img, at)
	return nil
}

// eccLevel maps the letters L, M, Q and H to error correction levels.
// Anything else selects level M.
func eccLevel(name string) qrcode.EncodeOption {
	level := qrcode.ErrorCorrectionMedium
	switch name {
	case "L":
		level = qrcode.ErrorCorrectionLow
	case "Q":
		level = qrcode.ErrorCorrectionQuart
	case "H":
		level = qrcode.ErrorCorrectionHighest
	}
	return qrcode.WithErrorCorrectionLevel(level)
}

// encodeQR returns the module grid of the QR code for text, without a
// quiet zone.  mods[y][x] is true for dark modules.
func encodeQR(text, level string) ([][]bool, error) {
	qrc, err := qrcode.NewWith(text, eccLevel(level))
	if err != nil {
		return nil, fmt.Errorf("cannot encode QR code: %w", err)
	}
	w := &matrixWriter{}
	if err := qrc.Save(w); err != nil {
		return nil, fmt.Errorf("cannot encode QR code: %w", err)
	}
	if len(w.mods) == 0 {
		return nil, errors.New("cannot encode QR code: empty symbol")
	}
	return w.mods, nil
}

// matrixWriter implements qrcode.Writer by recording the module grid.
type matrixWriter struct {
	mods [][]bool
}

func (w *matrixWriter) Write(mat qrcode.Matrix) error {
	w.mods = make([][]bool, mat.Height())
	for y := range w.mods {
		w.mods[y] = make([]bool, mat.Width())
	}
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		w.mods[y][x] = v.IsSet()
	})
	return nil
}

func (w *matrixWriter) Close() error {
	return nil
}

// moduleSize returns the smallest integer module size, in pixels, for
// which count modules cover at least size pixels.
func moduleSize(size, count int) int {
	return (size + count - 1) / count
}

// symbolImage draws the module grid with black and white squares.  The
// grid is first drawn at an integer module size, and the result is scaled
// to size×size pixels with nearest-neighbour sampling if the two sizes
// differ.
func symbolImage(mods [][]bool, size int) *image.NRGBA {
	count := len(mods)
	m := moduleSize(size, count)
	full := composite.NewCanvas(count*m, count*m, composite.White)
	for y, row := range mods {
		for x, dark := range row {
			if dark {
				composite.Fill(full, image.Rect(x*m, y*m, (x+1)*m, (y+1)*m), black)
			}
		}
	}
	if count*m == size {
		return full
	}

	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(out, out.Rect, full, full.Rect, draw.Src, nil)
	return out
}
