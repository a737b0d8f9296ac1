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
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrColor is returned by [ParseColor] for strings which are not valid
// colour specifications.
var ErrColor = errors.New("stamp: invalid colour")

var black = color.NRGBA{A: 0xff}

// ParseColor parses a CSS colour specification.
//
// Supported forms are hexadecimal colours (#rgb, #rgba, #rrggbb and
// #rrggbbaa), the functions rgb() and rgba() with integer or percentage
// channels, the keyword "transparent", and the CSS named colours.
// Matching is case-insensitive.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHex(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return parseFunc(s)
	case s == "transparent":
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, ErrColor
}

func parseHex(h string) (color.NRGBA, error) {
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, ErrColor
	}

	var c color.NRGBA
	switch len(h) {
	case 3:
		c = color.NRGBA{R: nibble(v >> 8), G: nibble(v >> 4), B: nibble(v), A: 0xff}
	case 4:
		c = color.NRGBA{R: nibble(v >> 12), G: nibble(v >> 8), B: nibble(v >> 4), A: nibble(v)}
	case 6:
		c = color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	case 8:
		c = color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	default:
		return color.NRGBA{}, ErrColor
	}
	return c, nil
}

// nibble expands the lowest hex digit of v to a full byte.
func nibble(v uint64) uint8 {
	return uint8(v&0xf) * 0x11
}

// parseFunc parses rgb(r, g, b) and rgba(r, g, b, a).  Both the legacy
// comma syntax and the modern space syntax with an optional "/ alpha"
// are accepted.
func parseFunc(s string) (color.NRGBA, error) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return color.NRGBA{}, ErrColor
	}
	name := strings.TrimSpace(s[:open])
	if name != "rgb" && name != "rgba" {
		return color.NRGBA{}, ErrColor
	}

	args := strings.FieldsFunc(s[open+1:len(s)-1], func(r rune) bool {
		return r == ',' || r == '/' || r == ' ' || r == '\t'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, ErrColor
	}

	var ch [4]uint8
	ch[3] = 0xff
	for i, arg := range args {
		var v float64
		var err error
		if pct, ok := strings.CutSuffix(arg, "%"); ok {
			v, err = strconv.ParseFloat(pct, 64)
			v /= 100
		} else {
			v, err = strconv.ParseFloat(arg, 64)
			if i < 3 {
				v /= 255
			}
		}
		if err != nil || math.IsNaN(v) {
			return color.NRGBA{}, ErrColor
		}
		ch[i] = uint8(math.Round(min(max(v, 0), 1) * 255))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}
