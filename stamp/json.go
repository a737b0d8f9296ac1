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
	"encoding/json"
	"fmt"
)

// List is a sequence of stamps, drawn in order.  In JSON, every stamp is
// an object with a "type" member holding its kind.
type List []Stamp

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (l *List) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	res := make(List, 0, len(raw))
	for i, msg := range raw {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return fmt.Errorf("stamp %d: %w", i, err)
		}

		var s Stamp
		switch head.Type {
		case KindText:
			s = &Text{}
		case KindBarcode:
			s = &Barcode{}
		case KindQR:
			s = &QR{}
		default:
			return fmt.Errorf("stamp %d: unknown type %q", i, head.Type)
		}
		if err := json.Unmarshal(msg, s); err != nil {
			return fmt.Errorf("stamp %d (%s): %w", i, head.Type, err)
		}
		res = append(res, s)
	}
	*l = res
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
func (l List) MarshalJSON() ([]byte, error) {
	out := make([]any, len(l))
	for i, s := range l {
		switch s := s.(type) {
		case *Text:
			out[i] = struct {
				Type string `json:"type"`
				*Text
			}{KindText, s}
		case *Barcode:
			out[i] = struct {
				Type string `json:"type"`
				*Barcode
			}{KindBarcode, s}
		case *QR:
			out[i] = struct {
				Type string `json:"type"`
				*QR
			}{KindQR, s}
		default:
			return nil, fmt.Errorf("stamp %d: unsupported type %T", i, s)
		}
	}
	return json.Marshal(out)
}
