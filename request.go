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
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"seehuhn.de/go/sheet/fields"
	"seehuhn.de/go/sheet/geometry"
	"seehuhn.de/go/sheet/stamp"
)

// Request describes one sheet of tickets.
type Request struct {
	Sheet geometry.Sheet `json:"sheet_config"`

	// TemplateWidth and TemplateHeight give the size of the template
	// image in pixels.  Stamp coordinates refer to this pixel grid.
	TemplateWidth  int `json:"template_width"`
	TemplateHeight int `json:"template_height"`

	Stamps  stamp.List      `json:"stamps"`
	Records []fields.Record `json:"records"`

	// DPI is the resolution of the raster output.
	DPI float64 `json:"dpi"`

	// Title, if set, is stored in the metadata of PDF output.
	Title string `json:"title,omitempty"`
}

// ParseRequest decodes and validates a JSON request.
// All errors wrap [ErrConfig].
func ParseRequest(data []byte) (*Request, error) {
	req := &Request{}
	if err := json.Unmarshal(data, req); err != nil {
		return nil, configError(err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that the request describes a sheet with at least one
// ticket of positive size.  All errors wrap [ErrConfig].
func (r *Request) Validate() error {
	if err := r.Sheet.Validate(); err != nil {
		return configError(err)
	}
	if !(r.DPI > 0) {
		return configError(fmt.Errorf("invalid resolution %g dpi", r.DPI))
	}
	if r.TemplateWidth <= 0 || r.TemplateHeight <= 0 {
		return configError(fmt.Errorf("invalid template size %d×%d",
			r.TemplateWidth, r.TemplateHeight))
	}
	if err := geometry.CheckSize(r.TemplateWidth, r.TemplateHeight); err != nil {
		return configError(err)
	}
	for i, s := range r.Stamps {
		if s == nil {
			return configError(fmt.Errorf("stamp %d is null", i))
		}
	}
	return nil
}

// logMissing reports, at debug level, placeholders which a record leaves
// unresolved.
func (r *Request) logMissing() {
	logger := Logger()
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for i, rec := range r.Records {
		for _, s := range r.Stamps {
			missing := fields.Missing(stampTemplate(s), rec)
			if len(missing) == 0 {
				continue
			}
			logger.Debug("record lacks fields",
				"record", i, "stamp", s.Frame().ID, "fields", missing)
		}
	}
}

func stampTemplate(s stamp.Stamp) string {
	switch s := s.(type) {
	case *stamp.Text:
		return s.Template
	case *stamp.Barcode:
		return s.Template
	case *stamp.QR:
		return s.Template
	}
	return ""
}
