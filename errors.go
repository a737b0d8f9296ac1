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
	"errors"
	"fmt"
)

// ErrConfig is wrapped by all errors caused by an unusable request or
// sheet description.  Such errors are detected before anything is drawn.
var ErrConfig = errors.New("sheet: invalid configuration")

// ErrNoTickets is returned by the legacy entry points when the input holds
// less than one complete ticket.
var ErrNoTickets = errors.New("sheet: no complete ticket image in input")

// TicketError reports a ticket which could not be rendered.
type TicketError struct {
	// Index is the position of the record in the request.
	Index int
	Err   error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("sheet: ticket %d: %v", e.Index, e.Err)
}

func (e *TicketError) Unwrap() error {
	return e.Err
}

func configError(err error) error {
	return fmt.Errorf("%w: %w", ErrConfig, err)
}
