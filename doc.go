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

// Package sheet lays out variable-data tickets on printable sheets.
//
// A request combines a sheet description, a template image, a list of
// stamps and a list of records.  Every record yields one ticket: the
// template, scaled uniformly into a grid cell, with the stamps filled in
// from the record's fields.  [RenderSheet] returns the first page of
// tickets as raw RGBA pixels, and [RenderPDF] places all tickets on as
// many PDF pages as needed.
//
// [GeneratePreviewPNG] and [GeneratePDF] arrange tickets which have
// already been rendered elsewhere, without stamping.
//
// The geometry of both outputs is derived by package geometry, so that the
// raster preview and the PDF file agree on the placement of every ticket.
// Fonts are passed in as bytes; package fontcache can be used to obtain
// them.
package sheet

//go:generate go run ./testcases/export
