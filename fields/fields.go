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

// Package fields substitutes record values into stamp templates.
//
// A template is arbitrary text containing placeholders of the form
// {{name}}.  The name is everything between the braces, taken literally:
// it may contain spaces and symbols, but not "{{" or "}}".
package fields

import "strings"

// Record maps field names to values.  One record produces one ticket.
type Record map[string]string

// next finds the first placeholder in s.  It returns the byte offsets of
// the opening braces, the name and the end of the closing braces, or
// ok == false if s contains no complete placeholder.
func next(s string) (start int, name string, end int, ok bool) {
	start = strings.Index(s, "{{")
	for start >= 0 {
		j := strings.Index(s[start+2:], "}}")
		if j < 0 {
			return 0, "", 0, false
		}
		name = s[start+2 : start+2+j]
		if k := strings.LastIndex(name, "{{"); k >= 0 {
			start += 2 + k
			continue
		}
		return start, name, start + 2 + j + 2, true
	}
	return 0, "", 0, false
}

// Resolve replaces every placeholder in tmpl whose name is present in rec
// by the corresponding value.  Placeholders for missing fields are kept
// verbatim.
//
// The template is scanned once from left to right, and substituted values
// are never scanned again, so a value which itself looks like a
// placeholder appears literally in the output.
func Resolve(tmpl string, rec Record) string {
	var b strings.Builder
	rest := tmpl
	for {
		start, name, end, ok := next(rest)
		if !ok {
			break
		}
		b.WriteString(rest[:start])
		if val, found := rec[name]; found {
			b.WriteString(val)
		} else {
			b.WriteString(rest[start:end])
		}
		rest = rest[end:]
	}
	if len(rest) == len(tmpl) {
		return tmpl
	}
	b.WriteString(rest)
	return b.String()
}

// Names returns the distinct placeholder names of tmpl in order of first
// occurrence.
func Names(tmpl string) []string {
	var names []string
	seen := make(map[string]bool)
	rest := tmpl
	for {
		_, name, end, ok := next(rest)
		if !ok {
			break
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
		rest = rest[end:]
	}
	return names
}

// Missing returns the placeholder names of tmpl which have no value in rec.
func Missing(tmpl string, rec Record) []string {
	var missing []string
	for _, name := range Names(tmpl) {
		if _, ok := rec[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
