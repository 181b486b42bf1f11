// delta-type.dev/otfgen - a library for generating OpenType/TrueType fonts
// Copyright (C) 2024  The otfgen Authors
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

package layout

import "fmt"

// MalformedDescriptionError reports an internal inconsistency in a
// table's own description, such as an offset array whose length
// disagrees with its glyph count. Table packages construct these; the
// core only ever propagates them unchanged.
type MalformedDescriptionError struct {
	Table Tag
	Msg   string
}

func (e *MalformedDescriptionError) Error() string {
	return fmt.Sprintf("layout: malformed %s table description: %s", e.Table, e.Msg)
}
