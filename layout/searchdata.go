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

import "math/bits"

// SearchData is the (searchRange, entrySelector, rangeShift) triple
// required by the SFNT table directory and by cmap format-4 subtables,
// both of which support a binary search over a sorted record array.
type SearchData struct {
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// ForCount derives the SearchData triple for n records of the given
// unit size (16 for SFNT directory entries, 2 for cmap format-4
// segments). n must be at least 1.
func ForCount(n uint16, unit uint16) SearchData {
	entrySelector := uint16(bits.Len16(n) - 1)
	searchRange := (uint16(1) << entrySelector) * unit
	rangeShift := n*unit - searchRange
	return SearchData{
		SearchRange:   searchRange,
		EntrySelector: entrySelector,
		RangeShift:    rangeShift,
	}
}
