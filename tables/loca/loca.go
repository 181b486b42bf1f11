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

// Package loca encodes the "loca" (glyph location) table, the array of
// byte offsets into "glyf" that head.IndexToLocFormat selects the width
// for.
// https://learn.microsoft.com/en-us/typography/opentype/spec/loca
package loca

import (
	"encoding/binary"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("loca")

// Offsets holds the cumulative byte offsets of each glyph's data within
// "glyf", one more entry than there are glyphs, as the spec requires.
type Offsets struct {
	Values     []uint32
	LongFormat bool
}

// ForGlyphLengths builds an Offsets from the per-glyph encoded lengths,
// selecting the short (word, /2) format when every offset fits and the
// long (uint32) format otherwise.
func ForGlyphLengths(lengths []uint32) *Offsets {
	values := make([]uint32, len(lengths)+1)
	for i, l := range lengths {
		values[i+1] = values[i] + l
	}
	long := values[len(values)-1] > 0x1FFFE
	return &Offsets{Values: values, LongFormat: long}
}

// Table is the Layoutable for a loca table.
type Table struct{ Offsets *Offsets }

// New returns a Layoutable loca table.
func New(offsets *Offsets) *Table { return &Table{Offsets: offsets} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	var length uint32
	if t.Offsets.LongFormat {
		length = uint32(len(t.Offsets.Values)) * 4
	} else {
		length = uint32(len(t.Offsets.Values)) * 2
	}
	return &layouted{offsets: t.Offsets, reservation: l.Reserve(length)}
}

type layouted struct {
	offsets     *Offsets
	reservation layout.Reservation
	wrote       bool
}

func (lt *layouted) Tag() layout.Tag                 { return Tag }
func (lt *layouted) Reservation() layout.Reservation { return lt.reservation }
func (lt *layouted) RequiresAnotherPass() bool       { return !lt.wrote }

// UnpaddedLen implements layout.UnpaddedLenProvider: an odd number of
// short-format entries leaves the table short of a 4-byte boundary.
func (lt *layouted) UnpaddedLen() uint32 {
	if lt.offsets.LongFormat {
		return uint32(len(lt.offsets.Values)) * 4
	}
	return uint32(len(lt.offsets.Values)) * 2
}

func (lt *layouted) Pass(currentFile []byte) error {
	w := lt.reservation.Writer()
	for _, off := range lt.offsets.Values {
		if lt.offsets.LongFormat {
			if err := binary.Write(w, binary.BigEndian, off); err != nil {
				return err
			}
		} else {
			if err := binary.Write(w, binary.BigEndian, uint16(off/2)); err != nil {
				return err
			}
		}
	}
	lt.wrote = true
	return nil
}
