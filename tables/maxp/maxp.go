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

// Package maxp encodes the "maxp" table.
// https://learn.microsoft.com/en-us/typography/opentype/spec/maxp
package maxp

import (
	"encoding/binary"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("maxp")

// CFFLength is the size of the version-0.5 "maxp" table used by
// CFF-outline (OpenType/CFF) fonts, which carry only numGlyphs.
const CFFLength = 6

// TrueTypeLength is the size of the version-1.0 table used by
// glyf-outline fonts, which also carries the various glyph-complexity
// maxima the rasteriser needs to size its scratch buffers.
const TrueTypeLength = 32

// Info describes a "maxp" table.
type Info struct {
	NumGlyphs int

	// TrueType is non-nil for glyf-outline fonts, selecting the
	// version-1.0 encoding. It is nil for CFF-outline fonts.
	TrueType *TrueTypeInfo
}

// TrueTypeInfo holds the glyf-specific maxima.
type TrueTypeInfo struct {
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// Table is the Layoutable for a maxp table.
type Table struct{ Info *Info }

// New returns a Layoutable maxp table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	length := uint32(CFFLength)
	if t.Info.TrueType != nil {
		length = TrueTypeLength
	}
	return &layouted{info: t.Info, reservation: l.Reserve(length)}
}

type layouted struct {
	info        *Info
	reservation layout.Reservation
	wrote       bool
}

func (m *layouted) Tag() layout.Tag                 { return Tag }
func (m *layouted) Reservation() layout.Reservation { return m.reservation }
func (m *layouted) RequiresAnotherPass() bool       { return !m.wrote }

// UnpaddedLen implements layout.UnpaddedLenProvider: the version-0.5 (CFF)
// table is 6 bytes, which does not fill a 4-byte-aligned reservation.
func (m *layouted) UnpaddedLen() uint32 {
	if m.info.TrueType == nil {
		return CFFLength
	}
	return TrueTypeLength
}

func (m *layouted) Pass(currentFile []byte) error {
	w := m.reservation.Writer()
	info := m.info

	if info.TrueType == nil {
		if err := binary.Write(w, binary.BigEndian, uint32(0x00005000)); err != nil {
			return err
		}
		m.wrote = true
		return binary.Write(w, binary.BigEndian, uint16(info.NumGlyphs))
	}

	tt := info.TrueType
	fields := []any{
		uint32(0x00010000),
		uint16(info.NumGlyphs),
		tt.MaxPoints, tt.MaxContours,
		tt.MaxCompositePoints, tt.MaxCompositeContours,
		tt.MaxZones, tt.MaxTwilightPoints,
		tt.MaxStorage, tt.MaxFunctionDefs, tt.MaxInstructionDefs,
		tt.MaxStackElements, tt.MaxSizeOfInstructions,
		tt.MaxComponentElements, tt.MaxComponentDepth,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return err
		}
	}
	m.wrote = true
	return nil
}
