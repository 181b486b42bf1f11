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

// Package hhea encodes the "hhea" (horizontal header) table.
// https://learn.microsoft.com/en-us/typography/opentype/spec/hhea
package hhea

import (
	"encoding/binary"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("hhea")

const tableLength = 36

// Info describes an "hhea" table. Every field is written as supplied;
// this package derives none of them. AdvanceWidthMax and
// MinLeftSideBearing are the values tables/hmtx.Info.MaxAdvanceWidth and
// tables/hmtx.Info.MinLeftSideBearing compute; MinRightSideBearing and
// XMaxExtent have no hmtx helper.
type Info struct {
	Ascent              int16
	Descent             int16
	LineGap             int16
	AdvanceWidthMax     uint16
	MinLeftSideBearing  int16
	MinRightSideBearing int16
	XMaxExtent          int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumOfLongHorMetrics uint16
}

// Table is the Layoutable for an hhea table.
type Table struct{ Info *Info }

// New returns a Layoutable hhea table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	return &layouted{info: t.Info, reservation: l.Reserve(tableLength)}
}

type layouted struct {
	info        *Info
	reservation layout.Reservation
	wrote       bool
}

func (h *layouted) Tag() layout.Tag                 { return Tag }
func (h *layouted) Reservation() layout.Reservation { return h.reservation }
func (h *layouted) RequiresAnotherPass() bool       { return !h.wrote }

func (h *layouted) Pass(currentFile []byte) error {
	w := h.reservation.Writer()
	info := h.info
	fields := []any{
		uint32(0x00010000),
		info.Ascent, info.Descent, info.LineGap,
		info.AdvanceWidthMax,
		info.MinLeftSideBearing, info.MinRightSideBearing,
		info.XMaxExtent,
		info.CaretSlopeRise, info.CaretSlopeRun, info.CaretOffset,
		int16(0), int16(0), int16(0), int16(0), // reserved
		int16(0), // metricDataFormat
		info.NumOfLongHorMetrics,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return err
		}
	}
	h.wrote = true
	return nil
}
