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

// Package hmtx encodes the "hmtx" (horizontal metrics) table.
// https://learn.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

import (
	"encoding/binary"
	"math"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("hmtx")

// LongHorMetric is one entry of the leading, fully-specified run of
// glyphs in the table.
type LongHorMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Info describes an "hmtx" table. Glyphs beyond len(HMetrics) share the
// last entry's advance width and take their left side bearing from
// LeftSideBearing, exactly as the OpenType spec's trailing-array
// optimisation allows for monospaced runs.
type Info struct {
	HMetrics        []LongHorMetric
	LeftSideBearing []int16
}

// NumOfLongHorMetrics is the value the paired "hhea" table must record.
func (info *Info) NumOfLongHorMetrics() uint16 { return uint16(len(info.HMetrics)) }

// Table is the Layoutable for an hmtx table.
type Table struct{ Info *Info }

// New returns a Layoutable hmtx table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	length := uint32(len(t.Info.HMetrics)*4 + len(t.Info.LeftSideBearing)*2)
	return &layouted{info: t.Info, reservation: l.Reserve(length)}
}

type layouted struct {
	info        *Info
	reservation layout.Reservation
	wrote       bool
}

func (h *layouted) Tag() layout.Tag                 { return Tag }
func (h *layouted) Reservation() layout.Reservation { return h.reservation }
func (h *layouted) RequiresAnotherPass() bool       { return !h.wrote }

// UnpaddedLen implements layout.UnpaddedLenProvider: an odd number of
// leftSideBearing entries leaves the table short of a 4-byte boundary.
func (h *layouted) UnpaddedLen() uint32 {
	return uint32(len(h.info.HMetrics)*4 + len(h.info.LeftSideBearing)*2)
}

func (h *layouted) Pass(currentFile []byte) error {
	if len(h.info.HMetrics) == 0 {
		return &layout.MalformedDescriptionError{Table: Tag, Msg: "hmtx needs at least one long horizontal metric"}
	}

	w := h.reservation.Writer()
	for _, m := range h.info.HMetrics {
		if err := binary.Write(w, binary.BigEndian, m.AdvanceWidth); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, m.LeftSideBearing); err != nil {
			return err
		}
	}
	for _, lsb := range h.info.LeftSideBearing {
		if err := binary.Write(w, binary.BigEndian, lsb); err != nil {
			return err
		}
	}
	h.wrote = true
	return nil
}

// AdvanceWidth returns the advance width of gid in font design units.
func (info *Info) AdvanceWidth(gid int) uint16 {
	if gid >= len(info.HMetrics) {
		if len(info.HMetrics) == 0 {
			return 0
		}
		return info.HMetrics[len(info.HMetrics)-1].AdvanceWidth
	}
	return info.HMetrics[gid].AdvanceWidth
}

// MaxAdvanceWidth returns the widest advance width in the table, the
// value "hhea".AdvanceWidthMax must record.
func (info *Info) MaxAdvanceWidth() uint16 {
	var max uint16
	for _, m := range info.HMetrics {
		if m.AdvanceWidth > max {
			max = m.AdvanceWidth
		}
	}
	return max
}

// MinLeftSideBearing returns the smallest left side bearing across all
// glyphs, the value "hhea".MinLeftSideBearing must record. It returns 0
// if there are no metrics at all.
func (info *Info) MinLeftSideBearing() int16 {
	min := int16(math.MaxInt16)
	found := false
	for _, m := range info.HMetrics {
		found = true
		if m.LeftSideBearing < min {
			min = m.LeftSideBearing
		}
	}
	for _, lsb := range info.LeftSideBearing {
		found = true
		if lsb < min {
			min = lsb
		}
	}
	if !found {
		return 0
	}
	return min
}
