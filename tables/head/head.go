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

// Package head encodes the "head" table. It is the one table whose
// content is a function of the whole file it is embedded in: its
// checksumAdjustment field only becomes known once every other table's
// bytes (and head's own, with the field zeroed) are in place, so it is
// the table that drives the fixed-point loop beyond two passes.
// https://learn.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"encoding/binary"
	"time"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("head")

const tableLength = 54

// macEpoch is the OpenType head table's date epoch: midnight, 1 January
// 1904, UTC.
var macEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// Flags holds the head.flags bitfield.
type Flags struct {
	BaselineAtY0                  bool // bit 0
	LeftSidebearingAtX0           bool // bit 1
	InstructionsDependOnPointSize bool // bit 2
	InstructionsAlterAdvanceWidth bool // bit 4
}

// bit 3 ("force ppem to integer values") must always be set per the
// OpenType spec, so it is not exposed as a field.
func (f Flags) encode() uint16 {
	// 1<<n, not the XOR "2^n" bug the reference implementation carried;
	// see spec.md's REDESIGN FLAGS.
	v := uint16(1 << 3)
	if f.BaselineAtY0 {
		v |= 1 << 0
	}
	if f.LeftSidebearingAtX0 {
		v |= 1 << 1
	}
	if f.InstructionsDependOnPointSize {
		v |= 1 << 2
	}
	if f.InstructionsAlterAdvanceWidth {
		v |= 1 << 4
	}
	return v
}

// MacStyle holds the head.macStyle bitfield.
type MacStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
	Outline   bool
	Shadow    bool
	Condensed bool
	Extended  bool
}

func (m MacStyle) encode() uint16 {
	var v uint16
	for i, set := range []bool{m.Bold, m.Italic, m.Underline, m.Outline, m.Shadow, m.Condensed, m.Extended} {
		if set {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Info describes a "head" table.
type Info struct {
	FontRevision   layout.Fixed
	Flags          Flags
	UnitsPerEm     uint16
	Created        time.Time
	Modified       time.Time
	XMin, YMin     int16
	XMax, YMax     int16
	MacStyle       MacStyle
	LowestRecPPEM  uint16
	HasLongOffsets bool // indexToLocFormat: false=short (0), true=long (1)
}

// Table is the Layoutable for a head table.
type Table struct {
	Info *Info
}

// New returns a Layoutable head table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	return &layouted{info: t.Info, reservation: l.Reserve(tableLength)}
}

type layouted struct {
	info           *Info
	reservation    layout.Reservation
	pass           int
	prevAdjustment uint32
	needsPass      bool
}

func (h *layouted) Tag() layout.Tag                 { return Tag }
func (h *layouted) Reservation() layout.Reservation { return h.reservation }
func (h *layouted) RequiresAnotherPass() bool {
	return h.pass == 0 || h.needsPass
}

// UnpaddedLen implements layout.UnpaddedLenProvider: the "head" table is
// 54 bytes, which the arena's 4-byte alignment pads to 56 in the
// reservation, but the directory entry must record the true length.
func (h *layouted) UnpaddedLen() uint32 { return tableLength }

// checksumAdjustmentOffset is the byte offset of checksumAdjustment
// within the table's own encoding.
const checksumAdjustmentOffset = 8

// Pass writes zero into checksumAdjustment on its first invocation, then
// on every later invocation derives the adjustment from currentFile with
// this table's own checksumAdjustment field forced back to zero first —
// currentFile otherwise carries whatever value the previous pass wrote
// there, which would feed the checksum back into itself and prevent the
// loop from ever settling — and keeps requesting another pass until two
// consecutive passes agree.
func (h *layouted) Pass(currentFile []byte) error {
	var adjustment uint32
	if h.pass > 0 {
		zeroed := append([]byte(nil), currentFile...)
		off := h.reservation.Offset() + checksumAdjustmentOffset
		binary.BigEndian.PutUint32(zeroed[off:off+4], 0)
		adjustment = layout.ChecksumAdjustment(zeroed)
	}

	data := encode(h.info, adjustment)
	if _, err := h.reservation.Writer().Write(data); err != nil {
		return err
	}

	stable := h.pass > 0 && adjustment == h.prevAdjustment
	h.needsPass = !stable
	h.prevAdjustment = adjustment
	h.pass++
	return nil
}

func encode(info *Info, checksumAdjustment uint32) []byte {
	buf := make([]byte, tableLength)
	be := binary.BigEndian

	be.PutUint32(buf[0:4], 0x00010000) // version
	be.PutUint32(buf[4:8], info.FontRevision.Encode())
	be.PutUint32(buf[8:12], checksumAdjustment)
	be.PutUint32(buf[12:16], 0x5F0F3CF5) // magicNumber
	be.PutUint16(buf[16:18], info.Flags.encode())
	be.PutUint16(buf[18:20], info.UnitsPerEm)
	putLongDateTime(buf[20:28], info.Created)
	putLongDateTime(buf[28:36], info.Modified)
	be.PutUint16(buf[36:38], uint16(info.XMin))
	be.PutUint16(buf[38:40], uint16(info.YMin))
	be.PutUint16(buf[40:42], uint16(info.XMax))
	be.PutUint16(buf[42:44], uint16(info.YMax))
	be.PutUint16(buf[44:46], info.MacStyle.encode())
	be.PutUint16(buf[46:48], info.LowestRecPPEM)
	be.PutUint16(buf[48:50], 2) // fontDirectionHint: deprecated, set to 2
	if info.HasLongOffsets {
		be.PutUint16(buf[50:52], 1)
	}
	// buf[52:54] glyphDataFormat = 0

	return buf
}

func putLongDateTime(b []byte, t time.Time) {
	secs := int64(t.Sub(macEpoch).Seconds())
	binary.BigEndian.PutUint64(b, uint64(secs))
}
