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

// Package name encodes the "name" (naming) table.
// https://learn.microsoft.com/en-us/typography/opentype/spec/name
//
// Only the Windows platform (platform ID 3, encoding ID 1, US English) is
// emitted; synthesised fonts have no use for the Macintosh-platform
// duplicate entries a hand-authored font ships for old QuickDraw clients.
package name

import (
	"sort"
	"unicode/utf16"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("name")

// Name IDs defined by the OpenType spec that callers commonly populate.
const (
	IDCopyright      = 0
	IDFamily         = 1
	IDSubfamily      = 2
	IDUniqueID       = 3
	IDFullName       = 4
	IDVersion        = 5
	IDPostScriptName = 6
	IDTrademark      = 7
	IDManufacturer   = 8
	IDLicense        = 13
	IDLicenseURL     = 14
)

const (
	platformWindows     = 3
	encodingWindowsBMP  = 1
	languageWindowsEnUS = 0x0409
)

// Info describes a "name" table as a set of nameID -> UTF-8 string
// records, all emitted under the Windows/Unicode BMP/en-US triple.
type Info struct {
	Strings map[uint16]string
}

// Table is the Layoutable for a name table.
type Table struct{ Info *Info }

// New returns a Layoutable name table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	body := encode(t.Info)
	return &layouted{body: body, reservation: l.Reserve(uint32(len(body)))}
}

type layouted struct {
	body        []byte
	reservation layout.Reservation
	wrote       bool
}

func (n *layouted) Tag() layout.Tag                 { return Tag }
func (n *layouted) Reservation() layout.Reservation { return n.reservation }
func (n *layouted) RequiresAnotherPass() bool       { return !n.wrote }

// UnpaddedLen implements layout.UnpaddedLenProvider: the record-plus-
// storage body's length is rarely a multiple of the arena's alignment.
func (n *layouted) UnpaddedLen() uint32 { return uint32(len(n.body)) }

func (n *layouted) Pass(currentFile []byte) error {
	_, err := n.reservation.Writer().Write(n.body)
	n.wrote = true
	return err
}

type record struct {
	nameID uint16
	offset uint16
	length uint16
}

func encode(info *Info) []byte {
	ids := make([]uint16, 0, len(info.Strings))
	for id := range info.Strings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var storage []byte
	records := make([]record, 0, len(ids))
	for _, id := range ids {
		enc := utf16BE(info.Strings[id])
		records = append(records, record{
			nameID: id,
			offset: uint16(len(storage)),
			length: uint16(len(enc)),
		})
		storage = append(storage, enc...)
	}

	numRec := len(records)
	startOfStorage := 6 + numRec*12
	res := make([]byte, startOfStorage+len(storage))

	res[0], res[1] = 0, 0 // format
	res[2] = byte(numRec >> 8)
	res[3] = byte(numRec)
	res[4] = byte(startOfStorage >> 8)
	res[5] = byte(startOfStorage)

	for i, rec := range records {
		base := 6 + i*12
		putUint16(res[base:], platformWindows)
		putUint16(res[base+2:], encodingWindowsBMP)
		putUint16(res[base+4:], languageWindowsEnUS)
		putUint16(res[base+6:], rec.nameID)
		putUint16(res[base+8:], rec.length)
		putUint16(res[base+10:], rec.offset)
	}
	copy(res[startOfStorage:], storage)

	return res
}

func putUint16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func utf16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	res := make([]byte, len(units)*2)
	for i, u := range units {
		res[i*2] = byte(u >> 8)
		res[i*2+1] = byte(u)
	}
	return res
}
