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

// Package svg encodes the OT-SVG "SVG " table, which lets a font carry
// color glyph outlines as embedded SVG documents alongside (or instead
// of) their "glyf" outlines.
// https://learn.microsoft.com/en-us/typography/opentype/spec/svg
package svg

import (
	"encoding/binary"
	"sort"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("SVG ")

const recordSize = 12

// DocumentRecord associates a contiguous glyph ID range with a raw SVG
// document. Ranges are expected not to overlap; Layout sorts records by
// StartGlyphID but does not otherwise validate overlap, mirroring the
// permissiveness of the table format itself.
type DocumentRecord struct {
	StartGlyphID uint16
	EndGlyphID   uint16
	Document     []byte
}

// Info describes an "SVG " table.
type Info struct {
	Documents []DocumentRecord
}

// Table is the Layoutable for an SVG table.
type Table struct{ Info *Info }

// New returns a Layoutable SVG table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	docs := append([]DocumentRecord(nil), t.Info.Documents...)
	sort.Slice(docs, func(i, j int) bool { return docs[i].StartGlyphID < docs[j].StartGlyphID })

	const headerLen = 10                    // version(2) + offsetToSVGDocumentList(4) + reserved(4)
	const docListHeaderLen = 2              // numEntries
	recordsStart := headerLen + docListHeaderLen
	blobsStart := recordsStart + len(docs)*recordSize

	var blob []byte
	recordHeaders := make([]byte, len(docs)*recordSize)
	for i, d := range docs {
		offset := uint32(blobsStart + len(blob))
		base := i * recordSize
		binary.BigEndian.PutUint16(recordHeaders[base:], d.StartGlyphID)
		binary.BigEndian.PutUint16(recordHeaders[base+2:], d.EndGlyphID)
		binary.BigEndian.PutUint32(recordHeaders[base+4:], offset)
		binary.BigEndian.PutUint32(recordHeaders[base+8:], uint32(len(d.Document)))
		blob = append(blob, d.Document...)
	}

	body := make([]byte, blobsStart+len(blob))
	binary.BigEndian.PutUint16(body[0:], 0) // version
	binary.BigEndian.PutUint32(body[2:], headerLen)
	binary.BigEndian.PutUint32(body[6:], 0) // reserved
	binary.BigEndian.PutUint16(body[headerLen:], uint16(len(docs)))
	copy(body[recordsStart:], recordHeaders)
	copy(body[blobsStart:], blob)

	return &layouted{body: body, reservation: l.Reserve(uint32(len(body)))}
}

type layouted struct {
	body        []byte
	reservation layout.Reservation
	wrote       bool
}

func (s *layouted) Tag() layout.Tag                 { return Tag }
func (s *layouted) Reservation() layout.Reservation { return s.reservation }
func (s *layouted) RequiresAnotherPass() bool       { return !s.wrote }

// UnpaddedLen implements layout.UnpaddedLenProvider: embedded SVG document
// byte counts are arbitrary, not generally 4-byte aligned.
func (s *layouted) UnpaddedLen() uint32 { return uint32(len(s.body)) }

func (s *layouted) Pass(currentFile []byte) error {
	_, err := s.reservation.Writer().Write(s.body)
	s.wrote = true
	return err
}
