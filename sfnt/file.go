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

// Package sfnt drives the SFNT table directory: the File Layoutable
// collects an ordered set of tables, reserves the directory ahead of
// them, and re-emits the directory (with fresh per-table checksums) on
// every pass until every table, and the directory itself, has
// stabilised.
package sfnt

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"delta-type.dev/otfgen/layout"
)

// Version selects the magic number written at the start of the file.
// spec.md left the choice between "OTTO" and TrueType's 0x00010000
// unresolved ("the selection policy is not specified"); this module
// resolves it by making Version part of the File description, so a
// CFF-flavoured font writes "OTTO" and a glyf-flavoured one writes the
// TrueType magic, as the OpenType specification requires.
type Version uint32

const (
	// VersionOpenType is the "OTTO" magic for CFF-outline fonts.
	VersionOpenType Version = 0x4F54544F
	// VersionTrueType is the magic for glyf-outline fonts.
	VersionTrueType Version = 0x00010000
)

// File is the root Layoutable: an ordered collection of tables that
// together make up one SFNT container. Construct one with NewFile.
type File struct {
	Version Version
	Tables  []layout.LayoutableTable
}

// NewFile sorts tables into ascending tag order, the order the SFNT
// directory requires, and returns a File ready to be laid out.
func NewFile(version Version, tables []layout.LayoutableTable) *File {
	sorted := append([]layout.LayoutableTable(nil), tables...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Tag().String() < sorted[j].Tag().String()
	})
	return &File{Version: version, Tables: sorted}
}

// Layout reserves the directory header first, pinning it to file offset
// 0, then lays out each table in turn so that each one's reservations
// fall after the directory, establishing the offsets the directory will
// later record.
func (f *File) Layout(l *layout.Layouter) layout.Layouted {
	if len(f.Tables) == 0 {
		panic("sfnt: a File needs at least one table")
	}

	reservation := l.Reserve(uint32(12 + 16*len(f.Tables)))

	entries := make([]tableEntry, len(f.Tables))
	for i, t := range f.Tables {
		entries[i] = tableEntry{tag: t.Tag(), layouted: t.Layout(l)}
	}

	return &layoutedFile{
		version:     f.Version,
		reservation: reservation,
		entries:     entries,
		needsPass:   true,
	}
}

type tableEntry struct {
	tag      layout.Tag
	layouted layout.Layouted
}

type layoutedFile struct {
	version      Version
	reservation  layout.Reservation
	entries      []tableEntry
	needsPass    bool
	prevChecksum map[layout.Tag]uint32
}

func (f *layoutedFile) Reservation() layout.Reservation { return f.reservation }

func (f *layoutedFile) RequiresAnotherPass() bool { return f.needsPass }

// PendingTags implements layout.Diagnosable.
func (f *layoutedFile) PendingTags() []layout.Tag {
	var pending []layout.Tag
	for _, e := range f.entries {
		if e.layouted.RequiresAnotherPass() {
			pending = append(pending, e.tag)
		}
	}
	return pending
}

func (f *layoutedFile) Pass(currentFile []byte) error {
	for _, e := range f.entries {
		if err := e.layouted.Pass(currentFile); err != nil {
			return fmt.Errorf("sfnt: table %s: %w", e.tag, err)
		}
	}

	n := len(f.entries)
	search := layout.ForCount(uint16(n), 16)

	w := f.reservation.Writer()
	if err := binary.Write(w, binary.BigEndian, uint32(f.version)); err != nil {
		return err
	}
	for _, v := range []uint16{uint16(n), search.SearchRange, search.EntrySelector, search.RangeShift} {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}

	newSums := make(map[layout.Tag]uint32, n)
	changed := f.prevChecksum == nil
	for _, e := range f.entries {
		res := e.layouted.Reservation()
		sum, err := tableChecksum(res)
		if err != nil {
			return err
		}
		newSums[e.tag] = sum
		if prev, ok := f.prevChecksum[e.tag]; !ok || prev != sum {
			changed = true
		}

		if _, err := w.Write(e.tag[:]); err != nil {
			return err
		}
		for _, v := range []uint32{sum, res.Offset(), layout.DirectoryLength(e.layouted)} {
			if err := binary.Write(w, binary.BigEndian, v); err != nil {
				return err
			}
		}
	}
	f.prevChecksum = newSums

	anyChildPending := false
	for _, e := range f.entries {
		if e.layouted.RequiresAnotherPass() {
			anyChildPending = true
			break
		}
	}

	f.needsPass = changed || anyChildPending
	return nil
}

func tableChecksum(res layout.Reservation) (uint32, error) {
	data, err := io.ReadAll(res.Reader())
	if err != nil {
		return 0, err
	}
	return layout.Checksum(data), nil
}
