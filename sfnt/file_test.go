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

package sfnt

import (
	"encoding/binary"
	"testing"

	"delta-type.dev/otfgen/layout"
)

// constTable is a fixed-content table that converges after one Pass,
// used to exercise the File orchestrator without depending on any real
// table codec.
type constTable struct {
	tag     layout.Tag
	content []byte
}

func (c *constTable) Tag() layout.Tag { return c.tag }

func (c *constTable) Layout(l *layout.Layouter) layout.Layouted {
	return &layoutedConstTable{tag: c.tag, reservation: l.Reserve(uint32(len(c.content))), content: c.content}
}

type layoutedConstTable struct {
	tag         layout.Tag
	reservation layout.Reservation
	content     []byte
	wrote       bool
}

func (c *layoutedConstTable) Reservation() layout.Reservation { return c.reservation }
func (c *layoutedConstTable) RequiresAnotherPass() bool       { return !c.wrote }
func (c *layoutedConstTable) Pass(currentFile []byte) error {
	_, err := c.reservation.Writer().Write(c.content)
	c.wrote = true
	return err
}

func newConstTable(tag string, content []byte) layout.LayoutableTable {
	return &constTable{tag: layout.MakeTag(tag), content: content}
}

func TestDirectoryOrdering(t *testing.T) {
	f := NewFile(VersionOpenType, []layout.LayoutableTable{
		newConstTable("cmap", []byte{1, 2, 3, 4}),
		newConstTable("OS/2", []byte{5, 6, 7, 8}),
		newConstTable("head", []byte{9, 10, 11, 12}),
	})

	out, err := layout.Run(f, 4)
	if err != nil {
		t.Fatal(err)
	}

	n := int(binary.BigEndian.Uint16(out[4:6]))
	if n != 3 {
		t.Fatalf("numTables = %d, want 3", n)
	}

	var tags []string
	for i := 0; i < n; i++ {
		rec := out[12+16*i : 12+16*(i+1)]
		tags = append(tags, string(rec[:4]))
	}
	want := []string{"OS/2", "cmap", "head"}
	for i := range want {
		if tags[i] != want[i] {
			t.Fatalf("tags = %v, want %v", tags, want)
		}
	}
}

func TestOffsetAndChecksumAgreement(t *testing.T) {
	f := NewFile(VersionOpenType, []layout.LayoutableTable{
		newConstTable("aaaa", []byte{1, 2, 3, 4}),
		newConstTable("bbbb", []byte{5, 6, 7, 8, 9}), // pads to 8 bytes
	})

	out, err := layout.Run(f, 4)
	if err != nil {
		t.Fatal(err)
	}

	dirEnd := 12 + 16*2
	for i := 0; i < 2; i++ {
		rec := out[12+16*i : 12+16*(i+1)]
		checksum := binary.BigEndian.Uint32(rec[4:8])
		offset := binary.BigEndian.Uint32(rec[8:12])
		length := binary.BigEndian.Uint32(rec[12:16])

		if int(offset) < dirEnd {
			t.Fatalf("entry %d: offset %d before end of directory %d", i, offset, dirEnd)
		}
		body := out[offset : offset+length]
		if i == 0 && string(body) != "\x01\x02\x03\x04" {
			t.Fatalf("entry 0 body = %v", body)
		}

		// checksum covers the padded reservation, not just `length` bytes.
		paddedEnd := offset + ((length + 3) / 4 * 4)
		want := layout.Checksum(out[offset:paddedEnd])
		if checksum != want {
			t.Fatalf("entry %d: checksum = %#08x, want %#08x", i, checksum, want)
		}
	}
}

func TestSingleTableOffset(t *testing.T) {
	f := NewFile(VersionOpenType, []layout.LayoutableTable{
		newConstTable("cmap", []byte{0, 0, 0, 1, 0, 0, 0, 3}),
	})

	out, err := layout.Run(f, 4)
	if err != nil {
		t.Fatal(err)
	}

	// header(12) + one directory entry(16) = 28.
	offset := binary.BigEndian.Uint32(out[12+8 : 12+12])
	if offset != 28 {
		t.Fatalf("offset = %d, want 28", offset)
	}
}

func TestRunIsIdempotentAcrossInvocations(t *testing.T) {
	build := func() *File {
		return NewFile(VersionOpenType, []layout.LayoutableTable{
			newConstTable("cmap", []byte{1, 2, 3}),
			newConstTable("head", []byte{4, 5, 6, 7, 8}),
		})
	}

	out1, err := layout.Run(build(), 4)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := layout.Run(build(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if string(out1) != string(out2) {
		t.Fatal("two runs over equal descriptions produced different files")
	}
}
