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

package maxp

import (
	"encoding/binary"
	"testing"

	"delta-type.dev/otfgen/layout"
)

func TestCFFMaxp(t *testing.T) {
	l := layout.New(4)
	lt := New(&Info{NumGlyphs: 42}).Layout(l)
	if err := lt.Pass(nil); err != nil {
		t.Fatal(err)
	}

	data, _ := readAll(lt) // the 6-byte table in its 8-byte aligned reservation
	if got := layout.DirectoryLength(lt); got != CFFLength {
		t.Fatalf("DirectoryLength = %d, want %d", got, CFFLength)
	}
	if got := binary.BigEndian.Uint32(data[0:4]); got != 0x00005000 {
		t.Fatalf("version = %#08x, want 0x00005000", got)
	}
	if got := binary.BigEndian.Uint16(data[4:6]); got != 42 {
		t.Fatalf("numGlyphs = %d, want 42", got)
	}
	if lt.RequiresAnotherPass() {
		t.Fatal("maxp should converge after one pass")
	}
}

func TestTrueTypeMaxp(t *testing.T) {
	l := layout.New(4)
	info := &Info{NumGlyphs: 7, TrueType: &TrueTypeInfo{MaxPoints: 12, MaxContours: 3}}
	lt := New(info).Layout(l)
	if err := lt.Pass(nil); err != nil {
		t.Fatal(err)
	}

	data, _ := readAll(lt)
	if len(data) != TrueTypeLength {
		t.Fatalf("len(data) = %d, want %d", len(data), TrueTypeLength)
	}
	if got := binary.BigEndian.Uint16(data[6:8]); got != 12 {
		t.Fatalf("maxPoints = %d, want 12", got)
	}
}

func readAll(lt layout.Layouted) ([]byte, error) {
	res := lt.Reservation()
	buf := make([]byte, res.Len())
	_, err := res.Reader().Read(buf)
	return buf, err
}
