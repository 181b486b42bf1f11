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

package head

import (
	"encoding/binary"
	"testing"
	"time"

	"delta-type.dev/otfgen/layout"
)

func testInfo() *Info {
	return &Info{
		FontRevision:  layout.Fixed{Major: 1},
		UnitsPerEm:    1000,
		Created:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Modified:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		XMin:          -100,
		YMin:          -200,
		XMax:          900,
		YMax:          800,
		LowestRecPPEM: 8,
	}
}

func TestHeadTableLength(t *testing.T) {
	data := encode(testInfo(), 0)
	if len(data) != tableLength {
		t.Fatalf("len(data) = %d, want %d", len(data), tableLength)
	}
}

func TestFlagBitThreeAlwaysSet(t *testing.T) {
	data := encode(testInfo(), 0)
	flags := binary.BigEndian.Uint16(data[16:18])
	if flags&(1<<3) == 0 {
		t.Fatal("bit 3 of flags must always be set")
	}
}

// TestTwoPassConvergence exercises spec.md's scenario 5: after the first
// Pass, checksumAdjustment is zero; after the second, it holds the value
// that makes the whole file (with the field zeroed) checksum to the
// magic constant; a third Pass recomputes the same value, and only then
// does the table stop requesting further passes.
func TestTwoPassConvergence(t *testing.T) {
	l := layout.New(4)
	table := New(testInfo())
	lt := table.Layout(l)

	if !lt.RequiresAnotherPass() {
		t.Fatal("a freshly laid-out head table must require a pass")
	}

	buf := l.GetResult()
	if err := lt.Pass(buf); err != nil {
		t.Fatal(err)
	}
	buf = l.GetResult()
	adj := binary.BigEndian.Uint32(buf[8:12])
	if adj != 0 {
		t.Fatalf("checksumAdjustment after pass 1 = %#08x, want 0", adj)
	}
	if !lt.RequiresAnotherPass() {
		t.Fatal("head must still require a pass after writing a placeholder adjustment")
	}

	if err := lt.Pass(buf); err != nil {
		t.Fatal(err)
	}
	buf = l.GetResult()
	adj = binary.BigEndian.Uint32(buf[8:12])

	zeroed := append([]byte(nil), buf...)
	binary.BigEndian.PutUint32(zeroed[8:12], 0)
	if got := adj + layout.Checksum(zeroed); got != 0xB1B0AFBA { // uint32 addition wraps mod 2^32
		t.Fatalf("adjustment + checksum(zeroed) mod 2^32 = %#08x, want 0xB1B0AFBA", got)
	}

	if err := lt.Pass(buf); err != nil {
		t.Fatal(err)
	}
	if lt.RequiresAnotherPass() {
		t.Fatal("head should have converged by the third pass in isolation")
	}
}

func FuzzHeadRoundTrip(f *testing.F) {
	f.Add(int16(1), int16(2), int16(3), int16(4), uint16(1000))
	f.Fuzz(func(t *testing.T, xMin, yMin, xMax, yMax int16, upm uint16) {
		info := testInfo()
		info.XMin, info.YMin, info.XMax, info.YMax = xMin, yMin, xMax, yMax
		info.UnitsPerEm = upm

		data := encode(info, 0)
		if len(data) != tableLength {
			t.Fatalf("len(data) = %d, want %d", len(data), tableLength)
		}
		gotXMin := int16(binary.BigEndian.Uint16(data[36:38]))
		if gotXMin != xMin {
			t.Fatalf("xMin round-trip: got %d, want %d", gotXMin, xMin)
		}
	})
}
