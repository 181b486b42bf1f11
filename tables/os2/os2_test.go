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

package os2

import (
	"encoding/binary"
	"testing"

	"delta-type.dev/otfgen/layout"
)

func TestEncodeLengthAndVersion(t *testing.T) {
	l := layout.New(4)
	lt := New(&Info{WeightClass: WeightBold, WidthClass: 5}).Layout(l)
	if err := lt.Pass(nil); err != nil {
		t.Fatal(err)
	}

	res := lt.Reservation()
	buf := make([]byte, res.Len())
	res.Reader().Read(buf)

	if len(buf) != tableLength {
		t.Fatalf("len(buf) = %d, want %d", len(buf), tableLength)
	}
	if got := binary.BigEndian.Uint16(buf[0:2]); got != 4 {
		t.Fatalf("version = %d, want 4", got)
	}
	if got := binary.BigEndian.Uint16(buf[4:6]); got != uint16(WeightBold) {
		t.Fatalf("usWeightClass = %d, want %d", got, WeightBold)
	}
	if lt.RequiresAnotherPass() {
		t.Fatal("OS/2 should converge after one pass")
	}
}

func TestVendorIDDefaultsWhenUnset(t *testing.T) {
	l := layout.New(4)
	lt := New(&Info{}).Layout(l)
	if err := lt.Pass(nil); err != nil {
		t.Fatal(err)
	}

	res := lt.Reservation()
	buf := make([]byte, res.Len())
	res.Reader().Read(buf)

	// achVendID follows the 10-byte panose block and the 16-byte
	// ulUnicodeRange1-4 block; compute its offset the same way Pass
	// writes the fields: 32 bytes of leading fields
	// (version..familyClass) + 10 panose + 16 unicode range = 58.
	const vendorOffset = 58
	got := string(buf[vendorOffset : vendorOffset+4])
	if got != "OTFG" {
		t.Fatalf("achVendID = %q, want %q", got, "OTFG")
	}
}

func TestVendorIDHonoured(t *testing.T) {
	l := layout.New(4)
	info := &Info{VendorID: [4]byte{'A', 'C', 'M', 'E'}}
	lt := New(info).Layout(l)
	if err := lt.Pass(nil); err != nil {
		t.Fatal(err)
	}

	res := lt.Reservation()
	buf := make([]byte, res.Len())
	res.Reader().Read(buf)

	const vendorOffset = 58
	got := string(buf[vendorOffset : vendorOffset+4])
	if got != "ACME" {
		t.Fatalf("achVendID = %q, want %q", got, "ACME")
	}
}
