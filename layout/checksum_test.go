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

package layout

import "testing"

func TestChecksum(t *testing.T) {
	cases := []struct {
		Body     []byte
		Expected uint32
	}{
		{[]byte{0, 1, 2, 3}, 0x00010203},
		{[]byte{0, 1, 2, 3, 4, 5, 6, 7}, 0x0406080a},
		{[]byte{1}, 0x01000000},
		{[]byte{1, 2, 3}, 0x01020300},
		{[]byte{1, 0, 0, 0, 1}, 0x02000000},
		{[]byte{255, 255, 255, 255, 0, 0, 0, 1}, 0},
		{nil, 0},
	}

	for i, test := range cases {
		if got := Checksum(test.Body); got != test.Expected {
			t.Errorf("case %d: Checksum(%v) = %#08x, want %#08x", i, test.Body, got, test.Expected)
		}
	}
}

func TestChecksumAdjustment(t *testing.T) {
	// A file that checksums to 0 needs the full magic as its adjustment.
	file := make([]byte, 16)
	adj := ChecksumAdjustment(file)
	if adj != headChecksumMagic {
		t.Fatalf("ChecksumAdjustment(zeroes) = %#08x, want %#08x", adj, headChecksumMagic)
	}

	// Patching the adjustment back in must make the whole file checksum
	// to the magic constant.
	patched := append([]byte(nil), file...)
	patched[0], patched[1], patched[2], patched[3] = byte(adj>>24), byte(adj>>16), byte(adj>>8), byte(adj)
	if got := Checksum(patched); got != headChecksumMagic {
		t.Fatalf("Checksum(patched) = %#08x, want %#08x", got, headChecksumMagic)
	}
}
