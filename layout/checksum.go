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

import "encoding/binary"

// checksumAccumulator implements the SFNT checksum algorithm:
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff#calculating-checksums
// Bytes are accumulated four at a time as big-endian uint32 words, with
// wrap-around addition; a short final word is zero-padded.
type checksumAccumulator struct {
	sum  uint32
	buf  [4]byte
	used int
}

func (c *checksumAccumulator) Write(p []byte) (int, error) {
	n := 0
	for len(p) > 0 {
		k := copy(c.buf[c.used:], p)
		p = p[k:]
		n += k
		c.used += k

		if c.used == 4 {
			c.sum += binary.BigEndian.Uint32(c.buf[:])
			c.used = 0
		}
	}
	return n, nil
}

func (c *checksumAccumulator) Sum() uint32 {
	if c.used != 0 {
		var pad [4]byte
		_, _ = c.Write(pad[:4-c.used])
	}
	return c.sum
}

// Checksum computes the 32-bit wrap-around SFNT checksum of data.
func Checksum(data []byte) uint32 {
	c := &checksumAccumulator{}
	_, _ = c.Write(data)
	return c.Sum()
}

// headChecksumMagic is the constant that the whole-file checksum must
// equal once head.checksumAdjustment is added in.
const headChecksumMagic = 0xB1B0AFBA

// ChecksumAdjustment computes the value to store in
// head.checksumAdjustment given the whole file with that field already
// zeroed, so that checksum(wholeFile) == headChecksumMagic once the
// field holds the returned value.
func ChecksumAdjustment(wholeFileWithZeroedAdjustment []byte) uint32 {
	return headChecksumMagic - Checksum(wholeFileWithZeroedAdjustment)
}
