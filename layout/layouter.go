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

// Package layout implements the byte arena, the two-phase
// Layoutable/Layouted protocol, and the fixed-point pass driver that
// together let a collection of mutually-offset-dependent tables be
// composed into a single container file.
package layout

// Layouter is an ordered, append-only byte arena: a sequence of
// fixed-size, fixed-offset reservations which concatenate to the final
// file. Reservation order is stable and offsets are computed purely
// from the sizes of earlier reservations.
type Layouter struct {
	alignment     uint32
	currentLength uint32
	windows       []*window
}

// New returns an empty arena with the given byte alignment, which must
// be a positive power of two.
func New(alignment uint32) *Layouter {
	if alignment == 0 || alignment&(alignment-1) != 0 {
		panic("layout: alignment must be a positive power of two")
	}
	return &Layouter{alignment: alignment}
}

// Reserve appends a new zero-filled window of length bytes, rounded up
// to the arena's alignment, and returns a handle onto it. Reserve never
// fails.
func (l *Layouter) Reserve(length uint32) Reservation {
	pad := (l.alignment - (length % l.alignment)) % l.alignment
	effective := length + pad

	offset := l.currentLength
	win := &window{buf: make([]byte, effective)}
	l.windows = append(l.windows, win)
	l.currentLength += effective

	return Reservation{offset: offset, length: effective, win: win}
}

// CurrentLength returns the running total of all reservations made so
// far, i.e. the length GetResult would currently return.
func (l *Layouter) CurrentLength() uint32 { return l.currentLength }

// GetResult concatenates all reservations in order. It is non-mutating
// and view-consistent; it may be called any number of times between
// passes.
func (l *Layouter) GetResult() []byte {
	out := make([]byte, 0, l.currentLength)
	for _, w := range l.windows {
		out = append(out, w.buf...)
	}
	if uint32(len(out)) != l.currentLength {
		panic("layout: arena length invariant violated")
	}
	return out
}
