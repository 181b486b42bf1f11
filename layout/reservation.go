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

import (
	"errors"
	"io"
)

// ErrOutOfBounds is returned when a write or seek would move outside a
// reservation's window.
var ErrOutOfBounds = errors.New("layout: access past end of reservation")

// window is the mutable byte storage behind a Reservation. Multiple
// Reservation values may share the same window; the Layouter also keeps
// a reference so that GetResult can read it back.
type window struct {
	buf []byte
}

// Reservation is a handle onto a pre-sized, pre-positioned byte window
// inside a Layouter's arena. Offset and Len are fixed at creation time.
// Reservations may be copied freely; copies alias the same window.
type Reservation struct {
	offset uint32
	length uint32
	win    *window
}

// Offset returns the byte position of this window's first byte within
// the final file.
func (r Reservation) Offset() uint32 { return r.offset }

// Len returns this window's length, including any alignment padding.
func (r Reservation) Len() uint32 { return r.length }

// Writer returns a writer positioned at the start of the window. Writing
// past Len fails with ErrOutOfBounds.
func (r Reservation) Writer() *Writer {
	return &Writer{win: r.win}
}

// Reader returns a reader positioned at the start of the window. It
// reads only the bytes owned by this reservation.
func (r Reservation) Reader() *Reader {
	return &Reader{win: r.win}
}

// Writer is a seekable writer into a Reservation's byte window.
type Writer struct {
	win *window
	pos int
}

func (w *Writer) Write(p []byte) (int, error) {
	if w.pos+len(p) > len(w.win.buf) {
		return 0, ErrOutOfBounds
	}
	n := copy(w.win.buf[w.pos:], p)
	w.pos += n
	return n, nil
}

// Seek implements io.Seeker.
func (w *Writer) Seek(offset int64, whence int) (int64, error) {
	pos, err := seek(w.pos, len(w.win.buf), offset, whence)
	if err != nil {
		return 0, err
	}
	w.pos = pos
	return int64(pos), nil
}

// Reader is a seekable reader over a Reservation's byte window.
type Reader struct {
	win *window
	pos int
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= len(r.win.buf) {
		return 0, io.EOF
	}
	n := copy(p, r.win.buf[r.pos:])
	r.pos += n
	return n, nil
}

// Seek implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	pos, err := seek(r.pos, len(r.win.buf), offset, whence)
	if err != nil {
		return 0, err
	}
	r.pos = pos
	return int64(pos), nil
}

func seek(pos, length int, offset int64, whence int) (int, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(pos) + offset
	case io.SeekEnd:
		newPos = int64(length) + offset
	default:
		return 0, errors.New("layout: invalid whence")
	}
	if newPos < 0 || newPos > int64(length) {
		return 0, ErrOutOfBounds
	}
	return int(newPos), nil
}
