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

// Package glyf encodes the "glyf" (glyph outline) table as simple,
// uncompressed TrueType outlines. Composite glyphs are out of scope:
// generated fonts build every glyph directly from its own contours.
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf
package glyf

import (
	"encoding/binary"

	"seehuhn.de/go/geom/vec"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("glyf")

// Point is one point of a glyph contour, in font design units.
type Point struct {
	Pos     vec.Vec2
	OnCurve bool
}

// Contour is a closed loop of points.
type Contour []Point

// Glyph is a single entry of a "glyf" table. A Glyph with no contours is
// a valid empty/placeholder glyph: the OT-SVG table relies on this for
// glyph IDs whose visual representation lives entirely in the "SVG "
// table, since every glyph ID still needs a glyf/loca entry even when
// glyf contributes nothing to its rendering.
type Glyph struct {
	Contours []Contour
}

// EncodedLen returns the byte length this glyph contributes to "glyf",
// needed before the "loca" offsets can be built.
func (g *Glyph) EncodedLen() uint32 {
	return uint32(len(g.encode()))
}

func (g *Glyph) encode() []byte {
	if len(g.Contours) == 0 {
		return nil
	}

	numContours := len(g.Contours)
	endPts := make([]uint16, numContours)
	var allPoints []Point
	var minX, minY, maxX, maxY int16
	first := true
	for i, c := range g.Contours {
		allPoints = append(allPoints, c...)
		endPts[i] = uint16(len(allPoints) - 1)
		for _, p := range c {
			x, y := int16(p.Pos.X), int16(p.Pos.Y)
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	buf := make([]byte, 10)
	binary.BigEndian.PutUint16(buf[0:], uint16(numContours))
	binary.BigEndian.PutUint16(buf[2:], uint16(minX))
	binary.BigEndian.PutUint16(buf[4:], uint16(minY))
	binary.BigEndian.PutUint16(buf[6:], uint16(maxX))
	binary.BigEndian.PutUint16(buf[8:], uint16(maxY))

	for _, e := range endPts {
		buf = binary.BigEndian.AppendUint16(buf, e)
	}
	buf = binary.BigEndian.AppendUint16(buf, 0) // instructionLength

	flags := make([]byte, len(allPoints))
	for i, p := range allPoints {
		if p.OnCurve {
			flags[i] = 1
		}
	}
	buf = append(buf, flags...)

	var prevX int16
	for _, p := range allPoints {
		x := int16(p.Pos.X)
		dx := x - prevX
		buf = binary.BigEndian.AppendUint16(buf, uint16(dx))
		prevX = x
	}
	var prevY int16
	for _, p := range allPoints {
		y := int16(p.Pos.Y)
		dy := y - prevY
		buf = binary.BigEndian.AppendUint16(buf, uint16(dy))
		prevY = y
	}

	if len(buf)%2 != 0 {
		buf = append(buf, 0) // loca short-format offsets address even byte boundaries
	}
	return buf
}

// Info describes a "glyf" table as an ordered list of glyphs, indexed by
// glyph ID.
type Info struct {
	Glyphs []*Glyph
}

// GlyphLengths returns the encoded length of each glyph, in glyph-ID
// order, for building the matching "loca" table.
func (info *Info) GlyphLengths() []uint32 {
	lens := make([]uint32, len(info.Glyphs))
	for i, g := range info.Glyphs {
		lens[i] = g.EncodedLen()
	}
	return lens
}

// Table is the Layoutable for a glyf table.
type Table struct{ Info *Info }

// New returns a Layoutable glyf table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	var body []byte
	for _, g := range t.Info.Glyphs {
		body = append(body, g.encode()...)
	}
	return &layouted{body: body, reservation: l.Reserve(uint32(len(body)))}
}

type layouted struct {
	body        []byte
	reservation layout.Reservation
	wrote       bool
}

func (g *layouted) Tag() layout.Tag                 { return Tag }
func (g *layouted) Reservation() layout.Reservation { return g.reservation }
func (g *layouted) RequiresAnotherPass() bool       { return !g.wrote }

// UnpaddedLen implements layout.UnpaddedLenProvider: every glyph is
// padded to an even length for "loca", but the concatenated total is not
// generally a multiple of the arena's 4-byte alignment.
func (g *layouted) UnpaddedLen() uint32 { return uint32(len(g.body)) }

func (g *layouted) Pass(currentFile []byte) error {
	_, err := g.reservation.Writer().Write(g.body)
	g.wrote = true
	return err
}
