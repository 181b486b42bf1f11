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

// Package post encodes version-3 "post" tables. Version 3 carries no
// per-glyph name data, which suits generated fonts that have no PostScript
// glyph names to preserve.
// https://learn.microsoft.com/en-us/typography/opentype/spec/post
package post

import (
	"encoding/binary"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("post")

const tableLength = 32

const version3 = 0x00030000

// Info describes a "post" table.
type Info struct {
	ItalicAngle        int32 // fixed-point degrees, 0 for upright fonts
	UnderlinePosition  int16
	UnderlineThickness int16
	IsFixedPitch       bool
}

// Table is the Layoutable for a post table.
type Table struct{ Info *Info }

// New returns a Layoutable post table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	return &layouted{info: t.Info, reservation: l.Reserve(tableLength)}
}

type layouted struct {
	info        *Info
	reservation layout.Reservation
	wrote       bool
}

func (p *layouted) Tag() layout.Tag                 { return Tag }
func (p *layouted) Reservation() layout.Reservation { return p.reservation }
func (p *layouted) RequiresAnotherPass() bool       { return !p.wrote }

func (p *layouted) Pass(currentFile []byte) error {
	var isFixedPitch uint32
	if p.info.IsFixedPitch {
		isFixedPitch = 1
	}

	w := p.reservation.Writer()
	fields := []any{
		uint32(version3),
		p.info.ItalicAngle,
		p.info.UnderlinePosition,
		p.info.UnderlineThickness,
		isFixedPitch,
		uint32(0), uint32(0), uint32(0), uint32(0), // min/max memory, unused since OTF fonts have none
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return err
		}
	}
	p.wrote = true
	return nil
}
