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

// Package os2 encodes version-4 "OS/2" tables.
// https://learn.microsoft.com/en-us/typography/opentype/spec/os2
package os2

import (
	"encoding/binary"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("OS/2")

const tableLength = 96 // version 4, no version-5 fields

// Weight is the usWeightClass scale, 100-900 in multiples of 100.
type Weight uint16

// Standard weight classes.
const (
	WeightThin       Weight = 100
	WeightLight      Weight = 300
	WeightRegular    Weight = 400
	WeightMedium     Weight = 500
	WeightBold       Weight = 700
	WeightBlack      Weight = 900
)

// Selection bits used in the fsSelection field.
type Selection uint16

const (
	SelectionItalic    Selection = 1 << 0
	SelectionBold      Selection = 1 << 5
	SelectionRegular   Selection = 1 << 6
	SelectionUseTypoMetrics Selection = 1 << 7
)

// Info describes an "OS/2" table.
type Info struct {
	WeightClass Weight
	WidthClass  uint16 // 1 (ultra-condensed) .. 9 (ultra-expanded), 5 = normal
	Selection   Selection

	AvgCharWidth int16

	SubscriptXSize, SubscriptYSize, SubscriptXOffset, SubscriptYOffset     int16
	SuperscriptXSize, SuperscriptYSize, SuperscriptXOffset, SuperscriptYOffset int16
	StrikeoutSize, StrikeoutPosition                                       int16

	FamilyClass int16
	Panose      [10]byte
	VendorID    [4]byte

	FirstCharIndex uint16
	LastCharIndex  uint16

	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16

	WinAscent  uint16
	WinDescent uint16

	// UnicodeRange1-4 and CodePageRange1-2 are left zero unless the font
	// needs to advertise specific coverage; most synthesised fonts cover
	// only the ranges their cmap already states.
	UnicodeRange [4]uint32
	CodePageRange [2]uint32

	XHeight    int16
	CapHeight  int16
	DefaultChar uint16
	BreakChar   uint16
	MaxContext  uint16
}

// Table is the Layoutable for an OS/2 table.
type Table struct{ Info *Info }

// New returns a Layoutable OS/2 table.
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

func (o *layouted) Tag() layout.Tag                 { return Tag }
func (o *layouted) Reservation() layout.Reservation { return o.reservation }
func (o *layouted) RequiresAnotherPass() bool       { return !o.wrote }

func (o *layouted) Pass(currentFile []byte) error {
	w := o.reservation.Writer()
	info := o.info

	fields := []any{
		uint16(4), // version
		info.AvgCharWidth,
		uint16(info.WeightClass),
		info.WidthClass,
		uint16(0), // fsType: no embedding restrictions
		info.SubscriptXSize, info.SubscriptYSize, info.SubscriptXOffset, info.SubscriptYOffset,
		info.SuperscriptXSize, info.SuperscriptYSize, info.SuperscriptXOffset, info.SuperscriptYOffset,
		info.StrikeoutSize, info.StrikeoutPosition,
		info.FamilyClass,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return err
		}
	}
	if _, err := w.Write(info.Panose[:]); err != nil {
		return err
	}
	for _, r := range info.UnicodeRange {
		if err := binary.Write(w, binary.BigEndian, r); err != nil {
			return err
		}
	}
	vendor := info.VendorID
	if vendor == ([4]byte{}) {
		vendor = [4]byte{'O', 'T', 'F', 'G'}
	}
	if _, err := w.Write(vendor[:]); err != nil {
		return err
	}
	rest := []any{
		uint16(info.Selection),
		info.FirstCharIndex,
		info.LastCharIndex,
		info.TypoAscender, info.TypoDescender, info.TypoLineGap,
		info.WinAscent, info.WinDescent,
		info.CodePageRange[0], info.CodePageRange[1],
		info.XHeight, info.CapHeight,
		info.DefaultChar, info.BreakChar, info.MaxContext,
	}
	for _, f := range rest {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return err
		}
	}
	o.wrote = true
	return nil
}
