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

// Package cmap encodes "cmap" tables carrying a single format-4 subtable
// under the Windows/Unicode BMP platform, the format every mainstream
// renderer consults first for text below U+10000.
// https://learn.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"encoding/binary"
	"sort"

	"delta-type.dev/otfgen/layout"
)

// Tag is the SFNT tag for this table.
var Tag = layout.MakeTag("cmap")

const (
	platformWindows    = 3
	encodingWindowsBMP = 1
)

// Info describes a cmap table as a rune -> glyph ID mapping. Runes above
// U+FFFF cannot be represented by a format-4 subtable and are silently
// dropped; callers that need supplementary-plane coverage need a format-12
// subtable, which this package does not emit.
type Info struct {
	Mapping map[rune]uint16
}

// Table is the Layoutable for a cmap table.
type Table struct{ Info *Info }

// New returns a Layoutable cmap table.
func New(info *Info) *Table { return &Table{Info: info} }

func (t *Table) Tag() layout.Tag { return Tag }

func (t *Table) Layout(l *layout.Layouter) layout.Layouted {
	sub := encodeFormat4(t.Info.Mapping)

	const headerLength = 4 + 8 // version+numTables, one encoding record
	body := make([]byte, headerLength+len(sub))
	body[2] = 0
	body[3] = 1 // numTables
	putUint16(body[4:], platformWindows)
	putUint16(body[6:], encodingWindowsBMP)
	putUint32(body[8:], headerLength)
	copy(body[headerLength:], sub)

	return &layouted{body: body, reservation: l.Reserve(uint32(len(body)))}
}

type layouted struct {
	body        []byte
	reservation layout.Reservation
	wrote       bool
}

func (c *layouted) Tag() layout.Tag                 { return Tag }
func (c *layouted) Reservation() layout.Reservation { return c.reservation }
func (c *layouted) RequiresAnotherPass() bool       { return !c.wrote }

// UnpaddedLen implements layout.UnpaddedLenProvider. The body is a 12-byte
// header plus a 16+8*segCount-byte subtable, always a multiple of four,
// so this equals the reservation's Len.
func (c *layouted) UnpaddedLen() uint32 { return uint32(len(c.body)) }

func (c *layouted) Pass(currentFile []byte) error {
	_, err := c.reservation.Writer().Write(c.body)
	c.wrote = true
	return err
}

type segment struct {
	start, end uint16
	delta      uint16
}

// segmentOverhead is the byte cost one format-4 segment adds across the
// four parallel arrays (endCode, startCode, idDelta, idRangeOffset), two
// bytes each.
const segmentOverhead = 8

// unreachableCost marks a candidate segment that cannot be encoded with
// delta encoding: a non-consecutive code-point run, or a run whose
// gid-minus-code delta is not constant throughout.
const unreachableCost = 1 << 30

// segmentCost returns the cost function shortestSegmentation needs:
// cost(i, j) is the price of covering codes[i:j] with a single segment.
func segmentCost(codes []uint16, mapping map[rune]uint16) func(i, j int) int {
	return func(i, j int) int {
		delta := mapping[rune(codes[i])] - codes[i]
		for k := i + 1; k < j; k++ {
			if codes[k] != codes[k-1]+1 || mapping[rune(codes[k])]-codes[k] != delta {
				return unreachableCost
			}
		}
		return segmentOverhead
	}
}

// shortestSegmentation partitions codes[0:n] into the minimum-cost set of
// contiguous spans, adapted from seehuhn-go-pdf's dijkstra.ShortestPath
// (dijkstra/dijkstra.go): vertices are the n+1 gaps between code points,
// and an edge (i, j) with i < j is one candidate segment spanning
// codes[i:j]. Returns the chosen vertex sequence 0 = v0 < v1 < ... < vk = n.
func shortestSegmentation(n int, cost func(i, j int) int) []int {
	dist := make([]int, n)
	to := make([]int, n)
	for i := 0; i < n; i++ {
		dist[i] = cost(i, n)
		to[i] = n
	}

	pos := n
	for pos > 0 {
		bestNode, bestDist := 0, dist[0]
		for i := 1; i < pos; i++ {
			if dist[i] < bestDist {
				bestNode, bestDist = i, dist[i]
			}
		}
		pos = bestNode

		for i := 0; i < pos; i++ {
			if alt := bestDist + cost(i, pos); alt < dist[i] {
				dist[i] = alt
				to[i] = pos
			}
		}
	}

	boundaries := []int{0}
	pos = 0
	for pos < n {
		pos = to[pos]
		boundaries = append(boundaries, pos)
	}
	return boundaries
}

// encodeFormat4 builds a format-4 subtable body from a rune->glyph
// mapping. The sorted set of mapped code points is partitioned into
// segments by shortestSegmentation, which always prefers merging
// consecutive, constant-delta code points into one segment over splitting
// them, since every valid segment costs the same regardless of its span.
// All segments here use delta encoding (idRangeOffset stays 0); glyph
// mappings that aren't expressible as a constant-delta run over
// consecutive code points fall back to one segment per code point rather
// than the idRangeOffset/glyphIdArray encoding a full minimiser would use.
func encodeFormat4(mapping map[rune]uint16) []byte {
	codes := make([]uint16, 0, len(mapping))
	for r, gid := range mapping {
		if r < 0 || r > 0xFFFF || gid == 0 {
			continue
		}
		codes = append(codes, uint16(r))
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	var segments []segment
	if len(codes) > 0 {
		boundaries := shortestSegmentation(len(codes), segmentCost(codes, mapping))
		for k := 0; k+1 < len(boundaries); k++ {
			i, j := boundaries[k], boundaries[k+1]
			start := codes[i]
			delta := mapping[rune(start)] - start
			segments = append(segments, segment{start: start, end: codes[j-1], delta: delta})
		}
	}
	segments = append(segments, segment{start: 0xFFFF, end: 0xFFFF, delta: 1})

	segCount := len(segments)
	sd := layout.ForCount(uint16(segCount), 2)
	idRangeOffset := make([]uint16, segCount) // all zero: every segment uses delta encoding

	length := 16 + 2*4*segCount
	buf := make([]byte, length)
	putUint16(buf[0:], 4)
	putUint16(buf[2:], uint16(length))
	putUint16(buf[4:], 0) // language
	putUint16(buf[6:], uint16(segCount*2))
	putUint16(buf[8:], sd.SearchRange)
	putUint16(buf[10:], sd.EntrySelector)
	putUint16(buf[12:], sd.RangeShift)

	base := 14
	for _, s := range segments {
		putUint16(buf[base:], s.end)
		base += 2
	}
	base += 2 // reservedPad
	for _, s := range segments {
		putUint16(buf[base:], s.start)
		base += 2
	}
	for _, s := range segments {
		putUint16(buf[base:], s.delta)
		base += 2
	}
	for _, off := range idRangeOffset {
		putUint16(buf[base:], off)
		base += 2
	}

	return buf
}

func putUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func putUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
