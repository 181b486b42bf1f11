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

// Package manifest reads the JSON description of a font to build: a name
// and an ordered list of Unicode ranges, each backed by a single SVG
// document file covering every code point in that range.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/exp/maps"
)

// GlyphRange describes one contiguous run of code points and the SVG
// document file that renders all of them.
type GlyphRange struct {
	Start rune   `json:"start"`
	End   rune   `json:"end"`
	File  string `json:"file"`
}

// Manifest is the top-level JSON document describing a font build.
type Manifest struct {
	Name   string       `json:"name"`
	Glyphs []GlyphRange `json:"glyphs"`
}

// Load reads and validates a manifest from r.
func Load(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("manifest: missing font name")
	}
	for i, g := range m.Glyphs {
		if g.End < g.Start {
			return nil, fmt.Errorf("manifest: glyph range %d has end %q before start %q", i, g.End, g.Start)
		}
		if g.File == "" {
			return nil, fmt.Errorf("manifest: glyph range %d has no file", i)
		}
	}
	return &m, nil
}

// LoadFile opens path and loads a Manifest from it.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// RuneCount returns the total number of code points covered across all
// ranges, counting overlaps once per occurrence (overlapping ranges are
// permitted; earlier ranges win when assigning glyph IDs, see GlyphIDs).
func (m *Manifest) RuneCount() int {
	n := 0
	for _, g := range m.Glyphs {
		n += int(g.End-g.Start) + 1
	}
	return n
}

// GlyphIDs assigns a stable glyph ID to every code point named by the
// manifest, glyph 0 reserved for .notdef as the SFNT spec requires.
// Ranges are processed in file order; a code point covered by more than
// one range keeps the glyph ID from whichever range assigned it first.
func (m *Manifest) GlyphIDs() map[rune]uint16 {
	ids := make(map[rune]uint16)
	next := uint16(1)
	for _, g := range m.Glyphs {
		for r := g.Start; r <= g.End; r++ {
			if _, ok := ids[r]; ok {
				continue
			}
			ids[r] = next
			next++
		}
	}
	return ids
}

// SortedRunes returns every code point covered by the manifest in
// ascending order, suitable for deterministic iteration over GlyphIDs.
func (m *Manifest) SortedRunes() []rune {
	ids := m.GlyphIDs()
	runes := maps.Keys(ids)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}
