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

// Command otfgen builds a color-SVG OpenType font from a JSON manifest
// naming one SVG document per Unicode range.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"delta-type.dev/otfgen/layout"
	"delta-type.dev/otfgen/manifest"
	"delta-type.dev/otfgen/sfnt"
	"delta-type.dev/otfgen/tables/cmap"
	"delta-type.dev/otfgen/tables/glyf"
	"delta-type.dev/otfgen/tables/head"
	"delta-type.dev/otfgen/tables/hhea"
	"delta-type.dev/otfgen/tables/hmtx"
	"delta-type.dev/otfgen/tables/loca"
	"delta-type.dev/otfgen/tables/maxp"
	"delta-type.dev/otfgen/tables/name"
	"delta-type.dev/otfgen/tables/os2"
	"delta-type.dev/otfgen/tables/post"
	"delta-type.dev/otfgen/tables/svg"
)

const unitsPerEm = 1000
const defaultAdvanceWidth = 1000

func main() {
	flag.Usage = func() {
		fmt.Printf("Usage: %s [options] manifest.json [output.otf]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	manifestPath := flag.Arg(0)
	outputPath := "./out.otf"
	if flag.NArg() >= 2 {
		outputPath = flag.Arg(1)
	}

	if err := run(manifestPath, outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "otfgen: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s\n", outputPath)
}

func run(manifestPath, outputPath string) error {
	m, err := manifest.LoadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	glyphIDs := m.GlyphIDs()
	numGlyphs := len(glyphIDs) + 1 // + .notdef

	baseDir := filepath.Dir(manifestPath)
	documents, err := loadDocuments(baseDir, m, glyphIDs)
	if err != nil {
		return fmt.Errorf("loading SVG documents: %w", err)
	}

	glyphs := make([]*glyf.Glyph, numGlyphs)
	for i := range glyphs {
		glyphs[i] = &glyf.Glyph{} // every glyph is a zero-contour placeholder; rendering lives in "SVG "
	}
	glyfInfo := &glyf.Info{Glyphs: glyphs}
	locaOffsets := loca.ForGlyphLengths(glyfInfo.GlyphLengths())

	hMetrics := make([]hmtx.LongHorMetric, numGlyphs)
	for i := range hMetrics {
		hMetrics[i] = hmtx.LongHorMetric{AdvanceWidth: defaultAdvanceWidth}
	}
	hmtxInfo := &hmtx.Info{HMetrics: hMetrics}

	mapping := make(map[rune]uint16, len(glyphIDs))
	for r, gid := range glyphIDs {
		mapping[r] = gid
	}

	now := time.Now().UTC()

	tables := []layout.LayoutableTable{
		cmap.New(&cmap.Info{Mapping: mapping}),
		head.New(&head.Info{
			FontRevision:   layout.Fixed{Major: 1},
			UnitsPerEm:     unitsPerEm,
			Created:        now,
			Modified:       now,
			XMin:           0,
			YMin:           0,
			XMax:           unitsPerEm,
			YMax:           unitsPerEm,
			LowestRecPPEM:  8,
			HasLongOffsets: locaOffsets.LongFormat,
		}),
		hhea.New(&hhea.Info{
			Ascent:              unitsPerEm,
			Descent:             0,
			AdvanceWidthMax:     hmtxInfo.MaxAdvanceWidth(),
			MinLeftSideBearing:  hmtxInfo.MinLeftSideBearing(),
			MinRightSideBearing: hmtxInfo.MinLeftSideBearing(),
			XMaxExtent:          unitsPerEm,
			NumOfLongHorMetrics: hmtxInfo.NumOfLongHorMetrics(),
		}),
		hmtx.New(hmtxInfo),
		loca.New(locaOffsets),
		glyf.New(glyfInfo),
		maxp.New(&maxp.Info{NumGlyphs: numGlyphs, TrueType: &maxp.TrueTypeInfo{MaxZones: 1}}),
		name.New(&name.Info{Strings: map[uint16]string{
			name.IDFamily:         m.Name,
			name.IDSubfamily:      "Regular",
			name.IDFullName:       m.Name,
			name.IDPostScriptName: m.Name,
			name.IDVersion:        "Version 1.0",
		}}),
		os2.New(&os2.Info{
			WeightClass:   os2.WeightRegular,
			WidthClass:    5,
			Selection:     os2.SelectionRegular,
			TypoAscender:  unitsPerEm,
			WinAscent:     unitsPerEm,
			FirstCharIndex: firstChar(glyphIDs),
			LastCharIndex:  lastChar(glyphIDs),
		}),
		post.New(&post.Info{}),
		svg.New(&svg.Info{Documents: documents}),
	}

	file := sfnt.NewFile(sfnt.VersionTrueType, tables)
	data, err := layout.Run(file, 4)
	if err != nil {
		return fmt.Errorf("laying out font: %w", err)
	}

	return os.WriteFile(outputPath, data, 0o644)
}

func loadDocuments(baseDir string, m *manifest.Manifest, glyphIDs map[rune]uint16) ([]svg.DocumentRecord, error) {
	var records []svg.DocumentRecord
	for _, g := range m.Glyphs {
		data, err := os.ReadFile(filepath.Join(baseDir, g.File))
		if err != nil {
			return nil, err
		}

		start, ok := glyphIDs[g.Start]
		if !ok {
			continue
		}
		end, ok := glyphIDs[g.End]
		if !ok {
			continue
		}

		records = append(records, svg.DocumentRecord{
			StartGlyphID: start,
			EndGlyphID:   end,
			Document:     data,
		})
	}
	return records, nil
}

func firstChar(glyphIDs map[rune]uint16) uint16 {
	min := rune(-1)
	for r := range glyphIDs {
		if min == -1 || r < min {
			min = r
		}
	}
	if min == -1 {
		return 0
	}
	return uint16(min)
}

func lastChar(glyphIDs map[rune]uint16) uint16 {
	var max rune = -1
	for r := range glyphIDs {
		if r > max {
			max = r
		}
	}
	if max == -1 {
		return 0
	}
	return uint16(max)
}
