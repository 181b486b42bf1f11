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

package hmtx

import (
	"encoding/binary"
	"testing"

	"delta-type.dev/otfgen/layout"
)

func TestEncodeAndDerivedFields(t *testing.T) {
	info := &Info{
		HMetrics: []LongHorMetric{
			{AdvanceWidth: 500, LeftSideBearing: 10},
			{AdvanceWidth: 600, LeftSideBearing: -5},
		},
		LeftSideBearing: []int16{20},
	}

	l := layout.New(4)
	lt := New(info).Layout(l)
	if err := lt.Pass(nil); err != nil {
		t.Fatal(err)
	}

	res := lt.Reservation()
	buf := make([]byte, res.Len())
	res.Reader().Read(buf)

	if len(buf) < 10 {
		t.Fatalf("len(buf) = %d, want >= 10", len(buf))
	}
	if got := binary.BigEndian.Uint16(buf[0:2]); got != 500 {
		t.Fatalf("first advance width = %d, want 500", got)
	}
	if got := binary.BigEndian.Uint16(buf[8:10]); got != 20 {
		t.Fatalf("trailing lsb = %d, want 20", got)
	}

	if got := info.MaxAdvanceWidth(); got != 600 {
		t.Fatalf("MaxAdvanceWidth() = %d, want 600", got)
	}
	if got := info.MinLeftSideBearing(); got != -5 {
		t.Fatalf("MinLeftSideBearing() = %d, want -5", got)
	}
	if got := info.AdvanceWidth(5); got != 600 {
		t.Fatalf("AdvanceWidth(5) = %d, want 600 (clamp to last entry)", got)
	}
}

func TestPassRejectsEmptyMetrics(t *testing.T) {
	l := layout.New(4)
	lt := New(&Info{}).Layout(l)
	if err := lt.Pass(nil); err == nil {
		t.Fatal("expected an error for an hmtx table with no metrics")
	}
}
