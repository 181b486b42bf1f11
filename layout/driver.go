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

import "fmt"

// MaxPasses bounds the fixed-point loop. Conformant table
// implementations converge in 2-3 passes; this is a safety net against
// a non-terminating feedback loop between tables, not an expected
// operating point.
const MaxPasses = 8

// Diagnosable is optionally implemented by a root Layouted so that a
// NonConvergenceError can name the tables that failed to stabilise.
type Diagnosable interface {
	PendingTags() []Tag
}

// NonConvergenceError is returned by Run when the pass-count guard is
// exceeded.
type NonConvergenceError struct {
	Passes  int
	Pending []Tag
}

func (e *NonConvergenceError) Error() string {
	if len(e.Pending) == 0 {
		return fmt.Sprintf("layout: did not converge after %d passes", e.Passes)
	}
	return fmt.Sprintf("layout: did not converge after %d passes (still pending: %v)", e.Passes, e.Pending)
}

// Run lays out root onto a fresh arena with the given alignment, then
// repeatedly calls Pass on the resulting Layouted tree until it reports
// convergence, returning the finalised buffer. It fails with a
// *NonConvergenceError if MaxPasses is exceeded.
func Run(root Layoutable, alignment uint32) ([]byte, error) {
	l := New(alignment)
	layouted := root.Layout(l)

	buffer := l.GetResult()
	for pass := 0; layouted.RequiresAnotherPass(); pass++ {
		if pass >= MaxPasses {
			err := &NonConvergenceError{Passes: pass}
			if d, ok := layouted.(Diagnosable); ok {
				err.Pending = d.PendingTags()
			}
			return nil, err
		}
		if err := layouted.Pass(buffer); err != nil {
			return nil, err
		}
		buffer = l.GetResult()
	}
	return buffer, nil
}
