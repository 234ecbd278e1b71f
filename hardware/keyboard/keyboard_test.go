// This file is part of dgncore.
//
// dgncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dgncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dgncore.  If not, see <https://www.gnu.org/licenses/>.

package keyboard_test

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/keyboard"
	"github.com/dgn32/dgncore/test"
)

func TestReadRowsReflectsOnlySelectedColumn(t *testing.T) {
	m := keyboard.NewMatrix()
	m.Press(0, 3)

	test.ExpectEquality(t, m.ReadRows(0x01), uint8(1<<3)) // column 0 selected
	test.ExpectEquality(t, m.ReadRows(0x02), uint8(0))     // column 1 selected: no key there
}

func TestReleaseClearsRow(t *testing.T) {
	m := keyboard.NewMatrix()
	m.Press(2, 5)
	test.ExpectEquality(t, m.ReadRows(0x04), uint8(1<<5))

	m.Release(2, 5)
	test.ExpectEquality(t, m.ReadRows(0x04), uint8(0))
}

func TestOutOfRangeCoordinatesAreIgnored(t *testing.T) {
	m := keyboard.NewMatrix()
	m.Press(-1, 0)
	m.Press(0, keyboard.Rows)
	m.Press(keyboard.Columns, 0)

	test.ExpectEquality(t, m.ReadRows(0xFF), uint8(0))
}

// TestGhostingExposesRowsSharedThroughAnotherColumn reproduces the
// classic diode-less matrix ghost: with keys held at (0,0), (0,1) and
// (1,0), selecting only column 1 still reports row 1 as pulled low, even
// though no key at (1,1) is pressed, because column 1's pressed row (0)
// is also reachable from column 0, which in turn shares row 1.
func TestGhostingExposesRowsSharedThroughAnotherColumn(t *testing.T) {
	m := keyboard.NewMatrix()
	m.Press(0, 0)
	m.Press(0, 1)
	m.Press(1, 0)

	test.ExpectEquality(t, m.ReadRows(0x02), uint8(1<<0|1<<1))
}

// TestNoGhostingWithoutASharedColumn confirms the fixpoint does not
// invent ghost rows when the pressed keys don't actually share a column
// with the selected one.
func TestNoGhostingWithoutASharedColumn(t *testing.T) {
	m := keyboard.NewMatrix()
	m.Press(3, 2)
	m.Press(4, 6)

	test.ExpectEquality(t, m.ReadRows(1<<3), uint8(1<<2))
}
