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

package floppy_test

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/floppy"
	"github.com/dgn32/dgncore/test"
)

func TestIDAMTableStaysSorted(t *testing.T) {
	tr := floppy.NewTrack(6250)

	tr.WriteIDAM(900, false)
	tr.WriteIDAM(100, false)
	tr.WriteIDAM(500, true)

	got := tr.IDAMs()
	want := []int{100, 500, 900}
	test.ExpectEquality(t, len(got), len(want))
	for i := range want {
		test.ExpectEquality(t, got[i], want[i])
	}
	test.ExpectEquality(t, tr.IDAMDensity(1), true)
}

func TestIDAMTableZeroTrailing(t *testing.T) {
	tr := floppy.NewTrack(6250)
	tr.WriteIDAM(300, false)

	// the underlying fixed-size table is zero beyond idamCount; IDAMs()
	// must never expose that padding.
	test.ExpectEquality(t, len(tr.IDAMs()), 1)
}

func TestIDAMTableClear(t *testing.T) {
	tr := floppy.NewTrack(6250)
	tr.WriteIDAM(10, false)
	tr.WriteIDAM(20, false)
	tr.ClearIDAMs()
	test.ExpectEquality(t, len(tr.IDAMs()), 0)
}

func TestIDAMDensityMatchesWriteTime(t *testing.T) {
	tr := floppy.NewTrack(6250)
	tr.WriteIDAM(50, false)
	tr.WriteIDAM(60, true)

	for i, off := range tr.IDAMs() {
		switch off {
		case 50:
			test.ExpectEquality(t, tr.IDAMDensity(i), false)
		case 60:
			test.ExpectEquality(t, tr.IDAMDensity(i), true)
		}
	}
}

func TestNextIDAMWrapsAround(t *testing.T) {
	tr := floppy.NewTrack(6250)
	tr.WriteIDAM(100, false)
	tr.WriteIDAM(4000, false)

	off, ok := tr.NextIDAM(4500)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, off, 100)
}

func TestVDiskTrackBounds(t *testing.T) {
	d := floppy.NewVDisk(35, 1, 6250)
	test.ExpectSuccess(t, d.Track(0, 0) != nil)
	test.ExpectEquality(t, d.Track(35, 0) == nil, true)
	test.ExpectEquality(t, d.Track(0, 1) == nil, true)
}
