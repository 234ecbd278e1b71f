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
	"github.com/dgn32/dgncore/hardware/scheduler"
	"github.com/dgn32/dgncore/test"
)

func TestInsertAndEjectDisk(t *testing.T) {
	d := floppy.NewDrive()
	test.ExpectEquality(t, d.DiskInDrive(), false)

	disk := floppy.NewVDisk(35, 1, 6250)
	d.InsertDisk(disk)
	test.ExpectEquality(t, d.Ready, true)
	test.ExpectEquality(t, d.DiskInDrive(), true)

	d.EjectDisk()
	test.ExpectEquality(t, d.Ready, false)
	test.ExpectEquality(t, d.DiskInDrive(), false)
}

func TestWriteProtectBlocksWriteEnable(t *testing.T) {
	d := floppy.NewDrive()
	disk := floppy.NewVDisk(35, 1, 6250)
	disk.WriteProtect = true
	d.InsertDisk(disk)

	got := d.SetWriteEnable(true)
	test.ExpectEquality(t, got, false)
}

func TestStepClampsToGeometry(t *testing.T) {
	d := floppy.NewDrive()
	d.InsertDisk(floppy.NewVDisk(35, 1, 6250))

	for i := 0; i < 40; i++ {
		d.Step(-1)
	}
	test.ExpectEquality(t, d.Cylinder, 0)

	for i := 0; i < 40; i++ {
		d.Step(1)
	}
	test.ExpectEquality(t, d.Cylinder, 34)
}

func TestHeadPositionAdvancesWithTicks(t *testing.T) {
	d := floppy.NewDrive()
	d.InsertDisk(floppy.NewVDisk(35, 1, 6250))
	d.SetWriteEnable(true)
	d.ResetRevolution(0)

	start := d.HeadPosition(0)
	test.ExpectEquality(t, start, 128)

	later := d.HeadPosition(scheduler.Tick(458 * 10))
	test.ExpectEquality(t, later, 138)
}

func TestWriteRefusedWithoutWriteEnable(t *testing.T) {
	d := floppy.NewDrive()
	d.InsertDisk(floppy.NewVDisk(35, 1, 6250))

	d.Write(200, 0xAA)
	test.ExpectEquality(t, d.Read(200), uint8(0))

	d.SetWriteEnable(true)
	d.Write(200, 0xAA)
	test.ExpectEquality(t, d.Read(200), uint8(0xAA))
}
