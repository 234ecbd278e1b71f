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

package floppy

import (
	"github.com/dgn32/dgncore/hardware/clocks"
	"github.com/dgn32/dgncore/hardware/scheduler"
)

// byteTimeTicks is the oscillator-tick duration of one drive byte at
// single density; double density halves it.
const byteTimeTicks = scheduler.Tick(clocks.WD279xByteTimeTicks)

// headStartOffset is the byte offset the head is considered to be over
// at the moment a revolution's timing base is reset, matching the
// post-index-hole gap a real drive leaves before the first byte.
const headStartOffset = 128

// Drive models one physical drive unit: a removable VDisk, the
// cylinder/side the head is positioned over, and the free-running
// byte-time clock a real drive's motor provides regardless of what the
// controller is doing.
type Drive struct {
	Disk *VDisk

	Cylinder int
	Side     int

	Ready        bool
	WriteEnable  bool
	WriteBack    bool
	DoubleDensity bool

	revolutionStart scheduler.Tick
}

// NewDrive creates an empty, not-ready drive.
func NewDrive() *Drive {
	return &Drive{}
}

// InsertDisk mounts disk in the drive and marks it ready.
func (d *Drive) InsertDisk(disk *VDisk) {
	d.Disk = disk
	d.Ready = disk != nil
}

// EjectDisk removes whatever disk is mounted.
func (d *Drive) EjectDisk() {
	d.Disk = nil
	d.Ready = false
}

// DiskInDrive reports whether a disk is currently mounted.
func (d *Drive) DiskInDrive() bool {
	return d.Disk != nil
}

// SetWriteEnable toggles whether writes to the mounted disk are
// accepted; it returns the resulting state. Writes are refused if the
// disk itself is write-protected.
func (d *Drive) SetWriteEnable(enable bool) bool {
	d.WriteEnable = enable && !(d.Disk != nil && d.Disk.WriteProtect)
	return d.WriteEnable
}

// SetWriteBack toggles whether writes are only held in the in-memory
// image (false) or additionally flushed to backing storage by the host
// (true, a host-level concern this method only records).
func (d *Drive) SetWriteBack(enable bool) bool {
	d.WriteBack = enable
	return d.WriteBack
}

// SetDoubleDensity selects the data-separator rate the head timing
// clock runs at.
func (d *Drive) SetDoubleDensity(dden bool) {
	d.DoubleDensity = dden
}

// SetSide selects which side of the disk the head reads, for
// double-sided drives whose side select is software controlled.
func (d *Drive) SetSide(side int) {
	d.Side = side
}

// currentByteTime returns the duration of one drive byte at the
// currently selected density.
func (d *Drive) currentByteTime() scheduler.Tick {
	if d.DoubleDensity {
		return byteTimeTicks / 2
	}
	return byteTimeTicks
}

// ResetRevolution restarts the free-running byte-time clock, as happens
// at every index pulse.
func (d *Drive) ResetRevolution(now scheduler.Tick) {
	d.revolutionStart = now
}

// HeadPosition computes the byte offset the head is over at tick now,
// on demand rather than being tracked continuously: 128 plus however
// many whole byte-times have elapsed since the revolution began.
func (d *Drive) HeadPosition(now scheduler.Tick) int {
	elapsed := uint32(now - d.revolutionStart)
	return headStartOffset + int(elapsed/uint32(d.currentByteTime()))
}

func (d *Drive) track() *Track {
	if d.Disk == nil {
		return nil
	}
	return d.Disk.Track(d.Cylinder, d.Side)
}

// Step moves the head by direction (+1 or -1 cylinders), clamped to the
// disk's geometry (or to 0..76 if no disk is present, matching a real
// drive's mechanical travel limit).
func (d *Drive) Step(direction int) {
	max := 76
	if d.Disk != nil {
		max = d.Disk.Cylinders - 1
	}
	d.Cylinder += direction
	if d.Cylinder < 0 {
		d.Cylinder = 0
	}
	if d.Cylinder > max {
		d.Cylinder = max
	}
}

// Read returns the byte at the given track offset, wrapping around the
// track length (a disk revolution is circular).
func (d *Drive) Read(offset int) uint8 {
	t := d.track()
	if t == nil || len(t.Data) == 0 {
		return 0
	}
	return t.Data[offset%len(t.Data)]
}

// Write stores a byte at the given track offset, if writes are
// currently enabled.
func (d *Drive) Write(offset int, b uint8) {
	t := d.track()
	if t == nil || len(t.Data) == 0 || !d.WriteEnable {
		return
	}
	t.Data[offset%len(t.Data)] = b
}

// WriteIDAM records an IDAM at the given track offset and density, if
// writes are currently enabled.
func (d *Drive) WriteIDAM(offset int, density bool) {
	t := d.track()
	if t == nil || !d.WriteEnable {
		return
	}
	t.WriteIDAM(offset%max(len(t.Data), 1), density)
}

// NextIDAM returns the offset of the next IDAM at or after the head's
// current position, wrapping around the track.
func (d *Drive) NextIDAM(now scheduler.Tick) (offset int, ok bool) {
	t := d.track()
	if t == nil {
		return 0, false
	}
	return t.NextIDAM(d.HeadPosition(now) % max(len(t.Data), 1))
}

// TimeToNextByte returns how many ticks remain until the head crosses
// into the next byte boundary.
func (d *Drive) TimeToNextByte(now scheduler.Tick) scheduler.Tick {
	elapsed := uint32(now-d.revolutionStart) % uint32(d.currentByteTime())
	return d.currentByteTime() - scheduler.Tick(elapsed)
}

// TimeToNextIDAM returns how many ticks remain until the head reaches
// the next recorded IDAM on the current track.
func (d *Drive) TimeToNextIDAM(now scheduler.Tick) (scheduler.Tick, bool) {
	t := d.track()
	if t == nil {
		return 0, false
	}
	trackLen := max(len(t.Data), 1)
	pos := d.HeadPosition(now) % trackLen
	offset, ok := t.NextIDAM(pos)
	if !ok {
		return 0, false
	}

	bytesAway := offset - pos
	if bytesAway < 0 {
		bytesAway += trackLen
	}
	return scheduler.Tick(bytesAway)*d.currentByteTime() + d.TimeToNextByte(now), true
}
