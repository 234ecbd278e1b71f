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
	"github.com/dgn32/dgncore/hardware/scheduler"
)

// Status register bits. Bits 1, 2, 4 and 5 carry different meanings for
// Type 1 commands than for Type 2/3; the field comment gives both.
const (
	statusBusy        = 1 << 0
	statusIndexOrDRQ   = 1 << 1 // Type1: index pulse.  Type2/3: DRQ
	statusTrack00OrLost = 1 << 2 // Type1: track 0.      Type2/3: lost data
	statusCRCError    = 1 << 3
	statusSeekOrRNF   = 1 << 4 // Type1: seek error.   Type2/3: record not found
	statusHeadOrWF    = 1 << 5 // Type1: head loaded.  Type2 write: write fault
	statusWriteProtect = 1 << 6
	statusNotReady    = 1 << 7
)

// state names the controller's current activity, collapsing the WD279x
// datasheet's full state graph down to one state per externally
// observable phase: the same register semantics and DRQ/INTRQ timing
// are preserved, but intermediate settle/verify sub-states that carry
// no visible effect of their own are merged into the state they lead to.
type state int

const (
	stateIdle state = iota
	stateSeeking
	stateReadSector
	stateWriteSector
	stateReadAddress
	stateWriteTrack
	stateReadTrack
)

// step_delay table, indexed by the r1r0 field of a Type 1 command, in
// milliseconds (WD2793/97 values).
var stepDelayMS = [4]int{6, 12, 20, 30}

// dataWindowSD and dataWindowDD are how many byte-times the controller allows
// to pass without the Data register being serviced before it gives up
// and flags Lost Data: 30 for single density, 43 for double.
const (
	dataWindowSD = 30
	dataWindowDD = 43
)

// seekErrorRevolutions is how many disk revolutions a Type 1 verify may
// scan for a matching IDAM before giving up with a seek error.
const seekErrorRevolutions = 5

// WD279x emulates the Western Digital WD2791/93/95/97 floppy disk
// controller family: four drive-select lines, the five programmer
// registers, and the Type 1/2/3/4 command state machine.
type WD279x struct {
	Drives   [4]*Drive
	selected int

	Scheduler *scheduler.Scheduler

	Status, Track, Sector, Data, Command uint8

	// SetDRQ and SetINTRQ notify the host cartridge/machine wiring of
	// the two status lines; the disk cartridge routes INTRQ to the CPU's
	// NMI and DRQ to its HALT line.
	SetDRQ   func(asserted bool)
	SetINTRQ func(asserted bool)

	state state

	doubleDensity bool
	direction     int
	verify        bool
	multiple      bool
	trackRegisterTmp uint8

	bytesLeft int
	offset    int
	revolutionsLeft int

	event *scheduler.Event
}

// NewWD279x creates a controller with no drives attached.
func NewWD279x(sched *scheduler.Scheduler) *WD279x {
	w := &WD279x{Scheduler: sched, direction: 1}
	w.event = scheduler.NewEvent(func() {})
	return w
}

// AttachDrive installs drive as unit i (0-3).
func (w *WD279x) AttachDrive(i int, drive *Drive) {
	w.Drives[i] = drive
}

// SelectDrive chooses which attached drive subsequent commands act on.
func (w *WD279x) SelectDrive(i int) {
	w.selected = i & 3
}

// current returns the currently selected drive, or nil if none is
// attached in that slot.
func (w *WD279x) current() *Drive {
	return w.Drives[w.selected]
}

// SetDoubleDensity selects the data rate (and so the DRQ timing window
// and byte-time) used by subsequent transfers.
func (w *WD279x) SetDoubleDensity(dden bool) {
	w.doubleDensity = dden
	if d := w.current(); d != nil {
		d.SetDoubleDensity(dden)
	}
}

// Reset returns the controller to its idle state: Restore is implied,
// the command register is cleared, and both DRQ and INTRQ are dropped.
func (w *WD279x) Reset() {
	w.Scheduler.Machine.Dequeue(w.event)
	w.state = stateIdle
	w.Status = 0
	w.Command = 0
	w.Track = 0
	w.setDRQ(false)
	w.setINTRQ(false)
}

func (w *WD279x) setDRQ(v bool) {
	if w.SetDRQ != nil {
		w.SetDRQ(v)
	}
	if v {
		w.Status |= statusIndexOrDRQ
	} else {
		w.Status &^= statusIndexOrDRQ
	}
}

func (w *WD279x) setINTRQ(v bool) {
	if w.SetINTRQ != nil {
		w.SetINTRQ(v)
	}
}

func (w *WD279x) windowBytes() int {
	if w.doubleDensity {
		return dataWindowDD
	}
	return dataWindowSD
}

// Read services a CPU read of one of the four controller registers,
// addr&3 selecting {status, track, sector, data}. now is the current
// scheduler tick, needed to time data-register transfers.
func (w *WD279x) Read(addr uint16, now scheduler.Tick) uint8 {
	switch addr & 3 {
	case 0:
		w.setINTRQ(false)
		return w.Status
	case 1:
		return w.Track
	case 2:
		return w.Sector
	default:
		return w.readData(now)
	}
}

// Write services a CPU write of one of the four controller registers.
func (w *WD279x) Write(addr uint16, data uint8, now scheduler.Tick) {
	switch addr & 3 {
	case 0:
		w.writeCommand(data, now)
	case 1:
		w.Track = data
	case 2:
		w.Sector = data
	default:
		w.writeData(data, now)
	}
}

func (w *WD279x) writeCommand(cmd uint8, now scheduler.Tick) {
	w.Command = cmd
	w.Scheduler.Machine.Dequeue(w.event)

	if cmd&0xF0 == 0xD0 {
		w.forceInterrupt(cmd, now)
		return
	}

	w.Status |= statusBusy
	w.Status &^= statusSeekOrRNF | statusCRCError | statusTrack00OrLost | statusHeadOrWF
	d := w.current()
	if d == nil || !d.Ready {
		w.Status |= statusNotReady
		w.finish(now)
		return
	}
	w.Status &^= statusNotReady

	switch {
	case cmd&0xF0 <= 0x10: // Restore (0x0-) or Seek (0x1-)
		w.verify = cmd&0x04 != 0
		w.startType1(cmd, now, func() {
			if cmd&0xF0 == 0x00 {
				d.Cylinder = 0
				w.Track = 0
			} else {
				w.trackRegisterTmp = w.Data
				d.Cylinder += int(w.trackRegisterTmp) - int(w.Track)
				w.Track = w.trackRegisterTmp
			}
		})
	case cmd&0xE0 == 0x20: // Step
		w.verify = cmd&0x04 != 0
		w.startType1(cmd, now, func() {
			d.Step(w.direction)
			if cmd&0x10 != 0 {
				w.Track = uint8(d.Cylinder)
			}
		})
	case cmd&0xE0 == 0x40: // Step-In
		w.direction = 1
		w.verify = cmd&0x04 != 0
		w.startType1(cmd, now, func() {
			d.Step(1)
			if cmd&0x10 != 0 {
				w.Track = uint8(d.Cylinder)
			}
		})
	case cmd&0xE0 == 0x60: // Step-Out
		w.direction = -1
		w.verify = cmd&0x04 != 0
		w.startType1(cmd, now, func() {
			d.Step(-1)
			if cmd&0x10 != 0 {
				w.Track = uint8(d.Cylinder)
			}
		})
	case cmd&0xE0 == 0x80: // Read Sector
		w.multiple = cmd&0x10 != 0
		w.startReadSector(now)
	case cmd&0xE0 == 0xA0: // Write Sector
		w.multiple = cmd&0x10 != 0
		w.startWriteSector(cmd, now)
	case cmd&0xF0 == 0xC0: // Read Address
		w.startReadAddress(now)
	case cmd&0xF0 == 0xE0: // Read Track
		w.startReadTrack(now)
	case cmd&0xF0 == 0xF0: // Write Track
		w.startWriteTrack(now)
	}
}

// startType1 runs the settle delay common to all Type 1 commands, then
// applies step, then optionally verifies by scanning for an IDAM whose
// track matches the Track register before completing.
func (w *WD279x) startType1(cmd uint8, now scheduler.Tick, step func()) {
	w.state = stateSeeking
	delayTicks := scheduler.Tick(stepDelayMS[cmd&0x03]) * scheduler.Tick(clocksMSTicks)

	w.event.Dispatch = func() {
		step()
		d := w.current()
		if d != nil && d.Cylinder == 0 {
			w.Status |= statusTrack00OrLost
		}
		if w.verify && d != nil {
			w.revolutionsLeft = seekErrorRevolutions
			w.verifyScan(now + delayTicks)
			return
		}
		w.finish(now + delayTicks)
	}
	w.Scheduler.Machine.Queue(w.event, now+delayTicks)
}

// verifyScan models the real controller's behaviour of scanning for an
// IDAM whose recorded track number matches the Track register,
// rechecking once per disk revolution and flagging a seek error once
// seekErrorRevolutions revolutions have passed without a match. Because
// this core does not store a separate track field inside each IDAM, a
// match is approximated by the head's current cylinder equalling the
// Track register directly.
func (w *WD279x) verifyScan(now scheduler.Tick) {
	d := w.current()
	if d != nil && int(w.Track) == d.Cylinder {
		w.finish(now)
		return
	}
	if w.revolutionsLeft <= 0 {
		w.Status |= statusSeekOrRNF
		w.finish(now)
		return
	}
	w.revolutionsLeft--
	revolution := byteTimeTicks
	if d != nil {
		if t := d.track(); t != nil && len(t.Data) > 0 {
			revolution = scheduler.Tick(len(t.Data)) * d.currentByteTime()
		}
	}
	next := now + revolution
	w.event.Dispatch = func() { w.verifyScan(next) }
	w.Scheduler.Machine.Queue(w.event, next)
}

func (w *WD279x) startReadSector(now scheduler.Tick) {
	d := w.current()
	idam, ok := d.NextIDAM(now)
	if !ok {
		w.Status |= statusSeekOrRNF
		w.finish(now)
		return
	}
	w.state = stateReadSector
	w.offset = idam
	w.bytesLeft = 256
	w.armDataWindow(now)
}

func (w *WD279x) startWriteSector(cmd uint8, now scheduler.Tick) {
	d := w.current()
	if d.Disk != nil && d.Disk.WriteProtect {
		w.Status |= statusWriteProtect
		w.finish(now)
		return
	}
	idam, ok := d.NextIDAM(now)
	if !ok {
		w.Status |= statusSeekOrRNF
		w.finish(now)
		return
	}
	w.state = stateWriteSector
	w.offset = idam
	w.bytesLeft = 256
	w.armDataWindow(now)
}

func (w *WD279x) startReadAddress(now scheduler.Tick) {
	d := w.current()
	idam, ok := d.NextIDAM(now)
	if !ok {
		w.Status |= statusSeekOrRNF
		w.finish(now)
		return
	}
	w.state = stateReadAddress
	w.offset = idam
	w.bytesLeft = 6 // track, side, sector, length, CRC hi, CRC lo
	w.armDataWindow(now)
}

func (w *WD279x) startReadTrack(now scheduler.Tick) {
	d := w.current()
	t := d.Disk.Track(d.Cylinder, d.Side)
	w.state = stateReadTrack
	w.offset = 0
	w.bytesLeft = len(t.Data)
	w.armDataWindow(now)
}

func (w *WD279x) startWriteTrack(now scheduler.Tick) {
	d := w.current()
	if d.Disk != nil && d.Disk.WriteProtect {
		w.Status |= statusWriteProtect
		w.finish(now)
		return
	}
	t := d.track()
	if t != nil {
		t.ClearIDAMs()
	}
	w.state = stateWriteTrack
	w.offset = 0
	w.bytesLeft = len(t.Data)
	w.armDataWindow(now)
}

// armDataWindow asserts DRQ for the byte now due and schedules a
// timeout that, if the Data register goes unserviced, sets Lost Data
// and terminates the command.
func (w *WD279x) armDataWindow(now scheduler.Tick) {
	w.setDRQ(true)
	timeout := scheduler.Tick(w.windowBytes()) * byteTimeTicks
	w.event.Dispatch = func() {
		w.Status |= statusTrack00OrLost
		w.setDRQ(false)
		w.finish(now + timeout)
	}
	w.Scheduler.Machine.Queue(w.event, now+timeout)
}

func (w *WD279x) readData(now scheduler.Tick) uint8 {
	switch w.state {
	case stateReadSector, stateReadAddress, stateReadTrack:
		d := w.current()
		w.Data = d.Read(w.offset)
		w.offset++
		w.bytesLeft--
		w.setDRQ(false)
		w.Scheduler.Machine.Dequeue(w.event)
		if w.bytesLeft <= 0 {
			if w.state == stateReadSector && w.multiple {
				w.Sector++
				w.startReadSector(now)
				return w.Data
			}
			w.finish(now)
		} else {
			w.armDataWindow(now)
		}
	}
	return w.Data
}

func (w *WD279x) writeData(data uint8, now scheduler.Tick) {
	w.Data = data
	switch w.state {
	case stateWriteSector:
		d := w.current()
		d.Write(w.offset, data)
		w.offset++
		w.bytesLeft--
		w.setDRQ(false)
		w.Scheduler.Machine.Dequeue(w.event)
		if w.bytesLeft <= 0 {
			if w.multiple {
				w.Sector++
				w.startWriteSector(w.Command, now)
				return
			}
			w.finish(now)
		} else {
			w.armDataWindow(now)
		}
	case stateWriteTrack:
		d := w.current()
		if data == 0xFE { // ID address mark sentinel
			d.WriteIDAM(w.offset, w.doubleDensity)
		}
		d.Write(w.offset, data)
		w.offset++
		w.bytesLeft--
		w.setDRQ(false)
		w.Scheduler.Machine.Dequeue(w.event)
		if w.bytesLeft <= 0 {
			w.finish(now)
		} else {
			w.armDataWindow(now)
		}
	}
}

func (w *WD279x) forceInterrupt(cmd uint8, now scheduler.Tick) {
	w.Scheduler.Machine.Dequeue(w.event)
	w.setDRQ(false)
	w.state = stateIdle
	w.Status &^= statusBusy
	if cmd&0x07 != 0 {
		w.setINTRQ(true)
	}
}

func (w *WD279x) finish(now scheduler.Tick) {
	w.Scheduler.Machine.Dequeue(w.event)
	w.setDRQ(false)
	w.state = stateIdle
	w.Status &^= statusBusy
	w.setINTRQ(true)
}

// clocksMSTicks is the number of master-oscillator ticks in one
// millisecond, used to turn the Type 1 step-rate table (specified in
// milliseconds by the datasheet) into scheduler ticks.
const clocksMSTicks = 14318 // 14.31818 MHz rounded to ticks/ms
