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

package cartridge

import (
	"github.com/dgn32/dgncore/hardware/floppy"
	"github.com/dgn32/dgncore/hardware/scheduler"
)

// CartLayout names the two real cart-I/O register layouts the WD279x
// disk controller shipped with: the CoCo "Disk Extended Color BASIC"
// controller (RS-DOS, WD2793-based) and the Dragon DragonDOS controller
// (WD2797-based). Both wire the same four WD279x registers into the
// cart-I/O window at different offsets and put drive/motor/density
// select bits in a different control latch.
type CartLayout int

// Supported disk-controller cart layouts.
const (
	LayoutRSDOS CartLayout = iota
	LayoutDragonDOS
)

// WD279xCartridge is a disk controller occupying the cartridge slot: the
// WD279x registers and a drive/motor/density select latch, both mapped
// into cartridge-I/O space. The controller's INTRQ and DRQ outputs are
// wired to the cartridge's NMI and HALT signal sinks respectively, the
// same way the real RS-DOS and DragonDOS carts wire them.
type WD279xCartridge struct {
	Layout    CartLayout
	Scheduler *scheduler.Scheduler
	Now       func() scheduler.Tick

	Controller *floppy.WD279x

	sinks  Sinks
	driveSelect int
	motorOn     bool
}

// NewWD279xCartridge creates a disk-controller cartridge of the given
// layout, wrapping controller (already wired to its drives) and driving
// sinks.NMI/Halt from the controller's INTRQ/DRQ outputs. now
// supplies the current scheduler tick for register accesses.
func NewWD279xCartridge(layout CartLayout, controller *floppy.WD279x, sinks Sinks, now func() scheduler.Tick) *WD279xCartridge {
	c := &WD279xCartridge{
		Layout:     layout,
		Controller: controller,
		sinks:      sinks,
		Now:        now,
	}
	controller.SetINTRQ = func(asserted bool) {
		if c.sinks.NMI != nil {
			c.sinks.NMI(asserted)
		}
	}
	controller.SetDRQ = func(asserted bool) {
		if c.sinks.Halt != nil {
			// DRQ pulls HALT low (asserted) until serviced; the real
			// carts wire DRQ active-low onto HALT so the CPU stalls
			// instead of losing a byte.
			c.sinks.Halt(asserted)
		}
	}
	return c
}

// registerOffsets returns the cart-I/O address offset the WD279x status/
// track/sector/data registers start at for this layout, and the offset
// of the drive/motor/density select latch.
func (c *WD279xCartridge) registerOffsets() (wd279x uint16, control uint16) {
	if c.Layout == LayoutDragonDOS {
		return 0x00, 0x08
	}
	return 0x00, 0x10
}

func (c *WD279xCartridge) decode(addr uint16) (isWD279x bool, isControl bool, offset uint16) {
	wdBase, ctrlBase := c.registerOffsets()
	rel := addr & 0x3F
	switch {
	case rel >= wdBase && rel < wdBase+4:
		return true, false, rel - wdBase
	case rel == ctrlBase:
		return false, true, 0
	default:
		return false, false, 0
	}
}

// Read implements Cartridge.
func (c *WD279xCartridge) Read(addr uint16, p2 bool) uint8 {
	if p2 {
		return 0
	}
	isWD, _, off := c.decode(addr)
	if isWD {
		return c.Controller.Read(off, c.Now())
	}
	return 0
}

// Write implements Cartridge. The control latch's bit layout follows the
// common RS-DOS/DragonDOS convention: bits 0-1 select the drive, bit 2
// (RS-DOS) or bit 4 (DragonDOS) selects double density, and the motor-on
// bit (bit 3 RS-DOS, bit 7 DragonDOS) is latched in the cartridge only:
// it does not change the selected drive's Ready line.
func (c *WD279xCartridge) Write(addr uint16, p2 bool, data uint8) {
	if p2 {
		return
	}
	isWD, isControl, off := c.decode(addr)
	switch {
	case isWD:
		c.Controller.Write(off, data, c.Now())
	case isControl:
		c.driveSelect = int(data & 0x03)
		c.Controller.SelectDrive(c.driveSelect)
		switch c.Layout {
		case LayoutDragonDOS:
			c.Controller.SetDoubleDensity(data&0x10 != 0)
			c.motorOn = data&0x80 != 0
		default:
			c.Controller.SetDoubleDensity(data&0x04 != 0)
			c.motorOn = data&0x08 != 0
		}
	}
}

// Reset implements Cartridge.
func (c *WD279xCartridge) Reset() {
	c.Controller.Reset()
	c.driveSelect = 0
	c.motorOn = false
}

// Attach implements Cartridge.
func (c *WD279xCartridge) Attach() {}

// Detach implements Cartridge.
func (c *WD279xCartridge) Detach() {
	if c.sinks.NMI != nil {
		c.sinks.NMI(false)
	}
	if c.sinks.Halt != nil {
		c.sinks.Halt(false)
	}
}
