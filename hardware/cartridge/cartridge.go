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

// Package cartridge defines the cart-slot interface the SAM routes
// cartridge-ROM and cartridge-I/O accesses through, plus two concrete
// carts: a WD279x-based disk controller (RS-DOS and DragonDOS variants)
// and the Orchestra-90 stereo sound cartridge.
package cartridge

// Cartridge is the interface every cart plugged into the slot
// implements. p2 is high for cartridge-ROM space (0xC000-0xFEFF) and low
// for cartridge-I/O space (0xFF40-0xFF7F).
type Cartridge interface {
	Read(addr uint16, p2 bool) uint8
	Write(addr uint16, p2 bool, data uint8)
	Reset()
	Attach()
	Detach()
}

// Sinks is the set of machine signal lines a cartridge may pulse. The
// machine wires these to the CPU's FIRQ/NMI inputs and the HALT line
// before attaching a cart.
type Sinks struct {
	FIRQ func(level bool)
	NMI  func(level bool)
	Halt func(level bool)
}

// Slot holds the currently attached cartridge (nil if the slot is
// empty) and the signal sinks it was given at construction.
type Slot struct {
	Sinks Sinks

	cart Cartridge
}

// NewSlot creates an empty cartridge slot wired to sinks.
func NewSlot(sinks Sinks) *Slot {
	return &Slot{Sinks: sinks}
}

// Attach plugs cart into the slot, detaching (but not resetting) whatever
// was there before, then calls the new cart's Attach.
func (s *Slot) Attach(cart Cartridge) {
	if s.cart != nil {
		s.cart.Detach()
	}
	s.cart = cart
	if s.cart != nil {
		s.cart.Attach()
	}
}

// Detach removes the current cartridge, if any.
func (s *Slot) Detach() {
	if s.cart != nil {
		s.cart.Detach()
	}
	s.cart = nil
}

// Attached reports whether a cartridge currently occupies the slot.
func (s *Slot) Attached() bool { return s.cart != nil }

// Read implements sam.CartridgeBus.
func (s *Slot) Read(addr uint16, p2 bool) uint8 {
	if s.cart == nil {
		return 0
	}
	return s.cart.Read(addr, p2)
}

// Write implements sam.CartridgeBus.
func (s *Slot) Write(addr uint16, p2 bool, data uint8) {
	if s.cart != nil {
		s.cart.Write(addr, p2, data)
	}
}

// Reset resets the attached cartridge, if any.
func (s *Slot) Reset() {
	if s.cart != nil {
		s.cart.Reset()
	}
}
