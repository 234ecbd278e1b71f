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

// Package pia implements the MC6821 Peripheral Interface Adapter as wired
// in pairs on the Dragon/CoCo (PIA0 driving VDG mode/keyboard/joystick
// lines, PIA1 driving the floppy, cassette, and ROM-bank-select lines).
// Each PIA has two independent sides (A and B), each with a data
// direction register, an output register, a control register, and one
// interrupt input (Cx1, plus Cx2 in input mode on this machine's wiring).
package pia

// control register bits.
const (
	crDDRSelect = 1 << 2 // 0 = access DDR, 1 = access output register
	crC1IRQEnable = 1 << 0
	crC1RisingEdge = 1 << 1
)

// Side is one half (A or B) of a PIA.
type Side struct {
	ddr    uint8
	output uint8
	cr     uint8
	pins   uint8 // externally driven input pin levels
	c1     bool  // last known C1 input level
	irq    bool  // interrupt latch

	// ReadHook, if set, is called after every PDR read (after the
	// interrupt latch is cleared) so machine wiring can react to a read
	// of, say, the keyboard row lines.
	ReadHook func()

	// WriteHook, if set, is called after every PDR write, passing the
	// newly latched output register, so machine wiring can drive
	// keyboard column selection, the DAC, or the cassette output pin.
	WriteHook func(output uint8)

	// IRQHook, if set, is called whenever the side's IRQ output changes
	// level (true = asserted).
	IRQHook func(asserted bool)
}

// Direction returns the data direction register (1 bit = output).
func (s *Side) Direction() uint8 { return s.ddr }

// Output returns the output register, independent of direction.
func (s *Side) Output() uint8 { return s.output }

// ControlRegister returns the raw control register, independent of the
// interrupt-latch bit readCR mirrors into bit 7. Used by snapshot
// save/restore, which needs the register's software-visible content
// without disturbing the latch the way a real CR read would.
func (s *Side) ControlRegister() uint8 { return s.cr }

// Restore sets a side's register state directly, bypassing the DDR-
// select and interrupt-latch side effects a live write would have. Used
// by snapshot load.
func (s *Side) Restore(ddr, output, cr uint8) {
	s.ddr = ddr
	s.output = output
	s.cr = cr
}

// SetPins drives the side's input pins (the bits not selected as
// outputs). Used by machine wiring to reflect keyboard rows, joystick
// comparators, or HS/FS edges onto the appropriate side.
func (s *Side) SetPins(level uint8) {
	s.pins = level
}

// Pin reads the combined (wired-OR) level of a single pin: its driven
// input level if configured as an input, or the latched output level if
// configured as an output.
func (s *Side) Pin(bit uint) bool {
	mask := uint8(1) << bit
	if s.ddr&mask != 0 {
		return s.output&mask != 0
	}
	return s.pins&mask != 0
}

// readPDR implements the PDR read formula from the MC6821 data sheet:
// (pin_state & ~direction) | (output_register & direction). Reading
// clears the interrupt latch.
func (s *Side) readPDR() uint8 {
	v := (s.pins &^ s.ddr) | (s.output & s.ddr)
	s.irq = false
	s.setIRQOutput(false)
	if s.ReadHook != nil {
		s.ReadHook()
	}
	return v
}

func (s *Side) readDDR() uint8 { return s.ddr }

// writePDR latches data into the output register if CRx bit 2 selects
// the output register, else into the data direction register.
func (s *Side) writePDR(data uint8) {
	if s.cr&crDDRSelect != 0 {
		s.output = data
		if s.WriteHook != nil {
			s.WriteHook(s.output)
		}
	} else {
		s.ddr = data
	}
}

func (s *Side) readCR() uint8 {
	// bit 7 mirrors the interrupt latch, matching the MC6821's use of
	// the control register's top bit as an IRQ status flag.
	cr := s.cr & 0x3F
	if s.irq {
		cr |= 0x80
	}
	return cr
}

func (s *Side) writeCR(data uint8) {
	s.cr = data & 0x3F
}

func (s *Side) setIRQOutput(asserted bool) {
	if s.IRQHook != nil {
		s.IRQHook(asserted)
	}
}

// SetC1 drives the side's C1 input line. On the edge configured by CRx
// bit 1 (rising if set, falling if clear) the interrupt latch is set; if
// CRx bit 0 enables interrupts, the side's IRQ output is also raised.
func (s *Side) SetC1(level bool) {
	edge := level && !s.c1
	if s.cr&crC1RisingEdge == 0 {
		edge = !level && s.c1
	}
	s.c1 = level

	if edge {
		s.irq = true
		if s.cr&crC1IRQEnable != 0 {
			s.setIRQOutput(true)
		}
	}
}

// PIA is a pair of Sides addressed through the standard 6821 register
// map: register-select bits choose {PDR-or-DDR-A, CRA, PDR-or-DDR-B,
// CRB} from the low two address bits.
type PIA struct {
	A Side
	B Side
}

// NewPIA creates a PIA with both sides in their reset state (DDR all
// inputs, control registers clear).
func NewPIA() *PIA {
	return &PIA{}
}

// Read returns the register selected by the low two bits of addr.
func (p *PIA) Read(addr uint16) uint8 {
	switch addr & 3 {
	case 0:
		if p.A.cr&crDDRSelect != 0 {
			return p.A.readPDR()
		}
		return p.A.readDDR()
	case 1:
		return p.A.readCR()
	case 2:
		if p.B.cr&crDDRSelect != 0 {
			return p.B.readPDR()
		}
		return p.B.readDDR()
	default:
		return p.B.readCR()
	}
}

// Write stores data into the register selected by the low two bits of
// addr.
func (p *PIA) Write(addr uint16, data uint8) {
	switch addr & 3 {
	case 0:
		if p.A.cr&crDDRSelect != 0 {
			p.A.writePDR(data)
		} else {
			p.A.ddr = data
		}
	case 1:
		p.A.writeCR(data)
	case 2:
		if p.B.cr&crDDRSelect != 0 {
			p.B.writePDR(data)
		} else {
			p.B.ddr = data
		}
	default:
		p.B.writeCR(data)
	}
}

// Reset returns both sides to their power-on state.
func (p *PIA) Reset() {
	*p = PIA{A: Side{ReadHook: p.A.ReadHook, WriteHook: p.A.WriteHook, IRQHook: p.A.IRQHook},
		B: Side{ReadHook: p.B.ReadHook, WriteHook: p.B.WriteHook, IRQHook: p.B.IRQHook}}
}
