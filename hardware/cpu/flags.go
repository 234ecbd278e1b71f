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

package cpu

import "github.com/dgn32/dgncore/hardware/cpu/registers"

// add8 computes a+b(+carry) and sets NZVCH per §4.3.4's reference
// formulas: H from the bit-3 carry-out, V from the overflow-of-sign
// test, C from the bit-7 carry-out.
func (c *CPU) add8(a, b uint8, carryIn bool) uint8 {
	var cin uint8
	if carryIn {
		cin = 1
	}
	r16 := uint16(a) + uint16(b) + uint16(cin)
	r := uint8(r16)

	c.Reg.SetFlag(registers.FlagH, (a&0x0F)+(b&0x0F)+cin > 0x0F)
	c.Reg.SetFlag(registers.FlagC, r16 > 0xFF)
	c.Reg.SetFlag(registers.FlagV, (uint16(a)^uint16(b)^r16^(r16>>1))&0x80 != 0)
	c.Reg.SetNZ8(r)
	return r
}

// sub8 computes a-b(-borrow) and sets NZVC.
func (c *CPU) sub8(a, b uint8, borrowIn bool) uint8 {
	var bin uint8
	if borrowIn {
		bin = 1
	}
	r16 := int16(a) - int16(b) - int16(bin)
	r := uint8(r16)

	c.Reg.SetFlag(registers.FlagC, r16 < 0)
	u := uint16(r16)
	c.Reg.SetFlag(registers.FlagV, (uint16(a)^uint16(b)^u^(u>>1))&0x80 != 0)
	c.Reg.SetNZ8(r)
	return r
}

func (c *CPU) and8(a, b uint8) uint8 {
	r := a & b
	c.Reg.SetFlag(registers.FlagV, false)
	c.Reg.SetNZ8(r)
	return r
}

func (c *CPU) or8(a, b uint8) uint8 {
	r := a | b
	c.Reg.SetFlag(registers.FlagV, false)
	c.Reg.SetNZ8(r)
	return r
}

func (c *CPU) eor8(a, b uint8) uint8 {
	r := a ^ b
	c.Reg.SetFlag(registers.FlagV, false)
	c.Reg.SetNZ8(r)
	return r
}

// add16 computes a+b and sets NZVC for 16-bit operands (ADDD).
func (c *CPU) add16(a, b uint16) uint16 {
	r32 := uint32(a) + uint32(b)
	r := uint16(r32)
	c.Reg.SetFlag(registers.FlagC, r32 > 0xFFFF)
	c.Reg.SetFlag(registers.FlagV, (uint32(a)^uint32(b)^r32^(r32>>1))&0x8000 != 0)
	c.Reg.SetNZ16(r)
	return r
}

// sub16 computes a-b and sets NZVC for 16-bit operands (SUBD, CMPx).
func (c *CPU) sub16(a, b uint16) uint16 {
	r32 := int32(a) - int32(b)
	r := uint16(r32)
	c.Reg.SetFlag(registers.FlagC, r32 < 0)
	u := uint32(r32)
	c.Reg.SetFlag(registers.FlagV, (uint32(a)^uint32(b)^u^(u>>1))&0x8000 != 0)
	c.Reg.SetNZ16(r)
	return r
}

// rmwByte applies one of the NEG/COM/LSR/ROR/ASR/ASL/ROL/DEC/INC/TST/CLR
// operations (selected by the direct/indexed/extended/inherent opcode's
// low nibble) to v, updating flags, and returns the value to write back.
// nibble 0x0D (TST) and 0x0E (JMP) are handled by the caller and never
// reach here.
func (c *CPU) rmwByte(nibble uint8, v uint8) uint8 {
	switch nibble {
	case 0x00: // NEG
		r := c.sub8(0, v, false)
		c.Reg.SetFlag(registers.FlagC, v != 0)
		return r
	case 0x03: // COM
		r := v ^ 0xFF
		c.Reg.SetFlag(registers.FlagV, false)
		c.Reg.SetFlag(registers.FlagC, true)
		c.Reg.SetNZ8(r)
		return r
	case 0x04: // LSR
		carry := v&0x01 != 0
		r := v >> 1
		c.Reg.SetFlag(registers.FlagC, carry)
		c.Reg.SetFlag(registers.FlagN, false)
		c.Reg.SetFlag(registers.FlagZ, r == 0)
		return r
	case 0x06: // ROR
		carry := v&0x01 != 0
		r := v >> 1
		if c.Reg.Flag(registers.FlagC) {
			r |= 0x80
		}
		c.Reg.SetFlag(registers.FlagC, carry)
		c.Reg.SetNZ8(r)
		return r
	case 0x07: // ASR
		carry := v&0x01 != 0
		r := (v >> 1) | (v & 0x80)
		c.Reg.SetFlag(registers.FlagC, carry)
		c.Reg.SetNZ8(r)
		return r
	case 0x08: // ASL/LSL
		carry := v&0x80 != 0
		r := v << 1
		c.Reg.SetFlag(registers.FlagC, carry)
		c.Reg.SetFlag(registers.FlagV, (v^r)&0x80 != 0)
		c.Reg.SetNZ8(r)
		return r
	case 0x09: // ROL
		carry := v&0x80 != 0
		r := v << 1
		if c.Reg.Flag(registers.FlagC) {
			r |= 0x01
		}
		c.Reg.SetFlag(registers.FlagC, carry)
		c.Reg.SetFlag(registers.FlagV, (v^r)&0x80 != 0)
		c.Reg.SetNZ8(r)
		return r
	case 0x0A: // DEC
		r := v - 1
		c.Reg.SetFlag(registers.FlagV, v == 0x80)
		c.Reg.SetNZ8(r)
		return r
	case 0x0C: // INC
		r := v + 1
		c.Reg.SetFlag(registers.FlagV, v == 0x7F)
		c.Reg.SetNZ8(r)
		return r
	case 0x0F: // CLR
		c.Reg.SetFlag(registers.FlagN, false)
		c.Reg.SetFlag(registers.FlagZ, true)
		c.Reg.SetFlag(registers.FlagV, false)
		c.Reg.SetFlag(registers.FlagC, false)
		return 0
	}
	return v
}
