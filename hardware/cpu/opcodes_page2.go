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

// dispatchPage2 decodes an opcode prefixed by 0x10: long branches, SWI2,
// and the Y/CMPD/LDS exceptions that share the row-A/row-B layout with
// page 0 but operate on different registers.
func (c *CPU) dispatchPage2(opcode uint8) {
	if c.Variant == Variant6309 && c.dispatchPage2Native(opcode) {
		return
	}

	switch {
	case opcode >= 0x20 && opcode <= 0x2F:
		offset := int16(c.fetchWord())
		if c.condTrue(opcode & 0x0F) {
			c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
			c.nvma()
		}
		return
	}

	switch opcode {
	case 0x3F: // SWI2
		c.pushFullFrame()
		c.nvma()
		c.Reg.PC = c.readWord(vectorSWI2)
		c.nvma()
	case 0x83: // CMPD immediate
		c.sub16(c.Reg.D(), c.fetch16(amImmediate))
	case 0x93: // CMPD direct
		c.sub16(c.Reg.D(), c.fetch16(amDirect))
	case 0xA3: // CMPD indexed
		c.sub16(c.Reg.D(), c.fetch16(amIndexed))
	case 0xB3: // CMPD extended
		c.sub16(c.Reg.D(), c.fetch16(amExtended))
	case 0x8C: // CMPY immediate
		c.sub16(c.Reg.Y, c.fetch16(amImmediate))
	case 0x9C:
		c.sub16(c.Reg.Y, c.fetch16(amDirect))
	case 0xAC:
		c.sub16(c.Reg.Y, c.fetch16(amIndexed))
	case 0xBC:
		c.sub16(c.Reg.Y, c.fetch16(amExtended))
	case 0x8E: // LDY immediate
		c.loadY(c.fetch16(amImmediate))
	case 0x9E:
		c.loadY(c.fetch16(amDirect))
	case 0xAE:
		c.loadY(c.fetch16(amIndexed))
	case 0xBE:
		c.loadY(c.fetch16(amExtended))
	case 0x9F: // STY direct/indexed/extended (no immediate form)
		c.storeY(c.operandAddr(amDirect))
	case 0xAF:
		c.storeY(c.operandAddr(amIndexed))
	case 0xBF:
		c.storeY(c.operandAddr(amExtended))
	case 0xCE: // LDS immediate
		c.loadS(c.fetch16(amImmediate))
	case 0xDE:
		c.loadS(c.fetch16(amDirect))
	case 0xEE:
		c.loadS(c.fetch16(amIndexed))
	case 0xFE:
		c.loadS(c.fetch16(amExtended))
	case 0xDF: // STS direct/indexed/extended
		c.storeS(c.operandAddr(amDirect))
	case 0xEF:
		c.storeS(c.operandAddr(amIndexed))
	case 0xFF:
		c.storeS(c.operandAddr(amExtended))
	default:
		c.illegal()
	}
}

func (c *CPU) loadY(v uint16) {
	c.Reg.Y = v
	c.Reg.SetNZ16(v)
	c.Reg.SetFlag(registers.FlagV, false)
}

func (c *CPU) storeY(addr uint16) {
	c.writeWord(addr, c.Reg.Y)
	c.Reg.SetNZ16(c.Reg.Y)
	c.Reg.SetFlag(registers.FlagV, false)
}

func (c *CPU) loadS(v uint16) {
	c.Reg.S = v
	c.Reg.SetNZ16(v)
	c.Reg.SetFlag(registers.FlagV, false)
}

func (c *CPU) storeS(addr uint16) {
	c.writeWord(addr, c.Reg.S)
	c.Reg.SetNZ16(c.Reg.S)
	c.Reg.SetFlag(registers.FlagV, false)
}
