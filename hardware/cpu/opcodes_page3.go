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

// dispatchPage3 decodes an opcode prefixed by 0x11: CMPU/CMPS and SWI3.
// On the 6309 this page also carries the register-to-register and
// bit-oriented extensions, handled by dispatchPage3Native before falling
// through to the 6809-common cases below.
func (c *CPU) dispatchPage3(opcode uint8) {
	if c.Variant == Variant6309 && c.dispatchPage3Native(opcode) {
		return
	}

	switch opcode {
	case 0x3F: // SWI3
		c.pushFullFrame()
		c.nvma()
		c.Reg.PC = c.readWord(vectorSWI3)
		c.nvma()
	case 0x83: // CMPU immediate
		c.sub16(c.Reg.U, c.fetch16(amImmediate))
	case 0x93:
		c.sub16(c.Reg.U, c.fetch16(amDirect))
	case 0xA3:
		c.sub16(c.Reg.U, c.fetch16(amIndexed))
	case 0xB3:
		c.sub16(c.Reg.U, c.fetch16(amExtended))
	case 0x8C: // CMPS immediate
		c.sub16(c.Reg.S, c.fetch16(amImmediate))
	case 0x9C:
		c.sub16(c.Reg.S, c.fetch16(amDirect))
	case 0xAC:
		c.sub16(c.Reg.S, c.fetch16(amIndexed))
	case 0xBC:
		c.sub16(c.Reg.S, c.fetch16(amExtended))
	default:
		c.illegal()
	}
}
