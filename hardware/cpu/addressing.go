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

// indexedRegister returns a pointer to the register selected by the
// indexed postbyte's RR field (bits 6-5): X, Y, U, S.
func (c *CPU) indexedRegister(rr uint8) *uint16 {
	switch rr {
	case 0:
		return &c.Reg.X
	case 1:
		return &c.Reg.Y
	case 2:
		return &c.Reg.U
	default:
		return &c.Reg.S
	}
}

// wGet and wSet read and write the 6309 W pseudo-register, used by the
// W-based indexed modes.
func (c *CPU) wGet() uint16  { return c.Reg.W() }
func (c *CPU) wSet(v uint16) { c.Reg.SetW(v) }

// resolveIndexed fetches an indexed-addressing postbyte, decodes it (per
// §4.3.3) and returns the effective address. A postbyte with bit 7 clear
// is a 5-bit signed offset from a register; with bit 7 set, the low
// nibble selects the full mode and bit 4 selects `[...]` indirection,
// which this function resolves itself by one further memory read.
func (c *CPU) resolveIndexed() uint16 {
	postbyte := c.fetchByte()

	if postbyte&0x80 == 0 {
		// 5-bit signed constant offset from a register, no extension byte.
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		offset := int8(postbyte<<3) >> 3
		return *reg + uint16(int16(offset))
	}

	indirect := postbyte&0x10 != 0
	var ea uint16

	switch postbyte & 0x0F {
	case 0x00: // ,R+
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg
		*reg++
		c.nvma()
	case 0x01: // ,R++
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg
		*reg += 2
		c.nvma()
		c.nvma()
	case 0x02: // ,-R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		*reg--
		ea = *reg
		c.nvma()
	case 0x03: // ,--R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		*reg -= 2
		ea = *reg
		c.nvma()
		c.nvma()
	case 0x04: // ,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg
	case 0x05: // B,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg + uint16(int16(int8(c.Reg.B)))
		c.nvma()
	case 0x06: // A,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg + uint16(int16(int8(c.Reg.A)))
		c.nvma()
	case 0x07: // E,R (6309)
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg + uint16(int16(int8(c.Reg.E)))
		c.nvma()
	case 0x08: // 8-bit offset,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		offset := int8(c.fetchByte())
		ea = *reg + uint16(int16(offset))
		c.nvma()
	case 0x09: // 16-bit offset,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		offset := int16(c.fetchWord())
		ea = *reg + uint16(offset)
		c.nvma()
		c.nvma()
	case 0x0A: // F,R (6309)
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg + uint16(int16(int8(c.Reg.F)))
		c.nvma()
	case 0x0B: // D,R
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg + c.Reg.D()
		c.nvma()
		c.nvma()
		c.nvma()
		c.nvma()
	case 0x0C: // 8-bit offset,PC
		offset := int8(c.fetchByte())
		ea = c.Reg.PC + uint16(int16(offset))
		c.nvma()
	case 0x0D: // 16-bit offset,PC
		offset := int16(c.fetchWord())
		ea = c.Reg.PC + uint16(offset)
		c.nvma()
		c.nvma()
		c.nvma()
		c.nvma()
	case 0x0E: // W,R (6309)
		reg := c.indexedRegister((postbyte >> 5) & 0x03)
		ea = *reg + c.wGet()
	case 0x0F:
		if indirect {
			// [,Address] extended indirect.
			ea = c.fetchWord()
		} else {
			// ,W auto increment/decrement family (6309), selected by RR.
			switch (postbyte >> 5) & 0x03 {
			case 0x00: // ,W
				ea = c.wGet()
			case 0x01: // ,W++
				ea = c.wGet()
				c.wSet(c.wGet() + 2)
			case 0x02: // ,--W
				c.wSet(c.wGet() - 2)
				ea = c.wGet()
			default:
				ea = c.wGet()
			}
			c.nvma()
			c.nvma()
		}
	}

	if indirect {
		ea = c.readWord(ea)
	}
	return ea
}

// resolveDirect returns the effective address for direct-page
// addressing: DP:immediate8.
func (c *CPU) resolveDirect() uint16 {
	return uint16(c.Reg.DP)<<8 | uint16(c.fetchByte())
}

// resolveExtended returns the effective address for extended
// addressing: a full 16-bit immediate.
func (c *CPU) resolveExtended() uint16 {
	return c.fetchWord()
}
