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

// amode names an operand-addressing mode shared by the 0x80-0xFF
// opcode rows.
type amode int

const (
	amImmediate amode = iota
	amDirect
	amIndexed
	amExtended
)

func (c *CPU) operandAddr(mode amode) uint16 {
	switch mode {
	case amDirect:
		return c.resolveDirect()
	case amIndexed:
		return c.resolveIndexed()
	case amExtended:
		return c.resolveExtended()
	}
	return 0
}

func (c *CPU) fetch8(mode amode) uint8 {
	if mode == amImmediate {
		return c.fetchByte()
	}
	return c.readByte(c.operandAddr(mode))
}

func (c *CPU) fetch16(mode amode) uint16 {
	if mode == amImmediate {
		return c.fetchWord()
	}
	return c.readWord(c.operandAddr(mode))
}

func (c *CPU) writeWord(addr uint16, v uint16) {
	c.writeByte(addr, uint8(v>>8))
	c.writeByte(addr+1, uint8(v))
}

// dispatchPage0 decodes and executes an opcode from the base (un-prefixed)
// instruction page.
func (c *CPU) dispatchPage0(opcode uint8) {
	switch {
	case opcode <= 0x0F:
		c.execRMWDirect(opcode)
		return
	case opcode >= 0x40 && opcode <= 0x4F:
		c.execRMWInherent(opcode&0x0F, &c.Reg.A)
		return
	case opcode >= 0x50 && opcode <= 0x5F:
		c.execRMWInherent(opcode&0x0F, &c.Reg.B)
		return
	case opcode >= 0x60 && opcode <= 0x6F:
		c.execRMWIndexed(opcode & 0x0F)
		return
	case opcode >= 0x70 && opcode <= 0x7F:
		c.execRMWExtended(opcode & 0x0F)
		return
	case opcode >= 0x20 && opcode <= 0x2F:
		c.execShortBranch(opcode & 0x0F)
		return
	case opcode >= 0x80 && opcode <= 0x8F:
		c.execRowA(opcode&0x0F, amImmediate)
		return
	case opcode >= 0x90 && opcode <= 0x9F:
		c.execRowA(opcode&0x0F, amDirect)
		return
	case opcode >= 0xA0 && opcode <= 0xAF:
		c.execRowA(opcode&0x0F, amIndexed)
		return
	case opcode >= 0xB0 && opcode <= 0xBF:
		c.execRowA(opcode&0x0F, amExtended)
		return
	case opcode >= 0xC0 && opcode <= 0xCF:
		c.execRowB(opcode&0x0F, amImmediate)
		return
	case opcode >= 0xD0 && opcode <= 0xDF:
		c.execRowB(opcode&0x0F, amDirect)
		return
	case opcode >= 0xE0 && opcode <= 0xEF:
		c.execRowB(opcode&0x0F, amIndexed)
		return
	case opcode >= 0xF0:
		c.execRowB(opcode&0x0F, amExtended)
		return
	}

	switch opcode {
	case 0x10:
		c.dispatchPage2(c.fetchByte())
	case 0x11:
		c.dispatchPage3(c.fetchByte())
	case 0x12: // NOP
	case 0x13: // SYNC
		c.state = stateSync
	case 0x16: // LBRA
		offset := int16(c.fetchWord())
		c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
	case 0x17: // LBSR
		offset := int16(c.fetchWord())
		ret := c.Reg.PC
		c.pushWordS(ret)
		c.Reg.PC = uint16(int32(ret) + int32(offset))
		c.nvma()
	case 0x19: // DAA
		c.execDAA()
	case 0x1A: // ORCC
		c.Reg.CC |= c.fetchByte()
	case 0x1C: // ANDCC
		c.Reg.CC &= c.fetchByte()
	case 0x1D: // SEX
		if c.Reg.B&0x80 != 0 {
			c.Reg.A = 0xFF
		} else {
			c.Reg.A = 0x00
		}
		c.Reg.SetNZ16(c.Reg.D())
	case 0x1E: // EXG
		c.execEXG(c.fetchByte())
	case 0x1F: // TFR
		c.execTFR(c.fetchByte())
	case 0x30: // LEAX
		ea := c.resolveIndexed()
		c.Reg.X = ea
		c.Reg.SetFlag(registers.FlagZ, ea == 0)
	case 0x31: // LEAY
		ea := c.resolveIndexed()
		c.Reg.Y = ea
		c.Reg.SetFlag(registers.FlagZ, ea == 0)
	case 0x32: // LEAS
		c.Reg.S = c.resolveIndexed()
	case 0x33: // LEAU
		c.Reg.U = c.resolveIndexed()
	case 0x34: // PSHS
		c.execPSHS(c.fetchByte())
	case 0x35: // PULS
		c.execPULS(c.fetchByte())
	case 0x36: // PSHU
		c.execPSHU(c.fetchByte())
	case 0x37: // PULU
		c.execPULU(c.fetchByte())
	case 0x39: // RTS
		c.Reg.PC = c.pullWordS()
	case 0x3A: // ABX
		c.Reg.X += uint16(c.Reg.B)
	case 0x3B: // RTI
		c.Reg.CC = c.pullByteS()
		if c.Reg.Flag(registers.FlagE) {
			c.Reg.A = c.pullByteS()
			c.Reg.B = c.pullByteS()
			c.Reg.DP = c.pullByteS()
			c.Reg.X = c.pullWordS()
			c.Reg.Y = c.pullWordS()
			c.Reg.U = c.pullWordS()
		}
		c.Reg.PC = c.pullWordS()
	case 0x3C: // CWAI
		mask := c.fetchByte()
		c.Reg.CC &= mask
		c.pushFullFrame()
		c.state = stateCWAICheckHalt
	case 0x3D: // MUL
		product := uint16(c.Reg.A) * uint16(c.Reg.B)
		c.Reg.SetD(product)
		c.Reg.SetFlag(registers.FlagZ, product == 0)
		c.Reg.SetFlag(registers.FlagC, product&0x80 != 0)
	case 0x3F: // SWI
		c.pushFullFrame()
		c.Reg.SetFlag(registers.FlagF, true)
		c.Reg.SetFlag(registers.FlagI, true)
		c.nvma()
		c.Reg.PC = c.readWord(vectorSWI)
		c.nvma()
	default:
		c.illegal()
	}
}

func (c *CPU) execRMWDirect(nibble uint8) {
	ea := c.resolveDirect()
	c.execRMWAt(nibble, ea)
}

func (c *CPU) execRMWIndexed(nibble uint8) {
	ea := c.resolveIndexed()
	c.execRMWAt(nibble, ea)
}

func (c *CPU) execRMWExtended(nibble uint8) {
	ea := c.resolveExtended()
	c.execRMWAt(nibble, ea)
}

func (c *CPU) execRMWAt(nibble uint8, ea uint16) {
	if nibble == 0x0E { // JMP
		c.Reg.PC = ea
		return
	}
	v := c.readByte(ea)
	if nibble == 0x0D { // TST
		c.Reg.SetNZ8(v)
		c.Reg.SetFlag(registers.FlagV, false)
		return
	}
	c.writeByte(ea, c.rmwByte(nibble, v))
}

func (c *CPU) execRMWInherent(nibble uint8, reg *uint8) {
	if nibble == 0x0D { // TSTA/TSTB
		c.Reg.SetNZ8(*reg)
		c.Reg.SetFlag(registers.FlagV, false)
		return
	}
	*reg = c.rmwByte(nibble, *reg)
}

// condTrue evaluates the 16 6809 branch conditions, shared by short and
// long branches.
func (c *CPU) condTrue(cond uint8) bool {
	n := c.Reg.Flag(registers.FlagN)
	z := c.Reg.Flag(registers.FlagZ)
	v := c.Reg.Flag(registers.FlagV)
	cy := c.Reg.Flag(registers.FlagC)
	switch cond {
	case 0x0:
		return true
	case 0x1:
		return false
	case 0x2:
		return !cy && !z
	case 0x3:
		return cy || z
	case 0x4:
		return !cy
	case 0x5:
		return cy
	case 0x6:
		return !z
	case 0x7:
		return z
	case 0x8:
		return !v
	case 0x9:
		return v
	case 0xA:
		return !n
	case 0xB:
		return n
	case 0xC:
		return n == v
	case 0xD:
		return n != v
	case 0xE:
		return !z && (n == v)
	case 0xF:
		return z || (n != v)
	}
	return false
}

func (c *CPU) execShortBranch(cond uint8) {
	offset := int8(c.fetchByte())
	if c.condTrue(cond) {
		c.Reg.PC = uint16(int32(c.Reg.PC) + int32(offset))
	}
}

func (c *CPU) execDAA() {
	a := c.Reg.A
	var correction uint8
	carry := c.Reg.Flag(registers.FlagC)

	lo := a & 0x0F
	hi := a >> 4
	if lo > 9 || c.Reg.Flag(registers.FlagH) {
		correction |= 0x06
	}
	if hi > 9 || carry || (hi >= 9 && lo > 9) {
		correction |= 0x60
		carry = true
	}

	r := uint16(a) + uint16(correction)
	c.Reg.A = uint8(r)
	c.Reg.SetFlag(registers.FlagC, carry)
	c.Reg.SetNZ8(c.Reg.A)
}

// register codes used by EXG/TFR postbytes.
const (
	regD = 0x0
	regX = 0x1
	regY = 0x2
	regU = 0x3
	regS = 0x4
	regPC = 0x5
	regA  = 0x8
	regB  = 0x9
	regCC = 0xA
	regDP = 0xB
)

func (c *CPU) get16(code uint8) uint16 {
	switch code {
	case regD:
		return c.Reg.D()
	case regX:
		return c.Reg.X
	case regY:
		return c.Reg.Y
	case regU:
		return c.Reg.U
	case regS:
		return c.Reg.S
	case regPC:
		return c.Reg.PC
	}
	return 0
}

func (c *CPU) set16(code uint8, v uint16) {
	switch code {
	case regD:
		c.Reg.SetD(v)
	case regX:
		c.Reg.X = v
	case regY:
		c.Reg.Y = v
	case regU:
		c.Reg.U = v
	case regS:
		c.Reg.S = v
	case regPC:
		c.Reg.PC = v
	}
}

func (c *CPU) get8(code uint8) uint8 {
	switch code {
	case regA:
		return c.Reg.A
	case regB:
		return c.Reg.B
	case regCC:
		return c.Reg.CC
	case regDP:
		return c.Reg.DP
	}
	return 0
}

func (c *CPU) set8(code uint8, v uint8) {
	switch code {
	case regA:
		c.Reg.A = v
	case regB:
		c.Reg.B = v
	case regCC:
		c.Reg.CC = v
	case regDP:
		c.Reg.DP = v
	}
}

func (c *CPU) execEXG(postbyte uint8) {
	src := postbyte >> 4
	dst := postbyte & 0x0F
	if src < 0x8 && dst < 0x8 {
		a, b := c.get16(src), c.get16(dst)
		c.set16(src, b)
		c.set16(dst, a)
	} else if src >= 0x8 && dst >= 0x8 {
		a, b := c.get8(src), c.get8(dst)
		c.set8(src, b)
		c.set8(dst, a)
	}
}

func (c *CPU) execTFR(postbyte uint8) {
	src := postbyte >> 4
	dst := postbyte & 0x0F
	if src < 0x8 && dst < 0x8 {
		c.set16(dst, c.get16(src))
	} else if src >= 0x8 && dst >= 0x8 {
		c.set8(dst, c.get8(src))
	}
}

func (c *CPU) execPSHS(mask uint8) {
	if mask&0x80 != 0 {
		c.pushWordS(c.Reg.PC)
	}
	if mask&0x40 != 0 {
		c.pushWordS(c.Reg.U)
	}
	if mask&0x20 != 0 {
		c.pushWordS(c.Reg.Y)
	}
	if mask&0x10 != 0 {
		c.pushWordS(c.Reg.X)
	}
	if mask&0x08 != 0 {
		c.pushByteS(c.Reg.DP)
	}
	if mask&0x04 != 0 {
		c.pushByteS(c.Reg.B)
	}
	if mask&0x02 != 0 {
		c.pushByteS(c.Reg.A)
	}
	if mask&0x01 != 0 {
		c.pushByteS(c.Reg.CC)
	}
}

func (c *CPU) execPULS(mask uint8) {
	if mask&0x01 != 0 {
		c.Reg.CC = c.pullByteS()
	}
	if mask&0x02 != 0 {
		c.Reg.A = c.pullByteS()
	}
	if mask&0x04 != 0 {
		c.Reg.B = c.pullByteS()
	}
	if mask&0x08 != 0 {
		c.Reg.DP = c.pullByteS()
	}
	if mask&0x10 != 0 {
		c.Reg.X = c.pullWordS()
	}
	if mask&0x20 != 0 {
		c.Reg.Y = c.pullWordS()
	}
	if mask&0x40 != 0 {
		c.Reg.U = c.pullWordS()
	}
	if mask&0x80 != 0 {
		c.Reg.PC = c.pullWordS()
	}
}

func (c *CPU) execPSHU(mask uint8) {
	if mask&0x80 != 0 {
		c.pushWordU(c.Reg.PC)
	}
	if mask&0x40 != 0 {
		c.pushWordU(c.Reg.S)
	}
	if mask&0x20 != 0 {
		c.pushWordU(c.Reg.Y)
	}
	if mask&0x10 != 0 {
		c.pushWordU(c.Reg.X)
	}
	if mask&0x08 != 0 {
		c.pushByteU(c.Reg.DP)
	}
	if mask&0x04 != 0 {
		c.pushByteU(c.Reg.B)
	}
	if mask&0x02 != 0 {
		c.pushByteU(c.Reg.A)
	}
	if mask&0x01 != 0 {
		c.pushByteU(c.Reg.CC)
	}
}

func (c *CPU) execPULU(mask uint8) {
	if mask&0x01 != 0 {
		c.Reg.CC = c.pullByteU()
	}
	if mask&0x02 != 0 {
		c.Reg.A = c.pullByteU()
	}
	if mask&0x04 != 0 {
		c.Reg.B = c.pullByteU()
	}
	if mask&0x08 != 0 {
		c.Reg.DP = c.pullByteU()
	}
	if mask&0x10 != 0 {
		c.Reg.X = c.pullWordU()
	}
	if mask&0x20 != 0 {
		c.Reg.Y = c.pullWordU()
	}
	if mask&0x40 != 0 {
		c.Reg.S = c.pullWordU()
	}
	if mask&0x80 != 0 {
		c.Reg.PC = c.pullWordU()
	}
}

// execRowA implements the 0x80-0xBF opcode rows: ALU ops on A, plus the
// word-sized SUBD/CMPX/LDX/STX exceptions and JSR/BSR.
func (c *CPU) execRowA(nibble uint8, mode amode) {
	switch nibble {
	case 0x00:
		c.Reg.A = c.sub8(c.Reg.A, c.fetch8(mode), false)
	case 0x01:
		c.sub8(c.Reg.A, c.fetch8(mode), false)
	case 0x02:
		c.Reg.A = c.sub8(c.Reg.A, c.fetch8(mode), c.Reg.Flag(registers.FlagC))
	case 0x03:
		c.Reg.SetD(c.sub16(c.Reg.D(), c.fetch16(mode)))
	case 0x04:
		c.Reg.A = c.and8(c.Reg.A, c.fetch8(mode))
	case 0x05:
		c.and8(c.Reg.A, c.fetch8(mode))
	case 0x06:
		v := c.fetch8(mode)
		c.Reg.A = v
		c.Reg.SetNZ8(v)
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x07:
		if mode == amImmediate {
			c.illegal()
			return
		}
		addr := c.operandAddr(mode)
		c.writeByte(addr, c.Reg.A)
		c.Reg.SetNZ8(c.Reg.A)
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x08:
		c.Reg.A = c.eor8(c.Reg.A, c.fetch8(mode))
	case 0x09:
		c.Reg.A = c.add8(c.Reg.A, c.fetch8(mode), c.Reg.Flag(registers.FlagC))
	case 0x0A:
		c.Reg.A = c.or8(c.Reg.A, c.fetch8(mode))
	case 0x0B:
		c.Reg.A = c.add8(c.Reg.A, c.fetch8(mode), false)
	case 0x0C:
		c.sub16(c.Reg.X, c.fetch16(mode))
	case 0x0D: // BSR (immediate) / JSR (direct, indexed, extended)
		if mode == amImmediate {
			offset := int8(c.fetchByte())
			ret := c.Reg.PC
			c.pushWordS(ret)
			c.Reg.PC = uint16(int32(ret) + int32(offset))
		} else {
			addr := c.operandAddr(mode)
			c.pushWordS(c.Reg.PC)
			c.Reg.PC = addr
		}
	case 0x0E:
		v := c.fetch16(mode)
		c.Reg.X = v
		c.Reg.SetNZ16(v)
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x0F:
		if mode == amImmediate {
			c.illegal()
			return
		}
		addr := c.operandAddr(mode)
		c.writeWord(addr, c.Reg.X)
		c.Reg.SetNZ16(c.Reg.X)
		c.Reg.SetFlag(registers.FlagV, false)
	}
}

// execRowB implements the 0xC0-0xFF opcode rows: ALU ops on B, plus the
// word-sized ADDD/LDD/STD/LDU/STU exceptions.
func (c *CPU) execRowB(nibble uint8, mode amode) {
	switch nibble {
	case 0x00:
		c.Reg.B = c.sub8(c.Reg.B, c.fetch8(mode), false)
	case 0x01:
		c.sub8(c.Reg.B, c.fetch8(mode), false)
	case 0x02:
		c.Reg.B = c.sub8(c.Reg.B, c.fetch8(mode), c.Reg.Flag(registers.FlagC))
	case 0x03:
		c.Reg.SetD(c.add16(c.Reg.D(), c.fetch16(mode)))
	case 0x04:
		c.Reg.B = c.and8(c.Reg.B, c.fetch8(mode))
	case 0x05:
		c.and8(c.Reg.B, c.fetch8(mode))
	case 0x06:
		v := c.fetch8(mode)
		c.Reg.B = v
		c.Reg.SetNZ8(v)
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x07:
		if mode == amImmediate {
			c.illegal()
			return
		}
		addr := c.operandAddr(mode)
		c.writeByte(addr, c.Reg.B)
		c.Reg.SetNZ8(c.Reg.B)
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x08:
		c.Reg.B = c.eor8(c.Reg.B, c.fetch8(mode))
	case 0x09:
		c.Reg.B = c.add8(c.Reg.B, c.fetch8(mode), c.Reg.Flag(registers.FlagC))
	case 0x0A:
		c.Reg.B = c.or8(c.Reg.B, c.fetch8(mode))
	case 0x0B:
		c.Reg.B = c.add8(c.Reg.B, c.fetch8(mode), false)
	case 0x0C:
		v := c.fetch16(mode)
		c.Reg.SetD(v)
		c.Reg.SetNZ16(v)
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x0D:
		if mode == amImmediate {
			c.illegal()
			return
		}
		addr := c.operandAddr(mode)
		c.writeWord(addr, c.Reg.D())
		c.Reg.SetNZ16(c.Reg.D())
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x0E:
		v := c.fetch16(mode)
		c.Reg.U = v
		c.Reg.SetNZ16(v)
		c.Reg.SetFlag(registers.FlagV, false)
	case 0x0F:
		if mode == amImmediate {
			c.illegal()
			return
		}
		addr := c.operandAddr(mode)
		c.writeWord(addr, c.Reg.U)
		c.Reg.SetNZ16(c.Reg.U)
		c.Reg.SetFlag(registers.FlagV, false)
	}
}
