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

// dispatchPage2Native and dispatchPage3Native hold the Hitachi 6309's
// native-mode extensions to the two prefixed instruction pages:
// register-to-register arithmetic, the W/MD pseudo-registers, the
// direct-page bit-transfer group, and the block-transfer (TFM) family.
// Opcode placement follows the page-2 (0x30-0x3B) and page-3
// (0x30-0x3D, 0x8D-0x8F plus their direct/indexed/extended forms)
// layout.

// dispatchPage2Native handles the register-to-register ALU group and the
// W-register stack operations. It reports whether opcode was one of its
// own, so the caller can fall through to the shared page-2 table.
func (c *CPU) dispatchPage2Native(opcode uint8) bool {
	switch opcode {
	case 0x30: // ADDR
		c.execRegR(c.fetchByte(), regROpAdd)
	case 0x31: // ADCR
		c.execRegR(c.fetchByte(), regROpAdc)
	case 0x32: // SUBR
		c.execRegR(c.fetchByte(), regROpSub)
	case 0x33: // SBCR
		c.execRegR(c.fetchByte(), regROpSbc)
	case 0x34: // ANDR
		c.execRegR(c.fetchByte(), regROpAnd)
	case 0x35: // ORR
		c.execRegR(c.fetchByte(), regROpOr)
	case 0x36: // EORR
		c.execRegR(c.fetchByte(), regROpEor)
	case 0x37: // CMPR
		c.execRegR(c.fetchByte(), regROpCmp)
	case 0x38: // PSHSW
		c.pushWordS(c.Reg.W())
	case 0x39: // PULSW
		c.Reg.SetW(c.pullWordS())
	case 0x3A: // PSHUW
		c.pushWordU(c.Reg.W())
	case 0x3B: // PULUW
		c.Reg.SetW(c.pullWordU())
	default:
		return false
	}
	return true
}

type regROp int

const (
	regROpAdd regROp = iota
	regROpAdc
	regROpSub
	regROpSbc
	regROpAnd
	regROpOr
	regROpEor
	regROpCmp
)

// execRegR implements the register-to-register group. postbyte's high
// nibble selects the source register, the low nibble the destination;
// both must be the same size (word or byte), matching TFR/EXG's rule.
func (c *CPU) execRegR(postbyte uint8, op regROp) {
	src := postbyte >> 4
	dst := postbyte & 0x0F
	if src < 0x8 && dst < 0x8 {
		a, b := c.get16(dst), c.get16(src)
		var r uint16
		switch op {
		case regROpAdd:
			r = c.add16(a, b)
		case regROpAdc:
			r = a + b
			if c.Reg.Flag(registers.FlagC) {
				r++
			}
			c.Reg.SetNZ16(r)
		case regROpSub:
			r = c.sub16(a, b)
		case regROpSbc:
			r = a - b
			if c.Reg.Flag(registers.FlagC) {
				r--
			}
			c.Reg.SetNZ16(r)
		case regROpAnd:
			r = a & b
			c.Reg.SetNZ16(r)
			c.Reg.SetFlag(registers.FlagV, false)
		case regROpOr:
			r = a | b
			c.Reg.SetNZ16(r)
			c.Reg.SetFlag(registers.FlagV, false)
		case regROpEor:
			r = a ^ b
			c.Reg.SetNZ16(r)
			c.Reg.SetFlag(registers.FlagV, false)
		case regROpCmp:
			c.sub16(a, b)
			return
		}
		c.set16(dst, r)
		return
	}
	if src >= 0x8 && dst >= 0x8 {
		a, b := c.get8(dst), c.get8(src)
		var r uint8
		switch op {
		case regROpAdd:
			r = c.add8(a, b, false)
		case regROpAdc:
			r = c.add8(a, b, c.Reg.Flag(registers.FlagC))
		case regROpSub:
			r = c.sub8(a, b, false)
		case regROpSbc:
			r = c.sub8(a, b, c.Reg.Flag(registers.FlagC))
		case regROpAnd:
			r = c.and8(a, b)
		case regROpOr:
			r = c.or8(a, b)
		case regROpEor:
			r = c.eor8(a, b)
		case regROpCmp:
			c.sub8(a, b, false)
			return
		}
		c.set8(dst, r)
	}
}

// direct-page bit register select, used by the BAND/BOR/BEOR group and
// LDBT/STBT.
const (
	bitRegCC = 0
	bitRegA  = 1
	bitRegB  = 2
)

func (c *CPU) bitRegGet(sel uint8) bool {
	switch sel {
	case bitRegA:
		return c.Reg.A&0x01 != 0
	case bitRegB:
		return c.Reg.B&0x01 != 0
	default:
		return c.Reg.CC&0x01 != 0
	}
}

// dispatchPage3Native handles the direct-page bit-transfer group and the
// block-transfer (TFM) family. It reports whether opcode was its own.
func (c *CPU) dispatchPage3Native(opcode uint8) bool {
	switch opcode {
	case 0x30: // BAND
		c.execBitOp(bitOpAnd, false)
	case 0x31: // BIAND
		c.execBitOp(bitOpAnd, true)
	case 0x32: // BOR
		c.execBitOp(bitOpOr, false)
	case 0x33: // BIOR
		c.execBitOp(bitOpOr, true)
	case 0x34: // BEOR
		c.execBitOp(bitOpEor, false)
	case 0x35: // BIEOR
		c.execBitOp(bitOpEor, true)
	case 0x36: // LDBT
		c.execLDBT()
	case 0x37: // STBT
		c.execSTBT()
	case 0x38: // TFM r0+,r1+
		c.startTFM(tfmCopyIncInc)
	case 0x39: // TFM r0-,r1-
		c.startTFM(tfmCopyDecDec)
	case 0x3A: // TFM r0+,r1
		c.startTFM(tfmCopyIncConst)
	case 0x3B: // TFM r0,r1+
		c.startTFM(tfmCopyConstInc)
	case 0x3C: // BITMD immediate
		mask := c.fetchByte()
		c.Reg.SetFlag(registers.FlagZ, c.Reg.MD&mask == 0)
	case 0x3D: // LDMD immediate
		c.Reg.MD = c.fetchByte()
	case 0x8D: // DIVD immediate
		c.execDIVD(amImmediate)
	case 0x9D: // DIVD direct
		c.execDIVD(amDirect)
	case 0xAD: // DIVD indexed
		c.execDIVD(amIndexed)
	case 0xBD: // DIVD extended
		c.execDIVD(amExtended)
	case 0x8E: // DIVQ immediate
		c.execDIVQ(amImmediate)
	case 0x9E: // DIVQ direct
		c.execDIVQ(amDirect)
	case 0xAE: // DIVQ indexed
		c.execDIVQ(amIndexed)
	case 0xBE: // DIVQ extended
		c.execDIVQ(amExtended)
	case 0x8F: // MULD immediate
		c.execMULD(amImmediate)
	case 0x9F: // MULD direct
		c.execMULD(amDirect)
	case 0xAF: // MULD indexed
		c.execMULD(amIndexed)
	case 0xBF: // MULD extended
		c.execMULD(amExtended)
	default:
		return false
	}
	return true
}

type bitOp int

const (
	bitOpAnd bitOp = iota
	bitOpOr
	bitOpEor
)

// execBitOp implements BAND/BOR/BEOR and their inverted-source (BIxxx)
// variants: postbyte selects a CC/A/B register bit and a direct-page
// memory bit, combines the two with op, and stores the result back into
// the register bit. The direct-page address follows the postbyte.
func (c *CPU) execBitOp(op bitOp, invert bool) {
	postbyte := c.fetchByte()
	regSel := (postbyte >> 6) & 0x03
	srcBit := (postbyte >> 3) & 0x07
	dstBit := postbyte & 0x07
	addr := c.resolveDirect()
	mem := c.readByte(addr)

	src := mem&(1<<srcBit) != 0
	if invert {
		src = !src
	}
	dst := c.bitRegGet(regSel)

	var r bool
	switch op {
	case bitOpAnd:
		r = dst && src
	case bitOpOr:
		r = dst || src
	case bitOpEor:
		r = dst != src
	}
	c.bitRegSet(regSel, dstBit, r)
}

func (c *CPU) bitRegSet(sel uint8, bit uint8, v bool) {
	var set func(mask uint8)
	switch sel {
	case bitRegA:
		set = func(mask uint8) {
			if v {
				c.Reg.A |= mask
			} else {
				c.Reg.A &^= mask
			}
		}
	case bitRegB:
		set = func(mask uint8) {
			if v {
				c.Reg.B |= mask
			} else {
				c.Reg.B &^= mask
			}
		}
	default:
		set = func(mask uint8) {
			if v {
				c.Reg.CC |= mask
			} else {
				c.Reg.CC &^= mask
			}
		}
	}
	set(1 << bit)
}

// execLDBT loads a single direct-page memory bit into a CC/A/B register
// bit; execSTBT stores a register bit into direct-page memory.
func (c *CPU) execLDBT() {
	postbyte := c.fetchByte()
	regSel := (postbyte >> 6) & 0x03
	srcBit := (postbyte >> 3) & 0x07
	dstBit := postbyte & 0x07
	addr := c.resolveDirect()
	mem := c.readByte(addr)
	c.bitRegSet(regSel, dstBit, mem&(1<<srcBit) != 0)
}

func (c *CPU) execSTBT() {
	postbyte := c.fetchByte()
	regSel := (postbyte >> 6) & 0x03
	srcBit := (postbyte >> 3) & 0x07
	dstBit := postbyte & 0x07
	addr := c.resolveDirect()
	mem := c.readByte(addr)
	if c.bitRegGet2(regSel, srcBit) {
		mem |= 1 << dstBit
	} else {
		mem &^= 1 << dstBit
	}
	c.writeByte(addr, mem)
}

func (c *CPU) bitRegGet2(sel, bit uint8) bool {
	switch sel {
	case bitRegA:
		return c.Reg.A&(1<<bit) != 0
	case bitRegB:
		return c.Reg.B&(1<<bit) != 0
	default:
		return c.Reg.CC&(1<<bit) != 0
	}
}

// reg16PtrTFM returns a pointer to one of the four index/stack registers
// TFM may use as a moving pointer, selected by a 2-bit code (X,Y,U,S).
func (c *CPU) reg16PtrTFM(code uint8) *uint16 {
	switch code & 0x03 {
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

// startTFM decodes the TFM postbyte (source register in the high nibble,
// destination in the low nibble) and arms the interruptible scheduler
// sub-states that perform the byte-at-a-time transfer, W bytes at a time.
func (c *CPU) startTFM(mode tfmMode) {
	postbyte := c.fetchByte()
	c.tfmSrc = c.reg16PtrTFM(postbyte >> 4)
	c.tfmDst = c.reg16PtrTFM(postbyte & 0x0F)
	c.tfmMode = mode
	c.tfmReturnPC = c.instrStartPC
	if c.Reg.W() == 0 {
		return
	}
	c.state = stateTFMRead
}

// execMULD multiplies D by the operand fetched in the given addressing
// mode (signed 16x16->32) into Q.
func (c *CPU) execMULD(mode amode) {
	b := int32(int16(c.fetch16(mode)))
	a := int32(int16(c.Reg.D()))
	r := a * b
	c.Reg.SetQ(uint32(r))
	c.Reg.SetFlag(registers.FlagN, r < 0)
	c.Reg.SetFlag(registers.FlagZ, r == 0)
}

// execDIVD divides D by the operand fetched in the given addressing
// mode, leaving an 8-bit quotient in B and the remainder in A.
func (c *CPU) execDIVD(mode amode) {
	divisor := int16(int8(c.fetch8(mode)))
	dividend := int16(c.Reg.D())
	if divisor == 0 {
		c.Reg.SetFlag(registers.FlagC, true)
		return
	}
	q := dividend / divisor
	r := dividend % divisor
	c.Reg.B = uint8(q)
	c.Reg.A = uint8(r)
	c.Reg.SetNZ8(c.Reg.B)
	c.Reg.SetFlag(registers.FlagC, q&0x01 != 0)
}

// execDIVQ divides Q by the operand fetched in the given addressing
// mode, leaving a 16-bit quotient in D and the remainder in W.
func (c *CPU) execDIVQ(mode amode) {
	divisor := int32(int16(c.fetch16(mode)))
	dividend := int32(c.Reg.Q())
	if divisor == 0 {
		c.Reg.SetFlag(registers.FlagC, true)
		return
	}
	q := dividend / divisor
	r := dividend % divisor
	c.Reg.SetD(uint16(q))
	c.Reg.SetW(uint16(r))
	c.Reg.SetNZ16(c.Reg.D())
	c.Reg.SetFlag(registers.FlagC, q&0x01 != 0)
}
