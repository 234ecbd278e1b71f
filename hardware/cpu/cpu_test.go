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

package cpu_test

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/cpu"
	"github.com/dgn32/dgncore/hardware/cpu/registers"
	"github.com/dgn32/dgncore/test"
)

// flatBus is a 64K byte array wired straight to the CPU with a fixed
// one-tick cost per access, standing in for the SAM's cycle-accounted
// address decode in tests that only care about the instruction engine.
type flatBus struct {
	mem [65536]byte
}

func (b *flatBus) ReadCycle(addr uint16) (uint8, uint32) { return b.mem[addr], 1 }
func (b *flatBus) WriteCycle(addr uint16, data uint8) uint32 {
	b.mem[addr] = data
	return 1
}

func (b *flatBus) loadAt(addr uint16, bytes ...uint8) {
	for i, v := range bytes {
		b.mem[addr+uint16(i)] = v
	}
}

func (b *flatBus) setVector(vector, target uint16) {
	b.mem[vector] = uint8(target >> 8)
	b.mem[vector+1] = uint8(target)
}

func step(c *cpu.CPU, n int) {
	for i := 0; i < n; i++ {
		c.Step()
	}
}

func TestResetVectorsPCAndMasksInterrupts(t *testing.T) {
	bus := &flatBus{}
	bus.setVector(0xFFFE, 0x3000)

	c := cpu.NewCPU(bus, cpu.Variant6809)
	step(c, 4) // stateReset, stateResetCheckHalt, stateLabelA, stateLabelB

	test.ExpectEquality(t, c.Reg.PC, uint16(0x3000))
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagI), true)
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagF), true)
}

func TestLDAImmediateSetsNZAndClearsV(t *testing.T) {
	bus := &flatBus{}
	bus.setVector(0xFFFE, 0x2000)
	bus.loadAt(0x2000, 0x86, 0x80) // LDA #$80
	bus.loadAt(0x2002, 0x86, 0x00) // LDA #$00

	c := cpu.NewCPU(bus, cpu.Variant6809)
	c.Reg.SetFlag(registers.FlagV, true)
	step(c, 5) // boot through to the first instruction's execution

	test.ExpectEquality(t, c.Reg.A, uint8(0x80))
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagN), true)
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagZ), false)
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagV), false)

	step(c, 4) // stateLabelA, stateLabelB, the second LDA's execution, then stateLabelA
	test.ExpectEquality(t, c.Reg.A, uint8(0x00))
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagN), false)
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagZ), true)
}

// TestIRQRecognitionWaitsTwoTicks confirms the settle-time rule: an IRQ
// asserted right before an instruction boundary is not taken at the very
// next check, only at the one after, once two ticks have elapsed since
// the line changed.
func TestIRQRecognitionWaitsTwoTicks(t *testing.T) {
	bus := &flatBus{}
	bus.setVector(0xFFFE, 0x2000)
	bus.setVector(0xFFF8, 0x5000)
	bus.loadAt(0x2000, 0x1C, 0xEF) // ANDCC #$EF, clears the I mask
	bus.loadAt(0x2002, 0x12)       // NOP
	bus.loadAt(0x2003, 0x12)       // NOP
	bus.loadAt(0x5000, 0x3B)       // RTI, in case the ISR is ever entered twice

	c := cpu.NewCPU(bus, cpu.Variant6809)
	c.Reg.S = 0x8000 // keep the stacked interrupt frame clear of the vector table
	step(c, 7)       // boot, execute ANDCC, and clear the label_b check with no IRQ pending

	c.AssertIRQ(true, c.Ticks)
	step(c, 3) // execute NOP #1, reach the next label_b check (elapsed: 1 tick)
	test.ExpectEquality(t, c.Reg.PC, uint16(0x2003))

	step(c, 3) // execute NOP #2; the label_b check after it (elapsed: 2 ticks) stacks the frame
	test.ExpectEquality(t, c.Reg.PC, uint16(0x2004))

	step(c, 1) // dispatch_irq fetches the IRQ vector
	test.ExpectEquality(t, c.Reg.PC, uint16(0x5000))
}

// TestTFMResumesAfterInterrupt drives a three-byte 6309 TFM transfer
// (r0+,r1+) and takes a real IRQ after the first byte has moved, checking
// that the CPU resumes the transfer from where it left off once the
// interrupt handler returns, rather than restarting or skipping a byte.
func TestTFMResumesAfterInterrupt(t *testing.T) {
	bus := &flatBus{}
	bus.setVector(0xFFFE, 0x2000)
	bus.setVector(0xFFF8, 0x5000)
	bus.loadAt(0x2000, 0x1C, 0xEF) // ANDCC #$EF
	bus.loadAt(0x2002, 0x11, 0x38, 0x01) // TFM X+,Y+
	bus.loadAt(0x5000, 0x3B)             // RTI
	bus.loadAt(0x3000, 0xAA, 0xBB, 0xCC) // source bytes

	c := cpu.NewCPU(bus, cpu.Variant6309)
	c.Reg.X = 0x3000
	c.Reg.Y = 0x4000
	c.Reg.S = 0x8000 // keep the stacked interrupt frame clear of the vector table
	c.Reg.SetW(3)

	step(c, 7) // boot, execute ANDCC, and clear the label_b check with no IRQ pending
	step(c, 3) // start TFM, transfer the first byte, rewind PC to resume

	c.AssertIRQ(true, c.Ticks)
	step(c, 4) // label_b defers (elapsed 0), re-decode TFM, transfer byte two
	step(c, 2) // label_b now sees an IRQ at least 2 ticks old, pushes the frame and vectors

	test.ExpectEquality(t, c.Reg.PC, uint16(0x5000))
	test.ExpectEquality(t, c.Reg.W(), uint16(1))
	test.ExpectEquality(t, c.Reg.X, uint16(0x3002))
	test.ExpectEquality(t, c.Reg.Y, uint16(0x4002))
	test.ExpectEquality(t, bus.mem[0x4000], uint8(0xAA))
	test.ExpectEquality(t, bus.mem[0x4001], uint8(0xBB))

	c.AssertIRQ(false, c.Ticks)
	step(c, 3) // label_a, label_b, execute RTI
	test.ExpectEquality(t, c.Reg.PC, uint16(0x2002))
	test.ExpectEquality(t, c.Reg.Flag(registers.FlagI), false)

	step(c, 6) // label_a, label_b, re-decode TFM, transfer the final byte
	test.ExpectEquality(t, c.Reg.W(), uint16(0))
	test.ExpectEquality(t, c.Reg.X, uint16(0x3003))
	test.ExpectEquality(t, c.Reg.Y, uint16(0x4003))
	test.ExpectEquality(t, bus.mem[0x4002], uint8(0xCC))
}
