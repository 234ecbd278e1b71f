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

// Package cpu implements the Motorola 6809E instruction engine and its
// Hitachi 6309 superset: the state-driven main loop (reset, interrupt
// dispatch, instruction fetch/execute), the full indexed-addressing
// postbyte decode, and the opcode dispatch tables for all four
// instruction pages.
package cpu

import (
	"github.com/dgn32/dgncore/hardware/cpu/registers"
	"github.com/dgn32/dgncore/hardware/scheduler"
)

// Variant selects which silicon's instruction set and register file is
// exposed: the 6309 superset is a strict extension of the 6809E.
type Variant int

// Supported CPU variants.
const (
	Variant6809 Variant = iota
	Variant6309
)

// Bus is the interface the SAM offers the CPU: address translation and
// tick-accurate cost accounting folded into every access.
type Bus interface {
	ReadCycle(addr uint16) (uint8, uint32)
	WriteCycle(addr uint16, data uint8) uint32
}

// Interrupt vector addresses.
const (
	vectorReset   = 0xFFFE
	vectorNMI     = 0xFFFC
	vectorSWI     = 0xFFFA
	vectorIRQ     = 0xFFF8
	vectorFIRQ    = 0xFFF6
	vectorSWI2    = 0xFFF4
	vectorSWI3    = 0xFFF2
	vectorIllegal = 0xFFF0
)

type execState int

const (
	stateReset execState = iota
	stateResetCheckHalt
	stateLabelA
	stateLabelB
	stateDispatchIRQ
	stateCWAICheckHalt
	stateSync
	stateSyncCheckHalt
	stateNextInstruction
	stateTFMRead
	stateTFMWrite
)

// line tracks one of the three interrupt inputs: its current level and
// the tick at which it last changed, so recognition can enforce the
// two-tick settle time spec.md §4.3.1 requires.
type line struct {
	level     bool
	changedAt scheduler.Tick
}

func (l *line) set(v bool, now scheduler.Tick) {
	if v != l.level {
		l.level = v
		l.changedAt = now
	}
}

func (l *line) active(now scheduler.Tick) bool {
	return l.level && uint32(now-l.changedAt) >= 2
}

// tfmMode names which of the four TFM sub-opcodes is in flight.
type tfmMode int

const (
	tfmCopyIncInc tfmMode = iota
	tfmCopyDecDec
	tfmCopyIncConst
	tfmCopyConstInc
)

// CPU is the 6809E/6309 instruction engine.
type CPU struct {
	Reg registers.Registers
	Bus Bus

	Variant Variant

	// Ticks is the CPU's own running oscillator-tick clock, advanced by
	// every bus access and NVMA cycle. It doubles as "now" for interrupt
	// line settle-time recognition.
	Ticks scheduler.Tick

	nmi, firq, irq line
	nmiArmed       bool
	halt           bool

	state execState

	// InstructionPrehook is called with the PC of the opcode about to be
	// fetched; the breakpoint registry hangs its instruction dispatcher
	// here.
	InstructionPrehook func(pc uint16)

	// VectorPrehook is called with the vector address about to be
	// fetched from, just before the fetch.
	VectorPrehook func(vector uint16)

	// SyncPosthook is called when a pending SYNC completes.
	SyncPosthook func()

	// tfm* fields hold in-flight TFM state across the two scheduler
	// states that model it, so an interrupt taken mid-transfer leaves PC
	// pointing at the TFM instruction for RTI to resume it.
	tfmMode        tfmMode
	tfmSrc, tfmDst *uint16
	tfmLatch       uint8
	tfmReturnPC    uint16

	// instrStartPC is the PC of the instruction currently being decoded,
	// captured before its opcode byte is fetched. TFM uses it to rewind
	// PC to the instruction itself so a taken interrupt resumes the
	// transfer on return rather than skipping past it.
	instrStartPC uint16
}

// NewCPU creates a CPU wired to bus, reset-ready.
func NewCPU(bus Bus, variant Variant) *CPU {
	c := &CPU{Bus: bus, Variant: variant, state: stateReset}
	return c
}

// AssertNMI/AssertFIRQ/AssertIRQ update the corresponding interrupt
// line's level, recording the tick at which it changed so settle-time
// recognition can apply. now is the caller's (machine scheduler's) tick.
func (c *CPU) AssertNMI(level bool, now scheduler.Tick) {
	wasLow := !c.nmi.level
	c.nmi.set(level, now)
	if wasLow && level {
		c.nmiArmed = true
	}
}

func (c *CPU) AssertFIRQ(level bool, now scheduler.Tick) { c.firq.set(level, now) }
func (c *CPU) AssertIRQ(level bool, now scheduler.Tick)  { c.irq.set(level, now) }

// SetHalt updates the HALT line.
func (c *CPU) SetHalt(v bool) { c.halt = v }

func (c *CPU) nvma() {
	c.Ticks += 2
}

func (c *CPU) readByte(addr uint16) uint8 {
	v, ticks := c.Bus.ReadCycle(addr)
	c.Ticks += scheduler.Tick(ticks)
	return v
}

func (c *CPU) writeByte(addr uint16, v uint8) {
	ticks := c.Bus.WriteCycle(addr, v)
	c.Ticks += scheduler.Tick(ticks)
}

func (c *CPU) readWord(addr uint16) uint16 {
	hi := c.readByte(addr)
	lo := c.readByte(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetchByte() uint8 {
	v := c.readByte(c.Reg.PC)
	c.Reg.PC++
	return v
}

func (c *CPU) fetchWord() uint16 {
	hi := c.fetchByte()
	lo := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) pushByteS(v uint8) {
	c.Reg.S--
	c.writeByte(c.Reg.S, v)
}

func (c *CPU) pullByteS() uint8 {
	v := c.readByte(c.Reg.S)
	c.Reg.S++
	return v
}

func (c *CPU) pushWordS(v uint16) {
	c.pushByteS(uint8(v))
	c.pushByteS(uint8(v >> 8))
}

func (c *CPU) pullWordS() uint16 {
	hi := c.pullByteS()
	lo := c.pullByteS()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) pushByteU(v uint8) {
	c.Reg.U--
	c.writeByte(c.Reg.U, v)
}

func (c *CPU) pullByteU() uint8 {
	v := c.readByte(c.Reg.U)
	c.Reg.U++
	return v
}

func (c *CPU) pushWordU(v uint16) {
	c.pushByteU(uint8(v))
	c.pushByteU(uint8(v >> 8))
}

func (c *CPU) pullWordU() uint16 {
	hi := c.pullByteU()
	lo := c.pullByteU()
	return uint16(hi)<<8 | uint16(lo)
}

// pushFullFrame stacks the entire register set in the documented order
// (PC,U,Y,X,DP,B,A,CC top to bottom of the frame, CC ending on top of
// the stack) and sets the E flag, for NMI and SWI/SWI2/SWI3.
func (c *CPU) pushFullFrame() {
	c.pushWordS(c.Reg.PC)
	c.pushWordS(c.Reg.U)
	c.pushWordS(c.Reg.Y)
	c.pushWordS(c.Reg.X)
	c.pushByteS(c.Reg.DP)
	c.pushByteS(c.Reg.B)
	c.pushByteS(c.Reg.A)
	c.Reg.SetFlag(registers.FlagE, true)
	c.pushByteS(c.Reg.CC)
}

// pushPartialFrame stacks only PC and CC, clearing E, for FIRQ.
func (c *CPU) pushPartialFrame() {
	c.pushWordS(c.Reg.PC)
	c.Reg.SetFlag(registers.FlagE, false)
	c.pushByteS(c.Reg.CC)
}

func (c *CPU) pullFullFrame() {
	c.Reg.A = c.pullByteS()
	c.Reg.B = c.pullByteS()
	c.Reg.DP = c.pullByteS()
	c.Reg.X = c.pullWordS()
	c.Reg.Y = c.pullWordS()
	c.Reg.U = c.pullWordS()
	c.Reg.PC = c.pullWordS()
}

// Step executes exactly one micro-state transition of the main loop and
// returns the number of ticks it consumed.
func (c *CPU) Step() scheduler.Tick {
	before := c.Ticks
	switch c.state {
	case stateReset:
		c.Reg.DP = 0
		c.Reg.SetFlag(registers.FlagF, true)
		c.Reg.SetFlag(registers.FlagI, true)
		c.nmiArmed = false
		c.state = stateResetCheckHalt

	case stateResetCheckHalt:
		if c.halt {
			c.nvma()
			break
		}
		c.Reg.PC = c.readWord(vectorReset)
		c.nvma()
		c.state = stateLabelA

	case stateLabelA:
		if c.halt {
			c.nvma()
			break
		}
		c.state = stateLabelB

	case stateLabelB:
		if c.dispatchPending() {
			c.nvma()
			c.nvma()
			c.takeInterrupt()
			c.state = stateDispatchIRQ
			break
		}
		c.state = stateNextInstruction

	case stateDispatchIRQ:
		vector, mask, ok := c.highestPriority()
		if !ok {
			c.state = stateCWAICheckHalt
			break
		}
		c.Reg.CC |= mask
		c.nvma()
		if c.VectorPrehook != nil {
			c.VectorPrehook(vector)
		}
		c.Reg.PC = c.readWord(vector)
		c.nvma()
		c.state = stateLabelA

	case stateCWAICheckHalt:
		c.nvma()
		if !c.halt {
			c.state = stateDispatchIRQ
		}

	case stateSync:
		c.nvma()
		if c.dispatchPending() {
			c.nvma()
			c.nvma()
			if c.SyncPosthook != nil {
				c.SyncPosthook()
			}
			c.state = stateLabelB
		} else if c.halt {
			c.state = stateSyncCheckHalt
		}

	case stateSyncCheckHalt:
		c.nvma()
		if !c.halt {
			c.state = stateSync
		}

	case stateNextInstruction:
		if c.InstructionPrehook != nil {
			c.InstructionPrehook(c.Reg.PC)
		}
		c.instrStartPC = c.Reg.PC
		opcode := c.fetchByte()
		c.dispatchPage0(opcode)
		// a handler that needs a different next state (SYNC, CWAI, TFM)
		// sets c.state itself; otherwise the instruction is done and
		// interrupts are re-checked before the next fetch.
		if c.state == stateNextInstruction {
			c.state = stateLabelA
		}

	case stateTFMRead:
		c.tfmLatch = c.readByte(*c.tfmSrc)
		c.state = stateTFMWrite

	case stateTFMWrite:
		c.writeByte(*c.tfmDst, c.tfmLatch)
		switch c.tfmMode {
		case tfmCopyIncInc:
			*c.tfmSrc++
			*c.tfmDst++
		case tfmCopyDecDec:
			*c.tfmSrc--
			*c.tfmDst--
		case tfmCopyIncConst:
			*c.tfmSrc++
		case tfmCopyConstInc:
			*c.tfmDst++
		}
		c.Reg.SetW(c.Reg.W() - 1)
		if c.Reg.W() == 0 {
			c.state = stateLabelA
		} else {
			// an interrupt taken here must resume the transfer: PC is
			// left pointing at the TFM opcode itself.
			c.Reg.PC = c.tfmReturnPC
			c.state = stateLabelB
		}
	}
	return c.Ticks - before
}

// Run executes Step repeatedly until at least n ticks have been
// consumed, returning the actual number consumed (which may overshoot
// n by up to one instruction's worth of ticks).
func (c *CPU) Run(n scheduler.Tick) scheduler.Tick {
	var total scheduler.Tick
	for total < n {
		total += c.Step()
	}
	return total
}

func (c *CPU) dispatchPending() bool {
	if c.nmiArmed && c.nmi.active(c.Ticks) {
		return true
	}
	if c.firq.active(c.Ticks) && !c.Reg.Flag(registers.FlagF) {
		return true
	}
	if c.irq.active(c.Ticks) && !c.Reg.Flag(registers.FlagI) {
		return true
	}
	return false
}

// takeInterrupt pushes the appropriate stack frame for whichever
// interrupt is about to be dispatched (called once, from label_b,
// before control passes to dispatch_irq which fetches the vector).
func (c *CPU) takeInterrupt() {
	if c.nmiArmed && c.nmi.active(c.Ticks) {
		c.pushFullFrame()
		return
	}
	if c.firq.active(c.Ticks) && !c.Reg.Flag(registers.FlagF) {
		c.pushPartialFrame()
		return
	}
	c.pushFullFrame()
}

// highestPriority returns the vector address and CC mask bits for the
// highest-priority active interrupt (NMI > FIRQ > IRQ), consuming the
// NMI arm-latch if NMI is taken.
func (c *CPU) highestPriority() (vector uint16, mask uint8, ok bool) {
	if c.nmiArmed && c.nmi.active(c.Ticks) {
		c.nmiArmed = false
		return vectorNMI, registers.FlagF | registers.FlagI, true
	}
	if c.firq.active(c.Ticks) && !c.Reg.Flag(registers.FlagF) {
		return vectorFIRQ, registers.FlagF | registers.FlagI, true
	}
	if c.irq.active(c.Ticks) && !c.Reg.Flag(registers.FlagI) {
		return vectorIRQ, registers.FlagI, true
	}
	return 0, 0, false
}

// illegal handles an opcode this core does not implement: on the 6309 it
// stacks a full frame and vectors through 0xFFF0; on the 6809 it is
// treated as a no-op (documented-variant emulation for the handful of
// opcodes real silicon happens to alias is out of scope here).
func (c *CPU) illegal() {
	if c.Variant != Variant6309 {
		return
	}
	c.pushFullFrame()
	c.nvma()
	c.Reg.PC = c.readWord(vectorIllegal)
	c.nvma()
}
