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

package memory

// CPUBus is the address space as the CPU engine sees it: every fetch and
// store goes through Read/Write, which is expected to forward to the SAM
// for translation and tick-cost accounting.
type CPUBus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// DebuggerBus is an optional side-channel into the same address space
// that does not disturb machine state or consume ticks: Peek/Poke are
// used by breakpoint/watchpoint evaluation, disassembly, and snapshot
// save/load.
type DebuggerBus interface {
	Peek(addr uint16) uint8
	Poke(addr uint16, data uint8)
}

// Addressable is implemented by a fixed block of memory (RAM or ROM).
type Addressable interface {
	CPUBus
	DebuggerBus
	Len() int
}

// RAM is a simple byte-addressable block of read/write memory.
type RAM struct {
	data []byte
}

// NewRAM creates a RAM block of size bytes, all initially zero. Reset
// should be called to fill it with the machine's randomised power-on
// noise before first use.
func NewRAM(size int) *RAM {
	return &RAM{data: make([]byte, size)}
}

// Read implements CPUBus.
func (r *RAM) Read(addr uint16) uint8 { return r.data[int(addr)%len(r.data)] }

// Write implements CPUBus.
func (r *RAM) Write(addr uint16, data uint8) { r.data[int(addr)%len(r.data)] = data }

// Peek implements DebuggerBus.
func (r *RAM) Peek(addr uint16) uint8 { return r.Read(addr) }

// Poke implements DebuggerBus.
func (r *RAM) Poke(addr uint16, data uint8) { r.Write(addr, data) }

// Len implements Addressable.
func (r *RAM) Len() int { return len(r.data) }

// Fill sets every byte to v. Used by Reset when randomised reset state is
// disabled, and by tests that need deterministic RAM content.
func (r *RAM) Fill(v byte) {
	for i := range r.data {
		r.data[i] = v
	}
}

// ROM is a fixed, read-only block of memory. Writes are silently
// discarded, matching real ROM behaviour.
type ROM struct {
	data []byte
}

// NewROM wraps image as a ROM block.
func NewROM(image []byte) *ROM {
	data := make([]byte, len(image))
	copy(data, image)
	return &ROM{data: data}
}

// Read implements CPUBus.
func (r *ROM) Read(addr uint16) uint8 {
	if len(r.data) == 0 {
		return 0
	}
	return r.data[int(addr)%len(r.data)]
}

// Write implements CPUBus. ROM writes are no-ops.
func (r *ROM) Write(addr uint16, data uint8) {}

// Peek implements DebuggerBus.
func (r *ROM) Peek(addr uint16) uint8 { return r.Read(addr) }

// Poke implements DebuggerBus. Poking ROM is used by the debugger to
// patch a running image; real hardware cannot do this, but it is useful
// enough to support rather than reject.
func (r *ROM) Poke(addr uint16, data uint8) {
	if len(r.data) == 0 {
		return
	}
	r.data[int(addr)%len(r.data)] = data
}

// Len implements Addressable.
func (r *ROM) Len() int { return len(r.data) }
