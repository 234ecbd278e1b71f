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

// Package breakpoint implements the instruction and watch-read/write
// breakpoint lists the debug thread installs against, gated by the SAM's
// currently active ROM-page/map-type condition bits so that a breakpoint
// can be scoped to, say, "only while BASIC ROM is mapped in".
package breakpoint

import "github.com/dgn32/dgncore/errors"

// Point is one registered breakpoint: a single address or an inclusive
// address range, gated by a SAM condition mask/value pair.
type Point struct {
	Address    uint16
	AddressEnd uint16 // equal to Address for a single-address point

	// Mask/Cond gate the point against the caller-supplied SAM condition
	// bits: the point only fires when (samBits & Mask) == Cond. A zero
	// Mask matches unconditionally.
	Mask uint8
	Cond uint8

	// Handler is called when the point fires. It may add or remove
	// points from the registry it belongs to, including the point
	// currently firing.
	Handler func()

	next *Point
}

// list is a singly linked list of Points, iterated defensively: the
// "next" pointer is cached before Handler runs so a handler that removes
// the current point (or the list head) does not corrupt iteration.
type list struct {
	head *Point
}

func (l *list) add(p *Point) {
	p.next = l.head
	l.head = p
}

func (l *list) remove(p *Point) {
	if l.head == p {
		l.head = p.next
		p.next = nil
		return
	}
	for entry := l.head; entry != nil; entry = entry.next {
		if entry.next == p {
			entry.next = p.next
			p.next = nil
			return
		}
	}
}

// dispatch walks a snapshot of l's head, testing each point against addr
// and samBits, invoking matching handlers. Iteration uses a next pointer
// cached before each handler call.
func (l *list) dispatch(addr uint16, samBits uint8) {
	entry := l.head
	for entry != nil {
		next := entry.next
		if addr >= entry.Address && addr <= entry.AddressEnd && entry.Mask&samBits == entry.Cond {
			entry.Handler()
		}
		entry = next
	}
}

// Registry holds the three breakpoint lists the dispatcher checks:
// instruction fetch, memory read, memory write.
type Registry struct {
	instruction list
	watchRead   list
	watchWrite  list

	// pending holds a trap signalled by a handler mid-dispatch, until
	// the caller collects it with TakeTrap.
	pending *Trap
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// AddInstruction registers an instruction-fetch breakpoint.
func (r *Registry) AddInstruction(p *Point) { r.instruction.add(p) }

// AddWatchRead registers a memory-read watchpoint.
func (r *Registry) AddWatchRead(p *Point) { r.watchRead.add(p) }

// AddWatchWrite registers a memory-write watchpoint.
func (r *Registry) AddWatchWrite(p *Point) { r.watchWrite.add(p) }

// RemoveInstruction deregisters an instruction-fetch breakpoint.
func (r *Registry) RemoveInstruction(p *Point) { r.instruction.remove(p) }

// RemoveWatchRead deregisters a memory-read watchpoint.
func (r *Registry) RemoveWatchRead(p *Point) { r.watchRead.remove(p) }

// RemoveWatchWrite deregisters a memory-write watchpoint.
func (r *Registry) RemoveWatchWrite(p *Point) { r.watchWrite.remove(p) }

// CheckInstruction is called by the CPU engine's InstructionPrehook on
// every fetch, with the currently active SAM condition bits.
func (r *Registry) CheckInstruction(addr uint16, samBits uint8) {
	r.instruction.dispatch(addr, samBits)
}

// CheckWatchRead is called on every memory read.
func (r *Registry) CheckWatchRead(addr uint16, samBits uint8) {
	r.watchRead.dispatch(addr, samBits)
}

// CheckWatchWrite is called on every memory write.
func (r *Registry) CheckWatchWrite(addr uint16, samBits uint8) {
	r.watchWrite.dispatch(addr, samBits)
}

// Trap is the sentinel error a Handler returns control to machine.Run
// with, by calling Signal rather than returning a value directly: the
// registry has no return channel of its own, so a handler that wants to
// stop emulation stores a Trap on the Registry for Run to observe after
// Step returns.
type Trap struct {
	Reason string
}

// Error implements the error interface.
func (t *Trap) Error() string {
	return errors.Errorf(errors.BreakpointError, t.Reason).Error()
}

// Signal records a pending Trap for machine.Run to observe and surface
// after the current Step completes.
func (r *Registry) Signal(reason string) {
	r.pending = &Trap{Reason: reason}
}

// TakeTrap returns and clears any pending trap.
func (r *Registry) TakeTrap() *Trap {
	t := r.pending
	r.pending = nil
	return t
}
