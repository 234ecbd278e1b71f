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

package cartridge_test

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/cartridge"
	"github.com/dgn32/dgncore/test"
)

// mockCart counts lifecycle calls and answers reads/writes from a single
// byte so Slot's pass-through can be checked without a real cartridge.
type mockCart struct {
	attached int
	detached int
	resets   int
	value    uint8
}

func (c *mockCart) Read(addr uint16, p2 bool) uint8 { return c.value }
func (c *mockCart) Write(addr uint16, p2 bool, data uint8) { c.value = data }
func (c *mockCart) Reset()  { c.resets++ }
func (c *mockCart) Attach() { c.attached++ }
func (c *mockCart) Detach() { c.detached++ }

func TestEmptySlotReadsZeroAndIgnoresWrites(t *testing.T) {
	s := cartridge.NewSlot(cartridge.Sinks{})

	test.ExpectEquality(t, s.Attached(), false)
	test.ExpectEquality(t, s.Read(0xC000, false), uint8(0))

	s.Write(0xC000, false, 0xFF) // must not panic with no cart attached
	s.Reset()                    // likewise
}

func TestAttachDetachLifecycle(t *testing.T) {
	s := cartridge.NewSlot(cartridge.Sinks{})
	first := &mockCart{value: 0x11}

	s.Attach(first)
	test.ExpectEquality(t, s.Attached(), true)
	test.ExpectEquality(t, first.attached, 1)
	test.ExpectEquality(t, first.detached, 0)

	test.ExpectEquality(t, s.Read(0xC000, false), uint8(0x11))
	s.Write(0xC000, false, 0x22)
	test.ExpectEquality(t, first.value, uint8(0x22))

	s.Reset()
	test.ExpectEquality(t, first.resets, 1)

	second := &mockCart{value: 0x33}
	s.Attach(second)

	// attaching a new cart detaches (but does not reset) the old one
	// before attaching the new one.
	test.ExpectEquality(t, first.detached, 1)
	test.ExpectEquality(t, first.resets, 1)
	test.ExpectEquality(t, second.attached, 1)
	test.ExpectEquality(t, s.Read(0xC000, false), uint8(0x33))

	s.Detach()
	test.ExpectEquality(t, s.Attached(), false)
	test.ExpectEquality(t, second.detached, 1)
	test.ExpectEquality(t, s.Read(0xC000, false), uint8(0))
}
