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

package pia_test

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/pia"
	"github.com/dgn32/dgncore/test"
)

func TestDDRAndOutputRegisterShareAddress(t *testing.T) {
	p := pia.NewPIA()

	// CRA bit 2 clear: address 0 accesses DDRA.
	p.Write(1, 0x00)
	p.Write(0, 0x0F)
	test.ExpectEquality(t, p.A.Direction(), uint8(0x0F))

	// CRA bit 2 set: address 0 now accesses the output register.
	p.Write(1, 0x04)
	p.Write(0, 0xAA)
	test.ExpectEquality(t, p.A.Output(), uint8(0xAA))
}

func TestReadFormulaMixesPinsAndOutput(t *testing.T) {
	p := pia.NewPIA()

	p.Write(1, 0x00)
	p.Write(0, 0x0F) // low nibble output, high nibble input
	p.Write(1, 0x04)
	p.Write(0, 0x0A) // output register low nibble = 0xA

	p.A.SetPins(0xF0) // input pins (high nibble) all high

	test.ExpectEquality(t, p.Read(0), uint8(0xFA))
}

func TestC1EdgeRaisesIRQWhenEnabled(t *testing.T) {
	p := pia.NewPIA()

	var asserted bool
	p.A.IRQHook = func(a bool) { asserted = a }

	// rising edge selected, IRQ enabled.
	p.Write(1, 0x03)

	p.A.SetC1(false)
	test.ExpectEquality(t, asserted, false)

	p.A.SetC1(true)
	test.ExpectEquality(t, asserted, true)

	// reading the PDR clears the latch and drops the IRQ output.
	p.Write(1, 0x07) // select output register so address 0 reads PDR
	p.Read(0)
	test.ExpectEquality(t, asserted, false)
}

func TestC1EdgeWithoutIRQEnableDoesNotAssert(t *testing.T) {
	p := pia.NewPIA()

	var asserted bool
	p.A.IRQHook = func(a bool) { asserted = a }

	p.Write(1, 0x02) // rising edge, IRQ disabled

	p.A.SetC1(false)
	p.A.SetC1(true)
	test.ExpectEquality(t, asserted, false)

	// but the control register's status bit should still reflect the latch
	if p.Read(1)&0x80 == 0 {
		t.Errorf("expected interrupt latch bit set in control register")
	}
}

func TestWriteHookObservesOutputChanges(t *testing.T) {
	p := pia.NewPIA()

	var seen uint8
	p.B.WriteHook = func(output uint8) { seen = output }

	p.Write(3, 0x04) // select output register
	p.Write(2, 0x55)

	test.ExpectEquality(t, seen, uint8(0x55))
}
