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

package main

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/cpu"
	"github.com/dgn32/dgncore/test"
)

func TestParseVariant(t *testing.T) {
	v, err := parseVariant("6809")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, cpu.Variant6809)

	v, err = parseVariant("6309")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, cpu.Variant6309)

	_, err = parseVariant("z80")
	test.ExpectFailure(t, err)
}
