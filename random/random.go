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

// Package random supplies the "noise" a real 6809/6309, PIA or SAM settles
// into on power-up before software has had a chance to initialise it.
// Real silicon powers up in an unpredictable state; some software
// (deliberately or not) depends on this, so reset does not simply zero
// everything. Tests that need reproducible behaviour set ZeroSeed.
package random

import "math/rand"

// Random is a small seeded source of reset-time noise.
type Random struct {
	// ZeroSeed forces every NoRewind call to return zero. Used by
	// regression tests that require a deterministic initial state.
	ZeroSeed bool

	src *rand.Rand
}

// NewRandom creates a Random seeded from seed. A fixed seed keeps separate
// runs of the same scenario reproducible even though the values are
// "noise" from the emulated machine's point of view.
func NewRandom(seed int64) *Random {
	return &Random{src: rand.New(rand.NewSource(seed))}
}

// NoRewind returns a pseudo-random value in [0, ceiling), consuming one
// step of the generator per value drawn (it never "rewinds" to repeat a
// prior value on request, unlike a reseedable generator). With ZeroSeed
// set, or a ceiling of zero or less, it returns 0 without drawing.
func (r *Random) NoRewind(ceiling int) int {
	if r.ZeroSeed || ceiling <= 0 {
		return 0
	}
	return r.src.Intn(ceiling)
}
