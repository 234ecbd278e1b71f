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

package scheduler

// Tick is a count of master-oscillator cycles. It wraps at 2^32, which at
// 14.31818MHz is just under five minutes of emulated time; events that
// far apart never legitimately coexist in a queue, so comparisons use
// modular (signed-delta) arithmetic rather than a plain less-than.
type Tick uint32

// After reports whether t is later than other under modular arithmetic,
// i.e. whether the signed difference (t - other) is positive.
func (t Tick) After(other Tick) bool {
	return int32(t-other) > 0
}

// AtOrBefore reports whether t has been reached by now, i.e. !t.After(now).
func (t Tick) AtOrBefore(now Tick) bool {
	return !t.After(now)
}
