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

// Package clocks defines the constant values that define the speed of the
// master oscillator shared by the CPU, SAM, and VDG, and the durations
// derived from it.
package clocks

// OscillatorMHz is the master crystal frequency in MHz, shared by every
// subsystem's tick counter.
const OscillatorMHz = 14.31818

// CPUClockMHz is the nominal 6809E bus rate in "slow" (non-fast-ROM) mode:
// one CPU cycle is two oscillator ticks.
const CPUClockMHz = OscillatorMHz / 16

// TicksPerCPUCycle is the number of master-oscillator ticks consumed by a
// single CPU bus cycle when the SAM is not in fast ROM mode.
const TicksPerCPUCycle = 2

// TicksPerFastCPUCycle is the number of master-oscillator ticks consumed
// by a CPU bus cycle accessing ROM while the SAM is in fast ROM mode.
const TicksPerFastCPUCycle = 1

// WD279xByteRate is the single-density floppy data rate in bytes per
// second, used to derive the oscillator-tick duration of one drive byte.
const WD279xByteRate = 31250

// WD279xByteTimeTicks is the oscillator-tick count for one drive byte at
// single-density rate, truncated to whole ticks.
const WD279xByteTimeTicks = int(OscillatorMHz*1_000_000) / WD279xByteRate
