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

package tape_test

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/scheduler"
	"github.com/dgn32/dgncore/hardware/tape"
	"github.com/dgn32/dgncore/test"
)

// memTape is a Tape backed by an in-memory pulse queue for reading and a
// recorded slice for writing, standing in for a decoded CAS/WAV image.
type memTape struct {
	pulses  []tape.Pulse
	pos     int
	written []tape.Pulse
	seeks   []int64
	rewinds int
}

func (m *memTape) ReadPulse() (tape.Pulse, bool) {
	if m.pos >= len(m.pulses) {
		return tape.Pulse{}, false
	}
	p := m.pulses[m.pos]
	m.pos++
	return p, true
}

func (m *memTape) WritePulse(p tape.Pulse) { m.written = append(m.written, p) }
func (m *memTape) Seek(byteOffset int64)   { m.seeks = append(m.seeks, byteOffset) }
func (m *memTape) Rewind()                 { m.rewinds++ }

func TestPlayerHoldsLevelUntilPulseWidthElapses(t *testing.T) {
	mt := &memTape{pulses: []tape.Pulse{
		{Polarity: true, Width: 10},
		{Polarity: false, Width: 20},
	}}
	p := tape.NewPlayer(mt)

	test.ExpectEquality(t, p.Level(0), true)
	test.ExpectEquality(t, p.Level(5), true) // still within the first pulse
	test.ExpectEquality(t, p.Level(10), false) // exactly at the boundary: advances
	test.ExpectEquality(t, p.Level(25), false) // still within the second pulse
	test.ExpectEquality(t, p.Level(30), false) // exactly at the second boundary
}

func TestPlayerGoesLowOnceExhausted(t *testing.T) {
	mt := &memTape{pulses: []tape.Pulse{{Polarity: true, Width: 5}}}
	p := tape.NewPlayer(mt)

	test.ExpectEquality(t, p.Level(0), true)
	test.ExpectEquality(t, p.Level(5), false) // no further pulse: exhausted
	test.ExpectEquality(t, p.Level(100), false)
}

func TestRecorderWritesAPulsePerEdge(t *testing.T) {
	mt := &memTape{}
	r := tape.NewRecorder(mt)

	r.SetLevel(true, 0)   // establishes the initial level, no pulse yet
	r.SetLevel(true, 100) // same level: no edge, no pulse
	r.SetLevel(false, 150)
	r.SetLevel(true, 400)

	test.ExpectEquality(t, len(mt.written), 2)
	test.ExpectEquality(t, mt.written[0].Polarity, true)
	test.ExpectEquality(t, mt.written[0].Width, scheduler.Tick(150))
	test.ExpectEquality(t, mt.written[1].Polarity, false)
	test.ExpectEquality(t, mt.written[1].Width, scheduler.Tick(250))
}
