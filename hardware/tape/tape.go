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

// Package tape implements the cassette interface: a lazy sequence of
// signed (polarity, width) pulses read from or written to an abstract
// tape image. Pulses pass through unchanged: there is no layer that
// reconstructs bytes from noisy pulses or re-emits cleaned ones. Decoding a
// particular cassette file format (CAS/WAV/ASC) is an out-of-scope host
// collaborator; this package only consumes and produces pulses.
package tape

import "github.com/dgn32/dgncore/hardware/scheduler"

// Pulse is one edge-to-edge tape signal segment: Polarity is the level
// the pulse transitions to, Width is its duration in oscillator ticks.
type Pulse struct {
	Polarity bool
	Width    scheduler.Tick
}

// Tape is the abstract handle the core reads pulses from and writes
// pulses to. An external collaborator backs it with a decoded CAS/WAV/
// ASC image; this package never opens a file itself.
type Tape interface {
	ReadPulse() (Pulse, bool)
	WritePulse(p Pulse)
	Seek(byteOffset int64)
	Rewind()
}

// Player drives a Tape for playback: it tracks the oscillator tick the
// current pulse started at and presents the instantaneous line level to
// the machine's cassette-input pin.
type Player struct {
	Tape Tape

	current      Pulse
	currentValid bool
	pulseStart   scheduler.Tick
}

// NewPlayer creates a Player over t, not yet primed with a pulse.
func NewPlayer(t Tape) *Player {
	return &Player{Tape: t}
}

// Level returns the cassette-input pin level at tick now, advancing to
// the next pulse if the current one has elapsed. It returns false (and
// leaves the line low) once the tape is exhausted.
func (p *Player) Level(now scheduler.Tick) bool {
	for !p.currentValid || now-p.pulseStart >= p.current.Width {
		next, ok := p.Tape.ReadPulse()
		if !ok {
			p.currentValid = false
			return false
		}
		p.pulseStart += p.current.Width
		if !p.currentValid {
			p.pulseStart = now
		}
		p.current = next
		p.currentValid = true
	}
	return p.current.Polarity
}

// Recorder drives a Tape for recording: it accumulates the cassette-
// output pin's level changes into pulses and writes each completed pulse
// to the underlying Tape.
type Recorder struct {
	Tape Tape

	level      bool
	haveLevel  bool
	edgeAt     scheduler.Tick
}

// NewRecorder creates a Recorder over t.
func NewRecorder(t Tape) *Recorder {
	return &Recorder{Tape: t}
}

// SetLevel records a cassette-output pin transition at tick now. If the
// new level differs from the currently tracked one, the just-completed
// pulse is written out.
func (r *Recorder) SetLevel(level bool, now scheduler.Tick) {
	if !r.haveLevel {
		r.level = level
		r.haveLevel = true
		r.edgeAt = now
		return
	}
	if level == r.level {
		return
	}
	r.Tape.WritePulse(Pulse{Polarity: r.level, Width: now - r.edgeAt})
	r.level = level
	r.edgeAt = now
}
