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

// Package audio mixes the machine's sound-generating pins (the 6-bit DAC
// on PIA1 PA, the single-bit cassette/sound pin on PIA1 PB, and an
// optional Orchestra-90 cartridge's two 8-bit channels) into a PCM
// buffer flushed to a host sink on every scheduler-driven audio-flush
// event.
package audio

import "github.com/go-audio/audio"

// Sink is the interface a host audio back-end implements to receive
// flushed PCM buffers; the core never opens a device itself.
type Sink interface {
	Flush(buf *audio.IntBuffer) error
}

// SampleRate is the fixed rate this mixer renders at; resampling to a
// host device's native rate is a host concern.
const SampleRate = 44100

// Mixer accumulates pin levels into an audio.IntBuffer and flushes it to
// Sink on demand. Each input pin is a float in [0,1]; six-bit and 8-bit
// levels are pre-normalised by the caller (the PIA/cartridge hook
// wiring) before being handed to SetDAC/SetBit/SetOrchestra90.
type Mixer struct {
	Sink Sink

	format *audio.Format
	buf    []int

	dacLevel   float64
	bitLevel   float64
	orchLeft   float64
	orchRight  float64
}

// NewMixer creates a mono Mixer at SampleRate.
func NewMixer(sink Sink) *Mixer {
	return &Mixer{
		Sink:   sink,
		format: &audio.Format{NumChannels: 1, SampleRate: SampleRate},
	}
}

// SetDAC updates the 6-bit DAC pin level, normalised to [0,1].
func (m *Mixer) SetDAC(level float64) { m.dacLevel = level }

// SetBit updates the single-bit cassette/sound pin level.
func (m *Mixer) SetBit(level float64) {
	if level != 0 {
		m.bitLevel = 1
	} else {
		m.bitLevel = 0
	}
}

// SetOrchestra90 updates the two Orchestra-90 channel levels, normalised
// to [0,1]. Levels are added into the mix rather than replacing it, so
// the cartridge's output sums with the machine's own DAC/bit pins the
// way two signals tied onto the same audio bus would.
func (m *Mixer) SetOrchestra90(left, right float64) {
	m.orchLeft, m.orchRight = left, right
}

// Sample appends one rendered sample (the current mix of every input)
// to the pending buffer. Called once per scheduler tick quantum the
// machine's audio-rate divider selects.
func (m *Mixer) Sample() {
	mix := (m.dacLevel + m.bitLevel + m.orchLeft + m.orchRight) / 4
	if mix > 1 {
		mix = 1
	} else if mix < 0 {
		mix = 0
	}
	m.buf = append(m.buf, int((mix*2-1)*32767))
}

// Flush hands the accumulated samples to Sink as an audio.IntBuffer and
// resets the pending buffer. Called by the scheduler's audio-flush
// event.
func (m *Mixer) Flush() error {
	if len(m.buf) == 0 || m.Sink == nil {
		m.buf = m.buf[:0]
		return nil
	}
	ib := &audio.IntBuffer{
		Format:         m.format,
		Data:           m.buf,
		SourceBitDepth: 16,
	}
	err := m.Sink.Flush(ib)
	m.buf = m.buf[:0]
	return err
}
