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

// Package vdg implements the MC6847 Video Display Generator: scanline
// timing (HS/FS edge generation, PAL padding) and whole-scanline
// rendering. The mode inputs are latched once per HS fall, so a mode
// change made mid-scanline takes effect from the next scanline;
// byte-boundary colour fringing is not reproduced.
package vdg

import (
	"github.com/dgn32/dgncore/hardware/pia"
	"github.com/dgn32/dgncore/hardware/sam"
)

// Mode names the display mode selected by the AG/AS/INTEXT/GM inputs.
type Mode int

// Supported display modes.
const (
	ModeAlphaInternal Mode = iota
	ModeSemigraphics4
	ModeSemigraphics6
	ModeCG1
	ModeCG2
	ModeCG3
	ModeCG6
	ModeRG1
	ModeRG2
	ModeRG3
	ModeRG6
)

type modeDescriptor struct {
	bytesPerRow int
	linesPerRow int
	bitsPerPel  int // 1 for resolution graphics, 2 for colour graphics
	semigraphics bool
}

var modeTable = map[Mode]modeDescriptor{
	ModeAlphaInternal:  {bytesPerRow: 32, linesPerRow: 12, bitsPerPel: 0},
	ModeSemigraphics4:  {bytesPerRow: 32, linesPerRow: 12, bitsPerPel: 0, semigraphics: true},
	ModeSemigraphics6:  {bytesPerRow: 32, linesPerRow: 8, bitsPerPel: 0, semigraphics: true},
	ModeCG1:            {bytesPerRow: 16, linesPerRow: 3, bitsPerPel: 2},
	ModeCG2:            {bytesPerRow: 32, linesPerRow: 2, bitsPerPel: 2},
	ModeCG3:            {bytesPerRow: 32, linesPerRow: 1, bitsPerPel: 2},
	ModeCG6:            {bytesPerRow: 64, linesPerRow: 1, bitsPerPel: 2},
	ModeRG1:            {bytesPerRow: 16, linesPerRow: 3, bitsPerPel: 1},
	ModeRG2:            {bytesPerRow: 32, linesPerRow: 2, bitsPerPel: 1},
	ModeRG3:            {bytesPerRow: 32, linesPerRow: 1, bitsPerPel: 1},
	ModeRG6:            {bytesPerRow: 64, linesPerRow: 1, bitsPerPel: 1},
}

// ModeInputs is the set of pin states that select the display mode.
// HorizontalSync latches them once per scanline; there is no byte-level
// latch pipeline.
type ModeInputs struct {
	AG     bool // graphics (true) vs alphanumeric/semigraphics (false)
	AS     bool // semigraphics select when !AG
	IntExt bool // internal (true) vs external character set
	GM     uint8
	CSS    bool
}

func (m ModeInputs) resolve() Mode {
	if !m.AG {
		if m.AS {
			return ModeSemigraphics4
		}
		return ModeAlphaInternal
	}
	switch m.GM {
	case 0:
		return ModeCG1
	case 1:
		return ModeCG2
	case 2, 3:
		return ModeCG3
	case 4:
		return ModeRG6
	case 5:
		return ModeRG1
	case 6:
		return ModeRG2
	default:
		return ModeRG3
	}
}

// Scanline timing, in HS falling edges per frame.
const (
	NTSCLinesPerFrame = 262
	// PALPaddingLines is resolved to 50 (not the commonly quoted 49) so
	// that PALLinesPerFrame lands on the 312 HS falls a PAL frame must
	// deliver.
	PALPaddingLines  = 50
	PALLinesPerFrame = NTSCLinesPerFrame + PALPaddingLines
)

// VDG renders scanlines on demand, driven by HS/FS events on the machine
// scheduler.
type VDG struct {
	SAM  *sam.SAM
	PIA0 *pia.PIA

	// RenderScanline is called once per HS fall with the rendered
	// colour-index buffer for the line just completed, unless frame
	// skipping is active.
	RenderScanline func(buf []Colour)

	// VSync is called once per frame, at FS fall, regardless of frame
	// skipping.
	VSync func()

	Variant Variant
	PAL     bool

	// FrameSkip, when > 0, causes RenderScanline to be suppressed for
	// that many scanlines out of every frame-skip+1.
	FrameSkip int

	inputs      ModeInputs
	latched     ModeInputs
	line        int
	frameCount  int
	InvertHS    bool // CoCo models invert HS before it reaches the PIA
	hsLevel     bool
	lastBuf     []Colour
}

// NewVDG creates a VDG wired to sam and pia0 (whose CA1/CB1 receive the
// HS/FS edges).
func NewVDG(s *sam.SAM, pia0 *pia.PIA) *VDG {
	return &VDG{SAM: s, PIA0: pia0}
}

// SetModeInputs updates the live mode-input pins. The change is not
// visible to rendering until the next HS fall latches it.
func (v *VDG) SetModeInputs(m ModeInputs) {
	v.inputs = m
}

// linesPerFrame returns the number of HS falls in one frame, including
// PAL padding if enabled.
func (v *VDG) linesPerFrame() int {
	if v.PAL {
		return PALLinesPerFrame
	}
	return NTSCLinesPerFrame
}

// HorizontalSync is called by the scheduler at every HS fall. It
// latches the mode inputs, renders the completed scanline, advances the
// SAM's VDG row pointer, and pulses the PIA0 CA1 line (inverted when
// InvertHS is set, as on CoCo).
func (v *VDG) HorizontalSync() {
	v.latched = v.inputs

	desc := modeTable[v.latched.resolve()]
	if desc.bytesPerRow == 0 {
		desc = modeTable[ModeAlphaInternal]
	}

	buf := v.render(v.latched.resolve(), desc)
	v.SAM.VDGHorizontalSync(uint16(desc.bytesPerRow))

	skip := v.FrameSkip > 0 && (v.line%(v.FrameSkip+1) != 0)
	if !skip && v.RenderScanline != nil {
		v.RenderScanline(buf)
	}

	// HS is wired to PIA0.CA1; CoCo models invert it first. Each call
	// drives the pin to its idle level and then to its active level, so
	// every call delivers one HS fall (a rise, when inverted) to the PIA;
	// the return to idle happens at the start of the next call.
	level := false
	if v.InvertHS {
		level = !level
	}
	v.PIA0.A.SetC1(!level)
	v.PIA0.A.SetC1(level)
	v.hsLevel = level

	v.line++
	if v.line >= v.linesPerFrame() {
		v.line = 0
	}
}

// FrameSyncFall is called by the scheduler at the end of active video:
// it resets the SAM's VDG frame base, fires VSync, and pulls PIA0.CB1
// low.
func (v *VDG) FrameSyncFall() {
	v.SAM.VDGFrameSync()
	v.frameCount++
	if v.VSync != nil {
		v.VSync()
	}
	v.PIA0.B.SetC1(false)
}

// FrameSyncRise is called by the scheduler at the start of vertical
// retrace and brings PIA0.CB1 back high.
func (v *VDG) FrameSyncRise() {
	v.PIA0.B.SetC1(true)
}

func (v *VDG) render(mode Mode, desc modeDescriptor) []Colour {
	data := v.SAM.VDGFetch(desc.bytesPerRow)
	out := make([]Colour, 0, 256)

	pixelsPerByte := 1
	switch desc.bitsPerPel {
	case 1:
		pixelsPerByte = 8
	case 2:
		pixelsPerByte = 4
	}

	for _, b := range data {
		switch {
		case desc.semigraphics:
			fg := Semigraphics4Colour(b >> 4)
			for i := 0; i < 4; i++ {
				out = append(out, fg)
			}
		case mode == ModeAlphaInternal:
			// glyph rasterisation is a host text-rendering concern; the
			// core emits one colour per character cell (the foreground
			// colour for a normal character, the background colour when
			// its inverse attribute bit is set), matching the colour-index contract of
			// render_scanline without embedding a character ROM.
			fg, bg := Green, Black
			if b&0x40 != 0 {
				fg, bg = bg, fg
			}
			_ = bg
			out = append(out, fg)
		case desc.bitsPerPel == 2:
			for shift := 6; shift >= 0; shift -= 2 {
				out = append(out, GraphicsColour((b>>shift)&0x3, v.latched.CSS))
			}
		case desc.bitsPerPel == 1:
			on := GraphicsColour(0, v.latched.CSS)
			off := Black
			for bit := 7; bit >= 0; bit-- {
				if b&(1<<bit) != 0 {
					out = append(out, on)
				} else {
					out = append(out, off)
				}
			}
		default:
			out = append(out, Black)
		}
		_ = pixelsPerByte
	}

	v.lastBuf = out
	return out
}
