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

package vdg_test

import (
	"testing"

	"github.com/dgn32/dgncore/hardware/memory"
	"github.com/dgn32/dgncore/hardware/pia"
	"github.com/dgn32/dgncore/hardware/sam"
	"github.com/dgn32/dgncore/hardware/vdg"
	"github.com/dgn32/dgncore/test"
)

func newVDG(pal bool) (*vdg.VDG, *pia.PIA) {
	ram := memory.NewRAM(65536)
	pia0 := pia.NewPIA()
	pia1 := pia.NewPIA()
	s := sam.NewSAM(ram, memory.NewROM(make([]byte, 0x4000)), nil, pia0, pia1, nil)
	v := vdg.NewVDG(s, pia0)
	v.PAL = pal
	return v, pia0
}

func TestPALFrameLineCount(t *testing.T) {
	// a PAL frame delivers 312 HS falls: 262 NTSC lines plus padding.
	test.ExpectEquality(t, vdg.PALLinesPerFrame, 312)
}

func TestNTSCFrameLineCount(t *testing.T) {
	test.ExpectEquality(t, vdg.NTSCLinesPerFrame, 262)
}

func TestHorizontalSyncRendersEveryLine(t *testing.T) {
	v, _ := newVDG(false)

	var rendered int
	v.RenderScanline = func(buf []vdg.Colour) {
		rendered++
		if len(buf) == 0 {
			t.Errorf("expected a non-empty scanline buffer")
		}
	}

	for i := 0; i < vdg.NTSCLinesPerFrame; i++ {
		v.HorizontalSync()
	}

	test.ExpectEquality(t, rendered, vdg.NTSCLinesPerFrame)
}

func TestFrameSkipSuppressesRendering(t *testing.T) {
	v, _ := newVDG(false)
	v.FrameSkip = 1 // render every other line

	var rendered int
	v.RenderScanline = func(buf []vdg.Colour) { rendered++ }

	for i := 0; i < 10; i++ {
		v.HorizontalSync()
	}

	test.ExpectEquality(t, rendered, 5)
}

func TestFrameSyncFallFiresVSync(t *testing.T) {
	v, _ := newVDG(false)

	fired := false
	v.VSync = func() { fired = true }

	v.FrameSyncFall()
	test.ExpectEquality(t, fired, true)
}

func TestFrameSyncRiseDoesNotRefireVSync(t *testing.T) {
	v, _ := newVDG(false)

	var count int
	v.VSync = func() { count++ }

	v.FrameSyncFall()
	v.FrameSyncRise()
	test.ExpectEquality(t, count, 1)
}
