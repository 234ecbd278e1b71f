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

// Package machine wires every leaf subsystem (scheduler, breakpoint
// registry, CPU, SAM, PIA pair, VDG, cartridge slot, keyboard, tape and
// audio mixer) into one running Dragon/CoCo machine, and owns the sole
// entry point (Run) that advances emulated time.
package machine

import (
	"github.com/dgn32/dgncore/errors"
	"github.com/dgn32/dgncore/hardware/audio"
	"github.com/dgn32/dgncore/hardware/breakpoint"
	"github.com/dgn32/dgncore/hardware/cartridge"
	"github.com/dgn32/dgncore/hardware/cpu"
	"github.com/dgn32/dgncore/hardware/instance"
	"github.com/dgn32/dgncore/hardware/keyboard"
	"github.com/dgn32/dgncore/hardware/memory"
	"github.com/dgn32/dgncore/hardware/pia"
	"github.com/dgn32/dgncore/hardware/preferences"
	"github.com/dgn32/dgncore/hardware/sam"
	"github.com/dgn32/dgncore/hardware/scheduler"
	"github.com/dgn32/dgncore/hardware/tape"
	"github.com/dgn32/dgncore/hardware/vdg"
	"github.com/dgn32/dgncore/logger"
)

// lineDurationTicks is the oscillator-tick duration of one horizontal
// scanline: close to the NTSC ~15.734kHz line rate (14.31818MHz
// oscillator / 15734Hz is approximately 910 ticks; 912 is used so the
// VDG's internal divide-by-four byte clock lands on a whole number of
// bytes per line).
const lineDurationTicks = 912

// activeVideoLines is how many of a frame's scanlines carry active
// video before FS falls; the remainder is vertical blanking.
const activeVideoLines = 242

// fsPulseLines is how many scanlines FS stays low before rising again
// at the start of vertical retrace.
const fsPulseLines = 6

// audioFlushTicks is the oscillator-tick period between mixer samples,
// chosen so sampling at this cadence yields audio.SampleRate samples per
// second of emulated time.
const audioFlushTicks = scheduler.Tick(14318180 / audio.SampleRate)

// Machine is a complete emulated Dragon/CoCo system: every subsystem
// named in spec.md §2, wired together the way the machine's own signal
// paths connect them.
type Machine struct {
	Instance *instance.Instance
	Logger   *logger.Logger

	Scheduler  *scheduler.Scheduler
	Breakpoint *breakpoint.Registry

	CPU  *cpu.CPU
	SAM  *sam.SAM
	PIA0 *pia.PIA
	PIA1 *pia.PIA
	VDG  *vdg.VDG

	RAM     *memory.RAM
	ROMLow  *memory.ROM
	ROMHigh *memory.ROM

	Cart *cartridge.Slot

	Keyboard *keyboard.Matrix
	Mixer    *audio.Mixer

	TapePlayer   *tape.Player
	TapeRecorder *tape.Recorder

	variant cpu.Variant

	hsEvent    *scheduler.Event
	audioEvent *scheduler.Event
	vdgLine    int

	columnSelect uint8
	romBankHigh  bool
}

// New creates a Machine of the given architecture, CPU variant and RAM
// size (in kilobytes, e.g. 4, 16, 32 or 64), with romLow/romHigh images already
// decoded by the caller (romHigh may be nil). ins carries the random
// source and persisted preferences; log receives device-level
// diagnostics (write-back failures, unsupported configurations).
func New(ins *instance.Instance, log *logger.Logger, arch preferences.Architecture, variant cpu.Variant, ramKB int, romLow, romHigh []byte) (*Machine, error) {
	if len(romLow) == 0 {
		return nil, errors.Errorf(errors.ConfigNoROM)
	}

	m := &Machine{
		Instance: ins,
		Logger:   log,
		variant:  variant,

		Scheduler:  scheduler.NewScheduler(),
		Breakpoint: breakpoint.NewRegistry(),

		PIA0: pia.NewPIA(),
		PIA1: pia.NewPIA(),

		RAM:      memory.NewRAM(ramKB * 1024),
		ROMLow:   memory.NewROM(romLow),
		Keyboard: keyboard.NewMatrix(),
	}
	if len(romHigh) > 0 {
		m.ROMHigh = memory.NewROM(romHigh)
	}

	m.Cart = cartridge.NewSlot(cartridge.Sinks{
		FIRQ: func(level bool) { m.CPU.AssertFIRQ(level, m.CPU.Ticks) },
		NMI:  func(level bool) { m.CPU.AssertNMI(level, m.CPU.Ticks) },
		Halt: func(level bool) { m.CPU.SetHalt(level) },
	})

	m.SAM = sam.NewSAM(m.RAM, m.ROMLow, m.ROMHigh, m.PIA0, m.PIA1, m.Cart)
	// a mid-scanline mode change is only visible at the next HS fall in
	// this core's atomic-per-row renderer, so there is no separate catch-
	// up routine to invoke here; the hook is left as a no-op.
	m.SAM.ModeChange = func() {}

	m.CPU = cpu.NewCPU(m.SAM, variant)

	m.VDG = vdg.NewVDG(m.SAM, m.PIA0)
	// Dragons shipped to the UK/European PAL market, CoCos to the US NTSC
	// one; SetPAL lets the caller override this from the TVStandard
	// preference once the machine is up.
	m.VDG.PAL = arch == preferences.ArchDragon32 || arch == preferences.ArchDragon64

	m.Mixer = audio.NewMixer(nil)

	m.wirePIAHooks()
	m.wireCPUHooks()
	m.scheduleVDG(0)
	m.scheduleAudio(0)

	m.Reset()
	return m, nil
}

// SetPAL selects NTSC or PAL scanline timing for the VDG.
func (m *Machine) SetPAL(pal bool) { m.VDG.PAL = pal }

// wirePIAHooks attaches the machine-specific observers to both PIA
// pairs: PIA0.PB drives keyboard column select, PIA0.PA read reflects
// the row lines, PIA1.PA write drives the 6-bit sound DAC, PIA1.PB
// write drives the cassette output bit (bit 1) and records the high-ROM-
// bank-select bit (bit 2) for ROMBankHigh, which the SAM's ROM decode
// does not consult, and every side's IRQ output is summed onto the CPU's
// IRQ (PIA0) or FIRQ (PIA1) lines the way the real board wires them.
func (m *Machine) wirePIAHooks() {
	var irq0A, irq0B, irq1A, irq1B bool
	m.PIA0.B.WriteHook = func(output uint8) {
		m.columnSelect = output
		m.PIA0.A.SetPins(^m.Keyboard.ReadRows(m.columnSelect))
	}
	m.PIA0.A.ReadHook = func() {
		m.PIA0.A.SetPins(^m.Keyboard.ReadRows(m.columnSelect))
	}
	m.PIA0.A.IRQHook = func(asserted bool) { irq0A = asserted; m.CPU.AssertIRQ(irq0A || irq0B, m.CPU.Ticks) }
	m.PIA0.B.IRQHook = func(asserted bool) { irq0B = asserted; m.CPU.AssertIRQ(irq0A || irq0B, m.CPU.Ticks) }

	m.PIA1.A.WriteHook = func(output uint8) {
		m.Mixer.SetDAC(float64(output&0x3F) / 63)
	}
	m.PIA1.B.WriteHook = func(output uint8) {
		cassetteOut := output&0x02 != 0
		m.Mixer.SetBit(boolToFloat(cassetteOut))
		m.romBankHigh = output&0x04 != 0
		if m.TapeRecorder != nil {
			m.TapeRecorder.SetLevel(cassetteOut, m.CPU.Ticks)
		}
	}
	m.PIA1.A.IRQHook = func(asserted bool) { irq1A = asserted; m.CPU.AssertFIRQ(irq1A || irq1B, m.CPU.Ticks) }
	m.PIA1.B.IRQHook = func(asserted bool) { irq1B = asserted; m.CPU.AssertFIRQ(irq1A || irq1B, m.CPU.Ticks) }
}

// wireCPUHooks installs the instruction-fetch breakpoint dispatcher.
func (m *Machine) wireCPUHooks() {
	m.CPU.InstructionPrehook = func(pc uint16) {
		m.Breakpoint.CheckInstruction(pc, uint8(m.SAM.Register()))
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Reset returns every subsystem to its power-on state: RAM is filled
// with the instance's randomised noise (unless RandomState prefers a
// zeroed image), the PIAs, SAM and cartridge are reset, and the CPU's
// own reset sequence is armed so the next Run fetches the reset vector.
func (m *Machine) Reset() {
	if m.Instance.Prefs.RandomState.Get() {
		for i := 0; i < m.RAM.Len(); i++ {
			m.RAM.Poke(uint16(i), byte(m.Instance.Random.NoRewind(256)))
		}
	} else {
		m.RAM.Fill(0)
	}

	m.PIA0.Reset()
	m.PIA1.Reset()
	m.SAM.SetRegister(0)
	m.Cart.Reset()

	*m.CPU = *cpu.NewCPU(m.SAM, m.variant)
	m.wireCPUHooks()
	m.vdgLine = 0
}

// AttachCartridge plugs cart into the cartridge slot, detaching any
// cartridge already present.
func (m *Machine) AttachCartridge(cart cartridge.Cartridge) {
	m.Cart.Attach(cart)
}

// AttachTape wires t as both the playback source and the recording
// sink; a machine with no cassette interface in use simply never reads
// TapePlayer/TapeRecorder.
func (m *Machine) AttachTape(t tape.Tape) {
	m.TapePlayer = tape.NewPlayer(t)
	m.TapeRecorder = tape.NewRecorder(t)
}

// scheduleVDG arms the recurring HS-fall event starting at now.
func (m *Machine) scheduleVDG(now scheduler.Tick) {
	m.hsEvent = scheduler.NewEvent(func() { m.onHorizontalSync() })
	m.Scheduler.Machine.Queue(m.hsEvent, now+lineDurationTicks)
}

// linesPerFrame returns the HS-fall count of one frame at the VDG's
// current TV standard.
func (m *Machine) linesPerFrame() int {
	if m.VDG.PAL {
		return vdg.PALLinesPerFrame
	}
	return vdg.NTSCLinesPerFrame
}

// onHorizontalSync fires on every HS fall: it drives the VDG's own
// HorizontalSync (rendering the completed line and pulsing PIA0.CA1),
// re-arms itself, and at the line counts marking the end of active
// video or the start of retrace fires FS fall/rise in turn.
func (m *Machine) onHorizontalSync() {
	m.VDG.HorizontalSync()
	now := m.CPU.Ticks
	m.Scheduler.Machine.Queue(m.hsEvent, now+lineDurationTicks)

	m.vdgLine++
	switch {
	case m.vdgLine == activeVideoLines:
		m.VDG.FrameSyncFall()
	case m.vdgLine == activeVideoLines+fsPulseLines:
		m.VDG.FrameSyncRise()
	case m.vdgLine >= m.linesPerFrame():
		m.vdgLine = 0
	}
}

// scheduleAudio arms the recurring audio-sample/flush event.
func (m *Machine) scheduleAudio(now scheduler.Tick) {
	m.audioEvent = scheduler.NewEvent(func() { m.onAudioFlush() })
	m.Scheduler.Machine.Queue(m.audioEvent, now+audioFlushTicks)
}

// onAudioFlush samples the mixer and flushes the accumulated buffer to
// its sink, and updates the cassette input line (wired to PIA1.CA1,
// matching the real board's use of that pin for cassette read) from the
// tape player, if one is attached.
func (m *Machine) onAudioFlush() {
	if m.TapePlayer != nil {
		m.PIA1.A.SetC1(m.TapePlayer.Level(m.CPU.Ticks))
	}
	m.Mixer.Sample()
	if err := m.Mixer.Flush(); err != nil {
		m.Logger.Logf(logger.Allow, "audio", "flush failed: %v", err)
	}
	m.Scheduler.Machine.Queue(m.audioEvent, m.CPU.Ticks+audioFlushTicks)
}

// Run executes the CPU until at least n ticks have elapsed, dispatching
// scheduler events as they come due, and returns early if a trap was
// signalled mid-run. It is the sole suspension point spec.md §5(a)
// names: the caller (a debug thread's governor, or a plain headless
// loop) decides how many ticks constitute one slice.
func (m *Machine) Run(n scheduler.Tick) (*breakpoint.Trap, scheduler.Tick) {
	var total scheduler.Tick
	for total < n {
		total += m.CPU.Step()
		m.Scheduler.RunQueues(m.CPU.Ticks)
		if trap := m.Breakpoint.TakeTrap(); trap != nil {
			return trap, total
		}
	}
	return nil, total
}

// RunUI drains the UI queue for the given host-supplied tick, used by a
// host main loop on its own idle cadence rather than from inside Run.
func (m *Machine) RunUI(now scheduler.Tick) {
	m.Scheduler.UI.RunQueue(now)
}

// ROMBankHigh reports the last value written to PIA1.PB bit 2, the
// Dragon 64's high-ROM-bank-select bit. The SAM does not switch ROM
// banks on it.
func (m *Machine) ROMBankHigh() bool { return m.romBankHigh }
