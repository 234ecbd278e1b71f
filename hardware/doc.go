// Package hardware is the base package for the Dragon/CoCo emulation. It
// and its sub-packages contain everything required for a headless
// emulation of the 6809/6309 CPU, SAM, VDG, PIA pair, and WD279x floppy
// subsystem.
//
// The machine.Machine type is the root of the emulation and holds
// references to every subsystem. From there the emulation is run for a
// given number of master-oscillator ticks at a time with Machine.Run,
// which returns early when a breakpoint traps.
package hardware

