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

package errors

// error messages, grouped by the subsystem that raises them. every format
// string is suitable for errors.Errorf().
const (
	// cpu
	UnimplementedInstruction = "cpu error: unimplemented instruction (%#02x) at (%#04x)"
	IllegalInstructionTrap   = "cpu error: illegal instruction trap (%#02x) at (%#04x)"
	InvalidDuringExecution   = "cpu error: invalid operation mid-instruction (%v)"

	// memory / SAM
	UnreadableAddress = "memory error: unreadable address (%#04x)"
	UnwritableAddress = "memory error: unwritable address (%#04x)"
	UnpokeableAddress = "memory error: cannot poke address (%#04x)"

	// cartridges
	CartridgeError       = "cartridge error: %v"
	CartridgeEjected     = "cartridge error: no cartridge attached"
	CartridgeFileError   = "cartridge error: %v"
	CartridgeUnsupported = "cartridge error: unsupported cartridge type (%v)"

	// floppy / drive
	DriveNotReady     = "drive error: drive %d not ready"
	DriveWriteProtect = "drive error: disk in drive %d is write protected"
	DriveWriteBack    = "drive error: could not write back disk in drive %d: %v"
	DiskImageError    = "disk image error: %v"

	// tape
	TapeError = "tape error: %v"

	// breakpoints
	BreakpointError = "breakpoint error: %v"

	// snapshot
	SnapshotError        = "snapshot error: %v"
	SnapshotBadHeader     = "snapshot error: not a snapshot file"
	SnapshotUnknownChunk  = "snapshot error: unknown chunk id (%#02x), skipping"

	// configuration
	ConfigError        = "configuration error: %v"
	ConfigNoROM        = "configuration error: no viable ROM configuration"
	ConfigUnknownROM    = "configuration error: unknown ROM (%v)"

	// prefs
	Prefs         = "prefs: %v"
	PrefsNoFile   = "prefs: no file (%s)"
	PrefsNotValid = "prefs: not a valid prefs file (%s)"
)
