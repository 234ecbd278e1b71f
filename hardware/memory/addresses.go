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

// Package memory defines the address-space layout shared by the SAM,
// PIA pair, and cartridge port, and the small bus interfaces the CPU
// engine uses to read and write it.
package memory

// Address-space regions, as decoded by the SAM. See hardware/sam for the
// decoder itself; these constants are shared with the cartridge package
// so cart mappers can recognise their own I/O window.
const (
	RAMBank0Start = 0x0000
	RAMBank0End   = 0x7FFF

	RAMBank1OrROMStart = 0x8000
	RAMBank1OrROMEnd   = 0xFEFF

	// ROM space is split into a 16K low half at 0x8000-0xBFFF (BASIC and
	// Extended BASIC, 8K each) and a high half at 0xC000-0xFEFF (on
	// Dragon 64, an alternate high ROM).
	ROMLowStart = 0x8000
	ROMLowEnd   = 0xBFFF
	ROMHighStart = 0xC000
	ROMHighEnd   = 0xFEFF

	PIA0Start = 0xFF00
	PIA0End   = 0xFF1F

	PIA1Start = 0xFF20
	PIA1End   = 0xFF3F

	// CartridgeIOStart..End is addressed with the SAM's P2 line low.
	CartridgeIOStart = 0xFF40
	CartridgeIOEnd   = 0xFF7F

	SAMControlStart = 0xFFC0
	SAMControlEnd   = 0xFFDF

	VectorsStart = 0xFFE0
	VectorsEnd   = 0xFFFF

	// CartridgeROMStart..End is addressed with the SAM's P2 line high.
	CartridgeROMStart = 0xC000
	CartridgeROMEnd   = 0xFEFF

	ResetVectorAddress = 0xFFFE
)
