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

package cartridge

// Orchestra90 is the stereo sound cartridge: two independent 8-bit
// sample sinks, one per channel, both writable through the same
// cart-I/O byte at adjacent addresses.
type Orchestra90 struct {
	// Left and Right are called with the newly latched sample whenever
	// the corresponding channel register is written. Either may be nil.
	Left  func(sample uint8)
	Right func(sample uint8)

	left, right uint8
}

// NewOrchestra90 creates an Orchestra-90 cartridge with both channel
// sinks unset; set Left/Right before Attach to receive samples.
func NewOrchestra90() *Orchestra90 {
	return &Orchestra90{}
}

// Read implements Cartridge: the two channel registers read back the
// last latched sample.
func (o *Orchestra90) Read(addr uint16, p2 bool) uint8 {
	if p2 {
		return 0
	}
	if addr&1 == 0 {
		return o.left
	}
	return o.right
}

// Write implements Cartridge: even addresses latch the left channel,
// odd addresses the right channel.
func (o *Orchestra90) Write(addr uint16, p2 bool, data uint8) {
	if p2 {
		return
	}
	if addr&1 == 0 {
		o.left = data
		if o.Left != nil {
			o.Left(data)
		}
		return
	}
	o.right = data
	if o.Right != nil {
		o.Right(data)
	}
}

// Reset implements Cartridge.
func (o *Orchestra90) Reset() {
	o.left, o.right = 0, 0
}

// Attach implements Cartridge.
func (o *Orchestra90) Attach() {}

// Detach implements Cartridge.
func (o *Orchestra90) Detach() {}
