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

package breakpoint

import "hash/crc32"

// ROMCRC computes the CRC-32 of a ROM image, for gating a breakpoint (or
// a snapshot/config warning) to a specific, known ROM revision. Mapping
// a CRC to a human-readable ROM name is the out-of-scope ROM-list
// lookup collaborator; this helper only ever produces the value a
// caller compares against its own named set.
func ROMCRC(image []byte) uint32 {
	return crc32.ChecksumIEEE(image)
}

// MatchesAny reports whether crc equals any value in known.
func MatchesAny(crc uint32, known []uint32) bool {
	for _, k := range known {
		if k == crc {
			return true
		}
	}
	return false
}
