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

package snapshot

import (
	"encoding/binary"

	"github.com/dgn32/dgncore/errors"
	"github.com/dgn32/dgncore/hardware/cpu/registers"
	"github.com/dgn32/dgncore/hardware/pia"
)

// EncodeCPUState serialises the register file and the variant byte (0 =
// 6809, 1 = 6309) into a ChunkCPUState payload.
func EncodeCPUState(reg registers.Registers, variant uint8) []byte {
	buf := make([]byte, 17)
	buf[0] = variant
	buf[1] = reg.A
	buf[2] = reg.B
	buf[3] = reg.E
	buf[4] = reg.F
	buf[5] = reg.DP
	buf[6] = reg.CC
	binary.LittleEndian.PutUint16(buf[7:], reg.X)
	binary.LittleEndian.PutUint16(buf[9:], reg.Y)
	binary.LittleEndian.PutUint16(buf[11:], reg.U)
	binary.LittleEndian.PutUint16(buf[13:], reg.S)
	binary.LittleEndian.PutUint16(buf[15:], reg.PC)
	return buf
}

// DecodeCPUState is the inverse of EncodeCPUState.
func DecodeCPUState(payload []byte) (registers.Registers, uint8, error) {
	var reg registers.Registers
	if len(payload) < 17 {
		return reg, 0, errors.Errorf(errors.SnapshotError, "short CPU state chunk")
	}
	variant := payload[0]
	reg.A = payload[1]
	reg.B = payload[2]
	reg.E = payload[3]
	reg.F = payload[4]
	reg.DP = payload[5]
	reg.CC = payload[6]
	reg.X = binary.LittleEndian.Uint16(payload[7:])
	reg.Y = binary.LittleEndian.Uint16(payload[9:])
	reg.U = binary.LittleEndian.Uint16(payload[11:])
	reg.S = binary.LittleEndian.Uint16(payload[13:])
	reg.PC = binary.LittleEndian.Uint16(payload[15:])
	return reg, variant, nil
}

// EncodeSAM serialises the SAM control register.
func EncodeSAM(register uint16) []byte {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, register)
	return buf
}

// DecodeSAM is the inverse of EncodeSAM.
func DecodeSAM(payload []byte) (uint16, error) {
	if len(payload) < 2 {
		return 0, errors.Errorf(errors.SnapshotError, "short SAM chunk")
	}
	return binary.LittleEndian.Uint16(payload), nil
}

// EncodePIAPair serialises both PIAs' four sides into a ChunkPIARegs
// payload, 4 bytes per side in A0,B0,A1,B1 order (ddr, output, cr, pad).
func EncodePIAPair(pia0, pia1 *pia.PIA) []byte {
	buf := make([]byte, 0, 16)
	for _, side := range []*pia.Side{&pia0.A, &pia0.B, &pia1.A, &pia1.B} {
		buf = append(buf, side.Direction(), side.Output(), side.ControlRegister(), 0)
	}
	return buf
}

// DecodePIAPair is the inverse of EncodePIAPair.
func DecodePIAPair(payload []byte, pia0, pia1 *pia.PIA) error {
	if len(payload) < 16 {
		return errors.Errorf(errors.SnapshotError, "short PIA chunk")
	}
	sides := []*pia.Side{&pia0.A, &pia0.B, &pia1.A, &pia1.B}
	for i, side := range sides {
		off := i * 4
		side.Restore(payload[off], payload[off+1], payload[off+2])
	}
	return nil
}
