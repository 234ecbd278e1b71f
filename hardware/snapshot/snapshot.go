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

// Package snapshot implements the chunked binary snapshot format: a
// fixed magic header, a version chunk, and a closed set of further
// chunks (machine config, CPU state, PIA registers, SAM register, the
// two RAM pages, attached disk filenames). Only the CPU state, PIA
// register and SAM register chunks have payload codecs here; the machine
// config, RAM page and disk name chunks are framed and parsed but their
// payloads are left to the caller, as is reading a file on disk.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/dgn32/dgncore/errors"
)

// Magic is the literal header every snapshot file begins with.
var Magic = []byte("XRoar snapshot.\012\000")

// VersionMajor/VersionMinor are the format version this package writes.
const (
	VersionMajor = 1
	VersionMinor = 1
)

// Chunk IDs, a closed set.
const (
	ChunkVersion    uint8 = 0x00
	ChunkMachineCfg uint8 = 0x01
	ChunkCPUState   uint8 = 0x02
	ChunkPIARegs    uint8 = 0x03
	ChunkSAMReg     uint8 = 0x04
	ChunkRAMPage0   uint8 = 0x05
	ChunkRAMPage1   uint8 = 0x06
	ChunkDiskNames  uint8 = 0x07
)

// Chunk is one framed {id, size, payload} record.
type Chunk struct {
	ID      uint8
	Payload []byte
}

// WriteFile writes the magic header, a version chunk, and every chunk in
// chunks, in order, to w.
func WriteFile(w io.Writer, chunks []Chunk) error {
	if _, err := w.Write(Magic); err != nil {
		return errors.Errorf(errors.SnapshotError, err)
	}

	version := Chunk{ID: ChunkVersion, Payload: []byte{VersionMajor, byte(VersionMinor), byte(VersionMinor >> 8)}}
	for _, c := range append([]Chunk{version}, chunks...) {
		if err := writeChunk(w, c); err != nil {
			return err
		}
	}
	return nil
}

func writeChunk(w io.Writer, c Chunk) error {
	var hdr [3]byte
	hdr[0] = c.ID
	binary.LittleEndian.PutUint16(hdr[1:], uint16(len(c.Payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return errors.Errorf(errors.SnapshotError, err)
	}
	if _, err := w.Write(c.Payload); err != nil {
		return errors.Errorf(errors.SnapshotError, err)
	}
	return nil
}

// ReadFile parses a snapshot stream, returning every known chunk after
// the magic header and version chunk in the order they appear. Unknown
// chunk IDs are skipped (their size bytes discarded) rather than
// rejected, so newer snapshots remain loadable by tooling that predates
// a chunk type.
func ReadFile(r io.Reader) ([]Chunk, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, errors.Errorf(errors.SnapshotError, err)
	}
	if !bytes.Equal(magic, Magic) {
		return nil, errors.Errorf(errors.SnapshotBadHeader)
	}

	var chunks []Chunk
	for {
		var hdr [3]byte
		_, err := io.ReadFull(r, hdr[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Errorf(errors.SnapshotError, err)
		}

		id := hdr[0]
		size := binary.LittleEndian.Uint16(hdr[1:])
		payload := make([]byte, size)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, errors.Errorf(errors.SnapshotError, err)
		}

		if id == ChunkVersion || id > ChunkDiskNames {
			continue
		}
		chunks = append(chunks, Chunk{ID: id, Payload: payload})
	}

	return chunks, nil
}
