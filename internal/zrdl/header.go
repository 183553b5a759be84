package zrdl

import (
	"encoding/binary"

	"github.com/rezi-tui/rezi/internal/rezierr"
)

// Magic identifies a ZRDL container, per spec.md §6.
var Magic = [4]byte{'Z', 'R', 'D', 'L'}

// Version is the single version this implementation accepts, per the
// "Open Questions" resolution in spec.md §9: v5 only.
const Version uint16 = 5

// ContainerHeaderSize is the fixed, encoded size of Header in bytes.
const ContainerHeaderSize = 4 + 2 + 2 + 4 + 4 + 4 + 4 + 4 + 4 + 4

// Header is the ZRDL container header of spec.md §6.
type Header struct {
	Version           uint16
	Flags             uint16
	CmdCount          uint32
	CmdBytesOffset    uint32
	CmdBytesLength    uint32
	StringTableOffset uint32
	StringTableLength uint32
	BlobTableOffset   uint32
	BlobTableLength   uint32
}

func (h Header) encode() []byte {
	buf := make([]byte, ContainerHeaderSize)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint16(buf[6:8], h.Flags)
	binary.LittleEndian.PutUint32(buf[8:12], h.CmdCount)
	binary.LittleEndian.PutUint32(buf[12:16], h.CmdBytesOffset)
	binary.LittleEndian.PutUint32(buf[16:20], h.CmdBytesLength)
	binary.LittleEndian.PutUint32(buf[20:24], h.StringTableOffset)
	binary.LittleEndian.PutUint32(buf[24:28], h.StringTableLength)
	binary.LittleEndian.PutUint32(buf[28:32], h.BlobTableOffset)
	binary.LittleEndian.PutUint32(buf[32:36], h.BlobTableLength)
	return buf
}

func decodeHeader(b []byte) (Header, error) {
	if len(b) < ContainerHeaderSize {
		return Header{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: truncated header: %d bytes", len(b))
	}
	if string(b[0:4]) != string(Magic[:]) {
		return Header{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: bad magic %q", b[0:4])
	}
	h := Header{
		Version:           binary.LittleEndian.Uint16(b[4:6]),
		Flags:             binary.LittleEndian.Uint16(b[6:8]),
		CmdCount:          binary.LittleEndian.Uint32(b[8:12]),
		CmdBytesOffset:    binary.LittleEndian.Uint32(b[12:16]),
		CmdBytesLength:    binary.LittleEndian.Uint32(b[16:20]),
		StringTableOffset: binary.LittleEndian.Uint32(b[20:24]),
		StringTableLength: binary.LittleEndian.Uint32(b[24:28]),
		BlobTableOffset:   binary.LittleEndian.Uint32(b[28:32]),
		BlobTableLength:   binary.LittleEndian.Uint32(b[32:36]),
	}
	if h.Version != Version {
		return Header{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: unsupported version %d, want %d", h.Version, Version)
	}
	return h, nil
}
