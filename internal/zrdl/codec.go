package zrdl

import (
	"encoding/binary"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/rezi-tui/rezi/internal/rezierr"
)

// Document is a fully decoded drawlist: the command sequence plus its
// string and blob interning tables, per spec.md §3's Drawlist invariant.
type Document struct {
	Commands []Command
	Strings  []Entry
	Blobs    []Entry
}

// Encode serializes doc into a ZRDL v5 byte stream. Encoders validate
// alignment and known opcode ranges per spec.md §4.2; Encode never
// produces an unaligned or unknown-opcode stream since it only accepts
// already-typed Command values.
func Encode(doc Document) ([]byte, error) {
	cmdBytes, err := encodeCommands(doc.Commands)
	if err != nil {
		return nil, err
	}
	strTable := encodeTable(doc.Strings)
	blobTable := encodeTable(doc.Blobs)

	h := Header{
		Version:           Version,
		CmdCount:          uint32(len(doc.Commands)),
		CmdBytesOffset:    ContainerHeaderSize,
		CmdBytesLength:    uint32(len(cmdBytes)),
		StringTableOffset: ContainerHeaderSize + uint32(len(cmdBytes)),
		StringTableLength: uint32(len(strTable)),
		BlobTableOffset:   ContainerHeaderSize + uint32(len(cmdBytes)) + uint32(len(strTable)),
		BlobTableLength:   uint32(len(blobTable)),
	}

	out := make([]byte, 0, ContainerHeaderSize+len(cmdBytes)+len(strTable)+len(blobTable))
	out = append(out, h.encode()...)
	out = append(out, cmdBytes...)
	out = append(out, strTable...)
	out = append(out, blobTable...)
	return out, nil
}

// Decode parses a ZRDL byte stream. Unknown opcodes, truncated payloads,
// and bad magic are reported as rezierr.ProtocolDecode errors, per
// spec.md §4.2/§7. decode(encode(cmds)) == cmds for every well-formed
// drawlist (§8 round-trip property).
func Decode(b []byte) (Document, error) {
	h, err := decodeHeader(b)
	if err != nil {
		return Document{}, err
	}

	cmdEnd := int(h.CmdBytesOffset) + int(h.CmdBytesLength)
	if cmdEnd > len(b) {
		return Document{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: command section overruns buffer")
	}
	cmds, err := decodeCommands(b[h.CmdBytesOffset:cmdEnd])
	if err != nil {
		return Document{}, err
	}

	strEnd := int(h.StringTableOffset) + int(h.StringTableLength)
	if strEnd > len(b) {
		return Document{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: string table overruns buffer")
	}
	strings, err := decodeTable(b[h.StringTableOffset:strEnd])
	if err != nil {
		return Document{}, err
	}

	blobEnd := int(h.BlobTableOffset) + int(h.BlobTableLength)
	if blobEnd > len(b) {
		return Document{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: blob table overruns buffer")
	}
	blobs, err := decodeTable(b[h.BlobTableOffset:blobEnd])
	if err != nil {
		return Document{}, err
	}

	return Document{Commands: cmds, Strings: strings, Blobs: blobs}, nil
}

const cmdHeaderSize = 8

func encodeCommands(cmds []Command) ([]byte, error) {
	var out []byte
	for _, c := range cmds {
		payload, err := encodePayload(c)
		if err != nil {
			return nil, err
		}
		total := cmdHeaderSize + len(payload)
		hdr := make([]byte, cmdHeaderSize)
		binary.LittleEndian.PutUint16(hdr[0:2], uint16(c.Op))
		binary.LittleEndian.PutUint16(hdr[2:4], 0)
		binary.LittleEndian.PutUint32(hdr[4:8], uint32(total))
		out = append(out, hdr...)
		out = append(out, payload...)
	}
	return out, nil
}

func decodeCommands(b []byte) ([]Command, error) {
	var cmds []Command
	off := 0
	for off < len(b) {
		if off+cmdHeaderSize > len(b) {
			return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: truncated command header")
		}
		op := Opcode(binary.LittleEndian.Uint16(b[off : off+2]))
		length := binary.LittleEndian.Uint32(b[off+4 : off+8])
		if !op.Valid() {
			return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: unknown opcode %d", op)
		}
		if length < cmdHeaderSize || off+int(length) > len(b) {
			return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: command length %d out of range at offset %d", length, off)
		}
		if length%4 != 0 {
			return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: command length %d not 4-byte aligned", length)
		}
		payload := b[off+cmdHeaderSize : off+int(length)]
		cmd, err := decodePayload(op, payload)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
		off += int(length)
	}
	return cmds, nil
}

func encodePayload(c Command) ([]byte, error) {
	switch c.Op {
	case OpClear, OpPopClip:
		return nil, nil
	case OpFillRect:
		buf := make([]byte, 16+styleSize)
		putI32s(buf, c.X, c.Y, c.W, c.H)
		encodeStyle(buf[16:], c.Style, c.LinkStringRef)
		return buf, nil
	case OpDrawText:
		buf := make([]byte, 8+12+styleSize)
		putI32s(buf[0:8], c.X, c.Y)
		binary.LittleEndian.PutUint32(buf[8:12], c.StringRef.Index)
		binary.LittleEndian.PutUint32(buf[12:16], c.StringRef.ByteOff)
		binary.LittleEndian.PutUint32(buf[16:20], c.StringRef.ByteLen)
		encodeStyle(buf[20:], c.Style, c.LinkStringRef)
		return buf, nil
	case OpDrawTextRun:
		buf := make([]byte, 12)
		putI32s(buf[0:8], c.X, c.Y)
		binary.LittleEndian.PutUint32(buf[8:12], c.BlobRef)
		return buf, nil
	case OpPushClip:
		buf := make([]byte, 16)
		putI32s(buf, int32(c.ClipRect.X), int32(c.ClipRect.Y), int32(c.ClipRect.W), int32(c.ClipRect.H))
		return buf, nil
	case OpSetCursor:
		buf := make([]byte, 12)
		putI32s(buf[0:8], c.X, c.Y)
		buf[8] = c.CursorShape
		buf[9] = boolByte(c.CursorVisible)
		buf[10] = boolByte(c.CursorBlink)
		return buf, nil
	case OpDrawCanvas:
		buf := make([]byte, 32)
		putI32s(buf[0:24], c.X, c.Y, c.W, c.H, c.PxW, c.PxH)
		binary.LittleEndian.PutUint32(buf[24:28], c.BlobRef)
		buf[28] = byte(c.Blitter)
		return buf, nil
	case OpDrawImage:
		buf := make([]byte, 44)
		putI32s(buf[0:24], c.X, c.Y, c.W, c.H, c.PxW, c.PxH)
		binary.LittleEndian.PutUint32(buf[24:28], c.BlobRef)
		binary.LittleEndian.PutUint32(buf[28:32], c.ImageID)
		buf[32] = byte(c.ImageFormat)
		buf[33] = byte(c.ImageProtocol)
		binary.LittleEndian.PutUint32(buf[36:40], uint32(c.ZLayer))
		buf[40] = byte(c.Fit)
		return buf, nil
	case OpDefString, OpFreeString, OpDefBlob, OpFreeBlob:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, c.TableIndex)
		return buf, nil
	default:
		return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: cannot encode unknown opcode %d", c.Op)
	}
}

func decodePayload(op Opcode, b []byte) (Command, error) {
	need := func(n int) error {
		if len(b) < n {
			return rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: %s payload too short: %d < %d", op, len(b), n)
		}
		return nil
	}
	switch op {
	case OpClear:
		return Command{Op: op}, nil
	case OpPopClip:
		return Command{Op: op}, nil
	case OpFillRect:
		if err := need(16 + styleSize); err != nil {
			return Command{}, err
		}
		style, link := decodeStyle(b[16:])
		return Command{Op: op, X: i32(b, 0), Y: i32(b, 4), W: i32(b, 8), H: i32(b, 12), Style: style, LinkStringRef: link}, nil
	case OpDrawText:
		if err := need(20 + styleSize); err != nil {
			return Command{}, err
		}
		style, link := decodeStyle(b[20:])
		return Command{
			Op: op, X: i32(b, 0), Y: i32(b, 4),
			StringRef: StringRef{
				Index:   binary.LittleEndian.Uint32(b[8:12]),
				ByteOff: binary.LittleEndian.Uint32(b[12:16]),
				ByteLen: binary.LittleEndian.Uint32(b[16:20]),
			},
			Style: style, LinkStringRef: link,
		}, nil
	case OpDrawTextRun:
		if err := need(12); err != nil {
			return Command{}, err
		}
		return Command{Op: op, X: i32(b, 0), Y: i32(b, 4), BlobRef: binary.LittleEndian.Uint32(b[8:12])}, nil
	case OpPushClip:
		if err := need(16); err != nil {
			return Command{}, err
		}
		return Command{Op: op, ClipRect: geom.Rect{X: int(i32(b, 0)), Y: int(i32(b, 4)), W: int(i32(b, 8)), H: int(i32(b, 12))}}, nil
	case OpSetCursor:
		if err := need(12); err != nil {
			return Command{}, err
		}
		return Command{Op: op, X: i32(b, 0), Y: i32(b, 4), CursorShape: b[8], CursorVisible: b[9] != 0, CursorBlink: b[10] != 0}, nil
	case OpDrawCanvas:
		if err := need(32); err != nil {
			return Command{}, err
		}
		return Command{
			Op: op, X: i32(b, 0), Y: i32(b, 4), W: i32(b, 8), H: i32(b, 12), PxW: i32(b, 16), PxH: i32(b, 20),
			BlobRef: binary.LittleEndian.Uint32(b[24:28]), Blitter: BlitterCode(b[28]),
		}, nil
	case OpDrawImage:
		if err := need(44); err != nil {
			return Command{}, err
		}
		return Command{
			Op: op, X: i32(b, 0), Y: i32(b, 4), W: i32(b, 8), H: i32(b, 12), PxW: i32(b, 16), PxH: i32(b, 20),
			BlobRef: binary.LittleEndian.Uint32(b[24:28]), ImageID: binary.LittleEndian.Uint32(b[28:32]),
			ImageFormat: ImageFormatCode(b[32]), ImageProtocol: ImageProtocolCode(b[33]),
			ZLayer: int32(binary.LittleEndian.Uint32(b[36:40])), Fit: FitCode(b[40]),
		}, nil
	case OpDefString, OpFreeString, OpDefBlob, OpFreeBlob:
		if err := need(4); err != nil {
			return Command{}, err
		}
		return Command{Op: op, TableIndex: binary.LittleEndian.Uint32(b[0:4])}, nil
	default:
		return Command{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrdl: unknown opcode %d", op)
	}
}

func putI32s(buf []byte, vals ...int32) {
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], uint32(v))
	}
}

func i32(b []byte, off int) int32 { return int32(binary.LittleEndian.Uint32(b[off : off+4])) }

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
