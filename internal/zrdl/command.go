package zrdl

import "github.com/rezi-tui/rezi/internal/geom"

// StringRef identifies a slice of an interned string table entry, per
// spec.md §4.2's draw_text payload.
type StringRef struct {
	Index   uint32
	ByteOff uint32
	ByteLen uint32
}

// Command is the decoded form of one ZRDL command. Only the fields
// relevant to Op are meaningful; this mirrors the fixed-layout-per-type
// design of §4.2 without requiring a Go interface per opcode.
type Command struct {
	Op Opcode

	X, Y, W, H         int32
	PxW, PxH           int32
	Style              geom.TextStyle
	LinkStringRef      uint32 // resolved at encode time from Style.LinkURI
	StringRef          StringRef
	BlobRef            uint32
	ClipRect           geom.Rect
	CursorShape        uint8
	CursorVisible      bool
	CursorBlink        bool
	Blitter            BlitterCode
	ImageID            uint32
	ImageFormat        ImageFormatCode
	ImageProtocol      ImageProtocolCode
	ZLayer             int32
	Fit                FitCode
	TableIndex         uint32 // for def_string/free_string/def_blob/free_blob
}

// Clear builds a clear command.
func Clear() Command { return Command{Op: OpClear} }

// FillRect builds a fill_rect command.
func FillRect(x, y, w, h int, style geom.TextStyle) Command {
	return Command{Op: OpFillRect, X: int32(x), Y: int32(y), W: int32(w), H: int32(h), Style: style}
}

// DrawText builds a draw_text command.
func DrawText(x, y int, ref StringRef, style geom.TextStyle) Command {
	return Command{Op: OpDrawText, X: int32(x), Y: int32(y), StringRef: ref, Style: style}
}

// DrawTextRun builds a draw_text_run command.
func DrawTextRun(x, y int, blobRef uint32) Command {
	return Command{Op: OpDrawTextRun, X: int32(x), Y: int32(y), BlobRef: blobRef}
}

// PushClip builds a push_clip command.
func PushClip(r geom.Rect) Command { return Command{Op: OpPushClip, ClipRect: r} }

// PopClip builds a pop_clip command.
func PopClip() Command { return Command{Op: OpPopClip} }

// SetCursor builds a set_cursor command.
func SetCursor(x, y int, shape uint8, visible, blink bool) Command {
	return Command{Op: OpSetCursor, X: int32(x), Y: int32(y), CursorShape: shape, CursorVisible: visible, CursorBlink: blink}
}

// DrawCanvas builds a draw_canvas command.
func DrawCanvas(x, y, w, h, pxW, pxH int, blobRef uint32, blitter BlitterCode) Command {
	return Command{Op: OpDrawCanvas, X: int32(x), Y: int32(y), W: int32(w), H: int32(h), PxW: int32(pxW), PxH: int32(pxH), BlobRef: blobRef, Blitter: blitter}
}

// DrawImage builds a draw_image command.
func DrawImage(x, y, w, h, pxW, pxH int, blobRef uint32, imageID uint32, format ImageFormatCode, protocol ImageProtocolCode, zLayer int, fit FitCode) Command {
	return Command{
		Op: OpDrawImage, X: int32(x), Y: int32(y), W: int32(w), H: int32(h), PxW: int32(pxW), PxH: int32(pxH),
		BlobRef: blobRef, ImageID: imageID, ImageFormat: format, ImageProtocol: protocol, ZLayer: int32(zLayer), Fit: fit,
	}
}

// DefString builds a def_string lifecycle command; idx must already be
// present in the frame's string table section.
func DefString(idx uint32) Command { return Command{Op: OpDefString, TableIndex: idx} }

// FreeString builds a free_string lifecycle command.
func FreeString(idx uint32) Command { return Command{Op: OpFreeString, TableIndex: idx} }

// DefBlob builds a def_blob lifecycle command.
func DefBlob(idx uint32) Command { return Command{Op: OpDefBlob, TableIndex: idx} }

// FreeBlob builds a free_blob lifecycle command.
func FreeBlob(idx uint32) Command { return Command{Op: OpFreeBlob, TableIndex: idx} }
