// Package zrev implements the input/event wire protocol (C8): a
// little-endian binary event batch decoded from bytes the backend reads
// off stdin/the terminal, per spec.md §4.8/§6.
//
// The header/event framing mirrors internal/zrdl's codec.go (magic +
// version + count-prefixed records, each with an explicit payload
// length so an unknown or truncated record can be skipped/rejected
// without desyncing the rest of the batch). The key/modifier vocabulary
// generalizes tui/key.go's Key/Mod enums and tui/input.go's CSI/SS3
// escape-sequence state machine, which decoded the same class of
// events from raw terminal bytes one rune at a time; here Decode
// consumes an already-framed binary batch instead. The byte-at-a-time
// escape parser is TermDecoder in termdecoder.go, which
// internal/backend's TTY adapter feeds; its Events are handed on as a
// Batch without passing through this wire encoding.
package zrev

import (
	"encoding/binary"

	"github.com/rezi-tui/rezi/internal/rezierr"
)

// Magic identifies a ZREV batch, per spec.md §6.
var Magic = [4]byte{'Z', 'R', 'E', 'V'}

// Version is the single version this implementation accepts.
const Version uint16 = 1

const headerSize = 4 + 2 + 4

// EventKind tags one event record, per spec.md §4.8.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventPaste
	EventFocusChange
	EventResize
	EventCapabilityUpdate
)

func (k EventKind) Valid() bool { return k <= EventCapabilityUpdate }

// Modifier is a bitset of held modifier keys, generalizing tui.Mod.
type Modifier uint16

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModShift Modifier = 1 << 2
)

func (m Modifier) Has(f Modifier) bool { return m&f != 0 }

// MouseAction distinguishes the phase of a mouse event, per spec.md
// §4.8's press/release/move/drag/wheel list.
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
	MouseDrag
	MouseWheel
)

// MouseButton names which button a press/release/drag event carries.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// KeyEvent is the decoded payload of an EventKey record. KeyName is a
// normalized key name ("enter", "a", "f5", "arrowup", ...), resolved
// from the event batch's string table the way internal/zrdl resolves a
// StringRef, generalizing tui.Key's closed enum into an open vocabulary
// the router's keybinding tables match against by name.
type KeyEvent struct {
	KeyName  string
	Mods     Modifier
	Repeat   uint8
}

// MouseEvent is the decoded payload of an EventMouse record.
type MouseEvent struct {
	X, Y       int
	Button     MouseButton
	Action     MouseAction
	Mods       Modifier
	WheelDelta int16
}

// PasteEvent is the decoded payload of an EventPaste record.
type PasteEvent struct {
	Text string
}

// ResizeEvent is the decoded payload of an EventResize record.
type ResizeEvent struct {
	Cols, Rows int
}

// FocusChangeEvent is the decoded payload of an EventFocusChange
// record: whether the terminal window itself gained or lost focus.
type FocusChangeEvent struct {
	Focused bool
}

// Event is one decoded record. Only the field matching Kind is
// meaningful, mirroring zrdl.Command's single-struct-many-opcodes
// shape rather than a per-kind interface.
type Event struct {
	Kind  EventKind
	Key   KeyEvent
	Mouse MouseEvent
	Paste PasteEvent
	Resize ResizeEvent
	Focus FocusChangeEvent
}

// Batch is a fully decoded ZREV event batch, per spec.md §6.
type Batch struct {
	Events []Event
}

func need(b []byte, n int, what string) error {
	if len(b) < n {
		return rezierr.Newf(rezierr.ProtocolDecode, "", "zrev: %s too short: %d < %d", what, len(b), n)
	}
	return nil
}

func u16(b []byte, off int) uint16 { return binary.LittleEndian.Uint16(b[off : off+2]) }
func i16(b []byte, off int) int16  { return int16(u16(b, off)) }
func u32(b []byte, off int) uint32 { return binary.LittleEndian.Uint32(b[off : off+4]) }
