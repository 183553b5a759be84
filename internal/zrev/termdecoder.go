package zrev

import "time"

// TermDecoder turns raw terminal input bytes into Events, the way
// tui/input.go's inputLoop/processEsc/parseCSI/parseSS3 state machine
// turned raw stdin bytes into tui.KeyEvent values. It is the byte-level
// half of C8 that internal/backend's TTY adapter drives; the binary
// ZREV Encode/Decode in codec.go is the wire half used when core and
// backend are separate processes (record/replay, remote backends).
//
// Feed is not safe for concurrent use; it holds the pending-escape
// buffer across calls the same way tui.inputLoop held state across
// reads from its rawCh channel.
type TermDecoder struct {
	pending   []byte
	escOpenAt time.Time
}

// EscTimeout is the disambiguation window after a bare ESC, matching
// tui/input.go's 10ms CSI/SS3 window. Feed itself never waits or
// times out: a held-back ESC is emitted only when the caller calls
// Flush. Nothing in this package reads EscTimeout.
const EscTimeout = 10 * time.Millisecond

// NewTermDecoder creates a decoder with no pending state.
func NewTermDecoder() *TermDecoder { return &TermDecoder{} }

// Feed appends b to the decoder's buffer and extracts as many complete
// events as it can. Bytes that might be the start of a longer escape
// sequence are held back until more input arrives or flush forces
// resolution (mirroring processEsc's "not enough bytes yet" case).
func (d *TermDecoder) Feed(b []byte) []Event {
	d.pending = append(d.pending, b...)
	var events []Event
	for {
		ev, n, ok := decodeOne(d.pending)
		if !ok {
			break
		}
		if ev != nil {
			events = append(events, *ev)
		}
		d.pending = d.pending[n:]
	}
	return events
}

// Flush resolves a trailing bare ESC (or any other ambiguous prefix)
// once the disambiguation window has elapsed with no further bytes,
// per tui.processEsc's timeout branch.
func (d *TermDecoder) Flush() []Event {
	if len(d.pending) == 0 {
		return nil
	}
	ev := keyEvent("escape", ModNone)
	if d.pending[0] != 0x1b {
		ev = charEvent(rune(d.pending[0]))
	}
	d.pending = d.pending[1:]
	return []Event{ev}
}

// decodeOne attempts to decode a single event from the front of buf. It
// returns ok=false when buf might be an incomplete sequence (caller
// should wait for more bytes or call Flush after the timeout).
func decodeOne(buf []byte) (*Event, int, bool) {
	if len(buf) == 0 {
		return nil, 0, false
	}
	b0 := buf[0]

	switch {
	case b0 == 0x1b:
		return decodeEscape(buf)
	case b0 == '\r' || b0 == '\n':
		ev := keyEvent("enter", ModNone)
		return &ev, 1, true
	case b0 == 0x7f || b0 == 0x08:
		ev := keyEvent("backspace", ModNone)
		return &ev, 1, true
	case b0 == '\t':
		ev := keyEvent("tab", ModNone)
		return &ev, 1, true
	case b0 < 0x20:
		ev := keyEvent(ctrlKeyName(b0), ModCtrl)
		return &ev, 1, true
	default:
		r, size := decodeRune(buf)
		if size == 0 {
			return nil, 0, false
		}
		ev := charEvent(r)
		return &ev, size, true
	}
}

// decodeEscape mirrors tui.processEsc: a lone ESC is an Escape key; ESC
// '[' starts a CSI sequence (parseCSI); ESC 'O' starts an SS3 sequence
// (parseSS3); anything else with a printable second byte is Alt+key.
func decodeEscape(buf []byte) (*Event, int, bool) {
	if len(buf) < 2 {
		return nil, 0, false // wait for more, or Flush's timeout fires
	}
	switch buf[1] {
	case '[':
		return parseCSI(buf)
	case 'O':
		return parseSS3(buf)
	default:
		r, size := decodeRune(buf[1:])
		if size == 0 {
			return nil, 0, false
		}
		ev := keyEventRune(r, ModAlt)
		return &ev, 1 + size, true
	}
}

// parseCSI decodes an ESC '[' ... final-byte sequence, generalizing
// tui.parseCSI's arrow/Home/End/tilde-terminated cases and its
// modifier-suffix stripping (";5" style Ctrl/Alt/Shift suffixes).
func parseCSI(buf []byte) (*Event, int, bool) {
	i := 2
	for i < len(buf) && (buf[i] == ';' || (buf[i] >= '0' && buf[i] <= '9')) {
		i++
	}
	if i >= len(buf) {
		return nil, 0, false
	}
	params := string(buf[2:i])
	final := buf[i]
	n := i + 1
	mods := parseCSIMods(params)

	switch final {
	case 'A':
		ev := keyEvent("arrowup", mods)
		return &ev, n, true
	case 'B':
		ev := keyEvent("arrowdown", mods)
		return &ev, n, true
	case 'C':
		ev := keyEvent("arrowright", mods)
		return &ev, n, true
	case 'D':
		ev := keyEvent("arrowleft", mods)
		return &ev, n, true
	case 'H':
		ev := keyEvent("home", mods)
		return &ev, n, true
	case 'F':
		ev := keyEvent("end", mods)
		return &ev, n, true
	case '~':
		name, ok := tildeKeyName(params)
		if !ok {
			ev := keyEvent("unknown", mods)
			return &ev, n, true
		}
		ev := keyEvent(name, mods)
		return &ev, n, true
	default:
		ev := keyEvent("unknown", mods)
		return &ev, n, true
	}
}

// parseSS3 decodes an ESC 'O' <letter> sequence: application-cursor-mode
// arrows and F1-F4, per tui.parseSS3.
func parseSS3(buf []byte) (*Event, int, bool) {
	if len(buf) < 3 {
		return nil, 0, false
	}
	switch buf[2] {
	case 'A':
		ev := keyEvent("arrowup", ModNone)
		return &ev, 3, true
	case 'B':
		ev := keyEvent("arrowdown", ModNone)
		return &ev, 3, true
	case 'C':
		ev := keyEvent("arrowright", ModNone)
		return &ev, 3, true
	case 'D':
		ev := keyEvent("arrowleft", ModNone)
		return &ev, 3, true
	case 'P':
		ev := keyEvent("f1", ModNone)
		return &ev, 3, true
	case 'Q':
		ev := keyEvent("f2", ModNone)
		return &ev, 3, true
	case 'R':
		ev := keyEvent("f3", ModNone)
		return &ev, 3, true
	case 'S':
		ev := keyEvent("f4", ModNone)
		return &ev, 3, true
	default:
		ev := keyEvent("unknown", ModNone)
		return &ev, 3, true
	}
}

// tildeKeyName maps a CSI tilde-terminated parameter to a normalized
// key name, per tui.dispatchCSI's numeric-code table.
func tildeKeyName(params string) (string, bool) {
	code := firstParam(params)
	switch code {
	case "1", "7":
		return "home", true
	case "2":
		return "insert", true
	case "3":
		return "delete", true
	case "4", "8":
		return "end", true
	case "5":
		return "pgup", true
	case "6":
		return "pgdown", true
	case "11":
		return "f1", true
	case "12":
		return "f2", true
	case "13":
		return "f3", true
	case "14":
		return "f4", true
	case "15":
		return "f5", true
	case "17":
		return "f6", true
	case "18":
		return "f7", true
	case "19":
		return "f8", true
	case "20":
		return "f9", true
	case "21":
		return "f10", true
	case "23":
		return "f11", true
	case "24":
		return "f12", true
	default:
		return "", false
	}
}

// parseCSIMods extracts the ";N" modifier suffix xterm appends to
// extended sequences (e.g. "1;5A" for Ctrl+Up), per tui.indexOf's
// modifier-stripping logic.
func parseCSIMods(params string) Modifier {
	semi := indexOf(params, ';')
	if semi < 0 || semi+1 >= len(params) {
		return ModNone
	}
	switch params[semi+1:] {
	case "2":
		return ModShift
	case "3":
		return ModAlt
	case "4":
		return ModAlt | ModShift
	case "5":
		return ModCtrl
	case "6":
		return ModCtrl | ModShift
	case "7":
		return ModCtrl | ModAlt
	case "8":
		return ModCtrl | ModAlt | ModShift
	default:
		return ModNone
	}
}

func firstParam(params string) string {
	semi := indexOf(params, ';')
	if semi < 0 {
		return params
	}
	return params[:semi]
}

func indexOf(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func ctrlKeyName(b byte) string {
	return "ctrl+" + string(rune('a'+b-1))
}

func decodeRune(buf []byte) (rune, int) {
	b0 := buf[0]
	switch {
	case b0 < 0x80:
		return rune(b0), 1
	case b0&0xe0 == 0xc0:
		if len(buf) < 2 {
			return 0, 0
		}
		return rune(b0&0x1f)<<6 | rune(buf[1]&0x3f), 2
	case b0&0xf0 == 0xe0:
		if len(buf) < 3 {
			return 0, 0
		}
		return rune(b0&0x0f)<<12 | rune(buf[1]&0x3f)<<6 | rune(buf[2]&0x3f), 3
	case b0&0xf8 == 0xf0:
		if len(buf) < 4 {
			return 0, 0
		}
		return rune(b0&0x07)<<18 | rune(buf[1]&0x3f)<<12 | rune(buf[2]&0x3f)<<6 | rune(buf[3]&0x3f), 4
	default:
		return rune(b0), 1
	}
}

func keyEvent(name string, mods Modifier) Event {
	return Event{Kind: EventKey, Key: KeyEvent{KeyName: name, Mods: mods}}
}

func keyEventRune(r rune, mods Modifier) Event {
	return Event{Kind: EventKey, Key: KeyEvent{KeyName: string(r), Mods: mods}}
}

func charEvent(r rune) Event {
	return Event{Kind: EventKey, Key: KeyEvent{KeyName: string(r), Mods: ModNone}}
}
