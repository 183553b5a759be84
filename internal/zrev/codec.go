package zrev

import (
	"encoding/binary"

	"github.com/rezi-tui/rezi/internal/rezierr"
)

// Batch.Strings backs key_name_string_ref/text_string_ref the same way
// zrdl.Document.Strings backs a draw_text StringRef. The wire format in
// spec.md §6 doesn't spell out where that table lives; this
// implementation appends a zrdl-shaped count-prefixed string table
// after the event records, as recorded in DESIGN.md's zrev entry.
type stringTable struct{ entries []string }

// Encode serializes a Batch into a ZREV byte stream.
func Encode(b Batch) ([]byte, error) {
	var tbl stringTable
	intern := func(s string) uint32 {
		tbl.entries = append(tbl.entries, s)
		return uint32(len(tbl.entries) - 1)
	}

	var evBytes []byte
	for _, ev := range b.Events {
		payload, err := encodeEventPayload(ev, intern)
		if err != nil {
			return nil, err
		}
		hdr := make([]byte, 4)
		hdr[0] = byte(ev.Kind)
		hdr[1] = 0
		binary.LittleEndian.PutUint16(hdr[2:4], uint16(len(payload)))
		evBytes = append(evBytes, hdr...)
		evBytes = append(evBytes, payload...)
	}

	out := make([]byte, 0, headerSize+len(evBytes)+64)
	out = append(out, Magic[:]...)
	verBuf := make([]byte, 2)
	binary.LittleEndian.PutUint16(verBuf, Version)
	out = append(out, verBuf...)
	cntBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(cntBuf, uint32(len(b.Events)))
	out = append(out, cntBuf...)
	out = append(out, evBytes...)

	strCnt := make([]byte, 4)
	binary.LittleEndian.PutUint32(strCnt, uint32(len(tbl.entries)))
	out = append(out, strCnt...)
	for _, s := range tbl.entries {
		lenBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(lenBuf, uint32(len(s)))
		out = append(out, lenBuf...)
		out = append(out, s...)
	}
	return out, nil
}

func encodeEventPayload(ev Event, intern func(string) uint32) ([]byte, error) {
	switch ev.Kind {
	case EventKey:
		buf := make([]byte, 8)
		binary.LittleEndian.PutUint32(buf[0:4], intern(ev.Key.KeyName))
		binary.LittleEndian.PutUint16(buf[4:6], uint16(ev.Key.Mods))
		buf[6] = ev.Key.Repeat
		return buf, nil
	case EventMouse:
		buf := make([]byte, 10)
		binary.LittleEndian.PutUint16(buf[0:2], uint16(ev.Mouse.X))
		binary.LittleEndian.PutUint16(buf[2:4], uint16(ev.Mouse.Y))
		buf[4] = byte(ev.Mouse.Button)
		buf[5] = byte(ev.Mouse.Action)
		binary.LittleEndian.PutUint16(buf[6:8], uint16(ev.Mouse.Mods))
		binary.LittleEndian.PutUint16(buf[8:10], uint16(ev.Mouse.WheelDelta))
		return buf, nil
	case EventPaste:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, intern(ev.Paste.Text))
		return buf, nil
	case EventResize:
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint16(buf[0:2], uint16(ev.Resize.Cols))
		binary.LittleEndian.PutUint16(buf[2:4], uint16(ev.Resize.Rows))
		return buf, nil
	case EventFocusChange:
		buf := make([]byte, 1)
		if ev.Focus.Focused {
			buf[0] = 1
		}
		return buf, nil
	case EventCapabilityUpdate:
		return nil, nil
	default:
		return nil, rezierr.Newf(rezierr.ProtocolDecode, "", "zrev: cannot encode unknown event kind %d", ev.Kind)
	}
}

// Decode parses a ZREV byte stream. Malformed batches (bad magic,
// unknown kind, truncated payload) are reported as rezierr.ProtocolDecode
// errors per spec.md §7's protocol_decode entry.
func Decode(b []byte) (Batch, error) {
	if err := need(b, headerSize, "header"); err != nil {
		return Batch{}, err
	}
	if string(b[0:4]) != string(Magic[:]) {
		return Batch{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrev: bad magic %q", b[0:4])
	}
	version := u16(b, 4)
	if version != Version {
		return Batch{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrev: unsupported version %d, want %d", version, Version)
	}
	count := u32(b, 6)

	off := headerSize
	raw := make([]struct {
		kind    EventKind
		payload []byte
	}, 0, count)
	for i := uint32(0); i < count; i++ {
		if err := need(b[off:], 4, "event header"); err != nil {
			return Batch{}, err
		}
		kind := EventKind(b[off])
		if !kind.Valid() {
			return Batch{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrev: unknown event kind %d", kind)
		}
		length := int(u16(b, off+2))
		payloadStart := off + 4
		if err := need(b[payloadStart:], length, "event payload"); err != nil {
			return Batch{}, err
		}
		raw = append(raw, struct {
			kind    EventKind
			payload []byte
		}{kind, b[payloadStart : payloadStart+length]})
		off = payloadStart + length
	}

	if err := need(b[off:], 4, "string table count"); err != nil {
		return Batch{}, err
	}
	strCount := u32(b, off)
	off += 4
	strings := make([]string, 0, strCount)
	for i := uint32(0); i < strCount; i++ {
		if err := need(b[off:], 4, "string length"); err != nil {
			return Batch{}, err
		}
		slen := int(u32(b, off))
		off += 4
		if err := need(b[off:], slen, "string bytes"); err != nil {
			return Batch{}, err
		}
		strings = append(strings, string(b[off:off+slen]))
		off += slen
	}
	resolve := func(idx uint32) string {
		if int(idx) >= len(strings) {
			return ""
		}
		return strings[idx]
	}

	events := make([]Event, 0, len(raw))
	for _, r := range raw {
		ev, err := decodeEventPayload(r.kind, r.payload, resolve)
		if err != nil {
			return Batch{}, err
		}
		events = append(events, ev)
	}
	return Batch{Events: events}, nil
}

func decodeEventPayload(kind EventKind, p []byte, resolve func(uint32) string) (Event, error) {
	switch kind {
	case EventKey:
		if err := need(p, 8, "key payload"); err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Key: KeyEvent{
			KeyName: resolve(u32(p, 0)),
			Mods:    Modifier(u16(p, 4)),
			Repeat:  p[6],
		}}, nil
	case EventMouse:
		if err := need(p, 10, "mouse payload"); err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Mouse: MouseEvent{
			X: int(u16(p, 0)), Y: int(u16(p, 2)),
			Button: MouseButton(p[4]), Action: MouseAction(p[5]),
			Mods: Modifier(u16(p, 6)), WheelDelta: i16(p, 8),
		}}, nil
	case EventPaste:
		if err := need(p, 4, "paste payload"); err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Paste: PasteEvent{Text: resolve(u32(p, 0))}}, nil
	case EventResize:
		if err := need(p, 4, "resize payload"); err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Resize: ResizeEvent{Cols: int(u16(p, 0)), Rows: int(u16(p, 2))}}, nil
	case EventFocusChange:
		if err := need(p, 1, "focus_change payload"); err != nil {
			return Event{}, err
		}
		return Event{Kind: kind, Focus: FocusChangeEvent{Focused: p[0] != 0}}, nil
	case EventCapabilityUpdate:
		return Event{Kind: kind}, nil
	default:
		return Event{}, rezierr.Newf(rezierr.ProtocolDecode, "", "zrev: cannot decode unknown event kind %d", kind)
	}
}
