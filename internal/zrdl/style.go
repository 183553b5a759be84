package zrdl

import (
	"encoding/binary"

	"github.com/rezi-tui/rezi/internal/geom"
)

// styleSize is the fixed encoded size of an EncodedStyle.
const styleSize = 20

// noLinkRef marks "no hyperlink" in an encoded style's trailing u32.
const noLinkRef uint32 = 0xFFFFFFFF

func encodeStyle(buf []byte, st geom.TextStyle, linkStringRef uint32) {
	binary.LittleEndian.PutUint16(buf[0:2], uint16(st.Attrs))
	buf[2] = byte(st.Fg.Kind)
	buf[3] = st.Fg.Index
	buf[4] = st.Fg.R
	buf[5] = st.Fg.G
	buf[6] = st.Fg.B
	buf[7] = byte(st.Bg.Kind)
	buf[8] = st.Bg.Index
	buf[9] = st.Bg.R
	buf[10] = st.Bg.G
	buf[11] = st.Bg.B
	// buf[12:16] reserved, zero.
	if st.LinkURI == "" {
		linkStringRef = noLinkRef
	}
	binary.LittleEndian.PutUint32(buf[16:20], linkStringRef)
}

func decodeStyle(buf []byte) (geom.TextStyle, uint32) {
	st := geom.TextStyle{
		Attrs: geom.Attr(binary.LittleEndian.Uint16(buf[0:2])),
		Fg: geom.Color{
			Kind:  geom.ColorKind(buf[2]),
			Index: buf[3],
			R:     buf[4],
			G:     buf[5],
			B:     buf[6],
		},
		Bg: geom.Color{
			Kind:  geom.ColorKind(buf[7]),
			Index: buf[8],
			R:     buf[9],
			G:     buf[10],
			B:     buf[11],
		},
	}
	linkRef := binary.LittleEndian.Uint32(buf[16:20])
	return st, linkRef
}
