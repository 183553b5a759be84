package zrdl

// Opcode tags a ZRDL command, per spec.md §4.2.
type Opcode uint16

const (
	OpClear Opcode = iota + 1
	OpFillRect
	OpDrawText
	OpDrawTextRun
	OpPushClip
	OpPopClip
	OpSetCursor
	OpDrawCanvas
	OpDrawImage
	OpDefString
	OpFreeString
	OpDefBlob
	OpFreeBlob
)

func (o Opcode) Valid() bool { return o >= OpClear && o <= OpFreeBlob }

func (o Opcode) String() string {
	switch o {
	case OpClear:
		return "clear"
	case OpFillRect:
		return "fill_rect"
	case OpDrawText:
		return "draw_text"
	case OpDrawTextRun:
		return "draw_text_run"
	case OpPushClip:
		return "push_clip"
	case OpPopClip:
		return "pop_clip"
	case OpSetCursor:
		return "set_cursor"
	case OpDrawCanvas:
		return "draw_canvas"
	case OpDrawImage:
		return "draw_image"
	case OpDefString:
		return "def_string"
	case OpFreeString:
		return "free_string"
	case OpDefBlob:
		return "def_blob"
	case OpFreeBlob:
		return "free_blob"
	default:
		return "unknown"
	}
}

// BlitterCode selects the sub-cell raster strategy for draw_canvas.
type BlitterCode uint8

const (
	BlitterBraille BlitterCode = iota
	BlitterSextant
	BlitterQuadrant
	BlitterHalfBlock
	BlitterASCII
)

// ImageFormatCode selects the inline-image encoding carried by a blob.
type ImageFormatCode uint8

const (
	ImageFormatRGBA8 ImageFormatCode = iota
	ImageFormatPNG
)

// ImageProtocolCode selects the terminal graphics protocol for draw_image.
type ImageProtocolCode uint8

const (
	ImageProtocolKitty ImageProtocolCode = iota
	ImageProtocolSixel
	ImageProtocolITerm2
	ImageProtocolFallback
)

// FitCode selects how a draw_image payload is scaled into its cell box.
type FitCode uint8

const (
	FitStretch FitCode = iota
	FitContain
	FitCover
)
