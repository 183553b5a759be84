// Package highlight provides syntax-highlighted spans for fenced code
// blocks, consumed by internal/drawbuild when lowering a KindText node
// that carries a TextProps.Lang. It follows the teacher's build-tag
// split (tui/highlight_chroma.go vs tui/highlight_default.go): the
// `chroma` build tag selects the real github.com/alecthomas/chroma
// tokenizer, and its absence falls back to a single dim, unstyled span
// so a binary can be built without pulling in the lexer tables.
package highlight

import "github.com/rezi-tui/rezi/internal/geom"

// Span is one contiguously-styled run of source text.
type Span struct {
	Text  string
	Style geom.TextStyle
}
