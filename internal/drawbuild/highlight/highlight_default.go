//go:build !chroma

package highlight

import "github.com/rezi-tui/rezi/internal/geom"

// Highlight returns a single dim, unstyled span covering the whole
// snippet when the repo is built without the chroma tag.
func Highlight(code, lang string) []Span {
	return []Span{{Text: code, Style: geom.TextStyle{Attrs: geom.AttrDim}}}
}
