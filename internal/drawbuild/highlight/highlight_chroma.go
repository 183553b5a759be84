//go:build chroma

package highlight

import (
	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
	"github.com/rezi-tui/rezi/internal/geom"
)

// Highlight tokenizes code with lang's chroma lexer and maps each token
// to a styled Span, using the "monokai" chroma style's actual RGB
// values via geom.RGB rather than the teacher's fixed ANSI-16 palette
// heuristic, since the framebuffer can downgrade truecolor itself
// (internal/framebuffer) when the terminal's capability tier requires it.
func Highlight(code, lang string) []Span {
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return []Span{{Text: code, Style: geom.TextStyle{Attrs: geom.AttrDim}}}
	}

	var spans []Span
	for _, token := range iterator.Tokens() {
		entry := style.Get(token.Type)
		spans = append(spans, Span{Text: token.Value, Style: styleFromEntry(entry)})
	}
	return spans
}

func styleFromEntry(entry chroma.StyleEntry) geom.TextStyle {
	var ts geom.TextStyle
	if entry.Bold == chroma.Yes {
		ts.Attrs |= geom.AttrBold
	}
	if entry.Italic == chroma.Yes {
		ts.Attrs |= geom.AttrItalic
	}
	if entry.Underline == chroma.Yes {
		ts.Attrs |= geom.AttrUnderline
	}
	if entry.Colour.IsSet() {
		ts.Fg = geom.RGB(entry.Colour.Red(), entry.Colour.Green(), entry.Colour.Blue())
	}
	if entry.Background.IsSet() {
		ts.Bg = geom.RGB(entry.Background.Red(), entry.Background.Green(), entry.Background.Blue())
	}
	return ts
}
