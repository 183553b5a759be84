// Package grapheme implements the grapheme cluster & width oracle (C1):
// segmenting text into extended grapheme clusters and resolving their
// terminal display width, per spec.md §4.1.
//
// The width lookup is grounded on danielgatis/go-headless-term's
// width.go, which wraps github.com/unilibs/uniwidth; this package adds
// the presentation-aware promotion rules (variation selector 16, East
// Asian Wide/Fullwidth) that the host repo's plain RuneWidth call does
// not do on its own.
package grapheme

import (
	"unicode"

	"github.com/unilibs/uniwidth"
)

// UnicodeTableVersion is pinned at build time. Bumping it is a
// protocol-visible change: it can re-flow already-laid-out text, per
// spec.md §4.1.
const UnicodeTableVersion = "16.0.0"

// variationSelector16 forces the preceding emoji base to its wide,
// colorful presentation.
const variationSelector16 rune = 0xFE0F

// zeroWidthJoiner links emoji bases into a single cluster (family emoji,
// flag sequences, etc).
const zeroWidthJoiner rune = 0x200D

// Cluster is one extended grapheme cluster plus its resolved width.
type Cluster struct {
	Text  string
	Width int // 0, 1, or 2
}

// Segment walks s and returns all of its clusters in order. It implements a
// practical (not fully UAX #29 exhaustive) extended grapheme cluster
// segmentation: it groups a base rune with trailing combining marks,
// variation selectors, and ZWJ-joined sequences.
func Segment(s string) []Cluster {
	runes := []rune(s)
	var out []Cluster
	i := 0
	for i < len(runes) {
		start := i
		i++
		for i < len(runes) {
			r := runes[i]
			if r == variationSelector16 {
				i++
				continue
			}
			if isCombiningMark(r) {
				i++
				continue
			}
			if runes[i-1] == zeroWidthJoiner {
				i++
				continue
			}
			if r == zeroWidthJoiner && i+1 < len(runes) {
				i++ // consume ZWJ, loop will pull in the next base too
				continue
			}
			break
		}
		text := string(runes[start:i])
		out = append(out, Cluster{Text: text, Width: Width(text)})
	}
	return out
}

func isCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r) || unicode.Is(unicode.Mc, r)
}

// Width resolves the display width of a single grapheme cluster: 0 for
// zero-width content, 1 for normal, 2 for East Asian Wide/Fullwidth or
// emoji forced wide by a trailing VS-16.
func Width(cluster string) int {
	runes := []rune(cluster)
	if len(runes) == 0 {
		return 0
	}

	hasVS16 := false
	for _, r := range runes {
		if r == variationSelector16 {
			hasVS16 = true
			break
		}
	}

	base := runes[0]
	w := uniwidth.RuneWidth(base)

	if hasVS16 && w <= 1 && isEmojiBase(base) {
		return 2
	}
	if w < 0 {
		return 0
	}
	return w
}

// isEmojiBase approximates the Unicode "Emoji" property for the purpose
// of VS-16 promotion: the common default-text-presentation ranges that
// gain a wide, colorful form under VS-16 (e.g. U+2764 HEAVY BLACK HEART).
func isEmojiBase(r rune) bool {
	switch {
	case r >= 0x2190 && r <= 0x21FF: // arrows
		return true
	case r >= 0x2300 && r <= 0x27BF: // misc technical, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // misc symbols and arrows
		return true
	case r >= 0x1F300 && r <= 0x1FAFF: // supplemental emoji blocks
		return true
	default:
		return false
	}
}

// StringWidth sums the widths of every cluster in s, satisfying the
// "Grapheme width" testable property of spec.md §8.
func StringWidth(s string) int {
	total := 0
	for _, c := range Segment(s) {
		total += c.Width
	}
	return total
}
