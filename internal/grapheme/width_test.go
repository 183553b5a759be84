package grapheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidthASCII(t *testing.T) {
	assert.Equal(t, 1, Width("a"))
}

func TestWidthWideHan(t *testing.T) {
	assert.Equal(t, 2, Width("你"))
}

func TestStringWidthMatchesClusterSum(t *testing.T) {
	s := "你好 world"
	total := 0
	for _, c := range Segment(s) {
		total += c.Width
	}
	assert.Equal(t, total, StringWidth(s))
}

func TestSegmentZWJSequenceIsOneCluster(t *testing.T) {
	// family emoji: man + ZWJ + woman + ZWJ + girl
	s := "\U0001F468‍\U0001F469‍\U0001F467"
	clusters := Segment(s)
	assert.Len(t, clusters, 1)
}

func TestVariationSelectorPromotesToWide(t *testing.T) {
	// HEAVY BLACK HEART + VS-16 becomes wide/emoji presentation.
	s := "❤️"
	clusters := Segment(s)
	if assert.Len(t, clusters, 1) {
		assert.Equal(t, 2, clusters[0].Width)
	}
}
