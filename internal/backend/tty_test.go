package backend

import (
	"testing"

	"github.com/rezi-tui/rezi/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestDetectCapabilitiesHonorsForceTruecolorFlag(t *testing.T) {
	t.Setenv("COLORTERM", "")
	t.Setenv("REZI_FORCE_TRUECOLOR", "1")
	caps := detectCapabilities(80, 24)
	assert.Equal(t, geom.TierBTruecolor, caps.ColorDepth)
}

func TestDetectCapabilitiesReadsColortermTruecolor(t *testing.T) {
	t.Setenv("REZI_FORCE_TRUECOLOR", "")
	t.Setenv("COLORTERM", "truecolor")
	caps := detectCapabilities(80, 24)
	assert.Equal(t, geom.TierBTruecolor, caps.ColorDepth)
}

func TestDetectCapabilitiesDisableOverridesKitty(t *testing.T) {
	t.Setenv("TERM", "xterm-kitty")
	t.Setenv("REZI_DISABLE_KITTY", "true")
	caps := detectCapabilities(80, 24)
	assert.False(t, caps.SupportsKitty)
}

func TestEnvFlagAcceptsCommonTruthyValues(t *testing.T) {
	for _, v := range []string{"1", "true", "YES"} {
		t.Setenv("REZI_TEST_FLAG", v)
		assert.True(t, envFlag("REZI_TEST_FLAG"), v)
	}
	t.Setenv("REZI_TEST_FLAG", "0")
	assert.False(t, envFlag("REZI_TEST_FLAG"))
}
