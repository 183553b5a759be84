package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesPinnedValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, uint32(60), cfg.TargetFPS)
	assert.Equal(t, uint32(4), cfg.TabWidth)
	assert.Equal(t, WidthPolicyEmojiWide, cfg.WidthPolicy)
	assert.True(t, cfg.Platform.EnableMouse)
	assert.False(t, cfg.Platform.EnableOSC52)
}

func TestLoadMergesTOMLFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rezi.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
target_fps = 30

[limits]
drawlist_max_cmds = 1024

[platform]
enable_osc52 = true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(30), cfg.TargetFPS)
	assert.Equal(t, uint32(1024), cfg.Limits.DrawlistMaxCmds)
	assert.True(t, cfg.Platform.EnableOSC52)
	// untouched fields keep their default
	assert.Equal(t, uint32(4096), cfg.Limits.DrawlistMaxStrings)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestEnvOverrideWinsOverDefault(t *testing.T) {
	t.Setenv("REZI_TARGET_FPS", "144")
	t.Setenv("REZI_LIMITS_DRAWLIST_MAX_CMDS", "8192")
	t.Setenv("REZI_PLATFORM_ENABLE_MOUSE", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint32(144), cfg.TargetFPS)
	assert.Equal(t, uint32(8192), cfg.Limits.DrawlistMaxCmds)
	assert.False(t, cfg.Platform.EnableMouse)
}
