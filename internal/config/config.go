// Package config loads the engine's tunable limits and platform defaults,
// generalizing the pack's zrEngineConfig/zrLimits/zrPlatConfig structs
// (cfa07176_RtlZeroMemory-Zireael's zr_types.go) from a fixed-layout C
// struct into a TOML document with environment-variable overrides.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/iancoleman/strcase"
	"github.com/pkg/errors"
)

// WidthPolicy mirrors zrPlatConfig's width-policy enum.
type WidthPolicy int

const (
	WidthPolicyNarrowAmbiguous WidthPolicy = iota
	WidthPolicyEmojiWide
)

// Limits bounds the resource budgets the drawlist and diff stages may
// spend in a single frame, the Go analogue of zrLimits' byte/count caps.
type Limits struct {
	DrawlistMaxTotalBytes  uint32 `toml:"drawlist_max_total_bytes"`
	DrawlistMaxCmds        uint32 `toml:"drawlist_max_cmds"`
	DrawlistMaxStrings     uint32 `toml:"drawlist_max_strings"`
	DrawlistMaxBlobs       uint32 `toml:"drawlist_max_blobs"`
	DrawlistMaxClipDepth   uint32 `toml:"drawlist_max_clip_depth"`
	DrawlistMaxTextRuns    uint32 `toml:"drawlist_max_text_runs"`
	DiffMaxDamageRects     uint32 `toml:"diff_max_damage_rects"`
	OutMaxBytesPerFrame    uint32 `toml:"out_max_bytes_per_frame"`
}

// Platform mirrors zrPlatConfig's input/feature toggles.
type Platform struct {
	EnableMouse          bool `toml:"enable_mouse"`
	EnableBracketedPaste bool `toml:"enable_bracketed_paste"`
	EnableFocusEvents    bool `toml:"enable_focus_events"`
	EnableOSC52          bool `toml:"enable_osc52"`
}

// Config is the engine-wide configuration block, the Go analogue of
// zrEngineConfig: protocol versions pinned at build time are not
// user-tunable and are left out, but everything the original treats as a
// runtime knob (limits, platform toggles, width policy, target FPS,
// debug/replay toggles) has a field here.
type Config struct {
	Limits   Limits   `toml:"limits"`
	Platform Platform `toml:"platform"`

	TabWidth    uint32      `toml:"tab_width"`
	WidthPolicy WidthPolicy `toml:"width_policy"`
	TargetFPS   uint32      `toml:"target_fps"`

	EnableScrollOptimizations bool `toml:"enable_scroll_optimizations"`
	EnableDebugOverlay        bool `toml:"enable_debug_overlay"`
	EnableReplayRecording     bool `toml:"enable_replay_recording"`
	WaitForOutputDrain        bool `toml:"wait_for_output_drain"`
}

// Default returns the engine's pinned defaults, the Go analogue of
// zrEngineConfigDefault. Values match the reference implementation's
// demo-unmodified defaults, not its stress-test overrides.
func Default() Config {
	return Config{
		Limits: Limits{
			DrawlistMaxTotalBytes: 256 * 1024,
			DrawlistMaxCmds:       4096,
			DrawlistMaxStrings:    4096,
			DrawlistMaxBlobs:      4096,
			DrawlistMaxClipDepth:  64,
			DrawlistMaxTextRuns:   4096,
			DiffMaxDamageRects:    4096,
			OutMaxBytesPerFrame:   256 * 1024,
		},
		Platform: Platform{
			EnableMouse:          true,
			EnableBracketedPaste: true,
			EnableFocusEvents:    true,
			EnableOSC52:          false,
		},
		TabWidth:                  4,
		WidthPolicy:               WidthPolicyEmojiWide,
		TargetFPS:                 60,
		EnableScrollOptimizations: true,
		EnableDebugOverlay:        false,
		EnableReplayRecording:     false,
		WaitForOutputDrain:        false,
	}
}

// Load starts from Default, merges an optional TOML file at path (skipped
// silently if it does not exist), and applies any REZI_-prefixed
// environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, errors.Wrapf(err, "config: decode %s", path)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(err, "config: stat %s", path)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnvOverrides scans the process environment for REZI_<FIELD> keys
// matching a top-level Config field (via strcase, so REZI_TARGET_FPS
// addresses TargetFPS) and assigns the parsed value. Nested blocks
// (Limits, Platform) are addressed as REZI_LIMITS_<FIELD> and
// REZI_PLATFORM_<FIELD>.
func applyEnvOverrides(cfg *Config) error {
	for _, kv := range os.Environ() {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, "REZI_") {
			continue
		}
		key := strings.TrimPrefix(name, "REZI_")

		switch {
		case strings.HasPrefix(key, "LIMITS_"):
			if err := setField(&cfg.Limits, strcase.ToCamel(strings.TrimPrefix(key, "LIMITS_")), val); err != nil {
				return errors.Wrapf(err, "config: env %s", name)
			}
		case strings.HasPrefix(key, "PLATFORM_"):
			if err := setField(&cfg.Platform, strcase.ToCamel(strings.TrimPrefix(key, "PLATFORM_")), val); err != nil {
				return errors.Wrapf(err, "config: env %s", name)
			}
		default:
			if err := setField(cfg, strcase.ToCamel(key), val); err != nil {
				return errors.Wrapf(err, "config: env %s", name)
			}
		}
	}
	return nil
}

// setField assigns val (a raw environment-variable string) to the named
// exported field of dst via reflection-free type switching: Config's
// field set is small and fixed, so a switch is clearer than reflect here.
func setField(dst interface{}, field, val string) error {
	switch d := dst.(type) {
	case *Config:
		switch field {
		case "TabWidth":
			return setUint32(&d.TabWidth, val)
		case "TargetFps", "TargetFPS":
			return setUint32(&d.TargetFPS, val)
		case "WidthPolicy":
			n, err := strconv.Atoi(val)
			if err != nil {
				return err
			}
			d.WidthPolicy = WidthPolicy(n)
		case "EnableScrollOptimizations":
			return setBool(&d.EnableScrollOptimizations, val)
		case "EnableDebugOverlay":
			return setBool(&d.EnableDebugOverlay, val)
		case "EnableReplayRecording":
			return setBool(&d.EnableReplayRecording, val)
		case "WaitForOutputDrain":
			return setBool(&d.WaitForOutputDrain, val)
		}
	case *Limits:
		switch field {
		case "DrawlistMaxTotalBytes":
			return setUint32(&d.DrawlistMaxTotalBytes, val)
		case "DrawlistMaxCmds":
			return setUint32(&d.DrawlistMaxCmds, val)
		case "DrawlistMaxStrings":
			return setUint32(&d.DrawlistMaxStrings, val)
		case "DrawlistMaxBlobs":
			return setUint32(&d.DrawlistMaxBlobs, val)
		case "DrawlistMaxClipDepth":
			return setUint32(&d.DrawlistMaxClipDepth, val)
		case "DrawlistMaxTextRuns":
			return setUint32(&d.DrawlistMaxTextRuns, val)
		case "DiffMaxDamageRects":
			return setUint32(&d.DiffMaxDamageRects, val)
		case "OutMaxBytesPerFrame":
			return setUint32(&d.OutMaxBytesPerFrame, val)
		}
	case *Platform:
		switch field {
		case "EnableMouse":
			return setBool(&d.EnableMouse, val)
		case "EnableBracketedPaste":
			return setBool(&d.EnableBracketedPaste, val)
		case "EnableFocusEvents":
			return setBool(&d.EnableFocusEvents, val)
		case "EnableOsc52", "EnableOSC52":
			return setBool(&d.EnableOSC52, val)
		}
	}
	return nil
}

func setUint32(dst *uint32, val string) error {
	n, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return err
	}
	*dst = uint32(n)
	return nil
}

func setBool(dst *bool, val string) error {
	b, err := strconv.ParseBool(val)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}
