package geom

// ColorKind tags the variant of Color, per spec.md §3.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is the tagged color variant. Resolution to an output depth happens
// in internal/framebuffer based on the negotiated CapabilityTier.
type Color struct {
	Kind    ColorKind
	Index   uint8 // valid when Kind == ColorIndexed, 0..255
	R, G, B uint8 // valid when Kind == ColorRGB
}

// Default is the terminal's default foreground/background color.
var Default = Color{Kind: ColorDefault}

// Indexed builds an indexed (0..255) color.
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// RGB builds a 24-bit truecolor value.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// CapabilityTier selects the color and graphics strategy used by
// internal/framebuffer, per the GLOSSARY.
type CapabilityTier uint8

const (
	TierA256 CapabilityTier = iota // 256-color
	TierBTruecolor
	TierCEnhanced
)

// Capabilities mirrors the Core->Backend query_capabilities() result of
// spec.md §6.
type Capabilities struct {
	ColorDepth            CapabilityTier
	SupportsKitty         bool
	SupportsSixel         bool
	SupportsITerm2Images  bool
	SupportsOSC8Hyperlink bool
	Cols, Rows            int
}
