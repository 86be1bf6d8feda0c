package script

// Built-in style identifiers. Unknown styles resolve to DefaultStyle for
// both the prompt guide and the color palette.
const (
	StyleMatrix    = "matrix"
	StyleNeon      = "neon"
	StyleCyberpunk = "cyberpunk"
	StyleMinimal   = "minimal"

	DefaultStyle = StyleNeon
)

var styleGuides = map[string]string{
	StyleMatrix: `
- Use classic green-on-black color scheme (#00FF41 on #0D0208)
- Implement falling code rain effect in background
- Monospace font with slight glow
- Glitch effects on transitions
- Terminal-style cursor (block, blinking)
- Scan lines overlay for authenticity
- Characters should appear to "fall" into place`,

	StyleNeon: `
- Vibrant cyan (#00FFFF) and magenta (#FF00FF) as primary colors
- Strong glow effects with bloom
- Dark purple/black backgrounds (#0a0a0f)
- Smooth, flowing animations
- Gradient accents
- Soft particle trails
- Glass-morphism elements for UI overlays`,

	StyleCyberpunk: `
- Hot pink (#FF0080), electric blue (#00D4FF), yellow (#FFE600)
- Glitch effects and chromatic aberration
- Cityscape or circuit board backgrounds
- Angular, aggressive transitions
- Holographic overlays
- Data corruption effects
- Japanese/Chinese characters as decorative elements`,

	StyleMinimal: `
- Clean white/light gray backgrounds
- Subtle shadows and depth
- Monochrome code with single accent color
- Smooth, understated animations
- Focus on typography and spacing
- No particles, minimal effects
- Professional, refined aesthetic`,
}

var stylePalettes = map[string]ColorPalette{
	StyleMatrix: {
		Primary:    "#00FF41",
		Secondary:  "#008F11",
		Accent:     "#00FF41",
		Background: "#0D0208",
		Text:       "#00FF41",
		Glow:       "#00FF41",
	},
	StyleNeon: {
		Primary:    "#00FFFF",
		Secondary:  "#FF00FF",
		Accent:     "#00FF88",
		Background: "#0a0a0f",
		Text:       "#FFFFFF",
		Glow:       "#00FFFF",
	},
	StyleCyberpunk: {
		Primary:    "#FF0080",
		Secondary:  "#00D4FF",
		Accent:     "#FFE600",
		Background: "#0a0a0f",
		Text:       "#FFFFFF",
		Glow:       "#FF0080",
	},
	StyleMinimal: {
		Primary:    "#333333",
		Secondary:  "#666666",
		Accent:     "#0066FF",
		Background: "#FAFAFA",
		Text:       "#1a1a1a",
		Glow:       "#0066FF",
	},
}

// StyleGuide returns the prompt guide for a style, falling back to the
// default style's guide for unknown identifiers.
func StyleGuide(style string) string {
	if g, ok := styleGuides[style]; ok {
		return g
	}
	return styleGuides[DefaultStyle]
}

// PaletteFor returns the color palette for a style with the same fallback
// rule as StyleGuide.
func PaletteFor(style string) ColorPalette {
	if p, ok := stylePalettes[style]; ok {
		return p
	}
	return stylePalettes[DefaultStyle]
}

// KnownStyle reports whether style is one of the built-in presets.
func KnownStyle(style string) bool {
	_, ok := styleGuides[style]
	return ok
}

// OverrideStyle installs or replaces a style guide and palette at load time.
// Used by the optional styles.yaml config file.
func OverrideStyle(name, guide string, palette ColorPalette) {
	if guide != "" {
		styleGuides[name] = guide
	}
	if palette != (ColorPalette{}) {
		stylePalettes[name] = palette
	}
}
