package generator

import (
	"fmt"
	"strings"

	"github.com/vibegen/vibegen-studio/internal/script"
)

// BuildSystemPrompt assembles the system message for the completion gateway:
// the generator persona, the style guide for the requested style, and the
// full settings block.
func BuildSystemPrompt(style string, settings script.AlgorithmSettings) string {
	var b strings.Builder

	b.WriteString(`You are an advanced AI video script generator specializing in creating viral "vibe coding" videos. You generate highly detailed, frame-by-frame video scripts optimized for social media engagement.

## YOUR EXPERTISE:
- Creating visually stunning code animations
- Designing particle effects and glow systems
- Timing code reveals for maximum impact
- Building tension and visual interest
- Optimizing for different platforms (TikTok, YouTube Shorts, Instagram Reels)

`)

	fmt.Fprintf(&b, "## STYLE GUIDE FOR %q:\n%s\n\n", strings.ToUpper(style), script.StyleGuide(style))

	fmt.Fprintf(&b, `## ALGORITHM SETTINGS:
- Code Style: %s
- Animation Speed: %gx
- Particle Density: %s
- Glow Intensity: %g
- Syntax Theme: %s
- Camera Movement: %s
- Transition Type: %s
- Resolution: %s
- FPS: %d
- Duration: %d seconds
- Background: %s

`, settings.CodeStyle, settings.AnimationSpeed, settings.ParticleDensity,
		settings.GlowIntensity, settings.SyntaxTheme, settings.CameraMovement,
		settings.TransitionType, settings.Resolution, settings.FPS,
		settings.Duration, settings.BackgroundType)

	b.WriteString(`## OUTPUT FORMAT:
Generate a complete JSON video script with:
1. Metadata (title, description, timing)
2. Detailed scenes array with:
   - Scene type and timing
   - Code content (if applicable)
   - Animation configuration
   - Visual effects settings
3. Audio configuration
4. Color palette
5. Particle system settings

IMPORTANT:
- Make the code visually interesting and educational
- Use dramatic reveals and typing animations
- Include particle effects at key moments
- Design for viral potential
- Ensure smooth transitions between scenes`)

	return b.String()
}

// BuildUserPrompt wraps the creator's prompt with the timing and platform
// requirements the script must satisfy.
func BuildUserPrompt(prompt string, settings script.AlgorithmSettings) string {
	duration := settings.Duration
	if duration <= 0 {
		duration = 30
	}
	density := settings.ParticleDensity
	if density == "" {
		density = script.DensityMedium
	}
	camera := settings.CameraMovement
	if camera == "" {
		camera = "smooth"
	}

	return fmt.Sprintf(`Create a %d-second viral vibe coding video script for:

%q

The video should:
1. Start with an attention-grabbing intro (first 2-3 seconds are critical)
2. Show code being written/revealed with perfect timing
3. Include %s particle density effects
4. Use %s camera movements
5. Build to a satisfying conclusion
6. Be optimized for TikTok/Reels vertical format

Generate the complete JSON video script now.`, duration, prompt, density, camera)
}
