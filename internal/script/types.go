// Package script defines the canonical video script document and the pure
// generation logic that produces it: scene normalization, style lookup
// tables, code snippet pools and the deterministic fallback generator.
package script

// Scene types recognized by the player. Anything else coming back from the
// model is coerced to SceneCodeTyping during normalization.
const (
	SceneIntro      = "intro"
	SceneCodeTyping = "code_typing"
	SceneCodeReveal = "code_reveal"
	SceneTransition = "transition"
	SceneHighlight  = "highlight"
	SceneZoom       = "zoom"
	SceneOutro      = "outro"
)

const (
	DensityLow    = "low"
	DensityMedium = "medium"
	DensityHigh   = "high"
)

const (
	BehaviorRain  = "rain"
	BehaviorFloat = "float"
)

// DefaultSceneDurationMS is applied when a scene arrives without a usable
// duration.
const DefaultSceneDurationMS = 3000

// AlgorithmSettings are the user-chosen generation parameters. They are
// immutable once submitted for a generation request.
type AlgorithmSettings struct {
	CodeStyle       string  `json:"codeStyle"`
	AnimationSpeed  float64 `json:"animationSpeed"`
	ParticleDensity string  `json:"particleDensity"`
	GlowIntensity   float64 `json:"glowIntensity"`
	SyntaxTheme     string  `json:"syntaxTheme"`
	CameraMovement  string  `json:"cameraMovement"`
	TransitionType  string  `json:"transitionType"`
	Resolution      string  `json:"resolution"`
	FPS             int     `json:"fps"`
	Duration        int     `json:"duration"`
	BackgroundType  string  `json:"backgroundType"`
	SoundEnabled    bool    `json:"soundEnabled"`
}

// DefaultSettings mirrors the studio UI defaults.
func DefaultSettings() AlgorithmSettings {
	return AlgorithmSettings{
		CodeStyle:       "typescript",
		AnimationSpeed:  1.0,
		ParticleDensity: DensityMedium,
		GlowIntensity:   0.8,
		SyntaxTheme:     "monokai",
		CameraMovement:  "smooth",
		TransitionType:  "fade",
		Resolution:      "1080p",
		FPS:             60,
		Duration:        30,
		BackgroundType:  "gradient",
		SoundEnabled:    true,
	}
}

type FocusArea struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type AnimationConfig struct {
	TypeSpeed      float64    `json:"typeSpeed"`
	CursorStyle    string     `json:"cursorStyle"`
	HighlightLines []int      `json:"highlightLines"`
	FocusArea      *FocusArea `json:"focusArea"`
	CameraZoom     float64    `json:"cameraZoom"`
	Particles      bool       `json:"particles"`
	GlowEffect     bool       `json:"glowEffect"`
	Easing         string     `json:"easing"`
	Delay          int        `json:"delay"`
}

type VisualEffects struct {
	Blur                float64 `json:"blur"`
	Saturation          float64 `json:"saturation"`
	Contrast            float64 `json:"contrast"`
	Noise               float64 `json:"noise"`
	ChromaticAberration float64 `json:"chromatic_aberration"`
	Scanlines           bool    `json:"scanlines"`
	Vignette            float64 `json:"vignette"`
}

// VideoScene is one timed segment of the script. Scene order is significant:
// a scene's start time is the sum of the durations before it and is always
// recomputed, never stored as authoritative state.
type VideoScene struct {
	Type            string          `json:"type"`
	DurationMS      int             `json:"duration_ms"`
	CodeContent     string          `json:"code_content,omitempty"`
	AnimationConfig AnimationConfig `json:"animation_config"`
	VisualEffects   VisualEffects   `json:"visual_effects"`
}

type Metadata struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	TotalDurationMS int    `json:"total_duration_ms"`
	Resolution      string `json:"resolution"`
	FPS             int    `json:"fps"`
	AspectRatio     string `json:"aspect_ratio"`
}

type Audio struct {
	BackgroundMusic string   `json:"background_music"`
	TypingSounds    bool     `json:"typing_sounds"`
	AmbientEffects  []string `json:"ambient_effects"`
}

type ColorPalette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Glow       string `json:"glow"`
}

type ParticleSystem struct {
	Enabled   bool       `json:"enabled"`
	Count     int        `json:"count"`
	Speed     float64    `json:"speed"`
	SizeRange [2]float64 `json:"size_range"`
	Colors    []string   `json:"colors"`
	Behavior  string     `json:"behavior"`
}

// VideoScript is the canonical output of generation. Once produced it is an
// immutable artifact: the player and the persistence layer only read it.
type VideoScript struct {
	Metadata       Metadata       `json:"metadata"`
	Scenes         []VideoScene   `json:"scenes"`
	Audio          Audio          `json:"audio"`
	ColorPalette   ColorPalette   `json:"color_palette"`
	ParticleSystem ParticleSystem `json:"particle_system"`
}

// StartTimeMS returns the implicit start of scene index, derived purely from
// the durations of the scenes before it.
func (s *VideoScript) StartTimeMS(index int) int {
	total := 0
	for i := 0; i < index && i < len(s.Scenes); i++ {
		d := s.Scenes[i].DurationMS
		if d <= 0 {
			d = DefaultSceneDurationMS
		}
		total += d
	}
	return total
}

// SumDurationsMS is the sum of all scene durations. The player treats
// Metadata.TotalDurationMS as the playback bound; this figure is exposed for
// diagnostics and reconciliation checks.
func (s *VideoScript) SumDurationsMS() int {
	return s.StartTimeMS(len(s.Scenes))
}
