package script

// Fallback builds the deterministic five-scene template used when the model
// response cannot be parsed. It never fails and contains no randomized
// fields: identical inputs produce identical scripts.
//
// Timing: fixed 2s intro and outro, with the remaining time split 40/40/20
// across typing, reveal and highlight, so the scene durations sum exactly to
// Duration*1000.
func Fallback(prompt, style string, settings AlgorithmSettings) *VideoScript {
	duration := settings.Duration
	if duration <= 0 {
		duration = 30
	}

	palette := PaletteFor(style)
	remaining := (duration - 4) * 1000

	resolution := settings.Resolution
	if resolution == "" {
		resolution = "1080p"
	}
	fps := settings.FPS
	if fps <= 0 {
		fps = 60
	}

	music := "synthwave_loop"
	if style == StyleMinimal {
		music = "ambient_soft"
	}
	ambient := []string{"particle_whoosh"}
	if style == StyleMatrix {
		ambient = []string{"digital_rain", "terminal_beep"}
	}

	behavior := BehaviorFloat
	if style == StyleMatrix {
		behavior = BehaviorRain
	}

	return &VideoScript{
		Metadata: Metadata{
			Title:           prompt,
			Description:     "A " + style + " style vibe coding video",
			TotalDurationMS: duration * 1000,
			Resolution:      resolution,
			FPS:             fps,
			AspectRatio:     "9:16",
		},
		Scenes: []VideoScene{
			{
				Type:       SceneIntro,
				DurationMS: 2000,
				AnimationConfig: AnimationConfig{
					TypeSpeed:      0,
					CursorStyle:    "block",
					HighlightLines: []int{},
					CameraZoom:     1.2,
					Particles:      true,
					GlowEffect:     true,
					Easing:         "easeOutCubic",
				},
				VisualEffects: VisualEffects{
					Saturation:          1.2,
					Contrast:            1.1,
					Noise:               0.02,
					ChromaticAberration: chromaticFor(style, 0.003),
					Scanlines:           style == StyleMatrix,
					Vignette:            0.3,
				},
			},
			{
				Type:       SceneCodeTyping,
				DurationMS: remaining * 40 / 100,
				AnimationConfig: AnimationConfig{
					TypeSpeed:      50 * settings.AnimationSpeed,
					CursorStyle:    "block",
					HighlightLines: []int{},
					CameraZoom:     1.0,
					Particles:      settings.ParticleDensity != DensityLow,
					GlowEffect:     settings.GlowIntensity > 0.5,
					Easing:         "linear",
				},
				VisualEffects: VisualEffects{
					Saturation: 1.0,
					Contrast:   1.0,
					Noise:      0.01,
					Scanlines:  style == StyleMatrix,
					Vignette:   0.2,
				},
			},
			{
				Type:       SceneCodeReveal,
				DurationMS: remaining * 40 / 100,
				AnimationConfig: AnimationConfig{
					TypeSpeed:      80 * settings.AnimationSpeed,
					CursorStyle:    "line",
					HighlightLines: []int{1, 2, 3},
					CameraZoom:     1.1,
					Particles:      true,
					GlowEffect:     true,
					Easing:         "easeInOutQuad",
					Delay:          200,
				},
				VisualEffects: VisualEffects{
					Saturation:          1.1,
					Contrast:            1.05,
					Noise:               0.015,
					ChromaticAberration: chromaticFor(style, 0.002),
					Scanlines:           style == StyleMatrix,
					Vignette:            0.25,
				},
			},
			{
				Type:       SceneHighlight,
				DurationMS: remaining * 20 / 100,
				AnimationConfig: AnimationConfig{
					TypeSpeed:      0,
					CursorStyle:    "none",
					HighlightLines: []int{2, 3, 4},
					FocusArea:      &FocusArea{X: 0, Y: 100, Width: 400, Height: 200},
					CameraZoom:     1.3,
					Particles:      true,
					GlowEffect:     true,
					Easing:         "easeOutQuint",
				},
				VisualEffects: VisualEffects{
					Saturation:          1.3,
					Contrast:            1.15,
					Noise:               0.02,
					ChromaticAberration: chromaticFor(style, 0.004),
					Scanlines:           style == StyleMatrix,
					Vignette:            0.35,
				},
			},
			{
				Type:       SceneOutro,
				DurationMS: 2000,
				AnimationConfig: AnimationConfig{
					TypeSpeed:      0,
					CursorStyle:    "none",
					HighlightLines: []int{},
					CameraZoom:     0.9,
					Particles:      true,
					GlowEffect:     true,
					Easing:         "easeInCubic",
				},
				VisualEffects: VisualEffects{
					Blur:       2,
					Saturation: 0.8,
					Contrast:   0.9,
					Noise:      0.03,
					Vignette:   0.5,
				},
			},
		},
		Audio: Audio{
			BackgroundMusic: music,
			TypingSounds:    true,
			AmbientEffects:  ambient,
		},
		ColorPalette: palette,
		ParticleSystem: ParticleSystem{
			Enabled:   settings.ParticleDensity != DensityLow,
			Count:     particleCount(settings.ParticleDensity),
			Speed:     settings.AnimationSpeed,
			SizeRange: [2]float64{1, 4},
			Colors:    []string{palette.Primary, palette.Secondary},
			Behavior:  behavior,
		},
	}
}

func chromaticFor(style string, amount float64) float64 {
	if style == StyleCyberpunk {
		return amount
	}
	return 0
}

func particleCount(density string) int {
	switch density {
	case DensityHigh:
		return 200
	case DensityMedium:
		return 100
	default:
		return 30
	}
}
