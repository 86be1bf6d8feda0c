package script

import (
	"reflect"
	"testing"
)

func TestFallback_DurationSum(t *testing.T) {
	for _, duration := range []int{15, 20, 30, 45, 60} {
		settings := DefaultSettings()
		settings.Duration = duration

		s := Fallback("test prompt", StyleNeon, settings)

		want := duration * 1000
		got := s.SumDurationsMS()

		// Intro and outro take 4s; the 40/40/20 split of the rest divides
		// evenly, so the sum matches the requested duration exactly.
		if got != want {
			t.Errorf("duration=%d: scene sum = %d, want %d", duration, got, want)
		}
		if s.Metadata.TotalDurationMS != want {
			t.Errorf("duration=%d: total_duration_ms = %d, want %d", duration, s.Metadata.TotalDurationMS, want)
		}
	}
}

func TestFallback_FiveScenes(t *testing.T) {
	s := Fallback("counter hook", StyleMatrix, DefaultSettings())

	wantTypes := []string{SceneIntro, SceneCodeTyping, SceneCodeReveal, SceneHighlight, SceneOutro}
	if len(s.Scenes) != len(wantTypes) {
		t.Fatalf("scene count = %d, want %d", len(s.Scenes), len(wantTypes))
	}
	for i, want := range wantTypes {
		if s.Scenes[i].Type != want {
			t.Errorf("scene[%d].Type = %s, want %s", i, s.Scenes[i].Type, want)
		}
	}

	if s.Scenes[0].DurationMS != 2000 {
		t.Errorf("intro duration = %d, want 2000", s.Scenes[0].DurationMS)
	}
	if s.Scenes[4].DurationMS != 2000 {
		t.Errorf("outro duration = %d, want 2000", s.Scenes[4].DurationMS)
	}
}

func TestFallback_Deterministic(t *testing.T) {
	settings := DefaultSettings()
	settings.Duration = 25

	a := Fallback("a prompt", StyleCyberpunk, settings)
	b := Fallback("a prompt", StyleCyberpunk, settings)

	if !reflect.DeepEqual(a, b) {
		t.Error("fallback scripts for identical inputs differ")
	}
}

func TestFallback_StyleConditionedEffects(t *testing.T) {
	settings := DefaultSettings()

	matrix := Fallback("p", StyleMatrix, settings)
	for i, scene := range matrix.Scenes[:4] {
		if !scene.VisualEffects.Scanlines {
			t.Errorf("matrix scene[%d] scanlines = false, want true", i)
		}
		if scene.VisualEffects.ChromaticAberration != 0 {
			t.Errorf("matrix scene[%d] chromatic aberration = %v, want 0", i, scene.VisualEffects.ChromaticAberration)
		}
	}

	cyber := Fallback("p", StyleCyberpunk, settings)
	if cyber.Scenes[0].VisualEffects.ChromaticAberration != 0.003 {
		t.Errorf("cyberpunk intro chromatic aberration = %v, want 0.003", cyber.Scenes[0].VisualEffects.ChromaticAberration)
	}
	if cyber.Scenes[0].VisualEffects.Scanlines {
		t.Error("cyberpunk intro scanlines = true, want false")
	}
}

func TestFallback_ParticleSystem(t *testing.T) {
	tests := []struct {
		density     string
		wantEnabled bool
		wantCount   int
	}{
		{DensityHigh, true, 200},
		{DensityMedium, true, 100},
		{DensityLow, false, 30},
	}

	for _, tt := range tests {
		t.Run(tt.density, func(t *testing.T) {
			settings := DefaultSettings()
			settings.ParticleDensity = tt.density

			s := Fallback("p", StyleNeon, settings)
			if s.ParticleSystem.Enabled != tt.wantEnabled {
				t.Errorf("enabled = %v, want %v", s.ParticleSystem.Enabled, tt.wantEnabled)
			}
			if s.ParticleSystem.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", s.ParticleSystem.Count, tt.wantCount)
			}
		})
	}
}

func TestFallback_MatrixBehaviorIsRain(t *testing.T) {
	if got := Fallback("p", StyleMatrix, DefaultSettings()).ParticleSystem.Behavior; got != BehaviorRain {
		t.Errorf("matrix behavior = %s, want rain", got)
	}
	if got := Fallback("p", StyleNeon, DefaultSettings()).ParticleSystem.Behavior; got != BehaviorFloat {
		t.Errorf("neon behavior = %s, want float", got)
	}
}

func TestFallback_UnknownStyleUsesNeonPalette(t *testing.T) {
	s := Fallback("p", "vaporwave", DefaultSettings())
	if !reflect.DeepEqual(s.ColorPalette, PaletteFor(StyleNeon)) {
		t.Errorf("unknown style palette = %+v, want neon palette", s.ColorPalette)
	}
}
