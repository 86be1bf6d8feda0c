package script

import "testing"

func TestNormalizeSceneType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"intro", "intro"},
		{"code_typing", "code_typing"},
		{"code_reveal", "code_reveal"},
		{"transition", "transition"},
		{"highlight", "highlight"},
		{"zoom", "zoom"},
		{"outro", "outro"},
		{"explosion", "code_typing"},
		{"", "code_typing"},
		{"INTRO", "code_typing"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeSceneType(tt.in); got != tt.want {
				t.Errorf("NormalizeSceneType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_RepairsScenes(t *testing.T) {
	s := &VideoScript{
		Scenes: []VideoScene{
			{Type: "hologram", DurationMS: 0},
			{Type: "outro", DurationMS: -5, CodeContent: "left over"},
			{Type: "code_reveal", DurationMS: 4000, CodeContent: "const x = 1;"},
		},
	}

	Normalize(s)

	if s.Scenes[0].Type != SceneCodeTyping {
		t.Errorf("scene[0].Type = %s, want code_typing", s.Scenes[0].Type)
	}
	if s.Scenes[0].DurationMS != DefaultSceneDurationMS {
		t.Errorf("scene[0].DurationMS = %d, want %d", s.Scenes[0].DurationMS, DefaultSceneDurationMS)
	}
	if s.Scenes[1].DurationMS != DefaultSceneDurationMS {
		t.Errorf("scene[1].DurationMS = %d, want %d", s.Scenes[1].DurationMS, DefaultSceneDurationMS)
	}
	if s.Scenes[1].CodeContent != "" {
		t.Error("outro scene kept code_content, want it cleared")
	}
	if s.Scenes[2].CodeContent != "const x = 1;" {
		t.Error("code_reveal scene lost its code_content")
	}
}

func TestStyleGuide_UnknownFallsBackToNeon(t *testing.T) {
	for _, style := range []string{"vaporwave", "", "Matrix"} {
		if got := StyleGuide(style); got != StyleGuide(StyleNeon) {
			t.Errorf("StyleGuide(%q) differs from neon guide", style)
		}
		if got := PaletteFor(style); got != PaletteFor(StyleNeon) {
			t.Errorf("PaletteFor(%q) differs from neon palette", style)
		}
	}
}

func TestStartTimeMS(t *testing.T) {
	s := &VideoScript{Scenes: []VideoScene{
		{Type: SceneIntro, DurationMS: 2000},
		{Type: SceneCodeTyping, DurationMS: 5000},
		{Type: SceneOutro, DurationMS: 3000},
	}}

	tests := []struct {
		index int
		want  int
	}{
		{0, 0},
		{1, 2000},
		{2, 7000},
		{3, 10000},
	}
	for _, tt := range tests {
		if got := s.StartTimeMS(tt.index); got != tt.want {
			t.Errorf("StartTimeMS(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}

	if got := s.SumDurationsMS(); got != 10000 {
		t.Errorf("SumDurationsMS() = %d, want 10000", got)
	}
}

func TestApplyCodeSnippets_RoundRobin(t *testing.T) {
	s := &VideoScript{Scenes: []VideoScene{
		{Type: SceneIntro},
		{Type: SceneCodeTyping},
		{Type: SceneCodeReveal},
		{Type: SceneTransition},
		{Type: SceneCodeTyping},
		{Type: SceneCodeTyping},
	}}

	ApplyCodeSnippets(s, "a counter hook", "react")

	pool := SnippetsFor("a counter hook", "react")
	if s.Scenes[0].CodeContent != "" {
		t.Error("intro scene received code content")
	}
	if s.Scenes[1].CodeContent != pool[0] {
		t.Error("first code scene did not get pool[0]")
	}
	if s.Scenes[2].CodeContent != pool[1] {
		t.Error("second code scene did not get pool[1]")
	}
	if s.Scenes[4].CodeContent != pool[2] {
		t.Error("third code scene did not get pool[2]")
	}
	// Fourth occurrence wraps.
	if s.Scenes[5].CodeContent != pool[0] {
		t.Error("fourth code scene did not wrap back to pool[0]")
	}
}

func TestSnippetsFor_UnknownLanguageUsesTypeScript(t *testing.T) {
	got := SnippetsFor("p", "cobol")
	want := SnippetsFor("p", "typescript")

	if len(got) != len(want) {
		t.Fatalf("pool size = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("snippet[%d] differs from typescript pool", i)
		}
	}
}

func TestSnippetsFor_InterpolatesPrompt(t *testing.T) {
	got := SnippetsFor("binary search tree", "python")
	if want := "# binary search tree"; got[0][:len(want)] != want {
		t.Errorf("first snippet does not open with prompt comment: %q", got[0])
	}
}
