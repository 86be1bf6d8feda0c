package playback

import (
	"strings"
	"testing"

	"github.com/vibegen/vibegen-studio/internal/script"
)

func threeSceneScript() *script.VideoScript {
	return &script.VideoScript{
		Metadata: script.Metadata{TotalDurationMS: 10000},
		Scenes: []script.VideoScene{
			{Type: script.SceneIntro, DurationMS: 2000},
			{Type: script.SceneCodeTyping, DurationMS: 5000, CodeContent: "const x = 42;"},
			{Type: script.SceneOutro, DurationMS: 3000},
		},
	}
}

func TestPlayer_ActiveSceneAndProgress(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())
	p.Play()
	p.Seek(6000)

	st := p.Status()
	if st.ActiveSceneIndex != 1 {
		t.Errorf("active scene = %d, want 1", st.ActiveSceneIndex)
	}
	if st.SceneProgress != 0.8 {
		t.Errorf("scene progress = %g, want 0.8", st.SceneProgress)
	}
}

func TestPlayer_SceneBoundaries(t *testing.T) {
	tests := []struct {
		cursor int
		want   int
	}{
		{0, 0},
		{1999, 0},
		{2000, 1},
		{6999, 1},
		{7000, 2},
		{9999, 2},
	}

	p := NewPlayer(nil)
	p.Load(threeSceneScript())

	for _, tt := range tests {
		p.Seek(tt.cursor)
		if got := p.Status().ActiveSceneIndex; got != tt.want {
			t.Errorf("cursor %d: active scene = %d, want %d", tt.cursor, got, tt.want)
		}
	}
}

func TestPlayer_CursorPastScenesClampsToLast(t *testing.T) {
	vs := threeSceneScript()
	vs.Metadata.TotalDurationMS = 15000
	p := NewPlayer(nil)
	p.Load(vs)
	p.Seek(12000)

	st := p.Status()
	if st.ActiveSceneIndex != 2 {
		t.Errorf("active scene = %d, want last (2)", st.ActiveSceneIndex)
	}
	if st.SceneProgress != 1 {
		t.Errorf("scene progress = %g, want 1", st.SceneProgress)
	}
}

func TestPlayer_EmptyScript(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(&script.VideoScript{})
	p.Play()

	st := p.Status()
	if st.State != Stopped {
		t.Error("player started with zero scenes")
	}
	if st.ActiveSceneIndex != -1 {
		t.Errorf("active scene = %d, want -1", st.ActiveSceneIndex)
	}
}

func TestPlayer_TickStopsAndRewindsAtEnd(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())
	p.Play()
	p.Seek(9900)

	p.Tick()
	st := p.Status()
	if st.State != Stopped {
		t.Errorf("state = %v, want Stopped at end of timeline", st.State)
	}
	if st.CursorMS != 0 {
		t.Errorf("cursor = %d, want rewound to 0", st.CursorMS)
	}
}

func TestPlayer_TickAdvancesOnlyWhilePlaying(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())

	p.Tick()
	if got := p.Status().CursorMS; got != 0 {
		t.Errorf("cursor advanced while stopped: %d", got)
	}

	p.Play()
	p.Tick()
	p.Tick()
	if got := p.Status().CursorMS; got != 2*TickIntervalMS {
		t.Errorf("cursor = %d, want %d", got, 2*TickIntervalMS)
	}

	p.Pause()
	p.Tick()
	if got := p.Status().CursorMS; got != 2*TickIntervalMS {
		t.Errorf("cursor advanced while paused: %d", got)
	}
}

func TestPlayer_SkipClamps(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())

	p.SkipBy(-SkipStepMS)
	if got := p.Status().CursorMS; got != 0 {
		t.Errorf("cursor = %d, want clamped to 0", got)
	}

	p.Seek(8000)
	p.SkipBy(SkipStepMS)
	if got := p.Status().CursorMS; got != 10000 {
		t.Errorf("cursor = %d, want clamped to 10000", got)
	}
}

func TestPlayer_SeekToScene(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())

	p.SeekToScene(2)
	if got := p.Status().CursorMS; got != 7000 {
		t.Errorf("cursor = %d, want 7000", got)
	}

	// Out-of-range indexes are ignored.
	p.SeekToScene(9)
	p.SeekToScene(-1)
	if got := p.Status().CursorMS; got != 7000 {
		t.Errorf("cursor = %d after bad index, want 7000", got)
	}
}

func TestPlayer_TypedCode(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())
	p.Play()

	// Halfway through the typing scene: half the code is typed.
	p.Seek(4500)
	st := p.Status()
	want := "const x = 42;"[:6]
	if st.TypedCode != want {
		t.Errorf("typed = %q, want %q", st.TypedCode, want)
	}

	// Typed prefix never shrinks as the cursor advances through the scene.
	prev := 0
	for cursor := 2000; cursor < 7000; cursor += 500 {
		p.Seek(cursor)
		n := len(p.Status().TypedCode)
		if n < prev {
			t.Fatalf("typed length shrank: %d then %d at cursor %d", prev, n, cursor)
		}
		prev = n
	}

	// Stopped players render no typed code.
	p.Pause()
	if got := p.Status().TypedCode; got != "" {
		t.Errorf("typed = %q while stopped, want empty", got)
	}
}

func TestPlayer_TypedCodeFullAtSceneEnd(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())
	p.Play()
	p.Seek(6999)

	st := p.Status()
	if !strings.HasPrefix("const x = 42;", st.TypedCode) {
		t.Errorf("typed %q is not a prefix of the scene code", st.TypedCode)
	}
	if len(st.TypedCode) < len("const x = 42;")-1 {
		t.Errorf("typed = %q, want nearly complete at scene end", st.TypedCode)
	}
}

func TestPlayer_TotalFallsBackToSummedDurations(t *testing.T) {
	vs := threeSceneScript()
	vs.Metadata.TotalDurationMS = 0
	p := NewPlayer(nil)
	p.Load(vs)

	if got := p.Status().TotalDurationMS; got != 10000 {
		t.Errorf("total = %d, want 10000 from summed durations", got)
	}
}

func TestPlayer_LoadResets(t *testing.T) {
	p := NewPlayer(nil)
	p.Load(threeSceneScript())
	p.Play()
	p.Seek(5000)

	p.Load(threeSceneScript())
	st := p.Status()
	if st.CursorMS != 0 || st.State != Stopped {
		t.Errorf("load did not reset: cursor=%d state=%v", st.CursorMS, st.State)
	}
}
