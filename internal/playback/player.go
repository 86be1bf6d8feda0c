// Package playback implements the script timeline player: a cursor state
// machine over an immutable video script, plus the particle simulation that
// animates alongside it. The player never mutates the script it is given.
package playback

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vibegen/vibegen-studio/internal/script"
)

const (
	// TickIntervalMS is the playback clock resolution.
	TickIntervalMS = 100

	// SkipStepMS is the jump applied by the skip controls.
	SkipStepMS = 5000
)

type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Status is a read-only snapshot of the player for one frame.
type Status struct {
	State            State   `json:"-"`
	StateName        string  `json:"state"`
	CursorMS         int     `json:"cursor_ms"`
	TotalDurationMS  int     `json:"total_duration_ms"`
	ActiveSceneIndex int     `json:"active_scene_index"`
	SceneProgress    float64 `json:"scene_progress"`
	TypedCode        string  `json:"typed_code"`
	Muted            bool    `json:"muted"`
}

type Player struct {
	mu     sync.Mutex
	vs     *script.VideoScript
	cursor int
	state  State
	muted  bool
	logger *slog.Logger
}

func NewPlayer(logger *slog.Logger) *Player {
	return &Player{logger: logger}
}

// Load installs a script and resets the cursor. A nil script unloads the
// player.
func (p *Player) Load(vs *script.VideoScript) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vs = vs
	p.cursor = 0
	p.state = Stopped
}

func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.vs == nil || len(p.vs.Scenes) == 0 {
		return
	}
	p.state = Playing
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = Stopped
}

func (p *Player) TogglePlay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		p.state = Stopped
		return
	}
	if p.vs != nil && len(p.vs.Scenes) > 0 {
		p.state = Playing
	}
}

func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Seek moves the cursor, clamped to the playable range.
func (p *Player) Seek(ms int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = p.clamp(ms)
}

// SkipBy jumps forward or backward by delta milliseconds.
func (p *Player) SkipBy(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = p.clamp(p.cursor + delta)
}

// SeekToScene moves the cursor to the start of scene index.
func (p *Player) SeekToScene(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.vs == nil || index < 0 || index >= len(p.vs.Scenes) {
		return
	}
	p.cursor = p.vs.StartTimeMS(index)
}

// Tick advances the clock by one interval. Reaching the end of the timeline
// stops playback and rewinds to the start.
func (p *Player) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing || p.vs == nil {
		return
	}

	p.cursor += TickIntervalMS
	if total := p.totalMS(); p.cursor >= total {
		p.cursor = 0
		p.state = Stopped
	}
}

// Status derives the frame state for the current cursor position.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := Status{
		State:            p.state,
		StateName:        p.state.String(),
		CursorMS:         p.cursor,
		Muted:            p.muted,
		ActiveSceneIndex: -1,
	}
	if p.vs == nil {
		return st
	}

	st.TotalDurationMS = p.totalMS()
	st.ActiveSceneIndex = p.activeSceneIndex()
	if st.ActiveSceneIndex < 0 {
		return st
	}

	scene := &p.vs.Scenes[st.ActiveSceneIndex]
	st.SceneProgress = p.sceneProgress(st.ActiveSceneIndex, scene)

	if p.state == Playing && scene.CodeContent != "" && script.HasCode(scene.Type) {
		runes := []rune(scene.CodeContent)
		n := int(st.SceneProgress * float64(len(runes)))
		if n > len(runes) {
			n = len(runes)
		}
		st.TypedCode = string(runes[:n])
	}
	return st
}

// activeSceneIndex finds the first scene whose end lies past the cursor. A
// cursor beyond every scene clamps to the last one so the frame always has
// something to show.
func (p *Player) activeSceneIndex() int {
	if len(p.vs.Scenes) == 0 {
		return -1
	}
	end := 0
	for i := range p.vs.Scenes {
		end += sceneDuration(&p.vs.Scenes[i])
		if p.cursor < end {
			return i
		}
	}
	return len(p.vs.Scenes) - 1
}

func (p *Player) sceneProgress(index int, scene *script.VideoScene) float64 {
	start := p.vs.StartTimeMS(index)
	d := sceneDuration(scene)
	progress := float64(p.cursor-start) / float64(d)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// totalMS is the playback bound. Script metadata is authoritative; the sum
// of scene durations is only used when the metadata carries no total.
func (p *Player) totalMS() int {
	if p.vs.Metadata.TotalDurationMS > 0 {
		return p.vs.Metadata.TotalDurationMS
	}
	return p.vs.SumDurationsMS()
}

func (p *Player) clamp(ms int) int {
	if ms < 0 {
		return 0
	}
	if p.vs == nil {
		return 0
	}
	if total := p.totalMS(); ms > total {
		return total
	}
	return ms
}

func sceneDuration(s *script.VideoScene) int {
	if s.DurationMS <= 0 {
		return script.DefaultSceneDurationMS
	}
	return s.DurationMS
}

// Run drives the player clock until the context is cancelled.
func (p *Player) Run(ctx context.Context) {
	ticker := time.NewTicker(TickIntervalMS * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick()
		}
	}
}
