package playback

import (
	"math/rand"
	"sync"

	"github.com/vibegen/vibegen-studio/internal/script"
)

// Particle is one animated point in the overlay field.
type Particle struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Size    float64 `json:"size"`
	Opacity float64 `json:"opacity"`
	Color   string  `json:"color"`
}

// Simulation animates the particle field described by a script's particle
// system. Particles that drift off an edge re-enter from the opposite edge,
// keeping the field density constant.
type Simulation struct {
	mu        sync.Mutex
	particles []Particle
	width     float64
	height    float64
	rng       *rand.Rand
}

func NewSimulation(width, height float64, seed int64) *Simulation {
	return &Simulation{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Init resets the field from the particle system settings. A disabled system
// clears the field.
func (s *Simulation) Init(ps script.ParticleSystem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !ps.Enabled || ps.Count <= 0 {
		s.particles = nil
		return
	}

	speed := ps.Speed
	if speed <= 0 {
		speed = 1
	}
	minSize, maxSize := ps.SizeRange[0], ps.SizeRange[1]
	if maxSize <= minSize {
		minSize, maxSize = 1, 4
	}

	s.particles = make([]Particle, ps.Count)
	for i := range s.particles {
		p := Particle{
			X:       s.rng.Float64() * s.width,
			Y:       s.rng.Float64() * s.height,
			Size:    minSize + s.rng.Float64()*(maxSize-minSize),
			Opacity: 0.3 + s.rng.Float64()*0.5,
		}
		if ps.Behavior == script.BehaviorRain {
			p.VX = 0
			p.VY = (s.rng.Float64()*2 + 1) * speed
		} else {
			p.VX = (s.rng.Float64() - 0.5) * speed
			p.VY = (s.rng.Float64() - 0.5) * speed
		}
		if len(ps.Colors) > 0 {
			p.Color = ps.Colors[s.rng.Intn(len(ps.Colors))]
		}
		s.particles[i] = p
	}
}

// Step advances every particle by one frame.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.particles {
		p := &s.particles[i]
		p.X += p.VX
		p.Y += p.VY

		if p.X < 0 {
			p.X = s.width
		} else if p.X > s.width {
			p.X = 0
		}
		if p.Y < 0 {
			p.Y = s.height
		} else if p.Y > s.height {
			p.Y = 0
		}
	}
}

// Snapshot copies the current field.
func (s *Simulation) Snapshot() []Particle {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Count reports the live particle count.
func (s *Simulation) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.particles)
}
