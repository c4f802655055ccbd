// Package particles holds the decorative simulations: the pointer trail and
// the ambient falling/rising drops. Nothing here has a correctness contract
// beyond staying bounded, so every container is capped and pruned per tick.
package particles

import (
	"math/rand/v2"
)

// Trail tuning, matching the browser cursor trail it replaces.
const (
	DefaultTrailCap = 16
	OpacityDecay    = 0.95
	SizeDecay       = 0.98
	OpacityFloor    = 0.01
	initialOpacity  = 0.8
)

// Particle is one trail speck.
type Particle struct {
	ID      uint64
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Life    int
}

// Alive reports whether the particle survives the next prune.
func (p Particle) Alive() bool {
	return p.Life > 0 && p.Opacity > OpacityFloor
}

// Trail is the capped, ordered set of particles following the pointer.
// Oldest particles come first.
type Trail struct {
	cap       int
	rng       *rand.Rand
	nextID    uint64
	particles []Particle
}

// NewTrail creates a trail holding at most limit particles.
func NewTrail(limit int, rng *rand.Rand) *Trail {
	if limit <= 0 {
		limit = DefaultTrailCap
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Trail{cap: limit, rng: rng, particles: make([]Particle, 0, limit)}
}

// Spawn adds a particle at the pointer position, evicting the oldest ones
// when the cap is reached.
func (t *Trail) Spawn(x, y float64) {
	t.nextID++
	p := Particle{
		ID:      t.nextID,
		X:       x,
		Y:       y,
		VX:      (t.rng.Float64() - 0.5) * 2,
		VY:      (t.rng.Float64() - 0.5) * 2,
		Size:    t.rng.Float64()*4 + 2,
		Opacity: initialOpacity,
		Life:    30 + t.rng.IntN(20),
	}
	if len(t.particles) >= t.cap {
		drop := len(t.particles) - t.cap + 1
		t.particles = append(t.particles[:0], t.particles[drop:]...)
	}
	t.particles = append(t.particles, p)
}

// Tick advances every particle one animation frame and prunes the dead.
func (t *Trail) Tick() {
	live := t.particles[:0]
	for _, p := range t.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Opacity *= OpacityDecay
		p.Size *= SizeDecay
		p.Life--
		if p.Alive() {
			live = append(live, p)
		}
	}
	t.particles = live
}

// Particles returns a copy of the active particles, oldest first.
func (t *Trail) Particles() []Particle {
	out := make([]Particle, len(t.particles))
	copy(out, t.particles)
	return out
}

// Len returns the number of active particles.
func (t *Trail) Len() int { return len(t.particles) }

// Cap returns the configured cap.
func (t *Trail) Cap() int { return t.cap }

// Clear drops every particle.
func (t *Trail) Clear() { t.particles = t.particles[:0] }
