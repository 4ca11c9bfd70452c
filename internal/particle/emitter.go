package particle

import (
	"math/rand"

	"github.com/san-kum/pendulums/internal/dynamo"
)

// Emitter owns the live particles spawned at a moving origin. Particles are
// never shared between emitters.
type Emitter struct {
	origin    dynamo.Vec2
	shape     Shape
	cfg       Config
	rng       *rand.Rand
	particles []Particle
}

// NewEmitter creates an empty emitter spawning discs at origin.
func NewEmitter(origin dynamo.Vec2, cfg Config, rng *rand.Rand) *Emitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Emitter{
		origin:    origin,
		cfg:       cfg,
		rng:       rng,
		particles: make([]Particle, 0, 128),
	}
}

func (e *Emitter) Origin() dynamo.Vec2 { return e.origin }

func (e *Emitter) SetOrigin(v dynamo.Vec2) { e.origin = v }

func (e *Emitter) Shape() Shape { return e.shape }

func (e *Emitter) Config() Config { return e.cfg }

// SetVariant changes the shape of subsequently spawned particles only.
// Values outside {0,1,2} select Disc.
func (e *Emitter) SetVariant(v int) {
	e.shape = ShapeFromIndex(v)
}

// SetShape is SetVariant for callers that already hold a Shape.
func (e *Emitter) SetShape(s Shape) {
	e.shape = ShapeFromIndex(int(s))
}

// Spawn appends exactly one particle of the current shape at the origin.
func (e *Emitter) Spawn(hue float64) {
	e.particles = append(e.particles, New(e.origin, hue, e.shape, e.cfg, e.rng))
}

// Advance moves and ages every live particle, then drops the dead ones.
// Survivors are compacted in place and keep their relative order.
func (e *Emitter) Advance(b dynamo.Bounds) {
	alive := 0
	for i := range e.particles {
		p := &e.particles[i]
		p.Advance(e.cfg)
		if p.IsDead(b) {
			continue
		}
		e.particles[alive] = *p
		alive++
	}
	// zero the tail so dropped particles are not retained by the backing array
	for i := alive; i < len(e.particles); i++ {
		e.particles[i] = Particle{}
	}
	e.particles = e.particles[:alive]
}

// Len returns the number of live particles.
func (e *Emitter) Len() int { return len(e.particles) }

// Particles exposes the live particles for rendering. The slice is only
// valid until the next Spawn or Advance and must not be modified.
func (e *Emitter) Particles() []Particle { return e.particles }

// Each calls fn for every live particle, oldest first.
func (e *Emitter) Each(fn func(p *Particle)) {
	for i := range e.particles {
		fn(&e.particles[i])
	}
}

// Clear drops every live particle.
func (e *Emitter) Clear() {
	e.particles = e.particles[:0]
}
