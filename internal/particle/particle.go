package particle

import (
	"math"
	"math/rand"

	"github.com/san-kum/pendulums/internal/dynamo"
)

// Shape selects the rendered footprint of a particle.
type Shape int

const (
	Disc Shape = iota
	Triangle
	Square
)

var shapeNames = [...]string{"disc", "triangle", "square"}

func (s Shape) String() string {
	if s < Disc || s > Square {
		return "disc"
	}
	return shapeNames[s]
}

// ShapeFromIndex maps a host selector to a shape. Anything outside {0,1,2}
// falls back to Disc.
func ShapeFromIndex(i int) Shape {
	switch Shape(i) {
	case Triangle:
		return Triangle
	case Square:
		return Square
	default:
		return Disc
	}
}

// ParseShape accepts a shape name and falls back to Disc.
func ParseShape(name string) Shape {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i)
		}
	}
	return Disc
}

// Config holds the forces and spawn distributions shared by every particle
// of an emitter. A range with Min == Max pins the drawn value.
type Config struct {
	Gravity     dynamo.Vec2
	Wind        dynamo.Vec2
	MaxSize     float64
	SizeRange   float64
	LifespanMin float64
	LifespanMax float64
	DecayMin    float64
	DecayMax    float64
	SpeedMin    float64
	SpeedMax    float64
}

// DefaultConfig returns the stock forces and spawn ranges.
func DefaultConfig() Config {
	return Config{
		Gravity:     dynamo.V(0, 0.05),
		Wind:        dynamo.V(-0.02, 0),
		MaxSize:     8,
		SizeRange:   300,
		LifespanMin: 150,
		LifespanMax: 300,
		DecayMin:    1,
		DecayMax:    3,
		SpeedMin:    0.5,
		SpeedMax:    2,
	}
}

// Particle is a single decaying point. Acc is transient: forces are applied
// fresh every tick and cleared after integration.
type Particle struct {
	Pos       dynamo.Vec2
	Vel       dynamo.Vec2
	Acc       dynamo.Vec2
	Lifespan  float64
	DecayRate float64
	MaxSize   float64
	SizeRange float64
	Hue       float64
	Shape     Shape
}

// New draws a particle at origin with the randomized velocity, lifespan and
// decay rate described by cfg.
func New(origin dynamo.Vec2, hue float64, shape Shape, cfg Config, rng *rand.Rand) Particle {
	speed := uniform(rng, cfg.SpeedMin, cfg.SpeedMax)
	vel := dynamo.V(uniform(rng, -1, 1), uniform(rng, -1, 0)).Scale(speed)

	return Particle{
		Pos:       origin,
		Vel:       vel,
		Lifespan:  uniform(rng, cfg.LifespanMin, cfg.LifespanMax),
		DecayRate: uniform(rng, cfg.DecayMin, cfg.DecayMax),
		MaxSize:   cfg.MaxSize,
		SizeRange: cfg.SizeRange,
		Hue:       hue,
		Shape:     shape,
	}
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// ApplyForce accumulates f into the acceleration for this tick.
func (p *Particle) ApplyForce(f dynamo.Vec2) {
	p.Acc = p.Acc.Add(f)
}

// Advance applies gravity and wind, integrates one tick and ages the particle.
func (p *Particle) Advance(cfg Config) {
	p.ApplyForce(cfg.Gravity)
	p.ApplyForce(cfg.Wind)

	p.Vel = p.Vel.Add(p.Acc)
	p.Pos = p.Pos.Add(p.Vel)
	p.Lifespan -= p.DecayRate
	p.Acc = dynamo.Vec2{}
}

// IsDead reports whether the particle has run out of life or left the viewport.
func (p *Particle) IsDead(b dynamo.Bounds) bool {
	return p.Lifespan < 0 || !b.Contains(p.Pos)
}

// Size is the rendered size, shrinking linearly with the remaining lifespan.
func (p *Particle) Size() float64 {
	rng := p.SizeRange
	if rng == 0 {
		rng = 300
	}
	return dynamo.Remap(p.Lifespan, 0, rng, 0, p.MaxSize)
}

// Alpha is the opacity in [0, 1]; the lifespan doubles as an 8-bit alpha.
func (p *Particle) Alpha() float64 {
	return math.Max(0, math.Min(1, p.Lifespan/255))
}
