// Package ensemble owns the fixed-size collection of double pendulums that
// are simulated together and periodically reseeded.
//
// The ensemble is strictly serial: one AdvanceAll per frame, no locking.
// Hosts own the clock and call Reset when their timer fires.
package ensemble

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/particle"
	"github.com/san-kum/pendulums/internal/physics"
)

const (
	DefaultCount = 25
	DefaultDelta = 0.0001
)

// Config describes how Reset builds the ensemble.
type Config struct {
	Count    int
	Delta    float64
	Base     physics.Params
	Particle particle.Config
	Seed     int64
}

// DefaultConfig returns 25 pendulums perturbed by 0.0001 around the default
// pendulum parameters.
func DefaultConfig() Config {
	return Config{
		Count:    DefaultCount,
		Delta:    DefaultDelta,
		Base:     physics.DefaultParams(),
		Particle: particle.DefaultConfig(),
		Seed:     1,
	}
}

// Validate checks that every pendulum Reset would build is valid.
func (c Config) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be positive, got %d", dynamo.ErrInvalidConfig, c.Count)
	}
	last := c.Base
	last.R1 = c.Base.R1 + float64(c.Count-1)*c.Delta
	last.R2 = c.Base.R2 - float64(c.Count-1)*c.Delta
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := last.Validate(); err != nil {
		return fmt.Errorf("pendulum %d: %w", c.Count-1, err)
	}
	return nil
}

// Ensemble is the set of independently evolving pendulums.
type Ensemble struct {
	cfg        Config
	viewport   dynamo.Bounds
	variant    particle.Shape
	pendulums  []*physics.DoublePendulum
	generation int
	ticks      int
}

// New validates cfg and builds the first generation centred in viewport.
func New(cfg Config, viewport dynamo.Bounds) (*Ensemble, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Ensemble{cfg: cfg, viewport: viewport}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset discards every pendulum and builds Count fresh ones with radii
// r1 + i·δ and r2 − i·δ, empty trails and empty emitters. The pivot is the
// centre of the current viewport. On error the current generation is kept.
func (e *Ensemble) Reset() error {
	gen := e.generation + 1
	center := e.viewport.Center()
	pendulums := make([]*physics.DoublePendulum, 0, e.cfg.Count)

	for i := 0; i < e.cfg.Count; i++ {
		p := e.cfg.Base
		p.R1 = e.cfg.Base.R1 + float64(i)*e.cfg.Delta
		p.R2 = e.cfg.Base.R2 - float64(i)*e.cfg.Delta
		p.Center = center

		rng := rand.New(rand.NewSource(e.seedFor(gen, i)))
		em := particle.NewEmitter(center, e.cfg.Particle, rng)
		em.SetShape(e.variant)

		dp, err := physics.New(p, em)
		if err != nil {
			return fmt.Errorf("ensemble: pendulum %d: %w", i, err)
		}
		pendulums = append(pendulums, dp)
	}

	e.pendulums = pendulums
	e.generation = gen
	e.ticks = 0
	return nil
}

func (e *Ensemble) seedFor(gen, i int) int64 {
	return e.cfg.Seed*1_000_003 + int64(gen)*int64(e.cfg.Count) + int64(i)
}

// AdvanceAll runs one frame on every pendulum against the current viewport.
func (e *Ensemble) AdvanceAll() {
	for _, p := range e.pendulums {
		p.Step(e.viewport)
	}
	e.ticks++
}

// SetVariant selects the particle shape for every emitter, now and after
// later resets. Values outside {0,1,2} select discs.
func (e *Ensemble) SetVariant(v int) {
	e.variant = particle.ShapeFromIndex(v)
	for _, p := range e.pendulums {
		p.Emitter().SetVariant(v)
	}
}

func (e *Ensemble) Variant() particle.Shape { return e.variant }

// SetViewport updates the bounds used for particle death. Pivots move to
// the new centre on the next Reset.
func (e *Ensemble) SetViewport(b dynamo.Bounds) { e.viewport = b }

func (e *Ensemble) Viewport() dynamo.Bounds { return e.viewport }

// SetVisible shows or hides the arms of every pendulum.
func (e *Ensemble) SetVisible(v bool) {
	e.cfg.Base.Visible = v
	for _, p := range e.pendulums {
		p.SetVisible(v)
	}
}

// ToggleVisible flips arm visibility and returns the new state.
func (e *Ensemble) ToggleVisible() bool {
	v := !e.cfg.Base.Visible
	e.SetVisible(v)
	return v
}

func (e *Ensemble) Config() Config { return e.cfg }

func (e *Ensemble) Len() int { return len(e.pendulums) }

func (e *Ensemble) Pendulum(i int) *physics.DoublePendulum { return e.pendulums[i] }

// Pendulums exposes the current generation for read-only rendering.
func (e *Ensemble) Pendulums() []*physics.DoublePendulum { return e.pendulums }

// Generation counts resets, starting at 1 for the ensemble built by New.
func (e *Ensemble) Generation() int { return e.generation }

// Ticks counts frames since the last reset.
func (e *Ensemble) Ticks() int { return e.ticks }

// ParticleCount is the number of live particles across all emitters.
func (e *Ensemble) ParticleCount() int {
	n := 0
	for _, p := range e.pendulums {
		n += p.Emitter().Len()
	}
	return n
}

// Tips returns the world position of every pendulum tip.
func (e *Ensemble) Tips() []dynamo.Vec2 {
	tips := make([]dynamo.Vec2, len(e.pendulums))
	for i, p := range e.pendulums {
		tips[i] = p.Tip()
	}
	return tips
}

// Energy returns the mean mechanical energy across pendulums.
func (e *Ensemble) Energy() float64 {
	if len(e.pendulums) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range e.pendulums {
		sum += p.Energy()
	}
	return sum / float64(len(e.pendulums))
}

// Centroid is the mean tip position.
func (e *Ensemble) Centroid() dynamo.Vec2 {
	return Centroid(e.Tips())
}

// Spread is the RMS distance of the tips from their centroid. It is the
// ensemble's measure of how far the perturbed pendulums have separated.
func (e *Ensemble) Spread() float64 {
	return Spread(e.Tips())
}

func Centroid(points []dynamo.Vec2) dynamo.Vec2 {
	if len(points) == 0 {
		return dynamo.Vec2{}
	}
	var c dynamo.Vec2
	for _, p := range points {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(points)))
}

func Spread(points []dynamo.Vec2) float64 {
	if len(points) == 0 {
		return 0
	}
	c := Centroid(points)
	sum := 0.0
	for _, p := range points {
		d := p.Sub(c).Len()
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(points)))
}
