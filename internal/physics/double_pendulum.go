package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/particle"
	"github.com/san-kum/pendulums/internal/trail"
)

// HueRange is the top of the hue scale; hues live in [0, HueRange).
const HueRange = 255.0

// Params configures a pendulum at construction. Lengths, masses and gravity
// are fixed for the lifetime of the pendulum.
type Params struct {
	R1, R2       float64
	M1, M2       float64
	A1, A2       float64
	G            float64
	Center       dynamo.Vec2
	TrailEnabled bool
	TrailLength  int
	Visible      bool
}

// DefaultParams returns the base configuration every ensemble member starts from.
func DefaultParams() Params {
	return Params{
		R1: 150, R2: 50,
		M1: 10, M2: 10,
		A1: math.Pi / 4, A2: math.Pi / 2,
		G:            1,
		TrailEnabled: true,
		TrailLength:  trail.DefaultLength,
		Visible:      true,
	}
}

// Validate checks that the parameters describe a physical pendulum.
func (p Params) Validate() error {
	for name, v := range map[string]float64{
		"r1": p.R1, "r2": p.R2, "m1": p.M1, "m2": p.M2,
		"a1": p.A1, "a2": p.A2, "g": p.G,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrParameterBounds, name)
		}
	}
	if p.R1 <= 0 || p.R2 <= 0 {
		return fmt.Errorf("%w: arm lengths must be positive (r1=%g, r2=%g)", dynamo.ErrParameterBounds, p.R1, p.R2)
	}
	if p.M1 <= 0 || p.M2 <= 0 {
		return fmt.Errorf("%w: masses must be positive (m1=%g, m2=%g)", dynamo.ErrParameterBounds, p.M1, p.M2)
	}
	if p.TrailEnabled && p.TrailLength < 1 {
		return fmt.Errorf("%w: trail length must be at least 1, got %d", dynamo.ErrParameterBounds, p.TrailLength)
	}
	return nil
}

// DoublePendulum is one chaotic oscillator with its own trail and emitter.
type DoublePendulum struct {
	r1, r2 float64
	m1, m2 float64
	g      float64
	center dynamo.Vec2

	a1, a2       float64
	a1v, a2v     float64
	angleDiff    float64
	hue          float64
	ticks        int
	trailEnabled bool
	visible      bool

	trail   *trail.Trail
	emitter *particle.Emitter
}

// New builds a pendulum at rest from p. The emitter is owned by the pendulum
// from here on and is moved to the tip on every update.
func New(p Params, emitter *particle.Emitter) (*DoublePendulum, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if emitter == nil {
		return nil, fmt.Errorf("%w: emitter is required", dynamo.ErrInvalidConfig)
	}
	length := p.TrailLength
	if length < 1 {
		length = 1
	}

	return &DoublePendulum{
		r1: p.R1, r2: p.R2,
		m1: p.M1, m2: p.M2,
		g:            p.G,
		center:       p.Center,
		a1:           p.A1,
		a2:           p.A2,
		trailEnabled: p.TrailEnabled,
		visible:      p.Visible,
		trail:        trail.New(length),
		emitter:      emitter,
	}, nil
}

// Accelerations evaluates the angular accelerations of both links for the
// given angles and angular velocities.
func (d *DoublePendulum) Accelerations(a1, a2, a1v, a2v float64) (float64, float64) {
	m1, m2, r1, r2, g := d.m1, d.m2, d.r1, d.r2, d.g

	num1 := -g * (2*m1 + m2) * math.Sin(a1)
	num2 := -m2 * g * math.Sin(a1-2*a2)
	num3 := -2 * math.Sin(a1-a2) * m2
	num4 := a2v*a2v*r2 + a1v*a1v*r1*math.Cos(a1-a2)
	den := r1 * (2*m1 + m2 - m2*math.Cos(2*a1-2*a2))
	a1a := (num1 + num2 + num3*num4) / den

	num1 = 2 * math.Sin(a1-a2)
	num2 = a1v * a1v * r1 * (m1 + m2)
	num3 = g * (m1 + m2) * math.Cos(a1)
	num4 = a2v * a2v * r2 * m2 * math.Cos(a1-a2)
	den = r2 * (2*m1 + m2 - m2*math.Cos(2*a1-2*a2))
	a2a := (num1 * (num2 + num3 + num4)) / den

	return a1a, a2a
}

// Update advances one tick: integrate, wrap the angles, recompute the hue,
// record the tip and spawn one particle there.
func (d *DoublePendulum) Update() {
	a1a, a2a := d.Accelerations(d.a1, d.a2, d.a1v, d.a2v)

	d.a1v += a1a
	d.a2v += a2a
	d.a1 += d.a1v
	d.a2 += d.a2v

	d.a1 = dynamo.WrapAngle(d.a1)
	d.a2 = dynamo.WrapAngle(d.a2)

	d.angleDiff = dynamo.WrapAngle(d.a1 - d.a2)
	d.hue = dynamo.Remap(d.angleDiff, 0, dynamo.TwoPi, 0, HueRange)
	d.ticks++

	_, tip := d.kinematics()
	if d.trailEnabled {
		d.trail.Append(trail.Point{Pos: tip, Hue: d.hue})
	}

	d.emitter.SetOrigin(tip.Add(d.center))
	d.emitter.Spawn(d.hue)
}

// Step runs one full frame: Update followed by advancing the particles
// against the viewport.
func (d *DoublePendulum) Step(b dynamo.Bounds) {
	d.Update()
	d.emitter.Advance(b)
}

// kinematics returns both bob positions relative to the pivot.
func (d *DoublePendulum) kinematics() (bob1, bob2 dynamo.Vec2) {
	x1 := d.r1 * math.Sin(d.a1)
	y1 := d.r1 * math.Cos(d.a1)
	x2 := x1 + d.r2*math.Sin(d.a2)
	y2 := y1 + d.r2*math.Cos(d.a2)
	return dynamo.V(x1, y1), dynamo.V(x2, y2)
}

// Arms holds the world-space endpoints of both links.
type Arms struct {
	Pivot, Bob1, Bob2 dynamo.Vec2
}

// Arms returns the link endpoints in world space for drawing.
func (d *DoublePendulum) Arms() Arms {
	b1, b2 := d.kinematics()
	return Arms{Pivot: d.center, Bob1: b1.Add(d.center), Bob2: b2.Add(d.center)}
}

// Tip returns the world position of the second bob.
func (d *DoublePendulum) Tip() dynamo.Vec2 {
	_, b2 := d.kinematics()
	return b2.Add(d.center)
}

// Energy is the kinetic plus potential energy of the point-mass model with
// y growing downwards and velocities measured per tick.
func (d *DoublePendulum) Energy() float64 {
	v1sq := d.r1 * d.r1 * d.a1v * d.a1v
	v2sq := v1sq + d.r2*d.r2*d.a2v*d.a2v +
		2*d.r1*d.r2*d.a1v*d.a2v*math.Cos(d.a1-d.a2)
	ke := 0.5*d.m1*v1sq + 0.5*d.m2*v2sq

	b1, b2 := d.kinematics()
	pe := -(d.m1*d.g*b1.Y + d.m2*d.g*b2.Y)

	return ke + pe
}

func (d *DoublePendulum) Angles() (a1, a2 float64) { return d.a1, d.a2 }

func (d *DoublePendulum) Velocities() (a1v, a2v float64) { return d.a1v, d.a2v }

func (d *DoublePendulum) AngleDiff() float64 { return d.angleDiff }

// Hue is the current colour in [0, HueRange), derived from AngleDiff.
func (d *DoublePendulum) Hue() float64 { return d.hue }

func (d *DoublePendulum) Lengths() (r1, r2 float64) { return d.r1, d.r2 }

func (d *DoublePendulum) Masses() (m1, m2 float64) { return d.m1, d.m2 }

func (d *DoublePendulum) Gravity() float64 { return d.g }

func (d *DoublePendulum) Center() dynamo.Vec2 { return d.center }

func (d *DoublePendulum) Ticks() int { return d.ticks }

// Trail holds tip positions relative to the pivot; add Center for world space.
func (d *DoublePendulum) Trail() *trail.Trail { return d.trail }

func (d *DoublePendulum) TrailEnabled() bool { return d.trailEnabled }

func (d *DoublePendulum) Emitter() *particle.Emitter { return d.emitter }

// Visible reports whether the arms and bobs should be drawn. Particles and
// trail are drawn regardless.
func (d *DoublePendulum) Visible() bool { return d.visible }

func (d *DoublePendulum) SetVisible(v bool) { d.visible = v }

// GetParams returns the fixed parameters and current state for display.
func (d *DoublePendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"r1":  d.r1,
		"r2":  d.r2,
		"m1":  d.m1,
		"m2":  d.m2,
		"g":   d.g,
		"a1":  d.a1,
		"a2":  d.a2,
		"a1v": d.a1v,
		"a2v": d.a2v,
		"hue": d.hue,
	}
}
