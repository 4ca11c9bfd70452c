package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/palette"
	"github.com/san-kum/pendulums/internal/particle"
	"github.com/san-kum/pendulums/internal/physics"
	"github.com/san-kum/pendulums/internal/trail"
)

const strokeWeight = 2

// ToColor converts a palette colour with alpha in [0, 1] to a raylib colour.
func ToColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b, a := palette.RGBA8(c, alpha)
	return rl.NewColor(r, g, b, a)
}

func vec(v dynamo.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}

// DrawEnsemble draws each pendulum in order: arms and bobs when visible,
// then its trail, then its particles. World units are screen pixels.
func DrawEnsemble(e *ensemble.Ensemble) {
	for _, p := range e.Pendulums() {
		drawPendulum(p)
	}
}

func drawPendulum(p *physics.DoublePendulum) {
	if p.Visible() {
		arms := p.Arms()
		col := ToColor(palette.Arm(p.Hue()), 1)
		rl.DrawLineEx(vec(arms.Pivot), vec(arms.Bob1), strokeWeight, col)
		rl.DrawLineEx(vec(arms.Bob1), vec(arms.Bob2), strokeWeight, col)

		m1, m2 := p.Masses()
		rl.DrawCircleV(vec(arms.Bob1), float32(m1/2), col)
		rl.DrawCircleV(vec(arms.Bob2), float32(m2/2), col)
	}

	if p.TrailEnabled() {
		center := p.Center()
		p.Trail().Segments(func(from, to trail.Point) {
			rl.DrawLineEx(vec(from.Pos.Add(center)), vec(to.Pos.Add(center)), strokeWeight, ToColor(palette.Arm(to.Hue), 1))
		})
	}

	p.Emitter().Each(drawParticle)
}

func drawParticle(pt *particle.Particle) {
	f := pt.Footprint()
	if f.Size <= 0 {
		return
	}
	col := ToColor(palette.Particle(pt.Hue), pt.Alpha())

	switch f.Shape {
	case particle.Triangle:
		// raylib wants counter-clockwise on screen: top, bottom-left, bottom-right
		rl.DrawTriangle(vec(f.Vertices[0]), vec(f.Vertices[1]), vec(f.Vertices[2]), col)
	case particle.Square:
		rl.DrawRectangleV(vec(f.Vertices[0]), rl.NewVector2(float32(f.Size), float32(f.Size)), col)
	default:
		rl.DrawCircleV(vec(f.Center), float32(f.Radius()), col)
	}
}
