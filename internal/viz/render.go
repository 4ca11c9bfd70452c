package viz

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/palette"
	"github.com/san-kum/pendulums/internal/particle"
	"github.com/san-kum/pendulums/internal/physics"
	"github.com/san-kum/pendulums/internal/trail"
)

// AutoScale picks the world units per dot that fit a fully extended pendulum
// of total length reach, with some margin, inside a subW x subH dot canvas.
func AutoScale(reach float64, subW, subH int) float64 {
	side := math.Min(float64(subW), float64(subH))
	if side <= 0 || reach <= 0 {
		return 1
	}
	return 2.2 * reach / side
}

// Viewport is the world rectangle covered by the canvas at scale.
func Viewport(c *Canvas, scale float64) dynamo.Bounds {
	return dynamo.Bounds{Width: float64(c.SubWidth()) * scale, Height: float64(c.SubHeight()) * scale}
}

// Renderer draws ensembles onto a canvas at a fixed world scale. Particles
// fade toward Backdrop as they age; the zero value is black.
type Renderer struct {
	Canvas   *Canvas
	Scale    float64
	Backdrop colorful.Color
}

func (r Renderer) dot(v dynamo.Vec2) (int, int) {
	return int(math.Floor(v.X / r.Scale)), int(math.Floor(v.Y / r.Scale))
}

func (r Renderer) toDots(v dynamo.Vec2) dynamo.Vec2 {
	return v.Scale(1 / r.Scale)
}

// Draw clears the canvas and draws every pendulum in ensemble order:
// arms and bobs when visible, the trail, then the particles.
func (r Renderer) Draw(e *ensemble.Ensemble) {
	r.Canvas.Clear()
	for _, p := range e.Pendulums() {
		r.drawPendulum(p)
	}
}

func (r Renderer) drawPendulum(p *physics.DoublePendulum) {
	if p.Visible() {
		arms := p.Arms()
		if arms.Bob2.IsFinite() && arms.Bob1.IsFinite() {
			col := palette.Arm(p.Hue())
			px, py := r.dot(arms.Pivot)
			b1x, b1y := r.dot(arms.Bob1)
			b2x, b2y := r.dot(arms.Bob2)
			r.Canvas.DrawLine(px, py, b1x, b1y, col)
			r.Canvas.DrawLine(b1x, b1y, b2x, b2y, col)

			m1, m2 := p.Masses()
			b1, b2 := r.toDots(arms.Bob1), r.toDots(arms.Bob2)
			r.Canvas.FillCircle(b1.X, b1.Y, m1/2/r.Scale, col)
			r.Canvas.FillCircle(b2.X, b2.Y, m2/2/r.Scale, col)
		}
	}

	if p.TrailEnabled() && p.Trail().Len() > 1 {
		center := p.Center()
		p.Trail().Segments(func(from, to trail.Point) {
			a, b := from.Pos.Add(center), to.Pos.Add(center)
			if !a.IsFinite() || !b.IsFinite() {
				return
			}
			x0, y0 := r.dot(a)
			x1, y1 := r.dot(b)
			r.Canvas.DrawLine(x0, y0, x1, y1, palette.Arm(to.Hue))
		})
	}

	p.Emitter().Each(func(pt *particle.Particle) {
		r.drawParticle(pt)
	})
}

func (r Renderer) drawParticle(pt *particle.Particle) {
	f := pt.Footprint()
	if f.Size <= 0 || !f.Center.IsFinite() {
		return
	}
	col := palette.Fade(palette.Particle(pt.Hue), r.Backdrop, pt.Alpha())
	center := r.toDots(f.Center)

	switch f.Shape {
	case particle.Triangle:
		r.Canvas.FillTriangle(r.toDots(f.Vertices[0]), r.toDots(f.Vertices[1]), r.toDots(f.Vertices[2]), col)
	case particle.Square:
		lo, hi := r.toDots(f.Vertices[0]), r.toDots(f.Vertices[2])
		r.Canvas.FillRect(lo.X, lo.Y, hi.X, hi.Y, col)
	default:
		r.Canvas.FillCircle(center.X, center.Y, f.Radius()/r.Scale, col)
	}
}
