package particle

import (
	"math"

	"github.com/san-kum/pendulums/internal/dynamo"
)

// Footprint is the render geometry of a particle. For a disc Vertices is
// empty and Size is the diameter; for a triangle the vertices are top,
// bottom-left, bottom-right; for a square they run clockwise from top-left.
type Footprint struct {
	Shape    Shape
	Center   dynamo.Vec2
	Size     float64
	Vertices []dynamo.Vec2
}

// Footprint computes the shape geometry at the current size.
func (p *Particle) Footprint() Footprint {
	size := p.Size()
	f := Footprint{Shape: p.Shape, Center: p.Pos, Size: size}
	x, y := p.Pos.X, p.Pos.Y

	switch p.Shape {
	case Triangle:
		h := math.Sqrt(3) / 2 * size
		f.Vertices = []dynamo.Vec2{
			{X: x, Y: y - h/2},
			{X: x - size/2, Y: y + h/2},
			{X: x + size/2, Y: y + h/2},
		}
	case Square:
		half := size / 2
		f.Vertices = []dynamo.Vec2{
			{X: x - half, Y: y - half},
			{X: x + half, Y: y - half},
			{X: x + half, Y: y + half},
			{X: x - half, Y: y + half},
		}
	}
	return f
}

// Radius is half the footprint size, never negative.
func (f Footprint) Radius() float64 {
	return math.Max(0, f.Size/2)
}
