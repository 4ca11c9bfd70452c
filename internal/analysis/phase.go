package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/pendulums/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait collects the (a1, a2) angles of pendulum i across r.
func PhasePortrait(r *sim.Result, i int) []Point {
	pts := make([]Point, 0, len(r.Samples))
	for _, s := range r.Samples {
		if i < 0 || i >= len(s.Pendulums) {
			continue
		}
		pts = append(pts, Point{X: s.Pendulums[i].A1, Y: s.Pendulums[i].A2})
	}
	return pts
}

// PhasePortraitToASCII plots points on a width x height grid. Both angles live
// in [0, 2pi) so the axes are fixed rather than fitted to the data.
func PhasePortraitToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		col := int(p.X / (2 * math.Pi) * float64(width-1))
		row := height - 1 - int(p.Y/(2*math.Pi)*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
