package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/palette"
	"github.com/san-kum/pendulums/internal/particle"
	"github.com/san-kum/pendulums/internal/physics"
	"github.com/san-kum/pendulums/internal/trail"
)

type SVGOptions struct {
	Background string
	// ArmWidth is the stroke width of arms and trails.
	ArmWidth float64
	// Particles toggles drawing of live particles.
	Particles bool
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Background: "#000000", ArmWidth: 2, Particles: true}
}

// EnsembleToSVG draws the current frame of e: for each pendulum its arms and
// bobs when visible, then its trail, then its particles.
func EnsembleToSVG(e *ensemble.Ensemble, opts SVGOptions) string {
	vp := e.Viewport()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, vp.Width, vp.Height, vp.Width, vp.Height, opts.Background))

	for _, p := range e.Pendulums() {
		writePendulum(&sb, p, opts)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes EnsembleToSVG to w.
func WriteSVG(w io.Writer, e *ensemble.Ensemble, opts SVGOptions) error {
	_, err := io.WriteString(w, EnsembleToSVG(e, opts))
	return err
}

func writePendulum(sb *strings.Builder, p *physics.DoublePendulum, opts SVGOptions) {
	if p.Visible() {
		arms := p.Arms()
		if finite(arms.Pivot, arms.Bob1, arms.Bob2) {
			col := palette.Arm(p.Hue()).Hex()
			m1, m2 := p.Masses()
			sb.WriteString(fmt.Sprintf(`<g stroke="%s" fill="%s" stroke-width="%.1f">
<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
<circle cx="%.2f" cy="%.2f" r="%.2f"/>
<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>
<circle cx="%.2f" cy="%.2f" r="%.2f"/>
</g>
`, col, col, opts.ArmWidth,
				arms.Pivot.X, arms.Pivot.Y, arms.Bob1.X, arms.Bob1.Y,
				arms.Bob1.X, arms.Bob1.Y, m1/2,
				arms.Bob1.X, arms.Bob1.Y, arms.Bob2.X, arms.Bob2.Y,
				arms.Bob2.X, arms.Bob2.Y, m2/2))
		}
	}

	if p.TrailEnabled() && p.Trail().Len() > 1 {
		c := p.Center()
		sb.WriteString(fmt.Sprintf(`<g fill="none" stroke-width="%.1f" transform="translate(%.2f %.2f)">
`, opts.ArmWidth, c.X, c.Y))
		p.Trail().Segments(func(from, to trail.Point) {
			if !finite(from.Pos, to.Pos) {
				return
			}
			sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>
`, from.Pos.X, from.Pos.Y, to.Pos.X, to.Pos.Y, palette.Arm(to.Hue).Hex()))
		})
		sb.WriteString("</g>\n")
	}

	if opts.Particles {
		for _, pt := range p.Emitter().Particles() {
			writeParticle(sb, pt.Footprint(), pt.Hue, pt.Alpha())
		}
	}
}

func writeParticle(sb *strings.Builder, f particle.Footprint, hue, alpha float64) {
	if f.Size <= 0 || !f.Center.IsFinite() {
		return
	}
	col := palette.Particle(hue).Hex()

	switch f.Shape {
	case particle.Disc:
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>
`, f.Center.X, f.Center.Y, f.Radius(), col, alpha))
	default:
		pts := make([]string, len(f.Vertices))
		for i, v := range f.Vertices {
			pts[i] = fmt.Sprintf("%.2f,%.2f", v.X, v.Y)
		}
		sb.WriteString(fmt.Sprintf(`<polygon points="%s" fill="%s" fill-opacity="%.3f"/>
`, strings.Join(pts, " "), col, alpha))
	}
}

func finite(vs ...dynamo.Vec2) bool {
	for _, v := range vs {
		if !v.IsFinite() {
			return false
		}
	}
	return true
}
