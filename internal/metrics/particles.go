package metrics

import (
	"math"

	"github.com/san-kum/pendulums/internal/ensemble"
)

// Particles is the mean number of live particles per tick.
type Particles struct {
	name    string
	total   int
	samples int
}

func NewParticles() *Particles {
	return &Particles{name: "mean_particles"}
}

func (p *Particles) Name() string { return p.name }

func (p *Particles) Observe(ens *ensemble.Ensemble) {
	p.total += ens.ParticleCount()
	p.samples++
}

func (p *Particles) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.total) / float64(p.samples)
}

func (p *Particles) Reset() {
	p.total = 0
	p.samples = 0
}

// MaxSpread is the largest tip spread seen during the run.
type MaxSpread struct {
	name string
	max  float64
}

func NewMaxSpread() *MaxSpread {
	return &MaxSpread{name: "max_spread"}
}

func (m *MaxSpread) Name() string { return m.name }

func (m *MaxSpread) Observe(ens *ensemble.Ensemble) {
	s := ens.Spread()
	if !math.IsNaN(s) && s > m.max {
		m.max = s
	}
}

func (m *MaxSpread) Value() float64 { return m.max }

func (m *MaxSpread) Reset() { m.max = 0 }
