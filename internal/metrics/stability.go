package metrics

import (
	"github.com/san-kum/pendulums/internal/ensemble"
)

// NonFinite reports the largest number of pendulums whose tip was NaN or Inf
// on any single tick. Degenerate parameters make the update singular and the
// simulation carries on rather than failing, so this is where it shows up.
type NonFinite struct {
	name  string
	worst int
}

func NewNonFinite() *NonFinite {
	return &NonFinite{name: "non_finite"}
}

func (n *NonFinite) Name() string { return n.name }

func (n *NonFinite) Observe(ens *ensemble.Ensemble) {
	count := 0
	for _, p := range ens.Pendulums() {
		if !p.Tip().IsFinite() {
			count++
		}
	}
	if count > n.worst {
		n.worst = count
	}
}

func (n *NonFinite) Value() float64 { return float64(n.worst) }

func (n *NonFinite) Reset() { n.worst = 0 }

// Stability is the fraction of ticks on which every tip was finite.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(ens *ensemble.Ensemble) {
	s.samples++
	for _, p := range ens.Pendulums() {
		if !p.Tip().IsFinite() {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
