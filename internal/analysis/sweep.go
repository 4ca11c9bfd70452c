package analysis

import (
	"context"

	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/sim"
)

// SweepPoint summarizes one headless run at a given perturbation step.
type SweepPoint struct {
	Delta       float64
	FinalSpread float64
	MaxSpread   float64
	Exponent    float64
}

// SweepPerturbation runs one ensemble per delta, concurrently, and reports how
// far each one spread. Everything except Delta comes from base.
func SweepPerturbation(ctx context.Context, base ensemble.Config, run sim.Config, deltas []float64) ([]SweepPoint, error) {
	jobs := make([]sim.Job, len(deltas))
	for i, d := range deltas {
		ec := base
		ec.Delta = d
		jobs[i] = sim.Job{Ensemble: ec, Run: run}
	}

	results, err := sim.NewBatch(jobs).Run(ctx)
	if err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(deltas))
	for i, r := range results {
		p := SweepPoint{Delta: deltas[i], Exponent: Divergence(r)}
		for _, s := range r.Samples {
			if s.Spread > p.MaxSpread {
				p.MaxSpread = s.Spread
			}
		}
		if n := len(r.Samples); n > 0 {
			p.FinalSpread = r.Samples[n-1].Spread
		}
		points[i] = p
	}
	return points, nil
}

// LinearDeltas returns steps values spaced evenly from lo to hi inclusive.
func LinearDeltas(lo, hi float64, steps int) []float64 {
	if steps <= 1 {
		return []float64{lo}
	}
	out := make([]float64, steps)
	step := (hi - lo) / float64(steps-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
