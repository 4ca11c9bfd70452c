package analysis

import (
	"math"

	"github.com/san-kum/pendulums/internal/sim"
)

// DivergenceExponent fits ln(spread) = a + lambda*tick by least squares and
// returns lambda, in 1/tick. Samples with a non-positive or non-finite spread
// are skipped. Fewer than two usable samples give 0.
func DivergenceExponent(ticks, spread []float64) float64 {
	n := len(ticks)
	if len(spread) < n {
		n = len(spread)
	}

	var sx, sy, sxx, sxy float64
	count := 0
	for i := 0; i < n; i++ {
		s := spread[i]
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		x, y := ticks[i], math.Log(s)
		sx += x
		sy += y
		sxx += x * x
		sxy += x * y
		count++
	}
	if count < 2 {
		return 0
	}

	c := float64(count)
	den := c*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (c*sxy - sx*sy) / den
}

// Divergence is DivergenceExponent over the spread recorded in r.
func Divergence(r *sim.Result) float64 {
	spread := r.Series(func(s sim.Sample) float64 { return s.Spread })
	return DivergenceExponent(r.Ticks(), spread)
}
