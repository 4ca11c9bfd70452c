package metrics

import "github.com/san-kum/pendulums/internal/sim"

// Default returns the metrics recorded for every headless run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewParticles(),
		NewMaxSpread(),
		NewEnergy(),
		NewEnergyDrift(),
		NewNonFinite(),
		NewStability(),
	}
}
