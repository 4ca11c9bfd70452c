package metrics

import (
	"math"

	"github.com/san-kum/pendulums/internal/ensemble"
)

// Energy is the mean ensemble energy over all observed ticks.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "mean_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(ens *ensemble.Ensemble) {
	v := ens.Energy()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	e.totalEnergy += v
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative departure of the ensemble energy from
// its first observed value. The integrator is not symplectic, so this grows.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(ens *ensemble.Ensemble) {
	energy := ens.Energy()

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		if !math.IsNaN(drift) {
			e.maxDrift = math.Max(e.maxDrift, drift)
		}
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
