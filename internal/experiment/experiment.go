package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/metrics"
	"github.com/san-kum/pendulums/internal/sim"
	"github.com/san-kum/pendulums/internal/storage"
)

// Experiment is one headless run of a named configuration.
type Experiment struct {
	name      string
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(name string, cfg *config.Config) *Experiment {
	return &Experiment{name: name, cfg: cfg}
}

// Setup validates the config and builds the ensemble with the default metrics
// plus any extra ones.
func (e *Experiment) Setup(extra ...sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	ens, err := ensemble.New(e.cfg.EnsembleConfig(), e.cfg.Viewport())
	if err != nil {
		return err
	}

	e.simulator = sim.New(ens)
	for _, m := range metrics.Default() {
		e.simulator.AddMetric(m)
	}
	for _, m := range extra {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment %s not setup", e.name)
	}
	return e.simulator.Run(ctx, e.SimConfig())
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Ticks:       e.cfg.Run.Ticks,
		SampleEvery: e.cfg.Run.SampleEvery,
		Viewport:    e.cfg.Viewport(),
		Variant:     e.cfg.Variant(),
	}
}

// Info describes the run for storage.
func (e *Experiment) Info() storage.RunInfo {
	return storage.RunInfo{
		Preset:      e.name,
		Seed:        e.cfg.Ensemble.Seed,
		Count:       e.cfg.Ensemble.Count,
		Delta:       e.cfg.Ensemble.Delta,
		Ticks:       e.cfg.Run.Ticks,
		SampleEvery: e.cfg.Run.SampleEvery,
		Width:       e.cfg.Run.Width,
		Height:      e.cfg.Run.Height,
		Variant:     e.cfg.Variant().String(),
	}
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
