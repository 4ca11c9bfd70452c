package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
)

type Simulator struct {
	ens       *ensemble.Ensemble
	metrics   []Metric
	observers []Observer
}

func New(ens *ensemble.Ensemble) *Simulator {
	return &Simulator{
		ens:       ens,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Ensemble() *ensemble.Ensemble { return s.ens }

// Run resets the ensemble into cfg.Viewport and advances it cfg.Ticks times.
// On cancellation the partial result is returned together with the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Samples: make([]Sample, 0, cfg.Ticks/cfg.SampleEvery+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	if err := s.prepare(cfg); err != nil {
		return nil, err
	}
	result.Samples = append(result.Samples, s.sample(0))

	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, &dynamo.SimError{Tick: i, Wrapped: fmt.Errorf("%w: %w", dynamo.ErrCanceled, ctx.Err())}
		default:
		}

		s.ens.AdvanceAll()
		result.TicksTaken++

		for _, m := range s.metrics {
			m.Observe(s.ens)
		}
		for _, obs := range s.observers {
			obs.OnTick(s.ens)
		}

		if i%cfg.SampleEvery == 0 {
			result.Samples = append(result.Samples, s.sample(i))
		}
	}

	s.collect(result)
	return result, nil
}

// RunWithCallback advances like Run but hands every tick to callback instead
// of recording samples. Returning false stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(e *ensemble.Ensemble, tick int) bool) error {
	if cfg.SampleEvery == 0 {
		cfg.SampleEvery = 1
	}
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	if err := s.prepare(cfg); err != nil {
		return err
	}
	for i := 1; i <= cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return &dynamo.SimError{Tick: i, Wrapped: fmt.Errorf("%w: %w", dynamo.ErrCanceled, ctx.Err())}
		default:
		}

		s.ens.AdvanceAll()
		if !callback(s.ens, i) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Ticks)
	}
	if cfg.SampleEvery < 1 {
		return fmt.Errorf("%w: sample_every must be at least 1, got %d", dynamo.ErrInvalidConfig, cfg.SampleEvery)
	}
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport must be positive, got %vx%v", dynamo.ErrInvalidConfig, cfg.Viewport.Width, cfg.Viewport.Height)
	}
	return nil
}

func (s *Simulator) prepare(cfg Config) error {
	s.ens.SetViewport(cfg.Viewport)
	s.ens.SetVariant(int(cfg.Variant))
	return s.ens.Reset()
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) sample(tick int) Sample {
	ps := make([]PendulumSample, s.ens.Len())
	for i, p := range s.ens.Pendulums() {
		a1, a2 := p.Angles()
		tip := p.Tip()
		ps[i] = PendulumSample{A1: a1, A2: a2, TipX: tip.X, TipY: tip.Y, Hue: p.Hue()}
	}
	return Sample{
		Tick:      tick,
		Particles: s.ens.ParticleCount(),
		Spread:    s.ens.Spread(),
		Energy:    s.ens.Energy(),
		Pendulums: ps,
	}
}
