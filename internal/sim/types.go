package sim

import (
	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/particle"
)

// Metric accumulates a single number over a run. Observe is called once per
// tick after the ensemble has advanced.
type Metric interface {
	Name() string
	Observe(e *ensemble.Ensemble)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(e *ensemble.Ensemble)
}

// Config describes a headless run in a fixed viewport.
type Config struct {
	Ticks       int
	SampleEvery int
	Viewport    dynamo.Bounds
	Variant     particle.Shape
}

type PendulumSample struct {
	A1   float64 `json:"a1"`
	A2   float64 `json:"a2"`
	TipX float64 `json:"tip_x"`
	TipY float64 `json:"tip_y"`
	Hue  float64 `json:"hue"`
}

type Sample struct {
	Tick      int              `json:"tick"`
	Particles int              `json:"particles"`
	Spread    float64          `json:"spread"`
	Energy    float64          `json:"energy"`
	Pendulums []PendulumSample `json:"pendulums"`
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	TicksTaken int
}

// Series extracts one value per sample.
func (r *Result) Series(fn func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = fn(s)
	}
	return out
}

// Ticks returns the tick of each sample.
func (r *Result) Ticks() []float64 {
	return r.Series(func(s Sample) float64 { return float64(s.Tick) })
}

// AngleSeries returns a1 of pendulum i for each sample.
func (r *Result) AngleSeries(i int) []float64 {
	return r.Series(func(s Sample) float64 {
		if i < 0 || i >= len(s.Pendulums) {
			return 0
		}
		return s.Pendulums[i].A1
	})
}
