package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/particle"
)

func newTestSimulator(t *testing.T) *Simulator {
	t.Helper()
	cfg := ensemble.DefaultConfig()
	cfg.Count = 5
	ens, err := ensemble.New(cfg, dynamo.Bounds{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	return New(ens)
}

func testConfig() Config {
	return Config{
		Ticks:       100,
		SampleEvery: 10,
		Viewport:    dynamo.Bounds{Width: 800, Height: 600},
	}
}

func TestSimulatorRun(t *testing.T) {
	s := newTestSimulator(t)

	result, err := s.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.TicksTaken != 100 {
		t.Errorf("expected 100 ticks, got %d", result.TicksTaken)
	}
	if len(result.Samples) != 11 {
		t.Errorf("expected 11 samples, got %d", len(result.Samples))
	}
	if result.Samples[0].Tick != 0 || result.Samples[10].Tick != 100 {
		t.Errorf("unexpected sample ticks: %d..%d", result.Samples[0].Tick, result.Samples[10].Tick)
	}
	if len(result.Samples[5].Pendulums) != 5 {
		t.Errorf("expected 5 pendulums per sample, got %d", len(result.Samples[5].Pendulums))
	}
	if result.Samples[0].Particles != 0 {
		t.Errorf("expected no particles before the first tick, got %d", result.Samples[0].Particles)
	}
	if result.Samples[10].Particles == 0 {
		t.Error("expected live particles after 100 ticks")
	}
	if s.Ensemble().Ticks() != 100 {
		t.Errorf("ensemble ticks = %d", s.Ensemble().Ticks())
	}
}

func TestSimulatorRecentresIntoViewport(t *testing.T) {
	s := newTestSimulator(t)

	if _, err := s.Run(context.Background(), testConfig()); err != nil {
		t.Fatal(err)
	}
	if c := s.Ensemble().Pendulum(0).Center(); c != dynamo.V(400, 300) {
		t.Errorf("expected center (400,300), got %v", c)
	}
}

func TestSimulatorVariant(t *testing.T) {
	s := newTestSimulator(t)
	cfg := testConfig()
	cfg.Variant = particle.Square

	if _, err := s.Run(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	for _, p := range s.Ensemble().Pendulum(0).Emitter().Particles() {
		if p.Shape != particle.Square {
			t.Fatalf("expected square particles, got %v", p.Shape)
		}
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := newTestSimulator(t)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero ticks", Config{Ticks: 0, SampleEvery: 1, Viewport: dynamo.Bounds{Width: 1, Height: 1}}},
		{"negative ticks", Config{Ticks: -5, SampleEvery: 1, Viewport: dynamo.Bounds{Width: 1, Height: 1}}},
		{"zero sampling", Config{Ticks: 10, SampleEvery: 0, Viewport: dynamo.Bounds{Width: 1, Height: 1}}},
		{"empty viewport", Config{Ticks: 10, SampleEvery: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.cfg)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSimulatorCanceled(t *testing.T) {
	s := newTestSimulator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, testConfig())
	if !errors.Is(err, context.Canceled) || !errors.Is(err, dynamo.ErrCanceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	var simErr *dynamo.SimError
	if !errors.As(err, &simErr) || simErr.Tick != 1 {
		t.Errorf("expected SimError at tick 1, got %v", err)
	}
	if result == nil || result.TicksTaken != 0 || len(result.Samples) != 1 {
		t.Errorf("expected partial result with the initial sample, got %+v", result)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(e *ensemble.Ensemble) {
	t.count++
	t.sum += float64(e.ParticleCount())
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

type countingObserver struct{ ticks int }

func (o *countingObserver) OnTick(e *ensemble.Ensemble) { o.ticks++ }

func TestSimulatorMetrics(t *testing.T) {
	s := newTestSimulator(t)

	metric := &testMetric{}
	obs := &countingObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	result, err := s.Run(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 100 {
		t.Errorf("expected 100 observations, got %d", metric.count)
	}
	if obs.ticks != 100 {
		t.Errorf("expected 100 observer calls, got %d", obs.ticks)
	}
}

func TestRunWithCallback(t *testing.T) {
	s := newTestSimulator(t)
	cfg := testConfig()
	cfg.SampleEvery = 0

	seen := 0
	err := s.RunWithCallback(context.Background(), cfg, func(e *ensemble.Ensemble, tick int) bool {
		seen = tick
		return tick < 25
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen != 25 {
		t.Errorf("expected stop at tick 25, got %d", seen)
	}
}

func TestBatchRun(t *testing.T) {
	deltas := []float64{0.0001, 0.001, 0.01}
	jobs := make([]Job, len(deltas))
	for i, d := range deltas {
		ec := ensemble.DefaultConfig()
		ec.Count = 4
		ec.Delta = d
		jobs[i] = Job{
			Ensemble: ec,
			Run:      testConfig(),
			Metrics:  func() []Metric { return []Metric{&testMetric{}} },
		}
	}

	results, err := NewBatch(jobs).Run(context.Background())
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if len(results) != len(deltas) {
		t.Fatalf("expected %d results, got %d", len(deltas), len(results))
	}
	for i, r := range results {
		if r.TicksTaken != 100 {
			t.Errorf("job %d: expected 100 ticks, got %d", i, r.TicksTaken)
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("job %d: metric missing", i)
		}
	}
}

func TestBatchInvalidJob(t *testing.T) {
	ec := ensemble.DefaultConfig()
	ec.Count = 0
	_, err := NewBatch([]Job{{Ensemble: ec, Run: testConfig()}}).Run(context.Background())
	if !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
