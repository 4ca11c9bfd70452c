package automation

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/storage"
)

const scenarioYAML = `name: compare
description: default against a wide spread
steps:
  - preset: default
    ticks: 40
    overrides:
      ensemble.count: 3
  - preset: wide
    ticks: 40
    variant: square
    save: true
    overrides:
      ensemble.count: 4
      run.sample_every: 20
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	g := NewWithT(t)

	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sc.Name).To(Equal("compare"))
	g.Expect(sc.Steps).To(HaveLen(2))
	g.Expect(sc.Steps[1].Overrides).To(HaveKeyWithValue("ensemble.count", 4.0))

	_, err = LoadScenario(writeScenario(t, "name: empty\n"))
	g.Expect(err).To(HaveOccurred())
}

func TestStepConfig(t *testing.T) {
	g := NewWithT(t)

	cfg, err := StepConfig(ScenarioStep{Preset: "wide", Ticks: 7, Variant: "triangle",
		Overrides: map[string]float64{"pendulum.g": 2}})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(cfg.Ensemble.Delta).To(Equal(0.01))
	g.Expect(cfg.Run.Ticks).To(Equal(7))
	g.Expect(cfg.Pendulum.G).To(Equal(2.0))
	g.Expect(cfg.Particle.Variant).To(Equal("triangle"))

	_, err = StepConfig(ScenarioStep{Preset: "nope"})
	g.Expect(errors.Is(err, dynamo.ErrUnknownPreset)).To(BeTrue())

	_, err = StepConfig(ScenarioStep{Overrides: map[string]float64{"bogus": 1}})
	g.Expect(errors.Is(err, dynamo.ErrInvalidConfig)).To(BeTrue())
}

func TestRunScenario(t *testing.T) {
	g := NewWithT(t)

	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())

	store := storage.New(t.TempDir())
	results, err := RunScenario(context.Background(), sc, store, io.Discard)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(2))

	g.Expect(results[0].RunID).To(BeEmpty())
	g.Expect(results[0].Result.Samples[0].Pendulums).To(HaveLen(3))

	g.Expect(results[1].RunID).NotTo(BeEmpty())
	g.Expect(results[1].Result.Samples).To(HaveLen(3))

	meta, err := store.Load(results[1].RunID)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(meta.Preset).To(Equal("wide"))
	g.Expect(meta.Variant).To(Equal("square"))
}

func TestRunMonteCarlo(t *testing.T) {
	g := NewWithT(t)

	base := config.DefaultConfig()
	base.Ensemble.Count = 2
	base.Run.Ticks = 30

	mc := &MonteCarloConfig{Base: base, Perturbation: 0.1, NumTrials: 3, Seed: 7}
	results, err := RunMonteCarlo(context.Background(), mc, io.Discard)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(3))

	for _, r := range results {
		g.Expect(r.A1).To(BeNumerically("~", base.Pendulum.A1, 0.1))
		g.Expect(r.A2).To(BeNumerically("~", base.Pendulum.A2, 0.1))
	}
	g.Expect(base.Pendulum.A1).To(Equal(config.DefaultConfig().Pendulum.A1), "base must not be mutated")

	stable, unstable := MonteCarloStats(results)
	g.Expect(stable).To(Equal(3))
	g.Expect(unstable).To(BeZero())
}
