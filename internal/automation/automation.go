package automation

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/san-kum/pendulums/internal/config"
	"github.com/san-kum/pendulums/internal/experiment"
	"github.com/san-kum/pendulums/internal/sim"
	"github.com/san-kum/pendulums/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a preset plus overrides keyed like config.Set
type ScenarioStep struct {
	Preset    string             `yaml:"preset"`
	Ticks     int                `yaml:"ticks"`
	Variant   string             `yaml:"variant"`
	Overrides map[string]float64 `yaml:"overrides"`
	Save      bool               `yaml:"save"`
}

// StepResult pairs a step's result with its stored run id, if saved.
type StepResult struct {
	Step   ScenarioStep
	Result *sim.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// StepConfig resolves a step into a full configuration.
func StepConfig(step ScenarioStep) (*config.Config, error) {
	preset := step.Preset
	if preset == "" {
		preset = "default"
	}
	cfg, err := config.MustPreset(preset)
	if err != nil {
		return nil, err
	}

	// sorted so that a bad key is reported the same way every time
	keys := make([]string, 0, len(step.Overrides))
	for k := range step.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.Set(k, step.Overrides[k]); err != nil {
			return nil, err
		}
	}

	if step.Ticks > 0 {
		cfg.Run.Ticks = step.Ticks
	}
	if step.Variant != "" {
		cfg.Particle.Variant = step.Variant
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order, logging progress to out. Steps
// marked save are written to store when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Fprintf(out, "Running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Preset)

		cfg, err := StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(step.Preset, cfg)
		if err := exp.Setup(); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.Save && store != nil {
			id, err := store.Save(exp.Info(), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			sr.RunID = id
		}
		results = append(results, sr)
	}

	return results, nil
}

// MonteCarloConfig defines random perturbations of the initial angles
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds one trial
type MonteCarloResult struct {
	TrialID     int
	A1, A2      float64
	FinalSpread float64
	MaxSpread   float64
	Stable      bool // every tip stayed finite
}

// RunMonteCarlo executes trials with the initial angles jittered uniformly by
// up to Perturbation radians.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, out io.Writer) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		tc := *cfg.Base
		tc.Pendulum.A1 += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		tc.Pendulum.A2 += (rng.Float64() - 0.5) * 2 * cfg.Perturbation

		exp := experiment.New(fmt.Sprintf("trial-%d", trial), &tc)
		if err := exp.Setup(); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		r := MonteCarloResult{
			TrialID:   trial,
			A1:        tc.Pendulum.A1,
			A2:        tc.Pendulum.A2,
			MaxSpread: result.Metrics["max_spread"],
			Stable:    result.Metrics["non_finite"] == 0,
		}
		if n := len(result.Samples); n > 0 {
			r.FinalSpread = result.Samples[n-1].Spread
		}
		results = append(results, r)

		if (trial+1)%10 == 0 {
			fmt.Fprintf(out, "Monte Carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
