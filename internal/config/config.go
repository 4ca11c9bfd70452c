package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/san-kum/pendulums/internal/dynamo"
	"github.com/san-kum/pendulums/internal/ensemble"
	"github.com/san-kum/pendulums/internal/particle"
	"github.com/san-kum/pendulums/internal/physics"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCount           = ensemble.DefaultCount
	DefaultDelta           = ensemble.DefaultDelta
	DefaultResetIntervalMs = 40000
	DefaultFPS             = 60
	DefaultTheme           = "night"
	DefaultTicks           = 2000
	DefaultSampleEvery     = 10
	DefaultWidth           = 800
	DefaultHeight          = 600
)

type Config struct {
	Ensemble EnsembleConfig `yaml:"ensemble" toml:"ensemble"`
	Pendulum PendulumConfig `yaml:"pendulum" toml:"pendulum"`
	Particle ParticleConfig `yaml:"particle" toml:"particle"`
	View     ViewConfig     `yaml:"view" toml:"view"`
	Run      RunConfig      `yaml:"run" toml:"run"`
}

type EnsembleConfig struct {
	Count           int     `yaml:"count" toml:"count"`
	Delta           float64 `yaml:"delta" toml:"delta"`
	Seed            int64   `yaml:"seed" toml:"seed"`
	ResetIntervalMs int     `yaml:"reset_interval_ms" toml:"reset_interval_ms"`
}

type PendulumConfig struct {
	R1           float64 `yaml:"r1" toml:"r1"`
	R2           float64 `yaml:"r2" toml:"r2"`
	M1           float64 `yaml:"m1" toml:"m1"`
	M2           float64 `yaml:"m2" toml:"m2"`
	A1           float64 `yaml:"a1" toml:"a1"`
	A2           float64 `yaml:"a2" toml:"a2"`
	G            float64 `yaml:"g" toml:"g"`
	TrailEnabled bool    `yaml:"trail_enabled" toml:"trail_enabled"`
	TrailLength  int     `yaml:"trail_length" toml:"trail_length"`
	Visible      bool    `yaml:"visible" toml:"visible"`
}

type ParticleConfig struct {
	MaxSize     float64 `yaml:"max_size" toml:"max_size"`
	GravityX    float64 `yaml:"gravity_x" toml:"gravity_x"`
	GravityY    float64 `yaml:"gravity_y" toml:"gravity_y"`
	WindX       float64 `yaml:"wind_x" toml:"wind_x"`
	WindY       float64 `yaml:"wind_y" toml:"wind_y"`
	LifespanMin float64 `yaml:"lifespan_min" toml:"lifespan_min"`
	LifespanMax float64 `yaml:"lifespan_max" toml:"lifespan_max"`
	DecayMin    float64 `yaml:"decay_min" toml:"decay_min"`
	DecayMax    float64 `yaml:"decay_max" toml:"decay_max"`
	SpeedMin    float64 `yaml:"speed_min" toml:"speed_min"`
	SpeedMax    float64 `yaml:"speed_max" toml:"speed_max"`
	Variant     string  `yaml:"initial_variant" toml:"initial_variant"`
}

type ViewConfig struct {
	FPS        int     `yaml:"fps" toml:"fps"`
	Theme      string  `yaml:"theme" toml:"theme"`
	WorldScale float64 `yaml:"world_scale" toml:"world_scale"`
}

// RunConfig drives headless runs; Width and Height are the fixed viewport.
type RunConfig struct {
	Ticks       int     `yaml:"ticks" toml:"ticks"`
	SampleEvery int     `yaml:"sample_every" toml:"sample_every"`
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
}

func DefaultConfig() *Config {
	pp := physics.DefaultParams()
	pc := particle.DefaultConfig()
	return &Config{
		Ensemble: EnsembleConfig{
			Count:           DefaultCount,
			Delta:           DefaultDelta,
			Seed:            1,
			ResetIntervalMs: DefaultResetIntervalMs,
		},
		Pendulum: PendulumConfig{
			R1: pp.R1, R2: pp.R2,
			M1: pp.M1, M2: pp.M2,
			A1: pp.A1, A2: pp.A2,
			G:            pp.G,
			TrailEnabled: pp.TrailEnabled,
			TrailLength:  pp.TrailLength,
			Visible:      pp.Visible,
		},
		Particle: ParticleConfig{
			MaxSize:     pc.MaxSize,
			GravityX:    pc.Gravity.X,
			GravityY:    pc.Gravity.Y,
			WindX:       pc.Wind.X,
			WindY:       pc.Wind.Y,
			LifespanMin: pc.LifespanMin,
			LifespanMax: pc.LifespanMax,
			DecayMin:    pc.DecayMin,
			DecayMax:    pc.DecayMax,
			SpeedMin:    pc.SpeedMin,
			SpeedMax:    pc.SpeedMax,
			Variant:     particle.Disc.String(),
		},
		View: ViewConfig{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
		},
		Run: RunConfig{
			Ticks:       DefaultTicks,
			SampleEvery: DefaultSampleEvery,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
		},
	}
}

// Load overlays the file at path on DefaultConfig. Files ending in .toml are
// read as TOML, everything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dynamo.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate checks the values that the ensemble does not check itself.
func (c *Config) Validate() error {
	if c.Ensemble.ResetIntervalMs < 0 {
		return fmt.Errorf("%w: reset_interval_ms must not be negative", dynamo.ErrInvalidConfig)
	}
	if c.Particle.LifespanMin > c.Particle.LifespanMax || c.Particle.DecayMin > c.Particle.DecayMax ||
		c.Particle.SpeedMin > c.Particle.SpeedMax {
		return fmt.Errorf("%w: particle ranges must have min <= max", dynamo.ErrInvalidConfig)
	}
	if c.Particle.DecayMin <= 0 {
		return fmt.Errorf("%w: decay_min must be positive or particles never die", dynamo.ErrInvalidConfig)
	}
	if c.View.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive", dynamo.ErrInvalidConfig)
	}
	if c.Run.Width <= 0 || c.Run.Height <= 0 {
		return fmt.Errorf("%w: run viewport must be positive", dynamo.ErrInvalidConfig)
	}
	if c.Run.SampleEvery < 1 {
		return fmt.Errorf("%w: sample_every must be at least 1", dynamo.ErrInvalidConfig)
	}
	return c.EnsembleConfig().Validate()
}

// EnsembleConfig converts to the ensemble's own configuration.
func (c *Config) EnsembleConfig() ensemble.Config {
	return ensemble.Config{
		Count: c.Ensemble.Count,
		Delta: c.Ensemble.Delta,
		Seed:  c.Ensemble.Seed,
		Base: physics.Params{
			R1: c.Pendulum.R1, R2: c.Pendulum.R2,
			M1: c.Pendulum.M1, M2: c.Pendulum.M2,
			A1: c.Pendulum.A1, A2: c.Pendulum.A2,
			G:            c.Pendulum.G,
			TrailEnabled: c.Pendulum.TrailEnabled,
			TrailLength:  c.Pendulum.TrailLength,
			Visible:      c.Pendulum.Visible,
		},
		Particle: particle.Config{
			Gravity:     dynamo.V(c.Particle.GravityX, c.Particle.GravityY),
			Wind:        dynamo.V(c.Particle.WindX, c.Particle.WindY),
			MaxSize:     c.Particle.MaxSize,
			SizeRange:   particle.DefaultConfig().SizeRange,
			LifespanMin: c.Particle.LifespanMin,
			LifespanMax: c.Particle.LifespanMax,
			DecayMin:    c.Particle.DecayMin,
			DecayMax:    c.Particle.DecayMax,
			SpeedMin:    c.Particle.SpeedMin,
			SpeedMax:    c.Particle.SpeedMax,
		},
	}
}

// Variant returns the configured initial particle shape.
func (c *Config) Variant() particle.Shape {
	return particle.ParseShape(c.Particle.Variant)
}

func (c *Config) ResetInterval() time.Duration {
	return time.Duration(c.Ensemble.ResetIntervalMs) * time.Millisecond
}

// Viewport is the fixed world used by headless runs.
func (c *Config) Viewport() dynamo.Bounds {
	return dynamo.Bounds{Width: c.Run.Width, Height: c.Run.Height}
}

// Set assigns a numeric field by its yaml path, such as "ensemble.count" or
// "pendulum.a1". Integer fields truncate and booleans are true when non-zero.
func (c *Config) Set(key string, v float64) error {
	switch key {
	case "ensemble.count":
		c.Ensemble.Count = int(v)
	case "ensemble.delta":
		c.Ensemble.Delta = v
	case "ensemble.seed":
		c.Ensemble.Seed = int64(v)
	case "ensemble.reset_interval_ms":
		c.Ensemble.ResetIntervalMs = int(v)
	case "pendulum.r1":
		c.Pendulum.R1 = v
	case "pendulum.r2":
		c.Pendulum.R2 = v
	case "pendulum.m1":
		c.Pendulum.M1 = v
	case "pendulum.m2":
		c.Pendulum.M2 = v
	case "pendulum.a1":
		c.Pendulum.A1 = v
	case "pendulum.a2":
		c.Pendulum.A2 = v
	case "pendulum.g":
		c.Pendulum.G = v
	case "pendulum.trail_enabled":
		c.Pendulum.TrailEnabled = v != 0
	case "pendulum.trail_length":
		c.Pendulum.TrailLength = int(v)
	case "pendulum.visible":
		c.Pendulum.Visible = v != 0
	case "particle.max_size":
		c.Particle.MaxSize = v
	case "particle.gravity_x":
		c.Particle.GravityX = v
	case "particle.gravity_y":
		c.Particle.GravityY = v
	case "particle.wind_x":
		c.Particle.WindX = v
	case "particle.wind_y":
		c.Particle.WindY = v
	case "run.ticks":
		c.Run.Ticks = int(v)
	case "run.sample_every":
		c.Run.SampleEvery = int(v)
	case "run.width":
		c.Run.Width = v
	case "run.height":
		c.Run.Height = v
	default:
		return fmt.Errorf("%w: unknown key %q", dynamo.ErrInvalidConfig, key)
	}
	return nil
}

// Get reads a numeric field by the same paths Set accepts.
func (c *Config) Get(key string) (float64, error) {
	b2f := func(b bool) float64 {
		if b {
			return 1
		}
		return 0
	}
	switch key {
	case "ensemble.count":
		return float64(c.Ensemble.Count), nil
	case "ensemble.delta":
		return c.Ensemble.Delta, nil
	case "ensemble.seed":
		return float64(c.Ensemble.Seed), nil
	case "ensemble.reset_interval_ms":
		return float64(c.Ensemble.ResetIntervalMs), nil
	case "pendulum.r1":
		return c.Pendulum.R1, nil
	case "pendulum.r2":
		return c.Pendulum.R2, nil
	case "pendulum.m1":
		return c.Pendulum.M1, nil
	case "pendulum.m2":
		return c.Pendulum.M2, nil
	case "pendulum.a1":
		return c.Pendulum.A1, nil
	case "pendulum.a2":
		return c.Pendulum.A2, nil
	case "pendulum.g":
		return c.Pendulum.G, nil
	case "pendulum.trail_enabled":
		return b2f(c.Pendulum.TrailEnabled), nil
	case "pendulum.trail_length":
		return float64(c.Pendulum.TrailLength), nil
	case "pendulum.visible":
		return b2f(c.Pendulum.Visible), nil
	case "particle.max_size":
		return c.Particle.MaxSize, nil
	case "particle.gravity_x":
		return c.Particle.GravityX, nil
	case "particle.gravity_y":
		return c.Particle.GravityY, nil
	case "particle.wind_x":
		return c.Particle.WindX, nil
	case "particle.wind_y":
		return c.Particle.WindY, nil
	case "run.ticks":
		return float64(c.Run.Ticks), nil
	case "run.sample_every":
		return float64(c.Run.SampleEvery), nil
	case "run.width":
		return c.Run.Width, nil
	case "run.height":
		return c.Run.Height, nil
	}
	return 0, fmt.Errorf("%w: unknown key %q", dynamo.ErrInvalidConfig, key)
}
