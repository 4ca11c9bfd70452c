package config

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/pendulums/internal/dynamo"
)

// Presets maps a name to a change applied on top of DefaultConfig.
var Presets = map[string]func(c *Config){
	"default": func(c *Config) {},
	// particles only: no trail, arms hidden
	"original": func(c *Config) {
		c.Pendulum.TrailEnabled = false
		c.Pendulum.TrailLength = 1
		c.Pendulum.Visible = false
	},
	"swarm": func(c *Config) {
		c.Ensemble.Count = 100
		c.Pendulum.Visible = false
		c.Pendulum.TrailLength = 80
	},
	"calm": func(c *Config) {
		c.Pendulum.A1 = 0.3
		c.Pendulum.A2 = 0.3
		c.Ensemble.ResetIntervalMs = 60000
	},
	"wide": func(c *Config) {
		c.Ensemble.Delta = 0.01
		c.Ensemble.Count = 40
	},
	"chaos": func(c *Config) {
		c.Pendulum.A1 = math.Pi - 0.05
		c.Pendulum.A2 = math.Pi
		c.Particle.Variant = "triangle"
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// MustPreset is GetPreset returning ErrUnknownPreset for unknown names.
func MustPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
