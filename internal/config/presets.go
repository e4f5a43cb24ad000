package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/starlab/internal/stellar"
)

// Presets are named starting points layered over DefaultConfig. Each
// builder mutates a fresh default so presets never share state.
var presets = map[string]func(*Config){
	// The tuning everything else is measured against.
	"classic": func(c *Config) {},

	// Heavier cloud, stronger pull, guaranteed black hole.
	"collapse": func(c *Config) {
		c.Nebula.CloudCount = 4200
		c.Nebula.Strength = 16
		c.Nebula.Swirl = 0.006
		c.Remnant.BlackHoleChance = 1.0
		c.Remnant.Accrete.Rate = 220
	},

	// Sparse cloud and a slow burn that always leaves a neutron star.
	"pulsar": func(c *Config) {
		c.Nebula.CloudCount = 1600
		c.Star.Duration = 60
		c.Remnant.BlackHoleChance = 0.0
		c.Remnant.BeamRate = 3.6
	},

	// Whole lifecycle in about a minute, for demos.
	"quickshow": func(c *Config) {
		c.Star.Duration = 14
		c.Giant.Duration = 9
		c.Supernova.Duration = 8
		c.Nebula.Strength = 22
		c.Nebula.CloudRadius = stellar.Range{Min: 26, Max: 44}
	},

	// Violent ejecta and a wide, bright accretion disk.
	"fireworks": func(c *Config) {
		c.Supernova.ShockCount = 2400
		c.Supernova.DebrisCount = 1600
		c.Supernova.ShockSpeed = stellar.Range{Min: 0.7, Max: 1.2}
		c.Remnant.BlackHoleChance = 1.0
		c.Remnant.DiskMult = 4.5
	},
}

// GetPreset returns a fresh config for the named preset.
func GetPreset(name string) (*Config, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", stellar.ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	build(cfg)
	return cfg, nil
}

// ListPresets returns all preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
