package experiment

import (
	"context"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/starlab/internal/config"
	"github.com/san-kum/starlab/internal/stellar"
)

// parameters maps sweepable names onto the configuration. Names follow
// the yaml layout so a sweep file reads like the config it perturbs.
var parameters = map[string]func(*config.Config, float64){
	"time_scale": func(c *config.Config, v float64) { c.TimeScale = v },
	"crossfade":  func(c *config.Config, v float64) { c.Crossfade = v },

	"nebula.cloud_count":   func(c *config.Config, v float64) { c.Nebula.CloudCount = int(v) },
	"nebula.strength":      func(c *config.Config, v float64) { c.Nebula.Strength = v },
	"nebula.softening":     func(c *config.Config, v float64) { c.Nebula.Softening = v },
	"nebula.swirl":         func(c *config.Config, v float64) { c.Nebula.Swirl = v },
	"nebula.turbulence":    func(c *config.Config, v float64) { c.Nebula.Turbulence = v },
	"nebula.core_radius":   func(c *config.Config, v float64) { c.Nebula.CoreRadius = v },
	"nebula.core_growth":   func(c *config.Config, v float64) { c.Nebula.CoreGrowth = v },
	"nebula.critical_mass": func(c *config.Config, v float64) { c.Nebula.CriticalMass = v },

	"star.duration":   func(c *config.Config, v float64) { c.Star.Duration = v },
	"star.pulse_amp":  func(c *config.Config, v float64) { c.Star.PulseAmp = v },
	"star.pulse_rate": func(c *config.Config, v float64) { c.Star.PulseRate = v },
	"star.wind_rate":  func(c *config.Config, v float64) { c.Star.WindRate = v },

	"giant.duration":    func(c *config.Config, v float64) { c.Giant.Duration = v },
	"giant.radius_mult": func(c *config.Config, v float64) { c.Giant.RadiusMult = v },
	"giant.wind_rate":   func(c *config.Config, v float64) { c.Giant.WindRate = v },

	"supernova.duration":    func(c *config.Config, v float64) { c.Supernova.Duration = v },
	"supernova.flash_decay": func(c *config.Config, v float64) { c.Supernova.FlashDecay = v },

	"remnant.black_hole_chance": func(c *config.Config, v float64) { c.Remnant.BlackHoleChance = v },
	"remnant.horizon_gain":      func(c *config.Config, v float64) { c.Remnant.HorizonGain = v },
	"remnant.horizon_max":       func(c *config.Config, v float64) { c.Remnant.HorizonMax = v },
	"remnant.accrete.rate":      func(c *config.Config, v float64) { c.Remnant.Accrete.Rate = v },
	"remnant.accrete.strength":  func(c *config.Config, v float64) { c.Remnant.Accrete.Strength = v },
	"remnant.beam_rate":         func(c *config.Config, v float64) { c.Remnant.BeamRate = v },
}

// SweepParameters lists every sweepable parameter name, sorted.
func SweepParameters() []string {
	names := make([]string, 0, len(parameters))
	for name := range parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func applyParameter(cfg *config.Config, name string, v float64) error {
	set, ok := parameters[name]
	if !ok {
		return fmt.Errorf("%w: unknown sweep parameter %q", stellar.ErrInvalidConfig, name)
	}
	set(cfg, v)
	return cfg.Validate()
}

// Sweep is a yaml-loadable plan. With a parameter it varies that value
// across evenly spaced points under a fixed seed; without one it is an
// ensemble plan, Runs lifecycles over consecutive seeds.
type Sweep struct {
	Name      string  `yaml:"name"`
	Preset    string  `yaml:"preset"`
	Parameter string  `yaml:"parameter"`
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	Steps     int     `yaml:"steps"`
	Duration  float64 `yaml:"duration"`
	Step      float64 `yaml:"step"`
	Seed      int64   `yaml:"seed"`
	Runs      int     `yaml:"runs"`
}

// IsEnsemble reports whether the plan repeats seeds instead of varying
// a parameter.
func (sw *Sweep) IsEnsemble() bool { return sw.Parameter == "" }

// LoadSweep reads a sweep plan from a YAML file.
func LoadSweep(path string) (*Sweep, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sw Sweep
	if err := yaml.Unmarshal(data, &sw); err != nil {
		return nil, err
	}
	return &sw, nil
}

// SweepPoint is the outcome at one parameter value.
type SweepPoint struct {
	Value      float64
	FinalPhase stellar.Phase
	IgnitedAt  float64 // 0 when the collapse never finished
	FinalMass  float64
	Kind       string
}

// RunSweep executes the plan against a base configuration. The base is
// copied per point, so the caller's config is never mutated.
func RunSweep(ctx context.Context, base *config.Config, sw *Sweep) ([]SweepPoint, error) {
	if sw.Steps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", stellar.ErrInvalidConfig, sw.Steps)
	}
	if _, ok := parameters[sw.Parameter]; !ok {
		return nil, fmt.Errorf("%w: unknown sweep parameter %q", stellar.ErrInvalidConfig, sw.Parameter)
	}

	rc := Config{Duration: sw.Duration, Step: sw.Step}
	if rc.Step <= 0 {
		rc.Step = 1.0 / 60.0
	}
	span := (sw.Max - sw.Min) / float64(sw.Steps-1)

	points := make([]SweepPoint, 0, sw.Steps)
	for i := 0; i < sw.Steps; i++ {
		value := sw.Min + float64(i)*span

		cfgCopy := *base
		cfgCopy.Seed = sw.Seed
		if err := applyParameter(&cfgCopy, sw.Parameter, value); err != nil {
			return points, fmt.Errorf("%s=%g: %w", sw.Parameter, value, err)
		}

		result, err := Run(ctx, &cfgCopy, rc)
		if err != nil {
			return points, err
		}

		point := SweepPoint{
			Value:      value,
			FinalPhase: result.Final.Phase,
			FinalMass:  result.Final.ConsumedMass,
			Kind:       result.Final.RemnantKind,
		}
		if at, ok := result.IgnitedAt(); ok {
			point.IgnitedAt = at
		}
		points = append(points, point)
	}

	return points, nil
}
