package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/starlab/internal/stellar"
)

const (
	DefaultTimeScale = 1.0
	DefaultCrossfade = 2.0

	DefaultCloudCount    = 2600
	DefaultCloudStrength = 10.0
	DefaultCriticalMass  = 0.03

	DefaultStarDuration  = 45.0
	DefaultGiantDuration = 30.0
	DefaultNovaDuration  = 12.0

	DefaultHorizonBase = 3.0
	DefaultHorizonGain = 40.0
	DefaultHorizonMax  = 9.0
)

type Config struct {
	Seed      int64   `yaml:"seed"` // 0 = seed from the clock
	TimeScale float64 `yaml:"time_scale"`
	Crossfade float64 `yaml:"crossfade"` // seconds of overlap at phase changes

	Nebula    NebulaConfig    `yaml:"nebula"`
	Star      StarConfig      `yaml:"star"`
	Giant     GiantConfig     `yaml:"giant"`
	Supernova SupernovaConfig `yaml:"supernova"`
	Remnant   RemnantConfig   `yaml:"remnant"`
}

// NebulaConfig shapes the collapse stage.
type NebulaConfig struct {
	CloudCount   int           `yaml:"cloud_count"`
	CloudRadius  stellar.Range `yaml:"cloud_radius"` // spawn shell
	Strength     float64       `yaml:"strength"`
	Softening    float64       `yaml:"softening"`
	Swirl        float64       `yaml:"swirl"`
	Turbulence   float64       `yaml:"turbulence"`
	CoreRadius   float64       `yaml:"core_radius"`   // protostar seed radius
	CoreGrowth   float64       `yaml:"core_growth"`   // radius gained per stuck particle
	CriticalMass float64       `yaml:"critical_mass"` // closes the stick gate
}

// StarConfig shapes the main-sequence stage.
type StarConfig struct {
	Duration  float64       `yaml:"duration"`
	PulseAmp  float64       `yaml:"pulse_amp"` // fraction of radius
	PulseRate float64       `yaml:"pulse_rate"`
	WindCount int           `yaml:"wind_count"` // pool capacity
	WindRate  float64       `yaml:"wind_rate"`  // spawns per second
	WindSpeed stellar.Range `yaml:"wind_speed"`
	WindLife  stellar.Range `yaml:"wind_life"`
	WindRange float64       `yaml:"wind_range"` // cull distance
}

// GiantConfig shapes the red-giant stage.
type GiantConfig struct {
	Duration   float64 `yaml:"duration"`
	RadiusMult float64 `yaml:"radius_mult"` // giant radius over star radius
	WindRate   float64 `yaml:"wind_rate"`
	WindSlow   float64 `yaml:"wind_slow"` // speed multiplier under 1
}

// SupernovaConfig shapes the detonation.
type SupernovaConfig struct {
	Duration    float64       `yaml:"duration"`
	ShockCount  int           `yaml:"shock_count"`
	DebrisCount int           `yaml:"debris_count"`
	ShockSpeed  stellar.Range `yaml:"shock_speed"`
	DebrisSpeed stellar.Range `yaml:"debris_speed"`
	FlashDecay  float64       `yaml:"flash_decay"` // flash units per second
}

// RemnantConfig shapes the terminal stage.
type RemnantConfig struct {
	BlackHoleChance float64 `yaml:"black_hole_chance"`

	HorizonBase float64 `yaml:"horizon_base"`
	HorizonGain float64 `yaml:"horizon_gain"`
	HorizonMax  float64 `yaml:"horizon_max"`

	Accrete    AccreteStreamConfig `yaml:"accrete"`
	DiskMult   float64             `yaml:"disk_mult"` // disk outer radius over horizon
	JetMult    float64             `yaml:"jet_mult"`  // jet length over horizon
	ShellSpeed stellar.Range       `yaml:"shell_speed"`
	ShellCount int                 `yaml:"shell_count"`
	BeamRate   float64             `yaml:"beam_rate"` // pulsar sweep, rad/s
}

// AccreteStreamConfig shapes the infall streams feeding a black hole.
type AccreteStreamConfig struct {
	Count    int           `yaml:"count"` // pool capacity
	Rate     float64       `yaml:"rate"`  // spawns per second
	Radius   stellar.Range `yaml:"radius"`
	Strength float64       `yaml:"strength"`
	Swirl    float64       `yaml:"swirl"`
}

func DefaultConfig() *Config {
	return &Config{
		TimeScale: DefaultTimeScale,
		Crossfade: DefaultCrossfade,
		Nebula: NebulaConfig{
			CloudCount:   DefaultCloudCount,
			CloudRadius:  stellar.Range{Min: 34, Max: 60},
			Strength:     DefaultCloudStrength,
			Softening:    1.2,
			Swirl:        0.004,
			Turbulence:   0.003,
			CoreRadius:   1.6,
			CoreGrowth:   0.012,
			CriticalMass: DefaultCriticalMass,
		},
		Star: StarConfig{
			Duration:  DefaultStarDuration,
			PulseAmp:  0.035,
			PulseRate: 1.1,
			WindCount: 900,
			WindRate:  60,
			WindSpeed: stellar.Range{Min: 0.05, Max: 0.12},
			WindLife:  stellar.Range{Min: 4, Max: 9},
			WindRange: 70,
		},
		Giant: GiantConfig{
			Duration:   DefaultGiantDuration,
			RadiusMult: 2.6,
			WindRate:   110,
			WindSlow:   0.55,
		},
		Supernova: SupernovaConfig{
			Duration:    DefaultNovaDuration,
			ShockCount:  1400,
			DebrisCount: 900,
			ShockSpeed:  stellar.Range{Min: 0.5, Max: 0.8},
			DebrisSpeed: stellar.Range{Min: 0.1, Max: 0.55},
			FlashDecay:  1.4,
		},
		Remnant: RemnantConfig{
			BlackHoleChance: 0.5,
			HorizonBase:     DefaultHorizonBase,
			HorizonGain:     DefaultHorizonGain,
			HorizonMax:      DefaultHorizonMax,
			Accrete: AccreteStreamConfig{
				Count:    1200,
				Rate:     140,
				Radius:   stellar.Range{Min: 28, Max: 46},
				Strength: 14,
				Swirl:    0.035,
			},
			DiskMult:   3.4,
			JetMult:    7.0,
			ShellSpeed: stellar.Range{Min: 0.18, Max: 0.4},
			ShellCount: 1600,
			BeamRate:   2.4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the engine cannot run with. Zero counts are
// allowed; every stage tolerates an empty field.
func (c *Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.TimeScale > 0, "time_scale must be positive"},
		{c.Crossfade >= 0, "crossfade cannot be negative"},
		{c.Nebula.CloudCount >= 0, "nebula.cloud_count cannot be negative"},
		{c.Nebula.Strength > 0, "nebula.strength must be positive"},
		{c.Nebula.Softening > 0, "nebula.softening must be positive"},
		{c.Nebula.CriticalMass > 0, "nebula.critical_mass must be positive"},
		{c.Star.Duration > 0, "star.duration must be positive"},
		{c.Giant.Duration > 0, "giant.duration must be positive"},
		{c.Giant.RadiusMult >= 1, "giant.radius_mult must be at least 1"},
		{c.Supernova.Duration > 0, "supernova.duration must be positive"},
		{c.Remnant.BlackHoleChance >= 0 && c.Remnant.BlackHoleChance <= 1,
			"remnant.black_hole_chance must be in [0, 1]"},
		{c.Remnant.HorizonBase > 0, "remnant.horizon_base must be positive"},
		{c.Remnant.HorizonMax >= c.Remnant.HorizonBase,
			"remnant.horizon_max must be at least horizon_base"},
	}

	for _, ck := range checks {
		if !ck.ok {
			return fmt.Errorf("%w: %s", stellar.ErrInvalidConfig, ck.msg)
		}
	}
	return nil
}
