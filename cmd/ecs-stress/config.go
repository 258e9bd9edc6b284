package main

import (
	"os"
	"time"

	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Config is the full set of knobs for one stress run. Values are layered:
// defaults, then ECS_STRESS_* environment variables, then the scenario
// file, then flags given on the command line.
type Config struct {
	Settings `yaml:",inline"`

	Mix     Mix      `yaml:"mix"`
	Systems []string `yaml:"systems"`
}

// Settings are the scalar knobs, the only ones read from the environment.
type Settings struct {
	Duration       string  `config:"ECS_STRESS_DURATION" yaml:"duration"`
	Entities       int     `config:"ECS_STRESS_ENTITIES" yaml:"entities"`
	Seed           uint64  `config:"ECS_STRESS_SEED" yaml:"seed"`
	Churn          float64 `config:"ECS_STRESS_CHURN" yaml:"churn"`
	GCPauseMetrics bool    `config:"ECS_STRESS_GC_PAUSE_METRICS" yaml:"gc_pause_metrics"`
	Profile        string  `config:"ECS_STRESS_PROFILE" yaml:"profile"`
	ProfilePath    string  `config:"ECS_STRESS_PROFILE_PATH" yaml:"profile_path"`
	Verbose        bool    `config:"ECS_STRESS_VERBOSE" yaml:"verbose"`
}

// Mix is the probability of each optional component being attached to a
// spawned entity. Every entity gets a Position.
type Mix struct {
	Velocity float64 `yaml:"velocity"`
	Health   float64 `yaml:"health"`
	Regen    float64 `yaml:"regen"`
	Lifetime float64 `yaml:"lifetime"`
	Tag      float64 `yaml:"tag"`
}

func defaultConfig() Config {
	return Config{
		Settings: Settings{
			Duration:    "10s",
			Entities:    10000,
			Seed:        1,
			Churn:       0.001,
			ProfilePath: ".",
		},
		Mix: Mix{
			Velocity: 0.8,
			Health:   0.5,
			Regen:    0.3,
			Lifetime: 0.2,
			Tag:      0.1,
		},
		Systems: allSystemNames(),
	}
}

// loadEnv overlays ECS_STRESS_* variables onto cfg.
func loadEnv(cfg *Config) error {
	if err := jlconfig.FromEnv().To(&cfg.Settings); err != nil {
		return eris.Wrap(err, "read environment")
	}
	return nil
}

// loadScenario overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func loadScenario(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "read scenario %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return eris.Wrapf(err, "parse scenario %s", path)
	}
	return nil
}

func (c Config) validate() (time.Duration, error) {
	duration, err := time.ParseDuration(c.Duration)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid duration %q", c.Duration)
	}
	if duration <= 0 {
		return 0, eris.Errorf("duration must be positive, got %s", duration)
	}
	if c.Entities < 0 {
		return 0, eris.Errorf("entities must not be negative, got %d", c.Entities)
	}
	if c.Churn < 0 || c.Churn > 1 {
		return 0, eris.Errorf("churn must be within [0, 1], got %v", c.Churn)
	}
	switch c.Profile {
	case "", "cpu", "mem":
	default:
		return 0, eris.Errorf("unknown profile mode %q (want cpu or mem)", c.Profile)
	}
	for _, name := range c.Systems {
		if _, ok := systemEnablers[name]; !ok {
			return 0, eris.Errorf("unknown system %q", name)
		}
	}
	return duration, nil
}
