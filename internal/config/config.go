// Package config loads solver configuration from YAML files and named
// presets. Precedence is CLI flags over file values over preset values
// over defaults; the CLI layer applies the flag step.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGamma    = 1.4
	DefaultMach     = 3.0
	DefaultConeDeg  = 10.0
	DefaultStep     = 1e-4
	DefaultTol      = 1e-8
	DefaultMaxIter  = 100
	DefaultMaxSteps = 20000
)

// Config is the user-facing solver configuration. Angles are degrees
// in the file and converted at the solver boundary.
type Config struct {
	Mach         float64 `yaml:"mach"`
	Gamma        float64 `yaml:"gamma"`
	ConeAngleDeg float64 `yaml:"cone_angle_deg"`
	GuessDeg     float64 `yaml:"guess_deg"` // 0 selects the heuristic
	StepRad      float64 `yaml:"step_rad"`
	Tolerance    float64 `yaml:"tolerance"`
	MaxIter      int     `yaml:"max_iter"`
	MaxSteps     int     `yaml:"max_steps"`
}

func Default() *Config {
	return &Config{
		Mach:         DefaultMach,
		Gamma:        DefaultGamma,
		ConeAngleDeg: DefaultConeDeg,
		StepRad:      DefaultStep,
		Tolerance:    DefaultTol,
		MaxIter:      DefaultMaxIter,
		MaxSteps:     DefaultMaxSteps,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// ConeAngleRad returns the target cone half-angle in radians.
func (c *Config) ConeAngleRad() float64 {
	return c.ConeAngleDeg * math.Pi / 180
}

// GuessRad returns the initial shock-angle guess in radians, 0 when
// the heuristic should pick one.
func (c *Config) GuessRad() float64 {
	return c.GuessDeg * math.Pi / 180
}
