package config

import "sort"

// Presets are ready-made configurations for common cone-flow cases.
var Presets = map[string]*Config{
	"supersonic-slender": {
		Mach: 2.0, Gamma: DefaultGamma, ConeAngleDeg: 10.0,
		StepRad: DefaultStep, Tolerance: DefaultTol, MaxIter: DefaultMaxIter, MaxSteps: DefaultMaxSteps,
	},
	"supersonic-blunt": {
		Mach: 2.0, Gamma: DefaultGamma, ConeAngleDeg: 25.0,
		StepRad: DefaultStep, Tolerance: DefaultTol, MaxIter: DefaultMaxIter, MaxSteps: DefaultMaxSteps,
	},
	"mach3-cone10": {
		Mach: 3.0, Gamma: DefaultGamma, ConeAngleDeg: 10.0,
		StepRad: DefaultStep, Tolerance: DefaultTol, MaxIter: DefaultMaxIter, MaxSteps: DefaultMaxSteps,
	},
	"hypersonic": {
		Mach: 8.0, Gamma: DefaultGamma, ConeAngleDeg: 15.0,
		StepRad: DefaultStep, Tolerance: DefaultTol, MaxIter: DefaultMaxIter, MaxSteps: DefaultMaxSteps,
	},
	"monatomic": {
		Mach: 3.0, Gamma: 5.0 / 3.0, ConeAngleDeg: 10.0,
		StepRad: DefaultStep, Tolerance: DefaultTol, MaxIter: DefaultMaxIter, MaxSteps: DefaultMaxSteps,
	},
}

// GetPreset returns a copy of the named preset, nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// ListPresets returns the preset names sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
