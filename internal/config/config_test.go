package config

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Mach != DefaultMach {
		t.Errorf("mach: got %g, want %g", cfg.Mach, DefaultMach)
	}
	if cfg.Gamma != DefaultGamma {
		t.Errorf("gamma: got %g, want %g", cfg.Gamma, DefaultGamma)
	}
	if cfg.GuessDeg != 0 {
		t.Errorf("default guess must select the heuristic, got %g", cfg.GuessDeg)
	}
	if cfg.MaxIter != DefaultMaxIter || cfg.MaxSteps != DefaultMaxSteps {
		t.Errorf("budgets: got %d/%d", cfg.MaxIter, cfg.MaxSteps)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solve.yaml")

	want := &Config{
		Mach:         4.5,
		Gamma:        5.0 / 3.0,
		ConeAngleDeg: 17.5,
		GuessDeg:     28,
		StepRad:      5e-5,
		Tolerance:    1e-10,
		MaxIter:      64,
		MaxSteps:     50000,
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

// A partial file keeps defaults for the keys it omits.
func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("mach: 5.0\ncone_angle_deg: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Mach != 5.0 || cfg.ConeAngleDeg != 20 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Gamma != DefaultGamma || cfg.Tolerance != DefaultTol {
		t.Errorf("omitted keys lost their defaults: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file: want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("mach: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed yaml: want error")
	}
}

func TestAngleConversions(t *testing.T) {
	cfg := &Config{ConeAngleDeg: 90, GuessDeg: 45}

	if math.Abs(cfg.ConeAngleRad()-math.Pi/2) > 1e-15 {
		t.Errorf("cone angle: got %g, want pi/2", cfg.ConeAngleRad())
	}
	if math.Abs(cfg.GuessRad()-math.Pi/4) > 1e-15 {
		t.Errorf("guess: got %g, want pi/4", cfg.GuessRad())
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("mach3-cone10")
	if a == nil {
		t.Fatal("preset mach3-cone10 missing")
	}
	a.Mach = 99

	if b := GetPreset("mach3-cone10"); b.Mach == 99 {
		t.Error("mutating a preset copy leaked into the table")
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset must not resolve")
	}
}

func TestListPresetsSorted(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets registered")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("preset names not sorted: %v", names)
	}
}

// Every preset must describe a physically solvable problem.
func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg.Mach <= 1 {
			t.Errorf("%s: subsonic Mach %g", name, cfg.Mach)
		}
		if cfg.Gamma <= 1 {
			t.Errorf("%s: gamma %g out of range", name, cfg.Gamma)
		}
		if cfg.ConeAngleDeg <= 0 || cfg.ConeAngleDeg >= 60 {
			t.Errorf("%s: cone angle %g deg out of range", name, cfg.ConeAngleDeg)
		}
		mu := math.Asin(1/cfg.Mach) * 180 / math.Pi
		if cfg.GuessDeg != 0 && cfg.GuessDeg <= mu {
			t.Errorf("%s: guess %g deg below the Mach angle %g deg", name, cfg.GuessDeg, mu)
		}
	}
}
