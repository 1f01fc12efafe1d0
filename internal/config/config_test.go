package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Simulation != "pendulum" {
		t.Errorf("expected simulation pendulum, got %s", cfg.Simulation)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Frames() != 625 {
		t.Errorf("expected 625 frames, got %d", cfg.Frames())
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params["angle"] != "5" {
		t.Errorf("expected angle 5, got %s", cfg.Params["angle"])
	}
	if cfg.Integrator != DefaultIntegrator || cfg.FPS != DefaultFPS {
		t.Errorf("preset should inherit defaults, got %+v", cfg)
	}

	cfg.Params["angle"] = "80"
	if GetPreset("pendulum", "small").Params["angle"] != "5" {
		t.Error("mutating a returned preset changed the table")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("pendulum", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "small") != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("pendulum")
	if len(presets) == 0 {
		t.Fatal("expected presets for pendulum")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent simulation")
	}
}

func TestPresetsNameTheirSimulation(t *testing.T) {
	for sim, byName := range Presets {
		for name, cfg := range byName {
			if cfg.Simulation != sim {
				t.Errorf("%s/%s names simulation %s", sim, name, cfg.Simulation)
			}
		}
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := DefaultConfig()
	cfg.Simulation = "collisions"
	cfg.Params = map[string]string{"type": "inelastic"}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Simulation != "collisions" || got.Params["type"] != "inelastic" || got.Dt != DefaultDt {
		t.Errorf("round trip lost fields: %+v", got)
	}
}

func TestLoadIntoLayersOverBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	data := "duration: 3\nparams:\n  damping: \"1\"\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("pendulum", "large")
	got, err := LoadInto(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if got.Duration != 3 {
		t.Errorf("file should override duration, got %f", got.Duration)
	}
	if got.Params["angle"] != "85" || got.Params["damping"] != "1" {
		t.Errorf("params not merged: %v", got.Params)
	}
	if base.Duration != 20 {
		t.Error("LoadInto modified its base")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"no simulation", func(c *Config) { c.Simulation = "" }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
