package config

import (
	"errors"
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 0.016
	DefaultDuration   = 10.0
	DefaultFPS        = 60
	DefaultIntegrator = "semi-implicit"
)

var ErrInvalid = errors.New("invalid config")

// Config describes one headless or live run. Params hold raw text and go
// through the same validation as interactive input.
type Config struct {
	Simulation string            `yaml:"simulation"`
	Integrator string            `yaml:"integrator"`
	Dt         float64           `yaml:"dt"`
	Duration   float64           `yaml:"duration"`
	FPS        int               `yaml:"fps"`
	Params     map[string]string `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Simulation: "pendulum",
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		FPS:        DefaultFPS,
	}
}

// Load reads path on top of DefaultConfig.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads path over base; keys absent from the file keep base values
// and params are merged key by key.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Merge(&file)
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	out := *c
	out.Params = maps.Clone(c.Params)
	return &out
}

// Merge copies every non-zero field of o into c.
func (c *Config) Merge(o *Config) {
	if o.Simulation != "" {
		c.Simulation = o.Simulation
	}
	if o.Integrator != "" {
		c.Integrator = o.Integrator
	}
	if o.Dt != 0 {
		c.Dt = o.Dt
	}
	if o.Duration != 0 {
		c.Duration = o.Duration
	}
	if o.FPS != 0 {
		c.FPS = o.FPS
	}
	if len(o.Params) > 0 && c.Params == nil {
		c.Params = make(map[string]string, len(o.Params))
	}
	maps.Copy(c.Params, o.Params)
}

func (c *Config) Validate() error {
	switch {
	case c.Simulation == "":
		return fmt.Errorf("%w: simulation is required", ErrInvalid)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	case c.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Duration)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	}
	return nil
}

// Frames is the number of steps a run of Duration takes at Dt.
func (c *Config) Frames() int {
	return int(c.Duration/c.Dt + 0.5)
}
