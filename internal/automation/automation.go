// Package automation runs scripted sequences of headless simulations and
// randomized robustness trials.
package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/param"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario
type ScenarioStep struct {
	Simulation string            `yaml:"simulation"`
	Integrator string            `yaml:"integrator"`
	Duration   float64           `yaml:"duration"`
	Dt         float64           `yaml:"dt"`
	Params     map[string]string `yaml:"params"`
	SaveAs     string            `yaml:"save_as"`
}

func (s ScenarioStep) config() experiment.Config {
	return experiment.Config{
		Simulation: s.Simulation,
		Integrator: s.Integrator,
		Dt:         s.Dt,
		Duration:   s.Duration,
		Params:     s.Params,
	}
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	for i := range scenario.Steps {
		step := &scenario.Steps[i]
		if step.Simulation == "" {
			return nil, fmt.Errorf("step %d: simulation is required", i+1)
		}
		if step.Dt == 0 {
			step.Dt = 0.016
		}
		if step.Duration == 0 {
			step.Duration = 10
		}
	}
	return &scenario, nil
}

// StepFunc is called after every completed step.
type StepFunc func(i int, step ScenarioStep, res *experiment.Result) error

// RunScenario executes all steps in order and stops at the first failure.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, done StepFunc) ([]*experiment.Result, error) {
	results := make([]*experiment.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		slog.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "sim", step.Simulation)

		result, err := registry.Run(ctx, step.config())
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Simulation, err)
		}
		results = append(results, result)

		if done != nil {
			if err := done(i, step, result); err != nil {
				return results, fmt.Errorf("step %d (%s): %w", i+1, step.Simulation, err)
			}
		}
	}

	return results, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters. Every trial
// moves each Perturb parameter by up to Spread times its range around Base.
type MonteCarloConfig struct {
	Simulation string
	Integrator string
	Base       map[string]string
	Perturb    []string
	Spread     float64
	NumTrials  int
	Duration   float64
	Dt         float64
	Seed       int64
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID int
	Params  map[string]float64
	Metrics map[string]float64
	Stable  bool // finite and bounded for every recorded frame
	Err     error
}

// RunMonteCarlo executes trials with randomly perturbed parameters
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	model, err := registry.GetModel(cfg.Simulation)
	if err != nil {
		return nil, err
	}
	set, err := param.NewSet(model.Specs()...)
	if err != nil {
		return nil, err
	}
	if _, err := set.CommitAll(cfg.Base); err != nil {
		return nil, err
	}
	specs := make([]param.Spec, len(cfg.Perturb))
	for i, key := range cfg.Perturb {
		spec, ok := set.Spec(key)
		if !ok {
			return nil, fmt.Errorf("%s: %w: %s", cfg.Simulation, param.ErrUnknownParam, key)
		}
		specs[i] = spec
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		raw := make(map[string]string, len(cfg.Base)+len(specs))
		for k, v := range cfg.Base {
			raw[k] = v
		}
		for _, spec := range specs {
			v := set.Get(spec.Key) + (rng.Float64()-0.5)*2*cfg.Spread*(spec.Max-spec.Min)
			raw[spec.Key] = strconv.FormatFloat(spec.Clamp(v), 'g', -1, 64)
		}

		res, err := registry.Run(ctx, experiment.Config{
			Simulation: cfg.Simulation,
			Integrator: cfg.Integrator,
			Dt:         cfg.Dt,
			Duration:   cfg.Duration,
			Params:     raw,
		})
		r := MonteCarloResult{TrialID: trial, Err: err}
		if res != nil {
			r.Params = res.Params
			r.Metrics = res.Metrics
		}
		stability, ok := r.Metrics["stability"]
		r.Stable = err == nil && (!ok || stability == 1)
		results = append(results, r)

		if (trial+1)%10 == 0 {
			slog.Debug("monte carlo", "done", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
