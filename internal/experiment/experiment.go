// Package experiment runs simulations headlessly and records what they
// observe.
package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/metrics"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/sim"
)

type Config struct {
	Simulation string
	Integrator string
	Dt         float64
	Duration   float64
	Params     map[string]string
}

type Result struct {
	Simulation string
	// Integrator is empty for models that do not integrate an ODE.
	Integrator string
	Labels     []string
	States     []dynamo.State
	Times      []float64
	Params     map[string]float64
	Readings   []sim.Reading
	Metrics    map[string]float64
	Frames     int
}

// Run builds a session from cfg, starts it and ticks it for Duration, or
// until the model finishes. The observed state is recorded once before the
// first tick and after every tick.
func (r *Registry) Run(ctx context.Context, cfg Config, opts ...sim.Option) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w: %g", dynamo.ErrBadTimestep, cfg.Dt)
	}
	model, err := r.GetModel(cfg.Simulation)
	if err != nil {
		return nil, err
	}

	res := &Result{Simulation: cfg.Simulation}
	if integrated, ok := model.(physics.Integrated); ok && cfg.Integrator != "" {
		integ, err := r.GetIntegrator(cfg.Integrator)
		if err != nil {
			return nil, err
		}
		integrated.SetIntegrator(integ)
		res.Integrator = cfg.Integrator
	} else if ok {
		res.Integrator = "semi-implicit"
	}

	s, err := sim.NewSession(model, opts...)
	if err != nil {
		return nil, err
	}
	if len(cfg.Params) > 0 {
		if _, err := s.CommitAll(cfg.Params); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Simulation, err)
		}
	}

	obs, _ := model.(sim.Observable)
	var ms []metrics.Metric
	if obs != nil {
		res.Labels = obs.Labels()
		ms = metrics.For(model)
	}
	record := func() {
		if obs == nil {
			return
		}
		x := obs.Observe().Clone()
		res.States = append(res.States, x)
		res.Times = append(res.Times, s.Time())
		for _, m := range ms {
			m.Observe(x, s.Time())
		}
	}

	slog.Debug("run", "sim", cfg.Simulation, "integrator", res.Integrator, "dt", cfg.Dt, "duration", cfg.Duration)
	s.Start()
	record()

	var runErr error
	steps := int(cfg.Duration/cfg.Dt + 0.5)
	for i := 0; i < steps && s.Running(); i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if err := s.Tick(cfg.Dt); err != nil {
			runErr = err
			break
		}
		record()
		if obs != nil && !res.States[len(res.States)-1].IsValid() {
			runErr = &dynamo.SimulationError{
				Step:    s.Frames(),
				Time:    s.Time(),
				State:   res.States[len(res.States)-1],
				Wrapped: dynamo.ErrInvalidState,
			}
			break
		}
	}

	res.Frames = s.Frames()
	res.Params = s.Params().Values()
	res.Readings = s.Readings()
	res.Metrics = make(map[string]float64, len(ms))
	for _, m := range ms {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, runErr
}
