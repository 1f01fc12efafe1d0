package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/physlab/internal/dynamo"
)

// SweepResult is the outcome of one headless session in a sweep.
type SweepResult struct {
	Value    float64
	Params   map[string]float64
	Readings []Reading
	Time     float64
	Err      error
}

// Sweep runs one session per value of a single parameter concurrently. Each
// session owns its own model, so no state is shared between runs.
type Sweep struct {
	New      func() Model
	Key      string
	Base     map[string]string
	Duration float64
	Dt       float64
}

func (sw *Sweep) Run(ctx context.Context, values []float64) ([]SweepResult, error) {
	if sw.New == nil {
		return nil, fmt.Errorf("sweep: no model constructor")
	}
	dt := sw.Dt
	if dt == 0 {
		dt = dynamo.FrameDt
	}
	if dt < 0 {
		return nil, fmt.Errorf("%w: %g", dynamo.ErrBadTimestep, dt)
	}

	results := make([]SweepResult, len(values))
	var wg sync.WaitGroup
	for i, v := range values {
		wg.Add(1)
		go func(idx int, v float64) {
			defer wg.Done()
			results[idx] = sw.one(ctx, v, dt)
		}(i, v)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (sw *Sweep) one(ctx context.Context, v, dt float64) SweepResult {
	res := SweepResult{Value: v}
	s, err := NewSession(sw.New())
	if err != nil {
		res.Err = err
		return res
	}

	raw := make(map[string]string, len(sw.Base)+1)
	for k, val := range sw.Base {
		raw[k] = val
	}
	raw[sw.Key] = fmt.Sprint(v)
	if _, err := s.CommitAll(raw); err != nil {
		res.Err = err
		return res
	}

	s.Start()
	steps := int(sw.Duration/dt + 0.5)
	for i := 0; i < steps && s.Running(); i++ {
		if i%64 == 0 && ctx.Err() != nil {
			res.Err = ctx.Err()
			break
		}
		if err := s.Tick(dt); err != nil {
			res.Err = err
			break
		}
	}
	res.Params = s.Params().Values()
	res.Readings = s.Readings()
	res.Time = s.Time()
	return res
}
