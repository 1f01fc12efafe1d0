// Package optim searches a simulation's parameter space for the values that
// best satisfy an objective.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/sim"
)

var ErrNoCandidate = errors.New("optim: no candidate produced a finite objective")

// Objective scores a finished run. Lower is better.
type Objective func(res *experiment.Result) float64

// Reading scores a run by a reading, negated when maximize is set.
func Reading(key string, maximize bool) Objective {
	return func(res *experiment.Result) float64 {
		r, ok := sim.Find(res.Readings, key)
		if !ok {
			return math.NaN()
		}
		if maximize {
			return -r.Value
		}
		return r.Value
	}
}

// Metric scores a run by one of its metrics.
func Metric(name string) Objective {
	return func(res *experiment.Result) float64 {
		v, ok := res.Metrics[name]
		if !ok {
			return math.NaN()
		}
		return v
	}
}

// GridSearch evaluates every combination of the listed parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	evaluated  int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// Evaluated is the number of runs the last Search completed.
func (g *GridSearch) Evaluated() int { return g.evaluated }

// Search runs base once per grid point and returns the parameters with the
// lowest objective. Candidates the validator rejects are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	registry *experiment.Registry,
	base experiment.Config,
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	g.evaluated = 0

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]string), registry, base, objective, &best, &bestParams)
	if err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, 0, ErrNoCandidate
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]string,
	registry *experiment.Registry,
	base experiment.Config,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		cfg := base
		cfg.Params = make(map[string]string, len(base.Params)+len(current))
		for k, v := range base.Params {
			cfg.Params[k] = v
		}
		for k, v := range current {
			cfg.Params[k] = v
		}

		result, err := registry.Run(ctx, cfg)
		if err != nil {
			return nil
		}
		g.evaluated++

		val := objective(result)
		if !math.IsNaN(val) && val < *best {
			*best = val
			*bestParams = result.Params
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]string, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = strconv.FormatFloat(val, 'g', -1, 64)

		if err := g.searchRecursive(ctx, depth+1, newParams, registry, base, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
