package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/automation"
	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/optim"
)

func scenarioCmd() *cobra.Command {
	var noSave bool
	cmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("scenario: %s\n", sc.Name)
			if sc.Description != "" {
				fmt.Println(sc.Description)
			}

			_, err = automation.RunScenario(cmd.Context(), sc, registry, func(i int, step automation.ScenarioStep, res *experiment.Result) error {
				label := step.SaveAs
				if label == "" {
					label = step.Simulation
				}
				line := fmt.Sprintf("[%d/%d] %s: %d frames", i+1, len(sc.Steps), label, res.Frames)
				if !noSave {
					cfg := &config.Config{Dt: step.Dt, Duration: step.Duration}
					id, err := saveResult(cmd, cfg, res)
					if err != nil {
						return err
					}
					line += ", run " + id[:8]
				}
				fmt.Println(line)
				return nil
			})
			return err
		},
	}
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")
	return cmd
}

func monteCarloCmd() *cobra.Command {
	var (
		flags   runFlags
		perturb []string
		spread  float64
		trials  int
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "montecarlo [simulation]",
		Short: "run randomly perturbed trials and count stable runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
				Simulation: cfg.Simulation,
				Integrator: cfg.Integrator,
				Base:       cfg.Params,
				Perturb:    perturb,
				Spread:     spread,
				NumTrials:  trials,
				Duration:   cfg.Duration,
				Dt:         cfg.Dt,
				Seed:       seed,
			}, registry)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "TRIAL\t%s\tSTABLE\n", strings.ToUpper(strings.Join(perturb, "\t")))
			for _, r := range results {
				row := []string{strconv.Itoa(r.TrialID)}
				for _, k := range perturb {
					row = append(row, strconv.FormatFloat(r.Params[k], 'g', 5, 64))
				}
				status := strconv.FormatBool(r.Stable)
				if r.Err != nil {
					status = r.Err.Error()
				}
				fmt.Fprintf(w, "%s\t%s\n", strings.Join(row, "\t"), status)
			}
			w.Flush()

			stable, unstable := automation.MonteCarloStats(results)
			fmt.Printf("\nstable: %d  unstable: %d\n", stable, unstable)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&perturb, "perturb", nil, "parameters to perturb")
	cmd.Flags().Float64Var(&spread, "spread", 0.1, "perturbation as a fraction of each range")
	cmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.MarkFlagRequired("perturb")
	return cmd
}

func tuneCmd() *cobra.Command {
	var (
		flags    runFlags
		grid     []string
		reading  string
		metric   string
		maximize bool
		points   int
	)
	cmd := &cobra.Command{
		Use:     "tune [simulation]",
		Short:   "grid search parameters for the best reading or metric",
		Example: `  physlab tune projectile-motion --grid angle=10:80 --reading range --max
  physlab tune pendulum --grid damping=0.95:1 --metric energy_drift`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}

			var objective optim.Objective
			switch {
			case reading != "" && metric != "":
				return fmt.Errorf("use either --reading or --metric")
			case reading != "":
				objective = optim.Reading(reading, maximize)
			case metric != "":
				objective = optim.Metric(metric)
			default:
				return fmt.Errorf("tune needs --reading or --metric")
			}

			names := make([]string, len(grid))
			ranges := make([][]float64, len(grid))
			for i, g := range grid {
				key, span, ok := strings.Cut(g, "=")
				lo, hi, ok2 := strings.Cut(span, ":")
				if !ok || !ok2 {
					return fmt.Errorf("bad grid %q: want key=lo:hi", g)
				}
				l, err := strconv.ParseFloat(lo, 64)
				if err != nil {
					return fmt.Errorf("bad grid %q: %w", g, err)
				}
				h, err := strconv.ParseFloat(hi, 64)
				if err != nil {
					return fmt.Errorf("bad grid %q: %w", g, err)
				}
				names[i], ranges[i] = key, optim.Linspace(l, h, points)
			}

			search := optim.NewGridSearch(names, ranges)
			best, score, err := search.Search(cmd.Context(), registry, experimentConfig(cfg), objective)
			if err != nil {
				return err
			}
			if maximize && reading != "" {
				score = -score
			}
			fmt.Printf("evaluated %d candidates\n", search.Evaluated())
			for _, k := range names {
				fmt.Printf("  %s = %g\n", k, best[k])
			}
			fmt.Printf("objective: %.6g\n", score)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&grid, "grid", nil, "parameter ranges, key=lo:hi")
	cmd.Flags().StringVar(&reading, "reading", "", "reading key to optimize")
	cmd.Flags().StringVar(&metric, "metric", "", "metric name to minimize")
	cmd.Flags().BoolVar(&maximize, "max", false, "maximize the reading instead of minimizing")
	cmd.Flags().IntVar(&points, "points", 7, "grid points per parameter")
	cmd.MarkFlagRequired("grid")
	return cmd
}
