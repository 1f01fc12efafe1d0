package main

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/config"
	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/storage"
)

// runFlags are shared by every command that builds a run config.
type runFlags struct {
	configFile string
	preset     string
	integrator string
	dt         float64
	duration   float64
	params     map[string]string
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&f.preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&f.integrator, "integrator", config.DefaultIntegrator, "integrator for integrated models")
	cmd.Flags().Float64Var(&f.dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&f.duration, "time", config.DefaultDuration, "duration in seconds")
	cmd.Flags().StringToStringVarP(&f.params, "set", "p", nil, "parameter values, key=value")
}

// resolve layers the config: defaults, then preset, then config file, then
// explicitly set flags.
func (f *runFlags) resolve(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Simulation = args[0]
	}

	if f.preset != "" {
		p := config.GetPreset(cfg.Simulation, f.preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (have: %s)",
				f.preset, cfg.Simulation, strings.Join(config.ListPresets(cfg.Simulation), ", "))
		}
		cfg.Merge(p)
	}

	if f.configFile != "" {
		loaded, err := config.LoadInto(f.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 && cfg.Simulation != args[0] {
			return nil, fmt.Errorf("config %s is for %s, not %s", f.configFile, cfg.Simulation, args[0])
		}
	}

	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = f.integrator
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = f.dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = f.duration
	}
	cfg.Merge(&config.Config{Params: f.params})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func experimentConfig(cfg *config.Config) experiment.Config {
	return experiment.Config{
		Simulation: cfg.Simulation,
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Params:     cfg.Params,
	}
}

func runCmd() *cobra.Command {
	var (
		flags    runFlags
		noSave   bool
		saveConf string
	)
	cmd := &cobra.Command{
		Use:   "run [simulation]",
		Short: "run a simulation headlessly and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && flags.configFile == "" {
				return errors.New("run needs a simulation name or --config")
			}
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			if saveConf != "" {
				if err := config.Save(saveConf, cfg); err != nil {
					return err
				}
			}

			fmt.Printf("running %s simulation...\n", cfg.Simulation)
			start := time.Now()
			res, runErr := registry.Run(cmd.Context(), experimentConfig(cfg))
			if res == nil {
				return runErr
			}
			elapsed := time.Since(start)

			fmt.Printf("completed in %v\n", elapsed.Round(time.Millisecond))
			fmt.Printf("frames: %d\n", res.Frames)
			printReadings(res.Readings)
			if len(res.Metrics) > 0 {
				fmt.Println("\nmetrics:")
				for _, name := range sortedKeys(res.Metrics) {
					fmt.Printf("  %s: %.6g\n", name, res.Metrics[name])
				}
			}

			if !noSave {
				id, err := saveResult(cmd, cfg, res)
				if err != nil {
					return err
				}
				fmt.Printf("\nrun id: %s\n", id)
			}
			return runErr
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	cmd.Flags().StringVar(&saveConf, "save-config", "", "write the resolved config to a yaml file")
	return cmd
}

func saveResult(cmd *cobra.Command, cfg *config.Config, res *experiment.Result) (string, error) {
	st, err := storage.Open(dataDir)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run := &storage.Run{
		Simulation: res.Simulation,
		Integrator: res.Integrator,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Frames:     res.Frames,
		Params:     res.Params,
		Metrics:    res.Metrics,
	}
	id, err := st.Save(cmd.Context(), run, storage.Series{Labels: res.Labels, Times: res.Times, States: res.States})
	if err != nil {
		return "", err
	}
	slog.Debug("run saved", "id", id, "samples", len(res.States))
	return id, nil
}

func printReadings(rs []sim.Reading) {
	if len(rs) == 0 {
		return
	}
	fmt.Println("\nreadings:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, r := range rs {
		fmt.Fprintf(w, "  %s\t%s\n", r.Label, r.Display())
	}
	w.Flush()
}

func sweepCmd() *cobra.Command {
	var (
		flags      runFlags
		key        string
		from, to   float64
		steps      int
		showValues []string
	)
	cmd := &cobra.Command{
		Use:   "sweep [simulation]",
		Short: "run one session per value of a parameter concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			ctor, err := registry.Constructor(cfg.Simulation)
			if err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1, got %d", steps)
			}

			values := make([]float64, steps)
			for i := range values {
				if steps == 1 {
					values[i] = from
					continue
				}
				values[i] = from + (to-from)*float64(i)/float64(steps-1)
			}

			sw := &sim.Sweep{New: ctor, Key: key, Base: cfg.Params, Duration: cfg.Duration, Dt: cfg.Dt}
			results, err := sw.Run(cmd.Context(), values)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			header := []string{strings.ToUpper(key), "T"}
			cols := showValues
			if len(cols) == 0 && len(results) > 0 {
				for _, r := range results[0].Readings {
					cols = append(cols, r.Key)
				}
			}
			for _, c := range cols {
				header = append(header, strings.ToUpper(c))
			}
			fmt.Fprintln(w, strings.Join(header, "\t"))
			for _, r := range results {
				row := []string{strconv.FormatFloat(r.Value, 'g', 6, 64), fmt.Sprintf("%.2f", r.Time)}
				if r.Err != nil {
					row = append(row, "error: "+r.Err.Error())
					fmt.Fprintln(w, strings.Join(row, "\t"))
					continue
				}
				for _, c := range cols {
					if rd, ok := sim.Find(r.Readings, c); ok {
						row = append(row, rd.Display())
					} else {
						row = append(row, "-")
					}
				}
				fmt.Fprintln(w, strings.Join(row, "\t"))
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&key, "param", "", "parameter to sweep")
	cmd.Flags().Float64Var(&from, "from", 0, "first value")
	cmd.Flags().Float64Var(&to, "to", 0, "last value")
	cmd.Flags().IntVar(&steps, "steps", 5, "number of values")
	cmd.Flags().StringSliceVar(&showValues, "show", nil, "reading keys to print")
	cmd.MarkFlagRequired("param")
	return cmd
}

func compareCmd() *cobra.Command {
	var (
		flags       runFlags
		integrators []string
	)
	cmd := &cobra.Command{
		Use:   "compare [simulation]",
		Short: "compare integrators on the same run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			if len(integrators) == 0 {
				integrators = registry.ListIntegrators()
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "INTEGRATOR\tFRAMES\tMETRIC\tVALUE\tELAPSED")
			for _, name := range integrators {
				c := experimentConfig(cfg)
				c.Integrator = name
				start := time.Now()
				res, err := registry.Run(cmd.Context(), c)
				elapsed := time.Since(start).Round(time.Microsecond)
				if res == nil {
					return err
				}
				if res.Integrator == "" {
					return fmt.Errorf("%s does not use an integrator", cfg.Simulation)
				}
				status := ""
				if err != nil {
					status = " (" + err.Error() + ")"
				}
				for _, m := range sortedKeys(res.Metrics) {
					fmt.Fprintf(w, "%s\t%d\t%s\t%.6g\t%v%s\n", name, res.Frames, m, res.Metrics[m], elapsed, status)
				}
			}
			return w.Flush()
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&integrators, "integrators", nil, "integrators to compare (default all)")
	return cmd
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
