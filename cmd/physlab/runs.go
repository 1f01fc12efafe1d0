package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/analysis"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/storage"
)

// loadRun opens the store and resolves id (or a unique prefix of it).
func loadRun(cmd *cobra.Command, id string) (*storage.Run, storage.Series, error) {
	st, err := storage.Open(dataDir)
	if err != nil {
		return nil, storage.Series{}, err
	}
	defer st.Close()

	run, err := st.Load(cmd.Context(), id)
	if err != nil {
		return nil, storage.Series{}, err
	}
	series, err := st.LoadSeries(run.ID)
	if err != nil {
		return nil, storage.Series{}, err
	}
	return run, series, nil
}

// output returns stdout for "" or "-", else a created file.
func output(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func column(series storage.Series, idx int) []float64 {
	data := make([]float64, len(series.States))
	for i, x := range series.States {
		if idx < len(x) {
			data[i] = x[idx]
		}
	}
	return data
}

func runsCmd() *cobra.Command {
	var simulation string
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.Open(dataDir)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.List(cmd.Context(), simulation)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSIMULATION\tCREATED\tDURATION\tDT\tFRAMES\tINTEG\tSIZE")
			for _, run := range runs {
				size := "-"
				if n, err := st.SeriesSize(run.ID); err == nil {
					size = humanize.Bytes(uint64(n))
				}
				integ := run.Integrator
				if integ == "" {
					integ = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%s\n",
					run.ID[:8],
					run.Simulation,
					humanize.Time(run.CreatedAt),
					run.Duration,
					run.Dt,
					humanize.Comma(int64(run.Frames)),
					integ,
					size,
				)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&simulation, "sim", "", "only runs of this simulation")
	return cmd
}

func plotCmd() *cobra.Command {
	var (
		height, width int
		maxPlots      int
	)
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, series, err := loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			if len(series.States) == 0 {
				return errors.New("no data to plot")
			}

			fmt.Printf("run: %s\n", run.ID)
			fmt.Printf("simulation: %s\n", run.Simulation)
			fmt.Printf("samples: %d\n\n", len(series.States))

			for i, label := range series.Labels {
				if i >= maxPlots {
					break
				}
				graph := asciigraph.Plot(column(series, i),
					asciigraph.Height(height),
					asciigraph.Width(width),
					asciigraph.Caption(label+" vs time"),
				)
				fmt.Println(graph)
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&height, "height", 10, "graph height")
	cmd.Flags().IntVar(&width, "width", 80, "graph width")
	cmd.Flags().IntVar(&maxPlots, "max", 6, "maximum number of columns to plot")
	return cmd
}

func chartCmd() *cobra.Command {
	var (
		out  string
		cols []int
	)
	cmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render run results as a PNG chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, series, err := loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			if out == "" {
				out = run.ID[:8] + ".png"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			title := fmt.Sprintf("%s (%s)", run.Simulation, run.ID[:8])
			if err := export.ChartPNG(f, series, export.ChartOptions{Title: title, Columns: cols}); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file")
	cmd.Flags().IntSliceVar(&cols, "columns", nil, "state columns to draw (default all)")
	return cmd
}

func analyzeCmd() *cobra.Command {
	var (
		xAxis, yAxis int
		svgOut       string
	)
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis and phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, series, err := loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			if len(series.States) == 0 || len(series.Labels) == 0 {
				return errors.New("no data")
			}

			fmt.Printf("analysis: %s\n", run.ID)
			fmt.Printf("simulation: %s\n\n", run.Simulation)

			rate := 1 / run.Dt
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "COLUMN\tDOMINANT HZ\tPERIOD (FFT)\tPERIOD (CROSSINGS)")
			for i, label := range series.Labels {
				data := column(series, i)
				fftCol, periodCol := "-\t-", "-"
				if f, err := analysis.DominantFrequency(data, rate); err == nil && f > 0 {
					fftCol = fmt.Sprintf("%.4f\t%.4f s", f, 1/f)
				}
				if p, ok := analysis.ZeroCrossingPeriod(series.Times, data); ok {
					periodCol = fmt.Sprintf("%.4f s", p)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", label, fftCol, periodCol)
			}
			w.Flush()

			spectrum := analysis.PowerSpectrum(column(series, 0))
			if len(spectrum) > 8 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(spectrum[:len(spectrum)/4],
					asciigraph.Height(10),
					asciigraph.Width(80),
					asciigraph.Caption("power spectrum ("+series.Labels[0]+")"),
				))
			}

			if len(series.Labels) < 2 {
				return nil
			}
			portrait, err := analysis.NewPhasePortrait(series.States, xAxis, yAxis)
			if err != nil {
				return err
			}
			fmt.Printf("\nphase portrait: %s vs %s\n", series.Labels[yAxis], series.Labels[xAxis])
			fmt.Println(portrait.ASCII(60, 20))

			if svgOut != "" {
				svg := export.TrajectoryToSVG(portrait.Points, 600, 600, "#00d9ff")
				if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", svgOut)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&xAxis, "x", 0, "phase portrait x column")
	cmd.Flags().IntVar(&yAxis, "y", 1, "phase portrait y column")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write the phase portrait as svg")
	return cmd
}

func exportCSVCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's series as csv",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, series, err := loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			w, err := output(out)
			if err != nil {
				return err
			}
			defer w.Close()
			return export.WriteCSV(w, series)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func exportJSONCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run's metadata and series as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, series, err := loadRun(cmd, args[0])
			if err != nil {
				return err
			}
			w, err := output(out)
			if err != nil {
				return err
			}
			defer w.Close()
			return export.WriteJSON(w, export.NewDocument(*run, series))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := storage.Open(dataDir)
			if err != nil {
				return err
			}
			defer st.Close()
			run, err := st.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := st.Delete(cmd.Context(), run.ID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", run.ID)
			return nil
		},
	}
}
