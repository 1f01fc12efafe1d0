package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/audio"
	"github.com/san-kum/physlab/internal/dynamo"
	"github.com/san-kum/physlab/internal/export"
	"github.com/san-kum/physlab/internal/gui"
	"github.com/san-kum/physlab/internal/physics"
	"github.com/san-kum/physlab/internal/render"
	"github.com/san-kum/physlab/internal/sim"
	"github.com/san-kum/physlab/internal/viz"
)

// newSession builds a started session with raw params applied.
func newSession(name string, raw map[string]string) (*sim.Session, error) {
	m, err := physics.New(name)
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSession(m, sim.WithLogger(slog.Default()))
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if _, err := s.CommitAll(raw); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func renderCmd() *cobra.Command {
	var (
		out           string
		width, height int
		at            float64
		params        map[string]string
		cols, rows    int
	)
	cmd := &cobra.Command{
		Use:   "render [simulation]",
		Short: "render one frame to png, svg or the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(args[0], params)
			if err != nil {
				return err
			}
			s.Start()
			for s.Time() < at && s.Running() {
				if err := s.Tick(dynamo.FrameDt); err != nil {
					return err
				}
			}

			switch ext := strings.ToLower(filepath.Ext(out)); {
			case out == "":
				b := render.NewBraille(cols, rows)
				s.Render(b)
				fmt.Print(b.String())
				return nil
			case ext == ".svg":
				b := render.NewBraille(cols, rows)
				s.Render(b)
				return os.WriteFile(out, []byte(export.BrailleToSVG(b, 4)), 0644)
			case ext == ".png":
				r := render.NewRaster(width, height)
				defer r.Close()
				s.Render(r)
				if err := r.SavePNG(out); err != nil {
					return err
				}
				fmt.Printf("wrote %s (t=%.2fs)\n", out, s.Time())
				return nil
			default:
				return fmt.Errorf("unsupported output %q: use .png or .svg", out)
			}
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (.png or .svg); empty prints braille")
	cmd.Flags().IntVar(&width, "width", 800, "png width")
	cmd.Flags().IntVar(&height, "height", 600, "png height")
	cmd.Flags().IntVar(&cols, "cols", 80, "braille columns")
	cmd.Flags().IntVar(&rows, "rows", 24, "braille rows")
	cmd.Flags().Float64Var(&at, "at", 0, "simulated seconds before the frame is taken")
	cmd.Flags().StringToStringVarP(&params, "set", "p", nil, "parameter values, key=value")
	return cmd
}

func toneFor(enabled bool, log *slog.Logger) audio.Tone {
	if !enabled {
		return nil
	}
	return audio.NewOutput(log)
}

func liveCmd() *cobra.Command {
	var (
		params map[string]string
		sound  bool
	)
	cmd := &cobra.Command{
		Use:   "live [simulation]",
		Short: "run a simulation in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := quietLogger()
			opts := []viz.Option{viz.WithLogger(log)}
			if t := toneFor(sound, log); t != nil {
				opts = append(opts, viz.WithTone(t))
			}
			return viz.RunSimulation(args[0], params, opts...)
		},
	}
	cmd.Flags().StringToStringVarP(&params, "set", "p", nil, "parameter values, key=value")
	cmd.Flags().BoolVar(&sound, "sound", true, "play the sound-waves tone")
	return cmd
}

func guiCmd() *cobra.Command {
	var sound bool
	cmd := &cobra.Command{
		Use:   "gui [simulation]",
		Short: "open the desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.Default()
			tone := toneFor(sound, log)
			if len(args) == 0 {
				gui.RunInteractive(tone, log)
				return nil
			}
			return gui.Run(args[0], tone, log)
		},
	}
	cmd.Flags().BoolVar(&sound, "sound", true, "play the sound-waves tone")
	return cmd
}

func toneCmd() *cobra.Command {
	var (
		freq, gain float64
		length     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "tone",
		Short: "play a sine tone on the default output device",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := audio.NewOutput(slog.Default())
			if err := out.SetFrequency(freq); err != nil {
				return err
			}
			out.SetGain(gain)
			if err := out.Start(); err != nil {
				return err
			}
			defer out.Stop()

			fmt.Printf("playing %.1f Hz for %v\n", freq, length)
			select {
			case <-cmd.Context().Done():
			case <-time.After(length):
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&freq, "freq", 440, "frequency in Hz")
	cmd.Flags().Float64Var(&gain, "gain", 0.3, "gain in [0, 1]")
	cmd.Flags().DurationVar(&length, "for", 2*time.Second, "how long to play")
	return cmd
}
