package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/experiment"
	"github.com/san-kum/physlab/internal/viz"
)

var (
	dataDir string
	verbose bool
	theme   string

	registry = experiment.NewRegistry()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "physlab",
		Short:         "physics demonstration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			if theme != "" {
				viz.SetTheme(theme)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand opens the terminal gallery
			return viz.Run(viz.WithLogger(quietLogger()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".physlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "terminal theme (cyberpunk, ocean, minimal)")

	rootCmd.AddCommand(
		listCmd(),
		paramsCmd(),
		presetsCmd(),
		runCmd(),
		sweepCmd(),
		compareCmd(),
		tuneCmd(),
		monteCarloCmd(),
		scenarioCmd(),
		runsCmd(),
		plotCmd(),
		chartCmd(),
		analyzeCmd(),
		exportCSVCmd(),
		exportJSONCmd(),
		deleteCmd(),
		renderCmd(),
		liveCmd(),
		guiCmd(),
		toneCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// quietLogger keeps info records off the terminal while a full-screen
// program owns it.
func quietLogger() *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
